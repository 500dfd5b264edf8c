package migrate

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/compiletest/migrc/pkg/config"
	"github.com/compiletest/migrc/pkg/log"
)

// newCorpus lays out a corpus root with collected directives and test files.
func newCorpus(t *testing.T, cfg *config.Config, directives string) string {
	t.Helper()
	root := t.TempDir()

	collected := filepath.Join(root, "build", cfg.Target, "test", "ui")
	require.NoError(t, os.MkdirAll(collected, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(collected, "__directive_lines.txt"), []byte(directives), 0o644))

	return root
}

func writeCorpusFile(t *testing.T, root, rel, content string) string {
	t.Helper()
	path := filepath.Join(root, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func testLogger() *log.Logger {
	return log.New(io.Discard, zerolog.Disabled)
}

func TestRunner_Run(t *testing.T) {
	cfg := config.Default()
	root := newCorpus(t, cfg, "// run-pass\n//[rev] edition: 2021\n")

	ui := writeCorpusFile(t, root, "tests/ui/a.rs",
		"// run-pass\n// just a comment\n//[rev] edition: 2021\nfn main() {}\n")
	rest := writeCorpusFile(t, root, "tests/codegen/b.rs",
		"// run-pass\nfn main() {}\n")
	other := writeCorpusFile(t, root, "tests/codegen/c.txt",
		"// run-pass\n")

	runner, err := NewRunner(Options{
		CorpusRoot: root,
		Config:     cfg,
		UserLogger: testLogger(),
	})
	require.NoError(t, err)
	require.NoError(t, runner.Run(context.Background()))

	got, err := os.ReadFile(ui)
	require.NoError(t, err)
	assert.Equal(t, "//@ run-pass\n// just a comment\n//@[rev] edition: 2021\nfn main() {}\n", string(got))

	got, err = os.ReadFile(rest)
	require.NoError(t, err)
	assert.Equal(t, "//@ run-pass\nfn main() {}\n", string(got))

	// non-candidate extension untouched
	got, err = os.ReadFile(other)
	require.NoError(t, err)
	assert.Equal(t, "// run-pass\n", string(got))
}

func TestRunner_Run_Idempotent(t *testing.T) {
	cfg := config.Default()
	root := newCorpus(t, cfg, "// run-pass\n")
	path := writeCorpusFile(t, root, "tests/ui/a.rs", "// run-pass\nfn main() {}\n")

	for i := 0; i < 2; i++ {
		runner, err := NewRunner(Options{
			CorpusRoot: root,
			Config:     cfg,
			UserLogger: testLogger(),
		})
		require.NoError(t, err)
		require.NoError(t, runner.Run(context.Background()))
	}

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "//@ run-pass\nfn main() {}\n", string(got))
}

func TestRunner_Run_ManualDirectives(t *testing.T) {
	cfg := config.Default()
	cfg.ManualDirectives = []string{"// needs-asm-support"}
	root := newCorpus(t, cfg, "// run-pass\n")
	path := writeCorpusFile(t, root, "tests/ui/a.rs", "// needs-asm-support\n")

	runner, err := NewRunner(Options{
		CorpusRoot: root,
		Config:     cfg,
		UserLogger: testLogger(),
	})
	require.NoError(t, err)
	require.NoError(t, runner.Run(context.Background()))

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "//@ needs-asm-support\n", string(got))
}

func TestRunner_Run_DryRun(t *testing.T) {
	cfg := config.Default()
	root := newCorpus(t, cfg, "// run-pass\n")
	path := writeCorpusFile(t, root, "tests/ui/a.rs", "// run-pass\nfn main() {}\n")

	var diff bytes.Buffer
	runner, err := NewRunner(Options{
		CorpusRoot: root,
		Config:     cfg,
		UserLogger: testLogger(),
		DryRun:     true,
		DiffOutput: &diff,
	})
	require.NoError(t, err)
	require.NoError(t, runner.Run(context.Background()))

	// nothing on disk changed
	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "// run-pass\nfn main() {}\n", string(got))

	// but the preview shows the rewrite
	assert.Contains(t, diff.String(), "-// run-pass")
	assert.Contains(t, diff.String(), "+//@ run-pass")
}

func TestRunner_Run_CollectionFailureAborts(t *testing.T) {
	cfg := config.Default()
	root := t.TempDir() // no collected directives at all
	writeCorpusFile(t, root, "tests/ui/a.rs", "// run-pass\n")

	runner, err := NewRunner(Options{
		CorpusRoot: root,
		Config:     cfg,
		UserLogger: testLogger(),
	})
	require.NoError(t, err)
	require.Error(t, runner.Run(context.Background()))
}

func TestNewRunner_ArgumentErrors(t *testing.T) {
	tests := []struct {
		name string
		root string
	}{
		{name: "missing_argument", root: ""},
		{name: "nonexistent_root", root: filepath.Join(t.TempDir(), "absent")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewRunner(Options{
				CorpusRoot: tt.root,
				Config:     config.Default(),
				UserLogger: testLogger(),
			})
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrArgument)
		})
	}
}
