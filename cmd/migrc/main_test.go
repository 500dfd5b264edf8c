package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/compiletest/migrc/pkg/config"
)

// runCLI executes the command tree with args, capturing stdout.
func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer
	cmd := NewRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)

	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

// newTestCorpus builds a minimal corpus with one collected directive and one
// ui test file, returning the root and the test file path.
func newTestCorpus(t *testing.T) (string, string) {
	t.Helper()
	root := t.TempDir()

	collected := filepath.Join(root, "build", config.DefaultTarget, "test", "ui")
	require.NoError(t, os.MkdirAll(collected, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(collected, "__directive_lines.txt"),
		[]byte("// run-pass\n// edition: 2021\n"), 0o644))

	file := filepath.Join(root, "tests", "ui", "a.rs")
	require.NoError(t, os.MkdirAll(filepath.Dir(file), 0o755))
	require.NoError(t, os.WriteFile(file, []byte("// run-pass\n// prose\nfn main() {}\n"), 0o644))

	return root, file
}

func TestCLI_Migrate(t *testing.T) {
	root, file := newTestCorpus(t)

	_, err := runCLI(t, "--config", filepath.Join(root, ".migrc.yaml"), "migrate", root)
	require.NoError(t, err)

	got, err := os.ReadFile(file)
	require.NoError(t, err)
	assert.Equal(t, "//@ run-pass\n// prose\nfn main() {}\n", string(got))
}

func TestCLI_Migrate_MissingRoot(t *testing.T) {
	_, err := runCLI(t, "migrate", filepath.Join(t.TempDir(), "absent"))
	require.Error(t, err)
}

func TestCLI_Names(t *testing.T) {
	root, _ := newTestCorpus(t)

	out, err := runCLI(t, "--config", filepath.Join(root, ".migrc.yaml"), "names", root)
	require.NoError(t, err)
	assert.Contains(t, out, "run-pass\n")
	assert.Contains(t, out, "edition\n")
}

func TestCLI_Init(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".migrc.yaml")

	_, err := runCLI(t, "--config", path, "init")
	require.NoError(t, err)

	cfg, err := config.Load(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, config.DefaultTarget, cfg.Target)

	// a second init must refuse to touch the existing file
	_, err = runCLI(t, "--config", path, "init")
	require.Error(t, err)
	assert.ErrorIs(t, err, config.ErrConfigConflict)
}
