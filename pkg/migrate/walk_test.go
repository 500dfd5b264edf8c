package migrate

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeTree creates empty files under root from relative slash paths.
func writeTree(t *testing.T, root string, paths ...string) {
	t.Helper()
	for _, p := range paths {
		full := filepath.Join(root, filepath.FromSlash(p))
		require.NoError(t, os.MkdirAll(filepath.Dir(full), 0o755))
		require.NoError(t, os.WriteFile(full, []byte("fn main() {}\n"), 0o644))
	}
}

func TestWalk(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root,
		"ui/b.rs",
		"ui/a.rs",
		"ui/nested/c.rs",
		"ui/readme.md",
		"ui/fixture.fixed",
		"codegen/d.rs",
	)

	tests := []struct {
		name string
		opts WalkOptions
		want []string
	}{
		{
			name: "rs_only_sorted",
			opts: WalkOptions{Extensions: []string{".rs"}},
			want: []string{"codegen/d.rs", "ui/a.rs", "ui/b.rs", "ui/nested/c.rs"},
		},
		{
			name: "fixed_variant_included",
			opts: WalkOptions{Extensions: []string{".rs", ".fixed"}},
			want: []string{"codegen/d.rs", "ui/a.rs", "ui/b.rs", "ui/fixture.fixed", "ui/nested/c.rs"},
		},
		{
			name: "exclude_subtree",
			opts: WalkOptions{
				Extensions:      []string{".rs"},
				ExcludeSubtrees: []string{filepath.Join(root, "ui")},
			},
			want: []string{"codegen/d.rs"},
		},
		{
			name: "exclude_glob",
			opts: WalkOptions{
				Extensions:   []string{".rs"},
				ExcludeGlobs: []string{"**/nested/*.rs"},
			},
			want: []string{"codegen/d.rs", "ui/a.rs", "ui/b.rs"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Walk(root, tt.opts)
			require.NoError(t, err)

			rel := make([]string, 0, len(got))
			for _, p := range got {
				r, err := filepath.Rel(root, p)
				require.NoError(t, err)
				rel = append(rel, filepath.ToSlash(r))
			}
			assert.Equal(t, tt.want, rel)
		})
	}
}

func TestWalk_MissingRoot(t *testing.T) {
	_, err := Walk(filepath.Join(t.TempDir(), "absent"), WalkOptions{Extensions: []string{".rs"}})
	require.Error(t, err)
}
