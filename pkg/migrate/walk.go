package migrate

import (
	"io/fs"
	"path/filepath"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
	"gitlab.com/tozd/go/errors"

	"github.com/compiletest/migrc/pkg/directive"
)

// WalkOptions is the inclusion policy for corpus enumeration.
type WalkOptions struct {
	// Extensions are the file extensions (with dot) considered migration
	// candidates, e.g. ".rs" and ".fixed".
	Extensions []string

	// ExcludeSubtrees are directories whose entire contents are skipped,
	// used to avoid re-processing a subtree an earlier phase already
	// migrated. Paths are absolute or relative to the process, matching
	// however root was given.
	ExcludeSubtrees []string

	// ExcludeGlobs are doublestar patterns matched against each candidate's
	// slash-separated path relative to root.
	ExcludeGlobs []string
}

// Walk enumerates candidate files under root in lexicographic order.
// Traversal order is not relied upon; the final list is sorted before use.
func Walk(root string, opts WalkOptions) ([]string, error) {
	exts := make(map[string]struct{}, len(opts.Extensions))
	for _, e := range opts.Extensions {
		exts[e] = struct{}{}
	}

	var paths []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			for _, ex := range opts.ExcludeSubtrees {
				if samePath(path, ex) {
					return filepath.SkipDir
				}
			}
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}
		if _, ok := exts[filepath.Ext(path)]; !ok {
			return nil
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		for _, pattern := range opts.ExcludeGlobs {
			matched, err := doublestar.Match(pattern, filepath.ToSlash(rel))
			if err != nil {
				return errors.Errorf("invalid exclude pattern %q: %w", pattern, err)
			}
			if matched {
				return nil
			}
		}

		paths = append(paths, path)
		return nil
	})
	if err != nil {
		return nil, errors.Errorf("%w: walking %q: %w", directive.ErrFileAccess, root, err)
	}

	sort.Strings(paths)
	return paths, nil
}

// samePath compares cleaned paths for equality.
func samePath(a, b string) bool {
	return filepath.Clean(a) == filepath.Clean(b)
}
