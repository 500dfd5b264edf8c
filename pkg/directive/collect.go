package directive

import (
	"bufio"
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// ErrFileAccess indicates a failure to open, read, or write a file. It is
// fatal for the whole run: a loud stop is preferred over a partially
// migrated corpus.
var ErrFileAccess = errors.Base("file access")

// Sources names the places collected directive strings come from.
type Sources struct {
	// Primary is a flat file with one directive string per line. It is
	// required; collection cannot proceed without it.
	Primary string

	// Secondary is a directory tree whose regular files (any name, any
	// depth) each hold additional directive-string lines. It may be absent.
	Secondary string

	// Overrides are manually supplied directive strings, merged last. They
	// correct directives the collection step missed or mis-collected.
	Overrides []string
}

// DefaultSources returns the collection layout the build system produces
// for a corpus root and target triple.
func DefaultSources(root, target string) Sources {
	base := filepath.Join(root, "build", target, "test", "ui", "__directive_lines")
	return Sources{
		Primary:   base + ".txt",
		Secondary: base,
	}
}

// Collect reads every source and builds the Set used for classification.
// The secondary tree is enumerated in sorted path order so that runs are
// reproducible; the union itself is order-insensitive.
func Collect(ctx context.Context, src Sources) (*Set, error) {
	logger := zerolog.Ctx(ctx)

	raw, err := readLines(src.Primary)
	if err != nil {
		return nil, errors.Errorf("%w: reading collected directives %q: %w", ErrFileAccess, src.Primary, err)
	}
	logger.Debug().Str("path", src.Primary).Int("lines", len(raw)).Msg("read primary directive list")

	if src.Secondary != "" {
		paths, err := listRegularFiles(src.Secondary)
		if err != nil {
			return nil, errors.Errorf("%w: enumerating collected directives under %q: %w", ErrFileAccess, src.Secondary, err)
		}
		logger.Debug().Int("files", len(paths)).Msg("collected header files")

		for _, path := range paths {
			lines, err := readLines(path)
			if err != nil {
				return nil, errors.Errorf("%w: reading collected directives %q: %w", ErrFileAccess, path, err)
			}
			raw = append(raw, lines...)
		}
	}

	raw = append(raw, src.Overrides...)

	set := NewSet(raw)
	logger.Debug().Int("directives", set.Len()).Msg("built directive set")
	return set, nil
}

// readLines reads a file as directive-string lines, terminators stripped.
// Trailing whitespace inside the line body is preserved: the classifier
// strips exactly the same bytes, so the two sides cannot desync.
func readLines(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var lines []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		lines = append(lines, strings.TrimRight(scanner.Text(), "\r\n"))
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return lines, nil
}

// listRegularFiles returns every regular file under root, sorted. A missing
// root is not an error: the collection step may have produced only the
// primary flat file.
func listRegularFiles(root string) ([]string, error) {
	var paths []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.Type().IsRegular() {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	sort.Strings(paths)
	return paths, nil
}
