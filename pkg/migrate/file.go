package migrate

import (
	"bufio"
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"

	"github.com/compiletest/migrc/pkg/directive"
)

// FileResult summarizes one processed file.
type FileResult struct {
	Lines     int // lines seen
	Rewritten int // lines whose marker was rewritten
}

// MigrateFile rewrites path in place: every line is classified, directives
// get their marker rewritten, everything else is copied byte-for-byte.
//
// The rewrite is atomic. Output goes to a temporary file in the same
// directory, which replaces the original by rename only after every line has
// been written; on any failure the temporary file is removed and the
// original is untouched. A crash mid-run therefore leaves the corpus with
// some files fully migrated and the rest fully untouched, never a
// half-written file.
func MigrateFile(ctx context.Context, path string, cls *directive.Classifier) (FileResult, error) {
	logger := zerolog.Ctx(ctx)
	logger.Debug().Str("path", path).Msg("processing file")

	src, err := os.Open(path)
	if err != nil {
		return FileResult{}, errors.Errorf("%w: opening %q: %w", directive.ErrFileAccess, path, err)
	}
	defer src.Close()

	info, err := src.Stat()
	if err != nil {
		return FileResult{}, errors.Errorf("%w: stating %q: %w", directive.ErrFileAccess, path, err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".migrc-*")
	if err != nil {
		return FileResult{}, errors.Errorf("%w: creating temporary file for %q: %w", directive.ErrFileAccess, path, err)
	}
	committed := false
	defer func() {
		if !committed {
			tmp.Close()
			os.Remove(tmp.Name())
		}
	}()

	if err := tmp.Chmod(info.Mode().Perm()); err != nil {
		return FileResult{}, errors.Errorf("%w: setting permissions on temporary file for %q: %w", directive.ErrFileAccess, path, err)
	}

	res, err := rewriteLines(src, tmp, cls)
	if err != nil {
		return FileResult{}, errors.Errorf("migrating %q: %w", path, err)
	}

	if err := tmp.Close(); err != nil {
		return FileResult{}, errors.Errorf("%w: closing temporary file for %q: %w", directive.ErrFileAccess, path, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return FileResult{}, errors.Errorf("%w: replacing %q: %w", directive.ErrFileAccess, path, err)
	}
	committed = true

	return res, nil
}

// PreviewFile classifies path without touching it, returning what
// MigrateFile would have produced.
func PreviewFile(ctx context.Context, path string, cls *directive.Classifier) (FileResult, []byte, error) {
	logger := zerolog.Ctx(ctx)
	logger.Debug().Str("path", path).Msg("previewing file")

	src, err := os.Open(path)
	if err != nil {
		return FileResult{}, nil, errors.Errorf("%w: opening %q: %w", directive.ErrFileAccess, path, err)
	}
	defer src.Close()

	var out bytes.Buffer
	res, err := rewriteLines(src, &out, cls)
	if err != nil {
		return FileResult{}, nil, errors.Errorf("previewing %q: %w", path, err)
	}
	return res, out.Bytes(), nil
}

// rewriteLines streams src line by line, preserving terminator bytes
// exactly, including a missing terminator on the final line.
func rewriteLines(src io.Reader, dst io.Writer, cls *directive.Classifier) (FileResult, error) {
	var res FileResult

	w := bufio.NewWriter(dst)
	r := bufio.NewReader(src)
	for {
		line, readErr := r.ReadString('\n')
		if line != "" {
			res.Lines++
			out, err := cls.Classify(line)
			if err != nil {
				return FileResult{}, err
			}
			if out.Rewritten {
				res.Rewritten++
			}
			if _, err := w.WriteString(out.Line); err != nil {
				return FileResult{}, errors.Errorf("%w: writing line: %w", directive.ErrFileAccess, err)
			}
		}
		if readErr == io.EOF {
			break
		}
		if readErr != nil {
			return FileResult{}, errors.Errorf("%w: reading line: %w", directive.ErrFileAccess, readErr)
		}
	}

	if err := w.Flush(); err != nil {
		return FileResult{}, errors.Errorf("%w: flushing output: %w", directive.ErrFileAccess, err)
	}
	return res, nil
}
