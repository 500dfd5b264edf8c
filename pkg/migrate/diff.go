package migrate

import (
	"fmt"
	"io"
	"os"

	"github.com/sergi/go-diff/diffmatchpatch"
	"gitlab.com/tozd/go/errors"

	"github.com/compiletest/migrc/pkg/directive"
)

// writeDiff renders a line-level preview of what a migration would change,
// comparing the on-disk content of path against the rewritten content.
func writeDiff(w io.Writer, label, path string, rewritten []byte) error {
	original, err := os.ReadFile(path)
	if err != nil {
		return errors.Errorf("%w: reading %q: %w", directive.ErrFileAccess, path, err)
	}

	dmp := diffmatchpatch.New()
	srcRunes, dstRunes, lines := dmp.DiffLinesToRunes(string(original), string(rewritten))
	diffs := dmp.DiffCharsToLines(dmp.DiffMainRunes(srcRunes, dstRunes, false), lines)

	if _, err := fmt.Fprintf(w, "--- %s\n", label); err != nil {
		return errors.Errorf("writing diff: %w", err)
	}
	for _, d := range diffs {
		var prefix string
		switch d.Type {
		case diffmatchpatch.DiffDelete:
			prefix = "-"
		case diffmatchpatch.DiffInsert:
			prefix = "+"
		default:
			continue
		}
		if _, err := fmt.Fprint(w, prefixLines(prefix, d.Text)); err != nil {
			return errors.Errorf("writing diff: %w", err)
		}
	}
	return nil
}

// prefixLines prepends prefix to every line of text, keeping terminators.
func prefixLines(prefix, text string) string {
	var out []byte
	start := 0
	for i := 0; i < len(text); i++ {
		if text[i] == '\n' {
			out = append(out, prefix...)
			out = append(out, text[start:i+1]...)
			start = i + 1
		}
	}
	if start < len(text) {
		out = append(out, prefix...)
		out = append(out, text[start:]...)
		out = append(out, '\n')
	}
	return string(out)
}
