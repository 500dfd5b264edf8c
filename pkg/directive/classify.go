package directive

import (
	"strings"

	"gitlab.com/tozd/go/errors"
)

// ErrMalformedDirective indicates text that violates the marker-leading
// shape the corpus guarantees. It is fatal: heuristic recovery would
// silently corrupt test semantics.
var ErrMalformedDirective = errors.Base("malformed directive")

// MatchMode selects how a candidate line is compared against the Set.
type MatchMode int

const (
	// MatchFullLine compares the entire line with terminator bytes stripped.
	// This is the stricter mode: it cannot suffer accidental prefix
	// collisions between a directive body and a longer prose comment.
	MatchFullLine MatchMode = iota

	// MatchBody compares only the trimmed text after the comment marker,
	// for collected sets that store bare bodies instead of whole lines.
	MatchBody
)

// Result is the outcome of classifying one line.
type Result struct {
	// Line is the text to write out, rewritten or original. It always
	// carries the input's terminator bytes unchanged.
	Line string

	// Rewritten reports whether the comment marker was replaced.
	Rewritten bool
}

// Classifier decides, per raw line, whether a comment is a known directive.
type Classifier struct {
	set  *Set
	mode MatchMode
}

// NewClassifier creates a Classifier over an immutable Set.
func NewClassifier(set *Set, mode MatchMode) *Classifier {
	return &Classifier{set: set, mode: mode}
}

// Classify decides directive-vs-prose for one raw line, terminator included.
// Matching is case-sensitive and treats revision brackets as literal text.
func (c *Classifier) Classify(raw string) (Result, error) {
	line, terminator := splitTerminator(raw)

	if !strings.HasPrefix(strings.TrimSpace(line), Marker) {
		return Result{Line: raw}, nil
	}

	before, after, _ := strings.Cut(line, Marker)
	if strings.TrimSpace(before) != "" {
		// the marker is not in leading position; the corpus invariant says
		// this cannot happen on a line whose trimmed form starts with it
		return Result{}, errors.Errorf("%w: comment marker not in leading position in %q", ErrMalformedDirective, line)
	}

	var matched bool
	switch c.mode {
	case MatchBody:
		matched = c.set.Contains(strings.TrimSpace(after))
	default:
		matched = c.set.Contains(line)
	}

	if !matched {
		// presumed prose
		return Result{Line: raw}, nil
	}

	return Result{
		Line:      before + RewrittenMarker + after + terminator,
		Rewritten: true,
	}, nil
}

// splitTerminator splits a raw line into its content and its trailing
// line-ending bytes. Only \r and \n are peeled off; trailing whitespace
// inside the body stays part of the content.
func splitTerminator(raw string) (line, terminator string) {
	line = strings.TrimRight(raw, "\r\n")
	return line, raw[len(line):]
}
