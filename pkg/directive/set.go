package directive

import (
	"sort"
	"strings"
)

const (
	// Marker introduces a legacy comment-style directive.
	Marker = "//"

	// RewrittenMarker is the explicit directive marker the migration produces.
	RewrittenMarker = "//@"
)

// scriptMarker is the build-script comment marker. Collection occasionally
// picks up lines from shell snippets embedded in build logs; they can never
// match a test source line.
const scriptMarker = "#"

// nonPortablePrefix marks the internal lint-suppression idiom. Those lines
// look like directives in collected output but are not test metadata.
const nonPortablePrefix = "ignore-tidy"

// Set is an immutable, deduplicated collection of known directive strings.
// Iteration over Strings is sorted, so dry runs and name listings are
// reproducible across runs.
type Set struct {
	members map[string]struct{}
	sorted  []string
}

// NewSet builds a Set from raw collected lines, dropping entries that can
// never match a test source line: empty lines, a bare marker with no body,
// build-script comments, and lint-suppression idioms.
func NewSet(raw []string) *Set {
	members := make(map[string]struct{}, len(raw))
	for _, line := range raw {
		if !matchable(line) {
			continue
		}
		members[line] = struct{}{}
	}

	sorted := make([]string, 0, len(members))
	for m := range members {
		sorted = append(sorted, m)
	}
	sort.Strings(sorted)

	return &Set{members: members, sorted: sorted}
}

// Contains reports whether s is a known directive string.
func (s *Set) Contains(line string) bool {
	_, ok := s.members[line]
	return ok
}

// Len returns the number of directive strings in the set.
func (s *Set) Len() int {
	return len(s.members)
}

// Strings returns the directive strings in sorted order. The returned slice
// is shared; callers must not modify it.
func (s *Set) Strings() []string {
	return s.sorted
}

// matchable applies the filter rules from collection: an entry survives only
// if some comment line in a test source could ever equal it.
func matchable(line string) bool {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return false
	}
	if strings.HasPrefix(trimmed, scriptMarker) {
		return false
	}

	body := trimmed
	if strings.HasPrefix(trimmed, Marker) {
		body = strings.TrimSpace(strings.TrimPrefix(trimmed, Marker))
		if body == "" {
			// a bare marker is a comment, never a directive
			return false
		}
	}
	if strings.HasPrefix(body, nonPortablePrefix) {
		return false
	}

	return true
}
