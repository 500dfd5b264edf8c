package directive

import (
	"sort"
	"strings"

	"gitlab.com/tozd/go/errors"
)

// Names derives the bare directive names from a Set: revision brackets,
// values, and trailing free text stripped. The result is sorted and unique.
//
// This is an introspection/export path; classification never parses
// directives structurally.
func Names(set *Set) ([]string, error) {
	seen := make(map[string]struct{}, set.Len())
	for _, d := range set.Strings() {
		name, err := nameOf(d)
		if err != nil {
			return nil, err
		}
		seen[name] = struct{}{}
	}

	names := make([]string, 0, len(seen))
	for n := range seen {
		names = append(names, n)
	}
	sort.Strings(names)
	return names, nil
}

// nameOf extracts the bare name from one directive string. Set members are
// guaranteed marker-leading, so a missing marker is a contract violation.
func nameOf(directive string) (string, error) {
	idx := strings.Index(directive, Marker)
	if idx < 0 {
		return "", errors.Errorf("%w: no comment marker in %q", ErrMalformedDirective, directive)
	}
	rest := strings.TrimSpace(directive[idx+len(Marker):])

	if strings.HasPrefix(rest, "[") {
		end := strings.Index(rest, "]")
		if end < 0 {
			return "", errors.Errorf("%w: unbalanced revision bracket in %q", ErrMalformedDirective, directive)
		}
		rest = strings.TrimSpace(rest[end+1:])
	}

	// a stray leading colon after the revision bracket is a known malformed
	// idiom in the corpus; tolerate it
	rest = strings.TrimSpace(strings.TrimPrefix(rest, ":"))

	if cut := strings.IndexAny(rest, ": "); cut >= 0 {
		return rest[:cut], nil
	}
	if strings.ContainsAny(rest, " \t") {
		return "", errors.Errorf("%w: ambiguous directive name in %q", ErrMalformedDirective, directive)
	}
	return rest, nil
}
