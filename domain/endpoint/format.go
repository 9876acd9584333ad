package endpoint

import (
	"regexp"
	"strings"

	"github.com/mockgate/mockgate/domain/fault"
)

// Format converts a user-entered path template into its normalized display
// form and the derived matching expression.
//
// The normalized path begins with exactly one leading "/" and carries no
// trailing slash. In the matching expression each `{name}` placeholder
// becomes a named capture group matching a single path segment, literal
// segments are quoted, and the whole expression is anchored, so a path
// with a different segment count never matches.
func Format(raw string) (normalized, regex string, err error) {
	path := strings.TrimSpace(raw)
	path = strings.TrimLeft(path, "/")
	path = strings.TrimRight(path, "/")
	if path == "" {
		return "", "", fault.NotAllowed("Please enter a valid endpoint")
	}

	placeholder := regexp.MustCompile(`^\{[a-zA-Z_][a-zA-Z0-9_]*\}$`)
	segments := strings.Split(path, "/")
	parts := make([]string, len(segments))
	for i, seg := range segments {
		switch {
		case placeholder.MatchString(seg):
			name := seg[1 : len(seg)-1]
			parts[i] = `(?P<` + name + `>[^/]+)`
		case strings.ContainsAny(seg, "{}"):
			return "", "", fault.NotAllowed("Invalid url param syntax in segment '%s'", seg)
		default:
			parts[i] = regexp.QuoteMeta(seg)
		}
	}

	return "/" + path, "^/" + strings.Join(parts, "/") + "$", nil
}

// URLParams extracts the placeholder names from a path template in
// template order, duplicates collapsed. The result is never nil so it
// serializes as an empty list rather than null.
func URLParams(template string) []string {
	paramPattern := regexp.MustCompile(`\{([^}]+)\}`)
	matches := paramPattern.FindAllStringSubmatch(template, -1)

	params := make([]string, 0, len(matches))
	seen := make(map[string]bool, len(matches))
	for _, m := range matches {
		if seen[m[1]] {
			continue
		}
		seen[m[1]] = true
		params = append(params, m[1])
	}
	return params
}
