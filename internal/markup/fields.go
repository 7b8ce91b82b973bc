// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package markup

import "strings"

// Fields holds the title and body text extracted from a fragment.
type Fields struct {
	Title string
	Body  string
}

// ExtractFields pulls a title and body out of f.
//
// Each title alternative is tried in order and the first non-empty match
// wins; without one the first heading in the fragment is used, and without
// a heading the title is empty. Each body alternative is tried in order and
// the text of all its matches, one per line, is used when non-empty;
// otherwise the body is the text of the whole fragment.
func ExtractFields(f Fragment, titlePattern, bodyPattern string) Fields {
	return Fields{
		Title: extractTitle(f, titlePattern),
		Body:  extractBody(f, bodyPattern),
	}
}

func extractTitle(f Fragment, pattern string) string {
	for _, alt := range SplitAlternatives(pattern) {
		p, ok := ParsePattern(alt)
		if !ok {
			continue
		}
		for _, m := range LocatePattern(f.Raw, p) {
			if t := Text(m.Raw); t != "" {
				return t
			}
		}
	}
	if h, ok := FirstHeading(f.Raw); ok {
		return Text(h.Raw)
	}
	return ""
}

func extractBody(f Fragment, pattern string) string {
	for _, alt := range SplitAlternatives(pattern) {
		p, ok := ParsePattern(alt)
		if !ok {
			continue
		}
		var texts []string
		for _, m := range LocatePattern(f.Raw, p) {
			if t := Text(m.Raw); t != "" {
				texts = append(texts, t)
			}
		}
		if len(texts) > 0 {
			return strings.Join(texts, "\n")
		}
	}
	return Text(f.Raw)
}
