// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package markup

import (
	"strconv"
	"strings"

	"golang.org/x/net/html"
)

const dataPrefix = "data-"

// scoreMarker is converted to an int by DataMarkers.
const scoreMarker = "score"

// DimensionAttrs are the attribute names that mark a dimension explicitly.
var DimensionAttrs = []string{"data-dimension", "dimension"}

// IsDimensionAttr reports whether key is one of DimensionAttrs.
func IsDimensionAttr(key string) bool {
	for _, k := range DimensionAttrs {
		if k == key {
			return true
		}
	}
	return false
}

// DataMarkers collects every data-* attribute in f, keyed by the camel-cased
// marker name ("data-score-band" becomes "scoreBand"). The first occurrence
// of a name wins. The score marker is converted to an int; a score with no
// leading integer is dropped. All other values are kept as strings.
func DataMarkers(f Fragment) map[string]any {
	markers := make(map[string]any)
	WalkElements(f.Raw, func(_ string, attrs []html.Attribute) {
		for _, a := range attrs {
			if !strings.HasPrefix(a.Key, dataPrefix) || len(a.Key) == len(dataPrefix) {
				continue
			}
			name := CamelCase(a.Key[len(dataPrefix):])
			if name == "" {
				continue
			}
			if _, seen := markers[name]; !seen {
				markers[name] = a.Val
			}
		}
	})

	if raw, ok := markers[scoreMarker].(string); ok {
		if n, ok := LeadingInt(raw); ok {
			markers[scoreMarker] = n
		} else {
			delete(markers, scoreMarker)
		}
	}
	return markers
}

// HasDimensionMarker reports whether any element in f carries one of
// DimensionAttrs or a dimension-prefixed id.
func HasDimensionMarker(f Fragment) bool {
	found := false
	WalkElements(f.Raw, func(_ string, attrs []html.Attribute) {
		if found {
			return
		}
		for _, key := range DimensionAttrs {
			if _, ok := attrValue(attrs, key); ok {
				found = true
				return
			}
		}
		if id, ok := attrValue(attrs, "id"); ok && strings.HasPrefix(id, DimensionIDPrefix) {
			found = true
		}
	})
	return found
}

// CamelCase converts a hyphenated name to lower camel case.
func CamelCase(s string) string {
	var b strings.Builder
	for i, part := range strings.FieldsFunc(s, func(r rune) bool { return r == '-' }) {
		if i == 0 || b.Len() == 0 {
			b.WriteString(part)
			continue
		}
		b.WriteString(strings.ToUpper(part[:1]))
		b.WriteString(part[1:])
	}
	return b.String()
}

// LeadingInt parses the optionally signed run of digits at the start of s.
// "72", "72.5" and "72%" all yield 72; "abc" and "" yield false.
func LeadingInt(s string) (int, bool) {
	s = strings.TrimSpace(s)
	end := 0
	if end < len(s) && (s[end] == '-' || s[end] == '+') {
		end++
	}
	digits := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digits {
		return 0, false
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0, false
	}
	return n, true
}
