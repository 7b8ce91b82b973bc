// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package markup locates fragments inside loosely structured report markup
// and pulls text, titles, bodies, and data markers out of them.
//
// Patterns are a small selector language: "[key=value]" (attribute),
// "#id" (identifier), ".class" (class) and bare tag names, each with an
// optional tag prefix. A pattern string may hold several comma-separated
// alternatives.
package markup

import (
	"strings"

	"golang.org/x/net/html"
)

// DimensionIDPrefix is the literal that identifier patterns try first.
const DimensionIDPrefix = "dimension-"

// Kind is the syntactic form of a pattern.
type Kind int

const (
	KindAttribute Kind = iota + 1
	KindIdentifier
	KindClass
	KindTag
)

func (k Kind) String() string {
	switch k {
	case KindAttribute:
		return "attribute"
	case KindIdentifier:
		return "identifier"
	case KindClass:
		return "class"
	case KindTag:
		return "tag"
	}
	return "unknown"
}

// Pattern is one parsed selector alternative.
type Pattern struct {
	// Raw is the alternative as written, trimmed.
	Raw  string
	Kind Kind

	// Tag restricts matches to one element name. Empty matches any element.
	Tag string

	// Key and Value hold the attribute clause of an attribute pattern.
	// HasValue is false for a bare "[key]" presence test.
	Key      string
	Value    string
	HasValue bool

	// ID is the identifier of an identifier pattern.
	ID string

	// Class is the class name of a class pattern.
	Class string
}

// SplitAlternatives splits a pattern string on commas, ignoring commas
// inside brackets or quotes, and drops empty alternatives.
func SplitAlternatives(s string) []string {
	var (
		out   []string
		cur   strings.Builder
		depth int
		quote rune
	)
	flush := func() {
		if alt := strings.TrimSpace(cur.String()); alt != "" {
			out = append(out, alt)
		}
		cur.Reset()
	}
	for _, r := range s {
		switch {
		case quote != 0:
			if r == quote {
				quote = 0
			}
		case r == '"' || r == '\'':
			quote = r
		case r == '[':
			depth++
		case r == ']':
			if depth > 0 {
				depth--
			}
		case r == ',' && depth == 0:
			flush()
			continue
		}
		cur.WriteRune(r)
	}
	flush()
	return out
}

// ParsePattern parses a single alternative. It reports false when the
// alternative is empty or names nothing matchable.
func ParsePattern(s string) (Pattern, bool) {
	raw := strings.TrimSpace(s)
	if raw == "" {
		return Pattern{}, false
	}
	p := Pattern{Raw: raw}

	head, clause := raw, ""
	if i := strings.IndexByte(raw, '['); i >= 0 {
		head, clause = raw[:i], raw[i+1:]
		clause = strings.TrimSuffix(strings.TrimSpace(clause), "]")
	}

	switch {
	case strings.Contains(head, "."):
		// Any attribute qualifier after a class is ignored.
		i := strings.IndexByte(head, '.')
		p.Kind = KindClass
		p.Tag = strings.ToLower(head[:i])
		if j := strings.IndexByte(p.Tag, '#'); j >= 0 {
			p.Tag = p.Tag[:j]
		}
		p.Class = head[i+1:]
		if j := strings.IndexAny(p.Class, ".#"); j >= 0 {
			p.Class = p.Class[:j]
		}
		if p.Class == "" {
			return Pattern{}, false
		}
	case strings.Contains(head, "#"):
		i := strings.IndexByte(head, '#')
		p.Kind = KindIdentifier
		p.Tag = strings.ToLower(head[:i])
		p.ID = head[i+1:]
		if p.ID == "" {
			return Pattern{}, false
		}
	case clause != "":
		p.Kind = KindAttribute
		p.Tag = strings.ToLower(strings.TrimSpace(head))
		if eq := strings.IndexByte(clause, '='); eq >= 0 {
			p.Key = strings.ToLower(strings.TrimSpace(clause[:eq]))
			p.Value = strings.Trim(strings.TrimSpace(clause[eq+1:]), `"'`)
			p.HasValue = true
		} else {
			p.Key = strings.ToLower(strings.TrimSpace(clause))
		}
		if p.Key == "" {
			return Pattern{}, false
		}
	default:
		p.Kind = KindTag
		p.Tag = strings.ToLower(head)
		if !validTagName(p.Tag) {
			return Pattern{}, false
		}
	}
	return p, true
}

// IDCandidates returns the identifiers an identifier pattern tries, in order.
func (p Pattern) IDCandidates() []string {
	if p.Kind != KindIdentifier {
		return nil
	}
	if strings.HasPrefix(p.ID, DimensionIDPrefix) {
		return []string{p.ID}
	}
	return []string{DimensionIDPrefix + p.ID, p.ID}
}

// matches reports whether an element satisfies the pattern. For identifier
// patterns the id to compare against is passed explicitly.
func (p Pattern) matches(tag string, attrs []html.Attribute, id string) bool {
	if p.Tag != "" && p.Tag != tag {
		return false
	}
	switch p.Kind {
	case KindAttribute:
		v, ok := attrValue(attrs, p.Key)
		if !ok {
			return false
		}
		switch {
		case !p.HasValue:
			return true
		case IsDimensionAttr(p.Key):
			return strings.EqualFold(strings.TrimSpace(v), strings.TrimSpace(p.Value))
		}
		return v == p.Value
	case KindIdentifier:
		v, ok := attrValue(attrs, "id")
		return ok && v == id
	case KindClass:
		v, _ := attrValue(attrs, "class")
		for _, c := range strings.Fields(v) {
			if c == p.Class {
				return true
			}
		}
		return false
	case KindTag:
		return true
	}
	return false
}

func attrValue(attrs []html.Attribute, key string) (string, bool) {
	for _, a := range attrs {
		if a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

func validTagName(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		switch {
		case r >= 'a' && r <= 'z':
		case i > 0 && (r >= '0' && r <= '9' || r == '-'):
		default:
			return false
		}
	}
	return true
}
