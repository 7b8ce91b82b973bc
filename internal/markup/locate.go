// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package markup

import (
	"strings"

	"golang.org/x/net/html"
)

// Fragment is a located sub-block of a document: the opening tag of a
// matching element through its matching close tag.
type Fragment struct {
	// Pattern is the alternative that produced the fragment.
	Pattern string

	// Tag is the lower-cased name of the root element.
	Tag string

	// Attrs holds the root element's attributes in source order.
	Attrs []html.Attribute

	// Start and End are byte offsets of Raw within the scanned document.
	Start, End int

	// Raw is the unmodified markup of the fragment.
	Raw string
}

// Attr returns the value of a root attribute.
func (f Fragment) Attr(key string) (string, bool) {
	return attrValue(f.Attrs, key)
}

// voidElements never have a close tag.
var voidElements = map[string]bool{
	"area": true, "base": true, "br": true, "col": true, "embed": true,
	"hr": true, "img": true, "input": true, "link": true, "meta": true,
	"param": true, "source": true, "track": true, "wbr": true,
}

// Locate returns the fragments of doc matching pattern. Alternatives are
// tried in order and their matches concatenated, each in document order.
// Fragments matched by more than one alternative appear once per
// alternative. A pattern that matches nothing yields nil.
func Locate(doc, pattern string) []Fragment {
	var out []Fragment
	for _, alt := range SplitAlternatives(pattern) {
		p, ok := ParsePattern(alt)
		if !ok {
			continue
		}
		out = append(out, LocatePattern(doc, p)...)
	}
	return out
}

// LocatePattern returns the fragments of doc matching one parsed pattern.
// Identifier patterns try the dimension-prefixed id first and fall back to
// the bare id.
func LocatePattern(doc string, p Pattern) []Fragment {
	if p.Kind == KindIdentifier {
		for _, id := range p.IDCandidates() {
			frags := scan(doc, p.Raw, func(tag string, attrs []html.Attribute) bool {
				return p.matches(tag, attrs, id)
			})
			if len(frags) > 0 {
				return frags
			}
		}
		return nil
	}
	return scan(doc, p.Raw, func(tag string, attrs []html.Attribute) bool {
		return p.matches(tag, attrs, "")
	})
}

// capture is an element whose close tag has not been seen yet.
type capture struct {
	idx   int
	tag   string
	depth int
}

// scan tokenizes doc once and captures every element accepted by match.
// Open/close depth is tracked per captured tag name so nested elements
// sharing the root's name do not end the capture early. Captures still
// open at the end of input run to the end of the document.
func scan(doc, label string, match func(tag string, attrs []html.Attribute) bool) []Fragment {
	z := html.NewTokenizer(strings.NewReader(doc))
	var (
		frags  []Fragment
		active []*capture
		pos    int
	)

	for {
		tt := z.Next()
		if tt == html.ErrorToken {
			break
		}
		start := pos
		pos += len(z.Raw())

		switch tt {
		case html.StartTagToken, html.SelfClosingTagToken:
			name, attrs := tagToken(z)
			void := tt == html.SelfClosingTagToken || voidElements[name]
			if !void {
				for _, c := range active {
					if c.tag == name {
						c.depth++
					}
				}
			}
			if !match(name, attrs) {
				continue
			}
			frags = append(frags, Fragment{Pattern: label, Tag: name, Attrs: attrs, Start: start})
			if void {
				frags[len(frags)-1].End = pos
				frags[len(frags)-1].Raw = doc[start:pos]
				continue
			}
			active = append(active, &capture{idx: len(frags) - 1, tag: name, depth: 1})

		case html.EndTagToken:
			nameBytes, _ := z.TagName()
			name := string(nameBytes)
			for i := len(active) - 1; i >= 0; i-- {
				c := active[i]
				if c.tag != name {
					continue
				}
				c.depth--
				if c.depth == 0 {
					f := &frags[c.idx]
					f.End = pos
					f.Raw = doc[f.Start:pos]
					active = append(active[:i], active[i+1:]...)
				}
			}
		}
	}

	for _, c := range active {
		f := &frags[c.idx]
		f.End = len(doc)
		f.Raw = doc[f.Start:]
	}
	return frags
}

// tagToken reads the name and attributes of the current start tag.
func tagToken(z *html.Tokenizer) (string, []html.Attribute) {
	nameBytes, more := z.TagName()
	name := string(nameBytes)
	var attrs []html.Attribute
	for more {
		var key, val []byte
		key, val, more = z.TagAttr()
		attrs = append(attrs, html.Attribute{Key: string(key), Val: string(val)})
	}
	return name, attrs
}

// WalkElements calls fn for every start tag in markup, in document order.
func WalkElements(markup string, fn func(tag string, attrs []html.Attribute)) {
	z := html.NewTokenizer(strings.NewReader(markup))
	for {
		switch z.Next() {
		case html.ErrorToken:
			return
		case html.StartTagToken, html.SelfClosingTagToken:
			fn(tagToken(z))
		}
	}
}
