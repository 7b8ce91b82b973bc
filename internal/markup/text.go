// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package markup

import (
	"strings"

	"golang.org/x/net/html"
)

// skippedElements contribute no text.
var skippedElements = map[string]bool{
	"script":   true,
	"style":    true,
	"template": true,
}

// blockElements separate the text on either side of them. Inline elements
// do not, so "Pro<b>cess</b>" reads as one word.
var blockElements = map[string]bool{
	"address": true, "article": true, "aside": true, "blockquote": true,
	"br": true, "dd": true, "div": true, "dl": true, "dt": true,
	"figcaption": true, "figure": true, "footer": true, "header": true,
	"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
	"hr": true, "li": true, "main": true, "nav": true, "ol": true, "p": true,
	"pre": true, "section": true, "table": true, "tbody": true, "td": true,
	"tfoot": true, "th": true, "thead": true, "tr": true, "ul": true,
}

// Text returns the textual content of markup with all tags removed.
// Entities are decoded by the tokenizer and runs of whitespace collapse to
// a single space. Block-level tags separate words; inline tags do not.
func Text(markup string) string {
	z := html.NewTokenizer(strings.NewReader(markup))
	var (
		b    strings.Builder
		skip int
	)
	for {
		tt := z.Next()
		switch tt {
		case html.ErrorToken:
			return strings.Join(strings.Fields(b.String()), " ")
		case html.StartTagToken, html.SelfClosingTagToken:
			name, _ := z.TagName()
			tag := string(name)
			if skippedElements[tag] && tt == html.StartTagToken {
				skip++
			}
			if blockElements[tag] {
				b.WriteByte(' ')
			}
		case html.EndTagToken:
			name, _ := z.TagName()
			tag := string(name)
			if skippedElements[tag] && skip > 0 {
				skip--
			}
			if blockElements[tag] {
				b.WriteByte(' ')
			}
		case html.TextToken:
			if skip == 0 {
				b.Write(z.Text())
			}
		}
	}
}

// FirstHeading returns the first h1-h6 element in markup, in document order.
func FirstHeading(markup string) (Fragment, bool) {
	frags := scan(markup, "heading", func(tag string, _ []html.Attribute) bool {
		return isHeading(tag)
	})
	if len(frags) == 0 {
		return Fragment{}, false
	}
	return frags[0], true
}

func isHeading(tag string) bool {
	return len(tag) == 2 && tag[0] == 'h' && tag[1] >= '1' && tag[1] <= '6'
}
