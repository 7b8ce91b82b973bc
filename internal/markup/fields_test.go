// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package markup

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fragmentOf(t *testing.T, doc, pattern string) Fragment {
	t.Helper()
	frags := Locate(doc, pattern)
	require.NotEmpty(t, frags, "pattern %q matched nothing", pattern)
	return frags[0]
}

func TestExtractFields(t *testing.T) {
	tests := []struct {
		name      string
		doc       string
		title     string
		body      string
		wantTitle string
		wantBody  string
	}{
		{
			name:      "first heading and whole text by default",
			doc:       `<div class="card"><h3>Process Gaps</h3><p>Manual handoffs.</p></div>`,
			wantTitle: "Process Gaps",
			wantBody:  "Process Gaps Manual handoffs.",
		},
		{
			name:      "class title pattern",
			doc:       `<div class="card"><h2>Heading</h2><span class="card-title">Real Title</span><p>Body.</p></div>`,
			title:     ".card-title",
			wantTitle: "Real Title",
			wantBody:  "Heading Real Title Body.",
		},
		{
			name:      "title alternatives fall through to the first non-empty match",
			doc:       `<div class="card"><span class="card-title"> </span><h4>Fallback</h4></div>`,
			title:     ".card-title, h4",
			wantTitle: "Fallback",
			wantBody:  "Fallback",
		},
		{
			name:      "missing title pattern uses first heading",
			doc:       `<div class="card"><h5>Only Heading</h5><p>x</p></div>`,
			title:     ".absent",
			wantTitle: "Only Heading",
			wantBody:  "Only Heading x",
		},
		{
			name:      "no heading gives empty title",
			doc:       `<div class="card"><p>just text</p></div>`,
			wantTitle: "",
			wantBody:  "just text",
		},
		{
			name:      "body pattern joins all matches",
			doc:       `<div class="card"><h3>T</h3><p>First.</p><p>Second.</p></div>`,
			body:      "p",
			wantTitle: "T",
			wantBody:  "First.\nSecond.",
		},
		{
			name:      "body alternatives try in order",
			doc:       `<div class="card"><h3>T</h3><div class="summary">Summary text</div></div>`,
			body:      ".detail, .summary",
			wantTitle: "T",
			wantBody:  "Summary text",
		},
		{
			name:      "body pattern miss falls back to whole text",
			doc:       `<div class="card"><h3>T</h3><p>x</p></div>`,
			body:      ".detail",
			wantTitle: "T",
			wantBody:  "T x",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := fragmentOf(t, tt.doc, ".card")
			got := ExtractFields(f, tt.title, tt.body)
			assert.Equal(t, tt.wantTitle, got.Title)
			assert.Equal(t, tt.wantBody, got.Body)
		})
	}
}
