// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"strings"

	"github.com/pdiddy/health-report/internal/markup"
)

// resolution records how a dimension was resolved.
type resolution string

const (
	resolvedNone       resolution = ""
	resolvedAttribute  resolution = "attribute"
	resolvedIdentifier resolution = "identifier"
	resolvedInference  resolution = "inference"
)

// classify resolves the dimension of f. Explicit markers win over keyword
// inference: first a dimension attribute on the fragment or in the pattern
// that matched it, then a dimension-prefixed id on the fragment or in the
// pattern, then the first candidate whose display name appears in the
// fragment text. Explicit codes unknown to the tables are ignored.
func (e *Engine) classify(f markup.Fragment, candidates []string) (string, resolution) {
	p, parsed := markup.ParsePattern(f.Pattern)

	for _, key := range markup.DimensionAttrs {
		if v, ok := f.Attr(key); ok && e.tables.Known(v) {
			return normalize(v), resolvedAttribute
		}
	}
	if parsed && p.Kind == markup.KindAttribute && p.HasValue && markup.IsDimensionAttr(p.Key) && e.tables.Known(p.Value) {
		return normalize(p.Value), resolvedAttribute
	}

	if id, ok := f.Attr("id"); ok {
		if code, ok := strings.CutPrefix(id, markup.DimensionIDPrefix); ok && e.tables.Known(code) {
			return normalize(code), resolvedIdentifier
		}
	}
	if parsed && p.Kind == markup.KindIdentifier {
		if code, ok := strings.CutPrefix(p.ID, markup.DimensionIDPrefix); ok && e.tables.Known(code) {
			return normalize(code), resolvedIdentifier
		}
	}

	text := strings.ToLower(markup.Text(f.Raw))
	if text == "" {
		return "", resolvedNone
	}
	for _, code := range candidates {
		name, ok := e.tables.DisplayName(code)
		if !ok || name == "" {
			continue
		}
		if strings.Contains(text, strings.ToLower(name)) {
			return code, resolvedInference
		}
	}
	return "", resolvedNone
}

func normalize(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}
