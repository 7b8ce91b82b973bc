// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package registry holds the static chapter/dimension tables and the content
// registry that map source documents and dimensions to report deliverables.
// Both are immutable once built and safe for concurrent use.
package registry

import (
	"fmt"
	"os"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/health-report/pkg/types"
)

// DimensionSpec describes one business dimension in a tables file.
type DimensionSpec struct {
	// Code is the short dimension code (e.g. "FIN").
	Code string `json:"code" yaml:"code"`

	// Name is the display name used in reports and for keyword inference.
	Name string `json:"name" yaml:"name"`

	// Manager is the manager-report deliverable that owns the dimension.
	Manager string `json:"manager" yaml:"manager"`
}

// ChapterSpec groups dimensions into one deep-dive report family.
type ChapterSpec struct {
	Code       string          `json:"code" yaml:"code"`
	Name       string          `json:"name" yaml:"name"`
	Dimensions []DimensionSpec `json:"dimensions" yaml:"dimensions"`
}

// TablesSpec is the serialized form of Tables.
type TablesSpec struct {
	Chapters []ChapterSpec `json:"chapters" yaml:"chapters"`

	// Sources maps a source file type to the chapter it reports on.
	Sources map[types.SourceFileType]string `json:"sources" yaml:"sources"`
}

// Tables answers the chapter and dimension lookups the extraction engine
// depends on. Iteration orders follow the order of the spec it was built
// from.
type Tables struct {
	chapters   []ChapterSpec
	chapterIdx map[string]int
	dims       map[string]DimensionSpec
	dimChapter map[string]string
	sources    map[types.SourceFileType]string
}

// NewTables validates spec and builds lookup tables from it. Codes are
// normalized to upper case.
func NewTables(spec TablesSpec) (*Tables, error) {
	t := &Tables{
		chapterIdx: make(map[string]int),
		dims:       make(map[string]DimensionSpec),
		dimChapter: make(map[string]string),
		sources:    make(map[types.SourceFileType]string),
	}

	for _, ch := range spec.Chapters {
		code := normalizeCode(ch.Code)
		if code == "" {
			return nil, fmt.Errorf("chapter %q: empty code", ch.Name)
		}
		if _, dup := t.chapterIdx[code]; dup {
			return nil, fmt.Errorf("chapter %s: duplicate code", code)
		}
		built := ChapterSpec{Code: code, Name: ch.Name}
		for _, d := range ch.Dimensions {
			dc := normalizeCode(d.Code)
			if dc == "" {
				return nil, fmt.Errorf("chapter %s: dimension %q has empty code", code, d.Name)
			}
			if strings.TrimSpace(d.Name) == "" {
				return nil, fmt.Errorf("dimension %s: empty display name", dc)
			}
			if strings.TrimSpace(d.Manager) == "" {
				return nil, fmt.Errorf("dimension %s: empty manager deliverable", dc)
			}
			if owner, dup := t.dimChapter[dc]; dup {
				return nil, fmt.Errorf("dimension %s: already defined in chapter %s", dc, owner)
			}
			d.Code = dc
			t.dims[dc] = d
			t.dimChapter[dc] = code
			built.Dimensions = append(built.Dimensions, d)
		}
		t.chapterIdx[code] = len(t.chapters)
		t.chapters = append(t.chapters, built)
	}

	for src, ch := range spec.Sources {
		code := normalizeCode(ch)
		if _, ok := t.chapterIdx[code]; !ok {
			return nil, fmt.Errorf("source %s: unknown chapter %q", src, ch)
		}
		t.sources[src] = code
	}

	return t, nil
}

// LoadTables reads a YAML tables file.
func LoadTables(path string) (*Tables, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading tables %s: %w", path, err)
	}
	var spec TablesSpec
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return nil, fmt.Errorf("parsing tables %s: %w", path, err)
	}
	t, err := NewTables(spec)
	if err != nil {
		return nil, fmt.Errorf("tables %s: %w", path, err)
	}
	return t, nil
}

// Chapter returns the chapter a source file type reports on.
func (t *Tables) Chapter(src types.SourceFileType) (string, bool) {
	c, ok := t.sources[src]
	return c, ok
}

// Chapters returns every chapter code in table order.
func (t *Tables) Chapters() []string {
	out := make([]string, len(t.chapters))
	for i, ch := range t.chapters {
		out[i] = ch.Code
	}
	return out
}

// ChapterName returns the display name of a chapter.
func (t *Tables) ChapterName(chapter string) (string, bool) {
	i, ok := t.chapterIdx[normalizeCode(chapter)]
	if !ok {
		return "", false
	}
	return t.chapters[i].Name, true
}

// Dimensions returns the dimension codes of a chapter in table order.
func (t *Tables) Dimensions(chapter string) []string {
	i, ok := t.chapterIdx[normalizeCode(chapter)]
	if !ok {
		return nil
	}
	dims := t.chapters[i].Dimensions
	out := make([]string, len(dims))
	for j, d := range dims {
		out[j] = d.Code
	}
	return out
}

// AllDimensions returns every dimension code, chapter by chapter.
func (t *Tables) AllDimensions() []string {
	var out []string
	for _, ch := range t.chapters {
		for _, d := range ch.Dimensions {
			out = append(out, d.Code)
		}
	}
	return out
}

// Known reports whether code names a dimension. Case is ignored.
func (t *Tables) Known(code string) bool {
	_, ok := t.dims[normalizeCode(code)]
	return ok
}

// Manager returns the manager-report deliverable of a dimension.
func (t *Tables) Manager(dim string) (string, bool) {
	d, ok := t.dims[normalizeCode(dim)]
	return d.Manager, ok
}

// DisplayName returns the display name of a dimension.
func (t *Tables) DisplayName(dim string) (string, bool) {
	d, ok := t.dims[normalizeCode(dim)]
	return d.Name, ok
}

// ChapterOf returns the chapter a dimension belongs to.
func (t *Tables) ChapterOf(dim string) (string, bool) {
	c, ok := t.dimChapter[normalizeCode(dim)]
	return c, ok
}

// Spec returns a copy of the tables in serializable form.
func (t *Tables) Spec() TablesSpec {
	spec := TablesSpec{Sources: make(map[types.SourceFileType]string, len(t.sources))}
	for _, ch := range t.chapters {
		ch.Dimensions = append([]DimensionSpec(nil), ch.Dimensions...)
		spec.Chapters = append(spec.Chapters, ch)
	}
	for src, c := range t.sources {
		spec.Sources[src] = c
	}
	return spec
}

func normalizeCode(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}
