// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package extract turns analysis documents into scored, routed content
// items. For each selector it locates fragments, extracts a title and body,
// resolves the business dimension, scores confidence, collects data
// markers, and attaches the deliverables and sections that should receive
// the item.
//
// The engine holds no per-document state and is safe for concurrent use.
// Within one document items are produced sequentially so ordinal indexes
// stay contiguous from the caller's offset.
package extract

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/pdiddy/health-report/internal/logging"
	"github.com/pdiddy/health-report/internal/markup"
	"github.com/pdiddy/health-report/internal/registry"
	"github.com/pdiddy/health-report/pkg/types"
)

// ErrInvalidInput reports a caller contract violation such as a missing
// document. No items are produced for the document.
var ErrInvalidInput = errors.New("invalid input")

// Family groups source documents that share extraction rules.
type Family string

const (
	// FamilyDeepDive documents report on a single chapter.
	FamilyDeepDive Family = "deep-dive"

	// FamilySummary documents span every chapter.
	FamilySummary Family = "summary"
)

// Extractor extracts content items from one family of documents. Use
// Engine.For to pick the implementation for a source file type.
type Extractor interface {
	// Family identifies the document family the extractor serves.
	Family() Family

	// DefaultSelectors returns the selectors used when the caller supplies none.
	DefaultSelectors() []types.Selector

	// Extract runs every selector over doc in order. Ordinal indexes start
	// at offset and increase by one per item.
	Extract(ctx context.Context, doc *types.SourceDocument, selectors []types.Selector, offset int) ([]types.ContentItem, error)
}

// Engine holds the immutable configuration shared by every extraction.
type Engine struct {
	tables        *registry.Tables
	registry      registry.Registry
	log           *zap.Logger
	lookupTimeout time.Duration
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the engine logger.
func WithLogger(l *zap.Logger) Option {
	return func(e *Engine) { e.log = logging.OrNop(l) }
}

// WithLookupTimeout bounds each registry lookup. Zero disables the bound.
func WithLookupTimeout(d time.Duration) Option {
	return func(e *Engine) { e.lookupTimeout = d }
}

// NewEngine builds an Engine. Nil tables use the built-in vocabulary and a
// nil registry routes every item through the fallback rules.
func NewEngine(tables *registry.Tables, reg registry.Registry, opts ...Option) *Engine {
	if tables == nil {
		tables = registry.DefaultTables()
	}
	if reg == nil {
		reg = registry.Static{}
	}
	e := &Engine{
		tables:   tables,
		registry: reg,
		log:      zap.NewNop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// For returns the extractor for a source file type: documents whose type
// maps to a chapter are deep dives, everything else is a summary.
func (e *Engine) For(src types.SourceFileType) Extractor {
	if chapter, ok := e.tables.Chapter(src); ok {
		return &deepDiveExtractor{engine: e, chapter: chapter}
	}
	return &summaryExtractor{engine: e}
}

// Extract validates doc and runs the extractor chosen by its source type.
func (e *Engine) Extract(ctx context.Context, doc *types.SourceDocument, selectors []types.Selector, offset int) ([]types.ContentItem, error) {
	if err := validate(doc, offset); err != nil {
		return nil, err
	}
	return e.For(doc.SourceFileType).Extract(ctx, doc, selectors, offset)
}

func validate(doc *types.SourceDocument, offset int) error {
	if doc == nil {
		return fmt.Errorf("%w: missing source document", ErrInvalidInput)
	}
	if doc.SourceFileType == "" {
		return fmt.Errorf("%w: source document has no source file type", ErrInvalidInput)
	}
	if offset < 0 {
		return fmt.Errorf("%w: negative ordinal offset %d", ErrInvalidInput, offset)
	}
	return nil
}

// scope is the part of extraction that differs between families.
type scope struct {
	// chapter is the document's chapter, empty for summary documents.
	chapter string

	// candidates are the dimension codes tried by keyword inference, in order.
	candidates []string
}

type deepDiveExtractor struct {
	engine  *Engine
	chapter string
}

func (x *deepDiveExtractor) Family() Family { return FamilyDeepDive }

func (x *deepDiveExtractor) DefaultSelectors() []types.Selector {
	return deepDiveSelectors(x.engine.tables.Dimensions(x.chapter))
}

func (x *deepDiveExtractor) Extract(ctx context.Context, doc *types.SourceDocument, selectors []types.Selector, offset int) ([]types.ContentItem, error) {
	if err := validate(doc, offset); err != nil {
		return nil, err
	}
	if len(selectors) == 0 {
		selectors = x.DefaultSelectors()
	}
	sc := scope{chapter: x.chapter, candidates: x.engine.tables.Dimensions(x.chapter)}
	return x.engine.run(ctx, doc, selectors, offset, sc), nil
}

type summaryExtractor struct {
	engine *Engine
}

func (x *summaryExtractor) Family() Family { return FamilySummary }

func (x *summaryExtractor) DefaultSelectors() []types.Selector {
	return summarySelectors()
}

func (x *summaryExtractor) Extract(ctx context.Context, doc *types.SourceDocument, selectors []types.Selector, offset int) ([]types.ContentItem, error) {
	if err := validate(doc, offset); err != nil {
		return nil, err
	}
	if len(selectors) == 0 {
		selectors = x.DefaultSelectors()
	}
	sc := scope{candidates: x.engine.tables.AllDimensions()}
	return x.engine.run(ctx, doc, selectors, offset, sc), nil
}

// run extracts every selector in order. Per-fragment problems never abort
// the run: misses yield no items and unresolved lookups fall back.
func (e *Engine) run(ctx context.Context, doc *types.SourceDocument, selectors []types.Selector, offset int, sc scope) []types.ContentItem {
	log := e.log.With(zap.String("source_file", string(doc.SourceFileType)))
	rt := e.resolveRoute(ctx, doc.SourceFileType, log)

	var items []types.ContentItem
	next := offset
	for _, sel := range selectors {
		frags := markup.Locate(doc.Markup, sel.Pattern)
		if len(frags) == 0 {
			log.Debug("selector matched nothing",
				zap.String("pattern", sel.Pattern),
				zap.String("content_type", sel.ContentType))
			continue
		}
		for _, f := range frags {
			items = append(items, e.assemble(doc, sel, f, next, sc, rt, log))
			next++
		}
	}

	log.Debug("extraction finished",
		zap.Int("selectors", len(selectors)),
		zap.Int("items", len(items)),
		zap.Int("offset", offset))
	return items
}

// assemble builds the content item for one fragment.
func (e *Engine) assemble(doc *types.SourceDocument, sel types.Selector, f markup.Fragment, index int, sc scope, rt route, log *zap.Logger) types.ContentItem {
	fields := markup.ExtractFields(f, sel.TitlePattern, sel.BodyPattern)
	dim, via := e.classify(f, sc.candidates)

	viz := markup.DataMarkers(f)
	delete(viz, types.VizDimensionCode)
	delete(viz, types.VizChapterCode)

	impact := []string{}
	chapter := sc.chapter
	if dim != "" {
		viz[types.VizDimensionCode] = dim
		if name, ok := e.tables.DisplayName(dim); ok {
			impact = append(impact, name)
		}
		if chapter == "" {
			chapter, _ = e.tables.ChapterOf(dim)
		}
	} else {
		log.Debug("dimension unresolved", zap.String("pattern", f.Pattern), zap.Int("ordinal_index", index))
	}
	if chapter != "" {
		viz[types.VizChapterCode] = chapter
	}

	item := types.ContentItem{
		SourceFile:         doc.SourceFileType,
		ContentType:        sel.ContentType,
		OrdinalIndex:       index,
		Title:              fields.Title,
		Body:               fields.Body,
		SelectorUsed:       f.Pattern,
		ConfidenceScore:    Confidence(fields.Title, fields.Body, markup.HasDimensionMarker(f)),
		ImpactAreas:        impact,
		VisualizationData:  viz,
		TargetDeliverables: append([]string(nil), rt.deliverables...),
		TargetSections:     make(map[string]string, len(rt.sections)),
	}
	for k, v := range rt.sections {
		item.TargetSections[k] = v
	}

	log.Debug("item assembled",
		zap.Int("ordinal_index", index),
		zap.String("dimension", dim),
		zap.String("resolved_by", string(via)),
		zap.Float64("confidence", item.ConfidenceScore))
	return item
}
