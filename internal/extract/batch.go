// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/pdiddy/health-report/pkg/types"
)

const (
	defaultWorkers     = 4
	defaultIndexStride = 1000
)

// BatchInput is one document of a batch with its selectors. Nil selectors
// use the extractor defaults.
type BatchInput struct {
	Document  *types.SourceDocument
	Selectors []types.Selector
}

// BatchOptions controls parallel extraction.
type BatchOptions struct {
	// Workers bounds concurrent documents (default 4).
	Workers int

	// IndexStride is the ordinal range reserved per document (default 1000).
	// Document i starts at Offset + i*IndexStride.
	IndexStride int

	// Offset is the first ordinal index of the batch.
	Offset int
}

// ExtractBatch extracts documents in parallel. Each document gets its own
// pre-allocated index range so ordering across documents matches input
// order. Results are returned in input order.
//
// A document that fails validation, extraction, or produces more items than
// the stride gets a result with Error set and no items; the other documents
// are still extracted. The returned error is non-nil only when ctx ends.
func (e *Engine) ExtractBatch(ctx context.Context, inputs []BatchInput, opts BatchOptions) ([]types.ExtractionResult, error) {
	workers := opts.Workers
	if workers <= 0 {
		workers = defaultWorkers
	}
	stride := opts.IndexStride
	if stride <= 0 {
		stride = defaultIndexStride
	}

	results := make([]types.ExtractionResult, len(inputs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i, in := range inputs {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			offset := opts.Offset + i*stride
			results[i] = e.extractDocument(gctx, in, offset, stride)
			return gctx.Err()
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	failed := 0
	for i, r := range results {
		if r.Error == "" {
			continue
		}
		failed++
		e.log.Warn("document failed",
			zap.Int("document", i),
			zap.String("source_file", string(r.SourceFile)),
			zap.String("error", r.Error))
	}
	e.log.Info("batch extracted",
		zap.Int("documents", len(inputs)),
		zap.Int("failed", failed),
		zap.Int("workers", workers),
		zap.Int("index_stride", stride))
	return results, nil
}

// extractDocument extracts a single batch document into a result, recording any
// failure in the result instead of returning it.
func (e *Engine) extractDocument(ctx context.Context, in BatchInput, offset, stride int) types.ExtractionResult {
	var r types.ExtractionResult
	if in.Document != nil {
		r.SourceFile = in.Document.SourceFileType
	}
	items, err := e.Extract(ctx, in.Document, in.Selectors, offset)
	switch {
	case err != nil:
		r.Error = err.Error()
	case len(items) > stride:
		r.Error = fmt.Sprintf("%d items exceed index stride %d", len(items), stride)
	default:
		r.Items = items
	}
	return r
}
