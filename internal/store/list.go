// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"math"
	"strings"

	"github.com/pdiddy/health-report/pkg/types"
)

// QueryOptions holds filters for listing stored items. Empty fields do
// not filter.
type QueryOptions struct {
	// RunID restricts results to one run.
	RunID string

	// Deliverable keeps items routed to this deliverable.
	Deliverable string

	// Source keeps items from this source file type.
	Source types.SourceFileType

	// DimensionCode keeps items resolved to this dimension.
	DimensionCode string

	// ContentType keeps items of this content type.
	ContentType string

	// MinConfidence keeps items scoring at least this much.
	MinConfidence float64

	// Query is a case-insensitive substring matched against title and body.
	Query string

	// MaxResults limits result count. Zero uses the store default.
	MaxResults int
}

// StoredItem is a content item with the run it was ingested in.
type StoredItem struct {
	RunID             string `json:"run_id" yaml:"run_id"`
	types.ContentItem `yaml:",inline"`
}

// List returns stored items matching opts in ingestion order.
func (s *Store) List(ctx context.Context, opts QueryOptions) ([]StoredItem, error) {
	maxResults := opts.MaxResults
	if maxResults <= 0 {
		maxResults = s.maxResults
	}

	var (
		qb   strings.Builder
		args []any
	)
	qb.WriteString(
		`SELECT i.run_id, i.source_file, i.content_type, i.ordinal_index, i.title, i.body,
			i.selector_used, i.confidence, i.impact_areas, i.visualization_data,
			i.target_deliverables, i.target_sections
		FROM items i
		WHERE 1=1`)

	if opts.RunID != "" {
		qb.WriteString(` AND i.run_id = ?`)
		args = append(args, opts.RunID)
	}
	if opts.Deliverable != "" {
		qb.WriteString(` AND EXISTS (SELECT 1 FROM item_targets t WHERE t.item_rowid = i.rowid AND t.deliverable = ?)`)
		args = append(args, opts.Deliverable)
	}
	if opts.Source != "" {
		qb.WriteString(` AND i.source_file = ?`)
		args = append(args, string(opts.Source))
	}
	if opts.DimensionCode != "" {
		qb.WriteString(` AND i.dimension_code = ?`)
		args = append(args, strings.ToUpper(opts.DimensionCode))
	}
	if opts.ContentType != "" {
		qb.WriteString(` AND i.content_type = ?`)
		args = append(args, opts.ContentType)
	}
	if opts.MinConfidence > 0 {
		qb.WriteString(` AND i.confidence >= ?`)
		args = append(args, opts.MinConfidence)
	}
	if opts.Query != "" {
		qb.WriteString(` AND (i.title LIKE ? ESCAPE '\' OR i.body LIKE ? ESCAPE '\')`)
		pattern := "%" + escapeLike(opts.Query) + "%"
		args = append(args, pattern, pattern)
	}

	qb.WriteString(` ORDER BY i.rowid LIMIT ?`)
	args = append(args, maxResults)

	rows, err := s.db.QueryContext(ctx, qb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("querying items: %w", err)
	}
	defer rows.Close()

	var results []StoredItem
	for rows.Next() {
		var (
			it                                     StoredItem
			source                                 string
			title, body, selector                  sql.NullString
			impact, viz, deliverables, sectionsRaw sql.NullString
		)
		if err := rows.Scan(
			&it.RunID, &source, &it.ContentType, &it.OrdinalIndex, &title, &body,
			&selector, &it.ConfidenceScore, &impact, &viz,
			&deliverables, &sectionsRaw,
		); err != nil {
			return nil, fmt.Errorf("scanning row: %w", err)
		}

		it.SourceFile = types.SourceFileType(source)
		it.Title = title.String
		it.Body = body.String
		it.SelectorUsed = selector.String

		if err := decodeColumn(impact, &it.ImpactAreas); err != nil {
			return nil, err
		}
		if err := decodeColumn(viz, &it.VisualizationData); err != nil {
			return nil, err
		}
		if err := decodeColumn(deliverables, &it.TargetDeliverables); err != nil {
			return nil, err
		}
		if err := decodeColumn(sectionsRaw, &it.TargetSections); err != nil {
			return nil, err
		}
		normalizeScore(it.VisualizationData)

		results = append(results, it)
	}
	return results, rows.Err()
}

func decodeColumn(col sql.NullString, v any) error {
	if !col.Valid || col.String == "" {
		return nil
	}
	if err := json.Unmarshal([]byte(col.String), v); err != nil {
		return fmt.Errorf("decoding stored column: %w", err)
	}
	return nil
}

// normalizeScore restores the integer score marker that JSON decoding
// turns into a float.
func normalizeScore(viz map[string]any) {
	if f, ok := viz[types.VizScore].(float64); ok && f == math.Trunc(f) {
		viz[types.VizScore] = int(f)
	}
}

func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}
