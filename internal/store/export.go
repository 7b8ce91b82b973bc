// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"go.yaml.in/yaml/v3"
)

const exportLimit = 100000

// DeliverableExport groups the items routed to one deliverable.
type DeliverableExport struct {
	Deliverable string       `json:"deliverable" yaml:"deliverable"`
	Items       []StoredItem `json:"items" yaml:"items"`
}

// ExportYAML writes items matching opts to <dir>/export.yaml and returns
// the path written.
func (s *Store) ExportYAML(ctx context.Context, opts QueryOptions) (string, error) {
	items, err := s.exportItems(ctx, opts)
	if err != nil {
		return "", err
	}

	path := filepath.Join(s.dir, "export.yaml")
	data, err := yaml.Marshal(items)
	if err != nil {
		return "", fmt.Errorf("marshaling YAML: %w", err)
	}
	return path, os.WriteFile(path, data, 0o644)
}

// ExportJSON writes items matching opts to <dir>/export.json and returns
// the path written.
func (s *Store) ExportJSON(ctx context.Context, opts QueryOptions) (string, error) {
	items, err := s.exportItems(ctx, opts)
	if err != nil {
		return "", err
	}

	path := filepath.Join(s.dir, "export.json")
	data, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshaling JSON: %w", err)
	}
	return path, os.WriteFile(path, data, 0o644)
}

// ByDeliverable groups items matching opts by target deliverable, in order
// of first appearance. An item routed to several deliverables appears in
// each group.
func (s *Store) ByDeliverable(ctx context.Context, opts QueryOptions) ([]DeliverableExport, error) {
	items, err := s.exportItems(ctx, opts)
	if err != nil {
		return nil, err
	}

	var groups []DeliverableExport
	index := make(map[string]int)
	for _, it := range items {
		for _, d := range it.TargetDeliverables {
			if opts.Deliverable != "" && d != opts.Deliverable {
				continue
			}
			i, ok := index[d]
			if !ok {
				i = len(groups)
				index[d] = i
				groups = append(groups, DeliverableExport{Deliverable: d})
			}
			groups[i].Items = append(groups[i].Items, it)
		}
	}
	return groups, nil
}

func (s *Store) exportItems(ctx context.Context, opts QueryOptions) ([]StoredItem, error) {
	opts.MaxResults = exportLimit
	items, err := s.List(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("querying for export: %w", err)
	}
	return items, nil
}
