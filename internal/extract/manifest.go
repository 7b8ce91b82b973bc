// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"fmt"
	"os"
	"path/filepath"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/health-report/pkg/types"
)

// ManifestDocument names one document of a batch.
type ManifestDocument struct {
	// Path is the markup file, relative to the manifest when not absolute.
	Path string `yaml:"path"`

	// Type is the source file type of the document.
	Type types.SourceFileType `yaml:"type"`

	// Selectors optionally names a selectors file for this document.
	Selectors string `yaml:"selectors"`
}

// Manifest lists the documents of a batch run.
type Manifest struct {
	// Selectors is the default selectors file for documents naming none.
	Selectors string             `yaml:"selectors"`
	Documents []ManifestDocument `yaml:"documents"`
}

// LoadManifest reads a manifest and the documents and selectors it names.
// Documents without a selectors file use the manifest default or, failing
// that, the extractor defaults.
func LoadManifest(path string) ([]BatchInput, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading manifest %s: %w", path, err)
	}
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parsing manifest %s: %w", path, err)
	}

	base := filepath.Dir(path)
	cache := make(map[string][]types.Selector)
	loadSel := func(p string) ([]types.Selector, error) {
		if p == "" {
			return nil, nil
		}
		p = resolve(base, p)
		if sel, ok := cache[p]; ok {
			return sel, nil
		}
		sel, err := LoadSelectors(p)
		if err != nil {
			return nil, err
		}
		cache[p] = sel
		return sel, nil
	}

	inputs := make([]BatchInput, 0, len(m.Documents))
	for i, d := range m.Documents {
		if d.Path == "" || d.Type == "" {
			return nil, fmt.Errorf("manifest %s: document %d: path and type are required", path, i)
		}
		markup, err := os.ReadFile(resolve(base, d.Path))
		if err != nil {
			return nil, fmt.Errorf("manifest %s: document %d: %w", path, i, err)
		}

		selPath := d.Selectors
		if selPath == "" {
			selPath = m.Selectors
		}
		sel, err := loadSel(selPath)
		if err != nil {
			return nil, fmt.Errorf("manifest %s: document %d: %w", path, i, err)
		}

		inputs = append(inputs, BatchInput{
			Document:  &types.SourceDocument{SourceFileType: d.Type, Markup: string(markup)},
			Selectors: sel,
		})
	}
	return inputs, nil
}

func resolve(base, p string) string {
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(base, p)
}
