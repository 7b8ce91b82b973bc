// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/health-report/pkg/types"
)

// Output formats for WriteResults.
const (
	FormatYAML = "yaml"
	FormatJSON = "json"
)

// WriteResults encodes results to w as YAML or JSON.
func WriteResults(w io.Writer, results []types.ExtractionResult, format string) error {
	switch format {
	case "", FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(results); err != nil {
			return fmt.Errorf("encoding YAML: %w", err)
		}
		return enc.Close()
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(results); err != nil {
			return fmt.Errorf("encoding JSON: %w", err)
		}
		return nil
	}
	return fmt.Errorf("unknown output format %q", format)
}

// ReadResults decodes a YAML or JSON results file written by WriteResults.
func ReadResults(path string) ([]types.ExtractionResult, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading results %s: %w", path, err)
	}
	var results []types.ExtractionResult
	if err := yaml.Unmarshal(data, &results); err != nil {
		return nil, fmt.Errorf("parsing results %s: %w", path, err)
	}
	return results, nil
}
