// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package chart

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/health-report/pkg/types"
)

// Request is a score file: the chart to draw and the records to draw it from.
type Request struct {
	Kind    Kind                `yaml:"kind" json:"kind"`
	Options types.ChartOptions  `yaml:"options" json:"options"`
	Records []types.ScoreRecord `yaml:"records" json:"records"`
}

// LoadRequest reads a YAML or JSON score file.
func LoadRequest(path string) (Request, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Request{}, fmt.Errorf("reading score file %s: %w", path, err)
	}
	var req Request
	if err := yaml.Unmarshal(data, &req); err != nil {
		return Request{}, fmt.Errorf("parsing score file %s: %w", path, err)
	}
	if req.Kind == "" {
		return Request{}, fmt.Errorf("score file %s: missing kind", path)
	}
	return req, nil
}

// Render builds the chart described by the request.
func (r Request) Render() (Config, error) {
	return Render(r.Kind, r.Records, r.Options)
}

// Write encodes cfg as indented JSON.
func Write(w io.Writer, cfg Config) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(cfg); err != nil {
		return fmt.Errorf("encoding chart: %w", err)
	}
	return nil
}
