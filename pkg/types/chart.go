// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// ScoreRecord is one aggregated score fed to the chart renderer.
type ScoreRecord struct {
	Label string  `json:"label" yaml:"label"`
	Score float64 `json:"score" yaml:"score"`

	// Benchmark is the optional industry comparison value.
	Benchmark *float64 `json:"benchmark,omitempty" yaml:"benchmark,omitempty"`
}

// ChartOptions controls the presentation of a rendered chart.
type ChartOptions struct {
	Title        string `json:"title" yaml:"title"`
	BarThickness int    `json:"bar_thickness" yaml:"bar_thickness"`
	ShowGrid     bool   `json:"show_grid" yaml:"show_grid"`
}
