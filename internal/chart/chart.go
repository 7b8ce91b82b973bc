// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package chart renders aggregated scores into declarative bar chart
// configurations. Output depends only on the inputs: colors come from a
// fixed palette, ordering is stable, and nothing reads the clock, so the
// same records and options always marshal to the same JSON.
package chart

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"

	"github.com/pdiddy/health-report/pkg/types"
)

// Kind names a chart builder.
type Kind string

// Chart kinds accepted by Render.
const (
	KindGroupedBars         Kind = "grouped-bars"
	KindBenchmarkComparison Kind = "benchmark-comparison"
	KindGap                 Kind = "gap"
	KindStrengthWeakness    Kind = "strength-weakness"
	KindProgress            Kind = "progress"
	KindWaterfall           Kind = "waterfall"
)

// Palette.
const (
	ColorPrimary   = "#1F4E79"
	ColorBenchmark = "#9E9E9E"
	ColorStrong    = "#2E7D32"
	ColorModerate  = "#F9A825"
	ColorWeak      = "#C62828"
	ColorRemaining = "#E0E0E0"
	ColorGrid      = "#EEEEEE"
)

// Score band thresholds on a 0-100 scale.
const (
	StrongThreshold   = 75
	ModerateThreshold = 50
	maxScore          = 100
)

// Config is a complete chart description in the shape consumed by
// Chart.js-style renderers.
type Config struct {
	Type    string   `json:"type"`
	Data    Data     `json:"data"`
	Options Settings `json:"options"`
}

// Data holds the category labels and the series plotted against them.
type Data struct {
	Labels   []string  `json:"labels"`
	Datasets []Dataset `json:"datasets"`
}

// Dataset is one plotted series.
type Dataset struct {
	Label           string   `json:"label"`
	Data            []Value  `json:"data"`
	BackgroundColor []string `json:"backgroundColor"`
	BorderColor     []string `json:"borderColor,omitempty"`
	BorderWidth     int      `json:"borderWidth"`
	BarThickness    int      `json:"barThickness,omitempty"`
	Stack           string   `json:"stack,omitempty"`
}

// Settings holds chart-wide display options.
type Settings struct {
	IndexAxis           string  `json:"indexAxis,omitempty"`
	Responsive          bool    `json:"responsive"`
	MaintainAspectRatio bool    `json:"maintainAspectRatio"`
	Plugins             Plugins `json:"plugins"`
	Scales              Scales  `json:"scales"`
}

// Plugins configures the title and legend.
type Plugins struct {
	Title  Title  `json:"title"`
	Legend Legend `json:"legend"`
}

// Title is the chart heading.
type Title struct {
	Display bool   `json:"display"`
	Text    string `json:"text"`
}

// Legend toggles the series legend.
type Legend struct {
	Display  bool   `json:"display"`
	Position string `json:"position"`
}

// Scales configures both axes.
type Scales struct {
	X Axis `json:"x"`
	Y Axis `json:"y"`
}

// Axis configures one axis.
type Axis struct {
	BeginAtZero bool     `json:"beginAtZero"`
	Stacked     bool     `json:"stacked"`
	Min         *float64 `json:"min,omitempty"`
	Max         *float64 `json:"max,omitempty"`
	Grid        Grid     `json:"grid"`
}

// Grid toggles axis grid lines.
type Grid struct {
	Display bool   `json:"display"`
	Color   string `json:"color"`
}

// Value is one data point: a number, a floating [from, to] range, or null
// when the record has no value for the series.
type Value struct {
	Y     float64
	From  float64
	Range bool
	Null  bool
}

// Number returns a plain data point.
func Number(v float64) Value { return Value{Y: v} }

// Span returns a floating bar from from to to.
func Span(from, to float64) Value { return Value{From: from, Y: to, Range: true} }

// Missing returns a null data point.
func Missing() Value { return Value{Null: true} }

// MarshalJSON implements json.Marshaler.
func (v Value) MarshalJSON() ([]byte, error) {
	switch {
	case v.Null:
		return []byte("null"), nil
	case v.Range:
		return []byte("[" + formatFloat(v.From) + "," + formatFloat(v.Y) + "]"), nil
	}
	return []byte(formatFloat(v.Y)), nil
}

// UnmarshalJSON implements json.Unmarshaler.
func (v *Value) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*v = Missing()
		return nil
	}
	var pair []float64
	if err := json.Unmarshal(b, &pair); err == nil {
		if len(pair) != 2 {
			return fmt.Errorf("range value needs 2 elements, got %d", len(pair))
		}
		*v = Span(pair[0], pair[1])
		return nil
	}
	var n float64
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("decoding chart value: %w", err)
	}
	*v = Number(n)
	return nil
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// BandColor returns the palette color for a score.
func BandColor(score float64) string {
	switch {
	case score >= StrongThreshold:
		return ColorStrong
	case score >= ModerateThreshold:
		return ColorModerate
	}
	return ColorWeak
}

// Builder renders records into a chart.
type Builder func(records []types.ScoreRecord, opts types.ChartOptions) Config

var builders = map[Kind]Builder{
	KindGroupedBars:         GroupedBars,
	KindBenchmarkComparison: BenchmarkComparison,
	KindGap:                 Gap,
	KindStrengthWeakness:    StrengthWeakness,
	KindProgress:            Progress,
	KindWaterfall:           Waterfall,
}

// Kinds lists the chart kinds in a stable order.
func Kinds() []Kind {
	out := make([]Kind, 0, len(builders))
	for k := range builders {
		out = append(out, k)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Render builds the chart named by kind.
func Render(kind Kind, records []types.ScoreRecord, opts types.ChartOptions) (Config, error) {
	b, ok := builders[kind]
	if !ok {
		return Config{}, fmt.Errorf("unknown chart kind %q", kind)
	}
	return b(records, opts), nil
}

// base returns the settings shared by every chart.
func base(opts types.ChartOptions, legend bool) Settings {
	grid := Grid{Display: opts.ShowGrid, Color: ColorGrid}
	return Settings{
		Responsive:          true,
		MaintainAspectRatio: false,
		Plugins: Plugins{
			Title:  Title{Display: opts.Title != "", Text: opts.Title},
			Legend: Legend{Display: legend, Position: "bottom"},
		},
		Scales: Scales{
			X: Axis{Grid: grid},
			Y: Axis{BeginAtZero: true, Grid: grid},
		},
	}
}

// labels copies the record labels in order.
func labels(records []types.ScoreRecord) []string {
	out := make([]string, len(records))
	for i, r := range records {
		out[i] = r.Label
	}
	return out
}

func fill(n int, color string) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = color
	}
	return out
}

func hasBenchmark(records []types.ScoreRecord) bool {
	for _, r := range records {
		if r.Benchmark != nil {
			return true
		}
	}
	return false
}

func ptr(f float64) *float64 { return &f }
