// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package chart

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/health-report/pkg/types"
)

func bench(f float64) *float64 { return &f }

func sampleRecords() []types.ScoreRecord {
	return []types.ScoreRecord{
		{Label: "Operations", Score: 72, Benchmark: bench(65)},
		{Label: "Financials", Score: 48, Benchmark: bench(60)},
		{Label: "Strategy", Score: 81},
		{Label: "Sales", Score: 72, Benchmark: bench(72)},
	}
}

func values(vs ...float64) []Value {
	out := make([]Value, len(vs))
	for i, v := range vs {
		out[i] = Number(v)
	}
	return out
}

func marshal(t *testing.T, cfg Config) string {
	t.Helper()
	b, err := json.Marshal(cfg)
	require.NoError(t, err)
	return string(b)
}

func TestValueJSON(t *testing.T) {
	tests := []struct {
		name string
		v    Value
		want string
	}{
		{"number", Number(72), "72"},
		{"fraction", Number(12.5), "12.5"},
		{"negative", Number(-3), "-3"},
		{"range", Span(10, 32.5), "[10,32.5]"},
		{"null", Missing(), "null"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, err := json.Marshal(tt.v)
			require.NoError(t, err)
			assert.Equal(t, tt.want, string(b))

			var back Value
			require.NoError(t, json.Unmarshal(b, &back))
			assert.Equal(t, tt.v, back)
		})
	}

	var v Value
	assert.Error(t, json.Unmarshal([]byte("[1,2,3]"), &v))
	assert.Error(t, json.Unmarshal([]byte(`"x"`), &v))
}

func TestBandColor(t *testing.T) {
	assert.Equal(t, ColorStrong, BandColor(75))
	assert.Equal(t, ColorModerate, BandColor(74.9))
	assert.Equal(t, ColorModerate, BandColor(50))
	assert.Equal(t, ColorWeak, BandColor(49))
}

func TestGroupedBars(t *testing.T) {
	cfg := GroupedBars(sampleRecords(), types.ChartOptions{Title: "Scores", BarThickness: 18, ShowGrid: true})

	assert.Equal(t, "bar", cfg.Type)
	assert.Equal(t, []string{"Operations", "Financials", "Strategy", "Sales"}, cfg.Data.Labels)
	require.Len(t, cfg.Data.Datasets, 2)
	assert.Equal(t, values(72, 48, 81, 72), cfg.Data.Datasets[0].Data)
	assert.Equal(t, []Value{Number(65), Number(60), Missing(), Number(72)}, cfg.Data.Datasets[1].Data)
	assert.Equal(t, 18, cfg.Data.Datasets[1].BarThickness)
	assert.True(t, cfg.Options.Plugins.Title.Display)
	assert.Equal(t, "Scores", cfg.Options.Plugins.Title.Text)
	assert.True(t, cfg.Options.Plugins.Legend.Display)
	assert.True(t, cfg.Options.Scales.X.Grid.Display)
}

func TestGroupedBarsWithoutBenchmarks(t *testing.T) {
	cfg := GroupedBars([]types.ScoreRecord{{Label: "A", Score: 1}}, types.ChartOptions{})

	require.Len(t, cfg.Data.Datasets, 1)
	assert.False(t, cfg.Options.Plugins.Legend.Display)
	assert.False(t, cfg.Options.Plugins.Title.Display)
	assert.False(t, cfg.Options.Scales.Y.Grid.Display)
}

func TestBenchmarkComparisonColors(t *testing.T) {
	cfg := BenchmarkComparison(sampleRecords(), types.ChartOptions{})

	assert.Equal(t, "y", cfg.Options.IndexAxis)
	want := []string{ColorStrong, ColorWeak, ColorStrong, ColorStrong}
	assert.Equal(t, want, cfg.Data.Datasets[0].BackgroundColor)
	require.NotNil(t, cfg.Options.Scales.X.Max)
	assert.Equal(t, 100.0, *cfg.Options.Scales.X.Max)
}

func TestGapSkipsRecordsWithoutBenchmark(t *testing.T) {
	cfg := Gap(sampleRecords(), types.ChartOptions{})

	assert.Equal(t, []string{"Operations", "Financials", "Sales"}, cfg.Data.Labels)
	ds := cfg.Data.Datasets[0]
	assert.Equal(t, values(7, -12, 0), ds.Data)
	assert.Equal(t, []string{ColorStrong, ColorWeak, ColorStrong}, ds.BackgroundColor)
}

func TestGapEmpty(t *testing.T) {
	cfg := Gap([]types.ScoreRecord{{Label: "A", Score: 1}}, types.ChartOptions{})
	assert.Equal(t, `{"labels":[],"datasets":[{"label":"Gap to benchmark","data":[],"backgroundColor":[],"borderWidth":0}]}`,
		mustJSON(t, cfg.Data))
}

func TestStrengthWeaknessRanking(t *testing.T) {
	records := sampleRecords()
	cfg := StrengthWeakness(records, types.ChartOptions{})

	assert.Equal(t, []string{"Strategy", "Operations", "Sales", "Financials"}, cfg.Data.Labels)
	assert.Equal(t, values(81, 72, 72, 48), cfg.Data.Datasets[0].Data)
	assert.Equal(t, []string{ColorStrong, ColorModerate, ColorModerate, ColorWeak}, cfg.Data.Datasets[0].BackgroundColor)

	// The caller's slice keeps its order.
	assert.Equal(t, "Operations", records[0].Label)
	assert.Equal(t, "Sales", records[3].Label)
}

func TestProgressClampsScores(t *testing.T) {
	cfg := Progress([]types.ScoreRecord{
		{Label: "A", Score: 30},
		{Label: "B", Score: 130},
		{Label: "C", Score: -5},
	}, types.ChartOptions{})

	require.Len(t, cfg.Data.Datasets, 2)
	assert.Equal(t, values(30, 100, 0), cfg.Data.Datasets[0].Data)
	assert.Equal(t, values(70, 0, 100), cfg.Data.Datasets[1].Data)
	assert.True(t, cfg.Options.Scales.X.Stacked)
	assert.True(t, cfg.Options.Scales.Y.Stacked)
}

func TestWaterfall(t *testing.T) {
	cfg := Waterfall([]types.ScoreRecord{
		{Label: "Revenue", Score: 40},
		{Label: "Costs", Score: -15},
		{Label: "Other", Score: 5},
	}, types.ChartOptions{})

	assert.Equal(t, []string{"Revenue", "Costs", "Other", TotalLabel}, cfg.Data.Labels)
	want := []Value{Span(0, 40), Span(40, 25), Span(25, 30), Span(0, 30)}
	if diff := cmp.Diff(want, cfg.Data.Datasets[0].Data); diff != "" {
		t.Errorf("waterfall steps mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, []string{ColorStrong, ColorWeak, ColorStrong, ColorPrimary}, cfg.Data.Datasets[0].BackgroundColor)
}

func TestRenderIsByteIdentical(t *testing.T) {
	opts := types.ChartOptions{Title: "Health", BarThickness: 12, ShowGrid: true}
	for _, kind := range Kinds() {
		t.Run(string(kind), func(t *testing.T) {
			first, err := Render(kind, sampleRecords(), opts)
			require.NoError(t, err)
			second, err := Render(kind, sampleRecords(), opts)
			require.NoError(t, err)
			assert.Equal(t, marshal(t, first), marshal(t, second))
		})
	}
}

func TestRenderDoesNotAliasInputs(t *testing.T) {
	records := sampleRecords()
	cfg := GroupedBars(records, types.ChartOptions{})
	before := marshal(t, cfg)

	records[0].Label = "changed"
	*records[0].Benchmark = 1

	assert.Equal(t, before, marshal(t, cfg))
}

func TestRenderUnknownKind(t *testing.T) {
	_, err := Render("pie", nil, types.ChartOptions{})
	assert.Error(t, err)
}

func TestKinds(t *testing.T) {
	assert.Equal(t, []Kind{
		KindBenchmarkComparison, KindGap, KindGroupedBars,
		KindProgress, KindStrengthWeakness, KindWaterfall,
	}, Kinds())
}

func TestLoadRequest(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scores.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`kind: gap
options:
  title: Gaps
  bar_thickness: 20
records:
  - label: Operations
    score: 72
    benchmark: 60
  - label: Strategy
    score: 50
`), 0o644))

	req, err := LoadRequest(path)
	require.NoError(t, err)
	assert.Equal(t, KindGap, req.Kind)
	assert.Equal(t, 20, req.Options.BarThickness)
	require.Len(t, req.Records, 2)
	require.NotNil(t, req.Records[0].Benchmark)
	assert.Nil(t, req.Records[1].Benchmark)

	cfg, err := req.Render()
	require.NoError(t, err)
	assert.Equal(t, []string{"Operations"}, cfg.Data.Labels)

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, cfg))
	assert.Contains(t, buf.String(), `"text": "Gaps"`)
}

func TestLoadRequestMissingKind(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scores.yaml")
	require.NoError(t, os.WriteFile(path, []byte("records: []\n"), 0o644))

	_, err := LoadRequest(path)
	assert.Error(t, err)
}

func mustJSON(t *testing.T, v any) string {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return string(b)
}
