// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package chart

import (
	"sort"

	"github.com/pdiddy/health-report/pkg/types"
)

// TotalLabel is the closing bar of a waterfall chart.
const TotalLabel = "Total"

// GroupedBars plots each score next to its benchmark. The benchmark series
// is present only when at least one record has a benchmark; records without
// one plot a null there.
func GroupedBars(records []types.ScoreRecord, opts types.ChartOptions) Config {
	withBench := hasBenchmark(records)
	scores := make([]Value, len(records))
	for i, r := range records {
		scores[i] = Number(r.Score)
	}

	datasets := []Dataset{{
		Label:           "Score",
		Data:            scores,
		BackgroundColor: fill(len(records), ColorPrimary),
		BarThickness:    opts.BarThickness,
	}}
	if withBench {
		datasets = append(datasets, benchmarkSeries(records, opts))
	}

	return Config{
		Type:    "bar",
		Data:    Data{Labels: labels(records), Datasets: datasets},
		Options: base(opts, withBench),
	}
}

// BenchmarkComparison plots horizontal score bars against benchmarks. A score
// at or above its benchmark is colored strong, below it weak; records with
// no benchmark use their band color.
func BenchmarkComparison(records []types.ScoreRecord, opts types.ChartOptions) Config {
	scores := make([]Value, len(records))
	colors := make([]string, len(records))
	for i, r := range records {
		scores[i] = Number(r.Score)
		switch {
		case r.Benchmark == nil:
			colors[i] = BandColor(r.Score)
		case r.Score >= *r.Benchmark:
			colors[i] = ColorStrong
		default:
			colors[i] = ColorWeak
		}
	}

	settings := base(opts, true)
	settings.IndexAxis = "y"
	settings.Scales.X.BeginAtZero = true
	settings.Scales.X.Max = ptr(maxScore)
	settings.Scales.Y.BeginAtZero = false

	return Config{
		Type: "bar",
		Data: Data{
			Labels: labels(records),
			Datasets: []Dataset{
				{Label: "Score", Data: scores, BackgroundColor: colors, BarThickness: opts.BarThickness},
				benchmarkSeries(records, opts),
			},
		},
		Options: settings,
	}
}

// Gap plots score minus benchmark for every record that has a benchmark.
// Records without one are left out.
func Gap(records []types.ScoreRecord, opts types.ChartOptions) Config {
	var (
		lbls   []string
		deltas []Value
		colors []string
	)
	for _, r := range records {
		if r.Benchmark == nil {
			continue
		}
		d := r.Score - *r.Benchmark
		lbls = append(lbls, r.Label)
		deltas = append(deltas, Number(d))
		if d >= 0 {
			colors = append(colors, ColorStrong)
		} else {
			colors = append(colors, ColorWeak)
		}
	}

	settings := base(opts, false)
	settings.Scales.Y.BeginAtZero = false

	return Config{
		Type: "bar",
		Data: Data{
			Labels: nonNil(lbls),
			Datasets: []Dataset{{
				Label:           "Gap to benchmark",
				Data:            nonNilValues(deltas),
				BackgroundColor: nonNil(colors),
				BarThickness:    opts.BarThickness,
			}},
		},
		Options: settings,
	}
}

// StrengthWeakness ranks records from highest to lowest score, ties broken
// by label, colored by band.
func StrengthWeakness(records []types.ScoreRecord, opts types.ChartOptions) Config {
	ranked := append([]types.ScoreRecord(nil), records...)
	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].Score != ranked[j].Score {
			return ranked[i].Score > ranked[j].Score
		}
		return ranked[i].Label < ranked[j].Label
	})

	scores := make([]Value, len(ranked))
	colors := make([]string, len(ranked))
	for i, r := range ranked {
		scores[i] = Number(r.Score)
		colors[i] = BandColor(r.Score)
	}

	settings := base(opts, false)
	settings.IndexAxis = "y"
	settings.Scales.X.BeginAtZero = true
	settings.Scales.X.Max = ptr(maxScore)
	settings.Scales.Y.BeginAtZero = false

	return Config{
		Type: "bar",
		Data: Data{
			Labels: labels(ranked),
			Datasets: []Dataset{{
				Label:           "Score",
				Data:            scores,
				BackgroundColor: colors,
				BarThickness:    opts.BarThickness,
			}},
		},
		Options: settings,
	}
}

// Progress plots each score as a stacked bar filled up to the maximum
// score. Scores are clamped to [0, 100].
func Progress(records []types.ScoreRecord, opts types.ChartOptions) Config {
	done := make([]Value, len(records))
	remaining := make([]Value, len(records))
	colors := make([]string, len(records))
	for i, r := range records {
		s := min(max(r.Score, 0), maxScore)
		done[i] = Number(s)
		remaining[i] = Number(maxScore - s)
		colors[i] = BandColor(s)
	}

	settings := base(opts, false)
	settings.IndexAxis = "y"
	settings.Scales.X.Stacked = true
	settings.Scales.X.Max = ptr(maxScore)
	settings.Scales.Y.Stacked = true
	settings.Scales.Y.BeginAtZero = false

	return Config{
		Type: "bar",
		Data: Data{
			Labels: labels(records),
			Datasets: []Dataset{
				{Label: "Score", Data: done, BackgroundColor: colors, BarThickness: opts.BarThickness, Stack: "progress"},
				{Label: "Remaining", Data: remaining, BackgroundColor: fill(len(records), ColorRemaining), BarThickness: opts.BarThickness, Stack: "progress"},
			},
		},
		Options: settings,
	}
}

// Waterfall treats each score as a contribution and plots floating bars
// from the running total, closing with a total bar from zero.
func Waterfall(records []types.ScoreRecord, opts types.ChartOptions) Config {
	steps := make([]Value, 0, len(records)+1)
	colors := make([]string, 0, len(records)+1)
	total := 0.0
	for _, r := range records {
		steps = append(steps, Span(total, total+r.Score))
		total += r.Score
		if r.Score >= 0 {
			colors = append(colors, ColorStrong)
		} else {
			colors = append(colors, ColorWeak)
		}
	}
	steps = append(steps, Span(0, total))
	colors = append(colors, ColorPrimary)

	settings := base(opts, false)
	settings.Scales.Y.BeginAtZero = false

	return Config{
		Type: "bar",
		Data: Data{
			Labels: append(labels(records), TotalLabel),
			Datasets: []Dataset{{
				Label:           "Contribution",
				Data:            steps,
				BackgroundColor: colors,
				BarThickness:    opts.BarThickness,
			}},
		},
		Options: settings,
	}
}

func benchmarkSeries(records []types.ScoreRecord, opts types.ChartOptions) Dataset {
	vals := make([]Value, len(records))
	for i, r := range records {
		if r.Benchmark == nil {
			vals[i] = Missing()
			continue
		}
		vals[i] = Number(*r.Benchmark)
	}
	return Dataset{
		Label:           "Benchmark",
		Data:            vals,
		BackgroundColor: fill(len(records), ColorBenchmark),
		BarThickness:    opts.BarThickness,
	}
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

func nonNilValues(v []Value) []Value {
	if v == nil {
		return []Value{}
	}
	return v
}
