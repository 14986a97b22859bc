// Copyright 2025 The Searchbench Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package benchplot renders benchmark summaries as PNG bar charts.
//
// Charts are a view over benchstat.SummaryRow values; no statistic is
// computed here. Each chart shows one bar per (problem, algorithm)
// pair for successful runs, and where partial progress is meaningful
// (node counts, time) a second bar for no-solution runs that did
// visit nodes, so exhaustive failures stay visible next to successes.
package benchplot

import (
	"fmt"
	"image/color"
	"math"
	"os"
	"path/filepath"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/searchbench/analysis/benchjson"
	"github.com/searchbench/analysis/benchstat"
)

var (
	successColor = color.NRGBA{R: 0x46, G: 0x82, B: 0xb4, A: 0xff} // steelblue
	failureColor = color.NRGBA{R: 0xdc, G: 0x14, B: 0x3c, A: 0xff} // crimson
)

// Options configures chart rendering. The zero value picks a width
// from the number of bar groups. Presentation state is passed here
// explicitly; the package keeps no global configuration.
type Options struct {
	Width, Height vg.Length
}

type pair struct {
	problem, algorithm string
}

// WriteCharts renders the standard chart set into dir, creating it if
// needed. The file names match the links emitted by benchreport:
// time_comparison.png, memory_comparison.png, nodes_visited.png,
// nodes_generated.png, success_rate.png.
func WriteCharts(rows []*benchstat.SummaryRow, dir string, opts Options) error {
	if err := os.MkdirAll(dir, 0777); err != nil {
		return err
	}

	pairs, labels := collectPairs(rows)

	charts := []struct {
		file, title, ylabel string
		metric              func(*benchstat.SummaryRow) float64
		withFailures        bool
	}{
		{"time_comparison.png", "Execution time", "mean time (ms)",
			func(r *benchstat.SummaryRow) float64 { return r.Time.Mean }, true},
		{"memory_comparison.png", "Memory use", "mean memory (KB)",
			func(r *benchstat.SummaryRow) float64 { return r.Memory.Mean }, true},
		{"nodes_visited.png", "Nodes visited", "mean nodes visited",
			func(r *benchstat.SummaryRow) float64 { return r.NodesVisited.Mean }, true},
		{"nodes_generated.png", "Nodes generated", "mean nodes generated",
			func(r *benchstat.SummaryRow) float64 { return r.NodesGenerated.Mean }, true},
	}
	for _, c := range charts {
		success := valuesFor(rows, pairs, benchjson.Success, c.metric)
		var failed plotter.Values
		if c.withFailures {
			failed = valuesFor(rows, pairs, benchjson.NoSolution, c.metric)
		}
		if err := writeBarChart(filepath.Join(dir, c.file), c.title, c.ylabel, labels, success, failed, opts); err != nil {
			return fmt.Errorf("%s: %v", c.file, err)
		}
	}

	rates := make(plotter.Values, len(pairs))
	for _, r := range rows {
		if r.Outcome != benchjson.Success {
			continue
		}
		i := indexOf(pairs, pair{r.Problem, r.Algorithm})
		rates[i] = 100 * float64(r.Observed) / float64(r.Attempted)
	}
	if err := writeBarChart(filepath.Join(dir, "success_rate.png"), "Success rate", "successful runs (%)", labels, rates, nil, opts); err != nil {
		return fmt.Errorf("success_rate.png: %v", err)
	}
	return nil
}

// collectPairs returns the (problem, algorithm) pairs present in
// rows, in row order, with their axis labels.
func collectPairs(rows []*benchstat.SummaryRow) ([]pair, []string) {
	var pairs []pair
	var labels []string
	seen := make(map[pair]bool)
	for _, r := range rows {
		k := pair{r.Problem, r.Algorithm}
		if seen[k] {
			continue
		}
		seen[k] = true
		pairs = append(pairs, k)
		labels = append(labels, k.problem+"\n"+k.algorithm)
	}
	return pairs, labels
}

func indexOf(pairs []pair, k pair) int {
	for i, p := range pairs {
		if p == k {
			return i
		}
	}
	return -1
}

// valuesFor extracts one metric for one outcome across all pairs,
// leaving 0 where the outcome has no row for a pair.
func valuesFor(rows []*benchstat.SummaryRow, pairs []pair, outcome benchjson.Outcome, metric func(*benchstat.SummaryRow) float64) plotter.Values {
	vals := make(plotter.Values, len(pairs))
	for _, r := range rows {
		if r.Outcome != outcome {
			continue
		}
		if i := indexOf(pairs, pair{r.Problem, r.Algorithm}); i >= 0 {
			vals[i] = metric(r)
		}
	}
	return vals
}

func writeBarChart(file, title, ylabel string, labels []string, success, failed plotter.Values, opts Options) error {
	p := plot.New()
	p.Title.Text = title
	p.Y.Label.Text = ylabel

	w := vg.Points(15)

	bars, err := plotter.NewBarChart(success, w)
	if err != nil {
		return err
	}
	bars.LineStyle.Width = vg.Length(0)
	bars.Color = successColor
	if failed != nil {
		bars.Offset = -w / 2
	}
	p.Add(bars)
	p.Legend.Add("success", bars)

	if failed != nil {
		fbars, err := plotter.NewBarChart(failed, w)
		if err != nil {
			return err
		}
		fbars.LineStyle.Width = vg.Length(0)
		fbars.Color = failureColor
		fbars.Offset = w / 2
		p.Add(fbars)
		p.Legend.Add("no solution (partial)", fbars)
	}

	p.Legend.Top = true
	p.NominalX(labels...)
	p.X.Tick.Label.Rotation = -math.Pi / 8
	p.X.Tick.Label.YAlign = draw.YTop
	p.X.Tick.Label.XAlign = draw.XLeft

	width, height := opts.Width, opts.Height
	if width == 0 {
		width = vg.Length(2+len(labels)) * vg.Centimeter
		if width < 12*vg.Centimeter {
			width = 12 * vg.Centimeter
		}
	}
	if height == 0 {
		height = 10 * vg.Centimeter
	}
	return p.Save(width, height, file)
}
