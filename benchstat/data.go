// Copyright 2025 The Searchbench Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package benchstat computes comparative statistics over canonical
// benchmark results.
//
// It is the single aggregation point for every renderer: markdown,
// HTML, and chart output all consume the SummaryRow and BestOfRow
// collections produced here and never re-derive statistics. All
// functions are pure transformations of their input; derived rows are
// recomputed on every call because the input collection may grow
// between calls via merging.
package benchstat

import (
	"sort"

	"github.com/aclements/go-moremath/stats"

	"github.com/searchbench/analysis/benchjson"
)

// A Dist summarizes the distribution of one metric over one group of
// runs. StdDev is the Bessel-corrected sample standard deviation; it
// is reported as 0 for a single observation rather than NaN.
type Dist struct {
	Mean   float64
	StdDev float64

	// Defined reports whether the metric is meaningful for this
	// group at all. Solution length, frontier size, and branching
	// factor are undefined for failed runs.
	Defined bool
}

// A SummaryRow is the aggregate of one (problem, algorithm, outcome)
// group.
//
// Attempted counts every run of the (problem, algorithm) pair across
// all outcomes. Observed counts the runs whose measurements enter the
// distributions: for Success rows that is every successful run, for
// Timeout and NoSolution rows only runs that visited at least one
// node (the progress filter). Zero-progress failures still count
// toward Attempted.
type SummaryRow struct {
	Problem   string
	Algorithm string
	Outcome   benchjson.Outcome

	Attempted int
	Observed  int

	Time           Dist // time_ms
	Memory         Dist // memory_kb
	NodesVisited   Dist
	NodesGenerated Dist
	SolutionLength Dist // Success only
	MaxFrontier    Dist // Success only
	EBF            Dist // effective branching factor, Success only
}

type group struct {
	problem, algorithm string
	runs               []*benchjson.Result
}

// Aggregate partitions results by (problem, algorithm, outcome) and
// computes a SummaryRow per non-empty partition. Rows are sorted by
// problem, then algorithm, then outcome. An empty input yields an
// empty output, not an error.
func Aggregate(results []*benchjson.Result) []*SummaryRow {
	groups := partition(results)

	var rows []*SummaryRow
	for _, g := range groups {
		attempted := len(g.runs)
		for _, outcome := range []benchjson.Outcome{benchjson.Success, benchjson.Timeout, benchjson.NoSolution} {
			row := summarize(g, outcome, attempted)
			if row != nil {
				rows = append(rows, row)
			}
		}
	}
	sort.Slice(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		if a.Problem != b.Problem {
			return a.Problem < b.Problem
		}
		if a.Algorithm != b.Algorithm {
			return a.Algorithm < b.Algorithm
		}
		return a.Outcome < b.Outcome
	})
	return rows
}

// partition groups results by (problem, algorithm), preserving no
// particular group order; Aggregate sorts its output.
func partition(results []*benchjson.Result) []*group {
	type pa struct{ problem, algorithm string }
	byPair := make(map[pa]*group)
	var groups []*group
	for _, r := range results {
		k := pa{r.Problem, r.Algorithm}
		g := byPair[k]
		if g == nil {
			g = &group{problem: r.Problem, algorithm: r.Algorithm}
			byPair[k] = g
			groups = append(groups, g)
		}
		g.runs = append(g.runs, r)
	}
	return groups
}

// summarize builds the row for one outcome within a group, or returns
// nil if no run qualifies. Failed outcomes pass the progress filter:
// a run that failed before visiting any node contributes nothing to
// the distributions.
func summarize(g *group, outcome benchjson.Outcome, attempted int) *SummaryRow {
	var runs []*benchjson.Result
	for _, r := range g.runs {
		if r.Outcome != outcome {
			continue
		}
		if outcome != benchjson.Success && r.Metrics.NodesVisited == 0 {
			continue
		}
		runs = append(runs, r)
	}
	if len(runs) == 0 {
		return nil
	}

	row := &SummaryRow{
		Problem:   g.problem,
		Algorithm: g.algorithm,
		Outcome:   outcome,
		Attempted: attempted,
		Observed:  len(runs),
	}
	row.Time = dist(runs, func(m benchjson.Metrics) float64 { return m.TimeMS })
	row.Memory = dist(runs, func(m benchjson.Metrics) float64 { return float64(m.MemoryKB) })
	row.NodesVisited = dist(runs, func(m benchjson.Metrics) float64 { return float64(m.NodesVisited) })
	row.NodesGenerated = dist(runs, func(m benchjson.Metrics) float64 { return float64(m.NodesGenerated) })
	if outcome == benchjson.Success {
		row.SolutionLength = dist(runs, func(m benchjson.Metrics) float64 { return float64(m.SolutionLength) })
		row.MaxFrontier = dist(runs, func(m benchjson.Metrics) float64 { return float64(m.MaxFrontierSize) })
		row.EBF = dist(runs, benchjson.Metrics.EffectiveBranchingFactor)
	}
	return row
}

func dist(runs []*benchjson.Result, metric func(benchjson.Metrics) float64) Dist {
	xs := make([]float64, len(runs))
	for i, r := range runs {
		xs[i] = metric(r.Metrics)
	}
	s := stats.Sample{Xs: xs}
	d := Dist{Mean: s.Mean(), Defined: true}
	if len(xs) > 1 {
		d.StdDev = s.StdDev()
	}
	return d
}
