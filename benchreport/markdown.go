// Copyright 2025 The Searchbench Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package benchreport renders benchmark summaries as markdown and
// HTML.
//
// Renderers consume the SummaryRow and BestOfRow collections produced
// by benchstat and never recompute statistics; the raw records are
// only consulted for run counts and the optional per-instance details
// listing.
package benchreport

import (
	"fmt"
	"io"
	"sort"

	"github.com/searchbench/analysis/benchjson"
	"github.com/searchbench/analysis/benchstat"
)

// Options configures report rendering. Presentation state is passed
// explicitly; there are no package-level rendering defaults.
type Options struct {
	// Title of the report. Defaults to "Benchmark Report".
	Title string

	// ChartDir, if non-empty, is the directory (relative to the
	// report location) whose chart images the report links to.
	ChartDir string

	// Details includes the per-instance listing.
	Details bool
}

func (o *Options) title() string {
	if o.Title == "" {
		return "Benchmark Report"
	}
	return o.Title
}

// outcomeLabel is the human form of an outcome in report tables.
func outcomeLabel(o benchjson.Outcome) string {
	switch o {
	case benchjson.Success:
		return "success"
	case benchjson.Timeout:
		return "timeout"
	default:
		return "no solution"
	}
}

// metricLabel maps BestOfMetrics identifiers to table headings.
var metricLabel = map[string]string{
	"time_ms":       "Best time",
	"memory_kb":     "Best memory",
	"nodes_visited": "Fewest nodes",
}

// fmtDist renders a mean ± stddev cell, or a dash when the metric is
// undefined for the row.
func fmtDist(d benchstat.Dist, prec int) string {
	if !d.Defined {
		return "—"
	}
	if d.StdDev > 0 {
		return fmt.Sprintf("%.*f ± %.*f", prec, d.Mean, prec, d.StdDev)
	}
	return fmt.Sprintf("%.*f", prec, d.Mean)
}

// fmtMemory is fmtDist with the original report's convention that a
// failed run group with no memory samples shows a dash.
func fmtMemory(row *benchstat.SummaryRow) string {
	if row.Outcome != benchjson.Success && row.Memory.Mean == 0 {
		return "—"
	}
	return fmtDist(row.Memory, 0)
}

// WriteMarkdown writes the full markdown report. results may be nil
// unless opts.Details is set.
func WriteMarkdown(w io.Writer, rows []*benchstat.SummaryRow, best []*benchstat.BestOfRow, results []*benchjson.Result, opts Options) error {
	if _, err := fmt.Fprintf(w, "# %s\n\n", opts.title()); err != nil {
		return err
	}
	writeOverview(w, results)
	writeSummaryTable(w, rows)
	writeBestOfTable(w, best)
	if opts.ChartDir != "" {
		writeChartLinks(w, opts.ChartDir)
	}
	if opts.Details {
		writeDetails(w, results)
	}
	return nil
}

func writeOverview(w io.Writer, results []*benchjson.Result) {
	algorithms := make(map[string]bool)
	problems := make(map[string]bool)
	successes := 0
	for _, r := range results {
		algorithms[r.Algorithm] = true
		problems[r.Problem] = true
		if r.Outcome == benchjson.Success {
			successes++
		}
	}
	fmt.Fprintf(w, "## Overview\n\n")
	fmt.Fprintf(w, "- **Total runs:** %d\n", len(results))
	if len(results) > 0 {
		fmt.Fprintf(w, "- **Successful runs:** %d (%.1f%%)\n", successes, 100*float64(successes)/float64(len(results)))
	}
	fmt.Fprintf(w, "- **Algorithms:** %d\n", len(algorithms))
	fmt.Fprintf(w, "- **Problems:** %d\n\n", len(problems))
}

func writeSummaryTable(w io.Writer, rows []*benchstat.SummaryRow) {
	fmt.Fprintf(w, "## Summary statistics\n\n")
	if len(rows) == 0 {
		fmt.Fprintf(w, "No runs with measurable progress.\n\n")
		return
	}
	fmt.Fprintf(w, "| Problem | Algorithm | Outcome | Runs | Time (ms) | Memory (KB) | Nodes visited | Nodes generated | Solution length | EBF |\n")
	fmt.Fprintf(w, "|---|---|---|---|---|---|---|---|---|---|\n")
	for _, row := range rows {
		fmt.Fprintf(w, "| %s | %s | %s | %d/%d | %s | %s | %s | %s | %s | %s |\n",
			row.Problem, row.Algorithm, outcomeLabel(row.Outcome),
			row.Observed, row.Attempted,
			fmtDist(row.Time, 2), fmtMemory(row),
			fmtDist(row.NodesVisited, 0), fmtDist(row.NodesGenerated, 0),
			fmtDist(row.SolutionLength, 1), fmtDist(row.EBF, 2))
	}
	fmt.Fprintf(w, "\n")
}

// writeBestOfTable pivots the per-(problem, metric) rows into one
// table row per problem, in the shape of the comparative analysis
// table of the original reports.
func writeBestOfTable(w io.Writer, best []*benchstat.BestOfRow) {
	fmt.Fprintf(w, "## Comparative analysis\n\n")
	if len(best) == 0 {
		fmt.Fprintf(w, "No successful runs to compare.\n\n")
		return
	}

	byProblem := make(map[string]map[string]*benchstat.BestOfRow)
	var problems []string
	for _, b := range best {
		if byProblem[b.Problem] == nil {
			byProblem[b.Problem] = make(map[string]*benchstat.BestOfRow)
			problems = append(problems, b.Problem)
		}
		byProblem[b.Problem][b.Metric] = b
	}
	sort.Strings(problems)

	fmt.Fprintf(w, "| Problem |")
	for _, m := range benchstat.BestOfMetrics {
		fmt.Fprintf(w, " %s |", metricLabel[m])
	}
	fmt.Fprintf(w, "\n|---|")
	for range benchstat.BestOfMetrics {
		fmt.Fprintf(w, "---|")
	}
	fmt.Fprintf(w, "\n")
	for _, p := range problems {
		fmt.Fprintf(w, "| %s |", p)
		for _, m := range benchstat.BestOfMetrics {
			if b := byProblem[p][m]; b != nil {
				fmt.Fprintf(w, " %s (%.2f) |", b.Algorithm, b.Mean)
			} else {
				fmt.Fprintf(w, " — |")
			}
		}
		fmt.Fprintf(w, "\n")
	}
	fmt.Fprintf(w, "\n")
}

func writeChartLinks(w io.Writer, dir string) {
	fmt.Fprintf(w, "## Charts\n\n")
	charts := []struct{ file, title string }{
		{"time_comparison.png", "Execution time"},
		{"memory_comparison.png", "Memory use"},
		{"nodes_visited.png", "Nodes visited"},
		{"nodes_generated.png", "Nodes generated"},
		{"success_rate.png", "Success rate"},
	}
	for _, c := range charts {
		fmt.Fprintf(w, "![%s](%s/%s)\n\n", c.title, dir, c.file)
	}
}

// writeDetails lists every instance, grouped by problem and
// algorithm, successes first within each pair.
func writeDetails(w io.Writer, results []*benchjson.Result) {
	sorted := make([]*benchjson.Result, len(results))
	copy(sorted, results)
	sort.Slice(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]
		if a.Problem != b.Problem {
			return a.Problem < b.Problem
		}
		if a.Algorithm != b.Algorithm {
			return a.Algorithm < b.Algorithm
		}
		if a.Outcome != b.Outcome {
			return a.Outcome < b.Outcome
		}
		return a.InstanceID < b.InstanceID
	})

	fmt.Fprintf(w, "## Instance details\n\n")
	var problem, algorithm string
	for _, r := range sorted {
		if r.Problem != problem {
			problem, algorithm = r.Problem, ""
			fmt.Fprintf(w, "### %s\n\n", problem)
		}
		if r.Algorithm != algorithm {
			algorithm = r.Algorithm
			fmt.Fprintf(w, "#### %s\n\n", algorithm)
		}
		writeInstance(w, r)
	}
}

func writeInstance(w io.Writer, r *benchjson.Result) {
	fmt.Fprintf(w, "**Instance #%d — %s**\n\n", r.InstanceID, outcomeLabel(r.Outcome))
	m := r.Metrics
	if r.Outcome == benchjson.Success {
		fmt.Fprintf(w, "| Metric | Value |\n|---|---|\n")
		fmt.Fprintf(w, "| Time | %.2f ms |\n", m.TimeMS)
		fmt.Fprintf(w, "| Memory | %d KB |\n", m.MemoryKB)
		fmt.Fprintf(w, "| Nodes visited | %d |\n", m.NodesVisited)
		fmt.Fprintf(w, "| Nodes generated | %d |\n", m.NodesGenerated)
		fmt.Fprintf(w, "| Solution length | %d |\n", m.SolutionLength)
		fmt.Fprintf(w, "| Max frontier size | %d |\n\n", m.MaxFrontierSize)
	} else {
		msg := r.Error
		if msg == "" {
			msg = outcomeLabel(r.Outcome)
		}
		fmt.Fprintf(w, "Error: %s\n\n", msg)
		if m.NodesVisited > 0 {
			fmt.Fprintf(w, "Partial progress before failure:\n\n")
			fmt.Fprintf(w, "| Metric | Value |\n|---|---|\n")
			fmt.Fprintf(w, "| Elapsed | %.2f ms |\n", m.TimeMS)
			if m.MemoryKB > 0 {
				fmt.Fprintf(w, "| Memory | %d KB |\n", m.MemoryKB)
			}
			fmt.Fprintf(w, "| Nodes visited | %d |\n", m.NodesVisited)
			fmt.Fprintf(w, "| Nodes generated | %d |\n\n", m.NodesGenerated)
		}
	}
	if r.InitialState != "" {
		fmt.Fprintf(w, "<details>\n<summary>Initial state</summary>\n\n```\n%s\n```\n\n</details>\n\n", r.InitialState)
	}
}
