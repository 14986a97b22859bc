// Copyright 2025 The Searchbench Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchstat

import (
	"sort"

	"github.com/aclements/go-moremath/stats"

	"github.com/searchbench/analysis/benchjson"
)

// BestOfMetrics are the metrics considered by BestOf, in report
// order. Lower is better for all of them.
var BestOfMetrics = []string{"time_ms", "memory_kb", "nodes_visited"}

// A BestOfRow names the algorithm with the lowest mean for one metric
// on one problem, over successful runs only.
type BestOfRow struct {
	Problem   string
	Metric    string
	Algorithm string
	Mean      float64
}

// BestOf selects, for each problem and each metric in BestOfMetrics,
// the algorithm with the minimum mean over Success runs. Ties on the
// exact minimum go to the lexicographically first algorithm
// identifier, so the selection does not depend on input or iteration
// order. A problem with no successful run yields no rows.
func BestOf(results []*benchjson.Result) []*BestOfRow {
	// problem -> algorithm -> per-metric values
	byProblem := make(map[string]map[string][][]float64)
	for _, r := range results {
		if r.Outcome != benchjson.Success {
			continue
		}
		algos := byProblem[r.Problem]
		if algos == nil {
			algos = make(map[string][][]float64)
			byProblem[r.Problem] = algos
		}
		vals := algos[r.Algorithm]
		if vals == nil {
			vals = make([][]float64, len(BestOfMetrics))
			algos[r.Algorithm] = vals
		}
		vals[0] = append(vals[0], r.Metrics.TimeMS)
		vals[1] = append(vals[1], float64(r.Metrics.MemoryKB))
		vals[2] = append(vals[2], float64(r.Metrics.NodesVisited))
	}

	problems := make([]string, 0, len(byProblem))
	for p := range byProblem {
		problems = append(problems, p)
	}
	sort.Strings(problems)

	var rows []*BestOfRow
	for _, problem := range problems {
		algos := byProblem[problem]
		names := make([]string, 0, len(algos))
		for a := range algos {
			names = append(names, a)
		}
		// Ascending name order makes "first strictly smaller mean
		// wins" the lexicographic tie-break.
		sort.Strings(names)

		for mi, metric := range BestOfMetrics {
			best := &BestOfRow{Problem: problem, Metric: metric}
			for _, name := range names {
				mean := stats.Sample{Xs: algos[name][mi]}.Mean()
				if best.Algorithm == "" || mean < best.Mean {
					best.Algorithm = name
					best.Mean = mean
				}
			}
			rows = append(rows, best)
		}
	}
	return rows
}
