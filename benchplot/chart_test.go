// Copyright 2025 The Searchbench Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchplot

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/searchbench/analysis/benchjson"
	"github.com/searchbench/analysis/benchstat"
)

func TestWriteCharts(t *testing.T) {
	results := []*benchjson.Result{
		{Problem: "taquin", Algorithm: "astar", InstanceID: 0, Outcome: benchjson.Success,
			Metrics: benchjson.Metrics{TimeMS: 10, MemoryKB: 100, NodesVisited: 40, NodesGenerated: 80, SolutionLength: 10, MaxFrontierSize: 5}},
		{Problem: "taquin", Algorithm: "bfs", InstanceID: 0, Outcome: benchjson.NoSolution,
			Metrics: benchjson.Metrics{TimeMS: 900, MemoryKB: 800, NodesVisited: 5000, NodesGenerated: 9000}},
		{Problem: "taquin", Algorithm: "bfs", InstanceID: 1, Outcome: benchjson.Success,
			Metrics: benchjson.Metrics{TimeMS: 30, MemoryKB: 300, NodesVisited: 400, NodesGenerated: 800, SolutionLength: 10, MaxFrontierSize: 50}},
	}
	rows := benchstat.Aggregate(results)

	dir := filepath.Join(t.TempDir(), "visuals")
	if err := WriteCharts(rows, dir, Options{}); err != nil {
		t.Fatal(err)
	}

	for _, name := range []string{
		"time_comparison.png",
		"memory_comparison.png",
		"nodes_visited.png",
		"nodes_generated.png",
		"success_rate.png",
	} {
		fi, err := os.Stat(filepath.Join(dir, name))
		if err != nil {
			t.Errorf("%s: %v", name, err)
			continue
		}
		if fi.Size() == 0 {
			t.Errorf("%s: empty file", name)
		}
	}
}
