// Copyright 2025 The Searchbench Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package db_test

import (
	"context"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/searchbench/analysis/benchjson"
	"github.com/searchbench/analysis/benchmerge"
	"github.com/searchbench/analysis/storage/db/dbtest"
)

func results() []*benchjson.Result {
	mk := func(problem string, size int, algo string, id int) *benchjson.Result {
		return &benchjson.Result{
			Algorithm:   algo,
			Problem:     problem,
			ProblemSize: size,
			InstanceID:  id,
			Outcome:     benchjson.Success,
			Metrics: benchjson.Metrics{
				TimeMS: 1.5, MemoryKB: 64, NodesVisited: 10,
				NodesGenerated: 20, SolutionLength: 4, MaxFrontierSize: 6,
			},
			Timestamp: "2025-02-11T09:15:00Z",
		}
	}
	return []*benchjson.Result{
		mk("taquin", 3, "astar", 0),
		mk("taquin", 3, "astar", 1),
		mk("grid", 10, "bfs", 0),
	}
}

func TestInsertAndQuery(t *testing.T) {
	d, cleanup := dbtest.NewDB(t)
	defer cleanup()
	ctx := context.Background()

	in := results()
	if _, err := d.InsertResults(ctx, in); err != nil {
		t.Fatal(err)
	}

	got, err := d.Results(ctx, "")
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 3 {
		t.Fatalf("got %d stored runs, want 3", len(got))
	}
	// Results come back ordered by identity key; grid sorts first.
	if got[0].Problem != "grid" {
		t.Errorf("got first problem %q, want grid", got[0].Problem)
	}

	taquin, err := d.Results(ctx, "taquin")
	if err != nil {
		t.Fatal(err)
	}
	if len(taquin) != 2 {
		t.Fatalf("got %d taquin runs, want 2", len(taquin))
	}
	if diff := cmp.Diff(in[0], taquin[0]); diff != "" {
		t.Errorf("stored run mismatch (-want +got):\n%s", diff)
	}
}

func TestCountByGroup(t *testing.T) {
	d, cleanup := dbtest.NewDB(t)
	defer cleanup()
	ctx := context.Background()

	if _, err := d.InsertResults(ctx, results()); err != nil {
		t.Fatal(err)
	}
	groups, err := d.CountByGroup(ctx)
	if err != nil {
		t.Fatal(err)
	}
	want := []benchmerge.GroupCount{
		{Problem: "grid", ProblemSize: 10, Count: 1},
		{Problem: "taquin", ProblemSize: 3, Count: 2},
	}
	if diff := cmp.Diff(want, groups); diff != "" {
		t.Errorf("group counts mismatch (-want +got):\n%s", diff)
	}
}

func TestDuplicateKeyRejected(t *testing.T) {
	d, cleanup := dbtest.NewDB(t)
	defer cleanup()
	ctx := context.Background()

	in := results()
	if _, err := d.InsertResults(ctx, in); err != nil {
		t.Fatal(err)
	}
	// A second upload with the same identity keys must fail and
	// name the offending run.
	_, err := d.InsertResults(ctx, in[:1])
	if err == nil {
		t.Fatal("duplicate insert succeeded")
	}
	if !strings.Contains(err.Error(), in[0].Key().String()) {
		t.Errorf("error %q does not name the duplicate key", err)
	}

	// The failed upload rolled back: counts unchanged.
	got, err := d.Results(ctx, "")
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 3 {
		t.Errorf("got %d stored runs after failed upload, want 3", len(got))
	}
}
