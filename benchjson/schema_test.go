// Copyright 2025 The Searchbench Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchjson

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

const currentRecord = `{
	"algorithm": "astar",
	"problem": "taquin",
	"problem_size": 3,
	"instance_id": 7,
	"status": 0,
	"metrics": {
		"time_ms": 12.5,
		"memory_kb": 2048,
		"nodes_visited": 40,
		"nodes_generated": 90,
		"solution_length": 14,
		"max_frontier_size": 25
	},
	"timestamp": "2025-03-01T10:00:00Z"
}`

func TestParseCurrentSchema(t *testing.T) {
	results, err := Parse([]byte("["+currentRecord+"]"), "t.json")
	if err != nil {
		t.Fatal(err)
	}
	want := []*Result{{
		Algorithm:   "astar",
		Problem:     "taquin",
		ProblemSize: 3,
		InstanceID:  7,
		Outcome:     Success,
		Metrics: Metrics{
			TimeMS:          12.5,
			MemoryKB:        2048,
			NodesVisited:    40,
			NodesGenerated:  90,
			SolutionLength:  14,
			MaxFrontierSize: 25,
		},
		Timestamp: "2025-03-01T10:00:00Z",
	}}
	if diff := cmp.Diff(want, results); diff != "" {
		t.Errorf("Parse mismatch (-want +got):\n%s", diff)
	}
}

func record(fields string) []byte {
	return []byte(`[{
		"algorithm": "bfs", "problem": "grid", "problem_size": 10, "instance_id": 0,
		` + fields + `,
		"metrics": {"time_ms": 1, "memory_kb": 1, "nodes_visited": 1,
			"nodes_generated": 1, "solution_length": 0, "max_frontier_size": 1}
	}]`)
}

func TestClassify(t *testing.T) {
	check := func(fields string, want Outcome) {
		t.Helper()
		results, err := Parse(record(fields), "")
		if err != nil {
			t.Fatalf("%s: %v", fields, err)
		}
		if got := results[0].Outcome; got != want {
			t.Errorf("%s: got %v, want %v", fields, got, want)
		}
	}

	// Explicit status wins, including alongside a legacy field.
	check(`"status": 0`, Success)
	check(`"status": 1`, Timeout)
	check(`"status": 2`, NoSolution)
	check(`"status": 1, "success": true`, Timeout)

	// Legacy mapping. A legacy failure is never a Timeout: the old
	// schema cannot express one.
	check(`"success": true`, Success)
	check(`"success": false`, NoSolution)
}

func TestSchemaErrors(t *testing.T) {
	check := func(src, wantField string) {
		t.Helper()
		_, err := Parse([]byte(src), "in.json")
		var serr *SchemaError
		if !errors.As(err, &serr) {
			t.Fatalf("got %v, want SchemaError", err)
		}
		if serr.Field != wantField {
			t.Errorf("got field %q, want %q", serr.Field, wantField)
		}
		if !strings.HasPrefix(serr.Error(), "in.json: record 0:") {
			t.Errorf("error %q does not name source and index", serr)
		}
	}

	check(`[{"problem": "p", "problem_size": 1, "instance_id": 0, "status": 0,
		"metrics": {"time_ms": 1, "memory_kb": 1, "nodes_visited": 1,
			"nodes_generated": 1, "solution_length": 1, "max_frontier_size": 1}}]`,
		"algorithm")
	check(string(record(`"status": 5`)), "status")
	check(string(record(`"other": 1`)), "status") // neither status nor success
	check(`[{"algorithm": "a", "problem": "p", "problem_size": -1, "instance_id": 0, "status": 0,
		"metrics": {"time_ms": 1, "memory_kb": 1, "nodes_visited": 1,
			"nodes_generated": 1, "solution_length": 1, "max_frontier_size": 1}}]`,
		"problem_size")
	check(`[{"algorithm": "a", "problem": "p", "problem_size": 1, "instance_id": 0, "status": 0,
		"metrics": {"time_ms": -1, "memory_kb": 1, "nodes_visited": 1,
			"nodes_generated": 1, "solution_length": 1, "max_frontier_size": 1}}]`,
		"metrics.time_ms")
	check(`[{"algorithm": "a", "problem": "p", "problem_size": 1, "instance_id": 0, "status": 0}]`,
		"metrics")
}

func TestParseError(t *testing.T) {
	var perr *ParseError
	if _, err := Parse([]byte("not json"), "x.json"); !errors.As(err, &perr) {
		t.Errorf("got %v, want ParseError", err)
	}
	if _, err := Parse([]byte(`{"algorithm": "a"}`), "x.json"); !errors.As(err, &perr) {
		t.Errorf("non-array input: got %v, want ParseError", err)
	}
}

func TestMarshalUpgradesLegacy(t *testing.T) {
	in, err := Parse(record(`"success": false`), "")
	if err != nil {
		t.Fatal(err)
	}
	data, err := Marshal(in)
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(string(data), "success") {
		t.Errorf("marshaled output still carries the legacy success field:\n%s", data)
	}
	if !strings.Contains(string(data), `"status": 2`) {
		t.Errorf("marshaled output missing status 2:\n%s", data)
	}

	out, err := Parse(data, "")
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(in, out); diff != "" {
		t.Errorf("round trip mismatch (-in +out):\n%s", diff)
	}
}

func TestKey(t *testing.T) {
	results, err := Parse([]byte("["+currentRecord+"]"), "")
	if err != nil {
		t.Fatal(err)
	}
	want := Key{Problem: "taquin", Algorithm: "astar", ProblemSize: 3, InstanceID: 7}
	if got := results[0].Key(); got != want {
		t.Errorf("got key %v, want %v", got, want)
	}
	if got, want := want.String(), "taquin/astar/size=3/instance=7"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}
