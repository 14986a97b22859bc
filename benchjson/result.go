// Copyright 2025 The Searchbench Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package benchjson reads the JSON records produced by the search
// benchmarking harness and normalizes them into canonical Results.
//
// Two schema versions exist in the wild. The current schema carries a
// tri-state "status" field (0 success, 1 timeout, 2 no solution). The
// legacy schema carries a boolean "success" instead, which cannot
// distinguish a timeout from a genuine failure; legacy failures are
// therefore classified as NoSolution, never Timeout. Decoding accepts
// both schemas transparently and callers never see the difference.
//
// Results are immutable once loaded. This package never aggregates;
// that is the job of the benchstat package.
package benchjson

import (
	"fmt"
	"math"
)

// An Outcome is the tri-state classification of a benchmark run.
// The numeric values match the wire encoding of the "status" field.
type Outcome int

const (
	Success Outcome = iota
	Timeout
	NoSolution
)

func (o Outcome) String() string {
	switch o {
	case Success:
		return "success"
	case Timeout:
		return "timeout"
	case NoSolution:
		return "no-solution"
	}
	return fmt.Sprintf("Outcome(%d)", int(o))
}

// A Result is one canonical benchmark run: one algorithm applied to
// one problem instance.
type Result struct {
	Algorithm   string
	Problem     string
	ProblemSize int
	InstanceID  int

	Outcome Outcome
	Metrics Metrics

	// Error is the harness error message. Only set when
	// Outcome != Success.
	Error string

	// InitialState is a free-form diagnostic rendering of the
	// problem instance. Opaque to this module.
	InitialState string

	// Timestamp is the harness-reported run time. Opaque; carried
	// through merge and storage, never aggregated.
	Timestamp string
}

// Metrics are the per-run measurements reported by the harness.
//
// SolutionLength and MaxFrontierSize are only meaningful when the run
// succeeded. For failed runs all fields describe partial progress and
// may legitimately be zero if the run failed before processing any
// node.
type Metrics struct {
	TimeMS          float64
	MemoryKB        int
	NodesVisited    int
	NodesGenerated  int
	SolutionLength  int
	MaxFrontierSize int
}

// EffectiveBranchingFactor returns nodes_generated^(1/solution_length),
// or 0 when there is no solution to measure against.
func (m Metrics) EffectiveBranchingFactor() float64 {
	if m.SolutionLength == 0 {
		return 0
	}
	return math.Pow(float64(m.NodesGenerated), 1/float64(m.SolutionLength))
}

// A Key identifies one benchmark run. It is unique within a merged
// collection; the benchmerge package reports violations.
type Key struct {
	Problem     string
	Algorithm   string
	ProblemSize int
	InstanceID  int
}

func (k Key) String() string {
	return fmt.Sprintf("%s/%s/size=%d/instance=%d", k.Problem, k.Algorithm, k.ProblemSize, k.InstanceID)
}

// Key returns the identity key of r.
func (r *Result) Key() Key {
	return Key{r.Problem, r.Algorithm, r.ProblemSize, r.InstanceID}
}

// Clone makes a copy of Result that shares no state with r.
func (r *Result) Clone() *Result {
	r2 := *r
	return &r2
}
