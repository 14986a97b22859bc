// Copyright 2025 The Searchbench Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchjson

import (
	"encoding/json"
	"errors"
	"fmt"
)

// A SchemaError reports a raw record that is missing a required field
// or carries a malformed value. Index is the position of the record
// within its source array.
type SchemaError struct {
	File  string // source name, "" if decoded from memory
	Index int
	Field string
	Msg   string
}

func (e *SchemaError) Error() string {
	if e.File == "" {
		return fmt.Sprintf("record %d: field %q: %s", e.Index, e.Field, e.Msg)
	}
	return fmt.Sprintf("%s: record %d: field %q: %s", e.File, e.Index, e.Field, e.Msg)
}

// A ParseError reports a source that is not a valid JSON array of
// records at all. When loading several sources, a ParseError skips
// only the offending source.
type ParseError struct {
	File string
	Err  error
}

func (e *ParseError) Error() string {
	if e.File == "" {
		return fmt.Sprintf("parsing results: %v", e.Err)
	}
	return fmt.Sprintf("%s: parsing results: %v", e.File, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// ErrNoResults is returned when no valid record remains after
// parsing. It is surfaced rather than treated as an empty success
// because it almost always indicates a misconfigured run.
var ErrNoResults = errors.New("no benchmark results found")

// wireResult is the union of the two on-disk schemas. Pointer fields
// distinguish absent from zero.
type wireResult struct {
	Algorithm    *string      `json:"algorithm"`
	Problem      *string      `json:"problem"`
	ProblemSize  *int         `json:"problem_size"`
	InstanceID   *int         `json:"instance_id"`
	Status       *int         `json:"status,omitempty"`
	Success      *bool        `json:"success,omitempty"`
	Metrics      *wireMetrics `json:"metrics"`
	Error        string       `json:"error,omitempty"`
	InitialState string       `json:"initial_state,omitempty"`
	Timestamp    string       `json:"timestamp,omitempty"`
}

type wireMetrics struct {
	TimeMS          *float64 `json:"time_ms"`
	MemoryKB        *int     `json:"memory_kb"`
	NodesVisited    *int     `json:"nodes_visited"`
	NodesGenerated  *int     `json:"nodes_generated"`
	SolutionLength  *int     `json:"solution_length"`
	MaxFrontierSize *int     `json:"max_frontier_size"`
}

// Parse decodes a JSON array of raw records into canonical Results.
// fileName is used in error messages; it is purely diagnostic.
//
// A source that is not a JSON array fails with *ParseError. A record
// with a missing or malformed field fails with *SchemaError; nothing
// is recovered or defaulted.
func Parse(data []byte, fileName string) ([]*Result, error) {
	var raws []json.RawMessage
	if err := json.Unmarshal(data, &raws); err != nil {
		return nil, &ParseError{File: fileName, Err: err}
	}
	results := make([]*Result, 0, len(raws))
	for i, raw := range raws {
		r, err := decode(raw, fileName, i)
		if err != nil {
			return nil, err
		}
		results = append(results, r)
	}
	return results, nil
}

// decode normalizes one raw record. It is a pure function of its
// input.
func decode(raw json.RawMessage, fileName string, index int) (*Result, error) {
	fail := func(field, msg string) (*Result, error) {
		return nil, &SchemaError{File: fileName, Index: index, Field: field, Msg: msg}
	}

	var w wireResult
	if err := json.Unmarshal(raw, &w); err != nil {
		// Report the field if the type error names one.
		var uerr *json.UnmarshalTypeError
		if errors.As(err, &uerr) {
			return fail(uerr.Field, fmt.Sprintf("cannot decode %s as %s", uerr.Value, uerr.Type))
		}
		return fail("", err.Error())
	}

	switch {
	case w.Algorithm == nil:
		return fail("algorithm", "missing")
	case w.Problem == nil:
		return fail("problem", "missing")
	case w.ProblemSize == nil:
		return fail("problem_size", "missing")
	case *w.ProblemSize < 0:
		return fail("problem_size", "negative")
	case w.InstanceID == nil:
		return fail("instance_id", "missing")
	case w.Metrics == nil:
		return fail("metrics", "missing")
	}

	outcome, err := classify(&w, fileName, index)
	if err != nil {
		return nil, err
	}

	m, err := decodeMetrics(w.Metrics, fileName, index)
	if err != nil {
		return nil, err
	}

	return &Result{
		Algorithm:    *w.Algorithm,
		Problem:      *w.Problem,
		ProblemSize:  *w.ProblemSize,
		InstanceID:   *w.InstanceID,
		Outcome:      outcome,
		Metrics:      m,
		Error:        w.Error,
		InitialState: w.InitialState,
		Timestamp:    w.Timestamp,
	}, nil
}

// classify derives the tri-state outcome of a raw record. An explicit
// status field wins; otherwise the legacy success boolean maps
// true to Success and false to NoSolution. The legacy schema cannot
// express Timeout and no attempt is made to guess one. classify is
// total over well-formed records: there is no unknown outcome.
func classify(w *wireResult, fileName string, index int) (Outcome, error) {
	if w.Status != nil {
		s := Outcome(*w.Status)
		if s < Success || s > NoSolution {
			return 0, &SchemaError{File: fileName, Index: index, Field: "status",
				Msg: fmt.Sprintf("invalid value %d", *w.Status)}
		}
		return s, nil
	}
	if w.Success != nil {
		if *w.Success {
			return Success, nil
		}
		return NoSolution, nil
	}
	return 0, &SchemaError{File: fileName, Index: index, Field: "status",
		Msg: "missing (neither status nor legacy success present)"}
}

func decodeMetrics(w *wireMetrics, fileName string, index int) (Metrics, error) {
	fail := func(field string) (Metrics, error) {
		return Metrics{}, &SchemaError{File: fileName, Index: index,
			Field: "metrics." + field, Msg: "missing or negative"}
	}
	switch {
	case w.TimeMS == nil || *w.TimeMS < 0:
		return fail("time_ms")
	case w.MemoryKB == nil || *w.MemoryKB < 0:
		return fail("memory_kb")
	case w.NodesVisited == nil || *w.NodesVisited < 0:
		return fail("nodes_visited")
	case w.NodesGenerated == nil || *w.NodesGenerated < 0:
		return fail("nodes_generated")
	case w.SolutionLength == nil || *w.SolutionLength < 0:
		return fail("solution_length")
	case w.MaxFrontierSize == nil || *w.MaxFrontierSize < 0:
		return fail("max_frontier_size")
	}
	return Metrics{
		TimeMS:          *w.TimeMS,
		MemoryKB:        *w.MemoryKB,
		NodesVisited:    *w.NodesVisited,
		NodesGenerated:  *w.NodesGenerated,
		SolutionLength:  *w.SolutionLength,
		MaxFrontierSize: *w.MaxFrontierSize,
	}, nil
}

// Marshal encodes results in the current schema as an indented JSON
// array. Legacy records are upgraded: the output always carries a
// status field, never the success boolean.
func Marshal(results []*Result) ([]byte, error) {
	out := make([]wireResult, len(results))
	for i, r := range results {
		status := int(r.Outcome)
		out[i] = wireResult{
			Algorithm:   &r.Algorithm,
			Problem:     &r.Problem,
			ProblemSize: &r.ProblemSize,
			InstanceID:  &r.InstanceID,
			Status:      &status,
			Metrics: &wireMetrics{
				TimeMS:          &r.Metrics.TimeMS,
				MemoryKB:        &r.Metrics.MemoryKB,
				NodesVisited:    &r.Metrics.NodesVisited,
				NodesGenerated:  &r.Metrics.NodesGenerated,
				SolutionLength:  &r.Metrics.SolutionLength,
				MaxFrontierSize: &r.Metrics.MaxFrontierSize,
			},
			Error:        r.Error,
			InitialState: r.InitialState,
			Timestamp:    r.Timestamp,
		}
	}
	return json.MarshalIndent(out, "", "  ")
}
