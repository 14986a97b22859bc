// Copyright 2025 The Searchbench Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package benchmerge combines independently produced benchmark result
// collections into one.
//
// The identity key (problem, algorithm, problem size, instance id)
// must be unique across the merged collection; a duplicate would
// silently double that run's statistical weight downstream. The
// default policy keeps the first occurrence and reports every
// duplicate, so one stale input does not abort a whole merge; Strict
// mode turns the first duplicate into a hard error instead.
package benchmerge

import (
	"fmt"
	"sort"

	"github.com/searchbench/analysis/benchjson"
)

// A DuplicateError reports a run whose identity key was already seen.
// FirstSource and DupSource are indices into the merged input
// sequence.
type DuplicateError struct {
	Key         benchjson.Key
	FirstSource int
	DupSource   int
}

func (e *DuplicateError) Error() string {
	return fmt.Sprintf("duplicate run %s: input %d repeats input %d", e.Key, e.DupSource, e.FirstSource)
}

// Options configures a merge.
type Options struct {
	// Strict makes any duplicate identity key fail the merge
	// instead of being kept-first and reported.
	Strict bool
}

// A GroupCount is the number of merged runs for one
// (problem, problem size) pair.
type GroupCount struct {
	Problem     string
	ProblemSize int
	Count       int
}

// A Summary describes a merged collection for operator visibility.
type Summary struct {
	Total  int
	Groups []GroupCount // sorted by problem, then size
}

// A Merged is the outcome of a successful merge. Duplicates is empty
// under Strict (a duplicate would have failed the merge) and lists
// the dropped occurrences otherwise.
type Merged struct {
	Results    []*benchjson.Result
	Duplicates []*DuplicateError
	Summary    Summary
}

// Merge concatenates the input collections in order, enforcing
// identity-key uniqueness both within and across inputs.
//
// Merging zero collections, or collections that are all empty, fails
// with benchjson.ErrNoResults.
func Merge(collections [][]*benchjson.Result, opts Options) (*Merged, error) {
	seen := make(map[benchjson.Key]int) // key -> source index of first occurrence
	m := &Merged{}
	for src, results := range collections {
		for _, r := range results {
			k := r.Key()
			if first, ok := seen[k]; ok {
				dup := &DuplicateError{Key: k, FirstSource: first, DupSource: src}
				if opts.Strict {
					return nil, dup
				}
				m.Duplicates = append(m.Duplicates, dup)
				continue
			}
			seen[k] = src
			m.Results = append(m.Results, r)
		}
	}
	if len(m.Results) == 0 {
		return nil, benchjson.ErrNoResults
	}
	m.Summary = summarize(m.Results)
	return m, nil
}

// MergeFiles loads each path with benchjson.Load and merges the
// results. A file that fails to load is skipped and the reason
// collected in skipped, matching the multi-source policy of
// benchjson.LoadAll; if every file is skipped the merge fails with
// benchjson.ErrNoResults.
func MergeFiles(paths []string, opts Options) (m *Merged, skipped []error, err error) {
	// Skipped files stay in the sequence as empty collections so
	// that duplicate source indices line up with path positions.
	collections := make([][]*benchjson.Result, len(paths))
	for i, path := range paths {
		results, err := benchjson.Load(path)
		if err != nil {
			skipped = append(skipped, err)
			continue
		}
		collections[i] = results
	}
	m, err = Merge(collections, opts)
	if err != nil {
		return nil, skipped, err
	}
	return m, skipped, nil
}

func summarize(results []*benchjson.Result) Summary {
	type ps struct {
		problem string
		size    int
	}
	counts := make(map[ps]int)
	for _, r := range results {
		counts[ps{r.Problem, r.ProblemSize}]++
	}
	s := Summary{Total: len(results)}
	for k, n := range counts {
		s.Groups = append(s.Groups, GroupCount{Problem: k.problem, ProblemSize: k.size, Count: n})
	}
	sort.Slice(s.Groups, func(i, j int) bool {
		a, b := s.Groups[i], s.Groups[j]
		if a.Problem != b.Problem {
			return a.Problem < b.Problem
		}
		return a.ProblemSize < b.ProblemSize
	})
	return s
}
