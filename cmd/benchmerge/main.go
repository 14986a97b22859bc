// Copyright 2025 The Searchbench Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Benchmerge merges benchmark result files into one.
//
// Usage:
//
//	benchmerge [-strict] output.json input.json...
//
// Inputs may use either the current (status) or the legacy (success)
// record schema; the output always uses the current schema. Input
// files that fail to parse are skipped with a warning; the merge only
// fails if nothing parses at all. Runs that repeat an identity key
// already seen are dropped and reported, unless -strict is given, in
// which case the first duplicate aborts the merge.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/searchbench/analysis/benchjson"
	"github.com/searchbench/analysis/benchmerge"
)

var strict = flag.Bool("strict", false, "fail on duplicate identity keys instead of keeping the first occurrence")

func usage() {
	fmt.Fprintf(os.Stderr, "usage: benchmerge [flags] output.json input.json...\n")
	flag.PrintDefaults()
	os.Exit(2)
}

func main() {
	log.SetPrefix("benchmerge: ")
	log.SetFlags(0)
	flag.Usage = usage
	flag.Parse()
	if flag.NArg() < 2 {
		usage()
	}
	output, inputs := flag.Arg(0), flag.Args()[1:]

	m, skipped, err := benchmerge.MergeFiles(inputs, benchmerge.Options{Strict: *strict})
	for _, serr := range skipped {
		log.Printf("warning: skipped input: %v", serr)
	}
	if err != nil {
		log.Fatal(err)
	}
	for _, dup := range m.Duplicates {
		log.Printf("warning: %v (kept first occurrence)", dup)
	}

	data, err := benchjson.Marshal(m.Results)
	if err != nil {
		log.Fatal(err)
	}
	if dir := filepath.Dir(output); dir != "." {
		if err := os.MkdirAll(dir, 0777); err != nil {
			log.Fatal(err)
		}
	}
	if err := os.WriteFile(output, data, 0666); err != nil {
		log.Fatal(err)
	}

	fmt.Printf("wrote %s: %d results\n", output, m.Summary.Total)
	for _, g := range m.Summary.Groups {
		fmt.Printf("  %s (size %d): %d results\n", g.Problem, g.ProblemSize, g.Count)
	}
}
