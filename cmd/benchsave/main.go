// Copyright 2025 The Searchbench Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Benchsave stores benchmark result files in a results database.
//
// Usage:
//
//	benchsave [-driver sqlite3|mysql] [-dsn source] input.json...
//
// The input files are merged first (strict: duplicate identity keys
// abort the save), then stored as a single upload. The default target
// is a local SQLite file, results.db.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	_ "github.com/go-sql-driver/mysql"

	"github.com/searchbench/analysis/benchmerge"
	"github.com/searchbench/analysis/storage/db"
	_ "github.com/searchbench/analysis/storage/db/sqlite3"
)

var (
	driver = flag.String("driver", "sqlite3", "database driver (sqlite3 or mysql)")
	dsn    = flag.String("dsn", "results.db", "database data source name")
)

func usage() {
	fmt.Fprintf(os.Stderr, "usage: benchsave [flags] input.json...\n")
	flag.PrintDefaults()
	os.Exit(2)
}

func main() {
	log.SetPrefix("benchsave: ")
	log.SetFlags(0)
	flag.Usage = usage
	flag.Parse()
	if flag.NArg() < 1 {
		usage()
	}

	m, skipped, err := benchmerge.MergeFiles(flag.Args(), benchmerge.Options{Strict: true})
	for _, serr := range skipped {
		log.Printf("warning: skipped input: %v", serr)
	}
	if err != nil {
		log.Fatal(err)
	}

	d, err := db.OpenSQL(*driver, *dsn)
	if err != nil {
		log.Fatalf("open database: %v", err)
	}
	defer d.Close()

	uploadID, err := d.InsertResults(context.Background(), m.Results)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("upload %d: stored %d results\n", uploadID, m.Summary.Total)
	for _, g := range m.Summary.Groups {
		fmt.Printf("  %s (size %d): %d results\n", g.Problem, g.ProblemSize, g.Count)
	}
}
