// Copyright 2025 The Searchbench Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Benchreport aggregates benchmark result files and renders a report.
//
// Usage:
//
//	benchreport [-o report.md] [-html report.html] [-charts dir] [-details] input.json...
//
// The markdown report goes to standard output unless -o is given.
// -charts renders the PNG chart set into dir and links it from the
// report. Inputs that fail to parse are skipped with a warning; the
// report only fails when no input yields records.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/searchbench/analysis/benchjson"
	"github.com/searchbench/analysis/benchplot"
	"github.com/searchbench/analysis/benchreport"
	"github.com/searchbench/analysis/benchstat"
)

var (
	mdOut    = flag.String("o", "", "write markdown report to `file` (default stdout)")
	htmlOut  = flag.String("html", "", "write HTML report to `file`")
	chartDir = flag.String("charts", "", "render PNG charts into `dir` and link them")
	details  = flag.Bool("details", false, "include the per-instance details section")
	title    = flag.String("title", "", "report title")
)

func usage() {
	fmt.Fprintf(os.Stderr, "usage: benchreport [flags] input.json...\n")
	flag.PrintDefaults()
	os.Exit(2)
}

func main() {
	log.SetPrefix("benchreport: ")
	log.SetFlags(0)
	flag.Usage = usage
	flag.Parse()
	if flag.NArg() < 1 {
		usage()
	}

	results, skipped, err := benchjson.LoadAll(flag.Args())
	for _, serr := range skipped {
		log.Printf("warning: skipped input: %v", serr)
	}
	if err != nil {
		log.Fatal(err)
	}

	rows := benchstat.Aggregate(results)
	best := benchstat.BestOf(results)

	if *chartDir != "" {
		if err := benchplot.WriteCharts(rows, *chartDir, benchplot.Options{}); err != nil {
			log.Fatal(err)
		}
	}

	opts := benchreport.Options{Title: *title, ChartDir: *chartDir, Details: *details}
	if err := writeTo(*mdOut, func(w io.Writer) error {
		return benchreport.WriteMarkdown(w, rows, best, results, opts)
	}); err != nil {
		log.Fatal(err)
	}
	if *htmlOut != "" {
		err := writeTo(*htmlOut, func(w io.Writer) error {
			return benchreport.WriteHTML(w, rows, best, opts)
		})
		if err != nil {
			log.Fatal(err)
		}
	}
}

// writeTo writes through render to path, or to stdout if path is
// empty.
func writeTo(path string, render func(io.Writer) error) error {
	if path == "" {
		w := bufio.NewWriter(os.Stdout)
		if err := render(w); err != nil {
			return err
		}
		return w.Flush()
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := render(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
