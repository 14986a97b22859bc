// Copyright 2025 The Searchbench Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchjson

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestLoad(t *testing.T) {
	results, err := Load("testdata/current.json")
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 2 {
		t.Fatalf("got %d results, want 2", len(results))
	}
	if results[1].Outcome != Timeout {
		t.Errorf("got outcome %v, want %v", results[1].Outcome, Timeout)
	}

	if _, err := Load("testdata/truncated.json"); err == nil {
		t.Error("Load succeeded on truncated input")
	}
	if _, err := Load("testdata/nonexistent.json"); err == nil {
		t.Error("Load succeeded on missing file")
	}
}

func TestLoadAll(t *testing.T) {
	results, skipped, err := LoadAll([]string{
		"testdata/current.json",
		"testdata/truncated.json",
		"testdata/legacy.json",
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 3 {
		t.Errorf("got %d results, want 3", len(results))
	}
	if len(skipped) != 1 {
		t.Fatalf("got %d skipped, want 1", len(skipped))
	}
	var perr *ParseError
	if !errors.As(skipped[0], &perr) {
		t.Errorf("skip reason: got %v, want ParseError", skipped[0])
	}

	// Legacy failure mapped to NoSolution, never Timeout.
	if got := results[2].Outcome; got != NoSolution {
		t.Errorf("legacy failure: got %v, want %v", got, NoSolution)
	}
}

func TestLoadAllNoResults(t *testing.T) {
	empty := filepath.Join(t.TempDir(), "empty.json")
	if err := os.WriteFile(empty, []byte("[]"), 0666); err != nil {
		t.Fatal(err)
	}

	_, _, err := LoadAll([]string{"testdata/truncated.json", empty})
	if !errors.Is(err, ErrNoResults) {
		t.Errorf("got %v, want ErrNoResults", err)
	}
}

func TestLoadAllSchemaErrorFatal(t *testing.T) {
	bad := filepath.Join(t.TempDir(), "bad.json")
	if err := os.WriteFile(bad, []byte(`[{"problem": "p"}]`), 0666); err != nil {
		t.Fatal(err)
	}

	_, _, err := LoadAll([]string{"testdata/current.json", bad})
	var serr *SchemaError
	if !errors.As(err, &serr) {
		t.Errorf("got %v, want SchemaError to propagate", err)
	}
}
