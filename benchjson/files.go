// Copyright 2025 The Searchbench Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchjson

import (
	"errors"
	"os"
)

// Load reads all records from one results file. Any error is fatal:
// callers loading a single file have nothing to skip to.
func Load(path string) ([]*Result, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data, path)
}

// LoadAll reads records from several results files in order.
//
// A file that cannot be read or is not a valid record array is
// skipped, and the reason is collected in skipped; batches routinely
// mix files from different harness versions and one stale file should
// not sink the rest. A *SchemaError is not skippable: it means a file
// parsed as a record array but carries a broken record, and silently
// dropping it would misreport attempted counts.
//
// If no file yields any record, LoadAll fails with ErrNoResults.
func LoadAll(paths []string) (results []*Result, skipped []error, err error) {
	for _, path := range paths {
		rs, err := Load(path)
		if err != nil {
			var serr *SchemaError
			if errors.As(err, &serr) {
				return nil, skipped, err
			}
			skipped = append(skipped, err)
			continue
		}
		results = append(results, rs...)
	}
	if len(results) == 0 {
		return nil, skipped, ErrNoResults
	}
	return results, skipped, nil
}
