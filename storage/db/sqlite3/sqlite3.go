// Copyright 2025 The Searchbench Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package sqlite3 provides the sqlite3 driver for the results store.
// It must be imported (for effect) by any binary that opens a
// sqlite3 database with db.OpenSQL.
package sqlite3

import (
	"database/sql"

	_ "github.com/mattn/go-sqlite3"

	"github.com/searchbench/analysis/storage/db"
)

func init() {
	db.RegisterOpenHook("sqlite3", func(db *sql.DB) error {
		_, err := db.Exec("PRAGMA foreign_keys = ON;")
		return err
	})
}
