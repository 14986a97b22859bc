// Copyright 2025 The Searchbench Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package dbtest provides testing databases for the results store.
package dbtest

import (
	"flag"
	"testing"

	_ "github.com/go-sql-driver/mysql"

	"github.com/searchbench/analysis/storage/db"
	_ "github.com/searchbench/analysis/storage/db/sqlite3"
)

var mysqlDSN = flag.String("mysql", "", "test against this MySQL DSN instead of in-memory SQLite")

// NewDB makes a connection to a testing database, in-memory SQLite by
// default or MySQL with -mysql. cleanup must be called when done with
// the testing database, instead of calling db.Close().
func NewDB(t *testing.T) (*db.DB, func()) {
	driverName, dataSourceName := "sqlite3", ":memory:"
	if *mysqlDSN != "" {
		driverName, dataSourceName = "mysql", *mysqlDSN
	}
	d, err := db.OpenSQL(driverName, dataSourceName)
	if err != nil {
		t.Fatalf("open database: %v", err)
	}
	return d, func() {
		if err := d.Close(); err != nil {
			t.Error(err)
		}
	}
}
