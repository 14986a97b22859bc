// Copyright 2025 The Searchbench Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package db stores merged benchmark result collections in a SQL
// database.
//
// The identity key (problem, algorithm, problem size, instance id) is
// the primary key of the Runs table, so a duplicate that slipped past
// the merge layer is rejected by the database rather than silently
// doubling a run's weight.
package db

import (
	"bytes"
	"context"
	"database/sql"
	"fmt"
	"strings"
	"text/template"

	"github.com/searchbench/analysis/benchjson"
	"github.com/searchbench/analysis/benchmerge"
)

// DB is a high-level interface to a results database. It's safe for
// concurrent use by multiple goroutines.
type DB struct {
	sql *sql.DB // underlying database connection
	// prepared statements
	insertUpload *sql.Stmt
	insertRun    *sql.Stmt
}

// OpenSQL creates a DB backed by a SQL database. The parameters are
// the same as the parameters for sql.Open. Only mysql and sqlite3 are
// explicitly supported; other database engines will receive MySQL
// query syntax which may or may not be compatible.
func OpenSQL(driverName, dataSourceName string) (*DB, error) {
	db, err := sql.Open(driverName, dataSourceName)
	if err != nil {
		return nil, err
	}
	if hook := openHooks[driverName]; hook != nil {
		if err := hook(db); err != nil {
			return nil, err
		}
	}
	d := &DB{sql: db}
	if err := d.createTables(driverName); err != nil {
		return nil, err
	}
	if err := d.prepareStatements(driverName); err != nil {
		return nil, err
	}
	return d, nil
}

var openHooks = make(map[string]func(*sql.DB) error)

// RegisterOpenHook registers a hook to be called after opening a
// connection to driverName. This is used by the sqlite3 package to
// enable foreign keys. It must be called from an init function.
func RegisterOpenHook(driverName string, hook func(*sql.DB) error) {
	openHooks[driverName] = hook
}

// createTmpl is the template used to prepare the CREATE statements
// for the database. It is evaluated with . as a map containing one
// entry whose key is the driver name.
var createTmpl = template.Must(template.New("create").Parse(`
CREATE TABLE IF NOT EXISTS Uploads (
	UploadID {{if .sqlite3}}INTEGER PRIMARY KEY AUTOINCREMENT{{else}}SERIAL PRIMARY KEY AUTO_INCREMENT{{end}}
);
CREATE TABLE IF NOT EXISTS Runs (
	UploadID BIGINT UNSIGNED,
	Problem VARCHAR(255) NOT NULL,
	Algorithm VARCHAR(255) NOT NULL,
	ProblemSize BIGINT NOT NULL,
	InstanceID BIGINT NOT NULL,
	Outcome TINYINT NOT NULL,
	TimeMS DOUBLE NOT NULL,
	MemoryKB BIGINT NOT NULL,
	NodesVisited BIGINT NOT NULL,
	NodesGenerated BIGINT NOT NULL,
	SolutionLength BIGINT NOT NULL,
	MaxFrontierSize BIGINT NOT NULL,
	Error TEXT,
	InitialState TEXT,
	Timestamp VARCHAR(64),
	PRIMARY KEY (Problem, Algorithm, ProblemSize, InstanceID),
	FOREIGN KEY (UploadID) REFERENCES Uploads(UploadID) ON UPDATE CASCADE ON DELETE CASCADE
);
`))

// createTables creates any missing tables on the connection in
// db.sql. driverName is the same driver name passed to sql.Open and
// is used to select the correct syntax.
func (db *DB) createTables(driverName string) error {
	var buf bytes.Buffer
	if err := createTmpl.Execute(&buf, map[string]bool{driverName: true}); err != nil {
		return err
	}
	for _, q := range strings.Split(buf.String(), ";") {
		if strings.TrimSpace(q) == "" {
			continue
		}
		if _, err := db.sql.Exec(q); err != nil {
			return fmt.Errorf("create table: %v", err)
		}
	}
	return nil
}

// prepareStatements calls db.sql.Prepare on reusable SQL statements.
func (db *DB) prepareStatements(driverName string) error {
	var err error
	q := "INSERT INTO Uploads() VALUES ()"
	if driverName == "sqlite3" {
		q = "INSERT INTO Uploads DEFAULT VALUES"
	}
	db.insertUpload, err = db.sql.Prepare(q)
	if err != nil {
		return err
	}
	db.insertRun, err = db.sql.Prepare(
		"INSERT INTO Runs(UploadID, Problem, Algorithm, ProblemSize, InstanceID, Outcome, TimeMS, MemoryKB, NodesVisited, NodesGenerated, SolutionLength, MaxFrontierSize, Error, InitialState, Timestamp) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)")
	if err != nil {
		return err
	}
	return nil
}

// InsertResults stores results as one upload, atomically, and returns
// the new upload ID. A run whose identity key is already stored fails
// the whole upload with an error naming the key.
func (db *DB) InsertResults(ctx context.Context, results []*benchjson.Result) (uploadID int64, err error) {
	tx, err := db.sql.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		} else {
			err = tx.Commit()
		}
	}()

	res, err := tx.StmtContext(ctx, db.insertUpload).ExecContext(ctx)
	if err != nil {
		return 0, err
	}
	uploadID, err = res.LastInsertId()
	if err != nil {
		return 0, err
	}

	insert := tx.StmtContext(ctx, db.insertRun)
	for _, r := range results {
		_, err = insert.ExecContext(ctx, uploadID,
			r.Problem, r.Algorithm, r.ProblemSize, r.InstanceID,
			int(r.Outcome), r.Metrics.TimeMS, r.Metrics.MemoryKB,
			r.Metrics.NodesVisited, r.Metrics.NodesGenerated,
			r.Metrics.SolutionLength, r.Metrics.MaxFrontierSize,
			r.Error, r.InitialState, r.Timestamp)
		if err != nil {
			return 0, fmt.Errorf("insert run %s: %v", r.Key(), err)
		}
	}
	return uploadID, nil
}

// Results returns the stored runs for problem, or every stored run if
// problem is empty, ordered by identity key.
func (db *DB) Results(ctx context.Context, problem string) ([]*benchjson.Result, error) {
	q := "SELECT Problem, Algorithm, ProblemSize, InstanceID, Outcome, TimeMS, MemoryKB, NodesVisited, NodesGenerated, SolutionLength, MaxFrontierSize, Error, InitialState, Timestamp FROM Runs"
	var args []interface{}
	if problem != "" {
		q += " WHERE Problem = ?"
		args = append(args, problem)
	}
	q += " ORDER BY Problem, Algorithm, ProblemSize, InstanceID"

	rows, err := db.sql.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []*benchjson.Result
	for rows.Next() {
		var r benchjson.Result
		var outcome int
		err := rows.Scan(&r.Problem, &r.Algorithm, &r.ProblemSize, &r.InstanceID,
			&outcome, &r.Metrics.TimeMS, &r.Metrics.MemoryKB,
			&r.Metrics.NodesVisited, &r.Metrics.NodesGenerated,
			&r.Metrics.SolutionLength, &r.Metrics.MaxFrontierSize,
			&r.Error, &r.InitialState, &r.Timestamp)
		if err != nil {
			return nil, err
		}
		r.Outcome = benchjson.Outcome(outcome)
		results = append(results, &r)
	}
	return results, rows.Err()
}

// CountByGroup returns the per-(problem, problem size) run counts,
// the same breakdown the merge summary prints.
func (db *DB) CountByGroup(ctx context.Context) ([]benchmerge.GroupCount, error) {
	rows, err := db.sql.QueryContext(ctx,
		"SELECT Problem, ProblemSize, COUNT(*) FROM Runs GROUP BY Problem, ProblemSize ORDER BY Problem, ProblemSize")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var groups []benchmerge.GroupCount
	for rows.Next() {
		var g benchmerge.GroupCount
		if err := rows.Scan(&g.Problem, &g.ProblemSize, &g.Count); err != nil {
			return nil, err
		}
		groups = append(groups, g)
	}
	return groups, rows.Err()
}

// Close closes the database connections, releasing any open resources.
func (db *DB) Close() error {
	if err := db.insertUpload.Close(); err != nil {
		return err
	}
	if err := db.insertRun.Close(); err != nil {
		return err
	}
	return db.sql.Close()
}
