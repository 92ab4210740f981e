// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package db archives analysis runs in a SQL database.
//
// Each run stores the raw performance records it analyzed, the
// per-pair ratios and the overall summary. The archive is write-only
// from the analyzer's point of view; it exists so that runs can be
// compared over time by other tools.
package db

import (
	"bytes"
	"database/sql"
	"fmt"
	"strings"
	"text/template"
	"time"

	"golang.org/x/net/context"

	"github.com/morphosis/perfanalysis/perfcsv"
	"github.com/morphosis/perfanalysis/speedup"
)

// DB is a high-level interface to the run archive. It's safe for
// concurrent use by multiple goroutines.
type DB struct {
	sql *sql.DB // underlying database connection
	// prepared statements
	insertRun     *sql.Stmt
	insertRecord  *sql.Stmt
	insertPair    *sql.Stmt
	insertSummary *sql.Stmt
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
			db.Close()
			return nil, err
		}
	}
	d := &DB{sql: db}
	if err := d.createTables(driverName); err != nil {
		db.Close()
		return nil, err
	}
	if err := d.prepareStatements(); err != nil {
		db.Close()
		return nil, err
	}
	return d, nil
}

var openHooks = make(map[string]func(*sql.DB) error)

// RegisterOpenHook registers a hook to be called after opening a connection to driverName.
// This is used by the sqlite3 package to register a ConnectHook.
// It must be called from an init function.
func RegisterOpenHook(driverName string, hook func(*sql.DB) error) {
	openHooks[driverName] = hook
}

// createTmpl is the template used to prepare the CREATE statements
// for the database. It is evaluated with . as a map containing one
// entry whose key is the driver name.
var createTmpl = template.Must(template.New("create").Parse(`
CREATE TABLE IF NOT EXISTS Runs (
	RunID {{if .sqlite3}}INTEGER PRIMARY KEY AUTOINCREMENT{{else}}SERIAL PRIMARY KEY AUTO_INCREMENT{{end}},
	Source VARCHAR(1024),
	Created BIGINT
);
CREATE TABLE IF NOT EXISTS Records (
	RunID BIGINT UNSIGNED,
	RecordID BIGINT UNSIGNED,
	TestName VARCHAR(255),
	RealTime DOUBLE,
	MaxMemoryKB DOUBLE,
	PRIMARY KEY (RunID, RecordID),
	FOREIGN KEY (RunID) REFERENCES Runs(RunID) ON UPDATE CASCADE ON DELETE CASCADE
);
CREATE TABLE IF NOT EXISTS Pairs (
	RunID BIGINT UNSIGNED,
	GridSize VARCHAR(64),
	StepSize DOUBLE,
	Iterations BIGINT,
	Speedup DOUBLE,
	MemoryImprovement DOUBLE,
	PRIMARY KEY (RunID, GridSize, StepSize, Iterations),
	FOREIGN KEY (RunID) REFERENCES Runs(RunID) ON UPDATE CASCADE ON DELETE CASCADE
);
CREATE TABLE IF NOT EXISTS Summaries (
	RunID BIGINT UNSIGNED PRIMARY KEY,
	Tests BIGINT,
	Skipped BIGINT,
	Incomplete BIGINT,
	MeanSpeedup DOUBLE,
	MedianSpeedup DOUBLE,
	MinSpeedup DOUBLE,
	MaxSpeedup DOUBLE,
	StdDevSpeedup DOUBLE,
	MeanMemoryImprovement DOUBLE,
	FOREIGN KEY (RunID) REFERENCES Runs(RunID) ON UPDATE CASCADE ON DELETE CASCADE
);
{{if .sqlite3}}
CREATE INDEX IF NOT EXISTS RecordsTestName ON Records(TestName);
{{end}}
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
func (db *DB) prepareStatements() error {
	for _, s := range []struct {
		stmt **sql.Stmt
		q    string
	}{
		{&db.insertRun, "INSERT INTO Runs(Source, Created) VALUES (?, ?)"},
		{&db.insertRecord, "INSERT INTO Records(RunID, RecordID, TestName, RealTime, MaxMemoryKB) VALUES (?, ?, ?, ?, ?)"},
		{&db.insertPair, "INSERT INTO Pairs(RunID, GridSize, StepSize, Iterations, Speedup, MemoryImprovement) VALUES (?, ?, ?, ?, ?, ?)"},
		{&db.insertSummary, "INSERT INTO Summaries(RunID, Tests, Skipped, Incomplete, MeanSpeedup, MedianSpeedup, MinSpeedup, MaxSpeedup, StdDevSpeedup, MeanMemoryImprovement) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)"},
	} {
		var err error
		if *s.stmt, err = db.sql.Prepare(s.q); err != nil {
			return err
		}
	}
	return nil
}

// now is a hook for testing
var now = time.Now

// A Run is one archived analysis.
type Run struct {
	// ID is the primary key of the run.
	ID int64

	// Source names the performance file the run analyzed.
	Source string

	// Created is the time the run was started, to the second.
	Created time.Time

	// recordid is the index of the next record to insert.
	recordid int64
	// db is the underlying database that this run is going to.
	db *DB
}

// NewRun starts a new archived run for the performance file source.
func (db *DB) NewRun(ctx context.Context, source string) (*Run, error) {
	created := now().UTC().Truncate(time.Second)
	res, err := db.insertRun.ExecContext(ctx, source, created.Unix())
	if err != nil {
		return nil, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	return &Run{ID: id, Source: source, Created: created, db: db}, nil
}

// InsertRecord inserts a single performance record in the run.
func (r *Run) InsertRecord(ctx context.Context, rec *perfcsv.Record) error {
	if _, err := r.db.insertRecord.ExecContext(ctx, r.ID, r.recordid, rec.TestName, rec.RealTime, rec.MaxMemoryKB); err != nil {
		return err
	}
	r.recordid++
	return nil
}

// InsertRecords inserts records in the run within a single
// transaction.
func (r *Run) InsertRecords(ctx context.Context, recs []*perfcsv.Record) (err error) {
	tx, err := r.db.sql.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		} else {
			err = tx.Commit()
		}
	}()
	stmt := tx.StmtContext(ctx, r.db.insertRecord)
	id := r.recordid
	for _, rec := range recs {
		if _, err := stmt.ExecContext(ctx, r.ID, id, rec.TestName, rec.RealTime, rec.MaxMemoryKB); err != nil {
			return err
		}
		id++
	}
	r.recordid = id
	return nil
}

// InsertMetrics stores the per-pair ratios and the overall summary of
// m in the run. It may be called at most once per run.
func (r *Run) InsertMetrics(ctx context.Context, m *speedup.Metrics) (err error) {
	tx, err := r.db.sql.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		} else {
			err = tx.Commit()
		}
	}()

	pair := tx.StmtContext(ctx, r.db.insertPair)
	for _, p := range m.Pairs {
		if _, err := pair.ExecContext(ctx, r.ID, p.Key.GridSize, p.Key.StepSize, p.Key.Iterations, p.Speedup, p.MemoryImprovement); err != nil {
			return fmt.Errorf("inserting pair %s: %w", p.Key, err)
		}
	}

	o := m.Overall
	s := o.Speedup
	if _, err := tx.StmtContext(ctx, r.db.insertSummary).ExecContext(ctx,
		r.ID, o.Count(), m.Skipped, m.Incomplete,
		s.Mean, s.Median, s.Min, s.Max, s.StdDev, o.MeanMemoryImprovement); err != nil {
		return fmt.Errorf("inserting summary: %w", err)
	}
	return nil
}

// CountRuns returns the number of runs stored in the archive.
func (db *DB) CountRuns() (int, error) {
	var n int
	err := db.sql.QueryRow("SELECT COUNT(*) FROM Runs").Scan(&n)
	return n, err
}

// RunRecords returns the records archived for run id, in the order
// they were inserted.
func (db *DB) RunRecords(ctx context.Context, id int64) ([]*perfcsv.Record, error) {
	rows, err := db.sql.QueryContext(ctx, "SELECT TestName, RealTime, MaxMemoryKB FROM Records WHERE RunID = ? ORDER BY RecordID", id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []*perfcsv.Record
	for rows.Next() {
		rec := new(perfcsv.Record)
		if err := rows.Scan(&rec.TestName, &rec.RealTime, &rec.MaxMemoryKB); err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

// Close closes the database connections, releasing any open resources.
func (db *DB) Close() error {
	for _, stmt := range []*sql.Stmt{db.insertRun, db.insertRecord, db.insertPair, db.insertSummary} {
		if err := stmt.Close(); err != nil {
			return err
		}
	}
	return db.sql.Close()
}
