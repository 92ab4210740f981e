// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Perfanalysis summarizes Morphosis optimization benchmarks.
//
// Usage:
//
//	perfanalysis [file.csv]
//
// The input file, performance_data.csv by default, is a CSV file with
// one row per benchmark run and the columns test_name, real_time and
// max_memory_kb. Test names have the form
//
//	<grid>_<step>_<iterations>_<version>
//
// where version is "original" or "optimized". Perfanalysis pairs the
// original and optimized run of every configuration, computes the
// speedup and memory improvement of each pair, and writes a report
// summarizing them overall and by grid size, step size and iteration
// count. The report is saved to performance_analysis_report.txt and
// printed to standard output. A dashboard of charts is saved to
// performance_analysis.png.
//
// Rows that cannot be parsed, and runs whose test name is malformed,
// are logged and skipped. If the input file does not exist or holds
// no runs, perfanalysis says so and exits successfully without
// writing anything.
//
// # Configuration
//
// Perfanalysis is configured through the environment:
//
//	PERFANALYSIS_REPORT       report file (default performance_analysis_report.txt)
//	PERFANALYSIS_CHART        chart file, empty to disable (default performance_analysis.png)
//	PERFANALYSIS_CHART_DPI    chart resolution (default 100)
//	PERFANALYSIS_HTML         also write the report as HTML to this file
//	PERFANALYSIS_XLSX         also write the metrics as an Excel workbook to this file
//	PERFANALYSIS_DB_DRIVER    archive database driver, sqlite3 or mysql (default sqlite3)
//	PERFANALYSIS_DB           archive every run in this database
//	PERFANALYSIS_PUBLISH_DIR  copy every output file into this directory
//	PERFANALYSIS_GCS_BUCKET   copy every output file into this Cloud Storage bucket
//	PERFANALYSIS_GCS_TOKEN    OAuth2 access token for the bucket
//	PERFANALYSIS_LOG_LEVEL    debug, info, warn or error (default info)
//	PERFANALYSIS_LOG_FORMAT   text or json (default text)
//
// Failures of the optional outputs are logged and do not stop the run.
package main

import (
	"bytes"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"google.golang.org/api/option"

	"github.com/morphosis/perfanalysis/chart"
	"github.com/morphosis/perfanalysis/internal/config"
	"github.com/morphosis/perfanalysis/perfcsv"
	"github.com/morphosis/perfanalysis/report"
	"github.com/morphosis/perfanalysis/speedup"
	"github.com/morphosis/perfanalysis/storage/db"
	_ "github.com/morphosis/perfanalysis/storage/db/sqlite3"
	"github.com/morphosis/perfanalysis/storage/fs"
	"github.com/morphosis/perfanalysis/storage/fs/gcs"
	"github.com/morphosis/perfanalysis/storage/fs/local"
	"github.com/morphosis/perfanalysis/workbook"
)

// noData is printed when there is nothing to analyze.
const noData = "No performance data found. Please run performance tests first."

// now is a hook for testing
var now = time.Now

func usage() {
	fmt.Fprintf(os.Stderr, "usage: perfanalysis [file.csv]\n")
	fmt.Fprintf(os.Stderr, "\nThe default input file is %s.\n", perfcsv.DefaultPath)
	fmt.Fprintf(os.Stderr, "See 'go doc github.com/morphosis/perfanalysis/cmd/perfanalysis' for the configuration variables.\n")
	os.Exit(2)
}

func main() {
	log.SetPrefix("perfanalysis: ")
	log.SetFlags(0)
	flag.Usage = usage
	flag.Parse()
	if flag.NArg() > 1 {
		flag.Usage()
	}
	path := perfcsv.DefaultPath
	if flag.NArg() == 1 {
		path = flag.Arg(0)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}
	logger, err := cfg.Logger(os.Stderr)
	if err != nil {
		log.Fatal(err)
	}

	if err := perfanalysis(context.Background(), cfg, logger, os.Stdout, path); err != nil {
		log.Fatal(err)
	}
}

// perfanalysis analyzes the performance file at path and writes the
// configured outputs. Only a failure to read the input or to write
// the text report is returned; other outputs log their failures.
func perfanalysis(ctx context.Context, cfg *config.Config, logger *slog.Logger, stdout io.Writer, path string) error {
	ds, err := perfcsv.Load(path, logger)
	var notFound *perfcsv.NotFoundError
	if errors.As(err, &notFound) {
		logger.Warn("performance data file not found", "file", path)
	} else if err != nil {
		return err
	}
	if len(ds.Records) == 0 {
		fmt.Fprintln(stdout, noData)
		return nil
	}

	m := speedup.Aggregate(ds.Records, logger)
	m.Skipped += len(ds.Skipped)

	opts := &report.Options{Now: now}
	var buf bytes.Buffer
	if err := report.Text(&buf, m, opts); err != nil {
		return fmt.Errorf("rendering report: %w", err)
	}

	var outputs []string
	if cfg.Report != "" {
		if err := os.WriteFile(cfg.Report, buf.Bytes(), 0666); err != nil {
			return fmt.Errorf("writing report: %w", err)
		}
		logger.Info("performance report saved", "file", cfg.Report)
		outputs = append(outputs, cfg.Report)
	}
	if _, err := stdout.Write(buf.Bytes()); err != nil {
		return err
	}

	if cfg.Chart != "" {
		if err := chart.Save(cfg.Chart, ds.Records, &chart.Options{DPI: cfg.ChartDPI}); err != nil {
			logger.Error("creating visualization", "err", err)
		} else {
			logger.Info("performance visualization saved", "file", cfg.Chart)
			outputs = append(outputs, cfg.Chart)
		}
	}

	for _, out := range []struct {
		kind, path string
		write      func(io.Writer) error
	}{
		{"HTML report", cfg.HTML, func(w io.Writer) error { return report.HTML(w, m, opts) }},
		{"workbook", cfg.XLSX, func(w io.Writer) error { return workbook.Write(w, m) }},
	} {
		if out.path == "" {
			continue
		}
		if err := writeFile(out.path, out.write); err != nil {
			logger.Error("writing "+out.kind, "file", out.path, "err", err)
			continue
		}
		logger.Info(out.kind+" saved", "file", out.path)
		outputs = append(outputs, out.path)
	}

	if cfg.DB != "" {
		if id, err := archive(ctx, cfg, ds, m); err != nil {
			logger.Error("archiving run", "driver", cfg.DBDriver, "err", err)
		} else {
			logger.Info("run archived", "driver", cfg.DBDriver, "run", id)
		}
	}

	publish(ctx, cfg, logger, outputs)
	return nil
}

// writeFile creates path and fills it with write. A partial file is
// removed.
func writeFile(path string, write func(io.Writer) error) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
		if err != nil {
			os.Remove(path)
		}
	}()
	return write(f)
}

// archive stores the records and metrics of this run in the
// configured database and returns the new run's ID.
func archive(ctx context.Context, cfg *config.Config, ds *perfcsv.Dataset, m *speedup.Metrics) (int64, error) {
	d, err := db.OpenSQL(cfg.DBDriver, cfg.DB)
	if err != nil {
		return 0, err
	}
	defer d.Close()

	run, err := d.NewRun(ctx, ds.Path)
	if err != nil {
		return 0, err
	}
	if err := run.InsertRecords(ctx, ds.Records); err != nil {
		return 0, err
	}
	if err := run.InsertMetrics(ctx, m); err != nil {
		return 0, err
	}
	return run.ID, nil
}

// publish copies the output files to every configured destination.
func publish(ctx context.Context, cfg *config.Config, logger *slog.Logger, outputs []string) {
	if len(outputs) == 0 {
		return
	}
	type dest struct {
		name string
		open func() (fs.FS, error)
	}
	var dests []dest
	if cfg.PublishDir != "" {
		dests = append(dests, dest{cfg.PublishDir, func() (fs.FS, error) {
			return local.NewFS(cfg.PublishDir)
		}})
	}
	if cfg.GCSBucket != "" {
		dests = append(dests, dest{"gs://" + cfg.GCSBucket, func() (fs.FS, error) {
			var opts []option.ClientOption
			if cfg.GCSToken != "" {
				opts = append(opts, gcs.WithToken(cfg.GCSToken))
			}
			return gcs.NewFS(ctx, cfg.GCSBucket, opts...)
		}})
	}
	for _, d := range dests {
		fsys, err := d.open()
		if err == nil {
			err = fs.Publish(ctx, fsys, outputs...)
		}
		if err != nil {
			logger.Error("publishing outputs", "dest", d.name, "err", err)
			continue
		}
		logger.Info("outputs published", "dest", d.name, "files", len(outputs))
	}
}
