// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package perfcsv

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
)

// DefaultPath is the input file read when none is given.
const DefaultPath = "performance_data.csv"

// A NotFoundError reports that the performance file does not exist.
type NotFoundError struct {
	Path string
	Err  error
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found", e.Path)
}

func (e *NotFoundError) Unwrap() error {
	return e.Err
}

// A Dataset is the content of one performance file.
type Dataset struct {
	// Path is the file the dataset was loaded from.
	Path string

	// Records are the well-formed rows in file order.
	Records []*Record

	// Skipped are the rows that could not be parsed.
	Skipped []*SyntaxError
}

// Load reads the performance file at path.
//
// If path does not exist, Load returns an empty Dataset together with
// a *NotFoundError; callers may treat this as "no data" rather than a
// failure. Malformed rows are logged and collected in
// Dataset.Skipped. Any other error, such as a header row lacking a
// required column, is returned with a nil Dataset.
func Load(path string, logger *slog.Logger) (*Dataset, error) {
	if logger == nil {
		logger = slog.Default()
	}
	ds := &Dataset{Path: path}

	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return ds, &NotFoundError{Path: path, Err: err}
		}
		return nil, err
	}
	defer f.Close()

	r := NewReader(f, path)
	for r.Scan() {
		switch res := r.Result().(type) {
		case *Record:
			ds.Records = append(ds.Records, res)
		case *SyntaxError:
			logger.Warn("skipping malformed row", "file", res.FileName, "line", res.Line, "err", res.Msg)
			ds.Skipped = append(ds.Skipped, res)
		}
	}
	if err := r.Err(); err != nil {
		return nil, err
	}

	logger.Info(fmt.Sprintf("loaded %d performance records", len(ds.Records)), "file", path)
	return ds, nil
}
