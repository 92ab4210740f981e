// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package perfcsv reads Morphosis performance measurements from
// CSV files.
//
// A performance file is comma-separated text with a header row. Each
// subsequent row is one benchmark run. The columns test_name,
// real_time and max_memory_kb are required; any other columns are
// ignored. For example:
//
//	test_name,real_time,max_memory_kb
//	64_0.1_100_original,4.0,200
//	64_0.1_100_optimized,2.0,100
//
// The test name encodes the run parameters; see ParseTestName.
package perfcsv

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Column names required in the header row.
const (
	ColTestName    = "test_name"
	ColRealTime    = "real_time"
	ColMaxMemoryKB = "max_memory_kb"
)

// A Reader reads performance records from CSV.
//
// Its API is modeled on bufio.Scanner. Every Record returned by Result
// is freshly allocated and may be retained by the caller.
type Reader struct {
	c        *csv.Reader
	fileName string
	line     int
	err      error

	// cols maps required column names to their index, or nil if
	// the header has not been read yet.
	cols map[string]int

	result Result
}

// A Result is the outcome of scanning one row: either a *Record or a
// *SyntaxError describing why the row could not be parsed.
type Result interface {
	// Pos returns the position of this result as a file name and
	// a 1-based line number within that file.
	Pos() (fileName string, line int)
}

var _ Result = (*Record)(nil)
var _ Result = (*SyntaxError)(nil)

// A SyntaxError represents a syntax error on a particular line of a
// performance file.
type SyntaxError struct {
	FileName string
	Line     int
	Msg      string
}

func (e *SyntaxError) Pos() (fileName string, line int) {
	return e.FileName, e.Line
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%s:%d: %s", e.FileName, e.Line, e.Msg)
}

var noResult = &SyntaxError{"", 0, "Reader.Scan has not been called"}

// NewReader constructs a reader to parse performance records from r.
// fileName is used in error messages; it is purely diagnostic.
func NewReader(r io.Reader, fileName string) *Reader {
	reader := new(Reader)
	reader.Reset(r, fileName)
	return reader
}

// Reset resets the reader to begin reading from a new input. The
// header row of the new input is read on the next call to Scan.
func (r *Reader) Reset(ior io.Reader, fileName string) {
	if fileName == "" {
		fileName = "<unknown>"
	}
	r.c = csv.NewReader(ior)
	// Rows may carry extra trailing columns; only the header
	// decides which fields matter.
	r.c.FieldsPerRecord = -1
	r.c.TrimLeadingSpace = true
	r.fileName = fileName
	r.line = 0
	r.err = nil
	r.cols = nil
	r.result = nil
}

func (r *Reader) newSyntaxError(msg string) *SyntaxError {
	return &SyntaxError{r.fileName, r.line, msg}
}

// Scan advances the reader to the next row and reports whether a row
// was read. The caller should use the Result method to get the result.
// If Scan reaches EOF or an error occurs, it returns false, in which
// case the caller should use the Err method to check for errors.
//
// A row with malformed numeric fields is not an error: Scan returns
// true and Result returns a *SyntaxError.
func (r *Reader) Scan() bool {
	if r.err != nil {
		return false
	}
	if r.cols == nil {
		if !r.readHeader() {
			return false
		}
	}
	for {
		fields, err := r.c.Read()
		if err == io.EOF {
			return false
		}
		if err != nil {
			var perr *csv.ParseError
			if errors.As(err, &perr) {
				r.err = &SyntaxError{r.fileName, perr.StartLine, perr.Err.Error()}
			} else {
				r.err = fmt.Errorf("%s: %w", r.fileName, err)
			}
			return false
		}
		r.line, _ = r.c.FieldPos(0)
		if isBlank(fields) {
			continue
		}
		r.result = r.parseRow(fields)
		return true
	}
}

// readHeader consumes the header row and records the positions of the
// required columns.
func (r *Reader) readHeader() bool {
	fields, err := r.c.Read()
	if err == io.EOF {
		// An empty file holds no records.
		return false
	}
	if err != nil {
		r.err = fmt.Errorf("%s: %w", r.fileName, err)
		return false
	}
	r.line, _ = r.c.FieldPos(0)
	cols := make(map[string]int)
	for i, f := range fields {
		f = strings.TrimSpace(strings.TrimPrefix(f, "\ufeff"))
		if _, ok := cols[f]; !ok {
			cols[f] = i
		}
	}
	var missing []string
	for _, name := range []string{ColTestName, ColRealTime, ColMaxMemoryKB} {
		if _, ok := cols[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		r.err = r.newSyntaxError("header missing column(s) " + strings.Join(missing, ", "))
		return false
	}
	r.cols = cols
	return true
}

func (r *Reader) parseRow(fields []string) Result {
	get := func(name string) (string, bool) {
		i := r.cols[name]
		if i >= len(fields) {
			return "", false
		}
		return strings.TrimSpace(fields[i]), true
	}

	rec := &Record{fileName: r.fileName, line: r.line}
	var ok bool
	if rec.TestName, ok = get(ColTestName); !ok || rec.TestName == "" {
		return r.newSyntaxError("missing " + ColTestName)
	}
	for _, f := range []struct {
		col string
		dst *float64
	}{
		{ColRealTime, &rec.RealTime},
		{ColMaxMemoryKB, &rec.MaxMemoryKB},
	} {
		s, ok := get(f.col)
		if !ok {
			return r.newSyntaxError("missing " + f.col)
		}
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return r.newSyntaxError(fmt.Sprintf("parsing %s: %s", f.col, err.(*strconv.NumError).Err))
		}
		*f.dst = v
	}
	return rec
}

func isBlank(fields []string) bool {
	for _, f := range fields {
		if strings.TrimSpace(f) != "" {
			return false
		}
	}
	return true
}

// Result returns the row that was just read by Scan. This is either
// a *Record or a *SyntaxError indicating a parse error.
func (r *Reader) Result() Result {
	if r.result == nil {
		// This should only happen if Scan has never been called.
		return noResult
	}
	return r.result
}

// Err returns the first non-EOF error that was encountered by the
// Reader. A header row lacking a required column is reported here as
// a *SyntaxError.
func (r *Reader) Err() error {
	return r.err
}
