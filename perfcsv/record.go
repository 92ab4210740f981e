// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package perfcsv

// A Record is a single benchmark run.
//
// Records are treated as immutable once read.
type Record struct {
	// TestName identifies the run. It normally has the form
	// <grid>_<step>_<iterations>_<version>; see ParseTestName.
	TestName string

	// RealTime is the wall-clock execution time in seconds.
	RealTime float64

	// MaxMemoryKB is the peak resident memory in kilobytes.
	MaxMemoryKB float64

	fileName string
	line     int
}

// Pos returns the file name and line number of r.
func (r *Record) Pos() (fileName string, line int) {
	return r.fileName, r.line
}

// Params parses r.TestName. See ParseTestName.
func (r *Record) Params() (Params, bool, error) {
	return ParseTestName(r.TestName)
}
