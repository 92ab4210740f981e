// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package perfcsv

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// A Version says which build of the simulation produced a record.
type Version string

const (
	Original  Version = "original"
	Optimized Version = "optimized"
)

// Params are the test parameters encoded in a test name.
type Params struct {
	// GridSize is the edge length of the sampling grid. It is kept
	// as the raw token.
	GridSize string

	StepSize   float64
	Iterations int
	Version    Version
}

// nameSep separates the fields of a test name.
const nameSep = "_"

// A ParseError reports a test name whose numeric parameter is
// malformed.
type ParseError struct {
	TestName string
	Field    string // "step size" or "iterations"
	Err      error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("test name %q: bad %s: %v", e.TestName, e.Field, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// errNotFinite reports a step size of NaN or infinity.
var errNotFinite = errors.New("not a finite number")

// ParseTestName decodes a test name of the form
//
//	<grid>_<step>_<iterations>_<version>[_ignored...]
//
// If name has fewer than four fields or an empty grid size,
// ParseTestName returns ok == false and a nil error: the name is not a
// parameterized test and should be skipped. Fields after the fourth are
// ignored. If the step size is not a finite floating-point literal or
// the iteration count is not an integer literal, it returns a
// *ParseError.
//
// The version is returned as written; it is not checked against
// Original and Optimized.
func ParseTestName(name string) (p Params, ok bool, err error) {
	parts := strings.Split(name, nameSep)
	if len(parts) < 4 || parts[0] == "" {
		return Params{}, false, nil
	}
	step, err := strconv.ParseFloat(parts[1], 64)
	if err != nil {
		return Params{}, false, &ParseError{name, "step size", err.(*strconv.NumError).Err}
	}
	// NaN never compares equal to itself, so it cannot key a group.
	if math.IsNaN(step) || math.IsInf(step, 0) {
		return Params{}, false, &ParseError{name, "step size", errNotFinite}
	}
	iters, err := strconv.Atoi(parts[2])
	if err != nil {
		return Params{}, false, &ParseError{name, "iterations", err.(*strconv.NumError).Err}
	}
	return Params{
		GridSize:   parts[0],
		StepSize:   step,
		Iterations: iters,
		Version:    Version(parts[3]),
	}, true, nil
}
