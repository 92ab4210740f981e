// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package benchmath computes descriptive statistics over sets of
// benchmark ratios.
//
// Every statistic of an empty Sample is 0 rather than NaN, so callers
// can render "no data" without special cases.
package benchmath

import (
	"sort"

	"github.com/aclements/go-moremath/stats"
)

// A Sample is a set of measurements or ratios.
type Sample struct {
	// Values are the sample values, in ascending order.
	Values []float64
}

// NewSample constructs a Sample from values. The Sample holds a
// sorted copy; values itself is not modified.
func NewSample(values []float64) *Sample {
	vs := make([]float64, len(values))
	copy(vs, values)
	// Sort values for fast order statistics.
	sort.Float64s(vs)
	return &Sample{vs}
}

func (s *Sample) sample() stats.Sample {
	return stats.Sample{Xs: s.Values, Sorted: true}
}

// N returns the number of values in s.
func (s *Sample) N() int {
	return len(s.Values)
}

// Mean returns the arithmetic mean of s.
func (s *Sample) Mean() float64 {
	if len(s.Values) == 0 {
		return 0
	}
	return s.sample().Mean()
}

// Median returns the median of s. For an even number of values this
// is the midpoint of the two central values.
func (s *Sample) Median() float64 {
	if len(s.Values) == 0 {
		return 0
	}
	return s.sample().Quantile(0.5)
}

// Min returns the smallest value in s.
func (s *Sample) Min() float64 {
	if len(s.Values) == 0 {
		return 0
	}
	return s.Values[0]
}

// Max returns the largest value in s.
func (s *Sample) Max() float64 {
	if len(s.Values) == 0 {
		return 0
	}
	return s.Values[len(s.Values)-1]
}

// StdDev returns the sample standard deviation of s (with Bessel's
// correction). A sample with fewer than two values has no spread, and
// StdDev returns 0.
func (s *Sample) StdDev() float64 {
	if len(s.Values) < 2 {
		return 0
	}
	return s.sample().StdDev()
}

// A Summary holds the descriptive statistics of a Sample.
type Summary struct {
	N      int
	Mean   float64
	Median float64
	Min    float64
	Max    float64
	StdDev float64
}

// Summary computes all descriptive statistics of s.
func (s *Sample) Summary() Summary {
	return Summary{
		N:      s.N(),
		Mean:   s.Mean(),
		Median: s.Median(),
		Min:    s.Min(),
		Max:    s.Max(),
		StdDev: s.StdDev(),
	}
}
