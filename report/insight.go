// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package report

// Thresholds configures the rating ladders of a report. Every
// comparison is strict: a speedup of exactly Good is rated Moderate.
type Thresholds struct {
	// Speedup ratings, from the mean speedup.
	SpeedupExcellent float64
	SpeedupGood      float64
	SpeedupModerate  float64

	// Consistency ratings, from the standard deviation of speedup.
	// A deviation below ConsistencyHigh rates High, below
	// ConsistencyMedium rates Medium, and anything else Low.
	ConsistencyHigh   float64
	ConsistencyMedium float64

	// Memory ratings, from the mean memory improvement.
	MemorySignificant float64
	MemoryModest      float64
}

// DefaultThresholds are the thresholds used when Options.Thresholds
// is nil.
var DefaultThresholds = Thresholds{
	SpeedupExcellent: 5,
	SpeedupGood:      2,
	SpeedupModerate:  1.5,

	ConsistencyHigh:   0.5,
	ConsistencyMedium: 1.0,

	MemorySignificant: 1.5,
	MemoryModest:      1.1,
}

// A Rating is a labeled assessment with a one-line explanation.
type Rating struct {
	Label   string
	Message string
}

func (r Rating) String() string {
	return r.Label + ": " + r.Message
}

// RateSpeedup rates a mean speedup.
func (th *Thresholds) RateSpeedup(mean float64) Rating {
	switch {
	case mean > th.SpeedupExcellent:
		return Rating{"EXCELLENT", "Optimizations provide significant performance improvements!"}
	case mean > th.SpeedupGood:
		return Rating{"GOOD", "Optimizations provide noticeable performance improvements."}
	case mean > th.SpeedupModerate:
		return Rating{"MODERATE", "Optimizations provide modest performance improvements."}
	}
	return Rating{"LIMITED", "Optimizations provide minimal performance improvements."}
}

// RateMemory rates a mean memory improvement.
func (th *Thresholds) RateMemory(mean float64) Rating {
	switch {
	case mean > th.MemorySignificant:
		return Rating{"Significant", "Significant memory efficiency improvements achieved."}
	case mean > th.MemoryModest:
		return Rating{"Modest", "Modest memory efficiency improvements achieved."}
	}
	return Rating{"Limited", "Limited memory efficiency improvements."}
}

// Consistency labels the spread of speedups as "High", "Medium" or
// "Low".
func (th *Thresholds) Consistency(stddev float64) string {
	switch {
	case stddev < th.ConsistencyHigh:
		return "High"
	case stddev < th.ConsistencyMedium:
		return "Medium"
	}
	return "Low"
}
