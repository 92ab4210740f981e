// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package speedup

import (
	"cmp"
	"slices"
	"strconv"

	"github.com/morphosis/perfanalysis/benchmath"
	"github.com/morphosis/perfanalysis/perfcsv"
)

// Ratio returns original/optimized. If optimized is not positive the
// ratio is undefined and Ratio reports 1, meaning "no change". This
// is a reporting policy, not a measurement.
func Ratio(original, optimized float64) float64 {
	if optimized > 0 {
		return original / optimized
	}
	return 1.0
}

// A Pair is one complete test group with its derived ratios.
type Pair struct {
	Key       Key
	Original  *perfcsv.Record
	Optimized *perfcsv.Record

	// Speedup is Original.RealTime / Optimized.RealTime.
	Speedup float64
	// MemoryImprovement is Original.MaxMemoryKB / Optimized.MaxMemoryKB.
	MemoryImprovement float64
}

// A Bucket collects the speedups of every pair sharing one parameter
// value.
type Bucket struct {
	// Key is the parameter value as text.
	Key string

	// Speedups are the speedups of the pairs in this bucket, in
	// pair order.
	Speedups []float64
}

// Count returns the number of pairs in b.
func (b *Bucket) Count() int {
	return len(b.Speedups)
}

// Mean returns the mean speedup of b.
func (b *Bucket) Mean() float64 {
	return benchmath.NewSample(b.Speedups).Mean()
}

// Overall summarizes all pairs. The zero Overall means there were no
// complete pairs.
type Overall struct {
	// Speedup summarizes the per-pair speedups.
	Speedup benchmath.Summary

	// MeanMemoryImprovement is the mean per-pair memory
	// improvement.
	MeanMemoryImprovement float64
}

// Count returns the number of pairs summarized by o.
func (o Overall) Count() int {
	return o.Speedup.N
}

// Defined reports whether o summarizes at least one pair.
func (o Overall) Defined() bool {
	return o.Speedup.N > 0
}

// Metrics are the aggregate statistics of a Collection.
type Metrics struct {
	// Pairs are the complete test groups in first-seen order.
	Pairs []*Pair

	// ByGridSize, ByStepSize and ByIterations bucket the pair
	// speedups by each test parameter. Buckets are in ascending
	// order of their parameter: grid sizes compare as strings,
	// step sizes and iteration counts numerically.
	ByGridSize   []*Bucket
	ByStepSize   []*Bucket
	ByIterations []*Bucket

	Overall Overall

	// Skipped is the number of records that could not be used.
	Skipped int

	// Incomplete is the number of test groups missing either the
	// original or the optimized run.
	Incomplete int
}

// bucketer gathers speedups keyed by one parameter.
type bucketer[K cmp.Ordered] struct {
	m      map[K][]float64
	format func(K) string
}

func newBucketer[K cmp.Ordered](format func(K) string) *bucketer[K] {
	return &bucketer[K]{make(map[K][]float64), format}
}

func (b *bucketer[K]) add(k K, v float64) {
	b.m[k] = append(b.m[k], v)
}

func (b *bucketer[K]) buckets() []*Bucket {
	keys := make([]K, 0, len(b.m))
	for k := range b.m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	out := make([]*Bucket, len(keys))
	for i, k := range keys {
		out[i] = &Bucket{Key: b.format(k), Speedups: b.m[k]}
	}
	return out
}

// Metrics computes the aggregate statistics of the records added to
// c so far. It is recomputed on every call.
func (c *Collection) Metrics() *Metrics {
	m := &Metrics{Skipped: c.skipped}

	byGrid := newBucketer(func(s string) string { return s })
	byStep := newBucketer(func(f float64) string { return strconv.FormatFloat(f, 'g', -1, 64) })
	byIters := newBucketer(strconv.Itoa)

	var speedups, memory []float64
	for _, g := range c.Groups() {
		if !g.Complete() {
			m.Incomplete++
			continue
		}
		p := &Pair{
			Key:               g.Key,
			Original:          g.Original,
			Optimized:         g.Optimized,
			Speedup:           Ratio(g.Original.RealTime, g.Optimized.RealTime),
			MemoryImprovement: Ratio(g.Original.MaxMemoryKB, g.Optimized.MaxMemoryKB),
		}
		m.Pairs = append(m.Pairs, p)
		speedups = append(speedups, p.Speedup)
		memory = append(memory, p.MemoryImprovement)

		byGrid.add(g.Key.GridSize, p.Speedup)
		byStep.add(g.Key.StepSize, p.Speedup)
		byIters.add(g.Key.Iterations, p.Speedup)
	}

	m.ByGridSize = byGrid.buckets()
	m.ByStepSize = byStep.buckets()
	m.ByIterations = byIters.buckets()

	if len(speedups) > 0 {
		m.Overall = Overall{
			Speedup:               benchmath.NewSample(speedups).Summary(),
			MeanMemoryImprovement: benchmath.NewSample(memory).Mean(),
		}
	}
	return m
}
