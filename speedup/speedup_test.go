// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package speedup

import (
	"bytes"
	"log/slog"
	"math"
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/morphosis/perfanalysis/perfcsv"
)

func rec(name string, realTime, memKB float64) *perfcsv.Record {
	return &perfcsv.Record{TestName: name, RealTime: realTime, MaxMemoryKB: memKB}
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(new(bytes.Buffer), nil))
}

func bucketKeys(bs []*Bucket) []string {
	var keys []string
	for _, b := range bs {
		keys = append(keys, b.Key)
	}
	return keys
}

func TestRatio(t *testing.T) {
	assert.Equal(t, 2.0, Ratio(4, 2))
	assert.Equal(t, 0.5, Ratio(1, 2))
	assert.Equal(t, 1.0, Ratio(4, 0))
	assert.Equal(t, 1.0, Ratio(4, -1))
	assert.Equal(t, 0.0, Ratio(0, 3))
}

func TestSinglePair(t *testing.T) {
	m := Aggregate([]*perfcsv.Record{
		rec("64_0.1_100_original", 4.0, 200),
		rec("64_0.1_100_optimized", 2.0, 100),
	}, quietLogger())

	require.Len(t, m.Pairs, 1)
	p := m.Pairs[0]
	assert.Equal(t, Key{"64", 0.1, 100}, p.Key)
	assert.Equal(t, 2.0, p.Speedup)
	assert.Equal(t, 2.0, p.MemoryImprovement)

	o := m.Overall
	assert.True(t, o.Defined())
	assert.Equal(t, 1, o.Count())
	assert.Equal(t, 2.0, o.Speedup.Mean)
	assert.Equal(t, 2.0, o.Speedup.Median)
	assert.Equal(t, 2.0, o.Speedup.Min)
	assert.Equal(t, 2.0, o.Speedup.Max)
	assert.Equal(t, 0.0, o.Speedup.StdDev)
	assert.Equal(t, 2.0, o.MeanMemoryImprovement)

	assert.Equal(t, []string{"64"}, bucketKeys(m.ByGridSize))
	assert.Equal(t, []string{"0.1"}, bucketKeys(m.ByStepSize))
	assert.Equal(t, []string{"100"}, bucketKeys(m.ByIterations))
}

func TestZeroGuard(t *testing.T) {
	m := Aggregate([]*perfcsv.Record{
		rec("32_1_10_original", 3.0, 50),
		rec("32_1_10_optimized", 0, 0),
	}, quietLogger())
	require.Len(t, m.Pairs, 1)
	assert.Equal(t, 1.0, m.Pairs[0].Speedup)
	assert.Equal(t, 1.0, m.Pairs[0].MemoryImprovement)
}

func TestBuckets(t *testing.T) {
	m := Aggregate([]*perfcsv.Record{
		rec("64_0.1_100_original", 4, 100),
		rec("64_0.1_100_optimized", 1, 100),
		rec("128_0.1_500_original", 6, 100),
		rec("128_0.1_500_optimized", 2, 100),
		rec("64_0.05_500_original", 2, 100),
		rec("64_0.05_500_optimized", 1, 100),
	}, quietLogger())

	require.Len(t, m.Pairs, 3)
	// Grid sizes are strings and sort lexicographically.
	assert.Equal(t, []string{"128", "64"}, bucketKeys(m.ByGridSize))
	assert.Equal(t, []string{"0.05", "0.1"}, bucketKeys(m.ByStepSize))
	assert.Equal(t, []string{"100", "500"}, bucketKeys(m.ByIterations))

	grid64 := m.ByGridSize[1]
	assert.Equal(t, 2, grid64.Count())
	assert.Equal(t, 3.0, grid64.Mean())

	step01 := m.ByStepSize[1]
	assert.Equal(t, []float64{4, 3}, step01.Speedups)
	assert.Equal(t, 3.5, step01.Mean())

	iters500 := m.ByIterations[1]
	assert.Equal(t, []float64{3, 2}, iters500.Speedups)

	o := m.Overall.Speedup
	assert.Equal(t, 3, o.N)
	assert.Equal(t, 3.0, o.Mean)
	assert.InDelta(t, 3.0, o.Median, 1e-12)
	assert.Equal(t, 2.0, o.Min)
	assert.Equal(t, 4.0, o.Max)
	assert.InDelta(t, 1.0, o.StdDev, 1e-12)
}

func TestNumericBucketOrder(t *testing.T) {
	var records []*perfcsv.Record
	for _, n := range []string{"32_0.5_1000", "32_0.25_20", "32_2_300"} {
		records = append(records, rec(n+"_original", 2, 1), rec(n+"_optimized", 1, 1))
	}
	m := Aggregate(records, quietLogger())
	assert.Equal(t, []string{"0.25", "0.5", "2"}, bucketKeys(m.ByStepSize))
	assert.Equal(t, []string{"20", "300", "1000"}, bucketKeys(m.ByIterations))
}

func TestSkipAndIncomplete(t *testing.T) {
	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, &slog.HandlerOptions{Level: slog.LevelDebug}))

	m := Aggregate([]*perfcsv.Record{
		rec("bad", 1, 1),
		rec("64_fast_100_original", 1, 1),
		rec("64_0.1_100_baseline", 1, 1),
		rec("64_0.1_100_original", 9, 1),
		rec("64_0.1_100_original", 4, 1), // replaces the previous run
		rec("64_0.1_100_optimized", 2, 1),
		rec("128_0.1_100_original", 1, 1),
	}, logger)

	assert.Equal(t, 3, m.Skipped)
	assert.Equal(t, 1, m.Incomplete)
	require.Len(t, m.Pairs, 1)
	assert.Equal(t, 2.0, m.Pairs[0].Speedup)

	out := logs.String()
	assert.Contains(t, out, "unparseable test name")
	assert.Contains(t, out, "bad step size")
	assert.Contains(t, out, "unknown version")
	assert.Contains(t, out, "replacing duplicate record")
}

func TestNonFiniteStepSkipped(t *testing.T) {
	var m *Metrics
	require.NotPanics(t, func() {
		m = Aggregate([]*perfcsv.Record{
			rec("64_nan_100_original", 4, 1),
			rec("64_nan_100_optimized", 2, 1),
			rec("64_NaN_100_original", 4, 1),
			rec("_0.1_100_original", 4, 1),
			rec("_0.1_100_optimized", 2, 1),
			rec("64_0.1_100_original", 6, 1),
			rec("64_0.1_100_optimized", 2, 1),
		}, quietLogger())
	})
	assert.Equal(t, 5, m.Skipped)
	assert.Equal(t, 0, m.Incomplete)
	require.Len(t, m.Pairs, 1)
	assert.Equal(t, 3.0, m.Pairs[0].Speedup)
	assert.Equal(t, []string{"64"}, bucketKeys(m.ByGridSize))
}

func TestEmpty(t *testing.T) {
	m := Aggregate(nil, quietLogger())
	assert.False(t, m.Overall.Defined())
	assert.Equal(t, 0, m.Overall.Count())
	assert.Empty(t, m.Pairs)
	assert.Empty(t, m.ByGridSize)

	m = Aggregate([]*perfcsv.Record{rec("64_0.1_100_original", 1, 1)}, quietLogger())
	assert.False(t, m.Overall.Defined())
	assert.Equal(t, 1, m.Incomplete)
}

func TestMeanIsOrderIndependent(t *testing.T) {
	var records []*perfcsv.Record
	var want float64
	for i, g := range []string{"16", "32", "64", "128", "256"} {
		orig := float64(10 + i*3)
		opt := float64(1 + i)
		want += orig / opt
		name := g + "_0.1_100_"
		records = append(records, rec(name+"original", orig, 1), rec(name+"optimized", opt, 1))
	}
	want /= 5

	base := Aggregate(records, quietLogger()).Overall.Speedup
	assert.InDelta(t, want, base.Mean, 1e-12)

	r := rand.New(rand.NewSource(1))
	for i := 0; i < 10; i++ {
		shuffled := append([]*perfcsv.Record(nil), records...)
		r.Shuffle(len(shuffled), func(i, j int) { shuffled[i], shuffled[j] = shuffled[j], shuffled[i] })
		got := Aggregate(shuffled, quietLogger()).Overall.Speedup
		assert.InDelta(t, base.Mean, got.Mean, 1e-12)
		assert.Equal(t, base.Median, got.Median)
		assert.False(t, math.IsNaN(got.StdDev))
	}
}

func TestInputNotMutated(t *testing.T) {
	records := []*perfcsv.Record{
		rec("64_0.1_100_original", 4.0, 200),
		rec("64_0.1_100_optimized", 2.0, 100),
	}
	Aggregate(records, quietLogger())
	assert.Equal(t, "64_0.1_100_original", records[0].TestName)
	assert.Equal(t, 4.0, records[0].RealTime)
	assert.Equal(t, 100.0, records[1].MaxMemoryKB)
}

func TestGroupsOrder(t *testing.T) {
	c := &Collection{Logger: quietLogger()}
	for _, n := range []string{"8_1_1_original", "4_1_1_original", "8_1_1_optimized", "2_1_1_optimized"} {
		c.Add(rec(n, 1, 1))
	}
	var keys []string
	for _, g := range c.Groups() {
		keys = append(keys, g.Key.String())
	}
	assert.Equal(t, "8_1_1 4_1_1 2_1_1", strings.Join(keys, " "))
	assert.True(t, c.Groups()[0].Complete())
	assert.False(t, c.Groups()[1].Complete())
}
