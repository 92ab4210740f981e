// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package chart

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/plot/vg"

	"github.com/morphosis/perfanalysis/perfcsv"
)

var pngMagic = []byte("\x89PNG\r\n\x1a\n")

var small = &Options{DPI: 30, Width: 8 * vg.Inch, Height: 6 * vg.Inch}

func records() []*perfcsv.Record {
	return []*perfcsv.Record{
		{TestName: "64_0.1_100_original", RealTime: 4.0, MaxMemoryKB: 200},
		{TestName: "64_0.1_100_optimized", RealTime: 2.0, MaxMemoryKB: 100},
		{TestName: "128_0.1_100_original", RealTime: 9.0, MaxMemoryKB: 800},
		{TestName: "128_0.1_100_optimized", RealTime: 3.0, MaxMemoryKB: 500},
		{TestName: "128_0.05_100_original", RealTime: 10.0, MaxMemoryKB: 800},
		{TestName: "bad", RealTime: 1, MaxMemoryKB: 1},
	}
}

func TestRender(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, records(), small))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), pngMagic), "output is not a PNG image")
}

func TestRenderOneVersion(t *testing.T) {
	// Only original runs: the bar plots are empty but the dashboard
	// still renders.
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, records()[4:5], small))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), pngMagic))
}

func TestRenderNoData(t *testing.T) {
	for _, recs := range [][]*perfcsv.Record{
		nil,
		{{TestName: "bad", RealTime: 1, MaxMemoryKB: 1}},
	} {
		err := Render(new(bytes.Buffer), recs, small)
		var verr *VisualizationError
		require.True(t, errors.As(err, &verr), "got %v", err)
		assert.ErrorIs(t, err, ErrNoData)
	}
}

func TestGridSpeedups(t *testing.T) {
	s := collect(records())
	names, speedups := s.gridSpeedups()
	assert.Equal(t, []string{"64", "128"}, names)
	require.Len(t, speedups, 2)
	assert.Equal(t, 2.0, speedups[0])
	// Means are taken per version: (9+10)/2 over 3.
	assert.InDelta(t, 19.0/6, speedups[1], 1e-12)
	assert.Len(t, s.timeOrig, 3)
	assert.Len(t, s.memOpt, 2)
}

func TestSave(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "chart.png")
	require.NoError(t, Save(path, records(), small))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, pngMagic))

	missing := filepath.Join(dir, "empty.png")
	assert.ErrorIs(t, Save(missing, nil, small), ErrNoData)
	assert.NoFileExists(t, missing)

	err = Save(filepath.Join(dir, "no", "such", "dir.png"), records(), small)
	var verr *VisualizationError
	assert.True(t, errors.As(err, &verr))
}
