// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package workbook

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/morphosis/perfanalysis/perfcsv"
	"github.com/morphosis/perfanalysis/speedup"
)

func open(t *testing.T, m *speedup.Metrics) *excelize.File {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, m))
	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	t.Cleanup(func() { f.Close() })
	return f
}

func TestWrite(t *testing.T) {
	m := speedup.Aggregate([]*perfcsv.Record{
		{TestName: "64_0.1_100_original", RealTime: 4, MaxMemoryKB: 200},
		{TestName: "64_0.1_100_optimized", RealTime: 2, MaxMemoryKB: 100},
		{TestName: "128_0.5_10_original", RealTime: 3, MaxMemoryKB: 100},
	}, slog.New(slog.NewTextHandler(new(bytes.Buffer), nil)))

	f := open(t, m)
	assert.Equal(t, []string{SheetSummary, SheetGroups, SheetGridSize, SheetStepSize, SheetIterations}, f.GetSheetList())

	rows, err := f.GetRows(SheetSummary)
	require.NoError(t, err)
	require.Len(t, rows, 10)
	assert.Equal(t, []string{"Total tests analyzed", "1"}, rows[1])
	assert.Equal(t, []string{"Incomplete groups", "1"}, rows[3])
	assert.Equal(t, []string{"Average speedup", "2"}, rows[4])

	rows, err = f.GetRows(SheetGroups)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, []string{"64", "0.1", "100", "4", "2", "2", "200", "100", "2"}, rows[1])

	rows, err = f.GetRows(SheetStepSize)
	require.NoError(t, err)
	assert.Equal(t, [][]string{
		{"Step Size", "Average speedup", "Tests"},
		{"0.1", "2", "1"},
	}, rows)
}

func TestWriteEmpty(t *testing.T) {
	f := open(t, &speedup.Metrics{})
	rows, err := f.GetRows(SheetGroups)
	require.NoError(t, err)
	assert.Len(t, rows, 1)
	rows, err = f.GetRows(SheetIterations)
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"Iterations", "Average speedup", "Tests"}}, rows)
}
