// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package workbook exports speedup metrics as an Excel workbook.
//
// The workbook has one sheet with the overall summary, one with every
// complete test pair, and one per parameter breakdown.
package workbook

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/morphosis/perfanalysis/speedup"
)

// Sheet names, in workbook order.
const (
	SheetSummary    = "Summary"
	SheetGroups     = "Groups"
	SheetGridSize   = "Grid Size"
	SheetStepSize   = "Step Size"
	SheetIterations = "Iterations"
)

// Write writes m to w as an .xlsx workbook.
func Write(w io.Writer, m *speedup.Metrics) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), SheetSummary); err != nil {
		return err
	}
	o := m.Overall
	if err := setRows(f, SheetSummary, [][]any{
		{"Metric", "Value"},
		{"Total tests analyzed", o.Count()},
		{"Skipped records", m.Skipped},
		{"Incomplete groups", m.Incomplete},
		{"Average speedup", o.Speedup.Mean},
		{"Median speedup", o.Speedup.Median},
		{"Minimum speedup", o.Speedup.Min},
		{"Maximum speedup", o.Speedup.Max},
		{"Standard deviation", o.Speedup.StdDev},
		{"Average memory improvement", o.MeanMemoryImprovement},
	}); err != nil {
		return err
	}

	groups := [][]any{{
		"Grid size", "Step size", "Iterations",
		"Original time (s)", "Optimized time (s)", "Speedup",
		"Original memory (KB)", "Optimized memory (KB)", "Memory improvement",
	}}
	for _, p := range m.Pairs {
		groups = append(groups, []any{
			p.Key.GridSize, p.Key.StepSize, p.Key.Iterations,
			p.Original.RealTime, p.Optimized.RealTime, p.Speedup,
			p.Original.MaxMemoryKB, p.Optimized.MaxMemoryKB, p.MemoryImprovement,
		})
	}
	if err := addSheet(f, SheetGroups, groups); err != nil {
		return err
	}

	for _, s := range []struct {
		name    string
		buckets []*speedup.Bucket
	}{
		{SheetGridSize, m.ByGridSize},
		{SheetStepSize, m.ByStepSize},
		{SheetIterations, m.ByIterations},
	} {
		rows := [][]any{{s.name, "Average speedup", "Tests"}}
		for _, b := range s.buckets {
			rows = append(rows, []any{b.Key, b.Mean(), b.Count()})
		}
		if err := addSheet(f, s.name, rows); err != nil {
			return err
		}
	}

	f.SetActiveSheet(0)
	if err := f.Write(w); err != nil {
		return fmt.Errorf("writing workbook: %w", err)
	}
	return nil
}

func addSheet(f *excelize.File, name string, rows [][]any) error {
	if _, err := f.NewSheet(name); err != nil {
		return fmt.Errorf("creating sheet %q: %w", name, err)
	}
	return setRows(f, name, rows)
}

func setRows(f *excelize.File, sheet string, rows [][]any) error {
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("sheet %q row %d: %w", sheet, i+1, err)
		}
	}
	return nil
}
