// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package chart draws a dashboard of performance measurements.
//
// The dashboard is a 2x2 grid of plots: the distribution of execution
// times, the speedup per grid size, the distribution of memory usage
// and the improvement percentage per grid size. Original runs and
// optimized runs are drawn side by side.
package chart

import (
	"bytes"
	"errors"
	"fmt"
	"image/color"
	"io"
	"math"
	"os"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	"github.com/morphosis/perfanalysis/benchmath"
	"github.com/morphosis/perfanalysis/perfcsv"
)

// DefaultPath is the file the dashboard is written to when none is
// configured.
const DefaultPath = "performance_analysis.png"

// ErrNoData is reported when there are no records to draw.
var ErrNoData = errors.New("no performance data to visualize")

// A VisualizationError reports a failure to produce the dashboard.
// It never affects the analysis itself.
type VisualizationError struct {
	Err error
}

func (e *VisualizationError) Error() string {
	return "visualization failed: " + e.Err.Error()
}

func (e *VisualizationError) Unwrap() error {
	return e.Err
}

// Options controls the size of the dashboard. A nil *Options uses
// the defaults.
type Options struct {
	// DPI is the resolution of the image. Zero means 100.
	DPI int

	// Width and Height are the image size. Zero means 15x12 inches.
	Width, Height vg.Length

	// Bins is the number of histogram bins. Zero means 20.
	Bins int
}

func (o *Options) withDefaults() Options {
	var out Options
	if o != nil {
		out = *o
	}
	if out.DPI <= 0 {
		out.DPI = 100
	}
	if out.Width <= 0 {
		out.Width = 15 * vg.Inch
	}
	if out.Height <= 0 {
		out.Height = 12 * vg.Inch
	}
	if out.Bins <= 0 {
		out.Bins = 20
	}
	return out
}

var (
	originalColor  = color.NRGBA{0x1f, 0x77, 0xb4, 0xb3}
	optimizedColor = color.NRGBA{0xff, 0x7f, 0x0e, 0xb3}
	speedupColor   = color.NRGBA{0x1f, 0x77, 0xb4, 0xff}
	gainColor      = color.NRGBA{0x00, 0x80, 0x00, 0xb3}
)

// series holds the runs of each version in record order.
type series struct {
	timeOrig, timeOpt plotter.Values
	memOrig, memOpt   plotter.Values

	// grids lists grid sizes in first-seen order.
	grids []string
	// times holds the run times per grid size, indexed by version.
	times map[string]*[2][]float64
}

func collect(records []*perfcsv.Record) *series {
	s := &series{times: make(map[string]*[2][]float64)}
	for _, r := range records {
		p, ok, err := r.Params()
		if !ok || err != nil {
			continue
		}
		var v int
		switch p.Version {
		case perfcsv.Original:
			s.timeOrig = append(s.timeOrig, r.RealTime)
			s.memOrig = append(s.memOrig, r.MaxMemoryKB)
		case perfcsv.Optimized:
			s.timeOpt = append(s.timeOpt, r.RealTime)
			s.memOpt = append(s.memOpt, r.MaxMemoryKB)
			v = 1
		default:
			continue
		}
		t := s.times[p.GridSize]
		if t == nil {
			t = new([2][]float64)
			s.times[p.GridSize] = t
			s.grids = append(s.grids, p.GridSize)
		}
		t[v] = append(t[v], r.RealTime)
	}
	return s
}

// gridSpeedups returns, for each grid size with a positive mean time
// in both versions, the ratio of the mean original time to the mean
// optimized time.
func (s *series) gridSpeedups() (names []string, speedups plotter.Values) {
	for _, g := range s.grids {
		t := s.times[g]
		orig := benchmath.NewSample(t[0]).Mean()
		opt := benchmath.NewSample(t[1]).Mean()
		if orig > 0 && opt > 0 {
			names = append(names, g)
			speedups = append(speedups, orig/opt)
		}
	}
	return names, speedups
}

// Render draws the dashboard for records and writes it to w as a PNG
// image. Records whose test name cannot be parsed are left out.
// Failures are reported as a *VisualizationError.
func Render(w io.Writer, records []*perfcsv.Record, opts *Options) error {
	if err := render(w, records, opts.withDefaults()); err != nil {
		return &VisualizationError{err}
	}
	return nil
}

func render(w io.Writer, records []*perfcsv.Record, opts Options) error {
	if len(records) == 0 {
		return ErrNoData
	}
	s := collect(records)
	if len(s.timeOrig)+len(s.timeOpt) == 0 {
		return ErrNoData
	}

	names, speedups := s.gridSpeedups()
	gains := make(plotter.Values, len(speedups))
	for i, v := range speedups {
		gains[i] = (v - 1) * 100
	}

	timePlot, err := histograms("Execution Time Distribution", "Execution Time (seconds)", s.timeOrig, s.timeOpt, opts.Bins)
	if err != nil {
		return err
	}
	memPlot, err := histograms("Memory Usage Distribution", "Memory Usage (KB)", s.memOrig, s.memOpt, opts.Bins)
	if err != nil {
		return err
	}
	speedupPlot, err := bars("Speedup by Grid Size", "Speedup (x)", names, speedups, speedupColor)
	if err != nil {
		return err
	}
	gainPlot, err := bars("Performance Improvement by Grid Size", "Performance Improvement (%)", names, gains, gainColor)
	if err != nil {
		return err
	}

	plots := [][]*plot.Plot{
		{timePlot, speedupPlot},
		{memPlot, gainPlot},
	}

	img := vgimg.NewWith(vgimg.UseWH(opts.Width, opts.Height),
		vgimg.UseDPI(opts.DPI), vgimg.UseBackgroundColor(color.White))
	dc := draw.New(img)
	tiles := draw.Tiles{
		Rows: 2,
		Cols: 2,
		PadX: vg.Millimeter * 8,
		PadY: vg.Millimeter * 8,

		PadTop:    vg.Millimeter * 4,
		PadBottom: vg.Millimeter * 4,
		PadLeft:   vg.Millimeter * 4,
		PadRight:  vg.Millimeter * 4,
	}
	canvases := plot.Align(plots, tiles, dc)
	for j := range plots {
		for i, p := range plots[j] {
			p.Draw(canvases[j][i])
		}
	}

	png := vgimg.PngCanvas{Canvas: img}
	if _, err := png.WriteTo(w); err != nil {
		return fmt.Errorf("writing chart: %w", err)
	}
	return nil
}

// histograms plots the distributions of an original and an optimized
// sample on shared axes. Empty samples are left out.
func histograms(title, xLabel string, orig, opt plotter.Values, bins int) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = xLabel
	p.Y.Label.Text = "Frequency"
	p.Legend.Top = true

	for _, h := range []struct {
		label string
		vs    plotter.Values
		clr   color.Color
	}{
		{"Original", orig, originalColor},
		{"Optimized", opt, optimizedColor},
	} {
		if len(h.vs) == 0 {
			continue
		}
		hist, err := plotter.NewHist(h.vs, bins)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", title, err)
		}
		hist.FillColor = h.clr
		hist.LineStyle.Width = vg.Length(0)
		p.Add(hist)
		p.Legend.Add(h.label, hist)
	}
	return p, nil
}

// bars plots one bar per grid size.
func bars(title, yLabel string, names []string, vs plotter.Values, clr color.Color) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "Grid Size"
	p.Y.Label.Text = yLabel
	p.Add(plotter.NewGrid())

	if len(vs) > 0 {
		b, err := plotter.NewBarChart(vs, vg.Points(20))
		if err != nil {
			return nil, fmt.Errorf("%s: %w", title, err)
		}
		b.Color = clr
		b.LineStyle.Width = vg.Length(0)
		p.Add(b)
		p.NominalX(names...)
	}

	p.X.Tick.Label.Rotation = math.Pi / 4
	p.X.Tick.Label.XAlign = draw.XRight
	p.X.Tick.Label.YAlign = draw.YCenter
	return p, nil
}

// Save renders the dashboard for records into the file at path. The
// file is not created if rendering fails.
func Save(path string, records []*perfcsv.Record, opts *Options) error {
	var buf bytes.Buffer
	if err := Render(&buf, records, opts); err != nil {
		return err
	}
	if err := os.WriteFile(path, buf.Bytes(), 0666); err != nil {
		return &VisualizationError{err}
	}
	return nil
}
