// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package report renders speedup metrics as a text or HTML report.
package report

import (
	"fmt"
	"io"
	"strings"
	"text/template"
	"time"

	"github.com/morphosis/perfanalysis/speedup"
)

// DefaultPath is the file the text report is written to when none is
// configured.
const DefaultPath = "performance_analysis_report.txt"

// DefaultTitle is the report title used when Options.Title is empty.
const DefaultTitle = "MORPHOSIS OPTIMIZATION PERFORMANCE REPORT"

// Options controls report rendering. A nil *Options uses the
// defaults.
type Options struct {
	// Title is printed at the top of the report.
	Title string

	// Now returns the generation time. It defaults to time.Now.
	Now func() time.Time

	// Thresholds configures the rating ladders. It defaults to
	// &DefaultThresholds.
	Thresholds *Thresholds
}

func (o *Options) title() string {
	if o == nil || o.Title == "" {
		return DefaultTitle
	}
	return o.Title
}

func (o *Options) now() time.Time {
	if o == nil || o.Now == nil {
		return time.Now()
	}
	return o.Now()
}

func (o *Options) thresholds() *Thresholds {
	if o == nil || o.Thresholds == nil {
		return &DefaultThresholds
	}
	return o.Thresholds
}

// view is the data model shared by the text and HTML templates.
type view struct {
	Title     string
	Generated string

	Tests      int
	Skipped    int
	Incomplete int

	Mean, Median, Min, Max, StdDev float64
	Memory                         float64

	Gain        float64
	Consistency string

	Sections []section

	Speedup Rating
	MemoryR Rating

	Pairs []*speedup.Pair
}

// A section is one per-parameter breakdown.
type section struct {
	Title   string
	Buckets []*speedup.Bucket
}

// baseline is the neutral ratio used to derive ratings and gains when
// no pairs were measured.
const baseline = 1.0

func newView(m *speedup.Metrics, opts *Options) *view {
	th := opts.thresholds()
	o := m.Overall
	v := &view{
		Title:      opts.title(),
		Generated:  opts.now().Format(time.DateTime),
		Tests:      o.Count(),
		Skipped:    m.Skipped,
		Incomplete: m.Incomplete,
		Mean:       o.Speedup.Mean,
		Median:     o.Speedup.Median,
		Min:        o.Speedup.Min,
		Max:        o.Speedup.Max,
		StdDev:     o.Speedup.StdDev,
		Memory:     o.MeanMemoryImprovement,
		Sections: []section{
			{"SPEEDUP BY GRID SIZE", m.ByGridSize},
			{"SPEEDUP BY STEP SIZE", m.ByStepSize},
			{"SPEEDUP BY ITERATIONS", m.ByIterations},
		},
		Pairs: m.Pairs,
	}

	mean, memory := baseline, baseline
	if o.Defined() {
		mean, memory = o.Speedup.Mean, o.MeanMemoryImprovement
	}
	v.Gain = (mean - 1) * 100
	v.Consistency = th.Consistency(v.StdDev)
	v.Speedup = th.RateSpeedup(mean)
	v.MemoryR = th.RateMemory(memory)
	return v
}

// breakdown prints one line per bucket of a section, in the same
// format as earlier reports: the count is always followed by "tests".
func breakdown(bs []*speedup.Bucket) string {
	if len(bs) == 0 {
		return "(no complete test pairs)\n"
	}
	var b strings.Builder
	for _, bk := range bs {
		fmt.Fprintf(&b, "%s: %.2fx average speedup (%d tests)\n", bk.Key, bk.Mean(), bk.Count())
	}
	return b.String()
}

func underline(s string) string {
	b := make([]byte, len([]rune(s)))
	for i := range b {
		b[i] = '='
	}
	return string(b)
}

var textFuncs = template.FuncMap{
	"breakdown": breakdown,
	"underline": underline,
}

var textTemplate = template.Must(template.New("report").Funcs(textFuncs).Parse(`{{.Title}}
{{underline .Title}}
Generated: {{.Generated}}

OVERALL PERFORMANCE METRICS
===========================
Total Tests Analyzed: {{.Tests}}
Skipped Records: {{.Skipped}}
Incomplete Groups: {{.Incomplete}}
Average Speedup: {{printf "%.2fx" .Mean}}
Median Speedup: {{printf "%.2fx" .Median}}
Minimum Speedup: {{printf "%.2fx" .Min}}
Maximum Speedup: {{printf "%.2fx" .Max}}
Standard Deviation: {{printf "%.2fx" .StdDev}}
Average Memory Improvement: {{printf "%.2fx" .Memory}}

EFFICIENCY ANALYSIS
===================
Overall Efficiency Gain: {{printf "%.1f%%" .Gain}}
Performance Consistency: {{.Consistency}}
{{range .Sections}}
{{.Title}}
{{underline .Title}}
{{breakdown .Buckets}}{{end}}
OPTIMIZATION INSIGHTS
=====================
{{.Speedup}}
MEMORY: {{.MemoryR.Message}}
`))

// Text writes the plain-text report for m to w.
func Text(w io.Writer, m *speedup.Metrics, opts *Options) error {
	return textTemplate.Execute(w, newView(m, opts))
}
