// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package report

import (
	"io"

	"github.com/google/safehtml/template"

	"github.com/morphosis/perfanalysis/benchunit"
	"github.com/morphosis/perfanalysis/speedup"
)

var htmlFuncs = template.FuncMap{
	"seconds":   benchunit.Seconds,
	"kilobytes": benchunit.Kilobytes,
}

var htmlTemplate = template.Must(template.New("report").Funcs(htmlFuncs).Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>Morphosis performance report</title>
<style>
body { font-family: sans-serif; }
table { border-collapse: collapse; margin-bottom: 1em; }
th, td { padding: 0.2em 0.8em; text-align: left; }
td.num { text-align: right; }
</style>
</head>
<body>
<h1>{{.Title}}</h1>
<p>Generated: {{.Generated}}</p>

<h2>Overall performance metrics</h2>
<table>
<tr><th>Total tests analyzed<td class="num">{{.Tests}}
<tr><th>Skipped records<td class="num">{{.Skipped}}
<tr><th>Incomplete groups<td class="num">{{.Incomplete}}
<tr><th>Average speedup<td class="num">{{printf "%.2fx" .Mean}}
<tr><th>Median speedup<td class="num">{{printf "%.2fx" .Median}}
<tr><th>Minimum speedup<td class="num">{{printf "%.2fx" .Min}}
<tr><th>Maximum speedup<td class="num">{{printf "%.2fx" .Max}}
<tr><th>Standard deviation<td class="num">{{printf "%.2fx" .StdDev}}
<tr><th>Average memory improvement<td class="num">{{printf "%.2fx" .Memory}}
<tr><th>Overall efficiency gain<td class="num">{{printf "%.1f%%" .Gain}}
<tr><th>Performance consistency<td class="num">{{.Consistency}}
</table>
{{range .Sections}}
<h2>{{.Title}}</h2>
{{if .Buckets -}}
<table>
<tr><th>Value<th>Average speedup<th>Tests
{{range .Buckets -}}
<tr><td>{{.Key}}<td class="num">{{printf "%.2fx" .Mean}}<td class="num">{{.Count}}
{{end -}}
</table>
{{- else -}}
<p>No complete test pairs.</p>
{{- end}}
{{end}}
<h2>Test pairs</h2>
{{if .Pairs -}}
<table>
<tr><th>Test<th>Original time<th>Optimized time<th>Speedup<th>Original memory<th>Optimized memory<th>Memory improvement
{{range .Pairs -}}
<tr><td>{{.Key}}<td class="num">{{seconds .Original.RealTime}}<td class="num">{{seconds .Optimized.RealTime}}<td class="num">{{printf "%.2fx" .Speedup}}<td class="num">{{kilobytes .Original.MaxMemoryKB}}<td class="num">{{kilobytes .Optimized.MaxMemoryKB}}<td class="num">{{printf "%.2fx" .MemoryImprovement}}
{{end -}}
</table>
{{- else -}}
<p>No complete test pairs.</p>
{{- end}}

<h2>Optimization insights</h2>
<ul>
<li>{{.Speedup}}
<li>MEMORY: {{.MemoryR.Message}}
</ul>
</body>
</html>
`))

// HTML writes the report for m to w as a standalone HTML page. It
// carries the same sections as Text plus a table of every test pair.
func HTML(w io.Writer, m *speedup.Metrics, opts *Options) error {
	return htmlTemplate.Execute(w, newView(m, opts))
}
