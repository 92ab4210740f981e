// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package config

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, &Config{
		Report:    "performance_analysis_report.txt",
		Chart:     "performance_analysis.png",
		ChartDPI:  100,
		DBDriver:  "sqlite3",
		LogLevel:  "info",
		LogFormat: "text",
	}, cfg)
}

func TestLoadEnv(t *testing.T) {
	t.Setenv("PERFANALYSIS_REPORT", "out/report.txt")
	t.Setenv("PERFANALYSIS_CHART", "")
	t.Setenv("PERFANALYSIS_CHART_DPI", "300")
	t.Setenv("PERFANALYSIS_DB", "runs.db")
	t.Setenv("PERFANALYSIS_GCS_BUCKET", "artifacts")
	t.Setenv("PERFANALYSIS_LOG_FORMAT", "JSON")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "out/report.txt", cfg.Report)
	assert.Equal(t, "", cfg.Chart, "an empty variable disables the chart")
	assert.Equal(t, 300, cfg.ChartDPI)
	assert.Equal(t, "runs.db", cfg.DB)
	assert.Equal(t, "artifacts", cfg.GCSBucket)
}

func TestLoadErrors(t *testing.T) {
	for _, tc := range []struct {
		key, value string
	}{
		{"PERFANALYSIS_CHART_DPI", "many"},
		{"PERFANALYSIS_CHART_DPI", "0"},
		{"PERFANALYSIS_LOG_LEVEL", "loud"},
		{"PERFANALYSIS_LOG_FORMAT", "xml"},
	} {
		t.Run(tc.key+"="+tc.value, func(t *testing.T) {
			t.Setenv(tc.key, tc.value)
			_, err := Load()
			assert.Error(t, err)
		})
	}
}

func TestLogger(t *testing.T) {
	var buf bytes.Buffer
	cfg := &Config{LogLevel: "warn", LogFormat: "json"}
	logger, err := cfg.Logger(&buf)
	require.NoError(t, err)

	logger.Info("hidden")
	logger.Warn("shown", "n", 3)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "shown", entry["msg"])
	assert.Equal(t, "WARN", entry["level"])
	assert.Equal(t, 3.0, entry["n"])

	buf.Reset()
	cfg = &Config{LogLevel: "debug", LogFormat: "text"}
	logger, err = cfg.Logger(&buf)
	require.NoError(t, err)
	logger.Debug("details")
	assert.Contains(t, buf.String(), "level=DEBUG msg=details")
}
