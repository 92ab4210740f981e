// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package config loads perfanalysis settings from the environment.
//
// Every setting is read from a variable prefixed with PERFANALYSIS_,
// for example PERFANALYSIS_REPORT or PERFANALYSIS_LOG_LEVEL.
package config

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/kelseyhightower/envconfig"
)

// Prefix is the prefix of every environment variable read by Load.
const Prefix = "PERFANALYSIS"

// Config holds the output locations and optional exports of a run.
// An empty path disables the corresponding output.
type Config struct {
	Report   string `envconfig:"REPORT" default:"performance_analysis_report.txt"`
	Chart    string `envconfig:"CHART" default:"performance_analysis.png"`
	ChartDPI int    `envconfig:"CHART_DPI" default:"100"`
	HTML     string `envconfig:"HTML"`
	XLSX     string `envconfig:"XLSX"`

	// DBDriver and DB select the run archive. DB is the data
	// source name passed to sql.Open.
	DBDriver string `envconfig:"DB_DRIVER" default:"sqlite3"`
	DB       string `envconfig:"DB"`

	// PublishDir and GCSBucket receive copies of every output
	// file. GCSToken is an optional OAuth2 access token.
	PublishDir string `envconfig:"PUBLISH_DIR"`
	GCSBucket  string `envconfig:"GCS_BUCKET"`
	GCSToken   string `envconfig:"GCS_TOKEN"`

	LogLevel  string `envconfig:"LOG_LEVEL" default:"info"`
	LogFormat string `envconfig:"LOG_FORMAT" default:"text"`
}

// Load reads the configuration from the environment.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(Prefix, &cfg); err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.ChartDPI <= 0 {
		return fmt.Errorf("%s_CHART_DPI must be positive, got %d", Prefix, c.ChartDPI)
	}
	if _, err := c.level(); err != nil {
		return err
	}
	switch c.format() {
	case "text", "json":
	default:
		return fmt.Errorf("%s_LOG_FORMAT must be text or json, got %q", Prefix, c.LogFormat)
	}
	return nil
}

func (c *Config) level() (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return 0, fmt.Errorf("%s_LOG_LEVEL: %w", Prefix, err)
	}
	return l, nil
}

func (c *Config) format() string {
	return strings.ToLower(c.LogFormat)
}

// Logger returns a logger writing to w in the configured format and
// at the configured level.
func (c *Config) Logger(w io.Writer) (*slog.Logger, error) {
	level, err := c.level()
	if err != nil {
		return nil, err
	}
	opts := &slog.HandlerOptions{Level: level}
	switch c.format() {
	case "text":
		return slog.New(slog.NewTextHandler(w, opts)), nil
	case "json":
		return slog.New(slog.NewJSONHandler(w, opts)), nil
	}
	return nil, fmt.Errorf("%s_LOG_FORMAT must be text or json, got %q", Prefix, c.LogFormat)
}
