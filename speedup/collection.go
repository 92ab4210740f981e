// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package speedup pairs original and optimized benchmark runs and
// summarizes how much faster and leaner the optimized build is.
package speedup

import (
	"fmt"
	"log/slog"

	"github.com/morphosis/perfanalysis/perfcsv"
)

// A Key identifies a test configuration. Runs with equal keys are
// comparable.
type Key struct {
	GridSize   string
	StepSize   float64
	Iterations int
}

func (k Key) String() string {
	return fmt.Sprintf("%s_%v_%d", k.GridSize, k.StepSize, k.Iterations)
}

// A Group holds the runs of one test configuration.
type Group struct {
	Key       Key
	Original  *perfcsv.Record
	Optimized *perfcsv.Record
}

// Complete reports whether g has both an original and an optimized
// run.
func (g *Group) Complete() bool {
	return g.Original != nil && g.Optimized != nil
}

// A Collection accumulates performance records into test groups.
//
// The zero Collection is ready to use.
type Collection struct {
	// Logger receives skipped and replaced records. If nil,
	// slog.Default() is used.
	Logger *slog.Logger

	groups map[Key]*Group
	// order is the keys of groups in first-seen order.
	order []Key

	skipped int
}

func (c *Collection) logger() *slog.Logger {
	if c.Logger == nil {
		return slog.Default()
	}
	return c.Logger
}

// Add adds a record to the collection.
//
// Records whose test name cannot be parsed, including those with a
// malformed step size or iteration count, and records whose version is
// neither original nor optimized are skipped. Skipped records are
// logged and counted in Metrics.Skipped. If a configuration already
// has a record for the same version, the new record replaces it.
func (c *Collection) Add(r *perfcsv.Record) {
	log := c.logger()
	p, ok, err := r.Params()
	if err != nil {
		log.Warn("skipping record", "test", r.TestName, "err", err)
		c.skipped++
		return
	}
	if !ok {
		log.Warn("skipping record with unparseable test name", "test", r.TestName)
		c.skipped++
		return
	}

	switch p.Version {
	case perfcsv.Original, perfcsv.Optimized:
	default:
		log.Warn("skipping record with unknown version", "test", r.TestName, "version", p.Version)
		c.skipped++
		return
	}

	if c.groups == nil {
		c.groups = make(map[Key]*Group)
	}
	key := Key{p.GridSize, p.StepSize, p.Iterations}
	g := c.groups[key]
	if g == nil {
		g = &Group{Key: key}
		c.groups[key] = g
		c.order = append(c.order, key)
	}

	slot := &g.Original
	if p.Version == perfcsv.Optimized {
		slot = &g.Optimized
	}
	if *slot != nil {
		log.Debug("replacing duplicate record", "test", r.TestName, "previous", (*slot).TestName)
	}
	*slot = r
}

// Groups returns the test groups in the order their first record was
// added.
func (c *Collection) Groups() []*Group {
	out := make([]*Group, len(c.order))
	for i, k := range c.order {
		out[i] = c.groups[k]
	}
	return out
}

// Skipped returns the number of records skipped by Add.
func (c *Collection) Skipped() int {
	return c.skipped
}

// Aggregate adds all records to a new Collection and returns its
// Metrics.
func Aggregate(records []*perfcsv.Record, logger *slog.Logger) *Metrics {
	c := &Collection{Logger: logger}
	for _, r := range records {
		c.Add(r)
	}
	return c.Metrics()
}
