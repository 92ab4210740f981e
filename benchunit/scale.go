// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package benchunit formats measurements with SI or binary unit
// prefixes.
package benchunit

import (
	"fmt"
	"math"
	"strconv"
)

// A Class specifies what class of unit prefixes are in use.
type Class int

const (
	// Decimal indicates values of a given unit should be scaled
	// by powers of 1000 (k, M, m, µ, ...).
	Decimal Class = iota
	// Binary indicates values of a given unit should be scaled
	// by powers of 1024 (Ki, Mi, Gi, ...).
	Binary
)

func (c Class) String() string {
	switch c {
	case Decimal:
		return "Decimal"
	case Binary:
		return "Binary"
	}
	return fmt.Sprintf("Class(%d)", int(c))
}

// A Scaler represents a scaling factor for a number and
// its scientific representation.
type Scaler struct {
	Prec   int     // Digits after the decimal point
	Factor float64 // Unscaled value of 1 Prefix (e.g., 1 k => 1000)
	Prefix string  // Unit prefix ("k", "M", "Ki", etc)
}

// Format formats val and appends the unit prefix according to the
// given scale. For example, with a Decimal scale chosen for
// 123456789, Format returns "123.5M".
func (s Scaler) Format(val float64) string {
	buf := make([]byte, 0, 20)
	buf = strconv.AppendFloat(buf, val/s.Factor, 'f', s.Prec, 64)
	buf = append(buf, s.Prefix...)
	return string(buf)
}

// A prefix is one unit prefix together with the smallest values that
// print with one, two and three digits after the decimal point.
type prefix struct {
	factor float64
	name   string
	// Thresholds for 100.0, 10.00, 1.000.
	t100, t10, t1 float64
}

var (
	siPrefixes  = mkPrefixes(1000, []string{"T", "G", "M", "k", "", "m", "µ", "n"}, 4)
	iecPrefixes = mkPrefixes(1024, []string{"Ti", "Gi", "Mi", "Ki", ""}, 4)
)

// mkPrefixes builds a descending prefix table for base, where
// names[top] has factor 1. The thresholds are derived from the
// rounding of printed values, so that a value that rounds up to the
// next precision is printed at that precision.
func mkPrefixes(base float64, names []string, top int) []prefix {
	var ps []prefix
	for i, name := range names {
		f := math.Pow(base, float64(top-i))
		ps = append(ps, prefix{f, name, 99.995 * f, 9.9995 * f, .99995 * f})
	}
	return ps
}

// Scale formats val using at least three significant digits,
// appending an SI or binary prefix. See Scaler.Format for details.
func Scale(val float64, cls Class) string {
	return CommonScale([]float64{val}, cls).Format(val)
}

// CommonScale returns a common Scaler to apply to all values in vals.
// This scale will show at least three significant digits for every
// value.
func CommonScale(vals []float64, cls Class) Scaler {
	// The common scale is determined by the non-zero value
	// closest to zero.
	var min float64
	for _, v := range vals {
		v = math.Abs(v)
		if v != 0 && (min == 0 || v < min) {
			min = v
		}
	}
	if min == 0 {
		return Scaler{3, 1, ""}
	}

	var ps []prefix
	switch cls {
	default:
		panic(fmt.Sprintf("bad Class %v", cls))
	case Decimal:
		ps = siPrefixes
	case Binary:
		ps = iecPrefixes
	}

	for _, p := range ps {
		switch {
		case min >= p.t100:
			return Scaler{1, p.factor, p.name}
		case min >= p.t10:
			return Scaler{2, p.factor, p.name}
		case min >= p.t1:
			return Scaler{3, p.factor, p.name}
		}
	}

	// The value is below the smallest prefix. Use that prefix
	// with enough digits for three significant figures.
	p := ps[len(ps)-1]
	prec := 3
	for v := min / p.factor; v < .99995 && prec < 10; v *= 10 {
		prec++
	}
	return Scaler{prec, p.factor, p.name}
}
