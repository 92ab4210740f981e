// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchunit

import "testing"

func TestScale(t *testing.T) {
	var cls Class
	test := func(num float64, want string) {
		t.Helper()
		if got := Scale(num, cls); got != want {
			t.Errorf("Scale(%v, %v) = %s, want %s", num, cls, got, want)
		}
	}

	cls = Decimal
	test(0, "0.000")
	test(1, "1.000")
	test(-1, "-1.000")
	test(12, "12.00")
	test(123, "123.0")
	test(1234, "1.234k")
	test(123456789, "123.5M")
	test(.5, "500.0m")
	test(.00125, "1.250m")
	test(.0000042, "4.200µ")
	test(.000000001, "1.000n")
	test(.0000000001, "0.1000n")

	cls = Binary
	test(1, "1.000")
	test(1023, "1023.0")
	test(1024, "1.000Ki")
	test(200*1024, "200.0Ki")
	test(1536*1024, "1.500Mi")
	test(3<<30, "3.000Gi")
}

func TestCommonScale(t *testing.T) {
	s := CommonScale([]float64{1500, 2, 250000}, Decimal)
	if got := s.Format(250000); got != "250000.000" {
		t.Errorf("common scale formatted 250000 as %s", got)
	}
	s = CommonScale([]float64{2048, 4096}, Binary)
	if got := s.Format(4096); got != "4.000Ki" {
		t.Errorf("common scale formatted 4096 as %s", got)
	}
}

func TestUnits(t *testing.T) {
	for _, test := range []struct {
		got, want string
	}{
		{Seconds(4), "4.000s"},
		{Seconds(0.25), "250.0ms"},
		{Seconds(12.5), "12.50s"},
		{Kilobytes(200), "200.0KiB"},
		{Kilobytes(1536), "1.500MiB"},
		{Kilobytes(0), "0.000B"},
	} {
		if test.got != test.want {
			t.Errorf("got %s, want %s", test.got, test.want)
		}
	}
}
