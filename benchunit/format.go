// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchunit

// Seconds formats a duration given in seconds, such as "1.25s" or
// "340.0ms".
func Seconds(sec float64) string {
	return Scale(sec, Decimal) + "s"
}

// Kilobytes formats a memory size given in kilobytes (units of 1024
// bytes), such as "200.0KiB" or "1.500MiB".
func Kilobytes(kb float64) string {
	return Scale(kb*1024, Binary) + "B"
}
