// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scale

import (
	"math"
	"sort"

	"github.com/aclements/go-moremath/stats"
)

// Extent returns the smallest Interval containing every finite value
// in xs. It returns false if xs has no finite values.
func Extent(xs []float64) (Interval, bool) {
	finite := make([]float64, 0, len(xs))
	for _, x := range xs {
		if !math.IsNaN(x) && !math.IsInf(x, 0) {
			finite = append(finite, x)
		}
	}
	if len(finite) == 0 {
		return Interval{}, false
	}
	min, max := stats.Bounds(finite)
	return Interval{min, max}, true
}

// Pad returns i with Min divided by and Max multiplied by factor.
// This gives a little headroom around data that is far from zero.
func (i Interval) Pad(factor float64) Interval {
	return Interval{i.Min / factor, i.Max * factor}
}

// Bisect returns the index of the first element of the sorted slice
// xs that is >= x, or len(xs) if there is none.
func Bisect(xs []float64, x float64) int {
	return sort.SearchFloat64s(xs, x)
}

// Nearest returns the index of the element of the sorted slice xs
// closest to x. Ties go to the lower index. It returns -1 if xs is
// empty.
func Nearest(xs []float64, x float64) int {
	if len(xs) == 0 {
		return -1
	}
	i := Bisect(xs, x)
	if i == 0 {
		return 0
	}
	if i == len(xs) {
		return i - 1
	}
	if x-xs[i-1] > xs[i]-x {
		return i
	}
	return i - 1
}
