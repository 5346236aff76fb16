// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package scale maps values from an input domain to an output range.
//
// A Continuous scale maps an interval of float64 values to another
// interval through a linear, logarithmic, or square-root transform.
// An Ordinal scale maps a finite list of categories to a palette of
// output values. A Band scale divides an interval into evenly spaced
// bands, one per category. A Time scale is a linear scale over
// time.Time.
//
// Scales hold no state except their configuration, which may be
// replaced between calls. They are not safe for concurrent use while
// being reconfigured.
package scale

import "fmt"

// An Interval is an ordered pair of bounds. Min may be greater than
// Max, in which case the interval runs in the reverse direction. This
// is common for vertical pixel ranges, where y grows downward.
type Interval struct {
	Min, Max float64
}

func (i Interval) String() string {
	return fmt.Sprintf("[%g,%g]", i.Min, i.Max)
}

// Width returns Max - Min.
func (i Interval) Width() float64 {
	return i.Max - i.Min
}

// sorted returns i with Min <= Max.
func (i Interval) sorted() Interval {
	if i.Min > i.Max {
		return Interval{i.Max, i.Min}
	}
	return i
}

// Mode is the interpolation used by a scale.
type Mode int

const (
	// Linear maps the domain to the range with an affine function.
	Linear Mode = iota

	// Log applies log_base to the input before mapping linearly.
	// The domain must be strictly positive.
	Log

	// Sqrt applies a square root to the input before mapping
	// linearly. This makes the area of a circle whose radius is
	// given by the scale proportional to the input.
	Sqrt

	// Categorical looks up the input in a list of categories, as
	// the Ordinal and Band scales do.
	Categorical
)

func (m Mode) String() string {
	switch m {
	case Linear:
		return "linear"
	case Log:
		return "log"
	case Sqrt:
		return "sqrt"
	case Categorical:
		return "categorical"
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

// ParseMode returns the Mode named by s, as printed by Mode.String.
func ParseMode(s string) (Mode, error) {
	for m := Linear; m <= Categorical; m++ {
		if m.String() == s {
			return m, nil
		}
	}
	return 0, fmt.Errorf("unknown scale mode %q", s)
}

// lerp interpolates between a and b. It is exact at t == 0 and t == 1.
func lerp(a, b, t float64) float64 {
	return a*(1-t) + b*t
}
