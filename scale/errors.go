// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scale

import "fmt"

// InvalidDomainError is returned when a value cannot be represented
// under a scale's transform, such as a non-positive domain bound or
// input value for a Log scale.
type InvalidDomainError struct {
	Mode  Mode
	Value float64
}

func (e *InvalidDomainError) Error() string {
	return fmt.Sprintf("%s scale: value %g is outside the transform's domain", e.Mode, e.Value)
}

// DegenerateDomainError is returned when a domain has zero width, so
// no input can be distinguished from any other.
type DegenerateDomainError struct {
	Domain Interval
}

func (e *DegenerateDomainError) Error() string {
	return fmt.Sprintf("degenerate domain %s", e.Domain)
}

// DegenerateRangeError is returned by Invert when the range has zero
// width.
type DegenerateRangeError struct {
	Range Interval
}

func (e *DegenerateRangeError) Error() string {
	return fmt.Sprintf("cannot invert degenerate range %s", e.Range)
}

// InvalidBaseError is returned for a log base that is not positive or
// is 1.
type InvalidBaseError struct {
	Base float64
}

func (e *InvalidBaseError) Error() string {
	return fmt.Sprintf("invalid log base %g", e.Base)
}

// UnknownCategoryError is returned when a categorical scale is asked
// to map a value that is not in its domain and it has no fallback.
type UnknownCategoryError struct {
	Value interface{}
}

func (e *UnknownCategoryError) Error() string {
	return fmt.Sprintf("unknown category %v", e.Value)
}

// NotInvertibleError is returned by Invert on scales that do not
// support inversion.
type NotInvertibleError struct {
	Mode Mode
}

func (e *NotInvertibleError) Error() string {
	return fmt.Sprintf("%s scale is not invertible", e.Mode)
}

// EmptyRangeError is returned when a categorical scale has no output
// values to map to.
type EmptyRangeError struct{}

func (e *EmptyRangeError) Error() string {
	return "scale has an empty range"
}
