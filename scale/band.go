// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scale

import "math"

// A Band scale divides a continuous range into uniform bands, one per
// category of its domain, and maps each category to the start of its
// band. It is used for the categorical axis of a bar chart.
//
// PaddingInner is the fraction of each step left empty between
// bands, in [0, 1]. PaddingOuter is the space before the first band
// and after the last, in multiples of the step. Align, in [0, 1],
// distributes any leftover outer space; 0.5 centers the bands.
type Band[K comparable] struct {
	domain []K
	index  map[K]int
	rng    Interval

	PaddingInner float64
	PaddingOuter float64
	Align        float64

	// Round, if set, snaps the step and band starts to whole
	// pixels.
	Round bool
}

// NewBand returns a Band scale over domain and rng with no padding
// and centered alignment.
func NewBand[K comparable](domain []K, rng Interval) *Band[K] {
	s := &Band[K]{Align: 0.5}
	s.Configure(domain, rng)
	return s
}

// Configure replaces the domain and range of s. Duplicate categories
// are ignored after their first occurrence.
func (s *Band[K]) Configure(domain []K, rng Interval) {
	s.domain = s.domain[:0]
	s.index = make(map[K]int, len(domain))
	for _, k := range domain {
		if _, ok := s.index[k]; !ok {
			s.index[k] = len(s.domain)
			s.domain = append(s.domain, k)
		}
	}
	s.rng = rng
}

// Domain returns the categories of s in band order.
func (s *Band[K]) Domain() []K {
	return append([]K(nil), s.domain...)
}

// layout returns the start of the first band and the step between
// band starts, both measured from the lower end of the range.
func (s *Band[K]) layout() (start, step float64) {
	r := s.rng.sorted()
	n := float64(len(s.domain))
	step = (r.Max - r.Min) / math.Max(1, n-s.PaddingInner+s.PaddingOuter*2)
	if s.Round {
		step = math.Floor(step)
	}
	start = r.Min + (r.Max-r.Min-step*(n-s.PaddingInner))*s.Align
	if s.Round {
		start = math.Round(start)
	}
	return start, step
}

// Step returns the distance between the starts of adjacent bands.
func (s *Band[K]) Step() float64 {
	_, step := s.layout()
	return step
}

// Bandwidth returns the width of each band.
func (s *Band[K]) Bandwidth() float64 {
	bw := s.Step() * (1 - s.PaddingInner)
	if s.Round {
		bw = math.Round(bw)
	}
	return bw
}

// Map returns the start of the band for category k. If the range is
// reversed, the first category is placed at the high end.
func (s *Band[K]) Map(k K) (float64, error) {
	i, ok := s.index[k]
	if !ok {
		return 0, &UnknownCategoryError{k}
	}
	if s.rng.Min > s.rng.Max {
		i = len(s.domain) - 1 - i
	}
	start, step := s.layout()
	return start + step*float64(i), nil
}
