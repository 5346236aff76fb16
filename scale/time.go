// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scale

import (
	"math"
	"time"

	mscale "github.com/aclements/go-moremath/scale"
)

// Time is a linear scale whose domain is an interval of instants.
//
// Instants are mapped as nanosecond offsets from the start of the
// domain, so Invert(Map(t)) is exact to within a few nanoseconds for
// domains shorter than about 100 days. Offsets saturate for instants
// more than 292 years from the start of the domain.
type Time struct {
	origin time.Time
	lin    *Continuous
}

// NewTime returns a Time scale from [from, to] to rng.
func NewTime(from, to time.Time, rng Interval) (*Time, error) {
	lin, err := NewContinuous(Linear, Interval{0, float64(to.Sub(from))}, rng)
	if err != nil {
		return nil, err
	}
	return &Time{from, lin}, nil
}

// SetDomain replaces the domain of s.
func (s *Time) SetDomain(from, to time.Time) error {
	if err := s.lin.SetDomain(Interval{0, float64(to.Sub(from))}); err != nil {
		return err
	}
	s.origin = from
	return nil
}

// SetRange replaces the range of s.
func (s *Time) SetRange(rng Interval) {
	s.lin.SetRange(rng)
}

// SetClamp controls whether out-of-domain instants are clamped.
func (s *Time) SetClamp(clamp bool) {
	s.lin.SetClamp(clamp)
}

// Map returns the range value for t.
func (s *Time) Map(t time.Time) float64 {
	y, _ := s.lin.Map(float64(t.Sub(s.origin)))
	return y
}

// Invert returns the instant that maps to y. This is how a cursor
// position is turned back into a point in time.
func (s *Time) Invert(y float64) (time.Time, error) {
	x, err := s.lin.Invert(y)
	if err != nil {
		return time.Time{}, err
	}
	return s.origin.Add(time.Duration(math.Round(x))), nil
}

// Ticks returns up to n instants suitable for axis ticks. Ticks fall
// on round numbers of seconds since the Unix epoch.
func (s *Time) Ticks(n int) []time.Time {
	if n < 1 {
		return nil
	}
	d := s.lin.Domain().sorted()
	lo := s.origin.Add(time.Duration(d.Min))
	hi := s.origin.Add(time.Duration(d.Max))
	major, _ := mscale.Linear{Min: seconds(lo), Max: seconds(hi)}.Ticks(mscale.TickOptions{Max: n})
	var ticks []time.Time
	for _, x := range major {
		ticks = append(ticks, fromSeconds(x))
	}
	return ticks
}

// seconds returns t as fractional seconds since the Unix epoch.
func seconds(t time.Time) float64 {
	return float64(t.Unix()) + float64(t.Nanosecond())/1e9
}

func fromSeconds(x float64) time.Time {
	sec := math.Floor(x)
	return time.Unix(int64(sec), int64(math.Round((x-sec)*1e9))).UTC()
}
