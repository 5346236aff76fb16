// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scale

import (
	"fmt"
	"math"

	mscale "github.com/aclements/go-moremath/scale"
)

// DefaultBase is the log base of a newly configured Log scale.
const DefaultBase = 10

// A Continuous scale maps an interval of the reals to an output
// interval through a Linear, Log, or Sqrt transform.
//
// Inputs outside the domain are extrapolated unless clamping is
// enabled with SetClamp.
type Continuous struct {
	mode   Mode
	domain Interval
	rng    Interval
	base   float64
	clamp  bool

	// t0 and t1 are the domain bounds in transformed space.
	t0, t1 float64
}

// NewContinuous returns a scale with the given mode, domain, and
// range. See Configure for the constraints on these.
func NewContinuous(mode Mode, domain, rng Interval) (*Continuous, error) {
	s := &Continuous{base: DefaultBase}
	if err := s.Configure(mode, domain, rng); err != nil {
		return nil, err
	}
	return s, nil
}

// Configure replaces the mode, domain, and range of s.
//
// mode must be Linear, Log, or Sqrt. Under Log, both domain bounds
// must be strictly positive. The domain must not be degenerate in
// the transformed space. If Configure returns an error, s is left
// unchanged.
func (s *Continuous) Configure(mode Mode, domain, rng Interval) error {
	switch mode {
	case Linear, Log, Sqrt:
	default:
		return fmt.Errorf("%s mode is not continuous", mode)
	}
	if s.base == 0 {
		s.base = DefaultBase
	}
	if mode == Log {
		for _, b := range []float64{domain.Min, domain.Max} {
			if !(b > 0) {
				return &InvalidDomainError{Log, b}
			}
		}
	}
	t0 := transform(mode, s.base, domain.Min)
	t1 := transform(mode, s.base, domain.Max)
	if t0 == t1 || math.IsNaN(t0) || math.IsNaN(t1) {
		return &DegenerateDomainError{domain}
	}
	s.mode, s.domain, s.rng = mode, domain, rng
	s.t0, s.t1 = t0, t1
	return nil
}

// SetDomain replaces only the domain of s.
func (s *Continuous) SetDomain(domain Interval) error {
	return s.Configure(s.mode, domain, s.rng)
}

// SetRange replaces only the range of s. Any range is valid.
func (s *Continuous) SetRange(rng Interval) {
	s.rng = rng
}

// SetBase sets the logarithm base used by Log mode. It affects tick
// placement and the transform applied to inputs.
func (s *Continuous) SetBase(base float64) error {
	if !(base > 0) || base == 1 || math.IsInf(base, 0) {
		return &InvalidBaseError{base}
	}
	old := s.base
	s.base = base
	if s.mode == Log {
		if err := s.Configure(s.mode, s.domain, s.rng); err != nil {
			s.base = old
			return err
		}
	}
	return nil
}

// SetClamp controls whether inputs outside the domain, and outputs
// outside the range passed to Invert, are clamped to the nearest
// bound.
func (s *Continuous) SetClamp(clamp bool) {
	s.clamp = clamp
}

func (s *Continuous) Mode() Mode { return s.mode }
func (s *Continuous) Domain() Interval { return s.domain }
func (s *Continuous) Range() Interval { return s.rng }
func (s *Continuous) Base() float64 { return s.base }
func (s *Continuous) Clamped() bool { return s.clamp }

func (s *Continuous) String() string {
	str := fmt.Sprintf("%s %s => %s", s.mode, s.domain, s.rng)
	if s.mode == Log {
		str += fmt.Sprintf(" base %g", s.base)
	}
	return str
}

// Map returns the range value for domain value x.
//
// Map(Domain().Min) == Range().Min and Map(Domain().Max) ==
// Range().Max exactly. Under Log mode, x must be positive.
func (s *Continuous) Map(x float64) (float64, error) {
	if s.mode == Log && !(x > 0) {
		return 0, &InvalidDomainError{Log, x}
	}
	t := s.normalize(x)
	return lerp(s.rng.Min, s.rng.Max, t), nil
}

// normalize maps x to [0, 1] over the domain, in transformed space.
func (s *Continuous) normalize(x float64) float64 {
	var t float64
	switch x {
	case s.domain.Min:
		t = 0
	case s.domain.Max:
		t = 1
	default:
		tx := transform(s.mode, s.base, x)
		t = (tx - s.t0) / (s.t1 - s.t0)
	}
	if s.clamp {
		t = clamp01(t)
	}
	return t
}

// Invert returns the domain value that maps to range value y. It is
// supported for Linear and Log modes.
func (s *Continuous) Invert(y float64) (float64, error) {
	if s.mode == Sqrt {
		return 0, &NotInvertibleError{s.mode}
	}
	if s.rng.Min == s.rng.Max {
		return 0, &DegenerateRangeError{s.rng}
	}
	var t float64
	switch y {
	case s.rng.Min:
		return s.domain.Min, nil
	case s.rng.Max:
		return s.domain.Max, nil
	default:
		t = (y - s.rng.Min) / (s.rng.Max - s.rng.Min)
	}
	if s.clamp {
		t = clamp01(t)
	}
	return untransform(s.mode, s.base, lerp(s.t0, s.t1, t)), nil
}

// Ticks returns up to n domain values suitable for axis ticks, in
// increasing order.
func (s *Continuous) Ticks(n int) []float64 {
	if n < 1 {
		return nil
	}
	d := s.domain.sorted()
	if s.mode == Log {
		if ticks := logTicks(d, s.base, n); len(ticks) > 0 {
			return ticks
		}
	}
	major, _ := mscale.Linear{Min: d.Min, Max: d.Max}.Ticks(mscale.TickOptions{Max: n})
	return major
}

// logTicks returns the integer powers of base within d, thinned to at
// most n values.
func logTicks(d Interval, base float64, n int) []float64 {
	lo := math.Ceil(logb(d.Min, base) - 1e-9)
	hi := math.Floor(logb(d.Max, base) + 1e-9)
	if hi < lo {
		return nil
	}
	count := int(hi-lo) + 1
	stride := (count + n - 1) / n
	var ticks []float64
	for e := lo; e <= hi; e += float64(stride) {
		ticks = append(ticks, math.Pow(base, e))
	}
	return ticks
}

func transform(mode Mode, base, x float64) float64 {
	switch mode {
	case Log:
		return logb(x, base)
	case Sqrt:
		if x < 0 {
			return -math.Sqrt(-x)
		}
		return math.Sqrt(x)
	}
	return x
}

func untransform(mode Mode, base, y float64) float64 {
	switch mode {
	case Log:
		return math.Pow(base, y)
	case Sqrt:
		if y < 0 {
			return -y * y
		}
		return y * y
	}
	return y
}

func logb(x, base float64) float64 {
	if base == 10 {
		return math.Log10(x)
	}
	return math.Log(x) / math.Log(base)
}

func clamp01(t float64) float64 {
	if t < 0 {
		return 0
	} else if t > 1 {
		return 1
	}
	return t
}
