// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scale

// An Ordinal scale maps the Nth category of its domain to the
// N%len(range)th value of its range. The range cycles if the domain
// has more categories than the range has values.
//
// A category that is not in the domain maps to the fallback value if
// one is set with SetUnknown. Otherwise, if the scale is implicit,
// the category is appended to the domain. Otherwise Map returns an
// *UnknownCategoryError.
type Ordinal[K comparable, V any] struct {
	domain   []K
	index    map[K]int
	rng      []V
	unknown  V
	fallback bool
	implicit bool
}

// NewOrdinal returns an Ordinal scale over an explicit domain and
// range. Duplicate categories in domain are ignored after their
// first occurrence.
func NewOrdinal[K comparable, V any](domain []K, rng []V) *Ordinal[K, V] {
	s := &Ordinal[K, V]{}
	s.Configure(domain, rng)
	return s
}

// NewImplicitOrdinal returns an Ordinal scale with an empty domain
// that grows as Map encounters new categories. Categories are
// assigned range values in order of first appearance.
func NewImplicitOrdinal[K comparable, V any](rng []V) *Ordinal[K, V] {
	s := NewOrdinal[K, V](nil, rng)
	s.implicit = true
	return s
}

// Configure replaces the domain and range of s.
func (s *Ordinal[K, V]) Configure(domain []K, rng []V) {
	s.domain = s.domain[:0]
	s.index = make(map[K]int, len(domain))
	for _, k := range domain {
		s.add(k)
	}
	s.rng = append([]V(nil), rng...)
}

func (s *Ordinal[K, V]) add(k K) int {
	if i, ok := s.index[k]; ok {
		return i
	}
	i := len(s.domain)
	s.domain = append(s.domain, k)
	s.index[k] = i
	return i
}

// SetUnknown sets the value returned for categories that are not in
// the domain. This takes precedence over implicit domain growth.
func (s *Ordinal[K, V]) SetUnknown(v V) {
	s.unknown, s.fallback = v, true
}

// SetImplicit controls whether unknown categories are added to the
// domain by Map.
func (s *Ordinal[K, V]) SetImplicit(implicit bool) {
	s.implicit = implicit
}

// Domain returns the categories of s in index order.
func (s *Ordinal[K, V]) Domain() []K {
	return append([]K(nil), s.domain...)
}

// Range returns the output values of s.
func (s *Ordinal[K, V]) Range() []V {
	return append([]V(nil), s.rng...)
}

// Map returns the range value for category k.
func (s *Ordinal[K, V]) Map(k K) (V, error) {
	var zero V
	if len(s.rng) == 0 {
		return zero, &EmptyRangeError{}
	}
	i, ok := s.index[k]
	if !ok {
		switch {
		case s.fallback:
			return s.unknown, nil
		case s.implicit:
			i = s.add(k)
		default:
			return zero, &UnknownCategoryError{k}
		}
	}
	return s.rng[i%len(s.rng)], nil
}

// Invert always fails. Several categories may share one output value,
// so there is no inverse.
func (s *Ordinal[K, V]) Invert(V) (K, error) {
	var zero K
	return zero, &NotInvertibleError{Categorical}
}
