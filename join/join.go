// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package join reconciles a previous keyed dataset with a new one.
//
// Given the records currently bound to visual elements and a fresh
// set of records, Reconcile partitions the keys into those that must
// be created (entering), those whose elements should be updated in
// place (updating), and those whose elements must be removed
// (exiting). It never touches a rendering surface; callers act on the
// Result.
package join

import "fmt"

// A Pair is a record present in both the previous and the new
// dataset.
type Pair[R any] struct {
	Old, New R
}

// Result is the outcome of one reconciliation.
//
// Entering and Updating are in the order of the new records. Exiting
// is in the order of the previous records. The key slices parallel
// the record slices.
type Result[R any, K comparable] struct {
	Entering     []R
	EnteringKeys []K

	Updating     []Pair[R]
	UpdatingKeys []K

	Exiting     []R
	ExitingKeys []K
}

// Counts returns the size of each partition.
func (r *Result[R, K]) Counts() (entering, updating, exiting int) {
	return len(r.Entering), len(r.Updating), len(r.Exiting)
}

// Stable reports whether the set of keys did not change, so the
// reconciliation consists only of updates.
func (r *Result[R, K]) Stable() bool {
	return len(r.Entering) == 0 && len(r.Exiting) == 0
}

func (r *Result[R, K]) String() string {
	e, u, x := r.Counts()
	return fmt.Sprintf("%d entering, %d updating, %d exiting", e, u, x)
}

// DuplicateKeyError is returned by Reconcile when the key function
// produces the same key for two records of one input.
type DuplicateKeyError struct {
	// Key is the repeated key.
	Key interface{}

	// Side is "previous" or "new".
	Side string

	// First and Second are the indexes of the colliding records.
	First, Second int
}

func (e *DuplicateKeyError) Error() string {
	return fmt.Sprintf("duplicate key %v in %s records at indexes %d and %d", e.Key, e.Side, e.First, e.Second)
}

// Reconcile computes the enter/update/exit partition of prev and next
// under the identity given by key.
//
// Keys must be unique within each of prev and next. Reconcile holds
// no state, so the same inputs always produce the same Result.
func Reconcile[R any, K comparable](prev, next []R, key func(R) K) (Result[R, K], error) {
	var res Result[R, K]

	prevIdx, err := indexKeys(prev, key, "previous")
	if err != nil {
		return res, err
	}
	nextIdx, err := indexKeys(next, key, "new")
	if err != nil {
		return res, err
	}

	for _, rec := range next {
		k := key(rec)
		if j, ok := prevIdx[k]; ok {
			res.Updating = append(res.Updating, Pair[R]{prev[j], rec})
			res.UpdatingKeys = append(res.UpdatingKeys, k)
		} else {
			res.Entering = append(res.Entering, rec)
			res.EnteringKeys = append(res.EnteringKeys, k)
		}
	}
	for _, rec := range prev {
		k := key(rec)
		if _, ok := nextIdx[k]; !ok {
			res.Exiting = append(res.Exiting, rec)
			res.ExitingKeys = append(res.ExitingKeys, k)
		}
	}
	return res, nil
}

func indexKeys[R any, K comparable](recs []R, key func(R) K, side string) (map[K]int, error) {
	idx := make(map[K]int, len(recs))
	for i, rec := range recs {
		k := key(rec)
		if j, ok := idx[k]; ok {
			return nil, &DuplicateKeyError{k, side, j, i}
		}
		idx[k] = i
	}
	return idx, nil
}
