// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package dataset loads flat records for charting.
//
// A Record maps field names to values: strings, float64s, or
// time.Times. Loaders coerce the fields they are told are numeric
// and drop records that lack required fields.
package dataset

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"
)

// A Record is one row of a dataset.
type Record map[string]interface{}

// MissingFieldError is returned when a record has no value for a
// field.
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("missing field %q", e.Field)
}

// Float returns field as a number. Strings are parsed.
func (r Record) Float(field string) (float64, error) {
	v, ok := r[field]
	if !ok || v == nil {
		return 0, &MissingFieldError{field}
	}
	switch v := v.(type) {
	case float64:
		return v, nil
	case int:
		return float64(v), nil
	case json.Number:
		return v.Float64()
	case string:
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return 0, fmt.Errorf("field %q: %w", field, err)
		}
		return f, nil
	}
	return 0, fmt.Errorf("field %q: %T is not numeric", field, v)
}

// String returns field formatted as a string, or "" if it is absent.
func (r Record) String(field string) string {
	switch v := r[field].(type) {
	case nil:
		return ""
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'g', -1, 64)
	case time.Time:
		return v.Format(time.RFC3339)
	default:
		return fmt.Sprint(v)
	}
}

// Time returns field as a time.Time.
func (r Record) Time(field string) (time.Time, error) {
	v, ok := r[field]
	if !ok || v == nil {
		return time.Time{}, &MissingFieldError{field}
	}
	if t, ok := v.(time.Time); ok {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("field %q: %T is not a time", field, v)
}

// Key returns a key function that identifies records by field.
func Key(field string) func(Record) string {
	return func(r Record) string {
		return r.String(field)
	}
}

// has reports whether r has a non-empty, non-zero value for field.
// This matches the truthiness test used to drop incomplete records.
func (r Record) has(field string) bool {
	switch v := r[field].(type) {
	case nil:
		return false
	case string:
		return v != ""
	case json.Number:
		f, err := v.Float64()
		return err == nil && f != 0
	case float64:
		return v != 0
	}
	return true
}

// coerce converts the named fields of r to float64 in place.
func (r Record) coerce(fields []string) error {
	for _, f := range fields {
		if v, ok := r[f]; !ok || v == nil {
			continue
		}
		x, err := r.Float(f)
		if err != nil {
			return err
		}
		r[f] = x
	}
	return nil
}

// Floats returns field of every record as a slice, in record order.
// Records without a numeric value for field yield NaN.
func Floats(recs []Record, field string) []float64 {
	xs := make([]float64, len(recs))
	for i, r := range recs {
		x, err := r.Float(field)
		if err != nil {
			x = nan
		}
		xs[i] = x
	}
	return xs
}
