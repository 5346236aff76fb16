// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dataset

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"sort"
	"strconv"
	"time"
)

var nan = math.NaN()

// A Frame is one step of an animated dataset.
type Frame struct {
	// Label identifies the frame, such as its year.
	Label   string
	Records []Record
}

// FrameOptions controls ReadFrames.
type FrameOptions struct {
	// Label names the field of each frame object that labels the
	// frame. Defaults to "year".
	Label string

	// Items names the field of each frame object holding the
	// frame's records. Defaults to "countries".
	Items string

	// Require lists fields that every kept record must have with
	// a non-zero value. Other records are dropped.
	Require []string

	// Numeric lists fields to convert to float64.
	Numeric []string

	// Origin labels frames that lack a label field: frame i is
	// labeled Origin+i.
	Origin int
}

// ReadFrames reads a JSON array of frame objects, each holding a
// label and an array of records.
func ReadFrames(r io.Reader, o FrameOptions) ([]Frame, error) {
	if o.Label == "" {
		o.Label = "year"
	}
	if o.Items == "" {
		o.Items = "countries"
	}

	var raw []map[string]json.RawMessage
	dec := json.NewDecoder(r)
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("reading frames: %w", err)
	}

	frames := make([]Frame, 0, len(raw))
	for i, obj := range raw {
		var f Frame
		if lab, ok := obj[o.Label]; ok {
			var v interface{}
			if err := json.Unmarshal(lab, &v); err != nil {
				return nil, fmt.Errorf("frame %d: %w", i, err)
			}
			f.Label = Record{o.Label: v}.String(o.Label)
		} else {
			f.Label = strconv.Itoa(o.Origin + i)
		}
		var items []Record
		if data, ok := obj[o.Items]; ok {
			recs, err := decodeRecords(data)
			if err != nil {
				return nil, fmt.Errorf("frame %d: %w", i, err)
			}
			items = recs
		}
		recs, err := clean(items, o.Require, o.Numeric)
		if err != nil {
			return nil, fmt.Errorf("frame %d: %w", i, err)
		}
		f.Records = recs
		frames = append(frames, f)
	}
	return frames, nil
}

// SeriesOptions controls ReadSeries.
type SeriesOptions struct {
	// Require and Numeric are as for FrameOptions.
	Require []string
	Numeric []string

	// TimeField names a field to parse with TimeLayout.
	TimeField  string
	TimeLayout string
}

// ReadSeries reads a JSON object mapping series names to arrays of
// records, such as price histories keyed by coin. Series names are
// returned in sorted order.
func ReadSeries(r io.Reader, o SeriesOptions) (names []string, series map[string][]Record, err error) {
	var raw map[string]json.RawMessage
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, nil, fmt.Errorf("reading series: %w", err)
	}
	series = make(map[string][]Record, len(raw))
	for name, data := range raw {
		recs, err := decodeRecords(data)
		if err != nil {
			return nil, nil, fmt.Errorf("series %s: %w", name, err)
		}
		recs, err = clean(recs, o.Require, o.Numeric)
		if err != nil {
			return nil, nil, fmt.Errorf("series %s: %w", name, err)
		}
		if o.TimeField != "" {
			for _, rec := range recs {
				s, ok := rec[o.TimeField].(string)
				if !ok {
					continue
				}
				t, err := time.Parse(o.TimeLayout, s)
				if err != nil {
					return nil, nil, fmt.Errorf("series %s: %w", name, err)
				}
				rec[o.TimeField] = t
			}
		}
		series[name] = recs
		names = append(names, name)
	}
	sort.Strings(names)
	return names, series, nil
}

// ReadCSV reads a CSV file with a header row. Fields named in numeric
// are converted to float64.
func ReadCSV(r io.Reader, numeric ...string) ([]Record, error) {
	cr := csv.NewReader(r)
	rows, err := cr.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	header := rows[0]
	recs := make([]Record, 0, len(rows)-1)
	for _, row := range rows[1:] {
		rec := make(Record, len(header))
		for i, col := range header {
			rec[col] = row[i]
		}
		if err := rec.coerce(numeric); err != nil {
			return nil, fmt.Errorf("line %d: %w", len(recs)+2, err)
		}
		recs = append(recs, rec)
	}
	return recs, nil
}

func decodeRecords(data json.RawMessage) ([]Record, error) {
	var recs []Record
	if err := json.Unmarshal(data, &recs); err != nil {
		return nil, err
	}
	return recs, nil
}

// clean drops records missing a required field and coerces numeric
// fields.
func clean(recs []Record, require, numeric []string) ([]Record, error) {
	out := recs[:0]
next:
	for _, rec := range recs {
		for _, f := range require {
			if !rec.has(f) {
				continue next
			}
		}
		if err := rec.coerce(numeric); err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, nil
}
