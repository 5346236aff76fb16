// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dataset

import (
	"errors"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

const framesJSON = `[
 {"year": "1800", "countries": [
   {"continent": "europe", "country": "Albania", "income": 667, "life_exp": 35.4, "population": 410445},
   {"continent": "asia", "country": "Bhutan", "income": null, "life_exp": 28.4, "population": 80000},
   {"continent": "asia", "country": "India", "income": "705", "life_exp": 25.4, "population": 168574895}
 ]},
 {"year": 1801, "countries": [
   {"continent": "europe", "country": "Albania", "income": 667, "life_exp": 0, "population": 410445}
 ]}
]`

func TestReadFrames(t *testing.T) {
	frames, err := ReadFrames(strings.NewReader(framesJSON), FrameOptions{
		Require: []string{"income", "life_exp"},
		Numeric: []string{"income", "life_exp", "population"},
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(frames) != 2 {
		t.Fatalf("got %d frames, want 2", len(frames))
	}
	if frames[0].Label != "1800" || frames[1].Label != "1801" {
		t.Errorf("labels = %q, %q", frames[0].Label, frames[1].Label)
	}
	want := []Record{
		{"continent": "europe", "country": "Albania", "income": 667.0, "life_exp": 35.4, "population": 410445.0},
		{"continent": "asia", "country": "India", "income": 705.0, "life_exp": 25.4, "population": 168574895.0},
	}
	if diff := cmp.Diff(want, frames[0].Records); diff != "" {
		t.Errorf("frame 0 (-want +got):\n%s", diff)
	}
	if len(frames[1].Records) != 0 {
		t.Errorf("frame 1 kept %v, want record with zero life_exp dropped", frames[1].Records)
	}
}

func TestReadFramesOrigin(t *testing.T) {
	frames, err := ReadFrames(strings.NewReader(`[{"countries": []}, {"countries": []}]`), FrameOptions{Origin: 1800})
	if err != nil {
		t.Fatal(err)
	}
	if len(frames) != 2 || frames[0].Label != "1800" || frames[1].Label != "1801" {
		t.Errorf("got frames %v, want labels 1800 and 1801", frames)
	}
}

func TestReadCSV(t *testing.T) {
	const in = "month,revenue,profit\nJanuary,13432,8342\nFebruary,19342,10342\n"
	recs, err := ReadCSV(strings.NewReader(in), "revenue", "profit")
	if err != nil {
		t.Fatal(err)
	}
	want := []Record{
		{"month": "January", "revenue": 13432.0, "profit": 8342.0},
		{"month": "February", "revenue": 19342.0, "profit": 10342.0},
	}
	if diff := cmp.Diff(want, recs); diff != "" {
		t.Errorf("ReadCSV (-want +got):\n%s", diff)
	}

	_, err = ReadCSV(strings.NewReader("month,revenue\nMarch,lots\n"), "revenue")
	if err == nil || !strings.Contains(err.Error(), "line 2") {
		t.Errorf("bad number: got %v, want error on line 2", err)
	}
}

func TestReadSeries(t *testing.T) {
	const in = `{
 "ethereum": [{"date": "12/05/2013", "price_usd": "5.2"}],
 "bitcoin": [
   {"date": "12/05/2013", "price_usd": "115.4", "24h_vol": "0"},
   {"date": "13/05/2013", "price_usd": null}
 ]}`
	names, series, err := ReadSeries(strings.NewReader(in), SeriesOptions{
		Require:    []string{"price_usd"},
		Numeric:    []string{"price_usd", "24h_vol"},
		TimeField:  "date",
		TimeLayout: "02/01/2006",
	})
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]string{"bitcoin", "ethereum"}, names); diff != "" {
		t.Errorf("names (-want +got):\n%s", diff)
	}
	btc := series["bitcoin"]
	if len(btc) != 1 {
		t.Fatalf("bitcoin has %d records, want 1", len(btc))
	}
	when, err := btc[0].Time("date")
	if err != nil {
		t.Fatal(err)
	}
	if !when.Equal(time.Date(2013, 5, 12, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("date = %s", when)
	}
	if p, _ := btc[0].Float("price_usd"); p != 115.4 {
		t.Errorf("price_usd = %g, want 115.4", p)
	}
}

func TestRecordAccessors(t *testing.T) {
	r := Record{"n": 3.5, "s": "7", "bad": "x", "null": nil}
	if x, err := r.Float("s"); err != nil || x != 7 {
		t.Errorf("Float(s) = %g, %v", x, err)
	}
	var mfe *MissingFieldError
	if _, err := r.Float("null"); !errors.As(err, &mfe) {
		t.Errorf("Float(null): got %v, want MissingFieldError", err)
	}
	if _, err := r.Float("bad"); err == nil {
		t.Errorf("Float(bad) succeeded")
	}
	if got := r.String("n"); got != "3.5" {
		t.Errorf("String(n) = %q", got)
	}
	if got := Key("s")(r); got != "7" {
		t.Errorf("Key(s) = %q", got)
	}

	xs := Floats([]Record{r, {"n": 1.0}, {}}, "n")
	if xs[0] != 3.5 || xs[1] != 1 || !math.IsNaN(xs[2]) {
		t.Errorf("Floats = %v", xs)
	}
}

func TestTable(t *testing.T) {
	recs := []Record{
		{"country": "Albania", "income": 667.0},
		{"country": "India", "income": 705.0},
	}
	tab := Table(recs)
	if diff := cmp.Diff([]string{"country", "income"}, tab.Columns()); diff != "" {
		t.Errorf("columns (-want +got):\n%s", diff)
	}
	if got, ok := tab.MustColumn("income").([]float64); !ok || len(got) != 2 || got[1] != 705 {
		t.Errorf("income column = %#v", tab.MustColumn("income"))
	}
	if got, ok := tab.MustColumn("country").([]string); !ok || got[0] != "Albania" {
		t.Errorf("country column = %#v", tab.MustColumn("country"))
	}
}
