// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap/zaptest"

	"github.com/aclements/vizjoin/internal/chart"
)

const framesJSON = `[
 {"year": 1800, "countries": [
   {"continent": "europe", "country": "Albania", "income": 667, "life_exp": 35.4, "population": 410445},
   {"continent": "asia", "country": "India", "income": 705, "life_exp": 25.4, "population": 168574895}
 ]},
 {"year": 1801, "countries": [
   {"continent": "asia", "country": "India", "income": 710, "life_exp": 25.5, "population": 168600000},
   {"continent": "africa", "country": "Chad", "income": 400, "life_exp": 30.1, "population": 1200000}
 ]}
]`

func writeFile(t *testing.T, dir, name, data string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(data), 0666); err != nil {
		t.Fatal(err)
	}
	return path
}

func bubbles(t *testing.T) chart.Config {
	t.Helper()
	logger = zaptest.NewLogger(t)
	cfg, err := chart.Preset("bubbles")
	if err != nil {
		t.Fatal(err)
	}
	cfg.Interval = time.Millisecond
	return cfg
}

func TestLoadFrames(t *testing.T) {
	dir := t.TempDir()
	cfg := bubbles(t)
	frames, err := loadFrames(writeFile(t, dir, "data.json", framesJSON), cfg.Frames)
	if err != nil {
		t.Fatal(err)
	}
	if len(frames) != 2 || frames[1].Label != "1801" || len(frames[1].Records) != 2 {
		t.Errorf("got frames %v", frames)
	}

	bars, _ := chart.Preset("bars")
	csv := writeFile(t, dir, "revenues.csv", "month,revenue,profit\nJanuary,13432,8342\nFebruary,19342,10342\n")
	frames, err = loadFrames(csv, bars.Frames)
	if err != nil {
		t.Fatal(err)
	}
	if len(frames) != 1 || frames[0].Label != "revenues" {
		t.Fatalf("got frames %v", frames)
	}
	if v, err := frames[0].Records[1].Float("revenue"); err != nil || v != 19342 {
		t.Errorf("revenue = %v, %v", v, err)
	}
}

func TestDiff(t *testing.T) {
	cfg := bubbles(t)
	frames, err := loadFrames(writeFile(t, t.TempDir(), "data.json", framesJSON), cfg.Frames)
	if err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	if err := diff(&buf, cfg, frames[0], frames[1], []string{"country", "income"}); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, want := range []string{"1800 -> 1801: 1 entering, 1 updating, 1 exiting", "remove", "Albania", "create", "Chad", "update", "India", "entering:"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestPlay(t *testing.T) {
	cfg := bubbles(t)
	dir := t.TempDir()
	frames, err := loadFrames(writeFile(t, dir, "data.json", framesJSON), cfg.Frames)
	if err != nil {
		t.Fatal(err)
	}
	out := filepath.Join(dir, "out")
	if err := os.Mkdir(out, 0777); err != nil {
		t.Fatal(err)
	}
	if err := play(context.Background(), cfg, frames, out, 3); err != nil {
		t.Fatal(err)
	}
	for pass, want := range []string{"1800", "1801", "1800"} {
		data, err := os.ReadFile(filepath.Join(out, framePath(pass)))
		if err != nil {
			t.Fatal(err)
		}
		if !strings.Contains(string(data), want) {
			t.Errorf("pass %d does not show label %s", pass, want)
		}
	}
	if _, err := os.Stat(filepath.Join(out, framePath(3))); err == nil {
		t.Errorf("play wrote more than 3 passes")
	}
}

func TestExport(t *testing.T) {
	cfg := bubbles(t)
	dir := t.TempDir()
	frames, err := loadFrames(writeFile(t, dir, "data.json", framesJSON), cfg.Frames)
	if err != nil {
		t.Fatal(err)
	}
	if err := exportFrames(context.Background(), cfg, frames, dir, 2); err != nil {
		t.Fatal(err)
	}
	// India is the second category seen across all frames, so it
	// gets the same palette slot in both files.
	india := "fill:" + chart.Pastel1[1]
	for i := range frames {
		data, err := os.ReadFile(filepath.Join(dir, framePath(i)))
		if err != nil {
			t.Fatal(err)
		}
		if !strings.Contains(string(data), india) {
			t.Errorf("frame %d: India not filled with %s", i, chart.Pastel1[1])
		}
	}
}

func TestWatch(t *testing.T) {
	cfg := bubbles(t)
	dir := t.TempDir()
	path := writeFile(t, dir, "data.json", framesJSON)
	out := filepath.Join(dir, "out.svg")
	p, err := newPlayer(cfg)
	if err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- watch(ctx, p, cfg, path, 0, out) }()
	defer func() {
		cancel()
		if err := <-done; err != nil {
			t.Errorf("watch: %v", err)
		}
	}()

	waitFor := func(substr string) {
		t.Helper()
		deadline := time.Now().Add(10 * time.Second)
		for time.Now().Before(deadline) {
			if data, err := os.ReadFile(out); err == nil && strings.Contains(string(data), substr) {
				return
			}
			time.Sleep(10 * time.Millisecond)
		}
		t.Fatalf("output never contained %q", substr)
	}
	waitFor("1800")
	// Start watching before the rewrite.
	time.Sleep(100 * time.Millisecond)

	writeFile(t, dir, "data.json", strings.Replace(framesJSON, "1800", "1850", 1))
	waitFor("1850")
}

type errWriter struct{}

func (errWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestRenderWriteError(t *testing.T) {
	cfg := bubbles(t)
	p, err := newPlayer(cfg)
	if err != nil {
		t.Fatal(err)
	}
	frames, err := loadFrames(writeFile(t, t.TempDir(), "data.json", framesJSON), cfg.Frames)
	if err != nil {
		t.Fatal(err)
	}
	if _, _, _, err := p.show(frames[0]); err != nil {
		t.Fatal(err)
	}
	if err := p.render(errWriter{}); err == nil {
		t.Errorf("render to a failing writer succeeded")
	}
	var buf bytes.Buffer
	if err := p.render(&buf); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "</svg>") {
		t.Errorf("render output is not a complete SVG document")
	}
}
