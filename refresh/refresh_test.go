// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package refresh

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"go.uber.org/goleak"
	"go.uber.org/zap/zaptest"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestCycle(t *testing.T) {
	var got []string
	var passes []int
	d := &Driver[string]{
		Interval:  time.Millisecond,
		Frames:    []string{"a", "b", "c"},
		MaxPasses: 7,
		Logger:    zaptest.NewLogger(t),
		Refresh: func(ctx context.Context, f Frame[string]) error {
			got = append(got, f.Data)
			passes = append(passes, f.Pass)
			return nil
		},
	}
	if err := d.Run(context.Background()); err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]string{"a", "b", "c", "a", "b", "c", "a"}, got); diff != "" {
		t.Errorf("frame order (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]int{0, 1, 2, 3, 4, 5, 6}, passes); diff != "" {
		t.Errorf("pass numbers (-want +got):\n%s", diff)
	}
}

func TestNoOverlap(t *testing.T) {
	var active, maxActive int32
	d := &Driver[int]{
		Interval:  time.Millisecond,
		Frames:    []int{0, 1},
		MaxPasses: 5,
		Refresh: func(ctx context.Context, f Frame[int]) error {
			n := atomic.AddInt32(&active, 1)
			if n > atomic.LoadInt32(&maxActive) {
				atomic.StoreInt32(&maxActive, n)
			}
			time.Sleep(5 * time.Millisecond)
			atomic.AddInt32(&active, -1)
			return nil
		},
	}
	if err := d.Run(context.Background()); err != nil {
		t.Fatal(err)
	}
	if maxActive != 1 {
		t.Errorf("%d concurrent refreshes, want 1", maxActive)
	}
}

func TestStopFromRefresh(t *testing.T) {
	calls := 0
	var d *Driver[int]
	d = &Driver[int]{
		Interval: time.Millisecond,
		Frames:   []int{0, 1, 2},
		Refresh: func(ctx context.Context, f Frame[int]) error {
			calls++
			if f.Pass == 3 {
				d.Stop()
				d.Stop()
			}
			return nil
		},
	}
	if err := d.Run(context.Background()); err != nil {
		t.Fatal(err)
	}
	if calls != 4 {
		t.Errorf("got %d calls, want 4", calls)
	}
}

func TestCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	calls := 0
	d := &Driver[int]{
		Interval: time.Millisecond,
		Frames:   []int{0},
		Refresh: func(ctx context.Context, f Frame[int]) error {
			calls++
			if f.Pass == 2 {
				cancel()
			}
			return nil
		},
	}
	if err := d.Run(ctx); err != nil {
		t.Fatal(err)
	}
	if calls != 3 {
		t.Errorf("got %d calls, want 3", calls)
	}
}

func TestStopConcurrent(t *testing.T) {
	var mu sync.Mutex
	calls := 0
	d := &Driver[int]{
		Interval: time.Millisecond,
		Frames:   []int{0, 1, 2, 3},
		Refresh: func(ctx context.Context, f Frame[int]) error {
			mu.Lock()
			calls++
			mu.Unlock()
			return nil
		},
	}
	done := make(chan error)
	go func() { done <- d.Run(context.Background()) }()

	time.Sleep(20 * time.Millisecond)
	d.Stop()
	mu.Lock()
	atStop := calls
	mu.Unlock()

	if err := <-done; err != nil {
		t.Fatal(err)
	}
	time.Sleep(5 * time.Millisecond)
	mu.Lock()
	defer mu.Unlock()
	// At most the pass that was already committed when Stop was
	// called may have run after it.
	if calls > atStop+1 {
		t.Errorf("%d calls after Stop", calls-atStop)
	}
	if atStop == 0 {
		t.Errorf("no calls before Stop")
	}
}

func TestRefreshError(t *testing.T) {
	boom := errors.New("boom")
	calls := 0
	d := &Driver[int]{
		Interval: time.Millisecond,
		Frames:   []int{10, 20},
		Logger:   zaptest.NewLogger(t),
		Refresh: func(ctx context.Context, f Frame[int]) error {
			calls++
			if f.Index == 1 {
				return boom
			}
			return nil
		},
	}
	err := d.Run(context.Background())
	if !errors.Is(err, boom) {
		t.Fatalf("Run = %v, want %v", err, boom)
	}
	if calls != 2 {
		t.Errorf("got %d calls, want 2", calls)
	}
}

func TestMisconfigured(t *testing.T) {
	nop := func(context.Context, Frame[int]) error { return nil }
	if err := (&Driver[int]{Interval: time.Second, Refresh: nop}).Run(context.Background()); err != ErrNoFrames {
		t.Errorf("no frames: Run = %v, want ErrNoFrames", err)
	}
	if err := (&Driver[int]{Frames: []int{1}, Refresh: nop}).Run(context.Background()); err == nil {
		t.Errorf("zero interval: Run succeeded")
	}
}
