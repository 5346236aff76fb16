// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package refresh drives a cyclic sequence of frames at a fixed
// interval.
package refresh

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
)

// ErrNoFrames is returned by Run when the Driver has no frames.
var ErrNoFrames = errors.New("refresh: no frames")

// A Frame is one element of the Driver's frame sequence.
type Frame[F any] struct {
	// Index is the position of Data in the frame sequence.
	Index int

	// Pass counts calls to Refresh, starting at 0.
	Pass int

	Data F
}

// A Driver calls Refresh with frame 0 and then, on every tick, with
// the next frame, wrapping back to frame 0 after the last one.
//
// Refresh calls never overlap. A tick that fires while Refresh is
// running waits until it returns; if several ticks are missed they
// are delivered as one.
type Driver[F any] struct {
	Interval time.Duration
	Frames   []F
	Refresh  func(ctx context.Context, f Frame[F]) error

	// MaxPasses, if positive, stops the driver after this many
	// calls to Refresh.
	MaxPasses int

	// Logger receives per-pass debug logs. If nil, nothing is
	// logged.
	Logger *zap.Logger

	mu      sync.Mutex
	stop    chan struct{}
	stopped bool
}

func (d *Driver[F]) stopChan() chan struct{} {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.stop == nil {
		d.stop = make(chan struct{})
	}
	return d.stop
}

// Stop requests that Run return. No pass begins after Stop returns.
// A Refresh call already in progress runs to completion. Stop may be
// called more than once, from any goroutine, including from within
// Refresh.
func (d *Driver[F]) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.stop == nil {
		d.stop = make(chan struct{})
	}
	if !d.stopped {
		d.stopped = true
		close(d.stop)
	}
}

// begin reports whether a new pass may start. Checking under d.mu
// orders every pass either before or after a concurrent Stop.
func (d *Driver[F]) begin(ctx context.Context) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return !d.stopped && ctx.Err() == nil
}

// Run calls Refresh until ctx is done, Stop is called, MaxPasses is
// reached, or Refresh returns an error. It returns nil unless Refresh
// failed or the Driver is misconfigured.
func (d *Driver[F]) Run(ctx context.Context) error {
	if len(d.Frames) == 0 {
		return ErrNoFrames
	}
	if d.Interval <= 0 {
		return fmt.Errorf("refresh: non-positive interval %s", d.Interval)
	}
	log := d.Logger
	if log == nil {
		log = zap.NewNop()
	}
	stop := d.stopChan()

	ticker := time.NewTicker(d.Interval)
	defer ticker.Stop()

	index := 0
	for pass := 0; d.MaxPasses <= 0 || pass < d.MaxPasses; pass++ {
		if pass > 0 {
			select {
			case <-ticker.C:
			case <-stop:
				return nil
			case <-ctx.Done():
				return nil
			}
			index++
			if index >= len(d.Frames) {
				index = 0
			}
		}
		// A tick and a cancellation may be ready at once.
		if !d.begin(ctx) {
			return nil
		}

		start := time.Now()
		err := d.Refresh(ctx, Frame[F]{index, pass, d.Frames[index]})
		elapsed := time.Since(start)
		if err != nil {
			log.Error("refresh failed", zap.Int("frame", index), zap.Int("pass", pass), zap.Error(err))
			return fmt.Errorf("frame %d: %w", index, err)
		}
		log.Debug("refresh", zap.Int("frame", index), zap.Int("pass", pass), zap.Duration("elapsed", elapsed))
		if elapsed > d.Interval {
			log.Debug("refresh overran interval", zap.Int("frame", index), zap.Duration("elapsed", elapsed), zap.Duration("interval", d.Interval))
		}
	}
	return nil
}
