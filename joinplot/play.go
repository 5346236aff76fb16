// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/aclements/vizjoin/internal/chart"
	"github.com/aclements/vizjoin/internal/dataset"
	"github.com/aclements/vizjoin/refresh"
)

func playCmd() *cobra.Command {
	var out string
	var passes int
	cmd := &cobra.Command{
		Use:   "play [flags] data-file",
		Short: "Animate a dataset, writing one SVG per refresh",
		Long: `Play shows frame 0 and then advances one frame per refresh
interval, wrapping after the last frame. Each pass is reconciled
against the previous one and written to dir/frame-NNNN.svg, numbered
by pass. Play runs until interrupted or until -n passes.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			frames, err := loadFrames(args[0], cfg.Frames)
			if err != nil {
				return err
			}
			if err := os.MkdirAll(out, 0777); err != nil {
				return err
			}
			return play(cmd.Context(), cfg, frames, out, passes)
		},
	}
	cmd.Flags().StringVar(&out, "out", ".", "write SVG files to `dir`")
	cmd.Flags().IntVarP(&passes, "passes", "n", 0, "stop after `n` refreshes (0 means run until interrupted)")
	return cmd
}

func play(ctx context.Context, cfg chart.Config, frames []dataset.Frame, dir string, passes int) error {
	p, err := newPlayer(cfg)
	if err != nil {
		return err
	}
	d := &refresh.Driver[dataset.Frame]{
		Interval:  cfg.Interval,
		Frames:    frames,
		MaxPasses: passes,
		Logger:    logger,
		Refresh: func(ctx context.Context, f refresh.Frame[dataset.Frame]) error {
			e, u, x, err := p.show(f.Data)
			if err != nil {
				return err
			}
			logger.Info("frame",
				zap.String("label", f.Data.Label),
				zap.Int("pass", f.Pass),
				zap.Int("entering", e), zap.Int("updating", u), zap.Int("exiting", x))
			return p.writeSVG(filepath.Join(dir, framePath(f.Pass)))
		},
	}
	return d.Run(ctx)
}

func watchCmd() *cobra.Command {
	var frame int
	var out string
	cmd := &cobra.Command{
		Use:   "watch [flags] data-file",
		Short: "Re-render a frame whenever the dataset changes",
		Long: `Watch renders one frame, then re-reads the dataset each time it
changes on disk and reconciles the new records against those on
screen, rewriting the output file.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if out == "" {
				return fmt.Errorf("watch requires --out")
			}
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			p, err := newPlayer(cfg)
			if err != nil {
				return err
			}
			return watch(cmd.Context(), p, cfg, args[0], frame, out)
		},
	}
	cmd.Flags().IntVar(&frame, "frame", 0, "render frame `i`")
	cmd.Flags().StringVarP(&out, "out", "o", "", "write SVG to `file`")
	return cmd
}

// watchSettle is how long the dataset must be quiet after a change
// before it is re-read.
const watchSettle = 200 * time.Millisecond

func watch(ctx context.Context, p *player, cfg chart.Config, path string, frame int, out string) error {
	update := func() error {
		frames, err := loadFrames(path, cfg.Frames)
		if err != nil {
			return err
		}
		f, err := frameIndex(frames, frame)
		if err != nil {
			return err
		}
		e, u, x, err := p.show(f)
		if err != nil {
			return err
		}
		logger.Info("rendered", zap.String("label", f.Label),
			zap.Int("entering", e), zap.Int("updating", u), zap.Int("exiting", x))
		return p.writeSVG(out)
	}
	if err := update(); err != nil {
		return err
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()
	// Watch the directory, since editors often replace files by
	// renaming over them.
	if err := w.Add(filepath.Dir(path)); err != nil {
		return err
	}
	target := filepath.Clean(path)

	settle := time.NewTimer(watchSettle)
	settle.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != target || !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
				continue
			}
			logger.Debug("dataset changed", zap.String("op", ev.Op.String()))
			settle.Reset(watchSettle)
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watch error", zap.Error(err))
		case <-settle.C:
			// A half-written file fails to parse; keep the last
			// good rendering and wait for the next change.
			if err := update(); err != nil {
				logger.Error("update failed", zap.Error(err))
			}
		}
	}
}
