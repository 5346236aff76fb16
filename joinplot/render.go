// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/aclements/vizjoin/internal/chart"
	"github.com/aclements/vizjoin/internal/dataset"
)

func renderCmd() *cobra.Command {
	var frame int
	var out string
	cmd := &cobra.Command{
		Use:   "render [flags] data-file",
		Short: "Render one frame as SVG",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			frames, err := loadFrames(args[0], cfg.Frames)
			if err != nil {
				return err
			}
			f, err := frameIndex(frames, frame)
			if err != nil {
				return err
			}
			p, err := newPlayer(cfg)
			if err != nil {
				return err
			}
			if _, _, _, err := p.show(f); err != nil {
				return fmt.Errorf("frame %s: %w", f.Label, err)
			}
			if out == "" {
				return p.render(cmd.OutOrStdout())
			}
			return p.writeSVG(out)
		},
	}
	cmd.Flags().IntVar(&frame, "frame", 0, "render frame `i`")
	cmd.Flags().StringVarP(&out, "out", "o", "", "write SVG to `file` (default: stdout)")
	return cmd
}

func exportCmd() *cobra.Command {
	var out string
	var jobs int
	cmd := &cobra.Command{
		Use:   "export [flags] data-file",
		Short: "Render every frame as its own SVG file",
		Long: `Export renders each frame of a dataset from scratch, without
reconciling against the previous frame, writing frame-NNNN.svg files
into the output directory. Frames are rendered in parallel.`,
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
			return exportFrames(cmd.Context(), cfg, frames, out, jobs)
		},
	}
	cmd.Flags().StringVar(&out, "out", ".", "write SVG files to `dir`")
	cmd.Flags().IntVarP(&jobs, "jobs", "j", runtime.GOMAXPROCS(0), "render up to `n` frames at once")
	return cmd
}

// exportFrames renders each frame to dir using up to jobs
// goroutines. Each goroutine builds its own chart; every chart is
// primed with all records so category colors agree across files.
func exportFrames(ctx context.Context, cfg chart.Config, frames []dataset.Frame, dir string, jobs int) error {
	var all []dataset.Record
	for _, f := range frames {
		all = append(all, f.Records...)
	}

	g, ctx := errgroup.WithContext(ctx)
	if jobs > 0 {
		g.SetLimit(jobs)
	}
	for i, f := range frames {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			p, err := newPlayer(cfg)
			if err != nil {
				return err
			}
			p.chart.AssignColors(all)
			if _, _, _, err := p.show(f); err != nil {
				return fmt.Errorf("frame %s: %w", f.Label, err)
			}
			path := filepath.Join(dir, framePath(i))
			if err := p.writeSVG(path); err != nil {
				return err
			}
			logger.Debug("exported frame", zap.Int("frame", i), zap.String("label", f.Label), zap.String("path", path))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	logger.Info("export complete", zap.Int("frames", len(frames)), zap.String("dir", dir))
	return nil
}

func framePath(n int) string {
	return fmt.Sprintf("frame-%04d.svg", n)
}
