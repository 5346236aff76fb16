// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command joinplot renders keyed datasets as SVG charts that update
// by data join.
//
// A dataset is either a JSON list of frames, each holding a label
// and an array of records, or a CSV file, which is a single frame.
// Each frame is reconciled against the frame before it by the
// chart's key field: new records are created, records present in
// both frames are moved, and records that disappear are removed.
//
// Usage:
//
//	joinplot render [--frame i] [-o out.svg] data.json
//	joinplot play [-n passes] [--interval d] --out dir data.json
//	joinplot diff [--fields f,...] data.json from to
//	joinplot export [-j n] --out dir data.json
//	joinplot watch [--frame i] -o out.svg data.json
//
// The chart is configured by --config, a YAML file, or by --preset,
// one of "bubbles" (the default) or "bars".
package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/aclements/vizjoin/internal/chart"
	"github.com/aclements/vizjoin/internal/dataset"
	"github.com/aclements/vizjoin/internal/surface"
)

var (
	flagVerbose  bool
	flagConfig   string
	flagPreset   string
	flagInterval time.Duration

	logger = zap.NewNop()
)

var rootCmd = &cobra.Command{
	Use:           "joinplot",
	Short:         "Render keyed datasets as charts that update by data join",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		config := zap.NewProductionConfig()
		if flagVerbose {
			config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		l, err := config.Build()
		if err != nil {
			return fmt.Errorf("initializing logger: %w", err)
		}
		logger = l
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.BoolVarP(&flagVerbose, "verbose", "v", false, "log every refresh pass")
	pf.StringVar(&flagConfig, "config", "", "read chart configuration from YAML `file`")
	pf.StringVar(&flagPreset, "preset", "bubbles", "chart `preset` to use without --config")
	pf.DurationVar(&flagInterval, "interval", 0, "override the refresh interval")

	rootCmd.AddCommand(renderCmd(), playCmd(), diffCmd(), exportCmd(), watchCmd())
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "joinplot: %v\n", err)
		os.Exit(1)
	}
}

// loadConfig returns the chart configuration selected by the global
// flags.
func loadConfig() (chart.Config, error) {
	var cfg chart.Config
	var err error
	if flagConfig != "" {
		cfg, err = chart.LoadConfig(flagConfig)
	} else {
		cfg, err = chart.Preset(flagPreset)
	}
	if err != nil {
		return cfg, err
	}
	if flagInterval != 0 {
		cfg.Interval = flagInterval
	}
	return cfg, nil
}

// loadFrames reads the dataset at path. CSV files are read as a
// single frame labeled by the file name.
func loadFrames(path string, o dataset.FrameOptions) ([]dataset.Frame, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	if strings.EqualFold(filepath.Ext(path), ".csv") {
		recs, err := dataset.ReadCSV(f, o.Numeric...)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		label := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		return []dataset.Frame{{Label: label, Records: recs}}, nil
	}
	frames, err := dataset.ReadFrames(f, o)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return frames, nil
}

// A player holds the on-screen state of one chart.
type player struct {
	chart *chart.Chart
	svg   *surface.SVG
	prev  []dataset.Record
}

func newPlayer(cfg chart.Config) (*player, error) {
	c, err := chart.New(cfg)
	if err != nil {
		return nil, err
	}
	return &player{
		chart: c,
		svg:   surface.NewSVG(cfg.Width, cfg.Height, cfg.Margin, c.Shape()),
	}, nil
}

// show reconciles the surface with f and returns the entering,
// updating, and exiting counts.
func (p *player) show(f dataset.Frame) (entering, updating, exiting int, err error) {
	if err := p.chart.Rescale(f.Records); err != nil {
		return 0, 0, 0, err
	}
	res, err := p.chart.Apply(p.svg, p.prev, f.Records)
	if err != nil {
		return 0, 0, 0, err
	}
	p.prev = f.Records
	p.svg.Label = f.Label
	p.svg.Axes = p.chart.Axes()
	entering, updating, exiting = res.Counts()
	return
}

// writeSVG renders p to path.
func (p *player) writeSVG(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := p.render(f); err != nil {
		f.Close()
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return f.Close()
}

// render writes p to w. svgo discards write errors, so output is
// buffered and the error is taken from the final flush.
func (p *player) render(w io.Writer) error {
	bw := bufio.NewWriter(w)
	p.svg.Render(bw)
	return bw.Flush()
}

func frameIndex(frames []dataset.Frame, i int) (dataset.Frame, error) {
	if i < 0 || i >= len(frames) {
		return dataset.Frame{}, fmt.Errorf("frame %d out of range [0, %d)", i, len(frames))
	}
	return frames[i], nil
}
