// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"io"
	"strconv"

	"github.com/aclements/go-gg/table"
	"github.com/spf13/cobra"

	"github.com/aclements/vizjoin/internal/chart"
	"github.com/aclements/vizjoin/internal/dataset"
	"github.com/aclements/vizjoin/internal/surface"
)

func diffCmd() *cobra.Command {
	var fields []string
	cmd := &cobra.Command{
		Use:   "diff [flags] data-file from to",
		Short: "Print the instructions that move the chart from one frame to another",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			frames, err := loadFrames(args[0], cfg.Frames)
			if err != nil {
				return err
			}
			var pair [2]dataset.Frame
			for i, arg := range args[1:] {
				n, err := strconv.Atoi(arg)
				if err != nil {
					return fmt.Errorf("bad frame index %q", arg)
				}
				if pair[i], err = frameIndex(frames, n); err != nil {
					return err
				}
			}
			return diff(cmd.OutOrStdout(), cfg, pair[0], pair[1], fields)
		},
	}
	cmd.Flags().StringSliceVar(&fields, "fields", nil, "also print these `fields` of the entering records")
	return cmd
}

// diff writes a table of the surface instructions that take from to
// to. Both frames are laid out with scales fit to their combined
// records.
func diff(w io.Writer, cfg chart.Config, from, to dataset.Frame, fields []string) error {
	c, err := chart.New(cfg)
	if err != nil {
		return err
	}
	both := append(append([]dataset.Record(nil), from.Records...), to.Records...)
	if err := c.Rescale(both); err != nil {
		return err
	}
	c.AssignColors(both)

	var rec surface.Recorder
	res, err := c.Apply(&rec, from.Records, to.Records)
	if err != nil {
		return err
	}

	ops := make([]string, len(rec.Log))
	keys := make([]string, len(rec.Log))
	olds := make([]string, len(rec.Log))
	news := make([]string, len(rec.Log))
	for i, in := range rec.Log {
		ops[i], keys[i] = in.Op.String(), in.Key
		if in.Op == surface.OpUpdate {
			olds[i] = in.Old.String()
		}
		if in.Op != surface.OpRemove {
			news[i] = in.New.String()
		}
	}
	tab := new(table.Builder).Add("op", ops).Add("key", keys).Add("from", olds).Add("to", news).Done()

	fmt.Fprintf(w, "%s -> %s: %s\n\n", from.Label, to.Label, res.String())
	if err := table.Fprint(w, tab); err != nil {
		return err
	}
	if len(fields) > 0 && len(res.Entering) > 0 {
		fmt.Fprintf(w, "\nentering:\n")
		return table.Fprint(w, dataset.Table(res.Entering, fields...))
	}
	return nil
}
