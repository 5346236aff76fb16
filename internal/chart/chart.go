// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package chart turns datasets into surface instructions.
//
// A Chart owns the scales for a chart configuration. On each data
// refresh, Apply reconciles the records on screen with the new
// records and issues create, update, and remove instructions to a
// surface, positioning each element through the scales.
package chart

import (
	"fmt"

	"github.com/aclements/vizjoin/internal/dataset"
	"github.com/aclements/vizjoin/internal/surface"
	"github.com/aclements/vizjoin/join"
	"github.com/aclements/vizjoin/scale"
)

// defaultRadius is the circle radius when no size channel is
// configured.
const defaultRadius = 5

// A Chart maps records to visual attributes.
//
// A Chart remembers the attributes it last issued for each key, so
// one Chart should drive one surface.
type Chart struct {
	cfg   Config
	w, h  float64
	shape surface.Shape

	x, y, r *channel
	color   *scale.Ordinal[string, string]
	fill    string

	// shown is the attributes of each element on the surface.
	shown map[string]surface.Attrs
}

// channel is the scale state for one Channel. Exactly one of cont
// and band is set once the channel has a domain.
type channel struct {
	ch   Channel
	rng  scale.Interval
	cont *scale.Continuous
	band *scale.Band[string]
}

// New returns a Chart for cfg. Channels with an explicit domain are
// ready immediately; the rest are configured by Rescale.
func New(cfg Config) (*Chart, error) {
	c := &Chart{cfg: cfg, shown: make(map[string]surface.Attrs)}
	c.w = float64(cfg.Width - cfg.Margin.Left - cfg.Margin.Right)
	c.h = float64(cfg.Height - cfg.Margin.Top - cfg.Margin.Bottom)
	if c.w <= 0 || c.h <= 0 {
		return nil, fmt.Errorf("chart: margins leave no plot area in %dx%d", cfg.Width, cfg.Height)
	}
	if cfg.Key == "" {
		return nil, fmt.Errorf("chart: no key field")
	}
	switch cfg.Shape {
	case "", "circle":
		c.shape = surface.Circle
	case "rect":
		c.shape = surface.Rect
	default:
		return nil, fmt.Errorf("chart: unknown shape %q", cfg.Shape)
	}

	var err error
	if c.x, err = newChannel("x", cfg.X, scale.Interval{Min: 0, Max: c.w}); err != nil {
		return nil, err
	}
	if c.y, err = newChannel("y", cfg.Y, scale.Interval{Min: c.h, Max: 0}); err != nil {
		return nil, err
	}
	if cfg.R.Field != "" {
		if c.r, err = newChannel("r", cfg.R, scale.Interval{Min: 2, Max: 20}); err != nil {
			return nil, err
		}
	}
	if c.y.ch.Scale == "band" {
		return nil, fmt.Errorf("chart: band scale is only supported on x")
	}

	palette := make([]string, len(cfg.Color.Palette))
	for i, p := range cfg.Color.Palette {
		if palette[i], err = parseColor(p); err != nil {
			return nil, fmt.Errorf("chart: palette: %w", err)
		}
	}
	if cfg.Color.Field != "" {
		if len(palette) == 0 {
			palette = append(palette, Pastel1...)
		}
		c.color = scale.NewImplicitOrdinal[string](palette)
		if len(cfg.Color.Domain) > 0 {
			c.color.Configure(cfg.Color.Domain, palette)
		}
		if cfg.Color.Unknown != "" {
			// The fallback replaces implicit growth, so without a
			// domain every category would get it.
			if len(cfg.Color.Domain) == 0 {
				return nil, fmt.Errorf("chart: color unknown %q requires a color domain", cfg.Color.Unknown)
			}
			u, err := parseColor(cfg.Color.Unknown)
			if err != nil {
				return nil, fmt.Errorf("chart: unknown color: %w", err)
			}
			c.color.SetUnknown(u)
		}
	} else if len(palette) > 0 {
		c.fill = palette[0]
	}
	return c, nil
}

func newChannel(name string, ch Channel, defRange scale.Interval) (*channel, error) {
	if ch.Field == "" && name != "r" {
		return nil, fmt.Errorf("chart: no field for %s channel", name)
	}
	c := &channel{ch: ch, rng: defRange}
	switch len(ch.Range) {
	case 0:
	case 2:
		c.rng = scale.Interval{Min: ch.Range[0], Max: ch.Range[1]}
	default:
		return nil, fmt.Errorf("chart: %s range must have 2 values, not %d", name, len(ch.Range))
	}
	switch len(ch.Domain) {
	case 0:
		if _, err := c.mode(); err != nil {
			return nil, fmt.Errorf("chart: %s: %w", name, err)
		}
		return c, nil
	case 2:
	default:
		return nil, fmt.Errorf("chart: %s domain must have 2 values, not %d", name, len(ch.Domain))
	}
	if err := c.configure(scale.Interval{Min: ch.Domain[0], Max: ch.Domain[1]}); err != nil {
		return nil, fmt.Errorf("chart: %s: %w", name, err)
	}
	return c, nil
}

func (c *channel) mode() (scale.Mode, error) {
	switch c.ch.Scale {
	case "", "linear":
		return scale.Linear, nil
	case "band":
		return scale.Categorical, nil
	}
	return scale.ParseMode(c.ch.Scale)
}

// configure sets up a continuous scale over d.
func (c *channel) configure(d scale.Interval) error {
	mode, err := c.mode()
	if err != nil {
		return err
	}
	if mode == scale.Categorical {
		return fmt.Errorf("band scale takes categories, not a numeric domain")
	}
	if c.cont == nil {
		c.cont = new(scale.Continuous)
	}
	if c.ch.Base != 0 {
		if err := c.cont.SetBase(c.ch.Base); err != nil {
			return err
		}
	}
	c.cont.SetClamp(c.ch.Clamp)
	return c.cont.Configure(mode, d, c.rng)
}

// auto reports whether c takes its domain from the data.
func (c *channel) auto() bool {
	return len(c.ch.Domain) == 0 && c.ch.Field != ""
}

func (c *channel) rescale(recs []dataset.Record) error {
	if c.ch.Scale == "band" {
		var cats []string
		for _, r := range recs {
			cats = append(cats, r.String(c.ch.Field))
		}
		if c.band == nil {
			c.band = scale.NewBand(cats, c.rng)
		} else {
			c.band.Configure(cats, c.rng)
		}
		c.band.PaddingInner = c.ch.PaddingInner
		c.band.PaddingOuter = c.ch.PaddingOuter
		return nil
	}
	d, ok := scale.Extent(dataset.Floats(recs, c.ch.Field))
	if !ok {
		return fmt.Errorf("no numeric values for %q", c.ch.Field)
	}
	if c.ch.Zero && d.Min > 0 {
		d.Min = 0
	}
	if c.ch.Pad != 0 {
		d = d.Pad(c.ch.Pad)
	}
	return c.configure(d)
}

// Rescale recomputes the domain of every channel that takes its
// domain from the data.
func (c *Chart) Rescale(recs []dataset.Record) error {
	for _, ch := range []*channel{c.x, c.y, c.r} {
		if ch == nil || !ch.auto() {
			continue
		}
		if err := ch.rescale(recs); err != nil {
			return fmt.Errorf("chart: rescaling %q: %w", ch.ch.Field, err)
		}
	}
	return nil
}

// AssignColors maps the color category of each record in order. This
// fixes the palette slot of each category, so separate Charts primed
// with the same records color them identically.
func (c *Chart) AssignColors(recs []dataset.Record) {
	if c.color == nil {
		return
	}
	for _, rec := range recs {
		c.color.Map(rec.String(c.cfg.Color.Field))
	}
}

// Key returns the key of rec.
func (c *Chart) Key(rec dataset.Record) string {
	return rec.String(c.cfg.Key)
}

// Config returns the configuration c was built from.
func (c *Chart) Config() Config {
	return c.cfg
}

// Shape returns the element shape of c.
func (c *Chart) Shape() surface.Shape {
	return c.shape
}

// mapValue maps field of rec through ch's continuous scale.
func (ch *channel) mapValue(rec dataset.Record) (float64, error) {
	if ch.cont == nil {
		return 0, fmt.Errorf("%q has no domain; call Rescale first", ch.ch.Field)
	}
	v, err := rec.Float(ch.ch.Field)
	if err != nil {
		return 0, err
	}
	return ch.cont.Map(v)
}

// Layout computes the visual attributes of rec.
func (c *Chart) Layout(rec dataset.Record) (surface.Attrs, error) {
	var a surface.Attrs
	var err error

	if c.x.ch.Scale == "band" {
		if c.x.band == nil {
			return a, fmt.Errorf("%q has no categories; call Rescale first", c.x.ch.Field)
		}
		start, err := c.x.band.Map(rec.String(c.x.ch.Field))
		if err != nil {
			return a, err
		}
		bw := c.x.band.Bandwidth()
		if c.shape == surface.Rect {
			a.X, a.Width = start, bw
		} else {
			a.X = start + bw/2
		}
	} else if a.X, err = c.x.mapValue(rec); err != nil {
		return a, err
	}

	if a.Y, err = c.y.mapValue(rec); err != nil {
		return a, err
	}
	if c.shape == surface.Rect {
		a.Height = c.h - a.Y
		if c.x.band == nil {
			a.Width = defaultRadius * 2
			a.X -= defaultRadius
		}
	}

	switch {
	case c.r != nil:
		if a.R, err = c.r.mapValue(rec); err != nil {
			return a, err
		}
	case c.cfg.R.Value != 0:
		a.R = c.cfg.R.Value
	case c.shape == surface.Circle:
		a.R = defaultRadius
	}

	if c.color != nil {
		if a.Fill, err = c.color.Map(rec.String(c.cfg.Color.Field)); err != nil {
			return a, err
		}
	} else {
		a.Fill = c.fill
	}
	return a, nil
}

// Apply reconciles prev, the records currently on s, with next and
// issues the resulting instructions to s: Create for entering
// records, Update for records in both, and Remove for exiting
// records.
//
// The old attributes of an Update are those c issued for the key on
// an earlier Apply, even if the scales have since been rescaled. A
// key c has not issued is laid out from its previous record.
//
// Layout is computed for every record before any instruction is
// issued, so on error s is unchanged.
func (c *Chart) Apply(s surface.Surface, prev, next []dataset.Record) (join.Result[dataset.Record, string], error) {
	res, err := join.Reconcile(prev, next, c.Key)
	if err != nil {
		return res, err
	}

	layout := func(key string, rec dataset.Record) (surface.Attrs, error) {
		a, err := c.Layout(rec)
		if err != nil {
			return a, fmt.Errorf("record %q: %w", key, err)
		}
		return a, nil
	}
	enter := make([]surface.Attrs, len(res.Entering))
	for i, rec := range res.Entering {
		if enter[i], err = layout(res.EnteringKeys[i], rec); err != nil {
			return res, err
		}
	}
	from := make([]surface.Attrs, len(res.Updating))
	to := make([]surface.Attrs, len(res.Updating))
	for i, p := range res.Updating {
		k := res.UpdatingKeys[i]
		if a, ok := c.shown[k]; ok {
			from[i] = a
		} else if from[i], err = layout(k, p.Old); err != nil {
			return res, err
		}
		if to[i], err = layout(k, p.New); err != nil {
			return res, err
		}
	}

	for _, k := range res.ExitingKeys {
		s.Remove(k)
		delete(c.shown, k)
	}
	for i, k := range res.EnteringKeys {
		s.Create(k, enter[i])
		c.shown[k] = enter[i]
	}
	for i, k := range res.UpdatingKeys {
		s.Update(k, from[i], to[i])
		c.shown[k] = to[i]
	}
	return res, nil
}

// Axes returns the bottom and left axes for the current scales, in
// plot coordinates.
func (c *Chart) Axes() []surface.Axis {
	var axes []surface.Axis
	if ax, ok := c.x.axis(surface.Bottom); ok {
		axes = append(axes, ax)
	}
	if ax, ok := c.y.axis(surface.Left); ok {
		axes = append(axes, ax)
	}
	return axes
}

func (ch *channel) axis(o surface.Orient) (surface.Axis, bool) {
	ax := surface.Axis{Orient: o, Title: ch.ch.Title}
	format := ch.ch.Format
	if format == "" {
		format = "%g"
	}
	switch {
	case ch.band != nil:
		bw := ch.band.Bandwidth()
		for _, k := range ch.band.Domain() {
			start, _ := ch.band.Map(k)
			ax.Ticks = append(ax.Ticks, surface.Tick{Pos: start + bw/2, Label: k})
		}
		return ax, true
	case ch.cont != nil:
		vals := ch.ch.TickValues
		if vals == nil {
			n := ch.ch.Ticks
			if n == 0 {
				n = 10
			}
			vals = ch.cont.Ticks(n)
		}
		for _, v := range vals {
			pos, err := ch.cont.Map(v)
			if err != nil {
				continue
			}
			ax.Ticks = append(ax.Ticks, surface.Tick{Pos: pos, Label: fmt.Sprintf(format, v)})
		}
		return ax, true
	}
	return ax, false
}
