// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package chart

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"golang.org/x/image/colornames"
	"gopkg.in/yaml.v3"

	"github.com/aclements/vizjoin/internal/dataset"
	"github.com/aclements/vizjoin/internal/surface"
)

// Config describes a chart: its size, how records are keyed, and how
// record fields map to visual channels.
type Config struct {
	Width    int            `yaml:"width"`
	Height   int            `yaml:"height"`
	Margin   surface.Margin `yaml:"margin"`
	Key      string         `yaml:"key"`
	Shape    string         `yaml:"shape"`
	Interval time.Duration  `yaml:"interval"`

	X     Channel      `yaml:"x"`
	Y     Channel      `yaml:"y"`
	R     Channel      `yaml:"r"`
	Color ColorChannel `yaml:"color"`

	Frames dataset.FrameOptions `yaml:"frames"`
}

// A Channel maps one numeric or categorical field to a position or
// size.
type Channel struct {
	Field string `yaml:"field"`

	// Scale is "linear", "log", "sqrt", or "band".
	Scale string  `yaml:"scale"`
	Base  float64 `yaml:"base,omitempty"`
	Clamp bool    `yaml:"clamp,omitempty"`

	// Domain is [min, max]. If empty, the domain is the extent of
	// the data, divided and multiplied by Pad if set, and starting
	// at 0 if Zero is set.
	Domain []float64 `yaml:"domain,omitempty"`
	Pad    float64   `yaml:"pad,omitempty"`
	Zero   bool      `yaml:"zero,omitempty"`

	// Range is [min, max]. If empty, x spans the plot width and y
	// spans the plot height from the bottom up.
	Range []float64 `yaml:"range,omitempty"`

	// Band scales only.
	PaddingInner float64 `yaml:"paddingInner,omitempty"`
	PaddingOuter float64 `yaml:"paddingOuter,omitempty"`

	Title      string    `yaml:"title,omitempty"`
	Ticks      int       `yaml:"ticks,omitempty"`
	TickValues []float64 `yaml:"tickValues,omitempty"`

	// Format is a fmt verb string for tick labels, such as "$%g".
	Format string `yaml:"format,omitempty"`

	// Value is the constant used when Field is empty.
	Value float64 `yaml:"value,omitempty"`
}

// A ColorChannel maps a categorical field to a fill color.
type ColorChannel struct {
	Field string `yaml:"field"`

	// Palette entries are CSS color names or #rrggbb.
	Palette []string `yaml:"palette"`

	// Domain fixes the palette slot of each listed category.
	// Other categories take the next free slot, or Unknown if it is
	// set. Unknown requires Domain.
	Domain  []string `yaml:"domain,omitempty"`
	Unknown string   `yaml:"unknown,omitempty"`
}

// Pastel1 is the 9-color qualitative palette used for categories by
// default.
var Pastel1 = []string{
	"#fbb4ae", "#b3cde3", "#ccebc5", "#decbe4", "#fed9a6",
	"#ffffcc", "#e5d8bd", "#fddaec", "#f2f2f2",
}

// Preset returns a named example configuration: "bubbles", a
// gapminder-style animated scatterplot, or "bars", a revenue bar
// chart.
func Preset(name string) (Config, error) {
	switch name {
	case "", "bubbles":
		return Config{
			Width:    800,
			Height:   500,
			Margin:   surface.Margin{Left: 100, Right: 10, Top: 10, Bottom: 100},
			Key:      "country",
			Shape:    "circle",
			Interval: 100 * time.Millisecond,
			X: Channel{
				Field: "income", Scale: "log", Base: 10,
				Domain: []float64{100, 150000},
				Title:  "GDP Per Capita ($)", TickValues: []float64{400, 4000, 40000}, Format: "$%g",
			},
			Y: Channel{
				Field: "life_exp", Scale: "linear",
				Domain: []float64{0, 90},
				Title:  "Life Expectancy (Years)", Ticks: 10,
			},
			R: Channel{
				Field: "population", Scale: "sqrt",
				Domain: []float64{2000, 1400000000},
				Range:  []float64{3, 60},
			},
			Color: ColorChannel{Field: "continent", Palette: append([]string(nil), Pastel1...)},
			Frames: dataset.FrameOptions{
				Label:   "year",
				Items:   "countries",
				Origin:  1800,
				Require: []string{"income", "life_exp"},
				Numeric: []string{"income", "life_exp", "population"},
			},
		}, nil
	case "bars":
		return Config{
			Width:    600,
			Height:   400,
			Margin:   surface.Margin{Left: 100, Right: 30, Top: 20, Bottom: 100},
			Key:      "month",
			Shape:    "rect",
			Interval: time.Second,
			X: Channel{
				Field: "month", Scale: "band",
				PaddingInner: 0.3, PaddingOuter: 0.2,
				Title: "Month",
			},
			Y: Channel{
				Field: "revenue", Scale: "linear", Zero: true,
				Title: "Revenue ($)", Ticks: 3, Format: "%gm",
			},
			Color: ColorChannel{Palette: []string{"green"}},
			Frames: dataset.FrameOptions{
				Numeric: []string{"revenue", "profit"},
			},
		}, nil
	}
	return Config{}, fmt.Errorf("unknown preset %q", name)
}

// LoadConfig reads a YAML chart configuration from path. The file
// may name a preset to start from with a top-level "preset" key;
// fields in the file override the preset.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}
	return ParseConfig(data)
}

// ParseConfig parses a YAML chart configuration. See LoadConfig.
func ParseConfig(data []byte) (Config, error) {
	var head struct {
		Preset string `yaml:"preset"`
	}
	if err := yaml.Unmarshal(data, &head); err != nil {
		return Config{}, fmt.Errorf("parsing chart config: %w", err)
	}
	cfg, err := Preset(head.Preset)
	if err != nil {
		return Config{}, err
	}
	var withPreset struct {
		Preset string `yaml:"preset"`
		Config `yaml:",inline"`
	}
	withPreset.Config = cfg
	if err := yaml.Unmarshal(data, &withPreset); err != nil {
		return Config{}, fmt.Errorf("parsing chart config: %w", err)
	}
	return withPreset.Config, nil
}

// parseColor resolves a CSS color name or #rrggbb string to
// #rrggbb form.
func parseColor(s string) (string, error) {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "#") {
		if len(s) == 7 {
			if _, err := strconv.ParseUint(s[1:], 16, 32); err == nil {
				return strings.ToLower(s), nil
			}
		}
		return "", fmt.Errorf("bad color %q", s)
	}
	c, ok := colornames.Map[strings.ToLower(s)]
	if !ok {
		return "", fmt.Errorf("unknown color name %q", s)
	}
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B), nil
}
