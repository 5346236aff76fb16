// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package surface

import (
	"fmt"
	"io"
	"math"

	svg "github.com/ajstarks/svgo"
)

// Shape selects how an SVG surface draws its elements.
type Shape int

const (
	Circle Shape = iota
	Rect
)

// Margin is the space around the plot area.
type Margin struct {
	Left, Right, Top, Bottom int
}

// Orient is the side of the plot area an axis is drawn on.
type Orient int

const (
	Bottom Orient = iota
	Left
)

// A Tick is an axis tick at a position along the axis, in plot
// coordinates.
type Tick struct {
	Pos   float64
	Label string
}

// An Axis is a line of labeled ticks along one side of the plot.
type Axis struct {
	Orient Orient
	Title  string
	Ticks  []Tick
}

// SVG is a retained-mode Surface. It keeps the current element set
// and writes it as an SVG document on Render.
type SVG struct {
	Width, Height int
	Margin        Margin
	Shape         Shape
	Axes          []Axis

	// Label is drawn large and translucent in the corner of the
	// plot area, such as the year of the current frame.
	Label string

	order []string
	elems map[string]Attrs
}

// NewSVG returns an empty SVG surface of the given total size.
func NewSVG(width, height int, m Margin, shape Shape) *SVG {
	return &SVG{Width: width, Height: height, Margin: m, Shape: shape, elems: make(map[string]Attrs)}
}

// PlotSize returns the size of the area inside the margins.
func (s *SVG) PlotSize() (w, h float64) {
	return float64(s.Width - s.Margin.Left - s.Margin.Right), float64(s.Height - s.Margin.Top - s.Margin.Bottom)
}

func (s *SVG) Create(key string, a Attrs) {
	if s.elems == nil {
		s.elems = make(map[string]Attrs)
	}
	if _, ok := s.elems[key]; !ok {
		s.order = append(s.order, key)
	}
	s.elems[key] = a
}

func (s *SVG) Update(key string, old, new Attrs) {
	s.Create(key, new)
}

func (s *SVG) Remove(key string) {
	if _, ok := s.elems[key]; !ok {
		return
	}
	delete(s.elems, key)
	for i, k := range s.order {
		if k == key {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
}

// Len returns the number of elements on s.
func (s *SVG) Len() int {
	return len(s.order)
}

// Get returns the attributes of the element for key.
func (s *SVG) Get(key string) (Attrs, bool) {
	a, ok := s.elems[key]
	return a, ok
}

// Render writes s as an SVG document. Elements are drawn in creation
// order.
func (s *SVG) Render(w io.Writer) {
	pw, ph := s.PlotSize()
	c := svg.New(w)
	c.Start(s.Width, s.Height)
	c.Gtransform(fmt.Sprintf("translate(%d,%d)", s.Margin.Left, s.Margin.Top))

	if s.Label != "" {
		c.Text(px(pw)-40, px(ph)-10, s.Label, "font-size:40px;opacity:0.4;text-anchor:middle")
	}

	for _, ax := range s.Axes {
		s.axis(c, ax, pw, ph)
	}

	for _, key := range s.order {
		a := s.elems[key]
		style := "fill:" + a.Fill
		if a.Fill == "" {
			style = "fill:black"
		}
		switch s.Shape {
		case Circle:
			c.Circle(px(a.X), px(a.Y), px(a.R), style)
		case Rect:
			c.Rect(px(a.X), px(a.Y), px(a.Width), px(a.Height), style)
		}
	}

	c.Gend()
	c.End()
}

func (s *SVG) axis(c *svg.SVG, ax Axis, pw, ph float64) {
	const tickLen = 6
	const label = "font-size:10px;fill:#333"
	switch ax.Orient {
	case Bottom:
		y := px(ph)
		c.Line(0, y, px(pw), y, "stroke:black")
		for _, t := range ax.Ticks {
			x := px(t.Pos)
			c.Line(x, y, x, y+tickLen, "stroke:black")
			c.Text(x, y+tickLen+12, t.Label, label+";text-anchor:middle")
		}
		if ax.Title != "" {
			c.Text(px(pw/2), y+50, ax.Title, "font-size:20px;text-anchor:middle")
		}
	case Left:
		c.Line(0, 0, 0, px(ph), "stroke:black")
		for _, t := range ax.Ticks {
			y := px(t.Pos)
			c.Line(-tickLen, y, 0, y, "stroke:black")
			c.Text(-tickLen-3, y+3, t.Label, label+";text-anchor:end")
		}
		if ax.Title != "" {
			c.Text(-px(ph/2), -40, ax.Title, "font-size:20px;text-anchor:middle", `transform="rotate(-90)"`)
		}
	}
}

func px(x float64) int {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return 0
	}
	return int(math.Round(x))
}
