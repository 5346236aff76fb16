// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package surface defines the rendering side of a data join: a
// Surface receives create, update, and remove instructions for
// keyed visual elements.
package surface

import "fmt"

// Attrs are the computed visual attributes of one element. For
// circles, (X, Y) is the center and R the radius. For rectangles,
// (X, Y) is the top-left corner.
type Attrs struct {
	X, Y          float64
	R             float64
	Width, Height float64
	Fill          string
}

func (a Attrs) String() string {
	return fmt.Sprintf("(%.4g,%.4g) r=%.4g %gx%g %s", a.X, a.Y, a.R, a.Width, a.Height, a.Fill)
}

// A Surface owns a set of keyed visual elements.
type Surface interface {
	// Create adds an element for key.
	Create(key string, a Attrs)

	// Update moves the element for key from old to new.
	Update(key string, old, new Attrs)

	// Remove deletes the element for key.
	Remove(key string)
}

// Op is the kind of an Instruction.
type Op int

const (
	OpCreate Op = iota
	OpUpdate
	OpRemove
)

func (o Op) String() string {
	switch o {
	case OpCreate:
		return "create"
	case OpUpdate:
		return "update"
	case OpRemove:
		return "remove"
	}
	return fmt.Sprintf("Op(%d)", int(o))
}

// An Instruction is one call made to a Surface.
type Instruction struct {
	Op       Op
	Key      string
	Old, New Attrs
}

// A Recorder is a Surface that records the instructions it receives.
type Recorder struct {
	Log []Instruction
}

func (r *Recorder) Create(key string, a Attrs) {
	r.Log = append(r.Log, Instruction{Op: OpCreate, Key: key, New: a})
}

func (r *Recorder) Update(key string, old, new Attrs) {
	r.Log = append(r.Log, Instruction{Op: OpUpdate, Key: key, Old: old, New: new})
}

func (r *Recorder) Remove(key string) {
	r.Log = append(r.Log, Instruction{Op: OpRemove, Key: key})
}

// Reset discards the recorded instructions.
func (r *Recorder) Reset() {
	r.Log = r.Log[:0]
}
