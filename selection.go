//
// Copyright (c) 2020 Jason S. McMullan <jason.mcmullan@gmail.com>
//

package truescale

import (
	"math"

	"github.com/faiface/pixel"
)

// Tracker follows a pointer drag over the displayed image and produces at
// most one active selection. Starting a drag while a selection is active
// discards it and starts over.
type Tracker struct {
	bounds   pixel.Rect
	start    pixel.Vec
	current  pixel.Vec
	dragging bool

	active    DisplayRect
	hasActive bool
}

func (t *Tracker) clamp(p pixel.Vec) pixel.Vec {
	return pixel.V(
		math.Min(math.Max(p.X, t.bounds.Min.X), t.bounds.Max.X),
		math.Min(math.Max(p.Y, t.bounds.Min.Y), t.bounds.Max.Y),
	)
}

func (t *Tracker) live() DisplayRect {
	r := pixel.Rect{Min: t.start, Max: t.current}.Norm()
	return DisplayRect{Left: r.Min.X, Top: r.Min.Y, Width: r.W(), Height: r.H()}
}

// Begin starts a drag at p on an image displayed at displayW x displayH.
func (t *Tracker) Begin(p pixel.Vec, displayW, displayH float64) {
	t.Cancel()

	t.bounds = pixel.R(0, 0, displayW, displayH)
	t.start = t.clamp(p)
	t.current = t.start
	t.dragging = true
}

// Move updates the drag with the latest pointer position and returns the
// rectangle to draw.
func (t *Tracker) Move(p pixel.Vec) (sel DisplayRect, ok bool) {
	if !t.dragging {
		return
	}

	t.current = t.clamp(p)
	sel = t.live()
	ok = true

	return
}

// End finishes the drag. Drags not larger than MinSelectionPixels on both
// axes are treated as clicks and discarded.
func (t *Tracker) End() (sel DisplayRect, ok bool) {
	if !t.dragging {
		return
	}
	t.dragging = false

	sel = t.live()
	if sel.Width > MinSelectionPixels && sel.Height > MinSelectionPixels {
		t.active = sel
		t.hasActive = true
		ok = true
	}

	return
}

// Click clears the active selection when p falls outside it.
func (t *Tracker) Click(p pixel.Vec) (cleared bool) {
	if !t.hasActive || t.dragging {
		return
	}

	if !t.active.Contains(p.X, p.Y) {
		t.Cancel()
		cleared = true
	}

	return
}

// Relayout moves the active selection to sel on an image now displayed at
// displayW x displayH.
func (t *Tracker) Relayout(sel DisplayRect, displayW, displayH float64) {
	if !t.hasActive {
		return
	}

	t.bounds = pixel.R(0, 0, displayW, displayH)
	t.active = sel
}

func (t *Tracker) Cancel() {
	t.dragging = false
	t.hasActive = false
	t.active = DisplayRect{}
}

func (t *Tracker) Dragging() bool {
	return t.dragging
}

func (t *Tracker) Active() (sel DisplayRect, ok bool) {
	return t.active, t.hasActive
}
