//
// Copyright (c) 2020 Jason S. McMullan <jason.mcmullan@gmail.com>
//

package truescale

import (
	"testing"

	"github.com/faiface/pixel"
)

func TestTrackerDrag(t *testing.T) {
	table := map[string]struct {
		from, to pixel.Vec
		expected DisplayRect
		ok       bool
	}{
		"down-right": {pixel.V(10, 20), pixel.V(110, 80), DisplayRect{Left: 10, Top: 20, Width: 100, Height: 60}, true},
		"up-left":    {pixel.V(110, 80), pixel.V(10, 20), DisplayRect{Left: 10, Top: 20, Width: 100, Height: 60}, true},
		"clamped":    {pixel.V(-50, -50), pixel.V(500, 500), DisplayRect{Left: 0, Top: 0, Width: 200, Height: 100}, true},
		"threshold":  {pixel.V(0, 0), pixel.V(10, 50), DisplayRect{Width: 10, Height: 50}, false},
		"just-over":  {pixel.V(0, 0), pixel.V(10.5, 10.5), DisplayRect{Width: 10.5, Height: 10.5}, true},
		"click":      {pixel.V(40, 40), pixel.V(40, 40), DisplayRect{Left: 40, Top: 40}, false},
	}

	for key, item := range table {
		var tr Tracker
		tr.Begin(item.from, 200, 100)

		live, ok := tr.Move(item.to)
		if !ok || live != item.expected {
			t.Errorf("%v: live rectangle %+v", key, live)
		}

		sel, ok := tr.End()
		if ok != item.ok {
			t.Errorf("%v: expected finalized %v, got %v", key, item.ok, ok)
		}

		if sel != item.expected {
			t.Errorf("%v: expected %+v, got %+v", key, item.expected, sel)
		}

		_, active := tr.Active()
		if active != item.ok {
			t.Errorf("%v: expected active %v", key, item.ok)
		}
	}
}

func TestTrackerRestart(t *testing.T) {
	var tr Tracker
	tr.Begin(pixel.V(0, 0), 200, 200)
	tr.Move(pixel.V(100, 100))
	if _, ok := tr.End(); !ok {
		t.Fatal("selection not finalized")
	}

	// A new drag discards the active selection at once
	tr.Begin(pixel.V(150, 150), 200, 200)
	if _, ok := tr.Active(); ok {
		t.Errorf("active selection kept while dragging")
	}

	if !tr.Dragging() {
		t.Errorf("expected dragging")
	}

	tr.Move(pixel.V(155, 155))
	if _, ok := tr.End(); ok {
		t.Errorf("small drag finalized")
	}

	if _, ok := tr.Active(); ok {
		t.Errorf("expected no selection after a small restart")
	}
}

func TestTrackerClick(t *testing.T) {
	var tr Tracker
	tr.Begin(pixel.V(20, 20), 200, 200)
	tr.Move(pixel.V(80, 80))
	tr.End()

	if tr.Click(pixel.V(50, 50)) {
		t.Errorf("click inside cleared the selection")
	}

	if tr.Click(pixel.V(80, 80)) {
		t.Errorf("click on the edge cleared the selection")
	}

	if !tr.Click(pixel.V(81, 50)) {
		t.Errorf("click outside did not clear the selection")
	}

	if _, ok := tr.Active(); ok {
		t.Errorf("selection still active")
	}

	if tr.Click(pixel.V(0, 0)) {
		t.Errorf("click without selection reported a clear")
	}
}

func TestTrackerMoveWithoutDrag(t *testing.T) {
	var tr Tracker
	if _, ok := tr.Move(pixel.V(1, 1)); ok {
		t.Errorf("move without drag")
	}

	if _, ok := tr.End(); ok {
		t.Errorf("end without drag")
	}
}
