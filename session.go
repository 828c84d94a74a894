//
// Copyright (c) 2020 Jason S. McMullan <jason.mcmullan@gmail.com>
//

package truescale

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/faiface/pixel"
)

// State enumerates the steps of one upload, select, scale cycle.
type State int

const (
	StateEmpty = State(iota)
	StateLoaded
	StateSelecting
	StateSelected
	StateScaled
)

func (s State) String() string {
	switch s {
	case StateEmpty:
		return "empty"
	case StateLoaded:
		return "loaded"
	case StateSelecting:
		return "selecting"
	case StateSelected:
		return "selected"
	case StateScaled:
		return "scaled"
	default:
		return "unknown"
	}
}

// StateListener is called after every state change.
type StateListener func(prev, next State)

// Measurer reports the size the image is currently displayed at.
type Measurer interface {
	DisplaySize() (width, height float64)
}

type MeasurerFunc func() (width, height float64)

func (f MeasurerFunc) DisplaySize() (width, height float64) {
	return f()
}

// Compositor renders the output page for a selection.
type Compositor interface {
	Compose(src *SourceImage, sel NativeRect, target PhysicalTarget) (out *Output, err error)
}

// Session owns all state of one interactive cycle. It is not safe for
// concurrent use; all calls come from the host's single event loop.
type Session struct {
	logger     *slog.Logger
	measurer   Measurer
	compositor Compositor
	listeners  []StateListener

	state   State
	source  *SourceImage
	tracker Tracker
	native  NativeRect // Selection in source pixels, fixed at finalization
	target  *PhysicalTarget
	output  *Output
}

func NewSession(compositor Compositor, measurer Measurer, logger *slog.Logger) (sess *Session) {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	sess = &Session{
		logger:     logger,
		measurer:   measurer,
		compositor: compositor,
	}

	return
}

func (sess *Session) AddListener(l StateListener) {
	sess.listeners = append(sess.listeners, l)
}

func (sess *Session) transition(next State) {
	prev := sess.state

	// Leaving the selection or going back to it drops everything that
	// depended on it.
	switch next {
	case StateEmpty, StateLoaded, StateSelecting:
		sess.native = NativeRect{}
		sess.target = nil
		sess.output = nil
	case StateSelected:
		sess.output = nil
	}

	if prev == next {
		return
	}

	sess.state = next
	sess.logger.Debug("session transition", "from", prev.String(), "to", next.String())
	for _, l := range sess.listeners {
		l(prev, next)
	}
}

func (sess *Session) State() State {
	return sess.state
}

func (sess *Session) Source() *SourceImage {
	return sess.source
}

// Output is the last scale result, or nil.
func (sess *Session) Output() *Output {
	return sess.output
}

func (sess *Session) Target() (target PhysicalTarget, ok bool) {
	if sess.target == nil {
		return
	}
	return *sess.target, true
}

// measure always asks the measurer; display sizes change on reflow.
func (sess *Session) measure() (w, h float64, err error) {
	if sess.source == nil || sess.measurer == nil {
		err = ErrNotReady
		return
	}

	w, h = sess.measurer.DisplaySize()
	if !(w > 0) || !(h > 0) {
		err = fmt.Errorf("image not laid out: %w", ErrNotReady)
	}

	return
}

// Load replaces the session image, dropping every dependent state.
func (sess *Session) Load(src *SourceImage) (err error) {
	if src == nil || src.Native.X <= 0 || src.Native.Y <= 0 {
		err = fmt.Errorf("load: %w", ErrNotReady)
		return
	}

	sess.tracker.Cancel()
	sess.source = src
	sess.transition(StateEmpty)
	sess.transition(StateLoaded)

	sess.logger.Info("image loaded", "width", src.Native.X, "height", src.Native.Y, "mime", src.MIME)

	return
}

// BeginDrag starts a new selection, replacing any active one.
func (sess *Session) BeginDrag(p pixel.Vec) (err error) {
	w, h, err := sess.measure()
	if err != nil {
		return
	}

	sess.tracker.Begin(p, w, h)
	sess.transition(StateSelecting)

	return
}

func (sess *Session) MoveDrag(p pixel.Vec) (sel DisplayRect, ok bool) {
	return sess.tracker.Move(p)
}

// EndDrag finalizes the drag; ok is false when it was too small. The
// selection is converted to source pixels with the display size measured
// now, so a later reflow does not move it.
func (sess *Session) EndDrag() (sel DisplayRect, ok bool) {
	if !sess.tracker.Dragging() {
		return
	}

	sel, ok = sess.tracker.End()
	if !ok {
		sess.transition(StateLoaded)
		return
	}

	w, h, err := sess.measure()
	if err == nil {
		sess.native, err = ToNative(sel, w, h, sess.source.Native)
	}
	if err != nil {
		sess.logger.Debug("selection dropped", "error", err)
		sess.tracker.Cancel()
		sess.transition(StateLoaded)
		sel, ok = DisplayRect{}, false
		return
	}

	sess.transition(StateSelected)

	return
}

// Cancel clears the selection, as the Escape key does.
func (sess *Session) Cancel() {
	if sess.source == nil {
		return
	}

	sess.tracker.Cancel()
	sess.transition(StateLoaded)
}

// ClickAt clears the selection if p is outside of it.
func (sess *Session) ClickAt(p pixel.Vec) (cleared bool) {
	// Hit test against the current layout
	sess.Selection()

	cleared = sess.tracker.Click(p)
	if cleared {
		sess.transition(StateLoaded)
	}

	return
}

// Selection returns the active selection in display coordinates, for the
// size the image is displayed at now.
func (sess *Session) Selection() (sel DisplayRect, ok bool) {
	if sess.state != StateSelected && sess.state != StateScaled {
		return
	}

	sel, ok = sess.tracker.Active()
	if !ok {
		return
	}

	w, h, err := sess.measure()
	if err != nil {
		return
	}

	moved, err := ToDisplay(sess.native, w, h, sess.source.Native)
	if err != nil {
		return
	}

	sess.tracker.Relayout(moved, w, h)
	sel = moved

	return
}

// NativeSelection is the active selection in source pixels.
func (sess *Session) NativeSelection() (rect NativeRect, err error) {
	if sess.state != StateSelected && sess.state != StateScaled {
		err = fmt.Errorf("no selection: %w", ErrNotReady)
		return
	}

	rect = sess.native

	return
}

// SetTarget stores the physical size of the selection. Invalid input
// leaves the session untouched.
func (sess *Session) SetTarget(target PhysicalTarget) (err error) {
	if _, ok := sess.Selection(); !ok {
		err = fmt.Errorf("no selection: %w", ErrNotReady)
		return
	}

	err = target.Validate()
	if err != nil {
		return
	}

	sess.target = &target
	sess.transition(StateSelected)

	return
}

func (sess *Session) aspect() (aspect float64, err error) {
	rect, err := sess.NativeSelection()
	if err != nil {
		return
	}

	aspect = rect.Aspect()
	if aspect <= 0 {
		err = fmt.Errorf("empty selection: %w", ErrNotReady)
	}

	return
}

// SyncWidth returns a target with the given width and the height that
// keeps the selection's aspect ratio.
func (sess *Session) SyncWidth(widthMM float64) (target PhysicalTarget, err error) {
	err = validMillimeters("width", widthMM)
	if err != nil {
		return
	}

	aspect, err := sess.aspect()
	if err != nil {
		return
	}

	target = PhysicalTarget{WidthMM: widthMM, HeightMM: widthMM / aspect}

	return
}

// SyncHeight is SyncWidth for the other axis.
func (sess *Session) SyncHeight(heightMM float64) (target PhysicalTarget, err error) {
	err = validMillimeters("height", heightMM)
	if err != nil {
		return
	}

	aspect, err := sess.aspect()
	if err != nil {
		return
	}

	target = PhysicalTarget{WidthMM: heightMM * aspect, HeightMM: heightMM}

	return
}

// Scale composes the output page. On any failure the session is left as
// it was and no output is exposed.
func (sess *Session) Scale() (out *Output, err error) {
	if sess.target == nil || sess.compositor == nil {
		err = fmt.Errorf("no target: %w", ErrNotReady)
		return
	}

	rect, err := sess.NativeSelection()
	if err != nil {
		return
	}

	out, err = sess.compositor.Compose(sess.source, rect, *sess.target)
	if err != nil {
		out = nil
		if !errors.Is(err, ErrNotReady) {
			sess.logger.Error("scale failed", "error", err)
		}
		return
	}

	sess.transition(StateScaled)
	sess.output = out

	return
}
