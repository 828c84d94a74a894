//
// Copyright (c) 2020 Jason S. McMullan <jason.mcmullan@gmail.com>
//

// Package compose renders a selection at true physical scale onto a
// printable page, with a calibration square to check the print.
package compose

import (
	"errors"
	"fmt"
	"image"
	"io"
	"log/slog"

	"golang.org/x/image/draw"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/ezrec/truescale"
	"github.com/ezrec/truescale/resample"
)

// Compositor implements truescale.Compositor for one resource tier.
type Compositor struct {
	Tier     truescale.Tier
	Fallback *truescale.Tier // Retried once on ErrResourceExhausted
	Page     truescale.PageSize
	Policy   truescale.ScalePolicy
	Locale   language.Tag

	Logger     *slog.Logger
	Progressor truescale.Progressor
}

var _ truescale.Compositor = (*Compositor)(nil)

// NewCompositor returns an A4, fit-page compositor for the tier, with
// the tier's named fallback resolved from the tier registry.
func NewCompositor(tier truescale.Tier, logger *slog.Logger) (comp *Compositor, err error) {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	comp = &Compositor{
		Tier:   tier,
		Page:   truescale.PageA4,
		Policy: truescale.ScaleFitPage,
		Locale: language.English,
		Logger: logger,
	}

	if tier.Fallback != "" {
		var fallback truescale.Tier
		fallback, err = truescale.TierByName(tier.Fallback)
		if err != nil {
			comp = nil
			return
		}
		comp.Fallback = &fallback
	}

	return
}

func (comp *Compositor) logger() *slog.Logger {
	if comp.Logger == nil {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return comp.Logger
}

// Layout is the page layout Compose would render for the tier.
func (comp *Compositor) Layout(tier truescale.Tier, src *truescale.SourceImage, sel truescale.NativeRect, target truescale.PhysicalTarget) (layout truescale.Layout, err error) {
	if src == nil {
		err = fmt.Errorf("no source: %w", truescale.ErrNotReady)
		return
	}

	layout, err = Plan(comp.Page, tier.PixelsPerMillimeter(), src.Native, sel, target, comp.Policy)

	return
}

// Compose renders and encodes the page. If the tier runs out of raster
// resources the fallback tier is tried exactly once.
func (comp *Compositor) Compose(src *truescale.SourceImage, sel truescale.NativeRect, target truescale.PhysicalTarget) (out *truescale.Output, err error) {
	defer func() {
		if errors.Is(err, truescale.ErrResourceExhausted) {
			err = fmt.Errorf("%w; try a smaller image or a device with more memory", err)
		}
	}()

	out, err = comp.composeTier(comp.Tier, src, sel, target)
	if err == nil || !errors.Is(err, truescale.ErrResourceExhausted) || comp.Fallback == nil {
		return
	}

	comp.logger().Warn("degrading tier", "from", comp.Tier.Name, "to", comp.Fallback.Name, "error", err)

	out, err = comp.composeTier(*comp.Fallback, src, sel, target)

	return
}

func (comp *Compositor) composeTier(tier truescale.Tier, src *truescale.SourceImage, sel truescale.NativeRect, target truescale.PhysicalTarget) (out *truescale.Output, err error) {
	layout, err := comp.Layout(tier, src, sel, target)
	if err != nil {
		return
	}

	rs, err := resample.New(tier)
	if err != nil {
		return
	}
	rs.Logger = comp.logger()
	rs.Progressor = comp.Progressor

	plan := resample.NewPlan(src.Native.Point(), layout.Image.Size(), layout.Scale, rs.MultiPass)
	need := layout.Pixels.Pixels() + plan.PeakPixels()
	if tier.MaxPixels > 0 && need > tier.MaxPixels {
		err = fmt.Errorf("%s tier: %d pixels needed, %d allowed: %w", tier.Name, need, tier.MaxPixels, truescale.ErrResourceExhausted)
		return
	}

	// Allocation failures in image and draw panic with runtime errors
	// or plain strings.
	defer func() {
		r := recover()
		if r == nil {
			return
		}
		out = nil
		err = fmt.Errorf("%s tier: %v: %w", tier.Name, r, truescale.ErrResourceExhausted)
	}()

	comp.logger().Info("compose",
		"tier", tier.Name,
		"page", layout.Page.Name,
		"width", layout.Pixels.X,
		"height", layout.Pixels.Y,
		"scale", layout.Scale,
		"passes", len(plan.Passes),
	)

	canvas := image.NewRGBA(image.Rect(0, 0, layout.Pixels.X, layout.Pixels.Y))
	draw.Draw(canvas, canvas.Bounds(), image.White, image.Point{}, draw.Src)

	plan, err = rs.Scale(canvas, layout.Image, src.Image, layout.Scale)
	if err != nil {
		return
	}

	printer := message.NewPrinter(comp.Locale)
	err = drawCalibration(canvas, layout, instructionLines(printer, target))
	if err != nil {
		return
	}

	mime := truescale.OutputMIME(src.MIME)
	enc, err := truescale.Encode(canvas, mime, truescale.EncodeOptions{
		Quality: tier.Quality,
		DPI:     layout.PPMM * truescale.MillimetersPerInch,
	})
	if err != nil {
		return
	}

	out = &truescale.Output{
		Canvas:  canvas,
		Layout:  layout,
		Encoded: enc,
		Tier:    tier.Name,
		Passes:  len(plan.Passes),
	}

	return
}
