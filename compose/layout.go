//
// Copyright (c) 2020 Jason S. McMullan <jason.mcmullan@gmail.com>
//

package compose

import (
	"fmt"
	"image"
	"math"

	"github.com/ezrec/truescale"
)

// Rounding slack when comparing the scaled image against the page.
const pageFitEpsilon = 1e-9

// Plan computes the page layout for a selection without touching any
// raster. A rejected layout never reaches an allocation.
func Plan(page truescale.PageSize, ppmm float64, native truescale.Size, sel truescale.NativeRect, target truescale.PhysicalTarget, policy truescale.ScalePolicy) (layout truescale.Layout, err error) {
	err = target.Validate()
	if err != nil {
		return
	}

	if !(ppmm > 0) || math.IsInf(ppmm, 0) {
		err = &truescale.ValidationError{Field: "resolution", Reason: fmt.Sprintf("%v pixels/mm out of range", ppmm)}
		return
	}

	if native.X <= 0 || native.Y <= 0 {
		err = fmt.Errorf("source %dx%d: %w", native.X, native.Y, truescale.ErrNotReady)
		return
	}

	if !(sel.Width > 0) || !(sel.Height > 0) {
		err = &truescale.ValidationError{Field: "selection", Reason: "must not be empty"}
		return
	}

	layout.Page = page
	layout.PPMM = ppmm
	layout.Pixels = page.Pixels(ppmm)

	layout.ScaleByWidth = target.WidthMM * ppmm / sel.Width
	layout.ScaleByHeight = target.HeightMM * ppmm / sel.Height
	layout.Scale = policy.Combine(layout.ScaleByWidth, layout.ScaleByHeight)

	layout.ScaledWidth = float64(native.X) * layout.Scale
	layout.ScaledHeight = float64(native.Y) * layout.Scale

	// The canvas is truncated to whole pixels; overflow is judged against
	// the exact page size.
	if layout.ScaledWidth > page.Millimeter.X*ppmm*(1+pageFitEpsilon) || layout.ScaledHeight > page.Millimeter.Y*ppmm*(1+pageFitEpsilon) {
		err = &truescale.ValidationError{
			Field: "target",
			Reason: fmt.Sprintf("image needs %.1f x %.1f mm, page %s is %.1f x %.1f mm",
				layout.ScaledWidth/ppmm, layout.ScaledHeight/ppmm,
				page.Name, page.Millimeter.X, page.Millimeter.Y),
			Err: truescale.ErrPageOverflow,
		}
		return
	}

	pageW := float64(layout.Pixels.X)
	pageH := float64(layout.Pixels.Y)
	layout.ImageX = (pageW - layout.ScaledWidth) / 2
	layout.ImageY = (pageH - layout.ScaledHeight) / 2

	layout.Image = image.Rect(
		int(math.Round(layout.ImageX)),
		int(math.Round(layout.ImageY)),
		int(math.Round(layout.ImageX+layout.ScaledWidth)),
		int(math.Round(layout.ImageY+layout.ScaledHeight)),
	).Intersect(image.Rect(0, 0, layout.Pixels.X, layout.Pixels.Y))

	if layout.Image.Empty() {
		err = &truescale.ValidationError{Field: "target", Reason: "scaled image is smaller than one pixel"}
		return
	}

	pad := int(math.Round(pageW * truescale.CalibrationPadding))
	side := int(math.Round(truescale.CalibrationSquareMM * ppmm))
	layout.Calibration = image.Rect(pad, pad, pad+side, pad+side)

	return
}
