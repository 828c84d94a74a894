//
// Copyright (c) 2020 Jason S. McMullan <jason.mcmullan@gmail.com>
//

package truescale

import (
	"image"
)

// Layout is the geometry of one output page, computed before any raster
// is allocated.
type Layout struct {
	Page   PageSize
	PPMM   float64 // Canvas pixels per millimeter
	Pixels Size    // Canvas size

	ScaleByWidth  float64
	ScaleByHeight float64
	Scale         float64 // Uniform factor applied to the whole image

	ScaledWidth  float64
	ScaledHeight float64
	ImageX       float64
	ImageY       float64
	Image        image.Rectangle // Where the scaled image is drawn

	Calibration image.Rectangle // The calibration square
}

// Output is the result of one scale operation. It is never modified after
// it is returned.
type Output struct {
	Canvas  *image.RGBA
	Layout  Layout
	Encoded *Encoded
	Tier    string // Tier the output was rendered with
	Passes  int    // Resampling passes used
}
