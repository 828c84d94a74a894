//
// Copyright (c) 2020 Jason S. McMullan <jason.mcmullan@gmail.com>
//

// Package truescale turns a user-selected region of an image into a
// printable page where that region lands at a declared physical size.
package truescale

import (
	"image"
	"math"
	"strconv"
	"strings"
)

const (
	// MillimetersPerInch converts a DPI into pixels per millimeter.
	MillimetersPerInch = 25.4

	// DefaultDPI is the print resolution of the high fidelity tier.
	DefaultDPI = 1200

	// CalibrationSquareMM is the side of the embedded calibration square.
	CalibrationSquareMM = 10.0

	// CalibrationPadding is the offset of the calibration square from the
	// top-left page corner, as a fraction of the page width.
	CalibrationPadding = 0.05

	// MinSelectionPixels is the size, in display pixels, that a drag must
	// exceed on both axes to become a selection.
	MinSelectionPixels = 10.0

	// TwoPassThreshold and ThreePassThreshold bound the magnification
	// handled by one and two resampling passes.
	TwoPassThreshold   = 2.0
	ThreePassThreshold = 8.0
)

// PixelsPerMillimeter converts a resolution in DPI to pixels per millimeter.
func PixelsPerMillimeter(dpi float64) float64 {
	return dpi / MillimetersPerInch
}

// SizeMillimeter is a physical size
type SizeMillimeter struct {
	X, Y float64
}

// Size is a raster size in pixels
type Size struct {
	X, Y int
}

func (size Size) Point() image.Point {
	return image.Pt(size.X, size.Y)
}

func (size Size) Pixels() int64 {
	return int64(size.X) * int64(size.Y)
}

// DisplayRect is a selection in on-screen pixels, relative to the top-left
// corner of the displayed image.
type DisplayRect struct {
	Left, Top, Width, Height float64
}

func (r DisplayRect) Contains(x, y float64) bool {
	return x >= r.Left && x <= r.Left+r.Width && y >= r.Top && y <= r.Top+r.Height
}

// NativeRect is a selection in the decoded image's own pixel grid.
type NativeRect struct {
	Left, Top, Width, Height float64
}

// Aspect is width over height; zero for an empty rectangle.
func (r NativeRect) Aspect() float64 {
	if r.Height <= 0 {
		return 0
	}
	return r.Width / r.Height
}

// PhysicalTarget is the real-world size the selection must print at.
type PhysicalTarget struct {
	WidthMM  float64
	HeightMM float64
}

func validMillimeters(field string, value float64) (err error) {
	switch {
	case math.IsNaN(value) || math.IsInf(value, 0):
		err = &ValidationError{Field: field, Reason: "must be a number"}
	case value <= 0:
		err = &ValidationError{Field: field, Reason: "must be greater than 0"}
	}

	return
}

// Validate rejects non-finite and non-positive dimensions.
func (target PhysicalTarget) Validate() (err error) {
	err = validMillimeters("width", target.WidthMM)
	if err != nil {
		return
	}

	err = validMillimeters("height", target.HeightMM)

	return
}

func parseMillimeters(field, text string) (value float64, err error) {
	value, err = strconv.ParseFloat(strings.TrimSpace(text), 64)
	if err != nil {
		err = &ValidationError{Field: field, Reason: "must be a number"}
		return
	}

	err = validMillimeters(field, value)

	return
}

// ParsePhysicalTarget reads a target from the two text fields a user typed.
func ParsePhysicalTarget(width, height string) (target PhysicalTarget, err error) {
	w, err := parseMillimeters("width", width)
	if err != nil {
		return
	}

	h, err := parseMillimeters("height", height)
	if err != nil {
		return
	}

	target = PhysicalTarget{WidthMM: w, HeightMM: h}

	return
}

// ScalePolicy decides how the width and height scale factors are combined.
type ScalePolicy int

const (
	// ScaleFitPage takes the smaller factor.
	ScaleFitPage = ScalePolicy(iota)
	// ScaleAverage takes the mean of both factors, keeping the image
	// aspect ratio and spreading the error over both dimensions.
	ScaleAverage
)

func (policy ScalePolicy) String() string {
	switch policy {
	case ScaleFitPage:
		return "fit-page"
	case ScaleAverage:
		return "average"
	default:
		return "unknown"
	}
}

// Combine merges the per-axis factors into the single uniform factor.
func (policy ScalePolicy) Combine(byWidth, byHeight float64) float64 {
	if policy == ScaleAverage {
		return (byWidth + byHeight) / 2
	}

	return math.Min(byWidth, byHeight)
}

// ParseScalePolicy accepts the names returned by ScalePolicy.String
func ParseScalePolicy(name string) (policy ScalePolicy, err error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "fit-page", "min":
		policy = ScaleFitPage
	case "average", "mean":
		policy = ScaleAverage
	default:
		err = ErrUnknownPolicy(name)
	}

	return
}
