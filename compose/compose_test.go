//
// Copyright (c) 2020 Jason S. McMullan <jason.mcmullan@gmail.com>
//

package compose

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"math"
	"strings"
	"testing"

	"github.com/faiface/pixel"
	"golang.org/x/image/draw"

	"github.com/ezrec/truescale"
	"github.com/ezrec/truescale/jpegdpi"
	"github.com/ezrec/truescale/pngdpi"
)

var (
	blue = color.RGBA{0x20, 0x40, 0xc0, 0xff}

	// One pixel per millimeter keeps an A4 page at 210x297
	tierTest = truescale.Tier{
		Name:        "test",
		DPI:         truescale.MillimetersPerInch,
		CanvasScale: 1,
		MultiPass:   true,
		Kernel:      truescale.KernelCatmullRom,
		Quality:     95,
		MaxPixels:   1_000_000,
	}

	tierTestSmall = truescale.Tier{
		Name:        "test-small",
		DPI:         truescale.MillimetersPerInch,
		CanvasScale: 0.5,
		Kernel:      truescale.KernelApproxBiLinear,
		Quality:     80,
		MaxPixels:   1_000_000,
	}

	testSelection = truescale.NativeRect{Left: 10, Top: 10, Width: 10, Height: 7.5}
	testTarget    = truescale.PhysicalTarget{WidthMM: 50, HeightMM: 37.5}
)

type countProgress struct {
	shows int
}

func (cp *countProgress) Show(float32) { cp.shows++ }
func (cp *countProgress) Stop()        {}

func testSource(mime string) *truescale.SourceImage {
	img := image.NewNRGBA(image.Rect(0, 0, 40, 30))
	draw.Draw(img, img.Bounds(), image.NewUniform(blue), image.Point{}, draw.Src)
	return truescale.NewSourceImage(img, mime)
}

func testCompositor(tier truescale.Tier) *Compositor {
	comp, err := NewCompositor(tier, nil)
	if err != nil {
		panic(err)
	}
	return comp
}

func TestNewCompositorFallback(t *testing.T) {
	comp, err := NewCompositor(truescale.TierHighFidelity, nil)
	if err != nil {
		t.Fatal(err)
	}

	if comp.Fallback == nil || comp.Fallback.Name != truescale.TierConstrained.Name {
		t.Errorf("expected constrained fallback, got %+v", comp.Fallback)
	}

	bad := tierTest
	bad.Fallback = "nonesuch"
	_, err = NewCompositor(bad, nil)
	var unknown truescale.ErrUnknownTier
	if !errors.As(err, &unknown) {
		t.Errorf("expected ErrUnknownTier, got %v", err)
	}
}

func TestCompose(t *testing.T) {
	comp := testCompositor(tierTest)

	out, err := comp.Compose(testSource("image/png"), testSelection, testTarget)
	if err != nil {
		t.Fatal(err)
	}

	if out.Canvas.Bounds() != image.Rect(0, 0, 210, 297) {
		t.Errorf("unexpected canvas %v", out.Canvas.Bounds())
	}

	if out.Layout.Scale != 5 || out.Passes != 2 || out.Tier != tierTest.Name {
		t.Errorf("unexpected output scale %v passes %v tier %v", out.Layout.Scale, out.Passes, out.Tier)
	}

	if out.Layout.Image != image.Rect(5, 74, 205, 224) {
		t.Errorf("unexpected image rectangle %v", out.Layout.Image)
	}

	if got := out.Canvas.RGBAAt(105, 149); got != blue {
		t.Errorf("expected image color at center, got %v", got)
	}

	if got := out.Canvas.RGBAAt(105, 280); got != (color.RGBA{0xff, 0xff, 0xff, 0xff}) {
		t.Errorf("expected white page below image, got %v", got)
	}

	if got := out.Canvas.RGBAAt(out.Layout.Calibration.Min.X, out.Layout.Calibration.Min.Y+5); got.R > 0x80 {
		t.Errorf("expected calibration stroke, got %v", got)
	}

	if out.Encoded.MIME != "image/png" {
		t.Errorf("expected png, got %v", out.Encoded.MIME)
	}

	dpi, err := pngdpi.Resolution(out.Encoded.Data)
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(dpi-truescale.MillimetersPerInch) > 0.01 {
		t.Errorf("expected %v dpi recorded, got %v", truescale.MillimetersPerInch, dpi)
	}
}

func TestComposeIdempotent(t *testing.T) {
	comp := testCompositor(tierTest)
	src := testSource("image/png")

	first, err := comp.Compose(src, testSelection, testTarget)
	if err != nil {
		t.Fatal(err)
	}

	second, err := comp.Compose(src, testSelection, testTarget)
	if err != nil {
		t.Fatal(err)
	}

	if first.Layout != second.Layout || !bytes.Equal(first.Encoded.Data, second.Encoded.Data) {
		t.Errorf("repeated compose differs")
	}

	if first.Canvas == second.Canvas {
		t.Errorf("canvas reused between operations")
	}
}

func TestComposeOutputMIME(t *testing.T) {
	table := map[string]string{
		"image/png":  "image/png",
		"image/jpeg": "image/jpeg",
		"image/gif":  "image/png",
		"image/webp": "image/png",
	}

	comp := testCompositor(tierTest)
	for in, expected := range table {
		out, err := comp.Compose(testSource(in), testSelection, testTarget)
		if err != nil {
			t.Fatalf("%v: %v", in, err)
		}

		if out.Encoded.MIME != expected {
			t.Errorf("%v: expected %v, got %v", in, expected, out.Encoded.MIME)
		}
	}

	out, err := comp.Compose(testSource("image/jpeg"), testSelection, testTarget)
	if err != nil {
		t.Fatal(err)
	}

	if out.Encoded.Quality != tierTest.Quality {
		t.Errorf("expected quality %v, got %v", tierTest.Quality, out.Encoded.Quality)
	}

	dpi, err := jpegdpi.Resolution(out.Encoded.Data)
	if err != nil || dpi != 25 {
		t.Errorf("expected 25 dpi, got %v (%v)", dpi, err)
	}
}

func TestComposeRejectsBeforeAllocation(t *testing.T) {
	prog := &countProgress{}
	comp := testCompositor(tierTest)
	comp.Progressor = prog

	out, err := comp.Compose(testSource("image/png"), testSelection, truescale.PhysicalTarget{WidthMM: 0, HeightMM: 37.5})
	if !truescale.IsValidation(err) || out != nil {
		t.Errorf("expected validation error and no output, got %v, %v", out, err)
	}

	_, err = comp.Compose(testSource("image/png"), testSelection, truescale.PhysicalTarget{WidthMM: 500, HeightMM: 375})
	if !errors.Is(err, truescale.ErrPageOverflow) {
		t.Errorf("expected page overflow, got %v", err)
	}

	if prog.shows != 0 {
		t.Errorf("resampler ran %v steps for a rejected request", prog.shows)
	}
}

func TestComposeFallback(t *testing.T) {
	tiny := tierTest
	tiny.MaxPixels = 1000

	comp := testCompositor(tiny)
	comp.Fallback = &tierTestSmall

	out, err := comp.Compose(testSource("image/png"), testSelection, testTarget)
	if err != nil {
		t.Fatal(err)
	}

	if out.Tier != tierTestSmall.Name || out.Passes != 1 {
		t.Errorf("expected single pass %v output, got %v in %v passes", tierTestSmall.Name, out.Tier, out.Passes)
	}

	if out.Canvas.Bounds() != image.Rect(0, 0, 105, 148) {
		t.Errorf("unexpected degraded canvas %v", out.Canvas.Bounds())
	}
}

func TestComposeExhausted(t *testing.T) {
	tiny := tierTest
	tiny.MaxPixels = 1000
	tinySmall := tierTestSmall
	tinySmall.MaxPixels = 1000

	comp := testCompositor(tiny)

	_, err := comp.Compose(testSource("image/png"), testSelection, testTarget)
	if !errors.Is(err, truescale.ErrResourceExhausted) {
		t.Errorf("expected exhaustion without fallback, got %v", err)
	}

	comp.Fallback = &tinySmall
	out, err := comp.Compose(testSource("image/png"), testSelection, testTarget)
	if !errors.Is(err, truescale.ErrResourceExhausted) || out != nil {
		t.Errorf("expected exhaustion after one retry, got %v", err)
	}

	if !strings.Contains(err.Error(), "smaller image") {
		t.Errorf("expected a hint in %q", err.Error())
	}
}

// brokenImage fails while being read, like a raster that could not be
// allocated.
type brokenImage struct {
	image.Image
	pix []color.RGBA
}

func (bi *brokenImage) At(x, y int) color.Color {
	return bi.pix[x+y*1000]
}

func TestComposeRecoversRasterPanic(t *testing.T) {
	src := testSource("image/png")
	src.Image = &brokenImage{Image: src.Image}

	comp := testCompositor(tierTest)
	comp.Fallback = &tierTestSmall

	out, err := comp.Compose(src, testSelection, testTarget)
	if !errors.Is(err, truescale.ErrResourceExhausted) || out != nil {
		t.Errorf("expected ErrResourceExhausted, got %v", err)
	}
}

// hugeImage panics the way image.NewRGBA does on an oversized rectangle.
type hugeImage struct {
	image.Image
}

func (hi *hugeImage) At(x, y int) color.Color {
	panic("image: NewRGBA Rectangle has huge or negative dimensions")
}

func TestComposeRecoversStringPanic(t *testing.T) {
	src := testSource("image/png")
	src.Image = &hugeImage{Image: src.Image}

	comp := testCompositor(tierTest)
	comp.Fallback = &tierTestSmall

	out, err := comp.Compose(src, testSelection, testTarget)
	if !errors.Is(err, truescale.ErrResourceExhausted) || out != nil {
		t.Errorf("expected ErrResourceExhausted, got %v", err)
	}
}

func TestSessionScale(t *testing.T) {
	comp := testCompositor(tierTest)
	measure := truescale.MeasurerFunc(func() (float64, float64) { return 400, 300 })

	sess := truescale.NewSession(comp, measure, nil)
	err := sess.Load(testSource("image/jpeg"))
	if err != nil {
		t.Fatal(err)
	}

	// 100x75 display pixels is 10x7.5 native pixels
	err = sess.BeginDrag(pixel.V(100, 100))
	if err != nil {
		t.Fatal(err)
	}
	sess.MoveDrag(pixel.V(200, 175))
	if _, ok := sess.EndDrag(); !ok {
		t.Fatal("selection not finalized")
	}

	err = sess.SetTarget(testTarget)
	if err != nil {
		t.Fatal(err)
	}

	out, err := sess.Scale()
	if err != nil {
		t.Fatal(err)
	}

	if sess.State() != truescale.StateScaled || sess.Output() != out {
		t.Errorf("session not scaled: %v", sess.State())
	}

	if math.Abs(out.Layout.Scale-5) > 1e-9 || out.Encoded.MIME != "image/jpeg" {
		t.Errorf("unexpected output scale %v mime %v", out.Layout.Scale, out.Encoded.MIME)
	}
}
