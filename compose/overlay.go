//
// Copyright (c) 2020 Jason S. McMullan <jason.mcmullan@gmail.com>
//

package compose

import (
	"image"
	"image/color"
	"math"
	"sync"

	"github.com/fogleman/gg"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"github.com/ezrec/truescale"
)

var (
	regularOnce sync.Once
	regularFont *opentype.Font
	regularErr  error
)

func loadRegular() (*opentype.Font, error) {
	regularOnce.Do(func() {
		regularFont, regularErr = opentype.Parse(goregular.TTF)
	})

	return regularFont, regularErr
}

func millimeters(mm float64) number.Formatter {
	return number.Decimal(mm, number.MaxFractionDigits(2))
}

// instructionLines are the three lines printed next to the calibration
// square.
func instructionLines(printer *message.Printer, target truescale.PhysicalTarget) []string {
	side := millimeters(truescale.CalibrationSquareMM)

	return []string{
		printer.Sprintf("Calibration square: %v mm × %v mm", side, side),
		printer.Sprintf("Selected area: %v mm × %v mm", millimeters(target.WidthMM), millimeters(target.HeightMM)),
		printer.Sprintf("Print with \"Fit to page\" enabled"),
	}
}

// drawCalibration strokes the calibration square with its outer edge on
// layout.Calibration, and writes lines to its right. The lines share the
// square's height.
func drawCalibration(canvas *image.RGBA, layout truescale.Layout, lines []string) (err error) {
	rect := layout.Calibration
	side := float64(rect.Dx())
	if side <= 0 {
		return
	}

	dc := gg.NewContextForRGBA(canvas)
	dc.SetColor(color.Black)

	width := math.Max(1, side/50)
	dc.SetLineWidth(width)
	dc.DrawRectangle(float64(rect.Min.X)+width/2, float64(rect.Min.Y)+width/2, side-width, side-width)
	dc.Stroke()

	if len(lines) == 0 {
		return
	}

	f, err := loadRegular()
	if err != nil {
		return
	}

	lineHeight := side / float64(len(lines))
	face, err := opentype.NewFace(f, &opentype.FaceOptions{
		Size:    math.Max(1, lineHeight*0.8),
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return
	}
	defer face.Close()

	dc.SetFontFace(face)

	x := float64(rect.Max.X) + side/4
	for n, line := range lines {
		baseline := float64(rect.Min.Y) + lineHeight*float64(n+1) - lineHeight*0.25
		dc.DrawString(line, x, baseline)
	}

	return
}
