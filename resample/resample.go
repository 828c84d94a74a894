//
// Copyright (c) 2020 Jason S. McMullan <jason.mcmullan@gmail.com>
//

// Package resample scales images in one, two or three geometric steps so
// that large magnifications stay sharp.
package resample

import (
	"fmt"
	"image"
	"image/color"
	"io"
	"log/slog"
	"math"

	"github.com/disintegration/imaging"
	"golang.org/x/image/draw"

	"github.com/ezrec/truescale"
)

// Pass is one resampling step
type Pass struct {
	Step float64     // Fraction of the total scale reached by this pass
	Size image.Point // Output size of this pass
}

// Plan lists the passes for one scale operation; the last pass is the
// final destination size.
type Plan struct {
	Scale  float64
	Passes []Pass
}

// PassCount is the number of passes the ladder uses for factor s.
func PassCount(s float64) int {
	switch {
	case s <= truescale.TwoPassThreshold:
		return 1
	case s <= truescale.ThreePassThreshold:
		return 2
	default:
		return 3
	}
}

func scaledPoint(src image.Point, step float64) image.Point {
	x := int(math.Round(float64(src.X) * step))
	y := int(math.Round(float64(src.Y) * step))
	if x < 1 {
		x = 1
	}
	if y < 1 {
		y = 1
	}
	return image.Pt(x, y)
}

// NewPlan plans the scaling of an image of size src by s into a
// destination of size dst. Intermediate pass k of n is sized src * s^(k/n).
func NewPlan(src image.Point, dst image.Point, s float64, multiPass bool) (plan Plan) {
	n := 1
	if multiPass {
		n = PassCount(s)
	}

	plan.Scale = s
	for k := 1; k < n; k++ {
		step := math.Pow(s, float64(k)/float64(n))
		plan.Passes = append(plan.Passes, Pass{Step: step, Size: scaledPoint(src, step)})
	}
	plan.Passes = append(plan.Passes, Pass{Step: s, Size: dst})

	return
}

// Intermediates are the passes drawn into temporary canvases.
func (plan Plan) Intermediates() []Pass {
	if len(plan.Passes) == 0 {
		return nil
	}
	return plan.Passes[:len(plan.Passes)-1]
}

// PeakPixels is the most temporary pixels alive at once: a pass and the
// intermediate it reads from.
func (plan Plan) PeakPixels() (peak int64) {
	var prev int64
	for _, pass := range plan.Intermediates() {
		here := int64(pass.Size.X) * int64(pass.Size.Y)
		if prev+here > peak {
			peak = prev + here
		}
		prev = here
	}

	return
}

// Kernel maps a kernel name to its interpolator.
func Kernel(name string) (interp draw.Interpolator, err error) {
	switch name {
	case truescale.KernelNearest:
		interp = draw.NearestNeighbor
	case truescale.KernelApproxBiLinear:
		interp = draw.ApproxBiLinear
	case truescale.KernelBiLinear:
		interp = draw.BiLinear
	case truescale.KernelCatmullRom, "":
		interp = draw.CatmullRom
	default:
		err = fmt.Errorf("resampling kernel '%s' unknown", name)
	}

	return
}

// Resampler runs a Plan. Temporary canvases never outlive one Scale call.
type Resampler struct {
	Interpolator draw.Interpolator
	MultiPass    bool
	Progressor   truescale.Progressor
	Logger       *slog.Logger
}

// New returns a resampler configured for the tier
func New(tier truescale.Tier) (rs *Resampler, err error) {
	interp, err := Kernel(tier.Kernel)
	if err != nil {
		return
	}

	rs = &Resampler{
		Interpolator: interp,
		MultiPass:    tier.MultiPass,
		Logger:       slog.New(slog.NewTextHandler(io.Discard, nil)),
	}

	return
}

// release shrinks a temporary canvas so its pixels can be collected.
func release(canvas *image.NRGBA) {
	canvas.Pix = nil
	canvas.Stride = 0
	canvas.Rect = image.Rectangle{}
}

// Scale draws src, scaled by s, into the rectangle dr of dst.
func (rs *Resampler) Scale(dst draw.Image, dr image.Rectangle, src image.Image, s float64) (plan Plan, err error) {
	if !(s > 0) || math.IsInf(s, 0) {
		err = fmt.Errorf("scale factor %v out of range", s)
		return
	}

	if dr.Empty() {
		err = fmt.Errorf("empty destination %v", dr)
		return
	}

	plan = NewPlan(src.Bounds().Size(), dr.Size(), s, rs.MultiPass)
	rs.Logger.Info("resample", "scale", s, "passes", len(plan.Passes))

	prog := truescale.NewProgressWith(rs.Progressor, len(plan.Passes))
	defer prog.Close()

	cur := src
	var temp *image.NRGBA
	for _, pass := range plan.Intermediates() {
		canvas := imaging.New(pass.Size.X, pass.Size.Y, color.White)
		rs.Interpolator.Scale(canvas, canvas.Bounds(), cur, cur.Bounds(), draw.Over, nil)
		if temp != nil {
			release(temp)
		}
		temp = canvas
		cur = canvas
		rs.Logger.Debug("resample pass", "step", pass.Step, "width", pass.Size.X, "height", pass.Size.Y)
		prog.Indicate()
	}

	rs.Interpolator.Scale(dst, dr, cur, cur.Bounds(), draw.Over, nil)
	if temp != nil {
		release(temp)
	}
	prog.Indicate()

	return
}
