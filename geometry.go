//
// Copyright (c) 2020 Jason S. McMullan <jason.mcmullan@gmail.com>
//

package truescale

import (
	"fmt"

	"github.com/faiface/pixel"
)

// displayMatrix maps display pixels onto native pixels.
func displayMatrix(displayW, displayH float64, native Size) (mat pixel.Matrix, err error) {
	if !(displayW > 0) || !(displayH > 0) {
		err = fmt.Errorf("display size %vx%v: %w", displayW, displayH, ErrNotReady)
		return
	}

	if native.X <= 0 || native.Y <= 0 {
		err = fmt.Errorf("native size %vx%v: %w", native.X, native.Y, ErrNotReady)
		return
	}

	ratio := pixel.V(float64(native.X)/displayW, float64(native.Y)/displayH)
	mat = pixel.IM.ScaledXY(pixel.ZV, ratio)

	return
}

// ToNative converts a selection made on the displayed image into the
// image's native pixel grid. displayW and displayH must be measured just
// before the call.
func ToNative(sel DisplayRect, displayW, displayH float64, native Size) (rect NativeRect, err error) {
	mat, err := displayMatrix(displayW, displayH, native)
	if err != nil {
		return
	}

	r := pixel.Rect{
		Min: mat.Project(pixel.V(sel.Left, sel.Top)),
		Max: mat.Project(pixel.V(sel.Left+sel.Width, sel.Top+sel.Height)),
	}.Norm()

	rect = NativeRect{Left: r.Min.X, Top: r.Min.Y, Width: r.W(), Height: r.H()}

	return
}

// ToDisplay is the inverse of ToNative, used to redraw a selection after
// the displayed image was resized.
func ToDisplay(rect NativeRect, displayW, displayH float64, native Size) (sel DisplayRect, err error) {
	mat, err := displayMatrix(displayW, displayH, native)
	if err != nil {
		return
	}

	r := pixel.Rect{
		Min: mat.Unproject(pixel.V(rect.Left, rect.Top)),
		Max: mat.Unproject(pixel.V(rect.Left+rect.Width, rect.Top+rect.Height)),
	}.Norm()

	sel = DisplayRect{Left: r.Min.X, Top: r.Min.Y, Width: r.W(), Height: r.H()}

	return
}
