//
// Copyright (c) 2020 Jason S. McMullan <jason.mcmullan@gmail.com>
//

package truescale

import (
	"errors"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func TestToNative(t *testing.T) {
	native := Size{X: 4000, Y: 3000}

	table := map[string]struct {
		sel      DisplayRect
		displayW float64
		displayH float64
		expected NativeRect
	}{
		"scenario": {
			sel:      DisplayRect{Left: 100, Top: 100, Width: 200, Height: 150},
			displayW: 800, displayH: 600,
			expected: NativeRect{Left: 500, Top: 500, Width: 1000, Height: 750},
		},
		"full": {
			sel:      DisplayRect{Width: 800, Height: 600},
			displayW: 800, displayH: 600,
			expected: NativeRect{Width: 4000, Height: 3000},
		},
		"native": {
			sel:      DisplayRect{Left: 12, Top: 34, Width: 56, Height: 78},
			displayW: 4000, displayH: 3000,
			expected: NativeRect{Left: 12, Top: 34, Width: 56, Height: 78},
		},
		"stretched": {
			sel:      DisplayRect{Left: 10, Top: 10, Width: 20, Height: 20},
			displayW: 400, displayH: 600,
			expected: NativeRect{Left: 100, Top: 50, Width: 200, Height: 100},
		},
	}

	for key, item := range table {
		got, err := ToNative(item.sel, item.displayW, item.displayH, native)
		if err != nil {
			t.Errorf("%v: %v", key, err)
			continue
		}

		if diff := cmp.Diff(item.expected, got, cmpopts.EquateApprox(0, 1e-9)); diff != "" {
			t.Errorf("%v: (-want +got):\n%s", key, diff)
		}
	}
}

func TestToNativeProportions(t *testing.T) {
	native := Size{X: 3264, Y: 2448}
	for _, display := range [][2]float64{{816, 612}, {1024, 768}, {333.3, 249.97}, {3264, 2448}} {
		sel := DisplayRect{Left: display[0] / 7, Top: display[1] / 5, Width: display[0] / 3, Height: display[1] / 4}

		rect, err := ToNative(sel, display[0], display[1], native)
		if err != nil {
			t.Fatal(err)
		}

		if math.Abs(rect.Left/float64(native.X)-sel.Left/display[0]) > 1e-12 ||
			math.Abs(rect.Width/float64(native.X)-sel.Width/display[0]) > 1e-12 ||
			math.Abs(rect.Top/float64(native.Y)-sel.Top/display[1]) > 1e-12 ||
			math.Abs(rect.Height/float64(native.Y)-sel.Height/display[1]) > 1e-12 {
			t.Errorf("%v: proportions not kept: %+v", display, rect)
		}

		back, err := ToDisplay(rect, display[0], display[1], native)
		if err != nil {
			t.Fatal(err)
		}

		if diff := cmp.Diff(sel, back, cmpopts.EquateApprox(0, 1e-9)); diff != "" {
			t.Errorf("%v: round trip (-want +got):\n%s", display, diff)
		}
	}
}

func TestToNativeNotReady(t *testing.T) {
	sel := DisplayRect{Width: 10, Height: 10}

	table := map[string]struct {
		w, h   float64
		native Size
	}{
		"no-layout":    {0, 0, Size{X: 10, Y: 10}},
		"zero-height":  {100, 0, Size{X: 10, Y: 10}},
		"nan":          {math.NaN(), 100, Size{X: 10, Y: 10}},
		"empty-native": {100, 100, Size{}},
	}

	for key, item := range table {
		_, err := ToNative(sel, item.w, item.h, item.native)
		if !errors.Is(err, ErrNotReady) {
			t.Errorf("%v: expected ErrNotReady, got %v", key, err)
		}
	}
}
