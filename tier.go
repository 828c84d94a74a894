//
// Copyright (c) 2020 Jason S. McMullan <jason.mcmullan@gmail.com>
//

package truescale

import (
	"fmt"
	"sort"
	"strings"
)

// Resampling kernel names, mapped to interpolators by package resample
const (
	KernelNearest        = "nearest"
	KernelApproxBiLinear = "approx-bilinear"
	KernelBiLinear       = "bilinear"
	KernelCatmullRom     = "catmull-rom"
)

// Tier is the resource class the host environment runs in. The compositor
// uses it for resolution, resampling strategy, encode quality and the
// largest raster it may allocate.
type Tier struct {
	Name        string
	DPI         float64 // Nominal print resolution
	CanvasScale float64 // Extra scale-down applied to the page canvas
	MultiPass   bool    // Use the 1/2/3 pass resampling ladder
	Kernel      string  // Resampling kernel name
	Quality     int     // Encode quality for lossy formats, 1..100
	MaxPixels   int64   // Peak live pixels allowed during one compose
	Fallback    string  // Tier to retry with once on resource exhaustion
}

var (
	TierHighFidelity = Tier{
		Name:        "high",
		DPI:         DefaultDPI,
		CanvasScale: 1.0,
		MultiPass:   true,
		Kernel:      KernelCatmullRom,
		Quality:     100,
		MaxPixels:   400_000_000,
		Fallback:    "constrained",
	}

	TierConstrained = Tier{
		Name:        "constrained",
		DPI:         300,
		CanvasScale: 0.5,
		MultiPass:   false,
		Kernel:      KernelApproxBiLinear,
		Quality:     85,
		MaxPixels:   16_000_000,
	}

	tiers = map[string]Tier{}
)

// PixelsPerMillimeter is the effective canvas resolution of the tier.
func (tier Tier) PixelsPerMillimeter() float64 {
	scale := tier.CanvasScale
	if scale <= 0 {
		scale = 1
	}
	return PixelsPerMillimeter(tier.DPI) * scale
}

// EffectiveDPI is the resolution actually written to the output.
func (tier Tier) EffectiveDPI() float64 {
	return tier.PixelsPerMillimeter() * MillimetersPerInch
}

func RegisterTier(tier Tier) (err error) {
	key := strings.ToLower(tier.Name)
	_, ok := tiers[key]
	if ok {
		err = fmt.Errorf("tier '%s' already registered", tier.Name)
		return
	}

	tiers[key] = tier

	return
}

func TierByName(name string) (tier Tier, err error) {
	tier, ok := tiers[strings.ToLower(name)]
	if !ok {
		err = ErrUnknownTier(name)
	}

	return
}

func TierNames() (names []string) {
	for _, tier := range tiers {
		names = append(names, tier.Name)
	}
	sort.Strings(names)

	return
}

func init() {
	RegisterTier(TierHighFidelity)
	RegisterTier(TierConstrained)
}
