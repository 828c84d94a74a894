//
// Copyright (c) 2020 Jason S. McMullan <jason.mcmullan@gmail.com>
//

// Package config loads the tier, page and locale selection from a JSON file
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"golang.org/x/text/language"

	"github.com/ezrec/truescale"
	"github.com/ezrec/truescale/compose"
	"github.com/ezrec/truescale/resample"
)

const DefaultPath = "truescale.json"

// TierOverride replaces the non-zero settings of a registered tier
type TierOverride struct {
	DPI         float64 `json:"dpi,omitempty"`
	CanvasScale float64 `json:"canvas_scale,omitempty"`
	MultiPass   *bool   `json:"multi_pass,omitempty"`
	Kernel      string  `json:"kernel,omitempty"`
	Quality     int     `json:"quality,omitempty"`
	MaxPixels   int64   `json:"max_pixels,omitempty"`
	Fallback    *string `json:"fallback,omitempty"`
}

// Config selects how the host environment renders pages. Fields may be
// loaded from a JSON file and overridden by command-line flags.
type Config struct {
	Tier   string                  `json:"tier"`
	Page   string                  `json:"page"`
	Policy string                  `json:"policy"`
	Locale string                  `json:"locale"`
	Tiers  map[string]TierOverride `json:"tiers,omitempty"`
}

func DefaultConfig() *Config {
	return &Config{
		Tier:   truescale.TierHighFidelity.Name,
		Page:   truescale.PageA4.Name,
		Policy: truescale.ScaleFitPage.String(),
		Locale: language.English.String(),
	}
}

// Validate fills in empty names and clamps overrides to safe ranges. It
// fails on names that do not resolve.
func (c *Config) Validate() (err error) {
	def := DefaultConfig()
	if c.Tier == "" {
		c.Tier = def.Tier
	}
	if c.Page == "" {
		c.Page = def.Page
	}
	if c.Policy == "" {
		c.Policy = def.Policy
	}
	if c.Locale == "" {
		c.Locale = def.Locale
	}

	for name, over := range c.Tiers {
		if over.DPI < 0 {
			over.DPI = 0
		}
		if over.CanvasScale < 0 || over.CanvasScale > 1 {
			over.CanvasScale = 0
		}
		if over.Quality < 0 {
			over.Quality = 0
		}
		if over.Quality > 100 {
			over.Quality = 100
		}
		if over.MaxPixels < 0 {
			over.MaxPixels = 0
		}
		c.Tiers[name] = over
	}

	_, err = c.ResolveTier(c.Tier)
	if err != nil {
		return
	}

	_, err = c.ResolvePage()
	if err != nil {
		return
	}

	_, err = c.ResolvePolicy()
	if err != nil {
		return
	}

	_, err = c.Language()

	return
}

// ResolveTier returns the registered tier with its override applied
func (c *Config) ResolveTier(name string) (tier truescale.Tier, err error) {
	tier, err = truescale.TierByName(name)
	if err != nil {
		return
	}

	over, ok := c.Tiers[tier.Name]
	if !ok {
		return
	}

	if over.DPI > 0 {
		tier.DPI = over.DPI
	}
	if over.CanvasScale > 0 {
		tier.CanvasScale = over.CanvasScale
	}
	if over.MultiPass != nil {
		tier.MultiPass = *over.MultiPass
	}
	if over.Kernel != "" {
		_, err = resample.Kernel(over.Kernel)
		if err != nil {
			err = fmt.Errorf("tier %s: %w", tier.Name, err)
			return
		}
		tier.Kernel = over.Kernel
	}
	if over.Quality > 0 {
		tier.Quality = over.Quality
	}
	if over.MaxPixels > 0 {
		tier.MaxPixels = over.MaxPixels
	}
	if over.Fallback != nil {
		tier.Fallback = *over.Fallback
	}

	return
}

func (c *Config) ResolvePage() (page truescale.PageSize, err error) {
	return truescale.PageByName(c.Page)
}

func (c *Config) ResolvePolicy() (policy truescale.ScalePolicy, err error) {
	return truescale.ParseScalePolicy(c.Policy)
}

func (c *Config) Language() (tag language.Tag, err error) {
	tag, err = language.Parse(c.Locale)
	if err != nil {
		err = fmt.Errorf("locale '%s': %w", c.Locale, err)
	}

	return
}

// NewCompositor builds the compositor for the selected tier. The
// fallback tier gets its override too.
func (c *Config) NewCompositor(logger *slog.Logger) (comp *compose.Compositor, err error) {
	tier, err := c.ResolveTier(c.Tier)
	if err != nil {
		return
	}

	comp, err = compose.NewCompositor(tier, logger)
	if err != nil {
		return
	}

	if tier.Fallback != "" {
		var fallback truescale.Tier
		fallback, err = c.ResolveTier(tier.Fallback)
		if err != nil {
			comp = nil
			return
		}
		comp.Fallback = &fallback
	}

	comp.Page, err = c.ResolvePage()
	if err != nil {
		comp = nil
		return
	}

	comp.Policy, err = c.ResolvePolicy()
	if err != nil {
		comp = nil
		return
	}

	comp.Locale, err = c.Language()
	if err != nil {
		comp = nil
		return
	}

	return
}

// Load reads the configuration from path. A missing file yields the
// defaults.
func Load(path string) (cfg *Config, err error) {
	cfg = DefaultConfig()

	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			err = nil
		}
		return
	}
	defer f.Close()

	err = json.NewDecoder(f).Decode(cfg)
	if err != nil {
		err = fmt.Errorf("%s: %w", path, err)
		return
	}

	err = cfg.Validate()
	if err != nil {
		err = fmt.Errorf("%s: %w", path, err)
	}

	return
}

// Save writes the configuration to path as indented JSON
func (c *Config) Save(path string) (err error) {
	err = c.Validate()
	if err != nil {
		return
	}

	f, err := os.Create(path)
	if err != nil {
		return
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	err = enc.Encode(c)

	return
}
