//
// Copyright (c) 2020 Jason S. McMullan <jason.mcmullan@gmail.com>
//

package main

import (
	"fmt"

	"github.com/spf13/pflag"

	"github.com/ezrec/truescale"
)

type ScaleCommand struct {
	*pflag.FlagSet
}

func NewScaleCommand() (cmd *ScaleCommand) {
	cmd = &ScaleCommand{
		FlagSet: pflag.NewFlagSet("scale", pflag.ContinueOnError),
	}

	cmd.SetInterspersed(false)

	return
}

func (cmd *ScaleCommand) Positional() []string {
	return nil
}

func (cmd *ScaleCommand) Run(host *Host, args []string) (err error) {
	out, err := host.Session.Scale()
	if err != nil {
		return
	}

	layout := &out.Layout
	fmt.Fprintf(host.Stdout, "Scale: %.4g (%.4g by width, %.4g by height), %v passes, %v tier\n",
		layout.Scale, layout.ScaleByWidth, layout.ScaleByHeight, out.Passes, out.Tier)
	fmt.Fprintf(host.Stdout, "Page: %v, %vx%v pixels at %.0f DPI, image at %v\n",
		layout.Page.Name, layout.Pixels.X, layout.Pixels.Y,
		layout.PPMM*truescale.MillimetersPerInch, layout.Image)
	fmt.Fprintf(host.Stdout, "Output: %v, %v bytes\n", out.Encoded.MIME, len(out.Encoded.Data))

	return
}
