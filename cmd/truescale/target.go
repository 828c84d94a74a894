//
// Copyright (c) 2020 Jason S. McMullan <jason.mcmullan@gmail.com>
//

package main

import (
	"fmt"

	"github.com/spf13/pflag"

	"github.com/ezrec/truescale"
)

type TargetCommand struct {
	*pflag.FlagSet

	WidthMM  float64
	HeightMM float64
}

func NewTargetCommand() (cmd *TargetCommand) {
	cmd = &TargetCommand{
		FlagSet: pflag.NewFlagSet("target", pflag.ContinueOnError),
	}

	cmd.Float64VarP(&cmd.WidthMM, "width-mm", "w", 0.0, "Physical width of the selection, in millimeters")
	cmd.Float64VarP(&cmd.HeightMM, "height-mm", "h", 0.0, "Physical height of the selection, in millimeters")
	cmd.SetInterspersed(false)

	return
}

func (cmd *TargetCommand) Positional() []string {
	return nil
}

// Run sets the physical size. When only one dimension is given the other
// follows the selection's aspect ratio.
func (cmd *TargetCommand) Run(host *Host, args []string) (err error) {
	var target truescale.PhysicalTarget

	switch {
	case cmd.Changed("width-mm") && cmd.Changed("height-mm"):
		target = truescale.PhysicalTarget{WidthMM: cmd.WidthMM, HeightMM: cmd.HeightMM}
	case cmd.Changed("width-mm"):
		target, err = host.Session.SyncWidth(cmd.WidthMM)
	case cmd.Changed("height-mm"):
		target, err = host.Session.SyncHeight(cmd.HeightMM)
	default:
		err = &truescale.ValidationError{Field: "target", Reason: "--width-mm or --height-mm required"}
	}
	if err != nil {
		return
	}

	err = host.Session.SetTarget(target)
	if err != nil {
		return
	}

	fmt.Fprintf(host.Stdout, "Target: %.2f x %.2f mm\n", target.WidthMM, target.HeightMM)

	return
}
