//
// Copyright (c) 2020 Jason S. McMullan <jason.mcmullan@gmail.com>
//

package main

import (
	"github.com/spf13/pflag"

	"github.com/ezrec/truescale"
)

type DisplayCommand struct {
	*pflag.FlagSet

	Native bool
}

func NewDisplayCommand() (cmd *DisplayCommand) {
	cmd = &DisplayCommand{
		FlagSet: pflag.NewFlagSet("display", pflag.ContinueOnError),
	}

	cmd.BoolVarP(&cmd.Native, "native", "n", false, "Display at the native image size, ignoring W and H")
	cmd.SetInterspersed(false)

	return
}

func (cmd *DisplayCommand) Positional() []string {
	return []string{"W", "H"}
}

func (cmd *DisplayCommand) Run(host *Host, args []string) (err error) {
	if cmd.Native {
		host.SetDisplaySize(0, 0)
		return
	}

	size, err := parseFloats([]string{"display width", "display height"}, args)
	if err != nil {
		return
	}

	for n, field := range []string{"display width", "display height"} {
		if !(size[n] > 0) {
			err = &truescale.ValidationError{Field: field, Reason: "must be greater than 0"}
			return
		}
	}

	host.SetDisplaySize(size[0], size[1])
	host.Logger.Debug("display", "width", size[0], "height", size[1])

	return
}
