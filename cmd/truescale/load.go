//
// Copyright (c) 2020 Jason S. McMullan <jason.mcmullan@gmail.com>
//

package main

import (
	"fmt"
	"os"

	"github.com/spf13/pflag"

	"github.com/ezrec/truescale"
)

type LoadCommand struct {
	*pflag.FlagSet
}

func NewLoadCommand() (cmd *LoadCommand) {
	cmd = &LoadCommand{
		FlagSet: pflag.NewFlagSet("load", pflag.ContinueOnError),
	}

	cmd.SetInterspersed(false)

	return
}

func (cmd *LoadCommand) Positional() []string {
	return []string{"FILE"}
}

func (cmd *LoadCommand) Run(host *Host, args []string) (err error) {
	reader, err := os.Open(args[0])
	if err != nil {
		return
	}
	defer func() { reader.Close() }()

	src, err := truescale.DecodeSource(reader)
	if err != nil {
		err = fmt.Errorf("%s: %w", args[0], err)
		return
	}

	err = host.Session.Load(src)
	if err != nil {
		return
	}

	fmt.Fprintf(host.Stdout, "Loaded: %v, %vx%v pixels (%v)\n", args[0], src.Native.X, src.Native.Y, src.MIME)

	return
}
