//
// Copyright (c) 2020 Jason S. McMullan <jason.mcmullan@gmail.com>
//

package main

import (
	"fmt"

	"github.com/faiface/pixel"
	"github.com/spf13/pflag"

	"github.com/ezrec/truescale"
)

type DragCommand struct {
	*pflag.FlagSet

	Via []float64
}

func NewDragCommand() (cmd *DragCommand) {
	cmd = &DragCommand{
		FlagSet: pflag.NewFlagSet("drag", pflag.ContinueOnError),
	}

	cmd.Float64SliceVarP(&cmd.Via, "via", "v", nil, "Pointer positions X,Y,... passed through before the end point")
	cmd.SetInterspersed(false)

	return
}

func (cmd *DragCommand) Positional() []string {
	return []string{"X0", "Y0", "X1", "Y1"}
}

func (cmd *DragCommand) Run(host *Host, args []string) (err error) {
	pos, err := parseFloats(cmd.Positional(), args)
	if err != nil {
		return
	}

	if len(cmd.Via)%2 != 0 {
		err = &truescale.ValidationError{Field: "via", Reason: "needs X,Y pairs"}
		return
	}

	err = host.Session.BeginDrag(pixel.V(pos[0], pos[1]))
	if err != nil {
		return
	}

	for n := 0; n < len(cmd.Via); n += 2 {
		sel, _ := host.Session.MoveDrag(pixel.V(cmd.Via[n], cmd.Via[n+1]))
		host.Logger.Debug("drag", "left", sel.Left, "top", sel.Top, "width", sel.Width, "height", sel.Height)
	}
	host.Session.MoveDrag(pixel.V(pos[2], pos[3]))

	sel, ok := host.Session.EndDrag()
	if !ok {
		fmt.Fprintf(host.Stdout, "Selection: too small, needs more than %vx%v display pixels\n",
			truescale.MinSelectionPixels, truescale.MinSelectionPixels)
		return
	}

	rect, err := host.Session.NativeSelection()
	if err != nil {
		return
	}

	fmt.Fprintf(host.Stdout, "Selection: %.1fx%.1f at %.1f,%.1f display, %.1fx%.1f at %.1f,%.1f native\n",
		sel.Width, sel.Height, sel.Left, sel.Top,
		rect.Width, rect.Height, rect.Left, rect.Top)

	return
}

type ClickCommand struct {
	*pflag.FlagSet
}

func NewClickCommand() (cmd *ClickCommand) {
	cmd = &ClickCommand{
		FlagSet: pflag.NewFlagSet("click", pflag.ContinueOnError),
	}

	cmd.SetInterspersed(false)

	return
}

func (cmd *ClickCommand) Positional() []string {
	return []string{"X", "Y"}
}

func (cmd *ClickCommand) Run(host *Host, args []string) (err error) {
	pos, err := parseFloats(cmd.Positional(), args)
	if err != nil {
		return
	}

	host.Session.ClickAt(pixel.V(pos[0], pos[1]))

	return
}

type ClearCommand struct {
	*pflag.FlagSet
}

func NewClearCommand() (cmd *ClearCommand) {
	cmd = &ClearCommand{
		FlagSet: pflag.NewFlagSet("clear", pflag.ContinueOnError),
	}

	cmd.SetInterspersed(false)

	return
}

func (cmd *ClearCommand) Positional() []string {
	return nil
}

func (cmd *ClearCommand) Run(host *Host, args []string) (err error) {
	host.Session.Cancel()

	return
}
