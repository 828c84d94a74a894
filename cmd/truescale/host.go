//
// Copyright (c) 2020 Jason S. McMullan <jason.mcmullan@gmail.com>
//

package main

import (
	"fmt"
	"io"
	"log/slog"
	"strconv"

	"github.com/ezrec/truescale"
)

// Host stands in for the interactive page: it owns the session and
// reports the size the image is displayed at.
type Host struct {
	Session *truescale.Session
	Logger  *slog.Logger
	Stdout  io.Writer

	displayWidth  float64
	displayHeight float64
}

func NewHost(comp truescale.Compositor, logger *slog.Logger, stdout io.Writer) (host *Host) {
	host = &Host{
		Logger: logger,
		Stdout: stdout,
	}

	host.Session = truescale.NewSession(comp, host, logger)
	host.Session.AddListener(func(prev, next truescale.State) {
		if next == truescale.StateLoaded && prev >= truescale.StateSelected {
			fmt.Fprintln(host.Stdout, "Selection: cleared")
		}
	})

	return
}

// DisplaySize is the size set by the display command, or the native
// size of the image when none was set.
func (host *Host) DisplaySize() (width, height float64) {
	if host.displayWidth > 0 && host.displayHeight > 0 {
		return host.displayWidth, host.displayHeight
	}

	src := host.Session.Source()
	if src == nil {
		return
	}

	return float64(src.Native.X), float64(src.Native.Y)
}

func (host *Host) SetDisplaySize(width, height float64) {
	host.displayWidth = width
	host.displayHeight = height
}

// parseFloats parses one positional argument per name
func parseFloats(names []string, args []string) (values []float64, err error) {
	for n, name := range names {
		var value float64
		value, err = strconv.ParseFloat(args[n], 64)
		if err != nil {
			err = &truescale.ValidationError{Field: name, Reason: fmt.Sprintf("'%s' is not a number", args[n])}
			return
		}
		values = append(values, value)
	}

	return
}
