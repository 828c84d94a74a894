//
// Copyright (c) 2020 Jason S. McMullan <jason.mcmullan@gmail.com>
//

package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/pflag"

	"github.com/ezrec/truescale"
)

type SaveCommand struct {
	*pflag.FlagSet

	DataURL bool
}

func NewSaveCommand() (cmd *SaveCommand) {
	cmd = &SaveCommand{
		FlagSet: pflag.NewFlagSet("save", pflag.ContinueOnError),
	}

	cmd.BoolVarP(&cmd.DataURL, "data-url", "d", false, "Write the output as a data URL")
	cmd.SetInterspersed(false)

	return
}

func (cmd *SaveCommand) Positional() []string {
	return []string{"FILE"}
}

// Run writes the last scaled page to FILE, or to stdout for '-'.
func (cmd *SaveCommand) Run(host *Host, args []string) (err error) {
	out := host.Session.Output()
	if out == nil {
		err = fmt.Errorf("save: no scaled output: %w", truescale.ErrNotReady)
		return
	}

	var writer io.Writer = host.Stdout
	if args[0] != "-" {
		var file *os.File
		file, err = os.Create(args[0])
		if err != nil {
			return
		}
		defer func() {
			cerr := file.Close()
			if err == nil {
				err = cerr
			}
		}()
		writer = file
	}

	if cmd.DataURL {
		_, err = io.WriteString(writer, out.Encoded.DataURL())
	} else {
		_, err = writer.Write(out.Encoded.Data)
	}
	if err != nil {
		return
	}

	host.Logger.Info("saved", "file", args[0], "mime", out.Encoded.MIME, "bytes", len(out.Encoded.Data))

	return
}
