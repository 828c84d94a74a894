//
// Copyright (c) 2020 Jason S. McMullan <jason.mcmullan@gmail.com>
//

// Command truescale scales a selected region of an image to a true
// physical size on a printable page.
package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sort"
	"strings"

	"github.com/spf13/pflag"

	"github.com/ezrec/truescale"
	"github.com/ezrec/truescale/config"
	_ "github.com/ezrec/truescale/jpegdpi"
	_ "github.com/ezrec/truescale/pngdpi"
)

// Command is one step of a command chain
type Command interface {
	Parse(arguments []string) error
	Args() []string
	FlagUsages() string
	Positional() []string
	Run(host *Host, args []string) error
}

type Verb struct {
	NewCommand  func() Command
	Description string
}

var VerbMap = map[string]Verb{
	"load":    {func() Command { return NewLoadCommand() }, "Load an image"},
	"display": {func() Command { return NewDisplayCommand() }, "Set the size the image is displayed at"},
	"drag":    {func() Command { return NewDragCommand() }, "Drag a selection in display pixels"},
	"click":   {func() Command { return NewClickCommand() }, "Click; outside the selection clears it"},
	"clear":   {func() Command { return NewClearCommand() }, "Clear the selection"},
	"target":  {func() Command { return NewTargetCommand() }, "Set the physical size of the selection"},
	"scale":   {func() Command { return NewScaleCommand() }, "Render the page at true scale"},
	"save":    {func() Command { return NewSaveCommand() }, "Save the rendered page"},
}

type options struct {
	configPath  string
	writeConfig bool
	tier        string
	page        string
	policy      string
	locale      string
	dpi         float64
	logLevel    string
}

func newGlobalFlags(opt *options) (flags *pflag.FlagSet) {
	flags = pflag.NewFlagSet("truescale", pflag.ContinueOnError)

	flags.StringVarP(&opt.configPath, "config", "c", config.DefaultPath, "Configuration file")
	flags.BoolVar(&opt.writeConfig, "write-config", false, "Write the effective configuration back to the configuration file")
	flags.StringVarP(&opt.tier, "tier", "t", "", "Resource tier ("+strings.Join(truescale.TierNames(), ", ")+")")
	flags.StringVarP(&opt.page, "page", "p", "", "Page size")
	flags.StringVar(&opt.policy, "policy", "", "Scale policy (fit-page, average)")
	flags.StringVar(&opt.locale, "locale", "", "Locale of the instruction text")
	flags.Float64Var(&opt.dpi, "dpi", 0, "Override the resolution of the tier")
	flags.StringVarP(&opt.logLevel, "log-level", "l", "info", "Log level (debug, info, warn, error)")
	flags.SetInterspersed(false)

	return
}

func usage(w io.Writer, flags *pflag.FlagSet) {
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  truescale [options...] COMMAND [ARGS...] [COMMAND [ARGS...]]...")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  @FILE reads more commands from FILE")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Options:")
	fmt.Fprint(w, flags.FlagUsages())
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")

	keys := []string{}
	for key := range VerbMap {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		verb := VerbMap[key]
		cmd := verb.NewCommand()
		fmt.Fprintf(w, "\n  %s %s\n      %s\n", key, strings.Join(cmd.Positional(), " "), verb.Description)
		fmt.Fprint(w, cmd.FlagUsages())
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Pages:")
	fmt.Fprintln(w)
	truescale.PrintPages(w)
}

func loadConfig(opt *options) (cfg *config.Config, err error) {
	cfg, err = config.Load(opt.configPath)
	if err != nil {
		return
	}

	if opt.tier != "" {
		cfg.Tier = opt.tier
	}
	if opt.page != "" {
		cfg.Page = opt.page
	}
	if opt.policy != "" {
		cfg.Policy = opt.policy
	}
	if opt.locale != "" {
		cfg.Locale = opt.locale
	}

	err = cfg.Validate()
	if err != nil {
		return
	}

	if opt.dpi > 0 {
		var tier truescale.Tier
		tier, err = truescale.TierByName(cfg.Tier)
		if err != nil {
			return
		}
		if cfg.Tiers == nil {
			cfg.Tiers = map[string]config.TierOverride{}
		}
		over := cfg.Tiers[tier.Name]
		over.DPI = opt.dpi
		cfg.Tiers[tier.Name] = over
	}

	if opt.writeConfig {
		err = cfg.Save(opt.configPath)
	}

	return
}

// runCommands runs a command chain. Commands whose preconditions are not
// met are skipped.
func runCommands(host *Host, args []string) (err error) {
	for len(args) > 0 {
		name := args[0]
		verb, ok := VerbMap[name]
		if !ok {
			err = fmt.Errorf("%s: unknown command", name)
			return
		}

		cmd := verb.NewCommand()
		err = cmd.Parse(args[1:])
		if err != nil {
			err = fmt.Errorf("%s: %w", name, err)
			return
		}

		rest := cmd.Args()
		names := cmd.Positional()
		if len(rest) < len(names) {
			err = fmt.Errorf("%s: expected %s", name, strings.Join(names, " "))
			return
		}

		err = cmd.Run(host, rest[:len(names)])
		if errors.Is(err, truescale.ErrNotReady) {
			host.Logger.Debug("skipped", "command", name, "error", err)
			err = nil
		}
		if err != nil {
			err = fmt.Errorf("%s: %w", name, err)
			return
		}

		args = rest[len(names):]
	}

	return
}

func run(args []string, stdout io.Writer, stderr io.Writer) (err error) {
	var opt options
	flags := newGlobalFlags(&opt)
	flags.SetOutput(stderr)

	err = flags.Parse(args)
	if err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			usage(stderr, flags)
			err = nil
		}
		return
	}

	var level slog.Level
	err = level.UnmarshalText([]byte(opt.logLevel))
	if err != nil {
		return
	}
	logger := NewLogger(stderr, level)

	cfg, err := loadConfig(&opt)
	if err != nil {
		return
	}

	comp, err := cfg.NewCompositor(logger)
	if err != nil {
		return
	}

	if isTerminal(stderr) {
		truescale.SetProgress(newTermProgress(stderr, "Scaling"))
		defer truescale.SetProgress(nil)
	}

	commands, err := expandArgs(flags.Args())
	if err != nil {
		return
	}

	if len(commands) == 0 {
		usage(stderr, flags)
		return
	}

	host := NewHost(comp, logger, stdout)
	err = runCommands(host, commands)

	return
}

func main() {
	err := run(os.Args[1:], os.Stdout, os.Stderr)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
