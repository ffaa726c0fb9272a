// Package cli handles command line interface logic
package cli

import (
	"flag"
	"fmt"
	"io"

	"github.com/retroenv/retrochip8/internal/options"
)

// ParseFlags parses command line arguments and returns the program options.
func ParseFlags(args []string) (options.Program, error) {
	flags := flag.NewFlagSet("retrochip8", flag.ContinueOnError)
	flags.SetOutput(io.Discard)

	var opts options.Program
	var onError string
	readOptionFlags(flags, &opts, &onError)

	err := flags.Parse(args)
	positional := flags.Args()
	if err != nil || len(positional) == 0 {
		msg := "expected a path to a ROM file to execute"
		if err != nil {
			msg = err.Error()
		}
		return opts, &UsageError{flags: flags, msg: msg}
	}

	if err := validateArgs(positional); err != nil {
		return opts, err
	}

	opts.Input = positional[0]
	opts.OnError = options.ErrorPolicy(onError)
	if err := opts.Validate(); err != nil {
		return opts, err
	}

	return opts, nil
}

// UsageError represents an error that should show usage information
type UsageError struct {
	flags *flag.FlagSet
	msg   string
}

func (e *UsageError) Error() string {
	return e.msg
}

// ShowUsage prints the usage and the flag defaults.
func (e *UsageError) ShowUsage(w io.Writer) {
	_, _ = fmt.Fprintf(w, "usage: retrochip8 [options] <rom file>\n\n")
	if e.flags != nil {
		e.flags.SetOutput(w)
		e.flags.PrintDefaults()
	}
	_, _ = fmt.Fprintln(w)
}

// validateArgs checks if arguments are in correct order
func validateArgs(args []string) error {
	if len(args) > 1 {
		return &UsageError{
			msg: fmt.Sprintf("unexpected argument %s after the ROM file, please pass options before the ROM file", args[1]),
		}
	}
	return nil
}

func readOptionFlags(flags *flag.FlagSet, opts *options.Program, onError *string) {
	flags.BoolVar(&opts.Debug, "debug", false, "enable debugging options for extended logging")
	flags.BoolVar(&opts.Quiet, "q", false, "perform operations quietly")
	flags.BoolVar(&opts.Headless, "headless", false, "run without terminal display")
	flags.BoolVar(&opts.Dump, "dump", false, "print the display contents after a headless run")
	flags.BoolVar(&opts.List, "list", false, "print a disassembly listing of the ROM and exit")
	flags.StringVar(&opts.LogFile, "log", "", "write logs to this file while the terminal display is active")

	flags.IntVar(&opts.CPUSpeed, "hz", options.DefaultCPUSpeed, "instructions executed per second")
	flags.IntVar(&opts.RefreshRate, "fps", options.DefaultRefreshRate, "display refreshes per second")
	flags.Uint64Var(&opts.MaxCycles, "cycles", 0, "stop after executing this many instructions, 0 runs until stopped")
	flags.Uint64Var(&opts.TraceEvery, "trace", 0, "log every n-th executed instruction, requires -debug")
	flags.DurationVar(&opts.KeyHold, "keyhold", options.DefaultKeyHold, "how long a terminal key press is held down")
	flags.StringVar(onError, "on-error", string(options.HaltOnError), "reaction to a failing instruction (halt/reset/skip)")

	flags.BoolVar(&opts.CoupledTimers, "coupled-timers", false, "tick timers once per instruction instead of at 60 Hz")
	flags.BoolVar(&opts.ShiftUsesVY, "quirk-shift", false, "8XY6/8XYE shift VY into VX")
	flags.BoolVar(&opts.LoadStoreIncrementsI, "quirk-loadstore", false, "FX55/FX65 increment I")
	flags.BoolVar(&opts.JumpUsesVX, "quirk-jump", false, "BNNN jumps to NNN + VX")
}
