// Package config handles application configuration and setup
package config

import (
	"io"

	"github.com/retroenv/retrochip8/internal/emulator"
	"github.com/retroenv/retrochip8/internal/engine"
	"github.com/retroenv/retrochip8/internal/options"
	"github.com/retroenv/retrogolib/log"
)

// CreateLogger creates a logger with appropriate settings, a nil output
// logs to the default destination.
func CreateLogger(debug, quiet bool, output io.Writer) *log.Logger {
	cfg := log.DefaultConfig()
	if output != nil {
		cfg.Output = output
	}
	if debug {
		cfg.Level = log.DebugLevel
	} else if quiet {
		cfg.Level = log.ErrorLevel
	}
	return log.NewWithConfig(cfg)
}

// CreateEngineOptions maps the program options to engine options. The
// display is set by the emulator that owns the framebuffer.
func CreateEngineOptions(opts options.Program) engine.Options {
	return engine.Options{
		Quirks: engine.Quirks{
			ShiftUsesVY:          opts.ShiftUsesVY,
			LoadStoreIncrementsI: opts.LoadStoreIncrementsI,
			JumpUsesVX:           opts.JumpUsesVX,
		},
		CoupledTimers: opts.CoupledTimers,
	}
}

// CreateEmulatorConfig maps the program options to the host scheduler
// configuration.
func CreateEmulatorConfig(opts options.Program) emulator.Config {
	cfg := emulator.Config{
		CPUSpeed:    opts.CPUSpeed,
		RefreshRate: opts.RefreshRate,
		MaxCycles:   opts.MaxCycles,
		KeyHold:     opts.KeyHold,
		OnError:     opts.OnError,
	}
	if opts.CoupledTimers {
		cfg.TimerRate = emulator.TimersDisabled
	}
	return cfg
}
