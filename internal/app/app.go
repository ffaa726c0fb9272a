// Package app provides the main application helpers for the emulator.
package app

import (
	"fmt"
	"strings"

	"github.com/retroenv/retrochip8/internal/options"
	"github.com/retroenv/retrogolib/log"
)

// PrintBanner prints application version information.
func PrintBanner(logger *log.Logger, opts options.Program, version, commit, date string) {
	if opts.Quiet {
		return
	}

	versionString := version
	if commit != "" {
		if len(commit) > 7 {
			commit = commit[:7]
		}
		versionString += fmt.Sprintf(" (%s)", commit)
	}

	logger.Info("retrochip8", log.String("version", versionString))

	if date != "" && !strings.Contains(date, "unknown") {
		logger.Info("Build", log.String("date", date))
	}
}

// PrintInfo prints the information about the ROM and the emulation settings.
func PrintInfo(logger *log.Logger, opts options.Program, romSize int) {
	if opts.Quiet {
		return
	}

	logger.Info("Running Chip-8 ROM",
		log.String("file", opts.Input),
		log.Int("size", romSize),
		log.Int("cpu_speed", opts.CPUSpeed),
		log.String("on_error", string(opts.OnError)),
	)

	if opts.ShiftUsesVY || opts.LoadStoreIncrementsI || opts.JumpUsesVX {
		logger.Info("Compatibility quirks enabled",
			log.String("shift_uses_vy", fmt.Sprint(opts.ShiftUsesVY)),
			log.String("load_store_increments_i", fmt.Sprint(opts.LoadStoreIncrementsI)),
			log.String("jump_uses_vx", fmt.Sprint(opts.JumpUsesVX)),
		)
	}
}
