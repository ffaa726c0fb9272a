// Package options contains the program options.
package options

import (
	"fmt"
	"strings"
	"time"
)

// ErrorPolicy decides how the host reacts to a failing instruction.
type ErrorPolicy string

// Supported error policies.
const (
	HaltOnError  ErrorPolicy = "halt"  // stop the emulation and report the error
	ResetOnError ErrorPolicy = "reset" // reload the ROM and start over
	SkipOnError  ErrorPolicy = "skip"  // log the error and continue after the instruction
)

// Default cadences.
const (
	DefaultCPUSpeed    = 700
	DefaultRefreshRate = 60
	DefaultKeyHold     = 150 * time.Millisecond
)

// Parameters contains file path options.
type Parameters struct {
	Input   string // ROM file to run
	LogFile string // log destination while the terminal display is active
}

// Flags contains behavior options.
type Flags struct {
	Debug    bool // enable debug logging
	Quiet    bool // only log errors
	Headless bool // run without terminal display
	Dump     bool // print the framebuffer after a headless run
	List     bool // print a disassembly listing instead of running

	CPUSpeed    int           // instructions per second
	RefreshRate int           // display refreshes per second
	MaxCycles   uint64        // stop after this many instructions including failed ones, 0 runs until stopped
	TraceEvery  uint64        // log every n-th instruction at debug level
	KeyHold     time.Duration // how long a terminal key press is held down
	OnError     ErrorPolicy
}

// Quirks contains interpreter compatibility options.
type Quirks struct {
	CoupledTimers        bool // tick timers once per instruction
	ShiftUsesVY          bool // 8XY6/8XYE shift VY
	LoadStoreIncrementsI bool // FX55/FX65 increment I
	JumpUsesVX           bool // BNNN adds VX
}

// Program options of the emulator.
type Program struct {
	Parameters
	Flags
	Quirks
}

// Validate checks the option values for consistency.
func (p Program) Validate() error {
	if p.CPUSpeed <= 0 {
		return fmt.Errorf("invalid cpu speed %d: must be positive", p.CPUSpeed)
	}
	if p.RefreshRate <= 0 {
		return fmt.Errorf("invalid refresh rate %d: must be positive", p.RefreshRate)
	}
	if p.KeyHold < 0 {
		return fmt.Errorf("invalid key hold duration %s", p.KeyHold)
	}

	switch p.OnError {
	case HaltOnError, ResetOnError, SkipOnError:
		return nil
	default:
		valid := []string{string(HaltOnError), string(ResetOnError), string(SkipOnError)}
		return fmt.Errorf("unsupported error policy: %s. Valid options: %s",
			p.OnError, strings.Join(valid, ", "))
	}
}
