package cli

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/retroenv/retrochip8/internal/options"
	"github.com/retroenv/retrogolib/assert"
)

func TestParseFlags(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want options.Program
	}{
		{
			name: "defaults",
			args: []string{"game.ch8"},
			want: options.Program{
				Parameters: options.Parameters{Input: "game.ch8"},
				Flags: options.Flags{
					CPUSpeed:    options.DefaultCPUSpeed,
					RefreshRate: options.DefaultRefreshRate,
					KeyHold:     options.DefaultKeyHold,
					OnError:     options.HaltOnError,
				},
			},
		},
		{
			name: "headless run",
			args: []string{"-headless", "-cycles", "500", "-hz", "2000", "-dump", "-log", "run.log", "game.ch8"},
			want: options.Program{
				Parameters: options.Parameters{Input: "game.ch8", LogFile: "run.log"},
				Flags: options.Flags{
					Headless:    true,
					Dump:        true,
					CPUSpeed:    2000,
					RefreshRate: options.DefaultRefreshRate,
					MaxCycles:   500,
					KeyHold:     options.DefaultKeyHold,
					OnError:     options.HaltOnError,
				},
			},
		},
		{
			name: "quirks and policy",
			args: []string{"-quirk-shift", "-quirk-loadstore", "-quirk-jump", "-coupled-timers",
				"-on-error", "skip", "-keyhold", "50ms", "game.ch8"},
			want: options.Program{
				Parameters: options.Parameters{Input: "game.ch8"},
				Flags: options.Flags{
					CPUSpeed:    options.DefaultCPUSpeed,
					RefreshRate: options.DefaultRefreshRate,
					KeyHold:     50 * time.Millisecond,
					OnError:     options.SkipOnError,
				},
				Quirks: options.Quirks{
					CoupledTimers:        true,
					ShiftUsesVY:          true,
					LoadStoreIncrementsI: true,
					JumpUsesVX:           true,
				},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseFlags(tt.args)
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseFlagsErrors(t *testing.T) {
	tests := []struct {
		name       string
		args       []string
		usage      bool
		errContain string
	}{
		{"missing rom", nil, true, "expected a path to a ROM file"},
		{"unknown flag", []string{"-nope", "game.ch8"}, true, "nope"},
		{"option after rom", []string{"game.ch8", "-debug"}, true, "after the ROM file"},
		{"bad policy", []string{"-on-error", "retry", "game.ch8"}, false, "unsupported error policy"},
		{"bad speed", []string{"-hz", "0", "game.ch8"}, false, "invalid cpu speed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseFlags(tt.args)
			assert.Error(t, err)
			assert.ErrorContains(t, err, tt.errContain)

			var usageErr *UsageError
			assert.Equal(t, tt.usage, errors.As(err, &usageErr))
		})
	}
}

func TestUsageErrorShowUsage(t *testing.T) {
	_, err := ParseFlags(nil)

	var usageErr *UsageError
	assert.True(t, errors.As(err, &usageErr))

	var buf bytes.Buffer
	usageErr.ShowUsage(&buf)
	assert.True(t, strings.HasPrefix(buf.String(), "usage: retrochip8"))
	assert.True(t, strings.Contains(buf.String(), "-headless"))
}
