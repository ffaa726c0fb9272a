package pipeline

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/retroenv/retrochip8/internal/engine"
	"github.com/retroenv/retrochip8/internal/options"
	"github.com/retroenv/retrogolib/assert"
	"github.com/retroenv/retrogolib/log"
)

func TestNew(t *testing.T) {
	logger := log.NewTestLogger(t)
	p := New(logger)

	assert.NotNil(t, p)
	assert.NotNil(t, p.logger)
	assert.NotNil(t, p.detector)
	assert.NotNil(t, p.loader)
}

func headlessOptions(input string) options.Program {
	return options.Program{
		Parameters: options.Parameters{Input: input},
		Flags: options.Flags{
			Headless:    true,
			Dump:        true,
			CPUSpeed:    100000,
			RefreshRate: options.DefaultRefreshRate,
			MaxCycles:   3,
			OnError:     options.HaltOnError,
		},
	}
}

func TestExecuteHeadlessDump(t *testing.T) {
	// ld I, $050; drw V0, V0, 5; jp $204
	tmpFile := createTempFile(t, "zero.ch8", []byte{0xA0, 0x50, 0xD0, 0x05, 0x12, 0x04})

	var out bytes.Buffer
	p := New(log.NewTestLogger(t))
	err := p.Execute(context.Background(), headlessOptions(tmpFile), &out)
	assert.NoError(t, err)

	lines := strings.Split(out.String(), "\n")
	assert.True(t, len(lines) > 5)
	assert.Equal(t, "####............................................................", lines[0])
	assert.Equal(t, "#..#............................................................", lines[1])
	assert.True(t, strings.Contains(out.String(), "PC: 204 I: 050"))
}

func TestExecuteHeadlessError(t *testing.T) {
	tmpFile := createTempFile(t, "bad.ch8", []byte{0xFF, 0xFF})

	var out bytes.Buffer
	p := New(log.NewTestLogger(t))
	err := p.Execute(context.Background(), headlessOptions(tmpFile), &out)
	assert.Error(t, err)
	assert.ErrorContains(t, err, "running ROM")
	assert.True(t, errors.Is(err, engine.ErrInvalidOpcode))
	assert.True(t, strings.Contains(out.String(), "PC: 200"))
}

func TestExecuteList(t *testing.T) {
	tmpFile := createTempFile(t, "list.ch8", []byte{0x6A, 0x05, 0x7A, 0x01})

	opts := headlessOptions(tmpFile)
	opts.List = true

	var out bytes.Buffer
	p := New(log.NewTestLogger(t))
	assert.NoError(t, p.Execute(context.Background(), opts, &out))

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	assert.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[0], "200: 6A05"))
	assert.True(t, strings.HasPrefix(lines[1], "202: 7A01"))
}

func TestExecuteRejectsNESROM(t *testing.T) {
	nesData := make([]byte, 16+16384)
	copy(nesData[0:4], []byte{'N', 'E', 'S', 0x1A})
	nesData[4] = 1
	tmpFile := createTempFile(t, "game.nes", nesData)

	p := New(log.NewTestLogger(t))
	err := p.Execute(context.Background(), headlessOptions(tmpFile), &bytes.Buffer{})
	assert.True(t, errors.Is(err, ErrUnsupportedSystem))
}

func TestExecuteMissingFile(t *testing.T) {
	p := New(log.NewTestLogger(t))
	opts := headlessOptions(filepath.Join(t.TempDir(), "missing.ch8"))

	err := p.Execute(context.Background(), opts, &bytes.Buffer{})
	assert.ErrorContains(t, err, "loading ROM")
}

func TestExecuteHeadlessCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	opts := headlessOptions("loop.ch8")
	opts.MaxCycles = 0
	opts.Dump = false

	p := New(log.NewTestLogger(t))
	err := p.ExecuteHeadless(ctx, []byte{0x12, 0x00}, opts, &bytes.Buffer{})
	assert.True(t, errors.Is(err, context.Canceled))
}

func createTempFile(t *testing.T, name string, data []byte) string {
	t.Helper()
	tmpFile := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(tmpFile, data, 0600); err != nil {
		t.Fatalf("Failed to create temp file: %v", err)
	}
	return tmpFile
}
