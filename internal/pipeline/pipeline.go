// Package pipeline orchestrates the emulator workflow stages.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/retroenv/retrochip8/internal/app"
	"github.com/retroenv/retrochip8/internal/config"
	"github.com/retroenv/retrochip8/internal/detector"
	"github.com/retroenv/retrochip8/internal/emulator"
	"github.com/retroenv/retrochip8/internal/loader"
	"github.com/retroenv/retrochip8/internal/options"
	"github.com/retroenv/retrochip8/internal/terminal"
	"github.com/retroenv/retrochip8/internal/trace"
	"github.com/retroenv/retrogolib/arch"
	"github.com/retroenv/retrogolib/log"
)

// ErrUnsupportedSystem is returned for ROMs of other systems.
var ErrUnsupportedSystem = errors.New("unsupported system")

// Pipeline orchestrates the complete emulation workflow.
type Pipeline struct {
	logger   *log.Logger
	detector *detector.Detector
	loader   *loader.Loader
}

// New creates a new emulation pipeline.
func New(logger *log.Logger) *Pipeline {
	return &Pipeline{
		logger:   logger,
		detector: detector.New(logger),
		loader:   loader.New(logger),
	}
}

// Execute loads the ROM and either writes its listing or runs it. Listings
// and headless dumps are written to out.
func (p *Pipeline) Execute(ctx context.Context, opts options.Program, out io.Writer) error {
	rom, err := p.loader.Load(opts.Input)
	if err != nil {
		return fmt.Errorf("loading ROM: %w", err)
	}

	if system := p.detector.Detect(opts.Input, rom); system != arch.CHIP8System {
		return fmt.Errorf("%w '%s'", ErrUnsupportedSystem, system)
	}

	if opts.List {
		return trace.List(out, rom)
	}

	app.PrintInfo(p.logger, opts, len(rom))

	if !opts.Headless && !terminal.Available() {
		p.logger.Warn("No terminal available, running headless")
		opts.Headless = true
	}
	if opts.Headless {
		return p.ExecuteHeadless(ctx, rom, opts, out)
	}
	return p.executeTerminal(ctx, rom, opts)
}

// ExecuteHeadless runs the ROM without a frontend. This is useful for
// testing and scripted runs that are limited by a cycle count.
func (p *Pipeline) ExecuteHeadless(ctx context.Context, rom []byte, opts options.Program, out io.Writer) error {
	emu, err := p.runEmulator(ctx, p.logger, rom, opts, nil)

	if opts.Dump {
		if _, dumpErr := fmt.Fprintf(out, "%s\n%s", emu.Framebuffer(), emu.State()); dumpErr != nil {
			return errors.Join(err, fmt.Errorf("writing dump: %w", dumpErr))
		}
	}
	return err
}

// executeTerminal runs the ROM with the terminal frontend. The terminal owns
// the screen while running, so logs of the emulation go to the log file or
// are discarded.
func (p *Pipeline) executeTerminal(ctx context.Context, rom []byte, opts options.Program) error {
	output := io.Discard
	if opts.LogFile != "" {
		file, err := os.Create(opts.LogFile)
		if err != nil {
			return fmt.Errorf("creating log file %s: %w", opts.LogFile, err)
		}
		defer func() { _ = file.Close() }()
		output = file
	}
	logger := config.CreateLogger(opts.Debug, opts.Quiet, output)

	term, err := terminal.New(filepath.Base(opts.Input))
	if err != nil {
		return fmt.Errorf("creating terminal frontend: %w", err)
	}
	defer term.Close()

	_, err = p.runEmulator(ctx, logger, rom, opts, term)
	return err
}

// runEmulator runs the ROM until it stops and logs the execution summary.
func (p *Pipeline) runEmulator(ctx context.Context, logger *log.Logger, rom []byte,
	opts options.Program, frontend emulator.Frontend) (*emulator.Emulator, error) {

	emu := emulator.New(logger, rom, config.CreateEmulatorConfig(opts), config.CreateEngineOptions(opts))
	if frontend != nil {
		emu.SetFrontend(frontend)
	}

	tracer := trace.New(logger, opts.TraceEvery)
	emu.SetObserver(tracer)

	err := emu.Run(ctx)
	if !opts.Quiet {
		tracer.Summary(emu.State())
	}
	if err != nil {
		return emu, fmt.Errorf("running ROM: %w", err)
	}
	return emu, nil
}
