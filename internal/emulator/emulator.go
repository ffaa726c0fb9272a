// Package emulator is the host scheduler that drives the execution engine.
//
// It runs a single loop that schedules three independent cadences: the
// instruction rate, the 60 Hz timer rate and the display refresh rate.
// Keypad events from the frontend are applied inside the same loop, so the
// machine state is only accessed from one goroutine.
package emulator

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/retroenv/retrochip8/internal/display"
	"github.com/retroenv/retrochip8/internal/engine"
	"github.com/retroenv/retrochip8/internal/machine"
	"github.com/retroenv/retrochip8/internal/options"
	"github.com/retroenv/retrogolib/log"
)

// TimerRate is the rate at which the delay and sound timers count down.
const TimerRate = 60

// TimersDisabled as Config.TimerRate disables host driven timer ticks, used
// when the engine ticks timers per instruction.
const TimersDisabled = -1

// minTickPeriod is the shortest ticker period used for the instruction
// cadence, faster rates execute several instructions per tick.
const minTickPeriod = time.Millisecond

// Frontend renders the display and provides keypad input.
type Frontend interface {
	// Events returns the channel that input events are delivered on.
	Events() <-chan Event
	// Render draws the framebuffer, sound reports whether the sound timer
	// is active.
	Render(fb *display.Framebuffer, sound bool) error
}

// Config configures the scheduler.
type Config struct {
	CPUSpeed    int // instructions per second
	TimerRate   int // timer ticks per second, defaults to TimerRate
	RefreshRate int // frontend renders per second
	MaxCycles   uint64 // instruction budget, failed instructions count towards it
	KeyHold     time.Duration // release delay for frontends without key up events
	OnError     options.ErrorPolicy
}

// Emulator runs a ROM on the execution engine.
type Emulator struct {
	logger      *log.Logger
	cfg         Config
	rom         []byte
	engine      *engine.Engine
	framebuffer *display.Framebuffer
	frontend    Frontend
	observer    engine.Observer
	keys        *keyLatch

	steps uint64 // executed and failed instructions, survives resets
	sound bool   // last rendered sound state
}

// New creates an emulator for the ROM. The framebuffer is used as display
// collaborator of the engine, any display set in engineOpts is replaced.
func New(logger *log.Logger, rom []byte, cfg Config, engineOpts engine.Options) *Emulator {
	if cfg.TimerRate == 0 {
		cfg.TimerRate = TimerRate
	}
	if cfg.OnError == "" {
		cfg.OnError = options.HaltOnError
	}

	fb := display.New()
	engineOpts.Display = fb
	state := machine.New(rom)
	if len(rom) > machine.MaxROMSize {
		logger.Debug("ROM truncated", log.Int("loaded", machine.MaxROMSize))
	}

	return &Emulator{
		logger:      logger,
		cfg:         cfg,
		rom:         rom,
		engine:      engine.New(state, engineOpts),
		framebuffer: fb,
		keys:        newKeyLatch(cfg.KeyHold),
	}
}

// SetFrontend sets the frontend, without a frontend the emulator runs
// headless.
func (e *Emulator) SetFrontend(frontend Frontend) {
	e.frontend = frontend
}

// SetObserver sets an observer that is notified after every step.
func (e *Emulator) SetObserver(observer engine.Observer) {
	e.observer = observer
}

// State returns the machine state.
func (e *Emulator) State() *machine.State {
	return e.engine.State()
}

// Framebuffer returns the display framebuffer.
func (e *Emulator) Framebuffer() *display.Framebuffer {
	return e.framebuffer
}

// Run executes the ROM until the context is cancelled, the frontend requests
// to quit, the cycle limit is reached or an instruction fails and the error
// policy halts the emulation.
func (e *Emulator) Run(ctx context.Context) error {
	period, batch := cpuSchedule(e.cfg.CPUSpeed)
	cpu := time.NewTicker(period)
	defer cpu.Stop()

	refresh := time.NewTicker(rateToPeriod(e.cfg.RefreshRate))
	defer refresh.Stop()

	var timerC <-chan time.Time
	if e.cfg.TimerRate > 0 {
		timers := time.NewTicker(rateToPeriod(e.cfg.TimerRate))
		defer timers.Stop()
		timerC = timers.C
	}

	var events <-chan Event
	if e.frontend != nil {
		events = e.frontend.Events()
		if err := e.render(true); err != nil {
			return err
		}
	}

	e.logger.Debug("Starting emulation",
		log.Int("cpu_speed", e.cfg.CPUSpeed),
		log.Int("batch", batch),
		log.Int("refresh_rate", e.cfg.RefreshRate))

	for {
		select {
		case <-ctx.Done():
			return fmt.Errorf("emulation stopped: %w", ctx.Err())

		case event, ok := <-events:
			if !ok {
				events = nil
				continue
			}
			if quit := e.handleEvent(event); quit {
				return nil
			}

		case <-cpu.C:
			done, err := e.runBatch(batch)
			if err != nil || done {
				return err
			}

		case <-timerC:
			e.engine.TickTimers()

		case now := <-refresh.C:
			for _, key := range e.keys.expired(now) {
				e.engine.SetKey(key, false)
			}
			if err := e.render(false); err != nil {
				return err
			}
		}
	}
}

// runBatch executes up to count instructions. It returns true when the
// cycle limit was reached. The limit is checked against the steps of the
// whole run as resets clear the cycle counter of the machine.
func (e *Emulator) runBatch(count int) (bool, error) {
	for range count {
		if e.cfg.MaxCycles > 0 && e.steps >= e.cfg.MaxCycles {
			return true, nil
		}
		if err := e.step(); err != nil {
			return false, err
		}
	}
	return false, nil
}

// step executes a single instruction and applies the error policy.
func (e *Emulator) step() error {
	e.steps++
	result, err := e.engine.Step()
	if err != nil {
		return e.handleError(err)
	}

	if e.observer != nil {
		e.observer.Observe(e.engine.State(), result)
	}
	return nil
}

func (e *Emulator) handleError(err error) error {
	state := e.engine.State()

	switch e.cfg.OnError {
	case options.ResetOnError:
		e.logger.Error("Instruction failed, resetting", log.Err(err))
		e.engine.Reset(e.rom)
		e.keys.reset()
		return nil

	case options.SkipOnError:
		if errors.Is(err, engine.ErrOutOfBounds) && int(state.PC)+1 >= machine.MemorySize {
			return err // nothing left to skip to
		}
		e.logger.Error("Instruction failed, skipping", log.Err(err))
		e.engine.SkipInstruction()
		return nil

	default:
		return err
	}
}

// handleEvent applies an input event and returns whether to quit.
func (e *Emulator) handleEvent(event Event) bool {
	switch event.Kind {
	case Quit:
		return true
	case KeyDown:
		e.engine.SetKey(event.Key, true)
		e.keys.press(event.Key, time.Now())
	case KeyUp:
		e.engine.SetKey(event.Key, false)
		e.keys.release(event.Key)
	case Redraw:
		e.framebuffer.Invalidate()
	}
	return false
}

// render passes the framebuffer to the frontend if it or the sound state
// changed.
func (e *Emulator) render(force bool) error {
	if e.frontend == nil {
		return nil
	}

	sound := e.engine.State().SoundTimer > 0
	if !force && !e.framebuffer.Dirty() && sound == e.sound {
		return nil
	}

	if err := e.frontend.Render(e.framebuffer, sound); err != nil {
		return fmt.Errorf("rendering display: %w", err)
	}
	e.framebuffer.MarkClean()
	e.sound = sound
	return nil
}

// cpuSchedule returns the ticker period and the number of instructions to
// execute per tick for the given instruction rate.
func cpuSchedule(speed int) (time.Duration, int) {
	period := rateToPeriod(speed)
	if period >= minTickPeriod {
		return period, 1
	}

	ticksPerSecond := int(time.Second / minTickPeriod)
	batch := (speed + ticksPerSecond - 1) / ticksPerSecond
	return minTickPeriod, batch
}

func rateToPeriod(rate int) time.Duration {
	if rate <= 0 {
		rate = 1
	}
	period := time.Second / time.Duration(rate)
	if period <= 0 {
		period = 1
	}
	return period
}
