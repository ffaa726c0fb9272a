// Package engine implements the CHIP-8 execution engine. It fetches opcodes
// from the machine state, decodes them and executes their semantics.
//
// The engine is single threaded: Step is synchronous and must not be called
// concurrently. Hosts drive it from one run loop and inject keypad state and
// timer ticks between steps.
package engine

import (
	"github.com/retroenv/retrochip8/internal/decoder"
	"github.com/retroenv/retrochip8/internal/machine"
)

// Display is the collaborator that owns the pixel buffer.
type Display interface {
	// Clear turns all pixels off.
	Clear()
	// DrawSprite XORs the sprite rows onto the display at the given
	// coordinates and returns whether any lit pixel was turned off.
	DrawSprite(x, y uint8, sprite []byte) bool
}

// Observer is notified by a host after every executed step.
type Observer interface {
	Observe(state *machine.State, result Result)
}

// Quirks toggles behavior that differs between CHIP-8 interpreters.
type Quirks struct {
	// ShiftUsesVY makes 8XY6/8XYE shift VY into VX instead of shifting VX
	// in place.
	ShiftUsesVY bool
	// LoadStoreIncrementsI makes FX55/FX65 leave I pointing past the last
	// accessed byte.
	LoadStoreIncrementsI bool
	// JumpUsesVX makes BNNN add VX, with X being the high nibble of NNN,
	// instead of V0.
	JumpUsesVX bool
}

// Options configures an engine.
type Options struct {
	Display Display      // receives clear and draw requests, may be nil
	Random  RandomSource // source for CXNN, defaults to a math/rand source
	Quirks  Quirks

	// CoupledTimers ticks both timers once per executed instruction
	// instead of leaving timer ticks to the host.
	CoupledTimers bool
}

// Result describes an executed step.
type Result struct {
	PC          uint16 // address the instruction was fetched from
	Instruction decoder.Instruction
	Advance     uint16 // bytes the PC advanced by after execution
	Waiting     bool   // waiting for a key press, the instruction repeats
	Drew        bool   // the display was changed
}

// Engine executes CHIP-8 instructions against a machine state.
type Engine struct {
	state   *machine.State
	display Display
	random  RandomSource
	quirks  Quirks

	coupledTimers bool
}

// New returns a new engine that exclusively owns the given state.
func New(state *machine.State, opts Options) *Engine {
	e := &Engine{
		state:         state,
		display:       opts.Display,
		random:        opts.Random,
		quirks:        opts.Quirks,
		coupledTimers: opts.CoupledTimers,
	}
	if e.display == nil {
		e.display = nopDisplay{}
	}
	if e.random == nil {
		e.random = NewRandomSource()
	}
	return e
}

// State returns the machine state of the engine. Callers must not modify it
// while a step is executing.
func (e *Engine) State() *machine.State {
	return e.state
}

// Step fetches, decodes and executes the instruction at the program counter.
// On error the program counter is left pointing at the failed instruction.
func (e *Engine) Step() (Result, error) {
	s := e.state
	pc := s.PC
	result := Result{PC: pc}

	word, err := s.ReadOpcode(pc)
	if err != nil {
		return result, &ExecError{PC: pc, Err: err}
	}

	ins := decoder.Decode(word)
	result.Instruction = ins

	advance, err := e.execute(ins, &result)
	if err != nil {
		return result, &ExecError{PC: pc, Word: word, Err: err}
	}

	if e.coupledTimers {
		s.TickTimers()
	}

	s.PC += advance
	s.Cycles++
	result.Advance = advance
	return result, nil
}

// TickTimers decrements the delay and sound timers by one tick. Hosts call
// it at 60 Hz independent of the instruction rate.
func (e *Engine) TickTimers() {
	e.state.TickTimers()
}

// SetKey updates the pressed state of a keypad key.
func (e *Engine) SetKey(key uint8, down bool) {
	e.state.SetKey(key, down)
}

// SkipInstruction moves the program counter past the current instruction
// without executing it.
func (e *Engine) SkipInstruction() {
	e.state.PC += machine.InstructionSize
}

// Reset reinitializes the machine state with the given ROM and clears the
// display. It returns the number of ROM bytes loaded.
func (e *Engine) Reset(rom []byte) int {
	e.display.Clear()
	return e.state.Reset(rom)
}

// execute runs the instruction semantics and returns the number of bytes to
// advance the program counter by.
func (e *Engine) execute(ins decoder.Instruction, result *Result) (uint16, error) {
	switch ins.Kind {
	case decoder.Unknown:
		return 0, ErrInvalidOpcode
	case decoder.SysCall:
		return 0, ErrUnsupportedInstruction

	case decoder.ClearScreen:
		e.display.Clear()
		result.Drew = true
		return machine.InstructionSize, nil

	case decoder.ReturnFromSub, decoder.Jump, decoder.Call, decoder.JumpIndirect:
		return 0, e.executeFlow(ins)

	case decoder.SkipEquals, decoder.SkipNotEquals, decoder.SkipRegEquals,
		decoder.SkipRegNotEquals, decoder.KeyIsPressed, decoder.KeyIsntPressed:
		return e.executeSkip(ins), nil

	case decoder.AwaitKeyPress:
		return e.awaitKeyPress(ins, result), nil

	case decoder.DrawSprite:
		return machine.InstructionSize, e.drawSprite(ins, result)

	case decoder.SetAddressReg, decoder.AddAddressReg, decoder.AddressKeySprite,
		decoder.StoreBCDAtAddress, decoder.StoreRegisters, decoder.LoadRegisters:
		return machine.InstructionSize, e.executeMemory(ins)

	case decoder.ReadDelayTimer:
		e.state.SetReg(ins.X, uint8(e.state.DelayTimer))
	case decoder.SetDelayTimer:
		e.state.DelayTimer = uint16(e.state.Reg(ins.X))
	case decoder.SetSoundTimer:
		e.state.SoundTimer = uint16(e.state.Reg(ins.X))

	case decoder.RandomNumber:
		e.state.SetReg(ins.X, e.random.Byte()&ins.Byte)

	default:
		e.executeALU(ins)
	}

	return machine.InstructionSize, nil
}

type nopDisplay struct{}

func (nopDisplay) Clear() {}

func (nopDisplay) DrawSprite(uint8, uint8, []byte) bool { return false }
