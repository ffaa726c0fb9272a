// Package machine contains the CHIP-8 machine state: memory, registers,
// call stack, timers and keypad snapshot.
//
// The state is owned by a single execution engine. All accessors that take
// an address are bounds-checked, register indices are masked to 4 bits.
package machine

import (
	"errors"
	"fmt"
	"strings"
)

// CHIP-8 memory layout and machine dimensions.
//
//	0x000-0x1FF: Interpreter area, holds the built-in font at FontAddress
//	0x200-0xFFF: Program space
const (
	// MemorySize is the size of the addressable memory in bytes.
	MemorySize = 0x1000

	// ProgramStart is the program origin, ROM bytes are copied here and
	// execution starts here.
	ProgramStart = 0x200

	// MaxROMSize is the number of ROM bytes that fit into memory.
	MaxROMSize = MemorySize - ProgramStart

	// RegisterCount is the number of general purpose registers V0-VF.
	RegisterCount = 0x10

	// StackSize is the maximum call depth.
	StackSize = 0x10

	// KeyCount is the number of keys on the hex keypad.
	KeyCount = 0x10

	// InstructionSize is the size of every opcode in bytes.
	InstructionSize = 2

	// FlagRegister is the index of VF.
	FlagRegister = 0xF
)

var (
	// ErrOutOfBounds is returned for memory accesses at or above MemorySize.
	ErrOutOfBounds = errors.New("memory access out of bounds")
	// ErrStackOverflow is returned when pushing onto a full call stack.
	ErrStackOverflow = errors.New("call stack overflow")
	// ErrStackUnderflow is returned when popping from an empty call stack.
	ErrStackUnderflow = errors.New("call stack underflow")
)

// State is the complete CHIP-8 machine state.
type State struct {
	Memory [MemorySize]byte
	V      [RegisterCount]uint8

	I  uint16 // address register
	PC uint16 // address of the next instruction

	stack [StackSize]uint16
	sp    int // number of entries on the stack

	DelayTimer uint16
	SoundTimer uint16

	Keys [KeyCount]bool

	Cycles uint64 // executed instructions
}

// New returns a machine state initialized with the given ROM.
func New(rom []byte) *State {
	s := &State{}
	s.Reset(rom)
	return s
}

// Reset reinitializes the state: memory is cleared, the font is installed,
// the ROM is copied to the program origin and all registers, timers, the
// stack and the keypad are zeroed. It returns the number of ROM bytes that
// were copied, ROMs larger than MaxROMSize are truncated.
func (s *State) Reset(rom []byte) int {
	*s = State{PC: ProgramStart}
	copy(s.Memory[FontAddress:], font[:])
	return copy(s.Memory[ProgramStart:], rom)
}

// ReadMemory returns the byte at the given address.
func (s *State) ReadMemory(address uint16) (byte, error) {
	if int(address) >= MemorySize {
		return 0, fmt.Errorf("reading address %04X: %w", address, ErrOutOfBounds)
	}
	return s.Memory[address], nil
}

// WriteMemory writes a byte to the given address.
func (s *State) WriteMemory(address uint16, value byte) error {
	if int(address) >= MemorySize {
		return fmt.Errorf("writing address %04X: %w", address, ErrOutOfBounds)
	}
	s.Memory[address] = value
	return nil
}

// ReadOpcode returns the big-endian 16-bit word at the given address.
func (s *State) ReadOpcode(address uint16) (uint16, error) {
	if int(address)+1 >= MemorySize {
		return 0, fmt.Errorf("reading opcode at %04X: %w", address, ErrOutOfBounds)
	}
	return uint16(s.Memory[address])<<8 | uint16(s.Memory[address+1]), nil
}

// MemoryRange returns a slice of length bytes starting at address.
// The slice aliases the machine memory.
func (s *State) MemoryRange(address uint16, length int) ([]byte, error) {
	end := int(address) + length
	if length < 0 || end > MemorySize {
		return nil, fmt.Errorf("accessing %d bytes at %04X: %w", length, address, ErrOutOfBounds)
	}
	return s.Memory[address:end], nil
}

// Reg returns the value of register V[x & 0xF].
func (s *State) Reg(x uint8) uint8 {
	return s.V[x&0xF]
}

// SetReg sets register V[x & 0xF].
func (s *State) SetReg(x, value uint8) {
	s.V[x&0xF] = value
}

// Push pushes a return address onto the call stack.
func (s *State) Push(address uint16) error {
	if s.sp >= StackSize {
		return ErrStackOverflow
	}
	s.stack[s.sp] = address
	s.sp++
	return nil
}

// Pop removes and returns the top return address of the call stack.
func (s *State) Pop() (uint16, error) {
	if s.sp == 0 {
		return 0, ErrStackUnderflow
	}
	s.sp--
	return s.stack[s.sp], nil
}

// StackDepth returns the number of return addresses on the call stack.
func (s *State) StackDepth() int {
	return s.sp
}

// TickTimers decrements both timers by one, clamped at zero.
func (s *State) TickTimers() {
	if s.DelayTimer > 0 {
		s.DelayTimer--
	}
	if s.SoundTimer > 0 {
		s.SoundTimer--
	}
}

// SetKey sets the pressed state of key & 0xF.
func (s *State) SetKey(key uint8, down bool) {
	s.Keys[key&0xF] = down
}

// KeyDown returns whether key & 0xF is pressed.
func (s *State) KeyDown(key uint8) bool {
	return s.Keys[key&0xF]
}

// PressedKey returns the lowest pressed key.
func (s *State) PressedKey() (uint8, bool) {
	for key, down := range s.Keys {
		if down {
			return uint8(key), true
		}
	}
	return 0, false
}

// String returns a register dump of the state.
func (s *State) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "PC: %03X I: %03X stack: %d DT: %d ST: %d\n",
		s.PC, s.I, s.sp, s.DelayTimer, s.SoundTimer)
	for row := 0; row < RegisterCount; row += 4 {
		fmt.Fprintf(&b, "  V%X %02X V%X %02X V%X %02X V%X %02X\n",
			row, s.V[row], row+1, s.V[row+1], row+2, s.V[row+2], row+3, s.V[row+3])
	}
	return b.String()
}
