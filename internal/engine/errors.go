package engine

import (
	"errors"
	"fmt"

	"github.com/retroenv/retrochip8/internal/machine"
)

var (
	// ErrInvalidOpcode is returned for opcodes that decode to no instruction.
	ErrInvalidOpcode = errors.New("invalid opcode")
	// ErrUnsupportedInstruction is returned for legacy 0NNN machine code calls.
	ErrUnsupportedInstruction = errors.New("unsupported instruction")

	// ErrStackOverflow is returned when a call exceeds the call stack depth.
	ErrStackOverflow = machine.ErrStackOverflow
	// ErrStackUnderflow is returned for a return with an empty call stack.
	ErrStackUnderflow = machine.ErrStackUnderflow
	// ErrOutOfBounds is returned for memory accesses beyond the memory size.
	ErrOutOfBounds = machine.ErrOutOfBounds
)

// ExecError is returned by Step when an instruction fails.
type ExecError struct {
	PC   uint16 // address of the failed instruction
	Word uint16 // opcode word, zero if fetching failed
	Err  error
}

func (e *ExecError) Error() string {
	return fmt.Sprintf("executing opcode %04X at %03X: %v", e.Word, e.PC, e.Err)
}

func (e *ExecError) Unwrap() error {
	return e.Err
}
