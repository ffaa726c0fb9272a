package engine

import (
	"github.com/retroenv/retrochip8/internal/decoder"
	"github.com/retroenv/retrochip8/internal/machine"
)

// executeFlow handles instructions that set the program counter explicitly.
func (e *Engine) executeFlow(ins decoder.Instruction) error {
	s := e.state

	switch ins.Kind {
	case decoder.ReturnFromSub:
		address, err := s.Pop()
		if err != nil {
			return err
		}
		s.PC = address

	case decoder.Jump:
		s.PC = ins.Addr

	case decoder.Call:
		if err := s.Push(s.PC + machine.InstructionSize); err != nil {
			return err
		}
		s.PC = ins.Addr

	case decoder.JumpIndirect:
		offset := s.Reg(0)
		if e.quirks.JumpUsesVX {
			offset = s.Reg(ins.X)
		}
		s.PC = ins.Addr + uint16(offset)
	}
	return nil
}

// executeSkip handles the conditional skip instructions and returns the
// program counter advance.
func (e *Engine) executeSkip(ins decoder.Instruction) uint16 {
	s := e.state
	var skip bool

	switch ins.Kind {
	case decoder.SkipEquals:
		skip = s.Reg(ins.X) == ins.Byte
	case decoder.SkipNotEquals:
		skip = s.Reg(ins.X) != ins.Byte
	case decoder.SkipRegEquals:
		skip = s.Reg(ins.X) == s.Reg(ins.Y)
	case decoder.SkipRegNotEquals:
		skip = s.Reg(ins.X) != s.Reg(ins.Y)
	case decoder.KeyIsPressed:
		skip = s.KeyDown(s.Reg(ins.X))
	case decoder.KeyIsntPressed:
		skip = !s.KeyDown(s.Reg(ins.X))
	}

	if skip {
		return 2 * machine.InstructionSize
	}
	return machine.InstructionSize
}

// awaitKeyPress stores the lowest pressed key in VX. Without a pressed key
// the program counter does not advance and the instruction is executed
// again on the next step.
func (e *Engine) awaitKeyPress(ins decoder.Instruction, result *Result) uint16 {
	key, ok := e.state.PressedKey()
	if !ok {
		result.Waiting = true
		return 0
	}
	e.state.SetReg(ins.X, key)
	return machine.InstructionSize
}
