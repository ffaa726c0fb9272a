package engine

import (
	"github.com/retroenv/retrochip8/internal/decoder"
	"github.com/retroenv/retrochip8/internal/machine"
)

// executeALU handles the register load and arithmetic instructions.
// Instructions that set VF write the result first, so VF holds the flag
// when it is also the destination register.
func (e *Engine) executeALU(ins decoder.Instruction) {
	s := e.state
	x := s.Reg(ins.X)
	y := s.Reg(ins.Y)

	switch ins.Kind {
	case decoder.SetReg:
		s.SetReg(ins.X, ins.Byte)
	case decoder.AddConst:
		s.SetReg(ins.X, x+ins.Byte)

	case decoder.CopyReg:
		s.SetReg(ins.X, y)
	case decoder.OrReg:
		s.SetReg(ins.X, x|y)
	case decoder.AndReg:
		s.SetReg(ins.X, x&y)
	case decoder.XorReg:
		s.SetReg(ins.X, x^y)

	case decoder.AddReg:
		sum := uint16(x) + uint16(y)
		s.SetReg(ins.X, uint8(sum))
		s.SetReg(machine.FlagRegister, boolToFlag(sum > 0xFF))

	case decoder.SubReg:
		s.SetReg(ins.X, x-y)
		s.SetReg(machine.FlagRegister, boolToFlag(x >= y))

	case decoder.SubRegRev:
		s.SetReg(ins.X, y-x)
		s.SetReg(machine.FlagRegister, boolToFlag(y >= x))

	case decoder.RightShiftReg:
		value := x
		if e.quirks.ShiftUsesVY {
			value = y
		}
		s.SetReg(ins.X, value>>1)
		s.SetReg(machine.FlagRegister, value&0x01)

	case decoder.LeftShiftReg:
		value := x
		if e.quirks.ShiftUsesVY {
			value = y
		}
		s.SetReg(ins.X, value<<1)
		s.SetReg(machine.FlagRegister, value>>7)
	}
}

// boolToFlag converts a condition to the VF flag value.
func boolToFlag(b bool) uint8 {
	if b {
		return 1
	}
	return 0
}
