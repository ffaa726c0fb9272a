package engine

import (
	"github.com/retroenv/retrochip8/internal/decoder"
	"github.com/retroenv/retrochip8/internal/machine"
)

// executeMemory handles the instructions that use the address register.
// Instructions that access several bytes check the whole range before
// writing, a failing instruction leaves memory and registers unchanged.
func (e *Engine) executeMemory(ins decoder.Instruction) error {
	s := e.state

	switch ins.Kind {
	case decoder.SetAddressReg:
		s.I = ins.Addr

	case decoder.AddAddressReg:
		s.I += uint16(s.Reg(ins.X))

	case decoder.AddressKeySprite:
		s.I = machine.GlyphAddress(s.Reg(ins.X))

	case decoder.StoreBCDAtAddress:
		data, err := s.MemoryRange(s.I, 3)
		if err != nil {
			return err
		}
		value := s.Reg(ins.X)
		data[0] = value / 100
		data[1] = value / 10 % 10
		data[2] = value % 10

	case decoder.StoreRegisters:
		count := int(ins.X) + 1
		data, err := s.MemoryRange(s.I, count)
		if err != nil {
			return err
		}
		copy(data, s.V[:count])
		e.advanceAddress(count)

	case decoder.LoadRegisters:
		count := int(ins.X) + 1
		data, err := s.MemoryRange(s.I, count)
		if err != nil {
			return err
		}
		copy(s.V[:count], data)
		e.advanceAddress(count)
	}
	return nil
}

func (e *Engine) advanceAddress(count int) {
	if e.quirks.LoadStoreIncrementsI {
		e.state.I += uint16(count)
	}
}

// drawSprite passes the N byte sprite at I to the display and sets VF to
// the reported collision.
func (e *Engine) drawSprite(ins decoder.Instruction, result *Result) error {
	s := e.state
	sprite, err := s.MemoryRange(s.I, int(ins.N))
	if err != nil {
		return err
	}

	collision := e.display.DrawSprite(s.Reg(ins.X), s.Reg(ins.Y), sprite)
	s.SetReg(machine.FlagRegister, boolToFlag(collision))
	result.Drew = true
	return nil
}
