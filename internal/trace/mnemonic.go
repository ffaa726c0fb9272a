// Package trace formats executed CHIP-8 instructions as assembly and logs
// them for debugging.
package trace

import (
	"fmt"
	"io"

	"github.com/retroenv/retrochip8/internal/machine"
	"github.com/retroenv/retrogolib/arch/cpu/chip8"
)

// lookupOpcode finds the opcode table entry matching the word.
func lookupOpcode(word uint16) (chip8.Opcode, bool) {
	for _, op := range chip8.Opcodes[int(word>>12)] {
		if op.Info.Mask&word == op.Info.Value {
			return op, op.Instruction != nil
		}
	}
	return chip8.Opcode{}, false
}

// Mnemonic returns the assembly form of an opcode word, for example
// "ld V1, $05". Words without a matching opcode are returned as a data
// directive.
func Mnemonic(word uint16) string {
	op, ok := lookupOpcode(word)
	if !ok {
		return fmt.Sprintf(".word $%04X", word)
	}

	name := op.Instruction.Name
	if params := formatParams(chip8.NameToOpcodeID[name], word); params != "" {
		return name + " " + params
	}
	return name
}

// List writes an assembly listing of the ROM with the addresses it is
// loaded at.
func List(w io.Writer, rom []byte) error {
	for offset := 0; offset+1 < len(rom) && offset < machine.MaxROMSize; offset += machine.InstructionSize {
		word := uint16(rom[offset])<<8 | uint16(rom[offset+1])
		address := machine.ProgramStart + offset
		if _, err := fmt.Fprintf(w, "%03X: %04X  %s\n", address, word, Mnemonic(word)); err != nil {
			return fmt.Errorf("writing listing: %w", err)
		}
	}
	return nil
}

// formatParams formats the operands of the instruction identified by id.
func formatParams(id chip8.OpcodeID, word uint16) string {
	x := (word & 0x0F00) >> 8
	y := (word & 0x00F0) >> 4

	switch id {
	case chip8.Cls, chip8.Ret:
		return ""
	case chip8.Jp:
		if word&0xF000 == 0xB000 {
			return fmt.Sprintf("V0, $%03X", word&0x0FFF)
		}
		return fmt.Sprintf("$%03X", word&0x0FFF)
	case chip8.Call:
		return fmt.Sprintf("$%03X", word&0x0FFF)
	case chip8.Ld:
		return formatLoad(word, x, y)
	case chip8.Add:
		switch word & 0xF000 {
		case 0x7000:
			return fmt.Sprintf("V%X, $%02X", x, word&0x00FF)
		case 0xF000:
			return fmt.Sprintf("I, V%X", x)
		}
		return fmt.Sprintf("V%X, V%X", x, y)
	case chip8.Se, chip8.Sne:
		if word&0xF000 == 0x3000 || word&0xF000 == 0x4000 {
			return fmt.Sprintf("V%X, $%02X", x, word&0x00FF)
		}
		return fmt.Sprintf("V%X, V%X", x, y)
	case chip8.Or, chip8.And, chip8.Xor, chip8.Sub, chip8.Subn:
		return fmt.Sprintf("V%X, V%X", x, y)
	case chip8.Shr, chip8.Shl, chip8.Skp, chip8.Sknp:
		return fmt.Sprintf("V%X", x)
	case chip8.Rnd:
		return fmt.Sprintf("V%X, $%02X", x, word&0x00FF)
	case chip8.Drw:
		return fmt.Sprintf("V%X, V%X, $%X", x, y, word&0x000F)
	}
	return ""
}

// formatLoad formats the many forms of the load instruction.
func formatLoad(word, x, y uint16) string {
	switch word & 0xF000 {
	case 0x6000:
		return fmt.Sprintf("V%X, $%02X", x, word&0x00FF)
	case 0x8000:
		return fmt.Sprintf("V%X, V%X", x, y)
	case 0xA000:
		return fmt.Sprintf("I, $%03X", word&0x0FFF)
	}

	switch word & 0x00FF {
	case 0x07:
		return fmt.Sprintf("V%X, DT", x)
	case 0x0A:
		return fmt.Sprintf("V%X, K", x)
	case 0x15:
		return fmt.Sprintf("DT, V%X", x)
	case 0x18:
		return fmt.Sprintf("ST, V%X", x)
	case 0x29:
		return fmt.Sprintf("F, V%X", x)
	case 0x33:
		return fmt.Sprintf("B, V%X", x)
	case 0x55:
		return fmt.Sprintf("[I], V%X", x)
	case 0x65:
		return fmt.Sprintf("V%X, [I]", x)
	}
	return ""
}
