// Package decoder maps 16-bit CHIP-8 opcode words to instructions.
//
// Decoding is total: every possible word maps to exactly one Kind. Words that
// do not match a known pattern of their family decode to Unknown, words of
// the form 0NNN other than 00E0 and 00EE decode to SysCall. The low nibble of
// the register comparisons 5XYN and 9XYN is ignored.
package decoder

// Kind identifies the decoded instruction variant.
type Kind uint8

// Instruction kinds. The comment lists the opcode pattern.
const (
	Unknown           Kind = iota // ????
	SysCall                       // 0NNN
	ClearScreen                   // 00E0
	ReturnFromSub                 // 00EE
	Jump                          // 1NNN
	Call                          // 2NNN
	SkipEquals                    // 3XNN
	SkipNotEquals                 // 4XNN
	SkipRegEquals                 // 5XY0
	SetReg                        // 6XNN
	AddConst                      // 7XNN
	CopyReg                       // 8XY0
	OrReg                         // 8XY1
	AndReg                        // 8XY2
	XorReg                        // 8XY3
	AddReg                        // 8XY4
	SubReg                        // 8XY5
	RightShiftReg                 // 8XY6
	SubRegRev                     // 8XY7
	LeftShiftReg                  // 8XYE
	SkipRegNotEquals              // 9XY0
	SetAddressReg                 // ANNN
	JumpIndirect                  // BNNN
	RandomNumber                  // CXNN
	DrawSprite                    // DXYN
	KeyIsPressed                  // EX9E
	KeyIsntPressed                // EXA1
	ReadDelayTimer                // FX07
	AwaitKeyPress                 // FX0A
	SetDelayTimer                 // FX15
	SetSoundTimer                 // FX18
	AddAddressReg                 // FX1E
	AddressKeySprite              // FX29
	StoreBCDAtAddress             // FX33
	StoreRegisters                // FX55
	LoadRegisters                 // FX65

	kindCount
)

// Instruction is a decoded opcode. All operand fields are extracted
// positionally for every word, Kind determines which of them are meaningful.
type Instruction struct {
	Kind Kind
	Word uint16 // raw opcode word

	X    uint8  // register operand in bits 8-11
	Y    uint8  // register operand in bits 4-7
	N    uint8  // low nibble
	Byte uint8  // 8-bit immediate, low byte
	Addr uint16 // 12-bit address literal
}

// Decode maps a 16-bit word to its instruction.
func Decode(word uint16) Instruction {
	ins := Instruction{
		Word: word,
		X:    uint8(word>>8) & 0xF,
		Y:    uint8(word>>4) & 0xF,
		N:    uint8(word) & 0xF,
		Byte: uint8(word),
		Addr: word & 0x0FFF,
	}
	ins.Kind = decodeKind(word, ins.N)
	return ins
}

func decodeKind(word uint16, n uint8) Kind {
	switch word >> 12 {
	case 0x0:
		return decodeSystem(word)
	case 0x1:
		return Jump
	case 0x2:
		return Call
	case 0x3:
		return SkipEquals
	case 0x4:
		return SkipNotEquals
	case 0x5:
		return SkipRegEquals
	case 0x6:
		return SetReg
	case 0x7:
		return AddConst
	case 0x8:
		return decodeALU(n)
	case 0x9:
		return SkipRegNotEquals
	case 0xA:
		return SetAddressReg
	case 0xB:
		return JumpIndirect
	case 0xC:
		return RandomNumber
	case 0xD:
		return DrawSprite
	case 0xE:
		return decodeKeypad(uint8(word))
	default:
		return decodeMisc(uint8(word))
	}
}

func decodeSystem(word uint16) Kind {
	switch word {
	case 0x00E0:
		return ClearScreen
	case 0x00EE:
		return ReturnFromSub
	default:
		return SysCall
	}
}

func decodeALU(n uint8) Kind {
	switch n {
	case 0x0:
		return CopyReg
	case 0x1:
		return OrReg
	case 0x2:
		return AndReg
	case 0x3:
		return XorReg
	case 0x4:
		return AddReg
	case 0x5:
		return SubReg
	case 0x6:
		return RightShiftReg
	case 0x7:
		return SubRegRev
	case 0xE:
		return LeftShiftReg
	default:
		return Unknown
	}
}

func decodeKeypad(low uint8) Kind {
	switch low {
	case 0x9E:
		return KeyIsPressed
	case 0xA1:
		return KeyIsntPressed
	default:
		return Unknown
	}
}

var miscKinds = map[uint8]Kind{
	0x07: ReadDelayTimer,
	0x0A: AwaitKeyPress,
	0x15: SetDelayTimer,
	0x18: SetSoundTimer,
	0x1E: AddAddressReg,
	0x29: AddressKeySprite,
	0x33: StoreBCDAtAddress,
	0x55: StoreRegisters,
	0x65: LoadRegisters,
}

func decodeMisc(low uint8) Kind {
	if kind, ok := miscKinds[low]; ok {
		return kind
	}
	return Unknown
}
