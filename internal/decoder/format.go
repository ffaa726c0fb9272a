package decoder

import "fmt"

var kindNames = [kindCount]string{
	Unknown:           "Unknown",
	SysCall:           "SysCall",
	ClearScreen:       "ClearScreen",
	ReturnFromSub:     "ReturnFromSub",
	Jump:              "Jump",
	Call:              "Call",
	SkipEquals:        "SkipEquals",
	SkipNotEquals:     "SkipNotEquals",
	SkipRegEquals:     "SkipRegEquals",
	SetReg:            "SetReg",
	AddConst:          "AddConst",
	CopyReg:           "CopyReg",
	OrReg:             "OrReg",
	AndReg:            "AndReg",
	XorReg:            "XorReg",
	AddReg:            "AddReg",
	SubReg:            "SubReg",
	RightShiftReg:     "RightShiftReg",
	SubRegRev:         "SubRegRev",
	LeftShiftReg:      "LeftShiftReg",
	SkipRegNotEquals:  "SkipRegNotEquals",
	SetAddressReg:     "SetAddressReg",
	JumpIndirect:      "JumpIndirect",
	RandomNumber:      "RandomNumber",
	DrawSprite:        "DrawSprite",
	KeyIsPressed:      "KeyIsPressed",
	KeyIsntPressed:    "KeyIsntPressed",
	ReadDelayTimer:    "ReadDelayTimer",
	AwaitKeyPress:     "AwaitKeyPress",
	SetDelayTimer:     "SetDelayTimer",
	SetSoundTimer:     "SetSoundTimer",
	AddAddressReg:     "AddAddressReg",
	AddressKeySprite:  "AddressKeySprite",
	StoreBCDAtAddress: "StoreBCDAtAddress",
	StoreRegisters:    "StoreRegisters",
	LoadRegisters:     "LoadRegisters",
}

// String returns the name of the kind.
func (k Kind) String() string {
	if k >= kindCount {
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
	return kindNames[k]
}

// String returns a debug representation of the instruction including its
// meaningful operands, for example "AddReg(VA, VB)".
func (i Instruction) String() string {
	name := i.Kind.String()

	switch i.Kind {
	case ClearScreen, ReturnFromSub:
		return name
	case Unknown:
		return fmt.Sprintf("%s(0x%04X)", name, i.Word)
	case SysCall, Jump, Call, SetAddressReg, JumpIndirect:
		return fmt.Sprintf("%s(0x%03X)", name, i.Addr)
	case SkipEquals, SkipNotEquals, SetReg, AddConst, RandomNumber:
		return fmt.Sprintf("%s(V%X, 0x%02X)", name, i.X, i.Byte)
	case DrawSprite:
		return fmt.Sprintf("%s(V%X, V%X, %d)", name, i.X, i.Y, i.N)
	case KeyIsPressed, KeyIsntPressed, ReadDelayTimer, AwaitKeyPress,
		SetDelayTimer, SetSoundTimer, AddAddressReg, AddressKeySprite,
		StoreBCDAtAddress, StoreRegisters, LoadRegisters:
		return fmt.Sprintf("%s(V%X)", name, i.X)
	default:
		return fmt.Sprintf("%s(V%X, V%X)", name, i.X, i.Y)
	}
}
