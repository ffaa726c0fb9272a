package decoder

import (
	"strings"
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

func TestDecode(t *testing.T) {
	tests := []struct {
		name string
		word uint16
		kind Kind
	}{
		{"clear screen", 0x00E0, ClearScreen},
		{"return", 0x00EE, ReturnFromSub},
		{"system call", 0x0123, SysCall},
		{"system call zero", 0x0000, SysCall},
		{"jump", 0x1ABC, Jump},
		{"call", 0x2ABC, Call},
		{"skip equals", 0x3A06, SkipEquals},
		{"skip not equals", 0x4A06, SkipNotEquals},
		{"skip reg equals", 0x5AB0, SkipRegEquals},
		{"skip reg equals ignores low nibble", 0x5AB1, SkipRegEquals},
		{"set reg", 0x6A05, SetReg},
		{"add const", 0x7A01, AddConst},
		{"copy reg", 0x8AB0, CopyReg},
		{"or reg", 0x8AB1, OrReg},
		{"and reg", 0x8AB2, AndReg},
		{"xor reg", 0x8AB3, XorReg},
		{"add reg", 0x8AB4, AddReg},
		{"sub reg", 0x8AB5, SubReg},
		{"right shift", 0x8AB6, RightShiftReg},
		{"sub reg rev", 0x8AB7, SubRegRev},
		{"left shift", 0x8ABE, LeftShiftReg},
		{"alu unknown", 0x8AB8, Unknown},
		{"skip reg not equals", 0x9AB0, SkipRegNotEquals},
		{"skip reg not equals ignores low nibble", 0x9ABF, SkipRegNotEquals},
		{"set address", 0xA123, SetAddressReg},
		{"jump indirect", 0xB123, JumpIndirect},
		{"random", 0xC3F0, RandomNumber},
		{"draw", 0xD125, DrawSprite},
		{"key pressed", 0xE19E, KeyIsPressed},
		{"key not pressed", 0xE1A1, KeyIsntPressed},
		{"keypad unknown", 0xE1A2, Unknown},
		{"read delay", 0xF107, ReadDelayTimer},
		{"await key", 0xF10A, AwaitKeyPress},
		{"set delay", 0xF115, SetDelayTimer},
		{"set sound", 0xF118, SetSoundTimer},
		{"add address", 0xF11E, AddAddressReg},
		{"key sprite", 0xF129, AddressKeySprite},
		{"bcd", 0xF133, StoreBCDAtAddress},
		{"store registers", 0xF155, StoreRegisters},
		{"load registers", 0xF165, LoadRegisters},
		{"misc unknown", 0xF1FF, Unknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ins := Decode(tt.word)
			assert.Equal(t, tt.kind, ins.Kind)
			assert.Equal(t, tt.word, ins.Word)
		})
	}
}

func TestDecodeFields(t *testing.T) {
	ins := Decode(0xD12F)
	assert.Equal(t, uint8(0x1), ins.X)
	assert.Equal(t, uint8(0x2), ins.Y)
	assert.Equal(t, uint8(0xF), ins.N)
	assert.Equal(t, uint8(0x2F), ins.Byte)
	assert.Equal(t, uint16(0x12F), ins.Addr)

	ins = Decode(0x2FFE)
	assert.Equal(t, Call, ins.Kind)
	assert.Equal(t, uint16(0xFFE), ins.Addr)
}

func TestDecodeIsTotal(t *testing.T) {
	var counts [kindCount]int
	for w := 0; w <= 0xFFFF; w++ {
		ins := Decode(uint16(w))
		assert.True(t, ins.Kind < kindCount)
		assert.Equal(t, uint16(w), ins.Word)
		counts[ins.Kind]++
	}

	// every variant is reachable
	for kind, count := range counts {
		assert.True(t, count > 0, Kind(kind).String())
	}
	assert.Equal(t, 1, counts[ClearScreen])
	assert.Equal(t, 1, counts[ReturnFromSub])
	assert.Equal(t, 0x1000-2, counts[SysCall])
	assert.Equal(t, 0x1000, counts[Jump])
	assert.Equal(t, 0x1000, counts[SkipRegEquals])
	assert.Equal(t, 0x1000, counts[SkipRegNotEquals])
}

func TestInstructionString(t *testing.T) {
	tests := []struct {
		word     uint16
		expected string
	}{
		{0x00E0, "ClearScreen"},
		{0x1234, "Jump(0x234)"},
		{0x6A05, "SetReg(VA, 0x05)"},
		{0x8AB4, "AddReg(VA, VB)"},
		{0xD125, "DrawSprite(V1, V2, 5)"},
		{0xF733, "StoreBCDAtAddress(V7)"},
		{0xFFFF, "Unknown(0xFFFF)"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, Decode(tt.word).String())
		})
	}
}

func TestKindString(t *testing.T) {
	for k := Unknown; k < kindCount; k++ {
		assert.NotEmpty(t, k.String())
	}
	assert.True(t, strings.HasPrefix(Kind(200).String(), "Kind("))
}
