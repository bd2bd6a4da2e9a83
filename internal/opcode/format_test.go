package opcode

import (
	"testing"

	"github.com/retroenv/retrogolib/arch/cpu/chip8"
	"github.com/retroenv/retrogolib/assert"
)

func TestFormat(t *testing.T) {
	tests := []struct {
		word     uint16
		expected string
	}{
		{0x00E0, chip8.ClsInst.Name},
		{0x00EE, chip8.RetInst.Name},
		{0x0123, "sys $123"},
		{0x1234, chip8.JpInst.Name + " $234"},
		{0x2300, chip8.CallInst.Name + " $300"},
		{0x3234, chip8.SeInst.Name + " V2, $34"},
		{0x4A0F, chip8.SneInst.Name + " VA, $0F"},
		{0x5120, chip8.SeInst.Name + " V1, V2"},
		{0x6BFF, chip8.LdInst.Name + " VB, $FF"},
		{0x7C01, chip8.AddInst.Name + " VC, $01"},
		{0x8120, chip8.LdInst.Name + " V1, V2"},
		{0x8121, chip8.OrInst.Name + " V1, V2"},
		{0x8122, chip8.AndInst.Name + " V1, V2"},
		{0x8123, chip8.XorInst.Name + " V1, V2"},
		{0x8124, chip8.AddInst.Name + " V1, V2"},
		{0x8125, chip8.SubInst.Name + " V1, V2"},
		{0x8126, chip8.ShrInst.Name + " V1"},
		{0x8127, chip8.SubnInst.Name + " V1, V2"},
		{0x812E, chip8.ShlInst.Name + " V1"},
		{0x9120, chip8.SneInst.Name + " V1, V2"},
		{0xA234, chip8.LdInst.Name + " I, $234"},
		{0xB234, chip8.JpInst.Name + " V0, $234"},
		{0xC30F, chip8.RndInst.Name + " V3, $0F"},
		{0xD125, chip8.DrwInst.Name + " V1, V2, $5"},
		{0xE49E, chip8.SkpInst.Name + " V4"},
		{0xE4A1, chip8.SknpInst.Name + " V4"},
		{0xF507, chip8.LdInst.Name + " V5, DT"},
		{0xF50A, chip8.LdInst.Name + " V5, K"},
		{0xF515, chip8.LdInst.Name + " DT, V5"},
		{0xF518, chip8.LdInst.Name + " ST, V5"},
		{0xF51E, chip8.AddInst.Name + " I, V5"},
		{0xF529, chip8.LdInst.Name + " F, V5"},
		{0xF533, chip8.LdInst.Name + " B, V5"},
		{0xF555, chip8.LdInst.Name + " [I], V5"},
		{0xF565, chip8.LdInst.Name + " V5, [I]"},
		{0xFFFF, ".byte $FF, $FF"},
		{0x5121, ".byte $51, $21"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, Format(tt.word), "word %04X", tt.word)
	}
}
