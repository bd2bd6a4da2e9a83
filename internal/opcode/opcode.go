// Package opcode decodes CHIP-8 instruction words.
//
// Every CHIP-8 instruction is a big-endian 16 bit word. The top nibble
// selects an instruction family, the 0, 8, E and F families are further
// distinguished by their low nibble or low byte. Decoding matches the word
// against a mask/value table grouped by the top nibble.
package opcode

import (
	"github.com/retroenv/retrogolib/arch/cpu/chip8"
)

// Size is the size of a CHIP-8 instruction in bytes.
const Size = 2

// Op identifies one of the 35 instruction forms.
type Op uint8

// Instruction forms of the base instruction set.
const (
	Sys      Op = iota // 0NNN call machine code routine (ignored)
	Cls                // 00E0 clear the display
	Ret                // 00EE return from subroutine
	Jp                 // 1NNN jump
	Call               // 2NNN call subroutine
	SeByte             // 3XNN skip if Vx == NN
	SneByte            // 4XNN skip if Vx != NN
	SeReg              // 5XY0 skip if Vx == Vy
	LdByte             // 6XNN Vx = NN
	AddByte            // 7XNN Vx += NN
	LdReg              // 8XY0 Vx = Vy
	Or                 // 8XY1 Vx |= Vy
	And                // 8XY2 Vx &= Vy
	Xor                // 8XY3 Vx ^= Vy
	AddReg             // 8XY4 Vx += Vy with carry
	Sub                // 8XY5 Vx -= Vy with borrow
	Shr                // 8XY6 Vx >>= 1
	Subn               // 8XY7 Vx = Vy - Vx with borrow
	Shl                // 8XYE Vx <<= 1
	SneReg             // 9XY0 skip if Vx != Vy
	LdI                // ANNN I = NNN
	JpV0               // BNNN jump to NNN + V0
	Rnd                // CXNN Vx = random & NN
	Drw                // DXYN draw sprite
	Skp                // EX9E skip if key Vx pressed
	Sknp               // EXA1 skip if key Vx not pressed
	LdVxDT             // FX07 Vx = delay timer
	LdVxK              // FX0A wait for key press
	LdDTVx             // FX15 delay timer = Vx
	LdSTVx             // FX18 sound timer = Vx
	AddI               // FX1E I += Vx
	LdF                // FX29 I = font glyph of Vx
	LdB                // FX33 store BCD of Vx
	LdIVx              // FX55 store V0..Vx
	LdVxI              // FX65 load V0..Vx

	opCount
)

// Count is the number of instruction forms.
const Count = int(opCount)

// Info describes the encoding of an instruction form.
type Info struct {
	Mask  uint16
	Value uint16
}

// Opcode is a decoded instruction form.
type Opcode struct {
	Info        Info
	Op          Op
	Instruction *chip8.Instruction // nil for sys
}

// Name returns the instruction mnemonic.
func (o Opcode) Name() string {
	if o.Instruction == nil {
		return "sys"
	}
	return o.Instruction.Name
}

// IsJump returns true for unconditional jumps with an absolute target.
func (o Opcode) IsJump() bool {
	return o.Op == Jp
}

// IsCall returns true for subroutine calls.
func (o Opcode) IsCall() bool {
	return o.Op == Call
}

// IsReturn returns true for subroutine returns.
func (o Opcode) IsReturn() bool {
	return o.Op == Ret
}

// IsSkip returns true for conditional skip instructions.
func (o Opcode) IsSkip() bool {
	if o.Instruction == nil {
		return false
	}
	return chip8.SkipInstructions.Contains(o.Instruction.Name)
}

// IsDataReference returns true if the instruction loads an absolute data
// address into the index register.
func (o Opcode) IsDataReference() bool {
	return o.Op == LdI
}

// EndsFlow returns true if execution never continues with the directly
// following instruction.
func (o Opcode) EndsFlow() bool {
	switch o.Op {
	case Jp, JpV0, Ret:
		return true
	default:
		return false
	}
}

// opcodes contains all instruction forms grouped by the top nibble.
// Within a group more specific masks come first.
var opcodes = [16][]Opcode{
	0x0: {
		{Info{0xFFFF, 0x00E0}, Cls, chip8.ClsInst},
		{Info{0xFFFF, 0x00EE}, Ret, chip8.RetInst},
		{Info{0xF000, 0x0000}, Sys, nil},
	},
	0x1: {{Info{0xF000, 0x1000}, Jp, chip8.JpInst}},
	0x2: {{Info{0xF000, 0x2000}, Call, chip8.CallInst}},
	0x3: {{Info{0xF000, 0x3000}, SeByte, chip8.SeInst}},
	0x4: {{Info{0xF000, 0x4000}, SneByte, chip8.SneInst}},
	0x5: {{Info{0xF00F, 0x5000}, SeReg, chip8.SeInst}},
	0x6: {{Info{0xF000, 0x6000}, LdByte, chip8.LdInst}},
	0x7: {{Info{0xF000, 0x7000}, AddByte, chip8.AddInst}},
	0x8: {
		{Info{0xF00F, 0x8000}, LdReg, chip8.LdInst},
		{Info{0xF00F, 0x8001}, Or, chip8.OrInst},
		{Info{0xF00F, 0x8002}, And, chip8.AndInst},
		{Info{0xF00F, 0x8003}, Xor, chip8.XorInst},
		{Info{0xF00F, 0x8004}, AddReg, chip8.AddInst},
		{Info{0xF00F, 0x8005}, Sub, chip8.SubInst},
		{Info{0xF00F, 0x8006}, Shr, chip8.ShrInst},
		{Info{0xF00F, 0x8007}, Subn, chip8.SubnInst},
		{Info{0xF00F, 0x800E}, Shl, chip8.ShlInst},
	},
	0x9: {{Info{0xF00F, 0x9000}, SneReg, chip8.SneInst}},
	0xA: {{Info{0xF000, 0xA000}, LdI, chip8.LdInst}},
	0xB: {{Info{0xF000, 0xB000}, JpV0, chip8.JpInst}},
	0xC: {{Info{0xF000, 0xC000}, Rnd, chip8.RndInst}},
	0xD: {{Info{0xF000, 0xD000}, Drw, chip8.DrwInst}},
	0xE: {
		{Info{0xF0FF, 0xE09E}, Skp, chip8.SkpInst},
		{Info{0xF0FF, 0xE0A1}, Sknp, chip8.SknpInst},
	},
	0xF: {
		{Info{0xF0FF, 0xF007}, LdVxDT, chip8.LdInst},
		{Info{0xF0FF, 0xF00A}, LdVxK, chip8.LdInst},
		{Info{0xF0FF, 0xF015}, LdDTVx, chip8.LdInst},
		{Info{0xF0FF, 0xF018}, LdSTVx, chip8.LdInst},
		{Info{0xF0FF, 0xF01E}, AddI, chip8.AddInst},
		{Info{0xF0FF, 0xF029}, LdF, chip8.LdInst},
		{Info{0xF0FF, 0xF033}, LdB, chip8.LdInst},
		{Info{0xF0FF, 0xF055}, LdIVx, chip8.LdInst},
		{Info{0xF0FF, 0xF065}, LdVxI, chip8.LdInst},
	},
}

// Decode returns the instruction form of the given instruction word.
func Decode(word uint16) (Opcode, bool) {
	for _, op := range opcodes[word>>12] {
		if word&op.Info.Mask == op.Info.Value {
			return op, true
		}
	}
	return Opcode{}, false
}

// Word combines two instruction bytes into a big-endian instruction word.
func Word(high, low byte) uint16 {
	return uint16(high)<<8 | uint16(low)
}

// RegisterX extracts the X register nibble.
func RegisterX(word uint16) int {
	return int(word&0x0F00) >> 8
}

// RegisterY extracts the Y register nibble.
func RegisterY(word uint16) int {
	return int(word&0x00F0) >> 4
}

// Nibble extracts the lowest nibble N.
func Nibble(word uint16) byte {
	return byte(word & 0x000F)
}

// Byte extracts the immediate byte NN.
func Byte(word uint16) byte {
	return byte(word & 0x00FF)
}

// Address extracts the 12 bit address NNN.
func Address(word uint16) uint16 {
	return word & 0x0FFF
}
