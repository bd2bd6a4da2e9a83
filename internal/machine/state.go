// Package machine contains the CHIP-8 machine state model: memory, registers,
// timers, call stack, framebuffer and the hexadecimal key matrix.
//
// The state owns no execution behavior. It is mutated by the interpreter
// and by the host, which loads programs and updates the key matrix between
// interpreter steps.
package machine

import (
	"fmt"
	"strings"
)

// CHIP-8 memory layout and machine dimensions.
//
//	0x000-0x04F: built-in font set (16 glyphs, 5 bytes each)
//	0x050-0x1FF: reserved interpreter area
//	0x200-0xFFF: program space
const (
	// MemorySize is the size of the flat address space in bytes.
	MemorySize = 0x1000
	// MaxAddress is the highest addressable memory location.
	MaxAddress = MemorySize - 1
	// ProgramStart is the address programs are loaded to and executed from.
	ProgramStart = 0x200
	// MaxProgramSize is the largest program image that fits behind ProgramStart.
	MaxProgramSize = MemorySize - ProgramStart

	RegisterCount = 16
	// FlagRegister is the index of VF, the implicit flag output register.
	FlagRegister = 0xF

	StackDepth = 16
	KeyCount   = 16

	DisplayWidth  = 64
	DisplayHeight = 32
)

// State holds the complete mutable state of a CHIP-8 machine.
// A State must not be used from multiple goroutines concurrently, the host
// serializes all access between interpreter steps.
type State struct {
	Memory [MemorySize]byte

	V  [RegisterCount]byte // general purpose registers V0-VF
	I  uint16              // index register
	PC uint16              // address of the next instruction to fetch

	Stack [StackDepth]uint16
	SP    uint8 // next free stack slot

	DelayTimer byte
	SoundTimer byte

	Framebuffer [DisplayWidth * DisplayHeight]bool
	Keys        [KeyCount]bool

	// NeedsRedraw is set whenever the framebuffer changes and is
	// cleared by the host once the frame has been presented.
	NeedsRedraw bool
}

// New returns a machine state in its power-on configuration.
func New() *State {
	s := &State{}
	s.Reset()
	return s
}

// Reset restores the power-on state: all registers, timers and the stack
// are zeroed, memory is cleared except for the font set, the framebuffer
// is cleared and the program counter points to ProgramStart.
func (s *State) Reset() {
	*s = State{
		PC: ProgramStart,
	}
	copy(s.Memory[FontStart:], fontSet[:])
}

// LoadProgram copies the program image into memory starting at
// ProgramStart. It does not reset any other state, call Reset first for a
// clean restart. Memory is left untouched if the program does not fit.
func (s *State) LoadProgram(program []byte) error {
	if len(program) > MaxProgramSize {
		return fmt.Errorf("%w: %d bytes exceeds maximum of %d bytes",
			ErrProgramTooLarge, len(program), MaxProgramSize)
	}
	copy(s.Memory[ProgramStart:], program)
	return nil
}

// String returns a compact single line summary of the CPU registers.
func (s *State) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "PC:%04X I:%04X SP:%d DT:%02X ST:%02X V:", s.PC, s.I, s.SP, s.DelayTimer, s.SoundTimer)
	for i, v := range s.V {
		if i > 0 {
			b.WriteByte(' ')
		}
		fmt.Fprintf(&b, "%02X", v)
	}
	return b.String()
}
