package interpreter

import (
	"fmt"

	"github.com/retroenv/chip8vm/internal/machine"
	"github.com/retroenv/chip8vm/internal/opcode"
)

const spriteWidth = 8

// execute applies the instruction to the state and advances the program
// counter. It returns true if the instruction is waiting for a key press,
// in which case the state is unchanged.
// Instructions that can fail validate all accesses before modifying the
// state.
func (in *Interpreter) execute(s *machine.State, op opcode.Opcode, word uint16) (bool, error) {
	x := opcode.RegisterX(word)
	y := opcode.RegisterY(word)
	nn := opcode.Byte(word)
	nnn := opcode.Address(word)
	next := s.PC + opcode.Size

	switch op.Op {
	// 0NNN: machine code routines are not supported
	case opcode.Sys:

	// 00E0: clear the display
	case opcode.Cls:
		s.ClearScreen()

	// 00EE: PC = pop()
	case opcode.Ret:
		address, err := s.Pop()
		if err != nil {
			return false, err
		}
		next = address

	// 1NNN: PC = NNN
	case opcode.Jp:
		next = nnn

	// 2NNN: push(PC + 2), PC = NNN
	case opcode.Call:
		if err := s.Push(next); err != nil {
			return false, err
		}
		next = nnn

	// 3XNN: skip if VX == NN
	case opcode.SeByte:
		if s.V[x] == nn {
			next += opcode.Size
		}

	// 4XNN: skip if VX != NN
	case opcode.SneByte:
		if s.V[x] != nn {
			next += opcode.Size
		}

	// 5XY0: skip if VX == VY
	case opcode.SeReg:
		if s.V[x] == s.V[y] {
			next += opcode.Size
		}

	// 9XY0: skip if VX != VY
	case opcode.SneReg:
		if s.V[x] != s.V[y] {
			next += opcode.Size
		}

	// 6XNN: VX = NN
	case opcode.LdByte:
		s.V[x] = nn

	// 7XNN: VX += NN, VF is not affected
	case opcode.AddByte:
		s.V[x] += nn

	case opcode.LdReg, opcode.Or, opcode.And, opcode.Xor, opcode.AddReg,
		opcode.Sub, opcode.Shr, opcode.Subn, opcode.Shl:
		executeArithmetic(s, op.Op, x, y)

	// ANNN: I = NNN
	case opcode.LdI:
		s.I = nnn

	// BNNN: PC = NNN + V0
	case opcode.JpV0:
		next = nnn + uint16(s.V[0])

	// CXNN: VX = random & NN
	case opcode.Rnd:
		s.V[x] = byte(in.random.Uint32()) & nn

	// DXYN: draw N byte sprite from [I] at VX,VY, VF = collision
	case opcode.Drw:
		if err := draw(s, x, y, int(opcode.Nibble(word))); err != nil {
			return false, err
		}

	// EX9E: skip if key VX is pressed
	case opcode.Skp:
		pressed, err := s.Key(int(s.V[x]))
		if err != nil {
			return false, err
		}
		if pressed {
			next += opcode.Size
		}

	// EXA1: skip if key VX is not pressed
	case opcode.Sknp:
		pressed, err := s.Key(int(s.V[x]))
		if err != nil {
			return false, err
		}
		if !pressed {
			next += opcode.Size
		}

	// FX0A: VX = key, repeats until a key is pressed
	case opcode.LdVxK:
		key, ok := s.PressedKey()
		if !ok {
			return true, nil
		}
		s.V[x] = byte(key)

	default:
		if err := executeTimerMemory(s, op.Op, x); err != nil {
			return false, err
		}
	}

	s.PC = next
	return false, nil
}

// executeArithmetic executes the 8XYN register instructions.
// Flags are computed from the operands before VF is written, VX is written
// last so that a result for VF as target overrides the flag.
func executeArithmetic(s *machine.State, op opcode.Op, x, y int) {
	vx, vy := s.V[x], s.V[y]

	switch op {
	// 8XY0: VX = VY
	case opcode.LdReg:
		s.V[x] = vy

	// 8XY1: VX |= VY
	case opcode.Or:
		s.V[x] = vx | vy

	// 8XY2: VX &= VY
	case opcode.And:
		s.V[x] = vx & vy

	// 8XY3: VX ^= VY
	case opcode.Xor:
		s.V[x] = vx ^ vy

	// 8XY4: VX += VY, VF = carry
	case opcode.AddReg:
		sum := uint16(vx) + uint16(vy)
		s.V[machine.FlagRegister] = boolToByte(sum > 0xFF)
		s.V[x] = byte(sum)

	// 8XY5: VX -= VY, VF = not borrow
	case opcode.Sub:
		s.V[machine.FlagRegister] = boolToByte(vx >= vy)
		s.V[x] = vx - vy

	// 8XY7: VX = VY - VX, VF = not borrow
	case opcode.Subn:
		s.V[machine.FlagRegister] = boolToByte(vy >= vx)
		s.V[x] = vy - vx

	// 8XY6: VF = lowest bit, VX >>= 1
	case opcode.Shr:
		s.V[machine.FlagRegister] = vx & 0x01
		s.V[x] = vx >> 1

	// 8XYE: VF = highest bit, VX <<= 1
	case opcode.Shl:
		s.V[machine.FlagRegister] = vx >> 7
		s.V[x] = vx << 1
	}
}

// executeTimerMemory executes the FXNN timer, index and memory instructions
// that do not wait for input.
func executeTimerMemory(s *machine.State, op opcode.Op, x int) error {
	switch op {
	// FX07: VX = delay timer
	case opcode.LdVxDT:
		s.V[x] = s.DelayTimer

	// FX15: delay timer = VX
	case opcode.LdDTVx:
		s.DelayTimer = s.V[x]

	// FX18: sound timer = VX
	case opcode.LdSTVx:
		s.SoundTimer = s.V[x]

	// FX1E: I += VX, VF = I overflowed the address space
	case opcode.AddI:
		sum := uint32(s.I) + uint32(s.V[x])
		s.V[machine.FlagRegister] = boolToByte(sum > machine.MaxAddress)
		s.I = uint16(sum & machine.MaxAddress)

	// FX29: I = address of font glyph VX
	case opcode.LdF:
		s.I = machine.FontAddress(s.V[x])

	// FX33: [I] = hundreds, [I+1] = tens, [I+2] = ones of VX
	case opcode.LdB:
		digits, err := s.MemoryRange(int(s.I), 3)
		if err != nil {
			return err
		}
		value := s.V[x]
		digits[0] = value / 100
		digits[1] = value / 10 % 10
		digits[2] = value % 10

	// FX55: [I..I+X] = V0..VX
	case opcode.LdIVx:
		data, err := s.MemoryRange(int(s.I), x+1)
		if err != nil {
			return err
		}
		copy(data, s.V[:x+1])

	// FX65: V0..VX = [I..I+X]
	case opcode.LdVxI:
		data, err := s.MemoryRange(int(s.I), x+1)
		if err != nil {
			return err
		}
		copy(s.V[:x+1], data)

	default:
		return fmt.Errorf("unsupported instruction form %d", op)
	}
	return nil
}

// draw XORs a sprite of height rows read from [I] onto the framebuffer at
// VX,VY. Pixels outside of the display are clipped. VF is set to 1 if any
// set pixel was turned off.
func draw(s *machine.State, x, y, height int) error {
	sprite, err := s.MemoryRange(int(s.I), height)
	if err != nil {
		return err
	}

	originX := int(s.V[x])
	originY := int(s.V[y])
	collision := false

	for row, line := range sprite {
		for col := range spriteWidth {
			if line&(0x80>>col) == 0 {
				continue
			}
			px, py := originX+col, originY+row
			if !machine.InDisplay(px, py) {
				continue
			}
			wasSet, _ := s.FlipPixel(px, py) // coordinates are validated above
			collision = collision || wasSet
		}
	}

	s.V[machine.FlagRegister] = boolToByte(collision)
	s.NeedsRedraw = true
	return nil
}

func boolToByte(b bool) byte {
	if b {
		return 1
	}
	return 0
}
