package machine

import "fmt"

// Register returns the value of register Vx.
func (s *State) Register(x int) (byte, error) {
	if x < 0 || x >= RegisterCount {
		return 0, fmt.Errorf("register %d: %w", x, ErrOutOfRange)
	}
	return s.V[x], nil
}

// SetRegister sets register Vx to value.
func (s *State) SetRegister(x int, value byte) error {
	if x < 0 || x >= RegisterCount {
		return fmt.Errorf("register %d: %w", x, ErrOutOfRange)
	}
	s.V[x] = value
	return nil
}

// ReadMemory returns the byte at the given address.
func (s *State) ReadMemory(address int) (byte, error) {
	if address < 0 || address > MaxAddress {
		return 0, fmt.Errorf("memory address %#04x: %w", address, ErrOutOfRange)
	}
	return s.Memory[address], nil
}

// WriteMemory writes a byte to the given address.
func (s *State) WriteMemory(address int, value byte) error {
	if address < 0 || address > MaxAddress {
		return fmt.Errorf("memory address %#04x: %w", address, ErrOutOfRange)
	}
	s.Memory[address] = value
	return nil
}

// MemoryRange returns the length bytes of memory starting at address.
// The returned slice aliases the machine memory, writes to it change the
// state directly.
func (s *State) MemoryRange(address, length int) ([]byte, error) {
	if address < 0 || length < 0 || address+length > MemorySize {
		return nil, fmt.Errorf("memory range %#04x+%d: %w", address, length, ErrOutOfRange)
	}
	return s.Memory[address : address+length], nil
}

// InDisplay returns whether the coordinate lies within the visible display.
func InDisplay(x, y int) bool {
	return x >= 0 && x < DisplayWidth && y >= 0 && y < DisplayHeight
}

// Pixel returns whether the pixel at x,y is set.
func (s *State) Pixel(x, y int) (bool, error) {
	if !InDisplay(x, y) {
		return false, fmt.Errorf("pixel %d,%d: %w", x, y, ErrOutOfRange)
	}
	return s.Framebuffer[y*DisplayWidth+x], nil
}

// SetPixel sets the pixel at x,y and flags a redraw if it changed.
func (s *State) SetPixel(x, y int, on bool) error {
	if !InDisplay(x, y) {
		return fmt.Errorf("pixel %d,%d: %w", x, y, ErrOutOfRange)
	}
	i := y*DisplayWidth + x
	if s.Framebuffer[i] != on {
		s.Framebuffer[i] = on
		s.NeedsRedraw = true
	}
	return nil
}

// FlipPixel XORs the pixel at x,y and returns whether it was turned off,
// which is a sprite collision.
func (s *State) FlipPixel(x, y int) (bool, error) {
	if !InDisplay(x, y) {
		return false, fmt.Errorf("pixel %d,%d: %w", x, y, ErrOutOfRange)
	}
	i := y*DisplayWidth + x
	wasSet := s.Framebuffer[i]
	s.Framebuffer[i] = !wasSet
	s.NeedsRedraw = true
	return wasSet, nil
}

// ClearScreen turns off all pixels and flags a redraw.
func (s *State) ClearScreen() {
	s.Framebuffer = [DisplayWidth * DisplayHeight]bool{}
	s.NeedsRedraw = true
}

// Key returns whether the hexadecimal key k is pressed.
func (s *State) Key(k int) (bool, error) {
	if k < 0 || k >= KeyCount {
		return false, fmt.Errorf("key %d: %w", k, ErrOutOfRange)
	}
	return s.Keys[k], nil
}

// SetKey sets the pressed state of the hexadecimal key k.
func (s *State) SetKey(k int, pressed bool) error {
	if k < 0 || k >= KeyCount {
		return fmt.Errorf("key %d: %w", k, ErrOutOfRange)
	}
	s.Keys[k] = pressed
	return nil
}

// ReleaseKeys marks all keys as released.
func (s *State) ReleaseKeys() {
	s.Keys = [KeyCount]bool{}
}

// PressedKey returns the highest index of all currently pressed keys.
func (s *State) PressedKey() (int, bool) {
	for k := KeyCount - 1; k >= 0; k-- {
		if s.Keys[k] {
			return k, true
		}
	}
	return 0, false
}

// Push stores a return address on the stack.
// The stack is left unchanged if it is full.
func (s *State) Push(address uint16) error {
	if int(s.SP) >= StackDepth {
		return fmt.Errorf("pushing %#04x: %w", address, ErrStackOverflow)
	}
	s.Stack[s.SP] = address
	s.SP++
	return nil
}

// Pop removes and returns the most recently pushed return address.
func (s *State) Pop() (uint16, error) {
	if s.SP == 0 {
		return 0, ErrStackUnderflow
	}
	if int(s.SP) > StackDepth {
		return 0, fmt.Errorf("stack pointer %d: %w", s.SP, ErrOutOfRange)
	}
	s.SP--
	return s.Stack[s.SP], nil
}
