package machine

import (
	"errors"
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

func TestNew(t *testing.T) {
	s := New()

	assert.Equal(t, uint16(ProgramStart), s.PC)
	assert.Equal(t, uint16(0), s.I)
	assert.Equal(t, uint8(0), s.SP)
	assert.Equal(t, byte(0), s.DelayTimer)
	assert.Equal(t, byte(0), s.SoundTimer)
	assert.False(t, s.NeedsRedraw)

	// glyph for 0 and F
	assert.Equal(t, byte(0xF0), s.Memory[0x000])
	assert.Equal(t, byte(0x80), s.Memory[0x04F])
	assert.Equal(t, byte(0), s.Memory[0x050])
}

func TestReset(t *testing.T) {
	s := New()
	s.V[3] = 0x42
	s.I = 0x300
	s.PC = 0x456
	s.SP = 4
	s.DelayTimer = 9
	s.SoundTimer = 7
	s.Memory[0x200] = 0xAB
	s.Memory[0x010] = 0x00
	s.Framebuffer[100] = true
	s.Keys[5] = true
	s.NeedsRedraw = true

	s.Reset()
	s.Reset()

	assert.Equal(t, *New(), *s)
}

func TestLoadProgram(t *testing.T) {
	tests := []struct {
		name    string
		size    int
		wantErr bool
	}{
		{"empty", 0, false},
		{"small", 4, false},
		{"maximum", MaxProgramSize, false},
		{"too large", MaxProgramSize + 1, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New()
			program := make([]byte, tt.size)
			for i := range program {
				program[i] = byte(i) | 1
			}

			err := s.LoadProgram(program)
			if tt.wantErr {
				assert.True(t, errors.Is(err, ErrProgramTooLarge))
				assert.Equal(t, byte(0), s.Memory[ProgramStart])
				return
			}

			assert.NoError(t, err)
			assert.Equal(t, program, s.Memory[ProgramStart:ProgramStart+tt.size])
		})
	}
}

func TestLoadProgramKeepsState(t *testing.T) {
	s := New()
	s.V[1] = 0x11
	s.PC = 0x300

	assert.NoError(t, s.LoadProgram([]byte{0x00, 0xE0}))
	assert.Equal(t, byte(0x11), s.V[1])
	assert.Equal(t, uint16(0x300), s.PC)
}

func TestString(t *testing.T) {
	s := New()
	s.V[0] = 0x12
	s.V[0xF] = 0x01
	s.I = 0x3A0

	assert.Equal(t, "PC:0200 I:03A0 SP:0 DT:00 ST:00 V:12 00 00 00 00 00 00 00 00 00 00 00 00 00 00 01", s.String())
}

func TestFontAddress(t *testing.T) {
	assert.Equal(t, uint16(0x000), FontAddress(0x0))
	assert.Equal(t, uint16(0x032), FontAddress(0xA))
	assert.Equal(t, uint16(0x04B), FontAddress(0xF))
	assert.Equal(t, uint16(0x005), FontAddress(0x31))
}
