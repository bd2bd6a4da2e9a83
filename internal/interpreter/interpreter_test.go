package interpreter

import (
	"errors"
	"testing"

	"github.com/retroenv/chip8vm/internal/machine"
	"github.com/retroenv/retrogolib/assert"
	"github.com/retroenv/retrogolib/log"
)

type fixedRandom uint32

func (r fixedRandom) Uint32() uint32 {
	return uint32(r)
}

// newTestState returns a reset state with the instruction words loaded at
// the program start.
func newTestState(t *testing.T, words ...uint16) *machine.State {
	t.Helper()
	program := make([]byte, 0, 2*len(words))
	for _, word := range words {
		program = append(program, byte(word>>8), byte(word))
	}
	s := machine.New()
	assert.NoError(t, s.LoadProgram(program))
	return s
}

func newTestInterpreter(t *testing.T, opts ...Option) *Interpreter {
	t.Helper()
	return New(log.NewTestLogger(t), opts...)
}

// run executes count steps and fails the test on any error.
func run(t *testing.T, in *Interpreter, s *machine.State, count int) StepResult {
	t.Helper()
	var result StepResult
	for range count {
		var err error
		result, err = in.Step(s)
		assert.NoError(t, err)
	}
	return result
}

func TestStepFetch(t *testing.T) {
	in := newTestInterpreter(t)
	s := newTestState(t, 0x6A42)

	result, err := in.Step(s)
	assert.NoError(t, err)
	assert.Equal(t, uint16(0x6A42), result.Opcode)
	assert.Equal(t, uint16(0x202), s.PC)
	assert.Equal(t, byte(0x42), s.V[0xA])
}

func TestStepInvalidFetch(t *testing.T) {
	tests := []struct {
		name    string
		pc      uint16
		wantErr bool
	}{
		{"last complete word", 0xFFE, false},
		{"half word", 0xFFF, true},
		{"outside memory", 0x1000, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := newTestInterpreter(t)
			s := machine.New()
			s.PC = tt.pc
			s.Memory[0xFFE] = 0x60
			s.Memory[0xFFF] = 0x01
			s.DelayTimer = 5

			_, err := in.Step(s)
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			assert.True(t, errors.Is(err, ErrInvalidFetch))
			assert.Equal(t, tt.pc, s.PC)
			assert.Equal(t, byte(5), s.DelayTimer)
		})
	}
}

func TestStepUnknownOpcode(t *testing.T) {
	in := newTestInterpreter(t)
	s := newTestState(t, 0x5121, 0x5121, 0xFFFF)
	s.DelayTimer = 3

	result, err := in.Step(s)
	assert.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnknownOpcode))

	var unknown *UnknownOpcodeError
	assert.True(t, errors.As(err, &unknown))
	assert.Equal(t, uint16(0x5121), unknown.Opcode)
	assert.Equal(t, uint16(0x200), unknown.Address)
	assert.ErrorContains(t, err, "unknown opcode $5121 at $0200")

	assert.Equal(t, uint16(0x5121), result.Opcode)
	assert.Equal(t, uint16(0x202), s.PC)
	assert.Equal(t, byte(2), s.DelayTimer)

	_, err = in.Step(s)
	assert.True(t, errors.Is(err, ErrUnknownOpcode))
	_, err = in.Step(s)
	assert.True(t, errors.Is(err, ErrUnknownOpcode))

	stats := in.Stats()
	assert.Equal(t, uint64(3), stats.UnknownOpcodes)
	assert.Equal(t, uint64(3), stats.Cycles)
	assert.Equal(t, uint16(0x206), s.PC)
}

func TestStepTimers(t *testing.T) {
	in := newTestInterpreter(t)
	s := newTestState(t, 0x1200) // jump to self
	s.DelayTimer = 2
	s.SoundTimer = 2

	result := run(t, in, s, 1)
	assert.False(t, result.Sound)
	assert.Equal(t, byte(1), s.DelayTimer)
	assert.Equal(t, byte(1), s.SoundTimer)

	result = run(t, in, s, 1)
	assert.True(t, result.Sound)
	assert.Equal(t, byte(0), s.DelayTimer)
	assert.Equal(t, byte(0), s.SoundTimer)

	result = run(t, in, s, 1)
	assert.False(t, result.Sound)
	assert.Equal(t, byte(0), s.DelayTimer)
}

func TestSoundTimerDecay(t *testing.T) {
	in := newTestInterpreter(t)
	s := newTestState(t,
		0x6005, // ld V0, 5
		0xF018, // ld ST, V0
		0x1204, // jp $204
	)

	triggers := 0
	for range 20 {
		result, err := in.Step(s)
		assert.NoError(t, err)
		if result.Sound {
			triggers++
		}
	}

	assert.Equal(t, 1, triggers)
	assert.Equal(t, byte(0), s.SoundTimer)
	assert.Equal(t, uint64(1), in.Stats().Beeps)
}

func TestStepRedraw(t *testing.T) {
	in := newTestInterpreter(t)
	s := newTestState(t, 0x6001, 0x00E0, 0xD001)

	result := run(t, in, s, 1)
	assert.False(t, result.Redraw)
	result = run(t, in, s, 1)
	assert.True(t, result.Redraw)
	result = run(t, in, s, 1)
	assert.True(t, result.Redraw)
}

func TestStats(t *testing.T) {
	in := newTestInterpreter(t)
	s := newTestState(t, 0xF00A)

	run(t, in, s, 4)
	stats := in.Stats()
	assert.Equal(t, uint64(4), stats.Cycles)
	assert.Equal(t, uint64(4), stats.BlockedCycles)

	in.Reset()
	assert.Equal(t, Stats{}, in.Stats())
}

func TestTrace(t *testing.T) {
	in := newTestInterpreter(t, WithTrace(true))
	s := newTestState(t, 0xA234, 0x1200)

	run(t, in, s, 4)
	assert.Equal(t, uint16(0x234), s.I)
	assert.Equal(t, uint16(0x200), s.PC)
}

func TestWithSeed(t *testing.T) {
	values := func() []byte {
		in := newTestInterpreter(t, WithSeed(1234))
		s := newTestState(t, 0xC0FF, 0x1200)
		result := make([]byte, 0, 8)
		for range 8 {
			run(t, in, s, 2)
			result = append(result, s.V[0])
		}
		return result
	}

	assert.Equal(t, values(), values())
}
