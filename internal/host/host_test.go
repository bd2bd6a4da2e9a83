package host

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/retroenv/chip8vm/internal/machine"
	"github.com/retroenv/chip8vm/internal/options"
	"github.com/retroenv/retrogolib/assert"
	"github.com/retroenv/retrogolib/log"
)

type fakeDisplay struct {
	presents int
	last     [machine.DisplayWidth * machine.DisplayHeight]bool
}

func (d *fakeDisplay) Present(s *machine.State) error {
	d.presents++
	d.last = s.Framebuffer
	return nil
}

type fakeInput struct {
	pressed map[int]bool
	err     error
}

func (in *fakeInput) Poll(s *machine.State) error {
	if in.err != nil {
		return in.err
	}
	for key := range machine.KeyCount {
		s.Keys[key] = in.pressed[key]
	}
	return nil
}

type fakeAudio struct {
	beeps int
}

func (a *fakeAudio) Beep() {
	a.beeps++
}

func program(words ...uint16) []byte {
	data := make([]byte, 0, 2*len(words))
	for _, word := range words {
		data = append(data, byte(word>>8), byte(word))
	}
	return data
}

func testOptions(cycles int) options.Runner {
	return options.Runner{
		CyclesPerFrame: cycles,
		FrameDuration:  time.Millisecond,
		SeedSet:        true,
		Seed:           1,
	}
}

func newTestRunner(t *testing.T, opts options.Runner, data []byte, devices Devices) *Runner {
	t.Helper()
	r, err := New(log.NewTestLogger(t), opts, data, devices)
	assert.NoError(t, err)
	return r
}

func TestNewProgramTooLarge(t *testing.T) {
	_, err := New(log.NewTestLogger(t), testOptions(1), make([]byte, machine.MaxProgramSize+1), Devices{})
	assert.True(t, errors.Is(err, machine.ErrProgramTooLarge))
}

func TestFrame(t *testing.T) {
	display := &fakeDisplay{}
	r := newTestRunner(t, testOptions(4), program(
		0x6005, // ld V0, 5
		0xF029, // ld F, V0
		0xD005, // drw V0, V0, 5
		0x1206, // jp $206
	), Devices{Display: display})

	assert.NoError(t, r.Frame())
	assert.Equal(t, uint64(4), r.Steps())
	assert.Equal(t, 1, display.presents)
	assert.False(t, r.State().NeedsRedraw)
	assert.True(t, display.last[5*machine.DisplayWidth+5])

	// no framebuffer change, nothing to present
	assert.NoError(t, r.Frame())
	assert.Equal(t, 1, display.presents)
	assert.Equal(t, uint64(8), r.Steps())
}

func TestFrameSkipsUnknownOpcodes(t *testing.T) {
	r := newTestRunner(t, testOptions(3), program(0x5121, 0xFFFF, 0x6A01), Devices{})

	assert.NoError(t, r.Frame())
	assert.Equal(t, byte(1), r.State().V[0xA])
	assert.Equal(t, uint64(2), r.Stats().UnknownOpcodes)
}

func TestFrameHaltsOnFatalError(t *testing.T) {
	r := newTestRunner(t, testOptions(2), program(0x00EE), Devices{})

	err := r.Frame()
	assert.True(t, errors.Is(err, machine.ErrStackUnderflow))
	assert.Equal(t, uint64(1), r.Steps())

	err = r.Frame()
	assert.True(t, errors.Is(err, machine.ErrStackUnderflow))
	assert.Equal(t, uint64(1), r.Steps())

	assert.NoError(t, r.Reset())
	assert.Equal(t, uint64(0), r.Steps())
	assert.Equal(t, uint16(machine.ProgramStart), r.State().PC)
}

func TestFrameWaitsForKey(t *testing.T) {
	input := &fakeInput{pressed: map[int]bool{}}
	r := newTestRunner(t, testOptions(10), program(
		0xF30A, // ld V3, K
		0x6001, // ld V0, 1
	), Devices{Input: input})

	assert.NoError(t, r.Frame())
	assert.Equal(t, uint64(1), r.Steps())
	assert.Equal(t, uint16(0x200), r.State().PC)

	input.pressed[0xB] = true
	assert.NoError(t, r.Frame())
	assert.Equal(t, byte(0xB), r.State().V[3])
	assert.Equal(t, byte(1), r.State().V[0])
}

func TestFrameInputError(t *testing.T) {
	r := newTestRunner(t, testOptions(1), program(0x1200), Devices{Input: &fakeInput{err: ErrQuit}})

	err := r.Frame()
	assert.True(t, errors.Is(err, ErrQuit))
	assert.Equal(t, uint64(0), r.Steps())
}

func TestFrameBeep(t *testing.T) {
	audio := &fakeAudio{}
	r := newTestRunner(t, testOptions(5), program(
		0x6003, // ld V0, 3
		0xF018, // ld ST, V0
		0x1204, // jp $204
	), Devices{Audio: audio})

	for range 4 {
		assert.NoError(t, r.Frame())
	}
	assert.Equal(t, 1, audio.beeps)
	assert.Equal(t, uint64(1), r.Stats().Beeps)
}

func TestRunStepLimit(t *testing.T) {
	opts := testOptions(3)
	opts.StepLimit = 10
	r := newTestRunner(t, opts, program(0x7001, 0x1200), Devices{})

	assert.NoError(t, r.Run(context.Background()))
	assert.Equal(t, uint64(10), r.Steps())
	assert.Equal(t, byte(5), r.State().V[0])
}

func TestRunCancel(t *testing.T) {
	r := newTestRunner(t, testOptions(1), program(0x1200), Devices{})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := r.Run(ctx)
	assert.True(t, errors.Is(err, context.Canceled))
	assert.Equal(t, uint64(1), r.Steps())
}

func TestRunError(t *testing.T) {
	r := newTestRunner(t, testOptions(1), program(0x6000, 0x00EE), Devices{})

	err := r.Run(context.Background())
	assert.True(t, errors.Is(err, machine.ErrStackUnderflow))
	assert.Equal(t, uint64(2), r.Steps())
}
