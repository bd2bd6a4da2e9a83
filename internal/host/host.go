// Package host drives the interpreter: it feeds keyboard input into the
// machine state, steps the interpreter at the configured rate, presents the
// framebuffer and plays the sound cue.
//
// The runner is the only mutator of the machine state. Frontends exchange
// data with it through the Display, Input and Audio interfaces, which are
// called between interpreter steps only.
package host

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/retroenv/chip8vm/internal/interpreter"
	"github.com/retroenv/chip8vm/internal/loader"
	"github.com/retroenv/chip8vm/internal/machine"
	"github.com/retroenv/chip8vm/internal/options"
	"github.com/retroenv/retrogolib/log"
)

var (
	// ErrQuit is returned by an Input to request stopping the emulation.
	ErrQuit = errors.New("quit requested")

	// ErrStepLimit is returned by Frame once the configured number of
	// interpreter steps has been executed.
	ErrStepLimit = errors.New("step limit reached")
)

// Display presents the framebuffer of the machine state.
type Display interface {
	Present(s *machine.State) error
}

// Input updates the key matrix of the machine state.
type Input interface {
	Poll(s *machine.State) error
}

// Audio plays the sound cue.
type Audio interface {
	Beep()
}

// Devices contains the frontend devices of a runner. Unset devices are
// ignored.
type Devices struct {
	Display Display
	Input   Input
	Audio   Audio
}

// Runner runs a program on a machine state.
type Runner struct {
	logger      *log.Logger
	opts        options.Runner
	devices     Devices
	interpreter *interpreter.Interpreter
	loader      *loader.Loader

	state   *machine.State
	program []byte
	steps   uint64
	halted  error // fatal step error, the runner does not continue after it
}

// New returns a runner that executes the program on a new machine state.
func New(logger *log.Logger, opts options.Runner, program []byte, devices Devices) (*Runner, error) {
	interpreterOptions := []interpreter.Option{interpreter.WithTrace(opts.Trace)}
	if opts.SeedSet {
		interpreterOptions = append(interpreterOptions, interpreter.WithSeed(opts.Seed))
	}

	r := &Runner{
		logger:      logger,
		opts:        opts,
		devices:     devices,
		interpreter: interpreter.New(logger, interpreterOptions...),
		loader:      loader.New(),
		state:       machine.New(),
		program:     program,
	}
	if err := r.Reset(); err != nil {
		return nil, err
	}
	return r, nil
}

// State returns the machine state. It must only be accessed from the
// goroutine that calls Frame.
func (r *Runner) State() *machine.State {
	return r.state
}

// Stats returns the interpreter execution counters.
func (r *Runner) Stats() interpreter.Stats {
	return r.interpreter.Stats()
}

// Steps returns the number of executed interpreter steps.
func (r *Runner) Steps() uint64 {
	return r.steps
}

// Reset restarts the program from power-on state.
func (r *Runner) Reset() error {
	if err := r.loader.Boot(r.state, r.program); err != nil {
		return fmt.Errorf("booting program: %w", err)
	}
	r.interpreter.Reset()
	r.steps = 0
	r.halted = nil
	r.state.NeedsRedraw = true
	return nil
}

// Frame runs a single frame: it polls the input, executes the configured
// number of interpreter steps and presents the framebuffer if it changed.
// Unknown opcodes are skipped, any other step error halts the runner and is
// returned by this and all following calls until Reset is called.
func (r *Runner) Frame() error {
	if r.halted != nil {
		return r.halted
	}

	if r.devices.Input != nil {
		if err := r.devices.Input.Poll(r.state); err != nil {
			return fmt.Errorf("polling input: %w", err)
		}
	}

	stepErr := r.runSteps()

	if r.state.NeedsRedraw && r.devices.Display != nil {
		if err := r.devices.Display.Present(r.state); err != nil {
			return fmt.Errorf("presenting frame: %w", err)
		}
		r.state.NeedsRedraw = false
	}
	return stepErr
}

func (r *Runner) runSteps() error {
	for range r.opts.CyclesPerFrame {
		if r.opts.StepLimit > 0 && r.steps >= r.opts.StepLimit {
			return ErrStepLimit
		}

		result, err := r.interpreter.Step(r.state)
		r.steps++

		switch {
		case errors.Is(err, interpreter.ErrUnknownOpcode):
			// logged by the interpreter
		case err != nil:
			r.halted = fmt.Errorf("step %d: %w", r.steps, err)
			r.logger.Warn("Execution halted",
				log.Err(err),
				log.String("state", r.state.String()))
			return r.halted
		}

		if result.Sound && r.devices.Audio != nil {
			r.devices.Audio.Beep()
		}
		if result.Blocked {
			// waiting for input, which only changes between frames
			return nil
		}
	}
	return nil
}

// Run calls Frame at the configured frame rate until the context is
// cancelled, the step limit is reached or an error occurs.
// Reaching the step limit is not an error.
func (r *Runner) Run(ctx context.Context) error {
	ticker := time.NewTicker(r.opts.FrameDuration)
	defer ticker.Stop()

	for {
		if err := r.Frame(); err != nil {
			if errors.Is(err, ErrStepLimit) {
				return nil
			}
			return err
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

// LogStats logs the execution counters at info level.
func (r *Runner) LogStats() {
	stats := r.interpreter.Stats()
	r.logger.Info("Execution statistics",
		log.String("cycles", fmt.Sprint(stats.Cycles)),
		log.String("unknown_opcodes", fmt.Sprint(stats.UnknownOpcodes)),
		log.String("blocked_cycles", fmt.Sprint(stats.BlockedCycles)),
		log.String("beeps", fmt.Sprint(stats.Beeps)))
}
