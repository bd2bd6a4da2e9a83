// Package interpreter implements the CHIP-8 fetch, decode and execute cycle.
//
// The interpreter holds no machine state of its own. Every call to Step
// executes exactly one instruction on the passed state and ticks the timers.
// Step never blocks: an instruction waiting for a key press leaves the state
// untouched and is executed again by the next call.
package interpreter

import (
	"fmt"
	"math/rand/v2"

	"github.com/retroenv/chip8vm/internal/machine"
	"github.com/retroenv/chip8vm/internal/opcode"
	"github.com/retroenv/retrogolib/log"
	"github.com/retroenv/retrogolib/set"
)

// RandomSource provides the random numbers used by the RND instruction.
type RandomSource interface {
	Uint32() uint32
}

// StepResult describes the observable side effects of a single step.
type StepResult struct {
	Opcode  uint16 // fetched instruction word
	Redraw  bool   // the framebuffer was modified
	Sound   bool   // the sound timer reached zero during this step
	Blocked bool   // a key wait instruction found no pressed key
}

// Stats contains execution counters.
type Stats struct {
	Cycles         uint64
	UnknownOpcodes uint64
	BlockedCycles  uint64
	Beeps          uint64
}

// Interpreter executes CHIP-8 instructions.
type Interpreter struct {
	logger *log.Logger
	random RandomSource
	trace  bool

	stats   Stats
	unknown set.Set[uint16] // unknown opcodes that have been logged
}

// Option configures an Interpreter.
type Option func(*Interpreter)

// WithRandom sets the random source used by the RND instruction.
func WithRandom(random RandomSource) Option {
	return func(in *Interpreter) {
		in.random = random
	}
}

// WithSeed makes the RND instruction deterministic for the given seed.
func WithSeed(seed uint64) Option {
	return func(in *Interpreter) {
		in.random = rand.New(rand.NewPCG(seed, seed))
	}
}

// WithTrace enables logging of every executed instruction at debug level.
func WithTrace(enabled bool) Option {
	return func(in *Interpreter) {
		in.trace = enabled
	}
}

// New returns a new interpreter.
func New(logger *log.Logger, opts ...Option) *Interpreter {
	in := &Interpreter{
		logger:  logger,
		random:  rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
		unknown: set.New[uint16](),
	}
	for _, opt := range opts {
		opt(in)
	}
	return in
}

// Stats returns the execution counters.
func (in *Interpreter) Stats() Stats {
	return in.stats
}

// Reset clears the execution counters and the unknown opcode history.
func (in *Interpreter) Reset() {
	in.stats = Stats{}
	in.unknown = set.New[uint16]()
}

// Step executes a single instruction on the state.
//
// An error wrapping ErrInvalidFetch, a machine stack error or
// machine.ErrOutOfRange means the step did not modify the state. An
// *UnknownOpcodeError is returned after the step completed.
func (in *Interpreter) Step(s *machine.State) (StepResult, error) {
	address := s.PC
	word, err := fetch(s)
	if err != nil {
		return StepResult{}, err
	}

	result := StepResult{Opcode: word}

	op, ok := opcode.Decode(word)
	if !ok {
		s.PC += opcode.Size
		result.Sound = in.tickTimers(s)
		in.stats.Cycles++
		return result, in.unknownOpcode(word, address)
	}

	if in.trace {
		in.logger.Debug("Executing instruction",
			log.Hex("address", address),
			log.Hex("opcode", word),
			log.String("instruction", opcode.Format(word)),
			log.Stringer("state", s))
	}

	blocked, err := in.execute(s, op, word)
	if err != nil {
		return result, fmt.Errorf("executing '%s' at $%04X: %w", opcode.Format(word), address, err)
	}
	in.stats.Cycles++

	if blocked {
		in.stats.BlockedCycles++
		result.Blocked = true
		return result, nil
	}

	result.Redraw = op.Op == opcode.Cls || op.Op == opcode.Drw
	result.Sound = in.tickTimers(s)
	return result, nil
}

// fetch reads the big-endian instruction word at the program counter.
func fetch(s *machine.State) (uint16, error) {
	if int(s.PC)+1 > machine.MaxAddress {
		return 0, fmt.Errorf("program counter $%04X: %w", s.PC, ErrInvalidFetch)
	}
	return opcode.Word(s.Memory[s.PC], s.Memory[s.PC+1]), nil
}

// tickTimers decrements both timers and returns whether the sound timer
// just expired.
func (in *Interpreter) tickTimers(s *machine.State) bool {
	if s.DelayTimer > 0 {
		s.DelayTimer--
	}
	if s.SoundTimer == 0 {
		return false
	}
	s.SoundTimer--
	if s.SoundTimer > 0 {
		return false
	}
	in.stats.Beeps++
	return true
}

func (in *Interpreter) unknownOpcode(word, address uint16) error {
	in.stats.UnknownOpcodes++
	if !in.unknown.Contains(word) {
		in.unknown.Add(word)
		in.logger.Warn("Unknown opcode",
			log.Hex("opcode", word),
			log.Hex("address", address))
	}
	return &UnknownOpcodeError{Opcode: word, Address: address}
}
