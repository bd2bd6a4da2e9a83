// Package disasm implements a CHIP-8 ROM disassembler.
//
// The disassembler follows the execution flow from the program start to
// separate code from data, assigns labels to branch destinations and data
// references and writes an assembly listing.
package disasm

import (
	"context"
	"fmt"
	"io"

	"github.com/retroenv/chip8vm/internal/machine"
	"github.com/retroenv/chip8vm/internal/opcode"
	"github.com/retroenv/retrogolib/log"
	"github.com/retroenv/retrogolib/set"
)

// Options controls the listing output.
type Options struct {
	HexComments bool // output address and opcode bytes as comments
	ZeroBytes   bool // output trailing zero bytes
}

// NewOptions returns the default options.
func NewOptions() Options {
	return Options{
		HexComments: true,
	}
}

type offsetType uint8

const (
	dataOffset         offsetType = iota
	codeOffset                    // first byte of an instruction
	codeOperandOffset             // second byte of an instruction
)

// offset contains the disassembly information of a single program byte.
type offset struct {
	typ     offsetType
	word    uint16 // instruction word, for code offsets
	op      opcode.Opcode
	label   string
	comment string

	isCallDestination bool
}

// Disasm implements a disassembler.
type Disasm struct {
	logger  *log.Logger
	options Options
	program []byte
	offsets []offset

	branchDestinations set.Set[uint16] // set of all addresses that are branched to
	dataReferences     set.Set[uint16] // set of all addresses loaded into I

	offsetsToParse      []uint16
	offsetsToParseAdded set.Set[uint16]
}

// New creates a new disassembler for the program image.
func New(logger *log.Logger, program []byte, options Options) (*Disasm, error) {
	if len(program) > machine.MaxProgramSize {
		return nil, fmt.Errorf("program exceeds %d bytes: %w", machine.MaxProgramSize, machine.ErrProgramTooLarge)
	}

	return &Disasm{
		logger:              logger,
		options:             options,
		program:             program,
		offsets:             make([]offset, len(program)),
		branchDestinations:  set.New[uint16](),
		dataReferences:      set.New[uint16](),
		offsetsToParseAdded: set.New[uint16](),
	}, nil
}

// Process disassembles the program and writes the listing.
func (dis *Disasm) Process(ctx context.Context, writer io.Writer) error {
	if err := dis.followExecutionFlow(ctx); err != nil {
		return err
	}

	dis.processJumpDestinations()
	dis.processDataReferences()

	if err := dis.write(writer); err != nil {
		return fmt.Errorf("writing listing: %w", err)
	}
	return nil
}

// followExecutionFlow parses all code reachable from the program start.
func (dis *Disasm) followExecutionFlow(ctx context.Context) error {
	dis.addAddressToParse(machine.ProgramStart)

	for len(dis.offsetsToParse) > 0 {
		select {
		case <-ctx.Done():
			return fmt.Errorf("following execution flow: %w", ctx.Err())
		default:
		}

		address := dis.offsetsToParse[0]
		dis.offsetsToParse = dis.offsetsToParse[1:]
		dis.processAddress(address)
	}
	return nil
}

// processAddress decodes the instruction at the address and queues all
// addresses that execution can continue at.
func (dis *Disasm) processAddress(address uint16) {
	index, ok := dis.index(address)
	if !ok || index+1 >= len(dis.program) {
		return
	}
	if dis.offsets[index].typ != dataOffset || dis.offsets[index+1].typ != dataOffset {
		dis.logger.Debug("Overlapping instruction",
			log.Hex("address", address))
		return
	}

	word := opcode.Word(dis.program[index], dis.program[index+1])
	op, ok := opcode.Decode(word)
	if !ok {
		dis.logger.Debug("Unknown opcode in execution flow",
			log.Hex("address", address),
			log.Hex("opcode", word))
		return
	}

	dis.offsets[index].typ = codeOffset
	dis.offsets[index].word = word
	dis.offsets[index].op = op
	dis.offsets[index+1].typ = codeOperandOffset

	next := address + opcode.Size
	target := opcode.Address(word)

	switch {
	case op.IsJump():
		dis.addBranchDestination(target, false)

	case op.IsCall():
		dis.addBranchDestination(target, true)
		dis.addAddressToParse(next)

	case op.IsSkip():
		dis.addAddressToParse(next)
		dis.addAddressToParse(next + opcode.Size)

	case op.IsReturn():
		dis.logger.Debug("Subroutine end", log.Hex("address", address))

	case op.EndsFlow():
		// computed jump, the target is unknown

	default:
		if op.IsDataReference() {
			dis.dataReferences.Add(target)
		}
		dis.addAddressToParse(next)
	}
}

func (dis *Disasm) addBranchDestination(address uint16, call bool) {
	dis.branchDestinations.Add(address)
	if index, ok := dis.index(address); ok && call {
		dis.offsets[index].isCallDestination = true
	}
	dis.addAddressToParse(address)
}

func (dis *Disasm) addAddressToParse(address uint16) {
	if dis.offsetsToParseAdded.Contains(address) {
		return
	}
	dis.offsetsToParseAdded.Add(address)
	dis.offsetsToParse = append(dis.offsetsToParse, address)
}

// index returns the program index of a memory address.
func (dis *Disasm) index(address uint16) (int, bool) {
	index := int(address) - machine.ProgramStart
	if index < 0 || index >= len(dis.program) {
		return 0, false
	}
	return index, true
}
