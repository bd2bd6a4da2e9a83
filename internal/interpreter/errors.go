package interpreter

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidFetch is returned when the program counter does not point to
	// a complete instruction word inside of memory.
	ErrInvalidFetch = errors.New("invalid instruction fetch")

	// ErrUnknownOpcode matches every *UnknownOpcodeError.
	ErrUnknownOpcode = errors.New("unknown opcode")
)

// UnknownOpcodeError is returned for instruction words that do not decode.
// The step that returns it still completes, the unknown instruction is
// skipped and the timers tick.
type UnknownOpcodeError struct {
	Opcode  uint16
	Address uint16
}

func (e *UnknownOpcodeError) Error() string {
	return fmt.Sprintf("unknown opcode $%04X at $%04X", e.Opcode, e.Address)
}

// Is reports whether target is ErrUnknownOpcode.
func (e *UnknownOpcodeError) Is(target error) bool {
	return target == ErrUnknownOpcode
}
