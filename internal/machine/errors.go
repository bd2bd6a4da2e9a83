package machine

import "errors"

var (
	// ErrProgramTooLarge is returned when a program image does not fit into
	// the program space.
	ErrProgramTooLarge = errors.New("program too large")

	// ErrOutOfRange is returned for any register, memory, pixel or key access
	// outside of its valid range.
	ErrOutOfRange = errors.New("out of range")

	// ErrStackOverflow is returned when a call would nest deeper than
	// StackDepth levels.
	ErrStackOverflow = errors.New("stack overflow")

	// ErrStackUnderflow is returned on a return with an empty stack.
	ErrStackUnderflow = errors.New("stack underflow")
)
