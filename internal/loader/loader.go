// Package loader handles ROM file loading operations.
package loader

import (
	"fmt"
	"io"
	"os"

	"github.com/retroenv/chip8vm/internal/machine"
	"github.com/retroenv/chip8vm/internal/options"
)

// Loader handles loading ROM files from disk.
type Loader struct{}

// New creates a new ROM loader.
func New() *Loader {
	return &Loader{}
}

// Load reads the ROM file given in the options.
// ROM files are raw program images without a header, files that do not fit
// into the program space are rejected.
func (l *Loader) Load(opts options.Program) ([]byte, error) {
	file, err := os.Open(opts.Input)
	if err != nil {
		return nil, fmt.Errorf("opening file %s: %w", opts.Input, err)
	}
	defer func() { _ = file.Close() }()

	program, err := l.LoadFromReader(file)
	if err != nil {
		return nil, fmt.Errorf("loading ROM %s: %w", opts.Input, err)
	}
	return program, nil
}

// LoadFromReader reads a raw program image.
func (l *Loader) LoadFromReader(reader io.Reader) ([]byte, error) {
	program, err := io.ReadAll(io.LimitReader(reader, machine.MaxProgramSize+1))
	if err != nil {
		return nil, fmt.Errorf("reading program: %w", err)
	}
	if len(program) > machine.MaxProgramSize {
		return nil, fmt.Errorf("program exceeds %d bytes: %w", machine.MaxProgramSize, machine.ErrProgramTooLarge)
	}
	return program, nil
}

// Boot resets the state to power-on values and loads the program into it.
func (l *Loader) Boot(s *machine.State, program []byte) error {
	s.Reset()
	if err := s.LoadProgram(program); err != nil {
		return fmt.Errorf("loading program into memory: %w", err)
	}
	return nil
}
