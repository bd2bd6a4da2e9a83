// Package terminal implements a frontend running inside of a text terminal.
//
// The display is rendered with ANSI escape sequences using half block
// characters, every character cell shows two vertically stacked pixels.
// Terminals only report key presses and no key releases, a pressed key is
// therefore held down for a fixed number of frames.
package terminal

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/retroenv/chip8vm/internal/host"
	"github.com/retroenv/chip8vm/internal/keymap"
	"github.com/retroenv/chip8vm/internal/machine"
	"github.com/retroenv/retrogolib/log"
	"golang.org/x/term"
)

// HoldFrames is the number of frames a key stays pressed after its
// character was read.
const HoldFrames = 6

const (
	keyCtrlC  = 0x03
	keyEscape = 0x1b

	escapeHome       = "\x1b[H"
	escapeClear      = "\x1b[2J"
	escapeHideCursor = "\x1b[?25l"
	escapeShowCursor = "\x1b[?25h"

	requiredColumns = machine.DisplayWidth
	requiredRows    = machine.DisplayHeight / 2
)

// Terminal reads keys from an input stream and renders frames to an output
// stream.
type Terminal struct {
	logger *log.Logger
	in     io.Reader
	out    io.Writer

	fd       int
	oldState *term.State

	keys     chan byte
	readErr  chan error
	held     [machine.KeyCount]int // frames left per pressed key
	stopOnce sync.Once
}

// New returns a terminal frontend reading from in and writing to out.
func New(logger *log.Logger, in io.Reader, out io.Writer) *Terminal {
	return &Terminal{
		logger:  logger,
		in:      in,
		out:     out,
		fd:      -1,
		keys:    make(chan byte, 64),
		readErr: make(chan error, 1),
	}
}

// Start switches the input terminal to raw mode, if it is a terminal, and
// starts reading keys.
func (t *Terminal) Start() error {
	if file, ok := t.in.(*os.File); ok && term.IsTerminal(int(file.Fd())) {
		t.fd = int(file.Fd())
		oldState, err := term.MakeRaw(t.fd)
		if err != nil {
			return fmt.Errorf("setting raw terminal mode: %w", err)
		}
		t.oldState = oldState
		t.checkSize()
	}

	if _, err := io.WriteString(t.out, escapeClear+escapeHideCursor); err != nil {
		return fmt.Errorf("initializing terminal: %w", err)
	}

	go t.readKeys()
	return nil
}

func (t *Terminal) checkSize() {
	file, ok := t.out.(*os.File)
	if !ok {
		return
	}
	width, height, err := term.GetSize(int(file.Fd()))
	if err != nil {
		t.logger.Debug("Reading terminal size failed", log.Err(err))
		return
	}
	if width < requiredColumns || height < requiredRows {
		t.logger.Warn("Terminal too small for display",
			log.Int("width", width),
			log.Int("height", height),
			log.Int("required_width", requiredColumns),
			log.Int("required_height", requiredRows))
	}
}

// readKeys forwards every input byte until the input ends.
func (t *Terminal) readKeys() {
	buf := make([]byte, 16)
	for {
		n, err := t.in.Read(buf)
		for _, b := range buf[:n] {
			t.keys <- b
		}
		if err != nil {
			t.readErr <- err
			return
		}
	}
}

// Close restores the terminal mode and shows the cursor again.
func (t *Terminal) Close() error {
	var err error
	t.stopOnce.Do(func() {
		_, _ = io.WriteString(t.out, escapeShowCursor+"\r\n")
		if t.oldState != nil {
			if restoreErr := term.Restore(t.fd, t.oldState); restoreErr != nil {
				err = fmt.Errorf("restoring terminal mode: %w", restoreErr)
			}
		}
	})
	return err
}

// Poll applies all keys read since the last call to the key matrix.
func (t *Terminal) Poll(s *machine.State) error {
	if err := t.drainKeys(); err != nil {
		return err
	}

	for key := range t.held {
		s.Keys[key] = t.held[key] > 0
		if t.held[key] > 0 {
			t.held[key]--
		}
	}
	return nil
}

// drainKeys processes all pending input bytes. Ctrl+C and Escape request to
// quit, raw mode disables the interrupt signal.
func (t *Terminal) drainKeys() error {
	for {
		select {
		case b := <-t.keys:
			if b == keyCtrlC || b == keyEscape {
				return host.ErrQuit
			}
			if key, ok := keymap.FromRune(rune(b)); ok {
				t.held[key] = HoldFrames
			}

		case err := <-t.readErr:
			if !errors.Is(err, io.EOF) {
				t.logger.Error("Reading terminal input failed", log.Err(err))
			}

		default:
			return nil
		}
	}
}

// Present renders the framebuffer.
func (t *Terminal) Present(s *machine.State) error {
	if _, err := io.WriteString(t.out, escapeHome+Render(s)); err != nil {
		return fmt.Errorf("writing frame: %w", err)
	}
	return nil
}

// Render returns the framebuffer as half block characters, using CR LF
// line endings as needed by raw terminal mode.
func Render(s *machine.State) string {
	var sb strings.Builder
	sb.Grow(requiredRows * (requiredColumns*3 + 2))

	for y := 0; y < machine.DisplayHeight; y += 2 {
		for x := range machine.DisplayWidth {
			top := s.Framebuffer[y*machine.DisplayWidth+x]
			bottom := s.Framebuffer[(y+1)*machine.DisplayWidth+x]
			sb.WriteRune(halfBlock(top, bottom))
		}
		sb.WriteString("\r\n")
	}
	return sb.String()
}

func halfBlock(top, bottom bool) rune {
	switch {
	case top && bottom:
		return '█'
	case top:
		return '▀'
	case bottom:
		return '▄'
	default:
		return ' '
	}
}
