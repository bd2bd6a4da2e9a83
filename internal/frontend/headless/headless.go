// Package headless implements a frontend without any display or keyboard.
// It keeps the last presented frame and renders it as text on request.
package headless

import (
	"fmt"
	"io"
	"strings"

	"github.com/retroenv/chip8vm/internal/machine"
)

// Pixel characters of the text rendering.
const (
	PixelOn  = '#'
	PixelOff = '.'
)

// Headless records presented frames.
type Headless struct {
	frame    [machine.DisplayWidth * machine.DisplayHeight]bool
	presents int
}

// New returns a new headless frontend.
func New() *Headless {
	return &Headless{}
}

// Present stores a copy of the framebuffer.
func (h *Headless) Present(s *machine.State) error {
	h.frame = s.Framebuffer
	h.presents++
	return nil
}

// Poll leaves all keys released.
func (h *Headless) Poll(s *machine.State) error {
	s.ReleaseKeys()
	return nil
}

// Presents returns the number of presented frames.
func (h *Headless) Presents() int {
	return h.presents
}

// Render returns the last presented frame as text, one line per row.
func (h *Headless) Render() string {
	var sb strings.Builder
	sb.Grow((machine.DisplayWidth + 1) * machine.DisplayHeight)

	for y := range machine.DisplayHeight {
		for x := range machine.DisplayWidth {
			if h.frame[y*machine.DisplayWidth+x] {
				sb.WriteByte(PixelOn)
			} else {
				sb.WriteByte(PixelOff)
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

// WriteFrame writes the last presented frame as text.
func (h *Headless) WriteFrame(w io.Writer) error {
	if _, err := io.WriteString(w, h.Render()); err != nil {
		return fmt.Errorf("writing frame: %w", err)
	}
	return nil
}
