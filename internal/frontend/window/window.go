//go:build !headless

// Package window implements a desktop window frontend using ebiten.
//
// The window drives the emulation from the ebiten update loop, one runner
// frame per tick. P pauses the emulation, F5 or Backspace restarts the
// program and Escape closes the window.
package window

import (
	"context"
	"errors"
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/retroenv/chip8vm/internal/host"
	"github.com/retroenv/chip8vm/internal/machine"
	"github.com/retroenv/retrogolib/log"
	"golang.org/x/image/font/basicfont"
)

var (
	colorOn      = color.RGBA{R: 0xE0, G: 0xF0, B: 0xD0, A: 0xFF}
	colorOff     = color.RGBA{R: 0x10, G: 0x18, B: 0x10, A: 0xFF}
	colorOverlay = color.RGBA{R: 0xFF, G: 0xC0, B: 0x40, A: 0xFF}
)

// keys maps host keys to keypad keys, following the layout of the keymap
// package.
var keys = map[ebiten.Key]int{
	ebiten.KeyX: 0x0, ebiten.KeyDigit1: 0x1, ebiten.KeyDigit2: 0x2, ebiten.KeyDigit3: 0x3,
	ebiten.KeyQ: 0x4, ebiten.KeyW: 0x5, ebiten.KeyE: 0x6, ebiten.KeyA: 0x7,
	ebiten.KeyS: 0x8, ebiten.KeyD: 0x9, ebiten.KeyZ: 0xA, ebiten.KeyC: 0xB,
	ebiten.KeyDigit4: 0xC, ebiten.KeyR: 0xD, ebiten.KeyF: 0xE, ebiten.KeyV: 0xF,
}

// Window is an ebiten game presenting the machine display.
type Window struct {
	logger *log.Logger
	scale  int
	title  string

	ctx    context.Context
	runner *host.Runner
	err    error

	screen *ebiten.Image
	pixels []byte // RGBA pixels of the last presented frame
	paused bool
}

// New returns a new window frontend.
func New(logger *log.Logger, scale int, title string) *Window {
	return &Window{
		logger: logger,
		scale:  scale,
		title:  title,
		pixels: make([]byte, machine.DisplayWidth*machine.DisplayHeight*4),
	}
}

// Run opens the window and runs frames of the runner at the given rate
// until the window is closed, the context is cancelled or a frame fails.
func (w *Window) Run(ctx context.Context, runner *host.Runner, framesPerSecond int) error {
	w.ctx = ctx
	w.runner = runner

	ebiten.SetWindowSize(machine.DisplayWidth*w.scale, machine.DisplayHeight*w.scale)
	ebiten.SetWindowTitle(w.title)
	ebiten.SetWindowResizable(true)
	ebiten.SetTPS(framesPerSecond)

	if err := ebiten.RunGame(w); err != nil {
		return fmt.Errorf("running window: %w", err)
	}
	return w.err
}

// Poll sets the key matrix from the currently pressed host keys.
func (w *Window) Poll(s *machine.State) error {
	for key, value := range keys {
		s.Keys[value] = ebiten.IsKeyPressed(key)
	}
	return nil
}

// Present converts the framebuffer to RGBA pixels.
func (w *Window) Present(s *machine.State) error {
	for i, on := range s.Framebuffer {
		c := colorOff
		if on {
			c = colorOn
		}
		w.pixels[i*4] = c.R
		w.pixels[i*4+1] = c.G
		w.pixels[i*4+2] = c.B
		w.pixels[i*4+3] = c.A
	}
	return nil
}

// Update implements ebiten.Game.
func (w *Window) Update() error {
	if ebiten.IsWindowBeingClosed() || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if w.ctx != nil && w.ctx.Err() != nil {
		w.err = w.ctx.Err()
		return ebiten.Termination
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyP) {
		w.paused = !w.paused
		w.logger.Debug("Pause toggled", log.String("paused", fmt.Sprint(w.paused)))
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF5) || inpututil.IsKeyJustPressed(ebiten.KeyBackspace) {
		if err := w.runner.Reset(); err != nil {
			w.err = err
			return ebiten.Termination
		}
		w.logger.Info("Program restarted")
	}
	if w.paused {
		return nil
	}

	if err := w.runner.Frame(); err != nil {
		if !errors.Is(err, host.ErrStepLimit) {
			w.err = err
		}
		return ebiten.Termination
	}
	return nil
}

// Draw implements ebiten.Game.
func (w *Window) Draw(screen *ebiten.Image) {
	if w.screen == nil {
		w.screen = ebiten.NewImage(machine.DisplayWidth, machine.DisplayHeight)
	}
	w.screen.WritePixels(w.pixels)

	opts := &ebiten.DrawImageOptions{}
	opts.GeoM.Scale(float64(w.scale), float64(w.scale))
	screen.DrawImage(w.screen, opts)

	if w.paused {
		face := basicfont.Face7x13
		text.Draw(screen, "PAUSED - P to resume, F5 to restart", face, 4, face.Metrics().Height.Ceil(), colorOverlay)
	}
}

// Layout implements ebiten.Game.
func (w *Window) Layout(_, _ int) (int, int) {
	return machine.DisplayWidth * w.scale, machine.DisplayHeight * w.scale
}
