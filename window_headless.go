//go:build headless

package main

import (
	"context"
	"errors"

	"github.com/retroenv/chip8vm/internal/options"
	"github.com/retroenv/retrogolib/log"
)

var errNoWindow = errors.New("window frontend not available in headless build, use -frontend terminal or headless")

func runWindow(_ context.Context, _ *log.Logger, _ options.Program, _ options.Runner, _ []byte) error {
	return errNoWindow
}
