//go:build !headless

package main

import (
	"context"
	"fmt"

	"github.com/retroenv/chip8vm/internal/audio"
	"github.com/retroenv/chip8vm/internal/frontend/window"
	"github.com/retroenv/chip8vm/internal/host"
	"github.com/retroenv/chip8vm/internal/options"
	"github.com/retroenv/retrogolib/log"
)

func runWindow(ctx context.Context, logger *log.Logger, opts options.Program,
	runnerOptions options.Runner, program []byte) error {

	w := window.New(logger, opts.Scale, "chip8vm - "+opts.Input)

	var beeper host.Audio
	speaker, err := audio.NewOto()
	if err != nil {
		logger.Warn("Audio output not available, falling back to text", log.Err(err))
		beeper = audio.NewText(logger)
	} else {
		defer func() { _ = speaker.Close() }()
		beeper = speaker
	}

	runner, err := host.New(logger, runnerOptions, program, host.Devices{
		Display: w,
		Input:   w,
		Audio:   beeper,
	})
	if err != nil {
		return fmt.Errorf("creating runner: %w", err)
	}

	err = w.Run(ctx, runner, opts.TPS)
	runner.LogStats()
	return err
}
