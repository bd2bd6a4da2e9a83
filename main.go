// Package main implements the main entry point for the CHIP-8 virtual machine
package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/retroenv/chip8vm/internal/audio"
	"github.com/retroenv/chip8vm/internal/cli"
	"github.com/retroenv/chip8vm/internal/config"
	"github.com/retroenv/chip8vm/internal/fileprocessor"
	"github.com/retroenv/chip8vm/internal/frontend/headless"
	"github.com/retroenv/chip8vm/internal/frontend/terminal"
	"github.com/retroenv/chip8vm/internal/host"
	"github.com/retroenv/chip8vm/internal/loader"
	"github.com/retroenv/chip8vm/internal/options"
	"github.com/retroenv/retrogolib/app"
	"github.com/retroenv/retrogolib/log"
)

var (
	version = "dev"
	commit  = ""
	date    = ""
)

func main() {
	ctx := app.Context()

	opts, runnerOptions, err := cli.ParseFlags()
	if err != nil {
		logger := config.CreateLogger(opts.Flags)
		var usageErr *cli.UsageError
		if errors.As(err, &usageErr) {
			fileprocessor.PrintBanner(logger, opts, version, commit, date)
			usageErr.ShowUsage()
		} else {
			logger.Fatal(err.Error())
		}
		os.Exit(1)
	}

	logger := config.CreateLogger(opts.Flags)
	fileprocessor.PrintBanner(logger, opts, version, commit, date)

	if err := run(ctx, logger, opts, runnerOptions); err != nil {
		switch {
		case errors.Is(err, context.Canceled):
			logger.Info("Operation cancelled")
		case errors.Is(err, host.ErrQuit):
		default:
			logger.Error("Running ROM failed", log.Err(err))
			os.Exit(1)
		}
	}
}

func run(ctx context.Context, logger *log.Logger, opts options.Program, runnerOptions options.Runner) error {
	program, err := loader.New().Load(opts)
	if err != nil {
		return fmt.Errorf("loading ROM: %w", err)
	}
	logger.Debug("ROM loaded",
		log.String("file", opts.Input),
		log.Int("size", len(program)))

	if opts.Disasm {
		return fileprocessor.ProcessFile(ctx, logger, opts, program)
	}

	switch opts.Frontend {
	case options.FrontendTerminal:
		return runTerminal(ctx, logger, runnerOptions, program)
	case options.FrontendHeadless:
		return runHeadless(ctx, logger, runnerOptions, program)
	default:
		return runWindow(ctx, logger, opts, runnerOptions, program)
	}
}

func runTerminal(ctx context.Context, logger *log.Logger, runnerOptions options.Runner, program []byte) error {
	term := terminal.New(logger, os.Stdin, os.Stdout)
	beeper := audio.NewText(logger)

	runner, err := host.New(logger, runnerOptions, program, host.Devices{
		Display: term,
		Input:   term,
		Audio:   beeper,
	})
	if err != nil {
		return fmt.Errorf("creating runner: %w", err)
	}

	if err := term.Start(); err != nil {
		return fmt.Errorf("starting terminal: %w", err)
	}
	err = runner.Run(ctx)
	if closeErr := term.Close(); closeErr != nil {
		logger.Error("Closing terminal failed", log.Err(closeErr))
	}

	runner.LogStats()
	return err
}

func runHeadless(ctx context.Context, logger *log.Logger, runnerOptions options.Runner, program []byte) error {
	display := headless.New()
	beeper := audio.NewText(logger)

	runner, err := host.New(logger, runnerOptions, program, host.Devices{
		Display: display,
		Input:   display,
		Audio:   beeper,
	})
	if err != nil {
		return fmt.Errorf("creating runner: %w", err)
	}

	err = runner.Run(ctx)
	runner.LogStats()
	if writeErr := display.WriteFrame(os.Stdout); writeErr != nil {
		return fmt.Errorf("writing frame: %w", writeErr)
	}
	return err
}
