// Package fileprocessor handles the disassembly listing output
package fileprocessor

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/retroenv/chip8vm/internal/disasm"
	"github.com/retroenv/chip8vm/internal/options"
	"github.com/retroenv/retrogolib/log"
)

// ProcessFile writes the disassembly listing of the program to the output
// file, or to stdout if no output file is set.
func ProcessFile(ctx context.Context, logger *log.Logger, opts options.Program, program []byte) error {
	writer, err := createWriter(opts)
	if err != nil {
		return fmt.Errorf("creating writer: %w", err)
	}
	defer func() {
		_ = writer.Close()
	}()

	dis, err := disasm.New(logger, program, DisasmOptions(opts))
	if err != nil {
		return fmt.Errorf("creating disassembler: %w", err)
	}

	if err := dis.Process(ctx, writer); err != nil {
		return fmt.Errorf("disassembling: %w", err)
	}

	if opts.Output != "" {
		logger.Info("Disassembly written", log.String("file", opts.Output))
	}
	return nil
}

// DisasmOptions returns the disassembler options for the program options.
func DisasmOptions(opts options.Program) disasm.Options {
	disasmOptions := disasm.NewOptions()
	disasmOptions.HexComments = !opts.NoHexComments
	disasmOptions.ZeroBytes = opts.ZeroBytes
	return disasmOptions
}

func createWriter(opts options.Program) (io.WriteCloser, error) {
	if opts.Output == "" {
		return &nopCloser{os.Stdout}, nil
	}

	file, err := os.Create(opts.Output)
	if err != nil {
		return nil, fmt.Errorf("creating output file %s: %w", opts.Output, err)
	}
	return file, nil
}

// PrintBanner prints application version information
func PrintBanner(logger *log.Logger, opts options.Program, version, commit, date string) {
	if opts.Quiet {
		return
	}

	versionString := version
	if commit != "" {
		if len(commit) > 7 {
			commit = commit[:7]
		}
		versionString += fmt.Sprintf(" (%s)", commit)
	}

	logger.Info("chip8vm", log.String("version", versionString))

	if date != "" && !strings.Contains(date, "unknown") {
		logger.Info("Build", log.String("date", date))
	}
}

// nopCloser wraps an io.Writer to add a no-op Close method
type nopCloser struct {
	io.Writer
}

func (nc *nopCloser) Close() error {
	return nil
}
