// Package cli handles command line interface logic
package cli

import (
	"flag"
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/retroenv/chip8vm/internal/options"
)

// ParseFlags parses command line flags and returns program and runner options
func ParseFlags() (options.Program, options.Runner, error) {
	flags := flag.NewFlagSet(os.Args[0], flag.ExitOnError)
	var opts options.Program
	readOptionFlags(flags, &opts)

	err := flags.Parse(os.Args[1:])
	args := flags.Args()
	if err != nil || (len(args) == 0 && opts.Input == "") {
		return opts, options.Runner{}, &UsageError{flags: flags}
	}

	if err := validateArgs(args); err != nil {
		return opts, options.Runner{}, err
	}

	if err := normalizeOptions(&opts); err != nil {
		return opts, options.Runner{}, err
	}

	if opts.Input == "" {
		opts.Input = args[0]
	}

	runnerOptions := options.NewRunner(opts)
	flags.Visit(func(f *flag.Flag) {
		if f.Name == "seed" {
			runnerOptions.SeedSet = true
		}
	})

	return opts, runnerOptions, nil
}

// UsageError represents an error that should show usage information
type UsageError struct {
	flags *flag.FlagSet
	msg   string
}

func (e *UsageError) Error() string {
	return e.msg
}

func (e *UsageError) ShowUsage() {
	fmt.Printf("usage: chip8vm [options] <ROM file to run>\n\n")
	if e.flags != nil {
		e.flags.PrintDefaults()
	}
	fmt.Println()
}

// validateArgs checks if arguments are in correct order
func validateArgs(args []string) error {
	for i, arg := range args {
		if i > 0 && arg[0] == '-' {
			return &UsageError{
				msg: fmt.Sprintf("Potential argument %s found after ROM file, please pass the ROM file as last argument", arg),
			}
		}
	}
	return nil
}

// normalizeOptions normalizes and validates option values
func normalizeOptions(opts *options.Program) error {
	opts.Frontend = strings.ToLower(opts.Frontend)
	if !slices.Contains(options.Frontends, opts.Frontend) {
		return fmt.Errorf("unsupported frontend: %s. Valid options: %s",
			opts.Frontend, strings.Join(options.Frontends, ", "))
	}

	if opts.Scale < 1 {
		return fmt.Errorf("invalid scale %d, must be at least 1", opts.Scale)
	}
	if opts.TPS < 1 {
		return fmt.Errorf("invalid tps %d, must be at least 1", opts.TPS)
	}
	if opts.Cycles < 1 {
		return fmt.Errorf("invalid cycles %d, must be at least 1", opts.Cycles)
	}

	if opts.Trace {
		opts.Debug = true
		opts.Quiet = false
	}
	return nil
}

func readOptionFlags(flags *flag.FlagSet, opts *options.Program) {
	flags.StringVar(&opts.Input, "i", "", "name of the input ROM file")
	flags.StringVar(&opts.Output, "o", "", "name of the output file for the -disasm listing, printed on console if no name given")
	flags.StringVar(&opts.Frontend, "frontend", options.FrontendWindow, "frontend to run the ROM in (window/terminal/headless)")
	flags.BoolVar(&opts.Disasm, "disasm", false, "print a disassembly listing of the ROM instead of running it")
	flags.BoolVar(&opts.NoHexComments, "nohexcomments", false, "do not output opcode bytes as hex values in comments of the -disasm listing")
	flags.BoolVar(&opts.ZeroBytes, "z", false, "output the trailing zero bytes of the ROM in the -disasm listing")
	flags.BoolVar(&opts.Trace, "trace", false, "log every executed instruction, implies -debug")
	flags.BoolVar(&opts.Debug, "debug", false, "enable debugging options for extended logging")
	flags.BoolVar(&opts.Quiet, "q", false, "perform operations quietly")
	flags.IntVar(&opts.Scale, "scale", 10, "window pixel scale factor")
	flags.IntVar(&opts.TPS, "tps", 60, "frames per second, the timers tick once per interpreter step")
	flags.IntVar(&opts.Cycles, "cycles", 1, "interpreter steps per frame")
	flags.Uint64Var(&opts.Seed, "seed", 0, "seed for the random number generator, random if not set")
	flags.Uint64Var(&opts.Limit, "limit", 0, "stop after this many interpreter steps, 0 runs until interrupted")
}
