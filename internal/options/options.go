// Package options contains the program options.
package options

import "time"

// Frontend names.
const (
	FrontendWindow   = "window"
	FrontendTerminal = "terminal"
	FrontendHeadless = "headless"
)

// Frontends lists all supported frontend names.
var Frontends = []string{FrontendWindow, FrontendTerminal, FrontendHeadless}

// Parameters contains file path options.
type Parameters struct {
	Input  string `flag:"i" usage:"input ROM file"`
	Output string `flag:"o" usage:"output file for the -disasm listing (default: stdout)"`
}

// Flags contains behavior options.
type Flags struct {
	Frontend string `flag:"frontend" usage:"frontend: window, terminal, headless" default:"window"`
	Disasm   bool   `flag:"disasm" usage:"print a disassembly listing instead of running the ROM"`

	NoHexComments bool `flag:"nohexcomments" usage:"do not output opcode bytes as hex values in comments"`
	ZeroBytes     bool `flag:"z" usage:"output the trailing zero bytes of the ROM"`

	Trace    bool   `flag:"trace" usage:"log every executed instruction, implies -debug"`
	Debug    bool   `flag:"debug" usage:"enable debug logging"`
	Quiet    bool   `flag:"q" usage:"quiet mode"`
}

// MachineFlags contains emulation options.
type MachineFlags struct {
	Scale  int    `flag:"scale" usage:"window pixel scale factor" default:"10"`
	TPS    int    `flag:"tps" usage:"frames per second, timers tick once per step" default:"60"`
	Cycles int    `flag:"cycles" usage:"interpreter steps per frame" default:"1"`
	Seed   uint64 `flag:"seed" usage:"seed for the random number generator (default: random)"`
	Limit  uint64 `flag:"limit" usage:"stop after this many steps, 0 runs until interrupted"`
}

// Program options of the emulator.
type Program struct {
	Parameters
	Flags
	MachineFlags
}

// Runner defines options to control the host runner.
type Runner struct {
	CyclesPerFrame int
	FrameDuration  time.Duration
	StepLimit      uint64
	Trace          bool

	Seed    uint64
	SeedSet bool // use Seed instead of a random seed
}

// NewRunner returns runner options for the given program options.
func NewRunner(opts Program) Runner {
	tps := max(opts.TPS, 1)
	return Runner{
		CyclesPerFrame: max(opts.Cycles, 1),
		FrameDuration:  time.Second / time.Duration(tps),
		StepLimit:      opts.Limit,
		Trace:          opts.Trace,
		Seed:           opts.Seed,
	}
}
