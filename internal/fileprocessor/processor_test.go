package fileprocessor

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/retroenv/chip8vm/internal/options"
	"github.com/retroenv/retrogolib/assert"
	"github.com/retroenv/retrogolib/log"
)

func TestProcessFile(t *testing.T) {
	output := filepath.Join(t.TempDir(), "loop.asm")
	opts := options.Program{
		Parameters: options.Parameters{Input: "loop.ch8", Output: output},
	}

	program := []byte{0x12, 0x00}
	assert.NoError(t, ProcessFile(context.Background(), log.NewTestLogger(t), opts, program))

	data, err := os.ReadFile(output)
	assert.NoError(t, err)
	listing := string(data)
	assert.True(t, strings.HasPrefix(listing, "; CHIP-8 ROM Disassembly\n"))
	assert.Contains(t, listing, "Start:\n")
	assert.Contains(t, listing, "; $0200 12 00\n")
}

func TestProcessFileCreateError(t *testing.T) {
	opts := options.Program{
		Parameters: options.Parameters{Output: filepath.Join(t.TempDir(), "missing", "out.asm")},
	}

	err := ProcessFile(context.Background(), log.NewTestLogger(t), opts, []byte{0x00, 0xE0})
	assert.ErrorContains(t, err, "creating output file")
}

func TestDisasmOptions(t *testing.T) {
	disasmOptions := DisasmOptions(options.Program{})
	assert.True(t, disasmOptions.HexComments)
	assert.False(t, disasmOptions.ZeroBytes)

	disasmOptions = DisasmOptions(options.Program{
		Flags: options.Flags{NoHexComments: true, ZeroBytes: true},
	})
	assert.False(t, disasmOptions.HexComments)
	assert.True(t, disasmOptions.ZeroBytes)
}
