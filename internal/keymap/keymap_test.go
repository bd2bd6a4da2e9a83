package keymap

import (
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

func TestFromRune(t *testing.T) {
	tests := []struct {
		r   rune
		key int
	}{
		{'1', 0x1}, {'2', 0x2}, {'3', 0x3}, {'4', 0xC},
		{'q', 0x4}, {'w', 0x5}, {'e', 0x6}, {'r', 0xD},
		{'a', 0x7}, {'s', 0x8}, {'d', 0x9}, {'f', 0xE},
		{'z', 0xA}, {'x', 0x0}, {'c', 0xB}, {'v', 0xF},
		{'Q', 0x4}, {'V', 0xF},
	}

	for _, tt := range tests {
		key, ok := FromRune(tt.r)
		assert.True(t, ok, "rune %c not mapped", tt.r)
		assert.Equal(t, tt.key, key, "rune %c", tt.r)
	}
}

func TestFromRuneUnmapped(t *testing.T) {
	for _, r := range []rune{'5', 'p', ' ', '\r', 0x1b} {
		_, ok := FromRune(r)
		assert.False(t, ok)
	}
}

func TestRune(t *testing.T) {
	for key := range 16 {
		r, ok := Rune(key)
		assert.True(t, ok)

		back, ok := FromRune(r)
		assert.True(t, ok)
		assert.Equal(t, key, back)
	}

	_, ok := Rune(16)
	assert.False(t, ok)
	_, ok = Rune(-1)
	assert.False(t, ok)
}
