// Package keymap maps host keyboard keys to the 16 key CHIP-8 keypad.
//
// The conventional layout uses the left 4x4 block of a QWERTY keyboard:
//
//	1 2 3 4      1 2 3 C
//	Q W E R  ->  4 5 6 D
//	A S D F      7 8 9 E
//	Z X C V      A 0 B F
package keymap

import "unicode"

// Layout lists the host keyboard character of every keypad key, indexed by
// the keypad key value.
const Layout = "x123qweasdzc4rfv"

var runes = func() map[rune]int {
	m := make(map[rune]int, len(Layout))
	for key, r := range []rune(Layout) {
		m[r] = key
	}
	return m
}()

// FromRune returns the keypad key for a host keyboard character.
// Letters are matched case insensitive.
func FromRune(r rune) (int, bool) {
	key, ok := runes[unicode.ToLower(r)]
	return key, ok
}

// Rune returns the host keyboard character of a keypad key.
func Rune(key int) (rune, bool) {
	if key < 0 || key >= len(Layout) {
		return 0, false
	}
	return rune(Layout[key]), true
}
