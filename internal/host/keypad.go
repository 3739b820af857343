package host

import (
	"unicode"

	"github.com/retroenv/retrochip8/internal/machine"
)

// KeyLayout maps the hex keypad to the left half of a QWERTY keyboard:
//
//	1 2 3 C      1 2 3 4
//	4 5 6 D  ->  q w e r
//	7 8 9 E      a s d f
//	A 0 B F      z x c v
var KeyLayout = [machine.NumKeys]rune{
	0x0: 'x', 0x1: '1', 0x2: '2', 0x3: '3',
	0x4: 'q', 0x5: 'w', 0x6: 'e', 0x7: 'a',
	0x8: 's', 0x9: 'd', 0xA: 'z', 0xB: 'c',
	0xC: '4', 0xD: 'r', 0xE: 'f', 0xF: 'v',
}

// KeyForRune returns the keypad key that the keyboard character maps to.
func KeyForRune(r rune) (uint8, bool) {
	r = unicode.ToLower(r)
	for key, mapped := range KeyLayout {
		if mapped == r {
			return uint8(key), true
		}
	}
	return 0, false
}
