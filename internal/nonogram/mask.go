package nonogram

import "math/bits"

// MaxPaletteSize is the largest palette that fits a possibility mask.
// Deliberately 63 rather than 64 to keep headroom below the mask width.
const MaxPaletteSize = 63

// Mask is a bitset of colors still possible at a cell. Bit 0 is the
// background color. A mask with a single set bit is a determined cell;
// a zero mask is a contradiction.
type Mask uint64

// FullMask allows every color of an n-color palette.
func FullMask(n int) Mask {
	return Mask(1)<<n - 1
}

func (m Mask) Single() bool {
	return m != 0 && m&(m-1) == 0
}

// Color returns the color index of a determined cell, or -1 if the
// mask is empty or still holds more than one candidate.
func (m Mask) Color() int {
	if !m.Single() {
		return -1
	}
	return bits.TrailingZeros64(uint64(m))
}

func colorMask(color int) (Mask, bool) {
	if color < 0 || color >= 64 {
		return 0, false
	}
	return Mask(1) << color, true
}
