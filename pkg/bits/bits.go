// Package bits provides small helpers for working with
// individual bits of hardware registers.
package bits

// Reset resets the bit at the given index.
func Reset(b, i uint8) uint8 {
	return b &^ (1 << i)
}

// Set sets the bit at the given index.
func Set(b, i uint8) uint8 {
	return b | (1 << i)
}

// Test tests the bit at the given index.
func Test(b, i uint8) bool {
	return (b>>i)&1 != 0
}

// Fell reports whether any bit of mask was set in old
// and is cleared in new.
func Fell(old, new, mask uint16) bool {
	return old&mask != 0 && new&mask == 0
}

// Join combines a high and low byte into a 16-bit value.
func Join(hi, lo uint8) uint16 {
	return uint16(hi)<<8 | uint16(lo)
}

// Split returns the high and low bytes of v.
func Split(v uint16) (hi, lo uint8) {
	return uint8(v >> 8), uint8(v)
}
