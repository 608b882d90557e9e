package cpu

import "github.com/thelolagemann/gbcore/internal/types"

type Flag = uint8

const (
	FlagZero      Flag = types.Bit7
	FlagSubtract  Flag = types.Bit6
	FlagHalfCarry Flag = types.Bit5
	FlagCarry     Flag = types.Bit4
)

// isFlagSet returns true if the given flag is set.
func (c *CPU) isFlagSet(flag Flag) bool {
	return c.F()&flag != 0
}

// setFlag sets or clears a single flag.
func (c *CPU) setFlag(flag Flag, set bool) {
	if set {
		c.SetF(c.F() | flag)
	} else {
		c.SetF(c.F() &^ flag)
	}
}

// setFlags replaces all four flags at once.
func (c *CPU) setFlags(zero, subtract, halfCarry, carry bool) {
	var f uint8
	if zero {
		f |= FlagZero
	}
	if subtract {
		f |= FlagSubtract
	}
	if halfCarry {
		f |= FlagHalfCarry
	}
	if carry {
		f |= FlagCarry
	}
	c.SetF(f)
}

// carry returns the carry flag as 0 or 1.
func (c *CPU) carry() uint8 {
	return c.F() & FlagCarry >> 4
}

var conditionNames = [4]string{"NZ", "Z", "NC", "C"}

// condition evaluates one of the four branch conditions
// (NZ, Z, NC, C), as held in bits 3-4 of a conditional
// jump, call or return opcode.
func (c *CPU) condition(cc uint8) bool {
	switch cc & 3 {
	case 0:
		return !c.isFlagSet(FlagZero)
	case 1:
		return c.isFlagSet(FlagZero)
	case 2:
		return !c.isFlagSet(FlagCarry)
	default:
		return c.isFlagSet(FlagCarry)
	}
}
