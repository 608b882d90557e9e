package cpu

import "fmt"

// RegisterPair is a 16-bit register which may also be addressed
// as two 8-bit registers, High and Low.
type RegisterPair uint16

// High returns the upper 8 bits of the pair.
func (r RegisterPair) High() uint8 { return uint8(r >> 8) }

// Low returns the lower 8 bits of the pair.
func (r RegisterPair) Low() uint8 { return uint8(r) }

// SetHigh sets the upper 8 bits of the pair.
func (r *RegisterPair) SetHigh(v uint8) { *r = RegisterPair(uint16(v)<<8 | uint16(*r)&0x00FF) }

// SetLow sets the lower 8 bits of the pair.
func (r *RegisterPair) SetLow(v uint8) { *r = RegisterPair(uint16(*r)&0xFF00 | uint16(v)) }

// Uint16 returns the value of the RegisterPair as an uint16.
func (r RegisterPair) Uint16() uint16 { return uint16(r) }

// SetUint16 sets the value of the RegisterPair to the given value.
func (r *RegisterPair) SetUint16(v uint16) { *r = RegisterPair(v) }

// registers holds the four register pairs of the CPU. The low byte
// of AF is the flag register, of which only the upper nibble is
// ever set.
type registers struct {
	AF RegisterPair
	BC RegisterPair
	DE RegisterPair
	HL RegisterPair
}

func (r *registers) A() uint8 { return r.AF.High() }
func (r *registers) F() uint8 { return r.AF.Low() }
func (r *registers) B() uint8 { return r.BC.High() }
func (r *registers) C() uint8 { return r.BC.Low() }
func (r *registers) D() uint8 { return r.DE.High() }
func (r *registers) E() uint8 { return r.DE.Low() }
func (r *registers) H() uint8 { return r.HL.High() }
func (r *registers) L() uint8 { return r.HL.Low() }

func (r *registers) SetA(v uint8) { r.AF.SetHigh(v) }
func (r *registers) SetB(v uint8) { r.BC.SetHigh(v) }
func (r *registers) SetC(v uint8) { r.BC.SetLow(v) }
func (r *registers) SetD(v uint8) { r.DE.SetHigh(v) }
func (r *registers) SetE(v uint8) { r.DE.SetLow(v) }
func (r *registers) SetH(v uint8) { r.HL.SetHigh(v) }
func (r *registers) SetL(v uint8) { r.HL.SetLow(v) }

// SetF sets the flag register. The lower nibble is
// not backed by any flag and always reads 0.
func (r *registers) SetF(v uint8) { r.AF.SetLow(v & 0xF0) }

// SetAF sets the AF pair, masking the unused flag bits.
func (r *registers) SetAF(v uint16) { r.AF.SetUint16(v & 0xFFF0) }

// Snapshot is an immutable copy of the CPU registers,
// used for inspection from outside the CPU.
type Snapshot struct {
	AF, BC, DE, HL uint16
	SP, PC         uint16
}

func (s Snapshot) String() string {
	return fmt.Sprintf("AF=%04X BC=%04X DE=%04X HL=%04X SP=%04X PC=%04X", s.AF, s.BC, s.DE, s.HL, s.SP, s.PC)
}

// Registers returns a snapshot of the current register state.
func (c *CPU) Registers() Snapshot {
	return Snapshot{
		AF: c.AF.Uint16(),
		BC: c.BC.Uint16(),
		DE: c.DE.Uint16(),
		HL: c.HL.Uint16(),
		SP: c.SP,
		PC: c.PC,
	}
}

// SetRegisters restores the register file from a snapshot.
func (c *CPU) SetRegisters(s Snapshot) {
	c.SetAF(s.AF)
	c.BC.SetUint16(s.BC)
	c.DE.SetUint16(s.DE)
	c.HL.SetUint16(s.HL)
	c.SP = s.SP
	c.PC = s.PC
}

// registerNames are the names of the 8-bit operands,
// indexed by the 3-bit register field of an opcode.
var registerNames = [8]string{"B", "C", "D", "E", "H", "L", "(HL)", "A"}

// register returns the 8-bit operand selected by the index. Index 6
// addresses the byte in memory pointed to by HL.
func (c *CPU) register(index uint8) uint8 {
	switch index & 7 {
	case 0:
		return c.B()
	case 1:
		return c.C()
	case 2:
		return c.D()
	case 3:
		return c.E()
	case 4:
		return c.H()
	case 5:
		return c.L()
	case 6:
		return c.b.Read(c.HL.Uint16())
	default:
		return c.A()
	}
}

// setRegister sets the 8-bit operand selected by the index.
func (c *CPU) setRegister(index uint8, v uint8) {
	switch index & 7 {
	case 0:
		c.SetB(v)
	case 1:
		c.SetC(v)
	case 2:
		c.SetD(v)
	case 3:
		c.SetE(v)
	case 4:
		c.SetH(v)
	case 5:
		c.SetL(v)
	case 6:
		c.b.Write(c.HL.Uint16(), v)
	default:
		c.SetA(v)
	}
}

var pairNames = [4]string{"BC", "DE", "HL", "SP"}
var stackPairNames = [4]string{"BC", "DE", "HL", "AF"}

// pair returns the 16-bit register selected by bits 4-5 of
// an opcode, where index 3 is SP.
func (c *CPU) pair(index uint8) uint16 {
	switch index & 3 {
	case 0:
		return c.BC.Uint16()
	case 1:
		return c.DE.Uint16()
	case 2:
		return c.HL.Uint16()
	default:
		return c.SP
	}
}

func (c *CPU) setPair(index uint8, v uint16) {
	switch index & 3 {
	case 0:
		c.BC.SetUint16(v)
	case 1:
		c.DE.SetUint16(v)
	case 2:
		c.HL.SetUint16(v)
	default:
		c.SP = v
	}
}

// stackPair is like pair, except index 3 is AF, as used
// by PUSH and POP.
func (c *CPU) stackPair(index uint8) *RegisterPair {
	switch index & 3 {
	case 0:
		return &c.BC
	case 1:
		return &c.DE
	case 2:
		return &c.HL
	default:
		return &c.AF
	}
}
