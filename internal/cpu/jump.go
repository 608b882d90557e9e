package cpu

import "github.com/thelolagemann/gbcore/pkg/bits"

// fetch8 reads the byte at PC and advances PC, unless the halt
// bug is armed, in which case PC fails to advance once.
func (c *CPU) fetch8() uint8 {
	v := c.b.Read(c.PC)
	if c.haltBug {
		c.haltBug = false
	} else {
		c.PC++
	}
	return v
}

// fetch16 reads a little endian 16-bit operand.
func (c *CPU) fetch16() uint16 {
	lo := c.fetch8()
	return bits.Join(c.fetch8(), lo)
}

// push pushes a 16 bit value onto the stack.
func (c *CPU) push(v uint16) {
	hi, lo := bits.Split(v)
	c.SP--
	c.b.Write(c.SP, hi)
	c.SP--
	c.b.Write(c.SP, lo)
}

// pop pops a 16 bit value off the stack.
func (c *CPU) pop() uint16 {
	lo := c.b.Read(c.SP)
	c.SP++
	hi := c.b.Read(c.SP)
	c.SP++
	return bits.Join(hi, lo)
}

// call pushes the address of the next instruction onto the
// stack and jumps to the given address.
//
//	CALL nn
//	RST n
func (c *CPU) call(address uint16) {
	c.push(c.PC)
	c.PC = address
}

// ret pops the top two bytes off the stack and jumps to that address.
//
//	RET
func (c *CPU) ret() {
	c.PC = c.pop()
}

// jumpRelative jumps to the address relative to the current PC.
//
//	JR e
//	e = 8-bit signed immediate value
func (c *CPU) jumpRelative(offset uint8) {
	c.PC += uint16(int8(offset))
}
