package cpu

// alu performs one of the 8 arithmetic/logic operations
// on the A register, as selected by bits 3-5 of the opcode.
//
//	ADD, ADC, SUB, SBC, AND, XOR, OR, CP
func (c *CPU) alu(op, n uint8) {
	switch op & 7 {
	case 0:
		c.add(n, 0)
	case 1:
		c.add(n, c.carry())
	case 2:
		c.SetA(c.sub(n, 0))
	case 3:
		c.SetA(c.sub(n, c.carry()))
	case 4:
		c.and(n)
	case 5:
		c.xor(n)
	case 6:
		c.or(n)
	case 7:
		c.sub(n, 0)
	}
}

// add adds n and the carry-in to the A Register.
//
//	ADD A, n
//	ADC A, n
//	n = d8, B, C, D, E, H, L, (HL), A
//
// Flags affected:
//
//	Z - Set if result is zero.
//	N - Reset.
//	H - Set if carry from bit 3.
//	C - Set if carry from bit 7.
func (c *CPU) add(n, carry uint8) {
	a := uint16(c.A())
	sum := a + uint16(n) + uint16(carry)
	c.setFlags(sum&0xFF == 0, false, (a^uint16(n)^sum)&0x10 != 0, sum&0x100 != 0)
	c.SetA(uint8(sum))
}

// sub subtracts n and the carry-in from the A Register, returning
// the result and leaving A untouched so that CP can share it.
//
//	SUB n
//	SBC A, n
//	CP n
//	n = d8, B, C, D, E, H, L, (HL), A
//
// Flags affected:
//
//	Z - Set if result is zero.
//	N - Set.
//	H - Set if borrow from bit 4.
//	C - Set if borrow.
func (c *CPU) sub(n, carry uint8) uint8 {
	a := uint16(c.A())
	diff := a - uint16(n) - uint16(carry)
	c.setFlags(diff&0xFF == 0, true, (a^uint16(n)^diff)&0x10 != 0, diff&0x100 != 0)
	return uint8(diff)
}

// and performs a bitwise AND operation on n and the A Register.
//
// Flags affected:
//
//	Z - Set if result is zero.
//	N - Reset.
//	H - Set.
//	C - Reset.
func (c *CPU) and(n uint8) {
	c.SetA(c.A() & n)
	c.setFlags(c.A() == 0, false, true, false)
}

// or performs a bitwise OR operation on n and the A Register.
func (c *CPU) or(n uint8) {
	c.SetA(c.A() | n)
	c.setFlags(c.A() == 0, false, false, false)
}

// xor performs a bitwise XOR operation on n and the A Register.
func (c *CPU) xor(n uint8) {
	c.SetA(c.A() ^ n)
	c.setFlags(c.A() == 0, false, false, false)
}

// increment n by 1 and set the flags accordingly.
//
//	INC n
//	n = B, C, D, E, H, L, (HL), A
//
// Flags affected:
//
//	Z - Set if result is zero.
//	N - Reset.
//	H - Set if carry from bit 3.
//	C - Not affected.
func (c *CPU) increment(n uint8) uint8 {
	r := n + 1
	c.setFlags(r == 0, false, (n^1^r)&0x10 != 0, c.isFlagSet(FlagCarry))
	return r
}

// decrement n by 1 and set the flags accordingly.
//
// Flags affected:
//
//	Z - Set if result is zero.
//	N - Set.
//	H - Set if borrow from bit 4.
//	C - Not affected.
func (c *CPU) decrement(n uint8) uint8 {
	r := n - 1
	c.setFlags(r == 0, true, (n^1^r)&0x10 != 0, c.isFlagSet(FlagCarry))
	return r
}

// addHL adds n to the HL register pair.
//
//	ADD HL, nn
//	nn = BC, DE, HL, SP
//
// Flags affected:
//
//	Z - Not affected.
//	N - Reset.
//	H - Set if carry from bit 11.
//	C - Set if carry from bit 15.
func (c *CPU) addHL(n uint16) {
	hl := uint32(c.HL.Uint16())
	sum := hl + uint32(n)
	c.setFlags(c.isFlagSet(FlagZero), false, (hl^uint32(n)^sum)&0x1000 != 0, sum&0x10000 != 0)
	c.HL.SetUint16(uint16(sum))
}

// addSPSigned fetches a signed offset and returns SP plus the
// offset. The carries are taken from adding the unsigned offset
// byte to the low byte of SP.
//
//	ADD SP, e8
//	LD HL, SP+e8
//
// Flags affected:
//
//	Z - Reset.
//	N - Reset.
//	H - Set if carry from bit 3.
//	C - Set if carry from bit 7.
func (c *CPU) addSPSigned() uint16 {
	e := c.fetch8()
	sp := c.SP
	c.setFlags(false, false, sp&0xF+uint16(e&0xF) > 0xF, sp&0xFF+uint16(e) > 0xFF)
	return sp + uint16(int8(e))
}

// daa adjusts the A register to hold a valid BCD number, using the
// flags left behind by the previous addition or subtraction.
//
// Flags affected:
//
//	Z - Set if register A is zero.
//	N - Not affected.
//	H - Reset.
//	C - Set or reset according to operation.
func (c *CPU) daa() {
	a := c.A()
	if !c.isFlagSet(FlagSubtract) {
		if c.isFlagSet(FlagCarry) || a > 0x99 {
			a += 0x60
			c.setFlag(FlagCarry, true)
		}
		if c.isFlagSet(FlagHalfCarry) || a&0xF > 0x9 {
			a += 0x06
		}
	} else if c.isFlagSet(FlagCarry) && c.isFlagSet(FlagHalfCarry) {
		a += 0x9a
	} else if c.isFlagSet(FlagCarry) {
		a += 0xa0
	} else if c.isFlagSet(FlagHalfCarry) {
		a += 0xfa
	}
	c.SetA(a)
	c.setFlag(FlagHalfCarry, false)
	c.setFlag(FlagZero, a == 0)
}

// rotate performs one of the 8 rotate/shift operations selected by
// bits 3-5 of a CB-prefixed opcode.
//
//	RLC, RRC, RL, RR, SLA, SRA, SWAP, SRL
//
// Flags affected:
//
//	Z - Set if result is zero.
//	N - Reset.
//	H - Reset.
//	C - Contains the bit shifted out (reset for SWAP).
func (c *CPU) rotate(op, v uint8) uint8 {
	var r, carry uint8
	switch op & 7 {
	case 0: // RLC
		carry = v >> 7
		r = v<<1 | carry
	case 1: // RRC
		carry = v & 1
		r = v>>1 | carry<<7
	case 2: // RL
		carry = v >> 7
		r = v<<1 | c.carry()
	case 3: // RR
		carry = v & 1
		r = v>>1 | c.carry()<<7
	case 4: // SLA
		carry = v >> 7
		r = v << 1
	case 5: // SRA
		carry = v & 1
		r = v&0x80 | v>>1
	case 6: // SWAP
		r = v<<4 | v>>4
	case 7: // SRL
		carry = v & 1
		r = v >> 1
	}
	c.setFlags(r == 0, false, false, carry == 1)
	return r
}

// testBit tests the bit at the given position of v.
//
//	BIT n, r
//
// Flags affected:
//
//	Z - Set if bit n of r is 0.
//	N - Reset.
//	H - Set.
//	C - Not affected.
func (c *CPU) testBit(v, n uint8) {
	c.setFlags(v&(1<<n) == 0, false, true, c.isFlagSet(FlagCarry))
}
