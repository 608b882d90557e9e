package cpu

import "fmt"

// cost returns the cost of an instruction that costs base T-cycles
// with a register operand, and extra more when operating on (HL).
func cost(r, base, extra uint8) uint8 {
	if r == 6 {
		return base + extra
	}
	return base
}

// indirect describes the 4 addressing modes used by the
// LD (rr), A and LD A, (rr) families.
var indirect = [4]struct {
	name    string
	address func(c *CPU) uint16
}{
	{"(BC)", func(c *CPU) uint16 { return c.BC.Uint16() }},
	{"(DE)", func(c *CPU) uint16 { return c.DE.Uint16() }},
	{"(HL+)", func(c *CPU) uint16 {
		hl := c.HL.Uint16()
		c.HL.SetUint16(hl + 1)
		return hl
	}},
	{"(HL-)", func(c *CPU) uint16 {
		hl := c.HL.Uint16()
		c.HL.SetUint16(hl - 1)
		return hl
	}},
}

var aluNames = [8]string{"ADD A, ", "ADC A, ", "SUB ", "SBC A, ", "AND ", "XOR ", "OR ", "CP "}

func init() {
	DefineInstruction(0x00, "NOP", 1, func(c *CPU) uint8 { return 4 })
	DefineInstruction(0x08, "LD (a16), SP", 3, func(c *CPU) uint8 {
		address := c.fetch16()
		c.b.Write(address, uint8(c.SP))
		c.b.Write(address+1, uint8(c.SP>>8))
		return 20
	})
	DefineInstruction(0x10, "STOP", 2, func(c *CPU) uint8 {
		c.fetch8() // STOP is always followed by a padding byte
		c.stopped = true
		c.b.ResetDIV()
		c.oldDIV = 0
		return 4
	})
	DefineInstruction(0x76, "HALT", 1, func(c *CPU) uint8 {
		if !c.IME && c.b.PendingInterrupts()&0x1F != 0 {
			c.haltBug = true
		} else {
			c.halted = true
		}
		return 4
	})

	// rotates on A never set the zero flag
	for i, name := range [4]string{"RLCA", "RRCA", "RLA", "RRA"} {
		op := uint8(i)
		DefineInstruction(0x07|op<<3, name, 1, func(c *CPU) uint8 {
			c.SetA(c.rotate(op, c.A()))
			c.setFlag(FlagZero, false)
			return 4
		})
	}
	DefineInstruction(0x27, "DAA", 1, func(c *CPU) uint8 {
		c.daa()
		return 4
	})
	DefineInstruction(0x2F, "CPL", 1, func(c *CPU) uint8 {
		c.SetA(0xFF ^ c.A())
		c.setFlag(FlagSubtract, true)
		c.setFlag(FlagHalfCarry, true)
		return 4
	})
	DefineInstruction(0x37, "SCF", 1, func(c *CPU) uint8 {
		c.setFlags(c.isFlagSet(FlagZero), false, false, true)
		return 4
	})
	DefineInstruction(0x3F, "CCF", 1, func(c *CPU) uint8 {
		c.setFlags(c.isFlagSet(FlagZero), false, false, !c.isFlagSet(FlagCarry))
		return 4
	})

	// 16-bit register families, selected by bits 4-5
	for i := uint8(0); i < 4; i++ {
		p := i
		op := p << 4
		DefineInstruction(0x01|op, "LD "+pairNames[p]+", d16", 3, func(c *CPU) uint8 {
			c.setPair(p, c.fetch16())
			return 12
		})
		DefineInstruction(0x03|op, "INC "+pairNames[p], 1, func(c *CPU) uint8 {
			c.setPair(p, c.pair(p)+1)
			return 8
		})
		DefineInstruction(0x0B|op, "DEC "+pairNames[p], 1, func(c *CPU) uint8 {
			c.setPair(p, c.pair(p)-1)
			return 8
		})
		DefineInstruction(0x09|op, "ADD HL, "+pairNames[p], 1, func(c *CPU) uint8 {
			c.addHL(c.pair(p))
			return 8
		})

		ind := indirect[p]
		DefineInstruction(0x02|op, "LD "+ind.name+", A", 1, func(c *CPU) uint8 {
			c.b.Write(ind.address(c), c.A())
			return 8
		})
		DefineInstruction(0x0A|op, "LD A, "+ind.name, 1, func(c *CPU) uint8 {
			c.SetA(c.b.Read(ind.address(c)))
			return 8
		})

		DefineInstruction(0xC1|op, "POP "+stackPairNames[p], 1, func(c *CPU) uint8 {
			v := c.pop()
			if p == 3 {
				c.SetAF(v)
			} else {
				c.stackPair(p).SetUint16(v)
			}
			return 12
		})
		DefineInstruction(0xC5|op, "PUSH "+stackPairNames[p], 1, func(c *CPU) uint8 {
			c.push(c.stackPair(p).Uint16())
			return 16
		})
	}

	// 8-bit register families, selected by bits 3-5
	for i := uint8(0); i < 8; i++ {
		r := i
		reg := registerNames[r]
		DefineInstruction(0x04|r<<3, "INC "+reg, 1, func(c *CPU) uint8 {
			c.setRegister(r, c.increment(c.register(r)))
			return cost(r, 4, 8)
		})
		DefineInstruction(0x05|r<<3, "DEC "+reg, 1, func(c *CPU) uint8 {
			c.setRegister(r, c.decrement(c.register(r)))
			return cost(r, 4, 8)
		})
		DefineInstruction(0x06|r<<3, "LD "+reg+", d8", 2, func(c *CPU) uint8 {
			c.setRegister(r, c.fetch8())
			return cost(r, 8, 4)
		})

		// LD r, r'
		for j := uint8(0); j < 8; j++ {
			dst, src := r, j
			if dst == 6 && src == 6 {
				continue // HALT
			}
			DefineInstruction(0x40|dst<<3|src, "LD "+registerNames[dst]+", "+registerNames[src], 1, func(c *CPU) uint8 {
				c.setRegister(dst, c.register(src))
				if dst == 6 || src == 6 {
					return 8
				}
				return 4
			})
		}

		// ALU A, r
		op := r
		for j := uint8(0); j < 8; j++ {
			src := j
			DefineInstruction(0x80|op<<3|src, aluNames[op]+registerNames[src], 1, func(c *CPU) uint8 {
				c.alu(op, c.register(src))
				return cost(src, 4, 4)
			})
		}
		DefineInstruction(0xC6|op<<3, aluNames[op]+"d8", 2, func(c *CPU) uint8 {
			c.alu(op, c.fetch8())
			return 8
		})

		vector := uint16(r) * 8
		DefineInstruction(0xC7|r<<3, fmt.Sprintf("RST %02XH", vector), 1, func(c *CPU) uint8 {
			c.call(vector)
			return 16
		})
	}

	// conditional branches, the condition held in bits 3-4
	for i := uint8(0); i < 4; i++ {
		cc := i
		name := conditionNames[cc]
		DefineInstruction(0x20|cc<<3, "JR "+name+", r8", 2, func(c *CPU) uint8 {
			offset := c.fetch8()
			if !c.condition(cc) {
				return 8
			}
			c.jumpRelative(offset)
			return 12
		})
		DefineInstruction(0xC0|cc<<3, "RET "+name, 1, func(c *CPU) uint8 {
			if !c.condition(cc) {
				return 8
			}
			c.ret()
			return 20
		})
		DefineInstruction(0xC2|cc<<3, "JP "+name+", a16", 3, func(c *CPU) uint8 {
			address := c.fetch16()
			if !c.condition(cc) {
				return 12
			}
			c.PC = address
			return 16
		})
		DefineInstruction(0xC4|cc<<3, "CALL "+name+", a16", 3, func(c *CPU) uint8 {
			address := c.fetch16()
			if !c.condition(cc) {
				return 12
			}
			c.call(address)
			return 24
		})
	}

	DefineInstruction(0x18, "JR r8", 2, func(c *CPU) uint8 {
		c.jumpRelative(c.fetch8())
		return 12
	})
	DefineInstruction(0xC3, "JP a16", 3, func(c *CPU) uint8 {
		c.PC = c.fetch16()
		return 16
	})
	DefineInstruction(0xC9, "RET", 1, func(c *CPU) uint8 {
		c.ret()
		return 16
	})
	DefineInstruction(0xCB, "PREFIX CB", 2, func(c *CPU) uint8 {
		return InstructionSetCB[c.fetch8()].fn(c)
	})
	DefineInstruction(0xCD, "CALL a16", 3, func(c *CPU) uint8 {
		c.call(c.fetch16())
		return 24
	})
	DefineInstruction(0xD9, "RETI", 1, func(c *CPU) uint8 {
		c.ret()
		c.IME = true
		return 16
	})
	DefineInstruction(0xE0, "LDH (a8), A", 2, func(c *CPU) uint8 {
		c.b.Write(0xFF00|uint16(c.fetch8()), c.A())
		return 12
	})
	DefineInstruction(0xF0, "LDH A, (a8)", 2, func(c *CPU) uint8 {
		c.SetA(c.b.Read(0xFF00 | uint16(c.fetch8())))
		return 12
	})
	DefineInstruction(0xE2, "LD (C), A", 1, func(c *CPU) uint8 {
		c.b.Write(0xFF00|uint16(c.C()), c.A())
		return 8
	})
	DefineInstruction(0xF2, "LD A, (C)", 1, func(c *CPU) uint8 {
		c.SetA(c.b.Read(0xFF00 | uint16(c.C())))
		return 8
	})
	DefineInstruction(0xE8, "ADD SP, e8", 2, func(c *CPU) uint8 {
		c.SP = c.addSPSigned()
		return 16
	})
	DefineInstruction(0xF8, "LD HL, SP+e8", 2, func(c *CPU) uint8 {
		c.HL.SetUint16(c.addSPSigned())
		return 12
	})
	DefineInstruction(0xE9, "JP HL", 1, func(c *CPU) uint8 {
		c.PC = c.HL.Uint16()
		return 4
	})
	DefineInstruction(0xF9, "LD SP, HL", 1, func(c *CPU) uint8 {
		c.SP = c.HL.Uint16()
		return 8
	})
	DefineInstruction(0xEA, "LD (a16), A", 3, func(c *CPU) uint8 {
		c.b.Write(c.fetch16(), c.A())
		return 16
	})
	DefineInstruction(0xFA, "LD A, (a16)", 3, func(c *CPU) uint8 {
		c.SetA(c.b.Read(c.fetch16()))
		return 16
	})
	DefineInstruction(0xF3, "DI", 1, func(c *CPU) uint8 {
		c.IME = false
		c.eiPending = false
		return 4
	})
	DefineInstruction(0xFB, "EI", 1, func(c *CPU) uint8 {
		// takes effect after the next instruction completes
		c.eiPending = true
		return 4
	})
}
