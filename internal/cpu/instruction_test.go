package cpu

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// conditionals maps each conditional opcode to its M-cycle
// cost when the branch is taken.
var conditionals = map[uint8]uint8{
	0x20: 3, 0x28: 3, 0x30: 3, 0x38: 3, // JR cc
	0xC0: 5, 0xC8: 5, 0xD0: 5, 0xD8: 5, // RET cc
	0xC2: 4, 0xCA: 4, 0xD2: 4, 0xDA: 4, // JP cc
	0xC4: 6, 0xCC: 6, 0xD4: 6, 0xDC: 6, // CALL cc
}

// setCondition sets the flags so that the condition encoded in the
// opcode evaluates to taken.
func setCondition(c *CPU, opcode uint8, taken bool) {
	c.SetF(0)
	cc := opcode >> 3 & 3
	switch cc {
	case 0, 1:
		c.setFlag(FlagZero, (cc == 1) == taken)
	case 2, 3:
		c.setFlag(FlagCarry, (cc == 3) == taken)
	}
}

func testInstruction(t *testing.T, name string, opcode uint8, f func(*testing.T, *CPU, *testBus)) {
	t.Run(name, func(t *testing.T) {
		c, b := newTestCPU()
		c.SP = 0xD000
		c.PC = 0xC001
		b.mem[0xC000] = opcode
		f(t, c, b)
	})
}

func TestInstruction_Timing(t *testing.T) {
	timings := []uint8{
		1, 3, 2, 2, 1, 1, 2, 1, 5, 2, 2, 2, 1, 1, 2, 1,
		1, 3, 2, 2, 1, 1, 2, 1, 3, 2, 2, 2, 1, 1, 2, 1,
		2, 3, 2, 2, 1, 1, 2, 1, 2, 2, 2, 2, 1, 1, 2, 1,
		2, 3, 2, 2, 3, 3, 3, 1, 2, 2, 2, 2, 1, 1, 2, 1,
		1, 1, 1, 1, 1, 1, 2, 1, 1, 1, 1, 1, 1, 1, 2, 1,
		1, 1, 1, 1, 1, 1, 2, 1, 1, 1, 1, 1, 1, 1, 2, 1,
		1, 1, 1, 1, 1, 1, 2, 1, 1, 1, 1, 1, 1, 1, 2, 1,
		2, 2, 2, 2, 2, 2, 1, 2, 1, 1, 1, 1, 1, 1, 2, 1,
		1, 1, 1, 1, 1, 1, 2, 1, 1, 1, 1, 1, 1, 1, 2, 1,
		1, 1, 1, 1, 1, 1, 2, 1, 1, 1, 1, 1, 1, 1, 2, 1,
		1, 1, 1, 1, 1, 1, 2, 1, 1, 1, 1, 1, 1, 1, 2, 1,
		1, 1, 1, 1, 1, 1, 2, 1, 1, 1, 1, 1, 1, 1, 2, 1,
		2, 3, 3, 4, 3, 4, 2, 4, 2, 4, 3, 0, 3, 6, 2, 4,
		2, 3, 3, 0, 3, 4, 2, 4, 2, 4, 3, 0, 3, 0, 2, 4,
		3, 3, 2, 0, 0, 4, 2, 4, 4, 1, 4, 0, 0, 0, 2, 4,
		3, 3, 2, 1, 0, 4, 2, 4, 3, 2, 4, 1, 0, 0, 2, 4,
	}
	for i, timing := range timings {
		if timing == 0 {
			continue
		}
		opcode := uint8(i)

		testInstruction(t, InstructionSet[opcode].Name(), opcode, func(t *testing.T, c *CPU, b *testBus) {
			setCondition(c, opcode, false)
			cycles, err := c.Execute(opcode)
			require.NoError(t, err)
			if cycles != timing*4 {
				t.Errorf("expected %d cycles, got %d", timing*4, cycles)
			}
		})
	}

	for opcode, timing := range conditionals {
		opcode, timing := opcode, timing
		testInstruction(t, InstructionSet[opcode].Name()+" (taken)", opcode, func(t *testing.T, c *CPU, b *testBus) {
			setCondition(c, opcode, true)
			cycles, err := c.Execute(opcode)
			require.NoError(t, err)
			if cycles != timing*4 {
				t.Errorf("expected %d cycles, got %d", timing*4, cycles)
			}
		})
	}

	cbTiming := []uint8{
		2, 2, 2, 2, 2, 2, 4, 2, 2, 2, 2, 2, 2, 2, 4, 2,
		2, 2, 2, 2, 2, 2, 4, 2, 2, 2, 2, 2, 2, 2, 4, 2,
		2, 2, 2, 2, 2, 2, 4, 2, 2, 2, 2, 2, 2, 2, 4, 2,
		2, 2, 2, 2, 2, 2, 4, 2, 2, 2, 2, 2, 2, 2, 4, 2,
		2, 2, 2, 2, 2, 2, 3, 2, 2, 2, 2, 2, 2, 2, 3, 2,
		2, 2, 2, 2, 2, 2, 3, 2, 2, 2, 2, 2, 2, 2, 3, 2,
		2, 2, 2, 2, 2, 2, 3, 2, 2, 2, 2, 2, 2, 2, 3, 2,
		2, 2, 2, 2, 2, 2, 3, 2, 2, 2, 2, 2, 2, 2, 3, 2,
		2, 2, 2, 2, 2, 2, 4, 2, 2, 2, 2, 2, 2, 2, 4, 2,
		2, 2, 2, 2, 2, 2, 4, 2, 2, 2, 2, 2, 2, 2, 4, 2,
		2, 2, 2, 2, 2, 2, 4, 2, 2, 2, 2, 2, 2, 2, 4, 2,
		2, 2, 2, 2, 2, 2, 4, 2, 2, 2, 2, 2, 2, 2, 4, 2,
		2, 2, 2, 2, 2, 2, 4, 2, 2, 2, 2, 2, 2, 2, 4, 2,
		2, 2, 2, 2, 2, 2, 4, 2, 2, 2, 2, 2, 2, 2, 4, 2,
		2, 2, 2, 2, 2, 2, 4, 2, 2, 2, 2, 2, 2, 2, 4, 2,
		2, 2, 2, 2, 2, 2, 4, 2, 2, 2, 2, 2, 2, 2, 4, 2,
	}
	for i, timing := range cbTiming {
		cb := uint8(i)
		testInstruction(t, InstructionSetCB[cb].Name(), 0xCB, func(t *testing.T, c *CPU, b *testBus) {
			b.mem[c.PC] = cb
			cycles, err := c.Execute(0xCB)
			require.NoError(t, err)
			if cycles != timing*4 {
				t.Errorf("expected %d cycles, got %d", timing*4, cycles)
			}
		})
	}
}

func TestInstruction_Invalid(t *testing.T) {
	for _, opcode := range InvalidOpcodes {
		opcode := opcode
		testInstruction(t, "invalid", opcode, func(t *testing.T, c *CPU, b *testBus) {
			assert.False(t, InstructionSet[opcode].Valid())

			_, err := c.Execute(opcode)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidOpcode))

			var invalid *InvalidOpcodeError
			require.True(t, errors.As(err, &invalid))
			assert.Equal(t, opcode, invalid.Opcode)
			assert.Equal(t, uint16(0xC000), invalid.Address)
			assert.Equal(t, uint16(0xC000), c.PC)
		})
	}

	// every other opcode must be defined
	valid := 0
	for _, instruction := range InstructionSet {
		if instruction.Valid() {
			valid++
		}
	}
	assert.Equal(t, 245, valid)
	for _, instruction := range InstructionSetCB {
		assert.True(t, instruction.Valid())
	}
}

func TestInstruction_InvalidFreezesCPU(t *testing.T) {
	c, _ := newTestCPU(0x00, 0xFD)
	tickInstruction(t, c)

	for i := 0; i < 3; i++ {
		var err error
		for done := false; !done; {
			var tickErr error
			done, tickErr = c.Tick()
			if tickErr != nil {
				err = tickErr
			}
		}
		assert.True(t, errors.Is(err, ErrInvalidOpcode))
		assert.Equal(t, uint16(0x0001), c.PC)
	}
}

func TestInstruction_Control(t *testing.T) {
	// 0x3C - INC A
	testInstruction(t, "INC A", 0x3C, func(t *testing.T, c *CPU, b *testBus) {
		c.SetA(0xFF)
		c.setFlag(FlagCarry, true)
		c.setFlag(FlagSubtract, true)

		cycles, err := c.Execute(0x3C)
		require.NoError(t, err)
		assert.Equal(t, uint8(4), cycles)
		assert.Equal(t, uint8(0x00), c.A())
		assert.True(t, c.isFlagSet(FlagZero))
		assert.False(t, c.isFlagSet(FlagSubtract))
		assert.True(t, c.isFlagSet(FlagHalfCarry))
		assert.True(t, c.isFlagSet(FlagCarry), "carry must be left untouched")
	})
	// 0xCD - CALL a16
	testInstruction(t, "CALL a16", 0xCD, func(t *testing.T, c *CPU, b *testBus) {
		c.SP = 0xFFFE
		c.PC = 0x0101
		b.mem[0x0101] = 0x34
		b.mem[0x0102] = 0x12

		cycles, err := c.Execute(0xCD)
		require.NoError(t, err)
		assert.Equal(t, uint8(24), cycles)
		assert.Equal(t, uint16(0x1234), c.PC)
		assert.Equal(t, uint16(0xFFFC), c.SP)
		assert.Equal(t, uint8(0x03), b.mem[0xFFFC])
		assert.Equal(t, uint8(0x01), b.mem[0xFFFD])
	})
	// 0xC9 - RET
	testInstruction(t, "RET", 0xC9, func(t *testing.T, c *CPU, b *testBus) {
		c.push(0xBEEF)
		_, _ = c.Execute(0xC9)
		assert.Equal(t, uint16(0xBEEF), c.PC)
		assert.Equal(t, uint16(0xD000), c.SP)
	})
	// 0xFF - RST 38H
	testInstruction(t, "RST 38H", 0xFF, func(t *testing.T, c *CPU, b *testBus) {
		_, _ = c.Execute(0xFF)
		assert.Equal(t, uint16(0x0038), c.PC)
		assert.Equal(t, uint16(0xC001), c.pop())
	})
	// 0x18 - JR r8
	testInstruction(t, "JR r8", 0x18, func(t *testing.T, c *CPU, b *testBus) {
		b.mem[0xC001] = 0xFE // -2, jump back onto itself
		_, _ = c.Execute(0x18)
		assert.Equal(t, uint16(0xC000), c.PC)
	})
	// 0xE9 - JP HL
	testInstruction(t, "JP HL", 0xE9, func(t *testing.T, c *CPU, b *testBus) {
		c.HL.SetUint16(0x4000)
		_, _ = c.Execute(0xE9)
		assert.Equal(t, uint16(0x4000), c.PC)
	})
}

func TestInstruction_Load(t *testing.T) {
	// 0x22 - LD (HL+), A
	testInstruction(t, "LD (HL+), A", 0x22, func(t *testing.T, c *CPU, b *testBus) {
		c.SetA(0x42)
		c.HL.SetUint16(0x1234)
		_, _ = c.Execute(0x22)
		if b.mem[0x1234] != 0x42 {
			t.Errorf("expected 0x42 at 0x1234, got 0x%02X", b.mem[0x1234])
		}
		if c.HL.Uint16() != 0x1235 {
			t.Errorf("expected HL to be 0x1235, got 0x%04X", c.HL.Uint16())
		}
	})
	// 0x3A - LD A, (HL-)
	testInstruction(t, "LD A, (HL-)", 0x3A, func(t *testing.T, c *CPU, b *testBus) {
		c.HL.SetUint16(0x1234)
		b.mem[0x1234] = 0x42
		_, _ = c.Execute(0x3A)
		if c.A() != 0x42 {
			t.Errorf("expected 0x42 in A, got 0x%02X", c.A())
		}
		if c.HL.Uint16() != 0x1233 {
			t.Errorf("expected HL to be 0x1233, got 0x%04X", c.HL.Uint16())
		}
	})
	// 0x08 - LD (a16), SP
	testInstruction(t, "LD (a16), SP", 0x08, func(t *testing.T, c *CPU, b *testBus) {
		b.mem[0xC001] = 0x00
		b.mem[0xC002] = 0xC1
		c.SP = 0xBEEF
		_, _ = c.Execute(0x08)
		assert.Equal(t, uint8(0xEF), b.mem[0xC100])
		assert.Equal(t, uint8(0xBE), b.mem[0xC101])
	})
	// 0xE0 - LDH (a8), A
	testInstruction(t, "LDH (a8), A", 0xE0, func(t *testing.T, c *CPU, b *testBus) {
		b.mem[0xC001] = 0x80
		c.SetA(0x99)
		_, _ = c.Execute(0xE0)
		assert.Equal(t, uint8(0x99), b.mem[0xFF80])
	})
	// 0x36 - LD (HL), d8
	testInstruction(t, "LD (HL), d8", 0x36, func(t *testing.T, c *CPU, b *testBus) {
		c.HL.SetUint16(0xC100)
		b.mem[0xC001] = 0x77
		_, _ = c.Execute(0x36)
		assert.Equal(t, uint8(0x77), b.mem[0xC100])
	})
	// 0xF1 - POP AF
	testInstruction(t, "POP AF", 0xF1, func(t *testing.T, c *CPU, b *testBus) {
		c.push(0x12FF)
		_, _ = c.Execute(0xF1)
		assert.Equal(t, uint16(0x12F0), c.AF.Uint16(), "lower nibble of F is never set")
	})
	// 0xC5 - PUSH BC
	testInstruction(t, "PUSH BC", 0xC5, func(t *testing.T, c *CPU, b *testBus) {
		c.BC.SetUint16(0xABCD)
		_, _ = c.Execute(0xC5)
		assert.Equal(t, uint16(0xABCD), c.pop())
	})
	// 0x46 - LD B, (HL)
	testInstruction(t, "LD B, (HL)", 0x46, func(t *testing.T, c *CPU, b *testBus) {
		c.HL.SetUint16(0xC200)
		b.mem[0xC200] = 0x5A
		_, _ = c.Execute(0x46)
		assert.Equal(t, uint8(0x5A), c.B())
	})
}

func TestInstruction_CB(t *testing.T) {
	// 0xCB 0x37 - SWAP A
	testInstruction(t, "SWAP A", 0xCB, func(t *testing.T, c *CPU, b *testBus) {
		b.mem[0xC001] = 0x37
		c.SetA(0xF1)
		c.setFlag(FlagCarry, true)
		_, _ = c.Execute(0xCB)
		assert.Equal(t, uint8(0x1F), c.A())
		assert.Equal(t, uint8(0), c.F())
	})
	// 0xCB 0x7E - BIT 7, (HL)
	testInstruction(t, "BIT 7, (HL)", 0xCB, func(t *testing.T, c *CPU, b *testBus) {
		b.mem[0xC001] = 0x7E
		c.HL.SetUint16(0xC100)
		b.mem[0xC100] = 0x7F
		c.setFlag(FlagCarry, true)
		_, _ = c.Execute(0xCB)
		assert.Equal(t, FlagZero|FlagHalfCarry|FlagCarry, c.F())
	})
	// 0xCB 0xC6 - SET 0, (HL)
	testInstruction(t, "SET 0, (HL)", 0xCB, func(t *testing.T, c *CPU, b *testBus) {
		b.mem[0xC001] = 0xC6
		c.HL.SetUint16(0xC100)
		_, _ = c.Execute(0xCB)
		assert.Equal(t, uint8(0x01), b.mem[0xC100])
	})
	// 0xCB 0xBF - RES 7, A
	testInstruction(t, "RES 7, A", 0xCB, func(t *testing.T, c *CPU, b *testBus) {
		b.mem[0xC001] = 0xBF
		c.SetA(0xFF)
		_, _ = c.Execute(0xCB)
		assert.Equal(t, uint8(0x7F), c.A())
	})
	// 0xCB 0x28 - SRA B
	testInstruction(t, "SRA B", 0xCB, func(t *testing.T, c *CPU, b *testBus) {
		b.mem[0xC001] = 0x28
		c.SetB(0x81)
		_, _ = c.Execute(0xCB)
		assert.Equal(t, uint8(0xC0), c.B())
		assert.True(t, c.isFlagSet(FlagCarry))
	})
	// 0xCB 0x11 - RL C
	testInstruction(t, "RL C", 0xCB, func(t *testing.T, c *CPU, b *testBus) {
		b.mem[0xC001] = 0x11
		c.SetC(0x80)
		_, _ = c.Execute(0xCB)
		assert.Equal(t, uint8(0x00), c.C())
		assert.Equal(t, FlagZero|FlagCarry, c.F())
	})
}
