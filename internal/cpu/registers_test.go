package cpu

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
)

func TestRegisterPair(t *testing.T) {
	var r RegisterPair
	r.SetHigh(0x12)
	r.SetLow(0x34)
	assert.Equal(t, uint16(0x1234), r.Uint16())

	r.SetUint16(0xBEEF)
	assert.Equal(t, uint8(0xBE), r.High())
	assert.Equal(t, uint8(0xEF), r.Low())
}

func TestRegisters_FlagMask(t *testing.T) {
	c, _ := newTestCPU()
	c.SetF(0xFF)
	assert.Equal(t, uint8(0xF0), c.F())

	c.SetAF(0x12FF)
	assert.Equal(t, uint16(0x12F0), c.AF.Uint16())

	for _, flag := range []Flag{FlagZero, FlagSubtract, FlagHalfCarry, FlagCarry} {
		c.SetF(0)
		c.setFlag(flag, true)
		assert.True(t, c.isFlagSet(flag))
		assert.Equal(t, flag, c.F(), "flag should be mirrored in F")
	}
}

func TestRegisters_Snapshot(t *testing.T) {
	c, _ := newTestCPU()
	want := Snapshot{AF: 0x1230, BC: 0x4567, DE: 0x89AB, HL: 0xCDEF, SP: 0xFFFE, PC: 0x0150}
	c.SetRegisters(want)

	if diff := cmp.Diff(want, c.Registers()); diff != "" {
		t.Errorf("Registers() mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, "AF=1230 BC=4567 DE=89AB HL=CDEF SP=FFFE PC=0150", want.String())

	// the snapshot is a copy
	s := c.Registers()
	c.SetB(0x00)
	assert.Equal(t, uint16(0x4567), s.BC)
}

func TestRegisters_Index(t *testing.T) {
	c, b := newTestCPU()
	c.HL.SetUint16(0xC000)
	for i := uint8(0); i < 8; i++ {
		c.setRegister(i, 0x10+i)
	}
	// H and L are written before (HL), so the byte lands at the new HL
	assert.Equal(t, uint8(0x16), b.mem[0x1415])
	assert.Zero(t, b.mem[0xC000])
	assert.Equal(t, uint8(0x10), c.B())
	assert.Equal(t, uint8(0x11), c.C())
	assert.Equal(t, uint8(0x12), c.D())
	assert.Equal(t, uint8(0x13), c.E())
	assert.Equal(t, uint16(0x1415), c.HL.Uint16())
	assert.Equal(t, uint8(0x17), c.A())
}
