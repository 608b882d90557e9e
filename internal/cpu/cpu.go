// Package cpu implements the Sharp SM83 CPU found in the Game Boy.
//
// The CPU is driven one T-cycle at a time through Tick. Each
// instruction executes in full on the first tick of its slot, after
// which the CPU idles for the remainder of the instruction's cost,
// so that the caller can interleave other hardware between ticks.
package cpu

import (
	"github.com/thelolagemann/gbcore/internal/types"
	"github.com/thelolagemann/gbcore/pkg/bits"
)

// CPU represents the Gameboy CPU. It is responsible for executing instructions.
type CPU struct {
	// PC is the program counter, it points to the next instruction to be executed.
	PC uint16
	// SP is the stack pointer, it points to the top of the stack.
	SP uint16
	registers

	// IME is the interrupt master enable.
	IME bool

	eiPending bool
	halted    bool
	stopped   bool
	haltBug   bool

	// instClocks is the number of ticks left before the
	// next instruction boundary.
	instClocks uint8
	oldDIV     uint16

	vectors types.Vectors
	b       Bus
}

// NewCPU creates a new CPU attached to the given Bus. When a boot ROM
// is being run the registers start zeroed, otherwise they hold the
// values the model's boot ROM leaves behind.
func NewCPU(b Bus, model types.Model, bootROM bool) *CPU {
	c := &CPU{
		b:       b,
		vectors: types.VectorsFor(model),
	}
	if !bootROM {
		r := types.ModelRegisters[model]
		c.SetA(r[0])
		c.SetF(r[1])
		c.SetB(r[2])
		c.SetC(r[3])
		c.SetD(r[4])
		c.SetE(r[5])
		c.SetH(r[6])
		c.SetL(r[7])
		c.SP = 0xFFFE
		c.PC = 0x0100
	}
	return c
}

// Halted reports whether the CPU is waiting for an interrupt.
func (c *CPU) Halted() bool { return c.halted }

// Stopped reports whether the CPU is waiting for a joypad interrupt.
func (c *CPU) Stopped() bool { return c.stopped }

// Tick advances the CPU by a single T-cycle. It returns true when the
// tick completed an instruction (or interrupt dispatch, or HALT
// M-cycle), meaning the next tick starts a new instruction.
//
// An invalid opcode is returned as an *InvalidOpcodeError. The CPU
// does not move past it, so each subsequent boundary reports it again.
func (c *CPU) Tick() (bool, error) {
	// the divider is frozen while stopped
	if !c.stopped {
		div := c.b.IncDIV()
		if cs := c.b.TimerClockSelect(); cs != 0 && bits.Fell(c.oldDIV, div, cs>>1) {
			c.b.IncTIMA()
		}
		c.oldDIV = div
	}

	var err error
	if c.instClocks == 0 {
		err = c.step()
	}
	c.instClocks--

	return c.instClocks == 0, err
}

// step runs at an instruction boundary. It services a pending
// interrupt, or idles while halted, or executes the next instruction,
// and loads instClocks with the cost of whatever it did.
func (c *CPU) step() error {
	if c.stopped {
		if c.b.RequestedInterrupts()&types.Bit4 == 0 {
			c.instClocks = 4
			return nil
		}
		c.stopped = false
	}

	if flag, vector, ok := c.nextInterrupt(); ok {
		// a pending interrupt always ends HALT, but is
		// only serviced while IME is set
		c.halted = false
		if c.IME {
			c.IME = false
			if c.haltBug {
				// EI, HALT with an interrupt already pending:
				// the handler returns to the HALT
				c.haltBug = false
				c.PC--
			}
			c.push(c.PC)
			c.b.ClearInterrupt(flag)
			c.PC = vector
			c.instClocks = 20
			return nil
		}
	}

	if c.halted {
		c.instClocks = 4
		return nil
	}

	enabling := c.eiPending
	pc := c.PC
	cycles, err := c.Execute(c.fetch8())
	if err != nil {
		c.PC = pc
	}
	c.instClocks = cycles

	if enabling && c.eiPending {
		c.eiPending = false
		c.IME = true
	}
	return err
}

// nextInterrupt returns the highest priority pending interrupt,
// along with its vector.
func (c *CPU) nextInterrupt() (uint8, uint16, bool) {
	pending := c.b.PendingInterrupts()
	for i := uint8(0); i < 5; i++ {
		if flag := uint8(1) << i; pending&flag != 0 {
			return flag, c.vectors[i], true
		}
	}
	return 0, 0, false
}

// Execute executes the instruction for an opcode that has already
// been fetched (PC points past it), and returns its cost in T-cycles.
func (c *CPU) Execute(opcode uint8) (uint8, error) {
	instruction := InstructionSet[opcode]
	if instruction.fn == nil {
		c.PC--
		return 4, &InvalidOpcodeError{Opcode: opcode, Address: c.PC}
	}
	return instruction.fn(c), nil
}
