// Package timer provides an implementation of the Game Boy
// timer registers. The 16-bit system divider is advanced by
// the CPU every clock, and the CPU increments TIMA whenever
// the divider bit selected by TAC falls.
package timer

import (
	"github.com/thelolagemann/gbcore/internal/interrupts"
	"github.com/thelolagemann/gbcore/internal/types"
)

// Controller is a timer controller. It is used to generate
// interrupts at a specific frequency. The frequency can be
// configured using the types.TAC register.
type Controller struct {
	div uint16

	tima uint8
	tma  uint8
	tac  uint8

	irq *interrupts.Service
}

// NewController returns a new timer controller.
func NewController(irq *interrupts.Service) *Controller {
	return &Controller{
		irq: irq,
		tac: 0xF8,
	}
}

// periods are the TIMA periods in clocks, indexed by TAC bits 0-1.
var periods = [4]uint16{1024, 16, 64, 256}

// IncDIV advances the system divider by one clock,
// returning its new value.
func (c *Controller) IncDIV() uint16 {
	c.div++
	return c.div
}

// Div returns the full 16-bit system divider.
func (c *Controller) Div() uint16 {
	return c.div
}

// SetDiv sets the system divider, as left behind by the boot ROM.
func (c *Controller) SetDiv(v uint16) {
	c.div = v
}

// ClockSelect returns the period of TIMA in clocks, or
// 0 if the timer is disabled.
func (c *Controller) ClockSelect() uint16 {
	if c.tac&types.Bit2 == 0 {
		return 0
	}
	return periods[c.tac&0b11]
}

// IncTIMA increments TIMA. On overflow TIMA is reloaded
// from TMA and the timer interrupt is requested.
func (c *Controller) IncTIMA() {
	c.tima++
	if c.tima == 0 {
		c.tima = c.tma
		c.irq.Request(interrupts.TimerFlag)
	}
}

// Read returns the value of one of the timer registers.
func (c *Controller) Read(address uint16) uint8 {
	switch address {
	case types.DIV:
		return uint8(c.div >> 8)
	case types.TIMA:
		return c.tima
	case types.TMA:
		return c.tma
	case types.TAC:
		return c.tac | 0b11111000
	}
	return 0xFF
}

// Write writes to one of the timer registers. Any
// write to DIV resets the whole divider.
func (c *Controller) Write(address uint16, v uint8) {
	switch address {
	case types.DIV:
		c.div = 0
	case types.TIMA:
		c.tima = v
	case types.TMA:
		c.tma = v
	case types.TAC:
		c.tac = v & 0b111
	}
}
