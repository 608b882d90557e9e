// Package interrupts holds the interrupt request (IF) and
// enable (IE) registers shared by the CPU and peripherals.
package interrupts

import (
	"github.com/thelolagemann/gbcore/internal/types"
)

const (
	// VBlankFlag is the VBlank interrupt flag (bit 0),
	// which is requested every time the PPU enters
	// VBlank mode.
	VBlankFlag = types.Bit0
	// LCDFlag is the LCD interrupt flag (bit 1), which
	// is requested by the LCD STAT register (types.STAT),
	// when certain conditions are met.
	LCDFlag = types.Bit1
	// TimerFlag is the Timer interrupt flag (bit 2),
	// which is requested when the timer overflows,
	// (types.TIMA > 0xFF).
	TimerFlag = types.Bit2
	// SerialFlag is the Serial interrupt flag (bit 3),
	// which is requested when a serial transfer is
	// completed.
	SerialFlag = types.Bit3
	// JoypadFlag is the Joypad interrupt Flag (bit 4),
	// which is requested when any of types.P1 bits 0-3
	// go from high to low.
	JoypadFlag = types.Bit4
)

// Service holds the requested and enabled interrupts.
//
// When an interrupt is requested, the corresponding bit
// in the Flag register is set. When an interrupt is
// enabled, the corresponding bit in the Enable register
// is set. The CPU services the lowest set bit of
// Flag & Enable, provided its IME is set.
type Service struct {
	Flag   uint8 // interrupt Flag (types.IF)
	Enable uint8 // interrupt Enable (types.IE)
}

// NewService returns a new Service.
func NewService() *Service {
	return &Service{}
}

// Request requests the specified interrupt, by setting
// the corresponding bit in the Flag register.
func (s *Service) Request(flag uint8) {
	s.Flag |= flag & 0x1F
}

// Clear acknowledges the specified interrupt.
func (s *Service) Clear(flag uint8) {
	s.Flag &^= flag
}

// Pending returns the interrupts that are both requested
// and enabled.
func (s *Service) Pending() uint8 {
	return s.Flag & s.Enable & 0x1F
}

// ReadIF returns the IF register. The upper 3 bits are
// unused and always read as set.
func (s *Service) ReadIF() uint8 {
	return s.Flag | 0xE0
}

// WriteIF writes the IF register. Only the first 5 bits
// are used.
func (s *Service) WriteIF(v uint8) {
	s.Flag = v & 0x1F
}
