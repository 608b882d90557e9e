package io

import (
	"github.com/thelolagemann/gbcore/internal/interrupts"
	"github.com/thelolagemann/gbcore/internal/types"
)

// Serial is the serial port, with no link partner attached. A
// transfer on the internal clock completes immediately, shifting
// in 0xFF, and the transmitted byte is passed to OnTransfer.
type Serial struct {
	data    uint8
	control uint8

	// OnTransfer, if set, receives every byte sent on the internal clock.
	OnTransfer func(uint8)

	irq *interrupts.Service
}

// NewSerial returns a new Serial port.
func NewSerial(irq *interrupts.Service) *Serial {
	return &Serial{irq: irq}
}

func (s *Serial) Read(address uint16) uint8 {
	if address == types.SB {
		return s.data
	}
	return s.control | 0x7E
}

func (s *Serial) Write(address uint16, value uint8) {
	if address == types.SB {
		s.data = value
		return
	}

	s.control = value & 0x81
	if s.control == 0x81 {
		if s.OnTransfer != nil {
			s.OnTransfer(s.data)
		}
		s.data = 0xFF
		s.control &^= 0x80
		s.irq.Request(interrupts.SerialFlag)
	}
}
