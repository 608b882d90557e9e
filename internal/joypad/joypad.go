// Package joypad provides an implementation of the Game Boy
// joypad. The joypad is used to read the state of the buttons
// and the direction keys.
package joypad

import (
	"strings"

	"github.com/thelolagemann/gbcore/internal/interrupts"
	"github.com/thelolagemann/gbcore/internal/types"
	"github.com/thelolagemann/gbcore/pkg/bits"
)

// Button represents a physical button on the Game Boy.
type Button = uint8

const (
	// ButtonA is the A button.
	ButtonA Button = iota
	// ButtonB is the B button.
	ButtonB
	// ButtonSelect is the Select button.
	ButtonSelect
	// ButtonStart is the Start button.
	ButtonStart
	// ButtonRight is the Right button.
	ButtonRight
	// ButtonLeft is the Left button.
	ButtonLeft
	// ButtonUp is the Up button.
	ButtonUp
	// ButtonDown is the Down button.
	ButtonDown
)

var buttonNames = [8]string{"a", "b", "select", "start", "right", "left", "up", "down"}

// ParseButton returns the button with the given name.
func ParseButton(name string) (Button, bool) {
	for i, n := range buttonNames {
		if n == strings.ToLower(name) {
			return Button(i), true
		}
	}
	return 0, false
}

// State represents the state of the joypad. Select either
// action or direction buttons by writing to the register,
// and then read out bits 0-3 to get the state of the buttons.
//
//	Bit 7 - Not used
//	Bit 6 - Not used
//	Bit 5 - P15 Select Button Keys      (0=Select)
//	Bit 4 - P14 Select Direction Keys   (0=Select)
//	Bit 3 - P13 Input Down  or Start    (0=Pressed) (Read Only)
//	Bit 2 - P12 Input Up    or Select   (0=Pressed) (Read Only)
//	Bit 1 - P11 Input Left  or Button B (0=Pressed) (Read Only)
//	Bit 0 - P10 Input Right or Button A (0=Pressed) (Read Only)
type State struct {
	// State holds the held buttons, the lower 4 bits are
	// the action buttons, and the upper 4 bits are the
	// direction buttons. A 1 indicates a held button.
	State      uint8
	selectBits uint8

	irq *interrupts.Service
}

// New returns a new joypad state.
func New(irq *interrupts.Service) *State {
	return &State{
		irq:        irq,
		selectBits: 0x30,
	}
}

// Read returns the value of the P1 register.
func (s *State) Read() uint8 {
	d := uint8(0xC0) | s.selectBits
	if s.selectBits&types.Bit4 == 0 {
		d |= s.State >> 4 & 0xf
	}
	if s.selectBits&types.Bit5 == 0 {
		d |= s.State & 0xf
	}
	return d ^ 0xf
}

// Write selects the button group(s) to read.
func (s *State) Write(v uint8) {
	s.selectBits = v & 0x30
}

// Press presses a button, requesting the joypad
// interrupt if it was not already held.
func (s *State) Press(button Button) {
	if bits.Test(s.State, button) {
		return
	}
	s.State = bits.Set(s.State, button)
	s.irq.Request(interrupts.JoypadFlag)
}

// Release releases a button.
func (s *State) Release(button Button) {
	s.State = bits.Reset(s.State, button)
}
