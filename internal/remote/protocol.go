package remote

import (
	"encoding/json"
	"fmt"

	"github.com/thelolagemann/gbcore/internal/gameboy"
)

// The debugger and the emulator communicate over a websocket
// connection. The emulator sends its state as soon as the
// connection is established, after which it answers every
// Request with a Response. Events raised by the run loop, such as
// a breakpoint hit, are pushed to every connection as they happen.

// Request is a debugger->emulator request.
type Request struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data,omitempty"`
}

// data for the 'breakpoint' request.
type breakpointData struct {
	Address uint16 `json:"address"`
	Enabled bool   `json:"enabled"`
}

// Response is an emulator->debugger message.
type Response struct {
	Event string `json:"event"`
	Data  any    `json:"data,omitempty"`
	Error string `json:"error,omitempty"`
}

// StateData is the data of the 'state' response and of pushed events.
type StateData struct {
	Registers   RegisterData `json:"registers"`
	Disassembly string       `json:"disassembly"`
	Paused      bool         `json:"paused"`
	Breakpoint  struct {
		Address uint16 `json:"address"`
		Enabled bool   `json:"enabled"`
	} `json:"breakpoint"`
	Frames uint64 `json:"frames"`
	Clock  uint64 `json:"clock"`
}

// RegisterData holds the CPU registers, hex encoded.
type RegisterData struct {
	AF string `json:"af"`
	BC string `json:"bc"`
	DE string `json:"de"`
	HL string `json:"hl"`
	SP string `json:"sp"`
	PC string `json:"pc"`
}

func hex16(v uint16) string {
	return fmt.Sprintf("%04X", v)
}

func stateData(s gameboy.State) StateData {
	d := StateData{
		Registers: RegisterData{
			AF: hex16(s.Registers.AF),
			BC: hex16(s.Registers.BC),
			DE: hex16(s.Registers.DE),
			HL: hex16(s.Registers.HL),
			SP: hex16(s.Registers.SP),
			PC: hex16(s.Registers.PC),
		},
		Disassembly: s.Disassembly,
		Paused:      s.Paused,
		Frames:      s.Frames,
		Clock:       s.Clock,
	}
	d.Breakpoint.Address = s.Breakpoint.Address
	d.Breakpoint.Enabled = s.Breakpoint.Enabled
	return d
}
