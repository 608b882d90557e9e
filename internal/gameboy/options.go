package gameboy

import (
	io2 "io"

	"github.com/thelolagemann/gbcore/internal/types"
	"github.com/thelolagemann/gbcore/pkg/log"
)

// Opt is a function that modifies a GameBoy
// instance before it is powered on.
type Opt func(gb *GameBoy)

// AsModel sets the model to emulate. Without it the model is
// detected from the boot ROM, falling back to the DMG.
func AsModel(m types.Model) Opt {
	return func(gb *GameBoy) {
		gb.model = m
	}
}

// WithBootROM sets the boot ROM for the emulator. Execution starts
// at 0x0000 with zeroed registers, rather than at 0x0100 with the
// registers the boot ROM would leave behind.
func WithBootROM(rom []byte) Opt {
	return func(gb *GameBoy) {
		gb.bootROM = rom
	}
}

func WithLogger(log log.Logger) Opt {
	return func(gb *GameBoy) {
		gb.Logger = log
	}
}

// WithTrace writes an execution trace to w, brotli compressed
// if compress is set. The trace is flushed by Close.
func WithTrace(w io2.Writer, compress bool) Opt {
	return func(gb *GameBoy) {
		gb.traceOut = w
		gb.traceCompress = compress
	}
}

// WithTraceFile writes an execution trace to the file at path,
// brotli compressed if path ends in ".br".
func WithTraceFile(path string) Opt {
	return func(gb *GameBoy) {
		gb.tracePath = path
	}
}

// WithBreakpoint sets and enables a breakpoint at addr.
func WithBreakpoint(addr uint16) Opt {
	return func(gb *GameBoy) {
		gb.breakpoint = Breakpoint{Address: addr, Enabled: true}
	}
}

// SerialDebugger intercepts serial output, which test ROMs use to
// report their results, and passes each byte to f.
func SerialDebugger(f func(uint8)) Opt {
	return func(gb *GameBoy) {
		gb.serialOut = f
	}
}
