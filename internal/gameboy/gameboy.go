// Package gameboy ties the CPU to the rest of the hardware, and
// provides the tick entry points used by front ends and debuggers.
package gameboy

import (
	io2 "io"

	"github.com/pkg/errors"
	"github.com/thelolagemann/gbcore/internal/cartridge"
	"github.com/thelolagemann/gbcore/internal/cpu"
	"github.com/thelolagemann/gbcore/internal/io"
	"github.com/thelolagemann/gbcore/internal/joypad"
	"github.com/thelolagemann/gbcore/internal/trace"
	"github.com/thelolagemann/gbcore/internal/types"
	"github.com/thelolagemann/gbcore/pkg/log"
)

// GameBoy represents a Game Boy. It contains all the components of the Game Boy.
// It is the main entry point for the emulator.
//
// A GameBoy is not safe for concurrent use; see Runner for driving
// one from a dedicated goroutine.
type GameBoy struct {
	CPU       *cpu.CPU
	Bus       *io.Bus
	Cartridge cartridge.Cartridge

	log.Logger

	model      types.Model
	bootROM    []byte
	breakpoint Breakpoint

	// atBoundary is set when the next tick starts a new instruction.
	atBoundary bool
	clock      uint64

	traceOut      io2.Writer
	traceCompress bool
	tracePath     string
	tracer        *trace.Tracer

	serialOut func(uint8)
}

// NewGameBoy returns a new GameBoy, powered on with the given ROM inserted.
func NewGameBoy(rom []byte, opts ...Opt) (*GameBoy, error) {
	g := &GameBoy{
		Logger:     log.NewNullLogger(),
		atBoundary: true,
	}
	for _, opt := range opts {
		opt(g)
	}

	cart, err := cartridge.New(rom)
	if err != nil {
		return nil, errors.Wrap(err, "loading cartridge")
	}
	g.Cartridge = cart

	if g.model == types.Unset && len(g.bootROM) > 0 {
		g.model = io.Which(g.bootROM)
	}
	if g.model == types.Unset {
		g.model = types.DMGABC
	}

	g.Bus = io.NewBus(cart, g.bootROM)
	g.Bus.Serial.OnTransfer = g.serialOut
	g.CPU = cpu.NewCPU(g.Bus, g.model, len(g.bootROM) > 0)
	if len(g.bootROM) == 0 {
		// hardware state left behind by the boot ROM
		g.Bus.Write(types.LCDC, 0x91)
		g.Bus.Timer.SetDiv(0xABCC)
	}

	switch {
	case g.tracePath != "":
		if g.tracer, err = trace.Create(g.Bus, g.tracePath); err != nil {
			return nil, err
		}
	case g.traceOut != nil:
		g.tracer = trace.New(g.Bus, g.traceOut, g.traceCompress)
	}

	h := cart.Header()
	g.Infof("loaded %s (%s, checksum %016x) as %s", h.Title, h.CartridgeType, cartridge.Checksum(rom), g.model)
	if !cartridge.ValidChecksum(rom, h) {
		g.Warnf("header checksum mismatch, a real %s would refuse to boot", g.model)
	}
	if h.CartridgeGBMode == cartridge.FlagOnlyCGB && !g.model.IsCGB() {
		g.Warnf("%s requires a Game Boy Color, running as %s", h.Title, g.model)
	}

	return g, nil
}

// Model returns the model being emulated.
func (g *GameBoy) Model() types.Model {
	return g.model
}

// Clock returns the number of ticks since power on.
func (g *GameBoy) Clock() uint64 {
	return g.clock
}

// Registers returns a snapshot of the CPU registers.
func (g *GameBoy) Registers() cpu.Snapshot {
	return g.CPU.Registers()
}

// Breakpoint returns the current breakpoint.
func (g *GameBoy) Breakpoint() Breakpoint {
	return g.breakpoint
}

// SetBreakpoint sets the breakpoint address and whether it is enabled.
func (g *GameBoy) SetBreakpoint(addr uint16, enabled bool) {
	g.breakpoint = Breakpoint{Address: addr, Enabled: enabled}
}

// Press presses the given button.
func (g *GameBoy) Press(b joypad.Button) {
	g.Bus.Joypad.Press(b)
}

// Release releases the given button.
func (g *GameBoy) Release(b joypad.Button) {
	g.Bus.Joypad.Release(b)
}

// Close flushes the execution trace, if one is being written.
func (g *GameBoy) Close() error {
	if g.tracer == nil {
		return nil
	}
	return g.tracer.Close()
}

// tick advances the CPU and the LCD by a single clock, reporting
// whether an instruction boundary and a frame were reached.
func (g *GameBoy) tick() (boundary, frame bool, err error) {
	if g.tracer != nil && g.atBoundary && !g.CPU.Halted() && !g.CPU.Stopped() {
		if terr := g.tracer.Trace(g.CPU.Registers(), g.clock); terr != nil {
			g.Warnf("trace disabled: %v", terr)
			g.tracer = nil
		}
	}

	boundary, err = g.CPU.Tick()
	frame = g.Bus.Video.Tick()
	g.clock++
	g.atBoundary = boundary

	if err != nil {
		var invalid *cpu.InvalidOpcodeError
		if errors.As(err, &invalid) {
			g.Errorf("%v", invalid)
		}
	}
	return boundary, frame, err
}

// hitBreakpoint reports whether execution reached the breakpoint,
// disabling it if so.
func (g *GameBoy) hitBreakpoint() bool {
	if g.breakpoint.Enabled && g.CPU.PC == g.breakpoint.Address {
		g.breakpoint.Enabled = false
		g.Debugf("breakpoint hit at %04X", g.breakpoint.Address)
		return true
	}
	return false
}

// TickOnce advances the emulation by a single clock. The breakpoint
// is never checked.
func (g *GameBoy) TickOnce() (Status, error) {
	boundary, _, err := g.tick()
	if boundary {
		return InstructionBoundary, err
	}
	return Continued, err
}

// TickInstr advances the emulation by 4 clocks, the shortest
// instruction, then checks the breakpoint if an instruction boundary
// was crossed. All 4 clocks run even when one of them fails, and the
// first error is returned.
func (g *GameBoy) TickInstr() (Status, error) {
	status := Continued
	var firstErr error
	for i := 0; i < 4; i++ {
		boundary, _, err := g.tick()
		if boundary {
			status = InstructionBoundary
		}
		if err != nil && firstErr == nil {
			firstErr = err
		}
	}
	if firstErr != nil {
		return status, firstErr
	}

	if status == InstructionBoundary && g.hitBreakpoint() {
		return BreakpointHit, nil
	}
	return status, nil
}

// TickFrame runs until the LCD completes a frame, checking the
// breakpoint at every instruction boundary.
func (g *GameBoy) TickFrame() (Status, error) {
	for {
		boundary, frame, err := g.tick()
		if err != nil {
			return Continued, err
		}
		if boundary && g.hitBreakpoint() {
			return BreakpointHit, nil
		}
		if frame {
			return FrameComplete, nil
		}
	}
}

// StepInstruction runs until the next instruction boundary, without
// checking the breakpoint.
func (g *GameBoy) StepInstruction() (Status, error) {
	for {
		boundary, _, err := g.tick()
		if err != nil {
			return Continued, err
		}
		if boundary {
			return InstructionBoundary, nil
		}
	}
}

// Disassemble returns the instruction at addr as it would be
// executed, along with its length.
func (g *GameBoy) Disassemble(addr uint16) (string, uint8) {
	return cpu.Disassemble(g.Bus, addr)
}
