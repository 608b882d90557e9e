package gameboy

import (
	"github.com/thelolagemann/gbcore/internal/cpu"
	"github.com/thelolagemann/gbcore/internal/joypad"
)

// Command is a command that is sent to a Runner to
// control it.
type Command int

const (
	// CommandPause pauses the emulator.
	CommandPause Command = iota
	// CommandResume resumes the emulator.
	CommandResume
	// CommandStep executes a single instruction while paused.
	CommandStep
	// CommandSetBreakpoint sets the breakpoint.
	CommandSetBreakpoint
	// CommandState requests the current state.
	CommandState
)

func (c Command) String() string {
	switch c {
	case CommandPause:
		return "pause"
	case CommandResume:
		return "resume"
	case CommandStep:
		return "step"
	case CommandSetBreakpoint:
		return "breakpoint"
	case CommandState:
		return "state"
	default:
		return "unknown"
	}
}

// commandPacket is a command sent to the run loop, which
// answers on reply once the command has taken effect.
type commandPacket struct {
	Command    Command
	Breakpoint Breakpoint
	reply      chan State
}

// Input is a button transition queued for the run loop.
type Input struct {
	Button  joypad.Button
	Pressed bool
}

// EventKind identifies an Event.
type EventKind int

const (
	// EventBreakpoint is sent when the breakpoint is hit.
	EventBreakpoint EventKind = iota
	// EventInvalidOpcode is sent when the CPU fetches an invalid opcode.
	EventInvalidOpcode
	// EventPaused is sent when the run loop pauses on request.
	EventPaused
)

func (k EventKind) String() string {
	switch k {
	case EventBreakpoint:
		return "break"
	case EventInvalidOpcode:
		return "invalid-opcode"
	case EventPaused:
		return "paused"
	default:
		return "unknown"
	}
}

// Event is sent by a Runner when execution stops without being asked to.
type Event struct {
	Kind  EventKind
	State State
	Err   error
}

// State is a snapshot of a Runner, taken on the run loop.
type State struct {
	Registers   cpu.Snapshot
	Disassembly string
	Paused      bool
	Breakpoint  Breakpoint
	Frames      uint64
	Clock       uint64
}
