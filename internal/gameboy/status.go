package gameboy

// Status is the outcome of one of the tick entry points.
//
//   - Continued
//   - InstructionBoundary
//   - BreakpointHit
//   - FrameComplete
type Status int

const (
	// Continued means the CPU is part way through an instruction.
	Continued Status = iota
	// InstructionBoundary means an instruction, interrupt dispatch
	// or HALT cycle completed, and the next tick starts a new one.
	InstructionBoundary
	// BreakpointHit means execution reached the enabled breakpoint,
	// which has been disabled.
	BreakpointHit
	// FrameComplete means the LCD reached VBlank.
	FrameComplete
)

func (s Status) String() string {
	switch s {
	case Continued:
		return "Continued"
	case InstructionBoundary:
		return "InstructionBoundary"
	case BreakpointHit:
		return "BreakpointHit"
	case FrameComplete:
		return "FrameComplete"
	default:
		return "Unknown"
	}
}

// Breakpoint is an execution breakpoint. Only a single breakpoint
// exists at a time.
type Breakpoint struct {
	Address uint16
	Enabled bool
}
