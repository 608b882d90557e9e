package gameboy

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/thelolagemann/gbcore/internal/joypad"
	"github.com/thelolagemann/gbcore/internal/types"
)

// ErrStopped is returned by the Runner methods once Run has returned.
var ErrStopped = errors.New("runner stopped")

// inputQueueSize bounds the number of button transitions waiting
// for the run loop.
const inputQueueSize = 32

// frameDuration is the time taken by a single frame on hardware.
var frameDuration = func() time.Duration {
	second := float64(time.Second)
	return time.Duration(second / types.FrameRate)
}()

// Runner drives a GameBoy from a single goroutine. Every other
// goroutine talks to it through commands, which the run loop picks
// up between frames, so an in-flight instruction always completes.
type Runner struct {
	gb *GameBoy

	commands chan commandPacket
	input    chan Input
	events   chan Event
	done     chan struct{}

	paused bool
	pacing bool
	frames uint64
}

// NewRunner returns a Runner for gb. The run loop starts paused when
// paused is set. When pacing is set, frames are delivered at the
// hardware rate rather than as fast as possible.
func NewRunner(gb *GameBoy, paused, pacing bool) *Runner {
	return &Runner{
		gb:       gb,
		commands: make(chan commandPacket),
		input:    make(chan Input, inputQueueSize),
		events:   make(chan Event, 16),
		done:     make(chan struct{}),
		paused:   paused,
		pacing:   pacing,
	}
}

// Events returns the channel on which breakpoint hits, invalid
// opcodes and pauses are reported. Events are dropped when the
// channel is full.
func (r *Runner) Events() <-chan Event {
	return r.events
}

// Run executes the emulation until ctx is cancelled. It must be
// called from a single goroutine, which then owns the GameBoy.
func (r *Runner) Run(ctx context.Context) error {
	defer close(r.done)

	var pace <-chan time.Time
	if r.pacing {
		t := time.NewTicker(frameDuration)
		defer t.Stop()
		pace = t.C
	}

	for {
		if r.paused {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case c := <-r.commands:
				r.handle(c)
			case in := <-r.input:
				r.apply(in)
			}
			continue
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case c := <-r.commands:
			r.handle(c)
			continue
		default:
		}
		r.drainInput()

		status, err := r.gb.TickFrame()
		switch {
		case err != nil:
			r.paused = true
			r.emit(Event{Kind: EventInvalidOpcode, State: r.state(), Err: err})
			continue
		case status == BreakpointHit:
			r.paused = true
			r.emit(Event{Kind: EventBreakpoint, State: r.state()})
			continue
		}

		r.frames++
		if pace != nil {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-pace:
			}
		}
	}
}

func (r *Runner) handle(c commandPacket) {
	switch c.Command {
	case CommandPause:
		if !r.paused {
			r.paused = true
			r.emit(Event{Kind: EventPaused, State: r.state()})
		}
	case CommandResume:
		r.paused = false
	case CommandStep:
		r.paused = true
		if _, err := r.gb.StepInstruction(); err != nil {
			r.emit(Event{Kind: EventInvalidOpcode, State: r.state(), Err: err})
		}
	case CommandSetBreakpoint:
		r.gb.SetBreakpoint(c.Breakpoint.Address, c.Breakpoint.Enabled)
	}
	c.reply <- r.state()
}

func (r *Runner) drainInput() {
	for {
		select {
		case in := <-r.input:
			r.apply(in)
		default:
			return
		}
	}
}

func (r *Runner) apply(in Input) {
	if in.Pressed {
		r.gb.Press(in.Button)
	} else {
		r.gb.Release(in.Button)
	}
}

func (r *Runner) emit(e Event) {
	select {
	case r.events <- e:
	default:
		r.gb.Warnf("dropped %s event", e.Kind)
	}
}

func (r *Runner) state() State {
	regs := r.gb.Registers()
	dis, _ := r.gb.Disassemble(regs.PC)
	return State{
		Registers:   regs,
		Disassembly: dis,
		Paused:      r.paused,
		Breakpoint:  r.gb.Breakpoint(),
		Frames:      r.frames,
		Clock:       r.gb.Clock(),
	}
}

// send delivers a command to the run loop and waits for its reply.
func (r *Runner) send(ctx context.Context, c commandPacket) (State, error) {
	c.reply = make(chan State, 1)
	select {
	case r.commands <- c:
	case <-ctx.Done():
		return State{}, ctx.Err()
	case <-r.done:
		return State{}, ErrStopped
	}
	select {
	case s := <-c.reply:
		return s, nil
	case <-ctx.Done():
		return State{}, ctx.Err()
	}
}

// Pause stops execution at the next frame boundary. The returned
// state is the acknowledgement that the run loop is paused.
func (r *Runner) Pause(ctx context.Context) (State, error) {
	return r.send(ctx, commandPacket{Command: CommandPause})
}

// Resume continues execution.
func (r *Runner) Resume(ctx context.Context) (State, error) {
	return r.send(ctx, commandPacket{Command: CommandResume})
}

// Step pauses execution if needed, then executes a single instruction.
func (r *Runner) Step(ctx context.Context) (State, error) {
	return r.send(ctx, commandPacket{Command: CommandStep})
}

// SetBreakpoint sets the breakpoint address and whether it is enabled.
func (r *Runner) SetBreakpoint(ctx context.Context, addr uint16, enabled bool) (State, error) {
	return r.send(ctx, commandPacket{
		Command:    CommandSetBreakpoint,
		Breakpoint: Breakpoint{Address: addr, Enabled: enabled},
	})
}

// State returns a snapshot of the run loop.
func (r *Runner) State(ctx context.Context) (State, error) {
	return r.send(ctx, commandPacket{Command: CommandState})
}

// Press queues a button press. It reports false if the input
// queue is full.
func (r *Runner) Press(button joypad.Button) bool {
	return r.queue(Input{Button: button, Pressed: true})
}

// Release queues a button release. It reports false if the input
// queue is full.
func (r *Runner) Release(button joypad.Button) bool {
	return r.queue(Input{Button: button})
}

func (r *Runner) queue(in Input) bool {
	select {
	case r.input <- in:
		return true
	default:
		return false
	}
}
