package cpu

// Bus is everything the CPU needs from the rest of the system. The
// CPU never touches the cartridge, video or audio state directly.
type Bus interface {
	Read(addr uint16) uint8
	Write(addr uint16, value uint8)

	// IncDIV advances the system divider by one clock and
	// returns its new 16-bit value.
	IncDIV() uint16
	// TimerClockSelect returns the period in clocks selected by
	// TAC (16, 64, 256 or 1024), or 0 when the timer is stopped.
	TimerClockSelect() uint16
	// IncTIMA increments the timer counter, handling overflow.
	IncTIMA()
	// ResetDIV clears the system divider.
	ResetDIV()

	// PendingInterrupts returns the interrupts that are both
	// requested and enabled (IF & IE).
	PendingInterrupts() uint8
	// RequestedInterrupts returns IF, regardless of IE.
	RequestedInterrupts() uint8
	// ClearInterrupt acknowledges the given interrupt flag.
	ClearInterrupt(flag uint8)
}
