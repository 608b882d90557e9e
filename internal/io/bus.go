// Package io provides the memory bus of the Game Boy, and routes
// reads and writes to the cartridge, work RAM and the hardware
// registers of each peripheral.
package io

import (
	"fmt"

	"github.com/thelolagemann/gbcore/internal/cartridge"
	"github.com/thelolagemann/gbcore/internal/interrupts"
	"github.com/thelolagemann/gbcore/internal/joypad"
	"github.com/thelolagemann/gbcore/internal/ppu"
	"github.com/thelolagemann/gbcore/internal/timer"
	"github.com/thelolagemann/gbcore/internal/types"
)

// ReadHandler is a function that handles reading from a hardware register.
type ReadHandler func(address uint16) uint8

// WriteHandler is a function that handles writing to a hardware register.
type WriteHandler func(address uint16, value uint8)

// Bus is the 64KiB address space of the Game Boy.
type Bus struct {
	data [0x10000]uint8

	cart        cartridge.Cartridge
	boot        []byte
	bootEnabled bool

	readHandlers  [0x100]ReadHandler
	writeHandlers [0x100]WriteHandler

	Interrupts *interrupts.Service
	Timer      *timer.Controller
	Joypad     *joypad.State
	Video      *ppu.PPU
	Serial     *Serial
}

// NewBus returns a new Bus with cart mapped in. If boot is not
// empty, it is overlaid on the cartridge until BDIS is written.
func NewBus(cart cartridge.Cartridge, boot []byte) *Bus {
	irq := interrupts.NewService()
	b := &Bus{
		cart:        cart,
		boot:        boot,
		bootEnabled: len(boot) > 0,
		Interrupts:  irq,
		Timer:       timer.NewController(irq),
		Joypad:      joypad.New(irq),
		Video:       ppu.New(irq),
		Serial:      NewSerial(irq),
	}

	b.ReserveAddress(types.P1,
		func(uint16) uint8 { return b.Joypad.Read() },
		func(_ uint16, v uint8) { b.Joypad.Write(v) })
	for _, addr := range []uint16{types.SB, types.SC} {
		b.ReserveAddress(addr, b.Serial.Read, b.Serial.Write)
	}
	for _, addr := range []uint16{types.DIV, types.TIMA, types.TMA, types.TAC} {
		b.ReserveAddress(addr, b.Timer.Read, b.Timer.Write)
	}
	for _, addr := range []uint16{types.LCDC, types.STAT, types.LY, types.LYC} {
		b.ReserveAddress(addr, b.Video.Read, b.Video.Write)
	}
	b.ReserveAddress(types.IF,
		func(uint16) uint8 { return irq.ReadIF() },
		func(_ uint16, v uint8) { irq.WriteIF(v) })
	b.ReserveAddress(types.IE,
		func(uint16) uint8 { return irq.Enable },
		func(_ uint16, v uint8) { irq.Enable = v })
	b.ReserveAddress(types.DMA,
		func(uint16) uint8 { return b.data[types.DMA] },
		func(_ uint16, v uint8) { b.dmaTransfer(v) })
	b.ReserveAddress(types.BDIS,
		func(uint16) uint8 { return 0xFF },
		func(_ uint16, v uint8) {
			if v != 0 {
				b.bootEnabled = false
			}
		})

	return b
}

// ReserveAddress reserves a hardware register on the bus.
func (b *Bus) ReserveAddress(addr uint16, r ReadHandler, w WriteHandler) {
	if addr < 0xFF00 {
		panic(fmt.Sprintf("address %04X is not a hardware register", addr))
	}
	if b.readHandlers[addr&0xFF] != nil {
		panic(fmt.Sprintf("address %04X has already been reserved", addr))
	}
	b.readHandlers[addr&0xFF] = r
	b.writeHandlers[addr&0xFF] = w
}

// BootROMEnabled reports whether the boot ROM is still mapped.
func (b *Bus) BootROMEnabled() bool {
	return b.bootEnabled
}

// Read returns the value at the given address.
func (b *Bus) Read(addr uint16) uint8 {
	switch {
	case addr < 0x8000:
		if b.bootEnabled && b.inBootROM(addr) {
			return b.boot[addr]
		}
		return b.readCart(addr)
	case addr >= 0xA000 && addr < 0xC000:
		return b.readCart(addr)
	case addr >= 0xE000 && addr < 0xFE00:
		return b.data[addr-0x2000]
	case addr >= 0xFEA0 && addr < 0xFF00:
		return 0xFF
	case addr >= 0xFF00:
		if h := b.readHandlers[addr&0xFF]; h != nil {
			return h(addr)
		}
	}
	return b.data[addr]
}

// Write writes the value to the given address.
func (b *Bus) Write(addr uint16, value uint8) {
	switch {
	case addr < 0x8000, addr >= 0xA000 && addr < 0xC000:
		if b.cart != nil {
			b.cart.Write(addr, value)
		}
	case addr >= 0xE000 && addr < 0xFE00:
		b.data[addr-0x2000] = value
	case addr >= 0xFEA0 && addr < 0xFF00:
	case addr >= 0xFF00:
		if h := b.writeHandlers[addr&0xFF]; h != nil {
			h(addr, value)
			return
		}
		b.data[addr] = value
	default:
		b.data[addr] = value
	}
}

// inBootROM reports whether addr is covered by the boot ROM. The CGB
// boot ROM leaves a hole at 0x0100-0x01FF for the cartridge header.
func (b *Bus) inBootROM(addr uint16) bool {
	if int(addr) >= len(b.boot) {
		return false
	}
	return len(b.boot) <= 0x100 || addr < 0x100 || addr >= 0x200
}

func (b *Bus) readCart(addr uint16) uint8 {
	if b.cart == nil {
		return 0xFF
	}
	return b.cart.Read(addr)
}

// dmaTransfer copies 160 bytes from (source << 8) into OAM.
func (b *Bus) dmaTransfer(source uint8) {
	b.data[types.DMA] = source
	base := uint16(source) << 8
	for i := uint16(0); i < 0xA0; i++ {
		b.data[0xFE00+i] = b.Read(base + i)
	}
}

// IncDIV advances the divider by a single clock.
func (b *Bus) IncDIV() uint16 {
	return b.Timer.IncDIV()
}

// TimerClockSelect returns the timer period selected by TAC.
func (b *Bus) TimerClockSelect() uint16 {
	return b.Timer.ClockSelect()
}

// IncTIMA increments the timer counter.
func (b *Bus) IncTIMA() {
	b.Timer.IncTIMA()
}

// ResetDIV clears the divider, as STOP does.
func (b *Bus) ResetDIV() {
	b.Timer.SetDiv(0)
}

// RequestedInterrupts returns IF.
func (b *Bus) RequestedInterrupts() uint8 {
	return b.Interrupts.Flag
}

// PendingInterrupts returns IF & IE.
func (b *Bus) PendingInterrupts() uint8 {
	return b.Interrupts.Pending()
}

// ClearInterrupt acknowledges the given interrupt.
func (b *Bus) ClearInterrupt(flag uint8) {
	b.Interrupts.Clear(flag)
}
