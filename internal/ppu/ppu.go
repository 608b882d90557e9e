// Package ppu models the timing of the LCD controller: the
// scanline counter, the STAT mode, and the VBlank and STAT
// interrupts. No pixels are produced; the PPU exists so that
// software polling LY or waiting on VBlank runs as it would
// on hardware, and so that frames have a boundary.
package ppu

import (
	"github.com/thelolagemann/gbcore/internal/interrupts"
	"github.com/thelolagemann/gbcore/internal/types"
)

// PPU is the LCD timing unit.
type PPU struct {
	enabled bool
	lcdc    uint8
	status  uint8 // STAT interrupt selects, bits 3-6
	mode    Mode

	ly, lyc uint8
	dot     uint16

	// offCycles counts clocks while the LCD is off, so that
	// frames are still delivered at the usual rate.
	offCycles uint32
	statLine  bool

	irq *interrupts.Service
}

// New returns a new PPU with the LCD switched off.
func New(irq *interrupts.Service) *PPU {
	return &PPU{irq: irq}
}

// Tick advances the PPU by one clock. It returns true when the
// clock completed a frame, which is when VBlank begins.
func (p *PPU) Tick() bool {
	if !p.enabled {
		p.offCycles++
		if p.offCycles == types.CyclesPerFrame {
			p.offCycles = 0
			return true
		}
		return false
	}

	frame := false
	p.dot++
	if p.dot == DotsPerLine {
		p.dot = 0
		p.ly++
		if p.ly == Lines {
			p.ly = 0
		}
		if p.ly == VisibleLines {
			p.mode = ModeVBlank
			p.irq.Request(interrupts.VBlankFlag)
			frame = true
		}
	}

	if p.ly < VisibleLines {
		switch p.dot {
		case 0:
			p.mode = ModeOAM
		case oamDots:
			p.mode = ModeVRAM
		case oamDots + vramDots:
			p.mode = ModeHBlank
		}
	}

	p.statUpdate()
	return frame
}

// statUpdate raises the STAT interrupt on a rising edge of the
// STAT line, which is the OR of every enabled condition.
func (p *PPU) statUpdate() {
	line := p.enabled && (p.ly == p.lyc && p.status&types.Bit6 != 0 ||
		p.mode == ModeHBlank && p.status&types.Bit3 != 0 ||
		p.mode == ModeVBlank && p.status&types.Bit4 != 0 ||
		p.mode == ModeOAM && p.status&types.Bit5 != 0)

	if !p.statLine && line {
		p.irq.Request(interrupts.LCDFlag)
	}
	p.statLine = line
}

// Mode returns the current mode of the LCD.
func (p *PPU) Mode() Mode { return p.mode }

// LY returns the current scanline.
func (p *PPU) LY() uint8 { return p.ly }

// Enabled reports whether the LCD is on.
func (p *PPU) Enabled() bool { return p.enabled }

// Read returns the value of one of the LCD registers.
func (p *PPU) Read(address uint16) uint8 {
	switch address {
	case types.LCDC:
		return p.lcdc
	case types.STAT:
		v := 0x80 | p.status | p.mode
		if p.ly == p.lyc {
			v |= types.Bit2
		}
		return v
	case types.LY:
		return p.ly
	case types.LYC:
		return p.lyc
	}
	return 0xFF
}

// Write writes to one of the LCD registers. LY is read only.
func (p *PPU) Write(address uint16, v uint8) {
	switch address {
	case types.LCDC:
		p.lcdc = v
		on := v&types.Bit7 != 0
		if on && !p.enabled {
			p.enabled = true
			p.mode = ModeOAM
		} else if !on && p.enabled {
			p.enabled = false
			p.ly, p.dot = 0, 0
			p.mode = ModeHBlank
			p.offCycles = 0
		}
	case types.STAT:
		p.status = v & 0x78
	case types.LYC:
		p.lyc = v
	}
	p.statUpdate()
}
