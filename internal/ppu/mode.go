package ppu

// Mode represents a mode of the LCD, as reported in STAT bits 0-1.
type Mode = uint8

const (
	// ModeHBlank is the horizontal blanking mode. The CPU can access both the display RAM and OAM.
	ModeHBlank Mode = iota
	// ModeVBlank is the vertical blanking mode. The CPU can access both the display RAM and OAM.
	ModeVBlank
	// ModeOAM is the OAM mode. The CPU can access OAM but not the display RAM.
	ModeOAM
	// ModeVRAM is the VRAM mode. The CPU can access the display RAM but not OAM.
	ModeVRAM
)

const (
	// DotsPerLine is the number of clocks spent on each scanline.
	DotsPerLine = 456
	// Lines is the number of scanlines, including VBlank.
	Lines = 154
	// VisibleLines is the line at which VBlank begins.
	VisibleLines = 144

	oamDots  = 80
	vramDots = 172
)
