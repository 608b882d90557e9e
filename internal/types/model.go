package types

import "strings"

type Model int // The Model used in emulation.

const (
	Unset  Model = iota // Unset - Model hasn't been set - behaves as DMGABC
	DMG0                // DMG0 - early Game Boy, only released in Japan
	DMGABC              // DMGABC - Standard Game Boy
	CGB0                // CGB0 -  early Game Boy Colour, only released in Japan
	CGBABC              // CGBABC - Standard Game Boy Colour
	MGB                 // MGB - Pocket Game Boy
	SGB                 // SGB - Super Game Boy
	SGB2                // SGB2 - Super Game Boy 2
	AGB                 // AGB - Game Boy Advance
)

var ModelNames = map[Model]string{
	DMG0:   "DMG0",
	DMGABC: "DMG",
	CGB0:   "CGB0",
	CGBABC: "CGB",
	MGB:    "MGB",
	SGB:    "SGB",
	SGB2:   "SGB2",
	AGB:    "AGB",
	Unset:  "Unset",
}

// StringToModel converts a string to a Model.
func StringToModel(s string) Model {
	for m, n := range ModelNames {
		if n == strings.ToUpper(s) {
			return m
		}
	}

	return Unset
}

func (m Model) String() string {
	return ModelNames[m]
}

// IsCGB reports whether the model boots in colour mode.
func (m Model) IsCGB() bool {
	return m == CGB0 || m == CGBABC || m == AGB
}

// ModelRegisters - model specific starting CPU registers, in the
// order A, F, B, C, D, E, H, L, as left behind by each boot ROM.
var ModelRegisters = map[Model][8]uint8{
	Unset:  {0x01, 0xB0, 0x00, 0x13, 0x00, 0xD8, 0x01, 0x4D}, // default to DMG registers
	DMG0:   {0x01, 0x00, 0xFF, 0x13, 0x00, 0xC1, 0x84, 0x03},
	DMGABC: {0x01, 0xB0, 0x00, 0x13, 0x00, 0xD8, 0x01, 0x4D},
	CGB0:   {0x11, 0x80, 0x00, 0x00, 0x00, 0x08, 0x00, 0x7C},
	CGBABC: {0x11, 0x80, 0x00, 0x00, 0x00, 0x08, 0x00, 0x7C},
	MGB:    {0xFF, 0xB0, 0x00, 0x13, 0x00, 0xD8, 0x01, 0x4D},
	SGB:    {0x01, 0x00, 0x00, 0x14, 0x00, 0x00, 0xC0, 0x60},
	SGB2:   {0xFF, 0x00, 0x00, 0x14, 0x00, 0x00, 0xC0, 0x60},
	AGB:    {0x11, 0x00, 0x01, 0x00, 0x00, 0x08, 0x00, 0x7C},
}

// Vectors holds the interrupt vectors, indexed by interrupt
// bit (VBlank, STAT, Timer, Serial, Joypad).
type Vectors [5]uint16

// DefaultVectors are the vectors shared by every known model.
var DefaultVectors = Vectors{0x0040, 0x0048, 0x0050, 0x0058, 0x0060}

// ModelVectors - model specific interrupt vectors. Models that
// are not listed use DefaultVectors.
var ModelVectors = map[Model]Vectors{}

// VectorsFor returns the interrupt vectors for the given model.
func VectorsFor(m Model) Vectors {
	if v, ok := ModelVectors[m]; ok {
		return v
	}
	return DefaultVectors
}

// Frequencies of the emulated hardware.
const (
	// ClockSpeed is the number of T-cycles executed per second.
	ClockSpeed = 4194304
	// CyclesPerFrame is the number of T-cycles in a single frame.
	CyclesPerFrame = 70224
	// FrameRate is the refresh rate of the LCD.
	FrameRate = float64(ClockSpeed) / CyclesPerFrame
)
