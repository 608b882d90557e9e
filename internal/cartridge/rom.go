package cartridge

// ROMCartridge represents a ROM cartridge. This cartridge type is the simplest
// cartridge type and has no MBC. Up to 8KiB of external RAM may be present.
type ROMCartridge struct {
	rom    []byte
	ram    []byte
	header Header
}

// NewROMCartridge returns a new ROM cartridge.
func NewROMCartridge(rom []byte, h Header) *ROMCartridge {
	r := &ROMCartridge{rom: rom, header: h}
	if h.CartridgeType != ROM {
		r.ram = make([]byte, 0x2000)
	}
	return r
}

// Read returns the value at the given address. Reads outside of
// the image return 0xFF.
func (r *ROMCartridge) Read(address uint16) uint8 {
	switch {
	case address < 0x8000:
		if int(address) < len(r.rom) {
			return r.rom[address]
		}
	case address >= 0xA000 && address < 0xC000:
		if r.ram != nil {
			return r.ram[address-0xA000]
		}
	}
	return 0xFF
}

// Write writes to the external RAM, if present. The ROM is read only.
func (r *ROMCartridge) Write(address uint16, value uint8) {
	if address >= 0xA000 && address < 0xC000 && r.ram != nil {
		r.ram[address-0xA000] = value
	}
}

func (r *ROMCartridge) Header() Header {
	return r.header
}
