package cartridge

// MemoryBankedCartridge1 represents a cartridge with the MBC1
// controller. It supports up to 2MiB of ROM in 16KiB banks and
// up to 32KiB of RAM in 8KiB banks.
type MemoryBankedCartridge1 struct {
	rom []byte
	ram []byte

	// bank1 holds the lower 5 bits of the ROM bank, bank2 the
	// upper 2 bits of the ROM bank or the RAM bank.
	bank1, bank2 uint8

	ramEnabled bool
	// advanced banking mode applies bank2 to 0x0000-0x3FFF and RAM.
	advanced bool

	header Header
}

// NewMemoryBankedCartridge1 returns a new MemoryBankedCartridge1 cartridge.
func NewMemoryBankedCartridge1(rom []byte, h Header) *MemoryBankedCartridge1 {
	return &MemoryBankedCartridge1{
		rom:    rom,
		ram:    make([]byte, h.RAMSize),
		bank1:  1,
		header: h,
	}
}

func (m *MemoryBankedCartridge1) romOffset(bank int, address uint16) int {
	banks := len(m.rom) / 0x4000
	if banks == 0 {
		banks = 1
	}
	return (bank%banks)*0x4000 + int(address&0x3FFF)
}

func (m *MemoryBankedCartridge1) ramOffset(address uint16) int {
	bank := 0
	if m.advanced {
		bank = int(m.bank2)
	}
	return (bank*0x2000 + int(address&0x1FFF)) % len(m.ram)
}

// Read returns the value from the cartridges ROM or RAM, depending on the bank
// selected.
func (m *MemoryBankedCartridge1) Read(address uint16) uint8 {
	var offset int
	switch {
	case address < 0x4000:
		bank := 0
		if m.advanced {
			bank = int(m.bank2) << 5
		}
		offset = m.romOffset(bank, address)
	case address < 0x8000:
		offset = m.romOffset(int(m.bank2)<<5|int(m.bank1), address)
	case address >= 0xA000 && address < 0xC000:
		if !m.ramEnabled || len(m.ram) == 0 {
			return 0xFF
		}
		return m.ram[m.ramOffset(address)]
	default:
		return 0xFF
	}

	if offset >= len(m.rom) {
		return 0xFF
	}
	return m.rom[offset]
}

// Write updates the banking registers, or writes to the selected RAM bank.
func (m *MemoryBankedCartridge1) Write(address uint16, value uint8) {
	switch {
	case address < 0x2000:
		m.ramEnabled = value&0x0F == 0x0A
	case address < 0x4000:
		m.bank1 = value & 0x1F
		if m.bank1 == 0 {
			m.bank1 = 1
		}
	case address < 0x6000:
		m.bank2 = value & 0x03
	case address < 0x8000:
		m.advanced = value&0x01 == 0x01
	case address >= 0xA000 && address < 0xC000:
		if m.ramEnabled && len(m.ram) > 0 {
			m.ram[m.ramOffset(address)] = value
		}
	}
}

func (m *MemoryBankedCartridge1) Header() Header {
	return m.header
}
