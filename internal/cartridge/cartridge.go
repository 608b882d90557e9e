// Package cartridge provides a Cartridge interface for the DMG and CGB.
// The cartridge holds the game ROM and any external RAM.
package cartridge

import (
	"github.com/cespare/xxhash"
	"github.com/pkg/errors"
)

// Cartridge represents a game cartridge, mapped into 0x0000-0x7FFF
// and 0xA000-0xBFFF.
type Cartridge interface {
	Read(address uint16) uint8
	Write(address uint16, value uint8)

	Header() Header
}

// ErrUnsupported is returned by New for cartridge types with no
// memory bank controller implementation.
var ErrUnsupported = errors.New("unsupported cartridge type")

// New parses the header of rom and returns a cartridge with the
// appropriate memory bank controller.
func New(rom []byte) (Cartridge, error) {
	h, err := ParseHeader(rom)
	if err != nil {
		return nil, err
	}

	switch h.CartridgeType {
	case ROM, ROMRAM, ROMRAMBATT:
		return NewROMCartridge(rom, h), nil
	case MBC1, MBC1RAM, MBC1RAMBATT:
		return NewMemoryBankedCartridge1(rom, h), nil
	}

	return nil, errors.Wrapf(ErrUnsupported, "%s", h.CartridgeType)
}

// Checksum returns the xxhash digest of a ROM image, which
// identifies a ROM independently of its file name.
func Checksum(rom []byte) uint64 {
	return xxhash.Sum64(rom)
}
