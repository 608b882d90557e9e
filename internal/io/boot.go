package io

import (
	"crypto/md5"
	"encoding/hex"

	"github.com/thelolagemann/gbcore/internal/types"
)

// bootROMModels maps the md5 checksum of each known boot ROM to
// the model it was dumped from.
var bootROMModels = map[string]types.Model{
	DMG0:    types.DMG0,
	DMG:     types.DMGABC,
	MGB:     types.MGB,
	SGB:     types.SGB,
	SGB2:    types.SGB2,
	CGB0:    types.CGB0,
	CGB:     types.CGBABC,
	CGB_AGB: types.AGB,
	// clones run as a DMG
	FORTUNE:      types.DMGABC,
	GAME_FIGHTER: types.DMGABC,
	MAX_STATION:  types.DMGABC,
}

// Which identifies the model a boot ROM belongs to. Unknown boot
// ROMs are reported as Unset, leaving the choice to the caller.
func Which(rom []byte) types.Model {
	sum := md5.Sum(rom)
	if m, ok := bootROMModels[hex.EncodeToString(sum[:])]; ok {
		return m
	}
	return types.Unset
}

// Checksums of the known boot ROM dumps.
const (
	DMG0         = "a8f84a0ac44da5d3f0ee19f9cea80a8c" // early Japanese DMG, flashes the screen on a failed logo check
	DMG          = "32fbbd84168d3482956eb3c5051637f5"
	MGB          = "71a378e71ff30b2d8a1f02bf5c7896aa" // loads 0xFF into A instead of 0x01
	SGB          = "d574d4f9c12f305074798f54c091a8b4"
	SGB2         = "e0430bca9925fb9882148fd2dc2418c1"
	CGB0         = "7c773f3c0b01cb73bca8e83227287b7f"
	CGB          = "dbfce9db9deaa2567f6a84fde55f9680"
	CGB_AGB      = "e6cefb5f7d352fab6681989763917c73" // GBA in GBC mode
	FORTUNE      = "92ed4eca17d61fcd53f8a64c3ce84743"
	GAME_FIGHTER = "6a7b8ee12a793f66a969c6a2b8926cc9"
	MAX_STATION  = "77a7021db824010a678791f6d062943d"
)
