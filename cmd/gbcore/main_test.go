package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thelolagemann/gbcore/internal/config"
	"github.com/thelolagemann/gbcore/pkg/log"
)

func writeROM(t *testing.T, program ...byte) string {
	t.Helper()
	rom := make([]byte, 0x8000)
	copy(rom[0x134:], "CLITEST")
	copy(rom[0x100:], program)
	path := filepath.Join(t.TempDir(), "test.gb")
	require.NoError(t, os.WriteFile(path, rom, 0o644))
	return path
}

func testGlobals() (*globals, *bytes.Buffer) {
	var out bytes.Buffer
	return &globals{cfg: config.Default(), log: log.NewNullLogger(), stdout: &out}, &out
}

func TestDisasm(t *testing.T) {
	g, out := testGlobals()
	path := writeROM(t, 0x00, 0xC3, 0x50, 0x01)

	require.NoError(t, (&Disasm{RomPath: path, Start: "0100", Count: 2}).Run(g))
	assert.Equal(t, "0100  00        NOP\n0101  C3 50 01  JP $0150\n", out.String())
}

func TestInfo(t *testing.T) {
	g, out := testGlobals()
	path := writeROM(t)

	require.NoError(t, (&Info{RomPath: path}).Run(g))
	assert.Contains(t, out.String(), "CLITEST Mode: DMG")
	assert.Contains(t, out.String(), "valid: false")
	assert.Contains(t, out.String(), "xxhash: ")
}

func TestRun(t *testing.T) {
	g, out := testGlobals()
	path := writeROM(t, 0x00, 0x00, 0x18, 0xFE)

	require.NoError(t, (&Run{RomPath: path, Frames: 10, Breakpoint: "0102"}).Run(g))
	assert.Contains(t, out.String(), "breakpoint hit at frame 0")
	assert.Contains(t, out.String(), "PC=0102")
	assert.Contains(t, out.String(), "next: JR $0102")
}

func TestRun_Trace(t *testing.T) {
	g, _ := testGlobals()
	path := writeROM(t, 0x18, 0xFE)
	tracePath := filepath.Join(t.TempDir(), "trace.log")

	require.NoError(t, (&Run{RomPath: path, Frames: 1, Trace: tracePath}).Run(g))

	data, err := os.ReadFile(tracePath)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	assert.Greater(t, len(lines), 1000)
	assert.True(t, strings.HasPrefix(lines[0], "0100  JR $0100"))
}
