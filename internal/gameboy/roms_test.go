package gameboy

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// Test ROMs are not distributed with the repository. Place the
// blargg and mooneye suites under testdata/ to run these tests.
const (
	blarggROMPath  = "testdata/blargg"
	mooneyeROMPath = "testdata/mooneye"

	framesPerSecond = 60
)

// romsIn returns every .gb file below dir, skipping the test if
// the directory does not exist.
func romsIn(t *testing.T, dir string) []string {
	t.Helper()
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		t.Skipf("%s not present", dir)
	}

	var roms []string
	err := filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && filepath.Ext(path) == ".gb" {
			roms = append(roms, path)
		}
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}
	return roms
}

// blargg ROMs report their result over the serial port.
func Test_Blargg(t *testing.T) {
	for _, path := range romsIn(t, blarggROMPath) {
		path := path
		t.Run(filepath.Base(path), func(t *testing.T) {
			t.Parallel()
			rom, err := os.ReadFile(path)
			if err != nil {
				t.Fatal(err)
			}

			var output strings.Builder
			g, err := NewGameBoy(rom, SerialDebugger(func(b uint8) { output.WriteByte(b) }))
			if err != nil {
				t.Fatal(err)
			}

			for frame := 0; frame < 60*framesPerSecond; frame++ {
				if _, err := g.TickFrame(); err != nil {
					t.Fatalf("%v\n%s", err, output.String())
				}
				if strings.Contains(output.String(), "Passed") {
					return
				}
				if strings.Contains(output.String(), "Failed") {
					break
				}
			}
			t.Fatalf("test failed:\n%s", output.String())
		})
	}
}

// mooneye ROMs write the fibonacci sequence 3/5/8/13/21/34 to
// B/C/D/E/H/L on success, and 0x42 on failure.
func Test_Mooneye(t *testing.T) {
	pass := [3]uint16{0x0305, 0x080D, 0x1522}

	for _, path := range romsIn(t, mooneyeROMPath) {
		path := path
		t.Run(filepath.Base(path), func(t *testing.T) {
			t.Parallel()
			rom, err := os.ReadFile(path)
			if err != nil {
				t.Fatal(err)
			}
			g, err := NewGameBoy(rom)
			if err != nil {
				t.Fatal(err)
			}

			for frame := 0; frame < 10*framesPerSecond; frame++ {
				if _, err := g.TickFrame(); err != nil {
					t.Fatal(err)
				}
				r := g.Registers()
				if [3]uint16{r.BC, r.DE, r.HL} == pass {
					return
				}
				if r.BC == 0x4242 {
					break
				}
			}
			t.Fatalf("test failed: %s", g.Registers())
		})
	}
}
