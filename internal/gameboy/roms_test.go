package gameboy

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/thelolagemann/dmgcore/internal/types"
)

// Test ROMs are not distributed with the repository. Drop them in
// testdata/roms to run the suites below:
//
//	testdata/roms/blargg/cpu_instrs/individual/*.gb
//	testdata/roms/mooneye/acceptance/**/*.gb
const romPath = "testdata/roms"

// findROMs returns the .gb files below dir, skipping the test when
// there are none.
func findROMs(t *testing.T, dir string, keep func(name string) bool) []string {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping test roms in short mode")
	}
	var roms []string
	_ = filepath.WalkDir(filepath.Join(romPath, dir), func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if !d.IsDir() && filepath.Ext(path) == ".gb" && keep(d.Name()) {
			roms = append(roms, path)
		}
		return nil
	})
	if len(roms) == 0 {
		t.Skipf("no test roms in %s", filepath.Join(romPath, dir))
	}
	return roms
}

// runROM runs rom until shouldPause returns true or frames have
// passed, returning whether it paused.
func runROM(t *testing.T, rom []byte, frames int, shouldPause func(*GameBoy) bool, opts ...Opt) (*GameBoy, bool) {
	t.Helper()
	g, err := New(rom, opts...)
	if err != nil {
		t.Skipf("unsupported cartridge: %v", err)
	}
	for i := 0; i < frames; i++ {
		outcome, err := g.ExecuteFrame(nil, shouldPause)
		switch outcome {
		case FramePaused:
			return g, true
		case FrameTerminated:
			t.Fatalf("terminated in frame %d: %v", i, err)
		}
	}
	return g, false
}

// A passing blargg test writes Passed to the serial port.
func TestROMs_Blargg(t *testing.T) {
	for _, file := range findROMs(t, "blargg/cpu_instrs", func(string) bool { return true }) {
		file := file
		t.Run(filepath.Base(file), func(t *testing.T) {
			rom, err := os.ReadFile(file)
			if err != nil {
				t.Fatal(err)
			}

			var output bytes.Buffer
			done := func(*GameBoy) bool {
				return bytes.Contains(output.Bytes(), []byte("Passed")) ||
					bytes.Contains(output.Bytes(), []byte("Failed"))
			}
			_, _ = runROM(t, rom, 60*60, done, WithSerialOutput(&output))

			if s := output.String(); strings.Contains(s, "Failed") || !strings.Contains(s, "Passed") {
				t.Errorf("expecting output to contain 'Passed', got '%s'", s)
			}
		})
	}
}

// A passing mooneye test loads the fibonacci sequence into the
// registers and executes LD B, B.
func TestROMs_Mooneye(t *testing.T) {
	dmgOnly := func(name string) bool {
		for _, suffix := range []string{"-cgb.gb", "-C.gb", "-A.gb", "-S.gb", "-sgb.gb", "-sgb2.gb", "-mgb.gb", "-dmg0.gb"} {
			if strings.HasSuffix(name, suffix) {
				return false
			}
		}
		return true
	}
	for _, file := range findROMs(t, "mooneye/acceptance", dmgOnly) {
		file := file
		t.Run(strings.TrimPrefix(file, filepath.Join(romPath, "mooneye")+string(filepath.Separator)), func(t *testing.T) {
			rom, err := os.ReadFile(file)
			if err != nil {
				t.Fatal(err)
			}

			g, paused := runROM(t, rom, 60*10, func(g *GameBoy) bool {
				return g.LoadByte(g.CPU.PC) == 0x40
			})
			if !paused {
				t.Fatal("timed out before reaching LD B, B")
			}
			got := []types.Byte{g.CPU.B, g.CPU.C, g.CPU.D, g.CPU.E, g.CPU.H, g.CPU.L}
			want := []types.Byte{3, 5, 8, 13, 21, 34}
			for i := range want {
				if got[i] != want[i] {
					t.Fatalf("expected registers %v, got %v", want, got)
				}
			}
		})
	}
}
