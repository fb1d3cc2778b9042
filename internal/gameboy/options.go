package gameboy

import (
	"io"

	"github.com/thelolagemann/dmgcore/pkg/log"
)

// Opt is a function that modifies a GameBoy
// instance before it is assembled.
type Opt func(gb *GameBoy)

// WithLogger sets the logger shared by all the components.
func WithLogger(log log.Logger) Opt {
	return func(gb *GameBoy) {
		gb.Logger = log
	}
}

// WithState restores a save state created by SaveState once the
// machine is assembled.
func WithState(b []byte) Opt {
	return func(gb *GameBoy) {
		gb.state = b
	}
}

// WithBootROM sets the boot ROM for the emulator. The machine then
// starts at 0x0000 with all the registers cleared, and the boot ROM
// mapped over the cartridge.
func WithBootROM(rom []byte) Opt {
	return func(gb *GameBoy) {
		gb.bootROM = rom
	}
}

// WithSerialOutput writes every byte sent over the serial port to w.
// Test ROMs report their results this way.
func WithSerialOutput(w io.Writer) Opt {
	return func(gb *GameBoy) {
		gb.serialOut = w
	}
}

// WithBatteryRAM restores the battery backed cartridge RAM from a
// previous run.
func WithBatteryRAM(ram []byte) Opt {
	return func(gb *GameBoy) {
		gb.batteryRAM = ram
	}
}
