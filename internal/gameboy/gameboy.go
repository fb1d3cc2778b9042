// Package gameboy provides an emulation of a Nintendo Game Boy.
//
// A GameBoy wires the CPU to the memory bus and the peripherals, and
// is driven one frame at a time by ExecuteFrame. It owns no
// goroutines; the host calls into it from a single goroutine.
package gameboy

import (
	"errors"
	"fmt"
	"io"

	"github.com/thelolagemann/dmgcore/internal/apu"
	"github.com/thelolagemann/dmgcore/internal/boot"
	"github.com/thelolagemann/dmgcore/internal/cartridge"
	"github.com/thelolagemann/dmgcore/internal/cpu"
	"github.com/thelolagemann/dmgcore/internal/interrupts"
	"github.com/thelolagemann/dmgcore/internal/joypad"
	"github.com/thelolagemann/dmgcore/internal/mmu"
	"github.com/thelolagemann/dmgcore/internal/ppu"
	"github.com/thelolagemann/dmgcore/internal/serial"
	"github.com/thelolagemann/dmgcore/internal/timer"
	"github.com/thelolagemann/dmgcore/internal/types"
	"github.com/thelolagemann/dmgcore/pkg/log"
)

const (
	// ClockSpeed is the clock speed of the Game Boy.
	ClockSpeed = cpu.ClockSpeed // 4.194304 MHz
	// CyclesPerFrame is the number of clock cycles per frame.
	CyclesPerFrame = ppu.CyclesPerFrame * 4 // 70224
)

// Outcome is the reason ExecuteFrame returned.
type Outcome uint8

const (
	// FrameCompleted means the PPU entered VBlank, or a full
	// frame worth of cycles passed with the LCD off.
	FrameCompleted Outcome = iota
	// FramePaused means the pause predicate returned true. The
	// next call continues with the same instruction.
	FramePaused
	// FrameTerminated means the CPU can no longer execute.
	FrameTerminated
)

func (o Outcome) String() string {
	switch o {
	case FrameCompleted:
		return "completed"
	case FramePaused:
		return "paused"
	case FrameTerminated:
		return "terminated"
	}
	return "unknown"
}

// Peripherals is the host side of the emulator. It is asked for the
// pressed keys once per frame, receives every rendered line and is
// told whenever a sound channel changes.
type Peripherals interface {
	joypad.Input
	ppu.Display
	apu.Speaker
}

// GameBoy represents a Game Boy. It contains all the components of the Game Boy.
// It is the main entry point for the emulator.
type GameBoy struct {
	CPU *cpu.CPU
	MMU *mmu.MMU
	PPU *ppu.PPU
	DMA *ppu.DMA

	APU        *apu.APU
	Joypad     *joypad.State
	Interrupts *interrupts.Service
	Timer      *timer.Controller
	Serial     *serial.Controller
	Cartridge  *cartridge.Cartridge

	log.Logger

	rom       []byte
	registers *types.HardwareRegisters

	// set by the options, consumed by New
	bootROM    []byte
	serialOut  io.Writer
	state      []byte
	batteryRAM []byte
}

// New parses the cartridge in rom and assembles a Game Boy around
// it. Without a boot ROM the machine starts at 0x0100 in the state
// the DMG boot ROM leaves behind.
func New(rom []byte, opts ...Opt) (*GameBoy, error) {
	g := &GameBoy{
		rom:    rom,
		Logger: log.NewNullLogger(),
	}
	for _, opt := range opts {
		opt(g)
	}

	cart, err := cartridge.New(rom)
	if err != nil {
		return nil, fmt.Errorf("gameboy: loading cartridge: %w", err)
	}
	if !cart.ChecksumValid() {
		g.Warnf("gameboy: header checksum mismatch for %q", cart.Title)
	}

	var bootROM *boot.ROM
	if g.bootROM != nil {
		if bootROM, err = boot.New(g.bootROM); err != nil {
			return nil, fmt.Errorf("gameboy: %w", err)
		}
		g.Debugf("gameboy: using %s boot rom (%s)", bootROM.Model(), bootROM.Checksum())
	}

	g.Cartridge = cart
	g.registers = types.NewHardwareRegisters()
	g.Interrupts = interrupts.NewService(g.registers)
	g.MMU = mmu.NewMMU(cart, bootROM, g.registers, g.Logger)
	g.PPU = ppu.New(g.registers, g.Interrupts, g.Logger)
	g.MMU.AttachVideo(g.PPU)
	g.DMA = ppu.NewDMA(g.registers, g.MMU, g.PPU.OAM())
	g.MMU.AttachDMA(g.DMA)
	g.Timer = timer.NewController(g.registers, g.Interrupts)
	g.Serial = serial.NewController(g.registers, g.Interrupts, g.serialOut)
	g.Joypad = joypad.New(g.registers, g.Interrupts)
	g.APU = apu.NewAPU(g.registers)
	g.CPU = cpu.NewCPU(g.MMU, g.Interrupts)

	if bootROM == nil {
		g.skipBoot()
	}

	if g.batteryRAM != nil {
		b, ok := cart.Battery()
		if !ok {
			return nil, fmt.Errorf("gameboy: %s has no battery", cart.CartridgeType)
		}
		if err := b.LoadRAM(g.batteryRAM); err != nil {
			return nil, fmt.Errorf("gameboy: loading battery ram: %w", err)
		}
	}

	if g.state != nil {
		if err := g.LoadState(g.state); err != nil {
			return nil, err
		}
	}
	g.bootROM, g.state, g.batteryRAM = nil, nil, nil

	g.Infof("gameboy: loaded %s", cart.String())
	return g, nil
}

// skipBoot puts the machine in the state the DMG boot ROM leaves
// it in when it hands over to the cartridge.
func (g *GameBoy) skipBoot() {
	g.CPU.AF.SetUint16(0x01B0)
	g.CPU.BC.SetUint16(0x0013)
	g.CPU.DE.SetUint16(0x00D8)
	g.CPU.HL.SetUint16(0x014D)
	g.CPU.SP = 0xFFFE
	g.CPU.PC = 0x0100

	g.Timer.SetDiv(0xABCC)

	for _, r := range []struct {
		address types.HardwareAddress
		value   types.Byte
	}{
		{types.NR52, 0xF1},
		{types.NR50, 0x77},
		{types.NR51, 0xF3},
		{types.LCDC, 0x91},
		{types.BGP, 0xFC},
	} {
		g.MMU.StoreByte(r.address, r.value)
	}
}

// ExecuteFrame runs the machine until the PPU enters VBlank. The
// keys are read from p once, at the start of the frame. Before
// every instruction shouldPause, when not nil, is asked whether to
// stop early; a paused frame resumes on the next call.
//
// A terminated CPU stays terminated: every further call returns
// FrameTerminated with the same *cpu.TerminatedError.
func (g *GameBoy) ExecuteFrame(p Peripherals, shouldPause func(*GameBoy) bool) (Outcome, error) {
	var display ppu.Display
	var speaker apu.Speaker
	if p != nil {
		g.Joypad.HandleInput(p.PressedKeys())
		display, speaker = p, p
	}

	for elapsed := 0; elapsed < ppu.CyclesPerFrame; {
		if shouldPause != nil && shouldPause(g) {
			return FramePaused, nil
		}

		cycles, err := g.CPU.Step()
		if err != nil {
			var terr *cpu.TerminatedError
			if errors.As(err, &terr) {
				g.Errorf("gameboy: %v: %s", err, cpu.Disassemble(g.MMU.LoadByte, terr.Address))
			}
			return FrameTerminated, err
		}

		for i := 0; i < cycles/4; i++ {
			g.Timer.Step()
			g.Serial.Step()
			g.PPU.Step(display)
			g.DMA.Step()
			g.APU.Step(speaker)
		}
		elapsed += cycles / 4

		if g.PPU.EnteredVBlank() {
			break
		}
	}
	return FrameCompleted, nil
}

// Title returns the title of the loaded cartridge.
func (g *GameBoy) Title() string {
	return g.Cartridge.Title
}

// Cycles returns the number of T-cycles executed since power on.
func (g *GameBoy) Cycles() uint64 {
	return g.CPU.Cycles
}

// BatteryRAM returns a copy of the battery backed cartridge RAM, or
// nil when the cartridge has no battery.
func (g *GameBoy) BatteryRAM() []byte {
	b, ok := g.Cartridge.Battery()
	if !ok {
		return nil
	}
	return append([]byte(nil), b.RAM()...)
}

// LoadByte reads memory the way the CPU sees it. It is used by the
// debugging helpers.
func (g *GameBoy) LoadByte(address types.Word) types.Byte {
	return g.MMU.LoadByte(address)
}

// components returns the state of the machine in save state order.
func (g *GameBoy) components() []types.Stater {
	return []types.Stater{
		g.CPU,
		g.Interrupts,
		g.registers,
		g.MMU,
		g.Cartridge.MemoryBankController,
		g.PPU,
		g.DMA,
		g.Timer,
		g.Serial,
		g.Joypad,
		g.APU,
	}
}
