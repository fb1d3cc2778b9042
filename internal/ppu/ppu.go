// Package ppu implements the pixel processing unit of the Game Boy:
// its registers, the video and object attribute memories, the mode
// clock and a line renderer.
package ppu

import (
	"github.com/thelolagemann/dmgcore/internal/interrupts"
	"github.com/thelolagemann/dmgcore/internal/ppu/lcd"
	"github.com/thelolagemann/dmgcore/internal/types"
	"github.com/thelolagemann/dmgcore/pkg/log"
)

const (
	// ScreenWidth is the width of the screen in pixels.
	ScreenWidth = 160
	// ScreenHeight is the height of the screen in pixels.
	ScreenHeight = 144
)

const (
	// CyclesPerLine is the number of machine cycles spent on a line.
	CyclesPerLine = 114
	// Lines is the number of lines in a frame, including the 10 lines
	// of VBlank.
	Lines = 154
	// CyclesPerFrame is the number of machine cycles in a frame.
	CyclesPerFrame = CyclesPerLine * Lines

	oamCycles      = 20
	transferCycles = 43
)

// Shade is one of the four grey levels of the LCD, from ShadeWhite
// to ShadeBlack.
type Shade uint8

const (
	ShadeWhite Shade = iota
	ShadeLightGrey
	ShadeDarkGrey
	ShadeBlack
)

// Display receives the lines of the LCD as they are drawn.
type Display interface {
	WriteLCDLine(line int, row *[ScreenWidth]Shade)
}

// PPU implements the Game Boy's (P)ixel (P)rocessing (U)nit.
//
// References:
//   - [Pan Docs](https://gbdev.io/pandocs/Graphics.html)
//   - [Hacktix GBEDG](https://hacktix.github.io/GBEDG/ppu/)
type PPU struct {
	lcdc *lcd.Controller
	stat *lcd.Status

	// Rendering state
	ly      types.Byte // Current line (0-153)
	cycle   uint8      // Current machine cycle within the line (0-113)
	wly     uint8      // Window line counter
	statInt bool       // Current STAT interrupt line

	// Scroll registers
	scy, scx types.Byte // Background viewport position
	wy, wx   types.Byte // Window Position
	lyc      types.Byte

	// Palettes, raw and decoded
	bgpValue  types.Byte
	obpValues [2]types.Byte
	bgp       [4]Shade
	obp       [2][4]Shade

	vRAM [0x2000]types.Byte
	oam  *OAM

	objBuffer []Sprite
	line      [ScreenWidth]Shade

	enteredVBlank bool

	irq *interrupts.Service
	log log.Logger
}

// New returns a new PPU attached to the LCD registers
// (0xFF40 - 0xFF45, 0xFF47 - 0xFF4B).
func New(h *types.HardwareRegisters, irq *interrupts.Service, l log.Logger) *PPU {
	p := &PPU{
		lcdc: lcd.NewController(),
		stat: &lcd.Status{},
		oam:  &OAM{},
		irq:  irq,
		log:  l,
	}

	h.RegisterHardware(
		types.LCDC,
		func(v types.Byte) {
			wasEnabled := p.lcdc.Enabled
			p.lcdc.Write(v)

			switch {
			case wasEnabled && !p.lcdc.Enabled:
				// the screen should only be turned off in VBlank
				if p.stat.Mode != lcd.VBlank {
					p.log.Debugf("ppu: LCD disabled outside of VBlank (LY=%d)", p.ly)
				}

				// when the LCD is off, LY reads 0, and STAT mode reads 0 (HBlank)
				p.ly, p.cycle = 0, 0
				p.stat.Mode = lcd.HBlank
				p.statInt = false
			case !wasEnabled && p.lcdc.Enabled:
				p.ly, p.cycle, p.wly = 0, 0, 0
				p.stat.Mode = lcd.OAM
				p.statUpdate()
			}
		},
		p.lcdc.Read,
	)
	h.RegisterHardware(
		types.STAT,
		func(v types.Byte) {
			p.stat.Write(v)
			p.statUpdate()
		}, func() types.Byte {
			return p.stat.Read(p.lcdc.Enabled)
		},
	)
	h.RegisterHardware(types.SCY, func(v types.Byte) { p.scy = v }, func() types.Byte { return p.scy })
	h.RegisterHardware(types.SCX, func(v types.Byte) { p.scx = v }, func() types.Byte { return p.scx })
	h.RegisterHardware(
		types.LY,
		func(v types.Byte) {
			p.log.Debugf("ppu: ignoring write of 0x%02X to LY", v)
		}, func() types.Byte {
			return p.ly
		},
	)
	h.RegisterHardware(
		types.LYC,
		func(v types.Byte) {
			p.lyc = v
			p.statUpdate()
		}, func() types.Byte {
			return p.lyc
		},
	)
	h.RegisterHardware(
		types.BGP,
		func(v types.Byte) {
			p.bgpValue, p.bgp = v, shades(v)
		}, func() types.Byte {
			return p.bgpValue
		},
	)
	h.RegisterHardware(
		types.OBP0,
		func(v types.Byte) {
			p.obpValues[0], p.obp[0] = v, shades(v)
		}, func() types.Byte {
			return p.obpValues[0]
		},
	)
	h.RegisterHardware(
		types.OBP1,
		func(v types.Byte) {
			p.obpValues[1], p.obp[1] = v, shades(v)
		}, func() types.Byte {
			return p.obpValues[1]
		},
	)
	h.RegisterHardware(types.WY, func(v types.Byte) { p.wy = v }, func() types.Byte { return p.wy })
	h.RegisterHardware(types.WX, func(v types.Byte) { p.wx = v }, func() types.Byte { return p.wx })

	return p
}

// shades decodes a palette register into the shade of each of the
// four colour numbers.
func shades(v types.Byte) [4]Shade {
	return [4]Shade{
		Shade(v & 3),
		Shade(v >> 2 & 3),
		Shade(v >> 4 & 3),
		Shade(v >> 6 & 3),
	}
}

// OAM returns the object attribute memory, as written by the DMA
// controller.
func (p *PPU) OAM() *OAM {
	return p.oam
}

// Mode returns the current mode of the PPU.
func (p *PPU) Mode() lcd.Mode {
	return p.stat.Mode
}

// Enabled returns true while the LCD is on.
func (p *PPU) Enabled() bool {
	return p.lcdc.Enabled
}

// EnteredVBlank reports whether the PPU entered VBlank since the last
// call. It marks the end of a frame.
func (p *PPU) EnteredVBlank() bool {
	entered := p.enteredVBlank
	p.enteredVBlank = false
	return entered
}

// Step advances the PPU by a single machine cycle. Lines are
// reported to the display at the end of their pixel transfer.
func (p *PPU) Step(display Display) {
	if !p.lcdc.Enabled {
		return
	}

	switch {
	case p.ly < ScreenHeight && p.cycle == 0:
		p.stat.Mode = lcd.OAM
		p.objBuffer = p.objBuffer[:0]
		if p.lcdc.SpriteEnabled {
			p.objBuffer = p.oam.scan(p.ly, p.lcdc.SpriteSize)
		}
		p.statUpdate()
	case p.ly < ScreenHeight && p.cycle == oamCycles:
		p.stat.Mode = lcd.VRAM
		p.statUpdate()
	case p.ly < ScreenHeight && p.cycle == oamCycles+transferCycles:
		p.renderLine()
		if display != nil {
			display.WriteLCDLine(int(p.ly), &p.line)
		}
		p.stat.Mode = lcd.HBlank
		p.statUpdate()
	case p.ly == ScreenHeight && p.cycle == 0:
		p.stat.Mode = lcd.VBlank
		p.irq.Request(interrupts.VBlank)
		p.enteredVBlank = true
		p.statUpdate()
	}

	p.cycle++
	if p.cycle == CyclesPerLine {
		p.cycle = 0
		p.ly++
		if p.ly == Lines {
			p.ly = 0
			p.wly = 0
		}
		p.statUpdate()
	}
}

// statUpdate refreshes the coincidence flag and raises the LCD
// interrupt on a rising edge of the STAT interrupt line.
func (p *PPU) statUpdate() {
	if !p.lcdc.Enabled {
		return
	}
	p.stat.Coincidence = p.ly == p.lyc

	statInt := p.stat.Line()
	if !p.statInt && statInt {
		p.irq.Request(interrupts.LCD)
	}
	p.statInt = statInt
}

// vramAt reads VRAM for the renderer, bypassing the bus locks.
func (p *PPU) vramAt(address types.Word) types.Byte {
	return p.vRAM[address&0x1FFF]
}

// vramLocked returns true while the CPU can't access VRAM.
func (p *PPU) vramLocked() bool {
	return p.lcdc.Enabled && p.stat.Mode == lcd.VRAM
}

// oamLocked returns true while the CPU can't access OAM.
func (p *PPU) oamLocked() bool {
	return p.lcdc.Enabled && (p.stat.Mode == lcd.OAM || p.stat.Mode == lcd.VRAM)
}

// Read returns the value in VRAM (0x8000 - 0x9FFF) or OAM
// (0xFE00 - 0xFE9F). Locked memory reads 0xFF.
func (p *PPU) Read(address types.Word) types.Byte {
	if address >= 0xFE00 {
		if p.oamLocked() {
			return 0xFF
		}
		return p.oam.Read(address - 0xFE00)
	}
	if p.vramLocked() {
		return 0xFF
	}
	return p.vRAM[address-0x8000]
}

// Write writes to VRAM or OAM. Writes to locked memory are dropped.
func (p *PPU) Write(address types.Word, value types.Byte) {
	if address >= 0xFE00 {
		if !p.oamLocked() {
			p.oam.Write(address-0xFE00, value)
		}
		return
	}
	if !p.vramLocked() {
		p.vRAM[address-0x8000] = value
	}
}

var _ types.Stater = (*PPU)(nil)

// Load restores the PPU from the state.
func (p *PPU) Load(s *types.State) {
	p.lcdc.Write(s.Read8())
	p.stat.Write(s.Read8())
	p.stat.Mode = lcd.Mode(s.Read8())
	p.ly = s.Read8()
	p.cycle = uint8(s.Read8())
	p.wly = uint8(s.Read8())
	p.statInt = s.ReadBool()
	p.scy, p.scx = s.Read8(), s.Read8()
	p.wy, p.wx = s.Read8(), s.Read8()
	p.lyc = s.Read8()
	p.bgpValue = s.Read8()
	p.obpValues[0], p.obpValues[1] = s.Read8(), s.Read8()
	p.bgp, p.obp[0], p.obp[1] = shades(p.bgpValue), shades(p.obpValues[0]), shades(p.obpValues[1])

	for i := range p.vRAM {
		p.vRAM[i] = s.Read8()
	}
	for i := range p.oam.data {
		p.oam.data[i] = s.Read8()
	}
	p.stat.Coincidence = p.ly == p.lyc

	// the OAM scan result is recomputed at the start of each line
	if p.lcdc.SpriteEnabled && p.ly < ScreenHeight {
		p.objBuffer = p.oam.scan(p.ly, p.lcdc.SpriteSize)
	}
}

// Save writes the PPU to the state.
func (p *PPU) Save(s *types.State) {
	s.Write8(p.lcdc.Read())
	s.Write8(p.stat.Read(false))
	s.Write8(types.Byte(p.stat.Mode))
	s.Write8(p.ly)
	s.Write8(types.Byte(p.cycle))
	s.Write8(types.Byte(p.wly))
	s.WriteBool(p.statInt)
	s.Write8(p.scy)
	s.Write8(p.scx)
	s.Write8(p.wy)
	s.Write8(p.wx)
	s.Write8(p.lyc)
	s.Write8(p.bgpValue)
	s.Write8(p.obpValues[0])
	s.Write8(p.obpValues[1])
	for _, b := range p.vRAM {
		s.Write8(b)
	}
	for _, b := range p.oam.data {
		s.Write8(b)
	}
}
