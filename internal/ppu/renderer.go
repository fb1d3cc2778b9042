package ppu

import "github.com/thelolagemann/dmgcore/internal/types"

// renderLine draws the current line into p.line from the background,
// the window and the sprites selected by the OAM scan.
func (p *PPU) renderLine() {
	// colour numbers of the background and window, used to resolve
	// the priority of the sprites
	var colours [ScreenWidth]uint8

	if p.lcdc.BackgroundEnabled {
		p.renderBackground(&colours)
		p.renderWindow(&colours)
		for x := range p.line {
			p.line[x] = p.bgp[colours[x]]
		}
	} else {
		// LCDC.0 blanks both the background and the window
		for x := range p.line {
			p.line[x] = ShadeWhite
		}
	}

	if p.lcdc.SpriteEnabled {
		p.renderSprites(&colours)
	}
}

func (p *PPU) renderBackground(colours *[ScreenWidth]uint8) {
	y := p.ly.Add(p.scy)
	mapRow := p.lcdc.BackgroundTileMapAddress + types.Word(y>>3)*32

	for x := 0; x < ScreenWidth; {
		bx := types.Byte(x).Add(p.scx)
		pixels := p.tileRow(p.tileAddress(p.vramAt(mapRow+types.Word(bx>>3))), uint8(y&7))

		// finish the tile, or the rest of the line
		for px := bx & 7; px < 8 && x < ScreenWidth; px++ {
			colours[x] = pixels[px]
			x++
		}
	}
}

func (p *PPU) renderWindow(colours *[ScreenWidth]uint8) {
	if !p.lcdc.WindowEnabled || p.ly < p.wy || p.wx > 166 {
		return
	}

	start := int(p.wx) - 7
	mapRow := p.lcdc.WindowTileMapAddress + types.Word(p.wly>>3)*32
	for x := 0; x < ScreenWidth; x++ {
		if x < start {
			continue
		}
		wx := x - start
		pixels := p.tileRow(p.tileAddress(p.vramAt(mapRow+types.Word(wx>>3))), p.wly&7)
		colours[x] = pixels[wx&7]
	}

	// the window keeps its own line counter, which only advances on
	// lines where it was drawn
	p.wly++
}

func (p *PPU) renderSprites(colours *[ScreenWidth]uint8) {
	height := p.lcdc.SpriteSize

	// sprites are sorted by priority, so the first opaque pixel at an
	// X position hides every other sprite there
	var claimed [ScreenWidth]bool

	for _, s := range p.objBuffer {
		row := uint8(int(p.ly) - (int(s.Y) - 16))
		if s.FlipY() {
			row = height - 1 - row
		}
		id := s.TileID
		if height == 16 {
			id &^= 1
		}
		pixels := p.tileRow(0x8000+types.Word(id)*16, row)
		shades := p.obp[s.Palette()]

		for i := 0; i < 8; i++ {
			x := int(s.X) - 8 + i
			if x < 0 || x >= ScreenWidth || claimed[x] {
				continue
			}
			px := i
			if s.FlipX() {
				px = 7 - i
			}
			c := pixels[px]
			if c == 0 {
				continue // transparent
			}
			claimed[x] = true

			if s.Behind() && colours[x] != 0 {
				continue
			}
			p.line[x] = shades[c]
		}
	}
}
