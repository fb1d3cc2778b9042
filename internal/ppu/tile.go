package ppu

import "github.com/thelolagemann/dmgcore/internal/types"

// tileLine decodes one row of a tile, stored as two bit planes, into
// its 8 colour numbers (0-3), from left to right.
func tileLine(lo, hi types.Byte) [8]uint8 {
	var line [8]uint8
	for x := 0; x < 8; x++ {
		bit := 7 - uint(x)
		line[x] = uint8(lo>>bit&1) | uint8(hi>>bit&1)<<1
	}
	return line
}

// tileAddress returns the VRAM address of the given background or
// window tile, honouring the signed addressing mode of LCDC.4.
func (p *PPU) tileAddress(id types.Byte) types.Word {
	if p.lcdc.UsingSignedTileData() {
		return types.Word(0x9000 + int(int8(id))*16)
	}
	return 0x8000 + types.Word(id)*16
}

// tileRow returns the decoded row of the tile at the given address.
func (p *PPU) tileRow(address types.Word, row uint8) [8]uint8 {
	address += types.Word(row) * 2
	return tileLine(p.vramAt(address), p.vramAt(address+1))
}
