package ppu

import (
	"sort"

	"github.com/thelolagemann/dmgcore/internal/types"
)

const (
	oamSize = 0xA0
	// spritesPerLine is the number of sprites the OAM scan selects
	// for a single line.
	spritesPerLine = 10
)

// OAM (Object Attribute Memory) is the memory used to store the
// attributes of the sprites. It is 160 bytes long and is located at
// 0xFE00-0xFE9F in the memory map. It is divided in 40 entries of 4 bytes
// each, each entry representing a sprite.
type OAM struct {
	data [oamSize]types.Byte
}

// Read returns the value at the given offset.
func (o *OAM) Read(offset types.Word) types.Byte {
	return o.data[offset]
}

// Write writes the given value at the given offset.
func (o *OAM) Write(offset types.Word, value types.Byte) {
	o.data[offset] = value
}

// Sprite returns the i-th sprite.
func (o *OAM) Sprite(i int) Sprite {
	return Sprite{
		Y:          o.data[i*4],
		X:          o.data[i*4+1],
		TileID:     o.data[i*4+2],
		Attributes: o.data[i*4+3],
		index:      uint8(i),
	}
}

// scan selects the first 10 sprites overlapping the line, in OAM
// order, and sorts them by drawing priority: the lowest X wins and
// ties go to the lowest OAM index.
func (o *OAM) scan(ly types.Byte, height uint8) []Sprite {
	found := make([]Sprite, 0, spritesPerLine)
	for i := 0; i < oamSize/4 && len(found) < spritesPerLine; i++ {
		s := o.Sprite(i)
		top := int(s.Y) - 16
		if int(ly) >= top && int(ly) < top+int(height) {
			found = append(found, s)
		}
	}

	sort.SliceStable(found, func(i, j int) bool {
		return found[i].X < found[j].X
	})
	return found
}
