package ppu

import "github.com/thelolagemann/dmgcore/internal/types"

// Sprite is a single entry of the OAM.
type Sprite struct {
	Y      types.Byte
	X      types.Byte
	TileID types.Byte
	// Bit 7 - OBJ-to-BG priority (0=OBJ Above BG, 1=OBJ Behind BG color 1-3)
	// Bit 6 - Y flip
	// Bit 5 - X flip
	// Bit 4 - Palette number (0=OBP0, 1=OBP1)
	Attributes types.Byte

	index uint8
}

// Behind returns true when the sprite is drawn behind background
// colours 1-3.
func (s Sprite) Behind() bool { return s.Attributes&types.Bit7 != 0 }

// FlipY returns true when the sprite is vertically mirrored.
func (s Sprite) FlipY() bool { return s.Attributes&types.Bit6 != 0 }

// FlipX returns true when the sprite is horizontally mirrored.
func (s Sprite) FlipX() bool { return s.Attributes&types.Bit5 != 0 }

// Palette returns the object palette used by the sprite.
func (s Sprite) Palette() uint8 { return uint8(s.Attributes&types.Bit4) >> 4 }
