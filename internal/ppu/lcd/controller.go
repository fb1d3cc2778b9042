// Package lcd decodes the LCD control and status registers of the
// PPU.
package lcd

import "github.com/thelolagemann/dmgcore/internal/types"

// Controller is the LCD controller. It is responsible for controlling various
// aspects of the LCD, such as enabling the background and window display.
//
// Its value is stored in the LCD Control Register (0xFF40) as follows:
//
//	Bit 7 - LCD Enable             (0=Off, 1=On)
//	Bit 6 - Window Tile Map Display Select (0=9800-9BFF, 1=9C00-9FFF)
//	Bit 5 - Window Display Enable          (0=Off, 1=On)
//	Bit 4 - BG & Window Tile Data Select   (0=8800-97FF, 1=8000-8FFF)
//	Bit 3 - BG Tile Map Display Select     (0=9800-9BFF, 1=9C00-9FFF)
//	Bit 2 - OBJ (Sprite) Size              (0=8x8, 1=8x16)
//	Bit 1 - OBJ (Sprite) Display Enable    (0=Off, 1=On)
//	Bit 0 - BG/Window Display/Priority     (0=Off, 1=On)
type Controller struct {
	// Enabled is the LCD Enable bit. When set, the LCD is enabled.
	Enabled bool
	// WindowTileMapAddress is the start of the window tile map,
	// 0x9800 or 0x9C00.
	WindowTileMapAddress types.Word
	// WindowEnabled is the Window Display Enable bit.
	WindowEnabled bool
	// TileDataAddress is the start of the BG & Window tile data.
	// At 0x8800 the tile numbers are signed, relative to 0x9000.
	TileDataAddress types.Word
	// BackgroundTileMapAddress is the start of the background tile
	// map, 0x9800 or 0x9C00.
	BackgroundTileMapAddress types.Word
	// SpriteSize is the height of the sprites, 8 or 16.
	SpriteSize uint8
	// SpriteEnabled is the OBJ (Sprite) Display Enable bit.
	SpriteEnabled bool
	// BackgroundEnabled is the BG/Window Display/Priority bit.
	BackgroundEnabled bool
}

// NewController returns a new LCD controller, as it is at power on
// with every bit cleared.
func NewController() *Controller {
	c := &Controller{}
	c.Write(0)
	return c
}

// Write decodes the value written to the LCD control register.
func (c *Controller) Write(value types.Byte) {
	c.Enabled = value&types.Bit7 != 0
	c.WindowTileMapAddress = 0x9800
	if value&types.Bit6 != 0 {
		c.WindowTileMapAddress = 0x9C00
	}
	c.WindowEnabled = value&types.Bit5 != 0
	c.TileDataAddress = 0x8800
	if value&types.Bit4 != 0 {
		c.TileDataAddress = 0x8000
	}
	c.BackgroundTileMapAddress = 0x9800
	if value&types.Bit3 != 0 {
		c.BackgroundTileMapAddress = 0x9C00
	}
	c.SpriteSize = 8
	if value&types.Bit2 != 0 {
		c.SpriteSize = 16
	}
	c.SpriteEnabled = value&types.Bit1 != 0
	c.BackgroundEnabled = value&types.Bit0 != 0
}

// Read encodes the LCD control register.
func (c *Controller) Read() types.Byte {
	var value types.Byte
	if c.Enabled {
		value |= types.Bit7
	}
	if c.WindowTileMapAddress == 0x9C00 {
		value |= types.Bit6
	}
	if c.WindowEnabled {
		value |= types.Bit5
	}
	if c.TileDataAddress == 0x8000 {
		value |= types.Bit4
	}
	if c.BackgroundTileMapAddress == 0x9C00 {
		value |= types.Bit3
	}
	if c.SpriteSize == 16 {
		value |= types.Bit2
	}
	if c.SpriteEnabled {
		value |= types.Bit1
	}
	if c.BackgroundEnabled {
		value |= types.Bit0
	}
	return value
}

// UsingSignedTileData returns true if the LCD controller is using signed tile
// data.
func (c *Controller) UsingSignedTileData() bool {
	return c.TileDataAddress == 0x8800
}
