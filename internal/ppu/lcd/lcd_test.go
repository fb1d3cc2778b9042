package lcd

import (
	"testing"

	"github.com/thelolagemann/dmgcore/internal/types"
)

func TestController_RoundTrip(t *testing.T) {
	c := NewController()
	for _, v := range []uint8{0x00, 0x91, 0xFF, 0x44} {
		c.Write(types.Byte(v))
		if got := c.Read(); got != types.Byte(v) {
			t.Errorf("expected LCDC=0x%02X, got 0x%02X", v, got)
		}
	}

	c.Write(0x91)
	if !c.Enabled || c.TileDataAddress != 0x8000 || c.BackgroundTileMapAddress != 0x9800 || c.SpriteSize != 8 {
		t.Errorf("unexpected decode of 0x91: %+v", c)
	}
	c.Write(0x04)
	if !c.UsingSignedTileData() || c.SpriteSize != 16 {
		t.Errorf("unexpected decode of 0x04: %+v", c)
	}
}

func TestStatus_Line(t *testing.T) {
	s := &Status{}
	s.Write(0x20)
	s.Mode = OAM
	if !s.Line() {
		t.Errorf("expected the OAM source to raise the line")
	}
	s.Mode = VRAM
	if s.Line() {
		t.Errorf("expected pixel transfer to lower the line")
	}
	s.Coincidence = true
	if got := s.Read(true); got != 0xA7 {
		t.Errorf("expected STAT=0xA7, got 0x%02X", got)
	}
	if got := s.Read(false); got != 0xA0 {
		t.Errorf("expected STAT=0xA0 with the LCD off, got 0x%02X", got)
	}
}
