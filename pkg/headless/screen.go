// Package headless provides peripherals for running the emulator
// without a window: a framebuffer that can be exported as PNG, a
// recorder that renders the sound channels to a WAV file and a
// schedule of scripted key presses.
package headless

import (
	"image"
	"image/png"
	"io"

	"github.com/thelolagemann/dmgcore/internal/ppu"
	"github.com/thelolagemann/dmgcore/internal/ppu/palette"
	"golang.org/x/image/draw"
)

// Screen is a framebuffer holding the lines written by the PPU.
type Screen struct {
	Palette palette.Palette

	frame [ppu.ScreenHeight][ppu.ScreenWidth]ppu.Shade
	lines int
}

// NewScreen returns a blank screen coloured with p.
func NewScreen(p palette.Palette) *Screen {
	return &Screen{Palette: p}
}

// WriteLCDLine implements ppu.Display.
func (s *Screen) WriteLCDLine(line int, row *[ppu.ScreenWidth]ppu.Shade) {
	if line < 0 || line >= ppu.ScreenHeight {
		return
	}
	s.frame[line] = *row
	s.lines++
}

// Lines returns the number of lines written since the screen was
// created.
func (s *Screen) Lines() int {
	return s.lines
}

// Shade returns the shade of the pixel at x, y.
func (s *Screen) Shade(x, y int) ppu.Shade {
	return s.frame[y][x]
}

// Image renders the framebuffer, every pixel scaled to a square of
// scale pixels.
func (s *Screen) Image(scale int) *image.RGBA {
	src := image.NewRGBA(image.Rect(0, 0, ppu.ScreenWidth, ppu.ScreenHeight))
	for y := range s.frame {
		for x, shade := range s.frame[y] {
			src.SetRGBA(x, y, s.Palette.GetColour(uint8(shade)))
		}
	}
	if scale <= 1 {
		return src
	}

	dst := image.NewRGBA(image.Rect(0, 0, ppu.ScreenWidth*scale, ppu.ScreenHeight*scale))
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)
	return dst
}

// WritePNG encodes the scaled framebuffer as PNG.
func (s *Screen) WritePNG(w io.Writer, scale int) error {
	return png.Encode(w, s.Image(scale))
}
