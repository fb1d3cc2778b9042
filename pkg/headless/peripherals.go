package headless

import (
	"github.com/thelolagemann/dmgcore/internal/apu"
	"github.com/thelolagemann/dmgcore/internal/gameboy"
	"github.com/thelolagemann/dmgcore/internal/joypad"
	"github.com/thelolagemann/dmgcore/internal/ppu"
)

// Peripherals bundles the headless peripherals. Screen and Recorder
// may be nil.
type Peripherals struct {
	Screen   *Screen
	Recorder *Recorder
	Keys     Keys

	frame int
}

var _ gameboy.Peripherals = (*Peripherals)(nil)

// PressedKeys implements joypad.Input.
func (p *Peripherals) PressedKeys() joypad.Keys {
	return p.Keys.At(p.frame)
}

// WriteLCDLine implements ppu.Display.
func (p *Peripherals) WriteLCDLine(line int, row *[ppu.ScreenWidth]ppu.Shade) {
	if p.Screen != nil {
		p.Screen.WriteLCDLine(line, row)
	}
}

// PlayTone implements apu.Speaker.
func (p *Peripherals) PlayTone(tone apu.StereoTone, ch apu.Channel) {
	if p.Recorder != nil {
		p.Recorder.PlayTone(tone, ch)
	}
}

// EndFrame moves the schedule to the next frame, and renders the
// frame's audio.
func (p *Peripherals) EndFrame() {
	p.frame++
	if p.Recorder != nil {
		p.Recorder.EndFrame()
	}
}

// Frame returns the number of completed frames.
func (p *Peripherals) Frame() int {
	return p.frame
}
