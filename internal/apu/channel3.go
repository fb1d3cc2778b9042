package apu

import "github.com/thelolagemann/dmgcore/internal/types"

// waveVolumes are the output levels selected by NR32 bits 5-6.
var waveVolumes = [4]float64{0, 1, 0.5, 0.25}

// channel3 plays the 32 4-bit samples held in the wave RAM
// (0xFF30 - 0xFF3F).
type channel3 struct {
	channel

	// NR32
	volumeCode uint8
}

func newChannel3() *channel3 {
	return &channel3{channel: channel{lengthMax: 256}}
}

func (c *channel3) setNR30(v types.Byte) {
	c.dacEnabled = v&types.Bit7 != 0
	if !c.dacEnabled {
		c.enabled = false
	}
}

func (c *channel3) setNR32(v types.Byte) {
	c.volumeCode = uint8(v&0x60) >> 5
}

// hertz returns the frequency at which the whole waveform repeats.
func (c *channel3) hertz() float64 {
	return 65536 / float64(2048-uint32(c.frequency))
}

func (c *channel3) volume() float64 {
	return waveVolumes[c.volumeCode]
}

// samples unpacks the wave RAM, high nibble first.
func samples(waveRAM []types.Byte) [32]uint8 {
	var s [32]uint8
	for i, b := range waveRAM[:16] {
		s[i*2] = uint8(b >> 4)
		s[i*2+1] = uint8(b & 0x0F)
	}
	return s
}

func (c *channel3) load(s *types.State) {
	c.channel.load(s)
	c.volumeCode = uint8(s.Read8())
}

func (c *channel3) save(s *types.State) {
	c.channel.save(s)
	s.Write8(types.Byte(c.volumeCode))
}
