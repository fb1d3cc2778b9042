package apu

import "github.com/thelolagemann/dmgcore/internal/types"

// channel4 is the noise channel, clocking a linear feedback shift
// register.
type channel4 struct {
	volumeChannel

	// NR43
	clockShift  uint8
	widthMode   bool
	divisorCode uint8
}

func newChannel4() *channel4 {
	return &channel4{volumeChannel: volumeChannel{channel: channel{lengthMax: 64}}}
}

func (c *channel4) setNR43(v types.Byte) {
	c.clockShift = uint8(v >> 4)
	c.widthMode = v&types.Bit3 != 0
	c.divisorCode = uint8(v & 0x7)
}

func (c *channel4) trigger(v types.Byte) {
	if c.setNRx4(v) {
		c.initVolumeEnvelope()
	}
}

// hertz returns the rate at which the shift register is clocked.
func (c *channel4) hertz() float64 {
	divisor := uint32(8)
	if c.divisorCode > 0 {
		divisor = uint32(c.divisorCode) * 16
	}
	return 4194304 / float64(divisor<<c.clockShift)
}

func (c *channel4) load(s *types.State) {
	c.volumeChannel.load(s)
	c.clockShift = uint8(s.Read8())
	c.widthMode = s.ReadBool()
	c.divisorCode = uint8(s.Read8())
}

func (c *channel4) save(s *types.State) {
	c.volumeChannel.save(s)
	s.Write8(types.Byte(c.clockShift))
	s.WriteBool(c.widthMode)
	s.Write8(types.Byte(c.divisorCode))
}
