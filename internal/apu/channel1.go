package apu

import "github.com/thelolagemann/dmgcore/internal/types"

// duties are the fractions of the period a square wave spends high,
// selected by NRx1 bits 6-7.
var duties = [4]float64{0.125, 0.25, 0.5, 0.75}

// pulse is a square channel, as used by channel 2 and, with a
// frequency sweep, by channel 1.
type pulse struct {
	volumeChannel

	// NRx1
	duty uint8
}

func newPulse() *pulse {
	return &pulse{volumeChannel: volumeChannel{channel: channel{lengthMax: 64}}}
}

func (p *pulse) setNRx1(v types.Byte) {
	p.duty = uint8(v >> 6)
	p.setLength(v)
}

func (p *pulse) trigger(v types.Byte) bool {
	if !p.setNRx4(v) {
		return false
	}
	p.initVolumeEnvelope()
	return true
}

// hertz returns the frequency of the square wave.
func (p *pulse) hertz() float64 {
	return 131072 / float64(2048-uint32(p.frequency))
}

func (p *pulse) load(s *types.State) {
	p.volumeChannel.load(s)
	p.duty = uint8(s.Read8())
}

func (p *pulse) save(s *types.State) {
	p.volumeChannel.save(s)
	s.Write8(types.Byte(p.duty))
}

type channel1 struct {
	*pulse

	// NR10
	sweepPeriod       uint8
	negate            bool
	shift             uint8
	sweepTimer        uint8
	frequencyShadow   uint16
	sweepEnabled      bool
	negateHasHappened bool
}

func newChannel1() *channel1 {
	return &channel1{pulse: newPulse()}
}

func (c *channel1) setNR10(v types.Byte) {
	c.sweepPeriod = uint8(v&0x70) >> 4
	c.negate = v&types.Bit3 != 0
	c.shift = uint8(v & 0x7)
	if !c.negate && c.negateHasHappened {
		c.enabled = false
	}
}

func (c *channel1) trigger(v types.Byte) {
	if !c.pulse.trigger(v) {
		return
	}

	c.frequencyShadow = c.frequency
	if c.sweepPeriod > 0 {
		c.sweepTimer = c.sweepPeriod
	} else {
		c.sweepTimer = 8
	}
	c.sweepEnabled = c.sweepPeriod > 0 || c.shift > 0
	c.negateHasHappened = false
	if c.shift > 0 {
		c.frequencyCalculation()
	}
}

func (c *channel1) sweepClock() {
	if c.sweepTimer > 0 {
		c.sweepTimer--
	}
	if c.sweepTimer != 0 {
		return
	}

	if c.sweepPeriod > 0 {
		c.sweepTimer = c.sweepPeriod
	} else {
		c.sweepTimer = 8
	}
	if c.sweepEnabled && c.sweepPeriod > 0 {
		calculated := c.frequencyCalculation()
		if calculated <= 0x07FF && c.shift > 0 {
			c.frequencyShadow = calculated
			c.frequency = calculated
			c.frequencyCalculation()
		}
	}
}

// frequencyCalculation computes the next sweep frequency, disabling
// the channel when it overflows 11 bits.
func (c *channel1) frequencyCalculation() uint16 {
	calculated := c.frequencyShadow >> c.shift
	if c.negate {
		calculated = c.frequencyShadow - calculated
	} else {
		calculated += c.frequencyShadow
	}
	if calculated > 0x07FF {
		c.enabled = false
	}
	c.negateHasHappened = c.negate
	return calculated
}

func (c *channel1) load(s *types.State) {
	c.pulse.load(s)
	c.sweepPeriod = uint8(s.Read8())
	c.negate = s.ReadBool()
	c.shift = uint8(s.Read8())
	c.sweepTimer = uint8(s.Read8())
	c.frequencyShadow = uint16(s.Read16())
	c.sweepEnabled = s.ReadBool()
	c.negateHasHappened = s.ReadBool()
}

func (c *channel1) save(s *types.State) {
	c.pulse.save(s)
	s.Write8(types.Byte(c.sweepPeriod))
	s.WriteBool(c.negate)
	s.Write8(types.Byte(c.shift))
	s.Write8(types.Byte(c.sweepTimer))
	s.Write16(types.Word(c.frequencyShadow))
	s.WriteBool(c.sweepEnabled)
	s.WriteBool(c.negateHasHappened)
}
