package apu

import "github.com/thelolagemann/dmgcore/internal/types"

type channel struct {
	enabled    bool
	dacEnabled bool

	// NRx1
	lengthCounter uint
	lengthMax     uint

	// NRx3/NRx4
	frequency            uint16
	lengthCounterEnabled bool
}

func (c *channel) isEnabled() bool {
	return c.enabled && c.dacEnabled
}

func (c *channel) setLength(v types.Byte) {
	c.lengthCounter = c.lengthMax - uint(v)&(c.lengthMax-1)
}

func (c *channel) setNRx3(v types.Byte) {
	c.frequency = (c.frequency & 0x700) | uint16(v)
}

// setNRx4 updates the high frequency bits and the length enable, and
// returns true if the channel was triggered.
func (c *channel) setNRx4(v types.Byte) bool {
	c.frequency = (c.frequency & 0x00FF) | (uint16(v&0x07) << 8)
	c.lengthCounterEnabled = v&types.Bit6 != 0
	if v&types.Bit7 == 0 {
		return false
	}

	c.enabled = c.dacEnabled
	if c.lengthCounter == 0 {
		c.lengthCounter = c.lengthMax
	}
	return true
}

func (c *channel) lengthStep() {
	if c.lengthCounterEnabled && c.lengthCounter > 0 {
		c.lengthCounter--
		if c.lengthCounter == 0 {
			c.enabled = false
		}
	}
}

func (c *channel) load(s *types.State) {
	c.enabled = s.ReadBool()
	c.dacEnabled = s.ReadBool()
	c.lengthCounter = uint(s.Read16())
	c.frequency = uint16(s.Read16())
	c.lengthCounterEnabled = s.ReadBool()
}

func (c *channel) save(s *types.State) {
	s.WriteBool(c.enabled)
	s.WriteBool(c.dacEnabled)
	s.Write16(types.Word(c.lengthCounter))
	s.Write16(types.Word(c.frequency))
	s.WriteBool(c.lengthCounterEnabled)
}

type volumeChannel struct {
	channel

	// NRx2
	startingVolume  uint8
	envelopeAddMode bool
	period          uint8

	volumeEnvelopeTimer      uint8
	currentVolume            uint8
	volumeEnvelopeIsUpdating bool
}

func (v *volumeChannel) volumeStep() {
	if v.period == 0 || v.volumeEnvelopeTimer == 0 {
		return
	}
	v.volumeEnvelopeTimer--
	if v.volumeEnvelopeTimer != 0 {
		return
	}

	v.volumeEnvelopeTimer = v.period
	if v.currentVolume < 0xF && v.envelopeAddMode || v.currentVolume > 0 && !v.envelopeAddMode {
		if v.envelopeAddMode {
			v.currentVolume++
		} else {
			v.currentVolume--
		}
	} else {
		v.volumeEnvelopeIsUpdating = false
	}
}

func (v *volumeChannel) setNRx2(v2 types.Byte) {
	envelopeAddMode := v2&types.Bit3 != 0

	// zombie mode glitch (see https://gbdev.gg8.se/wiki/articles/Gameboy_sound_hardware#Zombie_Mode)
	if v.enabled {
		if v.period == 0 && v.volumeEnvelopeIsUpdating || !v.envelopeAddMode {
			v.currentVolume++
		}
		if envelopeAddMode != v.envelopeAddMode {
			v.currentVolume = 0x10 - v.currentVolume
		}
		v.currentVolume &= 0x0F
	}

	v.startingVolume = uint8(v2 >> 4)
	v.envelopeAddMode = envelopeAddMode
	v.period = uint8(v2 & 0x7)
	v.dacEnabled = v2&0xF8 != 0
	if !v.dacEnabled {
		v.enabled = false
	}
}

func (v *volumeChannel) initVolumeEnvelope() {
	v.volumeEnvelopeTimer = v.period
	v.currentVolume = v.startingVolume
	v.volumeEnvelopeIsUpdating = true
}

// volume returns the output level of the envelope, from 0 to 1.
func (v *volumeChannel) volume() float64 {
	return float64(v.currentVolume) / 15
}

func (v *volumeChannel) load(s *types.State) {
	v.channel.load(s)
	v.startingVolume = uint8(s.Read8())
	v.envelopeAddMode = s.ReadBool()
	v.period = uint8(s.Read8())
	v.volumeEnvelopeTimer = uint8(s.Read8())
	v.currentVolume = uint8(s.Read8())
	v.volumeEnvelopeIsUpdating = s.ReadBool()
}

func (v *volumeChannel) save(s *types.State) {
	v.channel.save(s)
	s.Write8(types.Byte(v.startingVolume))
	s.WriteBool(v.envelopeAddMode)
	s.Write8(types.Byte(v.period))
	s.Write8(types.Byte(v.volumeEnvelopeTimer))
	s.Write8(types.Byte(v.currentVolume))
	s.WriteBool(v.volumeEnvelopeIsUpdating)
}
