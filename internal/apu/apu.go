// Package apu implements the sound controller of the Game Boy. It
// does not synthesise samples itself: whenever the audible state of a
// channel changes, the new tone is reported to a Speaker.
package apu

import (
	"github.com/thelolagemann/dmgcore/internal/types"
)

// frameSequencerPeriod is the number of machine cycles between two
// steps of the 512 Hz frame sequencer.
const frameSequencerPeriod = 1048576 / 512

// Channel identifies one of the four sound channels.
type Channel uint8

const (
	// Channel1 is the square channel with a frequency sweep.
	Channel1 Channel = iota
	// Channel2 is the square channel.
	Channel2
	// Channel3 is the wave channel.
	Channel3
	// Channel4 is the noise channel.
	Channel4
)

func (c Channel) String() string {
	return [...]string{"square 1", "square 2", "wave", "noise"}[c&3]
}

// Waveform is the shape of a tone.
type Waveform uint8

const (
	WaveformSquare Waveform = iota
	WaveformTable
	WaveformNoise
)

// Tone is the sound played on one side of the stereo output.
// Volume ranges from 0 to 1, a silent tone is the zero value.
type Tone struct {
	Frequency float64
	Volume    float64
}

// StereoTone is the state of a channel as heard on the left and right
// outputs.
type StereoTone struct {
	Left, Right Tone

	Waveform Waveform
	// Duty is the high fraction of a square wave.
	Duty float64
	// Samples is the waveform of the wave channel.
	Samples [32]uint8
	// ShortNoise selects the 7-bit shift register of the noise
	// channel.
	ShortNoise bool
}

// Silent returns true if the tone can't be heard on either side.
func (t StereoTone) Silent() bool {
	return t.Left.Volume == 0 && t.Right.Volume == 0
}

// Generator returns a generator for the waveform of the tone.
func (t StereoTone) Generator() WaveGenerator {
	switch t.Waveform {
	case WaveformTable:
		return Table(t.Samples)
	case WaveformNoise:
		return Noise(t.ShortNoise)
	}
	return Square(t.Duty)
}

// Speaker receives the tones of the sound channels.
type Speaker interface {
	PlayTone(tone StereoTone, ch Channel)
}

// readMasks are ORed into the value read from each register
// (0xFF10 - 0xFF3F); unused and write-only bits read 1.
var readMasks = [0x30]types.Byte{
	0x80, 0x3F, 0x00, 0xFF, 0xBF, // NR10 - NR14
	0xFF, 0x3F, 0x00, 0xFF, 0xBF, // NR20 - NR24
	0x7F, 0xFF, 0x9F, 0xFF, 0xBF, // NR30 - NR34
	0xFF, 0xFF, 0x00, 0x00, 0xBF, // NR40 - NR44
	0x00, 0x00, 0x70, // NR50 - NR52
	0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, // unused
	// wave RAM is fully readable
}

// APU represents the Game Boy's audio processing unit. It comprises 4
// channels: 2 pulse channels, a wave channel and a noise channel. Each
// channel is controlled by a set of registers.
type APU struct {
	enabled bool

	registers [0x30]types.Byte

	chan1 *channel1
	chan2 *pulse
	chan3 *channel3
	chan4 *channel4

	frameSequencerCounter uint16
	frameSequencerStep    uint8

	volumeLeft, volumeRight uint8
	leftEnable, rightEnable [4]bool

	tones [4]StereoTone
	dirty bool
}

// NewAPU returns a new APU attached to the sound registers
// (0xFF10 - 0xFF3F).
func NewAPU(h *types.HardwareRegisters) *APU {
	a := &APU{}
	a.reset()

	for address := types.NR10; address <= types.NR10+0x2F; address++ {
		address := address
		h.RegisterHardware(
			address,
			func(v types.Byte) {
				a.write(address, v)
			}, func() types.Byte {
				return a.read(address)
			},
		)
	}
	return a
}

func (a *APU) reset() {
	a.chan1 = newChannel1()
	a.chan2 = newPulse()
	a.chan3 = newChannel3()
	a.chan4 = newChannel4()
	a.volumeLeft, a.volumeRight = 0, 0
	a.leftEnable = [4]bool{}
	a.rightEnable = [4]bool{}
}

// Enabled returns true while the sound controller is powered on.
func (a *APU) Enabled() bool {
	return a.enabled
}

func (a *APU) read(address types.Word) types.Byte {
	if address == types.NR52 {
		b := types.Byte(0x70)
		if a.enabled {
			b |= types.Bit7
		}
		if a.chan1.isEnabled() {
			b |= types.Bit0
		}
		if a.chan2.isEnabled() {
			b |= types.Bit1
		}
		if a.chan3.isEnabled() {
			b |= types.Bit2
		}
		if a.chan4.isEnabled() {
			b |= types.Bit3
		}
		return b
	}
	if !a.enabled {
		return 0xFF
	}

	i := address - types.NR10
	return a.registers[i] | readMasks[i]
}

func (a *APU) write(address types.Word, v types.Byte) {
	if address == types.NR52 {
		a.power(v&types.Bit7 != 0)
		return
	}
	if !a.enabled {
		return
	}
	a.registers[address-types.NR10] = v
	a.dirty = true

	switch address {
	case types.NR10:
		a.chan1.setNR10(v)
	case types.NR11:
		a.chan1.setNRx1(v)
	case types.NR12:
		a.chan1.setNRx2(v)
	case types.NR13:
		a.chan1.setNRx3(v)
	case types.NR14:
		a.chan1.trigger(v)
	case types.NR21:
		a.chan2.setNRx1(v)
	case types.NR22:
		a.chan2.setNRx2(v)
	case types.NR23:
		a.chan2.setNRx3(v)
	case types.NR24:
		a.chan2.trigger(v)
	case types.NR30:
		a.chan3.setNR30(v)
	case types.NR31:
		a.chan3.setLength(v)
	case types.NR32:
		a.chan3.setNR32(v)
	case types.NR33:
		a.chan3.setNRx3(v)
	case types.NR34:
		a.chan3.setNRx4(v)
	case types.NR41:
		a.chan4.setLength(v)
	case types.NR42:
		a.chan4.setNRx2(v)
	case types.NR43:
		a.chan4.setNR43(v)
	case types.NR44:
		a.chan4.trigger(v)
	case types.NR50:
		a.volumeRight = uint8(v & 0x7)
		a.volumeLeft = uint8(v>>4) & 0x7
	case types.NR51:
		for i := 0; i < 4; i++ {
			a.rightEnable[i] = v&(1<<i) != 0
			a.leftEnable[i] = v&(1<<(i+4)) != 0
		}
	}
}

func (a *APU) power(on bool) {
	switch {
	case !on && a.enabled:
		// power off clears every register but the wave RAM
		for i := range a.registers[:0x20] {
			a.registers[i] = 0
		}
		a.reset()
		a.enabled = false
		a.dirty = true
	case on && !a.enabled:
		a.enabled = true
		a.frameSequencerStep = 0
		a.frameSequencerCounter = 0
	}
}

// Step advances the APU by a single machine cycle, and reports the
// channels whose tone changed to the speaker.
func (a *APU) Step(speaker Speaker) {
	if a.enabled {
		if a.frameSequencerCounter++; a.frameSequencerCounter == frameSequencerPeriod {
			a.frameSequencerCounter = 0
			a.stepFrameSequencer()
		}
	}

	if !a.dirty {
		return
	}
	a.dirty = false
	for ch := Channel1; ch <= Channel4; ch++ {
		if t := a.tone(ch); t != a.tones[ch] {
			a.tones[ch] = t
			if speaker != nil {
				speaker.PlayTone(t, ch)
			}
		}
	}
}

func (a *APU) stepFrameSequencer() {
	switch a.frameSequencerStep {
	case 0, 4:
		a.lengthStep()
	case 2, 6:
		a.lengthStep()
		a.chan1.sweepClock()
	case 7:
		a.chan1.volumeStep()
		a.chan2.volumeStep()
		a.chan4.volumeStep()
	}
	a.frameSequencerStep = (a.frameSequencerStep + 1) & 7
	a.dirty = true
}

func (a *APU) lengthStep() {
	a.chan1.lengthStep()
	a.chan2.lengthStep()
	a.chan3.lengthStep()
	a.chan4.lengthStep()
}

// Tone returns the current tone of a channel.
func (a *APU) Tone(ch Channel) StereoTone {
	return a.tones[ch]
}

// tone computes the audible state of a channel.
func (a *APU) tone(ch Channel) StereoTone {
	var t StereoTone
	var volume, frequency float64

	switch ch {
	case Channel1:
		if !a.chan1.isEnabled() {
			return t
		}
		t.Duty = duties[a.chan1.duty]
		frequency, volume = a.chan1.hertz(), a.chan1.volume()
	case Channel2:
		if !a.chan2.isEnabled() {
			return t
		}
		t.Duty = duties[a.chan2.duty]
		frequency, volume = a.chan2.hertz(), a.chan2.volume()
	case Channel3:
		if !a.chan3.isEnabled() {
			return t
		}
		t.Waveform = WaveformTable
		t.Samples = samples(a.registers[0x20:])
		frequency, volume = a.chan3.hertz(), a.chan3.volume()
	case Channel4:
		if !a.chan4.isEnabled() {
			return t
		}
		t.Waveform = WaveformNoise
		t.ShortNoise = a.chan4.widthMode
		frequency, volume = a.chan4.hertz(), a.chan4.volume()
	}

	if volume == 0 {
		return StereoTone{}
	}
	if a.leftEnable[ch] {
		t.Left = Tone{Frequency: frequency, Volume: volume * float64(a.volumeLeft+1) / 8}
	}
	if a.rightEnable[ch] {
		t.Right = Tone{Frequency: frequency, Volume: volume * float64(a.volumeRight+1) / 8}
	}
	if t.Silent() {
		return StereoTone{}
	}
	return t
}

var _ types.Stater = (*APU)(nil)

func (a *APU) Load(s *types.State) {
	a.enabled = s.ReadBool()
	for i := range a.registers {
		a.registers[i] = s.Read8()
	}
	a.chan1.load(s)
	a.chan2.load(s)
	a.chan3.load(s)
	a.chan4.load(s)
	a.frameSequencerCounter = uint16(s.Read16())
	a.frameSequencerStep = uint8(s.Read8())

	// NR50 and NR51 are fully described by their registers
	nr50, nr51 := a.registers[types.NR50-types.NR10], a.registers[types.NR51-types.NR10]
	a.volumeRight, a.volumeLeft = uint8(nr50&0x7), uint8(nr50>>4)&0x7
	for i := 0; i < 4; i++ {
		a.rightEnable[i] = nr51&(1<<i) != 0
		a.leftEnable[i] = nr51&(1<<(i+4)) != 0
	}
	a.dirty = true
}

func (a *APU) Save(s *types.State) {
	s.WriteBool(a.enabled)
	for _, b := range a.registers {
		s.Write8(b)
	}
	a.chan1.save(s)
	a.chan2.save(s)
	a.chan3.save(s)
	a.chan4.save(s)
	s.Write16(types.Word(a.frameSequencerCounter))
	s.Write8(types.Byte(a.frameSequencerStep))
}
