package apu

import "math"

// WaveGenerator returns the amplitude, from -1 to 1, of a waveform at
// the given phase, measured in periods.
type WaveGenerator func(phase float64) float64

// Square is a square wave generator, high for the given fraction of
// each period.
func Square(duty float64) WaveGenerator {
	return func(phase float64) float64 {
		if _, frac := math.Modf(phase); frac < duty {
			return 1
		}
		return -1
	}
}

// Table is a generator for the 4-bit samples of the wave channel.
func Table(samples [32]uint8) WaveGenerator {
	return func(phase float64) float64 {
		_, frac := math.Modf(phase)
		return float64(samples[int(frac*32)&31])/7.5 - 1
	}
}

// Noise is a generator for the noise channel. Each period clocks a
// 15-bit linear feedback shift register, or a 7-bit one when short is
// set.
func Noise(short bool) WaveGenerator {
	lfsr := uint16(0x7FFF)
	var clocked int64
	return func(phase float64) float64 {
		for n := int64(phase); clocked < n; clocked++ {
			bit := (lfsr ^ lfsr>>1) & 1
			lfsr = lfsr>>1 | bit<<14
			if short {
				lfsr = lfsr&^(1<<6) | bit<<6
			}
		}
		if lfsr&1 == 0 {
			return 1
		}
		return -1
	}
}
