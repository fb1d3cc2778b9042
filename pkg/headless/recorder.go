package headless

import (
	"fmt"
	"io"
	"os"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/thelolagemann/dmgcore/internal/apu"
	"github.com/thelolagemann/dmgcore/internal/gameboy"
	"github.com/thelolagemann/dmgcore/pkg/utils"
)

// SampleRate is the sample rate of recordings.
const SampleRate = 44100

// samplesPerFrame is the number of stereo samples a frame lasts.
const samplesPerFrame = float64(SampleRate) * gameboy.CyclesPerFrame / gameboy.ClockSpeed

// voice is the synthesis state of a single channel.
type voice struct {
	tone  apu.StereoTone
	gen   apu.WaveGenerator
	phase float64
}

// Recorder implements apu.Speaker by synthesising the reported tones
// into 16-bit stereo PCM. Tones take effect at the end of the frame
// they were reported in.
type Recorder struct {
	voices [4]voice
	// pending fraction of a sample
	carry float64

	samples []int
}

// NewRecorder returns an empty recording.
func NewRecorder() *Recorder {
	return &Recorder{}
}

// PlayTone implements apu.Speaker.
func (r *Recorder) PlayTone(tone apu.StereoTone, ch apu.Channel) {
	v := &r.voices[ch&3]
	if v.gen == nil || v.tone.Waveform != tone.Waveform || v.tone.Duty != tone.Duty ||
		v.tone.Samples != tone.Samples || v.tone.ShortNoise != tone.ShortNoise {
		v.gen = tone.Generator()
		v.phase = 0
	}
	v.tone = tone
}

// EndFrame renders one frame of the current tones.
func (r *Recorder) EndFrame() {
	n := samplesPerFrame + r.carry
	count := int(n)
	r.carry = n - float64(count)

	for i := 0; i < count; i++ {
		var left, right float64
		for c := range r.voices {
			v := &r.voices[c]
			if v.gen == nil || v.tone.Silent() {
				continue
			}
			freq := v.tone.Left.Frequency
			if v.tone.Left.Volume == 0 {
				freq = v.tone.Right.Frequency
			}
			amp := v.gen(v.phase)
			left += amp * v.tone.Left.Volume / 4
			right += amp * v.tone.Right.Volume / 4
			v.phase += freq / SampleRate
		}
		r.samples = append(r.samples, pcm(left), pcm(right))
	}
}

func pcm(v float64) int {
	return utils.Clamp(-32768, int(v*32767), 32767)
}

// Samples returns the interleaved left and right samples recorded
// so far.
func (r *Recorder) Samples() []int {
	return r.samples
}

// WriteWAV encodes the recording as a 16-bit stereo WAV.
func (r *Recorder) WriteWAV(w io.WriteSeeker) error {
	enc := wav.NewEncoder(w, SampleRate, 16, 2, 1)
	buf := &audio.IntBuffer{
		Format:         &audio.Format{NumChannels: 2, SampleRate: SampleRate},
		Data:           r.samples,
		SourceBitDepth: 16,
	}
	if err := enc.Write(buf); err != nil {
		return fmt.Errorf("headless: encoding wav: %w", err)
	}
	return enc.Close()
}

// Save writes the recording to filename.
func (r *Recorder) Save(filename string) (rerr error) {
	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer func() {
		if err := f.Close(); err != nil && rerr == nil {
			rerr = err
		}
	}()
	return r.WriteWAV(f)
}
