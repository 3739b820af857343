// Package audio generates the tone of the CHIP-8 beeper, plays it on the
// audio device and records it to WAV files.
package audio

const (
	// SampleRate is the sample rate of the generated tone in Hz.
	SampleRate = 44100
	// Frequency is the pitch of the beep in Hz.
	Frequency = 440
	// FrameRate is the rate at which the host reports the beeper state.
	FrameRate = 60

	// SamplesPerFrame is the number of samples that cover a single frame.
	SamplesPerFrame = SampleRate / FrameRate

	amplitude = 0.25
)

// squareWave is a square wave oscillator. The phase is kept between calls so
// that consecutive buffers join without clicks.
type squareWave struct {
	phase int // position inside of the current period in samples
}

const period = SampleRate / Frequency

// next returns the next sample in the range -1 to 1.
func (w *squareWave) next() float32 {
	sample := float32(amplitude)
	if w.phase >= period/2 {
		sample = -amplitude
	}
	w.phase++
	if w.phase >= period {
		w.phase = 0
	}
	return sample
}

// fill writes len(samples) samples of the tone, or silence if on is not set.
func (w *squareWave) fill(samples []float32, on bool) {
	if !on {
		clear(samples)
		w.phase = 0
		return
	}
	for i := range samples {
		samples[i] = w.next()
	}
}
