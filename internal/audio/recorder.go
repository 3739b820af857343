package audio

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

const (
	recordBitDepth = 16
	wavFormatPCM   = 1
)

// Recorder records the beeper track to a mono 16 bit WAV stream. Every call
// to SetBeeping appends one frame of samples.
type Recorder struct {
	encoder *wav.Encoder
	closer  io.Closer
	wave    squareWave
	samples []float32
	buf     *goaudio.IntBuffer
	frames  int
	err     error // first failed write, reported by Close
}

// NewRecorder returns a recorder that writes to w. The stream is finalized
// when the recorder is closed.
func NewRecorder(w io.WriteSeeker) *Recorder {
	return &Recorder{
		encoder: wav.NewEncoder(w, SampleRate, recordBitDepth, 1, wavFormatPCM),
		samples: make([]float32, SamplesPerFrame),
		buf: &goaudio.IntBuffer{
			Format: &goaudio.Format{
				NumChannels: 1,
				SampleRate:  SampleRate,
			},
			Data:           make([]int, SamplesPerFrame),
			SourceBitDepth: recordBitDepth,
		},
	}
}

// CreateRecorder creates the named file and returns a recorder writing to it.
func CreateRecorder(name string) (*Recorder, error) {
	f, err := os.Create(name)
	if err != nil {
		return nil, fmt.Errorf("creating file '%s': %w", name, err)
	}
	r := NewRecorder(f)
	r.closer = f
	return r, nil
}

// SetBeeping appends one frame of the tone or of silence. Recording stops at
// the first failed write.
func (r *Recorder) SetBeeping(on bool) {
	if r.err != nil {
		return
	}
	r.wave.fill(r.samples, on)
	for i, sample := range r.samples {
		r.buf.Data[i] = int(sample * math.MaxInt16)
	}

	if err := r.encoder.Write(r.buf); err != nil {
		r.err = fmt.Errorf("writing frame %d: %w", r.frames, err)
		return
	}
	r.frames++
}

// Frames returns the number of recorded frames.
func (r *Recorder) Frames() int {
	return r.frames
}

// Close writes the WAV header sizes and closes the underlying file if the
// recorder created it.
func (r *Recorder) Close() error {
	err := r.err
	if cerr := r.encoder.Close(); cerr != nil {
		err = errors.Join(err, fmt.Errorf("finalizing WAV stream: %w", cerr))
	}
	if r.closer != nil {
		if cerr := r.closer.Close(); cerr != nil {
			err = errors.Join(err, fmt.Errorf("closing WAV file: %w", cerr))
		}
	}
	return err
}
