//go:build !headless

package audio

import (
	"encoding/binary"
	"fmt"
	"math"
	"sync"
	"sync/atomic"

	"github.com/ebitengine/oto/v3"
)

// Beeper plays the tone on the audio device while it is switched on.
type Beeper struct {
	ctx    *oto.Context
	player *oto.Player
	on     atomic.Bool

	mu      sync.Mutex // guards wave and samples, used by the player goroutine
	wave    squareWave
	samples []float32
}

// NewBeeper opens the audio device and starts a silent player.
func NewBeeper() (*Beeper, error) {
	op := &oto.NewContextOptions{
		SampleRate:   SampleRate,
		ChannelCount: 1,
		Format:       oto.FormatFloat32LE,
	}

	ctx, ready, err := oto.NewContext(op)
	if err != nil {
		return nil, fmt.Errorf("creating audio context: %w", err)
	}
	<-ready

	b := &Beeper{
		ctx:     ctx,
		samples: make([]float32, SamplesPerFrame),
	}
	b.player = ctx.NewPlayer(b)
	b.player.Play()
	return b, nil
}

// SetBeeping switches the tone on or off.
func (b *Beeper) SetBeeping(on bool) {
	b.on.Store(on)
}

// Read implements io.Reader and is called by the player to fetch samples.
func (b *Beeper) Read(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	count := len(p) / 4
	if len(b.samples) < count {
		b.samples = make([]float32, count)
	}
	samples := b.samples[:count]
	b.wave.fill(samples, b.on.Load())

	for i, sample := range samples {
		binary.LittleEndian.PutUint32(p[i*4:], math.Float32bits(sample))
	}
	return count * 4, nil
}

// Close stops the player.
func (b *Beeper) Close() error {
	if err := b.player.Close(); err != nil {
		return fmt.Errorf("closing audio player: %w", err)
	}
	return nil
}
