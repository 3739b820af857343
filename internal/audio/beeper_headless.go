//go:build headless

package audio

// Beeper is a silent beeper for builds without audio device support.
type Beeper struct {
	on bool
}

// NewBeeper returns a beeper that produces no sound.
func NewBeeper() (*Beeper, error) {
	return &Beeper{}, nil
}

// SetBeeping stores the beeper state.
func (b *Beeper) SetBeeping(on bool) {
	b.on = on
}

// Close does nothing.
func (b *Beeper) Close() error {
	return nil
}
