package host

import (
	"context"
	"errors"
	"testing"

	"github.com/retroenv/retrochip8/internal/display"
	"github.com/retroenv/retrochip8/internal/machine"
	"github.com/retroenv/retrogolib/assert"
	"github.com/retroenv/retrogolib/log"
)

type fakeFrontend struct {
	polls     int
	presented int
	quitAfter int
	press     map[int]uint8 // key pressed before the given poll
}

func (f *fakeFrontend) Poll(keypad Keypad) (bool, error) {
	f.polls++
	if f.quitAfter > 0 && f.polls > f.quitAfter {
		return true, nil
	}
	if key, ok := f.press[f.polls]; ok {
		if err := keypad.SetKey(key, true); err != nil {
			return false, err
		}
	}
	return false, nil
}

func (f *fakeFrontend) Present(*display.Framebuffer) error {
	f.presented++
	return nil
}

type fakeBeeper struct {
	states []bool
}

func (b *fakeBeeper) SetBeeping(on bool) {
	b.states = append(b.states, on)
}

func newMachine(t *testing.T, program ...byte) *machine.Machine {
	t.Helper()
	m := machine.New(machine.Options{})
	assert.NoError(t, m.Load(program))
	return m
}

func TestRunner_StepsPerFrame(t *testing.T) {
	logger := log.NewTestLogger(t)
	m := newMachine(t)

	assert.Equal(t, 11, New(logger, m, Options{}).StepsPerFrame())
	assert.Equal(t, 1, New(logger, m, Options{Clock: 30}).StepsPerFrame())
	assert.Equal(t, 1000, New(logger, m, Options{Clock: 60000}).StepsPerFrame())
}

func TestRunner_Frame(t *testing.T) {
	// ld V0, 3; ld ST, V0; jp 204
	m := newMachine(t, 0x60, 0x03, 0xF0, 0x18, 0x12, 0x04)
	beeper := &fakeBeeper{}
	r := New(log.NewTestLogger(t), m, Options{Clock: 600}, beeper)

	for range 4 {
		assert.NoError(t, r.Frame())
	}

	assert.Equal(t, uint64(40), m.Cycles())
	assert.Equal(t, uint64(4), r.Frames())
	assert.Equal(t, []bool{true, true, false, false}, beeper.states)
}

func TestRunner_Faults(t *testing.T) {
	// sys 123; ld V0, 1; jp 204
	program := []byte{0x01, 0x23, 0x60, 0x01, 0x12, 0x04}

	m := newMachine(t, program...)
	r := New(log.NewTestLogger(t), m, Options{Clock: 60})
	err := r.Frame()
	assert.True(t, errors.Is(err, machine.ErrUnsupportedLegacyOp))

	m = newMachine(t, program...)
	r = New(log.NewTestLogger(t), m, Options{Clock: 180, SkipFaults: true})
	assert.NoError(t, r.Frame())
	assert.Equal(t, 1, r.Faults())
	assert.Equal(t, byte(1), m.V(0))
}

func TestRunner_UpdatePresentsChanges(t *testing.T) {
	// cls; jp 202
	m := newMachine(t, 0x00, 0xE0, 0x12, 0x02)
	r := New(log.NewTestLogger(t), m, Options{})
	frontend := &fakeFrontend{}

	assert.NoError(t, r.RunFrames(context.Background(), frontend, 3))
	assert.Equal(t, 3, frontend.polls)
	assert.Equal(t, 1, frontend.presented)
	assert.False(t, m.RedrawNeeded())
}

func TestRunner_Quit(t *testing.T) {
	m := newMachine(t, 0x12, 0x00)
	r := New(log.NewTestLogger(t), m, Options{})
	frontend := &fakeFrontend{quitAfter: 2}

	assert.NoError(t, r.RunFrames(context.Background(), frontend, 10))
	assert.Equal(t, uint64(2), r.Frames())
}

func TestRunner_KeyWait(t *testing.T) {
	// ld V1, K; jp 202
	m := newMachine(t, 0xF1, 0x0A, 0x12, 0x02)
	r := New(log.NewTestLogger(t), m, Options{})
	frontend := &fakeFrontend{press: map[int]uint8{3: 0xB}}

	assert.NoError(t, r.RunFrames(context.Background(), frontend, 2))
	assert.True(t, m.AwaitingKey())

	assert.NoError(t, r.RunFrames(context.Background(), frontend, 1))
	assert.False(t, m.AwaitingKey())
	assert.Equal(t, byte(0xB), m.V(1))
}

func TestRunner_Canceled(t *testing.T) {
	m := newMachine(t, 0x12, 0x00)
	r := New(log.NewTestLogger(t), m, Options{})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := r.Run(ctx, &fakeFrontend{})
	assert.True(t, errors.Is(err, context.Canceled))
	err = r.RunFrames(ctx, &fakeFrontend{}, 1)
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestKeyForRune(t *testing.T) {
	key, ok := KeyForRune('V')
	assert.True(t, ok)
	assert.Equal(t, uint8(0xF), key)

	key, ok = KeyForRune('x')
	assert.True(t, ok)
	assert.Equal(t, uint8(0x0), key)

	_, ok = KeyForRune('p')
	assert.False(t, ok)
}
