// Package machine implements the CHIP-8 machine state and the interpreter
// that executes instructions on it.
package machine

import (
	"fmt"
	"slices"

	"github.com/retroenv/retrochip8/internal/display"
	"github.com/retroenv/retrochip8/internal/memory"
	"github.com/retroenv/retrogolib/log"
)

const (
	// NumRegisters is the number of general purpose registers V0-VF.
	NumRegisters = 16
	// NumKeys is the number of keys of the hex keypad.
	NumKeys = 16
	// FlagRegister is the index of VF, which is overwritten by carry, borrow
	// and collision results.
	FlagRegister = 0xF
	// DefaultStackDepth is the call stack depth limit used when none is set.
	DefaultStackDepth = 16
)

// Quirks select between historically divergent instruction behaviors.
type Quirks struct {
	// ShiftUsesVY copies Vy into Vx before shifting with 8xy6 and 8xyE.
	ShiftUsesVY bool
	// LoadStoreIncrementsI advances I past the transferred registers with
	// Fx55 and Fx65.
	LoadStoreIncrementsI bool
}

// Options configure a machine.
type Options struct {
	Random      RandomSource // defaults to a randomly seeded source
	Quirks      Quirks
	StackDepth  int  // call stack depth limit, defaults to DefaultStackDepth
	WrapSprites bool // wrap sprite pixels past the screen edges instead of clipping them

	Logger *log.Logger
	Trace  bool // log every executed instruction at debug level
}

// State is a copy of the registers of a machine.
type State struct {
	PC         uint16
	I          uint16
	V          [NumRegisters]byte
	Stack      []uint16
	DelayTimer byte
	SoundTimer byte
	Keys       [NumKeys]bool

	AwaitingKey bool
	Cycles      uint64
}

// keyWait holds the state of an Fx0A instruction that waits for a key press.
type keyWait struct {
	register uint8
	released [NumKeys]bool // keys that were released since the wait started
	pressed  [NumKeys]bool // keys pressed after a release, kept when released again
}

// Machine is a single CHIP-8 system. It is not safe for concurrent use, the
// host has to serialize calls to Step, TimerTick and SetKey.
type Machine struct {
	mem *memory.Memory
	fb  *display.Framebuffer

	v     [NumRegisters]byte
	i     uint16
	pc    uint16
	stack []uint16
	dt    byte
	st    byte
	keys  [NumKeys]bool
	wait  *keyWait

	cycles uint64
	opts   Options
	random RandomSource
	logger *log.Logger
}

// New returns a machine with the font loaded and all registers zeroed.
func New(opts Options) *Machine {
	if opts.StackDepth <= 0 {
		opts.StackDepth = DefaultStackDepth
	}
	random := opts.Random
	if random == nil {
		random = NewRandom()
	}

	return &Machine{
		mem:    memory.New(),
		fb:     &display.Framebuffer{},
		pc:     memory.ProgramStart,
		stack:  make([]uint16, 0, opts.StackDepth),
		opts:   opts,
		random: random,
		logger: opts.Logger,
	}
}

// Load copies the program into memory at the program start address.
func (m *Machine) Load(program []byte) error {
	if err := m.mem.Load(program); err != nil {
		return fmt.Errorf("loading program: %w", err)
	}
	return nil
}

// SetKey sets the pressed state of a key of the hex keypad.
func (m *Machine) SetKey(key uint8, pressed bool) error {
	if key >= NumKeys {
		return fmt.Errorf("%w: %d", ErrInvalidKey, key)
	}
	m.keys[key] = pressed
	if m.wait != nil {
		if pressed {
			m.wait.pressed[key] = m.wait.pressed[key] || m.wait.released[key]
		} else {
			m.wait.released[key] = true
		}
	}
	return nil
}

// Key returns whether the key is pressed.
func (m *Machine) Key(key uint8) bool {
	return m.keys[key&0x0F]
}

// AwaitingKey returns whether the machine is suspended in an Fx0A
// instruction until a key gets pressed.
func (m *Machine) AwaitingKey() bool {
	return m.wait != nil
}

// IsBeeping returns whether the sound timer is active.
func (m *Machine) IsBeeping() bool {
	return m.st != 0
}

// Pixel returns whether the pixel at x,y is set.
func (m *Machine) Pixel(x, y int) bool {
	return m.fb.Pixel(x, y)
}

// Framebuffer returns the framebuffer of the machine.
func (m *Machine) Framebuffer() *display.Framebuffer {
	return m.fb
}

// RedrawNeeded returns whether the framebuffer changed since the last
// ClearRedraw call.
func (m *Machine) RedrawNeeded() bool {
	return m.fb.RedrawNeeded()
}

// ClearRedraw resets the redraw flag after the host rendered a frame.
func (m *Machine) ClearRedraw() {
	m.fb.ClearRedraw()
}

// Memory returns the memory of the machine.
func (m *Machine) Memory() *memory.Memory {
	return m.mem
}

// PC returns the program counter.
func (m *Machine) PC() uint16 { return m.pc }

// I returns the index register.
func (m *Machine) I() uint16 { return m.i }

// V returns the value of register Vi.
func (m *Machine) V(i uint8) byte { return m.v[i&0x0F] }

// DelayTimer returns the delay timer.
func (m *Machine) DelayTimer() byte { return m.dt }

// SoundTimer returns the sound timer.
func (m *Machine) SoundTimer() byte { return m.st }

// StackDepth returns the number of return addresses on the call stack.
func (m *Machine) StackDepth() int { return len(m.stack) }

// Cycles returns the number of executed instructions.
func (m *Machine) Cycles() uint64 { return m.cycles }

// Snapshot returns a copy of the machine registers.
func (m *Machine) Snapshot() State {
	return State{
		PC:          m.pc,
		I:           m.i,
		V:           m.v,
		Stack:       slices.Clone(m.stack),
		DelayTimer:  m.dt,
		SoundTimer:  m.st,
		Keys:        m.keys,
		AwaitingKey: m.wait != nil,
		Cycles:      m.cycles,
	}
}
