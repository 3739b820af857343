// Package host drives a machine at a fixed clock rate and connects it to a
// frontend that provides input and displays the framebuffer.
package host

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/retroenv/retrochip8/internal/display"
	"github.com/retroenv/retrochip8/internal/machine"
	"github.com/retroenv/retrogolib/log"
)

const (
	// FrameRate is the rate of the timers and of the display refresh in Hz.
	FrameRate = 60
	// DefaultClock is the default number of instructions per second.
	DefaultClock = 700
)

// Keypad receives the key state changes of a frontend.
type Keypad interface {
	SetKey(key uint8, pressed bool) error
}

// Frontend connects the runner with an input device and a display.
type Frontend interface {
	// Poll applies pending input events to the keypad. It returns true if the
	// user requested to quit.
	Poll(keypad Keypad) (bool, error)
	// Present displays the framebuffer.
	Present(fb *display.Framebuffer) error
}

// Beeper is switched on while the sound timer of the machine is active.
type Beeper interface {
	SetBeeping(on bool)
}

// Options of the runner.
type Options struct {
	Clock      int  // instructions per second
	SkipFaults bool // log failing instructions and continue with the next one
}

// Runner executes the instructions and timer ticks of a machine frame by frame.
type Runner struct {
	logger  *log.Logger
	machine *machine.Machine
	beepers []Beeper

	stepsPerFrame int
	skipFaults    bool
	faults        int
	frames        uint64
}

// New returns a runner for the machine. All beepers follow the sound timer.
func New(logger *log.Logger, m *machine.Machine, opts Options, beepers ...Beeper) *Runner {
	clock := opts.Clock
	if clock <= 0 {
		clock = DefaultClock
	}

	return &Runner{
		logger:        logger,
		machine:       m,
		beepers:       beepers,
		stepsPerFrame: max(1, clock/FrameRate),
		skipFaults:    opts.SkipFaults,
	}
}

// StepsPerFrame returns the number of steps executed per frame.
func (r *Runner) StepsPerFrame() int {
	return r.stepsPerFrame
}

// Faults returns the number of skipped faulting instructions.
func (r *Runner) Faults() int {
	return r.faults
}

// Frames returns the number of executed frames.
func (r *Runner) Frames() uint64 {
	return r.frames
}

// Frame executes the steps of a single frame, then ticks the timers once and
// updates the beepers.
func (r *Runner) Frame() error {
	for range r.stepsPerFrame {
		if err := r.step(); err != nil {
			return err
		}
	}

	r.machine.TimerTick()
	beeping := r.machine.IsBeeping()
	for _, beeper := range r.beepers {
		beeper.SetBeeping(beeping)
	}
	r.frames++
	return nil
}

func (r *Runner) step() error {
	err := r.machine.Step()
	if err == nil {
		return nil
	}

	var execErr *machine.ExecError
	if !r.skipFaults || !errors.As(err, &execErr) {
		return fmt.Errorf("running machine: %w", err)
	}

	r.faults++
	r.logger.Warn("Skipping faulting instruction",
		log.Hex("pc", execErr.PC),
		log.Hex("opcode", execErr.Instruction.Word),
		log.Err(execErr.Err))
	return nil
}

// Update polls the frontend, runs a frame and presents the framebuffer if it
// changed. It returns true if the user requested to quit.
func (r *Runner) Update(frontend Frontend) (bool, error) {
	quit, err := frontend.Poll(r.machine)
	if err != nil {
		return false, fmt.Errorf("polling input: %w", err)
	}
	if quit {
		return true, nil
	}

	if err := r.Frame(); err != nil {
		return false, err
	}

	if r.machine.RedrawNeeded() {
		if err := frontend.Present(r.machine.Framebuffer()); err != nil {
			return false, fmt.Errorf("presenting frame: %w", err)
		}
		r.machine.ClearRedraw()
	}
	return false, nil
}

// Run updates the frontend at the frame rate until the user quits or the
// context is canceled.
func (r *Runner) Run(ctx context.Context, frontend Frontend) error {
	ticker := time.NewTicker(time.Second / FrameRate)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}

		quit, err := r.Update(frontend)
		if err != nil {
			return err
		}
		if quit {
			return nil
		}
	}
}

// RunFrames updates the frontend for the given number of frames without
// waiting for the frame rate.
func (r *Runner) RunFrames(ctx context.Context, frontend Frontend, frames int) error {
	for range frames {
		if err := ctx.Err(); err != nil {
			return err
		}

		quit, err := r.Update(frontend)
		if err != nil {
			return err
		}
		if quit {
			return nil
		}
	}
	return nil
}
