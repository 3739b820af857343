// Package pipeline orchestrates the interpreter workflow stages.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/retroenv/retrochip8/internal/app"
	"github.com/retroenv/retrochip8/internal/audio"
	"github.com/retroenv/retrochip8/internal/config"
	"github.com/retroenv/retrochip8/internal/detector"
	"github.com/retroenv/retrochip8/internal/disasm"
	"github.com/retroenv/retrochip8/internal/host"
	"github.com/retroenv/retrochip8/internal/host/headless"
	"github.com/retroenv/retrochip8/internal/host/terminal"
	"github.com/retroenv/retrochip8/internal/host/window"
	"github.com/retroenv/retrochip8/internal/loader"
	"github.com/retroenv/retrochip8/internal/machine"
	"github.com/retroenv/retrochip8/internal/options"
	"github.com/retroenv/retrochip8/internal/verification"
	"github.com/retroenv/retrogolib/log"
)

// Pipeline orchestrates loading, running or disassembling and verifying a ROM.
type Pipeline struct {
	logger   *log.Logger
	detector *detector.Detector
	loader   *loader.Loader
}

// New creates a new interpreter pipeline.
func New(logger *log.Logger) *Pipeline {
	return &Pipeline{
		logger:   logger,
		detector: detector.New(logger),
		loader:   loader.New(),
	}
}

// Execute loads the ROM and either writes its disassembly listing to the
// writer or runs it with the selected frontend. The headless frontend writes
// the final frame to the writer.
func (p *Pipeline) Execute(ctx context.Context, opts options.Program, writer io.Writer) error {
	program, err := p.loader.Load(opts.Input)
	if err != nil {
		return fmt.Errorf("loading ROM: %w", err)
	}

	if opts.Disasm {
		app.PrintInfo(p.logger, opts, "", len(program))
		return p.Disassemble(program, opts, writer)
	}

	frontend := p.detector.Detect(opts)
	app.PrintInfo(p.logger, opts, frontend, len(program))
	return p.ExecuteWithProgram(ctx, program, opts, frontend, writer)
}

// Disassemble writes the listing of the program to the writer.
func (p *Pipeline) Disassemble(program []byte, opts options.Program, writer io.Writer) error {
	dis := disasm.New(program)
	disasmOpts := disasm.Options{
		HexComments:    !opts.NoHexComments,
		OffsetComments: !opts.NoOffsets,
	}
	if err := dis.Process(writer, disasmOpts); err != nil {
		return fmt.Errorf("disassembling: %w", err)
	}
	return nil
}

// ExecuteWithProgram runs an already loaded program with the given frontend.
// This is useful for testing and programmatic usage where the ROM is already in memory.
func (p *Pipeline) ExecuteWithProgram(ctx context.Context, program []byte, opts options.Program,
	frontend string, writer io.Writer) error {

	m := machine.New(config.MachineOptions(p.logger, opts))
	if err := m.Load(program); err != nil {
		return err
	}

	beepers, closers, err := p.createBeepers(opts, frontend)
	defer closeAll(p.logger, closers)
	if err != nil {
		return err
	}

	runner := host.New(p.logger, m, host.Options{
		Clock:      opts.Clock,
		SkipFaults: opts.SkipFaults,
	}, beepers...)

	if err := p.runFrontend(ctx, runner, opts, frontend, writer); err != nil {
		return err
	}

	if faults := runner.Faults(); faults > 0 {
		p.logger.Warn("Faulting instructions were skipped", log.Int("count", faults))
	}
	p.logger.Debug("Execution finished",
		log.Int("cycles", int(m.Cycles())),
		log.Int("frames", int(runner.Frames())))

	if opts.Expect != "" {
		if err := verification.VerifyFile(p.logger, m.Framebuffer(), opts.Expect); err != nil {
			return fmt.Errorf("verification failed: %w", err)
		}
		p.logger.Info("Verification successful")
	}
	return nil
}

func (p *Pipeline) runFrontend(ctx context.Context, runner *host.Runner, opts options.Program,
	frontend string, writer io.Writer) error {

	switch frontend {
	case options.FrontendHeadless:
		var events []headless.KeyEvent
		if opts.Keys != "" {
			var err error
			events, err = headless.LoadScript(opts.Keys)
			if err != nil {
				return fmt.Errorf("loading key script: %w", err)
			}
		}

		fe := headless.New(events...)
		steps := runner.StepsPerFrame()
		frames := (opts.Cycles + steps - 1) / steps
		if err := runner.RunFrames(ctx, fe, frames); err != nil {
			return err
		}
		if err := fe.WriteFrame(writer); err != nil {
			return fmt.Errorf("writing final frame: %w", err)
		}
		return nil

	case options.FrontendTerminal:
		fe, err := terminal.New(p.logger, os.Stdin, os.Stdout)
		if err != nil {
			return fmt.Errorf("creating terminal frontend: %w", err)
		}
		defer func() { _ = fe.Close() }()
		return runner.Run(ctx, fe)

	case options.FrontendWindow:
		windowOpts := window.Options{
			Title: "retrochip8 - " + filepath.Base(opts.Input),
			Scale: opts.Scale,
		}
		if err := window.Run(ctx, runner, windowOpts); err != nil {
			return fmt.Errorf("running window frontend: %w", err)
		}
		return nil

	default:
		return fmt.Errorf("unsupported frontend '%s'", frontend)
	}
}

// createBeepers returns the audio outputs that follow the sound timer. A
// missing audio device only disables the speaker output.
func (p *Pipeline) createBeepers(opts options.Program, frontend string) ([]host.Beeper, []io.Closer, error) {
	var (
		beepers []host.Beeper
		closers []io.Closer
	)

	if !opts.Mute && frontend != options.FrontendHeadless {
		beeper, err := audio.NewBeeper()
		if err != nil {
			p.logger.Warn("Audio output is not available", log.Err(err))
		} else {
			beepers = append(beepers, beeper)
			closers = append(closers, beeper)
		}
	}

	if opts.Wav != "" {
		recorder, err := audio.CreateRecorder(opts.Wav)
		if err != nil {
			return beepers, closers, fmt.Errorf("creating WAV recorder: %w", err)
		}
		beepers = append(beepers, recorder)
		closers = append(closers, recorder)
	}

	return beepers, closers, nil
}

func closeAll(logger *log.Logger, closers []io.Closer) {
	var errs []error
	for _, closer := range closers {
		if err := closer.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	if err := errors.Join(errs...); err != nil {
		logger.Error("Closing audio output failed", log.Err(err))
	}
}
