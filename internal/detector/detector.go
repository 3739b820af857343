// Package detector handles frontend detection.
package detector

import (
	"os"

	"github.com/retroenv/retrochip8/internal/host/window"
	"github.com/retroenv/retrochip8/internal/options"
	"github.com/retroenv/retrogolib/log"
	"golang.org/x/term"
)

// Detector selects the frontend from the options or from the capabilities
// of the build and the environment.
type Detector struct {
	logger *log.Logger

	windowAvailable bool
	stdinTerminal   func() bool
}

// New creates a new frontend detector.
func New(logger *log.Logger) *Detector {
	return &Detector{
		logger:          logger,
		windowAvailable: window.Available,
		stdinTerminal: func() bool {
			return term.IsTerminal(int(os.Stdin.Fd()))
		},
	}
}

// Detect returns the frontend set in the options. Without one it prefers the
// window, then the terminal if the input is connected to one, and falls back
// to the headless frontend.
func (d *Detector) Detect(opts options.Program) string {
	if opts.Frontend != "" {
		return opts.Frontend
	}

	frontend := d.detectFromEnvironment()
	d.logger.Debug("Auto-detected frontend",
		log.String("frontend", frontend),
		log.String("file", opts.Input))
	return frontend
}

func (d *Detector) detectFromEnvironment() string {
	switch {
	case d.windowAvailable:
		return options.FrontendWindow
	case d.stdinTerminal():
		return options.FrontendTerminal
	default:
		return options.FrontendHeadless
	}
}
