// Package config handles application configuration and setup
package config

import (
	"github.com/retroenv/retrochip8/internal/machine"
	"github.com/retroenv/retrochip8/internal/options"
	"github.com/retroenv/retrogolib/log"
)

// CreateLogger creates a logger with appropriate settings
func CreateLogger(debug, quiet bool) *log.Logger {
	cfg := log.DefaultConfig()
	if debug {
		cfg.Level = log.DebugLevel
	} else if quiet {
		cfg.Level = log.ErrorLevel
	}
	return log.NewWithConfig(cfg)
}

// MachineOptions converts the program options to machine options. A zero
// seed selects a randomly seeded random number generator. Tracing is only
// enabled together with debug logging.
func MachineOptions(logger *log.Logger, opts options.Program) machine.Options {
	machineOpts := machine.Options{
		Quirks: machine.Quirks{
			ShiftUsesVY:          opts.ShiftVY,
			LoadStoreIncrementsI: opts.LoadStoreInc,
		},
		StackDepth:  opts.StackDepth,
		WrapSprites: opts.WrapSprites,
		Logger:      logger,
		Trace:       opts.Trace && opts.Debug,
	}

	if opts.Seed != 0 {
		machineOpts.Random = machine.NewSeededRandom(opts.Seed)
	}
	return machineOpts
}
