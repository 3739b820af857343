// Package app provides the main application helpers of the interpreter.
package app

import (
	"github.com/retroenv/retrochip8/internal/options"
	"github.com/retroenv/retrogolib/buildinfo"
	"github.com/retroenv/retrogolib/log"
)

// PrintBanner prints application version information.
func PrintBanner(logger *log.Logger, opts options.Program, version, commit, date string) {
	if opts.Quiet {
		return
	}

	logger.Info("retrochip8 - CHIP-8 interpreter",
		log.String("version", buildinfo.Version(version, commit, date)))
}

// PrintInfo prints the information about the ROM and the selected frontend.
func PrintInfo(logger *log.Logger, opts options.Program, frontend string, size int) {
	if opts.Quiet {
		return
	}

	if opts.Disasm {
		logger.Info("Disassembling CHIP-8 ROM",
			log.String("file", opts.Input),
			log.Int("size", size))
		return
	}

	logger.Info("Running CHIP-8 ROM",
		log.String("file", opts.Input),
		log.Int("size", size),
		log.String("frontend", frontend),
		log.Int("clock", opts.Clock))
	if opts.ShiftVY || opts.LoadStoreInc || opts.WrapSprites {
		logger.Info("Quirks enabled",
			log.String("shift", shiftQuirk(opts)),
			log.String("load/store", loadStoreQuirk(opts)),
			log.String("sprites", spriteQuirk(opts)))
	}
}

func shiftQuirk(opts options.Program) string {
	if opts.ShiftVY {
		return "Vy"
	}
	return "Vx"
}

func loadStoreQuirk(opts options.Program) string {
	if opts.LoadStoreInc {
		return "increment I"
	}
	return "keep I"
}

func spriteQuirk(opts options.Program) string {
	if opts.WrapSprites {
		return "wrap"
	}
	return "clip"
}
