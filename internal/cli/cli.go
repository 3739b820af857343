// Package cli handles command line interface logic
package cli

import (
	"flag"
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/retroenv/retrochip8/internal/options"
)

// ParseFlags parses command line flags and returns the program options
func ParseFlags() (options.Program, error) {
	flags := flag.NewFlagSet(os.Args[0], flag.ExitOnError)
	var opts options.Program
	readOptionFlags(flags, &opts)

	err := flags.Parse(os.Args[1:])
	args := flags.Args()
	if err != nil || (len(args) == 0 && opts.Input == "") {
		return opts, &UsageError{flags: flags}
	}

	if err := validateArgs(args); err != nil {
		return opts, err
	}

	if err := normalizeOptions(&opts); err != nil {
		return opts, err
	}

	if opts.Input == "" {
		opts.Input = args[0]
	}

	return opts, nil
}

// UsageError represents an error that should show usage information
type UsageError struct {
	flags *flag.FlagSet
	msg   string
}

func (e *UsageError) Error() string {
	return e.msg
}

func (e *UsageError) ShowUsage() {
	fmt.Printf("usage: retrochip8 [options] <ROM file>\n\n")
	if e.flags != nil {
		e.flags.PrintDefaults()
	}
	fmt.Println()
}

// validateArgs checks if arguments are in correct order
func validateArgs(args []string) error {
	for i, arg := range args {
		if i > 0 && arg[0] == '-' {
			return &UsageError{
				msg: fmt.Sprintf("Potential argument %s found after ROM file, please pass the ROM file as last argument", arg),
			}
		}
	}
	return nil
}

// normalizeOptions normalizes and validates option values
func normalizeOptions(opts *options.Program) error {
	opts.Frontend = strings.ToLower(opts.Frontend)
	if opts.Frontend != "" && !slices.Contains(options.Frontends, opts.Frontend) {
		return fmt.Errorf("unsupported frontend: %s. Valid options: %s",
			opts.Frontend, strings.Join(options.Frontends, ", "))
	}

	switch {
	case opts.Clock <= 0:
		return fmt.Errorf("invalid clock rate %d, must be positive", opts.Clock)
	case opts.Cycles < 0:
		return fmt.Errorf("invalid cycle count %d, must not be negative", opts.Cycles)
	case opts.Scale <= 0:
		return fmt.Errorf("invalid scale %d, must be positive", opts.Scale)
	case opts.StackDepth <= 0:
		return fmt.Errorf("invalid stack depth %d, must be positive", opts.StackDepth)
	}
	return nil
}

func readOptionFlags(flags *flag.FlagSet, opts *options.Program) {
	flags.StringVar(&opts.Input, "i", "", "name of the input ROM file")
	flags.StringVar(&opts.Output, "o", "", "name of the output file for the disassembly listing or the headless frame, printed on console if no name given")
	flags.StringVar(&opts.Expect, "expect", "", "name of a bitmap file to compare the final frame with, lines of '#' and '.' characters")
	flags.StringVar(&opts.Wav, "wav", "", "name of a WAV file to record the beeper to")
	flags.StringVar(&opts.Keys, "keys", "", "name of a key script file for the headless frontend, lines of '<frame> <hex key> down|up'")
	flags.StringVar(&opts.Frontend, "frontend", "", "frontend to use (window/terminal/headless), auto-detected if not given")
	flags.IntVar(&opts.Clock, "clock", 700, "number of instructions executed per second")
	flags.IntVar(&opts.Cycles, "cycles", 1000, "number of instructions to execute with the headless frontend, rounded up to full frames")
	flags.IntVar(&opts.Scale, "scale", 10, "window pixels per display pixel")
	flags.Uint64Var(&opts.Seed, "seed", 0, "seed for the random number generator, a random seed is used if not given")
	flags.BoolVar(&opts.Disasm, "disasm", false, "output a disassembly listing of the ROM instead of running it")
	flags.BoolVar(&opts.Mute, "mute", false, "disable the beeper")
	flags.BoolVar(&opts.SkipFaults, "skip-faults", false, "log failing instructions and continue with the next instruction")
	flags.BoolVar(&opts.Trace, "trace", false, "log every executed instruction, requires -debug")
	flags.BoolVar(&opts.Debug, "debug", false, "enable debugging options for extended logging")
	flags.BoolVar(&opts.Quiet, "q", false, "perform operations quietly")

	flags.BoolVar(&opts.ShiftVY, "shift-vy", false, "shift instructions copy Vy into Vx before shifting")
	flags.BoolVar(&opts.LoadStoreInc, "loadstore-inc", false, "register load and store instructions increment I")
	flags.BoolVar(&opts.WrapSprites, "wrap-sprites", false, "wrap sprite pixels at the screen edges instead of clipping them")
	flags.IntVar(&opts.StackDepth, "stack", 16, "maximum call stack depth")

	flags.BoolVar(&opts.NoHexComments, "nohexcomments", false, "do not output opcode bytes as hex values in comments")
	flags.BoolVar(&opts.NoOffsets, "nooffsets", false, "do not output addresses in comments")
}
