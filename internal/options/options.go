// Package options contains the program options.
package options

// Frontend names.
const (
	FrontendWindow   = "window"
	FrontendTerminal = "terminal"
	FrontendHeadless = "headless"
)

// Frontends lists all supported frontend names.
var Frontends = []string{FrontendWindow, FrontendTerminal, FrontendHeadless}

// Parameters contains file path options.
type Parameters struct {
	Input  string `flag:"i" usage:"input ROM file"`
	Output string `flag:"o" usage:"output file for the disassembly listing or the headless frame (default: stdout)"`
	Expect string `flag:"expect" usage:"expected framebuffer bitmap file to verify the final frame against"`
	Wav    string `flag:"wav" usage:"record the beeper to a WAV file"`
	Keys   string `flag:"keys" usage:"key script file replayed by the headless frontend"`
}

// Flags contains behavior options.
type Flags struct {
	Frontend   string `flag:"frontend" usage:"frontend: window, terminal, headless (default: auto-detect)"`
	Clock      int    `flag:"clock" usage:"instructions per second" default:"700"`
	Cycles     int    `flag:"cycles" usage:"number of instructions to run with the headless frontend" default:"1000"`
	Scale      int    `flag:"scale" usage:"window pixels per display pixel" default:"10"`
	Seed       uint64 `flag:"seed" usage:"seed of the random number generator (default: random)"`
	Disasm     bool   `flag:"disasm" usage:"output a disassembly listing instead of running the ROM"`
	Mute       bool   `flag:"mute" usage:"disable the beeper"`
	SkipFaults bool   `flag:"skip-faults" usage:"log failing instructions and continue"`
	Trace      bool   `flag:"trace" usage:"log every executed instruction, requires -debug"`
	Debug      bool   `flag:"debug" usage:"enable debug logging"`
	Quiet      bool   `flag:"q" usage:"quiet mode"`
}

// Quirks contains the instruction behavior options.
type Quirks struct {
	ShiftVY      bool `flag:"shift-vy" usage:"shift instructions copy Vy into Vx before shifting"`
	LoadStoreInc bool `flag:"loadstore-inc" usage:"register load and store instructions increment I"`
	WrapSprites  bool `flag:"wrap-sprites" usage:"wrap sprite pixels at the screen edges instead of clipping"`
	StackDepth   int  `flag:"stack" usage:"maximum call stack depth" default:"16"`
}

// OutputFlags contains disassembly output formatting options.
type OutputFlags struct {
	NoHexComments bool `flag:"nohexcomments" usage:"omit hex opcode bytes in comments"`
	NoOffsets     bool `flag:"nooffsets" usage:"omit addresses in comments"`
}

// Program options of the interpreter.
type Program struct {
	Parameters
	Flags
	Quirks
	OutputFlags
}
