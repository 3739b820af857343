package cli

import (
	"errors"
	"os"
	"testing"

	"github.com/retroenv/retrochip8/internal/options"
	"github.com/retroenv/retrogolib/assert"
)

func parseArgs(t *testing.T, args ...string) (options.Program, error) {
	t.Helper()
	oldArgs := os.Args
	t.Cleanup(func() { os.Args = oldArgs })

	os.Args = append([]string{"prog"}, args...)
	return ParseFlags()
}

func TestParseFlags_Defaults(t *testing.T) {
	opts, err := parseArgs(t, "pong.ch8")
	assert.NoError(t, err)

	assert.Equal(t, "pong.ch8", opts.Input)
	assert.Equal(t, "", opts.Frontend)
	assert.Equal(t, 700, opts.Clock)
	assert.Equal(t, 1000, opts.Cycles)
	assert.Equal(t, 10, opts.Scale)
	assert.Equal(t, 16, opts.StackDepth)
	assert.Equal(t, uint64(0), opts.Seed)
	assert.False(t, opts.ShiftVY)
	assert.False(t, opts.LoadStoreInc)
	assert.False(t, opts.WrapSprites)
}

func TestParseFlags_Options(t *testing.T) {
	tests := []struct {
		name  string
		args  []string
		check func(t *testing.T, opts options.Program)
	}{
		{
			name: "frontend is normalized",
			args: []string{"-frontend", "Headless", "rom.ch8"},
			check: func(t *testing.T, opts options.Program) {
				t.Helper()
				assert.Equal(t, options.FrontendHeadless, opts.Frontend)
			},
		},
		{
			name: "quirk flags",
			args: []string{"-shift-vy", "-loadstore-inc", "-wrap-sprites", "-stack", "12", "rom.ch8"},
			check: func(t *testing.T, opts options.Program) {
				t.Helper()
				assert.True(t, opts.ShiftVY)
				assert.True(t, opts.LoadStoreInc)
				assert.True(t, opts.WrapSprites)
				assert.Equal(t, 12, opts.StackDepth)
			},
		},
		{
			name: "input flag without positional argument",
			args: []string{"-i", "game.ch8", "-seed", "7", "-keys", "keys.txt"},
			check: func(t *testing.T, opts options.Program) {
				t.Helper()
				assert.Equal(t, "game.ch8", opts.Input)
				assert.Equal(t, "keys.txt", opts.Keys)
				assert.Equal(t, uint64(7), opts.Seed)
			},
		},
		{
			name: "disassembly flags",
			args: []string{"-disasm", "-nohexcomments", "-o", "out.asm", "rom.ch8"},
			check: func(t *testing.T, opts options.Program) {
				t.Helper()
				assert.True(t, opts.Disasm)
				assert.True(t, opts.NoHexComments)
				assert.False(t, opts.NoOffsets)
				assert.Equal(t, "out.asm", opts.Output)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts, err := parseArgs(t, tt.args...)
			assert.NoError(t, err)
			tt.check(t, opts)
		})
	}
}

func TestParseFlags_Errors(t *testing.T) {
	tests := []struct {
		name       string
		args       []string
		usage      bool
		errContain string
	}{
		{
			name:  "missing ROM",
			args:  []string{"-debug"},
			usage: true,
		},
		{
			name:  "flag after ROM",
			args:  []string{"rom.ch8", "-debug"},
			usage: true,
		},
		{
			name:       "unknown frontend",
			args:       []string{"-frontend", "vga", "rom.ch8"},
			errContain: "unsupported frontend",
		},
		{
			name:       "zero clock",
			args:       []string{"-clock", "0", "rom.ch8"},
			errContain: "invalid clock rate",
		},
		{
			name:       "zero stack depth",
			args:       []string{"-stack", "0", "rom.ch8"},
			errContain: "invalid stack depth",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parseArgs(t, tt.args...)
			assert.Error(t, err)

			var usageErr *UsageError
			assert.Equal(t, tt.usage, errors.As(err, &usageErr))
			if tt.errContain != "" {
				assert.ErrorContains(t, err, tt.errContain)
			}
		})
	}
}
