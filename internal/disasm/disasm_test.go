package disasm

import (
	"bytes"
	"strings"
	"testing"

	"github.com/retroenv/retrochip8/internal/instruction"
	"github.com/retroenv/retrogolib/assert"
)

func TestFormat(t *testing.T) {
	tests := []struct {
		name     string
		word     uint16
		expected string
	}{
		{"CLS instruction", 0x00E0, "cls"},
		{"RET instruction", 0x00EE, "ret"},
		{"JP instruction", 0x1234, "jp $234"},
		{"CALL instruction", 0x2234, "call $234"},
		{"SE Vx, byte", 0x3234, "se V2, $34"},
		{"SNE Vx, byte", 0x4234, "sne V2, $34"},
		{"SE Vx, Vy", 0x5230, "se V2, V3"},
		{"LD Vx, byte", 0x6234, "ld V2, $34"},
		{"ADD Vx, byte", 0x7234, "add V2, $34"},
		{"LD Vx, Vy", 0x8230, "ld V2, V3"},
		{"OR Vx, Vy", 0x8231, "or V2, V3"},
		{"AND Vx, Vy", 0x8232, "and V2, V3"},
		{"XOR Vx, Vy", 0x8233, "xor V2, V3"},
		{"ADD Vx, Vy", 0x8234, "add V2, V3"},
		{"SUB Vx, Vy", 0x8235, "sub V2, V3"},
		{"SHR Vx", 0x8236, "shr V2"},
		{"SUBN Vx, Vy", 0x8237, "subn V2, V3"},
		{"SHL Vx", 0x823E, "shl V2"},
		{"SNE Vx, Vy", 0x9230, "sne V2, V3"},
		{"LD I, addr", 0xA234, "ld I, $234"},
		{"RND Vx, byte", 0xC234, "rnd V2, $34"},
		{"DRW Vx, Vy, n", 0xD235, "drw V2, V3, $5"},
		{"SKP Vx", 0xE29E, "skp V2"},
		{"SKNP Vx", 0xE2A1, "sknp V2"},
		{"invalid word", 0xFFFF, ".word $FFFF"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Format(instruction.Decode(tt.word)))
		})
	}
}

func TestFormat_Parameters(t *testing.T) {
	tests := []struct {
		word   uint16
		suffix string
	}{
		{0xB234, " V0, $234"},
		{0xF207, " V2, DT"},
		{0xF20A, " V2, K"},
		{0xF215, " DT, V2"},
		{0xF218, " ST, V2"},
		{0xF21E, " I, V2"},
		{0xF229, " F, V2"},
		{0xF233, " B, V2"},
		{0xF255, " [I], V2"},
		{0xF265, " V2, [I]"},
	}

	for _, tt := range tests {
		formatted := Format(instruction.Decode(tt.word))
		assert.True(t, strings.HasSuffix(formatted, tt.suffix), formatted)
	}
}

func TestName_Invalid(t *testing.T) {
	assert.Equal(t, "", Name(instruction.Decode(0x5AB1)))
}

func TestProcess_Listing(t *testing.T) {
	program := []byte{
		0x00, 0xE0, // cls
		0xA2, 0x0A, // ld I, data
		0x22, 0x08, // call func
		0x12, 0x06, // jp self
		0x00, 0xEE, // ret
		0xF0, 0x90, // sprite data
	}

	var buf bytes.Buffer
	dis := New(program)
	assert.NoError(t, dis.Process(&buf, Options{}))

	expected := `Start:
  cls
  ld I, $20A
  call _func_0208
_label_0206:
  jp _label_0206
_func_0208:
  ret
_data_020a:
  .byte $F0, $90
`
	assert.Equal(t, expected, buf.String())
	assert.Equal(t, []uint16{0x200, 0x202, 0x204, 0x206, 0x208}, dis.Addresses())
}

func TestProcess_SkipFollowsBothPaths(t *testing.T) {
	program := []byte{
		0x30, 0x01, // se V0, $01
		0x12, 0x08, // jp $208
		0x00, 0xEE, // ret
		0xFF, 0xFF, // unreachable
		0x00, 0xEE, // ret
	}

	dis := New(program)
	assert.NoError(t, dis.Process(&bytes.Buffer{}, Options{}))
	assert.Equal(t, []uint16{0x200, 0x202, 0x204, 0x208}, dis.Addresses())
}

func TestProcess_Comments(t *testing.T) {
	var buf bytes.Buffer
	dis := New([]byte{0x00, 0xE0, 0x01})
	assert.NoError(t, dis.Process(&buf, Options{HexComments: true, OffsetComments: true}))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	assert.Len(t, lines, 3)
	assert.True(t, strings.HasSuffix(lines[1], "; $0200 00 E0"), lines[1])
	assert.True(t, strings.HasSuffix(lines[2], "; $0202"), lines[2])
	assert.True(t, strings.HasPrefix(lines[2], "  .byte $01"), lines[2])
}

func TestProcess_DataBundling(t *testing.T) {
	program := append([]byte{0x12, 0x00}, bytes.Repeat([]byte{0xAA}, 10)...)

	var buf bytes.Buffer
	assert.NoError(t, New(program).Process(&buf, Options{}))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	// label, jump, 8 data bytes, 2 data bytes
	assert.Len(t, lines, 4)
	assert.Equal(t, "  .byte $AA, $AA", lines[3])
}
