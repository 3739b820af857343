package memory

import (
	"errors"
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

func TestNew_FontLoaded(t *testing.T) {
	m := New()

	// glyph for 0
	chunk, err := m.ReadChunk(FontStart, GlyphSize)
	assert.NoError(t, err)
	assert.Equal(t, []byte{0xF0, 0x90, 0x90, 0x90, 0xF0}, chunk)

	// glyph for F is the last one
	chunk, err = m.ReadChunk(GlyphAddress(0xF), GlyphSize)
	assert.NoError(t, err)
	assert.Equal(t, []byte{0xF0, 0x80, 0xF0, 0x80, 0x80}, chunk)

	b, err := m.Read(ProgramStart)
	assert.NoError(t, err)
	assert.Equal(t, byte(0), b)
}

func TestGlyphAddress(t *testing.T) {
	tests := []struct {
		digit    byte
		expected uint16
	}{
		{0x0, 0x050},
		{0x1, 0x055},
		{0xA, 0x082},
		{0xF, 0x09B},
		{0x1F, 0x09B}, // high nibble ignored
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, GlyphAddress(tt.digit))
	}
}

func TestRead_Bounds(t *testing.T) {
	m := New()

	_, err := m.Read(Size - 1)
	assert.NoError(t, err)

	_, err = m.Read(Size)
	assert.True(t, errors.Is(err, ErrOutOfBounds))

	_, err = m.Read(0xFFFF)
	assert.True(t, errors.Is(err, ErrOutOfBounds))
}

func TestReadChunk_Bounds(t *testing.T) {
	m := New()

	tests := []struct {
		name    string
		address uint16
		length  int
		valid   bool
	}{
		{"empty chunk", 0x200, 0, true},
		{"last byte", Size - 1, 1, true},
		{"ends exactly at size", Size - 16, 16, true},
		{"one past end", Size - 15, 16, false},
		{"start past end", Size, 1, false},
		{"negative length", 0x200, -1, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			chunk, err := m.ReadChunk(tt.address, tt.length)
			if tt.valid {
				assert.NoError(t, err)
				assert.Len(t, chunk, tt.length)
				return
			}
			assert.True(t, errors.Is(err, ErrOutOfBounds))
			assert.True(t, chunk == nil)
		})
	}
}

func TestWriteBlock(t *testing.T) {
	m := New()

	err := m.WriteBlock(0x300, []byte{1, 2, 3})
	assert.NoError(t, err)

	chunk, err := m.ReadChunk(0x300, 3)
	assert.NoError(t, err)
	assert.Equal(t, []byte{1, 2, 3}, chunk)

	err = m.WriteBlock(Size-2, []byte{1, 2, 3})
	assert.True(t, errors.Is(err, ErrOutOfBounds))

	// a failed write must not modify memory
	b, err := m.Read(Size - 2)
	assert.NoError(t, err)
	assert.Equal(t, byte(0), b)
}

func TestWrite(t *testing.T) {
	m := New()

	assert.NoError(t, m.Write(0xFFF, 0xAB))
	b, err := m.Read(0xFFF)
	assert.NoError(t, err)
	assert.Equal(t, byte(0xAB), b)

	assert.True(t, errors.Is(m.Write(0x1000, 1), ErrOutOfBounds))
}

func TestLoad(t *testing.T) {
	t.Run("program copied to program start", func(t *testing.T) {
		m := New()
		assert.NoError(t, m.Load([]byte{0x00, 0xE0, 0x12, 0x00}))

		chunk, err := m.ReadChunk(ProgramStart, 4)
		assert.NoError(t, err)
		assert.Equal(t, []byte{0x00, 0xE0, 0x12, 0x00}, chunk)
	})

	t.Run("maximum size fits", func(t *testing.T) {
		m := New()
		assert.NoError(t, m.Load(make([]byte, MaxProgramSize)))
	})

	t.Run("oversize program rejected", func(t *testing.T) {
		m := New()
		err := m.Load(make([]byte, MaxProgramSize+1))
		assert.True(t, errors.Is(err, ErrProgramTooLarge))
	})
}
