// Package memory provides the flat CHIP-8 address space.
package memory

import (
	"errors"
	"fmt"
)

// CHIP-8 memory layout constants.
//
//	0x000-0x04F: unused interpreter area
//	0x050-0x09F: font glyphs (16 characters, 5 bytes each)
//	0x0A0-0x1FF: unused interpreter area
//	0x200-0xFFF: program space
const (
	// Size is the number of addressable bytes.
	Size = 0x1000

	// ProgramStart is the address where programs are loaded and start executing.
	ProgramStart = 0x200

	// FontStart is the address of the first font glyph.
	FontStart = 0x050

	// GlyphSize is the number of bytes of a single font glyph.
	GlyphSize = 5

	// MaxProgramSize is the largest program that fits into memory.
	MaxProgramSize = Size - ProgramStart
)

var (
	// ErrOutOfBounds is returned for any access past the end of memory.
	ErrOutOfBounds = errors.New("memory access out of bounds")
	// ErrProgramTooLarge is returned when a program does not fit into program space.
	ErrProgramTooLarge = errors.New("program too large")
)

// font contains the hexadecimal digit glyphs 0-F, each 4 pixels wide.
var font = [16 * GlyphSize]byte{
	0xF0, 0x90, 0x90, 0x90, 0xF0, // 0
	0x20, 0x60, 0x20, 0x20, 0x70, // 1
	0xF0, 0x10, 0xF0, 0x80, 0xF0, // 2
	0xF0, 0x10, 0xF0, 0x10, 0xF0, // 3
	0x90, 0x90, 0xF0, 0x10, 0x10, // 4
	0xF0, 0x80, 0xF0, 0x10, 0xF0, // 5
	0xF0, 0x80, 0xF0, 0x90, 0xF0, // 6
	0xF0, 0x10, 0x20, 0x40, 0x40, // 7
	0xF0, 0x90, 0xF0, 0x90, 0xF0, // 8
	0xF0, 0x90, 0xF0, 0x10, 0xF0, // 9
	0xF0, 0x90, 0xF0, 0x90, 0x90, // A
	0xE0, 0x90, 0xE0, 0x90, 0xE0, // B
	0xF0, 0x80, 0x80, 0x80, 0xF0, // C
	0xE0, 0x90, 0x90, 0x90, 0xE0, // D
	0xF0, 0x80, 0xF0, 0x80, 0xF0, // E
	0xF0, 0x80, 0xF0, 0x80, 0x80, // F
}

// Memory is the 4KB CHIP-8 address space.
type Memory struct {
	data [Size]byte
}

// New returns a memory instance with the font glyphs preloaded.
func New() *Memory {
	m := &Memory{}
	copy(m.data[FontStart:], font[:])
	return m
}

// GlyphAddress returns the address of the font glyph for the given hex digit.
// Only the low nibble of digit is used.
func GlyphAddress(digit byte) uint16 {
	return FontStart + uint16(digit&0x0F)*GlyphSize
}

// Read returns the byte at the given address.
func (m *Memory) Read(address uint16) (byte, error) {
	if int(address) >= Size {
		return 0, fmt.Errorf("%w: read at $%04X", ErrOutOfBounds, address)
	}
	return m.data[address], nil
}

// ReadChunk returns a view of length bytes starting at address. The returned
// slice aliases the memory and must not be retained across writes.
func (m *Memory) ReadChunk(address uint16, length int) ([]byte, error) {
	if err := checkRange(address, length); err != nil {
		return nil, fmt.Errorf("read of %d bytes at $%04X: %w", length, address, err)
	}
	end := int(address) + length
	return m.data[address:end:end], nil
}

// Write stores a single byte at the given address.
func (m *Memory) Write(address uint16, value byte) error {
	if int(address) >= Size {
		return fmt.Errorf("%w: write at $%04X", ErrOutOfBounds, address)
	}
	m.data[address] = value
	return nil
}

// WriteBlock copies all bytes of data to memory starting at address.
// Nothing is written if the block does not fit.
func (m *Memory) WriteBlock(address uint16, data []byte) error {
	if err := checkRange(address, len(data)); err != nil {
		return fmt.Errorf("write of %d bytes at $%04X: %w", len(data), address, err)
	}
	copy(m.data[address:], data)
	return nil
}

// Load copies a program into program space.
func (m *Memory) Load(program []byte) error {
	if len(program) > MaxProgramSize {
		return fmt.Errorf("%w: %d bytes, %d bytes available",
			ErrProgramTooLarge, len(program), MaxProgramSize)
	}
	return m.WriteBlock(ProgramStart, program)
}

func checkRange(address uint16, length int) error {
	if length < 0 || int(address)+length > Size {
		return ErrOutOfBounds
	}
	return nil
}
