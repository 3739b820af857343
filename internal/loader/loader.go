// Package loader handles ROM file loading operations.
package loader

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/retroenv/retrochip8/internal/memory"
)

// ErrEmptyProgram is returned for ROM files without any content.
var ErrEmptyProgram = errors.New("empty program")

// Loader handles loading ROM files from disk.
type Loader struct{}

// New creates a new ROM loader.
func New() *Loader {
	return &Loader{}
}

// Load reads the ROM file and checks that it fits into the program space
// of the memory.
func (l *Loader) Load(path string) ([]byte, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening file %s: %w", path, err)
	}
	defer func() { _ = file.Close() }()

	program, err := l.LoadFromReader(file)
	if err != nil {
		return nil, fmt.Errorf("loading ROM %s: %w", path, err)
	}
	return program, nil
}

// LoadFromReader reads a ROM from the reader. Reading stops one byte after
// the largest supported program size.
func (l *Loader) LoadFromReader(r io.Reader) ([]byte, error) {
	program, err := io.ReadAll(io.LimitReader(r, memory.MaxProgramSize+1))
	if err != nil {
		return nil, fmt.Errorf("reading program: %w", err)
	}

	switch {
	case len(program) == 0:
		return nil, ErrEmptyProgram
	case len(program) > memory.MaxProgramSize:
		return nil, fmt.Errorf("%w: more than %d bytes", memory.ErrProgramTooLarge, memory.MaxProgramSize)
	}
	return program, nil
}
