// Package headless implements a frontend without input or display devices
// that replays scripted key events and keeps the last presented frame.
package headless

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/retroenv/retrochip8/internal/display"
	"github.com/retroenv/retrochip8/internal/host"
)

// KeyEvent changes the state of a key before the given frame runs.
type KeyEvent struct {
	Frame   int
	Key     uint8
	Pressed bool
}

// Frontend is a headless frontend.
type Frontend struct {
	events    []KeyEvent
	frame     int
	presented int
	last      *display.Framebuffer
}

// New returns a headless frontend that applies the key events in order.
func New(events ...KeyEvent) *Frontend {
	return &Frontend{
		events: events,
	}
}

// Poll applies all key events scheduled for the current frame.
func (f *Frontend) Poll(keypad host.Keypad) (bool, error) {
	for len(f.events) > 0 && f.events[0].Frame <= f.frame {
		event := f.events[0]
		f.events = f.events[1:]
		if err := keypad.SetKey(event.Key, event.Pressed); err != nil {
			return false, fmt.Errorf("replaying key event: %w", err)
		}
	}
	f.frame++
	return false, nil
}

// Present keeps a reference to the framebuffer.
func (f *Frontend) Present(fb *display.Framebuffer) error {
	f.presented++
	f.last = fb
	return nil
}

// Presented returns the number of presented frames.
func (f *Frontend) Presented() int {
	return f.presented
}

// WriteFrame writes the last presented frame as text. A blank frame is
// written if nothing was presented.
func (f *Frontend) WriteFrame(w io.Writer) error {
	fb := f.last
	if fb == nil {
		fb = &display.Framebuffer{}
	}
	if _, err := io.WriteString(w, fb.String()); err != nil {
		return fmt.Errorf("writing frame: %w", err)
	}
	return nil
}

// LoadScript reads the key events of a key script file.
func LoadScript(path string) ([]KeyEvent, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening file %s: %w", path, err)
	}
	defer func() { _ = file.Close() }()

	events, err := ParseScript(file)
	if err != nil {
		return nil, fmt.Errorf("parsing key script %s: %w", path, err)
	}
	return events, nil
}

// ParseScript parses a key script. Every line holds the frame number, the
// hexadecimal key and either "down" or "up", for example "30 a down".
// Empty lines and lines starting with '#' are ignored. The returned events
// are ordered by frame, events of the same frame keep their script order.
func ParseScript(r io.Reader) ([]KeyEvent, error) {
	var events []KeyEvent
	scanner := bufio.NewScanner(r)

	for line := 1; scanner.Scan(); line++ {
		text := strings.TrimSpace(scanner.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}

		event, err := parseEvent(text)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		events = append(events, event)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading key script: %w", err)
	}

	slices.SortStableFunc(events, func(a, b KeyEvent) int {
		return a.Frame - b.Frame
	})
	return events, nil
}

func parseEvent(text string) (KeyEvent, error) {
	fields := strings.Fields(text)
	if len(fields) != 3 {
		return KeyEvent{}, fmt.Errorf("expected 3 fields but got %d", len(fields))
	}

	frame, err := strconv.Atoi(fields[0])
	if err != nil || frame < 0 {
		return KeyEvent{}, fmt.Errorf("invalid frame '%s'", fields[0])
	}
	key, err := strconv.ParseUint(fields[1], 16, 4)
	if err != nil {
		return KeyEvent{}, fmt.Errorf("invalid key '%s'", fields[1])
	}

	event := KeyEvent{
		Frame: frame,
		Key:   uint8(key),
	}
	switch strings.ToLower(fields[2]) {
	case "down":
		event.Pressed = true
	case "up":
	default:
		return KeyEvent{}, fmt.Errorf("invalid key action '%s'", fields[2])
	}
	return event, nil
}
