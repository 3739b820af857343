// Package terminal implements a frontend that renders the framebuffer with
// block characters in a terminal and reads the keyboard in raw mode.
package terminal

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/retroenv/retrochip8/internal/display"
	"github.com/retroenv/retrochip8/internal/host"
	"github.com/retroenv/retrochip8/internal/machine"
	"github.com/retroenv/retrogolib/log"
	"golang.org/x/term"
)

const (
	// keyHoldFrames is the number of frames a key counts as pressed after
	// its character was received. Terminals report no key releases.
	keyHoldFrames = 6

	ctrlC = 0x03

	hideCursor  = "\x1b[?25l"
	showCursor  = "\x1b[?25h"
	clearScreen = "\x1b[2J"
	cursorHome  = "\x1b[H"
)

// ErrNotTerminal is returned if the input is not connected to a terminal.
var ErrNotTerminal = errors.New("input is not a terminal")

// Terminal is a terminal frontend.
type Terminal struct {
	out   io.Writer
	fd    int
	state *term.State

	events    chan byte
	done      chan struct{}
	closeOnce sync.Once
	held      [machine.NumKeys]int // frames left until a key counts as released
}

// New switches the terminal to raw mode and starts reading keyboard input.
// Close restores the terminal state.
func New(logger *log.Logger, in, out *os.File) (*Terminal, error) {
	fd := int(in.Fd())
	if !term.IsTerminal(fd) {
		return nil, ErrNotTerminal
	}

	if width, height, err := term.GetSize(int(out.Fd())); err == nil {
		if width < display.Width || height < display.Height/2 {
			logger.Warn("Terminal is smaller than the display",
				log.Int("columns", width),
				log.Int("rows", height))
		}
	}

	state, err := term.MakeRaw(fd)
	if err != nil {
		return nil, fmt.Errorf("setting terminal raw mode: %w", err)
	}

	t := &Terminal{
		out:    out,
		fd:     fd,
		state:  state,
		events: make(chan byte, 64),
		done:   make(chan struct{}),
	}
	go t.read(in)

	if _, err := io.WriteString(out, hideCursor+clearScreen); err != nil {
		_ = t.Close()
		return nil, fmt.Errorf("initializing terminal: %w", err)
	}
	return t, nil
}

// read forwards the input bytes until reading fails or the terminal is
// closed. A read that is pending during Close returns with the next key press.
func (t *Terminal) read(in io.Reader) {
	defer close(t.events)

	buf := make([]byte, 16)
	for {
		n, err := in.Read(buf)
		for _, b := range buf[:n] {
			select {
			case t.events <- b:
			case <-t.done:
				return
			}
		}
		if err != nil {
			return
		}

		select {
		case <-t.done:
			return
		default:
		}
	}
}

// Poll applies the received characters to the keypad and releases keys that
// were not repeated in time. Ctrl+C requests to quit.
func (t *Terminal) Poll(keypad host.Keypad) (bool, error) {
	quit, err := t.drain(keypad)
	if err != nil || quit {
		return quit, err
	}

	for key, frames := range t.held {
		if frames == 0 {
			continue
		}
		t.held[key]--
		if t.held[key] == 0 {
			if err := keypad.SetKey(uint8(key), false); err != nil {
				return false, fmt.Errorf("releasing key: %w", err)
			}
		}
	}
	return false, nil
}

func (t *Terminal) drain(keypad host.Keypad) (bool, error) {
	for {
		select {
		case b, ok := <-t.events:
			if !ok || b == ctrlC {
				return true, nil
			}
			key, ok := host.KeyForRune(rune(b))
			if !ok {
				continue
			}
			if t.held[key] == 0 {
				if err := keypad.SetKey(key, true); err != nil {
					return false, fmt.Errorf("pressing key: %w", err)
				}
			}
			t.held[key] = keyHoldFrames

		default:
			return false, nil
		}
	}
}

// Present draws the framebuffer at the top left corner of the terminal.
func (t *Terminal) Present(fb *display.Framebuffer) error {
	if _, err := io.WriteString(t.out, cursorHome+Render(fb)); err != nil {
		return fmt.Errorf("writing frame: %w", err)
	}
	return nil
}

// Close stops forwarding input and restores the terminal state.
func (t *Terminal) Close() error {
	t.stop()
	_, _ = io.WriteString(t.out, showCursor+"\r\n")
	if err := term.Restore(t.fd, t.state); err != nil {
		return fmt.Errorf("restoring terminal state: %w", err)
	}
	return nil
}

func (t *Terminal) stop() {
	t.closeOnce.Do(func() { close(t.done) })
}

// Render returns the framebuffer as lines of block characters, each line
// combines two pixel rows. Lines end with CR LF as required in raw mode.
func Render(fb *display.Framebuffer) string {
	var sb strings.Builder
	sb.Grow(display.Height / 2 * (display.Width*3 + 2))

	for y := 0; y < display.Height; y += 2 {
		for x := range display.Width {
			top, bottom := fb.Pixel(x, y), fb.Pixel(x, y+1)
			switch {
			case top && bottom:
				sb.WriteRune('█')
			case top:
				sb.WriteRune('▀')
			case bottom:
				sb.WriteRune('▄')
			default:
				sb.WriteByte(' ')
			}
		}
		sb.WriteString("\r\n")
	}
	return sb.String()
}
