// Package window implements a frontend that displays the framebuffer in a
// desktop window and maps the keyboard to the keypad.
package window

import "errors"

// DefaultScale is the default number of window pixels per display pixel.
const DefaultScale = 10

// ErrUnavailable is returned by Run in builds without window support.
var ErrUnavailable = errors.New("window frontend is not available in headless builds")

// Options of the window.
type Options struct {
	Title string
	Scale int
}
