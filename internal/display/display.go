// Package display implements the monochrome CHIP-8 framebuffer.
package display

import "strings"

// Framebuffer dimensions in pixels.
const (
	Width  = 64
	Height = 32
)

// SpriteWidth is the fixed width of a sprite row in pixels.
const SpriteWidth = 8

// Framebuffer is a 64x32 grid of 1-bit pixels. Pixels are only ever changed
// by XOR compositing or by clearing the whole buffer.
type Framebuffer struct {
	pixels [Height][Width]bool
	dirty  bool
}

// Clear turns all pixels off and marks the framebuffer for redraw.
func (f *Framebuffer) Clear() {
	f.pixels = [Height][Width]bool{}
	f.dirty = true
}

// Pixel returns whether the pixel at x,y is set. Coordinates outside of the
// framebuffer report an unset pixel.
func (f *Framebuffer) Pixel(x, y int) bool {
	if x < 0 || x >= Width || y < 0 || y >= Height {
		return false
	}
	return f.pixels[y][x]
}

// DrawSprite XORs the sprite rows onto the framebuffer with the top left
// corner at x,y. The origin wraps around the screen edges. Pixels of the
// sprite body that fall past the right or bottom edge are either clipped or,
// if wrap is set, wrapped around to the opposite edge.
// It returns whether any set pixel was turned off.
func (f *Framebuffer) DrawSprite(x, y byte, sprite []byte, wrap bool) bool {
	originX := int(x) % Width
	originY := int(y) % Height
	collision := false

	for row, bits := range sprite {
		py := originY + row
		if py >= Height {
			if !wrap {
				break
			}
			py %= Height
		}

		for bit := range SpriteWidth {
			if bits&(0x80>>bit) == 0 {
				continue
			}

			px := originX + bit
			if px >= Width {
				if !wrap {
					break
				}
				px %= Width
			}

			if f.pixels[py][px] {
				collision = true
			}
			f.pixels[py][px] = !f.pixels[py][px]
		}
	}

	f.dirty = true
	return collision
}

// RedrawNeeded returns whether the framebuffer changed since the last call
// to ClearRedraw.
func (f *Framebuffer) RedrawNeeded() bool {
	return f.dirty
}

// ClearRedraw resets the redraw flag, to be called once a frame is rendered.
func (f *Framebuffer) ClearRedraw() {
	f.dirty = false
}

// String renders the framebuffer as text, one line per row with '#' for set
// and '.' for unset pixels.
func (f *Framebuffer) String() string {
	var sb strings.Builder
	sb.Grow(Height * (Width + 1))
	for y := range Height {
		for x := range Width {
			if f.pixels[y][x] {
				sb.WriteByte('#')
			} else {
				sb.WriteByte('.')
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
