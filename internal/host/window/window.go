//go:build !headless

package window

import (
	"context"
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/retroenv/retrochip8/internal/display"
	"github.com/retroenv/retrochip8/internal/host"
	"github.com/retroenv/retrochip8/internal/machine"
)

// Available reports whether this build supports the window frontend.
const Available = true

var (
	pixelOn  = [4]byte{0xE0, 0xE0, 0xE0, 0xFF}
	pixelOff = [4]byte{0x10, 0x10, 0x10, 0xFF}
)

// keys maps the hex keypad to keyboard keys, following host.KeyLayout.
var keys = [machine.NumKeys]ebiten.Key{
	0x0: ebiten.KeyX, 0x1: ebiten.KeyDigit1, 0x2: ebiten.KeyDigit2, 0x3: ebiten.KeyDigit3,
	0x4: ebiten.KeyQ, 0x5: ebiten.KeyW, 0x6: ebiten.KeyE, 0x7: ebiten.KeyA,
	0x8: ebiten.KeyS, 0x9: ebiten.KeyD, 0xA: ebiten.KeyZ, 0xB: ebiten.KeyC,
	0xC: ebiten.KeyDigit4, 0xD: ebiten.KeyR, 0xE: ebiten.KeyF, 0xF: ebiten.KeyV,
}

// game implements ebiten.Game and host.Frontend. Ebiten calls Update at the
// tick rate, which is set to the frame rate of the runner.
type game struct {
	ctx    context.Context
	runner *host.Runner

	pressed [machine.NumKeys]bool
	pixels  []byte
	image   *ebiten.Image
	err     error
}

// Run opens the window and runs the machine until the window is closed,
// Escape is pressed or the context is canceled.
func Run(ctx context.Context, runner *host.Runner, opts Options) error {
	scale := opts.Scale
	if scale <= 0 {
		scale = DefaultScale
	}

	ebiten.SetWindowSize(display.Width*scale, display.Height*scale)
	ebiten.SetWindowTitle(opts.Title)
	ebiten.SetTPS(host.FrameRate)

	g := &game{
		ctx:    ctx,
		runner: runner,
		pixels: make([]byte, display.Width*display.Height*4),
	}
	g.fill(&display.Framebuffer{})

	if err := ebiten.RunGame(g); err != nil {
		return fmt.Errorf("running window: %w", err)
	}
	return g.err
}

func (g *game) Update() error {
	if g.ctx.Err() != nil {
		g.err = g.ctx.Err()
		return ebiten.Termination
	}

	quit, err := g.runner.Update(g)
	if err != nil {
		g.err = err
		return ebiten.Termination
	}
	if quit {
		return ebiten.Termination
	}
	return nil
}

// Poll updates the keypad with all keys that changed state.
func (g *game) Poll(keypad host.Keypad) (bool, error) {
	if ebiten.IsWindowBeingClosed() || ebiten.IsKeyPressed(ebiten.KeyEscape) {
		return true, nil
	}

	for key, k := range keys {
		pressed := ebiten.IsKeyPressed(k)
		if pressed == g.pressed[key] {
			continue
		}
		if err := keypad.SetKey(uint8(key), pressed); err != nil {
			return false, fmt.Errorf("setting key: %w", err)
		}
		g.pressed[key] = pressed
	}
	return false, nil
}

// Present converts the framebuffer to RGBA pixels for the next Draw call.
func (g *game) Present(fb *display.Framebuffer) error {
	g.fill(fb)
	return nil
}

func (g *game) fill(fb *display.Framebuffer) {
	for y := range display.Height {
		for x := range display.Width {
			color := pixelOff
			if fb.Pixel(x, y) {
				color = pixelOn
			}
			copy(g.pixels[(y*display.Width+x)*4:], color[:])
		}
	}
}

func (g *game) Draw(screen *ebiten.Image) {
	if g.image == nil {
		g.image = ebiten.NewImage(display.Width, display.Height)
	}
	g.image.WritePixels(g.pixels)
	screen.DrawImage(g.image, nil)
}

func (g *game) Layout(_, _ int) (int, int) {
	return display.Width, display.Height
}
