package display

import (
	"strings"
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

func TestDrawSprite_Collision(t *testing.T) {
	var f Framebuffer
	sprite := []byte{0xF0, 0x90}

	collision := f.DrawSprite(10, 5, sprite, false)
	assert.False(t, collision)
	assert.True(t, f.Pixel(10, 5))
	assert.True(t, f.Pixel(13, 5))
	assert.False(t, f.Pixel(14, 5))
	assert.True(t, f.Pixel(10, 6))
	assert.False(t, f.Pixel(11, 6))
	assert.True(t, f.RedrawNeeded())

	// drawing the same sprite again erases it
	collision = f.DrawSprite(10, 5, sprite, false)
	assert.True(t, collision)
	assert.False(t, f.Pixel(10, 5))
	assert.False(t, f.Pixel(10, 6))
}

func TestDrawSprite_NoCollisionOnDisjointPixels(t *testing.T) {
	var f Framebuffer
	assert.False(t, f.DrawSprite(0, 0, []byte{0xF0}, false))
	assert.False(t, f.DrawSprite(0, 0, []byte{0x0F}, false))
	assert.True(t, f.Pixel(0, 0))
	assert.True(t, f.Pixel(7, 0))
}

func TestDrawSprite_OriginWraps(t *testing.T) {
	var f Framebuffer
	f.DrawSprite(Width+2, Height+3, []byte{0x80}, false)
	assert.True(t, f.Pixel(2, 3))
}

func TestDrawSprite_EdgePolicy(t *testing.T) {
	sprite := []byte{0xFF, 0xFF}

	t.Run("clip", func(t *testing.T) {
		var f Framebuffer
		f.DrawSprite(60, 31, sprite, false)
		assert.True(t, f.Pixel(60, 31))
		assert.True(t, f.Pixel(63, 31))
		assert.False(t, f.Pixel(0, 31))
		assert.False(t, f.Pixel(60, 0))
		assert.False(t, f.Pixel(0, 0))
	})

	t.Run("wrap", func(t *testing.T) {
		var f Framebuffer
		f.DrawSprite(60, 31, sprite, true)
		assert.True(t, f.Pixel(63, 31))
		assert.True(t, f.Pixel(0, 31))
		assert.True(t, f.Pixel(3, 31))
		assert.False(t, f.Pixel(4, 31))
		assert.True(t, f.Pixel(60, 0))
		assert.True(t, f.Pixel(3, 0))
	})
}

func TestClear(t *testing.T) {
	var f Framebuffer
	f.DrawSprite(0, 0, []byte{0xFF}, false)
	f.ClearRedraw()
	assert.False(t, f.RedrawNeeded())

	f.Clear()
	assert.True(t, f.RedrawNeeded())
	for x := range Width {
		assert.False(t, f.Pixel(x, 0))
	}
}

func TestPixel_OutOfRange(t *testing.T) {
	var f Framebuffer
	assert.False(t, f.Pixel(-1, 0))
	assert.False(t, f.Pixel(Width, 0))
	assert.False(t, f.Pixel(0, Height))
}

func TestString(t *testing.T) {
	var f Framebuffer
	f.DrawSprite(1, 0, []byte{0x80}, false)

	lines := strings.Split(strings.TrimSuffix(f.String(), "\n"), "\n")
	assert.Len(t, lines, Height)
	assert.Equal(t, ".#"+strings.Repeat(".", Width-2), lines[0])
	assert.Equal(t, strings.Repeat(".", Width), lines[1])
}
