package display

import (
	"strings"
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

func TestDrawSprite(t *testing.T) {
	f := New()

	collision := f.DrawSprite(0, 0, []byte{0xF0, 0x90})
	assert.False(t, collision)
	assert.True(t, f.Pixel(0, 0))
	assert.True(t, f.Pixel(3, 0))
	assert.False(t, f.Pixel(4, 0))
	assert.True(t, f.Pixel(0, 1))
	assert.False(t, f.Pixel(1, 1))

	// drawing the same sprite again erases it and reports a collision
	collision = f.DrawSprite(0, 0, []byte{0xF0, 0x90})
	assert.True(t, collision)
	assert.False(t, f.Pixel(0, 0))
	assert.False(t, f.Pixel(0, 1))
}

func TestDrawSpriteNoCollisionOnDisjointPixels(t *testing.T) {
	f := New()
	f.DrawSprite(0, 0, []byte{0xF0})
	assert.False(t, f.DrawSprite(0, 0, []byte{0x0F}))
	assert.True(t, f.Pixel(7, 0))
}

func TestDrawSpriteWrapsStart(t *testing.T) {
	f := New()
	f.DrawSprite(Width+2, Height+1, []byte{0x80})
	assert.True(t, f.Pixel(2, 1))
}

func TestDrawSpriteClips(t *testing.T) {
	f := New()
	f.DrawSprite(Width-2, Height-1, []byte{0xFF, 0xFF})

	assert.True(t, f.Pixel(Width-2, Height-1))
	assert.True(t, f.Pixel(Width-1, Height-1))
	// nothing wraps to the left edge or the top
	assert.False(t, f.Pixel(0, Height-1))
	assert.False(t, f.Pixel(0, 0))
	assert.False(t, f.Pixel(Width-2, 0))
}

func TestClearAndDirty(t *testing.T) {
	f := New()
	assert.True(t, f.Dirty())
	f.MarkClean()
	assert.False(t, f.Dirty())

	f.DrawSprite(10, 10, []byte{0x80})
	assert.True(t, f.Dirty())
	f.MarkClean()

	f.Clear()
	assert.True(t, f.Dirty())
	assert.False(t, f.Pixel(10, 10))
	f.MarkClean()

	f.Invalidate()
	assert.True(t, f.Dirty())
}

func TestPixelOutOfRange(t *testing.T) {
	f := New()
	assert.False(t, f.Pixel(-1, 0))
	assert.False(t, f.Pixel(Width, 0))
	assert.False(t, f.Pixel(0, Height))
}

func TestString(t *testing.T) {
	f := New()
	f.DrawSprite(0, 0, []byte{0xC0})

	lines := strings.Split(strings.TrimSuffix(f.String(), "\n"), "\n")
	assert.Len(t, lines, Height)
	assert.Equal(t, "##"+strings.Repeat(".", Width-2), lines[0])
}
