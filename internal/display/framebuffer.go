// Package display provides the monochrome CHIP-8 framebuffer.
package display

import "strings"

// Display dimensions in pixels.
const (
	Width  = 64
	Height = 32
)

// Framebuffer is a 64x32 monochrome pixel buffer. Sprites are XOR composed,
// their start coordinates wrap around the display and pixels past the
// right or bottom edge are clipped.
type Framebuffer struct {
	pixels [Width * Height]bool
	dirty  bool
}

// New returns an empty framebuffer.
func New() *Framebuffer {
	return &Framebuffer{dirty: true}
}

// Clear turns all pixels off.
func (f *Framebuffer) Clear() {
	f.pixels = [Width * Height]bool{}
	f.dirty = true
}

// DrawSprite XORs the sprite rows onto the framebuffer, each byte is one row
// of 8 pixels with the most significant bit leftmost. It returns whether any
// lit pixel was turned off.
func (f *Framebuffer) DrawSprite(x, y uint8, sprite []byte) bool {
	startX := int(x) % Width
	startY := int(y) % Height
	collision := false

	for row, bits := range sprite {
		py := startY + row
		if py >= Height {
			break
		}

		for col := range 8 {
			if bits&(0x80>>col) == 0 {
				continue
			}
			px := startX + col
			if px >= Width {
				break
			}

			index := py*Width + px
			if f.pixels[index] {
				collision = true
			}
			f.pixels[index] = !f.pixels[index]
		}
	}

	f.dirty = true
	return collision
}

// Pixel returns whether the pixel at the given coordinates is lit.
// Coordinates outside of the display return false.
func (f *Framebuffer) Pixel(x, y int) bool {
	if x < 0 || x >= Width || y < 0 || y >= Height {
		return false
	}
	return f.pixels[y*Width+x]
}

// Dirty returns whether the framebuffer changed since the last MarkClean.
func (f *Framebuffer) Dirty() bool {
	return f.dirty
}

// Invalidate marks the framebuffer as changed so the next render draws it
// completely.
func (f *Framebuffer) Invalidate() {
	f.dirty = true
}

// MarkClean resets the dirty flag after the framebuffer was rendered.
func (f *Framebuffer) MarkClean() {
	f.dirty = false
}

// String renders the framebuffer as text, one line per pixel row.
func (f *Framebuffer) String() string {
	var b strings.Builder
	b.Grow((Width + 1) * Height)

	for y := range Height {
		for x := range Width {
			if f.pixels[y*Width+x] {
				b.WriteByte('#')
			} else {
				b.WriteByte('.')
			}
		}
		b.WriteByte('\n')
	}
	return b.String()
}
