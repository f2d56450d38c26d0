// Package color provides the fixed-point RGBA color type the renderer
// composites with, plus the bar's default palette.
package color

import (
	"encoding/binary"
	"fmt"
)

// Color is an 8-bit-per-channel RGBA color.
//
// The zero value is Clear (fully transparent), which the compositor
// treats as "let the parent's pixels show through". Builders that need a
// visible placeholder should start from Unset instead, so a forgotten
// color assignment is obvious on screen rather than invisible.
type Color struct {
	R uint8
	G uint8
	B uint8
	A uint8
}

// New constructs an opaque or translucent color from channel bytes.
func New(r, g, b, a uint8) Color {
	return Color{R: r, G: g, B: b, A: a}
}

// RGB constructs a fully opaque color.
func RGB(r, g, b uint8) Color {
	return Color{R: r, G: g, B: b, A: 0xFF}
}

// Blend linearly interpolates each channel from c toward other by
// ratio, clamped to [0, 1]. Blend(other, 0) == c; Blend(other, 1) ==
// other.
func (c Color) Blend(other Color, ratio float64) Color {
	ratio = clamp01(ratio)
	return Color{
		R: lerpByte(c.R, other.R, ratio),
		G: lerpByte(c.G, other.G, ratio),
		B: lerpByte(c.B, other.B, ratio),
		A: lerpByte(c.A, other.A, ratio),
	}
}

// CompositeOver pre-blends c with the pixel already on the canvas,
// weighting by c's own alpha. A fully opaque c replaces the pixel
// outright; Clear leaves it untouched.
func (c Color) CompositeOver(under Color) Color {
	return under.Blend(c, float64(c.A)/255)
}

// ARGB8888 packs the color as a little-endian 32-bit ARGB pixel, alpha
// in the highest byte. This byte order matches the wl_shm ARGB8888
// framebuffer convention.
func (c Color) ARGB8888() [4]byte {
	var buf [4]byte
	binary.LittleEndian.PutUint32(buf[:],
		uint32(c.A)<<24|uint32(c.R)<<16|uint32(c.G)<<8|uint32(c.B))
	return buf
}

// FromARGB8888 unpacks a little-endian 32-bit ARGB pixel.
func FromARGB8888(buf [4]byte) Color {
	v := binary.LittleEndian.Uint32(buf[:])
	return Color{
		A: uint8(v >> 24),
		R: uint8(v >> 16),
		G: uint8(v >> 8),
		B: uint8(v),
	}
}

func (c Color) String() string {
	return fmt.Sprintf("#%02x%02x%02x%02x", c.R, c.G, c.B, c.A)
}

func lerpByte(from, to uint8, ratio float64) uint8 {
	return uint8(float64(from) + (float64(to)-float64(from))*ratio)
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
