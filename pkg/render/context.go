// Package render provides the per-frame drawing context: a borrowed
// view of the pixel canvas plus the damage log that accumulates the
// rectangles a frame actually changed.
package render

import (
	"fmt"

	"github.com/go-ledge/ledge/pkg/color"
	"github.com/go-ledge/ledge/pkg/geometry"
)

// Context is the drawing state lent to the widget tree for the duration
// of one frame. Widgets never retain it; the frame driver owns the
// canvas and the damage list and rebuilds the Context every frame.
type Context struct {
	// Canvas is the row-major ARGB8888 pixel buffer covering Rect.
	Canvas []byte

	// Rect is the canvas's bounding rectangle.
	Rect geometry.Rect

	// FullRedraw is set on frames that repaint the entire canvas; the
	// driver then reports the whole rect as one damage unit and widgets
	// may skip fine-grained damage bookkeeping.
	FullRedraw bool

	// Damage is the frame's damage log, owned by the driver and
	// borrowed here for appending.
	Damage *[]geometry.Rect
}

// index returns the byte offset of the pixel at p, which must lie
// strictly inside the canvas. Out-of-bounds writes are a layout bug and
// panic.
func (ctx *Context) index(p geometry.Point) int {
	if p.X < ctx.Rect.Min.X || p.X >= ctx.Rect.Max.X ||
		p.Y < ctx.Rect.Min.Y || p.Y >= ctx.Rect.Max.Y {
		panic(fmt.Sprintf("render: pixel %v outside canvas %v", p, ctx.Rect))
	}
	return 4 * ((p.X - ctx.Rect.Min.X) + (p.Y-ctx.Rect.Min.Y)*ctx.Rect.Width())
}

// Put writes one packed pixel, overwriting whatever is there. Erase
// passes go through Put or Fill; glyph inking goes through
// PutComposite.
func (ctx *Context) Put(p geometry.Point, c color.Color) {
	idx := ctx.index(p)
	pix := c.ARGB8888()
	copy(ctx.Canvas[idx:idx+4], pix[:])
}

// PutComposite blends c over the pixel already on the canvas, weighted
// by c's alpha.
func (ctx *Context) PutComposite(p geometry.Point, c color.Color) {
	idx := ctx.index(p)
	var existing [4]byte
	copy(existing[:], ctx.Canvas[idx:idx+4])
	pix := c.CompositeOver(color.FromARGB8888(existing)).ARGB8888()
	copy(ctx.Canvas[idx:idx+4], pix[:])
}

// At returns the color of the pixel at p.
func (ctx *Context) At(p geometry.Point) color.Color {
	idx := ctx.index(p)
	var pix [4]byte
	copy(pix[:], ctx.Canvas[idx:idx+4])
	return color.FromARGB8888(pix)
}

// Fill overwrites every pixel of r with c, without compositing. Empty
// rects are a no-op.
func (ctx *Context) Fill(r geometry.Rect, c color.Color) {
	if r.Empty() {
		return
	}
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			ctx.Put(geometry.Point{X: x, Y: y}, c)
		}
	}
}

// FillComposite blends c over every pixel of r. Empty rects are a
// no-op.
func (ctx *Context) FillComposite(r geometry.Rect, c color.Color) {
	if r.Empty() {
		return
	}
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			ctx.PutComposite(geometry.Point{X: x, Y: y}, c)
		}
	}
}

// Outline draws a one-pixel border just inside r, useful when debugging
// widget areas.
func (ctx *Context) Outline(r geometry.Rect, c color.Color) {
	if r.Empty() {
		return
	}
	for x := r.Min.X; x < r.Max.X; x++ {
		ctx.Put(geometry.Point{X: x, Y: r.Min.Y}, c)
		ctx.Put(geometry.Point{X: x, Y: r.Max.Y - 1}, c)
	}
	for y := r.Min.Y; y < r.Max.Y; y++ {
		ctx.Put(geometry.Point{X: r.Min.X, Y: y}, c)
		ctx.Put(geometry.Point{X: r.Max.X - 1, Y: y}, c)
	}
}

// PushDamage appends a changed region to the frame's damage log. Empty
// rects are dropped.
func (ctx *Context) PushDamage(r geometry.Rect) {
	if r.Empty() || ctx.Damage == nil {
		return
	}
	*ctx.Damage = append(*ctx.Damage, r)
}
