// Package widget defines the widget contract the bar composes: a tree
// of independently sized elements that report desired sizes upward, are
// assigned areas downward, and repaint only what changed each frame.
// It also provides the leaf widgets (TextBox, Icon, Progress) and the
// Container that distributes a shared area among children.
package widget

import (
	"github.com/go-ledge/ledge/pkg/geometry"
	"github.com/go-ledge/ledge/pkg/render"
)

// Widget is one element of the bar. A widget is owned by exactly one
// parent; the parent assigns its area via Resize and drives the redraw
// and input cycle every frame.
type Widget interface {
	// Name identifies the widget in logs.
	Name() string

	// Area returns the rect the parent last assigned.
	Area() geometry.Rect

	// HAlign returns the horizontal alignment within the assigned area.
	HAlign() geometry.Align

	// VAlign returns the vertical alignment within the assigned area.
	VAlign() geometry.Align

	// DesiredHeight returns the preferred height in pixels. Heights are
	// committed top-down before widths are queried.
	DesiredHeight() int

	// DesiredWidth returns the preferred width at the given committed
	// height.
	DesiredWidth(height int) int

	// Resize assigns the widget a new area. Calling it twice with the
	// same area must be idempotent; implementations skip re-layout work
	// when nothing changed.
	Resize(area geometry.Rect)

	// ShouldRedraw reports whether the widget needs a repaint. It may
	// side-effect (poll a data source, advance animation state), so the
	// parent must call it exactly once per frame per widget.
	ShouldRedraw() bool

	// Draw paints the widget into the frame's context.
	Draw(ctx *render.Context) error

	// Click delivers a pointer button event at a canvas-space point.
	Click(button ClickType, p geometry.Point) error

	// Motion reports that the pointer moved into or within the widget.
	Motion(p geometry.Point) error

	// MotionLeave reports that the pointer left the widget.
	MotionLeave(p geometry.Point) error
}

// ClickType is the pointer button of a click event.
type ClickType int

const (
	LeftClick ClickType = iota
	RightClick
	MiddleClick
	OtherClick
)

// ClickTypeFromCode maps a Linux input event code to a ClickType.
func ClickTypeFromCode(button uint32) ClickType {
	switch button {
	case 272:
		return LeftClick
	case 273:
		return RightClick
	case 274:
		return MiddleClick
	default:
		return OtherClick
	}
}

func (c ClickType) String() string {
	switch c {
	case LeftClick:
		return "left"
	case RightClick:
		return "right"
	case MiddleClick:
		return "middle"
	default:
		return "other"
	}
}

// Margins are per-edge insets expressed as ratios of the widget's
// current area: top and bottom against its height, left and right
// against its width. A zero Margins shrinks nothing.
type Margins struct {
	Top    float64
	Bottom float64
	Left   float64
	Right  float64
}

// TopIn returns the top inset in pixels for the given area.
func (m Margins) TopIn(area geometry.Rect) int {
	return int(float64(area.Height()) * m.Top)
}

// BottomIn returns the bottom inset in pixels for the given area.
func (m Margins) BottomIn(area geometry.Rect) int {
	return int(float64(area.Height()) * m.Bottom)
}

// LeftIn returns the left inset in pixels for the given area.
func (m Margins) LeftIn(area geometry.Rect) int {
	return int(float64(area.Width()) * m.Left)
}

// RightIn returns the right inset in pixels for the given area.
func (m Margins) RightIn(area geometry.Rect) int {
	return int(float64(area.Width()) * m.Right)
}

// VIn returns the combined vertical insets in pixels.
func (m Margins) VIn(area geometry.Rect) int {
	return m.TopIn(area) + m.BottomIn(area)
}

// HIn returns the combined horizontal insets in pixels.
func (m Margins) HIn(area geometry.Rect) int {
	return m.LeftIn(area) + m.RightIn(area)
}

// Shrink returns area with all four insets removed. The result may be
// empty when the margins consume the whole area.
func (m Margins) Shrink(area geometry.Rect) geometry.Rect {
	return area.
		ShrinkTop(m.TopIn(area)).
		ShrinkBottom(m.BottomIn(area)).
		ShrinkLeft(m.LeftIn(area)).
		ShrinkRight(m.RightIn(area))
}

// valid reports whether every ratio lies in [0, 1].
func (m Margins) valid() bool {
	for _, v := range [...]float64{m.Top, m.Bottom, m.Left, m.Right} {
		if v < 0 || v > 1 {
			return false
		}
	}
	return true
}
