// Package display is the boundary between the bar and the windowing
// layer. The renderer only needs a pixel buffer, a way to commit damage
// rectangles, and resize/pointer notifications; everything transport
// specific lives behind the Display interface.
package display

import (
	"github.com/go-ledge/ledge/pkg/geometry"
	"github.com/go-ledge/ledge/pkg/widget"
)

// PointerKind distinguishes pointer event types.
type PointerKind int

const (
	// PointerMotion reports the pointer moving within the canvas.
	PointerMotion PointerKind = iota
	// PointerLeave reports the pointer leaving the canvas.
	PointerLeave
	// PointerPress reports a button press.
	PointerPress
)

// PointerEvent is an already-resolved pointer event in canvas
// coordinates.
type PointerEvent struct {
	Kind   PointerKind
	Button widget.ClickType
	Pos    geometry.Point
}

// Display abstracts one output surface. Implementations deliver
// callbacks only from inside Poll, on the caller's goroutine, so the
// frame loop stays single-threaded.
type Display interface {
	// Size returns the canvas extent in pixels.
	Size() geometry.Point

	// Buffer returns the row-major ARGB8888 pixel buffer for the
	// current size. The slice is only valid until the next resize.
	Buffer() []byte

	// Commit submits the listed damage rectangles to the output. A
	// full-redraw frame passes the single full canvas rect.
	Commit(damage []geometry.Rect) error

	// OnResize registers the callback invoked when the output size
	// changes. The buffer is already reallocated when it fires.
	OnResize(func(size geometry.Point))

	// OnPointer registers the callback for pointer events.
	OnPointer(func(ev PointerEvent))

	// Poll drains pending window-system events, invoking the
	// registered callbacks. It never blocks.
	Poll()

	// Close releases the output.
	Close() error
}
