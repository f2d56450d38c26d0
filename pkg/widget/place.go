package widget

import (
	"log/slog"

	"github.com/go-ledge/ledge/pkg/geometry"
)

// shrunkWidths queries every widget's desired width at the area's
// height and, when the total overflows the area, scales all of them by
// the same ratio. Scaled widths truncate, so rounding slack accumulates
// as empty space rather than overflow.
func shrunkWidths(widgets []Widget, area geometry.Rect) []int {
	maxWidth := area.Width()
	maxHeight := area.Height()

	widths := make([]int, len(widgets))
	total := 0
	for i, w := range widgets {
		widths[i] = w.DesiredWidth(maxHeight)
		total += widths[i]
	}

	if total > maxWidth {
		scale := float64(maxWidth) / float64(total)
		slog.Debug("widget: shrinking children to fit",
			"total", total, "budget", maxWidth, "scale", scale)
		for i := range widths {
			widths[i] = int(float64(widths[i]) * scale)
		}
	}
	return widths
}

// StackFromLeft places widgets back-to-back starting at the area's left
// edge, shrinking all of them proportionally if their desired widths
// overflow the area. Zero-width children are left unplaced.
//
// The shrunk widths must fit the area; a child that still escapes it,
// for example through a desired width that ignores the probing height,
// is a layout bug and panics.
func StackFromLeft(widgets []Widget, area geometry.Rect) {
	widths := shrunkWidths(widgets, area)

	cursor := area.Min
	for i, w := range widgets {
		width := widths[i]
		if width <= 0 {
			continue
		}
		child := geometry.NewRect(cursor, geometry.Point{X: cursor.X + width, Y: area.Max.Y})
		if !area.ContainsRect(child) {
			panic("widget: stacked child escapes budget: " + child.String())
		}
		w.Resize(child)
		cursor.X += width
	}
}

// StackFromRight places widgets back-to-back starting at the area's
// right edge and growing leftward. The same fit precondition as
// StackFromLeft applies.
func StackFromRight(widgets []Widget, area geometry.Rect) {
	widths := shrunkWidths(widgets, area)

	cursor := area.Max
	for i, w := range widgets {
		width := widths[i]
		if width <= 0 {
			continue
		}
		child := geometry.NewRect(cursor, geometry.Point{X: cursor.X - width, Y: area.Min.Y})
		if !area.ContainsRect(child) {
			panic("widget: stacked child escapes budget: " + child.String())
		}
		w.Resize(child)
		cursor.X -= width
	}
}

// CenterOut places widgets propagating outward from the area's center.
// With an odd count the first widget is centered on the area itself;
// remaining widgets alternate sides, each placed flush against the
// previously placed block on its side, so adjacent children neither gap
// nor overlap.
//
// The proportional shrink guarantees only that the combined widths fit
// the area, not that each alternating side fits its own half. A lopsided
// set whose one side outgrows its remaining span panics in PlaceAt; the
// caller must keep the two sides individually within half the area.
func CenterOut(widgets []Widget, area geometry.Rect) {
	widths := shrunkWidths(widgets, area)
	maxHeight := area.Height()
	mid := area.Min.X + area.Width()/2

	// Spans still open on each side of whatever has been placed.
	left := geometry.Rect{Min: area.Min, Max: geometry.Point{X: mid, Y: area.Max.Y}}
	right := geometry.Rect{Min: geometry.Point{X: mid, Y: area.Min.Y}, Max: area.Max}

	start := 0
	if len(widgets)%2 == 1 {
		width := widths[0]
		if width > 0 {
			placed := area.PlaceAt(
				geometry.Point{X: width, Y: maxHeight},
				geometry.AlignCenter, geometry.AlignCenter,
			)
			widgets[0].Resize(placed)
			left.Max.X = placed.Min.X
			right.Min.X = placed.Max.X
		}
		start = 1
	}

	for i := start; i < len(widgets); i++ {
		width := widths[i]
		if width <= 0 {
			continue
		}
		size := geometry.Point{X: width, Y: maxHeight}
		if i%2 == 0 {
			placed := left.PlaceAt(size, geometry.AlignEnd, geometry.AlignCenter)
			widgets[i].Resize(placed)
			left.Max.X = placed.Min.X
		} else {
			placed := right.PlaceAt(size, geometry.AlignStart, geometry.AlignCenter)
			widgets[i].Resize(placed)
			right.Min.X = placed.Max.X
		}
	}
}
