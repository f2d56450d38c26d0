// Package app drives the bar's frame loop. Each frame polls the
// display for window-system events, asks every top-level widget exactly
// once whether it wants a repaint, draws the flagged widgets into the
// display's buffer, and commits the accumulated damage rectangles.
package app

import (
	"log/slog"
	"time"

	"github.com/go-ledge/ledge/pkg/color"
	"github.com/go-ledge/ledge/pkg/display"
	"github.com/go-ledge/ledge/pkg/errors"
	"github.com/go-ledge/ledge/pkg/geometry"
	"github.com/go-ledge/ledge/pkg/render"
	"github.com/go-ledge/ledge/pkg/widget"
)

// App owns the top-level widgets and the frame state shared between
// them: the damage log and the pending full-redraw flag. It is not safe
// for concurrent use; Frame, like the display callbacks it triggers,
// runs on one goroutine.
type App struct {
	disp       display.Display
	background color.Color
	widgets    []widget.Widget

	// flagged buffers each widget's ShouldRedraw answer between the
	// poll and draw passes of the current frame.
	flagged []bool

	damage     []geometry.Rect
	fullRedraw bool

	// lastPointer tracks the hovered widget across frames so crossing
	// from one top-level widget to another delivers MotionLeave.
	lastPointer geometry.Point
	hasPointer  bool
}

// New wires an App to the display and lays the widgets out at the
// display's current size. The first Frame call performs a full redraw.
func New(disp display.Display, background color.Color, widgets ...widget.Widget) *App {
	a := &App{
		disp:       disp,
		background: background,
		widgets:    widgets,
		flagged:    make([]bool, len(widgets)),
	}
	disp.OnResize(a.handleResize)
	disp.OnPointer(a.handlePointer)
	a.layout(disp.Size())
	return a
}

// layout assigns every widget its area: desired sizes clamped to the
// canvas, placed by the widget's own alignment. A relayout invalidates
// the whole canvas.
func (a *App) layout(size geometry.Point) {
	canvas := geometry.RectFromSize(geometry.Point{}, size)
	for _, w := range a.widgets {
		h := min(w.DesiredHeight(), size.Y)
		wd := min(w.DesiredWidth(h), size.X)
		if h <= 0 || wd <= 0 {
			continue
		}
		w.Resize(canvas.PlaceAt(geometry.Point{X: wd, Y: h}, w.HAlign(), w.VAlign()))
	}
	a.fullRedraw = true
}

func (a *App) handleResize(size geometry.Point) {
	slog.Debug("app: resized", "width", size.X, "height", size.Y)
	a.layout(size)
}

// widgetAt returns the top-level widget whose area contains p, or nil.
func (a *App) widgetAt(p geometry.Point) widget.Widget {
	for _, w := range a.widgets {
		if area := w.Area(); !area.IsZero() && area.Contains(p) {
			return w
		}
	}
	return nil
}

func (a *App) handlePointer(ev display.PointerEvent) {
	var err error
	var target widget.Widget

	switch ev.Kind {
	case display.PointerPress:
		if target = a.widgetAt(ev.Pos); target != nil {
			err = target.Click(ev.Button, ev.Pos)
		}
	case display.PointerMotion:
		var prev widget.Widget
		if a.hasPointer {
			prev = a.widgetAt(a.lastPointer)
		}
		target = a.widgetAt(ev.Pos)
		if prev != nil && prev != target {
			if leaveErr := prev.MotionLeave(ev.Pos); leaveErr != nil {
				a.reportPointer(prev, leaveErr)
			}
		}
		a.lastPointer = ev.Pos
		a.hasPointer = true
		if target != nil {
			err = target.Motion(ev.Pos)
		}
	case display.PointerLeave:
		if a.hasPointer {
			a.hasPointer = false
			if target = a.widgetAt(a.lastPointer); target != nil {
				err = target.MotionLeave(ev.Pos)
			}
		}
	}

	if err != nil {
		a.reportPointer(target, err)
	}
}

// reportPointer logs a failed input handler. One widget mishandling a
// click never stalls the frame loop.
func (a *App) reportPointer(w widget.Widget, err error) {
	errors.Report(&errors.Error{
		Op:        "app.pointer",
		Kind:      errors.KindUnknown,
		Widget:    w.Name(),
		Err:       err,
		Timestamp: time.Now(),
	})
}

// Frame runs one iteration of the loop: poll display events, query
// every widget once, draw, commit. It returns without committing when
// no widget changed. Commit errors are the display's and propagate.
func (a *App) Frame() error {
	a.disp.Poll()

	size := a.disp.Size()
	if size.X <= 0 || size.Y <= 0 {
		return nil
	}

	// Every widget is asked even after one says yes; the query is the
	// once-per-frame poll that advances widget state.
	any := false
	for i, w := range a.widgets {
		a.flagged[i] = w.ShouldRedraw()
		any = any || a.flagged[i]
	}
	if !any && !a.fullRedraw {
		return nil
	}

	canvas := geometry.RectFromSize(geometry.Point{}, size)
	ctx := &render.Context{
		Canvas:     a.disp.Buffer(),
		Rect:       canvas,
		FullRedraw: a.fullRedraw,
		Damage:     &a.damage,
	}

	if a.fullRedraw {
		ctx.Fill(canvas, a.background)
	}
	for i, w := range a.widgets {
		if !a.flagged[i] && !a.fullRedraw {
			continue
		}
		if err := w.Draw(ctx); err != nil {
			// The widget keeps running; it repaints whenever it next
			// reports a redraw.
			errors.Report(&errors.Error{
				Op:        "app.draw",
				Kind:      errors.KindRender,
				Widget:    w.Name(),
				Err:       err,
				Timestamp: time.Now(),
			})
		}
	}

	if a.fullRedraw {
		// The whole canvas goes out as one damage unit; whatever the
		// widgets logged is subsumed by it.
		a.damage = append(a.damage[:0], canvas)
		a.fullRedraw = false
	}

	err := a.disp.Commit(a.damage)
	a.damage = a.damage[:0]
	return err
}

// InvalidateAll forces the next frame to repaint the entire canvas.
func (a *App) InvalidateAll() {
	a.fullRedraw = true
}
