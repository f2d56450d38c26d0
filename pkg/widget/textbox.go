package widget

import (
	stderrors "errors"
	"log/slog"
	"strings"
	"unicode/utf8"

	"github.com/go-ledge/ledge/pkg/color"
	"github.com/go-ledge/ledge/pkg/errors"
	"github.com/go-ledge/ledge/pkg/font"
	"github.com/go-ledge/ledge/pkg/geometry"
	"github.com/go-ledge/ledge/pkg/render"
)

// redrawState tracks how much of a TextBox needs repainting.
// redrawNone means nothing, redrawFull the whole placement rect;
// positive values repaint from that glyph index to the end.
type redrawState int

const (
	redrawNone redrawState = 0
	redrawFull redrawState = -1
)

// TextBox renders a mutable text label and repaints only the suffix of
// the string that changed. When a clock ticks from 14:31:06 to
// 14:31:07 only the last digit's region is erased and repainted, and
// only that region lands in the damage log.
type TextBox struct {
	name string
	font *font.Font

	text string
	run  *font.Run

	fg color.Color
	bg color.Color

	hoverFg  color.Color
	hoverBg  color.Color
	hasHover bool

	// drawn* is the pair actually painted, which differs from fg/bg
	// while the pointer hovers the widget.
	drawnFg color.Color
	drawnBg color.Color
	hovered bool

	margins Margins
	hAlign  geometry.Align
	vAlign  geometry.Align

	desiredHeight int
	desiredWidth  int

	area     geometry.Rect
	areaUsed geometry.Rect

	redraw  redrawState
	onClick func(ClickType, geometry.Point) error
}

// SetText replaces the label text, scheduling the smallest repaint that
// covers the change. Whitespace is trimmed; an empty result clears the
// glyph cache and schedules nothing, leaving the widget invisible.
//
// The change detector compares only the common prefix of old and new
// text. A change that extends or truncates the text without altering
// that prefix therefore schedules no repaint; callers render into
// fixed-width labels where this does not arise.
func (t *TextBox) SetText(text string) {
	text = strings.TrimSpace(text)
	if text == "" {
		t.text = ""
		t.run = nil
		return
	}
	if t.text == "" {
		t.text = text
		t.redraw = redrawFull
		t.relayout()
		return
	}

	old := []rune(t.text)
	cur := []rune(text)
	diff := -1
	for i := 0; i < len(old) && i < len(cur); i++ {
		if old[i] != cur[i] {
			diff = i
			break
		}
	}
	t.text = text
	if diff >= 0 {
		t.mergeRedraw(diff)
	}
	t.relayout()
}

// mergeRedraw folds a newly detected change at glyph idx into any
// pending state: full dominates, and of two partials the earlier wins.
func (t *TextBox) mergeRedraw(idx int) {
	switch {
	case idx <= 0:
		t.redraw = redrawFull
	case t.redraw == redrawFull:
	case t.redraw == redrawNone:
		t.redraw = redrawState(idx)
	case redrawState(idx) < t.redraw:
		t.redraw = redrawState(idx)
	}
}

// relayout shapes the current text at the available height. If the run
// overflows the available width the text is re-measured at a reduced
// height and the pending state is promoted to a full repaint, since
// every glyph moved.
func (t *TextBox) relayout() {
	if t.text == "" || t.font == nil || t.areaUsed.Empty() {
		t.run = nil
		return
	}

	px := t.areaUsed.Height()
	if t.desiredHeight > 0 && t.desiredHeight < px {
		px = t.desiredHeight
	}
	if px <= 0 {
		t.run = nil
		return
	}

	run, err := t.font.Layout(t.text, px)
	if err != nil {
		t.reportLayout(err)
		return
	}
	if run.Width > t.areaUsed.Width() {
		n := utf8.RuneCountInString(t.text)
		if constrained := t.areaUsed.Width() / n; constrained < px {
			px = constrained
		}
		if px <= 0 {
			t.run = nil
			return
		}
		slog.Debug("textbox: reducing text height to fit",
			"widget", t.name, "height", px, "width", t.areaUsed.Width())
		run, err = t.font.Layout(t.text, px)
		if err != nil {
			t.reportLayout(err)
			return
		}
		t.redraw = redrawFull
	}
	t.run = run
}

func (t *TextBox) reportLayout(err error) {
	t.run = nil
	errors.Report(&errors.Error{
		Op:     "textbox.relayout",
		Kind:   errors.KindRender,
		Widget: t.name,
		Err:    err,
	})
}

// SetFg changes the at-rest foreground color.
func (t *TextBox) SetFg(c color.Color) {
	if c == t.fg {
		return
	}
	t.fg = c
	if !t.hovered {
		t.drawnFg = c
		t.redraw = redrawFull
	}
}

// SetBg changes the at-rest background color.
func (t *TextBox) SetBg(c color.Color) {
	if c == t.bg {
		return
	}
	t.bg = c
	if !t.hovered {
		t.drawnBg = c
		t.redraw = redrawFull
	}
}

// Name implements Widget.
func (t *TextBox) Name() string { return t.name }

// Area implements Widget.
func (t *TextBox) Area() geometry.Rect { return t.area }

// HAlign implements Widget.
func (t *TextBox) HAlign() geometry.Align { return t.hAlign }

// VAlign implements Widget.
func (t *TextBox) VAlign() geometry.Align { return t.vAlign }

// DesiredHeight implements Widget.
func (t *TextBox) DesiredHeight() int {
	return t.desiredHeight + t.margins.VIn(t.area)
}

// DesiredWidth implements Widget. The width is measured by shaping the
// current text at the committed height.
func (t *TextBox) DesiredWidth(height int) int {
	if t.desiredWidth > 0 {
		return t.desiredWidth
	}
	if t.text == "" || t.font == nil {
		return 0
	}
	px := height - t.margins.VIn(t.area)
	if t.desiredHeight > 0 && t.desiredHeight < px {
		px = t.desiredHeight
	}
	if px <= 0 {
		return 0
	}
	run, err := t.font.Layout(t.text, px)
	if err != nil {
		return 0
	}
	return run.Width + t.margins.HIn(t.area)
}

// Resize implements Widget.
func (t *TextBox) Resize(area geometry.Rect) {
	if area == t.area {
		return
	}
	slog.Debug("textbox: resized", "widget", t.name, "from", t.area, "to", area)
	t.area = area
	t.areaUsed = t.margins.Shrink(area)
	t.redraw = redrawFull
	t.relayout()
}

// ShouldRedraw implements Widget.
func (t *TextBox) ShouldRedraw() bool {
	return t.run != nil && t.redraw != redrawNone
}

// Draw implements Widget. The background is written with a raw fill so
// stale glyph pixels cannot survive a repaint; a Clear background skips
// the fill entirely, leaving erasure to whichever widget owns the area
// underneath.
func (t *TextBox) Draw(ctx *render.Context) error {
	pending := t.redraw
	t.redraw = redrawNone
	if t.run == nil || len(t.run.Glyphs) == 0 || t.area.IsZero() {
		return nil
	}
	box, ok := t.run.BitmapBounds()
	if !ok {
		return nil
	}

	size := geometry.Point{
		X: min(t.run.Width, t.areaUsed.Width()),
		Y: min(box.Dy(), t.areaUsed.Height()),
	}
	if size.X <= 0 || size.Y <= 0 {
		return nil
	}
	placed := t.areaUsed.PlaceAt(size, t.hAlign, t.vAlign)

	partial := 0
	if !ctx.FullRedraw && pending > 0 && int(pending) < len(t.run.Glyphs) {
		partial = int(pending)
	}

	if partial > 0 {
		// Everything left of glyph partial is unchanged; erase and
		// repaint only from the previous glyph's advance position on.
		xStart := placed.Min.X + t.run.Glyphs[partial-1].Advance
		if xStart >= t.area.Max.X {
			return nil
		}
		sub := geometry.Rect{
			Min: geometry.Point{X: xStart, Y: t.area.Min.Y},
			Max: t.area.Max,
		}
		if t.drawnBg != color.Clear {
			ctx.Fill(sub, t.drawnBg)
		}
		for i := partial; i < len(t.run.Glyphs); i++ {
			t.paintGlyph(ctx, &t.run.Glyphs[i], placed, box.Min.Y)
		}
		ctx.PushDamage(sub)
		return nil
	}

	if t.drawnBg != color.Clear {
		ctx.Fill(t.area, t.drawnBg)
	}
	for i := range t.run.Glyphs {
		t.paintGlyph(ctx, &t.run.Glyphs[i], placed, box.Min.Y)
	}
	if !ctx.FullRedraw {
		ctx.PushDamage(t.area)
	}
	return nil
}

// paintGlyph composites one glyph at its laid-out position. Pixels the
// rasterizer produces outside the widget's area are clipped.
func (t *TextBox) paintGlyph(ctx *render.Context, g *font.Glyph, placed geometry.Rect, boxMinY int) {
	g.Rasterize(func(gx, gy int, coverage float64) {
		p := geometry.Point{
			X: placed.Min.X + gx,
			Y: placed.Min.Y + (gy - boxMinY),
		}
		if p.X < t.area.Min.X || p.X >= t.area.Max.X ||
			p.Y < t.area.Min.Y || p.Y >= t.area.Max.Y {
			return
		}
		ctx.PutComposite(p, t.drawnBg.Blend(t.drawnFg, coverage))
	})
}

// Click implements Widget.
func (t *TextBox) Click(button ClickType, p geometry.Point) error {
	if t.onClick == nil {
		return nil
	}
	return t.onClick(button, p)
}

// Motion implements Widget. Entering swaps in the hover color pair and
// forces a full repaint the first time the colors actually change.
func (t *TextBox) Motion(_ geometry.Point) error {
	if !t.hasHover || t.hovered {
		return nil
	}
	t.hovered = true
	if t.drawnFg != t.hoverFg || t.drawnBg != t.hoverBg {
		t.drawnFg = t.hoverFg
		t.drawnBg = t.hoverBg
		t.redraw = redrawFull
	}
	return nil
}

// MotionLeave implements Widget.
func (t *TextBox) MotionLeave(_ geometry.Point) error {
	if !t.hovered {
		return nil
	}
	t.hovered = false
	if t.drawnFg != t.fg || t.drawnBg != t.bg {
		t.drawnFg = t.fg
		t.drawnBg = t.bg
		t.redraw = redrawFull
	}
	return nil
}

// TextBoxBuilder configures a TextBox. Both colors default to the
// conspicuous Unset, so a box whose colors were never assigned is
// obvious on screen. Builders are plain values; copying one to stamp
// out several similar boxes is fine.
type TextBoxBuilder struct {
	font     *font.Font
	text     string
	fg       color.Color
	bg       color.Color
	hoverFg  color.Color
	hoverBg  color.Color
	hasHover bool

	margins Margins
	hAlign  geometry.Align
	vAlign  geometry.Align

	desiredHeight int
	desiredWidth  int

	onClick func(ClickType, geometry.Point) error
}

// NewTextBox returns a builder with default colors.
func NewTextBox() TextBoxBuilder {
	return TextBoxBuilder{
		fg: color.Unset,
		bg: color.Unset,
	}
}

// Font sets the typeface; when unset, Build falls back to the bundled
// default face.
func (b TextBoxBuilder) Font(f *font.Font) TextBoxBuilder { b.font = f; return b }

// Text sets the initial label text.
func (b TextBoxBuilder) Text(s string) TextBoxBuilder { b.text = s; return b }

// Fg sets the at-rest foreground color.
func (b TextBoxBuilder) Fg(c color.Color) TextBoxBuilder { b.fg = c; return b }

// Bg sets the at-rest background color. Clear marks the box as
// transparent: Draw blends glyphs over whatever is already on the
// canvas and never erases, so the owning widget must repaint the area
// itself.
func (b TextBoxBuilder) Bg(c color.Color) TextBoxBuilder { b.bg = c; return b }

// Hover sets the color pair painted while the pointer is over the box.
func (b TextBoxBuilder) Hover(fg, bg color.Color) TextBoxBuilder {
	b.hoverFg = fg
	b.hoverBg = bg
	b.hasHover = true
	return b
}

// DesiredHeight sets the preferred text height in pixels.
func (b TextBoxBuilder) DesiredHeight(h int) TextBoxBuilder { b.desiredHeight = h; return b }

// DesiredWidth pins the reported width instead of measuring the text.
func (b TextBoxBuilder) DesiredWidth(w int) TextBoxBuilder { b.desiredWidth = w; return b }

// HAlign sets the horizontal alignment of the glyph run.
func (b TextBoxBuilder) HAlign(a geometry.Align) TextBoxBuilder { b.hAlign = a; return b }

// VAlign sets the vertical alignment of the glyph run.
func (b TextBoxBuilder) VAlign(a geometry.Align) TextBoxBuilder { b.vAlign = a; return b }

// Margins sets the per-edge inset ratios.
func (b TextBoxBuilder) Margins(m Margins) TextBoxBuilder { b.margins = m; return b }

// HMargins splits a combined horizontal inset ratio across both sides.
func (b TextBoxBuilder) HMargins(m float64) TextBoxBuilder {
	b.margins.Left = m / 2
	b.margins.Right = m / 2
	return b
}

// VMargins splits a combined vertical inset ratio across both sides.
func (b TextBoxBuilder) VMargins(m float64) TextBoxBuilder {
	b.margins.Top = m / 2
	b.margins.Bottom = m / 2
	return b
}

// OnClick installs a click handler.
func (b TextBoxBuilder) OnClick(fn func(ClickType, geometry.Point) error) TextBoxBuilder {
	b.onClick = fn
	return b
}

// Build validates the configuration and constructs the TextBox.
func (b TextBoxBuilder) Build(name string) (*TextBox, error) {
	if !b.margins.valid() {
		return nil, stderrors.New("widget: margin ratios must lie in [0, 1]")
	}
	f := b.font
	if f == nil {
		var err error
		f, err = font.DefaultErr()
		if err != nil {
			return nil, err
		}
	}
	t := &TextBox{
		name:          name,
		font:          f,
		fg:            b.fg,
		bg:            b.bg,
		hoverFg:       b.hoverFg,
		hoverBg:       b.hoverBg,
		hasHover:      b.hasHover,
		drawnFg:       b.fg,
		drawnBg:       b.bg,
		margins:       b.margins,
		hAlign:        b.hAlign,
		vAlign:        b.vAlign,
		desiredHeight: b.desiredHeight,
		desiredWidth:  b.desiredWidth,
		onClick:       b.onClick,
	}
	t.SetText(b.text)
	return t, nil
}
