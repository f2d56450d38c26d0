package widget

import (
	stderrors "errors"
	"log/slog"
	"math"

	"github.com/go-ledge/ledge/pkg/color"
	"github.com/go-ledge/ledge/pkg/font"
	"github.com/go-ledge/ledge/pkg/geometry"
	"github.com/go-ledge/ledge/pkg/render"
)

// Icon renders a single character as large as its area permits. The
// glyph is rescaled on resize so its inked box fills the margin-shrunk
// area in whichever dimension binds first.
type Icon struct {
	name string
	font *font.Font
	icon rune

	fg color.Color
	bg color.Color

	margins Margins
	hAlign  geometry.Align
	vAlign  geometry.Align

	run     *font.Run
	runSize geometry.Point

	shouldRedraw bool

	area     geometry.Rect
	areaUsed geometry.Rect

	desiredHeight int
	desiredWidth  int
}

// SetFg changes the glyph color.
func (ic *Icon) SetFg(c color.Color) {
	if c != ic.fg {
		ic.fg = c
		ic.shouldRedraw = true
	}
}

// SetBg changes the background color.
func (ic *Icon) SetBg(c color.Color) {
	if c != ic.bg {
		ic.bg = c
		ic.shouldRedraw = true
	}
}

// renderIcon shapes the icon character so its inked box fits maxSize as
// tightly as possible. It measures at maxSize.Y first, derives the
// scale each axis would allow, and re-shapes at the smaller of the two,
// backing off if hinting pushes the result over the budget.
func (ic *Icon) renderIcon(maxSize geometry.Point) (*font.Run, geometry.Point, error) {
	run, err := ic.font.Layout(string(ic.icon), maxSize.Y)
	if err != nil {
		return nil, geometry.Point{}, err
	}
	box, ok := run.BitmapBounds()
	if !ok {
		return nil, geometry.Point{}, stderrors.New("widget: icon glyph has no bitmap")
	}
	bbW, bbH := box.Dx(), box.Dy()

	widthScale := math.Floor(float64(maxSize.X) * float64(maxSize.Y) / float64(bbW+1))
	heightScale := math.Floor(float64(maxSize.Y) * float64(maxSize.Y) / float64(bbH+1))
	px := int(math.Min(widthScale, heightScale))
	slog.Debug("icon: rescaling glyph",
		"widget", ic.name, "widthScale", widthScale, "heightScale", heightScale)

	for px > 0 {
		run, err = ic.font.Layout(string(ic.icon), px)
		if err != nil {
			return nil, geometry.Point{}, err
		}
		box, ok = run.BitmapBounds()
		if !ok {
			return nil, geometry.Point{}, stderrors.New("widget: icon glyph has no bitmap")
		}
		size := geometry.Point{X: box.Dx(), Y: box.Dy()}
		if size.LessEq(maxSize) {
			return run, size, nil
		}
		px--
	}
	return nil, geometry.Point{}, stderrors.New("widget: icon does not fit its area")
}

// Name implements Widget.
func (ic *Icon) Name() string { return ic.name }

// Area implements Widget.
func (ic *Icon) Area() geometry.Rect { return ic.area }

// AreaUsed reports the margin-shrunk rect the glyph is placed in.
// Composite widgets overlay siblings on it, like a battery's fill bar
// inside the battery outline.
func (ic *Icon) AreaUsed() geometry.Rect { return ic.areaUsed }

// HAlign implements Widget.
func (ic *Icon) HAlign() geometry.Align { return ic.hAlign }

// VAlign implements Widget.
func (ic *Icon) VAlign() geometry.Align { return ic.vAlign }

// DesiredHeight implements Widget.
func (ic *Icon) DesiredHeight() int {
	return ic.desiredHeight + ic.margins.VIn(ic.area)
}

// DesiredWidth implements Widget.
func (ic *Icon) DesiredWidth(height int) int {
	if ic.desiredWidth > 0 {
		return ic.desiredWidth
	}
	h := height
	if ic.desiredHeight > 0 && ic.desiredHeight < h {
		h = ic.desiredHeight
	}
	h -= ic.margins.VIn(ic.area)
	if h <= 0 {
		return 0
	}
	_, size, err := ic.renderIcon(geometry.Point{X: int(^uint(0) >> 1), Y: h})
	if err != nil {
		return 0
	}
	return size.X + ic.margins.HIn(ic.area)
}

// Resize implements Widget.
func (ic *Icon) Resize(area geometry.Rect) {
	if area == ic.area {
		return
	}
	ic.area = area
	ic.areaUsed = ic.margins.Shrink(area)

	used := ic.areaUsed.Size()
	if ic.desiredHeight > 0 && ic.desiredHeight < used.Y {
		used.Y = ic.desiredHeight
	}
	if used.X <= 0 || used.Y <= 0 {
		ic.run = nil
		return
	}

	run, size, err := ic.renderIcon(used)
	if err != nil {
		slog.Warn("icon: resize failed", "widget", ic.name, "err", err)
		ic.run = nil
		return
	}
	ic.run = run
	ic.runSize = size
	ic.shouldRedraw = true
}

// ShouldRedraw implements Widget.
func (ic *Icon) ShouldRedraw() bool {
	return ic.run != nil && ic.shouldRedraw
}

// Draw implements Widget.
func (ic *Icon) Draw(ctx *render.Context) error {
	ic.shouldRedraw = false
	if ic.run == nil {
		return nil
	}

	ctx.FillComposite(ic.area, ic.bg)
	if !ctx.FullRedraw {
		ctx.PushDamage(ic.area)
	}

	placed := ic.areaUsed.PlaceAt(ic.runSize, ic.hAlign, ic.vAlign)
	box, ok := ic.run.BitmapBounds()
	if !ok {
		return nil
	}
	for i := range ic.run.Glyphs {
		g := &ic.run.Glyphs[i]
		g.Rasterize(func(gx, gy int, coverage float64) {
			p := geometry.Point{
				X: placed.Min.X + (gx - box.Min.X),
				Y: placed.Min.Y + (gy - box.Min.Y),
			}
			if p.X < ic.area.Min.X || p.X >= ic.area.Max.X ||
				p.Y < ic.area.Min.Y || p.Y >= ic.area.Max.Y {
				return
			}
			ctx.PutComposite(p, ic.bg.Blend(ic.fg, coverage))
		})
	}
	return nil
}

// Click implements Widget.
func (ic *Icon) Click(ClickType, geometry.Point) error { return nil }

// Motion implements Widget.
func (ic *Icon) Motion(geometry.Point) error { return nil }

// MotionLeave implements Widget.
func (ic *Icon) MotionLeave(geometry.Point) error { return nil }

// IconBuilder configures an Icon.
type IconBuilder struct {
	font *font.Font
	icon rune
	fg   color.Color
	bg   color.Color

	margins Margins
	hAlign  geometry.Align
	vAlign  geometry.Align

	desiredHeight int
	desiredWidth  int
}

// NewIcon returns a builder with default colors.
func NewIcon() IconBuilder {
	return IconBuilder{
		fg: color.Unset,
		bg: color.Clear,
	}
}

// Font sets the typeface; when unset, Build falls back to the bundled
// default face.
func (b IconBuilder) Font(f *font.Font) IconBuilder { b.font = f; return b }

// Icon sets the character to render.
func (b IconBuilder) Icon(r rune) IconBuilder { b.icon = r; return b }

// Fg sets the glyph color.
func (b IconBuilder) Fg(c color.Color) IconBuilder { b.fg = c; return b }

// Bg sets the background color.
func (b IconBuilder) Bg(c color.Color) IconBuilder { b.bg = c; return b }

// DesiredHeight caps the glyph height in pixels.
func (b IconBuilder) DesiredHeight(h int) IconBuilder { b.desiredHeight = h; return b }

// DesiredWidth pins the reported width instead of measuring the glyph.
func (b IconBuilder) DesiredWidth(w int) IconBuilder { b.desiredWidth = w; return b }

// HAlign sets the horizontal alignment of the glyph.
func (b IconBuilder) HAlign(a geometry.Align) IconBuilder { b.hAlign = a; return b }

// VAlign sets the vertical alignment of the glyph.
func (b IconBuilder) VAlign(a geometry.Align) IconBuilder { b.vAlign = a; return b }

// Margins sets the per-edge inset ratios.
func (b IconBuilder) Margins(m Margins) IconBuilder { b.margins = m; return b }

// HMargins splits a combined horizontal inset ratio across both sides.
func (b IconBuilder) HMargins(m float64) IconBuilder {
	b.margins.Left = m / 2
	b.margins.Right = m / 2
	return b
}

// VMargins splits a combined vertical inset ratio across both sides.
func (b IconBuilder) VMargins(m float64) IconBuilder {
	b.margins.Top = m / 2
	b.margins.Bottom = m / 2
	return b
}

// Build validates the configuration and constructs the Icon.
func (b IconBuilder) Build(name string) (*Icon, error) {
	if b.icon == 0 {
		return nil, stderrors.New("widget: icon character required")
	}
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
	return &Icon{
		name:          name,
		font:          f,
		icon:          b.icon,
		fg:            b.fg,
		bg:            b.bg,
		margins:       b.margins,
		hAlign:        b.hAlign,
		vAlign:        b.vAlign,
		desiredHeight: b.desiredHeight,
		desiredWidth:  b.desiredWidth,
	}, nil
}
