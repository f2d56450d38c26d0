package widget

import (
	stderrors "errors"

	"github.com/go-ledge/ledge/pkg/color"
	"github.com/go-ledge/ledge/pkg/geometry"
	"github.com/go-ledge/ledge/pkg/render"
)

// Progress renders a directional fill: a bar that grows toward its
// fill direction as the value moves from the lower to the upper bound.
type Progress struct {
	name string

	filledColor   color.Color
	unfilledColor color.Color
	bg            color.Color

	fillDirection geometry.Direction

	// The value range mapped onto [empty, full].
	lowerBound float64
	span       float64

	// ratioUnfilled is 1 - normalized value, the fraction of the bar
	// left unfilled.
	ratioUnfilled float64

	margins Margins
	hAlign  geometry.Align
	vAlign  geometry.Align

	shouldRedraw bool
	area         geometry.Rect
	areaUsed     geometry.Rect

	desiredHeight int
	desiredWidth  int
}

// SetProgress updates the bar's value, clamped to the configured
// bounds. The redraw flag is raised only when the drawn fill moves by
// at least one whole pixel; sub-pixel value jitter is absorbed here so
// it never reaches the frame loop.
func (p *Progress) SetProgress(value float64) {
	v := value - p.lowerBound
	if v < 0 {
		v = 0
	}
	if v > p.span {
		v = p.span
	}
	ratio := 1.0
	if p.span > 0 {
		ratio = 1 - v/p.span
	}
	if ratio == p.ratioUnfilled {
		return
	}
	moved := p.areaUsed.Empty() ||
		p.unfilledExtent(ratio) != p.unfilledExtent(p.ratioUnfilled)
	p.ratioUnfilled = ratio
	if moved {
		p.shouldRedraw = true
	}
}

// unfilledExtent converts an unfilled ratio to whole pixels along the
// bar's fill axis.
func (p *Progress) unfilledExtent(ratio float64) int {
	switch p.fillDirection {
	case geometry.East, geometry.West:
		return int(float64(p.areaUsed.Width()) * ratio)
	default:
		return int(float64(p.areaUsed.Height()) * ratio)
	}
}

// SetFilledColor changes the fill color.
func (p *Progress) SetFilledColor(c color.Color) {
	if c != p.filledColor {
		p.filledColor = c
		p.shouldRedraw = true
	}
}

// SetUnfilledColor changes the color of the unfilled remainder.
func (p *Progress) SetUnfilledColor(c color.Color) {
	if c != p.unfilledColor {
		p.unfilledColor = c
		p.shouldRedraw = true
	}
}

// SetBg changes the background color.
func (p *Progress) SetBg(c color.Color) {
	if c != p.bg {
		p.bg = c
		p.shouldRedraw = true
	}
}

// Name implements Widget.
func (p *Progress) Name() string { return p.name }

// Area implements Widget.
func (p *Progress) Area() geometry.Rect { return p.area }

// HAlign implements Widget.
func (p *Progress) HAlign() geometry.Align { return p.hAlign }

// VAlign implements Widget.
func (p *Progress) VAlign() geometry.Align { return p.vAlign }

// DesiredHeight implements Widget.
func (p *Progress) DesiredHeight() int {
	return p.desiredHeight + p.margins.VIn(p.area)
}

// DesiredWidth implements Widget.
func (p *Progress) DesiredWidth(int) int {
	return p.desiredWidth + p.margins.HIn(p.area)
}

// Resize implements Widget.
func (p *Progress) Resize(area geometry.Rect) {
	if area == p.area {
		return
	}
	p.area = area
	p.shouldRedraw = true

	maxArea := p.margins.Shrink(area)
	if maxArea.Empty() {
		p.areaUsed = geometry.Rect{}
		return
	}
	// Unset desired extents mean "use everything available".
	size := maxArea.Size()
	if p.desiredWidth > 0 && p.desiredWidth < size.X {
		size.X = p.desiredWidth
	}
	if p.desiredHeight > 0 && p.desiredHeight < size.Y {
		size.Y = p.desiredHeight
	}
	p.areaUsed = maxArea.PlaceAt(size, p.hAlign, p.vAlign)
}

// ShouldRedraw implements Widget.
func (p *Progress) ShouldRedraw() bool {
	return p.shouldRedraw
}

// Draw implements Widget.
func (p *Progress) Draw(ctx *render.Context) error {
	p.shouldRedraw = false
	if p.area.IsZero() || p.areaUsed.Empty() {
		return nil
	}

	ctx.FillComposite(p.area, p.bg)
	ctx.FillComposite(p.areaUsed, p.unfilledColor)

	unfilled := p.unfilledExtent(p.ratioUnfilled)

	var filled geometry.Rect
	switch p.fillDirection {
	case geometry.North:
		filled = p.areaUsed.ShrinkTop(unfilled)
	case geometry.South:
		filled = p.areaUsed.ShrinkBottom(unfilled)
	case geometry.East:
		filled = p.areaUsed.ShrinkRight(unfilled)
	case geometry.West:
		filled = p.areaUsed.ShrinkLeft(unfilled)
	}
	ctx.FillComposite(filled, p.filledColor)

	if !ctx.FullRedraw {
		ctx.PushDamage(p.area)
	}
	return nil
}

// Click implements Widget.
func (p *Progress) Click(ClickType, geometry.Point) error { return nil }

// Motion implements Widget.
func (p *Progress) Motion(geometry.Point) error { return nil }

// MotionLeave implements Widget.
func (p *Progress) MotionLeave(geometry.Point) error { return nil }

// ProgressBuilder configures a Progress bar.
type ProgressBuilder struct {
	filledColor   color.Color
	unfilledColor color.Color
	bg            color.Color

	fillDirection geometry.Direction

	lowerBound float64
	upperBound float64

	margins Margins
	hAlign  geometry.Align
	vAlign  geometry.Align

	desiredHeight int
	desiredWidth  int
}

// NewProgress returns a builder with default colors and a [0, 1] value
// range.
func NewProgress() ProgressBuilder {
	return ProgressBuilder{
		filledColor:   color.Unset,
		unfilledColor: color.Unset,
		bg:            color.Clear,
		upperBound:    1,
	}
}

// FilledColor sets the fill color.
func (b ProgressBuilder) FilledColor(c color.Color) ProgressBuilder { b.filledColor = c; return b }

// UnfilledColor sets the color of the unfilled remainder.
func (b ProgressBuilder) UnfilledColor(c color.Color) ProgressBuilder { b.unfilledColor = c; return b }

// Bg sets the background color.
func (b ProgressBuilder) Bg(c color.Color) ProgressBuilder { b.bg = c; return b }

// FillDirection sets which way the fill grows.
func (b ProgressBuilder) FillDirection(d geometry.Direction) ProgressBuilder {
	b.fillDirection = d
	return b
}

// Bounds maps the given value range onto [empty, full].
func (b ProgressBuilder) Bounds(lower, upper float64) ProgressBuilder {
	b.lowerBound = lower
	b.upperBound = upper
	return b
}

// DesiredHeight sets the bar height in pixels.
func (b ProgressBuilder) DesiredHeight(h int) ProgressBuilder { b.desiredHeight = h; return b }

// DesiredWidth sets the bar width in pixels.
func (b ProgressBuilder) DesiredWidth(w int) ProgressBuilder { b.desiredWidth = w; return b }

// HAlign sets the horizontal alignment of the bar within its area.
func (b ProgressBuilder) HAlign(a geometry.Align) ProgressBuilder { b.hAlign = a; return b }

// VAlign sets the vertical alignment of the bar within its area.
func (b ProgressBuilder) VAlign(a geometry.Align) ProgressBuilder { b.vAlign = a; return b }

// Margins sets the per-edge inset ratios.
func (b ProgressBuilder) Margins(m Margins) ProgressBuilder { b.margins = m; return b }

// HMargins splits a combined horizontal inset ratio across both sides.
func (b ProgressBuilder) HMargins(m float64) ProgressBuilder {
	b.margins.Left = m / 2
	b.margins.Right = m / 2
	return b
}

// VMargins splits a combined vertical inset ratio across both sides.
func (b ProgressBuilder) VMargins(m float64) ProgressBuilder {
	b.margins.Top = m / 2
	b.margins.Bottom = m / 2
	return b
}

// Build validates the configuration and constructs the Progress bar.
func (b ProgressBuilder) Build(name string) (*Progress, error) {
	if !b.margins.valid() {
		return nil, stderrors.New("widget: margin ratios must lie in [0, 1]")
	}
	if b.upperBound <= b.lowerBound {
		return nil, stderrors.New("widget: progress bounds must be increasing")
	}
	return &Progress{
		name:          name,
		filledColor:   b.filledColor,
		unfilledColor: b.unfilledColor,
		bg:            b.bg,
		fillDirection: b.fillDirection,
		lowerBound:    b.lowerBound,
		span:          b.upperBound - b.lowerBound,
		ratioUnfilled: 1,
		margins:       b.margins,
		hAlign:        b.hAlign,
		vAlign:        b.vAlign,
		desiredHeight: b.desiredHeight,
		desiredWidth:  b.desiredWidth,
	}, nil
}
