package status

import (
	"log/slog"
	"time"

	"github.com/go-ledge/ledge/pkg/color"
	"github.com/go-ledge/ledge/pkg/errors"
	"github.com/go-ledge/ledge/pkg/font"
	"github.com/go-ledge/ledge/pkg/geometry"
	"github.com/go-ledge/ledge/pkg/render"
	"github.com/go-ledge/ledge/pkg/widget"
)

// log returns a child logger tagged with the widget's name.
func log(widget string) *slog.Logger {
	return slog.With("widget", widget)
}

// visibility is the show/hide state of a threshold gauge.
type visibility int

const (
	// visHidden: below threshold, nothing on screen.
	visHidden visibility = iota
	// visAppearing: crossed above threshold, first paint pending.
	visAppearing
	// visShown: on screen, tracking the sampled value.
	visShown
	// visDisappearing: dropped below threshold, erase pending.
	visDisappearing
)

func (v visibility) String() string {
	switch v {
	case visHidden:
		return "hidden"
	case visAppearing:
		return "appearing"
	case visShown:
		return "shown"
	case visDisappearing:
		return "disappearing"
	default:
		return "invalid"
	}
}

// Gauge is a threshold-gated utilization widget: a glyph over a bar
// that only appears while the sampled value sits above a show
// threshold. CPU and RAM are gauges with different samplers.
//
// sample returns the current value in [0, 1] and must not block; it is
// called at most once per interval.
type Gauge struct {
	name   string
	sample func() (float64, error)
	now    func() time.Time

	threshold   float64
	interval    time.Duration
	lastSampled time.Time

	state    visibility
	barMoved bool
	disabled bool

	bg   color.Color
	area geometry.Rect

	label *widget.TextBox
	bar   *widget.Progress
}

// Name implements Widget.
func (g *Gauge) Name() string { return g.name }

// Area implements Widget.
func (g *Gauge) Area() geometry.Rect { return g.area }

// HAlign implements Widget.
func (g *Gauge) HAlign() geometry.Align { return g.label.HAlign() }

// VAlign implements Widget.
func (g *Gauge) VAlign() geometry.Align { return g.label.VAlign() }

// DesiredHeight implements Widget.
func (g *Gauge) DesiredHeight() int { return g.label.DesiredHeight() }

// DesiredWidth implements Widget. Gauges are square.
func (g *Gauge) DesiredWidth(height int) int { return height }

// Resize implements Widget. Label and bar overlap: the bar fills the
// area and the glyph floats over it.
func (g *Gauge) Resize(area geometry.Rect) {
	g.area = area
	g.label.Resize(area)
	g.bar.Resize(area)
}

// ShouldRedraw implements Widget. Between samples the answer is always
// no: whatever is on screen is current until new data arrives.
func (g *Gauge) ShouldRedraw() bool {
	if g.disabled {
		return false
	}
	now := g.now()
	if now.Sub(g.lastSampled) <= g.interval {
		return false
	}
	g.lastSampled = now

	value, err := g.sample()
	if err != nil {
		errors.Report(&errors.Error{
			Op:     "gauge.sample",
			Kind:   errors.KindSource,
			Widget: g.name,
			Err:    err,
		})
		g.disabled = true
		// An erase pass is still owed if the gauge was on screen.
		return g.state == visShown || g.state == visDisappearing
	}

	return g.observe(value)
}

// observe advances the visibility state machine for one sampled value
// and reports whether a draw pass is needed.
func (g *Gauge) observe(value float64) bool {
	above := value >= g.threshold

	switch g.state {
	case visHidden:
		if !above {
			return false
		}
		g.state = visAppearing
		g.bar.SetProgress(value)
		g.barMoved = true
		log(g.name).Debug("gauge appearing", "value", value)
		return true

	case visAppearing:
		if !above {
			// Never painted, so nothing to erase.
			g.state = visHidden
			return false
		}
		g.bar.SetProgress(value)
		g.barMoved = g.bar.ShouldRedraw() || g.barMoved
		return true

	case visShown:
		if !above {
			g.state = visDisappearing
			log(g.name).Debug("gauge disappearing", "value", value)
			return true
		}
		g.bar.SetProgress(value)
		g.barMoved = g.bar.ShouldRedraw()
		return g.barMoved

	case visDisappearing:
		if above {
			// Still on screen from before; resume tracking.
			g.state = visShown
			g.bar.SetProgress(value)
			g.barMoved = g.bar.ShouldRedraw()
			return g.barMoved
		}
		return true

	default:
		return false
	}
}

// Draw implements Widget.
func (g *Gauge) Draw(ctx *render.Context) error {
	if g.disabled && g.state != visShown && g.state != visDisappearing {
		return nil
	}
	if g.disabled {
		g.state = visHidden
		g.eraseTo(ctx)
		return nil
	}

	switch g.state {
	case visAppearing, visShown:
		if !ctx.FullRedraw && g.state == visShown && !g.barMoved {
			return nil
		}
		g.state = visShown
		g.barMoved = false
		if err := g.bar.Draw(ctx); err != nil {
			return err
		}
		return g.label.Draw(ctx)

	case visDisappearing:
		g.state = visHidden
		g.barMoved = false
		g.eraseTo(ctx)
		return nil

	default:
		if ctx.FullRedraw {
			ctx.Fill(g.area, g.bg)
		}
		return nil
	}
}

// eraseTo raw-fills the gauge's area with its background so no trace of
// the bar or glyph survives the hide transition.
func (g *Gauge) eraseTo(ctx *render.Context) {
	ctx.Fill(g.area, g.bg)
	if !ctx.FullRedraw {
		ctx.PushDamage(g.area)
	}
}

// Click implements Widget.
func (g *Gauge) Click(widget.ClickType, geometry.Point) error { return nil }

// Motion implements Widget.
func (g *Gauge) Motion(geometry.Point) error { return nil }

// MotionLeave implements Widget.
func (g *Gauge) MotionLeave(geometry.Point) error { return nil }

// gaugeBuilder carries the options shared by the CPU and RAM widgets.
type gaugeBuilder struct {
	font          *font.Font
	desiredHeight int
	hAlign        geometry.Align
	vAlign        geometry.Align

	fg        color.Color
	bg        color.Color
	barFilled color.Color

	threshold float64
	interval  time.Duration
	now       func() time.Time
}

func (b gaugeBuilder) build(name string, glyph rune, sample func() (float64, error)) (*Gauge, error) {
	label, err := widget.NewTextBox().
		Font(b.font).
		Text(string(glyph)).
		Fg(b.fg).
		Bg(color.Clear).
		HAlign(geometry.AlignCenterAt(0.575)).
		VAlign(b.vAlign).
		DesiredHeight(b.desiredHeight * 20 / 23).
		Build(name + ".label")
	if err != nil {
		return nil, err
	}

	bar, err := widget.NewProgress().
		FilledColor(b.barFilled).
		UnfilledColor(color.Clear).
		Bg(b.bg).
		Bounds(0, 1).
		FillDirection(geometry.North).
		DesiredHeight(b.desiredHeight).
		Build(name + ".bar")
	if err != nil {
		return nil, err
	}
	bar.SetProgress(0)

	return &Gauge{
		name:      name,
		sample:    sample,
		now:       b.now,
		threshold: b.threshold,
		interval:  b.interval,
		bg:        b.bg,
		label:     label,
		bar:       bar,
	}, nil
}
