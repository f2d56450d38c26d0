package status

import (
	"strconv"
	"time"

	"github.com/go-ledge/ledge/pkg/color"
	"github.com/go-ledge/ledge/pkg/font"
	"github.com/go-ledge/ledge/pkg/geometry"
	"github.com/go-ledge/ledge/pkg/render"
	"github.com/go-ledge/ledge/pkg/widget"
)

// UpdatedLast renders a humanized "N <units> Ago" label measuring the
// time since a fixed reference point, such as the last system update.
type UpdatedLast struct {
	since time.Time
	now   func() time.Time
	text  *widget.TextBox
}

// maxLabelLen is the longest label sinceLabel produces, used to size
// the widget before the first draw.
const maxLabelLen = len("59 Minutes Ago")

// sinceLabel humanizes a time delta with the coarsest unit that has a
// non-zero count. Anything over two weeks is nagged about instead of
// counted.
func sinceLabel(d time.Duration) string {
	if d < 0 {
		return "The Future?"
	}

	days := int(d.Hours() / 24)
	switch {
	case days > 14:
		return "UPDATE NOW!"
	case days == 1:
		return "1 Day Ago"
	case days > 1:
		return strconv.Itoa(days) + " Days Ago"
	}

	hours := int(d.Hours())
	switch {
	case hours == 1:
		return "1 Hour Ago"
	case hours > 1:
		return strconv.Itoa(hours) + " Hours Ago"
	}

	minutes := int(d.Minutes())
	switch {
	case minutes == 1:
		return "1 Minute Ago"
	case minutes > 1:
		return strconv.Itoa(minutes) + " Minutes Ago"
	}

	return "Now"
}

// Name implements Widget.
func (u *UpdatedLast) Name() string { return u.text.Name() }

// Area implements Widget.
func (u *UpdatedLast) Area() geometry.Rect { return u.text.Area() }

// HAlign implements Widget.
func (u *UpdatedLast) HAlign() geometry.Align { return u.text.HAlign() }

// VAlign implements Widget.
func (u *UpdatedLast) VAlign() geometry.Align { return u.text.VAlign() }

// DesiredHeight implements Widget.
func (u *UpdatedLast) DesiredHeight() int { return u.text.DesiredHeight() }

// DesiredWidth implements Widget. Sized for the widest label rather
// than the current one, so the placement survives label changes.
func (u *UpdatedLast) DesiredWidth(height int) int {
	return height * maxLabelLen * 2 / 3
}

// Resize implements Widget.
func (u *UpdatedLast) Resize(area geometry.Rect) { u.text.Resize(area) }

// ShouldRedraw implements Widget.
func (u *UpdatedLast) ShouldRedraw() bool {
	u.text.SetText(sinceLabel(u.now().Sub(u.since)))
	return u.text.ShouldRedraw()
}

// Draw implements Widget.
func (u *UpdatedLast) Draw(ctx *render.Context) error { return u.text.Draw(ctx) }

// Click implements Widget.
func (u *UpdatedLast) Click(b widget.ClickType, p geometry.Point) error {
	return u.text.Click(b, p)
}

// Motion implements Widget.
func (u *UpdatedLast) Motion(p geometry.Point) error { return u.text.Motion(p) }

// MotionLeave implements Widget.
func (u *UpdatedLast) MotionLeave(p geometry.Point) error { return u.text.MotionLeave(p) }

// UpdatedLastBuilder configures an UpdatedLast widget.
type UpdatedLastBuilder struct {
	font          *font.Font
	since         time.Time
	desiredHeight int
	hAlign        geometry.Align
	vAlign        geometry.Align
	fg            color.Color
	bg            color.Color

	now func() time.Time
}

// NewUpdatedLast returns a builder; the reference time defaults to the
// Unix epoch, which renders as the update nag.
func NewUpdatedLast() UpdatedLastBuilder {
	return UpdatedLastBuilder{
		since: time.Unix(0, 0),
		fg:    color.Rose,
		bg:    color.Unset,
		now:   time.Now,
	}
}

// Font sets the label typeface.
func (b UpdatedLastBuilder) Font(f *font.Font) UpdatedLastBuilder { b.font = f; return b }

// Since sets the reference time the label measures from.
func (b UpdatedLastBuilder) Since(t time.Time) UpdatedLastBuilder { b.since = t; return b }

// DesiredHeight sets the label height in pixels.
func (b UpdatedLastBuilder) DesiredHeight(h int) UpdatedLastBuilder { b.desiredHeight = h; return b }

// HAlign sets the widget's horizontal alignment.
func (b UpdatedLastBuilder) HAlign(a geometry.Align) UpdatedLastBuilder { b.hAlign = a; return b }

// VAlign sets the widget's vertical alignment.
func (b UpdatedLastBuilder) VAlign(a geometry.Align) UpdatedLastBuilder { b.vAlign = a; return b }

// Fg sets the label color.
func (b UpdatedLastBuilder) Fg(c color.Color) UpdatedLastBuilder { b.fg = c; return b }

// Bg sets the background color.
func (b UpdatedLastBuilder) Bg(c color.Color) UpdatedLastBuilder { b.bg = c; return b }

// Now overrides the time source.
func (b UpdatedLastBuilder) Now(now func() time.Time) UpdatedLastBuilder { b.now = now; return b }

// Build constructs the UpdatedLast widget.
func (b UpdatedLastBuilder) Build(name string) (*UpdatedLast, error) {
	text, err := widget.NewTextBox().
		Font(b.font).
		Fg(b.fg).
		Bg(b.bg).
		HAlign(b.hAlign).
		VAlign(b.vAlign).
		DesiredHeight(b.desiredHeight * 20 / 23).
		Build(name)
	if err != nil {
		return nil, err
	}
	return &UpdatedLast{
		since: b.since,
		now:   b.now,
		text:  text,
	}, nil
}
