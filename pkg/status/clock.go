// Package status provides the data-source widgets of the bar: widgets
// that sample a clock, a battery, system load, or a compositor socket
// and render the value through the drawing primitives in pkg/widget.
package status

import (
	"time"

	"github.com/go-ledge/ledge/pkg/color"
	"github.com/go-ledge/ledge/pkg/font"
	"github.com/go-ledge/ledge/pkg/geometry"
	"github.com/go-ledge/ledge/pkg/widget"
)

// Clock renders the local time as hh:mm:ss. Each component is its own
// text box so a ticking second repaints two digits, not the whole
// string. The boxes are laid out center-out with the minutes in the
// middle, which keeps the colons visually balanced at any width.
type Clock struct {
	*widget.Container

	hours   *widget.TextBox
	minutes *widget.TextBox
	seconds *widget.TextBox

	now func() time.Time
}

// ClockBuilder configures a Clock.
type ClockBuilder struct {
	font          *font.Font
	desiredHeight int
	hAlign        geometry.Align
	vAlign        geometry.Align
	digitColor    color.Color
	spacerColor   color.Color
	bg            color.Color

	now func() time.Time
}

// NewClock returns a builder with the palette's clock colors.
func NewClock() ClockBuilder {
	return ClockBuilder{
		digitColor:  color.Rose,
		spacerColor: color.Pine,
		bg:          color.Unset,
		now:         time.Now,
	}
}

// Font sets the typeface for digits and separators.
func (b ClockBuilder) Font(f *font.Font) ClockBuilder { b.font = f; return b }

// DesiredHeight sets the digit height in pixels; separators render at
// half of it.
func (b ClockBuilder) DesiredHeight(h int) ClockBuilder { b.desiredHeight = h; return b }

// HAlign sets the clock's horizontal alignment.
func (b ClockBuilder) HAlign(a geometry.Align) ClockBuilder { b.hAlign = a; return b }

// VAlign sets the clock's vertical alignment.
func (b ClockBuilder) VAlign(a geometry.Align) ClockBuilder { b.vAlign = a; return b }

// DigitColor sets the color of the six digits.
func (b ClockBuilder) DigitColor(c color.Color) ClockBuilder { b.digitColor = c; return b }

// SpacerColor sets the color of the two separators.
func (b ClockBuilder) SpacerColor(c color.Color) ClockBuilder { b.spacerColor = c; return b }

// Bg sets the background the digits and separators erase to.
func (b ClockBuilder) Bg(c color.Color) ClockBuilder { b.bg = c; return b }

// Now overrides the time source.
func (b ClockBuilder) Now(now func() time.Time) ClockBuilder { b.now = now; return b }

// Build constructs the Clock.
func (b ClockBuilder) Build(name string) (*Clock, error) {
	digit := widget.NewTextBox().
		Font(b.font).
		Text("00").
		Fg(b.digitColor).
		Bg(b.bg).
		DesiredHeight(b.desiredHeight)

	hours, err := digit.Build(name + ".hours")
	if err != nil {
		return nil, err
	}
	minutes, err := digit.Build(name + ".minutes")
	if err != nil {
		return nil, err
	}
	seconds, err := digit.Build(name + ".seconds")
	if err != nil {
		return nil, err
	}

	spacer := widget.NewTextBox().
		Font(b.font).
		Text(":").
		Fg(b.spacerColor).
		Bg(b.bg).
		DesiredHeight(b.desiredHeight / 2)

	spacer1, err := spacer.Build(name + ".spacer1")
	if err != nil {
		return nil, err
	}
	spacer2, err := spacer.Build(name + ".spacer2")
	if err != nil {
		return nil, err
	}

	// Center-out placement alternates right, left, right, left after
	// the middle child, so this order comes out as
	// hours spacer minutes spacer seconds.
	container := widget.NewContainer().
		Add(minutes).
		Add(spacer1).
		Add(spacer2).
		Add(seconds).
		Add(hours).
		HAlign(b.hAlign).
		VAlign(b.vAlign).
		DesiredHeight(b.desiredHeight).
		Build(name)

	return &Clock{
		Container: container,
		hours:     hours,
		minutes:   minutes,
		seconds:   seconds,
		now:       b.now,
	}, nil
}

// ShouldRedraw implements Widget. The current time is pushed into the
// digit boxes first, so their own text diffing decides how much of the
// clock actually repaints.
func (c *Clock) ShouldRedraw() bool {
	now := c.now()
	c.hours.SetText(format2Digits(now.Hour()))
	c.minutes.SetText(format2Digits(now.Minute()))
	c.seconds.SetText(format2Digits(now.Second()))
	return c.Container.ShouldRedraw()
}

func format2Digits(n int) string {
	return string([]byte{'0' + byte(n/10%10), '0' + byte(n%10)})
}
