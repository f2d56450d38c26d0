package status

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/go-ledge/ledge/pkg/color"
	"github.com/go-ledge/ledge/pkg/errors"
	"github.com/go-ledge/ledge/pkg/font"
	"github.com/go-ledge/ledge/pkg/geometry"
	"github.com/go-ledge/ledge/pkg/render"
	"github.com/go-ledge/ledge/pkg/widget"
)

// DefaultBatteryPath is the sysfs node of the first battery.
const DefaultBatteryPath = "/sys/class/power_supply/BAT0"

// BatteryState classifies the supply's charge situation, ordered from
// most to least comfortable.
type BatteryState int

const (
	BatteryFull BatteryState = iota
	BatteryCharging
	BatteryNormal
	BatteryWarn
	BatteryCritical
)

func (s BatteryState) String() string {
	switch s {
	case BatteryFull:
		return "full"
	case BatteryCharging:
		return "charging"
	case BatteryNormal:
		return "normal"
	case BatteryWarn:
		return "warn"
	case BatteryCritical:
		return "critical"
	default:
		return "unknown"
	}
}

// classifyBattery maps the sysfs status string and the charge ratio to
// a state. Discharge recolors at 25% and 10% remaining.
func classifyBattery(status string, charge float64) (BatteryState, bool) {
	switch status {
	case "Discharging":
		switch {
		case charge < 0.1:
			return BatteryCritical, true
		case charge < 0.25:
			return BatteryWarn, true
		default:
			return BatteryNormal, true
		}
	case "Critical":
		return BatteryCritical, true
	case "Not charging", "Full":
		return BatteryFull, true
	case "Charging":
		if charge > 0.95 {
			return BatteryFull, true
		}
		return BatteryCharging, true
	case "Warn":
		return BatteryWarn, true
	default:
		return BatteryNormal, false
	}
}

// Battery renders a battery outline glyph with a horizontal charge bar
// inside it and a bolt overlay while charging. The charge and status
// are read from sysfs on every frame poll; a path that stops being
// readable disables the widget for the rest of the process.
type Battery struct {
	name string
	path string

	desiredHeight int
	hAlign        geometry.Align
	vAlign        geometry.Align
	area          geometry.Rect

	outline *widget.Icon
	bolt    *widget.Icon
	fill    *widget.Progress

	state    BatteryState
	disabled bool

	bg     color.Color
	states map[BatteryState]color.Color
}

func readBatteryValue(dir, file string) (float64, error) {
	raw, err := os.ReadFile(filepath.Join(dir, file))
	if err != nil {
		return 0, err
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(string(raw)), 64)
	if err != nil {
		return 0, fmt.Errorf("battery: parse %s: %w", file, err)
	}
	return v, nil
}

// update samples sysfs and pushes the result into the child widgets.
func (b *Battery) update() error {
	full, err := readBatteryValue(b.path, "energy_full")
	if err != nil {
		return err
	}
	now, err := readBatteryValue(b.path, "energy_now")
	if err != nil {
		return err
	}
	charge := 0.0
	if full > 0 {
		charge = min(max(now/full, 0), 1)
	}

	raw, err := os.ReadFile(filepath.Join(b.path, "status"))
	if err != nil {
		return err
	}
	status := strings.TrimSpace(string(raw))

	state, known := classifyBattery(status, charge)
	if !known {
		log(b.name).Warn("unknown battery status", "status", status)
	}
	if state != b.state {
		c := b.states[state]
		b.fill.SetFilledColor(c)
		b.outline.SetFg(c)
		b.state = state
	}
	b.fill.SetProgress(charge)
	return nil
}

// Name implements Widget.
func (b *Battery) Name() string { return b.name }

// Area implements Widget.
func (b *Battery) Area() geometry.Rect { return b.area }

// HAlign implements Widget.
func (b *Battery) HAlign() geometry.Align { return b.hAlign }

// VAlign implements Widget.
func (b *Battery) VAlign() geometry.Align { return b.vAlign }

// DesiredHeight implements Widget.
func (b *Battery) DesiredHeight() int { return b.desiredHeight }

// DesiredWidth implements Widget.
func (b *Battery) DesiredWidth(height int) int {
	return b.outline.DesiredWidth(height)
}

// Resize implements Widget. The fill bar lives inside the outline
// glyph's margin-shrunk box rather than the full area.
func (b *Battery) Resize(area geometry.Rect) {
	b.outline.Resize(area)
	b.bolt.Resize(area)
	b.fill.Resize(b.outline.AreaUsed())
	b.area = area
}

// ShouldRedraw implements Widget. A sysfs read error reports through
// the error handler and permanently disables the widget; siblings keep
// rendering.
func (b *Battery) ShouldRedraw() bool {
	if b.disabled {
		return false
	}
	if err := b.update(); err != nil {
		errors.Report(&errors.Error{
			Op:     "battery.update",
			Kind:   errors.KindSource,
			Widget: b.name,
			Err:    err,
		})
		b.disabled = true
		return false
	}

	fill := b.fill.ShouldRedraw()
	outline := b.outline.ShouldRedraw()
	bolt := b.state == BatteryCharging && b.bolt.ShouldRedraw()
	return fill || outline || bolt
}

// Draw implements Widget. The whole composite repaints together; the
// fill bar repaints under the outline, so the glyph must be restated
// on top of it.
func (b *Battery) Draw(ctx *render.Context) error {
	if b.disabled {
		return nil
	}
	ctx.Fill(b.area, b.bg)
	if err := b.outline.Draw(ctx); err != nil {
		return err
	}
	if err := b.fill.Draw(ctx); err != nil {
		return err
	}
	if b.state == BatteryCharging {
		if err := b.bolt.Draw(ctx); err != nil {
			return err
		}
	}
	return nil
}

// Click implements Widget.
func (b *Battery) Click(widget.ClickType, geometry.Point) error { return nil }

// Motion implements Widget.
func (b *Battery) Motion(geometry.Point) error { return nil }

// MotionLeave implements Widget.
func (b *Battery) MotionLeave(geometry.Point) error { return nil }

// BatteryBuilder configures a Battery.
type BatteryBuilder struct {
	font          *font.Font
	path          string
	desiredHeight int
	hAlign        geometry.Align
	vAlign        geometry.Align

	bg     color.Color
	states map[BatteryState]color.Color
}

// NewBattery returns a builder with the palette's battery colors.
func NewBattery() BatteryBuilder {
	return BatteryBuilder{
		path: DefaultBatteryPath,
		bg:   color.Unset,
		states: map[BatteryState]color.Color{
			BatteryFull:     color.Foam,
			BatteryCharging: color.Gold,
			BatteryNormal:   color.Text,
			BatteryWarn:     color.Gold,
			BatteryCritical: color.Love,
		},
	}
}

// Font sets the typeface the glyphs render with.
func (b BatteryBuilder) Font(f *font.Font) BatteryBuilder { b.font = f; return b }

// Path overrides the sysfs supply directory.
func (b BatteryBuilder) Path(p string) BatteryBuilder { b.path = p; return b }

// DesiredHeight sets the widget height in pixels.
func (b BatteryBuilder) DesiredHeight(h int) BatteryBuilder { b.desiredHeight = h; return b }

// HAlign sets the widget's horizontal alignment.
func (b BatteryBuilder) HAlign(a geometry.Align) BatteryBuilder { b.hAlign = a; return b }

// VAlign sets the widget's vertical alignment.
func (b BatteryBuilder) VAlign(a geometry.Align) BatteryBuilder { b.vAlign = a; return b }

// Bg sets the background color behind the composite.
func (b BatteryBuilder) Bg(c color.Color) BatteryBuilder { b.bg = c; return b }

// StateColor overrides the color used for one battery state.
func (b BatteryBuilder) StateColor(s BatteryState, c color.Color) BatteryBuilder {
	states := make(map[BatteryState]color.Color, len(b.states))
	for k, v := range b.states {
		states[k] = v
	}
	states[s] = c
	b.states = states
	return b
}

// Build validates the supply path and constructs the Battery.
func (b BatteryBuilder) Build(name string) (*Battery, error) {
	if !filepath.IsAbs(b.path) {
		return nil, fmt.Errorf("battery: supply path must be absolute: %s", b.path)
	}
	path := b.path
	if resolved, err := filepath.EvalSymlinks(path); err == nil {
		path = resolved
	}
	if _, err := os.ReadDir(path); err != nil {
		return nil, fmt.Errorf("battery: no readable supply: %w", err)
	}

	normal := b.states[BatteryNormal]

	outline, err := widget.NewIcon().
		Font(b.font).
		Icon('').
		Fg(normal).
		Bg(color.Clear).
		HAlign(geometry.AlignEnd).
		VAlign(geometry.AlignCenter).
		Margins(widget.Margins{Left: 0.1, Right: 0.12, Top: 0.05, Bottom: 0.05}).
		Build(name + ".outline")
	if err != nil {
		return nil, err
	}

	bolt, err := widget.NewIcon().
		Font(b.font).
		Icon('\U000f142b').
		Fg(b.states[BatteryCharging]).
		Bg(color.Clear).
		HAlign(geometry.AlignEnd).
		VAlign(geometry.AlignCenter).
		Margins(widget.Margins{Right: 0.02}).
		Build(name + ".bolt")
	if err != nil {
		return nil, err
	}

	fill, err := widget.NewProgress().
		FilledColor(normal).
		UnfilledColor(color.Clear).
		Bg(color.Clear).
		FillDirection(geometry.East).
		Bounds(0, 1).
		Margins(widget.Margins{Left: 0.12, Right: 0.12, Top: 0.2, Bottom: 0.2}).
		Build(name + ".fill")
	if err != nil {
		return nil, err
	}

	return &Battery{
		name:          name,
		path:          path,
		desiredHeight: b.desiredHeight,
		hAlign:        b.hAlign,
		vAlign:        b.vAlign,
		outline:       outline,
		bolt:          bolt,
		fill:          fill,
		state:         BatteryNormal,
		bg:            b.bg,
		states:        b.states,
	}, nil
}
