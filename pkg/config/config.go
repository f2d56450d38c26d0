// Package config reads the optional ledge.yaml configuration: bar
// geometry, palette overrides, and the widget line-up.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	colorful "github.com/lucasb-eyer/go-colorful"
	"gopkg.in/yaml.v3"

	"github.com/go-ledge/ledge/pkg/color"
	"github.com/go-ledge/ledge/pkg/geometry"
)

// Config represents the optional ledge.yaml configuration.
type Config struct {
	Bar     BarConfig         `yaml:"bar"`
	Palette map[string]string `yaml:"palette"`
	Widgets []WidgetConfig    `yaml:"widgets"`
}

// BarConfig contains bar-wide settings.
type BarConfig struct {
	Height     int    `yaml:"height,omitempty"`
	Font       string `yaml:"font,omitempty"`
	Background string `yaml:"background,omitempty"`
}

// WidgetConfig is one entry of the widget line-up.
type WidgetConfig struct {
	Kind  string `yaml:"kind"`
	Align string `yaml:"align,omitempty"`

	// Widget-specific knobs; each applies to one kind and is ignored
	// by the others.
	BatteryPath   string  `yaml:"battery_path,omitempty"`
	ShowThreshold float64 `yaml:"show_threshold,omitempty"`
	Since         string  `yaml:"since,omitempty"`
}

// Kind names a widget the bar can instantiate.
type Kind string

const (
	KindClock       Kind = "clock"
	KindBattery     Kind = "battery"
	KindCPU         Kind = "cpu"
	KindRAM         Kind = "ram"
	KindWorkspaces  Kind = "workspaces"
	KindUpdatedLast Kind = "updated_last"
)

// Widget is one resolved widget entry.
type Widget struct {
	Kind  Kind
	Align geometry.Align

	BatteryPath   string
	ShowThreshold float64
	Since         time.Time
}

// Resolved contains resolved configuration values.
type Resolved struct {
	Height     int
	FontPath   string
	Background color.Color
	Widgets    []Widget
}

// DefaultHeight is the bar height when ledge.yaml does not set one.
const DefaultHeight = 30

// LoadOptional reads ledge.yaml from dir if present.
func LoadOptional(dir string) (*Config, error) {
	return load(filepath.Join(dir, "ledge.yaml"), true)
}

// Load reads the configuration file at path.
func Load(path string) (*Config, error) {
	return load(path, false)
}

func load(path string, optional bool) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if optional && errors.Is(err, os.ErrNotExist) {
			return &Config{}, nil
		}
		return nil, fmt.Errorf("failed to read %s: %w", filepath.Base(path), err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", filepath.Base(path), err)
	}

	return &cfg, nil
}

// ParseColor parses a #rrggbb hex string into a fully opaque color.
func ParseColor(s string) (color.Color, error) {
	c, err := colorful.Hex(strings.TrimSpace(s))
	if err != nil {
		return color.Color{}, fmt.Errorf("invalid color %q: %w", s, err)
	}
	r, g, b := c.RGB255()
	return color.New(r, g, b, 0xff), nil
}

// paletteSlots maps override names onto the palette entries they
// replace.
var paletteSlots = map[string]*color.Color{
	"base":           &color.Base,
	"surface":        &color.Surface,
	"overlay":        &color.Overlay,
	"muted":          &color.Muted,
	"subtle":         &color.Subtle,
	"text":           &color.Text,
	"love":           &color.Love,
	"gold":           &color.Gold,
	"rose":           &color.Rose,
	"pine":           &color.Pine,
	"foam":           &color.Foam,
	"iris":           &color.Iris,
	"highlight_low":  &color.HighlightLow,
	"highlight_med":  &color.HighlightMed,
	"highlight_high": &color.HighlightHigh,
}

// applyPalette installs the configured overrides into the process-wide
// palette. Overrides apply before any widget is built, so every widget
// default picks them up.
func applyPalette(overrides map[string]string) error {
	for name, hex := range overrides {
		slot, ok := paletteSlots[name]
		if !ok {
			return fmt.Errorf("unknown palette entry %q", name)
		}
		c, err := ParseColor(hex)
		if err != nil {
			return err
		}
		*slot = c
	}
	return nil
}

func parseAlign(s string) (geometry.Align, error) {
	switch strings.TrimSpace(s) {
	case "", "center":
		return geometry.AlignCenter, nil
	case "left":
		return geometry.AlignStart, nil
	case "right":
		return geometry.AlignEnd, nil
	default:
		return geometry.Align{}, fmt.Errorf("invalid align %q (want left, center or right)", s)
	}
}

func parseKind(s string) (Kind, error) {
	switch k := Kind(strings.TrimSpace(s)); k {
	case KindClock, KindBattery, KindCPU, KindRAM, KindWorkspaces, KindUpdatedLast:
		return k, nil
	default:
		return "", fmt.Errorf("unknown widget kind %q", s)
	}
}

// defaultWidgets is the line-up used when ledge.yaml lists none.
func defaultWidgets() []Widget {
	return []Widget{
		{Kind: KindWorkspaces, Align: geometry.AlignStart},
		{Kind: KindClock, Align: geometry.AlignCenter},
		{Kind: KindCPU, Align: geometry.AlignEnd},
		{Kind: KindRAM, Align: geometry.AlignEnd},
		{Kind: KindBattery, Align: geometry.AlignEnd},
	}
}

// Resolve validates cfg and fills in defaults. Palette overrides are
// applied as a side effect.
func Resolve(cfg *Config) (*Resolved, error) {
	if err := applyPalette(cfg.Palette); err != nil {
		return nil, err
	}

	height := cfg.Bar.Height
	if height == 0 {
		height = DefaultHeight
	}
	if height < 0 {
		return nil, fmt.Errorf("bar.height must be positive (got %d)", height)
	}

	background := color.Surface
	if cfg.Bar.Background != "" {
		c, err := ParseColor(cfg.Bar.Background)
		if err != nil {
			return nil, err
		}
		background = c
	}

	widgets := make([]Widget, 0, len(cfg.Widgets))
	for i, wc := range cfg.Widgets {
		kind, err := parseKind(wc.Kind)
		if err != nil {
			return nil, fmt.Errorf("widgets[%d]: %w", i, err)
		}
		align, err := parseAlign(wc.Align)
		if err != nil {
			return nil, fmt.Errorf("widgets[%d]: %w", i, err)
		}
		w := Widget{
			Kind:          kind,
			Align:         align,
			BatteryPath:   strings.TrimSpace(wc.BatteryPath),
			ShowThreshold: wc.ShowThreshold,
		}
		if wc.ShowThreshold < 0 || wc.ShowThreshold > 1 {
			return nil, fmt.Errorf("widgets[%d]: show_threshold must lie in [0, 1]", i)
		}
		if wc.Since != "" {
			since, err := time.Parse(time.RFC3339, wc.Since)
			if err != nil {
				return nil, fmt.Errorf("widgets[%d]: invalid since: %w", i, err)
			}
			w.Since = since
		}
		widgets = append(widgets, w)
	}
	if len(widgets) == 0 {
		widgets = defaultWidgets()
	}

	return &Resolved{
		Height:     height,
		FontPath:   strings.TrimSpace(cfg.Bar.Font),
		Background: background,
		Widgets:    widgets,
	}, nil
}
