// Command ledge runs the status bar: a damage-tracked strip of widgets
// rendered into a terminal emulation of the bar surface.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/go-ledge/ledge/pkg/app"
	"github.com/go-ledge/ledge/pkg/color"
	"github.com/go-ledge/ledge/pkg/config"
	"github.com/go-ledge/ledge/pkg/display"
	"github.com/go-ledge/ledge/pkg/font"
	"github.com/go-ledge/ledge/pkg/geometry"
	"github.com/go-ledge/ledge/pkg/status"
	"github.com/go-ledge/ledge/pkg/widget"
)

// Version information set at build time.
var (
	Version   = "0.1.0-dev"
	BuildTime = "unknown"
)

// framePeriod paces the frame loop. Widgets gate their own sampling, so
// a quiet frame costs a handful of flag checks and no commit.
const framePeriod = 50 * time.Millisecond

func main() {
	configPath := flag.String("config", "", "path to ledge.yaml (default: $XDG_CONFIG_HOME/ledge/ledge.yaml)")
	debug := flag.Bool("debug", false, "enable debug logging")
	version := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *version {
		fmt.Printf("ledge %s (built %s)\n", Version, BuildTime)
		return
	}

	level := slog.LevelInfo
	if *debug {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	if err := run(*configPath); err != nil {
		slog.Error("ledge exited", "err", err)
		os.Exit(1)
	}
}

func run(configPath string) error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}
	res, err := config.Resolve(cfg)
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	face, err := loadFont(res.FontPath)
	if err != nil {
		return err
	}

	sections, closers, err := buildSections(res, face)
	if err != nil {
		for _, c := range closers {
			c()
		}
		return err
	}
	defer func() {
		for _, c := range closers {
			c()
		}
	}()

	disp, err := display.NewTerm()
	if err != nil {
		return fmt.Errorf("failed to open display: %w", err)
	}
	defer disp.Close()

	bar := app.New(disp, res.Background, sections...)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	slog.Info("ledge started", "version", Version, "height", res.Height, "widgets", len(res.Widgets))

	ticker := time.NewTicker(framePeriod)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			slog.Info("ledge shutting down")
			return nil
		case <-ticker.C:
			if err := bar.Frame(); err != nil {
				return fmt.Errorf("frame commit failed: %w", err)
			}
		}
	}
}

func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.Load(path)
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		slog.Warn("no user config dir, using defaults", "err", err)
		return &config.Config{}, nil
	}
	return config.LoadOptional(filepath.Join(dir, "ledge"))
}

func loadFont(path string) (*font.Font, error) {
	if path == "" {
		f, err := font.DefaultErr()
		if err != nil {
			return nil, fmt.Errorf("failed to load bundled font: %w", err)
		}
		return f, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read font: %w", err)
	}
	f, err := font.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse font %s: %w", path, err)
	}
	return f, nil
}

// buildSections groups the configured widgets into one container per
// bar section (left, center, right) and returns the containers in
// left-to-right order alongside the widget shutdown hooks.
func buildSections(res *config.Resolved, face *font.Font) ([]widget.Widget, []func(), error) {
	byAlign := map[geometry.Align][]widget.Widget{}
	var closers []func()

	for i, wc := range res.Widgets {
		w, closer, err := buildWidget(wc, res.Height, res.Background, face)
		if err != nil {
			return nil, closers, fmt.Errorf("widgets[%d] (%s): %w", i, wc.Kind, err)
		}
		if closer != nil {
			closers = append(closers, closer)
		}
		byAlign[wc.Align] = append(byAlign[wc.Align], w)
	}

	var sections []widget.Widget
	for _, align := range []geometry.Align{geometry.AlignStart, geometry.AlignCenter, geometry.AlignEnd} {
		ws := byAlign[align]
		if len(ws) == 0 {
			continue
		}
		b := widget.NewContainer().
			HAlign(align).
			InnerHAlign(align).
			DesiredHeight(res.Height)
		for _, w := range ws {
			b.Add(w)
		}
		sections = append(sections, b.Build(align.String()+" section"))
	}
	return sections, closers, nil
}

// buildWidget constructs one configured widget. Every builder gets the
// bar background so widgets that erase their own area repaint to it
// instead of leaving stale pixels behind.
func buildWidget(wc config.Widget, height int, bg color.Color, face *font.Font) (widget.Widget, func(), error) {
	switch wc.Kind {
	case config.KindClock:
		w, err := status.NewClock().
			Font(face).
			Bg(bg).
			DesiredHeight(height).
			Build("clock")
		return w, nil, err

	case config.KindBattery:
		b := status.NewBattery().
			Font(face).
			Bg(bg).
			DesiredHeight(height)
		if wc.BatteryPath != "" {
			b = b.Path(wc.BatteryPath)
		}
		w, err := b.Build("battery")
		return w, nil, err

	case config.KindCPU:
		b := status.NewCPU().
			Font(face).
			Bg(bg).
			DesiredHeight(height)
		if wc.ShowThreshold > 0 {
			b = b.ShowThreshold(wc.ShowThreshold)
		}
		w, err := b.Build("cpu")
		return w, nil, err

	case config.KindRAM:
		b := status.NewRAM().
			Font(face).
			Bg(bg).
			DesiredHeight(height)
		if wc.ShowThreshold > 0 {
			b = b.ShowThreshold(wc.ShowThreshold)
		}
		w, err := b.Build("ram")
		return w, nil, err

	case config.KindWorkspaces:
		w := status.NewWorkspaces().
			Font(face).
			Bg(bg).
			DesiredHeight(height).
			Build("workspaces")
		return w, w.Close, nil

	case config.KindUpdatedLast:
		b := status.NewUpdatedLast().
			Font(face).
			Bg(bg).
			DesiredHeight(height)
		if !wc.Since.IsZero() {
			b = b.Since(wc.Since)
		}
		w, err := b.Build("updated_last")
		return w, nil, err

	default:
		return nil, nil, fmt.Errorf("unknown widget kind %q", wc.Kind)
	}
}
