package font

import (
	"testing"
)

func TestDefault(t *testing.T) {
	f, err := DefaultErr()
	if err != nil {
		t.Fatalf("DefaultErr() error: %v", err)
	}
	if f == nil {
		t.Fatal("DefaultErr() returned nil font")
	}
	if Default() != f {
		t.Error("Default() should return the shared instance")
	}
}

func TestAscent(t *testing.T) {
	f := Default()
	ascent := f.Ascent(16)
	if ascent <= 0 || ascent > 20 {
		t.Errorf("Ascent(16) = %d, want a small positive value", ascent)
	}
}

func TestLayoutBasic(t *testing.T) {
	f := Default()
	run, err := f.Layout("12", 16)
	if err != nil {
		t.Fatalf("Layout error: %v", err)
	}
	if len(run.Glyphs) != 2 {
		t.Fatalf("got %d glyphs, want 2", len(run.Glyphs))
	}
	if run.Width <= 0 {
		t.Errorf("run width = %d, want positive", run.Width)
	}
	if run.Height <= 0 || run.Height > 16 {
		t.Errorf("run height = %d, want in (0, 16]", run.Height)
	}
	if run.Glyphs[0].Advance <= 0 {
		t.Errorf("first advance = %d, want positive", run.Glyphs[0].Advance)
	}
	if run.Glyphs[1].Advance <= run.Glyphs[0].Advance {
		t.Errorf("advances not monotonic: %d then %d",
			run.Glyphs[0].Advance, run.Glyphs[1].Advance)
	}
	if run.Glyphs[1].Advance != run.Width {
		t.Errorf("final advance %d != run width %d",
			run.Glyphs[1].Advance, run.Width)
	}
}

func TestLayoutEmpty(t *testing.T) {
	f := Default()
	run, err := f.Layout("", 16)
	if err != nil {
		t.Fatalf("Layout error: %v", err)
	}
	if len(run.Glyphs) != 0 {
		t.Errorf("got %d glyphs for empty text, want 0", len(run.Glyphs))
	}
	if run.Width != 0 {
		t.Errorf("empty run width = %d, want 0", run.Width)
	}
}

func TestLayoutWhitespaceHasNoBitmap(t *testing.T) {
	f := Default()
	run, err := f.Layout(" ", 16)
	if err != nil {
		t.Fatalf("Layout error: %v", err)
	}
	if len(run.Glyphs) != 1 {
		t.Fatalf("got %d glyphs, want 1", len(run.Glyphs))
	}
	g := &run.Glyphs[0]
	if g.HasBitmap() {
		t.Error("space glyph should have no bitmap")
	}
	if g.Advance <= 0 {
		t.Errorf("space advance = %d, want positive", g.Advance)
	}
}

func TestLayoutInvalidHeight(t *testing.T) {
	f := Default()
	if _, err := f.Layout("x", 0); err == nil {
		t.Error("Layout at height 0 should error")
	}
}

func TestRasterizeCoverage(t *testing.T) {
	f := Default()
	run, err := f.Layout("8", 24)
	if err != nil {
		t.Fatalf("Layout error: %v", err)
	}
	g := &run.Glyphs[0]
	if !g.HasBitmap() {
		t.Fatal("digit glyph should have a bitmap")
	}
	count := 0
	g.Rasterize(func(x, y int, coverage float64) {
		count++
		if coverage <= 0 || coverage > 1 {
			t.Errorf("coverage = %v at (%d,%d), want in (0, 1]", coverage, x, y)
		}
		if x < g.Bounds.Min.X || x >= g.Bounds.Max.X ||
			y < g.Bounds.Min.Y || y >= g.Bounds.Max.Y {
			t.Errorf("pixel (%d,%d) outside bounds %v", x, y, g.Bounds)
		}
	})
	if count == 0 {
		t.Error("expected covered pixels for digit glyph")
	}
}

func TestBitmapBounds(t *testing.T) {
	f := Default()
	run, err := f.Layout("ab", 16)
	if err != nil {
		t.Fatalf("Layout error: %v", err)
	}
	box, ok := run.BitmapBounds()
	if !ok {
		t.Fatal("expected inked bounds for \"ab\"")
	}
	for i := range run.Glyphs {
		g := &run.Glyphs[i]
		if g.HasBitmap() && !g.Bounds.In(box) {
			t.Errorf("glyph bounds %v not inside union %v", g.Bounds, box)
		}
	}

	if _, ok := (&Run{}).BitmapBounds(); ok {
		t.Error("empty run should report no inked bounds")
	}
}

func TestLayoutMaximized(t *testing.T) {
	f := Default()
	const max = 30
	run, offset, err := f.LayoutMaximized("x", max)
	if err != nil {
		t.Fatalf("LayoutMaximized error: %v", err)
	}
	if run.Height > max {
		t.Errorf("maximized run height %d exceeds budget %d", run.Height, max)
	}
	if offset < 0 || run.Height+offset > max {
		t.Errorf("offset %d leaves run outside budget (height %d)", offset, run.Height)
	}

	base, err := f.Layout("x", max)
	if err != nil {
		t.Fatalf("Layout error: %v", err)
	}
	if run.Height < base.Height {
		t.Errorf("maximized height %d smaller than plain layout %d", run.Height, base.Height)
	}
}
