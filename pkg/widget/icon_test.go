package widget

import (
	"testing"

	"github.com/go-ledge/ledge/pkg/color"
	"github.com/go-ledge/ledge/pkg/geometry"
)

func TestIconRequiresCharacter(t *testing.T) {
	if _, err := NewIcon().Build("bare icon"); err == nil {
		t.Error("Build without a character should error")
	}
}

func TestIconDrawFillsAreaAndGlyph(t *testing.T) {
	ic, err := NewIcon().
		Icon('X').
		Fg(color.Text).
		Bg(color.Base).
		Build("test icon")
	if err != nil {
		t.Fatalf("Build error: %v", err)
	}
	area := geometry.NewRect(geometry.Pt(0, 0), geometry.Pt(40, 40))
	ic.Resize(area)
	if !ic.ShouldRedraw() {
		t.Fatal("ShouldRedraw() = false after resize")
	}

	ctx, damage := testCtx(40, 40)
	if err := ic.Draw(ctx); err != nil {
		t.Fatalf("Draw error: %v", err)
	}
	if len(*damage) != 1 || (*damage)[0] != area {
		t.Errorf("damage = %v, want the whole area %v", *damage, area)
	}
	if ic.ShouldRedraw() {
		t.Error("ShouldRedraw() = true after draw")
	}

	// Some pixels must differ from the background where the glyph ink
	// landed, and corners should be plain background.
	inked := 0
	for y := 0; y < 40; y++ {
		for x := 0; x < 40; x++ {
			if ctx.At(geometry.Pt(x, y)) != color.Base {
				inked++
			}
		}
	}
	if inked == 0 {
		t.Error("no glyph pixels painted")
	}
	if got := ctx.At(geometry.Pt(0, 0)); got != color.Base {
		t.Errorf("corner pixel = %v, want background", got)
	}
}

func TestIconGlyphFitsArea(t *testing.T) {
	ic, err := NewIcon().
		Icon('M').
		Fg(color.Text).
		Bg(color.Clear).
		Build("fit icon")
	if err != nil {
		t.Fatalf("Build error: %v", err)
	}

	for _, size := range []geometry.Point{
		geometry.Pt(40, 40),
		geometry.Pt(80, 20),
		geometry.Pt(12, 30),
	} {
		area := geometry.RectFromSize(geometry.Pt(0, 0), size)
		ic.Resize(area)
		if ic.run == nil {
			t.Fatalf("icon failed to fit %v", size)
		}
		if !ic.runSize.LessEq(size) {
			t.Errorf("glyph size %v exceeds area %v", ic.runSize, size)
		}
	}
}

func TestIconScalesToWideArea(t *testing.T) {
	ic, err := NewIcon().
		Icon('I').
		Fg(color.Text).
		Bg(color.Clear).
		Build("scale icon")
	if err != nil {
		t.Fatalf("Build error: %v", err)
	}

	small := geometry.NewRect(geometry.Pt(0, 0), geometry.Pt(100, 10))
	ic.Resize(small)
	smallSize := ic.runSize

	big := geometry.NewRect(geometry.Pt(0, 0), geometry.Pt(100, 60))
	ic.Resize(big)
	if ic.runSize.Y <= smallSize.Y {
		t.Errorf("taller area should grow the glyph: %v vs %v", ic.runSize, smallSize)
	}
}
