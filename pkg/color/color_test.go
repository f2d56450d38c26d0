package color_test

import (
	"testing"

	"github.com/go-ledge/ledge/pkg/color"
)

func TestBlend_Endpoints(t *testing.T) {
	a := color.RGB(10, 20, 30)
	b := color.RGB(200, 100, 50)
	if got := a.Blend(b, 0); got != a {
		t.Errorf("ratio 0 should return receiver, got %v", got)
	}
	if got := a.Blend(b, 1); got != b {
		t.Errorf("ratio 1 should return other, got %v", got)
	}
	// Out-of-range ratios clamp instead of extrapolating.
	if got := a.Blend(b, -3); got != a {
		t.Errorf("negative ratio should clamp to 0, got %v", got)
	}
	if got := a.Blend(b, 7); got != b {
		t.Errorf("ratio > 1 should clamp to 1, got %v", got)
	}
}

func TestBlend_Midpoint(t *testing.T) {
	got := color.RGB(0, 0, 0).Blend(color.RGB(255, 255, 255), 0.5)
	if got.R < 126 || got.R > 128 {
		t.Errorf("midpoint blend should be near gray, got %v", got)
	}
}

func TestCompositeOver_OpaqueReplaces(t *testing.T) {
	over := color.RGB(1, 2, 3)
	for _, under := range []color.Color{color.Base, color.Clear, color.RGB(255, 0, 255)} {
		if got := over.CompositeOver(under); got != over {
			t.Errorf("opaque composite over %v = %v, want %v", under, got, over)
		}
	}
}

func TestCompositeOver_ClearIsNoOp(t *testing.T) {
	under := color.RGB(40, 50, 60)
	if got := color.Clear.CompositeOver(under); got != under {
		t.Errorf("Clear composite should leave pixel untouched, got %v", got)
	}
}

func TestCompositeOver_HalfAlpha(t *testing.T) {
	over := color.New(200, 200, 200, 128)
	under := color.RGB(0, 0, 0)
	got := over.CompositeOver(under)
	if got.R < 99 || got.R > 101 {
		t.Errorf("half-alpha composite should land near 100, got %v", got)
	}
}

func TestARGB8888_ByteOrder(t *testing.T) {
	c := color.New(0x11, 0x22, 0x33, 0x44)
	// Packed value is 0x44112233; little-endian bytes are B, G, R, A.
	want := [4]byte{0x33, 0x22, 0x11, 0x44}
	if got := c.ARGB8888(); got != want {
		t.Errorf("ARGB8888 = %x, want %x", got, want)
	}
	if back := color.FromARGB8888(want); back != c {
		t.Errorf("FromARGB8888 round trip = %v, want %v", back, c)
	}
}

func TestZeroValueIsClear(t *testing.T) {
	var c color.Color
	if c != color.Clear {
		t.Error("zero value must be Clear")
	}
}
