package status

import (
	"fmt"
	"testing"
	"time"

	"github.com/go-ledge/ledge/pkg/color"
	"github.com/go-ledge/ledge/pkg/errors"
	"github.com/go-ledge/ledge/pkg/geometry"
)

const gaugeSide = 30

// buildGauge wires a gauge to a controllable sampler and clock.
func buildGauge(t *testing.T, sample func() (float64, error)) (*Gauge, *fakeClock) {
	t.Helper()
	clock := newFakeClock()
	g, err := gaugeBuilder{
		fg:        color.Text,
		bg:        color.Surface,
		barFilled: color.Pine,
		threshold: 0.5,
		interval:  100 * time.Millisecond,
		now:       clock.Now,
	}.build("test gauge", 'A', sample)
	if err != nil {
		t.Fatalf("build error: %v", err)
	}
	g.Resize(geometry.NewRect(geometry.Pt(0, 0), geometry.Pt(gaugeSide, gaugeSide)))
	return g, clock
}

// poll advances past the sample interval and runs one frame query.
func poll(g *Gauge, clock *fakeClock) bool {
	clock.Advance(150 * time.Millisecond)
	return g.ShouldRedraw()
}

func TestGaugeHiddenBelowThreshold(t *testing.T) {
	g, clock := buildGauge(t, func() (float64, error) { return 0.2, nil })
	if poll(g, clock) {
		t.Error("below threshold, nothing should draw")
	}
	if g.state != visHidden {
		t.Errorf("state = %v, want %v", g.state, visHidden)
	}
}

func TestGaugeAppearsAboveThreshold(t *testing.T) {
	value := 0.8
	g, clock := buildGauge(t, func() (float64, error) { return value, nil })
	ctx, damage := testCtx(gaugeSide, gaugeSide)

	if !poll(g, clock) {
		t.Fatal("crossing the threshold should draw")
	}
	if g.state != visAppearing {
		t.Errorf("state = %v, want %v", g.state, visAppearing)
	}
	if err := g.Draw(ctx); err != nil {
		t.Fatalf("Draw error: %v", err)
	}
	if g.state != visShown {
		t.Errorf("state after draw = %v, want %v", g.state, visShown)
	}
	if len(*damage) == 0 {
		t.Error("appearing should report damage")
	}
	// The bar fills bottom-up; with 80% usage the bottom row is filled.
	if got := ctx.At(geometry.Pt(1, gaugeSide-1)); got != color.Pine {
		t.Errorf("bottom bar pixel = %v, want %v", got, color.Pine)
	}

	// Stable value: nothing to repaint.
	if poll(g, clock) {
		t.Error("unchanged value should not redraw")
	}

	// Moving value repaints the bar.
	value = 0.9
	if !poll(g, clock) {
		t.Error("changed value should redraw")
	}
}

func TestGaugeDisappearsBelowThreshold(t *testing.T) {
	value := 0.8
	g, clock := buildGauge(t, func() (float64, error) { return value, nil })
	ctx, _ := testCtx(gaugeSide, gaugeSide)

	poll(g, clock)
	if err := g.Draw(ctx); err != nil {
		t.Fatalf("Draw error: %v", err)
	}

	value = 0.1
	if !poll(g, clock) {
		t.Fatal("dropping below threshold should draw the erase pass")
	}
	if g.state != visDisappearing {
		t.Errorf("state = %v, want %v", g.state, visDisappearing)
	}
	if err := g.Draw(ctx); err != nil {
		t.Fatalf("Draw error: %v", err)
	}
	if g.state != visHidden {
		t.Errorf("state after erase = %v, want %v", g.state, visHidden)
	}
	if got := ctx.At(geometry.Pt(1, gaugeSide-1)); got != color.Surface {
		t.Errorf("erased pixel = %v, want background %v", got, color.Surface)
	}

	if poll(g, clock) {
		t.Error("hidden gauge should stay quiet")
	}
}

func TestGaugeReappearBeforeErase(t *testing.T) {
	value := 0.8
	g, clock := buildGauge(t, func() (float64, error) { return value, nil })
	ctx, _ := testCtx(gaugeSide, gaugeSide)

	poll(g, clock)
	g.Draw(ctx)

	value = 0.1
	poll(g, clock)
	// No draw happened; the gauge is still on screen when the value
	// recovers.
	value = 0.8
	if poll(g, clock) {
		t.Error("recovering to the already drawn value should not redraw")
	}
	if g.state != visShown {
		t.Errorf("state = %v, want %v", g.state, visShown)
	}
}

func TestGaugeSampleIntervalGates(t *testing.T) {
	calls := 0
	g, clock := buildGauge(t, func() (float64, error) { calls++; return 0.8, nil })

	poll(g, clock)
	// Within the interval the sampler must not run again.
	if g.ShouldRedraw() {
		t.Error("inside the sample interval nothing should change")
	}
	if calls != 1 {
		t.Errorf("sampler ran %d times, want 1", calls)
	}
}

func TestGaugeSamplerErrorDisables(t *testing.T) {
	rec := &errorRecorder{}
	errors.SetHandler(rec)
	defer errors.SetHandler(nil)

	fail := false
	g, clock := buildGauge(t, func() (float64, error) {
		if fail {
			return 0, fmt.Errorf("sensor gone")
		}
		return 0.8, nil
	})
	ctx, _ := testCtx(gaugeSide, gaugeSide)

	poll(g, clock)
	g.Draw(ctx)

	fail = true
	if !poll(g, clock) {
		t.Error("a shown gauge owes an erase pass when its source dies")
	}
	if err := g.Draw(ctx); err != nil {
		t.Fatalf("Draw error: %v", err)
	}
	if got := ctx.At(geometry.Pt(1, gaugeSide-1)); got != color.Surface {
		t.Errorf("erased pixel = %v, want background %v", got, color.Surface)
	}

	if rec.count() != 1 {
		t.Fatalf("reported errors = %d, want 1", rec.count())
	}
	if got := rec.last(); got.Kind != errors.KindSource {
		t.Errorf("reported kind = %v, want %v", got.Kind, errors.KindSource)
	}

	// Disabled for good: the sampler never runs again.
	if poll(g, clock) || poll(g, clock) {
		t.Error("disabled gauge should stay quiet")
	}
}

func TestVisibilityStrings(t *testing.T) {
	states := map[visibility]string{
		visHidden:       "hidden",
		visAppearing:    "appearing",
		visShown:        "shown",
		visDisappearing: "disappearing",
	}
	for s, want := range states {
		if got := s.String(); got != want {
			t.Errorf("%d.String() = %q, want %q", s, got, want)
		}
	}
}
