package widget

import (
	"testing"

	"github.com/go-ledge/ledge/pkg/geometry"
	"github.com/go-ledge/ledge/pkg/render"
)

func testCtx(w, h int) (*render.Context, *[]geometry.Rect) {
	damage := []geometry.Rect{}
	return &render.Context{
		Canvas: make([]byte, w*h*4),
		Rect:   geometry.NewRect(geometry.Pt(0, 0), geometry.Pt(w, h)),
		Damage: &damage,
	}, &damage
}

func buildContainer(inner geometry.Align, children ...Widget) *Container {
	b := NewContainer().InnerHAlign(inner)
	for _, c := range children {
		b.Add(c)
	}
	return b.Build("test container")
}

func TestContainerDesiredSize(t *testing.T) {
	a := &stubWidget{height: 10, width: 20}
	b := &stubWidget{height: 30, width: 15}
	c := buildContainer(geometry.AlignStart, a, b)

	if got := c.DesiredHeight(); got != 30 {
		t.Errorf("DesiredHeight() = %d, want tallest child 30", got)
	}
	if got := c.DesiredWidth(30); got != 35 {
		t.Errorf("DesiredWidth() = %d, want sum 35", got)
	}
}

func TestContainerShouldRedrawQueriesAllChildren(t *testing.T) {
	a := &stubWidget{redraw: true}
	b := &stubWidget{redraw: false}
	c := &stubWidget{redraw: true}
	cont := buildContainer(geometry.AlignStart, a, b, c)

	if !cont.ShouldRedraw() {
		t.Error("ShouldRedraw() = false, want true")
	}
	for i, s := range []*stubWidget{a, b, c} {
		if s.polls != 1 {
			t.Errorf("child %d polled %d times, want exactly 1", i, s.polls)
		}
	}
}

func TestContainerDrawsOnlyFlaggedChildren(t *testing.T) {
	a := &stubWidget{redraw: true}
	b := &stubWidget{redraw: false}
	cont := buildContainer(geometry.AlignStart, a, b)
	ctx, _ := testCtx(100, 20)

	cont.ShouldRedraw()
	if err := cont.Draw(ctx); err != nil {
		t.Fatalf("Draw error: %v", err)
	}
	if a.draws != 1 || b.draws != 0 {
		t.Errorf("draws = (%d, %d), want (1, 0)", a.draws, b.draws)
	}
}

func TestContainerFullRedrawDrawsEveryChild(t *testing.T) {
	a := &stubWidget{redraw: false}
	b := &stubWidget{redraw: false}
	cont := buildContainer(geometry.AlignStart, a, b)
	ctx, _ := testCtx(100, 20)
	ctx.FullRedraw = true

	cont.ShouldRedraw()
	if err := cont.Draw(ctx); err != nil {
		t.Fatalf("Draw error: %v", err)
	}
	if a.draws != 1 || b.draws != 1 {
		t.Errorf("draws = (%d, %d), want (1, 1)", a.draws, b.draws)
	}
}

func TestContainerResizeDispatch(t *testing.T) {
	area := geometry.NewRect(geometry.Pt(0, 0), geometry.Pt(100, 20))

	left := buildContainer(geometry.AlignStart, stubs(10, 10)...)
	left.Resize(area)
	if got := left.widgets[0].Area().Min.X; got != 0 {
		t.Errorf("AlignStart should stack from left edge, first child at %d", got)
	}

	right := buildContainer(geometry.AlignEnd, stubs(10, 10)...)
	right.Resize(area)
	if got := right.widgets[0].Area().Max.X; got != 100 {
		t.Errorf("AlignEnd should stack from right edge, first child ends at %d", got)
	}

	center := buildContainer(geometry.AlignCenter, stubs(10)...)
	center.Resize(area)
	if got := center.widgets[0].Area(); got.Min.X != 45 {
		t.Errorf("AlignCenter should center children, got %v", got)
	}
}

func TestContainerClickRouting(t *testing.T) {
	a := &stubWidget{width: 50, height: 20}
	b := &stubWidget{width: 30, height: 20}
	cont := buildContainer(geometry.AlignStart, a, b)
	cont.Resize(geometry.NewRect(geometry.Pt(0, 0), geometry.Pt(100, 20)))

	if err := cont.Click(LeftClick, geometry.Pt(10, 5)); err != nil {
		t.Fatalf("Click error: %v", err)
	}
	if a.clicks != 1 || b.clicks != 0 {
		t.Errorf("click in first child routed as (%d, %d), want (1, 0)", a.clicks, b.clicks)
	}

	// Past both children: silently dropped.
	if err := cont.Click(LeftClick, geometry.Pt(95, 5)); err != nil {
		t.Fatalf("Click error: %v", err)
	}
	if a.clicks != 1 || b.clicks != 0 {
		t.Errorf("click outside children should be dropped, got (%d, %d)", a.clicks, b.clicks)
	}
}

func TestContainerMotionCrossesChildren(t *testing.T) {
	a := &stubWidget{width: 50, height: 20}
	b := &stubWidget{width: 30, height: 20}
	cont := buildContainer(geometry.AlignStart, a, b)
	cont.Resize(geometry.NewRect(geometry.Pt(0, 0), geometry.Pt(100, 20)))

	if err := cont.Motion(geometry.Pt(10, 5)); err != nil {
		t.Fatalf("Motion error: %v", err)
	}
	if a.motions != 1 {
		t.Errorf("first child motions = %d, want 1", a.motions)
	}

	// Crossing into the second child leaves the first.
	if err := cont.Motion(geometry.Pt(60, 5)); err != nil {
		t.Fatalf("Motion error: %v", err)
	}
	if a.leaves != 1 {
		t.Errorf("first child leaves = %d, want 1", a.leaves)
	}
	if b.motions != 1 {
		t.Errorf("second child motions = %d, want 1", b.motions)
	}

	// Leaving the container leaves the second child.
	if err := cont.MotionLeave(geometry.Pt(200, 5)); err != nil {
		t.Fatalf("MotionLeave error: %v", err)
	}
	if b.leaves != 1 {
		t.Errorf("second child leaves = %d, want 1", b.leaves)
	}
}
