package status

import (
	"net"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-ledge/ledge/internal/hypr"
	"github.com/go-ledge/ledge/pkg/color"
	"github.com/go-ledge/ledge/pkg/geometry"
	"github.com/go-ledge/ledge/pkg/widget"
)

func TestMapWorkspace(t *testing.T) {
	tests := []struct {
		id   int
		want string
	}{
		{1, "Α"},
		{2, "Β"},
		{17, "Ρ"},
		{18, "Σ"}, // the codepoint after Rho is reserved
		{24, "Ω"},
		{0, "0"},
		{25, "25"},
		{-3, "-3"},
	}
	for _, tt := range tests {
		if got := mapWorkspace(tt.id); got != tt.want {
			t.Errorf("mapWorkspace(%d) = %q, want %q", tt.id, got, tt.want)
		}
	}
}

// buildOffline returns a widget that never spawns its worker, for
// driving the event logic directly through the channel.
func buildOffline(t *testing.T) *Workspaces {
	t.Helper()
	w := NewWorkspaces().DesiredHeight(20).Build("workspaces")
	w.closing = true
	w.Resize(geometry.NewRect(geometry.Pt(0, 0), geometry.Pt(200, 30)))
	return w
}

func TestWorkspacesApplyEvents(t *testing.T) {
	w := buildOffline(t)
	ctx, _ := testCtx(200, 30)

	w.events <- hypr.Event{Kind: hypr.WorkspaceCreated, Workspace: 3}
	w.events <- hypr.Event{Kind: hypr.WorkspaceCreated, Workspace: 1}
	w.events <- hypr.Event{Kind: hypr.WorkspaceActivated, Workspace: 3}
	if !w.ShouldRedraw() {
		t.Fatal("new workspaces should draw")
	}
	if err := w.Draw(ctx); err != nil {
		t.Fatalf("Draw error: %v", err)
	}

	if len(w.boxes) != 2 {
		t.Fatalf("boxes = %d, want 2", len(w.boxes))
	}
	if w.boxes[0].id != 1 || w.boxes[1].id != 3 {
		t.Errorf("box order = (%d, %d), want (1, 3)", w.boxes[0].id, w.boxes[1].id)
	}
	if w.active != 3 {
		t.Errorf("active = %d, want 3", w.active)
	}

	// Activating an unseen workspace creates its box.
	w.events <- hypr.Event{Kind: hypr.WorkspaceActivated, Workspace: 2}
	w.ShouldRedraw()
	if len(w.boxes) != 3 {
		t.Errorf("boxes = %d, want 3 after activating a new one", len(w.boxes))
	}
	if err := w.Draw(ctx); err != nil {
		t.Fatalf("Draw error: %v", err)
	}

	w.events <- hypr.Event{Kind: hypr.WorkspaceDestroyed, Workspace: 3}
	if !w.ShouldRedraw() {
		t.Error("destroying a workspace should draw")
	}
	if len(w.boxes) != 2 {
		t.Errorf("boxes = %d, want 2 after destroy", len(w.boxes))
	}
	if err := w.Draw(ctx); err != nil {
		t.Fatalf("Draw error: %v", err)
	}

	// Duplicate create is ignored.
	w.events <- hypr.Event{Kind: hypr.WorkspaceCreated, Workspace: 1}
	if w.ShouldRedraw() {
		t.Error("duplicate create should change nothing")
	}
}

func TestWorkspacesLayoutAndDraw(t *testing.T) {
	w := buildOffline(t)
	ctx, damage := testCtx(200, 30)

	w.events <- hypr.Event{Kind: hypr.WorkspaceCreated, Workspace: 1}
	w.events <- hypr.Event{Kind: hypr.WorkspaceCreated, Workspace: 2}
	w.ShouldRedraw()

	for _, b := range w.boxes {
		if b.box.Area().IsZero() {
			t.Errorf("box %d was not placed", b.id)
		}
	}

	if err := w.Draw(ctx); err != nil {
		t.Fatalf("Draw error: %v", err)
	}
	if len(*damage) != 1 || (*damage)[0] != w.area {
		t.Errorf("box-set change should damage the whole strip, got %v", *damage)
	}
}

func TestWorkspacesClickDispatches(t *testing.T) {
	w := buildOffline(t)
	dispatched := 0
	w.dispatch = func(id int) error { dispatched = id; return nil }

	w.events <- hypr.Event{Kind: hypr.WorkspaceCreated, Workspace: 1}
	w.events <- hypr.Event{Kind: hypr.WorkspaceCreated, Workspace: 4}
	w.ShouldRedraw()

	target := w.boxes[1]
	if err := w.Click(widget.LeftClick, target.box.Area().Center()); err != nil {
		t.Fatalf("Click error: %v", err)
	}
	if dispatched != 4 {
		t.Errorf("dispatched workspace = %d, want 4", dispatched)
	}

	// A click between boxes is dropped.
	dispatched = 0
	if err := w.Click(widget.LeftClick, geometry.Pt(199, 29)); err != nil {
		t.Fatalf("Click error: %v", err)
	}
	if dispatched != 0 {
		t.Errorf("stray click dispatched workspace %d", dispatched)
	}
}

func TestWorkspacesActiveRecolor(t *testing.T) {
	w := buildOffline(t)

	w.events <- hypr.Event{Kind: hypr.WorkspaceCreated, Workspace: 1}
	w.events <- hypr.Event{Kind: hypr.WorkspaceCreated, Workspace: 2}
	w.events <- hypr.Event{Kind: hypr.WorkspaceActivated, Workspace: 2}
	w.ShouldRedraw()

	ctx, _ := testCtx(200, 30)
	if err := w.Draw(ctx); err != nil {
		t.Fatalf("Draw error: %v", err)
	}

	// The active box paints its highlight background; sample a corner
	// pixel of each box's area.
	activeArea := w.boxes[1].box.Area()
	if got := ctx.At(activeArea.Min); got != color.HighlightMed {
		t.Errorf("active box corner = %v, want %v", got, color.HighlightMed)
	}
	inactiveArea := w.boxes[0].box.Area()
	if got := ctx.At(inactiveArea.Min); got == color.HighlightMed {
		t.Error("inactive box should not paint the highlight")
	}
}

func TestWorkspacesDeactivationErasesHighlight(t *testing.T) {
	w := buildOffline(t)

	w.events <- hypr.Event{Kind: hypr.WorkspaceCreated, Workspace: 1}
	w.events <- hypr.Event{Kind: hypr.WorkspaceCreated, Workspace: 2}
	w.events <- hypr.Event{Kind: hypr.WorkspaceActivated, Workspace: 2}
	w.ShouldRedraw()

	ctx, _ := testCtx(200, 30)
	if err := w.Draw(ctx); err != nil {
		t.Fatalf("Draw error: %v", err)
	}
	previous := w.boxes[1].box.Area()
	if got := ctx.At(previous.Min); got != color.HighlightMed {
		t.Fatalf("active box corner = %v, want %v", got, color.HighlightMed)
	}

	// Moving the focus repaints the old box back to the strip
	// background; no trace of the highlight may survive.
	w.events <- hypr.Event{Kind: hypr.WorkspaceActivated, Workspace: 1}
	if !w.ShouldRedraw() {
		t.Fatal("focus change should draw")
	}
	if err := w.Draw(ctx); err != nil {
		t.Fatalf("Draw error: %v", err)
	}
	if got := ctx.At(previous.Min); got != w.bg {
		t.Errorf("deactivated box corner = %v, want strip background %v", got, w.bg)
	}
}

// eventServer serves the event socket protocol for one client. Lines
// sent over feed are written to the connection.
func eventServer(t *testing.T) (path string, feed chan string) {
	t.Helper()
	path = filepath.Join(t.TempDir(), "ev.sock")
	ln, err := net.Listen("unix", path)
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	t.Cleanup(func() { ln.Close() })

	feed = make(chan string)
	go func() {
		conn, err := ln.Accept()
		if err != nil {
			return
		}
		defer conn.Close()
		for line := range feed {
			if _, err := conn.Write([]byte(line + "\n")); err != nil {
				return
			}
		}
	}()
	return path, feed
}

func waitFor(t *testing.T, w *Workspaces, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		w.ShouldRedraw()
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("condition not reached before deadline")
}

func TestWorkspacesWorker(t *testing.T) {
	path, feed := eventServer(t)
	defer close(feed)

	w := NewWorkspaces().
		DesiredHeight(20).
		EventSocket(func() (string, error) { return path, nil }).
		Dispatch(func(int) error { return nil }).
		Build("workspaces")
	w.Resize(geometry.NewRect(geometry.Pt(0, 0), geometry.Pt(200, 30)))

	// First poll spawns the worker.
	w.ShouldRedraw()
	if !w.running {
		t.Fatal("worker did not spawn")
	}

	feed <- "createworkspace>>1"
	feed <- "workspace>>2"
	feed <- "ignoredevent>>data"
	waitFor(t, w, func() bool { return len(w.boxes) == 2 && w.active == 2 })

	feed <- "destroyworkspace>>1"
	waitFor(t, w, func() bool { return len(w.boxes) == 1 })

	w.Close()
	if w.running {
		t.Error("Close should stop the worker")
	}
	// Idempotent.
	w.Close()
}
