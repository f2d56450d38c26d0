package status

import (
	"bufio"
	"net"
	"sort"
	"strconv"
	"time"

	"github.com/go-ledge/ledge/internal/hypr"
	"github.com/go-ledge/ledge/pkg/color"
	"github.com/go-ledge/ledge/pkg/errors"
	"github.com/go-ledge/ledge/pkg/font"
	"github.com/go-ledge/ledge/pkg/geometry"
	"github.com/go-ledge/ledge/pkg/render"
	"github.com/go-ledge/ledge/pkg/widget"
)

// alphaBase offsets a workspace ID into the Greek capital block, so
// workspace 1 renders as Alpha.
const alphaBase = 'Α' - 1

// mapWorkspace renders a workspace ID as a single Greek capital where
// one exists, and as the decimal number otherwise.
func mapWorkspace(id int) string {
	switch {
	case id >= 1 && id <= 17:
		return string(rune(alphaBase + id))
	case id >= 18 && id <= 24:
		// The codepoint between Rho and Sigma is reserved.
		return string(rune(alphaBase + 1 + id))
	default:
		return strconv.Itoa(id)
	}
}

// spawnBackoff is the minimum delay between worker respawn attempts.
const spawnBackoff = time.Second

type workspaceBox struct {
	id  int
	box *widget.TextBox
}

// Workspaces renders one symbol per open compositor workspace, with
// the focused one highlighted. A worker goroutine follows the
// compositor's event socket and forwards workspace transitions over a
// channel; the per-frame poll only drains what is already buffered and
// never blocks. Clicking a symbol asks the compositor to focus that
// workspace.
type Workspaces struct {
	name          string
	desiredHeight int
	hAlign        geometry.Align
	vAlign        geometry.Align
	area          geometry.Rect

	boxes  []workspaceBox
	flags  []bool
	active int

	font       *font.Font
	bg         color.Color
	inactiveFg color.Color
	activeFg   color.Color
	activeBg   color.Color

	eventSocket func() (string, error)
	dispatch    func(id int) error
	now         func() time.Time

	events chan hypr.Event
	stop   chan struct{}
	done   chan struct{}
	conn   net.Conn

	running   bool
	closing   bool
	lastSpawn time.Time

	// forceRepaint covers box-set changes: adding or removing a symbol
	// moves every other one, so the whole strip repaints.
	forceRepaint bool

	lastMotion geometry.Point
	hasMotion  bool
}

// spawn connects to the event socket and starts the reader goroutine.
func (w *Workspaces) spawn() error {
	path, err := w.eventSocket()
	if err != nil {
		return err
	}
	conn, err := net.Dial("unix", path)
	if err != nil {
		return err
	}

	w.conn = conn
	w.stop = make(chan struct{})
	w.done = make(chan struct{})
	w.running = true
	go w.work(conn)
	return nil
}

// work reads the event stream until the socket errors or the widget
// closes. It owns no widget state; everything flows through the events
// channel.
func (w *Workspaces) work(conn net.Conn) {
	defer close(w.done)
	defer errors.Recover("workspaces.worker")

	sc := bufio.NewScanner(conn)
	for sc.Scan() {
		ev, ok := hypr.ParseEvent(sc.Text())
		if !ok {
			continue
		}
		select {
		case w.events <- ev:
		case <-w.stop:
			return
		}
	}

	select {
	case <-w.stop:
		// Closing; the read error is ours.
	default:
		errors.Report(&errors.Error{
			Op:     "workspaces.work",
			Kind:   errors.KindWorker,
			Widget: w.name,
			Err:    sc.Err(),
		})
	}
}

// Close tells the worker to stop and joins it. The widget can be
// polled again afterwards; it stays empty.
func (w *Workspaces) Close() {
	if !w.running {
		return
	}
	w.closing = true
	close(w.stop)
	w.conn.Close()
	<-w.done
	w.running = false
}

// ensureWorker spawns or respawns the reader, rate-limited so a dead
// compositor socket is not hammered every frame.
func (w *Workspaces) ensureWorker() {
	if w.closing {
		return
	}
	if w.running {
		select {
		case <-w.done:
			// Worker died on its own; its error was already reported.
			log(w.name).Warn("workspace worker exited, will respawn")
			w.conn.Close()
			w.running = false
		default:
			return
		}
	}

	now := w.now()
	if now.Sub(w.lastSpawn) < spawnBackoff {
		return
	}
	w.lastSpawn = now
	if err := w.spawn(); err != nil {
		errors.Report(&errors.Error{
			Op:     "workspaces.spawn",
			Kind:   errors.KindWorker,
			Widget: w.name,
			Err:    err,
		})
	}
}

// apply folds one event into the box list and reports whether the
// layout or highlight changed.
func (w *Workspaces) apply(ev hypr.Event) bool {
	switch ev.Kind {
	case hypr.WorkspaceCreated:
		return w.insert(ev.Workspace)
	case hypr.WorkspaceDestroyed:
		return w.remove(ev.Workspace)
	case hypr.WorkspaceActivated:
		changed := w.insert(ev.Workspace)
		if w.active != ev.Workspace {
			w.active = ev.Workspace
			w.recolor()
			changed = true
		}
		return changed
	default:
		return false
	}
}

func (w *Workspaces) find(id int) int {
	return sort.Search(len(w.boxes), func(i int) bool { return w.boxes[i].id >= id })
}

func (w *Workspaces) insert(id int) bool {
	i := w.find(id)
	if i < len(w.boxes) && w.boxes[i].id == id {
		return false
	}

	box, err := widget.NewTextBox().
		Font(w.font).
		Text(mapWorkspace(id)).
		Fg(w.inactiveFg).
		Bg(w.bg).
		HAlign(geometry.AlignCenter).
		VAlign(geometry.AlignCenter).
		DesiredHeight(w.desiredHeight).
		DesiredWidth(w.desiredHeight).
		Build(w.name + "." + strconv.Itoa(id))
	if err != nil {
		errors.Report(&errors.Error{
			Op:     "workspaces.insert",
			Kind:   errors.KindRender,
			Widget: w.name,
			Err:    err,
		})
		return false
	}

	w.boxes = append(w.boxes, workspaceBox{})
	copy(w.boxes[i+1:], w.boxes[i:])
	w.boxes[i] = workspaceBox{id: id, box: box}
	return true
}

func (w *Workspaces) remove(id int) bool {
	i := w.find(id)
	if i >= len(w.boxes) || w.boxes[i].id != id {
		return false
	}
	w.boxes = append(w.boxes[:i], w.boxes[i+1:]...)
	return true
}

func (w *Workspaces) recolor() {
	for _, b := range w.boxes {
		if b.id == w.active {
			b.box.SetFg(w.activeFg)
			b.box.SetBg(w.activeBg)
		} else {
			b.box.SetFg(w.inactiveFg)
			b.box.SetBg(w.bg)
		}
	}
}

func (w *Workspaces) children() []widget.Widget {
	ws := make([]widget.Widget, len(w.boxes))
	for i, b := range w.boxes {
		ws[i] = b.box
	}
	return ws
}

func (w *Workspaces) layout() {
	if !w.area.IsZero() {
		widget.CenterOut(w.children(), w.area)
	}
}

// Name implements Widget.
func (w *Workspaces) Name() string { return w.name }

// Area implements Widget.
func (w *Workspaces) Area() geometry.Rect { return w.area }

// HAlign implements Widget.
func (w *Workspaces) HAlign() geometry.Align { return w.hAlign }

// VAlign implements Widget.
func (w *Workspaces) VAlign() geometry.Align { return w.vAlign }

// DesiredHeight implements Widget.
func (w *Workspaces) DesiredHeight() int { return w.desiredHeight }

// DesiredWidth implements Widget.
func (w *Workspaces) DesiredWidth(height int) int {
	total := 0
	for _, b := range w.boxes {
		total += b.box.DesiredWidth(height)
	}
	return total
}

// Resize implements Widget.
func (w *Workspaces) Resize(area geometry.Rect) {
	if area == w.area {
		return
	}
	w.area = area
	w.layout()
	w.forceRepaint = true
}

// ShouldRedraw implements Widget. Buffered events are drained without
// blocking; a box-set change relays the strip out and schedules a full
// repaint of the widget's area.
func (w *Workspaces) ShouldRedraw() bool {
	w.ensureWorker()

	changed := false
drain:
	for {
		select {
		case ev := <-w.events:
			changed = w.apply(ev) || changed
		default:
			break drain
		}
	}
	if changed {
		w.layout()
		w.forceRepaint = true
	}

	w.flags = w.flags[:0]
	any := w.forceRepaint
	for _, b := range w.boxes {
		should := b.box.ShouldRedraw()
		w.flags = append(w.flags, should)
		any = any || should
	}
	return any
}

// Draw implements Widget.
func (w *Workspaces) Draw(ctx *render.Context) error {
	if w.forceRepaint || ctx.FullRedraw {
		ctx.Fill(w.area, w.bg)
		// The strip repaints as one unit: the children see a full
		// redraw so they repaint completely and leave the damage
		// reporting to us.
		wasFull := ctx.FullRedraw
		ctx.FullRedraw = true
		for _, b := range w.boxes {
			if err := b.box.Draw(ctx); err != nil {
				ctx.FullRedraw = wasFull
				return err
			}
		}
		ctx.FullRedraw = wasFull
		if !wasFull {
			ctx.PushDamage(w.area)
		}
		w.forceRepaint = false
		w.flags = w.flags[:0]
		return nil
	}

	for i, b := range w.boxes {
		if i < len(w.flags) && w.flags[i] {
			if err := b.box.Draw(ctx); err != nil {
				return err
			}
		}
	}
	w.flags = w.flags[:0]
	return nil
}

func (w *Workspaces) boxAt(p geometry.Point) *workspaceBox {
	for i := range w.boxes {
		if a := w.boxes[i].box.Area(); !a.IsZero() && a.Contains(p) {
			return &w.boxes[i]
		}
	}
	return nil
}

// Click implements Widget, asking the compositor to focus the clicked
// workspace. The highlight follows on the activate event that comes
// back over the socket, not optimistically.
func (w *Workspaces) Click(button widget.ClickType, p geometry.Point) error {
	if button != widget.LeftClick {
		return nil
	}
	b := w.boxAt(p)
	if b == nil {
		return nil
	}
	return w.dispatch(b.id)
}

// Motion implements Widget, with the same crossing bookkeeping as a
// container: the previously hovered symbol gets its MotionLeave.
func (w *Workspaces) Motion(p geometry.Point) error {
	var prev *workspaceBox
	if w.hasMotion {
		prev = w.boxAt(w.lastMotion)
	}
	cur := w.boxAt(p)

	if prev != nil && prev != cur {
		if err := prev.box.MotionLeave(p); err != nil {
			return err
		}
	}
	w.lastMotion = p
	w.hasMotion = true
	if cur != nil {
		return cur.box.Motion(p)
	}
	return nil
}

// MotionLeave implements Widget.
func (w *Workspaces) MotionLeave(p geometry.Point) error {
	if !w.hasMotion {
		return nil
	}
	w.hasMotion = false
	if prev := w.boxAt(w.lastMotion); prev != nil {
		return prev.box.MotionLeave(p)
	}
	return nil
}

// WorkspacesBuilder configures a Workspaces widget.
type WorkspacesBuilder struct {
	font          *font.Font
	desiredHeight int
	hAlign        geometry.Align
	vAlign        geometry.Align

	bg         color.Color
	inactiveFg color.Color
	activeFg   color.Color
	activeBg   color.Color

	eventSocket func() (string, error)
	dispatch    func(id int) error
	now         func() time.Time
}

// NewWorkspaces returns a builder wired to the running compositor's
// sockets.
func NewWorkspaces() WorkspacesBuilder {
	return WorkspacesBuilder{
		bg:          color.Unset,
		inactiveFg:  color.Rose,
		activeFg:    color.Gold,
		activeBg:    color.HighlightMed,
		eventSocket: hypr.EventSocket,
		dispatch:    hypr.SwitchWorkspace,
		now:         time.Now,
	}
}

// Font sets the symbol typeface.
func (b WorkspacesBuilder) Font(f *font.Font) WorkspacesBuilder { b.font = f; return b }

// DesiredHeight sets the symbol height in pixels.
func (b WorkspacesBuilder) DesiredHeight(h int) WorkspacesBuilder { b.desiredHeight = h; return b }

// HAlign sets the widget's horizontal alignment.
func (b WorkspacesBuilder) HAlign(a geometry.Align) WorkspacesBuilder { b.hAlign = a; return b }

// VAlign sets the widget's vertical alignment.
func (b WorkspacesBuilder) VAlign(a geometry.Align) WorkspacesBuilder { b.vAlign = a; return b }

// Bg sets the background color behind the strip.
func (b WorkspacesBuilder) Bg(c color.Color) WorkspacesBuilder { b.bg = c; return b }

// InactiveFg sets the color of unfocused workspace symbols.
func (b WorkspacesBuilder) InactiveFg(c color.Color) WorkspacesBuilder { b.inactiveFg = c; return b }

// Active sets the color pair of the focused workspace symbol.
func (b WorkspacesBuilder) Active(fg, bg color.Color) WorkspacesBuilder {
	b.activeFg = fg
	b.activeBg = bg
	return b
}

// EventSocket overrides where the worker connects.
func (b WorkspacesBuilder) EventSocket(fn func() (string, error)) WorkspacesBuilder {
	b.eventSocket = fn
	return b
}

// Dispatch overrides how a clicked workspace is activated.
func (b WorkspacesBuilder) Dispatch(fn func(id int) error) WorkspacesBuilder {
	b.dispatch = fn
	return b
}

// Now overrides the time source used for respawn pacing.
func (b WorkspacesBuilder) Now(now func() time.Time) WorkspacesBuilder { b.now = now; return b }

// Build constructs the widget. The worker connects lazily on the first
// frame poll, not here.
func (b WorkspacesBuilder) Build(name string) *Workspaces {
	return &Workspaces{
		name:          name,
		desiredHeight: b.desiredHeight,
		hAlign:        b.hAlign,
		vAlign:        b.vAlign,
		font:          b.font,
		bg:            b.bg,
		inactiveFg:    b.inactiveFg,
		activeFg:      b.activeFg,
		activeBg:      b.activeBg,
		eventSocket:   b.eventSocket,
		dispatch:      b.dispatch,
		now:           b.now,
		events:        make(chan hypr.Event, 64),
	}
}
