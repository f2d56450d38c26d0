package display

import (
	"github.com/gdamore/tcell/v2"

	barcolor "github.com/go-ledge/ledge/pkg/color"
	"github.com/go-ledge/ledge/pkg/geometry"
	"github.com/go-ledge/ledge/pkg/widget"
)

// Term previews the bar inside a terminal. Each character cell carries
// two vertically stacked pixels through the upper-half-block glyph, so
// a terminal of C columns and R rows presents a C x 2R pixel canvas.
// It is the development backend; a compositor-native backend plugs in
// behind the same Display interface.
type Term struct {
	screen tcell.Screen

	size geometry.Point
	buf  []byte

	events chan tcell.Event
	stop   chan struct{}

	onResize  func(geometry.Point)
	onPointer func(PointerEvent)
}

// halfBlock stacks two pixels into one terminal cell.
const halfBlock = '▀'

// NewTerm initializes the terminal screen and starts its event reader.
func NewTerm() (*Term, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	if err := screen.Init(); err != nil {
		return nil, err
	}
	screen.EnableMouse()
	screen.HideCursor()

	cols, rows := screen.Size()
	t := &Term{
		screen: screen,
		size:   geometry.Pt(cols, rows*2),
		buf:    make([]byte, cols*rows*2*4),
		events: make(chan tcell.Event, 64),
		stop:   make(chan struct{}),
	}
	go t.readEvents()
	return t, nil
}

// readEvents forwards tcell events into the buffered channel until the
// screen is finalized. PollEvent returns nil at that point.
func (t *Term) readEvents() {
	for {
		ev := t.screen.PollEvent()
		if ev == nil {
			return
		}
		select {
		case t.events <- ev:
		case <-t.stop:
			return
		}
	}
}

// Size implements Display.
func (t *Term) Size() geometry.Point { return t.size }

// Buffer implements Display.
func (t *Term) Buffer() []byte { return t.buf }

// Commit implements Display, pushing the damaged cells to the
// terminal.
func (t *Term) Commit(damage []geometry.Rect) error {
	for _, r := range damage {
		t.blit(r)
	}
	t.screen.Show()
	return nil
}

// blit re-renders the cells covered by one damage rect.
func (t *Term) blit(r geometry.Rect) {
	// Expand to whole cells: a cell holds pixel rows 2k and 2k+1.
	rowMin := r.Min.Y / 2
	rowMax := (r.Max.Y + 1) / 2
	for row := rowMin; row < rowMax; row++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			upper := t.pixel(x, row*2)
			lower := t.pixel(x, row*2+1)
			style := tcell.StyleDefault.
				Foreground(termColor(upper)).
				Background(termColor(lower))
			t.screen.SetContent(x, row, halfBlock, nil, style)
		}
	}
}

// pixel reads one canvas pixel; rows past the buffer read as black.
func (t *Term) pixel(x, y int) barcolor.Color {
	if x < 0 || x >= t.size.X || y < 0 || y >= t.size.Y {
		return barcolor.Color{}
	}
	idx := 4 * (x + y*t.size.X)
	var pix [4]byte
	copy(pix[:], t.buf[idx:idx+4])
	return barcolor.FromARGB8888(pix)
}

// termColor maps an ARGB pixel onto a terminal color, compositing the
// alpha over black the way an opaque compositor background would.
func termColor(c barcolor.Color) tcell.Color {
	scale := func(v uint8) int32 {
		return int32(uint32(v) * uint32(c.A) / 255)
	}
	return tcell.NewRGBColor(scale(c.R), scale(c.G), scale(c.B))
}

// OnResize implements Display.
func (t *Term) OnResize(fn func(geometry.Point)) { t.onResize = fn }

// OnPointer implements Display.
func (t *Term) OnPointer(fn func(PointerEvent)) { t.onPointer = fn }

// Poll implements Display, draining buffered terminal events.
func (t *Term) Poll() {
	for {
		select {
		case ev := <-t.events:
			t.dispatch(ev)
		default:
			return
		}
	}
}

func (t *Term) dispatch(ev tcell.Event) {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		cols, rows := ev.Size()
		t.size = geometry.Pt(cols, rows*2)
		t.buf = make([]byte, cols*rows*2*4)
		t.screen.Sync()
		if t.onResize != nil {
			t.onResize(t.size)
		}
	case *tcell.EventMouse:
		if t.onPointer == nil {
			return
		}
		x, y := ev.Position()
		// A cell position maps to its upper pixel.
		pos := geometry.Pt(x, y*2)
		switch {
		case ev.Buttons()&tcell.Button1 != 0:
			t.onPointer(PointerEvent{Kind: PointerPress, Button: widget.LeftClick, Pos: pos})
		case ev.Buttons()&tcell.Button2 != 0:
			t.onPointer(PointerEvent{Kind: PointerPress, Button: widget.MiddleClick, Pos: pos})
		case ev.Buttons()&tcell.Button3 != 0:
			t.onPointer(PointerEvent{Kind: PointerPress, Button: widget.RightClick, Pos: pos})
		default:
			t.onPointer(PointerEvent{Kind: PointerMotion, Pos: pos})
		}
	}
}

// Close implements Display, restoring the terminal.
func (t *Term) Close() error {
	close(t.stop)
	t.screen.Fini()
	return nil
}
