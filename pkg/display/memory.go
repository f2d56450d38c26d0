package display

import (
	"sync"

	"github.com/go-ledge/ledge/pkg/geometry"
)

// Memory is an in-process Display backed by a plain byte slice. It
// records every commit, which makes it the display of choice for frame
// driver tests and headless runs.
type Memory struct {
	mu      sync.Mutex
	size    geometry.Point
	buf     []byte
	commits [][]geometry.Rect
	pending []memoryEvent

	onResize  func(geometry.Point)
	onPointer func(PointerEvent)
}

type memoryEvent struct {
	resize  *geometry.Point
	pointer *PointerEvent
}

// NewMemory constructs a Memory display with the given pixel size.
func NewMemory(width, height int) *Memory {
	return &Memory{
		size: geometry.Pt(width, height),
		buf:  make([]byte, width*height*4),
	}
}

// Size implements Display.
func (m *Memory) Size() geometry.Point {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.size
}

// Buffer implements Display.
func (m *Memory) Buffer() []byte {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.buf
}

// Commit implements Display, recording the damage list.
func (m *Memory) Commit(damage []geometry.Rect) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	recorded := make([]geometry.Rect, len(damage))
	copy(recorded, damage)
	m.commits = append(m.commits, recorded)
	return nil
}

// Commits returns every damage list committed so far.
func (m *Memory) Commits() [][]geometry.Rect {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([][]geometry.Rect, len(m.commits))
	copy(out, m.commits)
	return out
}

// OnResize implements Display.
func (m *Memory) OnResize(fn func(geometry.Point)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.onResize = fn
}

// OnPointer implements Display.
func (m *Memory) OnPointer(fn func(PointerEvent)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.onPointer = fn
}

// QueueResize resizes the canvas; the callback fires on the next Poll.
func (m *Memory) QueueResize(width, height int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	size := geometry.Pt(width, height)
	m.size = size
	m.buf = make([]byte, width*height*4)
	m.pending = append(m.pending, memoryEvent{resize: &size})
}

// QueuePointer injects a pointer event delivered on the next Poll.
func (m *Memory) QueuePointer(ev PointerEvent) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pending = append(m.pending, memoryEvent{pointer: &ev})
}

// Poll implements Display, delivering queued events.
func (m *Memory) Poll() {
	m.mu.Lock()
	events := m.pending
	m.pending = nil
	onResize, onPointer := m.onResize, m.onPointer
	m.mu.Unlock()

	for _, ev := range events {
		switch {
		case ev.resize != nil && onResize != nil:
			onResize(*ev.resize)
		case ev.pointer != nil && onPointer != nil:
			onPointer(*ev.pointer)
		}
	}
}

// Close implements Display.
func (m *Memory) Close() error { return nil }
