package display

import (
	"testing"

	"github.com/go-ledge/ledge/pkg/geometry"
	"github.com/go-ledge/ledge/pkg/widget"
)

func TestMemoryBufferSize(t *testing.T) {
	m := NewMemory(10, 4)
	if got := m.Size(); got != geometry.Pt(10, 4) {
		t.Errorf("Size() = %v, want 10 x 4", got)
	}
	if got := len(m.Buffer()); got != 10*4*4 {
		t.Errorf("buffer length = %d, want %d", got, 10*4*4)
	}
}

func TestMemoryRecordsCommits(t *testing.T) {
	m := NewMemory(10, 4)
	r := geometry.NewRect(geometry.Pt(0, 0), geometry.Pt(5, 2))
	if err := m.Commit([]geometry.Rect{r}); err != nil {
		t.Fatalf("Commit error: %v", err)
	}
	commits := m.Commits()
	if len(commits) != 1 || len(commits[0]) != 1 || commits[0][0] != r {
		t.Errorf("Commits() = %v, want [[%v]]", commits, r)
	}
}

func TestMemoryDeliversEventsOnPoll(t *testing.T) {
	m := NewMemory(10, 4)

	var resized geometry.Point
	var clicked *PointerEvent
	m.OnResize(func(size geometry.Point) { resized = size })
	m.OnPointer(func(ev PointerEvent) { clicked = &ev })

	m.QueueResize(20, 8)
	m.QueuePointer(PointerEvent{
		Kind:   PointerPress,
		Button: widget.LeftClick,
		Pos:    geometry.Pt(3, 3),
	})

	if resized != (geometry.Point{}) || clicked != nil {
		t.Fatal("events delivered before Poll")
	}
	m.Poll()
	if resized != geometry.Pt(20, 8) {
		t.Errorf("resize callback got %v, want 20 x 8", resized)
	}
	if clicked == nil || clicked.Pos != geometry.Pt(3, 3) {
		t.Errorf("pointer callback got %+v", clicked)
	}
	if got := len(m.Buffer()); got != 20*8*4 {
		t.Errorf("buffer not reallocated: length %d", got)
	}
}
