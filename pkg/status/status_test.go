package status

import (
	"sync"
	"time"

	"github.com/go-ledge/ledge/pkg/errors"
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

// fakeClock is a manually advanced time source.
type fakeClock struct {
	t time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{t: time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time { return c.t }

func (c *fakeClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

// errorRecorder captures reports instead of logging them.
type errorRecorder struct {
	mu     sync.Mutex
	errors []*errors.Error
}

func (r *errorRecorder) HandleError(err *errors.Error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.errors = append(r.errors, err)
}

func (r *errorRecorder) HandlePanic(*errors.PanicError) {}

func (r *errorRecorder) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.errors)
}

func (r *errorRecorder) last() *errors.Error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.errors) == 0 {
		return nil
	}
	return r.errors[len(r.errors)-1]
}
