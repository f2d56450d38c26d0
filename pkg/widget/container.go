package widget

import (
	"github.com/go-ledge/ledge/pkg/geometry"
	"github.com/go-ledge/ledge/pkg/render"
)

// Container holds an ordered sequence of child widgets and distributes
// its area among them with one of the placement strategies. It owns its
// children exclusively; events and frame queries route through it.
type Container struct {
	name    string
	widgets []Widget

	// shouldRedraw buffers each child's answer between the
	// ShouldRedraw and Draw passes of one frame, so side-effecting
	// polls happen exactly once per child per frame.
	shouldRedraw []bool

	vAlign      geometry.Align
	hAlign      geometry.Align
	innerHAlign geometry.Align

	area geometry.Rect

	// lastMotion remembers the pointer position while it is inside the
	// container, so the previously hovered child gets its MotionLeave.
	lastMotion geometry.Point
	hasMotion  bool

	desiredHeight int
	desiredWidth  int
}

// Name implements Widget.
func (c *Container) Name() string { return c.name }

// Area implements Widget.
func (c *Container) Area() geometry.Rect { return c.area }

// HAlign implements Widget.
func (c *Container) HAlign() geometry.Align { return c.hAlign }

// VAlign implements Widget.
func (c *Container) VAlign() geometry.Align { return c.vAlign }

// DesiredHeight implements Widget. Unless pinned, it is the tallest
// child's desired height.
func (c *Container) DesiredHeight() int {
	if c.desiredHeight > 0 {
		return c.desiredHeight
	}
	h := 0
	for _, w := range c.widgets {
		h = max(h, w.DesiredHeight())
	}
	return h
}

// DesiredWidth implements Widget. Unless pinned, it is the sum of the
// children's desired widths at the committed height.
func (c *Container) DesiredWidth(height int) int {
	if c.desiredWidth > 0 {
		return c.desiredWidth
	}
	total := 0
	for _, w := range c.widgets {
		total += w.DesiredWidth(height)
	}
	return total
}

// Resize implements Widget, distributing the new area among children
// according to the inner alignment: AlignStart stacks from the left
// edge, AlignEnd from the right, AlignCenter out from the middle.
func (c *Container) Resize(area geometry.Rect) {
	if area == c.area {
		return
	}
	c.area = area
	switch c.innerHAlign {
	case geometry.AlignStart:
		StackFromLeft(c.widgets, area)
	case geometry.AlignEnd:
		StackFromRight(c.widgets, area)
	default:
		CenterOut(c.widgets, area)
	}
}

// ShouldRedraw implements Widget. Every child is queried even after one
// answers true, because the query is each child's once-per-frame poll.
func (c *Container) ShouldRedraw() bool {
	c.shouldRedraw = c.shouldRedraw[:0]
	any := false
	for _, w := range c.widgets {
		should := w.ShouldRedraw()
		c.shouldRedraw = append(c.shouldRedraw, should)
		any = any || should
	}
	return any
}

// Draw implements Widget, painting the children that reported a redraw
// in this frame's ShouldRedraw pass. On a full-redraw frame every child
// paints regardless.
func (c *Container) Draw(ctx *render.Context) error {
	for i, w := range c.widgets {
		buffered := i < len(c.shouldRedraw) && c.shouldRedraw[i]
		if buffered || ctx.FullRedraw {
			if err := w.Draw(ctx); err != nil {
				return err
			}
		}
	}
	c.shouldRedraw = c.shouldRedraw[:0]
	return nil
}

// childAt returns the child whose placed area contains p, or nil.
func (c *Container) childAt(p geometry.Point) Widget {
	for _, w := range c.widgets {
		if a := w.Area(); !a.IsZero() && a.Contains(p) {
			return w
		}
	}
	return nil
}

// Click implements Widget, routing the click to the single child whose
// area contains the point. Clicks that land between children are
// dropped.
func (c *Container) Click(button ClickType, p geometry.Point) error {
	if w := c.childAt(p); w != nil {
		return w.Click(button, p)
	}
	return nil
}

// Motion implements Widget. When the pointer crosses from one child
// into another, the previous child receives MotionLeave first.
func (c *Container) Motion(p geometry.Point) error {
	prev := Widget(nil)
	if c.hasMotion {
		prev = c.childAt(c.lastMotion)
	}
	cur := c.childAt(p)

	if prev != nil && prev != cur {
		if err := prev.MotionLeave(p); err != nil {
			return err
		}
	}
	c.lastMotion = p
	c.hasMotion = true
	if cur != nil {
		return cur.Motion(p)
	}
	return nil
}

// MotionLeave implements Widget.
func (c *Container) MotionLeave(p geometry.Point) error {
	if !c.hasMotion {
		return nil
	}
	c.hasMotion = false
	if prev := c.childAt(c.lastMotion); prev != nil {
		return prev.MotionLeave(p)
	}
	return nil
}

// ContainerBuilder configures a Container.
type ContainerBuilder struct {
	widgets     []Widget
	vAlign      geometry.Align
	hAlign      geometry.Align
	innerHAlign geometry.Align

	desiredHeight int
	desiredWidth  int
}

// NewContainer returns an empty builder; the default inner alignment
// places children center-out.
func NewContainer() *ContainerBuilder {
	return &ContainerBuilder{}
}

// Add appends a child widget.
func (b *ContainerBuilder) Add(w Widget) *ContainerBuilder {
	b.widgets = append(b.widgets, w)
	return b
}

// VAlign sets the container's own vertical alignment.
func (b *ContainerBuilder) VAlign(a geometry.Align) *ContainerBuilder { b.vAlign = a; return b }

// HAlign sets the container's own horizontal alignment.
func (b *ContainerBuilder) HAlign(a geometry.Align) *ContainerBuilder { b.hAlign = a; return b }

// InnerHAlign selects the placement strategy for the children.
func (b *ContainerBuilder) InnerHAlign(a geometry.Align) *ContainerBuilder {
	b.innerHAlign = a
	return b
}

// DesiredHeight pins the container's reported height.
func (b *ContainerBuilder) DesiredHeight(h int) *ContainerBuilder { b.desiredHeight = h; return b }

// DesiredWidth pins the container's reported width.
func (b *ContainerBuilder) DesiredWidth(w int) *ContainerBuilder { b.desiredWidth = w; return b }

// Build constructs the Container.
func (b *ContainerBuilder) Build(name string) *Container {
	return &Container{
		name:          name,
		widgets:       b.widgets,
		shouldRedraw:  make([]bool, 0, len(b.widgets)),
		vAlign:        b.vAlign,
		hAlign:        b.hAlign,
		innerHAlign:   b.innerHAlign,
		desiredHeight: b.desiredHeight,
		desiredWidth:  b.desiredWidth,
	}
}
