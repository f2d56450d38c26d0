package geometry

import "fmt"

type alignKind uint8

const (
	alignCenter alignKind = iota
	alignStart
	alignEnd
	alignCenterAt
)

// Align selects where content is placed along one axis of a span. The
// zero value is AlignCenter.
type Align struct {
	kind  alignKind
	ratio float64
}

var (
	// AlignStart places content against the span's min edge.
	AlignStart = Align{kind: alignStart}
	// AlignEnd places content against the span's max edge.
	AlignEnd = Align{kind: alignEnd}
	// AlignCenter centers content on the span's midpoint.
	AlignCenter = Align{kind: alignCenter}
)

// AlignCenterAt biases centered content by ratio of its own size toward
// the min edge. ratio must lie in [0, 1); out-of-range values degrade to
// plain centering at placement time.
func AlignCenterAt(ratio float64) Align {
	return Align{kind: alignCenterAt, ratio: ratio}
}

func (a Align) String() string {
	switch a.kind {
	case alignStart:
		return "start"
	case alignEnd:
		return "end"
	case alignCenterAt:
		return fmt.Sprintf("center-at(%.3f)", a.ratio)
	default:
		return "center"
	}
}

// Direction is the direction a progress-style fill grows toward.
type Direction uint8

const (
	North Direction = iota
	East
	South
	West
)

func (d Direction) String() string {
	switch d {
	case East:
		return "east"
	case South:
		return "south"
	case West:
		return "west"
	default:
		return "north"
	}
}
