package epicycle

import (
	"errors"
	"fmt"
)

var ErrOutOfOrder = errors.New("epicycle: frame time precedes traced path")

type PathState int

const (
	Uninitialized PathState = iota
	Accumulating
)

func (s PathState) String() string {
	switch s {
	case Uninitialized:
		return "uninitialized"
	case Accumulating:
		return "accumulating"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// TracedPath is the append-only polyline of chain tips for one animation
// run. There is no reset; start a new path for a new run.
type TracedPath struct {
	times  []float64
	points []complex128
}

func NewTracedPath() *TracedPath {
	return &TracedPath{}
}

func (p *TracedPath) Append(t float64, z complex128) error {
	if n := len(p.times); n > 0 && t < p.times[n-1] {
		return fmt.Errorf("%w: t=%g after t=%g", ErrOutOfOrder, t, p.times[n-1])
	}
	p.times = append(p.times, t)
	p.points = append(p.points, z)
	return nil
}

func (p *TracedPath) State() PathState {
	if len(p.points) == 0 {
		return Uninitialized
	}
	return Accumulating
}

func (p *TracedPath) Len() int { return len(p.points) }

func (p *TracedPath) Points() []complex128 {
	out := make([]complex128, len(p.points))
	copy(out, p.points)
	return out
}

func (p *TracedPath) Times() []float64 {
	out := make([]float64, len(p.times))
	copy(out, p.times)
	return out
}

func (p *TracedPath) Last() (complex128, bool) {
	if len(p.points) == 0 {
		return 0, false
	}
	return p.points[len(p.points)-1], true
}
