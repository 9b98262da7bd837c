package epicycle

import (
	"github.com/npillmayer/schuko/tracing"
	"github.com/san-kum/epicycles/internal/fourier"
)

// tracer writes to trace with key 'epicycles.epicycle'
func tracer() tracing.Trace {
	return tracing.Select("epicycles.epicycle")
}

// Animation drives one run over the frame times t_j = jτ/(frames-1) and owns
// the run's traced path.
type Animation struct {
	composer *Composer
	times    []float64
	path     *TracedPath
	next     int
}

func NewAnimation(s *fourier.Series, frames int) (*Animation, error) {
	composer, err := NewComposer(s)
	if err != nil {
		return nil, err
	}
	times, err := fourier.SampleParams(frames)
	if err != nil {
		return nil, err
	}
	return &Animation{composer: composer, times: times, path: NewTracedPath()}, nil
}

// Next produces the next frame and appends its tip to the traced path. It
// returns false once every frame has been produced.
func (a *Animation) Next() (Frame, bool) {
	if a.next >= len(a.times) {
		return Frame{}, false
	}
	// times are increasing, so Step cannot reject them
	f, err := a.composer.Step(a.path, a.times[a.next])
	if err != nil {
		tracer().Errorf("frame %d: %v", a.next, err)
		return Frame{}, false
	}
	a.next++
	return f, true
}

// Run produces the remaining frames in order until fn returns false.
func (a *Animation) Run(fn func(index int, f Frame) bool) {
	for {
		index := a.next
		f, ok := a.Next()
		if !ok || !fn(index, f) {
			return
		}
	}
}

func (a *Animation) Composer() *Composer { return a.composer }

// Path returns the traced path accumulated so far.
func (a *Animation) Path() []complex128 { return a.path.Points() }

func (a *Animation) State() PathState { return a.path.State() }

func (a *Animation) Frames() int { return len(a.times) }

func (a *Animation) Remaining() int { return len(a.times) - a.next }
