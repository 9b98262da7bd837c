package experiment

import (
	"context"
	"fmt"

	"github.com/san-kum/epicycles/internal/epicycle"
	"github.com/san-kum/epicycles/internal/fourier"
	"github.com/san-kum/epicycles/internal/sweep"
)

type Kind int

const (
	KindSingle Kind = iota
	KindSweep
)

func (k Kind) String() string {
	switch k {
	case KindSingle:
		return "single"
	case KindSweep:
		return "sweep"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Configuration is what both variants provide. Operations that only make
// sense for one variant are reached through AsSingle or AsSweep.
type Configuration interface {
	Kind() Kind
	Name() string
	Curve() *fourier.Curve
	SampleCount() int
}

// Single is one series at a fixed maximum order with its reconstruction.
type Single struct {
	name    string
	curve   *fourier.Curve
	series  *fourier.Series
	samples *fourier.Samples
}

// NewSingle analyzes curve up to maxOrder and reconstructs it at samples
// points. The result is fully built and never changes.
func NewSingle(name string, curve *fourier.Curve, maxOrder, samples int, opts ...fourier.Option) (*Single, error) {
	if curve == nil {
		return nil, &fourier.ArgumentError{Op: "single", Name: "curve", Value: nil, Reason: "must not be nil"}
	}
	if samples <= 2 {
		return nil, &fourier.ArgumentError{Op: "single", Name: "sample count", Value: samples, Reason: "must be greater than 2"}
	}
	series, err := fourier.Analyze(curve, maxOrder, opts...)
	if err != nil {
		return nil, err
	}
	s, err := fourier.Reconstruct(series, samples)
	if err != nil {
		return nil, err
	}
	return &Single{name: name, curve: curve, series: series, samples: s}, nil
}

func (s *Single) Kind() Kind              { return KindSingle }
func (s *Single) Name() string            { return s.name }
func (s *Single) Curve() *fourier.Curve   { return s.curve }
func (s *Single) SampleCount() int        { return s.samples.Len() }
func (s *Single) Series() *fourier.Series { return s.series }
func (s *Single) MaxOrder() int           { return s.series.MaxOrder() }
func (s *Single) Orders() []int           { return s.series.Orders() }

func (s *Single) Coefficients() []complex128 { return s.series.Coefficients() }

// Discrete returns the reconstruction; the slices are copies.
func (s *Single) Discrete() *fourier.Samples {
	out := &fourier.Samples{
		Params: make([]float64, s.samples.Len()),
		Points: make([]complex128, s.samples.Len()),
	}
	copy(out.Params, s.samples.Params)
	copy(out.Points, s.samples.Points)
	return out
}

// Error is the mean squared distance between reconstruction and curve.
func (s *Single) Error() float64 {
	return fourier.ReconstructionError(s.curve, s.samples)
}

// Animation starts a new run over the reconstruction's frame times. Every
// call gets its own traced path.
func (s *Single) Animation() (*epicycle.Animation, error) {
	return epicycle.NewAnimation(s.series, s.samples.Len())
}

// Sweep holds one series per order over a range of truncation orders.
type Sweep struct {
	name     string
	curve    *fourier.Curve
	samples  int
	result   *sweep.Sweep
	minOrder int
	maxOrder int
}

// NewSweep runs the order sweep eagerly; it honors ctx cancellation.
func NewSweep(ctx context.Context, name string, curve *fourier.Curve, minOrder, maxOrder, samples, workers int, opts ...fourier.Option) (*Sweep, error) {
	if curve == nil {
		return nil, &fourier.ArgumentError{Op: "sweep", Name: "curve", Value: nil, Reason: "must not be nil"}
	}
	result, err := sweep.Run(ctx, curve, sweep.Config{
		MinOrder: minOrder,
		MaxOrder: maxOrder,
		Samples:  samples,
		Workers:  workers,
		Analysis: opts,
	})
	if err != nil {
		return nil, err
	}
	return &Sweep{
		name:     name,
		curve:    curve,
		samples:  samples,
		result:   result,
		minOrder: minOrder,
		maxOrder: maxOrder,
	}, nil
}

func (s *Sweep) Kind() Kind             { return KindSweep }
func (s *Sweep) Name() string           { return s.name }
func (s *Sweep) Curve() *fourier.Curve  { return s.curve }
func (s *Sweep) SampleCount() int       { return s.samples }
func (s *Sweep) MinOrder() int          { return s.minOrder }
func (s *Sweep) MaxOrder() int          { return s.maxOrder }
func (s *Sweep) Orders() []int          { return s.result.Orders() }
func (s *Sweep) Entries() []sweep.Entry { return s.result.Entries() }

func (s *Sweep) Entry(order int) (sweep.Entry, bool) {
	return s.result.At(order)
}

// Errors returns the reconstruction error per order, aligned with Orders.
func (s *Sweep) Errors() []float64 {
	return s.result.Errors(s.curve)
}

// AsSingle returns c as a single-series configuration, or
// ErrUnsupportedOperation when it is a sweep.
func AsSingle(c Configuration) (*Single, error) {
	if s, ok := c.(*Single); ok {
		return s, nil
	}
	return nil, fourier.Unsupported("single-series access", kindOf(c))
}

// AsSweep returns c as a sweep configuration, or ErrUnsupportedOperation
// when it is a single series.
func AsSweep(c Configuration) (*Sweep, error) {
	if s, ok := c.(*Sweep); ok {
		return s, nil
	}
	return nil, fourier.Unsupported("sweep access", kindOf(c))
}

func kindOf(c Configuration) string {
	if c == nil {
		return "nil"
	}
	return c.Kind().String()
}
