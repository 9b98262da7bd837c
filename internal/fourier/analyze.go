package fourier

import (
	"fmt"
	"runtime"
	"strings"
	"time"

	"github.com/npillmayer/schuko/tracing"
	"github.com/san-kum/epicycles/internal/quadrature"
	dspfourier "gonum.org/v1/gonum/dsp/fourier"
)

// tracer writes to trace with key 'epicycles.fourier'
func tracer() tracing.Trace {
	return tracing.Select("epicycles.fourier")
}

type Method int

const (
	// MethodQuadrature integrates each coefficient adaptively.
	MethodQuadrature Method = iota
	// MethodFFT estimates coefficients from uniform samples of the curve.
	MethodFFT
)

func (m Method) String() string {
	switch m {
	case MethodQuadrature:
		return "quadrature"
	case MethodFFT:
		return "fft"
	default:
		return fmt.Sprintf("method(%d)", int(m))
	}
}

func ParseMethod(s string) (Method, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "quadrature", "quad":
		return MethodQuadrature, nil
	case "fft":
		return MethodFFT, nil
	}
	return 0, invalidArgument("parse method", "method", s, "expected quadrature or fft")
}

type Options struct {
	Method    Method
	Tolerance float64 // absolute tolerance per coefficient part
	Nodes     int     // Gauss-Legendre nodes per quadrature panel
	MaxDepth  int
	Workers   int
	FFTSize   int // sample count for MethodFFT
}

func DefaultOptions() Options {
	q := quadrature.DefaultConfig()
	return Options{
		Method:    MethodQuadrature,
		Tolerance: q.AbsTol,
		Nodes:     q.Nodes,
		MaxDepth:  q.MaxDepth,
		Workers:   runtime.GOMAXPROCS(0),
		FFTSize:   4096,
	}
}

type Option func(*Options)

func WithMethod(m Method) Option       { return func(o *Options) { o.Method = m } }
func WithTolerance(tol float64) Option { return func(o *Options) { o.Tolerance = tol } }
func WithWorkers(n int) Option         { return func(o *Options) { o.Workers = n } }
func WithFFTSize(n int) Option         { return func(o *Options) { o.FFTSize = n } }
func WithNodes(n int) Option           { return func(o *Options) { o.Nodes = n } }

// WithOptions replaces all options at once.
func WithOptions(opts Options) Option { return func(o *Options) { *o = opts } }

func (o Options) quadrature() quadrature.Config {
	return quadrature.Config{AbsTol: o.Tolerance, Nodes: o.Nodes, MaxDepth: o.MaxDepth}
}

func (o Options) validate(maxOrder int) error {
	const op = "analyze"
	if o.Workers < 1 {
		return invalidArgument(op, "worker count", o.Workers, "must be positive")
	}
	switch o.Method {
	case MethodQuadrature:
		if err := o.quadrature().Validate(); err != nil {
			return invalidArgument(op, "quadrature options", fmt.Sprintf("%+v", o.quadrature()), err.Error())
		}
	case MethodFFT:
		if o.FFTSize < 2*maxOrder+1 {
			return invalidArgument(op, "fft size", o.FFTSize, fmt.Sprintf("must be at least %d for maximum order %d", 2*maxOrder+1, maxOrder))
		}
	default:
		return invalidArgument(op, "method", o.Method, "unknown")
	}
	return nil
}

// Analyze computes c_n = (1/τ) ∫₀^τ f(t) e^{-int} dt for n = -N..N. All
// arguments are checked before any integration starts. Orders are
// independent and are spread over Options.Workers goroutines; the result
// does not depend on the worker count.
func Analyze(f Evaluator, maxOrder int, opts ...Option) (*Series, error) {
	if f == nil {
		return nil, invalidArgument("analyze", "curve", nil, "must not be nil")
	}
	if maxOrder <= 0 {
		return nil, invalidArgument("analyze", "maximum order", maxOrder, "must be a positive integer")
	}

	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if err := o.validate(maxOrder); err != nil {
		return nil, err
	}

	start := time.Now()
	var (
		coefficients []complex128
		err          error
	)
	switch o.Method {
	case MethodFFT:
		coefficients = analyzeFFT(f, maxOrder, o.FFTSize)
	default:
		coefficients, err = analyzeQuadrature(f, maxOrder, o)
	}
	if err != nil {
		return nil, err
	}

	tracer().Debugf("analyzed %d orders with %s in %v", len(coefficients), o.Method, time.Since(start))
	return &Series{maxOrder: maxOrder, coefficients: coefficients}, nil
}

func analyzeQuadrature(f Evaluator, maxOrder int, o Options) ([]complex128, error) {
	n := 2*maxOrder + 1
	coefficients := make([]complex128, n)
	errs := make([]error, n)

	var knots []float64
	if k, ok := f.(Knotted); ok {
		knots = k.Knots()
	}
	cfg := o.quadrature()

	ParallelFor(n, 1, o.Workers, func(start, end int) {
		for i := start; i < end; i++ {
			coefficients[i], errs[i] = coefficient(f, i-maxOrder, knots, cfg)
		}
	})

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return coefficients, nil
}

// coefficient integrates the real and imaginary parts of c_n separately.
func coefficient(f Evaluator, n int, knots []float64, cfg quadrature.Config) (complex128, error) {
	re, err := quadrature.Integrate(integrand(f, n, realPart), 0, Tau, knots, cfg)
	if err != nil {
		return 0, fmt.Errorf("order %d real part: %w", n, err)
	}
	im, err := quadrature.Integrate(integrand(f, n, imagPart), 0, Tau, knots, cfg)
	if err != nil {
		return 0, fmt.Errorf("order %d imaginary part: %w", n, err)
	}
	if !re.Converged || !im.Converged {
		tracer().Infof("order %d: quadrature stopped at depth limit (error estimates %g, %g)", n, re.ErrEst, im.ErrEst)
	}
	return complex(re.Value, im.Value), nil
}

func realPart(z complex128) float64 { return real(z) }
func imagPart(z complex128) float64 { return imag(z) }

// integrand returns t ↦ part(f(t)·e^{-int})/τ for the given order.
func integrand(f Evaluator, n int, part func(complex128) float64) func(float64) float64 {
	return func(t float64) float64 {
		return part(f.Eval(t)*Rotor(-n, t)) / Tau
	}
}

// analyzeFFT samples f at t_j = jτ/k and reads c_n from bin n mod k of the
// normalized discrete transform.
func analyzeFFT(f Evaluator, maxOrder, k int) []complex128 {
	seq := make([]complex128, k)
	for j := range seq {
		seq[j] = f.Eval(float64(j) * Tau / float64(k))
	}

	fft := dspfourier.NewCmplxFFT(k)
	bins := fft.Coefficients(nil, seq)

	coefficients := make([]complex128, 2*maxOrder+1)
	scale := complex(1/float64(k), 0)
	for i := range coefficients {
		n := i - maxOrder
		coefficients[i] = bins[((n%k)+k)%k] * scale
	}
	return coefficients
}
