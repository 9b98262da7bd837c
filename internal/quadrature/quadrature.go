package quadrature

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/npillmayer/schuko/tracing"
	"gonum.org/v1/gonum/integrate/quad"
)

// tracer writes to trace with key 'epicycles.quadrature'
func tracer() tracing.Trace {
	return tracing.Select("epicycles.quadrature")
}

var (
	ErrInvalidInterval = errors.New("quadrature: invalid integration interval")
	ErrInvalidConfig   = errors.New("quadrature: invalid configuration")
)

type Config struct {
	AbsTol   float64 // absolute tolerance for the whole interval
	Nodes    int     // Gauss-Legendre nodes per panel
	MaxDepth int     // bisection limit per panel
}

func DefaultConfig() Config {
	return Config{
		AbsTol:   1e-10,
		Nodes:    8,
		MaxDepth: 24,
	}
}

func (c Config) Validate() error {
	if !(c.AbsTol > 0) || math.IsInf(c.AbsTol, 0) {
		return fmt.Errorf("%w: tolerance must be positive, got %g", ErrInvalidConfig, c.AbsTol)
	}
	if c.Nodes < 1 {
		return fmt.Errorf("%w: nodes must be at least 1, got %d", ErrInvalidConfig, c.Nodes)
	}
	if c.MaxDepth < 0 {
		return fmt.Errorf("%w: max depth must be non-negative, got %d", ErrInvalidConfig, c.MaxDepth)
	}
	return nil
}

type Result struct {
	Value     float64
	ErrEst    float64 // sum of |halves - whole| over accepted panels
	Evals     int
	Panels    int
	Converged bool // false when some panel hit MaxDepth above its tolerance
}

// Integrate computes ∫_a^b f(x) dx by adaptive bisection. Each panel is
// estimated with a fixed Gauss-Legendre rule and split until the two halves
// agree with the whole to within the panel's share of cfg.AbsTol.
// Breakpoints strictly inside (a, b) become panel boundaries, which keeps
// kinks of piecewise-smooth integrands off the interior of a panel.
//
// The result depends only on f, the interval, the breakpoints and cfg.
func Integrate(f func(float64) float64, a, b float64, breakpoints []float64, cfg Config) (Result, error) {
	if math.IsNaN(a) || math.IsNaN(b) || math.IsInf(a, 0) || math.IsInf(b, 0) || !(a < b) {
		return Result{}, fmt.Errorf("%w: [%g, %g]", ErrInvalidInterval, a, b)
	}
	if err := cfg.Validate(); err != nil {
		return Result{}, err
	}

	edges := panelEdges(a, b, breakpoints)
	ig := integrator{f: f, cfg: cfg, converged: true}

	var sum, errEst float64
	width := b - a
	for i := 0; i+1 < len(edges); i++ {
		lo, hi := edges[i], edges[i+1]
		tol := cfg.AbsTol * (hi - lo) / width
		v, e := ig.adapt(lo, hi, ig.fixed(lo, hi), tol, 0)
		sum += v
		errEst += e
	}

	if !ig.converged {
		tracer().Debugf("quadrature on [%g, %g] hit depth limit %d, error estimate %g", a, b, cfg.MaxDepth, errEst)
	}

	return Result{
		Value:     sum,
		ErrEst:    errEst,
		Evals:     ig.evals,
		Panels:    ig.panels,
		Converged: ig.converged,
	}, nil
}

type integrator struct {
	f         func(float64) float64
	cfg       Config
	evals     int
	panels    int
	converged bool
}

func (ig *integrator) fixed(lo, hi float64) float64 {
	ig.evals += ig.cfg.Nodes
	return quad.Fixed(ig.f, lo, hi, ig.cfg.Nodes, quad.Legendre{}, 0)
}

func (ig *integrator) adapt(lo, hi, whole, tol float64, depth int) (float64, float64) {
	mid := lo + (hi-lo)/2
	left := ig.fixed(lo, mid)
	right := ig.fixed(mid, hi)
	halves := left + right
	diff := math.Abs(halves - whole)

	if diff <= tol || depth >= ig.cfg.MaxDepth || mid <= lo || mid >= hi {
		if diff > tol {
			ig.converged = false
		}
		ig.panels++
		return halves, diff
	}

	lv, le := ig.adapt(lo, mid, left, tol/2, depth+1)
	rv, re := ig.adapt(mid, hi, right, tol/2, depth+1)
	return lv + rv, le + re
}

// panelEdges returns a, the sorted distinct breakpoints inside (a, b), and b.
func panelEdges(a, b float64, breakpoints []float64) []float64 {
	inner := make([]float64, 0, len(breakpoints))
	for _, p := range breakpoints {
		if p > a && p < b && !math.IsNaN(p) {
			inner = append(inner, p)
		}
	}
	sort.Float64s(inner)

	edges := make([]float64, 0, len(inner)+2)
	edges = append(edges, a)
	for _, p := range inner {
		if p > edges[len(edges)-1] {
			edges = append(edges, p)
		}
	}
	return append(edges, b)
}
