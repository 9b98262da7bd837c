package quadrature

import (
	"errors"
	"math"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
)

func TestIntegrateSmooth(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()

	tests := []struct {
		name     string
		f        func(float64) float64
		a, b     float64
		expected float64
	}{
		{"cubic", func(x float64) float64 { return x * x * x }, 0, 1, 0.25},
		{"sine half period", math.Sin, 0, math.Pi, 2},
		{"cosine full period", math.Cos, 0, 2 * math.Pi, 0},
		{"exp", math.Exp, 0, 1, math.E - 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := Integrate(tt.f, tt.a, tt.b, nil, DefaultConfig())
			assert.NoError(t, err)
			assert.True(t, res.Converged)
			assert.InDelta(t, tt.expected, res.Value, 1e-9)
			assert.Greater(t, res.Evals, 0)
		})
	}
}

func TestIntegrateKinkWithBreakpoint(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()

	f := func(x float64) float64 { return math.Abs(x - 0.3) }

	with, err := Integrate(f, 0, 1, []float64{0.3}, DefaultConfig())
	assert.NoError(t, err)
	assert.InDelta(t, 0.29, with.Value, 1e-12)

	without, err := Integrate(f, 0, 1, nil, DefaultConfig())
	assert.NoError(t, err)
	assert.InDelta(t, 0.29, without.Value, 1e-9)

	assert.Less(t, with.Evals, without.Evals, "breakpoint should save refinement work")
}

func TestIntegrateIgnoresOutsideBreakpoints(t *testing.T) {
	res, err := Integrate(math.Sin, 0, math.Pi, []float64{-1, 0, math.Pi, 7, math.NaN(), 1, 1}, DefaultConfig())
	assert.NoError(t, err)
	assert.InDelta(t, 2.0, res.Value, 1e-9)
}

func TestIntegrateDeterministic(t *testing.T) {
	f := func(x float64) float64 { return math.Sin(7*x) * math.Exp(-x) }
	r1, err1 := Integrate(f, 0, 3, []float64{1.5}, DefaultConfig())
	r2, err2 := Integrate(f, 0, 3, []float64{1.5}, DefaultConfig())
	assert.NoError(t, err1)
	assert.NoError(t, err2)
	assert.Equal(t, r1, r2)
}

func TestIntegrateDepthLimit(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()

	step := func(x float64) float64 {
		if x < 1.0/3.0 {
			return 0
		}
		return 1
	}
	cfg := DefaultConfig()
	cfg.MaxDepth = 0

	res, err := Integrate(step, 0, 1, nil, cfg)
	assert.NoError(t, err)
	assert.False(t, res.Converged)
	assert.Equal(t, 1, res.Panels)
}

func TestIntegrateInvalid(t *testing.T) {
	tests := []struct {
		name string
		a, b float64
		cfg  Config
		want error
	}{
		{"reversed", 1, 0, DefaultConfig(), ErrInvalidInterval},
		{"empty", 1, 1, DefaultConfig(), ErrInvalidInterval},
		{"nan", math.NaN(), 1, DefaultConfig(), ErrInvalidInterval},
		{"infinite", 0, math.Inf(1), DefaultConfig(), ErrInvalidInterval},
		{"zero tolerance", 0, 1, Config{AbsTol: 0, Nodes: 8, MaxDepth: 4}, ErrInvalidConfig},
		{"no nodes", 0, 1, Config{AbsTol: 1e-6, Nodes: 0, MaxDepth: 4}, ErrInvalidConfig},
		{"negative depth", 0, 1, Config{AbsTol: 1e-6, Nodes: 4, MaxDepth: -1}, ErrInvalidConfig},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Integrate(math.Sin, tt.a, tt.b, nil, tt.cfg)
			if !errors.Is(err, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestPanelEdges(t *testing.T) {
	edges := panelEdges(0, 1, []float64{0.75, 0.25, 0.25, 2, 0})
	assert.Equal(t, []float64{0, 0.25, 0.75, 1}, edges)
}
