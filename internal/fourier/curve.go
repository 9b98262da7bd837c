package fourier

import (
	"math"
	"math/cmplx"
	"sort"
)

// Tau is the length of the periodic parameter domain.
const Tau = 2 * math.Pi

// Evaluator is a periodic complex-valued curve over [0, Tau).
type Evaluator interface {
	Eval(t float64) complex128
}

// Knotted is implemented by evaluators that are only piecewise smooth.
// Knots are the parameters where the derivative may jump.
type Knotted interface {
	Knots() []float64
}

// EvaluatorFunc adapts an analytic function to Evaluator.
type EvaluatorFunc func(t float64) complex128

func (f EvaluatorFunc) Eval(t float64) complex128 { return f(t) }

// Curve is a closed curve sampled at discrete parameters and evaluated by
// periodic linear interpolation. A Curve is immutable.
type Curve struct {
	points []complex128
	params []float64
}

// NewCurve builds a curve from an ordered loop of points with parameters
// spaced uniformly over [0, Tau). A trailing point equal to the first one
// is treated as the explicit closure of the loop and dropped.
func NewCurve(points []complex128) (*Curve, error) {
	if err := validatePoints("new curve", points); err != nil {
		return nil, err
	}

	k := len(points)
	if points[0] == points[k-1] {
		k--
	}
	if k < 2 {
		return nil, invalidArgument("new curve", "point count", k, "a closed curve needs at least 2 distinct points")
	}

	pts := make([]complex128, k)
	copy(pts, points[:k])

	params := make([]float64, k)
	for i := range params {
		params[i] = float64(i) * Tau / float64(k)
	}

	return &Curve{points: pts, params: params}, nil
}

// NewCurveWithParams builds a curve from points and their parameters. The
// parameters must be strictly increasing inside [0, Tau]; the segment from
// the last point back to the first closes the loop.
func NewCurveWithParams(points []complex128, params []float64) (*Curve, error) {
	const op = "new curve"
	if err := validatePoints(op, points); err != nil {
		return nil, err
	}
	if len(params) != len(points) {
		return nil, invalidArgument(op, "parameter count", len(params), "must equal the point count")
	}
	for i, p := range params {
		if math.IsNaN(p) || p < 0 || p > Tau {
			return nil, invalidArgument(op, "parameter", p, "must lie in [0, 2π]")
		}
		if i > 0 && p <= params[i-1] {
			return nil, invalidArgument(op, "parameter", p, "parameters must be strictly increasing")
		}
	}

	pts := make([]complex128, len(points))
	copy(pts, points)
	ps := make([]float64, len(params))
	copy(ps, params)

	return &Curve{points: pts, params: ps}, nil
}

func validatePoints(op string, points []complex128) error {
	if len(points) < 2 {
		return invalidArgument(op, "point count", len(points), "need at least 2 points")
	}
	for _, z := range points {
		if cmplx.IsNaN(z) || cmplx.IsInf(z) {
			return invalidArgument(op, "point", z, "must be finite")
		}
	}
	return nil
}

// Eval returns the curve point at t, reduced modulo Tau.
func (c *Curve) Eval(t float64) complex128 {
	t = math.Mod(t, Tau)
	if t < 0 {
		t += Tau
	}

	k := len(c.params)
	i := sort.SearchFloat64s(c.params, t)

	switch {
	case i < k && c.params[i] == t:
		return c.points[i]
	case i == 0:
		return lerp(c.params[k-1]-Tau, c.points[k-1], c.params[0], c.points[0], t)
	case i == k:
		return lerp(c.params[k-1], c.points[k-1], c.params[0]+Tau, c.points[0], t)
	default:
		return lerp(c.params[i-1], c.points[i-1], c.params[i], c.points[i], t)
	}
}

func lerp(ta float64, za complex128, tb float64, zb complex128, t float64) complex128 {
	if tb <= ta {
		return za
	}
	w := (t - ta) / (tb - ta)
	return complex(
		real(za)+(real(zb)-real(za))*w,
		imag(za)+(imag(zb)-imag(za))*w,
	)
}

// Knots returns the sample parameters, where the interpolant has kinks.
func (c *Curve) Knots() []float64 {
	return c.Params()
}

func (c *Curve) Len() int { return len(c.points) }

func (c *Curve) Points() []complex128 {
	out := make([]complex128, len(c.points))
	copy(out, c.points)
	return out
}

func (c *Curve) Params() []float64 {
	out := make([]float64, len(c.params))
	copy(out, c.params)
	return out
}

// Closed returns the points with the first point appended, ready to be drawn
// as a closed polyline.
func (c *Curve) Closed() []complex128 {
	out := make([]complex128, len(c.points)+1)
	copy(out, c.points)
	out[len(c.points)] = c.points[0]
	return out
}
