package fourier

import (
	"math/cmplx"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Samples holds the series evaluated on a uniform grid over [0, τ].
type Samples struct {
	Params []float64
	Points []complex128
}

func (s *Samples) Len() int { return len(s.Params) }

// SampleParams returns m uniformly spaced parameters t_j = jτ/(m-1).
func SampleParams(m int) ([]float64, error) {
	if m <= 2 {
		return nil, invalidArgument("sample params", "sample count", m, "must be greater than 2")
	}
	return floats.Span(make([]float64, m), 0, Tau), nil
}

// Reconstruct evaluates ẑ(t) = Σ c_n e^{int} at m uniform parameters by
// direct summation over all orders.
func Reconstruct(s *Series, m int) (*Samples, error) {
	if s == nil {
		return nil, invalidArgument("reconstruct", "series", nil, "must not be nil")
	}
	if m <= 2 {
		return nil, invalidArgument("reconstruct", "sample count", m, "must be greater than 2")
	}

	params, err := SampleParams(m)
	if err != nil {
		return nil, err
	}

	points := make([]complex128, m)
	for j, t := range params {
		points[j] = s.Eval(t)
	}

	return &Samples{Params: params, Points: points}, nil
}

// ReconstructionError returns the mean squared distance between the samples
// and the curve evaluated at the same parameters.
func ReconstructionError(f Evaluator, s *Samples) float64 {
	if s == nil || s.Len() == 0 {
		return 0
	}
	sq := make([]float64, s.Len())
	for j, t := range s.Params {
		d := cmplx.Abs(s.Points[j] - f.Eval(t))
		sq[j] = d * d
	}
	return stat.Mean(sq, nil)
}

// MaxDeviation returns the largest distance between the samples and the
// curve.
func MaxDeviation(f Evaluator, s *Samples) float64 {
	worst := 0.0
	for j, t := range s.Params {
		if d := cmplx.Abs(s.Points[j] - f.Eval(t)); d > worst {
			worst = d
		}
	}
	return worst
}
