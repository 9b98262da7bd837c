package fourier

import (
	"math"
	"math/cmplx"
)

// Series is a truncated complex Fourier series with orders -N..N. Orders and
// coefficients are stored in natural order, so index k holds order k-N.
type Series struct {
	maxOrder     int
	coefficients []complex128
}

// NewSeries wraps coefficients given in natural order c_-N, ..., c_N. The
// count must be odd and at least 3.
func NewSeries(coefficients []complex128) (*Series, error) {
	n := len(coefficients)
	if n < 3 || n%2 == 0 {
		return nil, invalidArgument("new series", "coefficient count", n, "must be 2N+1 with N > 0")
	}
	c := make([]complex128, n)
	copy(c, coefficients)
	return &Series{maxOrder: n / 2, coefficients: c}, nil
}

func (s *Series) MaxOrder() int { return s.maxOrder }

// Len returns 2N+1, the number of terms (and of epicycles).
func (s *Series) Len() int { return len(s.coefficients) }

func (s *Series) Orders() []int {
	orders := make([]int, len(s.coefficients))
	for i := range orders {
		orders[i] = i - s.maxOrder
	}
	return orders
}

func (s *Series) Coefficients() []complex128 {
	out := make([]complex128, len(s.coefficients))
	copy(out, s.coefficients)
	return out
}

// Coefficient returns c_n, or zero outside the truncation.
func (s *Series) Coefficient(n int) complex128 {
	if n < -s.maxOrder || n > s.maxOrder {
		return 0
	}
	return s.coefficients[n+s.maxOrder]
}

// Eval sums c_n e^{int} over all orders in natural order.
func (s *Series) Eval(t float64) complex128 {
	var z complex128
	for i, c := range s.coefficients {
		z += c * Rotor(i-s.maxOrder, t)
	}
	return z
}

// Energy returns Σ|c_n|², the mean squared magnitude of the series over one
// period.
func (s *Series) Energy() float64 {
	e := 0.0
	for _, c := range s.coefficients {
		a := cmplx.Abs(c)
		e += a * a
	}
	return e
}

// Rotor returns e^{int}.
func Rotor(n int, t float64) complex128 {
	sin, cos := math.Sincos(float64(n) * t)
	return complex(cos, sin)
}
