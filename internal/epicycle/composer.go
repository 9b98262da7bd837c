package epicycle

import (
	"math/cmplx"

	"github.com/san-kum/epicycles/internal/fourier"
)

// Vector is one link of the epicycle chain at a given time.
type Vector struct {
	Order       int
	Coefficient complex128
	Value       complex128 // c_n e^{int}
	Center      complex128 // tip of the previous link
	Tip         complex128 // Center + Value
	Radius      float64    // |c_n|
}

// Circle returns n points of the circle traced by the vector's tip around its
// center, from angle 0 to 2π inclusive.
func (v Vector) Circle(n int) []complex128 {
	if n < 2 {
		return nil
	}
	pts := make([]complex128, n)
	for i := range pts {
		theta := fourier.Tau * float64(i) / float64(n-1)
		pts[i] = v.Center + cmplx.Rect(v.Radius, theta)
	}
	return pts
}

type Frame struct {
	T       float64
	Vectors []Vector
	Tip     complex128
}

// Interleave returns the display order 0, 1, -1, 2, -2, ..., N, -N.
func Interleave(maxOrder int) []int {
	if maxOrder < 0 {
		return nil
	}
	orders := make([]int, 0, 2*maxOrder+1)
	orders = append(orders, 0)
	for n := 1; n <= maxOrder; n++ {
		orders = append(orders, n, -n)
	}
	return orders
}

// Composer chains the terms of a series, in interleaved order, into rotating
// vectors. A Composer holds no per-run state.
type Composer struct {
	orders       []int
	coefficients []complex128
}

func NewComposer(s *fourier.Series) (*Composer, error) {
	if s == nil {
		return nil, &fourier.ArgumentError{Op: "new composer", Name: "series", Value: nil, Reason: "must not be nil"}
	}
	orders := Interleave(s.MaxOrder())
	coefficients := make([]complex128, len(orders))
	for k, n := range orders {
		coefficients[k] = s.Coefficient(n)
	}
	return &Composer{orders: orders, coefficients: coefficients}, nil
}

// Len returns the number of vectors in the chain.
func (c *Composer) Len() int { return len(c.orders) }

func (c *Composer) Orders() []int {
	out := make([]int, len(c.orders))
	copy(out, c.orders)
	return out
}

// Frame computes the vector chain at time t, starting at the origin.
func (c *Composer) Frame(t float64) Frame {
	vectors := make([]Vector, len(c.orders))
	var p complex128
	for k, n := range c.orders {
		coef := c.coefficients[k]
		v := coef * fourier.Rotor(n, t)
		vectors[k] = Vector{
			Order:       n,
			Coefficient: coef,
			Value:       v,
			Center:      p,
			Tip:         p + v,
			Radius:      cmplx.Abs(coef),
		}
		p += v
	}
	return Frame{T: t, Vectors: vectors, Tip: p}
}

// Tip returns only the end of the chain at time t.
func (c *Composer) Tip(t float64) complex128 {
	var p complex128
	for k, n := range c.orders {
		p += c.coefficients[k] * fourier.Rotor(n, t)
	}
	return p
}

// Step computes the frame at t and appends its tip to path. Frames must be
// stepped in non-decreasing time; an out-of-order t leaves path unchanged.
func (c *Composer) Step(path *TracedPath, t float64) (Frame, error) {
	f := c.Frame(t)
	if err := path.Append(t, f.Tip); err != nil {
		return Frame{}, err
	}
	return f, nil
}
