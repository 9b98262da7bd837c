package contour

import (
	"errors"
	"fmt"
	"math"
	"math/cmplx"
)

var (
	ErrTooFewPoints = errors.New("contour: too few points")
	ErrMismatch     = errors.New("contour: coordinate slices differ in length")
)

// MinPoints is the smallest sample count a generated contour may have.
const MinPoints = 3

func checkCount(n int) error {
	if n < MinPoints {
		return fmt.Errorf("%w: need at least %d, got %d", ErrTooFewPoints, MinPoints, n)
	}
	return nil
}

// Circle samples a circle of radius r at n angles θ_j = 2πj/n, counter-clockwise.
func Circle(n int, r float64) ([]complex128, error) {
	return Ellipse(n, r, r)
}

// Ellipse samples an axis-aligned ellipse with semi-axes a and b.
func Ellipse(n int, a, b float64) ([]complex128, error) {
	if err := checkCount(n); err != nil {
		return nil, err
	}
	pts := make([]complex128, n)
	for j := range pts {
		sin, cos := math.Sincos(2 * math.Pi * float64(j) / float64(n))
		pts[j] = complex(a*cos, b*sin)
	}
	return pts, nil
}

// Heart samples the classic heart curve, scaled to roughly unit size.
func Heart(n int) ([]complex128, error) {
	if err := checkCount(n); err != nil {
		return nil, err
	}
	pts := make([]complex128, n)
	for j := range pts {
		t := 2 * math.Pi * float64(j) / float64(n)
		s := math.Sin(t)
		x := 16 * s * s * s
		y := 13*math.Cos(t) - 5*math.Cos(2*t) - 2*math.Cos(3*t) - math.Cos(4*t)
		pts[j] = complex(x/16, y/16)
	}
	return pts, nil
}

// Epitrochoid samples the curve traced by a point at distance d from the
// center of a circle of radius r rolling around a fixed circle of radius R.
// R/r should be rational with small denominator for the curve to close
// within one period; integer ratios close after one turn.
func Epitrochoid(n int, R, r, d float64) ([]complex128, error) {
	if err := checkCount(n); err != nil {
		return nil, err
	}
	if r == 0 {
		return nil, fmt.Errorf("contour: epitrochoid rolling radius must be non-zero")
	}
	k := (R + r) / r
	pts := make([]complex128, n)
	for j := range pts {
		t := 2 * math.Pi * float64(j) / float64(n)
		x := (R+r)*math.Cos(t) - d*math.Cos(k*t)
		y := (R+r)*math.Sin(t) - d*math.Sin(k*t)
		pts[j] = complex(x, y)
	}
	return pts, nil
}

// Square samples the perimeter of an axis-aligned square centered at the
// origin, uniformly by arc length, starting at the right edge midpoint.
func Square(n int, side float64) ([]complex128, error) {
	h := side / 2
	return Polygon([]complex128{
		complex(h, 0), complex(h, h), complex(-h, h), complex(-h, -h), complex(h, -h),
	}, n)
}

// Star samples a star polygon with the given number of spikes.
func Star(n, spikes int, outer, inner float64) ([]complex128, error) {
	if spikes < 2 {
		return nil, fmt.Errorf("contour: star needs at least 2 spikes, got %d", spikes)
	}
	vertices := make([]complex128, 2*spikes)
	for i := range vertices {
		r := outer
		if i%2 == 1 {
			r = inner
		}
		theta := math.Pi/2 + math.Pi*float64(i)/float64(spikes)
		vertices[i] = cmplx.Rect(r, theta)
	}
	return Polygon(vertices, n)
}

// Polygon resamples the closed polygon through vertices at n points spaced
// uniformly by arc length, starting at the first vertex.
func Polygon(vertices []complex128, n int) ([]complex128, error) {
	if err := checkCount(n); err != nil {
		return nil, err
	}
	if len(vertices) < 2 {
		return nil, fmt.Errorf("%w: polygon needs at least 2 vertices, got %d", ErrTooFewPoints, len(vertices))
	}

	m := len(vertices)
	lengths := make([]float64, m)
	perimeter := 0.0
	for i := range vertices {
		lengths[i] = cmplx.Abs(vertices[(i+1)%m] - vertices[i])
		perimeter += lengths[i]
	}
	if perimeter == 0 {
		return nil, fmt.Errorf("contour: degenerate polygon with zero perimeter")
	}

	pts := make([]complex128, n)
	edge, walked := 0, 0.0
	for j := range pts {
		s := perimeter * float64(j) / float64(n)
		for edge < m-1 && s > walked+lengths[edge] {
			walked += lengths[edge]
			edge++
		}
		w := 0.0
		if lengths[edge] > 0 {
			w = (s - walked) / lengths[edge]
		}
		a, b := vertices[edge], vertices[(edge+1)%m]
		pts[j] = a + (b-a)*complex(w, 0)
	}
	return pts, nil
}

// FromXY zips coordinate slices into complex points.
func FromXY(xs, ys []float64) ([]complex128, error) {
	if len(xs) != len(ys) {
		return nil, fmt.Errorf("%w: %d x values, %d y values", ErrMismatch, len(xs), len(ys))
	}
	pts := make([]complex128, len(xs))
	for i := range xs {
		pts[i] = complex(xs[i], ys[i])
	}
	return pts, nil
}

// Center translates points so that their bounding box is centered on the
// origin. The input is not modified.
func Center(points []complex128) []complex128 {
	out := make([]complex128, len(points))
	if len(points) == 0 {
		return out
	}
	minX, maxX := real(points[0]), real(points[0])
	minY, maxY := imag(points[0]), imag(points[0])
	for _, z := range points {
		minX = math.Min(minX, real(z))
		maxX = math.Max(maxX, real(z))
		minY = math.Min(minY, imag(z))
		maxY = math.Max(maxY, imag(z))
	}
	offset := complex((minX+maxX)/2, (minY+maxY)/2)
	for i, z := range points {
		out[i] = z - offset
	}
	return out
}

// Scale multiplies every point by factor.
func Scale(points []complex128, factor float64) []complex128 {
	out := make([]complex128, len(points))
	for i, z := range points {
		out[i] = z * complex(factor, 0)
	}
	return out
}
