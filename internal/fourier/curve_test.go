package fourier

import (
	"errors"
	"math"
	"math/cmplx"
	"testing"
)

func TestNewCurve_DropsClosingPoint(t *testing.T) {
	open := []complex128{0, 1, 1 + 1i, 1i}
	closed := append(append([]complex128{}, open...), 0)

	a, err := NewCurve(open)
	if err != nil {
		t.Fatalf("open curve: %v", err)
	}
	b, err := NewCurve(closed)
	if err != nil {
		t.Fatalf("closed curve: %v", err)
	}

	if a.Len() != 4 || b.Len() != 4 {
		t.Fatalf("expected 4 points each, got %d and %d", a.Len(), b.Len())
	}
	for i, p := range a.Params() {
		want := float64(i) * Tau / 4
		if p != want || b.Params()[i] != want {
			t.Errorf("param %d = %v/%v, want %v", i, p, b.Params()[i], want)
		}
	}
}

func TestCurveEval(t *testing.T) {
	c, err := NewCurve([]complex128{0, 4, 4 + 4i, 4i})
	if err != nil {
		t.Fatal(err)
	}
	q := Tau / 4

	tests := []struct {
		name string
		t    float64
		want complex128
	}{
		{"first knot", 0, 0},
		{"second knot", q, 4},
		{"mid first segment", q / 2, 2},
		{"mid third segment", 2.5 * q, 2 + 4i},
		{"wrap segment", 3.5 * q, 2i},
		{"period", Tau, 0},
		{"negative", -q / 2, 2i},
		{"second period", Tau + q / 2, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := c.Eval(tt.t); cmplx.Abs(got-tt.want) > 1e-12 {
				t.Errorf("Eval(%v) = %v, want %v", tt.t, got, tt.want)
			}
		})
	}
}

func TestCurveWithParams_LeadingGap(t *testing.T) {
	// first knot after zero: t in [0, 1) lies on the wrap segment
	c, err := NewCurveWithParams([]complex128{0, 2, 2i}, []float64{1, 2, 3})
	if err != nil {
		t.Fatal(err)
	}

	// wrap segment runs from (3, 2i) to (1+τ, 0)
	span := Tau - 2
	w := (Tau - 3 + 0.5) / span
	want := 2i + (0-2i)*complex(w, 0)
	if got := c.Eval(0.5); cmplx.Abs(got-want) > 1e-12 {
		t.Errorf("Eval(0.5) = %v, want %v", got, want)
	}
	if got := c.Eval(1.5); cmplx.Abs(got-1) > 1e-12 {
		t.Errorf("Eval(1.5) = %v, want 1", got)
	}
}

func TestCurveInvalid(t *testing.T) {
	tests := []struct {
		name   string
		points []complex128
		params []float64
	}{
		{"single point", []complex128{1}, nil},
		{"only closure", []complex128{1, 1}, nil},
		{"nan point", []complex128{0, complex(math.NaN(), 0), 1i}, nil},
		{"length mismatch", []complex128{0, 1, 1i}, []float64{0, 1}},
		{"not increasing", []complex128{0, 1, 1i}, []float64{0, 1, 1}},
		{"negative param", []complex128{0, 1, 1i}, []float64{-1, 1, 2}},
		{"param beyond tau", []complex128{0, 1, 1i}, []float64{0, 1, 7}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var err error
			if tt.params == nil {
				_, err = NewCurve(tt.points)
			} else {
				_, err = NewCurveWithParams(tt.points, tt.params)
			}
			if !errors.Is(err, ErrInvalidArgument) {
				t.Errorf("expected ErrInvalidArgument, got %v", err)
			}
		})
	}
}

func TestCurveIsImmutable(t *testing.T) {
	pts := []complex128{0, 1, 1i}
	c, err := NewCurve(pts)
	if err != nil {
		t.Fatal(err)
	}
	pts[0] = 99
	c.Points()[1] = 99
	c.Params()[1] = 99

	if c.Eval(0) != 0 || c.Eval(Tau/3) != 1 {
		t.Error("curve changed through caller-held slices")
	}
	if closed := c.Closed(); len(closed) != 4 || closed[3] != closed[0] {
		t.Errorf("Closed() = %v", closed)
	}
}
