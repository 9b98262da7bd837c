package fourier

import (
	"errors"
	"math"
	"math/cmplx"
	"testing"
)

func TestReconstruct_SampleCount(t *testing.T) {
	series, err := NewSeries([]complex128{0, 0, 1})
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		m  int
		ok bool
	}{
		{-1, false},
		{0, false},
		{2, false},
		{3, true},
		{100, true},
	}

	for _, tt := range tests {
		samples, err := Reconstruct(series, tt.m)
		if !tt.ok {
			if !errors.Is(err, ErrInvalidArgument) {
				t.Errorf("M=%d: expected ErrInvalidArgument, got %v", tt.m, err)
			}
			continue
		}
		if err != nil {
			t.Fatalf("M=%d: %v", tt.m, err)
		}
		if samples.Len() != tt.m || len(samples.Points) != tt.m {
			t.Errorf("M=%d: got %d params and %d points", tt.m, samples.Len(), len(samples.Points))
		}
		if samples.Params[0] != 0 || math.Abs(samples.Params[tt.m-1]-Tau) > 1e-12 {
			t.Errorf("M=%d: params span [%v, %v], want [0, τ]", tt.m, samples.Params[0], samples.Params[tt.m-1])
		}
	}

	if _, err := Reconstruct(nil, 10); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("nil series: expected ErrInvalidArgument, got %v", err)
	}
}

func TestReconstruct_MatchesDirectSum(t *testing.T) {
	coefficients := []complex128{0.1 - 0.2i, 0.3i, 0.5, 1 + 0.25i, -0.05}
	series, err := NewSeries(coefficients)
	if err != nil {
		t.Fatal(err)
	}

	samples, err := Reconstruct(series, 17)
	if err != nil {
		t.Fatal(err)
	}

	for j, tj := range samples.Params {
		var want complex128
		for i, c := range coefficients {
			want += c * cmplx.Exp(complex(0, float64(i-2)*tj))
		}
		if d := cmplx.Abs(samples.Points[j] - want); d > 1e-12 {
			t.Errorf("sample %d: got %v, want %v", j, samples.Points[j], want)
		}
	}
}

func TestReconstruct_Periodic(t *testing.T) {
	series, err := Analyze(square(t, 200), 12)
	if err != nil {
		t.Fatal(err)
	}
	samples, err := Reconstruct(series, 257)
	if err != nil {
		t.Fatal(err)
	}

	first, last := samples.Points[0], samples.Points[samples.Len()-1]
	if d := cmplx.Abs(first - last); d > 1e-9 {
		t.Errorf("ẑ(0) = %v and ẑ(τ) = %v differ by %e", first, last, d)
	}
}

func TestReconstructionError_NonIncreasing(t *testing.T) {
	curve := square(t, 400)

	prev := math.Inf(1)
	for n := 1; n <= 10; n++ {
		series, err := Analyze(curve, n)
		if err != nil {
			t.Fatal(err)
		}
		samples, err := Reconstruct(series, 500)
		if err != nil {
			t.Fatal(err)
		}
		mse := ReconstructionError(curve, samples)
		if mse > prev+1e-9 {
			t.Errorf("N=%d: error %e grew from %e", n, mse, prev)
		}
		prev = mse
	}

	if prev > 1e-2 {
		t.Errorf("N=10 error %e is too large for a square", prev)
	}
}

func TestMaxDeviation(t *testing.T) {
	curve := unitCircle(t, 1024)
	series, err := Analyze(curve, 3)
	if err != nil {
		t.Fatal(err)
	}
	samples, err := Reconstruct(series, 64)
	if err != nil {
		t.Fatal(err)
	}
	if d := MaxDeviation(curve, samples); d > 1e-5 {
		t.Errorf("max deviation %e too large", d)
	}
	if ReconstructionError(curve, nil) != 0 {
		t.Error("expected zero error for nil samples")
	}
}

func TestSeries(t *testing.T) {
	if _, err := NewSeries([]complex128{1, 2}); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("even length: expected ErrInvalidArgument, got %v", err)
	}
	if _, err := NewSeries([]complex128{1}); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("single term: expected ErrInvalidArgument, got %v", err)
	}

	in := []complex128{3i, 1, 4}
	s, err := NewSeries(in)
	if err != nil {
		t.Fatal(err)
	}
	in[0] = 0
	s.Coefficients()[1] = 0

	if s.Coefficient(-1) != 3i || s.Coefficient(0) != 1 || s.Coefficient(1) != 4 || s.Coefficient(2) != 0 {
		t.Errorf("unexpected coefficients %v", s.Coefficients())
	}
	if math.Abs(s.Energy()-26) > 1e-12 {
		t.Errorf("Energy() = %v, want 26", s.Energy())
	}
}

func TestParallelFor(t *testing.T) {
	for _, workers := range []int{1, 3, 8, 64} {
		hits := make([]int, 50)
		ParallelFor(len(hits), 1, workers, func(start, end int) {
			for i := start; i < end; i++ {
				hits[i]++
			}
		})
		for i, h := range hits {
			if h != 1 {
				t.Errorf("workers=%d: index %d visited %d times", workers, i, h)
			}
		}
	}
}
