// Package fourier fits truncated complex Fourier series to closed planar
// curves and evaluates them back.
//
// A curve is a periodic map t ↦ z(t) = x(t) + i·y(t) over [0, τ), τ = 2π:
//
//   - [Curve]: sampled contour evaluated by periodic linear interpolation
//   - [Analyze]: coefficients c_n = (1/τ) ∫ z(t) e^{-int} dt for n = -N..N
//   - [Series]: immutable orders/coefficients pair
//   - [Reconstruct]: ẑ(t) = Σ c_n e^{int} on a uniform grid of M samples
//   - [ReconstructionError]: mean squared distance to the source curve
//
// # Example
//
//	curve, _ := fourier.NewCurve(points)
//	series, _ := fourier.Analyze(curve, 10)
//	samples, _ := fourier.Reconstruct(series, 500)
//
// # Errors
//
// Invalid orders, sample counts and curves are rejected with an error
// wrapping [ErrInvalidArgument] before any computation begins. Test with
// errors.Is.
//
// # Thread Safety
//
// Curves, series and samples are read-only once built and may be shared
// between goroutines. Analyze fans coefficient integration out over
// [Options].Workers goroutines; each coefficient is computed independently,
// so the result is the same for any worker count.
package fourier
