package sweep

import (
	"context"
	"runtime"
	"time"

	"github.com/npillmayer/schuko/tracing"
	"github.com/san-kum/epicycles/internal/fourier"
	"golang.org/x/sync/errgroup"
)

// tracer writes to trace with key 'epicycles.sweep'
func tracer() tracing.Trace {
	return tracing.Select("epicycles.sweep")
}

type Config struct {
	MinOrder int
	MaxOrder int
	Samples  int
	Workers  int              // concurrent orders; 0 means GOMAXPROCS
	Analysis []fourier.Option // applied after the sweep's own defaults
}

// Entry is the series and its reconstruction for one truncation order.
type Entry struct {
	Order   int
	Series  *fourier.Series
	Samples *fourier.Samples
}

// Sweep holds one independently computed entry per truncation order.
type Sweep struct {
	entries []Entry
}

// Orders returns the integers MinOrder..MaxOrder.
func Orders(minOrder, maxOrder int) ([]int, error) {
	if minOrder <= 0 {
		return nil, &fourier.ArgumentError{Op: "sweep", Name: "minimum order", Value: minOrder, Reason: "must be a positive integer"}
	}
	if maxOrder <= minOrder {
		return nil, &fourier.ArgumentError{Op: "sweep", Name: "maximum order", Value: maxOrder, Reason: "must exceed the minimum order"}
	}
	orders := make([]int, 0, maxOrder-minOrder+1)
	for n := minOrder; n <= maxOrder; n++ {
		orders = append(orders, n)
	}
	return orders, nil
}

// Run analyzes and reconstructs f at every order in [MinOrder, MaxOrder].
// All arguments are validated before any work starts. Orders are computed
// concurrently and stored by index, so the result does not depend on
// scheduling.
func Run(ctx context.Context, f fourier.Evaluator, cfg Config) (*Sweep, error) {
	orders, err := Orders(cfg.MinOrder, cfg.MaxOrder)
	if err != nil {
		return nil, err
	}
	if cfg.Samples <= 2 {
		return nil, &fourier.ArgumentError{Op: "sweep", Name: "sample count", Value: cfg.Samples, Reason: "must be greater than 2"}
	}
	if f == nil {
		return nil, &fourier.ArgumentError{Op: "sweep", Name: "curve", Value: nil, Reason: "must not be nil"}
	}

	workers := cfg.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	// one goroutine per order already; keep each analysis serial unless
	// the caller overrides it
	opts := append([]fourier.Option{fourier.WithWorkers(1)}, cfg.Analysis...)

	start := time.Now()
	entries := make([]Entry, len(orders))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, order := range orders {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			e, err := compute(f, order, cfg.Samples, opts)
			if err != nil {
				return err
			}
			entries[i] = e
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	tracer().Debugf("swept orders %d..%d in %v", cfg.MinOrder, cfg.MaxOrder, time.Since(start))
	return &Sweep{entries: entries}, nil
}

func compute(f fourier.Evaluator, order, samples int, opts []fourier.Option) (Entry, error) {
	series, err := fourier.Analyze(f, order, opts...)
	if err != nil {
		return Entry{}, err
	}
	s, err := fourier.Reconstruct(series, samples)
	if err != nil {
		return Entry{}, err
	}
	return Entry{Order: order, Series: series, Samples: s}, nil
}

func (s *Sweep) Len() int { return len(s.entries) }

func (s *Sweep) Orders() []int {
	orders := make([]int, len(s.entries))
	for i, e := range s.entries {
		orders[i] = e.Order
	}
	return orders
}

func (s *Sweep) Entry(i int) Entry { return s.entries[i] }

func (s *Sweep) Entries() []Entry {
	out := make([]Entry, len(s.entries))
	copy(out, s.entries)
	return out
}

// At returns the entry for a truncation order.
func (s *Sweep) At(order int) (Entry, bool) {
	if len(s.entries) == 0 {
		return Entry{}, false
	}
	i := order - s.entries[0].Order
	if i < 0 || i >= len(s.entries) {
		return Entry{}, false
	}
	return s.entries[i], true
}

// Errors returns the reconstruction error of every entry against f.
func (s *Sweep) Errors(f fourier.Evaluator) []float64 {
	errs := make([]float64, len(s.entries))
	for i, e := range s.entries {
		errs[i] = fourier.ReconstructionError(f, e.Samples)
	}
	return errs
}
