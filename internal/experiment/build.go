package experiment

import (
	"context"
	"fmt"

	"github.com/san-kum/epicycles/internal/config"
	"github.com/san-kum/epicycles/internal/contour"
	"github.com/san-kum/epicycles/internal/fourier"
	"github.com/san-kum/epicycles/internal/storage"
)

// Contour produces the points described by cfg: a points file when one is
// set, the named synthetic shape otherwise.
func (r *Registry) Contour(cfg *config.Config) ([]complex128, error) {
	var (
		pts []complex128
		err error
	)
	if cfg.PointsFile != "" {
		pts, err = storage.LoadPoints(cfg.PointsFile)
	} else {
		pts, err = r.GetShape(cfg.Shape, cfg.ContourPoints, cfg.ShapeParams)
	}
	if err != nil {
		return nil, err
	}
	if cfg.Center {
		pts = contour.Center(pts)
	}
	return pts, nil
}

// Build validates cfg and runs the configuration it describes.
func (r *Registry) Build(ctx context.Context, cfg *config.Config) (Configuration, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	opts, err := cfg.AnalysisOptions()
	if err != nil {
		return nil, err
	}

	pts, err := r.Contour(cfg)
	if err != nil {
		return nil, err
	}
	curve, err := fourier.NewCurve(pts)
	if err != nil {
		return nil, err
	}

	switch cfg.Mode {
	case config.ModeSweep:
		s, err := NewSweep(ctx, cfg.Name, curve, cfg.MinOrder, cfg.MaxOrder, cfg.Samples, cfg.Analysis.Workers, opts...)
		if err != nil {
			return nil, err
		}
		return s, nil
	case config.ModeSingle:
		s, err := NewSingle(cfg.Name, curve, cfg.MaxOrder, cfg.Samples, opts...)
		if err != nil {
			return nil, err
		}
		return s, nil
	}
	return nil, fmt.Errorf("unknown mode: %s", cfg.Mode)
}
