package config

import (
	"fmt"
	"os"

	"github.com/san-kum/epicycles/internal/fourier"
	"gopkg.in/yaml.v3"
)

const (
	DefaultShape         = "heart"
	DefaultContourPoints = 400
	DefaultMinOrder      = 1
	DefaultMaxOrder      = 10
	DefaultSamples       = 500
	DefaultTolerance     = 1e-10
	DefaultFFTSize       = 4096
	DefaultCirclePoints  = 100
	DefaultWidth         = 800
	DefaultHeight        = 800
)

const (
	ModeSingle = "single"
	ModeSweep  = "sweep"
)

type Config struct {
	Name          string             `yaml:"name"`
	Shape         string             `yaml:"shape"`
	ShapeParams   map[string]float64 `yaml:"shape_params,omitempty"`
	PointsFile    string             `yaml:"points_file,omitempty"`
	ContourPoints int                `yaml:"contour_points"`
	Center        bool               `yaml:"center"`
	Mode          string             `yaml:"mode"`
	MinOrder      int                `yaml:"min_order"`
	MaxOrder      int                `yaml:"max_order"`
	Samples       int                `yaml:"samples"`
	Analysis      AnalysisConfig     `yaml:"analysis"`
	Render        RenderConfig       `yaml:"render"`
}

type AnalysisConfig struct {
	Method    string  `yaml:"method"`
	Tolerance float64 `yaml:"tolerance"`
	Workers   int     `yaml:"workers"`
	FFTSize   int     `yaml:"fft_size"`
}

// RenderConfig styles the SVG output. Colors are any SVG color value.
type RenderConfig struct {
	CirclePoints int    `yaml:"circle_points"`
	Width        int    `yaml:"width"`
	Height       int    `yaml:"height"`
	ContourColor string `yaml:"contour_color"`
	PathColor    string `yaml:"path_color"`
	TraceColor   string `yaml:"trace_color"`
	RadiusColor  string `yaml:"radius_color"`
	CircleColor  string `yaml:"circle_color"`
}

func DefaultConfig() *Config {
	return &Config{
		Name:          "epicycles",
		Shape:         DefaultShape,
		ContourPoints: DefaultContourPoints,
		Center:        true,
		Mode:          ModeSingle,
		MinOrder:      DefaultMinOrder,
		MaxOrder:      DefaultMaxOrder,
		Samples:       DefaultSamples,
		Analysis: AnalysisConfig{
			Method:    fourier.MethodQuadrature.String(),
			Tolerance: DefaultTolerance,
			FFTSize:   DefaultFFTSize,
		},
		Render: DefaultRender(),
	}
}

func DefaultRender() RenderConfig {
	return RenderConfig{
		CirclePoints: DefaultCirclePoints,
		Width:        DefaultWidth,
		Height:       DefaultHeight,
		ContourColor: "steelblue",
		PathColor:    "limegreen",
		TraceColor:   "darkorange",
		RadiusColor:  "silver",
		CircleColor:  "black",
	}
}

// Load reads a yaml file over the defaults.
func Load(path string) (*Config, error) {
	return LoadOver(path, DefaultConfig())
}

// LoadOver reads a yaml file over base, so keys missing from the file keep
// base's values. base is not modified.
func LoadOver(path string, base *Config) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := base.Clone()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) Clone() *Config {
	out := *c
	if c.ShapeParams != nil {
		out.ShapeParams = make(map[string]float64, len(c.ShapeParams))
		for k, v := range c.ShapeParams {
			out.ShapeParams[k] = v
		}
	}
	return &out
}

// Validate checks everything that can be checked without building the
// contour. Errors wrap fourier.ErrInvalidArgument.
func (c *Config) Validate() error {
	invalid := func(name string, value any, reason string) error {
		return &fourier.ArgumentError{Op: "config", Name: name, Value: value, Reason: reason}
	}

	if c.Shape == "" && c.PointsFile == "" {
		return invalid("shape", c.Shape, "either a shape or a points file is required")
	}
	if c.PointsFile == "" && c.ContourPoints < 3 {
		return invalid("contour points", c.ContourPoints, "must be at least 3")
	}
	if c.Samples <= 2 {
		return invalid("samples", c.Samples, "must be greater than 2")
	}
	if c.MaxOrder <= 0 {
		return invalid("max order", c.MaxOrder, "must be a positive integer")
	}

	switch c.Mode {
	case ModeSingle:
	case ModeSweep:
		if c.MinOrder <= 0 {
			return invalid("min order", c.MinOrder, "must be a positive integer")
		}
		if c.MaxOrder <= c.MinOrder {
			return invalid("max order", c.MaxOrder, "must exceed the minimum order")
		}
	default:
		return invalid("mode", c.Mode, "must be single or sweep")
	}

	if _, err := fourier.ParseMethod(c.Analysis.Method); err != nil {
		return err
	}
	if c.Analysis.Tolerance <= 0 {
		return invalid("tolerance", c.Analysis.Tolerance, "must be positive")
	}
	if c.Render.CirclePoints < 2 {
		return invalid("circle points", c.Render.CirclePoints, "must be at least 2")
	}
	return nil
}

// AnalysisOptions translates the analysis section into analyzer options.
func (c *Config) AnalysisOptions() ([]fourier.Option, error) {
	method, err := fourier.ParseMethod(c.Analysis.Method)
	if err != nil {
		return nil, err
	}
	opts := []fourier.Option{
		fourier.WithMethod(method),
		fourier.WithTolerance(c.Analysis.Tolerance),
	}
	if c.Analysis.Workers > 0 {
		opts = append(opts, fourier.WithWorkers(c.Analysis.Workers))
	}
	if c.Analysis.FFTSize > 0 {
		opts = append(opts, fourier.WithFFTSize(c.Analysis.FFTSize))
	}
	return opts, nil
}
