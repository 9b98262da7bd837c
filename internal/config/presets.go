package config

import "sort"

func preset(shape string, apply func(c *Config)) *Config {
	c := DefaultConfig()
	c.Name = shape
	c.Shape = shape
	apply(c)
	return c
}

var Presets = map[string]map[string]*Config{
	"circle": {
		"single": preset("circle", func(c *Config) {
			c.MaxOrder = 1
			c.ContourPoints = 4096
			c.Samples = 100
		}),
		"offset": preset("circle", func(c *Config) {
			c.MaxOrder = 2
			c.Center = false
			c.ShapeParams = map[string]float64{"radius": 2}
		}),
	},
	"heart": {
		"small": preset("heart", func(c *Config) {
			c.MaxOrder = 5
		}),
		"detailed": preset("heart", func(c *Config) {
			c.MaxOrder = 30
			c.ContourPoints = 1000
			c.Samples = 1000
		}),
		"converge": preset("heart", func(c *Config) {
			c.Mode = ModeSweep
			c.MinOrder = 1
			c.MaxOrder = 20
		}),
	},
	"square": {
		"rough": preset("square", func(c *Config) {
			c.MaxOrder = 3
		}),
		"sharp": preset("square", func(c *Config) {
			c.MaxOrder = 50
			c.Samples = 1000
		}),
		"converge": preset("square", func(c *Config) {
			c.Mode = ModeSweep
			c.MinOrder = 1
			c.MaxOrder = 30
		}),
	},
	"star": {
		"five": preset("star", func(c *Config) {
			c.MaxOrder = 25
			c.ShapeParams = map[string]float64{"spikes": 5, "inner": 0.45}
		}),
		"preview": preset("star", func(c *Config) {
			c.MaxOrder = 25
			c.Analysis.Method = "fft"
		}),
	},
	"epitrochoid": {
		"spirograph": preset("epitrochoid", func(c *Config) {
			c.MaxOrder = 8
			c.ShapeParams = map[string]float64{"R": 3, "r": 1, "d": 0.5}
		}),
	},
}

// GetPreset returns a copy of the named preset, or nil if it does not exist.
func GetPreset(shape, name string) *Config {
	shapePresets, ok := Presets[shape]
	if !ok {
		return nil
	}
	cfg, ok := shapePresets[name]
	if !ok {
		return nil
	}
	return cfg.Clone()
}

func ListPresets(shape string) []string {
	shapePresets, ok := Presets[shape]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(shapePresets))
	for name := range shapePresets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ListPresetShapes returns the shapes that have presets.
func ListPresetShapes() []string {
	shapes := make([]string, 0, len(Presets))
	for shape := range Presets {
		shapes = append(shapes, shape)
	}
	sort.Strings(shapes)
	return shapes
}
