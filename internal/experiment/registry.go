package experiment

import (
	"fmt"
	"sort"

	"github.com/san-kum/epicycles/internal/contour"
)

// ShapeFunc samples a synthetic contour at n points.
type ShapeFunc func(n int, params map[string]float64) ([]complex128, error)

type Registry struct {
	shapes map[string]ShapeFunc
}

func param(params map[string]float64, key string, def float64) float64 {
	if v, ok := params[key]; ok {
		return v
	}
	return def
}

func NewRegistry() *Registry {
	r := &Registry{shapes: make(map[string]ShapeFunc)}

	r.shapes["circle"] = func(n int, p map[string]float64) ([]complex128, error) {
		return contour.Circle(n, param(p, "radius", 1))
	}
	r.shapes["ellipse"] = func(n int, p map[string]float64) ([]complex128, error) {
		return contour.Ellipse(n, param(p, "a", 1.5), param(p, "b", 1))
	}
	r.shapes["heart"] = func(n int, _ map[string]float64) ([]complex128, error) {
		return contour.Heart(n)
	}
	r.shapes["square"] = func(n int, p map[string]float64) ([]complex128, error) {
		return contour.Square(n, param(p, "side", 2))
	}
	r.shapes["star"] = func(n int, p map[string]float64) ([]complex128, error) {
		return contour.Star(n, int(param(p, "spikes", 5)), param(p, "outer", 1), param(p, "inner", 0.4))
	}
	r.shapes["epitrochoid"] = func(n int, p map[string]float64) ([]complex128, error) {
		return contour.Epitrochoid(n, param(p, "R", 3), param(p, "r", 1), param(p, "d", 0.5))
	}

	return r
}

// Register adds or replaces a shape.
func (r *Registry) Register(name string, fn ShapeFunc) {
	r.shapes[name] = fn
}

func (r *Registry) GetShape(name string, n int, params map[string]float64) ([]complex128, error) {
	fn, ok := r.shapes[name]
	if !ok {
		return nil, fmt.Errorf("unknown shape: %s", name)
	}
	return fn(n, params)
}

func (r *Registry) ListShapes() []string {
	names := make([]string, 0, len(r.shapes))
	for name := range r.shapes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
