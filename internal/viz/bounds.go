package viz

import "math"

// Bounds is an axis-aligned box in the complex plane.
type Bounds struct {
	MinX, MaxX float64
	MinY, MaxY float64
}

// Fit returns the bounding box of all points, grown by pad times its size
// on every side. Degenerate extents are widened to 1.
func Fit(pad float64, sets ...[]complex128) Bounds {
	b := Bounds{
		MinX: math.Inf(1), MaxX: math.Inf(-1),
		MinY: math.Inf(1), MaxY: math.Inf(-1),
	}
	for _, pts := range sets {
		for _, z := range pts {
			b.MinX = math.Min(b.MinX, real(z))
			b.MaxX = math.Max(b.MaxX, real(z))
			b.MinY = math.Min(b.MinY, imag(z))
			b.MaxY = math.Max(b.MaxY, imag(z))
		}
	}
	if math.IsInf(b.MinX, 1) {
		return Bounds{MinX: -1, MaxX: 1, MinY: -1, MaxY: 1}
	}

	if b.MaxX-b.MinX == 0 {
		b.MinX -= 0.5
		b.MaxX += 0.5
	}
	if b.MaxY-b.MinY == 0 {
		b.MinY -= 0.5
		b.MaxY += 0.5
	}
	dx := (b.MaxX - b.MinX) * pad
	dy := (b.MaxY - b.MinY) * pad
	return Bounds{MinX: b.MinX - dx, MaxX: b.MaxX + dx, MinY: b.MinY - dy, MaxY: b.MaxY + dy}
}

// Square widens the shorter side so both axes share one scale.
func (b Bounds) Square() Bounds {
	w, h := b.MaxX-b.MinX, b.MaxY-b.MinY
	if w > h {
		d := (w - h) / 2
		b.MinY -= d
		b.MaxY += d
	} else {
		d := (h - w) / 2
		b.MinX -= d
		b.MaxX += d
	}
	return b
}

// Map projects z onto a width x height raster with y pointing down.
func (b Bounds) Map(z complex128, width, height float64) (float64, float64) {
	x := (real(z) - b.MinX) / (b.MaxX - b.MinX) * width
	y := height - (imag(z)-b.MinY)/(b.MaxY-b.MinY)*height
	return x, y
}

// Scale converts a length in plane units to raster units along x.
func (b Bounds) Scale(length, width float64) float64 {
	return length / (b.MaxX - b.MinX) * width
}
