package export

import (
	"fmt"
	"strings"

	"github.com/san-kum/epicycles/internal/config"
	"github.com/san-kum/epicycles/internal/epicycle"
	"github.com/san-kum/epicycles/internal/viz"
)

const padding = 0.1

// Layer is one polyline of an SVG drawing.
type Layer struct {
	Points      []complex128
	Color       string
	StrokeWidth float64
	Closed      bool
}

func header(sb *strings.Builder, width, height int) {
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="white"/>
`, width, height, width, height))
}

func writePath(sb *strings.Builder, l Layer, b viz.Bounds, width, height int) {
	if len(l.Points) < 2 {
		return
	}
	sw := l.StrokeWidth
	if sw <= 0 {
		sw = 1.5
	}
	sb.WriteString(fmt.Sprintf(`<path fill="none" stroke="%s" stroke-width="%.1f" d="M`, l.Color, sw))

	for i, z := range l.Points {
		x, y := b.Map(z, float64(width), float64(height))
		if i == 0 {
			sb.WriteString(fmt.Sprintf("%.1f,%.1f", x, y))
		} else {
			sb.WriteString(fmt.Sprintf(" L%.1f,%.1f", x, y))
		}
	}
	if l.Closed {
		sb.WriteString(" Z")
	}
	sb.WriteString("\"/>\n")
}

// PathsSVG draws the layers in order on one shared, equally scaled viewport.
func PathsSVG(layers []Layer, width, height int) string {
	sets := make([][]complex128, len(layers))
	for i, l := range layers {
		sets[i] = l.Points
	}
	b := viz.Fit(padding, sets...).Square()

	var sb strings.Builder
	header(&sb, width, height)
	for _, l := range layers {
		writePath(&sb, l, b, width, height)
	}
	sb.WriteString("</svg>")
	return sb.String()
}

// ReconstructionSVG overlays the reconstructed path on the input contour.
func ReconstructionSVG(contour, reconstructed []complex128, style config.RenderConfig) string {
	return PathsSVG([]Layer{
		{Points: contour, Color: style.ContourColor, StrokeWidth: 1, Closed: true},
		{Points: reconstructed, Color: style.PathColor, StrokeWidth: 2},
	}, style.Width, style.Height)
}

// FrameSVG draws one epicycle frame: the contour, every circle with its
// radius, and the path traced so far.
func FrameSVG(frame epicycle.Frame, contour, trace []complex128, style config.RenderConfig) string {
	circles := make([][]complex128, 0, len(frame.Vectors))
	for _, v := range frame.Vectors {
		if c := v.Circle(style.CirclePoints); c != nil {
			circles = append(circles, c)
		}
	}

	sets := append([][]complex128{contour, trace}, circles...)
	b := viz.Fit(padding, sets...).Square()
	w, h := style.Width, style.Height

	var sb strings.Builder
	header(&sb, w, h)
	writePath(&sb, Layer{Points: contour, Color: style.ContourColor, StrokeWidth: 1, Closed: true}, b, w, h)

	sb.WriteString(`<g fill="none" stroke-width="0.5">` + "\n")
	for _, c := range circles {
		writePath(&sb, Layer{Points: c, Color: style.CircleColor, StrokeWidth: 0.5, Closed: true}, b, w, h)
	}
	sb.WriteString("</g>\n")

	for _, v := range frame.Vectors {
		x0, y0 := b.Map(v.Center, float64(w), float64(h))
		x1, y1 := b.Map(v.Tip, float64(w), float64(h))
		sb.WriteString(fmt.Sprintf(`<line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="%s" stroke-width="1"/>`+"\n",
			x0, y0, x1, y1, style.RadiusColor))
	}

	writePath(&sb, Layer{Points: trace, Color: style.TraceColor, StrokeWidth: 2}, b, w, h)

	tx, ty := b.Map(frame.Tip, float64(w), float64(h))
	sb.WriteString(fmt.Sprintf(`<circle cx="%.1f" cy="%.1f" r="3" fill="%s"/>`+"\n", tx, ty, style.TraceColor))

	sb.WriteString("</svg>")
	return sb.String()
}
