package export

import (
	"strings"
	"testing"

	"github.com/san-kum/epicycles/internal/config"
	"github.com/san-kum/epicycles/internal/epicycle"
	"github.com/san-kum/epicycles/internal/fourier"
)

func TestPathsSVG(t *testing.T) {
	svg := PathsSVG([]Layer{
		{Points: []complex128{0, 1, 1 + 1i}, Color: "red", Closed: true},
		{Points: []complex128{0.5}, Color: "blue"},
	}, 200, 100)

	if !strings.HasPrefix(svg, "<?xml") || !strings.HasSuffix(svg, "</svg>") {
		t.Fatal("not an svg document")
	}
	if !strings.Contains(svg, `width="200" height="100"`) {
		t.Error("missing dimensions")
	}
	if strings.Count(svg, "<path") != 1 {
		t.Errorf("expected one path, single-point layers are skipped:\n%s", svg)
	}
	if !strings.Contains(svg, `stroke="red"`) || !strings.Contains(svg, " Z\"") {
		t.Error("closed red layer missing")
	}
}

func TestReconstructionSVG(t *testing.T) {
	style := config.DefaultRender()
	svg := ReconstructionSVG([]complex128{1, 1i, -1, -1i}, []complex128{1, 1i, -1}, style)

	for _, color := range []string{style.ContourColor, style.PathColor} {
		if !strings.Contains(svg, `stroke="`+color+`"`) {
			t.Errorf("missing layer in %s", color)
		}
	}
}

func TestFrameSVG(t *testing.T) {
	series, err := fourier.NewSeries([]complex128{0.2, 0, 1, 0.5, 0})
	if err != nil {
		t.Fatal(err)
	}
	a, err := epicycle.NewAnimation(series, 20)
	if err != nil {
		t.Fatal(err)
	}
	var last epicycle.Frame
	a.Run(func(i int, f epicycle.Frame) bool {
		last = f
		return i < 9
	})

	style := config.DefaultRender()
	style.CirclePoints = 16
	svg := FrameSVG(last, []complex128{1, 1i, -1, -1i}, a.Path(), style)

	// five vectors, two with zero radius still get an outline
	if n := strings.Count(svg, "<line"); n != 5 {
		t.Errorf("expected 5 radius lines, got %d", n)
	}
	if n := strings.Count(svg, `stroke="`+style.CircleColor+`"`); n != 5 {
		t.Errorf("expected 5 circles, got %d", n)
	}
	if !strings.Contains(svg, `stroke="`+style.TraceColor+`"`) {
		t.Error("traced path missing")
	}
	if strings.Count(svg, "<circle") != 1 {
		t.Error("expected one tip marker")
	}
}
