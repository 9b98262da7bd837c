package storage

import (
	"encoding/json"
	"io"
	"os"

	"github.com/san-kum/epicycles/internal/fourier"
)

type ExportData struct {
	Name         string             `json:"name"`
	Shape        string             `json:"shape"`
	Mode         string             `json:"mode"`
	MaxOrder     int                `json:"max_order"`
	Orders       []int              `json:"orders"`
	Coefficients [][2]float64       `json:"coefficients"`
	Params       []float64          `json:"t"`
	Points       [][2]float64       `json:"points"`
	Metrics      map[string]float64 `json:"metrics"`
}

func NewExportData(meta *RunMetadata, series *fourier.Series, samples *fourier.Samples) *ExportData {
	data := &ExportData{
		Name:         meta.Name,
		Shape:        meta.Shape,
		Mode:         meta.Mode,
		MaxOrder:     series.MaxOrder(),
		Orders:       series.Orders(),
		Coefficients: make([][2]float64, series.Len()),
		Params:       samples.Params,
		Points:       make([][2]float64, samples.Len()),
		Metrics:      meta.Metrics,
	}
	for i, c := range series.Coefficients() {
		data.Coefficients[i] = [2]float64{real(c), imag(c)}
	}
	for j, z := range samples.Points {
		data.Points[j] = [2]float64{real(z), imag(z)}
	}
	return data
}

// Export collects a stored run into one JSON-ready value.
func (s *Store) Export(runID string) (*ExportData, error) {
	meta, err := s.Load(runID)
	if err != nil {
		return nil, err
	}
	series, err := s.LoadSeries(runID)
	if err != nil {
		return nil, err
	}
	samples, err := s.LoadSamples(runID)
	if err != nil {
		return nil, err
	}
	return NewExportData(meta, series, samples), nil
}

func WriteJSON(w io.Writer, data *ExportData) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}

func ExportJSON(path string, data *ExportData) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()
	return WriteJSON(file, data)
}
