package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/npillmayer/schuko/tracing"
	"github.com/san-kum/epicycles/internal/fourier"
)

// tracer writes to trace with key 'epicycles.storage'
func tracer() tracing.Trace {
	return tracing.Select("epicycles.storage")
}

const (
	metadataFile     = "metadata.json"
	coefficientsFile = "coefficients.csv"
	samplesFile      = "samples.csv"
)

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type RunMetadata struct {
	ID        string             `json:"id"`
	Name      string             `json:"name"`
	Shape     string             `json:"shape"`
	Mode      string             `json:"mode"`
	Method    string             `json:"method"`
	Timestamp time.Time          `json:"timestamp"`
	MaxOrder  int                `json:"max_order"`
	MinOrder  int                `json:"min_order,omitempty"`
	Samples   int                `json:"samples"`
	Metrics   map[string]float64 `json:"metrics"`
}

// Run is everything persisted for one analysis.
type Run struct {
	Name     string
	Shape    string
	Mode     string
	Method   string
	MinOrder int
	Series   *fourier.Series
	Samples  *fourier.Samples
	Metrics  map[string]float64
}

func (s *Store) Save(run Run) (string, error) {
	if run.Series == nil || run.Samples == nil {
		return "", fmt.Errorf("storage: run %q has no series or samples", run.Name)
	}

	now := time.Now()
	runID := fmt.Sprintf("%s_%d", run.Name, now.UnixNano())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:        runID,
		Name:      run.Name,
		Shape:     run.Shape,
		Mode:      run.Mode,
		Method:    run.Method,
		Timestamp: now,
		MaxOrder:  run.Series.MaxOrder(),
		MinOrder:  run.MinOrder,
		Samples:   run.Samples.Len(),
		Metrics:   run.Metrics,
	}
	if meta.Metrics == nil {
		meta.Metrics = map[string]float64{}
	}

	if err := writeJSON(filepath.Join(runDir, metadataFile), meta); err != nil {
		return "", err
	}
	if err := writeCoefficients(filepath.Join(runDir, coefficientsFile), run.Series); err != nil {
		return "", err
	}
	if err := writeSamples(filepath.Join(runDir, samplesFile), run.Samples); err != nil {
		return "", err
	}

	tracer().Debugf("saved run %s to %s", runID, runDir)
	return runID, nil
}

func writeJSON(path string, v any) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

func writeCSV(path string, header []string, rows func(w *csv.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		return err
	}
	if err := rows(w); err != nil {
		return err
	}
	w.Flush()
	return w.Error()
}

func writeCoefficients(path string, series *fourier.Series) error {
	return writeCSV(path, []string{"order", "re", "im"}, func(w *csv.Writer) error {
		coeffs := series.Coefficients()
		for i, n := range series.Orders() {
			row := []string{strconv.Itoa(n), formatFloat(real(coeffs[i])), formatFloat(imag(coeffs[i]))}
			if err := w.Write(row); err != nil {
				return err
			}
		}
		return nil
	})
}

func writeSamples(path string, samples *fourier.Samples) error {
	return writeCSV(path, []string{"t", "x", "y"}, func(w *csv.Writer) error {
		for j, z := range samples.Points {
			row := []string{formatFloat(samples.Params[j]), formatFloat(real(z)), formatFloat(imag(z))}
			if err := w.Write(row); err != nil {
				return err
			}
		}
		return nil
	})
}

// List returns the metadata of every stored run, oldest first.
func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		meta, err := s.Load(entry.Name())
		if err != nil {
			tracer().Debugf("skipping %s: %v", entry.Name(), err)
			continue
		}
		runs = append(runs, *meta)
	}

	sort.Slice(runs, func(i, j int) bool {
		return runs[i].Timestamp.Before(runs[j].Timestamp)
	})
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, metadataFile))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

func readCSV(path string, fields int) ([][]float64, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.Comment = '#'
	r.TrimLeadingSpace = true
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}

	rows := make([][]float64, 0, len(records))
	for i, record := range records {
		if len(record) < fields {
			return nil, fmt.Errorf("%s line %d: expected %d fields, got %d", path, i+1, fields, len(record))
		}
		row := make([]float64, fields)
		header := false
		for j := 0; j < fields; j++ {
			v, err := strconv.ParseFloat(record[j], 64)
			if err != nil {
				if i == 0 {
					header = true
					break
				}
				return nil, fmt.Errorf("%s line %d: %w", path, i+1, err)
			}
			row[j] = v
		}
		if header {
			continue
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// LoadSeries reads the coefficients of a run back into a series.
func (s *Store) LoadSeries(runID string) (*fourier.Series, error) {
	path := filepath.Join(s.baseDir, runID, coefficientsFile)
	rows, err := readCSV(path, 3)
	if err != nil {
		return nil, err
	}

	n := len(rows) / 2
	coeffs := make([]complex128, len(rows))
	for i, row := range rows {
		order := int(row[0])
		if order != i-n {
			return nil, fmt.Errorf("%s: order %d at row %d, expected %d", path, order, i+1, i-n)
		}
		coeffs[i] = complex(row[1], row[2])
	}
	return fourier.NewSeries(coeffs)
}

func (s *Store) LoadSamples(runID string) (*fourier.Samples, error) {
	rows, err := readCSV(filepath.Join(s.baseDir, runID, samplesFile), 3)
	if err != nil {
		return nil, err
	}

	samples := &fourier.Samples{
		Params: make([]float64, len(rows)),
		Points: make([]complex128, len(rows)),
	}
	for j, row := range rows {
		samples.Params[j] = row[0]
		samples.Points[j] = complex(row[1], row[2])
	}
	return samples, nil
}

// LoadPoints reads a contour from a CSV file of x,y rows. A non-numeric
// first row is treated as a header; lines starting with # are ignored.
func LoadPoints(path string) ([]complex128, error) {
	rows, err := readCSV(path, 2)
	if err != nil {
		return nil, err
	}
	points := make([]complex128, len(rows))
	for i, row := range rows {
		points[i] = complex(row[0], row[1])
	}
	return points, nil
}
