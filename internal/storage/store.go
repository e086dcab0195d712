package storage

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/san-kum/orbital/internal/grid"
	"github.com/san-kum/orbital/internal/pipeline"
	"github.com/san-kum/orbital/internal/quantum"
	"github.com/san-kum/orbital/internal/render"
	"github.com/san-kum/orbital/internal/threshold"
)

var ErrRunNotFound = errors.New("storage: run not found")

const (
	metadataFile = "metadata.json"
	fieldFile    = "field.csv"
)

// FieldColumns is the header of field.csv. Rows are column-major.
var FieldColumns = []string{"x", "y", "z", "re", "im", "phase", "density", "dv"}

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
	ID           string            `json:"id"`
	Label        string            `json:"label"`
	State        quantum.State     `json:"state"`
	AtomicNumber float64           `json:"atomic_number"`
	Basis        quantum.Basis     `json:"basis"`
	Sampling     grid.Sampling     `json:"sampling"`
	Span         float64           `json:"span"`
	Steps        int               `json:"steps"`
	Mode         render.Mode       `json:"mode"`
	Levels       []threshold.Level `json:"levels"`
	Norm         float64           `json:"norm"`
	MeanRadius   float64           `json:"mean_radius"`
	Points       int               `json:"points"`
	Timestamp    time.Time         `json:"timestamp"`
	Elapsed      time.Duration     `json:"elapsed_ns"`
}

// Save writes a run directory holding metadata.json and field.csv and
// returns the new run ID.
func (s *Store) Save(res *pipeline.Result) (string, error) {
	runID := uuid.NewString()
	runDir := filepath.Join(s.baseDir, runID)
	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:           runID,
		Label:        res.Job.State.Label(),
		State:        res.Job.State,
		AtomicNumber: res.Job.AtomicNumber,
		Basis:        res.Job.Basis,
		Sampling:     res.Grid.Sampling,
		Span:         res.Job.EffectiveSpan(),
		Steps:        res.Job.Steps,
		Mode:         res.Job.Mode,
		Levels:       res.Levels,
		Norm:         res.Norm,
		MeanRadius:   res.MeanRadius,
		Points:       res.Grid.Len(),
		Timestamp:    time.Now(),
		Elapsed:      res.Elapsed,
	}
	if err := writeJSON(filepath.Join(runDir, metadataFile), meta); err != nil {
		os.RemoveAll(runDir)
		return "", err
	}
	if err := writeField(filepath.Join(runDir, fieldFile), res); err != nil {
		os.RemoveAll(runDir)
		return "", err
	}
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

func writeField(path string, res *pipeline.Result) error {
	g := res.Grid
	if res.Field == nil || res.Field.Len() != g.Len() || len(res.Density) != g.Len() {
		return fmt.Errorf("field over %d cells: %w", g.Len(), quantum.ErrShapeMismatch)
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(FieldColumns); err != nil {
		return err
	}

	phase := res.Field.Phase()
	row := make([]string, len(FieldColumns))
	for c := 0; c < g.Len(); c++ {
		i, j, k := g.Shape.Coords(c, grid.ColumnMajor)
		gi := g.Shape.Index(i, j, k, g.Order)
		v := res.Field.Values[gi]
		for n, x := range []float64{g.X[gi], g.Y[gi], g.Z[gi], real(v), imag(v), phase[gi], res.Density[gi], g.DV.At(gi)} {
			row[n] = strconv.FormatFloat(x, 'g', -1, 64)
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

// List returns every readable run, newest first.
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
			continue
		}
		runs = append(runs, *meta)
	}
	sort.Slice(runs, func(i, j int) bool { return runs[i].Timestamp.After(runs[j].Timestamp) })
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, metadataFile))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%s: %w", runID, ErrRunNotFound)
		}
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

// FieldPath is the location of a run's field.csv.
func (s *Store) FieldPath(runID string) string {
	return filepath.Join(s.baseDir, runID, fieldFile)
}

// FieldTable is field.csv in columnar form.
type FieldTable struct {
	X       []float64 `json:"x"`
	Y       []float64 `json:"y"`
	Z       []float64 `json:"z"`
	Re      []float64 `json:"re"`
	Im      []float64 `json:"im"`
	Phase   []float64 `json:"phase"`
	Density []float64 `json:"density"`
	DV      []float64 `json:"dv"`
}

func (t *FieldTable) Len() int { return len(t.X) }

func (t *FieldTable) columns() []*[]float64 {
	return []*[]float64{&t.X, &t.Y, &t.Z, &t.Re, &t.Im, &t.Phase, &t.Density, &t.DV}
}

func (s *Store) LoadField(runID string) (*FieldTable, error) {
	file, err := os.Open(s.FieldPath(runID))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%s: %w", runID, ErrRunNotFound)
		}
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = len(FieldColumns)
	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}

	t := &FieldTable{}
	if len(records) < 2 {
		return t, nil
	}
	cols := t.columns()
	for _, col := range cols {
		*col = make([]float64, 0, len(records)-1)
	}
	for line, record := range records[1:] {
		for n, field := range record {
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, fmt.Errorf("%s line %d: %w", fieldFile, line+2, err)
			}
			*cols[n] = append(*cols[n], v)
		}
	}
	return t, nil
}
