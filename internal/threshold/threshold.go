// Package threshold turns a sampled probability density into isosurface
// levels: for an enclosed-probability fraction p it finds the smallest
// density value whose super-level set holds at least p of the probability
// (the highest-density-region contour).
//
// When the sampled mass never reaches p (p ≥ 1, a truncated grid or a
// rounding plateau) the smallest density present is returned and the level
// is marked Saturated. This never fails.
package threshold

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"

	"github.com/san-kum/orbital/internal/grid"
	"github.com/san-kum/orbital/internal/quantum"
)

// Level is the outcome of one enclosed-probability query.
type Level struct {
	Fraction float64 `json:"fraction"`
	Density  float64 `json:"density"`
	// Enclosed is the probability held by cells at or above Density.
	Enclosed float64 `json:"enclosed"`
	// Cells is the number of cells at or above Density.
	Cells     int  `json:"cells"`
	Saturated bool `json:"saturated"`
}

// Solver holds the density sorted in descending order with the running
// probability mass, so repeated queries cost one binary search each.
type Solver struct {
	sorted     []float64
	cumulative []float64
}

// NewSolver pairs density with its volume element. dv may be uniform or
// per cell; it must come from the same grid as density.
func NewSolver(density []float64, dv grid.Volume) (*Solver, error) {
	n := len(density)
	if n == 0 {
		return nil, quantum.ErrEmptyField
	}
	if !dv.Fits(n) {
		return nil, fmt.Errorf("solver over %d cells: %w", n, quantum.ErrShapeMismatch)
	}

	asc := make([]float64, n)
	copy(asc, density)
	order := make([]int, n)
	floats.Argsort(asc, order)

	s := &Solver{sorted: make([]float64, n), cumulative: make([]float64, n)}
	for i := 0; i < n; i++ {
		src := order[n-1-i]
		s.sorted[i] = density[src]
		s.cumulative[i] = density[src] * dv.At(src)
	}
	floats.CumSum(s.cumulative, s.cumulative)
	return s, nil
}

// newMassSolver treats every value as its own probability mass.
func newMassSolver(prob []float64) (*Solver, error) {
	return NewSolver(prob, grid.UniformVolume(1))
}

// Total is the probability mass of the whole grid.
func (s *Solver) Total() float64 {
	return s.cumulative[len(s.cumulative)-1]
}

// Level answers one query against the absolute mass p.
func (s *Solver) Level(p float64) (Level, error) {
	if math.IsNaN(p) || p < 0 {
		return Level{}, fmt.Errorf("fraction %g: %w", p, quantum.ErrFraction)
	}

	n := len(s.cumulative)
	idx := sort.Search(n, func(i int) bool { return s.cumulative[i] >= p })
	saturated := idx == n
	if saturated {
		idx = n - 1
	}
	// Equal densities either all belong to the set or none do.
	for idx+1 < n && s.sorted[idx+1] == s.sorted[idx] {
		idx++
	}
	return Level{
		Fraction:  p,
		Density:   s.sorted[idx],
		Enclosed:  s.cumulative[idx],
		Cells:     idx + 1,
		Saturated: saturated,
	}, nil
}

// Threshold returns the density level for the absolute mass p.
func (s *Solver) Threshold(p float64) (float64, error) {
	l, err := s.Level(p)
	return l.Density, err
}

// Levels answers every fraction in order.
func (s *Solver) Levels(fractions []float64) ([]Level, error) {
	out := make([]Level, len(fractions))
	for i, p := range fractions {
		l, err := s.Level(p)
		if err != nil {
			return nil, err
		}
		out[i] = l
	}
	return out, nil
}

// NormalizedLevels answers fractions of the sampled total rather than of
// unit probability.
func (s *Solver) NormalizedLevels(fractions []float64) ([]Level, error) {
	total := s.Total()
	out := make([]Level, len(fractions))
	for i, p := range fractions {
		if math.IsNaN(p) || p < 0 {
			return nil, fmt.Errorf("fraction %g: %w", p, quantum.ErrFraction)
		}
		l, err := s.Level(p * total)
		if err != nil {
			return nil, err
		}
		l.Fraction = p
		out[i] = l
	}
	return out, nil
}

// Solve returns one density threshold per fraction, in the same order.
// Fractions are absolute probabilities, matching a normalized wavefunction.
func Solve(density []float64, dv grid.Volume, fractions []float64) ([]float64, error) {
	s, err := NewSolver(density, dv)
	if err != nil {
		return nil, err
	}
	return densities(s.Levels(fractions))
}

// SolveNormalized is Solve with fractions taken relative to the sampled total.
func SolveNormalized(density []float64, dv grid.Volume, fractions []float64) ([]float64, error) {
	s, err := NewSolver(density, dv)
	if err != nil {
		return nil, err
	}
	return densities(s.NormalizedLevels(fractions))
}

// SolveMass works on probabilities already multiplied by the volume
// element; the returned thresholds are probability values.
func SolveMass(prob []float64, fractions []float64) ([]float64, error) {
	s, err := newMassSolver(prob)
	if err != nil {
		return nil, err
	}
	return densities(s.Levels(fractions))
}

func densities(levels []Level, err error) ([]float64, error) {
	if err != nil {
		return nil, err
	}
	out := make([]float64, len(levels))
	for i, l := range levels {
		out[i] = l.Density
	}
	return out, nil
}
