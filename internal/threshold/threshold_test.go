package threshold

import (
	"errors"
	"math"
	"testing"

	"github.com/san-kum/orbital/internal/grid"
	"github.com/san-kum/orbital/internal/quantum"
	"github.com/san-kum/orbital/internal/wavefunction"
)

// Masses with dv = 1/8 are 0.5, 0.25, 0.125, 0.0625 and cumulate exactly to
// 0.5, 0.75, 0.875, 0.9375 in float64.
var (
	exactDensity = []float64{1, 4, 0.5, 2}
	exactDV      = grid.UniformVolume(0.125)
)

func TestSolve_ExactCumulativeMatch(t *testing.T) {
	tests := []struct {
		fraction float64
		want     float64
	}{
		{0.5, 4},
		{0.75, 2},
		{0.875, 1},
		{0.9375, 0.5},
	}
	for _, tt := range tests {
		got, err := Solve(exactDensity, exactDV, []float64{tt.fraction})
		if err != nil {
			t.Fatalf("solve: %v", err)
		}
		if got[0] != tt.want {
			t.Errorf("fraction %g: threshold %g, want %g", tt.fraction, got[0], tt.want)
		}
	}
}

func TestSolve_FirstCellHoldsFraction(t *testing.T) {
	got, err := Solve(exactDensity, exactDV, []float64{0.1, 0})
	if err != nil {
		t.Fatalf("solve: %v", err)
	}
	if got[0] != 4 || got[1] != 4 {
		t.Errorf("expected the peak density 4 for small fractions, got %v", got)
	}
}

func TestSolve_SaturatedReturnsMinimum(t *testing.T) {
	s, err := NewSolver(exactDensity, exactDV)
	if err != nil {
		t.Fatalf("solver: %v", err)
	}
	for _, p := range []float64{0.95, 1, 3} {
		l, err := s.Level(p)
		if err != nil {
			t.Fatalf("fraction %g: unexpected error %v", p, err)
		}
		if l.Density != 0.5 || !l.Saturated || l.Cells != 4 {
			t.Errorf("fraction %g: got %+v, want saturated minimum 0.5", p, l)
		}
	}
}

func TestSolve_OrderPreserved(t *testing.T) {
	got, err := Solve(exactDensity, exactDV, []float64{0.875, 0.5, 0.75})
	if err != nil {
		t.Fatalf("solve: %v", err)
	}
	want := []float64{1, 4, 2}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("position %d: got %g, want %g", i, got[i], want[i])
		}
	}
}

func TestSolve_ScalarAndDenseVolumeAgree(t *testing.T) {
	g, _ := grid.Sample(6, 21)
	f, _ := wavefunction.Evaluate(quantum.State{N: 2, L: 1, M: 0}, g)
	density := f.Density()
	fractions := []float64{0.2, 0.5, 0.8}

	a, err := Solve(density, g.DV, fractions)
	if err != nil {
		t.Fatalf("scalar: %v", err)
	}
	b, err := Solve(density, grid.CellVolumes(g.DV.Dense(g.Len())), fractions)
	if err != nil {
		t.Fatalf("dense: %v", err)
	}
	for i := range a {
		if a[i] != b[i] {
			t.Errorf("fraction %g: scalar %g, dense %g", fractions[i], a[i], b[i])
		}
	}
}

func TestSolve_Monotonic(t *testing.T) {
	g, _ := grid.Sample(15, 41, grid.WithStretch(true))
	f, _ := wavefunction.Evaluate(quantum.State{N: 3, L: 2, M: 1}, g)
	density := f.Density()

	fractions := []float64{0.05, 0.1, 0.3, 0.5, 0.7, 0.9, 0.99}
	got, err := Solve(density, g.DV, fractions)
	if err != nil {
		t.Fatalf("solve: %v", err)
	}
	for i := 1; i < len(got); i++ {
		if got[i] > got[i-1] {
			t.Errorf("threshold for %g (%g) exceeds threshold for %g (%g)",
				fractions[i], got[i], fractions[i-1], got[i-1])
		}
	}
}

func TestSolve_GroundStateScenario(t *testing.T) {
	g, _ := grid.Sample(3, 50)
	f, _ := wavefunction.Evaluate(quantum.State{N: 1}, g)
	density := f.Density()

	got, err := Solve(density, g.DV, []float64{0.5})
	if err != nil {
		t.Fatalf("solve: %v", err)
	}
	peak := 0.0
	for _, d := range density {
		peak = math.Max(peak, d)
	}
	if len(got) != 1 || !(got[0] > 0) || got[0] >= peak {
		t.Errorf("expected one positive threshold below the peak %g, got %v", peak, got)
	}
}

func TestSolveNormalized(t *testing.T) {
	density := []float64{3, 1}
	got, err := SolveNormalized(density, grid.UniformVolume(10), []float64{0.75, 0.76})
	if err != nil {
		t.Fatalf("solve: %v", err)
	}
	if got[0] != 3 || got[1] != 1 {
		t.Errorf("got %v, want [3 1]", got)
	}
}

func TestSolveMass(t *testing.T) {
	got, err := SolveMass([]float64{0.125, 0.5, 0.375}, []float64{0.5, 0.875})
	if err != nil {
		t.Fatalf("solve: %v", err)
	}
	if got[0] != 0.5 || got[1] != 0.375 {
		t.Errorf("got %v, want [0.5 0.375]", got)
	}
}

func TestSolver_TiesIncludeWholePlateau(t *testing.T) {
	s, _ := NewSolver([]float64{2, 2, 2, 1}, grid.UniformVolume(0.25))
	l, _ := s.Level(0.3)
	if l.Density != 2 || l.Cells != 3 || l.Enclosed != 1.5 {
		t.Errorf("got %+v, want density 2 over 3 cells", l)
	}
}

func TestSolve_Errors(t *testing.T) {
	if _, err := Solve(nil, grid.UniformVolume(1), []float64{0.5}); !errors.Is(err, quantum.ErrEmptyField) {
		t.Errorf("expected ErrEmptyField, got %v", err)
	}
	if _, err := Solve([]float64{1, 2}, grid.CellVolumes([]float64{1}), []float64{0.5}); !errors.Is(err, quantum.ErrShapeMismatch) {
		t.Errorf("expected ErrShapeMismatch, got %v", err)
	}
	for _, p := range []float64{-0.1, math.NaN()} {
		if _, err := Solve([]float64{1}, grid.UniformVolume(1), []float64{p}); !errors.Is(err, quantum.ErrFraction) {
			t.Errorf("fraction %g: expected ErrFraction, got %v", p, err)
		}
	}
}
