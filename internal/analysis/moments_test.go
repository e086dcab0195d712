package analysis

import (
	"errors"
	"math"
	"testing"

	"github.com/san-kum/orbital/internal/grid"
	"github.com/san-kum/orbital/internal/quantum"
	"github.com/san-kum/orbital/internal/wavefunction"
)

func TestExpectedMeanRadius(t *testing.T) {
	tests := []struct {
		n, l int
		z    float64
		want float64
	}{
		{1, 0, 1, 1.5},
		{2, 0, 1, 6},
		{2, 1, 1, 5},
		{3, 2, 1, 10.5},
		{1, 0, 2, 0.75},
	}
	for _, tt := range tests {
		if got := ExpectedMeanRadius(tt.n, tt.l, tt.z); got != tt.want {
			t.Errorf("n=%d l=%d Z=%g: got %g, want %g", tt.n, tt.l, tt.z, got, tt.want)
		}
	}
}

func TestMeanRadius_GroundState(t *testing.T) {
	g, err := grid.Sample(10, 101)
	if err != nil {
		t.Fatalf("grid: %v", err)
	}
	f, err := wavefunction.Evaluate(quantum.State{N: 1}, g)
	if err != nil {
		t.Fatalf("evaluate: %v", err)
	}
	density := f.Density()

	total, err := TotalProbability(density, g.DV)
	if err != nil {
		t.Fatalf("total: %v", err)
	}
	if math.Abs(total-1) > 0.02 {
		t.Errorf("total probability %g, want ~1", total)
	}

	mean, err := MeanRadius(g, density)
	if err != nil {
		t.Fatalf("mean radius: %v", err)
	}
	if want := ExpectedMeanRadius(1, 0, 1); math.Abs(mean-want)/want > 0.02 {
		t.Errorf("mean radius %g, want ~%g", mean, want)
	}
}

func TestTotalProbability_DenseVolume(t *testing.T) {
	density := []float64{1, 2, 3}
	got, err := TotalProbability(density, grid.CellVolumes([]float64{0.5, 0.25, 1}))
	if err != nil {
		t.Fatalf("total: %v", err)
	}
	if got != 4 {
		t.Errorf("got %g, want 4", got)
	}
}

func TestRadialDistribution(t *testing.T) {
	tests := []struct {
		s    quantum.State
		peak float64
	}{
		{quantum.State{N: 1}, 1},
		{quantum.State{N: 2, L: 1}, 4},
		{quantum.State{N: 3, L: 2}, 9},
	}
	for _, tt := range tests {
		t.Run(tt.s.Label(), func(t *testing.T) {
			r, p, err := RadialDistribution(tt.s, 1, 60, 6001)
			if err != nil {
				t.Fatalf("radial: %v", err)
			}
			dr := r[1] - r[0]
			sum := 0.0
			for _, v := range p {
				sum += v * dr
			}
			if math.Abs(sum-1) > 1e-3 {
				t.Errorf("∫P dr = %g, want 1", sum)
			}
			if got := MostProbableRadius(r, p); math.Abs(got-tt.peak) > 2*dr {
				t.Errorf("most probable radius %g, want %g", got, tt.peak)
			}
		})
	}
}

func TestAnalysis_Errors(t *testing.T) {
	if _, err := TotalProbability(nil, grid.UniformVolume(1)); !errors.Is(err, quantum.ErrEmptyField) {
		t.Errorf("expected ErrEmptyField, got %v", err)
	}
	if _, err := TotalProbability([]float64{1, 2}, grid.CellVolumes([]float64{1})); !errors.Is(err, quantum.ErrShapeMismatch) {
		t.Errorf("expected ErrShapeMismatch, got %v", err)
	}
	if _, _, err := RadialDistribution(quantum.State{N: 1, L: 1}, 1, 10, 100); !errors.Is(err, quantum.ErrInvalidState) {
		t.Errorf("expected ErrInvalidState, got %v", err)
	}
	if _, _, err := RadialDistribution(quantum.State{N: 1}, 0, 10, 100); !errors.Is(err, quantum.ErrAtomicNumber) {
		t.Errorf("expected ErrAtomicNumber, got %v", err)
	}
}
