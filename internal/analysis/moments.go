package analysis

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/san-kum/orbital/internal/grid"
	"github.com/san-kum/orbital/internal/quantum"
	"github.com/san-kum/orbital/internal/wavefunction"
)

// TotalProbability integrates density over the grid volume elements.
func TotalProbability(density []float64, dv grid.Volume) (float64, error) {
	if len(density) == 0 {
		return 0, quantum.ErrEmptyField
	}
	if !dv.Fits(len(density)) {
		return 0, fmt.Errorf("total probability: %w", quantum.ErrShapeMismatch)
	}
	if dv.IsUniform() {
		return floats.Sum(density) * dv.At(0), nil
	}
	return floats.Dot(density, dv.Dense(len(density))), nil
}

// MeanRadius is the expectation of r under the sampled density.
func MeanRadius(g *grid.Grid, density []float64) (float64, error) {
	if len(density) == 0 {
		return 0, quantum.ErrEmptyField
	}
	if len(density) != g.Len() {
		return 0, fmt.Errorf("mean radius: %w", quantum.ErrShapeMismatch)
	}
	w := g.DV.Dense(len(density))
	floats.Mul(w, density)
	return stat.Mean(g.Radius(), w), nil
}

// ExpectedMeanRadius is ⟨r⟩ = (3n² − l(l+1)) / 2Z in Bohr radii.
func ExpectedMeanRadius(n, l int, z float64) float64 {
	return (3*float64(n*n) - float64(l*(l+1))) / (2 * z)
}

// RadialDistribution samples P(r) = r²R_nl(r)² on [0, rmax].
func RadialDistribution(s quantum.State, z, rmax float64, samples int) (r, p []float64, err error) {
	if err := s.Validate(); err != nil {
		return nil, nil, err
	}
	if !(z > 0) {
		return nil, nil, quantum.ErrAtomicNumber
	}
	if samples < 2 {
		return nil, nil, quantum.ErrGridResolution
	}
	if !(rmax > 0) {
		return nil, nil, quantum.ErrGridSpan
	}

	r = floats.Span(make([]float64, samples), 0, rmax)
	p = make([]float64, samples)
	norm := wavefunction.Prefactor(s.N, s.L, z)
	for i, ri := range r {
		rad := norm * wavefunction.Radial(s.N, s.L, ri, z)
		p[i] = ri * ri * rad * rad
	}
	return r, p, nil
}

// MostProbableRadius returns the radius at the peak of a sampled
// distribution.
func MostProbableRadius(r, p []float64) float64 {
	if len(r) == 0 || len(r) != len(p) {
		return 0
	}
	return r[floats.MaxIdx(p)]
}
