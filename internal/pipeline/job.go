package pipeline

import (
	"fmt"
	"math"

	"github.com/san-kum/orbital/internal/colormap"
	"github.com/san-kum/orbital/internal/grid"
	"github.com/san-kum/orbital/internal/quantum"
	"github.com/san-kum/orbital/internal/render"
)

const (
	DefaultSteps    = 60
	DefaultFraction = 0.6
)

// Job describes one evaluation.
type Job struct {
	State        quantum.State
	AtomicNumber float64
	Basis        quantum.Basis
	// Span is the grid half-width in Bohr radii; zero selects DefaultSpan.
	Span     float64
	Steps    int
	Sampling grid.Sampling
	Order    grid.Order
	// Fractions are enclosed probabilities. With Normalize they are taken
	// relative to the probability the grid actually holds.
	Fractions   []float64
	Normalize   bool
	Channels    colormap.Channels
	ZeroUniform bool
	Mode        render.Mode
	Render      render.Settings
	Workers     int
}

func DefaultJob() Job {
	return Job{
		State:        quantum.State{N: 2, L: 1, M: 0},
		AtomicNumber: 1,
		Basis:        quantum.Real,
		Steps:        DefaultSteps,
		Sampling:     grid.Stretched,
		Fractions:    []float64{DefaultFraction},
		Mode:         render.Contour,
		Render:       render.DefaultSettings(),
		Workers:      1,
	}
}

// DefaultSpan is (1.5n)² Bohr radii, wide enough to hold most of the
// probability of every state with principal number n.
func DefaultSpan(n int) float64 {
	s := 1.5 * float64(n)
	return s * s
}

// EffectiveSpan resolves a zero Span.
func (j Job) EffectiveSpan() float64 {
	if j.Span == 0 {
		return DefaultSpan(j.State.N)
	}
	return j.Span
}

// Validate rejects a job before any array is allocated.
func (j Job) Validate() error {
	if err := j.State.Validate(); err != nil {
		return err
	}
	if !(j.AtomicNumber > 0) || math.IsInf(j.AtomicNumber, 0) {
		return fmt.Errorf("Z=%g: %w", j.AtomicNumber, quantum.ErrAtomicNumber)
	}
	if j.Steps < 2 {
		return fmt.Errorf("%d steps: %w", j.Steps, quantum.ErrGridResolution)
	}
	if span := j.EffectiveSpan(); !(span > 0) || math.IsInf(span, 0) {
		return fmt.Errorf("span %g: %w", span, quantum.ErrGridSpan)
	}
	if j.Mode != render.Volume && len(j.Fractions) == 0 {
		return fmt.Errorf("%s: %w", j.Mode, render.ErrNoLevels)
	}
	for _, p := range j.Fractions {
		if math.IsNaN(p) || p < 0 {
			return fmt.Errorf("fraction %g: %w", p, quantum.ErrFraction)
		}
	}
	return j.Render.Validate()
}
