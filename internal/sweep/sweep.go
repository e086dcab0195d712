// Package sweep searches grid parameters for the cheapest grid that
// reproduces the analytic normalization and mean radius of a state.
package sweep

import (
	"context"
	"errors"
	"math"
	"sort"

	"github.com/san-kum/orbital/internal/analysis"
	"github.com/san-kum/orbital/internal/pipeline"
)

var ErrNoCandidates = errors.New("sweep: no span or step values")

// Sample is one evaluated grid.
type Sample struct {
	Span       float64
	Steps      int
	Points     int
	Norm       float64
	MeanRadius float64
	// NormError is |1 − norm|; RadiusError is the relative error of ⟨r⟩.
	NormError   float64
	RadiusError float64
}

// Error is the worse of the two accuracy measures.
func (s Sample) Error() float64 { return math.Max(s.NormError, s.RadiusError) }

// RunFunc evaluates one job.
type RunFunc func(pipeline.Job) (*pipeline.Result, error)

type Sweep struct {
	Spans []float64
	Steps []int
}

func New(spans []float64, steps []int) *Sweep {
	return &Sweep{Spans: spans, Steps: steps}
}

// Run evaluates base on every span × steps combination. Failed runs are
// skipped; cancellation stops the sweep between runs.
func (s *Sweep) Run(ctx context.Context, base pipeline.Job, run RunFunc) ([]Sample, error) {
	if len(s.Spans) == 0 || len(s.Steps) == 0 {
		return nil, ErrNoCandidates
	}
	z := base.AtomicNumber
	if z == 0 {
		z = 1
	}
	want := analysis.ExpectedMeanRadius(base.State.N, base.State.L, z)

	var out []Sample
	for _, span := range s.Spans {
		for _, steps := range s.Steps {
			if err := ctx.Err(); err != nil {
				return out, err
			}
			job := base
			job.Span, job.Steps = span, steps
			res, err := run(job)
			if err != nil {
				continue
			}
			out = append(out, Sample{
				Span:        span,
				Steps:       steps,
				Points:      res.Grid.Len(),
				Norm:        res.Norm,
				MeanRadius:  res.MeanRadius,
				NormError:   math.Abs(1 - res.Norm),
				RadiusError: math.Abs(res.MeanRadius-want) / want,
			})
		}
	}
	return out, nil
}

// Best returns the sample with the fewest points whose error is within tol.
// When none qualifies it returns the most accurate sample and false.
func Best(samples []Sample, tol float64) (Sample, bool) {
	if len(samples) == 0 {
		return Sample{}, false
	}
	sorted := append([]Sample(nil), samples...)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Points != sorted[j].Points {
			return sorted[i].Points < sorted[j].Points
		}
		return sorted[i].Error() < sorted[j].Error()
	})
	for _, s := range sorted {
		if s.Error() <= tol {
			return s, true
		}
	}

	best := samples[0]
	for _, s := range samples[1:] {
		if s.Error() < best.Error() {
			best = s
		}
	}
	return best, false
}
