package pipeline

import (
	"fmt"
	"log/slog"
	"math/cmplx"
	"time"

	"github.com/san-kum/orbital/internal/analysis"
	"github.com/san-kum/orbital/internal/colormap"
	"github.com/san-kum/orbital/internal/grid"
	"github.com/san-kum/orbital/internal/render"
	"github.com/san-kum/orbital/internal/threshold"
	"github.com/san-kum/orbital/internal/wavefunction"
)

// Result holds every intermediate array of a run. All of them share the
// grid's shape and order except Scene, which is column-major.
type Result struct {
	Job        Job
	Grid       *grid.Grid
	Field      *wavefunction.Field
	Density    []float64
	Levels     []threshold.Level
	Colors     *colormap.Colors
	Scene      *render.Scene
	Norm       float64
	MeanRadius float64
	Elapsed    time.Duration
}

// Runner executes jobs.
type Runner struct {
	logger   *slog.Logger
	registry *render.Registry
}

type Option func(*Runner)

// WithLogger routes progress messages to l.
func WithLogger(l *slog.Logger) Option { return func(r *Runner) { r.logger = l } }

func New(opts ...Option) *Runner {
	r := &Runner{logger: slog.Default(), registry: render.NewRegistry()}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run executes job with a default runner.
func Run(job Job) (*Result, error) {
	return New().Run(job)
}

// Sample builds the grid a job asks for.
func Sample(job Job) (*grid.Grid, error) {
	span := job.EffectiveSpan()
	switch job.Sampling {
	case grid.Spherical:
		return grid.SampleSpherical(span, job.Steps, grid.WithOrder(job.Order))
	case grid.Stretched:
		return grid.Sample(span, job.Steps, grid.WithStretch(true), grid.WithOrder(job.Order))
	default:
		return grid.Sample(span, job.Steps, grid.WithOrder(job.Order))
	}
}

func (r *Runner) Run(job Job) (*Result, error) {
	if err := job.Validate(); err != nil {
		return nil, err
	}
	strategy, err := r.registry.Get(job.Mode, job.Render)
	if err != nil {
		return nil, err
	}
	start := time.Now()
	res := &Result{Job: job}

	if res.Grid, err = Sample(job); err != nil {
		return nil, fmt.Errorf("sample grid: %w", err)
	}
	res.Field, err = wavefunction.Evaluate(job.State, res.Grid,
		wavefunction.WithAtomicNumber(job.AtomicNumber),
		wavefunction.WithBasis(job.Basis),
		wavefunction.WithWorkers(job.Workers),
	)
	if err != nil {
		return nil, fmt.Errorf("evaluate %s: %w", job.State, err)
	}
	res.Density = res.Field.Density()
	r.logger.Debug("evaluated",
		"state", job.State.Label(),
		"points", res.Grid.Len(),
		"sampling", res.Grid.Sampling,
		"elapsed", time.Since(start))

	if res.Norm, err = analysis.TotalProbability(res.Density, res.Grid.DV); err != nil {
		return nil, err
	}
	if res.MeanRadius, err = analysis.MeanRadius(res.Grid, res.Density); err != nil {
		return nil, err
	}

	if len(job.Fractions) > 0 {
		if res.Levels, err = r.levels(job, res); err != nil {
			return nil, fmt.Errorf("solve thresholds: %w", err)
		}
	}

	if res.Colors, err = encode(job, res); err != nil {
		return nil, fmt.Errorf("encode colors: %w", err)
	}

	res.Scene, err = strategy.Build(&render.Inputs{
		Grid:    res.Grid,
		Density: res.Density,
		Levels:  res.Levels,
		Colors:  res.Colors,
	})
	if err != nil {
		return nil, fmt.Errorf("build %s scene: %w", job.Mode, err)
	}
	if res.Scene.Empty() {
		r.logger.Warn("scene is empty", "mode", job.Mode, "levels", res.Scene.Levels)
	}

	res.Elapsed = time.Since(start)
	r.logger.Debug("run complete",
		"state", job.State.Label(),
		"norm", res.Norm,
		"points", len(res.Scene.Points),
		"elapsed", res.Elapsed)
	return res, nil
}

func (r *Runner) levels(job Job, res *Result) ([]threshold.Level, error) {
	s, err := threshold.NewSolver(res.Density, res.Grid.DV)
	if err != nil {
		return nil, err
	}
	var levels []threshold.Level
	if job.Normalize {
		levels, err = s.NormalizedLevels(job.Fractions)
	} else {
		levels, err = s.Levels(job.Fractions)
	}
	if err != nil {
		return nil, err
	}
	for _, l := range levels {
		if l.Saturated {
			r.logger.Warn("enclosed fraction not reached on this grid",
				"fraction", l.Fraction,
				"grid_total", s.Total(),
				"density", l.Density)
		}
	}
	return levels, nil
}

// encode colors ψ for contour modes. Volume mode colors |ψ|·ψ with
// magnitude-driven alpha, which weights opacity toward the dense core.
func encode(job Job, res *Result) (*colormap.Colors, error) {
	s := res.Grid.Shape
	opts := []colormap.Option{
		colormap.WithShape(s[0], s[1], s[2]),
		colormap.WithZeroUniform(job.ZeroUniform),
	}
	if job.Mode != render.Volume {
		opts = append(opts, colormap.WithChannels(job.Channels))
		return colormap.Encode(res.Field.Values, opts...)
	}

	weighted := make([]complex128, len(res.Field.Values))
	for i, v := range res.Field.Values {
		weighted[i] = complex(cmplx.Abs(v), 0) * v
	}
	opts = append(opts, colormap.WithChannels(job.Channels|colormap.Alpha))
	return colormap.Encode(weighted, opts...)
}
