package pipeline

import (
	"bytes"
	"errors"
	"log/slog"
	"math"
	"strings"
	"testing"

	"github.com/san-kum/orbital/internal/grid"
	"github.com/san-kum/orbital/internal/quantum"
	"github.com/san-kum/orbital/internal/render"
)

func TestDefaultSpan(t *testing.T) {
	tests := []struct {
		n    int
		want float64
	}{
		{1, 2.25},
		{2, 9},
		{4, 36},
	}
	for _, tt := range tests {
		if got := DefaultSpan(tt.n); got != tt.want {
			t.Errorf("n=%d: got %g, want %g", tt.n, got, tt.want)
		}
	}
	j := DefaultJob()
	if j.EffectiveSpan() != DefaultSpan(j.State.N) {
		t.Errorf("zero span should resolve to the default")
	}
}

func TestJob_Validate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Job)
		want   error
	}{
		{"invalid state", func(j *Job) { j.State = quantum.State{N: 2, L: 2} }, quantum.ErrInvalidState},
		{"zero charge", func(j *Job) { j.AtomicNumber = 0 }, quantum.ErrAtomicNumber},
		{"one step", func(j *Job) { j.Steps = 1 }, quantum.ErrGridResolution},
		{"negative span", func(j *Job) { j.Span = -1 }, quantum.ErrGridSpan},
		{"no fractions", func(j *Job) { j.Fractions = nil }, render.ErrNoLevels},
		{"negative fraction", func(j *Job) { j.Fractions = []float64{-0.1} }, quantum.ErrFraction},
		{"bad opacity", func(j *Job) { j.Render.MaxOpacity = 2 }, render.ErrSettings},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			j := DefaultJob()
			tt.mutate(&j)
			if err := j.Validate(); !errors.Is(err, tt.want) {
				t.Errorf("got %v, want %v", err, tt.want)
			}
		})
	}

	j := DefaultJob()
	j.Mode = render.Volume
	j.Fractions = nil
	if err := j.Validate(); err != nil {
		t.Errorf("volume jobs need no fractions: %v", err)
	}
}

func TestRun_GroundState(t *testing.T) {
	job := DefaultJob()
	job.State = quantum.State{N: 1}
	job.Basis = quantum.Complex
	job.Span = 3
	job.Steps = 50
	job.Sampling = grid.Uniform
	job.Fractions = []float64{0.5}

	res, err := Run(job)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	peak := 0.0
	for _, d := range res.Density {
		peak = math.Max(peak, d)
	}
	if len(res.Levels) != 1 {
		t.Fatalf("got %d levels", len(res.Levels))
	}
	if l := res.Levels[0]; !(l.Density > 0) || l.Density >= peak || l.Saturated {
		t.Errorf("level %+v, peak %g", l, peak)
	}
	if res.Colors.Len() != res.Grid.Len() {
		t.Errorf("colors cover %d of %d cells", res.Colors.Len(), res.Grid.Len())
	}
	if res.Scene.Empty() {
		t.Error("expected a non-empty contour")
	}
	if res.Norm <= 0.5 || res.Norm > 1.05 {
		t.Errorf("norm %g", res.Norm)
	}
}

func TestRun_VolumeRowMajor(t *testing.T) {
	job := DefaultJob()
	job.State = quantum.State{N: 2, L: 1, M: 1}
	job.Steps = 24
	job.Order = grid.RowMajor
	job.Mode = render.Volume

	res, err := Run(job)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if res.Colors.Channels != 4 {
		t.Errorf("volume colors need alpha, got %d channels", res.Colors.Channels)
	}
	if res.Scene.Empty() {
		t.Error("expected visible volume cells")
	}
	if res.Grid.Order != grid.RowMajor {
		t.Errorf("grid order %v", res.Grid.Order)
	}
}

func TestRunner_Logging(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	job := DefaultJob()
	job.Steps = 16
	job.Fractions = []float64{0.5, 1.5}
	if _, err := New(WithLogger(logger)).Run(job); err != nil {
		t.Fatalf("run: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"run complete", "enclosed fraction not reached"} {
		if !strings.Contains(out, want) {
			t.Errorf("log output missing %q:\n%s", want, out)
		}
	}
}
