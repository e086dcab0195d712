package automation

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/san-kum/orbital/internal/pipeline"
	"github.com/san-kum/orbital/internal/quantum"
	"github.com/san-kum/orbital/internal/render"
	"github.com/san-kum/orbital/internal/storage"
)

const scenarioYAML = `
name: gallery
description: small shells
steps:
  - name: ground
    preset: 1s/contour
    config:
      grid:
        steps: 15
  - preset: 2p/cutaway
    config:
      state: {n: 2, l: 1, m: -1}
      grid:
        steps: 15
      mode: volume
`

func quietLogger() *slog.Logger { return slog.New(slog.NewTextHandler(io.Discard, nil)) }

func TestParseScenario(t *testing.T) {
	sc, err := ParseScenario([]byte(scenarioYAML))
	if err != nil {
		t.Fatal(err)
	}
	if sc.Name != "gallery" || len(sc.Steps) != 2 {
		t.Fatalf("got %+v", sc)
	}

	cfg, err := sc.Steps[1].Resolve()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.State != (quantum.State{N: 2, L: 1, M: -1}) {
		t.Errorf("state = %v", cfg.State)
	}
	if cfg.Mode != render.Volume {
		t.Errorf("mode = %v, want volume", cfg.Mode)
	}
	if cfg.Grid.Steps != 15 {
		t.Errorf("steps = %d, want 15", cfg.Grid.Steps)
	}
	// Untouched preset fields survive the overlay.
	if !cfg.Render.Clip {
		t.Error("cutaway clip lost")
	}
}

func TestParseScenario_Errors(t *testing.T) {
	if _, err := ParseScenario([]byte("name: empty\n")); !errors.Is(err, ErrEmptyScenario) {
		t.Errorf("got %v, want ErrEmptyScenario", err)
	}
	sc, err := ParseScenario([]byte("steps:\n  - preset: 9z/none\n"))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := sc.Steps[0].Resolve(); err == nil {
		t.Error("expected unknown preset error")
	}
}

func TestRunScenario(t *testing.T) {
	sc, err := ParseScenario([]byte(scenarioYAML))
	if err != nil {
		t.Fatal(err)
	}
	store := storage.New(t.TempDir())
	if err := store.Init(); err != nil {
		t.Fatal(err)
	}

	out, err := RunScenario(context.Background(), sc, pipeline.New(pipeline.WithLogger(quietLogger())), store, quietLogger())
	if err != nil {
		t.Fatal(err)
	}
	if len(out) != 2 {
		t.Fatalf("got %d outcomes, want 2", len(out))
	}
	if out[0].Step != "ground" || out[1].Step != "step-2" {
		t.Errorf("step names = %q, %q", out[0].Step, out[1].Step)
	}
	for _, o := range out {
		if o.RunID == "" {
			t.Errorf("%s: not saved", o.Step)
		}
		if _, err := store.Load(o.RunID); err != nil {
			t.Errorf("%s: %v", o.Step, err)
		}
	}
}

func TestRunScenario_StopsOnError(t *testing.T) {
	sc, err := ParseScenario([]byte(`
steps:
  - config:
      state: {n: 1, l: 0, m: 0}
      grid: {steps: 11}
  - config:
      state: {n: 1, l: 1, m: 0}
`))
	if err != nil {
		t.Fatal(err)
	}
	out, err := RunScenario(context.Background(), sc, pipeline.New(pipeline.WithLogger(quietLogger())), nil, quietLogger())
	if !errors.Is(err, quantum.ErrInvalidState) {
		t.Errorf("got %v, want ErrInvalidState", err)
	}
	if len(out) != 1 || out[0].RunID != "" {
		t.Errorf("got %+v", out)
	}
}
