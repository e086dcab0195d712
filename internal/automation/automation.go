// Package automation runs scripted batches of orbital jobs described in YAML.
package automation

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/orbital/internal/config"
	"github.com/san-kum/orbital/internal/pipeline"
	"github.com/san-kum/orbital/internal/storage"
)

var ErrEmptyScenario = errors.New("automation: scenario has no steps")

// Scenario is an ordered list of jobs.
type Scenario struct {
	Name        string         `yaml:"name"`
	Description string         `yaml:"description"`
	Steps       []ScenarioStep `yaml:"steps"`
}

// ScenarioStep starts from a preset (or the defaults) and overlays Config,
// which uses the same keys as a config file.
type ScenarioStep struct {
	Name   string    `yaml:"name"`
	Preset string    `yaml:"preset"`
	Config yaml.Node `yaml:"config"`
}

// Outcome is the result of one step. RunID is empty when nothing was saved.
type Outcome struct {
	Step   string
	RunID  string
	Result *pipeline.Result
}

func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseScenario(data)
}

func ParseScenario(data []byte) (*Scenario, error) {
	var scenario Scenario
	if err := yaml.Unmarshal(data, &scenario); err != nil {
		return nil, err
	}
	if len(scenario.Steps) == 0 {
		return nil, ErrEmptyScenario
	}
	return &scenario, nil
}

// Resolve builds the configuration of one step.
func (s ScenarioStep) Resolve() (*config.Config, error) {
	cfg := config.DefaultConfig()
	if s.Preset != "" {
		orbital, name, _ := strings.Cut(s.Preset, "/")
		cfg = config.GetPreset(orbital, name)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s", s.Preset)
		}
	}
	if !s.Config.IsZero() {
		if err := s.Config.Decode(cfg); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

// RunScenario runs every step in order and saves each result when store is
// not nil. It stops at the first failing step.
func RunScenario(ctx context.Context, scenario *Scenario, runner *pipeline.Runner, store *storage.Store, logger *slog.Logger) ([]Outcome, error) {
	if logger == nil {
		logger = slog.Default()
	}
	outcomes := make([]Outcome, 0, len(scenario.Steps))

	for i, step := range scenario.Steps {
		if err := ctx.Err(); err != nil {
			return outcomes, err
		}
		name := step.Name
		if name == "" {
			name = fmt.Sprintf("step-%d", i+1)
		}

		cfg, err := step.Resolve()
		if err != nil {
			return outcomes, fmt.Errorf("%s: %w", name, err)
		}
		logger.Info("running step", "step", name, "index", i+1, "of", len(scenario.Steps), "state", cfg.State.String())

		res, err := runner.Run(cfg.Job())
		if err != nil {
			return outcomes, fmt.Errorf("%s: %w", name, err)
		}

		out := Outcome{Step: name, Result: res}
		if store != nil {
			if out.RunID, err = store.Save(res); err != nil {
				return outcomes, fmt.Errorf("%s: save: %w", name, err)
			}
		}
		outcomes = append(outcomes, out)
	}
	return outcomes, nil
}
