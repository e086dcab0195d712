package config

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/orbital/internal/colormap"
	"github.com/san-kum/orbital/internal/grid"
	"github.com/san-kum/orbital/internal/pipeline"
	"github.com/san-kum/orbital/internal/quantum"
	"github.com/san-kum/orbital/internal/render"
)

const (
	DefaultAtomicNumber = 1.0
	DefaultSteps        = pipeline.DefaultSteps
	DefaultFraction     = pipeline.DefaultFraction
	DefaultDataDir      = "runs"
)

type Config struct {
	State        quantum.State     `yaml:"state"`
	AtomicNumber float64           `yaml:"atomic_number"`
	Basis        quantum.Basis     `yaml:"basis"`
	Grid         GridConfig        `yaml:"grid"`
	Fractions    []float64         `yaml:"fractions"`
	Normalize    bool              `yaml:"normalize_fractions"`
	Channels     colormap.Channels `yaml:"channels"`
	ZeroUniform  bool              `yaml:"zero_uniform"`
	Mode         render.Mode       `yaml:"mode"`
	Render       render.Settings   `yaml:"render"`
	Workers      int               `yaml:"workers"`
	DataDir      string            `yaml:"data_dir"`
}

type GridConfig struct {
	// Span of zero means (1.5n)².
	Span     float64       `yaml:"span"`
	Steps    int           `yaml:"steps"`
	Sampling grid.Sampling `yaml:"sampling"`
}

func DefaultConfig() *Config {
	return &Config{
		State:        quantum.State{N: 2, L: 1, M: 0},
		AtomicNumber: DefaultAtomicNumber,
		Basis:        quantum.Real,
		Grid: GridConfig{
			Steps:    DefaultSteps,
			Sampling: grid.Stretched,
		},
		Fractions: []float64{DefaultFraction},
		Mode:      render.Contour,
		Render:    render.DefaultSettings(),
		Workers:   1,
		DataDir:   DefaultDataDir,
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Job converts the configuration into a pipeline job.
func (c *Config) Job() pipeline.Job {
	return pipeline.Job{
		State:        c.State,
		AtomicNumber: c.AtomicNumber,
		Basis:        c.Basis,
		Span:         c.Grid.Span,
		Steps:        c.Grid.Steps,
		Sampling:     c.Grid.Sampling,
		Order:        grid.ColumnMajor,
		Fractions:    append([]float64(nil), c.Fractions...),
		Normalize:    c.Normalize,
		Channels:     c.Channels,
		ZeroUniform:  c.ZeroUniform,
		Mode:         c.Mode,
		Render:       c.Render,
		Workers:      c.Workers,
	}
}
