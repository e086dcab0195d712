package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/san-kum/orbital/internal/colormap"
	"github.com/san-kum/orbital/internal/config"
	"github.com/san-kum/orbital/internal/grid"
	"github.com/san-kum/orbital/internal/quantum"
	"github.com/san-kum/orbital/internal/render"
)

// loadConfig layers defaults, then the preset, then the config file, then
// explicitly set flags, then positional quantum numbers.
func loadConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		orbital, name, ok := strings.Cut(preset, "/")
		if !ok {
			return nil, fmt.Errorf("preset %q: want orbital/name", preset)
		}
		cfg = config.GetPreset(orbital, name)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets(orbital))
		}
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	if err := applyFlags(cmd, cfg); err != nil {
		return nil, err
	}

	if len(args) == 3 {
		s, err := parseState(args)
		if err != nil {
			return nil, err
		}
		cfg.State = s
	}
	if dataDir != "" {
		cfg.DataDir = dataDir
	}
	if cfg.DataDir == "" {
		cfg.DataDir = config.DefaultDataDir
	}
	return cfg, nil
}

func applyFlags(cmd *cobra.Command, cfg *config.Config) error {
	f := cmd.Flags()
	var err error
	if f.Changed("z") {
		cfg.AtomicNumber = atomicNumber
	}
	if f.Changed("basis") {
		if cfg.Basis, err = quantum.ParseBasis(basisName); err != nil {
			return err
		}
	}
	if f.Changed("span") {
		cfg.Grid.Span = span
	}
	if f.Changed("steps") {
		cfg.Grid.Steps = steps
	}
	if f.Changed("sampling") {
		if cfg.Grid.Sampling, err = grid.ParseSampling(samplingName); err != nil {
			return err
		}
	}
	if f.Changed("fractions") {
		cfg.Fractions = fractions
	}
	if f.Changed("normalize") {
		cfg.Normalize = normalize
	}
	if f.Changed("channels") {
		if cfg.Channels, err = colormap.ParseChannels(channelSel); err != nil {
			return err
		}
	}
	if f.Changed("zero-uniform") {
		cfg.ZeroUniform = zeroUniform
	}
	if f.Changed("mode") {
		if cfg.Mode, err = render.ParseMode(modeName); err != nil {
			return err
		}
	}
	if f.Changed("max-opacity") {
		cfg.Render.MaxOpacity = maxOpacity
	}
	if f.Changed("opacity-exp") {
		cfg.Render.OpacityExponent = opacityExp
	}
	if f.Changed("clip") {
		cfg.Render.Clip = clip
	}
	if f.Changed("workers") {
		cfg.Workers = workers
	}
	if f.Changed("theme") {
		cfg.Render.Theme = themeName
	}
	return nil
}

// parseState reads n, l and m. Validation is left to the pipeline so the
// error names the offending state.
func parseState(args []string) (quantum.State, error) {
	var qn [3]int
	for i, a := range args {
		v, err := strconv.Atoi(a)
		if err != nil {
			return quantum.State{}, fmt.Errorf("quantum number %q: %w", a, err)
		}
		qn[i] = v
	}
	return quantum.State{N: qn[0], L: qn[1], M: qn[2]}, nil
}
