package config

import (
	"sort"

	"github.com/san-kum/orbital/internal/colormap"
	"github.com/san-kum/orbital/internal/grid"
	"github.com/san-kum/orbital/internal/quantum"
	"github.com/san-kum/orbital/internal/render"
)

// Presets maps an orbital label to named looks for it.
var Presets = map[string]map[string]*Config{
	"1s": {
		"contour": preset(quantum.State{N: 1}, func(c *Config) {
			c.Basis = quantum.Complex
			c.Fractions = []float64{0.9}
		}),
		"shells": preset(quantum.State{N: 1}, func(c *Config) {
			c.Mode = render.MultiContour
			c.Channels = colormap.Alpha
			c.Fractions = []float64{0.25, 0.5, 0.75}
		}),
		"cloud": preset(quantum.State{N: 1}, func(c *Config) {
			c.Mode = render.Volume
			c.Grid.Sampling = grid.Uniform
		}),
	},
	"2p": {
		"contour": preset(quantum.State{N: 2, L: 1}, func(c *Config) {
			c.Fractions = []float64{0.6}
		}),
		"cutaway": preset(quantum.State{N: 2, L: 1, M: 1}, func(c *Config) {
			c.Render.Clip = true
			c.Fractions = []float64{0.8}
		}),
		"donut": preset(quantum.State{N: 2, L: 1, M: 1}, func(c *Config) {
			c.Basis = quantum.Complex
			c.Channels = colormap.Value
		}),
	},
	"3d": {
		"contour": preset(quantum.State{N: 3, L: 2}, func(c *Config) {
			c.Grid.Steps = 80
		}),
		"clover": preset(quantum.State{N: 3, L: 2, M: 2}, func(c *Config) {
			c.Grid.Steps = 80
			c.Mode = render.MultiContour
			c.Channels = colormap.Alpha
			c.Fractions = []float64{0.3, 0.6, 0.9}
		}),
		"cloud": preset(quantum.State{N: 3, L: 2, M: 1}, func(c *Config) {
			c.Mode = render.Volume
			c.Grid.Sampling = grid.Uniform
			c.Render.OpacityExponent = 0.5
		}),
	},
	"4f": {
		"contour": preset(quantum.State{N: 4, L: 3, M: 1}, func(c *Config) {
			c.Grid.Steps = 100
			c.Fractions = []float64{0.5}
		}),
		"spherical": preset(quantum.State{N: 4, L: 3, M: 3}, func(c *Config) {
			c.Grid.Steps = 100
			c.Grid.Sampling = grid.Spherical
		}),
	},
}

func preset(s quantum.State, edit func(*Config)) *Config {
	c := DefaultConfig()
	c.State = s
	edit(c)
	return c
}

// GetPreset returns a copy of the named preset, or nil.
func GetPreset(orbital, name string) *Config {
	orbitalPresets, ok := Presets[orbital]
	if !ok {
		return nil
	}
	cfg, ok := orbitalPresets[name]
	if !ok {
		return nil
	}
	c := *cfg
	c.Fractions = append([]float64(nil), cfg.Fractions...)
	return &c
}

func ListPresets(orbital string) []string {
	orbitalPresets, ok := Presets[orbital]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(orbitalPresets))
	for name := range orbitalPresets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func ListOrbitals() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
