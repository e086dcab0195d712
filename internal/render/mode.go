package render

import (
	"errors"
	"fmt"
	"math"
)

var (
	ErrUnknownMode = errors.New("render: unknown mode")
	ErrNoLevels    = errors.New("render: contour mode needs at least one level")
	ErrNoColors    = errors.New("render: colors missing")
	ErrSettings    = errors.New("render: opacity settings must be positive")
)

// Mode is a visualization style.
type Mode int

const (
	Contour Mode = iota
	MultiContour
	Volume
)

var modeNames = [...]string{"contour", "multi-contour", "volume"}

func (m Mode) String() string {
	if m < 0 || int(m) >= len(modeNames) {
		return fmt.Sprintf("Mode(%d)", int(m))
	}
	return modeNames[m]
}

func ParseMode(name string) (Mode, error) {
	for i, n := range modeNames {
		if n == name {
			return Mode(i), nil
		}
	}
	return 0, fmt.Errorf("%q: %w", name, ErrUnknownMode)
}

func (m Mode) MarshalText() ([]byte, error) { return []byte(m.String()), nil }

func (m *Mode) UnmarshalText(text []byte) error {
	parsed, err := ParseMode(string(text))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// Settings configures how scenes look. It is passed to strategies when
// they are constructed.
type Settings struct {
	MaxOpacity      float64 `yaml:"max_opacity" json:"max_opacity"`
	OpacityExponent float64 `yaml:"opacity_exponent" json:"opacity_exponent"`
	// Clip removes the x>0, y>0, z>0 octant to expose the interior.
	Clip  bool   `yaml:"clip" json:"clip"`
	Theme string `yaml:"theme" json:"theme"`
}

func DefaultSettings() Settings {
	return Settings{
		MaxOpacity:      0.4,
		OpacityExponent: 1,
		Theme:           "nebula",
	}
}

func (s Settings) Validate() error {
	if !(s.MaxOpacity > 0) || s.MaxOpacity > 1 || !(s.OpacityExponent > 0) {
		return fmt.Errorf("max opacity %g, exponent %g: %w", s.MaxOpacity, s.OpacityExponent, ErrSettings)
	}
	return nil
}

// ShapeOpacity maps an encoded alpha a ∈ [0,1] to MaxOpacity·(a²)^exponent.
func (s Settings) ShapeOpacity(a float64) float64 {
	if a <= 0 {
		return 0
	}
	return s.MaxOpacity * math.Pow(a*a, s.OpacityExponent)
}
