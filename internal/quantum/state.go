package quantum

import (
	"fmt"
	"strings"
)

// State holds the hydrogen quantum numbers.
type State struct {
	N int `yaml:"n" json:"n"`
	L int `yaml:"l" json:"l"`
	M int `yaml:"m" json:"m"`
}

// New returns a validated state.
func New(n, l, m int) (State, error) {
	s := State{N: n, L: l, M: m}
	if err := s.Validate(); err != nil {
		return State{}, err
	}
	return s, nil
}

// Validate reports whether s satisfies n ≥ 1, 0 ≤ l ≤ n-1 and -l ≤ m ≤ l.
func (s State) Validate() error {
	if s.N < 1 || s.L < 0 || s.L >= s.N || s.M < -s.L || s.M > s.L {
		return &StateError{Op: "validate", State: s, Wrapped: ErrInvalidState}
	}
	return nil
}

func (s State) String() string {
	return fmt.Sprintf("(n=%d, l=%d, m=%d)", s.N, s.L, s.M)
}

var subshells = "spdfghiklmnoqrtuv"

// Label returns spectroscopic notation such as "2p" or "3d(m=-2)".
func (s State) Label() string {
	letter := "?"
	if s.L >= 0 && s.L < len(subshells) {
		letter = string(subshells[s.L])
	}
	if s.L == 0 {
		return fmt.Sprintf("%d%s", s.N, letter)
	}
	return fmt.Sprintf("%d%s(m=%d)", s.N, letter, s.M)
}

type Basis int

const (
	Complex Basis = iota
	Real
)

func (b Basis) String() string {
	if b == Real {
		return "real"
	}
	return "complex"
}

// ParseBasis accepts "complex" or "real" (case-insensitive).
func ParseBasis(name string) (Basis, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "complex":
		return Complex, nil
	case "real":
		return Real, nil
	}
	return Complex, fmt.Errorf("unknown basis: %s", name)
}

func (b Basis) MarshalText() ([]byte, error) {
	return []byte(b.String()), nil
}

func (b *Basis) UnmarshalText(text []byte) error {
	parsed, err := ParseBasis(string(text))
	if err != nil {
		return err
	}
	*b = parsed
	return nil
}
