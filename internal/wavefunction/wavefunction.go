package wavefunction

import (
	"fmt"
	"math"
	"math/cmplx"

	"github.com/san-kum/orbital/internal/grid"
	"github.com/san-kum/orbital/internal/quantum"
)

// Angular selects how the spherical harmonic is evaluated.
type Angular int

const (
	// Cartesian uses cosθ, cosφ, sinφ taken directly from x, y, z.
	Cartesian Angular = iota
	// Polar forms θ and φ with arccos and atan2 first.
	Polar
)

type Options struct {
	AtomicNumber float64
	Basis        quantum.Basis
	Workers      int
	Angular      Angular
}

func DefaultOptions() Options {
	return Options{AtomicNumber: 1, Basis: quantum.Complex, Workers: 1, Angular: Cartesian}
}

type Option func(*Options)

func WithAtomicNumber(z float64) Option { return func(o *Options) { o.AtomicNumber = z } }
func WithBasis(b quantum.Basis) Option  { return func(o *Options) { o.Basis = b } }
func WithWorkers(n int) Option          { return func(o *Options) { o.Workers = n } }
func WithAngular(a Angular) Option      { return func(o *Options) { o.Angular = a } }

// Field is a wavefunction sampled on a grid. Values share the grid's shape
// and flatten order.
type Field struct {
	State  quantum.State
	Shape  grid.Shape
	Order  grid.Order
	Values []complex128
	// Real is set when Values came from the real basis; their imaginary
	// parts are then exactly zero.
	Real bool
}

func (f *Field) Len() int { return len(f.Values) }

// Density returns |ψ|² for every sample.
func (f *Field) Density() []float64 {
	d := make([]float64, len(f.Values))
	for i, v := range f.Values {
		re, im := real(v), imag(v)
		d[i] = re*re + im*im
	}
	return d
}

// Probability returns |ψ|²·dv for every sample.
func (f *Field) Probability(dv grid.Volume) ([]float64, error) {
	if !dv.Fits(len(f.Values)) {
		return nil, fmt.Errorf("probability of %d samples: %w", len(f.Values), quantum.ErrShapeMismatch)
	}
	p := f.Density()
	for i := range p {
		p[i] *= dv.At(i)
	}
	return p, nil
}

// RealValues returns the real parts. For real-basis fields this is the
// whole field.
func (f *Field) RealValues() []float64 {
	out := make([]float64, len(f.Values))
	for i, v := range f.Values {
		out[i] = real(v)
	}
	return out
}

// Evaluate samples ψ_nlm on every point of g.
func Evaluate(s quantum.State, g *grid.Grid, opts ...Option) (*Field, error) {
	if g == nil {
		return nil, fmt.Errorf("evaluate %s: nil grid", s)
	}
	values, err := EvaluatePoints(s, g.X, g.Y, g.Z, opts...)
	if err != nil {
		return nil, err
	}
	o := resolve(opts)
	return &Field{
		State:  s,
		Shape:  g.Shape,
		Order:  g.Order,
		Values: values,
		Real:   o.Basis == quantum.Real,
	}, nil
}

// EvaluatePoints samples ψ_nlm at the points (x[i], y[i], z[i]).
func EvaluatePoints(s quantum.State, x, y, z []float64, opts ...Option) ([]complex128, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	o := resolve(opts)
	if !(o.AtomicNumber > 0) || math.IsInf(o.AtomicNumber, 0) {
		return nil, &quantum.StateError{Op: "evaluate", State: s, Wrapped: quantum.ErrAtomicNumber}
	}
	if len(y) != len(x) || len(z) != len(x) {
		return nil, fmt.Errorf("evaluate %s: %d/%d/%d coordinates: %w", s, len(x), len(y), len(z), quantum.ErrShapeMismatch)
	}

	m := s.M
	if o.Basis == quantum.Real {
		m = absInt(m)
	}
	norm := Prefactor(s.N, s.L, o.AtomicNumber)

	out := make([]complex128, len(x))
	parallelFor(len(x), o.Workers, func(start, end int) {
		for i := start; i < end; i++ {
			r, cosTheta, cosPhi, sinPhi := Angles(x[i], y[i], z[i])

			var ylm complex128
			if o.Angular == Polar {
				ylm = SphericalHarmonicPolar(s.L, m, math.Acos(cosTheta), math.Atan2(y[i], x[i]))
			} else {
				ylm = SphericalHarmonic(s.L, m, cosTheta, cosPhi, sinPhi)
			}

			psi := complex(norm*Radial(s.N, s.L, r, o.AtomicNumber), 0) * ylm
			if o.Basis == quantum.Real {
				psi = ToReal(s.M, psi)
			}
			out[i] = psi
		}
	})
	return out, nil
}

// Phase returns arg ψ for every sample.
func (f *Field) Phase() []float64 {
	out := make([]float64, len(f.Values))
	for i, v := range f.Values {
		out[i] = cmplx.Phase(v)
	}
	return out
}

func resolve(opts []Option) Options {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
