package grid

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/san-kum/orbital/internal/quantum"
)

// Sampling selects how grid points are distributed.
type Sampling int

const (
	Uniform Sampling = iota
	Stretched
	Spherical
)

var samplingNames = map[Sampling]string{
	Uniform:   "uniform",
	Stretched: "stretched",
	Spherical: "spherical",
}

func (s Sampling) String() string { return samplingNames[s] }

func ParseSampling(name string) (Sampling, error) {
	for s, n := range samplingNames {
		if n == name {
			return s, nil
		}
	}
	if name == "" {
		return Uniform, nil
	}
	return Uniform, fmt.Errorf("unknown sampling: %s", name)
}

func (s Sampling) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

func (s *Sampling) UnmarshalText(text []byte) error {
	parsed, err := ParseSampling(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// Grid holds Cartesian coordinates and volume elements for every sample.
// A grid is never modified after construction; callers must treat the
// slices as read-only.
type Grid struct {
	Sampling Sampling
	Shape    Shape
	Order    Order
	// Axes are the 1D coordinates along each array axis: x, y, z for
	// Cartesian samplings and r, θ, φ for Spherical.
	Axes [3][]float64
	X    []float64
	Y    []float64
	Z    []float64
	DV   Volume
}

func (g *Grid) Len() int { return g.Shape.Len() }

// Radius returns the distance of every sample from the origin.
func (g *Grid) Radius() []float64 {
	r := make([]float64, len(g.X))
	for i := range r {
		r[i] = math.Sqrt(g.X[i]*g.X[i] + g.Y[i]*g.Y[i] + g.Z[i]*g.Z[i])
	}
	return r
}

type options struct {
	stretch bool
	order   Order
}

type Option func(*options)

// WithStretch selects sinh-stretched axes instead of uniform ones.
func WithStretch(stretch bool) Option {
	return func(o *options) { o.stretch = stretch }
}

// WithOrder sets the flatten order of every array of the grid.
func WithOrder(order Order) Option {
	return func(o *options) { o.order = order }
}

func validate(span float64, steps int) error {
	if steps < 2 {
		return fmt.Errorf("%d steps: %w", steps, quantum.ErrGridResolution)
	}
	if !(span > 0) || math.IsInf(span, 0) {
		return fmt.Errorf("span %g: %w", span, quantum.ErrGridSpan)
	}
	return nil
}

// Sample builds a Cartesian grid of steps³ points covering [-span, span]³.
func Sample(span float64, steps int, opts ...Option) (*Grid, error) {
	if err := validate(span, steps); err != nil {
		return nil, err
	}
	o := options{order: ColumnMajor}
	for _, opt := range opts {
		opt(&o)
	}

	g := &Grid{Sampling: Uniform, Shape: Shape{steps, steps, steps}, Order: o.order}

	var axis []float64
	if o.stretch {
		g.Sampling = Stretched
		axis = floats.Span(make([]float64, steps), math.Asinh(-span), math.Asinh(span))
		for i, v := range axis {
			axis[i] = math.Sinh(v)
		}
		// sinh(asinh(±span)) can round off the exact bounds.
		axis[0], axis[steps-1] = -span, span
	} else {
		axis = floats.Span(make([]float64, steps), -span, span)
	}
	g.Axes = [3][]float64{axis, axis, axis}
	g.X, g.Y, g.Z = meshgrid(g.Shape, g.Order, axis, axis, axis)

	if o.stretch {
		d := Gradient(axis)
		cells := make([]float64, g.Shape.Len())
		for idx := range cells {
			i, j, k := g.Shape.Coords(idx, g.Order)
			cells[idx] = d[i] * d[j] * d[k]
		}
		g.DV = CellVolumes(cells)
	} else {
		dx := Step(span, steps)
		g.DV = UniformVolume(dx * dx * dx)
	}
	return g, nil
}

// SampleSpherical builds a grid over r ∈ [0, span] (sinh-stretched),
// θ ∈ [0, π] and φ ∈ [0, 2π], each with steps samples. The volume element is
// r² sinθ ∂r ∂θ ∂φ. Only WithOrder is honored.
func SampleSpherical(span float64, steps int, opts ...Option) (*Grid, error) {
	if err := validate(span, steps); err != nil {
		return nil, err
	}
	o := options{order: ColumnMajor}
	for _, opt := range opts {
		opt(&o)
	}

	r := floats.Span(make([]float64, steps), 0, math.Asinh(span))
	for i, v := range r {
		r[i] = math.Sinh(v)
	}
	r[steps-1] = span
	theta := floats.Span(make([]float64, steps), 0, math.Pi)
	phi := floats.Span(make([]float64, steps), 0, 2*math.Pi)

	g := &Grid{
		Sampling: Spherical,
		Shape:    Shape{steps, steps, steps},
		Order:    o.order,
		Axes:     [3][]float64{r, theta, phi},
	}
	n := g.Shape.Len()
	g.X, g.Y, g.Z = make([]float64, n), make([]float64, n), make([]float64, n)
	cells := make([]float64, n)
	dr, dtheta, dphi := Gradient(r), Gradient(theta), Gradient(phi)

	for idx := 0; idx < n; idx++ {
		i, j, k := g.Shape.Coords(idx, g.Order)
		st, ct := math.Sincos(theta[j])
		sp, cp := math.Sincos(phi[k])
		g.X[idx] = r[i] * st * cp
		g.Y[idx] = r[i] * st * sp
		g.Z[idx] = r[i] * ct
		cells[idx] = r[i] * r[i] * st * dr[i] * dtheta[j] * dphi[k]
	}
	g.DV = CellVolumes(cells)
	return g, nil
}

// Step is the uniform spacing of steps points on [-span, span].
func Step(span float64, steps int) float64 {
	return 2 * span / float64(steps-1)
}

// Gradient returns the numerical derivative of values with respect to the
// sample index: central differences inside, one-sided at both ends.
func Gradient(values []float64) []float64 {
	n := len(values)
	d := make([]float64, n)
	if n < 2 {
		return d
	}
	d[0] = values[1] - values[0]
	d[n-1] = values[n-1] - values[n-2]
	for i := 1; i < n-1; i++ {
		d[i] = (values[i+1] - values[i-1]) / 2
	}
	return d
}

func meshgrid(shape Shape, order Order, ax, ay, az []float64) (x, y, z []float64) {
	n := shape.Len()
	x, y, z = make([]float64, n), make([]float64, n), make([]float64, n)
	for idx := 0; idx < n; idx++ {
		i, j, k := shape.Coords(idx, order)
		x[idx] = ax[i]
		y[idx] = ay[j]
		z[idx] = az[k]
	}
	return x, y, z
}
