package render

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"

	"github.com/san-kum/orbital/internal/colormap"
	"github.com/san-kum/orbital/internal/grid"
	"github.com/san-kum/orbital/internal/quantum"
	"github.com/san-kum/orbital/internal/threshold"
)

// Inputs are the core outputs every strategy consumes. Density and Colors
// follow the grid's flatten order.
type Inputs struct {
	Grid    *grid.Grid
	Density []float64
	Levels  []threshold.Level
	Colors  *colormap.Colors
}

// Point is one renderable sample.
type Point struct {
	X, Y, Z float64
	RGBA    [4]uint8
	// Level is the index of the contour the point lies on, -1 for volume cells.
	Level int
	// Index is the column-major position of the sample.
	Index int
}

// Scene is renderer-ready output. Scalars and RGBA are column-major with
// one and four entries per grid cell.
type Scene struct {
	Mode    Mode
	Shape   grid.Shape
	Scalars []float64
	RGBA    []uint8
	Levels  []float64
	Points  []Point
	// Extent is the largest absolute coordinate, for camera framing.
	Extent float64
}

// Empty reports whether nothing would be drawn, for instance when a level
// lies above every sampled density.
func (s *Scene) Empty() bool { return len(s.Points) == 0 }

// Strategy builds a scene for one mode.
type Strategy interface {
	Mode() Mode
	Build(in *Inputs) (*Scene, error)
}

type contour struct{ settings Settings }

func (c *contour) Mode() Mode { return Contour }

func (c *contour) Build(in *Inputs) (*Scene, error) {
	if len(in.Levels) == 0 {
		return nil, ErrNoLevels
	}
	sc, err := prepare(in, Contour, c.settings)
	if err != nil {
		return nil, err
	}
	sc.Levels = []float64{in.Levels[0].Density}
	sc.Points = shell(in.Grid, sc, 0)
	return sc, nil
}

type multiContour struct{ settings Settings }

func (c *multiContour) Mode() Mode { return MultiContour }

func (c *multiContour) Build(in *Inputs) (*Scene, error) {
	if len(in.Levels) == 0 {
		return nil, ErrNoLevels
	}
	sc, err := prepare(in, MultiContour, c.settings)
	if err != nil {
		return nil, err
	}
	sc.Levels = make([]float64, len(in.Levels))
	for i, l := range in.Levels {
		sc.Levels[i] = l.Density
	}
	for i := range sc.Levels {
		sc.Points = append(sc.Points, shell(in.Grid, sc, i)...)
	}
	return sc, nil
}

type volume struct{ settings Settings }

func (v *volume) Mode() Mode { return Volume }

func (v *volume) Build(in *Inputs) (*Scene, error) {
	sc, err := prepare(in, Volume, v.settings)
	if err != nil {
		return nil, err
	}
	g := in.Grid
	for c := 0; c < sc.Shape.Len(); c++ {
		gi := gridIndex(sc.Shape, c, g.Order)
		a := &sc.RGBA[4*c+3]
		if clipped(g, v.settings, gi) {
			*a = 0
			continue
		}
		// Shape the unquantized alpha so low opacities keep their resolution.
		alpha := 1.0
		if px := in.Colors.Pixel(gi); len(px) == 4 {
			alpha = px[3]
		}
		*a = colormap.Quantize(v.settings.ShapeOpacity(alpha))
		if *a == 0 {
			continue
		}
		sc.Points = append(sc.Points, point(g, sc, gi, c, -1))
	}
	return sc, nil
}

// prepare validates inputs and fills the column-major buffers. Clipped
// cells get zero density and zero alpha; levels were already computed on
// the unclipped field.
func prepare(in *Inputs, mode Mode, s Settings) (*Scene, error) {
	g := in.Grid
	if g == nil || in.Colors == nil {
		return nil, ErrNoColors
	}
	n := g.Len()
	if n == 0 {
		return nil, quantum.ErrEmptyField
	}
	if len(in.Density) != n || in.Colors.Len() != n {
		return nil, fmt.Errorf("%s scene over %d cells: %w", mode, n, quantum.ErrShapeMismatch)
	}

	sc := &Scene{
		Mode:    mode,
		Shape:   g.Shape,
		Scalars: make([]float64, n),
		RGBA:    make([]uint8, 4*n),
		Extent:  extent(g),
	}
	for c := 0; c < n; c++ {
		gi := gridIndex(g.Shape, c, g.Order)
		px := in.Colors.Pixel(gi)
		rgba := sc.RGBA[4*c : 4*c+4]
		rgba[0], rgba[1], rgba[2], rgba[3] = colormap.Quantize(px[0]), colormap.Quantize(px[1]), colormap.Quantize(px[2]), 255
		if len(px) == 4 {
			rgba[3] = colormap.Quantize(px[3])
		}
		sc.Scalars[c] = in.Density[gi]
		if clipped(g, s, gi) {
			sc.Scalars[c] = 0
			rgba[3] = 0
		}
	}
	return sc, nil
}

// clipped reports whether cell gi lies in the cut-away x>0, y>0, z>0 octant.
func clipped(g *grid.Grid, s Settings, gi int) bool {
	return s.Clip && g.X[gi] > 0 && g.Y[gi] > 0 && g.Z[gi] > 0
}

// shell selects cells at or above the level with at least one face
// neighbour below it or outside the grid.
func shell(g *grid.Grid, sc *Scene, level int) []Point {
	lv := sc.Levels[level]
	shape := sc.Shape
	var pts []Point
	for c, v := range sc.Scalars {
		if v < lv {
			continue
		}
		i, j, k := shape.Coords(c, grid.ColumnMajor)
		if !onBoundary(sc.Scalars, shape, i, j, k, lv) {
			continue
		}
		pts = append(pts, point(g, sc, gridIndex(shape, c, g.Order), c, level))
	}
	return pts
}

var faces = [6][3]int{{1, 0, 0}, {-1, 0, 0}, {0, 1, 0}, {0, -1, 0}, {0, 0, 1}, {0, 0, -1}}

func onBoundary(scalars []float64, shape grid.Shape, i, j, k int, lv float64) bool {
	for _, f := range faces {
		ni, nj, nk := i+f[0], j+f[1], k+f[2]
		if ni < 0 || nj < 0 || nk < 0 || ni >= shape[0] || nj >= shape[1] || nk >= shape[2] {
			return true
		}
		if scalars[shape.Index(ni, nj, nk, grid.ColumnMajor)] < lv {
			return true
		}
	}
	return false
}

func point(g *grid.Grid, sc *Scene, gi, c, level int) Point {
	p := Point{X: g.X[gi], Y: g.Y[gi], Z: g.Z[gi], Level: level, Index: c}
	copy(p.RGBA[:], sc.RGBA[4*c:4*c+4])
	return p
}

func gridIndex(shape grid.Shape, c int, o grid.Order) int {
	if o == grid.ColumnMajor {
		return c
	}
	i, j, k := shape.Coords(c, grid.ColumnMajor)
	return shape.Index(i, j, k, o)
}

func extent(g *grid.Grid) float64 {
	e := 0.0
	for _, axis := range [][]float64{g.X, g.Y, g.Z} {
		e = math.Max(e, math.Max(floats.Max(axis), -floats.Min(axis)))
	}
	return e
}

// Registry maps modes to strategy constructors.
type Registry struct {
	strategies map[Mode]func(Settings) Strategy
}

func NewRegistry() *Registry {
	r := &Registry{strategies: make(map[Mode]func(Settings) Strategy)}
	r.strategies[Contour] = func(s Settings) Strategy { return &contour{settings: s} }
	r.strategies[MultiContour] = func(s Settings) Strategy { return &multiContour{settings: s} }
	r.strategies[Volume] = func(s Settings) Strategy { return &volume{settings: s} }
	return r
}

// Get returns the strategy for mode, configured with s.
func (r *Registry) Get(mode Mode, s Settings) (Strategy, error) {
	fn, ok := r.strategies[mode]
	if !ok {
		return nil, fmt.Errorf("%s: %w", mode, ErrUnknownMode)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return fn(s), nil
}

func (r *Registry) Modes() []Mode {
	modes := make([]Mode, 0, len(r.strategies))
	for m := range r.strategies {
		modes = append(modes, m)
	}
	sort.Slice(modes, func(i, j int) bool { return modes[i] < modes[j] })
	return modes
}
