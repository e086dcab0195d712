package render

import (
	"math"
	"sort"

	colorful "github.com/lucasb-eyer/go-colorful"
)

type Vec3 struct {
	X, Y, Z float64
}

func (v Vec3) Scale(s float64) Vec3 { return Vec3{v.X * s, v.Y * s, v.Z * s} }

// Camera projects scene coordinates onto a canvas with a fixed eye on the
// +z axis looking at the origin.
type Camera struct {
	Distance         float64
	Near             float64
	RotX, RotY, RotZ float64
	Zoom             float64
}

// NewCamera looks slightly down onto the xy plane so p and d lobes along z
// are visible.
func NewCamera() *Camera {
	return &Camera{Distance: 50, Near: 0.1, RotX: -math.Pi / 3, RotZ: math.Pi / 6, Zoom: 1}
}

func (c *Camera) RotateX(a float64) { c.RotX += a }
func (c *Camera) RotateZ(a float64) { c.RotZ += a }
func (c *Camera) ZoomIn()           { c.Zoom = math.Min(10, c.Zoom*1.2) }
func (c *Camera) ZoomOut()          { c.Zoom = math.Max(0.01, c.Zoom/1.2) }

// Fit scales the zoom so that a cube of half-width extent fills the view.
func (c *Camera) Fit(extent float64) {
	if extent > 0 {
		c.Zoom = 1.2 / extent
	}
}

// RotatePoint applies the z, then x, then y rotations.
func (c *Camera) RotatePoint(p Vec3) Vec3 {
	cz, sz := math.Cos(c.RotZ), math.Sin(c.RotZ)
	p.X, p.Y = p.X*cz-p.Y*sz, p.X*sz+p.Y*cz
	cx, sx := math.Cos(c.RotX), math.Sin(c.RotX)
	p.Y, p.Z = p.Y*cx-p.Z*sx, p.Y*sx+p.Z*cx
	cy, sy := math.Cos(c.RotY), math.Sin(c.RotY)
	p.X, p.Z = p.X*cy+p.Z*sy, -p.X*sy+p.Z*cy
	return p
}

// Project maps p to dot coordinates on an sw x sh raster.
// Returns x, y, depth, and visibility.
func (c *Camera) Project(p Vec3, sw, sh int) (int, int, float64, bool) {
	rot := c.RotatePoint(p).Scale(c.Zoom)
	if rot.Z >= c.Distance-c.Near {
		return 0, 0, 0, false
	}
	scale := c.Distance / (c.Distance - rot.Z)
	pScale := math.Min(float64(sw), float64(sh)) / 3.0
	sx := int(rot.X*scale*pScale) + sw/2
	sy := int(-rot.Y*scale*pScale) + sh/2
	return sx, sy, rot.Z, sx >= 0 && sx < sw && sy >= 0 && sy < sh
}

type projected struct {
	x, y  int
	depth float64
	color colorful.Color
}

// Preview draws the scene's points onto a width x height character canvas.
// Far points are drawn first so near ones keep their cell's color.
func Preview(s *Scene, cam *Camera, width, height int) *Canvas {
	c := NewCanvas(width, height)
	sw, sh := 2*width, 4*height
	proj := make([]projected, 0, len(s.Points))
	for _, p := range s.Points {
		if p.RGBA[3] == 0 {
			continue
		}
		x, y, d, ok := cam.Project(Vec3{p.X, p.Y, p.Z}, sw, sh)
		if !ok {
			continue
		}
		proj = append(proj, projected{x, y, d, colorful.Color{
			R: float64(p.RGBA[0]) / 255,
			G: float64(p.RGBA[1]) / 255,
			B: float64(p.RGBA[2]) / 255,
		}})
	}
	sort.Slice(proj, func(i, j int) bool { return proj[i].depth < proj[j].depth })
	for _, p := range proj {
		c.Paint(p.x, p.y, p.color)
	}
	return c
}

// DrawAxes draws the x, y and z axes out to length.
func DrawAxes(c *Canvas, cam *Camera, length float64) {
	sw, sh := 2*c.Width, 4*c.Height
	ox, oy, _, _ := cam.Project(Vec3{}, sw, sh)
	for _, end := range []Vec3{{X: length}, {Y: length}, {Z: length}} {
		x, y, _, ok := cam.Project(end, sw, sh)
		if ok {
			c.DrawLine(ox, oy, x, y)
		}
	}
}
