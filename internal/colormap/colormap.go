// Package colormap encodes complex fields as colors. Phase is always hue;
// magnitude can optionally drive saturation, value or alpha.
package colormap

import (
	"fmt"
	"math"
	"math/cmplx"
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"
	"gonum.org/v1/gonum/floats"

	"github.com/san-kum/orbital/internal/quantum"
)

// Channels selects which color channels are scaled by the rescaled magnitude.
type Channels uint8

const (
	Saturation Channels = 1 << iota
	Value
	Alpha
)

// ParseChannels reads a selector such as "", "v", "sa" or "sva".
func ParseChannels(sel string) (Channels, error) {
	var c Channels
	for _, r := range sel {
		switch r {
		case 's':
			c |= Saturation
		case 'v':
			c |= Value
		case 'a':
			c |= Alpha
		default:
			return 0, fmt.Errorf("channel %q in %q: %w", r, sel, quantum.ErrChannel)
		}
	}
	return c, nil
}

func (c Channels) Has(ch Channels) bool { return c&ch != 0 }

func (c Channels) String() string {
	var b strings.Builder
	if c.Has(Saturation) {
		b.WriteByte('s')
	}
	if c.Has(Value) {
		b.WriteByte('v')
	}
	if c.Has(Alpha) {
		b.WriteByte('a')
	}
	return b.String()
}

func (c Channels) MarshalText() ([]byte, error) { return []byte(c.String()), nil }

func (c *Channels) UnmarshalText(text []byte) error {
	parsed, err := ParseChannels(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

type options struct {
	channels    Channels
	zeroUniform bool
	alpha       bool
	shape       []int
}

// Option configures an encoding.
type Option func(*options)

func WithChannels(c Channels) Option { return func(o *options) { o.channels = c } }

// WithZeroUniform maps a field of uniform magnitude to 0 instead of 1.
func WithZeroUniform(zero bool) Option { return func(o *options) { o.zeroUniform = zero } }

// WithAlpha forces an alpha channel even when alpha is not magnitude-driven.
func WithAlpha(alpha bool) Option { return func(o *options) { o.alpha = alpha } }

// WithShape records the logical shape of the flat input.
func WithShape(dims ...int) Option { return func(o *options) { o.shape = dims } }

// Colors is a flat color buffer. Shape is the input shape with a trailing
// channel dimension of Channels (3 or 4).
type Colors struct {
	Shape    []int
	Channels int
	Data     []float64
}

// Len is the number of encoded elements.
func (c *Colors) Len() int {
	if c.Channels == 0 {
		return 0
	}
	return len(c.Data) / c.Channels
}

// Pixel returns the channels of element i. The slice aliases Data.
func (c *Colors) Pixel(i int) []float64 {
	return c.Data[i*c.Channels : (i+1)*c.Channels]
}

// Bytes quantizes every channel to [0, 255].
func (c *Colors) Bytes() []uint8 {
	out := make([]uint8, len(c.Data))
	for i, v := range c.Data {
		out[i] = Quantize(v)
	}
	return out
}

// Quantize maps a channel in [0, 1] to a byte, clamping out-of-range values.
func Quantize(v float64) uint8 {
	v = math.Round(v * 255)
	switch {
	case v <= 0 || math.IsNaN(v):
		return 0
	case v >= 255:
		return 255
	}
	return uint8(v)
}

// Hue maps a complex value's phase onto [0, 1).
func Hue(v complex128) float64 {
	h := math.Atan2(imag(v), real(v)) / (2 * math.Pi)
	if h < 0 {
		h++
	}
	if h >= 1 {
		h = 0
	}
	return h
}

// Rescale maps |field| onto [0, 1] using the global minimum and maximum.
// A field of uniform magnitude maps to 1, or to 0 when zeroUniform is set.
func Rescale(field []complex128, zeroUniform bool) []float64 {
	mag := make([]float64, len(field))
	for i, v := range field {
		mag[i] = cmplx.Abs(v)
	}
	if len(mag) == 0 {
		return mag
	}
	lo, hi := floats.Min(mag), floats.Max(mag)
	if hi == lo {
		fill := 1.0
		if zeroUniform {
			fill = 0
		}
		for i := range mag {
			mag[i] = fill
		}
		return mag
	}
	span := hi - lo
	for i := range mag {
		mag[i] = (mag[i] - lo) / span
	}
	return mag
}

// Encode converts field into RGB, or RGBA when alpha is selected or forced.
func Encode(field []complex128, opts ...Option) (*Colors, error) {
	return encode(field, true, opts)
}

// EncodeHSV is Encode without the final HSV to RGB transform.
func EncodeHSV(field []complex128, opts ...Option) (*Colors, error) {
	return encode(field, false, opts)
}

func encode(field []complex128, rgb bool, opts []Option) (*Colors, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	if len(field) == 0 {
		return nil, quantum.ErrEmptyField
	}
	shape := o.shape
	if shape == nil {
		shape = []int{len(field)}
	}
	if product(shape) != len(field) {
		return nil, fmt.Errorf("encode %d values as %v: %w", len(field), shape, quantum.ErrShapeMismatch)
	}

	nch := 3
	if o.alpha || o.channels.Has(Alpha) {
		nch = 4
	}
	mag := Rescale(field, o.zeroUniform)
	data := make([]float64, len(field)*nch)
	for i, v := range field {
		h, s, val, a := Hue(v), 1.0, 1.0, 1.0
		if o.channels.Has(Saturation) {
			s = mag[i]
		}
		if o.channels.Has(Value) {
			val = mag[i]
		}
		if o.channels.Has(Alpha) {
			a = mag[i]
		}
		px := data[i*nch : (i+1)*nch]
		if rgb {
			c := colorful.Hsv(h*360, s, val)
			px[0], px[1], px[2] = c.R, c.G, c.B
		} else {
			px[0], px[1], px[2] = h, s, val
		}
		if nch == 4 {
			px[3] = a
		}
	}

	out := &Colors{Channels: nch, Data: data}
	out.Shape = append(append(out.Shape, shape...), nch)
	return out, nil
}

func product(dims []int) int {
	p := 1
	for _, d := range dims {
		p *= d
	}
	return p
}
