package grid

import (
	"fmt"

	"github.com/san-kum/orbital/internal/quantum"
)

// Order is the layout of a flattened 3D array.
type Order int

const (
	// ColumnMajor places the first axis (x) fastest, like Fortran or VTK point arrays.
	ColumnMajor Order = iota
	// RowMajor places the last axis (z) fastest, like C.
	RowMajor
)

func (o Order) String() string {
	if o == RowMajor {
		return "row-major"
	}
	return "column-major"
}

// ParseOrder accepts "F"/"column-major" and "C"/"row-major".
func ParseOrder(name string) (Order, error) {
	switch name {
	case "", "F", "f", "column-major", "fortran":
		return ColumnMajor, nil
	case "C", "c", "row-major":
		return RowMajor, nil
	}
	return ColumnMajor, fmt.Errorf("unknown array order: %s", name)
}

// Shape is the number of samples along x, y and z.
type Shape [3]int

func (s Shape) Len() int { return s[0] * s[1] * s[2] }

// Index maps axis indices ('ij' indexing, axis 0 is x) to a flat position.
func (s Shape) Index(i, j, k int, o Order) int {
	if o == RowMajor {
		return (i*s[1]+j)*s[2] + k
	}
	return i + s[0]*(j+s[1]*k)
}

// Coords is the inverse of Index.
func (s Shape) Coords(idx int, o Order) (i, j, k int) {
	if o == RowMajor {
		k = idx % s[2]
		idx /= s[2]
		j = idx % s[1]
		i = idx / s[1]
		return
	}
	i = idx % s[0]
	idx /= s[0]
	j = idx % s[1]
	k = idx / s[1]
	return
}

// Reorder copies a flat buffer laid out in one order into the other.
func Reorder[T any](data []T, shape Shape, from, to Order) ([]T, error) {
	if len(data) != shape.Len() {
		return nil, fmt.Errorf("reorder %d values into %v: %w", len(data), shape, quantum.ErrShapeMismatch)
	}
	out := make([]T, len(data))
	if from == to {
		copy(out, data)
		return out, nil
	}
	for idx, v := range data {
		i, j, k := shape.Coords(idx, from)
		out[shape.Index(i, j, k, to)] = v
	}
	return out, nil
}
