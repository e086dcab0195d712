package grid

// Volume is the differential volume element of a grid: a single value shared
// by every cell, or one value per cell.
type Volume struct {
	scalar float64
	cells  []float64
}

// UniformVolume returns a volume element broadcast to every cell.
func UniformVolume(v float64) Volume { return Volume{scalar: v} }

// CellVolumes returns a per-cell volume element. The slice is not copied.
func CellVolumes(cells []float64) Volume { return Volume{cells: cells} }

func (v Volume) IsUniform() bool { return v.cells == nil }

// At returns the volume of cell i.
func (v Volume) At(i int) float64 {
	if v.cells == nil {
		return v.scalar
	}
	return v.cells[i]
}

// Fits reports whether v can be paired with an array of n values.
func (v Volume) Fits(n int) bool {
	return v.cells == nil || len(v.cells) == n
}

// Dense materializes the volume for n cells.
func (v Volume) Dense(n int) []float64 {
	out := make([]float64, n)
	if v.cells != nil {
		copy(out, v.cells)
		return out
	}
	for i := range out {
		out[i] = v.scalar
	}
	return out
}
