// Package grid builds the 3D sampling grids the wavefunction is evaluated on.
//
// Three samplers are provided:
//
//   - uniform: equally spaced points on [-span, span] per axis
//   - stretched: sinh of equally spaced values, denser near the nucleus
//   - spherical: a sinh-stretched radius times a regular (θ, φ) lattice
//
// Every grid carries its flatten [Order] explicitly. Arrays derived from a
// grid (fields, densities, colors) use the same order, so flat buffers can be
// handed to mesh builders that expect column-major data without reshaping.
package grid
