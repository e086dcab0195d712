// Package special evaluates the orthogonal polynomials behind the hydrogen
// wavefunction: generalized Laguerre polynomials for the radial part and
// associated Legendre functions for the angular part.
//
// Both are computed with their standard three-term recurrences, which are
// stable in the forward direction for the degrees reached by bound states.
package special
