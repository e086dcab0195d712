// Package wavefunction evaluates hydrogen-like bound-state wavefunctions
//
//	ψ_nlm(r, θ, φ) = N_nl · R_nl(r) · Y_l^m(θ, φ)
//
// on arbitrary point sets or on a [grid.Grid]. The angular part is computed
// straight from Cartesian components (cosθ = z/r, cosφ = x/ρ, sinφ = y/ρ), so
// no arccos or atan2 is needed. Fields can be returned in the complex basis
// or converted to the real orthonormal basis.
//
// Every function is pure. [WithWorkers] splits the output into disjoint
// chunks evaluated on separate goroutines; the default is a single goroutine.
package wavefunction
