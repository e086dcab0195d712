package wavefunction

import (
	"math"

	"github.com/san-kum/orbital/internal/special"
)

// BohrRadius is the length unit of every coordinate.
const BohrRadius = 1.0

// Prefactor returns sqrt((2Z/n)^3 (n-l-1)! / (2n (n+l)!)).
func Prefactor(n, l int, z float64) float64 {
	scale := 2 * z / (float64(n) * BohrRadius)
	return math.Sqrt(scale * scale * scale * special.FactorialRatio(n-l-1, n+l) / float64(2*n))
}

// Radial returns exp(-ρ/2) ρ^l L^{2l+1}_{n-l-1}(ρ) with ρ = 2Zr/n.
// The normalization lives in Prefactor.
func Radial(n, l int, r, z float64) float64 {
	rho := 2 * r * z / (float64(n) * BohrRadius)
	return math.Exp(-rho/2) * powInt(rho, l) * special.Laguerre(n-l-1, float64(2*l+1), rho)
}

// powInt is x^n for n ≥ 0 with 0^0 = 1.
func powInt(x float64, n int) float64 {
	p := 1.0
	for ; n > 0; n-- {
		p *= x
	}
	return p
}
