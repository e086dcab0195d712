package wavefunction

import (
	"math"
	"math/cmplx"

	"github.com/san-kum/orbital/internal/special"
)

// Angles returns r, cosθ, cosφ and sinφ for a Cartesian point.
// At the origin cosθ is 1; on the polar axis cosφ is 1 and sinφ is 0.
func Angles(x, y, z float64) (r, cosTheta, cosPhi, sinPhi float64) {
	rho := math.Hypot(x, y)
	r = math.Hypot(rho, z)

	cosTheta = 1
	if r != 0 {
		cosTheta = z / r
	}
	cosPhi, sinPhi = 1, 0
	if rho != 0 {
		cosPhi = x / rho
		sinPhi = y / rho
	}
	return
}

// harmonicNorm is sqrt((2l+1)/(4π) · (l-m)!/(l+m)!).
func harmonicNorm(l, m int) float64 {
	return math.Sqrt(float64(2*l+1) / (4 * math.Pi) * special.FactorialRatio(l-m, l+m))
}

// SphericalHarmonic evaluates Y_l^m from the cosines of the polar angle and
// the cosine and sine of the azimuth.
func SphericalHarmonic(l, m int, cosTheta, cosPhi, sinPhi float64) complex128 {
	return complex(harmonicNorm(l, m)*special.Legendre(l, m, cosTheta), 0) * azimuthal(m, cosPhi, sinPhi)
}

// SphericalHarmonicPolar evaluates Y_l^m(θ, φ) from explicit angles.
func SphericalHarmonicPolar(l, m int, theta, phi float64) complex128 {
	leg := special.Legendre(l, m, math.Cos(theta))
	return complex(harmonicNorm(l, m)*leg, 0) * cmplx.Exp(complex(0, float64(m)*phi))
}

// azimuthal is (cosφ + i sinφ)^m by repeated multiplication.
func azimuthal(m int, cosPhi, sinPhi float64) complex128 {
	base := complex(cosPhi, sinPhi)
	if m < 0 {
		base = cmplx.Conj(base)
		m = -m
	}
	out := complex(1, 0)
	for ; m > 0; m-- {
		out *= base
	}
	return out
}
