package wavefunction

import "math"

// ToReal converts a complex-basis value evaluated at |m| into the real
// orthonormal basis for the requested m:
//
//	m = 0: unchanged
//	m > 0: √2 (-1)^m Re ψ
//	m < 0: √2 (-1)^m Im ψ
//
// The imaginary part of the result is exactly zero.
func ToReal(m int, psi complex128) complex128 {
	switch {
	case m == 0:
		return complex(real(psi), 0)
	case m > 0:
		return complex(math.Sqrt2*parity(m)*real(psi), 0)
	default:
		return complex(math.Sqrt2*parity(m)*imag(psi), 0)
	}
}

func parity(m int) float64 {
	if m%2 != 0 {
		return -1
	}
	return 1
}
