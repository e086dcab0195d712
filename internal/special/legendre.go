package special

import "math"

// Legendre evaluates the associated Legendre function P_l^m(x) on [-1, 1],
// including the Condon-Shortley phase (-1)^m. Negative m uses
// P_l^{-m} = (-1)^m (l-m)!/(l+m)! P_l^m. Returns 0 when |m| > l or l < 0.
func Legendre(l, m int, x float64) float64 {
	if l < 0 {
		return 0
	}
	am := m
	if am < 0 {
		am = -am
	}
	if am > l {
		return 0
	}

	p := legendrePositive(l, am, x)
	if m >= 0 {
		return p
	}
	sign := 1.0
	if am%2 == 1 {
		sign = -1
	}
	return sign * FactorialRatio(l-am, l+am) * p
}

func legendrePositive(l, m int, x float64) float64 {
	// P_m^m = (-1)^m (2m-1)!! (1-x^2)^(m/2)
	pmm := 1.0
	if m > 0 {
		somx2 := math.Sqrt(math.Max(0, (1-x)*(1+x)))
		fact := 1.0
		for i := 1; i <= m; i++ {
			pmm *= -fact * somx2
			fact += 2
		}
	}
	if l == m {
		return pmm
	}

	pmmp1 := x * float64(2*m+1) * pmm
	if l == m+1 {
		return pmmp1
	}

	var pll float64
	for ll := m + 2; ll <= l; ll++ {
		pll = (x*float64(2*ll-1)*pmmp1 - float64(ll+m-1)*pmm) / float64(ll-m)
		pmm, pmmp1 = pmmp1, pll
	}
	return pll
}
