package special

// Laguerre evaluates the generalized Laguerre polynomial L_n^(alpha)(x).
// Negative n returns 0.
func Laguerre(n int, alpha, x float64) float64 {
	if n < 0 {
		return 0
	}
	prev := 1.0
	if n == 0 {
		return prev
	}
	cur := 1 + alpha - x
	for k := 1; k < n; k++ {
		fk := float64(k)
		next := ((2*fk+1+alpha-x)*cur - (fk+alpha)*prev) / (fk + 1)
		prev, cur = cur, next
	}
	return cur
}

// LaguerreAll evaluates L_n^(alpha) at every point of x.
func LaguerreAll(n int, alpha float64, x []float64) []float64 {
	out := make([]float64, len(x))
	for i, xi := range x {
		out[i] = Laguerre(n, alpha, xi)
	}
	return out
}
