package special

import "math"

// Factorial returns n! as a float64. Negative n returns NaN.
func Factorial(n int) float64 {
	if n < 0 {
		return math.NaN()
	}
	if n > 170 {
		return math.Inf(1)
	}
	f := 1.0
	for i := 2; i <= n; i++ {
		f *= float64(i)
	}
	return f
}

// FactorialRatio returns a!/b! without forming either factorial.
func FactorialRatio(a, b int) float64 {
	if a < 0 || b < 0 {
		return math.NaN()
	}
	if a <= 20 && b <= 20 {
		return Factorial(a) / Factorial(b)
	}
	la, _ := math.Lgamma(float64(a) + 1)
	lb, _ := math.Lgamma(float64(b) + 1)
	return math.Exp(la - lb)
}
