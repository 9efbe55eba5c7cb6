package sampling

import "math"

// Clip truncates x to [lo, hi]. Use math.Inf for an open bound.
func Clip(x, lo, hi float64) float64 {
	return math.Min(math.Max(x, lo), hi)
}

// Sigmoid is the logistic link 1 / (1 + e^-x).
func Sigmoid(x float64) float64 {
	return 1 / (1 + math.Exp(-x))
}
