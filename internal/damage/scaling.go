package damage

import "math"

const (
	ScalingFactor     = 0.875
	ScalingMin        = 0.2
	ScalingMinAbove1K = 0.275
)

// Scaling returns the multiplier for a hit of damage d at combo hit number
// n (1-indexed). The first three hits are unscaled. A zero-damage hit sits
// one step behind the curve the next damaging hit will see.
func Scaling(n, d int) float64 {
	switch {
	case n <= 3:
		return 1.0
	case d == 0:
		return math.Max(ScalingMin, math.Pow(ScalingFactor, float64(n-4)))
	case d >= 1000:
		return math.Max(ScalingMinAbove1K, math.Pow(ScalingFactor, float64(n-3)))
	default:
		return math.Max(ScalingMin, math.Pow(ScalingFactor, float64(n-3)))
	}
}

// Scaled truncates d * scaling toward zero.
func Scaled(d int, scaling float64) int {
	return int(math.Floor(float64(d) * scaling))
}
