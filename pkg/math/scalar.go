package math

import "math"

// Clamp limits v to [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

// WrapDegrees normalizes an angle into [0, 360).
// Angles that differ by a whole number of turns map to the same value.
func WrapDegrees(deg float64) float64 {
	return math.Mod(math.Mod(deg, 360)+360, 360)
}
