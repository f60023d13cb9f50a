package geometry

import "math"

// Clamp limits v to the range [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Lerp linearly interpolates from a to b by t.
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// NearlyEqual reports whether a and b are within tolerance of each other.
func NearlyEqual(a, b, tolerance float64) bool {
	return math.Abs(a-b) <= tolerance
}

// Mean returns the arithmetic mean of the values, or 0 for an empty slice.
func Mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// StdDev returns the population standard deviation of the values.
func StdDev(values []float64) float64 {
	if len(values) < 2 {
		return 0
	}
	mean := Mean(values)
	sum := 0.0
	for _, v := range values {
		d := v - mean
		sum += d * d
	}
	return math.Sqrt(sum / float64(len(values)))
}
