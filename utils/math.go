package utils

import (
	"math"
)

// DegToRad converts degrees to radians.
func DegToRad(degrees float64) float64 {
	return degrees * math.Pi / 180
}

// RadToDeg converts radians to degrees.
func RadToDeg(radians float64) float64 {
	return radians * 180 / math.Pi
}

// Square is faster than math.Pow(x, 2).
func Square(n float64) float64 {
	return n * n
}

// Sign returns -1 for negative numbers and 1 otherwise.
func Sign(n float64) float64 {
	if n < 0 {
		return -1
	}
	return 1
}

// Clamp returns min if n is less than min, max if n is greater than max, and n otherwise.
func Clamp(n, min, max float64) float64 {
	if n < min {
		return min
	}
	if n > max {
		return max
	}
	return n
}
