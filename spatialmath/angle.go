package spatialmath

import "math"

// NormalizeAngle maps an angle in radians onto (-pi, pi].
func NormalizeAngle(theta float64) float64 {
	theta = math.Mod(theta, 2*math.Pi)
	if theta > math.Pi {
		theta -= 2 * math.Pi
	} else if theta <= -math.Pi {
		theta += 2 * math.Pi
	}
	return theta
}

// ShortestAngularDistance returns the signed minimal rotation taking the
// heading from to the heading to. The result is always in (-pi, pi].
func ShortestAngularDistance(from, to float64) float64 {
	return NormalizeAngle(to - from)
}
