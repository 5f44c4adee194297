package spatialmath

import (
	"math"
	"testing"

	"go.viam.com/test"

	"go.viam.com/localplanner/utils"
)

func TestNormalizeAngle(t *testing.T) {
	for _, tc := range []struct {
		name     string
		in       float64
		expected float64
	}{
		{"zero", 0, 0},
		{"pi stays pi", math.Pi, math.Pi},
		{"negative pi wraps", -math.Pi, math.Pi},
		{"two pi", 2 * math.Pi, 0},
		{"three pi", 3 * math.Pi, math.Pi},
		{"small negative", -0.5, -0.5},
		{"large negative", -7 * math.Pi / 2, math.Pi / 2},
	} {
		t.Run(tc.name, func(t *testing.T) {
			test.That(t, NormalizeAngle(tc.in), test.ShouldAlmostEqual, tc.expected, 1e-9)
		})
	}
}

func TestShortestAngularDistance(t *testing.T) {
	test.That(t, ShortestAngularDistance(0, math.Pi/2), test.ShouldAlmostEqual, math.Pi/2, 1e-9)
	test.That(t, ShortestAngularDistance(math.Pi/2, 0), test.ShouldAlmostEqual, -math.Pi/2, 1e-9)

	// headings on either side of the wraparound are nearly identical
	diff := ShortestAngularDistance(utils.DegToRad(179), utils.DegToRad(-179))
	test.That(t, diff, test.ShouldAlmostEqual, utils.DegToRad(2), 1e-9)
	diff = ShortestAngularDistance(utils.DegToRad(-179), utils.DegToRad(179))
	test.That(t, diff, test.ShouldAlmostEqual, utils.DegToRad(-2), 1e-9)
}
