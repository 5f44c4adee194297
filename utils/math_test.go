package utils

import (
	"math"
	"testing"

	"go.viam.com/test"
)

func TestAngleConversions(t *testing.T) {
	test.That(t, DegToRad(180), test.ShouldAlmostEqual, math.Pi, 1e-9)
	test.That(t, RadToDeg(math.Pi/2), test.ShouldAlmostEqual, 90, 1e-9)
	test.That(t, RadToDeg(DegToRad(37.5)), test.ShouldAlmostEqual, 37.5, 1e-9)
}

func TestSign(t *testing.T) {
	test.That(t, Sign(3.2), test.ShouldEqual, 1.0)
	test.That(t, Sign(-0.01), test.ShouldEqual, -1.0)
	test.That(t, Sign(0), test.ShouldEqual, 1.0)
}

func TestAttributeMapHas(t *testing.T) {
	am := AttributeMap{"max_vel_x": 0.5, "prune_plan": nil}
	test.That(t, am.Has("max_vel_x"), test.ShouldBeTrue)
	test.That(t, am.Has("prune_plan"), test.ShouldBeTrue)
	test.That(t, am.Has("missing"), test.ShouldBeFalse)
}

func TestClamp(t *testing.T) {
	test.That(t, Clamp(5, 0, 1), test.ShouldEqual, 1.0)
	test.That(t, Clamp(-5, 0, 1), test.ShouldEqual, 0.0)
	test.That(t, Clamp(0.5, 0, 1), test.ShouldEqual, 0.5)
}
