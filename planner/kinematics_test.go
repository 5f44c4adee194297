package planner

import (
	"math"
	"testing"

	"go.viam.com/test"

	"go.viam.com/localplanner/spatialmath"
)

func TestStopWithAccLimits(t *testing.T) {
	h := newHarness(t, 10)
	pose := spatialmath.NewPose(0, 0, 0)

	t.Run("decelerates every axis by one step", func(t *testing.T) {
		current := spatialmath.NewVelocity(0.5, -0.4, 0.6)
		cmd, err := h.tc.stopWithAccLimits(pose, current)
		test.That(t, err, test.ShouldBeNil)
		// acc limits are 2.5, 2.5, 3.2 over a 0.1 period
		test.That(t, cmd.Linear.X, test.ShouldAlmostEqual, 0.25, 1e-9)
		test.That(t, cmd.Linear.Y, test.ShouldAlmostEqual, -0.15, 1e-9)
		test.That(t, cmd.Angular, test.ShouldAlmostEqual, 0.28, 1e-9)
	})

	t.Run("floors at zero", func(t *testing.T) {
		current := spatialmath.NewVelocity(0.1, -0.05, 0.2)
		cmd, err := h.tc.stopWithAccLimits(pose, current)
		test.That(t, err, test.ShouldBeNil)
		test.That(t, cmd.Linear.X, test.ShouldEqual, 0.0)
		test.That(t, cmd.Linear.Y, test.ShouldEqual, 0.0)
		test.That(t, cmd.Angular, test.ShouldEqual, 0.0)
	})

	t.Run("magnitude never grows", func(t *testing.T) {
		for _, vx := range []float64{-1, -0.3, 0, 0.3, 1} {
			current := spatialmath.NewVelocity(vx, 0, 0)
			cmd, err := h.tc.stopWithAccLimits(pose, current)
			test.That(t, err, test.ShouldBeNil)
			test.That(t, math.Abs(cmd.Linear.X), test.ShouldBeLessThanOrEqualTo, math.Abs(vx))
		}
	})

	t.Run("rejected candidate yields a zero command and an error", func(t *testing.T) {
		h := newHarness(t, 10)
		h.eval.checkOK = false
		cmd, err := h.tc.stopWithAccLimits(pose, spatialmath.NewVelocity(0.5, 0, 0))
		test.That(t, err, test.ShouldBeError, ErrInvalidCommand)
		test.That(t, cmd, test.ShouldResemble, spatialmath.Velocity{})
	})
}

func TestRotateToGoal(t *testing.T) {
	pose := spatialmath.NewPose(0, 0, 0)

	t.Run("sign follows the angular error", func(t *testing.T) {
		h := newHarness(t, 10)
		cmd, err := h.tc.rotateToGoal(pose, spatialmath.Velocity{}, 1.0)
		test.That(t, err, test.ShouldBeNil)
		test.That(t, cmd.Angular, test.ShouldBeGreaterThan, 0)
		test.That(t, cmd.Linear.X, test.ShouldEqual, 0.0)
		test.That(t, cmd.Linear.Y, test.ShouldEqual, 0.0)

		cmd, err = h.tc.rotateToGoal(pose, spatialmath.Velocity{}, -1.0)
		test.That(t, err, test.ShouldBeNil)
		test.That(t, cmd.Angular, test.ShouldBeLessThan, 0)
	})

	t.Run("bounded by the stopping speed", func(t *testing.T) {
		h := newHarness(t, 10)
		goalTheta := math.Pi / 2
		cmd, err := h.tc.rotateToGoal(pose, spatialmath.Velocity{}, goalTheta)
		test.That(t, err, test.ShouldBeNil)
		maxToStop := math.Sqrt(2 * h.tc.cfg.AccLimTheta * goalTheta)
		test.That(t, cmd.Angular, test.ShouldBeGreaterThan, 0)
		test.That(t, cmd.Angular, test.ShouldBeLessThanOrEqualTo, maxToStop)
		test.That(t, cmd.Angular, test.ShouldBeLessThanOrEqualTo,
			math.Max(h.tc.cfg.MinInPlaceRotationalVel, math.Min(h.tc.cfg.MaxVelTheta(), maxToStop)))
	})

	t.Run("stays within one acceleration step of the current speed", func(t *testing.T) {
		h := newHarness(t, 10)
		current := spatialmath.NewVelocity(0, 0, 0.2)
		cmd, err := h.tc.rotateToGoal(pose, current, math.Pi)
		test.That(t, err, test.ShouldBeNil)
		test.That(t, math.Abs(cmd.Angular), test.ShouldBeLessThanOrEqualTo, 0.2+h.tc.cfg.AccLimTheta*controlPeriod+1e-12)
	})

	t.Run("small errors still rotate at the in-place minimum", func(t *testing.T) {
		h := newHarness(t, 10)
		// error well under the minimum in-place speed
		cmd, err := h.tc.rotateToGoal(pose, spatialmath.NewVelocity(0, 0, 0.4), 0.3)
		test.That(t, err, test.ShouldBeNil)
		// the candidate starts from the 0.4 minimum before the stopping cap
		test.That(t, cmd.Angular, test.ShouldBeGreaterThan, 0)
	})

	t.Run("rejected candidate yields a zero command and an error", func(t *testing.T) {
		h := newHarness(t, 10)
		h.eval.checkOK = false
		cmd, err := h.tc.rotateToGoal(pose, spatialmath.Velocity{}, 1.0)
		test.That(t, err, test.ShouldBeError, ErrInvalidCommand)
		test.That(t, cmd, test.ShouldResemble, spatialmath.Velocity{})
	})
}
