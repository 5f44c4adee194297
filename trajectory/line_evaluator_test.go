package trajectory

import (
	"testing"
	"time"

	"github.com/edaniels/golog"
	"github.com/golang/geo/r2"
	"go.viam.com/test"

	"go.viam.com/localplanner/referenceframe"
	"go.viam.com/localplanner/spatialmath"
)

// wallOccupancy blocks a vertical band of the plane.
type wallOccupancy struct {
	minX, maxX float64
}

func (w *wallOccupancy) Occupied(pt r2.Point) bool {
	return pt.X >= w.minX && pt.X <= w.maxX
}

func straightPlan(n int) []referenceframe.PoseInFrame {
	plan := make([]referenceframe.PoseInFrame, 0, n)
	for i := 0; i < n; i++ {
		plan = append(plan, referenceframe.NewPoseInFrame(
			"odom", spatialmath.NewPose(float64(i), 0, 0), time.Time{}))
	}
	return plan
}

func testConfig() LineEvaluatorConfig {
	return LineEvaluatorConfig{
		SimTime:          1.0,
		SimGranularity:   0.025,
		VXSamples:        3,
		MaxVelX:          0.5,
		MinVelX:          0.1,
		MaxVelTheta:      1.0,
		HeadingLookahead: 0.325,
	}
}

func TestFindBestPathFreeSpace(t *testing.T) {
	logger := golog.NewTestLogger(t)
	le := NewLineEvaluator(nil, testConfig(), logger)
	le.UpdatePlan(straightPlan(10))

	traj, cmd := le.FindBestPath(spatialmath.NewPose(0, 0, 0), spatialmath.Velocity{})
	test.That(t, traj.Rejected(), test.ShouldBeFalse)
	test.That(t, cmd.Linear.X, test.ShouldBeGreaterThan, 0)
	test.That(t, len(traj.Points), test.ShouldBeGreaterThan, 1)
	// driving along the plan shrinks the distance to its last point
	test.That(t, traj.Cost, test.ShouldBeLessThan, 9)
}

func TestFindBestPathEmptyPlan(t *testing.T) {
	logger := golog.NewTestLogger(t)
	le := NewLineEvaluator(nil, testConfig(), logger)
	traj, cmd := le.FindBestPath(spatialmath.NewPose(0, 0, 0), spatialmath.Velocity{})
	test.That(t, traj.Rejected(), test.ShouldBeTrue)
	test.That(t, cmd, test.ShouldResemble, spatialmath.Velocity{})
}

func TestFindBestPathBlocked(t *testing.T) {
	logger := golog.NewTestLogger(t)
	// a wall right in front of the robot blocks every sampled speed
	le := NewLineEvaluator(&wallOccupancy{minX: 0.01, maxX: 2}, testConfig(), logger)
	le.UpdatePlan(straightPlan(10))

	traj, _ := le.FindBestPath(spatialmath.NewPose(0, 0, 0), spatialmath.Velocity{})
	test.That(t, traj.Rejected(), test.ShouldBeTrue)
	test.That(t, traj.Cost, test.ShouldEqual, RejectionCost)
}

func TestCheckTrajectory(t *testing.T) {
	logger := golog.NewTestLogger(t)
	le := NewLineEvaluator(&wallOccupancy{minX: 0.3, maxX: 2}, testConfig(), logger)

	pose := spatialmath.NewPose(0, 0, 0)
	forward := spatialmath.NewVelocity(0.5, 0, 0)
	test.That(t, le.CheckTrajectory(pose, spatialmath.Velocity{}, forward), test.ShouldBeFalse)

	rotate := spatialmath.NewVelocity(0, 0, 0.5)
	test.That(t, le.CheckTrajectory(pose, spatialmath.Velocity{}, rotate), test.ShouldBeTrue)

	away := spatialmath.NewVelocity(-0.5, 0, 0)
	test.That(t, le.CheckTrajectory(pose, spatialmath.Velocity{}, away), test.ShouldBeTrue)
}
