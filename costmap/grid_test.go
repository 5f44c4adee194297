package costmap

import (
	"testing"

	"github.com/edaniels/golog"
	"github.com/golang/geo/r2"
	"go.viam.com/test"

	"go.viam.com/localplanner/referenceframe"
)

func testGrid(t *testing.T) (*Grid, *referenceframe.FrameSystem) {
	t.Helper()
	logger := golog.NewTestLogger(t)
	fs := referenceframe.NewFrameSystem("test", nil)
	test.That(t, fs.AddFrame("odom", referenceframe.World, r2.Point{}, 0), test.ShouldBeNil)
	test.That(t, fs.AddFrame("base_link", "odom", r2.Point{X: 5, Y: 5}, 0), test.ShouldBeNil)
	grid := NewGrid(fs, "odom", "base_link", 20, 10, 1.0, r2.Point{}, 1.0, logger)
	return grid, fs
}

func TestGridGeometry(t *testing.T) {
	grid, _ := testGrid(t)
	test.That(t, grid.SizeInCellsX(), test.ShouldEqual, 20)
	test.That(t, grid.SizeInCellsY(), test.ShouldEqual, 10)
	test.That(t, grid.Resolution(), test.ShouldEqual, 1.0)
	test.That(t, grid.OperatingFrame(), test.ShouldEqual, "odom")
	test.That(t, grid.BaseFrame(), test.ShouldEqual, "base_link")
}

func TestGridRobotPose(t *testing.T) {
	grid, fs := testGrid(t)
	pose, err := grid.RobotPose()
	test.That(t, err, test.ShouldBeNil)
	test.That(t, pose.Frame, test.ShouldEqual, "odom")
	test.That(t, pose.Pose.Point.X, test.ShouldAlmostEqual, 5, 1e-9)
	test.That(t, pose.Pose.Point.Y, test.ShouldAlmostEqual, 5, 1e-9)

	test.That(t, fs.UpdateFrame("base_link", r2.Point{X: 2, Y: 1}, 0.3), test.ShouldBeNil)
	pose, err = grid.RobotPose()
	test.That(t, err, test.ShouldBeNil)
	test.That(t, pose.Pose.Point.X, test.ShouldAlmostEqual, 2, 1e-9)
	test.That(t, pose.Pose.Theta, test.ShouldAlmostEqual, 0.3, 1e-9)
}

func TestGridSnapshotSemantics(t *testing.T) {
	grid, _ := testGrid(t)
	target := r2.Point{X: 10.5, Y: 5.5}

	// live marks are invisible until a snapshot is taken
	grid.MarkObstacle(target)
	test.That(t, grid.Occupied(target), test.ShouldBeFalse)
	grid.Snapshot()
	test.That(t, grid.Occupied(target), test.ShouldBeTrue)

	// points outside the window are free and ignored
	outside := r2.Point{X: -3, Y: 2}
	grid.MarkObstacle(outside)
	grid.Snapshot()
	test.That(t, grid.Occupied(outside), test.ShouldBeFalse)
}

func TestClearRobotFootprint(t *testing.T) {
	grid, _ := testGrid(t)
	underRobot := r2.Point{X: 5.4, Y: 5.4}
	farAway := r2.Point{X: 15.5, Y: 5.5}
	grid.MarkObstacle(underRobot)
	grid.MarkObstacle(farAway)
	grid.ClearRobotFootprint()
	grid.Snapshot()
	test.That(t, grid.Occupied(underRobot), test.ShouldBeFalse)
	test.That(t, grid.Occupied(farAway), test.ShouldBeTrue)
}
