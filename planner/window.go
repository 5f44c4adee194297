package planner

import (
	"math"
	"time"

	"go.viam.com/localplanner/referenceframe"
	"go.viam.com/localplanner/spatialmath"
	"go.viam.com/localplanner/utils"
)

// pruneSqThreshold is the squared distance under which traversed waypoints
// are dropped from the front of the plan.
const pruneSqThreshold = 1.0

// transformGlobalPlan transforms the stored global plan into the operating
// frame and trims it to the window the costmap can see.
//
// The window is a single contiguous run: scanning stops at the first waypoint
// outside the search radius, so a plan that leaves the radius and re-enters
// it later is truncated early. That is a known limitation carried over from
// the reference behavior, not something callers should work around.
func (tc *trajectoryController) transformGlobalPlan() ([]referenceframe.PoseInFrame, error) {
	if len(tc.globalPlan) == 0 {
		return nil, ErrEmptyPlan
	}
	planFrame := tc.globalPlan[0].Frame

	transform, err := tc.gateway.LookupTransform(tc.operatingFrame, planFrame, time.Time{})
	if err != nil {
		return nil, err
	}

	// the robot's pose expressed in the frame of the plan
	robotInPlan, err := tc.gateway.TransformPose(
		planFrame,
		referenceframe.NewPoseInFrame(tc.baseFrame, spatialmath.Pose{}, time.Time{}),
	)
	if err != nil {
		return nil, err
	}

	// keep points on the plan that are within the window the costmap covers
	distThreshold := math.Max(
		float64(tc.provider.SizeInCellsX())*tc.provider.Resolution()/2.0,
		float64(tc.provider.SizeInCellsY())*tc.provider.Resolution()/2.0,
	)
	sqDistThreshold := utils.Square(distThreshold)

	// skip ahead to the first waypoint within the search radius of the robot
	i := 0
	for i < len(tc.globalPlan) &&
		spatialmath.SquaredDistance(robotInPlan.Pose.Point, tc.globalPlan[i].Pose.Point) > sqDistThreshold {
		i++
	}

	// collect consecutive waypoints into the operating frame until the plan
	// leaves the radius
	var window []referenceframe.PoseInFrame
	for ; i < len(tc.globalPlan); i++ {
		wp := tc.globalPlan[i]
		if spatialmath.SquaredDistance(robotInPlan.Pose.Point, wp.Pose.Point) > sqDistThreshold {
			break
		}
		window = append(window, referenceframe.PoseInFrame{
			Pose:  transform.Apply(wp.Pose),
			Frame: tc.operatingFrame,
			At:    transform.At,
		})
	}
	return window, nil
}

// prune drops the already-traversed prefix: every leading waypoint closer to
// the robot than the prune radius is removed from both the window and the
// stored global plan, stopping at the first waypoint outside that radius.
// The final waypoint is never pruned, it is the goal. Afterwards
// len(globalPlan) >= len(window) still holds.
func (tc *trajectoryController) prune(robot spatialmath.Pose, window []referenceframe.PoseInFrame) []referenceframe.PoseInFrame {
	n := 0
	for n < len(window)-1 &&
		spatialmath.SquaredDistance(robot.Point, window[n].Pose.Point) < pruneSqThreshold {
		n++
	}
	if n > len(tc.globalPlan) {
		n = len(tc.globalPlan)
	}
	tc.globalPlan = tc.globalPlan[n:]
	return window[n:]
}
