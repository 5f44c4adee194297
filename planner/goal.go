package planner

import (
	"math"

	"github.com/golang/geo/r2"

	"go.viam.com/localplanner/spatialmath"
)

// goalPositionReached reports whether the robot is within the position
// tolerance of the goal, boundary inclusive.
func (tc *trajectoryController) goalPositionReached(pose spatialmath.Pose, goal r2.Point) bool {
	return spatialmath.Distance(pose.Point, goal) <= tc.cfg.XYGoalTolerance
}

// goalOrientationReached reports whether the robot heading is within the
// orientation tolerance of the goal heading, by shortest angular distance.
func (tc *trajectoryController) goalOrientationReached(pose spatialmath.Pose, goalTheta float64) bool {
	return math.Abs(spatialmath.ShortestAngularDistance(pose.Theta, goalTheta)) <= tc.cfg.YawGoalTolerance
}

// stopped reports whether every component of the shared velocity estimate is
// below its stopped threshold.
func (tc *trajectoryController) stopped() bool {
	vel := tc.velocityEstimate()
	return math.Abs(vel.Angular) <= tc.cfg.RotStoppedVelocity &&
		math.Abs(vel.Linear.X) <= tc.cfg.TransStoppedVelocity &&
		math.Abs(vel.Linear.Y) <= tc.cfg.TransStoppedVelocity
}

// IsGoalReached reports whether the robot is at the goal position, facing the
// goal heading, and stopped. Transform failures are non-fatal: the check
// returns false and the caller retries next tick.
func (tc *trajectoryController) IsGoalReached() bool {
	tc.mu.Lock()
	defer tc.mu.Unlock()
	if !tc.initialized {
		tc.logger.Error(ErrUninitialized)
		return false
	}
	if len(tc.globalPlan) == 0 {
		tc.logger.Error(ErrEmptyPlan)
		return false
	}

	// the global goal is the last point in the global plan
	goal := tc.globalPlan[len(tc.globalPlan)-1]
	goalInOperating, err := tc.gateway.TransformPose(tc.operatingFrame, goal)
	if err != nil {
		tc.logger.Errorw("no transform available for the goal pose", "error", err)
		return false
	}

	pose, err := tc.provider.RobotPose()
	if err != nil {
		tc.logger.Errorw("could not get robot pose", "error", err)
		return false
	}

	return tc.goalPositionReached(pose.Pose, goalInOperating.Pose.Point) &&
		tc.goalOrientationReached(pose.Pose, goalInOperating.Pose.Theta) &&
		tc.stopped()
}
