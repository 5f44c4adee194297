package planner

import (
	"math"

	"github.com/golang/geo/r2"

	"go.viam.com/localplanner/spatialmath"
	"go.viam.com/localplanner/utils"
)

// controlPeriod is the time step assumed when applying acceleration limits,
// one tenth of a time unit, consistent with the period the trajectory
// evaluator simulates at.
const controlPeriod = 0.1

// stopWithAccLimits decelerates every axis toward zero as hard as the
// acceleration limits allow. The candidate is validated by the evaluator; a
// rejection yields ErrInvalidCommand and a zero command.
func (tc *trajectoryController) stopWithAccLimits(pose spatialmath.Pose, current spatialmath.Velocity) (spatialmath.Velocity, error) {
	vx := utils.Sign(current.Linear.X) * math.Max(0, math.Abs(current.Linear.X)-tc.cfg.AccLimX*controlPeriod)
	vy := utils.Sign(current.Linear.Y) * math.Max(0, math.Abs(current.Linear.Y)-tc.cfg.AccLimY*controlPeriod)
	vth := utils.Sign(current.Angular) * math.Max(0, math.Abs(current.Angular)-tc.cfg.AccLimTheta*controlPeriod)

	candidate := spatialmath.Velocity{Linear: r2.Point{X: vx, Y: vy}, Angular: vth}
	if !tc.evaluator.CheckTrajectory(pose, current, candidate) {
		return spatialmath.Velocity{}, ErrInvalidCommand
	}
	tc.logger.Debugf("slowing down, using vx, vy, vth: %.2f, %.2f, %.2f", vx, vy, vth)
	return candidate, nil
}

// rotateToGoal synthesizes an in-place rotation toward the goal heading. The
// angular speed is kept between the minimum in-place speed and the configured
// maximum, within one acceleration step of the current speed, and below the
// speed that still allows an exact stop at the goal heading.
func (tc *trajectoryController) rotateToGoal(pose spatialmath.Pose, current spatialmath.Velocity, goalTheta float64) (spatialmath.Velocity, error) {
	angDiff := spatialmath.ShortestAngularDistance(pose.Theta, goalTheta)

	var vTheta float64
	if angDiff > 0 {
		vTheta = math.Min(tc.cfg.MaxVelTheta(), math.Max(tc.cfg.MinInPlaceRotationalVel, angDiff))
	} else {
		vTheta = math.Max(tc.cfg.MinVelTheta(), math.Min(-tc.cfg.MinInPlaceRotationalVel, angDiff))
	}

	// take the acceleration limits of the robot into account
	maxAccVel := math.Abs(current.Angular) + tc.cfg.AccLimTheta*controlPeriod
	minAccVel := math.Abs(current.Angular) - tc.cfg.AccLimTheta*controlPeriod
	vTheta = utils.Sign(vTheta) * math.Min(math.Max(math.Abs(vTheta), minAccVel), maxAccVel)

	// never faster than the speed that still stops exactly at the goal heading
	maxSpeedToStop := math.Sqrt(2 * tc.cfg.AccLimTheta * math.Abs(angDiff))
	vTheta = utils.Sign(vTheta) * math.Min(maxSpeedToStop, math.Abs(vTheta))

	candidate := spatialmath.Velocity{Angular: vTheta}
	if !tc.evaluator.CheckTrajectory(pose, current, candidate) {
		return spatialmath.Velocity{}, ErrInvalidCommand
	}
	tc.logger.Debugf("moving to desired goal orientation, th cmd: %.2f", vTheta)
	return candidate, nil
}
