package planner

import (
	"go.viam.com/localplanner/referenceframe"
	"go.viam.com/localplanner/spatialmath"
	"go.viam.com/localplanner/visualization"
)

var (
	globalPlanColor = visualization.RGBA{G: 1}
	localPlanColor  = visualization.RGBA{B: 1}
)

// ComputeVelocityCommands runs one control tick: it windows the plan, decides
// between goal-approach maneuvers and full trajectory search, and returns the
// command to drive. Every failure is contained within the tick.
func (tc *trajectoryController) ComputeVelocityCommands() (spatialmath.Velocity, error) {
	tc.mu.Lock()
	defer tc.mu.Unlock()

	if !tc.initialized {
		tc.logger.Error(ErrUninitialized)
		return spatialmath.Velocity{}, ErrUninitialized
	}

	robot, err := tc.provider.RobotPose()
	if err != nil {
		return spatialmath.Velocity{}, err
	}

	window, err := tc.transformGlobalPlan()
	if err != nil {
		tc.logger.Warnw("could not transform the global plan to the frame of the controller", "error", err)
		return spatialmath.Velocity{}, err
	}

	if tc.cfg.PrunePlan {
		window = tc.prune(robot.Pose, window)
	}

	// refresh the occupancy snapshot the evaluator scores against
	tc.provider.ClearRobotFootprint()
	tc.provider.Snapshot()

	robotVel := tc.velocityEstimate()

	if len(window) == 0 {
		return spatialmath.Velocity{}, ErrEmptyPlan
	}

	// the goal is the last point of the window
	goal := window[len(window)-1]
	goalTheta := goal.Pose.Theta

	if tc.goalPositionReached(robot.Pose, goal.Pose.Point) {
		var cmd spatialmath.Velocity
		if tc.goalOrientationReached(robot.Pose, goalTheta) {
			tc.rotatingToGoal = false
		} else {
			// keep the evaluator's path and goal distance fields current even
			// though its search result is unused here
			tc.evaluator.UpdatePlan(window)
			tc.evaluator.FindBestPath(robot.Pose, robotVel)

			if !tc.rotatingToGoal && !tc.stopped() {
				cmd, err = tc.stopWithAccLimits(robot.Pose, robotVel)
			} else {
				tc.rotatingToGoal = true
				cmd, err = tc.rotateToGoal(robot.Pose, robotVel, goalTheta)
			}
			if err != nil {
				tc.publishPlans(window, nil)
				return spatialmath.Velocity{}, err
			}
		}
		// the local plan is empty, the controller is not driving the path
		tc.publishPlans(window, nil)
		return cmd, nil
	}

	tc.evaluator.UpdatePlan(window)
	best, driveCmd := tc.evaluator.FindBestPath(robot.Pose, robotVel)
	if best.Rejected() {
		tc.publishPlans(window, nil)
		return spatialmath.Velocity{}, ErrNoFeasibleTrajectory
	}

	localPlan := make([]referenceframe.PoseInFrame, 0, len(best.Points))
	now := tc.clock.Now()
	for _, pt := range best.Points {
		localPlan = append(localPlan, referenceframe.PoseInFrame{
			Pose:  spatialmath.NewPose(pt.X, pt.Y, pt.Theta),
			Frame: tc.operatingFrame,
			At:    now,
		})
	}
	tc.publishPlans(window, localPlan)
	return driveCmd, nil
}

// publishPlans hands the windowed global plan and the local trajectory to the
// installed sinks. Empty paths are not published.
func (tc *trajectoryController) publishPlans(global, local []referenceframe.PoseInFrame) {
	tc.publish(tc.globalSink, global, globalPlanColor)
	tc.publish(tc.localSink, local, localPlanColor)
}

func (tc *trajectoryController) publish(sink visualization.PathSink, plan []referenceframe.PoseInFrame, color visualization.RGBA) {
	if sink == nil || len(plan) == 0 {
		return
	}
	poses := make([]spatialmath.Pose, 0, len(plan))
	for _, wp := range plan {
		poses = append(poses, wp.Pose)
	}
	sink.PublishPath(visualization.Path{
		Frame: tc.operatingFrame,
		At:    plan[0].At,
		Poses: poses,
		Color: color,
	})
}
