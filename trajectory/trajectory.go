// Package trajectory defines candidate short-horizon motions and the
// evaluator that scores them against live obstacle data.
package trajectory

import (
	"github.com/golang/geo/r2"

	"go.viam.com/localplanner/referenceframe"
	"go.viam.com/localplanner/spatialmath"
)

// A Point is a sampled pose along a candidate trajectory, in the operating frame.
type Point struct {
	X, Y, Theta float64
}

// A Trajectory is a scored candidate motion. A negative cost is the rejection
// sentinel: no feasible motion was found.
type Trajectory struct {
	Velocity spatialmath.Velocity
	Points   []Point
	Cost     float64
}

// RejectionCost marks a trajectory as infeasible.
const RejectionCost = -1.0

// Rejected reports whether the trajectory carries the rejection sentinel.
func (t Trajectory) Rejected() bool {
	return t.Cost < 0
}

// An Evaluator scores and validates candidate velocities against live
// obstacle data. The planner treats it as an opaque collaborator.
type Evaluator interface {
	// UpdatePlan replaces the path the evaluator scores against, keeping its
	// internal path and goal distance fields current.
	UpdatePlan(window []referenceframe.PoseInFrame)

	// CheckTrajectory reports whether the candidate velocity is feasible from
	// the given pose and current velocity.
	CheckTrajectory(pose spatialmath.Pose, current, candidate spatialmath.Velocity) bool

	// FindBestPath returns the best-scoring trajectory and the drive command
	// that produces it. The returned trajectory has a negative cost when no
	// feasible motion exists.
	FindBestPath(pose spatialmath.Pose, current spatialmath.Velocity) (Trajectory, spatialmath.Velocity)
}

// Occupancy reports whether a point in the operating frame is blocked.
type Occupancy interface {
	Occupied(pt r2.Point) bool
}
