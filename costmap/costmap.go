// Package costmap provides the planner's windowed view of the robot and its
// immediate surroundings.
package costmap

import (
	"go.viam.com/localplanner/referenceframe"
)

// A Provider supplies the occupancy window and robot pose the planner works
// against. Implementations own the live occupancy data; the planner only ever
// sees the working snapshot taken at the start of a tick.
type Provider interface {
	// RobotPose returns the robot's current pose in the operating frame.
	RobotPose() (referenceframe.PoseInFrame, error)

	// OperatingFrame is the frame the provider's window is expressed in.
	OperatingFrame() string

	// BaseFrame is the frame attached to the robot body.
	BaseFrame() string

	// SizeInCellsX and SizeInCellsY are the window extents in cells.
	SizeInCellsX() int
	SizeInCellsY() int

	// Resolution is the size of one cell in distance units.
	Resolution() float64

	// Snapshot copies the live occupancy data into the working copy used for
	// the current tick.
	Snapshot()

	// ClearRobotFootprint clears the live cells under the robot so its own
	// body is never scored as an obstacle.
	ClearRobotFootprint()
}
