// Package referenceframe describes the reference frames the planner reasons
// in and how poses move between them.
package referenceframe

import (
	"time"

	"go.viam.com/localplanner/spatialmath"
)

// World is the string "world", but made into an exported constant.
const World = "world"

// A PoseInFrame is a pose tagged with the frame it is expressed in and the
// time it was observed. It is immutable once read for a given tick.
type PoseInFrame struct {
	Pose  spatialmath.Pose
	Frame string
	At    time.Time
}

// NewPoseInFrame returns a stamped pose in the given frame.
func NewPoseInFrame(frame string, pose spatialmath.Pose, at time.Time) PoseInFrame {
	return PoseInFrame{Pose: pose, Frame: frame, At: at}
}

// A TransformGateway resolves poses expressed in one frame into another at a
// given time. Lookups may fail when no transform is known, when the frame
// tree is split, or when the requested time is outside recorded history.
type TransformGateway interface {
	// LookupTransform returns the transform taking poses expressed in the
	// source frame into the target frame. A zero time means latest available.
	LookupTransform(target, source string, at time.Time) (Transform, error)

	// TransformPose expresses the given stamped pose in the target frame.
	TransformPose(target string, pose PoseInFrame) (PoseInFrame, error)
}
