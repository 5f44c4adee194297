// Package visualization publishes planner paths for display.
package visualization

import (
	"time"

	"github.com/edaniels/golog"

	"go.viam.com/localplanner/spatialmath"
)

// RGBA is a rendering color with components in [0, 1].
type RGBA struct {
	R, G, B, A float64
}

// A Path is a timestamped, ordered sequence of poses in a single frame,
// tagged with a rendering color. It is purely observational and not part of
// the control contract.
type Path struct {
	Frame string
	At    time.Time
	Poses []spatialmath.Pose
	Color RGBA
}

// A PathSink consumes published paths.
type PathSink interface {
	PublishPath(path Path)
}

// A LogSink logs each published path at debug level.
type LogSink struct {
	Logger golog.Logger
}

// PublishPath implements PathSink.
func (s *LogSink) PublishPath(path Path) {
	s.Logger.Debugw(
		"path published",
		"frame", path.Frame,
		"poses", len(path.Poses),
		"color", path.Color,
	)
}
