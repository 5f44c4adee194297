package referenceframe

import (
	"math"
	"time"

	"github.com/golang/geo/r2"

	"go.viam.com/localplanner/spatialmath"
)

// A Transform is a planar rigid transform taking poses expressed in the
// source frame into the target frame, valid at the stamped time.
type Transform struct {
	Target      string
	Source      string
	Translation r2.Point
	Rotation    float64
	At          time.Time
}

// Apply expresses the given pose, assumed to be in the source frame, in the
// target frame.
func (t Transform) Apply(p spatialmath.Pose) spatialmath.Pose {
	sin, cos := math.Sincos(t.Rotation)
	return spatialmath.Pose{
		Point: r2.Point{
			X: cos*p.Point.X - sin*p.Point.Y + t.Translation.X,
			Y: sin*p.Point.X + cos*p.Point.Y + t.Translation.Y,
		},
		Theta: spatialmath.NormalizeAngle(p.Theta + t.Rotation),
	}
}

// Invert returns the transform taking poses the opposite way.
func (t Transform) Invert() Transform {
	sin, cos := math.Sincos(-t.Rotation)
	return Transform{
		Target:   t.Source,
		Source:   t.Target,
		Rotation: spatialmath.NormalizeAngle(-t.Rotation),
		Translation: r2.Point{
			X: -(cos*t.Translation.X - sin*t.Translation.Y),
			Y: -(sin*t.Translation.X + cos*t.Translation.Y),
		},
		At: t.At,
	}
}

// Compose returns the transform equivalent to applying other first and then t.
func (t Transform) Compose(other Transform) Transform {
	sin, cos := math.Sincos(t.Rotation)
	return Transform{
		Target:   t.Target,
		Source:   other.Source,
		Rotation: spatialmath.NormalizeAngle(t.Rotation + other.Rotation),
		Translation: r2.Point{
			X: cos*other.Translation.X - sin*other.Translation.Y + t.Translation.X,
			Y: sin*other.Translation.X + cos*other.Translation.Y + t.Translation.Y,
		},
		At: t.At,
	}
}
