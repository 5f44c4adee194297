// Package spatialmath contains the planar geometry the local planner reasons in.
package spatialmath

import (
	"math"

	"github.com/golang/geo/r2"

	"go.viam.com/localplanner/utils"
)

// A Pose is a position and heading on the plane.
type Pose struct {
	Point r2.Point
	Theta float64
}

// NewPose returns a pose at the given position with the given heading.
func NewPose(x, y, theta float64) Pose {
	return Pose{Point: r2.Point{X: x, Y: y}, Theta: theta}
}

// A Velocity is a planar body velocity, linear components plus a rotation rate.
type Velocity struct {
	Linear  r2.Point
	Angular float64
}

// NewVelocity returns a velocity with the given linear and angular components.
func NewVelocity(x, y, theta float64) Velocity {
	return Velocity{Linear: r2.Point{X: x, Y: y}, Angular: theta}
}

// SquaredDistance returns the squared Euclidean distance between two points.
func SquaredDistance(a, b r2.Point) float64 {
	return utils.Square(a.X-b.X) + utils.Square(a.Y-b.Y)
}

// Distance returns the Euclidean distance between two points.
func Distance(a, b r2.Point) float64 {
	return math.Sqrt(SquaredDistance(a, b))
}
