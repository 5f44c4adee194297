package costmap

import (
	"sync"
	"time"

	"github.com/edaniels/golog"
	"github.com/golang/geo/r2"
	"github.com/pkg/errors"

	"go.viam.com/localplanner/referenceframe"
	"go.viam.com/localplanner/spatialmath"
)

// A Grid is an in-memory occupancy window centered on a fixed origin in the
// operating frame. The simulator and tests use it as their Provider; real
// deployments plug in their own map layer.
type Grid struct {
	mu             sync.Mutex
	gateway        referenceframe.TransformGateway
	operatingFrame string
	baseFrame      string
	cellsX, cellsY int
	resolution     float64
	origin         r2.Point
	footprint      float64
	live           []bool
	working        []bool
	logger         golog.Logger
}

// NewGrid returns an empty occupancy grid whose lower-left corner sits at the
// given origin in the operating frame. The robot pose is resolved through the
// gateway from the base frame.
func NewGrid(
	gateway referenceframe.TransformGateway,
	operatingFrame, baseFrame string,
	cellsX, cellsY int,
	resolution float64,
	origin r2.Point,
	footprintRadius float64,
	logger golog.Logger,
) *Grid {
	return &Grid{
		gateway:        gateway,
		operatingFrame: operatingFrame,
		baseFrame:      baseFrame,
		cellsX:         cellsX,
		cellsY:         cellsY,
		resolution:     resolution,
		origin:         origin,
		footprint:      footprintRadius,
		live:           make([]bool, cellsX*cellsY),
		working:        make([]bool, cellsX*cellsY),
		logger:         logger,
	}
}

// RobotPose returns the robot's current pose in the operating frame.
func (g *Grid) RobotPose() (referenceframe.PoseInFrame, error) {
	pose, err := g.gateway.TransformPose(
		g.operatingFrame,
		referenceframe.NewPoseInFrame(g.baseFrame, spatialmath.Pose{}, time.Time{}),
	)
	if err != nil {
		return referenceframe.PoseInFrame{}, errors.Wrap(err, "could not get robot pose")
	}
	return pose, nil
}

// OperatingFrame returns the frame the window is expressed in.
func (g *Grid) OperatingFrame() string {
	return g.operatingFrame
}

// BaseFrame returns the frame attached to the robot body.
func (g *Grid) BaseFrame() string {
	return g.baseFrame
}

// SizeInCellsX returns the window extent along x in cells.
func (g *Grid) SizeInCellsX() int {
	return g.cellsX
}

// SizeInCellsY returns the window extent along y in cells.
func (g *Grid) SizeInCellsY() int {
	return g.cellsY
}

// Resolution returns the size of one cell.
func (g *Grid) Resolution() float64 {
	return g.resolution
}

func (g *Grid) index(pt r2.Point) (int, bool) {
	cx := int((pt.X - g.origin.X) / g.resolution)
	cy := int((pt.Y - g.origin.Y) / g.resolution)
	if cx < 0 || cx >= g.cellsX || cy < 0 || cy >= g.cellsY {
		return 0, false
	}
	return cy*g.cellsX + cx, true
}

// MarkObstacle marks the live cell containing the given point as occupied.
// Points outside the window are ignored.
func (g *Grid) MarkObstacle(pt r2.Point) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if idx, ok := g.index(pt); ok {
		g.live[idx] = true
	}
}

// Occupied reports whether the working copy marks the cell containing the
// given point as occupied. Points outside the window are considered free.
func (g *Grid) Occupied(pt r2.Point) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	idx, ok := g.index(pt)
	return ok && g.working[idx]
}

// Snapshot copies the live occupancy data into the working copy.
func (g *Grid) Snapshot() {
	g.mu.Lock()
	defer g.mu.Unlock()
	copy(g.working, g.live)
}

// ClearRobotFootprint clears live cells within the footprint radius of the
// robot. A failed pose lookup leaves the map untouched.
func (g *Grid) ClearRobotFootprint() {
	pose, err := g.RobotPose()
	if err != nil {
		g.logger.Debugw("could not clear robot footprint", "error", err)
		return
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	sqRadius := g.footprint * g.footprint
	for cy := 0; cy < g.cellsY; cy++ {
		for cx := 0; cx < g.cellsX; cx++ {
			center := r2.Point{
				X: g.origin.X + (float64(cx)+0.5)*g.resolution,
				Y: g.origin.Y + (float64(cy)+0.5)*g.resolution,
			}
			if spatialmath.SquaredDistance(center, pose.Pose.Point) <= sqRadius {
				g.live[cy*g.cellsX+cx] = false
			}
		}
	}
}
