package trajectory

import (
	"math"
	"sync"

	"github.com/edaniels/golog"
	"github.com/golang/geo/r2"
	"gonum.org/v1/gonum/floats"

	"go.viam.com/localplanner/referenceframe"
	"go.viam.com/localplanner/spatialmath"
	"go.viam.com/localplanner/utils"
)

// LineEvaluatorConfig holds the sampling parameters of a LineEvaluator.
type LineEvaluatorConfig struct {
	SimTime          float64
	SimGranularity   float64
	VXSamples        int
	MaxVelX          float64
	MinVelX          float64
	MaxVelTheta      float64
	HeadingLookahead float64
}

// A LineEvaluator is a minimal plan-following Evaluator used by the simulator
// and tests. It forward-simulates constant-velocity arcs and rejects any arc
// that crosses occupied space. Production deployments score full velocity
// sample grids; this one only drives at the plan.
type LineEvaluator struct {
	mu     sync.Mutex
	occ    Occupancy
	cfg    LineEvaluatorConfig
	plan   []referenceframe.PoseInFrame
	logger golog.Logger
}

// NewLineEvaluator returns a line evaluator checking candidates against the
// given occupancy view. A nil occupancy accepts every candidate.
func NewLineEvaluator(occ Occupancy, cfg LineEvaluatorConfig, logger golog.Logger) *LineEvaluator {
	if cfg.SimTime <= 0 {
		cfg.SimTime = 1.0
	}
	if cfg.SimGranularity <= 0 {
		cfg.SimGranularity = 0.025
	}
	if cfg.VXSamples < 2 {
		cfg.VXSamples = 3
	}
	return &LineEvaluator{occ: occ, cfg: cfg, logger: logger}
}

// UpdatePlan replaces the path the evaluator drives toward.
func (le *LineEvaluator) UpdatePlan(window []referenceframe.PoseInFrame) {
	le.mu.Lock()
	defer le.mu.Unlock()
	le.plan = make([]referenceframe.PoseInFrame, len(window))
	copy(le.plan, window)
}

// simulate rolls the candidate velocity forward from the given pose and
// reports the sampled points and whether they all stay in free space.
func (le *LineEvaluator) simulate(pose spatialmath.Pose, candidate spatialmath.Velocity) ([]Point, bool) {
	steps := int(le.cfg.SimTime/le.cfg.SimGranularity) + 1
	if steps < 2 {
		steps = 2
	}
	times := floats.Span(make([]float64, steps), 0, le.cfg.SimTime)

	x, y, theta := pose.Point.X, pose.Point.Y, pose.Theta
	points := make([]Point, 0, steps)
	prev := 0.0
	for _, ts := range times {
		dt := ts - prev
		prev = ts
		sin, cos := math.Sincos(theta)
		x += (candidate.Linear.X*cos - candidate.Linear.Y*sin) * dt
		y += (candidate.Linear.X*sin + candidate.Linear.Y*cos) * dt
		theta = spatialmath.NormalizeAngle(theta + candidate.Angular*dt)
		points = append(points, Point{X: x, Y: y, Theta: theta})
		if le.occ != nil && le.occ.Occupied(r2.Point{X: x, Y: y}) {
			return points, false
		}
	}
	return points, true
}

// CheckTrajectory reports whether the candidate velocity is feasible from the
// given state.
func (le *LineEvaluator) CheckTrajectory(pose spatialmath.Pose, current, candidate spatialmath.Velocity) bool {
	_, valid := le.simulate(pose, candidate)
	return valid
}

// target returns the plan point the evaluator steers toward: the first point
// beyond the heading lookahead, or the last point of the plan.
func (le *LineEvaluator) target(pose spatialmath.Pose) (referenceframe.PoseInFrame, bool) {
	if len(le.plan) == 0 {
		return referenceframe.PoseInFrame{}, false
	}
	lookahead := utils.Square(le.cfg.HeadingLookahead)
	for _, wp := range le.plan {
		if spatialmath.SquaredDistance(pose.Point, wp.Pose.Point) > lookahead {
			return wp, true
		}
	}
	return le.plan[len(le.plan)-1], true
}

// FindBestPath steers at the plan, trying progressively slower forward speeds
// until one simulates collision-free. The cost of the returned trajectory is
// the remaining distance to the plan's last point.
func (le *LineEvaluator) FindBestPath(pose spatialmath.Pose, current spatialmath.Velocity) (Trajectory, spatialmath.Velocity) {
	le.mu.Lock()
	defer le.mu.Unlock()

	target, ok := le.target(pose)
	if !ok {
		return Trajectory{Cost: RejectionCost}, spatialmath.Velocity{}
	}
	goal := le.plan[len(le.plan)-1]

	headingErr := spatialmath.ShortestAngularDistance(
		pose.Theta,
		math.Atan2(target.Pose.Point.Y-pose.Point.Y, target.Pose.Point.X-pose.Point.X),
	)
	omega := utils.Clamp(headingErr, -le.cfg.MaxVelTheta, le.cfg.MaxVelTheta)

	speeds := floats.Span(make([]float64, le.cfg.VXSamples), le.cfg.MaxVelX, math.Max(le.cfg.MinVelX, 0))
	for _, speed := range speeds {
		// slow down sharply when pointed away from the target
		candidate := spatialmath.Velocity{
			Linear:  r2.Point{X: speed * math.Max(0, math.Cos(headingErr))},
			Angular: omega,
		}
		points, valid := le.simulate(pose, candidate)
		if !valid {
			continue
		}
		end := points[len(points)-1]
		cost := spatialmath.Distance(r2.Point{X: end.X, Y: end.Y}, goal.Pose.Point)
		return Trajectory{Velocity: candidate, Points: points, Cost: cost}, candidate
	}
	le.logger.Debug("all sampled speeds were infeasible")
	return Trajectory{Cost: RejectionCost}, spatialmath.Velocity{}
}
