// Package main runs the local planner against a simulated robot on a small
// occupancy grid and reports how the run went.
package main

import (
	"log"
	"math"
	"os"
	"time"

	"github.com/edaniels/golog"
	"github.com/golang/geo/r2"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"

	"go.viam.com/localplanner/costmap"
	"go.viam.com/localplanner/planner"
	"go.viam.com/localplanner/referenceframe"
	"go.viam.com/localplanner/spatialmath"
	"go.viam.com/localplanner/trajectory"
	"go.viam.com/localplanner/utils"
	"go.viam.com/localplanner/visualization"
)

const (
	operatingFrame = "odom"
	baseFrame      = "base_link"

	tickPeriod = 100 * time.Millisecond
)

func main() {
	app := &cli.App{
		Name:  "planner-sim",
		Usage: "drive a simulated robot along a straight plan with the local planner",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "controller",
				Value: planner.TrajectoryControllerName,
				Usage: "registered controller to use",
			},
			&cli.Float64Flag{
				Name:  "distance",
				Value: 5.0,
				Usage: "goal distance along the x axis, in meters",
			},
			&cli.IntFlag{
				Name:  "max-ticks",
				Value: 1200,
				Usage: "give up after this many control ticks",
			},
			&cli.Float64SliceFlag{
				Name:  "obstacle",
				Usage: "x,y of an obstacle cell to mark; may repeat",
			},
			&cli.PathFlag{
				Name:  "render",
				Usage: "write a PNG of the final global and local paths to `FILE`",
			},
			&cli.BoolFlag{
				Name:    "debug",
				Aliases: []string{"vvv"},
				Usage:   "enable debug logging",
			},
		},
		Action: runSim,
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func runSim(c *cli.Context) error {
	var logger golog.Logger
	if c.Bool("debug") {
		logger = golog.NewDebugLogger("planner-sim")
	} else {
		logger = golog.NewDevelopmentLogger("planner-sim")
	}

	factory, ok := planner.Lookup(c.String("controller"))
	if !ok {
		return errors.Errorf(
			"no controller named %q, have %v",
			c.String("controller"), planner.RegisteredNames(),
		)
	}

	distance := c.Float64("distance")
	if distance <= 0 {
		return errors.New("distance must be positive")
	}

	fs := referenceframe.NewFrameSystem("sim", nil)
	if err := fs.AddFrame(operatingFrame, referenceframe.World, r2.Point{}, 0); err != nil {
		return err
	}
	if err := fs.AddFrame(baseFrame, operatingFrame, r2.Point{}, 0); err != nil {
		return err
	}

	// wide enough that the whole plan fits in the windowing radius
	halfWidth := distance + 2
	cells := int(2 * halfWidth / 0.1)
	grid := costmap.NewGrid(
		fs,
		operatingFrame, baseFrame,
		cells, cells,
		0.1,
		r2.Point{X: -halfWidth, Y: -halfWidth},
		0.3,
		logger,
	)
	for _, obstacle := range obstaclePoints(c.Float64Slice("obstacle")) {
		grid.MarkObstacle(obstacle)
		logger.Infow("obstacle placed", "x", obstacle.X, "y", obstacle.Y)
	}

	evaluator := trajectory.NewLineEvaluator(grid, trajectory.LineEvaluatorConfig{
		SimTime:          1.0,
		SimGranularity:   0.025,
		VXSamples:        3,
		MaxVelX:          0.5,
		MinVelX:          0.1,
		MaxVelTheta:      1.0,
		HeadingLookahead: 0.325,
	}, logger)

	ctrl := factory(evaluator, logger)
	defer func() {
		if err := ctrl.Close(); err != nil {
			logger.Errorw("error closing controller", "error", err)
		}
	}()

	if err := ctrl.Initialize("planner-sim", fs, grid, utils.AttributeMap{}); err != nil {
		return err
	}

	var writer *visualization.ImageWriter
	if c.Path("render") != "" {
		writer = visualization.NewImageWriter(800, 800, 400/halfWidth)
		ctrl.SetPathSinks(writer, writer)
	} else {
		sink := &visualization.LogSink{Logger: logger}
		ctrl.SetPathSinks(sink, sink)
	}

	if err := ctrl.SetPlan(straightPlan(distance)); err != nil {
		return err
	}

	robot := spatialmath.NewPose(0, 0, 0)
	start := time.Now()

	maxTicks := c.Int("max-ticks")
	var tick int
	for tick = 0; tick < maxTicks; tick++ {
		if ctrl.IsGoalReached() {
			break
		}
		cmd, err := ctrl.ComputeVelocityCommands()
		if err != nil {
			logger.Warnw("tick produced no command", "tick", tick, "error", err)
			cmd = spatialmath.NewVelocity(0, 0, 0)
		}
		robot = integrate(robot, cmd, tickPeriod.Seconds())
		ctrl.UpdateVelocity(cmd)
		if err := fs.UpdateFrame(baseFrame, robot.Point, robot.Theta); err != nil {
			return err
		}
	}

	if !ctrl.IsGoalReached() {
		return errors.Errorf("goal not reached after %d ticks, robot at (%.2f, %.2f)",
			tick, robot.Point.X, robot.Point.Y)
	}
	logger.Infow(
		"goal reached",
		"ticks", tick,
		"elapsed", time.Since(start),
		"x", robot.Point.X,
		"y", robot.Point.Y,
		"theta", robot.Theta,
	)

	if writer != nil {
		if err := writer.Render(c.Path("render")); err != nil {
			return err
		}
		logger.Infow("paths rendered", "file", c.Path("render"))
	}
	return nil
}

// straightPlan lays waypoints every quarter meter along the x axis out to the
// given distance, ending exactly at the goal.
func straightPlan(distance float64) []referenceframe.PoseInFrame {
	var plan []referenceframe.PoseInFrame
	for x := 0.0; x < distance; x += 0.25 {
		plan = append(plan, referenceframe.NewPoseInFrame(
			operatingFrame, spatialmath.NewPose(x, 0, 0), time.Time{}))
	}
	plan = append(plan, referenceframe.NewPoseInFrame(
		operatingFrame, spatialmath.NewPose(distance, 0, 0), time.Time{}))
	return plan
}

// obstaclePoints pairs up the flat x,y flag values, dropping a trailing
// unpaired value.
func obstaclePoints(coords []float64) []r2.Point {
	var pts []r2.Point
	for i := 0; i+1 < len(coords); i += 2 {
		pts = append(pts, r2.Point{X: coords[i], Y: coords[i+1]})
	}
	return pts
}

// integrate advances the robot pose by one tick of the given body-frame
// command.
func integrate(pose spatialmath.Pose, cmd spatialmath.Velocity, dt float64) spatialmath.Pose {
	sin, cos := math.Sincos(pose.Theta)
	return spatialmath.NewPose(
		pose.Point.X+(cmd.Linear.X*cos-cmd.Linear.Y*sin)*dt,
		pose.Point.Y+(cmd.Linear.X*sin+cmd.Linear.Y*cos)*dt,
		spatialmath.NormalizeAngle(pose.Theta+cmd.Angular*dt),
	)
}
