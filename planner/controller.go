package planner

import (
	"context"
	"sync"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/edaniels/golog"
	goutils "go.viam.com/utils"

	"go.viam.com/localplanner/costmap"
	"go.viam.com/localplanner/referenceframe"
	"go.viam.com/localplanner/spatialmath"
	"go.viam.com/localplanner/trajectory"
	"go.viam.com/localplanner/utils"
	"go.viam.com/localplanner/visualization"
)

// TrajectoryControllerName is the name the trajectory controller registers
// itself under.
const TrajectoryControllerName = "trajectory"

func init() {
	Register(TrajectoryControllerName, func(evaluator trajectory.Evaluator, logger golog.Logger) Controller {
		return NewTrajectoryController(evaluator, logger)
	})
}

// trajectoryController windows the global plan, detects arrival, and
// synthesizes stop and rotate-in-place commands, delegating full trajectory
// search to its evaluator.
type trajectoryController struct {
	// mu guards initialization state, the stored plan, and the sticky
	// rotation flag; held for the whole of every tick.
	mu sync.Mutex
	// odomMu guards the shared velocity estimate only. It is always a named,
	// scope-bound acquisition so odometry writes and tick reads truly exclude
	// each other.
	odomMu sync.Mutex

	logger    golog.Logger
	clock     clock.Clock
	evaluator trajectory.Evaluator

	initialized    bool
	name           string
	gateway        referenceframe.TransformGateway
	provider       costmap.Provider
	cfg            Config
	operatingFrame string
	baseFrame      string

	globalPlan     []referenceframe.PoseInFrame
	rotatingToGoal bool

	odom spatialmath.Velocity

	globalSink visualization.PathSink
	localSink  visualization.PathSink

	cancel                  context.CancelFunc
	activeBackgroundWorkers sync.WaitGroup
}

// NewTrajectoryController returns an uninitialized controller around the
// given evaluator.
func NewTrajectoryController(evaluator trajectory.Evaluator, logger golog.Logger) Controller {
	return &trajectoryController{
		logger:    logger,
		clock:     clock.New(),
		evaluator: evaluator,
	}
}

// Initialize performs one-time setup from the given attributes. A second call
// warns and does nothing.
func (tc *trajectoryController) Initialize(
	name string,
	gateway referenceframe.TransformGateway,
	provider costmap.Provider,
	attributes utils.AttributeMap,
) error {
	tc.mu.Lock()
	defer tc.mu.Unlock()
	if tc.initialized {
		tc.logger.Warn("this controller has already been initialized, doing nothing")
		return nil
	}
	cfg, err := configFromAttributes(attributes, tc.logger)
	if err != nil {
		return err
	}
	tc.name = name
	tc.gateway = gateway
	tc.provider = provider
	tc.cfg = cfg
	tc.operatingFrame = provider.OperatingFrame()
	tc.baseFrame = provider.BaseFrame()
	tc.rotatingToGoal = false
	tc.initialized = true
	return nil
}

// SetPlan replaces the stored global plan wholesale. A fresh plan invalidates
// any in-progress final rotation.
func (tc *trajectoryController) SetPlan(plan []referenceframe.PoseInFrame) error {
	tc.mu.Lock()
	defer tc.mu.Unlock()
	if !tc.initialized {
		tc.logger.Error(ErrUninitialized)
		return ErrUninitialized
	}
	tc.globalPlan = make([]referenceframe.PoseInFrame, len(plan))
	copy(tc.globalPlan, plan)
	tc.rotatingToGoal = false
	return nil
}

// UpdateVelocity records the most recent odometry sample; last-writer-wins.
func (tc *trajectoryController) UpdateVelocity(vel spatialmath.Velocity) {
	tc.odomMu.Lock()
	defer tc.odomMu.Unlock()
	tc.odom = vel
}

// velocityEstimate snapshots the shared velocity estimate.
func (tc *trajectoryController) velocityEstimate() spatialmath.Velocity {
	tc.odomMu.Lock()
	defer tc.odomMu.Unlock()
	return tc.odom
}

// WatchVelocity consumes the given source at the given period until the
// context is canceled or the controller is closed. A repeat call stops the
// previous watcher first; only one runs at a time.
func (tc *trajectoryController) WatchVelocity(ctx context.Context, src VelocitySource, period time.Duration) {
	ctx, cancel := context.WithCancel(ctx)
	tc.mu.Lock()
	if tc.cancel != nil {
		tc.cancel()
	}
	tc.cancel = cancel
	tc.mu.Unlock()
	tc.activeBackgroundWorkers.Add(1)
	goutils.ManagedGo(func() {
		ticker := tc.clock.Ticker(period)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
			}
			vel, err := src.Velocity(ctx)
			if err != nil {
				tc.logger.Debugw("could not read velocity", "error", err)
				continue
			}
			tc.UpdateVelocity(vel)
		}
	}, tc.activeBackgroundWorkers.Done)
}

// SetPathSinks installs the visualization sinks the controller publishes the
// windowed global plan and local trajectory to. Either may be nil.
func (tc *trajectoryController) SetPathSinks(global, local visualization.PathSink) {
	tc.mu.Lock()
	defer tc.mu.Unlock()
	tc.globalSink = global
	tc.localSink = local
}

// Close stops any background workers.
func (tc *trajectoryController) Close() error {
	tc.mu.Lock()
	cancel := tc.cancel
	tc.mu.Unlock()
	if cancel != nil {
		cancel()
	}
	tc.activeBackgroundWorkers.Wait()
	return nil
}
