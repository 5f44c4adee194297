// Package planner contains the local motion controller: it windows a global
// plan into the robot's operating frame, decides whether the robot has
// arrived, and synthesizes kinematically feasible velocity commands.
package planner

import (
	"context"
	"sync"
	"time"

	"github.com/edaniels/golog"
	"github.com/pkg/errors"

	"go.viam.com/localplanner/costmap"
	"go.viam.com/localplanner/referenceframe"
	"go.viam.com/localplanner/spatialmath"
	"go.viam.com/localplanner/trajectory"
	"go.viam.com/localplanner/utils"
	"go.viam.com/localplanner/visualization"
)

// A Controller turns a global plan and the robot's live state into velocity
// commands, one per tick.
type Controller interface {
	// Initialize performs one-time setup. Calling it twice warns and does
	// nothing.
	Initialize(
		name string,
		gateway referenceframe.TransformGateway,
		provider costmap.Provider,
		attributes utils.AttributeMap,
	) error

	// SetPlan replaces the stored global plan wholesale.
	SetPlan(plan []referenceframe.PoseInFrame) error

	// ComputeVelocityCommands runs one control tick and returns the command
	// to drive, or an error when the tick could produce none.
	ComputeVelocityCommands() (spatialmath.Velocity, error)

	// IsGoalReached reports whether the robot is at the goal, facing the goal
	// heading, and stopped.
	IsGoalReached() bool

	// UpdateVelocity records the most recent odometry sample;
	// last-writer-wins.
	UpdateVelocity(vel spatialmath.Velocity)

	// WatchVelocity consumes the given source at its own rate until the
	// context is canceled or the controller is closed.
	WatchVelocity(ctx context.Context, src VelocitySource, period time.Duration)

	// SetPathSinks installs the sinks the windowed global plan and local
	// trajectory are published to. Either may be nil.
	SetPathSinks(global, local visualization.PathSink)

	// Close stops any background workers.
	Close() error
}

// A VelocitySource produces the robot's latest measured velocity. It stands
// in for an odometry feed.
type VelocitySource interface {
	Velocity(ctx context.Context) (spatialmath.Velocity, error)
}

// A Factory constructs a controller around the given trajectory evaluator.
type Factory func(evaluator trajectory.Evaluator, logger golog.Logger) Controller

var (
	registryMu sync.RWMutex
	registry   = map[string]Factory{}
)

// Register makes a controller factory available to lookup under the given
// name. Registering the same name twice panics.
func Register(name string, factory Factory) {
	registryMu.Lock()
	defer registryMu.Unlock()
	if _, exists := registry[name]; exists {
		panic(errors.Errorf("trying to register two controllers with the same name %q", name))
	}
	registry[name] = factory
}

// Lookup returns the factory registered under the given name, if any.
func Lookup(name string) (Factory, bool) {
	registryMu.RLock()
	defer registryMu.RUnlock()
	factory, ok := registry[name]
	return factory, ok
}

// RegisteredNames returns the names of all registered controller factories.
func RegisteredNames() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	return names
}
