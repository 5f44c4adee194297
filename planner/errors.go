package planner

import "github.com/pkg/errors"

var (
	// ErrUninitialized is returned by any operation invoked before Initialize.
	ErrUninitialized = errors.New("this controller has not been initialized, please call Initialize() before using it")

	// ErrEmptyPlan is returned when a tick would operate on a zero-length plan.
	ErrEmptyPlan = errors.New("received plan with zero length")

	// ErrInvalidCommand is returned when a synthesized stop or rotate command
	// was rejected by the trajectory evaluator.
	ErrInvalidCommand = errors.New("synthesized velocity command was rejected")

	// ErrNoFeasibleTrajectory is returned when the trajectory evaluator could
	// not find any feasible motion.
	ErrNoFeasibleTrajectory = errors.New("no feasible trajectory was found")
)
