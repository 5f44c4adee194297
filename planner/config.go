package planner

import (
	"math"

	"github.com/edaniels/golog"
	"github.com/mitchellh/mapstructure"
	"github.com/pkg/errors"
	"go.uber.org/multierr"
	goutils "go.viam.com/utils"

	"go.viam.com/localplanner/utils"
)

// costmapWorldModel is the only world model this controller supports.
const costmapWorldModel = "costmap"

// A Config holds the recognized controller options. Zero values are filled
// from DefaultConfig before attribute decoding.
type Config struct {
	YawGoalTolerance float64 `mapstructure:"yaw_goal_tolerance"`
	XYGoalTolerance  float64 `mapstructure:"xy_goal_tolerance"`
	PrunePlan        bool    `mapstructure:"prune_plan"`

	AccLimX     float64 `mapstructure:"acc_lim_x"`
	AccLimY     float64 `mapstructure:"acc_lim_y"`
	AccLimTheta float64 `mapstructure:"acc_lim_th"`

	SimTime        float64 `mapstructure:"sim_time"`
	SimGranularity float64 `mapstructure:"sim_granularity"`
	VXSamples      int     `mapstructure:"vx_samples"`
	VThetaSamples  int     `mapstructure:"vtheta_samples"`

	PathDistanceBias float64 `mapstructure:"path_distance_bias"`
	GoalDistanceBias float64 `mapstructure:"goal_distance_bias"`
	OccDistScale     float64 `mapstructure:"occdist_scale"`

	HeadingLookahead     float64 `mapstructure:"heading_lookahead"`
	OscillationResetDist float64 `mapstructure:"oscillation_reset_dist"`
	EscapeResetDist      float64 `mapstructure:"escape_reset_dist"`
	EscapeResetTheta     float64 `mapstructure:"escape_reset_theta"`

	HolonomicRobot bool `mapstructure:"holonomic_robot"`

	MaxVelX                 float64 `mapstructure:"max_vel_x"`
	MinVelX                 float64 `mapstructure:"min_vel_x"`
	MaxRotationalVel        float64 `mapstructure:"max_rotational_vel"`
	MinInPlaceRotationalVel float64 `mapstructure:"min_in_place_rotational_vel"`
	BackupVel               float64 `mapstructure:"backup_vel"`

	WorldModel string    `mapstructure:"world_model"`
	YVels      []float64 `mapstructure:"y_vels"`

	DWA                    bool    `mapstructure:"dwa"`
	HeadingScoring         bool    `mapstructure:"heading_scoring"`
	HeadingScoringTimestep float64 `mapstructure:"heading_scoring_timestep"`

	TransStoppedVelocity float64 `mapstructure:"trans_stopped_velocity"`
	RotStoppedVelocity   float64 `mapstructure:"rot_stopped_velocity"`
}

// DefaultConfig returns the controller defaults.
func DefaultConfig() Config {
	return Config{
		YawGoalTolerance:        0.05,
		XYGoalTolerance:         0.10,
		PrunePlan:               true,
		AccLimX:                 2.5,
		AccLimY:                 2.5,
		AccLimTheta:             3.2,
		SimTime:                 1.0,
		SimGranularity:          0.025,
		VXSamples:               3,
		VThetaSamples:           20,
		PathDistanceBias:        0.6,
		GoalDistanceBias:        0.8,
		OccDistScale:            0.01,
		HeadingLookahead:        0.325,
		OscillationResetDist:    0.05,
		EscapeResetDist:         0.10,
		EscapeResetTheta:        math.Pi / 4,
		HolonomicRobot:          true,
		MaxVelX:                 0.5,
		MinVelX:                 0.1,
		MaxRotationalVel:        1.0,
		MinInPlaceRotationalVel: 0.4,
		BackupVel:               -0.1,
		WorldModel:              costmapWorldModel,
		YVels:                   []float64{-0.3, -0.1, 0.1, 0.3},
		DWA:                     true,
		HeadingScoring:          false,
		HeadingScoringTimestep:  0.8,
		TransStoppedVelocity:    1e-2,
		RotStoppedVelocity:      1e-2,
	}
}

// MaxVelTheta returns the rotational speed limit.
func (cfg *Config) MaxVelTheta() float64 {
	return cfg.MaxRotationalVel
}

// MinVelTheta returns the rotational speed limit mirrored for negative
// rotation.
func (cfg *Config) MinVelTheta() float64 {
	return -cfg.MaxRotationalVel
}

// legacyAccKeys are misspelled acceleration options from old deployments;
// their presence is reported so the correctly named options get set instead.
var legacyAccKeys = map[string]string{
	"acc_limit_x":  "acc_lim_x",
	"acc_limit_y":  "acc_lim_y",
	"acc_limit_th": "acc_lim_th",
}

// configFromAttributes decodes the given attributes over the defaults and
// reports configuration problems. Warnings are logged and execution continues
// with the values as given; only an unsupported world model is fatal.
func configFromAttributes(attributes utils.AttributeMap, logger golog.Logger) (Config, error) {
	cfg := DefaultConfig()

	for legacy, correct := range legacyAccKeys {
		if attributes.Has(legacy) {
			logger.Errorf(
				"you are using %s where you should be using %s, please change your configuration",
				legacy, correct,
			)
		}
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{Result: &cfg})
	if err != nil {
		return Config{}, err
	}
	if err := decoder.Decode(map[string]interface{}(attributes)); err != nil {
		return Config{}, errors.Wrap(err, "could not decode controller attributes")
	}

	if cfg.BackupVel >= 0 {
		logger.Warn("you have specified a non-negative backup velocity, " +
			"this will cause the robot to move forward instead of backward when escaping")
	}
	if err := cfg.Validate(""); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate ensures all parts of the config are valid.
func (cfg *Config) Validate(path string) error {
	var errs error
	if cfg.WorldModel != costmapWorldModel {
		errs = multierr.Combine(errs, goutils.NewConfigValidationError(
			path, errors.Errorf("only %q world models are supported at this time, not %q", costmapWorldModel, cfg.WorldModel)))
	}
	if cfg.SimGranularity <= 0 {
		errs = multierr.Combine(errs, goutils.NewConfigValidationError(
			path, errors.New("sim_granularity must be positive")))
	}
	if cfg.SimTime <= 0 {
		errs = multierr.Combine(errs, goutils.NewConfigValidationError(
			path, errors.New("sim_time must be positive")))
	}
	if cfg.MaxVelX < cfg.MinVelX {
		errs = multierr.Combine(errs, goutils.NewConfigValidationError(
			path, errors.New("max_vel_x must not be less than min_vel_x")))
	}
	if cfg.MaxRotationalVel < 0 || cfg.MinInPlaceRotationalVel < 0 {
		errs = multierr.Combine(errs, goutils.NewConfigValidationError(
			path, errors.New("rotational velocity limits must not be negative")))
	}
	return errs
}
