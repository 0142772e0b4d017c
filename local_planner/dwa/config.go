package dwa

import (
	"fmt"
	"math"
)

// FootprintKind selects the collision geometry of the robot outline.
type FootprintKind string

const (
	FootprintCircle    FootprintKind = "circle"
	FootprintRectangle FootprintKind = "rectangle"
)

// Footprint describes the robot outline used for collision checking.
// Kind decides which dimension fields are meaningful.
type Footprint struct {
	Kind   FootprintKind `json:"kind"`
	Radius float64       `json:"radius_m,omitempty"`
	Length float64       `json:"length_m,omitempty"`
	Width  float64       `json:"width_m,omitempty"`
}

// ClearanceRadius returns the radius of the smallest circle enclosing the
// footprint. Used for goal-arrival checks.
func (f Footprint) ClearanceRadius() float64 {
	if f.Kind == FootprintRectangle {
		return math.Hypot(f.Length, f.Width) / 2.0
	}
	return f.Radius
}

func (f Footprint) validate() error {
	switch f.Kind {
	case FootprintCircle:
		if f.Radius <= 0 {
			return fmt.Errorf("invalid footprint radius_m: %f", f.Radius)
		}
	case FootprintRectangle:
		if f.Length <= 0 {
			return fmt.Errorf("invalid footprint length_m: %f", f.Length)
		}
		if f.Width <= 0 {
			return fmt.Errorf("invalid footprint width_m: %f", f.Width)
		}
	default:
		return fmt.Errorf("invalid footprint kind: %q", f.Kind)
	}
	return nil
}

// Config holds the static planner parameters. Validate once after loading;
// the planner treats the value as read-only afterwards.
type Config struct {
	MaxSpeed           float64 `json:"max_speed_mps"`
	MinSpeed           float64 `json:"min_speed_mps"`
	MaxSteeringAngle   float64 `json:"max_steering_rad"`
	MaxAccel           float64 `json:"max_accel_mps2"`
	MaxSteeringRate    float64 `json:"max_steering_rate_rps"`
	VResolution        float64 `json:"v_resolution_mps"`
	SteeringResolution float64 `json:"steering_resolution_rad"`
	DT                 float64 `json:"dt_s"`
	PredictTime        float64 `json:"predict_time_s"`

	ToGoalGain   float64 `json:"to_goal_cost_gain"`
	SpeedGain    float64 `json:"speed_cost_gain"`
	ObstacleGain float64 `json:"obstacle_cost_gain"`

	// StuckSpeed is the near-zero speed threshold that triggers the
	// steering recovery override.
	StuckSpeed float64 `json:"robot_stuck_flag_cons"`

	Wheelbase float64   `json:"wheelbase_m"`
	Footprint Footprint `json:"footprint"`

	// Workers > 1 evaluates velocity rows concurrently. Selection is
	// bit-identical to the sequential result.
	Workers int `json:"workers,omitempty"`
}

// Validate checks the invariants the planner relies on.
func (c Config) Validate() error {
	if c.DT <= 0 {
		return fmt.Errorf("invalid dt_s: %f", c.DT)
	}
	if c.PredictTime < c.DT {
		return fmt.Errorf("invalid predict_time_s: %f (must be >= dt_s %f)", c.PredictTime, c.DT)
	}
	if c.MinSpeed >= c.MaxSpeed {
		return fmt.Errorf("invalid speed bounds: min %f >= max %f", c.MinSpeed, c.MaxSpeed)
	}
	if c.MaxSteeringAngle <= 0 {
		return fmt.Errorf("invalid max_steering_rad: %f", c.MaxSteeringAngle)
	}
	if c.VResolution <= 0 {
		return fmt.Errorf("invalid v_resolution_mps: %f", c.VResolution)
	}
	if c.SteeringResolution <= 0 {
		return fmt.Errorf("invalid steering_resolution_rad: %f", c.SteeringResolution)
	}
	if c.Wheelbase <= 0 {
		return fmt.Errorf("invalid wheelbase_m: %f", c.Wheelbase)
	}
	if c.Workers < 0 {
		return fmt.Errorf("invalid workers: %d", c.Workers)
	}
	return c.Footprint.validate()
}

// DefaultConfig is the stock parameter set the planner was tuned with.
func DefaultConfig() Config {
	return Config{
		MaxSpeed:           1.0,
		MinSpeed:           -0.5,
		MaxSteeringAngle:   30.0 * math.Pi / 180.0,
		MaxAccel:           0.2,
		MaxSteeringRate:    20.0 * math.Pi / 180.0,
		VResolution:        0.01,
		SteeringResolution: 1.0 * math.Pi / 180.0,
		DT:                 0.1,
		PredictTime:        3.0,
		ToGoalGain:         0.15,
		SpeedGain:          1.0,
		ObstacleGain:       1.0,
		StuckSpeed:         0.001,
		Wheelbase:          0.8,
		Footprint:          Footprint{Kind: FootprintCircle, Radius: 1.0},
	}
}
