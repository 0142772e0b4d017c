package dwa

import "math"

// Bounds is the admissible (velocity, steering angle) window for one
// control tick. Derived per tick, never persisted.
type Bounds struct {
	VMin     float64
	VMax     float64
	SteerMin float64
	SteerMax float64
}

// Window intersects the absolute actuator limits with the window reachable
// from s within one tick of acceleration and steering-rate limits.
func Window(s State, cfg Config) Bounds {
	return Bounds{
		VMin:     math.Max(cfg.MinSpeed, s.Speed-cfg.MaxAccel*cfg.DT),
		VMax:     math.Min(cfg.MaxSpeed, s.Speed+cfg.MaxAccel*cfg.DT),
		SteerMin: math.Max(-cfg.MaxSteeringAngle, s.SteeringAngle-cfg.MaxSteeringRate*cfg.DT),
		SteerMax: math.Min(cfg.MaxSteeringAngle, s.SteeringAngle+cfg.MaxSteeringRate*cfg.DT),
	}
}
