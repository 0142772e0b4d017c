package dwa

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// State is the bicycle-model state [x, y, heading, v, delta]. Step returns
// a fresh value each tick; consumers never mutate a State in place.
type State struct {
	X             float64 `json:"x_m"`
	Y             float64 `json:"y_m"`
	Heading       float64 `json:"heading_rad"`
	Speed         float64 `json:"speed_mps"`
	SteeringAngle float64 `json:"steering_rad"`
}

// Command is one (velocity, steering angle) actuation pair.
type Command struct {
	Velocity      float64
	SteeringAngle float64
}

// Step advances s by one tick of dt under cmd using the kinematic bicycle
// model. cmd is applied as-is; respecting Config bounds is the caller's
// responsibility. wheelbase must be > 0.
func Step(s State, cmd Command, dt, wheelbase float64) State {
	s.X += cmd.Velocity * math.Cos(s.Heading) * dt
	s.Y += cmd.Velocity * math.Sin(s.Heading) * dt
	s.Heading += (cmd.Velocity / wheelbase) * math.Tan(cmd.SteeringAngle) * dt
	s.Speed = cmd.Velocity
	s.SteeringAngle = cmd.SteeringAngle
	return s
}

// Position returns the planar position of the state.
func (s State) Position() r2.Vec {
	return r2.Vec{X: s.X, Y: s.Y}
}

// DistanceTo returns the Euclidean distance from the state's position to p.
func (s State) DistanceTo(p r2.Vec) float64 {
	return math.Hypot(p.X-s.X, p.Y-s.Y)
}
