package dwa

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// ToGoalCost is the absolute angular error between the trajectory's final
// heading and the bearing from its final position to goal. Range [0, pi].
func ToGoalCost(traj Trajectory, goal r2.Vec) float64 {
	final := traj.Final()
	bearing := math.Atan2(goal.Y-final.Y, goal.X-final.X)
	diff := bearing - final.Heading
	return math.Abs(math.Atan2(math.Sin(diff), math.Cos(diff)))
}

// SpeedCost rewards trajectories ending near max speed.
func SpeedCost(traj Trajectory, cfg Config) float64 {
	return cfg.MaxSpeed - traj.Final().Speed
}

// ObstacleCost returns +Inf when the footprint touches any obstacle at any
// trajectory point, otherwise the inverse of the closest approach over all
// (point, obstacle) pairs. No obstacles means zero cost.
func ObstacleCost(traj Trajectory, obstacles []r2.Vec, cfg Config) float64 {
	if len(obstacles) == 0 {
		return 0
	}
	minDist := math.Inf(1)
	for _, s := range traj {
		for _, ob := range obstacles {
			d := s.DistanceTo(ob)
			switch cfg.Footprint.Kind {
			case FootprintCircle:
				if d <= cfg.Footprint.Radius {
					return math.Inf(1)
				}
			case FootprintRectangle:
				if inRectangle(s, ob, cfg.Footprint) {
					return math.Inf(1)
				}
			}
			if d < minDist {
				minDist = d
			}
		}
	}
	return 1.0 / minDist
}

// inRectangle reports whether ob falls inside the rectangular footprint
// centered on s. The obstacle is rotated into the body frame first.
func inRectangle(s State, ob r2.Vec, f Footprint) bool {
	local := r2.Sub(r2.Rotate(ob, -s.Heading, s.Position()), s.Position())
	return math.Abs(local.X) <= f.Length/2.0 && math.Abs(local.Y) <= f.Width/2.0
}
