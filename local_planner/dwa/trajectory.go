package dwa

import "math"

// Trajectory is the predicted state sequence for one candidate command,
// initial state first.
type Trajectory []State

// Final returns the state at the prediction horizon.
func (t Trajectory) Final() State {
	return t[len(t)-1]
}

// Rollout simulates holding cmd constant over the whole prediction horizon.
// The step count is fixed at ceil(PredictTime/DT), so trajectory length
// never depends on floating-point accumulation of DT.
func Rollout(initial State, cmd Command, cfg Config) Trajectory {
	steps := int(math.Ceil(cfg.PredictTime / cfg.DT))
	traj := make(Trajectory, 0, steps+1)
	traj = append(traj, initial)
	s := initial
	for i := 0; i < steps; i++ {
		s = Step(s, cmd, cfg.DT, cfg.Wheelbase)
		traj = append(traj, s)
	}
	return traj
}
