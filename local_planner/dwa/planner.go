package dwa

import (
	"errors"
	"math"

	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/spatial/r2"
)

var (
	// ErrEmptyDynamicWindow reports a window with no enumerable candidates
	// (empty intersection or zero-width axis). The returned command is a
	// safe stop.
	ErrEmptyDynamicWindow = errors.New("dwa: empty dynamic window")

	// ErrNoFeasibleCommand reports that every enumerated candidate
	// collides. The returned command is a safe stop.
	ErrNoFeasibleCommand = errors.New("dwa: no feasible command")
)

// Planner selects one (velocity, steering) command per control tick by
// enumerating the dynamic window and scoring a fixed-horizon rollout of
// each candidate. Goal and obstacles are fixed for the planning session.
type Planner struct {
	cfg       Config
	goal      r2.Vec
	obstacles []r2.Vec
}

// NewPlanner validates cfg and fixes goal and obstacles for the session.
func NewPlanner(cfg Config, goal r2.Vec, obstacles []r2.Vec) (*Planner, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Planner{
		cfg:       cfg,
		goal:      goal,
		obstacles: append([]r2.Vec(nil), obstacles...),
	}, nil
}

// Config returns the planner's validated configuration.
func (p *Planner) Config() Config {
	return p.cfg
}

type candidate struct {
	cmd  Command
	cost float64
	traj Trajectory
}

// SelectControl returns the minimum-cost command over the current dynamic
// window and its predicted trajectory. Ties go to the later-enumerated
// candidate; that ordering is part of the selection policy. On
// ErrEmptyDynamicWindow or ErrNoFeasibleCommand the command is a safe stop
// and the trajectory holds only the current state.
func (p *Planner) SelectControl(s State) (Command, Trajectory, error) {
	b := Window(s, p.cfg)
	vs := span(b.VMin, b.VMax, p.cfg.VResolution)
	steers := span(b.SteerMin, b.SteerMax, p.cfg.SteeringResolution)
	if len(vs) == 0 || len(steers) == 0 {
		return Command{}, Trajectory{s}, ErrEmptyDynamicWindow
	}

	rows := make([]candidate, len(vs))
	if p.cfg.Workers > 1 {
		var g errgroup.Group
		g.SetLimit(p.cfg.Workers)
		for i := range vs {
			i := i
			g.Go(func() error {
				rows[i] = p.bestInRow(s, vs[i], steers)
				return nil
			})
		}
		// Row evaluation never fails; Wait only joins the workers.
		_ = g.Wait()
	} else {
		for i := range vs {
			rows[i] = p.bestInRow(s, vs[i], steers)
		}
	}

	// Reduce in enumeration order so the tie-break matches sequential
	// evaluation exactly.
	best := candidate{cost: math.Inf(1), traj: Trajectory{s}}
	for _, c := range rows {
		if best.cost >= c.cost {
			best = c
			// Stuck recovery: when both the selected and the current
			// speed are near zero, force a hard steering maneuver to
			// break out of a local minimum.
			if math.Abs(best.cmd.Velocity) < p.cfg.StuckSpeed && math.Abs(s.Speed) < p.cfg.StuckSpeed {
				best.cmd.SteeringAngle = -p.cfg.MaxSteeringAngle
			}
		}
	}

	if math.IsInf(best.cost, 1) {
		return Command{}, Trajectory{s}, ErrNoFeasibleCommand
	}
	return best.cmd, best.traj, nil
}

// bestInRow scores every steering candidate at velocity v and keeps the
// minimum, later candidates replacing on equal cost.
func (p *Planner) bestInRow(s State, v float64, steers []float64) candidate {
	best := candidate{cost: math.Inf(1)}
	for _, steer := range steers {
		cmd := Command{Velocity: v, SteeringAngle: steer}
		traj := Rollout(s, cmd, p.cfg)
		cost := p.cfg.ToGoalGain*ToGoalCost(traj, p.goal) +
			p.cfg.SpeedGain*SpeedCost(traj, p.cfg) +
			p.cfg.ObstacleGain*ObstacleCost(traj, p.obstacles, p.cfg)
		if best.cost >= cost {
			best = candidate{cmd: cmd, cost: cost, traj: traj}
		}
	}
	return best
}

// span enumerates lo, lo+step, ... over the half-open interval [lo, hi).
// Values are computed as lo + i*step, not accumulated, so the grid is
// identical for identical inputs.
func span(lo, hi, step float64) []float64 {
	if step <= 0 || lo >= hi {
		return nil
	}
	out := make([]float64, 0, int((hi-lo)/step)+1)
	for i := 0; ; i++ {
		v := lo + float64(i)*step
		if v >= hi {
			break
		}
		out = append(out, v)
	}
	return out
}
