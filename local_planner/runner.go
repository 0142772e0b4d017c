package main

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"amr-dwa-core/local_planner/dwa"
	"amr-dwa-core/utils"
)

type RunnerConfig struct {
	Interface    string
	MapPath      string
	ScenarioPath string
}

type Runner struct {
	cfg     RunnerConfig
	log     *utils.Logger
	scen    Scenario
	planner *dwa.Planner
	tel     *Telemetry // nil when CAN telemetry is disabled
}

func NewRunner(ctx context.Context, cfg RunnerConfig, log *utils.Logger) (*Runner, error) {
	scen, err := LoadScenario(cfg.ScenarioPath)
	if err != nil {
		return nil, fmt.Errorf("load scenario: %w", err)
	}

	planner, err := dwa.NewPlanner(scen.Planner, scen.GoalVec(), scen.ObstacleVecs())
	if err != nil {
		return nil, fmt.Errorf("planner: %w", err)
	}

	r := &Runner{
		cfg:     cfg,
		log:     log,
		scen:    scen,
		planner: planner,
	}

	if cfg.Interface != "" {
		tel, err := NewTelemetry(ctx, cfg.Interface, cfg.MapPath, log)
		if err != nil {
			return nil, err
		}
		r.tel = tel
	}

	return r, nil
}

func (r *Runner) Close() {
	if r.tel != nil {
		r.tel.Close()
	}
}

// Run drives the closed loop: select a command, advance the truth state
// with the same kinematic model, check goal arrival. Planner errors are
// recoverable; the robot holds a safe stop and retries next tick.
func (r *Runner) Run(ctx context.Context) error {
	cfg := r.scen.Planner
	state := r.scen.Initial
	goal := r.scen.GoalVec()
	arrive := cfg.Footprint.ClearanceRadius()

	r.log.Info("Starting run: scenario=%s goal=(%.2f, %.2f) obstacles=%d dt=%.3fs max_ticks=%d iface=%s",
		r.scen.Meta.Name, goal.X, goal.Y, len(r.scen.Obstacles), cfg.DT,
		r.scen.Timing.MaxTicks, r.cfg.Interface)

	if r.tel != nil {
		// An ESTOP_1 frame on the bus aborts the run.
		var cancel context.CancelFunc
		ctx, cancel = context.WithCancel(ctx)
		defer cancel()
		go r.tel.WatchEstop(ctx, cancel)
	}

	var ticker *time.Ticker
	if r.scen.Timing.RealTimeMode {
		ticker = time.NewTicker(time.Duration(cfg.DT * float64(time.Second)))
		defer ticker.Stop()
	}

	logEvery := 1
	if r.scen.Timing.LogHz > 0 {
		logEvery = int(math.Max(1, math.Round(1.0/(cfg.DT*r.scen.Timing.LogHz))))
	}

	start := time.Now()
	for tick := 0; tick < r.scen.Timing.MaxTicks; tick++ {
		if ticker != nil {
			select {
			case <-ctx.Done():
			case <-ticker.C:
			}
		}
		if ctx.Err() != nil {
			r.log.Warn("Context canceled; stopping at tick=%d", tick)
			return ctx.Err()
		}

		t := float64(tick) * cfg.DT

		cmd, traj, err := r.planner.SelectControl(state)
		switch {
		case err == nil:
		case errors.Is(err, dwa.ErrEmptyDynamicWindow):
			r.log.Warn("t=%.2f empty dynamic window; holding safe stop", t)
		case errors.Is(err, dwa.ErrNoFeasibleCommand):
			r.log.Warn("t=%.2f all candidates collide; holding safe stop", t)
		default:
			return err
		}

		state = dwa.Step(state, cmd, cfg.DT, cfg.Wheelbase)

		if r.tel != nil {
			if err := r.tel.Publish(ctx, cmd, state); err != nil {
				r.log.Critical("Telemetry failed at t=%.3f: %v", t, err)
				return err
			}
		}

		if tick%logEvery == 0 {
			r.log.Debug("t=%.2f pos=(%.2f, %.2f) heading=%.3f v=%.3f steer=%.3f horizon=%d",
				t, state.X, state.Y, state.Heading, cmd.Velocity, cmd.SteeringAngle, len(traj))
		}

		if state.DistanceTo(goal) <= arrive {
			r.log.Info("Goal reached: tick=%d t=%.2fs pos=(%.2f, %.2f) elapsed=%s",
				tick, t, state.X, state.Y, time.Since(start).Round(time.Millisecond))
			return nil
		}
	}

	return fmt.Errorf("goal not reached within %d ticks", r.scen.Timing.MaxTicks)
}
