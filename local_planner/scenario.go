package main

import (
	"encoding/json"
	"fmt"
	"os"

	"gonum.org/v1/gonum/spatial/r2"

	"amr-dwa-core/local_planner/dwa"
)

// Scenario defines a complete planning run
type Scenario struct {
	Meta      ScenarioMeta   `json:"meta"`
	Timing    ScenarioTiming `json:"timing"`
	Planner   dwa.Config     `json:"planner"`
	Initial   dwa.State      `json:"initial_state"`
	Goal      [2]float64     `json:"goal"`
	Obstacles [][2]float64   `json:"obstacles"`
}

// ScenarioMeta contains scenario metadata
type ScenarioMeta struct {
	Name        string `json:"name"`
	Version     int    `json:"version"`
	Description string `json:"description"`
}

// ScenarioTiming defines run-length and pacing parameters
type ScenarioTiming struct {
	MaxTicks     int     `json:"max_ticks"`
	LogHz        float64 `json:"log_hz"`
	RealTimeMode bool    `json:"real_time_mode"`
}

// LoadScenario loads a scenario from JSON file
func LoadScenario(path string) (Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Scenario{}, fmt.Errorf("read file: %w", err)
	}

	var scen Scenario
	if err := json.Unmarshal(data, &scen); err != nil {
		return Scenario{}, fmt.Errorf("unmarshal: %w", err)
	}

	// Validate
	if scen.Timing.MaxTicks <= 0 {
		return Scenario{}, fmt.Errorf("invalid max_ticks: %d", scen.Timing.MaxTicks)
	}
	if scen.Timing.LogHz < 0 {
		return Scenario{}, fmt.Errorf("invalid log_hz: %f", scen.Timing.LogHz)
	}
	if err := scen.Planner.Validate(); err != nil {
		return Scenario{}, fmt.Errorf("planner config: %w", err)
	}

	return scen, nil
}

// GoalVec returns the goal as a planar point.
func (s Scenario) GoalVec() r2.Vec {
	return r2.Vec{X: s.Goal[0], Y: s.Goal[1]}
}

// ObstacleVecs returns the obstacle list as planar points.
func (s Scenario) ObstacleVecs() []r2.Vec {
	out := make([]r2.Vec, len(s.Obstacles))
	for i, ob := range s.Obstacles {
		out[i] = r2.Vec{X: ob[0], Y: ob[1]}
	}
	return out
}
