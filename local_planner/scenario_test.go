package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadScenario(t *testing.T) {
	t.Parallel()

	scen, err := LoadScenario("goal_reach_10x10.json")
	require.NoError(t, err)

	require.Equal(t, "goal_reach_10x10", scen.Meta.Name)
	require.Equal(t, 2000, scen.Timing.MaxTicks)
	require.Equal(t, 0.1, scen.Planner.DT)
	require.Equal(t, 10.0, scen.GoalVec().X)
	require.Equal(t, 10.0, scen.GoalVec().Y)
	require.Len(t, scen.ObstacleVecs(), 15)
	require.NoError(t, scen.Planner.Validate())
}

func TestLoadScenarioErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		body    string
		wantErr string
	}{
		{
			name:    "missing file",
			body:    "",
			wantErr: "read file",
		},
		{
			name:    "malformed json",
			body:    "{not json",
			wantErr: "unmarshal",
		},
		{
			name:    "zero max_ticks",
			body:    `{"meta":{"name":"x"},"timing":{"max_ticks":0},"planner":{}}`,
			wantErr: "invalid max_ticks",
		},
		{
			name:    "invalid planner config",
			body:    `{"meta":{"name":"x"},"timing":{"max_ticks":10},"planner":{"dt_s":0}}`,
			wantErr: "planner config",
		},
	}
	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			path := filepath.Join(t.TempDir(), "scenario.json")
			if tc.body != "" {
				require.NoError(t, os.WriteFile(path, []byte(tc.body), 0o644))
			}
			_, err := LoadScenario(path)
			require.ErrorContains(t, err, tc.wantErr)
		})
	}
}
