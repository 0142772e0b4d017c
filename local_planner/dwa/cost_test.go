package dwa_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/floats/scalar"
	"gonum.org/v1/gonum/spatial/r2"

	"amr-dwa-core/local_planner/dwa"
)

func TestToGoalCostZeroWhenAligned(t *testing.T) {
	t.Parallel()

	goal := r2.Vec{X: 5, Y: 5}
	traj := dwa.Trajectory{{X: 0, Y: 0, Heading: math.Atan2(5, 5)}}
	require.Equal(t, 0.0, dwa.ToGoalCost(traj, goal))
}

func TestToGoalCostWrapsAngle(t *testing.T) {
	t.Parallel()

	goal := r2.Vec{X: 1, Y: 0}

	tests := []struct {
		name    string
		heading float64
		want    float64
	}{
		{name: "facing away", heading: math.Pi, want: math.Pi},
		{name: "quarter off", heading: math.Pi / 2, want: math.Pi / 2},
		{name: "wrapped past pi", heading: 3 * math.Pi / 2, want: math.Pi / 2},
		{name: "negative wrap", heading: -3 * math.Pi / 2, want: math.Pi / 2},
	}
	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			traj := dwa.Trajectory{{Heading: tc.heading}}
			require.True(t, scalar.EqualWithinAbs(dwa.ToGoalCost(traj, goal), tc.want, 1e-12))
		})
	}
}

func TestSpeedCost(t *testing.T) {
	t.Parallel()

	cfg := dwa.DefaultConfig()
	traj := dwa.Trajectory{{Speed: 0.3}}
	require.True(t, scalar.EqualWithinAbs(dwa.SpeedCost(traj, cfg), cfg.MaxSpeed-0.3, 1e-12))
}

func TestObstacleCostCircle(t *testing.T) {
	t.Parallel()

	cfg := dwa.DefaultConfig()
	cfg.Footprint = dwa.Footprint{Kind: dwa.FootprintCircle, Radius: 1.0}

	traj := dwa.Trajectory{{X: 0, Y: 0}, {X: 1, Y: 0}}

	t.Run("coincident obstacle collides", func(t *testing.T) {
		t.Parallel()
		cost := dwa.ObstacleCost(traj, []r2.Vec{{X: 1, Y: 0}}, cfg)
		require.True(t, math.IsInf(cost, 1))
	})

	t.Run("obstacle on the radius collides", func(t *testing.T) {
		t.Parallel()
		cost := dwa.ObstacleCost(traj, []r2.Vec{{X: 2, Y: 0}}, cfg)
		require.True(t, math.IsInf(cost, 1))
	})

	t.Run("clear obstacle costs inverse distance", func(t *testing.T) {
		t.Parallel()
		cost := dwa.ObstacleCost(traj, []r2.Vec{{X: 5, Y: 0}, {X: -10, Y: 0}}, cfg)
		require.True(t, scalar.EqualWithinAbs(cost, 1.0/4.0, 1e-12))
	})

	t.Run("no obstacles is free", func(t *testing.T) {
		t.Parallel()
		require.Equal(t, 0.0, dwa.ObstacleCost(traj, nil, cfg))
	})
}

func TestObstacleCostRectangle(t *testing.T) {
	t.Parallel()

	cfg := dwa.DefaultConfig()
	cfg.Footprint = dwa.Footprint{Kind: dwa.FootprintRectangle, Length: 1.2, Width: 0.5}

	// Robot at the origin facing +y; the body x axis points along the
	// world y axis.
	traj := dwa.Trajectory{{X: 0, Y: 0, Heading: math.Pi / 2}}

	t.Run("obstacle ahead inside the length collides", func(t *testing.T) {
		t.Parallel()
		cost := dwa.ObstacleCost(traj, []r2.Vec{{X: 0, Y: 0.5}}, cfg)
		require.True(t, math.IsInf(cost, 1))
	})

	t.Run("same offset to the side clears the width", func(t *testing.T) {
		t.Parallel()
		cost := dwa.ObstacleCost(traj, []r2.Vec{{X: 0.5, Y: 0}}, cfg)
		require.True(t, scalar.EqualWithinAbs(cost, 1.0/0.5, 1e-12))
	})
}
