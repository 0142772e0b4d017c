package dwa_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"amr-dwa-core/local_planner/dwa"
)

func TestConfigValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(*dwa.Config)
		wantErr string
	}{
		{name: "default is valid", mutate: func(c *dwa.Config) {}},
		{name: "zero dt", mutate: func(c *dwa.Config) { c.DT = 0 }, wantErr: "dt_s"},
		{name: "negative dt", mutate: func(c *dwa.Config) { c.DT = -0.1 }, wantErr: "dt_s"},
		{name: "horizon shorter than tick", mutate: func(c *dwa.Config) { c.PredictTime = 0.05 }, wantErr: "predict_time_s"},
		{name: "inverted speed bounds", mutate: func(c *dwa.Config) { c.MinSpeed = 2.0 }, wantErr: "speed bounds"},
		{name: "zero steering limit", mutate: func(c *dwa.Config) { c.MaxSteeringAngle = 0 }, wantErr: "max_steering_rad"},
		{name: "zero velocity resolution", mutate: func(c *dwa.Config) { c.VResolution = 0 }, wantErr: "v_resolution_mps"},
		{name: "zero steering resolution", mutate: func(c *dwa.Config) { c.SteeringResolution = 0 }, wantErr: "steering_resolution_rad"},
		{name: "zero wheelbase", mutate: func(c *dwa.Config) { c.Wheelbase = 0 }, wantErr: "wheelbase_m"},
		{name: "negative workers", mutate: func(c *dwa.Config) { c.Workers = -1 }, wantErr: "workers"},
		{name: "circle without radius", mutate: func(c *dwa.Config) {
			c.Footprint = dwa.Footprint{Kind: dwa.FootprintCircle}
		}, wantErr: "radius_m"},
		{name: "rectangle without width", mutate: func(c *dwa.Config) {
			c.Footprint = dwa.Footprint{Kind: dwa.FootprintRectangle, Length: 1.2}
		}, wantErr: "width_m"},
		{name: "unknown footprint kind", mutate: func(c *dwa.Config) {
			c.Footprint = dwa.Footprint{Kind: "triangle"}
		}, wantErr: "footprint kind"},
	}
	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			cfg := dwa.DefaultConfig()
			tc.mutate(&cfg)
			err := cfg.Validate()
			if tc.wantErr == "" {
				require.NoError(t, err)
				return
			}
			require.ErrorContains(t, err, tc.wantErr)
		})
	}
}

func TestFootprintClearanceRadius(t *testing.T) {
	t.Parallel()

	circle := dwa.Footprint{Kind: dwa.FootprintCircle, Radius: 1.0}
	require.Equal(t, 1.0, circle.ClearanceRadius())

	rect := dwa.Footprint{Kind: dwa.FootprintRectangle, Length: 3.0, Width: 4.0}
	require.Equal(t, 2.5, rect.ClearanceRadius())
}
