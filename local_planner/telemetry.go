package main

import (
	"context"
	"fmt"

	"amr-dwa-core/local_planner/dwa"
	"amr-dwa-core/utils"
)

const (
	frameCmd   = "PLANNER_CMD_1"
	framePose  = "POSE_STATE_1"
	frameEstop = "ESTOP_1"
)

// Telemetry publishes the selected command and the advanced pose on the
// CAN bus each tick, and watches for an external emergency stop.
type Telemetry struct {
	log     *utils.Logger
	cmap    *utils.CANMap
	writer  utils.CANWriter
	reader  utils.CANReader
	estopID uint32
}

func NewTelemetry(ctx context.Context, iface, mapPath string, log *utils.Logger) (*Telemetry, error) {
	cmap, err := utils.LoadCANMap(mapPath)
	if err != nil {
		return nil, fmt.Errorf("load can map: %w", err)
	}

	for _, name := range []string{frameCmd, framePose, frameEstop} {
		if _, err := cmap.FrameByName(name); err != nil {
			return nil, fmt.Errorf("frame: %w", err)
		}
	}
	estop, _ := cmap.FrameByName(frameEstop)

	writer, err := utils.NewSocketCANWriter(ctx, iface)
	if err != nil {
		return nil, err
	}

	reader, err := utils.NewSocketCANReader(ctx, iface)
	if err != nil {
		writer.Close()
		return nil, err
	}

	return &Telemetry{
		log:     log,
		cmap:    cmap,
		writer:  writer,
		reader:  reader,
		estopID: estop.ID,
	}, nil
}

func (t *Telemetry) Close() {
	if t.reader != nil {
		_ = t.reader.Close()
	}
	if t.writer != nil {
		_ = t.writer.Close()
	}
}

// Publish transmits the command and pose frames for one tick.
func (t *Telemetry) Publish(ctx context.Context, cmd dwa.Command, s dwa.State) error {
	frame, err := t.cmap.EncodeEinrideFrame(frameCmd, map[string]float64{
		"velocity_mps": cmd.Velocity,
		"steering_rad": cmd.SteeringAngle,
	})
	if err != nil {
		return fmt.Errorf("encode %s: %w", frameCmd, err)
	}
	if err := t.writer.WriteFrame(ctx, frame); err != nil {
		return fmt.Errorf("transmit %s: %w", frameCmd, err)
	}

	pose, err := t.cmap.EncodeEinrideFrame(framePose, map[string]float64{
		"x_m":         s.X,
		"y_m":         s.Y,
		"heading_rad": s.Heading,
		"speed_mps":   s.Speed,
	})
	if err != nil {
		return fmt.Errorf("encode %s: %w", framePose, err)
	}
	if err := t.writer.WriteFrame(ctx, pose); err != nil {
		return fmt.Errorf("transmit %s: %w", framePose, err)
	}

	return nil
}

// WatchEstop blocks on the bus and cancels the run when an ESTOP_1 frame
// arrives with estop_active set.
func (t *Telemetry) WatchEstop(ctx context.Context, cancel context.CancelFunc) {
	t.log.Debug("RX loop started")
	defer t.log.Debug("RX loop stopped")

	for {
		frame, err := t.reader.ReadFrame(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			t.log.Error("RX error: %v", err)
			continue
		}

		if uint32(frame.ID) != t.estopID {
			continue
		}

		vals, err := t.cmap.DecodeFrame(t.estopID, frame.Data[:frame.Length])
		if err != nil {
			t.log.Error("Decode %s: %v", frameEstop, err)
			continue
		}
		if vals["estop_active"] >= 0.5 {
			t.log.Critical("ESTOP received; aborting run")
			cancel()
			return
		}
	}
}
