package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"amr-dwa-core/utils"
)

func main() {
	var (
		scenPath = flag.String("scenario", "local_planner/goal_reach_10x10.json", "Scenario JSON file")
		iface    = flag.String("iface", "", "SocketCAN interface for telemetry (empty disables CAN)")
		mapPath  = flag.String("map", "config/can/can_map.json", "Path to can_map.json")
		logLevel = flag.String("log", "info", "trace|debug|info|warn|error|critical")
	)
	flag.Parse()

	log, err := utils.NewFileLogger("local_planner.log", utils.ParseLevel(*logLevel), true)
	if err != nil {
		_, _ = os.Stderr.WriteString("ERROR: cannot open local_planner.log: " + err.Error() + "\n")
		os.Exit(1)
	}
	defer log.Close()

	cfg := RunnerConfig{
		Interface:    *iface,
		MapPath:      *mapPath,
		ScenarioPath: *scenPath,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	runner, err := NewRunner(ctx, cfg, log)
	if err != nil {
		log.Critical("Startup failed: %v", err)
		os.Exit(1)
	}
	defer runner.Close()

	if err := runner.Run(ctx); err != nil && err != context.Canceled {
		log.Critical("Run failed: %v", err)
		os.Exit(1)
	}
}
