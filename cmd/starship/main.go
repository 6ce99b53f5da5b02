// cmd/starship/main.go
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/opd-ai/go-starship/pkg/config"
	"github.com/opd-ai/go-starship/pkg/engine"
	"github.com/opd-ai/go-starship/pkg/event"
	"github.com/opd-ai/go-starship/pkg/input"
	"github.com/opd-ai/go-starship/pkg/logging"
	"github.com/opd-ai/go-starship/pkg/render"
	rengo "github.com/opd-ai/go-starship/pkg/render/engo"
	"github.com/opd-ai/go-starship/pkg/resource"
)

func main() {
	logger := logging.NewLogger()
	ctx := logging.WithCorrelationID(context.Background(), logging.GenerateCorrelationID())

	configPath := flag.String("config", "config.json", "Path to configuration file")
	createDefault := flag.Bool("default", false, "Create default configuration file and exit")
	galaxyPath := flag.String("galaxy", "", "Optional YAML galaxy file overriding the configured bodies")
	gui := flag.Bool("gui", false, "Open a game window instead of the terminal demo")
	duration := flag.Duration("duration", 2*time.Minute, "How long the terminal demo runs")
	flag.Parse()

	if *createDefault {
		if err := config.SaveConfig(config.DefaultConfig(), *configPath); err != nil {
			logger.Error(ctx, "failed to create default configuration", err,
				"config_path", *configPath,
			)
			os.Exit(1)
		}
		logger.Info(ctx, "created default configuration file",
			"config_path", *configPath,
		)
		return
	}

	simConfig := loadSimConfig(ctx, logger, *configPath, *galaxyPath)

	envConfig, err := config.LoadConfigFromEnv()
	if err != nil {
		logger.Error(ctx, "failed to load environment configuration", err)
		os.Exit(1)
	}

	monitor := resource.NewMonitor(envConfig)
	if err := monitor.Start(); err != nil {
		logger.Error(ctx, "failed to start resource monitor", err)
		os.Exit(1)
	}

	sim := engine.NewSimulation(simConfig)
	subscribeEventLogging(ctx, logger, sim.EventBus)

	if *gui {
		logger.Info(ctx, "opening game window")
		rengo.Run("Starship", 1024, 768, sim)
	} else {
		runTerminalDemo(ctx, logger, sim, monitor, envConfig.FrameRate, *duration)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), envConfig.ShutdownTimeout)
	defer cancel()
	if err := monitor.Shutdown(shutdownCtx); err != nil {
		logger.Warn(ctx, "resource monitor shutdown incomplete", "error", err)
	}
	logger.Info(ctx, "simulation stopped",
		"ticks", sim.Tick(),
		"elapsed", sim.Elapsed(),
	)
}

// loadSimConfig reads the simulation config, falling back to defaults
// when the file is missing, and applies an optional galaxy override.
func loadSimConfig(ctx context.Context, logger *logging.Logger, configPath, galaxyPath string) *config.SimConfig {
	var simConfig *config.SimConfig

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		logger.Info(ctx, "configuration file not found, using defaults",
			"config_path", configPath,
		)
		simConfig = config.DefaultConfig()
	} else {
		simConfig, err = config.LoadConfig(configPath)
		if err != nil {
			logger.Error(ctx, "failed to load configuration", err,
				"config_path", configPath,
			)
			os.Exit(1)
		}
	}

	if galaxyPath != "" {
		bodies, err := config.LoadGalaxy(galaxyPath)
		if err != nil {
			logger.Error(ctx, "failed to load galaxy file", err,
				"galaxy_path", galaxyPath,
			)
			os.Exit(1)
		}
		simConfig.Galaxy = bodies
		logger.Info(ctx, "galaxy loaded",
			"galaxy_path", galaxyPath,
			"bodies", len(bodies),
		)
	}

	return simConfig
}

// subscribeEventLogging logs the simulation events worth seeing on a
// server console.
func subscribeEventLogging(ctx context.Context, logger *logging.Logger, bus *event.Bus) {
	bus.Subscribe(event.WarpEngaged, func(e event.Event) {
		if we, ok := e.(*event.WarpEvent); ok {
			logger.Info(ctx, "warp engaged",
				"destination_id", we.DestinationID,
				"level", we.Level,
			)
		}
	})
	bus.Subscribe(event.WarpArrived, func(e event.Event) {
		if we, ok := e.(*event.WarpEvent); ok {
			logger.Info(ctx, "warp arrived", "destination_id", we.DestinationID)
		}
	})
	bus.Subscribe(event.WarpAborted, func(e event.Event) {
		logger.Warn(ctx, "warp aborted")
	})
	bus.Subscribe(event.BodyDestroyed, func(e event.Event) {
		if be, ok := e.(*event.BodyEvent); ok {
			logger.Info(ctx, "body destroyed", "body_id", be.BodyID, "name", be.Name)
		}
	})
	bus.Subscribe(event.BodyRespawned, func(e event.Event) {
		if be, ok := e.(*event.BodyEvent); ok {
			logger.Info(ctx, "body respawned", "body_id", be.BodyID, "name", be.Name)
		}
	})
	bus.Subscribe(event.HullCollision, func(e event.Event) {
		if ce, ok := e.(*event.CollisionEvent); ok {
			logger.Warn(ctx, "hull collision", "body_id", ce.BodyID, "damage", ce.Damage)
		}
	})
	bus.Subscribe(event.AlertChanged, func(e event.Event) {
		if ae, ok := e.(*event.AlertEvent); ok {
			logger.Info(ctx, "alert changed", "previous", ae.Previous, "current", ae.Current)
		}
	})
}

// runTerminalDemo drives the simulation with a scripted flight plan and
// draws frames to the terminal until the duration or a signal ends it.
func runTerminalDemo(ctx context.Context, logger *logging.Logger, sim *engine.Simulation, monitor *resource.Monitor, frameRate int, duration time.Duration) {
	sigCtx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Warp toward the farthest body so the drive gets a real cruise
	if bodies := sim.Registry().All(); len(bodies) > 0 {
		sim.SetDestination(bodies[len(bodies)-1].ID)
	}

	renderer := render.NewTerminalRenderer(100, 28, 20)
	ticker := time.NewTicker(time.Second / time.Duration(frameRate))
	defer ticker.Stop()
	deadline := time.NewTimer(duration)
	defer deadline.Stop()

	logger.Info(ctx, "terminal demo started",
		"frame_rate", frameRate,
		"duration", duration,
	)

	for {
		select {
		case <-sigCtx.Done():
			logger.Info(ctx, "signal received, stopping demo")
			return
		case <-deadline.C:
			logger.Info(ctx, "demo duration elapsed")
			return
		case <-ticker.C:
			start := time.Now()
			sim.Step(flightPlan(sim.Tick()))
			render.Draw(renderer, sim.GameState())
			monitor.RecordFrame(time.Since(start))
		}
	}
}

// flightPlan scripts the demo inputs by tick: spool up, turn toward
// traffic, exercise the weapons, then take the warp drive out and back.
func flightPlan(tick uint64) input.Snapshot {
	var s input.Snapshot

	switch {
	case tick < 120:
		s.Forward = true
		s.YawRight = tick > 60
	case tick < 130:
		s.CycleTarget = true
	case tick < 220:
		s.FirePhasers = true
	case tick < 225:
		s.FireTorpedo = true
	case tick < 300:
		// Coast while the torpedo flies
	case tick < 305:
		s.EngageWarp = true
	case tick < 600:
		// Charging and cruising
	case tick < 605:
		s.SkipWarp = true
	default:
		s.Forward = true
		s.PitchUp = tick%200 < 40
	}

	return s
}
