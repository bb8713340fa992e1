package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/stagecraft/engine/internal/component"
	"github.com/stagecraft/engine/internal/config"
	"github.com/stagecraft/engine/internal/core/event"
	"github.com/stagecraft/engine/internal/core/sched"
	"github.com/stagecraft/engine/internal/core/service"
	"github.com/stagecraft/engine/internal/core/stage"
	"github.com/stagecraft/engine/internal/data"
	"github.com/stagecraft/engine/internal/factory"
	"github.com/stagecraft/engine/internal/script"
	"github.com/stagecraft/engine/internal/system"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// 1. Load config
	cfgPath := "config/stagecraft.toml"
	if p := os.Getenv("STAGECRAFT_CONFIG"); p != "" {
		cfgPath = p
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	// 2. Init logger
	log, err := newLogger(cfg.Logging)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer log.Sync()

	// 3. Core plumbing: type table, bus, scene, service registry
	types := stage.NewTypeRegistry()
	builtins := component.RegisterTypes(types)
	bus := event.NewBus(log)
	scene := stage.NewScene(types, bus, log)
	services := service.NewRegistry(log)

	// 4. Optional Lua behavior engine
	if cfg.Script.Enabled {
		engine, err := script.NewEngine(cfg.Script.Dir, log)
		if err != nil {
			return fmt.Errorf("script engine: %w", err)
		}
		defer engine.Close()
		if err := services.Register(factory.ServiceScriptEngine, engine); err != nil {
			return err
		}
		log.Info("script engine ready", zap.String("dir", cfg.Script.Dir))
	}

	// 5. Spawn scene content from the manifest
	manifest, err := data.LoadManifest(cfg.Scene.Manifest)
	if err != nil {
		return fmt.Errorf("load manifest: %w", err)
	}
	spawner := factory.NewSpawner(scene, builtins, bus, services, log)
	if _, err := spawner.SpawnAll(manifest); err != nil {
		return err
	}

	// 6. Processors: fixed-rate simulation, throttled frame-synced report
	loop := sched.NewLoop(log)

	simTicker, err := sched.NewFixedRate(cfg.Runtime.SimulationHz)
	if err != nil {
		return fmt.Errorf("simulation ticker: %w", err)
	}
	sim, err := sched.NewProcessor(loop, "simulation", simTicker, log)
	if err != nil {
		return err
	}
	sim.AddTask("movement", system.NewMovement(scene, builtins).Run)
	sim.AddTask("behavior", system.NewBehavior(scene, builtins).Run)
	sim.AddTask("regen", system.NewRegen(scene, builtins, cfg.Runtime.SimulationHz).Run)

	reportTicker, err := sched.NewThrottled(sched.NewFrameSynced(), cfg.Runtime.ReportInterval)
	if err != nil {
		return fmt.Errorf("report ticker: %w", err)
	}
	report, err := sched.NewProcessor(loop, "report", reportTicker, log)
	if err != nil {
		return err
	}
	report.AddTask("report", system.NewReport(scene, builtins, log).Run)

	sim.Start()
	report.Start()
	log.Info("runtime started",
		zap.Float64("simulation_hz", cfg.Runtime.SimulationHz),
		zap.Int("actors", scene.Len()))

	// 7. Drive the loop until interrupted
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	err = loop.Run(ctx, cfg.Runtime.PumpResolution)
	if err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("loop: %w", err)
	}

	sim.Stop()
	report.Stop()
	scene.Clear()
	log.Info("runtime stopped")
	return nil
}

func newLogger(cfg config.LoggingConfig) (*zap.Logger, error) {
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		level = zapcore.InfoLevel
	}

	var zapCfg zap.Config
	if cfg.Format == "json" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
		zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		zapCfg.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05")
		zapCfg.EncoderConfig.ConsoleSeparator = "  "
		zapCfg.DisableCaller = true
		zapCfg.DisableStacktrace = true
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)

	return zapCfg.Build()
}
