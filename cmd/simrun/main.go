package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/pkg/profile"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/text/language"

	"github.com/uniengine/simcore/internal/config"
	"github.com/uniengine/simcore/internal/core/ecs"
	"github.com/uniengine/simcore/internal/core/event"
	coresys "github.com/uniengine/simcore/internal/core/system"
	"github.com/uniengine/simcore/internal/data"
	"github.com/uniengine/simcore/internal/inspect"
	"github.com/uniengine/simcore/internal/scene"
	"github.com/uniengine/simcore/internal/scripting"
	"github.com/uniengine/simcore/internal/system"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

// ── Startup display helpers ────────────────────────────────────────

func printBanner(sceneName string) {
	fmt.Println()
	fmt.Println("\033[36;1m  ┌───────────────────────────────────────────┐\033[0m")
	fmt.Println("\033[36;1m  │\033[0m             simcore  v0.1.0               \033[36;1m│\033[0m")
	fmt.Println("\033[36;1m  │\033[0m       2D ECS · rigid body simulation      \033[36;1m│\033[0m")
	fmt.Println("\033[36;1m  └───────────────────────────────────────────┘\033[0m")
	fmt.Println()
	fmt.Printf("  \033[1mscene:\033[0m %s\n\n", sceneName)
}

func printSection(title string) {
	lineLen := 46 - len(title) - 1
	if lineLen < 3 {
		lineLen = 3
	}
	fmt.Printf("  \033[33m── %s %s\033[0m\n", title, strings.Repeat("─", lineLen))
}

func printStat(label string, count int) {
	numStr := fmt.Sprintf("%d", count)
	dotsLen := 42 - len(label) - len(numStr)
	if dotsLen < 3 {
		dotsLen = 3
	}
	fmt.Printf("  %s \033[90m%s\033[0m \033[32m%s\033[0m\n", label, strings.Repeat("·", dotsLen), numStr)
}

func printOK(msg string) {
	fmt.Printf("  \033[32m✓\033[0m %s\n", msg)
}

func printReady(msg string) {
	fmt.Printf("  \033[32m▶\033[0m %s\n", msg)
}

// ── Main simulation logic ─────────────────────────────────────────

func run() error {
	var (
		cfgPath   = flag.String("config", "", "TOML config file (overrides SIMCORE_CONFIG)")
		scenePath = flag.String("scene", "", "YAML scene file (overrides scene.path)")
		steps     = flag.Int("steps", -1, "fixed steps to run; 0 runs in real time until interrupted")
		profMode  = flag.String("profile", "", "cpu or mem (overrides profile.mode)")
	)
	flag.Parse()

	// 1. Load config
	path := os.Getenv("SIMCORE_CONFIG")
	if *cfgPath != "" {
		path = *cfgPath
	}
	cfg, err := config.LoadOptional(path)
	if err != nil && !errors.Is(err, config.ErrNoConfig) {
		return fmt.Errorf("load config: %w", err)
	}
	if *scenePath != "" {
		cfg.Scene.Path = *scenePath
	}
	if *steps >= 0 {
		cfg.Simulation.Steps = *steps
	}
	if *profMode != "" {
		cfg.Profile.Mode = *profMode
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("config: %w", err)
		}
	}

	// 2. Init logger
	log, err := newLogger(cfg.Logging)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer log.Sync()

	if stop := startProfile(cfg.Profile); stop != nil {
		defer stop()
	}

	// 3. Load scene description
	def := scene.BoxAndPlatformDef()
	if cfg.Scene.Path != "" {
		def, err = data.LoadScene(cfg.Scene.Path)
		if err != nil {
			return fmt.Errorf("scene: %w", err)
		}
	}
	printBanner(def.Name)

	// 4. Scripting
	var engine *scripting.Engine
	if cfg.Scripting.Dir != "" {
		printSection("scripting")
		engine, err = scripting.NewEngine(cfg.Scripting.Dir, log.Named("lua"))
		if err != nil {
			return fmt.Errorf("scripting: %w", err)
		}
		defer engine.Close()
		printOK(fmt.Sprintf("Lua behaviours loaded from %s", cfg.Scripting.Dir))
		fmt.Println()
	}

	// 5. Build world
	printSection("world")
	world := ecs.NewWorld(log.Named("ecs"))
	bus := event.NewBus()

	sc, err := scene.Build(world, def, log.Named("scene"))
	if err != nil {
		return fmt.Errorf("build scene: %w", err)
	}
	gravity := mgl32.Vec2{float32(cfg.Physics.GravityX), float32(cfg.Physics.GravityY)}
	if sc.Gravity != nil {
		gravity = *sc.Gravity
	}

	set, err := system.RegisterAll(world, system.Options{
		Bus:     bus,
		Log:     log,
		Gravity: gravity,
		KillY:   float32(cfg.Physics.KillY),
		Interaction: system.InteractionConfig{
			Stiffness:      float32(cfg.Interaction.Stiffness),
			Damping:        float32(cfg.Interaction.Damping),
			OrthoHeight:    float32(cfg.Interaction.OrthoHeight),
			ViewportWidth:  cfg.Interaction.ViewportWidth,
			ViewportHeight: cfg.Interaction.ViewportHeight,
		},
		Scripts:       engine,
		SnapshotEvery: cfg.Simulation.SnapshotEvery,
	})
	if err != nil {
		return fmt.Errorf("register systems: %w", err)
	}
	printStat("entities", world.EntityCount())
	printStat("systems", world.SystemCount())
	printStat("component types", world.Registry().Len())
	fmt.Println()

	var collisions, triggers int
	event.Subscribe(bus, func(event.Collision) { collisions++ })
	event.Subscribe(bus, func(event.Trigger) { triggers++ })

	// 6. Runner
	runner := coresys.NewRunner(world, bus, cfg.Simulation.FixedStep, cfg.Simulation.MaxSubSteps, log.Named("runner"))
	root := sc.Root
	fallback := float32(cfg.Simulation.TimeScale)
	runner.SetTimeScale(func() float32 {
		if def.TimeScale == nil {
			return fallback
		}
		return scene.TimeScale(world, root)
	})

	printSection("simulation")
	if cfg.Simulation.Steps > 0 {
		printReady(fmt.Sprintf("running %d steps (step: %s)", cfg.Simulation.Steps, cfg.Simulation.FixedStep))
		start := time.Now()
		runner.Run(cfg.Simulation.Steps)
		log.Info("simulation finished",
			zap.Uint64("steps", runner.Steps()),
			zap.Float64("sim_time", runner.SimTime()),
			zap.Duration("wall", time.Since(start)))
	} else {
		runRealtime(runner, cfg.Simulation.FixedStep, log)
	}
	fmt.Println()

	// 7. Report
	printSection("result")
	stats := set.Physics.Stats()
	printStat("steps", int(runner.Steps()))
	printStat("collision events", collisions)
	printStat("trigger events", triggers)
	printStat("contacts last step", stats.Contacts)
	snap := set.Snapshot.Last()
	printOK("digest " + inspect.DigestString(snap))
	fmt.Println()

	if err := inspect.WriteReport(os.Stdout, snap, language.English); err != nil {
		return fmt.Errorf("report: %w", err)
	}
	world.Shutdown()
	return nil
}

// runRealtime ticks the runner from a wall clock until SIGINT or SIGTERM.
func runRealtime(runner *coresys.Runner, step time.Duration, log *zap.Logger) {
	shutdownCh := make(chan os.Signal, 1)
	signal.Notify(shutdownCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(shutdownCh)

	ticker := time.NewTicker(step)
	defer ticker.Stop()

	printReady(fmt.Sprintf("real time loop started (step: %s), Ctrl+C to stop", step))
	last := time.Now()
	for {
		select {
		case now := <-ticker.C:
			runner.Tick(now.Sub(last))
			last = now
		case sig := <-shutdownCh:
			log.Info("received shutdown signal", zap.String("signal", sig.String()),
				zap.Uint64("steps", runner.Steps()))
			return
		}
	}
}

func startProfile(cfg config.ProfileConfig) func() {
	var mode func(*profile.Profile)
	switch cfg.Mode {
	case "cpu":
		mode = profile.CPUProfile
	case "mem":
		mode = profile.MemProfileAllocs
	default:
		return nil
	}
	p := profile.Start(mode, profile.ProfilePath(cfg.Path), profile.NoShutdownHook, profile.Quiet)
	return p.Stop
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
