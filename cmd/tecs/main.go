package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/tecs/engine/internal/component"
	"github.com/tecs/engine/internal/config"
	"github.com/tecs/engine/internal/core/ecs"
	"github.com/tecs/engine/internal/core/event"
	"github.com/tecs/engine/internal/core/object"
	"github.com/tecs/engine/internal/core/service"
	coresys "github.com/tecs/engine/internal/core/system"
	"github.com/tecs/engine/internal/data"
	"github.com/tecs/engine/internal/job"
	"github.com/tecs/engine/internal/scripting"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

// ── Startup display helpers ────────────────────────────────────────

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

// ── Engine bootstrap ──────────────────────────────────────────────

func run() error {
	// 1. Load config
	cfgPath := "config/engine.toml"
	if p := os.Getenv("TECS_CONFIG"); p != "" {
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

	// 3. Type registry and services
	printSection("Registry")
	types := ecs.NewTypeRegistry()
	component.Register(types)
	printStat("Component types", int(types.MaxID()))

	sched := job.NewScheduler(cfg.Jobs.Workers, cfg.Jobs.QueueSize, log)
	defer sched.Close()
	services := service.NewRegistry()
	service.Provide(services, sched)
	printStat("Job workers", cfg.Jobs.Workers)

	// 4. World, graph and frame driver
	bus := event.NewBus()
	world := ecs.NewWorld(types, ecs.WithServices(services))
	graph := object.NewGraph(object.WithBus(bus), object.WithLogger(log))
	spawner := object.NewSpawner(world, graph, log)
	sys := coresys.New(world, graph, coresys.WithBus(bus), coresys.WithLogger(log))

	event.Subscribe(bus, func(ev event.ObjectStarted) {
		log.Debug("entity object started", zap.Stringer("entity", ev.Entity))
	})
	event.Subscribe(bus, func(ev event.ObjectPruned) {
		log.Info("entity object removed", zap.Stringer("entity", ev.Entity))
	})

	// 5. Scripts and prefabs
	printSection("Data")
	var engine *scripting.Engine
	if cfg.Scripting.Enabled {
		engine, err = scripting.NewEngine(cfg.Scripting.Dir, types, log)
		if err != nil {
			return fmt.Errorf("lua engine: %w", err)
		}
		defer engine.Close()
		printOK("Lua scripts loaded")
	}

	prefabs, err := data.LoadPrefabTable(cfg.Data.Prefabs, types)
	if err != nil {
		return fmt.Errorf("load prefabs: %w", err)
	}
	printStat("Prefabs", prefabs.Count())

	spawned, err := spawnAll(prefabs, spawner, engine)
	if err != nil {
		return err
	}
	printStat("Entity objects", spawned)
	fmt.Println()

	// 6. Frame loop
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	log.Info("frame loop starting",
		zap.Duration("tick", cfg.Engine.TickRate),
		zap.Uint64("max_frames", cfg.Engine.MaxFrames))
	runner := coresys.NewRunner(sys, cfg.Engine.TickRate, cfg.Engine.MaxFrames, log)
	if err := runner.Run(ctx); err != nil && ctx.Err() == nil {
		return fmt.Errorf("frame loop: %w", err)
	}
	log.Info("engine stopped",
		zap.Uint64("frames", sys.Frame()),
		zap.Int("entities", world.EntityCount()))
	return nil
}

// spawnAll instantiates the spawn list. Prefabs naming a script get a Lua
// behavior; the rest get no-op hooks.
func spawnAll(prefabs *data.PrefabTable, spawner *object.Spawner, engine *scripting.Engine) (int, error) {
	n := 0
	for _, s := range prefabs.Spawns() {
		p := prefabs.Get(s.Prefab)
		for i := 0; i < s.Count; i++ {
			var b object.Behavior = object.Hooks{}
			if p.Script != "" {
				if engine == nil {
					return n, fmt.Errorf("prefab %s needs script %s but scripting is disabled", p.Name, p.Script)
				}
				sb, err := engine.Behavior(p.Script)
				if err != nil {
					return n, fmt.Errorf("prefab %s: %w", p.Name, err)
				}
				b = sb
			}
			o, err := spawner.SpawnWith(p.Apply, b)
			if err != nil {
				return n, err
			}
			o.Handle().Commit()
			n++
		}
	}
	return n, nil
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
