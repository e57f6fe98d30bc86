package main

import (
	"context"
	"flag"
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/mitchelldurbincs/HexDominion/internal/config"
	"github.com/mitchelldurbincs/HexDominion/internal/game"
	"github.com/mitchelldurbincs/HexDominion/internal/game/core"
	"github.com/mitchelldurbincs/HexDominion/internal/game/events"
	"github.com/mitchelldurbincs/HexDominion/internal/game/events/subscribers"
)

// Headless match: a scripted human against the opponent planner, printing
// the board as it goes.
func main() {
	configPath := flag.String("config", "", "Path to config file")
	maxTicks := flag.Int("max-ticks", -1, "Ticks to simulate (-1 to use config default)")
	seed := flag.Int64("seed", 0, "Map seed (0 to use config default, or the clock when that is 0 too)")
	printEvery := flag.Int("print-every", -1, "Print the board every N ticks (-1 to use config default)")
	difficulty := flag.String("difficulty", "", "Opponent difficulty (empty to use config default)")
	plain := flag.Bool("plain", false, "Print the board without ANSI colors")
	flag.Parse()

	if err := config.Init(*configPath); err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize config")
	}
	cfg := config.Get()
	demo := cfg.Server.GameServer.Demo

	if *maxTicks == -1 {
		*maxTicks = demo.MaxTicks
	}
	if *printEvery == -1 {
		*printEvery = demo.PrintEvery
	}
	if *seed == 0 {
		*seed = demo.Seed
	}
	if *seed == 0 {
		*seed = time.Now().UnixNano()
	}

	logger := setupLogging(cfg.Server.GameServer.LogLevel, cfg.Server.GameServer.LogFormat)

	bus := events.NewEventBus()
	eventLogger := subscribers.NewLoggerSubscriber("demo-events", logger, zerolog.InfoLevel)
	eventLogger.SetEventFilter([]string{
		events.TypeGameStarted,
		events.TypeBuildingPlaced,
		events.TypeBuildingDestroyed,
		events.TypePlannerTransition,
		events.TypeGameEnded,
	})
	eventLogger.SetDevMode(cfg.Development.VerboseLogging)
	bus.Subscribe(eventLogger)

	rng := rand.New(rand.NewSource(*seed))
	gameCfg := game.GameConfigFromConfig(cfg)
	gameCfg.Seed = *seed
	gameCfg.Rng = rng
	gameCfg.Logger = logger
	gameCfg.EventBus = bus
	if *difficulty != "" {
		gameCfg.Difficulty = *difficulty
	}

	ctx := context.Background()
	engine, err := game.NewEngine(ctx, gameCfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to create engine")
	}
	human := game.NewScriptedHuman(rng, logger)

	render := engine.Board
	if *plain {
		render = engine.PlainBoard
	}
	// One tick is FramesPerTick frames at 60 frames per second.
	tickTime := time.Duration(engine.FramesPerTick()) * time.Second / 60

	fmt.Printf("Seed: %d  Difficulty: %s\n%s\n", *seed, engine.Difficulty(), render())

	for tick := 1; tick <= *maxTicks && !engine.IsGameOver(); tick++ {
		if cmds := human.NextCommands(engine); len(cmds) > 0 {
			if err := engine.Apply(ctx, cmds...); err != nil {
				logger.Debug().Err(err).Msg("Scripted command rejected")
			}
		}
		engine.AdvanceClock(tickTime)
		if err := engine.Step(ctx); err != nil {
			logger.Error().Err(err).Int("tick", tick).Msg("Step failed")
			break
		}

		if *printEvery > 0 && tick%*printEvery == 0 {
			printStatus(engine, render)
		}
	}

	printStatus(engine, render)
	fmt.Printf("Result: %s after %d ticks\n", engine.GameState(), engine.CurrentTick())
}

func printStatus(e *game.Engine, render func() string) {
	fmt.Printf("Tick %d  state=%s  planner=%s\n", e.CurrentTick(), e.GameState(), e.PlannerState())
	fmt.Print(render())
	for _, f := range []struct {
		name  string
		stats game.FactionStats
	}{
		{"human", e.Stats(core.FactionHuman)},
		{"cpu", e.Stats(core.FactionCPU)},
	} {
		fmt.Printf("  %-5s cells=%-3d buildings=%-2d (cc=%d turrets=%d refineries=%d) pool=%d\n",
			f.name, f.stats.Cells, f.stats.Buildings, f.stats.CommandCenters, f.stats.Turrets, f.stats.Refineries, f.stats.Pool)
	}
	fmt.Println()
}

func setupLogging(level, format string) zerolog.Logger {
	logLevel, err := zerolog.ParseLevel(level)
	if err != nil || logLevel == zerolog.NoLevel {
		logLevel = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(logLevel)

	if format == "json" || os.Getenv("APP_ENV") == "production" {
		return zerolog.New(os.Stderr).With().Timestamp().Logger()
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}).With().Timestamp().Logger()
}

