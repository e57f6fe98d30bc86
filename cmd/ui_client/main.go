package main

import (
	"context"
	"flag"
	"math/rand"
	"os"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/mitchelldurbincs/HexDominion/internal/config"
	"github.com/mitchelldurbincs/HexDominion/internal/game"
	"github.com/mitchelldurbincs/HexDominion/internal/ui"
)

func main() {
	configPath := flag.String("config", "", "Path to config file")
	seed := flag.Int64("seed", 0, "Map seed (0 for the clock)")
	difficulty := flag.String("difficulty", "", "Opponent difficulty (empty to use config default)")
	flag.Parse()

	if err := config.Init(*configPath); err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize config")
	}
	cfg := config.Get()

	level := zerolog.InfoLevel
	if cfg.Development.VerboseLogging {
		level = zerolog.DebugLevel
	}
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}).
		Level(level).With().Timestamp().Logger()

	if *seed == 0 {
		*seed = time.Now().UnixNano()
	}
	gameCfg := game.GameConfigFromConfig(cfg)
	gameCfg.Seed = *seed
	gameCfg.Rng = rand.New(rand.NewSource(*seed))
	gameCfg.Logger = logger
	if *difficulty != "" {
		gameCfg.Difficulty = *difficulty
	}

	engine, err := game.NewEngine(context.Background(), gameCfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to create engine")
	}

	uiGame := ui.NewGame(engine, cfg, logger)
	w, h := uiGame.WindowSize()
	ebiten.SetWindowSize(w, h)
	ebiten.SetWindowTitle(cfg.UI.Window.Title)

	if err := ebiten.RunGame(uiGame); err != nil {
		logger.Fatal().Err(err).Msg("UI exited")
	}
}
