package game

import (
	"github.com/mitchelldurbincs/HexDominion/internal/config"
	"github.com/mitchelldurbincs/HexDominion/internal/game/core"
	"github.com/mitchelldurbincs/HexDominion/internal/game/mapgen"
	"github.com/mitchelldurbincs/HexDominion/internal/game/planner"
)

// TemplatesFromConfig builds the building template registry.
func TemplatesFromConfig(b config.BuildingsConfig) core.Templates {
	tpl := func(kind core.BuildingKind, c config.BuildingConfig) core.Template {
		return core.Template{
			Kind:     kind,
			Cost:     c.Cost,
			Area:     c.Area,
			Cooldown: c.Cooldown,
			MaxHP:    c.HP,
			Damage:   c.Damage,
			Range:    c.Range,
		}
	}
	return core.Templates{
		core.KindCommandCenter: tpl(core.KindCommandCenter, b.CommandCenter),
		core.KindTurret:        tpl(core.KindTurret, b.Turret),
		core.KindRefinery:      tpl(core.KindRefinery, b.Refinery),
	}
}

// MapConfigFromConfig converts the map section for the generator.
func MapConfigFromConfig(m config.MapConfig) mapgen.MapConfig {
	return mapgen.MapConfig{
		Width:            m.Width,
		Height:           m.Height,
		ResourceDeposits: m.ResourceDeposits,
		ImpassableTiles:  m.ImpassableTiles,
		ElevatedTiles:    m.ElevatedTiles,
	}
}

// GameConfigFromConfig fills the simulation settings of a GameConfig.
// Logger, Rng, GameID and EventBus are left for the caller.
func GameConfigFromConfig(c *config.Config) GameConfig {
	g := c.Game
	return GameConfig{
		Map:                MapConfigFromConfig(g.Map),
		Templates:          TemplatesFromConfig(g.Buildings),
		StartingPool:       g.Economy.StartingPool,
		RefineryIncome:     g.Economy.RefineryIncome,
		Difficulty:         g.Difficulty.Default,
		Levels:             planner.Levels(g.Difficulty.Levels),
		FramesPerTick:      g.Loop.FramesPerTick,
		LandingStep:        g.Loop.LandingStep,
		PlannerMaxAttempts: g.Planner.MaxAttempts,
	}
}

// DefaultGameConfig reads the global configuration.
func DefaultGameConfig() GameConfig {
	return GameConfigFromConfig(config.Get())
}
