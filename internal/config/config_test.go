package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mitchelldurbincs/HexDominion/internal/testutil"
)

func reset() {
	cfg = nil
	v = nil
}

func TestInit(t *testing.T) {
	tmpDir := t.TempDir()
	configFile := filepath.Join(tmpDir, "config.yaml")

	configContent := `
game:
  map:
    width: 24
    resource_deposits: 7
  economy:
    starting_pool: 1500
  buildings:
    turret:
      damage: 35
server:
  grpc_server:
    port: 8080
ui:
  window:
    width: 1024
    height: 768
`
	require.NoError(t, os.WriteFile(configFile, []byte(configContent), 0644))

	reset()
	require.NoError(t, Init(configFile))

	c := Get()
	assert.Equal(t, 24, c.Game.Map.Width)
	assert.Equal(t, 8, c.Game.Map.Height, "unset keys keep their defaults")
	assert.Equal(t, 7, c.Game.Map.ResourceDeposits)
	assert.Equal(t, 1500, c.Game.Economy.StartingPool)
	assert.Equal(t, 35, c.Game.Buildings.Turret.Damage)
	assert.Equal(t, 6, c.Game.Buildings.Turret.Range)
	assert.Equal(t, 8080, c.Server.GRPCServer.Port)
	assert.Equal(t, 1024, c.UI.Window.Width)
	assert.Equal(t, 768, c.UI.Window.Height)
}

func TestInitWithDefaults(t *testing.T) {
	reset()
	require.NoError(t, Init("/non/existent/path/config.yaml"))

	c := Get()
	assert.Equal(t, 20, c.Game.Map.Width)
	assert.Equal(t, 8, c.Game.Map.Height)
	assert.Equal(t, 5, c.Game.Map.ResourceDeposits)
	assert.Equal(t, 20, c.Game.Map.ImpassableTiles)
	assert.Equal(t, 1000, c.Game.Economy.StartingPool)

	cc := c.Game.Buildings.CommandCenter
	assert.Equal(t, BuildingConfig{Cost: 300, Area: 4, Cooldown: 30, HP: 500}, cc)
	assert.Equal(t, BuildingConfig{Cost: 100, Area: 1, Cooldown: 10, HP: 100}, c.Game.Buildings.Refinery)

	assert.Equal(t, "hard", c.Game.Difficulty.Default)
	assert.Equal(t, map[string]int{"easy": 4, "hard": 3, "extreme": 2}, c.Game.Difficulty.Levels)
	assert.Equal(t, 60, c.Game.Loop.FramesPerTick)
	assert.Equal(t, 64, c.Game.Planner.MaxAttempts)
	assert.Equal(t, 600, c.Server.GRPCServer.SessionTTL)
}

func TestEnvironmentVariables(t *testing.T) {
	reset()
	t.Setenv("GRL_GAME_MAP_WIDTH", "30")
	t.Setenv("GRL_SERVER_GRPC_SERVER_PORT", "9090")

	require.NoError(t, Init(""))

	c := Get()
	assert.Equal(t, 30, c.Game.Map.Width)
	assert.Equal(t, 9090, c.Server.GRPCServer.Port)
}

func TestSet(t *testing.T) {
	reset()
	require.NoError(t, Init(""))

	require.NoError(t, Set("game.economy.refinery_income", 25))
	require.NoError(t, Set("ui.window.width", 1280))

	c := Get()
	assert.Equal(t, 25, c.Game.Economy.RefineryIncome)
	assert.Equal(t, 1280, c.UI.Window.Width)
}

func TestSetUndecodableValueKeepsConfig(t *testing.T) {
	reset()
	require.NoError(t, Init(""))

	err := Set("game.map.width", "wide")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "game.map.width")
	assert.Equal(t, 20, Get().Game.Map.Width)
}

func TestGetHelpers(t *testing.T) {
	reset()
	require.NoError(t, Init(""))

	Set("test.string", "hello")
	Set("test.int", 42)
	Set("test.bool", true)

	assert.Equal(t, "hello", GetString("test.string"))
	assert.Equal(t, 42, GetInt("test.int"))
	assert.Equal(t, true, GetBool("test.bool"))
}

func TestLoadEnvironmentConfig(t *testing.T) {
	tmpDir := t.TempDir()

	baseConfig := filepath.Join(tmpDir, "config.yaml")
	baseContent := `
game:
  economy:
    starting_pool: 800
server:
  grpc_server:
    port: 50051
`
	require.NoError(t, os.WriteFile(baseConfig, []byte(baseContent), 0644))

	envConfig := filepath.Join(tmpDir, "config.prod.yaml")
	envContent := `
game:
  economy:
    starting_pool: 400
server:
  grpc_server:
    port: 8080
    log_level: "error"
`
	require.NoError(t, os.WriteFile(envConfig, []byte(envContent), 0644))

	oldWd, _ := os.Getwd()
	_ = os.Chdir(tmpDir)
	defer func() { _ = os.Chdir(oldWd) }()

	reset()
	require.NoError(t, Init(baseConfig))
	require.NoError(t, LoadEnvironmentConfig("prod"))

	c := Get()
	assert.Equal(t, 400, c.Game.Economy.StartingPool)
	assert.Equal(t, 8080, c.Server.GRPCServer.Port)
	assert.Equal(t, "error", c.Server.GRPCServer.LogLevel)
}

func TestValidate(t *testing.T) {
	reset()
	require.NoError(t, Init(""))
	base := *Get()

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{"defaults", func(*Config) {}, ""},
		{"zero width", func(c *Config) { c.Game.Map.Width = 0 }, "game.map dimensions"},
		{"too many special tiles", func(c *Config) { c.Game.Map.ImpassableTiles = 200 }, "more special tiles"},
		{"turret without damage", func(c *Config) { c.Game.Buildings.Turret.Damage = 0 }, "turret damage"},
		{"refinery hp", func(c *Config) { c.Game.Buildings.Refinery.HP = 0 }, "refinery.hp"},
		{"unknown default level", func(c *Config) {
			c.Game.Difficulty.Levels = map[string]int{"easy": 4}
			c.Game.Difficulty.Default = "hard"
		}, "not a configured level"},
		{"zero divisor", func(c *Config) {
			c.Game.Difficulty.Levels = map[string]int{"hard": 0}
		}, "levels.hard"},
		{"frames per tick", func(c *Config) { c.Game.Loop.FramesPerTick = 0 }, "frames_per_tick"},
		{"port", func(c *Config) { c.Server.GRPCServer.Port = 70000 }, "port"},
		{"ttl", func(c *Config) { c.Server.GRPCServer.SessionTTL = 0 }, "session_ttl"},
		{"color", func(c *Config) { c.Colors.Factions.Human = [3]int{0, 300, 0} }, "colors.factions.human[1]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := base
			levels := make(map[string]int, len(base.Game.Difficulty.Levels))
			for k, v := range base.Game.Difficulty.Levels {
				levels[k] = v
			}
			c.Game.Difficulty.Levels = levels
			tt.mutate(&c)

			err := Validate(&c)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestGetViperBeforeInitPanics(t *testing.T) {
	reset()
	testutil.AssertPanic(t, func() { GetViper() })
}
