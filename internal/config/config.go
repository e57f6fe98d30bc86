package config

import (
	"fmt"
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Game        GameConfig        `mapstructure:"game"`
	Server      ServerConfig      `mapstructure:"server"`
	UI          UIConfig          `mapstructure:"ui"`
	Colors      ColorsConfig      `mapstructure:"colors"`
	Development DevelopmentConfig `mapstructure:"development"`
}

// GameConfig holds simulation settings
type GameConfig struct {
	Map        MapConfig        `mapstructure:"map"`
	Economy    EconomyConfig    `mapstructure:"economy"`
	Buildings  BuildingsConfig  `mapstructure:"buildings"`
	Difficulty DifficultyConfig `mapstructure:"difficulty"`
	Loop       LoopConfig       `mapstructure:"loop"`
	Planner    PlannerConfig    `mapstructure:"planner"`
}

// MapConfig holds map generation settings
type MapConfig struct {
	Width            int `mapstructure:"width"`
	Height           int `mapstructure:"height"`
	ResourceDeposits int `mapstructure:"resource_deposits"`
	ImpassableTiles  int `mapstructure:"impassable_tiles"`
	ElevatedTiles    int `mapstructure:"elevated_tiles"`
}

// EconomyConfig holds resource pool settings
type EconomyConfig struct {
	StartingPool   int `mapstructure:"starting_pool"`
	RefineryIncome int `mapstructure:"refinery_income"`
}

// BuildingConfig is one building template. Cooldown is in seconds.
type BuildingConfig struct {
	Cost     int `mapstructure:"cost"`
	Area     int `mapstructure:"area"`
	Cooldown int `mapstructure:"cooldown"`
	HP       int `mapstructure:"hp"`
	Damage   int `mapstructure:"damage"`
	Range    int `mapstructure:"range"`
}

// BuildingsConfig holds the template of every buildable kind
type BuildingsConfig struct {
	CommandCenter BuildingConfig `mapstructure:"command_center"`
	Turret        BuildingConfig `mapstructure:"turret"`
	Refinery      BuildingConfig `mapstructure:"refinery"`
}

// DifficultyConfig maps level names to planner step divisors
type DifficultyConfig struct {
	Default string         `mapstructure:"default"`
	Levels  map[string]int `mapstructure:"levels"`
}

// LoopConfig holds frame and tick pacing
type LoopConfig struct {
	FramesPerTick int `mapstructure:"frames_per_tick"`
	LandingStep   int `mapstructure:"landing_step"`
}

// PlannerConfig holds opponent planner settings
type PlannerConfig struct {
	MaxAttempts int `mapstructure:"max_attempts"`
}

// ServerConfig holds server configuration
type ServerConfig struct {
	GameServer GameServerConfig `mapstructure:"game_server"`
	GRPCServer GRPCServerConfig `mapstructure:"grpc_server"`
}

// GameServerConfig configures the headless runner
type GameServerConfig struct {
	LogLevel  string     `mapstructure:"log_level"`
	LogFormat string     `mapstructure:"log_format"`
	Demo      DemoConfig `mapstructure:"demo"`
}

// DemoConfig holds headless match settings
type DemoConfig struct {
	MaxTicks   int   `mapstructure:"max_ticks"`
	Seed       int64 `mapstructure:"seed"`
	PrintEvery int   `mapstructure:"print_every"`
}

// GRPCServerConfig holds gRPC server configuration
type GRPCServerConfig struct {
	Host                  string `mapstructure:"host"`
	Port                  int    `mapstructure:"port"`
	LogLevel              string `mapstructure:"log_level"`
	MaxSessions           int    `mapstructure:"max_sessions"`
	EnableReflection      bool   `mapstructure:"enable_reflection"`
	GracefulShutdownDelay int    `mapstructure:"graceful_shutdown_delay"`
	SessionTTL            int    `mapstructure:"session_ttl"`
	TickIntervalMs        int    `mapstructure:"tick_interval_ms"`
}

// UIConfig holds desktop client configuration
type UIConfig struct {
	Window WindowConfig `mapstructure:"window"`
	Hex    HexConfig    `mapstructure:"hex"`
}

// WindowConfig holds window settings
type WindowConfig struct {
	Width  int    `mapstructure:"width"`
	Height int    `mapstructure:"height"`
	Title  string `mapstructure:"title"`
}

// HexConfig holds hex tile geometry
type HexConfig struct {
	Size int `mapstructure:"size"`
}

// ColorsConfig holds all color configurations
type ColorsConfig struct {
	Factions FactionColorsConfig `mapstructure:"factions"`
	Tiles    TileColorsConfig    `mapstructure:"tiles"`
	UI       UIColorsConfig      `mapstructure:"ui"`
}

// FactionColorsConfig holds territory colors
type FactionColorsConfig struct {
	Neutral [3]int `mapstructure:"neutral"`
	Human   [3]int `mapstructure:"human"`
	CPU     [3]int `mapstructure:"cpu"`
	Pending [3]int `mapstructure:"pending"`
}

// TileColorsConfig holds terrain colors
type TileColorsConfig struct {
	Impassable [3]int `mapstructure:"impassable"`
	Resource   [3]int `mapstructure:"resource"`
	Elevated   [3]int `mapstructure:"elevated"`
}

// UIColorsConfig holds UI color settings
type UIColorsConfig struct {
	Background [3]int `mapstructure:"background"`
	GridLines  [3]int `mapstructure:"grid_lines"`
	Selection  [3]int `mapstructure:"selection"`
	Invalid    [3]int `mapstructure:"invalid"`
}

// DevelopmentConfig holds development/debug settings
type DevelopmentConfig struct {
	VerboseLogging  bool `mapstructure:"verbose_logging"`
	ShowCoordinates bool `mapstructure:"show_coordinates"`
}

var (
	// Global config instance
	cfg *Config
	v   *viper.Viper
)

// setViperDefaults sets all default values using Viper's SetDefault
func setViperDefaults(v *viper.Viper) {
	// Map defaults
	v.SetDefault("game.map.width", 20)
	v.SetDefault("game.map.height", 8)
	v.SetDefault("game.map.resource_deposits", 5)
	v.SetDefault("game.map.impassable_tiles", 20)
	v.SetDefault("game.map.elevated_tiles", 6)

	v.SetDefault("game.economy.starting_pool", 1000)
	v.SetDefault("game.economy.refinery_income", 10)

	// Building templates
	v.SetDefault("game.buildings.command_center.cost", 300)
	v.SetDefault("game.buildings.command_center.area", 4)
	v.SetDefault("game.buildings.command_center.cooldown", 30)
	v.SetDefault("game.buildings.command_center.hp", 500)
	v.SetDefault("game.buildings.turret.cost", 200)
	v.SetDefault("game.buildings.turret.area", 2)
	v.SetDefault("game.buildings.turret.cooldown", 5)
	v.SetDefault("game.buildings.turret.hp", 200)
	v.SetDefault("game.buildings.turret.damage", 20)
	v.SetDefault("game.buildings.turret.range", 6)
	v.SetDefault("game.buildings.refinery.cost", 100)
	v.SetDefault("game.buildings.refinery.area", 1)
	v.SetDefault("game.buildings.refinery.cooldown", 10)
	v.SetDefault("game.buildings.refinery.hp", 100)

	v.SetDefault("game.difficulty.default", "hard")
	v.SetDefault("game.difficulty.levels", map[string]int{"easy": 4, "hard": 3, "extreme": 2})

	v.SetDefault("game.loop.frames_per_tick", 60)
	v.SetDefault("game.loop.landing_step", 4)
	v.SetDefault("game.planner.max_attempts", 64)

	// Server defaults
	v.SetDefault("server.game_server.log_level", "info")
	v.SetDefault("server.game_server.log_format", "console")
	v.SetDefault("server.game_server.demo.max_ticks", 300)
	v.SetDefault("server.game_server.demo.seed", 0)
	v.SetDefault("server.game_server.demo.print_every", 30)

	// gRPC server defaults
	v.SetDefault("server.grpc_server.host", "0.0.0.0")
	v.SetDefault("server.grpc_server.port", 50051)
	v.SetDefault("server.grpc_server.log_level", "info")
	v.SetDefault("server.grpc_server.max_sessions", 100)
	v.SetDefault("server.grpc_server.enable_reflection", true)
	v.SetDefault("server.grpc_server.graceful_shutdown_delay", 5)
	v.SetDefault("server.grpc_server.session_ttl", 600)
	v.SetDefault("server.grpc_server.tick_interval_ms", 1000)

	// UI defaults
	v.SetDefault("ui.window.width", 960)
	v.SetDefault("ui.window.height", 540)
	v.SetDefault("ui.window.title", "Hex Dominion")
	v.SetDefault("ui.hex.size", 28)

	// Color defaults
	v.SetDefault("colors.factions.neutral", []int{60, 64, 72})
	v.SetDefault("colors.factions.human", []int{50, 110, 210})
	v.SetDefault("colors.factions.cpu", []int{200, 60, 50})
	v.SetDefault("colors.factions.pending", []int{90, 170, 120})
	v.SetDefault("colors.tiles.impassable", []int{25, 25, 25})
	v.SetDefault("colors.tiles.resource", []int{230, 190, 60})
	v.SetDefault("colors.tiles.elevated", []int{110, 110, 120})
	v.SetDefault("colors.ui.background", []int{12, 12, 16})
	v.SetDefault("colors.ui.grid_lines", []int{40, 40, 48})
	v.SetDefault("colors.ui.selection", []int{255, 255, 255})
	v.SetDefault("colors.ui.invalid", []int{255, 40, 40})

	// Development defaults
	v.SetDefault("development.verbose_logging", false)
	v.SetDefault("development.show_coordinates", false)
}

// Init initializes the configuration
func Init(configPath string) error {
	v = viper.New()

	// Set defaults before loading any config
	setViperDefaults(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
		v.AddConfigPath("/etc/hexdominion")
	}

	v.SetEnvPrefix("GRL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		// A missing explicit file falls back to defaults. For the search
		// paths only ConfigFileNotFoundError is tolerated.
		if configPath == "" {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return fmt.Errorf("error reading config file: %w", err)
			}
		}
	}

	cfg = &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return fmt.Errorf("unable to decode config into struct: %w", err)
	}

	if err := Validate(cfg); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}

	return nil
}

// Get returns the global config instance
func Get() *Config {
	if cfg == nil {
		// Initialize with defaults if not already initialized
		if err := Init(""); err != nil {
			panic("failed to initialize config with defaults: " + err.Error())
		}
	}
	return cfg
}

// GetViper returns the viper instance for advanced usage
func GetViper() *viper.Viper {
	if v == nil {
		panic("config not initialized - call Init() first")
	}
	return v
}

// LoadEnvironmentConfig merges config.<env>.yaml over the loaded config
func LoadEnvironmentConfig(env string) error {
	if env == "" {
		return nil
	}

	envFile := fmt.Sprintf("config.%s.yaml", env)

	v.SetConfigFile(envFile)
	if err := v.MergeInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return fmt.Errorf("error merging environment config %s: %w", envFile, err)
		}
	}

	if err := v.Unmarshal(cfg); err != nil {
		return fmt.Errorf("unable to decode merged config into struct: %w", err)
	}

	return nil
}

// Set allows runtime config updates. When the new value does not decode,
// the struct returned by Get keeps its previous contents.
func Set(key string, value interface{}) error {
	v.Set(key, value)
	next := &Config{}
	if err := v.Unmarshal(next); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("Config update did not decode")
		return fmt.Errorf("set %s: %w", key, err)
	}
	*cfg = *next
	return nil
}

// GetString gets a string value from config
func GetString(key string) string {
	return v.GetString(key)
}

// GetInt gets an int value from config
func GetInt(key string) int {
	return v.GetInt(key)
}

// GetBool gets a bool value from config
func GetBool(key string) bool {
	return v.GetBool(key)
}

// ConfigFilePath returns the path of the loaded config file
func ConfigFilePath() string {
	return v.ConfigFileUsed()
}

// WatchConfig enables hot-reloading of config file. onChange runs after the
// struct has been refreshed and validated; invalid edits are ignored.
func WatchConfig(onChange func()) {
	v.WatchConfig()
	v.OnConfigChange(func(e fsnotify.Event) {
		next := &Config{}
		if err := v.Unmarshal(next); err != nil {
			log.Warn().Err(err).Str("file", e.Name).Msg("Reloaded config did not decode, keeping previous")
			return
		}
		if err := Validate(next); err != nil {
			log.Warn().Err(err).Str("file", e.Name).Msg("Reloaded config is invalid, keeping previous")
			return
		}
		*cfg = *next
		if onChange != nil {
			onChange()
		}
	})
}

// Validate validates the configuration values
func Validate(c *Config) error {
	m := c.Game.Map
	if m.Width <= 0 || m.Height <= 0 {
		return fmt.Errorf("game.map dimensions must be positive")
	}
	if m.ResourceDeposits < 0 || m.ImpassableTiles < 0 || m.ElevatedTiles < 0 {
		return fmt.Errorf("game.map tile counts must be non-negative")
	}
	if m.ResourceDeposits+m.ImpassableTiles > m.Width*m.Height {
		return fmt.Errorf("game.map has more special tiles than cells")
	}

	if c.Game.Economy.StartingPool < 0 {
		return fmt.Errorf("game.economy.starting_pool must be non-negative")
	}
	if c.Game.Economy.RefineryIncome < 0 {
		return fmt.Errorf("game.economy.refinery_income must be non-negative")
	}

	buildings := map[string]BuildingConfig{
		"command_center": c.Game.Buildings.CommandCenter,
		"turret":         c.Game.Buildings.Turret,
		"refinery":       c.Game.Buildings.Refinery,
	}
	for name, b := range buildings {
		if b.Cost < 0 || b.Cooldown < 0 || b.Area < 0 {
			return fmt.Errorf("game.buildings.%s cost, area and cooldown must be non-negative", name)
		}
		if b.HP <= 0 {
			return fmt.Errorf("game.buildings.%s.hp must be positive", name)
		}
	}
	if c.Game.Buildings.Turret.Damage <= 0 || c.Game.Buildings.Turret.Range <= 0 {
		return fmt.Errorf("game.buildings.turret damage and range must be positive")
	}

	if len(c.Game.Difficulty.Levels) == 0 {
		return fmt.Errorf("game.difficulty.levels must not be empty")
	}
	for name, d := range c.Game.Difficulty.Levels {
		if d <= 0 {
			return fmt.Errorf("game.difficulty.levels.%s must be positive", name)
		}
	}
	if _, ok := c.Game.Difficulty.Levels[c.Game.Difficulty.Default]; !ok {
		return fmt.Errorf("game.difficulty.default %q is not a configured level", c.Game.Difficulty.Default)
	}

	if c.Game.Loop.FramesPerTick <= 0 {
		return fmt.Errorf("game.loop.frames_per_tick must be positive")
	}
	if c.Game.Loop.LandingStep <= 0 {
		return fmt.Errorf("game.loop.landing_step must be positive")
	}
	if c.Game.Planner.MaxAttempts <= 0 {
		return fmt.Errorf("game.planner.max_attempts must be positive")
	}

	g := c.Server.GRPCServer
	if g.Port <= 0 || g.Port > 65535 {
		return fmt.Errorf("server.grpc_server.port must be between 1 and 65535")
	}
	if g.MaxSessions <= 0 {
		return fmt.Errorf("server.grpc_server.max_sessions must be positive")
	}
	if g.GracefulShutdownDelay < 0 {
		return fmt.Errorf("server.grpc_server.graceful_shutdown_delay must be non-negative")
	}
	if g.SessionTTL <= 0 {
		return fmt.Errorf("server.grpc_server.session_ttl must be positive")
	}
	if g.TickIntervalMs <= 0 {
		return fmt.Errorf("server.grpc_server.tick_interval_ms must be positive")
	}
	if c.Server.GameServer.Demo.MaxTicks <= 0 {
		return fmt.Errorf("server.game_server.demo.max_ticks must be positive")
	}

	if c.UI.Window.Width <= 0 || c.UI.Window.Height <= 0 {
		return fmt.Errorf("ui.window dimensions must be positive")
	}
	if c.UI.Hex.Size <= 0 {
		return fmt.Errorf("ui.hex.size must be positive")
	}

	validateRGB := func(rgb [3]int, name string) error {
		for i, v := range rgb {
			if v < 0 || v > 255 {
				return fmt.Errorf("%s[%d] must be between 0 and 255", name, i)
			}
		}
		return nil
	}
	colors := []struct {
		rgb  [3]int
		name string
	}{
		{c.Colors.Factions.Neutral, "colors.factions.neutral"},
		{c.Colors.Factions.Human, "colors.factions.human"},
		{c.Colors.Factions.CPU, "colors.factions.cpu"},
		{c.Colors.Factions.Pending, "colors.factions.pending"},
		{c.Colors.Tiles.Impassable, "colors.tiles.impassable"},
		{c.Colors.Tiles.Resource, "colors.tiles.resource"},
		{c.Colors.UI.Background, "colors.ui.background"},
		{c.Colors.UI.Invalid, "colors.ui.invalid"},
	}
	for _, col := range colors {
		if err := validateRGB(col.rgb, col.name); err != nil {
			return err
		}
	}

	return nil
}
