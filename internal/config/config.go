// Package config loads simulator settings with viper from a YAML file and
// COMMANDER_* environment variables.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/magefree/commander-go/internal/game"
	"github.com/spf13/viper"
)

// Config is the full simulator configuration.
type Config struct {
	Game    GameConfig    `mapstructure:"game"`
	Sim     SimConfig     `mapstructure:"sim"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// GameConfig holds the rule parameters of each game.
type GameConfig struct {
	StartingLife             int  `mapstructure:"starting_life"`
	CommanderDamageThreshold int  `mapstructure:"commander_damage_threshold"`
	CommanderTax             int  `mapstructure:"commander_tax"`
	OpeningHand              int  `mapstructure:"opening_hand"`
	SkipFirstDraw            bool `mapstructure:"skip_first_draw"`
	MaxTurns                 int  `mapstructure:"max_turns"`
	ValidateDecks            bool `mapstructure:"validate_decks"`
}

// SimConfig controls how many games run and where their inputs and outputs go.
type SimConfig struct {
	Games     int      `mapstructure:"games"`
	Seed      uint64   `mapstructure:"seed"`
	Workers   int      `mapstructure:"workers"`
	DecksFile string   `mapstructure:"decks_file"`
	Decks     []string `mapstructure:"decks"`
	ReplayDir string   `mapstructure:"replay_dir"`
	Verbose   bool     `mapstructure:"verbose"`
}

// LoggingConfig selects the zap level and encoder.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Load reads the configuration. An empty path uses defaults and the
// environment only. COMMANDER_GAME_MAX_TURNS overrides game.max_turns, and so on.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("COMMANDER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	def := game.DefaultRules()
	v.SetDefault("game.starting_life", def.StartingLife)
	v.SetDefault("game.commander_damage_threshold", def.CommanderDamageThreshold)
	v.SetDefault("game.commander_tax", def.CommanderTaxPerCast)
	v.SetDefault("game.opening_hand", def.OpeningHand)
	v.SetDefault("game.skip_first_draw", def.SkipFirstDraw)
	v.SetDefault("game.max_turns", 100)
	v.SetDefault("game.validate_decks", true)

	v.SetDefault("sim.games", 1)
	v.SetDefault("sim.seed", 1)
	v.SetDefault("sim.workers", 4)
	v.SetDefault("sim.decks_file", "configs/decks.yaml")
	v.SetDefault("sim.decks", []string{})
	v.SetDefault("sim.replay_dir", "")
	v.SetDefault("sim.verbose", false)

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
}

// Validate rejects settings no game can be played with.
func (c *Config) Validate() error {
	var errs []error
	if c.Game.StartingLife <= 0 {
		errs = append(errs, errors.New("game.starting_life must be positive"))
	}
	if c.Game.CommanderDamageThreshold <= 0 {
		errs = append(errs, errors.New("game.commander_damage_threshold must be positive"))
	}
	if c.Game.CommanderTax < 0 {
		errs = append(errs, errors.New("game.commander_tax must not be negative"))
	}
	if c.Game.OpeningHand < 0 {
		errs = append(errs, errors.New("game.opening_hand must not be negative"))
	}
	if c.Game.MaxTurns <= 0 {
		errs = append(errs, errors.New("game.max_turns must be positive"))
	}
	if c.Sim.Games <= 0 {
		errs = append(errs, errors.New("sim.games must be positive"))
	}
	if c.Sim.Workers <= 0 {
		errs = append(errs, errors.New("sim.workers must be positive"))
	}
	if len(errs) > 0 {
		return fmt.Errorf("invalid config: %w", errors.Join(errs...))
	}
	return nil
}

// Rules converts the game section into engine rules.
func (g GameConfig) Rules() game.Rules {
	return game.Rules{
		StartingLife:             g.StartingLife,
		CommanderDamageThreshold: g.CommanderDamageThreshold,
		CommanderTaxPerCast:      g.CommanderTax,
		OpeningHand:              g.OpeningHand,
		SkipFirstDraw:            g.SkipFirstDraw,
	}
}
