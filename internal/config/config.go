// Package config loads runtime configuration from a YAML file with
// CINETCG_* environment overrides.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/cinetcg/cinetcg-go/internal/match"
)

// Config is the root configuration document.
type Config struct {
	Match     MatchConfig     `mapstructure:"match"`
	Logging   LoggingConfig   `mapstructure:"logging"`
	Simulator SimulatorConfig `mapstructure:"simulator"`
	Database  DatabaseConfig  `mapstructure:"database"`
}

// MatchConfig mirrors the engine's tunable rules.
type MatchConfig struct {
	StartingHealth int `mapstructure:"starting_health"`
	StartingHand   int `mapstructure:"starting_hand"`
	DeckSize       int `mapstructure:"deck_size"`
	BoardSlots     int `mapstructure:"board_slots"`
	MaxEnergy      int `mapstructure:"max_energy"`
}

// LoggingConfig controls the zap logger.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`  // debug|info|warn|error
	Format string `mapstructure:"format"` // json|console
}

// SimulatorConfig controls the headless self-play runner.
type SimulatorConfig struct {
	Matches     int      `mapstructure:"matches"`
	Seed        int64    `mapstructure:"seed"`
	Difficulty0 int      `mapstructure:"difficulty0"`
	Difficulty1 int      `mapstructure:"difficulty1"`
	CardsFile   string   `mapstructure:"cards_file"`
	DeckFiles   []string `mapstructure:"deck_files"`
}

// DatabaseConfig points at the optional match archive. An empty DSN
// disables archiving entirely.
type DatabaseConfig struct {
	DSN string `mapstructure:"dsn"`
}

// Load reads configuration from the given path. An empty path yields the
// defaults.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("CINETCG")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	def := match.DefaultConfig()
	v.SetDefault("match.starting_health", def.StartingHealth)
	v.SetDefault("match.starting_hand", def.StartingHand)
	v.SetDefault("match.deck_size", def.DeckSize)
	v.SetDefault("match.board_slots", def.BoardSlots)
	v.SetDefault("match.max_energy", def.MaxEnergy)

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")

	v.SetDefault("simulator.matches", 1)
	v.SetDefault("simulator.seed", 1)
	v.SetDefault("simulator.difficulty0", 1)
	v.SetDefault("simulator.difficulty1", 1)
	v.SetDefault("simulator.cards_file", "data/cards.json")
	v.SetDefault("simulator.deck_files", []string{
		"data/decks/aggro.yaml",
		"data/decks/guardian.yaml",
	})
}

func (c *Config) validate() error {
	if c.Match.DeckSize < 1 {
		return fmt.Errorf("match.deck_size must be positive, got %d", c.Match.DeckSize)
	}
	if c.Match.BoardSlots < 1 {
		return fmt.Errorf("match.board_slots must be positive, got %d", c.Match.BoardSlots)
	}
	if c.Match.StartingHand > c.Match.DeckSize {
		return fmt.Errorf("match.starting_hand %d exceeds deck size %d", c.Match.StartingHand, c.Match.DeckSize)
	}
	for i, d := range []int{c.Simulator.Difficulty0, c.Simulator.Difficulty1} {
		if d < 0 || d > 2 {
			return fmt.Errorf("simulator.difficulty%d must be 0, 1, or 2, got %d", i, d)
		}
	}
	return nil
}

// MatchRules converts the configured rules into the engine's config type.
func (c *Config) MatchRules() match.Config {
	return match.Config{
		StartingHealth: c.Match.StartingHealth,
		StartingHand:   c.Match.StartingHand,
		DeckSize:       c.Match.DeckSize,
		BoardSlots:     c.Match.BoardSlots,
		MaxEnergy:      c.Match.MaxEnergy,
	}
}
