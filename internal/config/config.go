package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"

	"github.com/udisondev/teambuilder/internal/game/legality"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "TEAMBUILDER_"

// DefaultPath is used when TEAMBUILDER_CONFIG is unset.
const DefaultPath = "config/teambuilder.yaml"

// Config holds all settings of the teambuilder binary.
type Config struct {
	LogLevel string `yaml:"log_level" env:"LOG_LEVEL"`
	Ruleset  string `yaml:"ruleset"   env:"RULESET"`

	// Build
	Seed            uint64   `yaml:"seed"             env:"SEED"`
	Attempts        int      `yaml:"attempts"         env:"ATTEMPTS"`
	Species         []string `yaml:"species"          env:"SPECIES" envSeparator:","`
	BattleContext   bool     `yaml:"battle_context"   env:"BATTLE_CONTEXT"`
	RequireResolved bool     `yaml:"require_resolved" env:"REQUIRE_RESOLVED"`
	Format          Format   `yaml:"format"           envPrefix:"FORMAT_"`

	// Selection and scoring
	Power                float64 `yaml:"power"                 env:"POWER"`
	Workers              int     `yaml:"workers"               env:"WORKERS"`
	Epsilon              float64 `yaml:"epsilon"               env:"EPSILON"`
	ImprovementThreshold float64 `yaml:"improvement_threshold" env:"IMPROVEMENT_THRESHOLD"`
	RequirementBonus     float64 `yaml:"requirement_bonus"     env:"REQUIREMENT_BONUS"`

	BanRules []legality.BanRule `yaml:"ban_rules"`

	Database DatabaseConfig `yaml:"database" envPrefix:"DB_"`
}

// Format describes the battle format rosters are built for.
type Format struct {
	Doubles  bool `yaml:"doubles"   env:"DOUBLES"`
	TeamSize int  `yaml:"team_size" env:"TEAM_SIZE"`
}

// DatabaseConfig holds PostgreSQL connection parameters.
// Rosters are only persisted when Enabled is set.
type DatabaseConfig struct {
	Enabled  bool   `yaml:"enabled"  env:"ENABLED"`
	Host     string `yaml:"host"     env:"HOST"`
	Port     int    `yaml:"port"     env:"PORT"`
	User     string `yaml:"user"     env:"USER"`
	Password string `yaml:"password" env:"PASSWORD"`
	DBName   string `yaml:"dbname"   env:"NAME"`
	SSLMode  string `yaml:"sslmode"  env:"SSLMODE"`
}

// DSN returns the PostgreSQL connection string.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.DBName, d.SSLMode,
	)
}

// Default returns Config with sensible defaults.
func Default() Config {
	return Config{
		LogLevel:             "info",
		Ruleset:              "data/ruleset.yaml",
		Seed:                 1,
		Attempts:             10,
		BattleContext:        true,
		Format:               Format{TeamSize: 6},
		Power:                1,
		Workers:              4,
		Epsilon:              1e-4,
		ImprovementThreshold: 0.10,
		RequirementBonus:     4,
		Database: DatabaseConfig{
			Host:     "127.0.0.1",
			Port:     5432,
			User:     "teambuilder",
			Password: "teambuilder",
			DBName:   "teambuilder",
			SSLMode:  "disable",
		},
	}
}

// Path returns the config file location, honoring TEAMBUILDER_CONFIG.
func Path() string {
	if p := os.Getenv(EnvPrefix + "CONFIG"); p != "" {
		return p
	}
	return DefaultPath
}

// Load reads the YAML file at path over the defaults, then applies
// TEAMBUILDER_* environment overrides. A missing file yields defaults.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return cfg, fmt.Errorf("reading config %s: %w", path, err)
	default:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parsing config %s: %w", path, err)
		}
	}

	if err := env.ParseWithOptions(&cfg, env.Options{Prefix: EnvPrefix}); err != nil {
		return cfg, fmt.Errorf("parsing environment: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate rejects settings the builder cannot work with.
func (c Config) Validate() error {
	var errs []error
	if c.Ruleset == "" {
		errs = append(errs, errors.New("ruleset path is empty"))
	}
	if c.Attempts < 1 {
		errs = append(errs, fmt.Errorf("attempts must be positive, got %d", c.Attempts))
	}
	if c.Format.TeamSize < 1 {
		errs = append(errs, fmt.Errorf("format.team_size must be positive, got %d", c.Format.TeamSize))
	}
	if len(c.Species) > c.Format.TeamSize {
		errs = append(errs, fmt.Errorf("%d species requested for a team of %d", len(c.Species), c.Format.TeamSize))
	}
	if c.Power <= 0 {
		errs = append(errs, fmt.Errorf("power must be positive, got %g", c.Power))
	}
	if c.Epsilon <= 0 {
		errs = append(errs, fmt.Errorf("epsilon must be positive, got %g", c.Epsilon))
	}
	if c.Workers < 1 {
		errs = append(errs, fmt.Errorf("workers must be positive, got %d", c.Workers))
	}
	return errors.Join(errs...)
}
