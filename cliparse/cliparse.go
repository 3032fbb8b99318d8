// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package cliparse

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/danielhkuo/team-sorter/db"
	"github.com/danielhkuo/team-sorter/matchtimer"
	"github.com/danielhkuo/team-sorter/models"
	"github.com/danielhkuo/team-sorter/roster"
)

const (
	DefaultPort        = 3318
	DefaultDatabaseURL = "file:team-sorter.db"
)

type Config struct {
	Port         int
	DatabaseURL  string
	DatabaseType string
	StorageKey   string
	ShuffleDelay time.Duration
	ConfigFile   string

	Defaults Defaults
}

// Defaults are the session settings a fresh server starts with
type Defaults struct {
	TeamCount      int  `yaml:"team_count"`
	PlayersPerTeam int  `yaml:"players_per_team"`
	TimerMinutes   int  `yaml:"timer_minutes"`
	TimerSeconds   int  `yaml:"timer_seconds"`
	Sound          bool `yaml:"sound"`
}

// DefaultDefaults returns 2 teams of 5 and a 10 minute match with sound on
func DefaultDefaults() Defaults {
	return Defaults{
		TeamCount:      models.DefaultTeamCount,
		PlayersPerTeam: models.DefaultPlayersPerTeam,
		TimerMinutes:   matchtimer.DefaultMinutes,
		TimerSeconds:   0,
		Sound:          true,
	}
}

// TeamConfig returns the clamped team configuration
func (d Defaults) TeamConfig() models.TeamConfig {
	return models.TeamConfig{TeamCount: d.TeamCount, PlayersPerTeam: d.PlayersPerTeam}.Clamp()
}

// ParseFlags validates flags and fills the rest from the environment
func ParseFlags(args []string) (Config, error) {
	var cfg Config

	fs := flag.NewFlagSet("team-sorter", flag.ContinueOnError)

	fs.IntVar(&cfg.Port, "p", 0, "Server port")
	fs.StringVar(&cfg.DatabaseURL, "d", "", "Database URL")
	fs.StringVar(&cfg.DatabaseType, "t", "", "Database type (sqlite, postgres or memory)")
	fs.StringVar(&cfg.StorageKey, "k", "", "Storage key for the roster")
	fs.DurationVar(&cfg.ShuffleDelay, "delay", -1, "Pause before teams are revealed")
	fs.StringVar(&cfg.ConfigFile, "c", "", "YAML file with session defaults")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	// Fall back to environment variables
	if cfg.Port == 0 {
		if portStr := os.Getenv("PORT"); portStr != "" {
			port, err := strconv.Atoi(portStr)
			if err != nil {
				return Config{}, errors.New("invalid PORT env variable")
			}
			cfg.Port = port
		} else {
			cfg.Port = DefaultPort
		}
	}
	if cfg.Port < 1 || cfg.Port > 65535 {
		return Config{}, fmt.Errorf("port out of range: %d", cfg.Port)
	}

	if cfg.DatabaseType == "" {
		cfg.DatabaseType = os.Getenv("DATABASE_TYPE")
		if cfg.DatabaseType == "" {
			cfg.DatabaseType = db.TypeSQLite
		}
	}
	switch cfg.DatabaseType {
	case db.TypeSQLite, db.TypePostgres, db.TypeMemory:
	default:
		return Config{}, fmt.Errorf("%w: %q", db.ErrUnsupportedType, cfg.DatabaseType)
	}

	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	}
	if cfg.DatabaseURL == "" {
		switch cfg.DatabaseType {
		case db.TypePostgres:
			return Config{}, errors.New("database URL required for postgres (use -d or DATABASE_URL env)")
		case db.TypeSQLite:
			cfg.DatabaseURL = DefaultDatabaseURL
		}
	}

	if cfg.StorageKey == "" {
		cfg.StorageKey = os.Getenv("STORAGE_KEY")
		if cfg.StorageKey == "" {
			cfg.StorageKey = db.DefaultStorageKey
		}
	}

	if cfg.ShuffleDelay < 0 {
		cfg.ShuffleDelay = roster.DefaultShuffleDelay
		if delayStr := os.Getenv("SHUFFLE_DELAY"); delayStr != "" {
			delay, err := time.ParseDuration(delayStr)
			if err != nil || delay < 0 {
				return Config{}, errors.New("invalid SHUFFLE_DELAY env variable")
			}
			cfg.ShuffleDelay = delay
		}
	}

	if cfg.ConfigFile == "" {
		cfg.ConfigFile = os.Getenv("CONFIG_FILE")
	}
	cfg.Defaults = DefaultDefaults()
	if cfg.ConfigFile != "" {
		defaults, err := LoadDefaults(cfg.ConfigFile)
		if err != nil {
			return Config{}, err
		}
		cfg.Defaults = defaults
	}

	return cfg, nil
}

// LoadDefaults reads a YAML defaults file. Keys missing from the file keep
// their built-in values.
func LoadDefaults(path string) (Defaults, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Defaults{}, fmt.Errorf("failed to read config file: %w", err)
	}

	defaults := DefaultDefaults()
	if err := yaml.Unmarshal(data, &defaults); err != nil {
		return Defaults{}, fmt.Errorf("failed to parse config file: %w", err)
	}

	return defaults, nil
}
