// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

# Config Fields

  - Port: Server listen port (default: 3318)
  - DatabaseURL: sqlite DSN or PostgreSQL connection string (default: file:team-sorter.db)
  - DatabaseType: sqlite, postgres or memory (default: sqlite)
  - StorageKey: Key the roster is stored under (default: pinico-city-players)
  - ShuffleDelay: Pause before teams are revealed (default: 500ms)
  - ConfigFile: Optional YAML file with session defaults
  - Defaults: Team and timer settings a fresh server starts with

# CLI Flags

	-p      Server port
	-d      Database URL
	-t      Database type
	-k      Storage key
	-delay  Shuffle delay (Go duration, e.g. 250ms)
	-c      Defaults file

# Environment Variables

Flags fall back to environment variables:

	PORT          → -p
	DATABASE_URL  → -d
	DATABASE_TYPE → -t
	STORAGE_KEY   → -k
	SHUFFLE_DELAY → -delay
	CONFIG_FILE   → -c

CLI flags take precedence over environment variables.

# Defaults File

	team_count: 2
	players_per_team: 5
	timer_minutes: 10
	timer_seconds: 0
	sound: true

Missing keys keep their built-in values. Team values are clamped when
used, so out-of-range numbers are never an error.

# Validation

ParseFlags returns an error if:

  - PORT is not a number or is out of range
  - the database type is not sqlite, postgres or memory
  - postgres is selected without a database URL
  - SHUFFLE_DELAY is not a valid duration
  - the defaults file cannot be read or parsed
*/
package cliparse
