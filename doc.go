// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the team-sorter API server.

team-sorter runs pick-up games. It keeps a roster of players rated
Beginner, Intermediate or Advanced. Each session, the players who showed up
are selected. The server splits them into skill-balanced teams and runs the
match countdown with a repeating end-of-match alarm. Every change is pushed
to connected screens over a websocket.

# Starting the Server

With no configuration the roster is kept in a local SQLite file:

	go run .

Or with flags:

	go run . -p 3318 -t postgres -d "postgres://..."

A .env file in the working directory is loaded if present.

# Configuration

  - PORT (-p): Server port (default: 3318)
  - DATABASE_TYPE (-t): sqlite, postgres or memory (default: sqlite)
  - DATABASE_URL (-d): Connection string, required for postgres
    (default for sqlite: file:team-sorter.db)
  - STORAGE_KEY (-k): Key the roster is stored under
  - SHUFFLE_DELAY (--delay): Reveal delay before teams are shown (default: 500ms)
  - CONFIG_FILE (-c): YAML file with session defaults

The defaults file sets the starting team layout and timer:

	team_count: 2
	players_per_team: 5
	timer_minutes: 10
	timer_seconds: 0
	sound: true

# Architecture

The server uses a handler-based architecture with dependency injection:

  - handlers: HTTP request handlers (roster, teams, timer)
  - router: Route definitions using Go 1.22+ routing
  - middleware: CORS, logging, request metrics, JSON helpers
  - models: Domain, request and response types
  - roster: Session state, actions and the controller
  - balancer: Skill-balanced team assignment
  - matchtimer: Countdown and alarm
  - events: Websocket hub for live updates
  - metrics: Prometheus collectors
  - db: Connections, schema and roster storage
  - cliparse: Configuration parsing

See package documentation for each component.
*/
package main
