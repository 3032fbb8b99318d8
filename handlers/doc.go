// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the team-sorter API.

# Handler Types

Each handler is a struct wrapping the component it drives:

  - RosterHandler: Players and the session selection
  - TeamsHandler: Team configuration, shuffling and results
  - TimerHandler: The match countdown

Handlers are created via constructor functions:

	rosterHandler := handlers.NewRosterHandler(ctrl)
	teamsHandler := handlers.NewTeamsHandler(ctrl)
	timerHandler := handlers.NewTimerHandler(timer)

# Roster

	GET    /players              → ListPlayers
	POST   /players              → AddPlayer (skill defaults to 2)
	DELETE /players              → ClearPlayers
	DELETE /players/{id}         → RemovePlayer
	GET    /selection            → GetSelection
	POST   /selection/{id}/toggle → ToggleSelection
	POST   /selection/all        → SelectAll
	DELETE /selection            → DeselectAll

Roster changes are persisted by the controller before the response is
written.

# Teams

	GET  /teams/config  → GetConfig (config plus slot summary)
	PUT  /teams/config  → UpdateConfig (clamped, never rejected)
	POST /teams/shuffle → Shuffle
	GET  /teams         → GetTeams
	DELETE /teams       → ResetTeams

Shuffle blocks for the configured reveal delay. Players that did not fit
into any team are listed under "unplaced".

# Timer

	GET  /timer                  → GetTimer
	PUT  /timer                  → SetDuration
	POST /timer/preset/{minutes} → Preset
	POST /timer/start            → Start
	POST /timer/pause            → Pause
	POST /timer/reset            → Reset
	POST /timer/dismiss          → Dismiss
	PUT  /timer/sound            → SetSound

# Errors

Domain errors map to status codes:

  - 400: empty name, skill out of range, unknown preset, invalid JSON
  - 404: unknown player
  - 409: not enough players selected, shuffle in progress, roster changed
    during a shuffle, timer running, zero duration
  - 500: anything else (logged, message not exposed)
*/
package handlers
