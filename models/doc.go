// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request, response, and domain types for the API.

# Domain Types

  - Player: id, name, skill (1-3)
  - TeamConfig: team_count (2-8), players_per_team (1-11)

# Request Types

Types for parsing incoming JSON:

  - AddPlayerRequest: name, skill (optional, defaults to 2)
  - UpdateTeamConfigRequest: team_count, players_per_team
  - SetTimerRequest: minutes, seconds
  - SetSoundRequest: enabled

Numeric configuration fields use LooseInt, which never fails to decode.
Non-numeric input becomes 0 and is clamped to the floor of its range:

	{"team_count": "abc"}  → team_count = 2
	{"team_count": -4}     → team_count = 2
	{"team_count": "12"}   → team_count = 8

# Response Types

Types for JSON responses:

  - RosterResponse: players with selection flags
  - SelectionResponse: selected ids and the shuffle gate
  - TeamConfigResponse: config plus slot summary
  - TeamsResponse: teams with skill totals, plus players left unassigned
  - TimerResponse: countdown snapshot
  - ErrorResponse: error, message

# Constants

Skill ratings:

	SkillMin = 1
	SkillMax = 3
	DefaultSkill = 2

Team configuration:

	MinTeamCount = 2, MaxTeamCount = 8
	MinPlayersPerTeam = 1, MaxPlayersPerTeam = 11
*/
package models
