// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Skill rating bounds
const (
	SkillMin     = 1
	SkillMax     = 3
	DefaultSkill = 2
)

// Team configuration bounds
const (
	MinTeamCount          = 2
	MaxTeamCount          = 8
	MinPlayersPerTeam     = 1
	MaxPlayersPerTeam     = 11
	DefaultTeamCount      = 2
	DefaultPlayersPerTeam = 5
)

// Domain types

type Player struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Skill int    `json:"skill"`
}

type TeamConfig struct {
	TeamCount      int `json:"team_count"`
	PlayersPerTeam int `json:"players_per_team"`
}

// DefaultTeamConfig matches the controls' initial values
func DefaultTeamConfig() TeamConfig {
	return TeamConfig{
		TeamCount:      DefaultTeamCount,
		PlayersPerTeam: DefaultPlayersPerTeam,
	}
}

// Clamp coerces both values into their allowed ranges
func (c TeamConfig) Clamp() TeamConfig {
	return TeamConfig{
		TeamCount:      clamp(c.TeamCount, MinTeamCount, MaxTeamCount),
		PlayersPerTeam: clamp(c.PlayersPerTeam, MinPlayersPerTeam, MaxPlayersPerTeam),
	}
}

// TotalSlots is the number of places across all configured teams
func (c TeamConfig) TotalSlots() int {
	return c.TeamCount * c.PlayersPerTeam
}

// ValidSkill reports whether s is a rating a player may carry
func ValidSkill(s int) bool {
	return s >= SkillMin && s <= SkillMax
}

// SkillLabel returns the display word for a rating
func SkillLabel(s int) string {
	switch s {
	case 1:
		return "weak"
	case 2:
		return "average"
	case 3:
		return "strong"
	default:
		return "unknown"
	}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// LooseInt accepts JSON numbers, numeric strings and garbage alike.
// Fractions are truncated and anything unparsable becomes 0, so callers
// clamp instead of rejecting.
type LooseInt int

func (n *LooseInt) UnmarshalJSON(data []byte) error {
	raw := strings.TrimSpace(string(data))
	if raw == "null" {
		*n = 0
		return nil
	}

	var f float64
	if err := json.Unmarshal(data, &f); err == nil {
		*n = LooseInt(truncate(f))
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		if f, err := strconv.ParseFloat(strings.TrimSpace(s), 64); err == nil {
			*n = LooseInt(truncate(f))
			return nil
		}
	}

	*n = 0
	return nil
}

func truncate(f float64) int {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	if f > math.MaxInt32 {
		return math.MaxInt32
	}
	if f < math.MinInt32 {
		return math.MinInt32
	}
	return int(f)
}

// Request types

type AddPlayerRequest struct {
	Name  string `json:"name"`
	Skill *int   `json:"skill,omitempty"` // defaults to DefaultSkill
}

// Missing fields keep their current value
type UpdateTeamConfigRequest struct {
	TeamCount      *LooseInt `json:"team_count,omitempty"`
	PlayersPerTeam *LooseInt `json:"players_per_team,omitempty"`
}

type SetTimerRequest struct {
	Minutes LooseInt `json:"minutes"`
	Seconds LooseInt `json:"seconds"`
}

type SetSoundRequest struct {
	Enabled bool `json:"enabled"`
}

// Response types

type PlayerView struct {
	Player
	SkillLabel string `json:"skill_label"`
	Selected   bool   `json:"selected"`
}

type RosterResponse struct {
	Players  []PlayerView `json:"players"`
	Total    int          `json:"total"`
	Selected int          `json:"selected"`
}

type SelectionResponse struct {
	SelectedIDs []string `json:"selected_ids"`
	Selected    int      `json:"selected"`
	Total       int      `json:"total"`
	CanShuffle  bool     `json:"can_shuffle"`
}

type TeamSummary struct {
	TotalSlots    int    `json:"total_slots"`
	Selected      int    `json:"selected"`
	Missing       int    `json:"missing"`
	Bench         int    `json:"bench"`
	CanShuffle    bool   `json:"can_shuffle"`
	ExpectedSizes []int  `json:"expected_sizes"`
	Note          string `json:"note"`
}

type TeamConfigResponse struct {
	Config  TeamConfig  `json:"config"`
	Summary TeamSummary `json:"summary"`
}

type TeamView struct {
	Number       int      `json:"number"` // 1-indexed
	Players      []Player `json:"players"`
	Size         int      `json:"size"`
	TotalSkill   int      `json:"total_skill"`
	AverageSkill float64  `json:"average_skill"`
}

type TeamsResponse struct {
	Teams    []TeamView `json:"teams"`
	Unplaced []Player   `json:"unplaced"`
}

type TimerResponse struct {
	DurationSec  int     `json:"duration_sec"`
	RemainingSec int     `json:"remaining_sec"`
	Display      string  `json:"display"`
	Progress     float64 `json:"progress"`
	FinalMinute  bool    `json:"final_minute"`
	Running      bool    `json:"running"`
	Finished     bool    `json:"finished"`
	Sound        bool    `json:"sound"`
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
