// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package balancer

import (
	"sort"

	"github.com/danielhkuo/team-sorter/models"
)

// Layout describes how many teams a balancing run creates and how many
// players each one may hold
type Layout struct {
	TotalPlayers int
	FullTeams    int
	Remainder    int
	TeamCount    int   // effective number of teams created
	Limits       []int // per-team capacity, len == TeamCount
}

// Capacity is the number of players the layout can place
func (l Layout) Capacity() int {
	total := 0
	for _, limit := range l.Limits {
		total += limit
	}
	return total
}

// Result is a balancing run including the players that did not fit
type Result struct {
	Layout   Layout
	Teams    [][]models.Player
	Unplaced []models.Player
}

// Placed returns how many players ended up on a team
func (r Result) Placed() int {
	n := 0
	for _, team := range r.Teams {
		n += len(team)
	}
	return n
}

// Plan computes the team layout for totalPlayers players.
//
// The number of teams is the number of full teams plus one partial team,
// capped at teamCount. The last team only shrinks to the remainder when it
// really is the partial team; when the cap cuts the partial team off, every
// created team keeps the full capacity.
func Plan(totalPlayers, teamCount, capacityPerTeam int) Layout {
	layout := Layout{TotalPlayers: totalPlayers}
	if totalPlayers <= 0 || teamCount <= 0 || capacityPerTeam <= 0 {
		layout.Limits = []int{}
		return layout
	}

	layout.FullTeams = totalPlayers / capacityPerTeam
	layout.Remainder = totalPlayers % capacityPerTeam

	if layout.Remainder > 0 {
		layout.TeamCount = min(layout.FullTeams+1, teamCount)
	} else {
		layout.TeamCount = min(layout.FullTeams, teamCount)
	}

	partialLast := layout.Remainder > 0 && layout.TeamCount == layout.FullTeams+1

	layout.Limits = make([]int, layout.TeamCount)
	for i := range layout.Limits {
		layout.Limits[i] = capacityPerTeam
	}
	if partialLast {
		layout.Limits[layout.TeamCount-1] = layout.Remainder
	}

	return layout
}

// Balance splits selected into skill-balanced teams.
//
// Players beyond the layout capacity are silently left out; use Distribute
// to see who they are.
func Balance(selected []models.Player, teamCount, capacityPerTeam int) [][]models.Player {
	return Distribute(selected, teamCount, capacityPerTeam).Teams
}

// Distribute runs the greedy balancing heuristic.
//
// Players are taken strongest first; ties keep their input order (stable
// sort). Each player joins the team with the lowest skill sum that still has
// room, ties going to the lowest team index. Teams keep the order in which
// players were appended.
func Distribute(selected []models.Player, teamCount, capacityPerTeam int) Result {
	layout := Plan(len(selected), teamCount, capacityPerTeam)

	result := Result{
		Layout:   layout,
		Teams:    make([][]models.Player, layout.TeamCount),
		Unplaced: []models.Player{},
	}
	for i := range result.Teams {
		result.Teams[i] = make([]models.Player, 0, layout.Limits[i])
	}

	sorted := make([]models.Player, len(selected))
	copy(sorted, selected)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Skill > sorted[j].Skill
	})

	sums := make([]int, layout.TeamCount)
	for _, player := range sorted {
		target := lightestOpenTeam(result.Teams, sums, layout.Limits)
		if target < 0 {
			result.Unplaced = append(result.Unplaced, player)
			continue
		}
		result.Teams[target] = append(result.Teams[target], player)
		sums[target] += player.Skill
	}

	return result
}

// lightestOpenTeam returns the index of the team with the lowest skill sum
// that is below its limit, or -1 when every team is full
func lightestOpenTeam(teams [][]models.Player, sums, limits []int) int {
	target := -1
	for i := range teams {
		if len(teams[i]) >= limits[i] {
			continue
		}
		if target < 0 || sums[i] < sums[target] {
			target = i
		}
	}
	return target
}
