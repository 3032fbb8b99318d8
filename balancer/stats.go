// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package balancer

import "github.com/danielhkuo/team-sorter/models"

// Stats are the aggregates shown on a team card
type Stats struct {
	Size         int
	TotalSkill   int
	AverageSkill float64
}

// TeamStats computes size, total and average skill for one team
func TeamStats(team []models.Player) Stats {
	stats := Stats{Size: len(team)}
	for _, p := range team {
		stats.TotalSkill += p.Skill
	}
	if stats.Size > 0 {
		stats.AverageSkill = float64(stats.TotalSkill) / float64(stats.Size)
	}
	return stats
}

// Spread is the difference between the strongest and weakest team totals
func Spread(teams [][]models.Player) int {
	if len(teams) == 0 {
		return 0
	}
	lo, hi := -1, -1
	for _, team := range teams {
		total := TeamStats(team).TotalSkill
		if lo < 0 || total < lo {
			lo = total
		}
		if hi < 0 || total > hi {
			hi = total
		}
	}
	return hi - lo
}

// Views converts teams into their response form, numbering from 1
func Views(teams [][]models.Player) []models.TeamView {
	views := make([]models.TeamView, len(teams))
	for i, team := range teams {
		stats := TeamStats(team)
		players := team
		if players == nil {
			players = []models.Player{}
		}
		views[i] = models.TeamView{
			Number:       i + 1,
			Players:      players,
			Size:         stats.Size,
			TotalSkill:   stats.TotalSkill,
			AverageSkill: stats.AverageSkill,
		}
	}
	return views
}
