// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package roster

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize/english"

	"github.com/danielhkuo/team-sorter/balancer"
	"github.com/danielhkuo/team-sorter/models"
)

// Summary describes how the current selection fits the configured slots
func Summary(s State) models.TeamSummary {
	slots := s.Config.TotalSlots()
	selected := len(s.Selected)

	summary := models.TeamSummary{
		TotalSlots:    slots,
		Selected:      selected,
		CanShuffle:    CanShuffle(s),
		ExpectedSizes: balancer.Plan(selected, s.Config.TeamCount, s.Config.PlayersPerTeam).Limits,
	}
	if selected < slots {
		summary.Missing = slots - selected
	}
	if selected > slots {
		summary.Bench = selected - slots
	}

	var notes []string
	switch {
	case len(s.Players) == 0:
		notes = append(notes, "no players registered")
	case selected == 0:
		notes = append(notes, "select the players taking part")
	case !summary.CanShuffle:
		notes = append(notes, fmt.Sprintf("select at least %s to shuffle",
			english.Plural(s.Config.TeamCount, "player", "")))
	}
	if selected > 0 && summary.Missing > 0 {
		notes = append(notes, english.Plural(summary.Missing, "slot", "")+" still open")
	}
	if summary.Bench > 0 {
		notes = append(notes, english.Plural(summary.Bench, "player", "")+" on the bench")
	}
	summary.Note = strings.Join(notes, "; ")

	return summary
}
