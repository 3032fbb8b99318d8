// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package roster manages players, the session selection, and team results.

# State and Actions

State is a plain value. Reduce applies one Action and returns the next
state without touching its input:

	s, err := roster.Reduce(s, roster.AddPlayer{Name: "Ana", Skill: 3})
	s, err  = roster.Reduce(s, roster.ToggleSelect{ID: id})

Actions:

  - AddPlayer, RemovePlayer, ClearAll: change the player list
  - ToggleSelect, SelectAll, DeselectAll: change the selection
  - SetTeamCount, SetPlayersPerTeam: clamped to 2-8 and 1-11
  - ResetTeams, ApplyTeams: clear or store a balancing result

Removing a player also removes it from the selection and clears the teams.

# Controller

Controller owns a State and serializes actions with a mutex. The roster is
read from Storage once in NewController and written after every action
that changes the player list:

	ctrl := roster.NewController(ctx, store,
		roster.WithPublisher(hub),
		roster.WithRecorder(m),
	)
	s, err := ctrl.Dispatch(ctx, roster.SelectAll{})
	res, err := ctrl.Shuffle(ctx)

Load and save failures are logged and never surface to callers.

# Shuffling

Shuffle requires at least TeamCount selected players, waits a short
cosmetic delay, then runs balancer.Distribute on the selected players in
roster order. Only one shuffle runs at a time.
*/
package roster
