// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package roster

import (
	"errors"
	"slices"
	"strings"

	"github.com/google/uuid"

	"github.com/danielhkuo/team-sorter/models"
)

var (
	ErrEmptyName         = errors.New("player name is required")
	ErrInvalidSkill      = errors.New("skill must be between 1 and 3")
	ErrDuplicateID       = errors.New("player id already exists")
	ErrPlayerNotFound    = errors.New("player not found")
	ErrUnknownAction     = errors.New("unknown action")
	ErrNotEnoughSelected = errors.New("not enough players selected")
)

// State is everything a balancing session needs.
// Selected holds ids in the order they were picked and is always a subset
// of the roster. Teams and Unplaced hold the latest balancing result.
type State struct {
	Players  []models.Player
	Selected []string
	Config   models.TeamConfig
	Teams    [][]models.Player
	Unplaced []models.Player
}

// NewState returns an empty roster with the default team configuration
func NewState() State {
	return State{
		Players:  []models.Player{},
		Selected: []string{},
		Config:   models.DefaultTeamConfig(),
		Teams:    [][]models.Player{},
		Unplaced: []models.Player{},
	}
}

// Clone returns a deep copy so callers cannot alias controller state
func (s State) Clone() State {
	out := State{
		Players:  slices.Clone(s.Players),
		Selected: slices.Clone(s.Selected),
		Config:   s.Config,
		Teams:    make([][]models.Player, len(s.Teams)),
		Unplaced: slices.Clone(s.Unplaced),
	}
	for i, team := range s.Teams {
		out.Teams[i] = slices.Clone(team)
	}
	if out.Players == nil {
		out.Players = []models.Player{}
	}
	if out.Selected == nil {
		out.Selected = []string{}
	}
	if out.Unplaced == nil {
		out.Unplaced = []models.Player{}
	}
	return out
}

// Action is a user command applied by Reduce
type Action interface {
	action()
}

type (
	// AddPlayer registers a player; an empty ID gets a fresh UUID
	AddPlayer struct {
		ID    string
		Name  string
		Skill int
	}
	// RemovePlayer drops a player, its selection and the current teams
	RemovePlayer struct{ ID string }
	// ToggleSelect flips a player's participation in the session
	ToggleSelect struct{ ID string }
	SelectAll    struct{}
	DeselectAll  struct{}
	// ClearAll empties roster, selection and teams
	ClearAll struct{}
	// SetTeamCount and SetPlayersPerTeam clamp instead of failing
	SetTeamCount      struct{ N int }
	SetPlayersPerTeam struct{ N int }
	ResetTeams        struct{}
	// ApplyTeams stores a balancing result
	ApplyTeams struct {
		Teams    [][]models.Player
		Unplaced []models.Player
	}
)

func (AddPlayer) action()         {}
func (RemovePlayer) action()      {}
func (ToggleSelect) action()      {}
func (SelectAll) action()         {}
func (DeselectAll) action()       {}
func (ClearAll) action()          {}
func (SetTeamCount) action()      {}
func (SetPlayersPerTeam) action() {}
func (ResetTeams) action()        {}
func (ApplyTeams) action()        {}

// ChangesRoster reports whether a successful action alters the player
// list and therefore has to be persisted
func ChangesRoster(a Action) bool {
	switch a.(type) {
	case AddPlayer, RemovePlayer, ClearAll:
		return true
	default:
		return false
	}
}

// Reduce applies an action and returns the new state.
// The input state is never modified.
func Reduce(s State, a Action) (State, error) {
	next := s.Clone()

	switch act := a.(type) {
	case AddPlayer:
		name := strings.TrimSpace(act.Name)
		if name == "" {
			return s, ErrEmptyName
		}
		if !models.ValidSkill(act.Skill) {
			return s, ErrInvalidSkill
		}
		id := act.ID
		if id == "" {
			id = uuid.NewString()
		}
		if indexOf(next.Players, id) >= 0 {
			return s, ErrDuplicateID
		}
		next.Players = append(next.Players, models.Player{ID: id, Name: name, Skill: act.Skill})

	case RemovePlayer:
		i := indexOf(next.Players, act.ID)
		if i < 0 {
			return s, ErrPlayerNotFound
		}
		next.Players = slices.Delete(next.Players, i, i+1)
		next.Selected = slices.DeleteFunc(next.Selected, func(id string) bool { return id == act.ID })
		next.Teams = [][]models.Player{}
		next.Unplaced = []models.Player{}

	case ToggleSelect:
		if indexOf(next.Players, act.ID) < 0 {
			return s, ErrPlayerNotFound
		}
		if i := slices.Index(next.Selected, act.ID); i >= 0 {
			next.Selected = slices.Delete(next.Selected, i, i+1)
		} else {
			next.Selected = append(next.Selected, act.ID)
		}

	case SelectAll:
		next.Selected = make([]string, len(next.Players))
		for i, p := range next.Players {
			next.Selected[i] = p.ID
		}

	case DeselectAll:
		next.Selected = []string{}

	case ClearAll:
		next.Players = []models.Player{}
		next.Selected = []string{}
		next.Teams = [][]models.Player{}
		next.Unplaced = []models.Player{}

	case SetTeamCount:
		next.Config.TeamCount = act.N
		next.Config = next.Config.Clamp()

	case SetPlayersPerTeam:
		next.Config.PlayersPerTeam = act.N
		next.Config = next.Config.Clamp()

	case ResetTeams:
		next.Teams = [][]models.Player{}
		next.Unplaced = []models.Player{}

	case ApplyTeams:
		next.Teams = make([][]models.Player, len(act.Teams))
		for i, team := range act.Teams {
			next.Teams[i] = slices.Clone(team)
		}
		next.Unplaced = slices.Clone(act.Unplaced)
		if next.Unplaced == nil {
			next.Unplaced = []models.Player{}
		}

	default:
		return s, ErrUnknownAction
	}

	return next, nil
}

// CanShuffle reports whether enough players are selected to balance
func CanShuffle(s State) bool {
	return len(s.Selected) >= s.Config.TeamCount
}

// SelectedPlayers returns the selected players in roster order
func SelectedPlayers(s State) []models.Player {
	selected := make(map[string]bool, len(s.Selected))
	for _, id := range s.Selected {
		selected[id] = true
	}

	players := make([]models.Player, 0, len(s.Selected))
	for _, p := range s.Players {
		if selected[p.ID] {
			players = append(players, p)
		}
	}
	return players
}

// IsSelected reports whether a player takes part in the session
func IsSelected(s State, id string) bool {
	return slices.Contains(s.Selected, id)
}

func indexOf(players []models.Player, id string) int {
	return slices.IndexFunc(players, func(p models.Player) bool { return p.ID == id })
}
