// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"

	"github.com/danielhkuo/team-sorter/balancer"
	"github.com/danielhkuo/team-sorter/middleware"
	"github.com/danielhkuo/team-sorter/models"
	"github.com/danielhkuo/team-sorter/roster"
)

type TeamsHandler struct {
	ctrl *roster.Controller
}

func NewTeamsHandler(ctrl *roster.Controller) *TeamsHandler {
	return &TeamsHandler{ctrl: ctrl}
}

func configResponse(s roster.State) models.TeamConfigResponse {
	return models.TeamConfigResponse{
		Config:  s.Config,
		Summary: roster.Summary(s),
	}
}

func teamsResponse(teams [][]models.Player, unplaced []models.Player) models.TeamsResponse {
	if unplaced == nil {
		unplaced = []models.Player{}
	}
	return models.TeamsResponse{
		Teams:    balancer.Views(teams),
		Unplaced: unplaced,
	}
}

// GetConfig handles GET /teams/config
func (h *TeamsHandler) GetConfig(w http.ResponseWriter, r *http.Request) {
	middleware.JSONResponse(w, http.StatusOK, configResponse(h.ctrl.State()))
}

// UpdateConfig handles PUT /teams/config
// Values are clamped to their ranges; omitted fields are left unchanged.
func (h *TeamsHandler) UpdateConfig(w http.ResponseWriter, r *http.Request) {
	var req models.UpdateTeamConfigRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	var actions []roster.Action
	if req.TeamCount != nil {
		actions = append(actions, roster.SetTeamCount{N: int(*req.TeamCount)})
	}
	if req.PlayersPerTeam != nil {
		actions = append(actions, roster.SetPlayersPerTeam{N: int(*req.PlayersPerTeam)})
	}

	s := h.ctrl.State()
	for _, a := range actions {
		var err error
		if s, err = h.ctrl.Dispatch(r.Context(), a); err != nil {
			writeError(w, r, err)
			return
		}
	}

	middleware.JSONResponse(w, http.StatusOK, configResponse(s))
}

// Shuffle handles POST /teams/shuffle
func (h *TeamsHandler) Shuffle(w http.ResponseWriter, r *http.Request) {
	result, err := h.ctrl.Shuffle(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, teamsResponse(result.Teams, result.Unplaced))
}

// GetTeams handles GET /teams
func (h *TeamsHandler) GetTeams(w http.ResponseWriter, r *http.Request) {
	s := h.ctrl.State()
	middleware.JSONResponse(w, http.StatusOK, teamsResponse(s.Teams, s.Unplaced))
}

// ResetTeams handles DELETE /teams
func (h *TeamsHandler) ResetTeams(w http.ResponseWriter, r *http.Request) {
	s, err := h.ctrl.Dispatch(r.Context(), roster.ResetTeams{})
	if err != nil {
		writeError(w, r, err)
		return
	}
	middleware.JSONResponse(w, http.StatusOK, teamsResponse(s.Teams, s.Unplaced))
}
