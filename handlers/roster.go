// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"log/slog"
	"net/http"

	"github.com/danielhkuo/team-sorter/middleware"
	"github.com/danielhkuo/team-sorter/models"
	"github.com/danielhkuo/team-sorter/roster"
)

type RosterHandler struct {
	ctrl *roster.Controller
}

func NewRosterHandler(ctrl *roster.Controller) *RosterHandler {
	return &RosterHandler{ctrl: ctrl}
}

func playerView(s roster.State, p models.Player) models.PlayerView {
	return models.PlayerView{
		Player:     p,
		SkillLabel: models.SkillLabel(p.Skill),
		Selected:   roster.IsSelected(s, p.ID),
	}
}

func rosterResponse(s roster.State) models.RosterResponse {
	views := make([]models.PlayerView, len(s.Players))
	for i, p := range s.Players {
		views[i] = playerView(s, p)
	}
	return models.RosterResponse{
		Players:  views,
		Total:    len(s.Players),
		Selected: len(s.Selected),
	}
}

func selectionResponse(s roster.State) models.SelectionResponse {
	return models.SelectionResponse{
		SelectedIDs: s.Selected,
		Selected:    len(s.Selected),
		Total:       len(s.Players),
		CanShuffle:  roster.CanShuffle(s),
	}
}

// ListPlayers handles GET /players
func (h *RosterHandler) ListPlayers(w http.ResponseWriter, r *http.Request) {
	middleware.JSONResponse(w, http.StatusOK, rosterResponse(h.ctrl.State()))
}

// AddPlayer handles POST /players
func (h *RosterHandler) AddPlayer(w http.ResponseWriter, r *http.Request) {
	var req models.AddPlayerRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	skill := models.DefaultSkill
	if req.Skill != nil {
		skill = *req.Skill
	}

	s, err := h.ctrl.Dispatch(r.Context(), roster.AddPlayer{Name: req.Name, Skill: skill})
	if err != nil {
		writeError(w, r, err)
		return
	}

	player := s.Players[len(s.Players)-1]
	slog.Info("player added", "player_id", player.ID, "skill", player.Skill, "roster_size", len(s.Players))

	middleware.JSONResponse(w, http.StatusCreated, playerView(s, player))
}

// RemovePlayer handles DELETE /players/{id}
func (h *RosterHandler) RemovePlayer(w http.ResponseWriter, r *http.Request) {
	playerID := r.PathValue("id")
	if playerID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "player id is required")
		return
	}

	s, err := h.ctrl.Dispatch(r.Context(), roster.RemovePlayer{ID: playerID})
	if err != nil {
		writeError(w, r, err)
		return
	}

	slog.Info("player removed", "player_id", playerID, "roster_size", len(s.Players))
	middleware.JSONResponse(w, http.StatusOK, rosterResponse(s))
}

// ClearPlayers handles DELETE /players
func (h *RosterHandler) ClearPlayers(w http.ResponseWriter, r *http.Request) {
	s, err := h.ctrl.Dispatch(r.Context(), roster.ClearAll{})
	if err != nil {
		writeError(w, r, err)
		return
	}

	slog.Info("roster cleared")
	middleware.JSONResponse(w, http.StatusOK, rosterResponse(s))
}

// GetSelection handles GET /selection
func (h *RosterHandler) GetSelection(w http.ResponseWriter, r *http.Request) {
	middleware.JSONResponse(w, http.StatusOK, selectionResponse(h.ctrl.State()))
}

// ToggleSelection handles POST /selection/{id}/toggle
func (h *RosterHandler) ToggleSelection(w http.ResponseWriter, r *http.Request) {
	s, err := h.ctrl.Dispatch(r.Context(), roster.ToggleSelect{ID: r.PathValue("id")})
	if err != nil {
		writeError(w, r, err)
		return
	}
	middleware.JSONResponse(w, http.StatusOK, selectionResponse(s))
}

// SelectAll handles POST /selection/all
func (h *RosterHandler) SelectAll(w http.ResponseWriter, r *http.Request) {
	s, err := h.ctrl.Dispatch(r.Context(), roster.SelectAll{})
	if err != nil {
		writeError(w, r, err)
		return
	}
	middleware.JSONResponse(w, http.StatusOK, selectionResponse(s))
}

// DeselectAll handles DELETE /selection
func (h *RosterHandler) DeselectAll(w http.ResponseWriter, r *http.Request) {
	s, err := h.ctrl.Dispatch(r.Context(), roster.DeselectAll{})
	if err != nil {
		writeError(w, r, err)
		return
	}
	middleware.JSONResponse(w, http.StatusOK, selectionResponse(s))
}
