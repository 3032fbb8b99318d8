// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"
	"strconv"

	"github.com/danielhkuo/team-sorter/matchtimer"
	"github.com/danielhkuo/team-sorter/middleware"
	"github.com/danielhkuo/team-sorter/models"
)

type TimerHandler struct {
	timer *matchtimer.Timer
}

func NewTimerHandler(timer *matchtimer.Timer) *TimerHandler {
	return &TimerHandler{timer: timer}
}

// GetTimer handles GET /timer
func (h *TimerHandler) GetTimer(w http.ResponseWriter, r *http.Request) {
	middleware.JSONResponse(w, http.StatusOK, h.timer.Snapshot())
}

// SetDuration handles PUT /timer
func (h *TimerHandler) SetDuration(w http.ResponseWriter, r *http.Request) {
	var req models.SetTimerRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	snap, err := h.timer.SetDuration(int(req.Minutes), int(req.Seconds))
	if err != nil {
		writeError(w, r, err)
		return
	}
	middleware.JSONResponse(w, http.StatusOK, snap)
}

// Preset handles POST /timer/preset/{minutes}
func (h *TimerHandler) Preset(w http.ResponseWriter, r *http.Request) {
	minutes, err := strconv.Atoi(r.PathValue("minutes"))
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "minutes must be a number")
		return
	}

	snap, err := h.timer.Preset(minutes)
	if err != nil {
		writeError(w, r, err)
		return
	}
	middleware.JSONResponse(w, http.StatusOK, snap)
}

// Start handles POST /timer/start
func (h *TimerHandler) Start(w http.ResponseWriter, r *http.Request) {
	snap, err := h.timer.Start()
	if err != nil {
		writeError(w, r, err)
		return
	}
	middleware.JSONResponse(w, http.StatusOK, snap)
}

// Pause handles POST /timer/pause
func (h *TimerHandler) Pause(w http.ResponseWriter, r *http.Request) {
	middleware.JSONResponse(w, http.StatusOK, h.timer.Pause())
}

// Reset handles POST /timer/reset
func (h *TimerHandler) Reset(w http.ResponseWriter, r *http.Request) {
	middleware.JSONResponse(w, http.StatusOK, h.timer.Reset())
}

// Dismiss handles POST /timer/dismiss
func (h *TimerHandler) Dismiss(w http.ResponseWriter, r *http.Request) {
	middleware.JSONResponse(w, http.StatusOK, h.timer.Dismiss())
}

// SetSound handles PUT /timer/sound
func (h *TimerHandler) SetSound(w http.ResponseWriter, r *http.Request) {
	var req models.SetSoundRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	middleware.JSONResponse(w, http.StatusOK, h.timer.SetSound(req.Enabled))
}
