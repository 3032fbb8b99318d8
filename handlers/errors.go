// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/danielhkuo/team-sorter/matchtimer"
	"github.com/danielhkuo/team-sorter/middleware"
	"github.com/danielhkuo/team-sorter/roster"
)

// statusFor maps domain errors to HTTP status codes
func statusFor(err error) int {
	switch {
	case errors.Is(err, roster.ErrEmptyName),
		errors.Is(err, roster.ErrInvalidSkill),
		errors.Is(err, matchtimer.ErrInvalidPreset):
		return http.StatusBadRequest

	case errors.Is(err, roster.ErrPlayerNotFound):
		return http.StatusNotFound

	case errors.Is(err, roster.ErrDuplicateID),
		errors.Is(err, roster.ErrNotEnoughSelected),
		errors.Is(err, roster.ErrShuffleInProgress),
		errors.Is(err, roster.ErrRosterChanged),
		errors.Is(err, matchtimer.ErrRunning),
		errors.Is(err, matchtimer.ErrZeroDuration):
		return http.StatusConflict

	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return http.StatusServiceUnavailable

	default:
		return http.StatusInternalServerError
	}
}

// writeError writes err as a JSON error. Unexpected errors are logged and
// their text is not exposed.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		slog.Error("request failed", "method", r.Method, "path", r.URL.Path, "error", err)
		middleware.ErrorResponse(w, status, "Internal error")
		return
	}
	middleware.ErrorResponse(w, status, err.Error())
}
