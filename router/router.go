// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/danielhkuo/team-sorter/events"
	"github.com/danielhkuo/team-sorter/handlers"
	"github.com/danielhkuo/team-sorter/matchtimer"
	"github.com/danielhkuo/team-sorter/metrics"
	"github.com/danielhkuo/team-sorter/middleware"
	"github.com/danielhkuo/team-sorter/roster"
)

// Deps are the components the routes drive. Hub, Metrics and Gatherer are
// optional.
type Deps struct {
	Controller *roster.Controller
	Timer      *matchtimer.Timer
	Hub        *events.Hub
	Metrics    *metrics.Metrics
	Gatherer   prometheus.Gatherer
}

func NewRouter(deps Deps) *http.ServeMux {
	mux := http.NewServeMux()

	// Initialize handlers
	rosterHandler := handlers.NewRosterHandler(deps.Controller)
	teamsHandler := handlers.NewTeamsHandler(deps.Controller)
	timerHandler := handlers.NewTimerHandler(deps.Timer)

	var obs middleware.RequestObserver
	if deps.Metrics != nil {
		obs = deps.Metrics
	}
	handle := func(pattern string, h http.HandlerFunc) {
		mux.HandleFunc(pattern, middleware.WithLogging(middleware.WithMetrics(obs, pattern, h)))
	}

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Roster
	handle("GET /players", rosterHandler.ListPlayers)
	handle("POST /players", rosterHandler.AddPlayer)
	handle("DELETE /players", rosterHandler.ClearPlayers)
	handle("DELETE /players/{id}", rosterHandler.RemovePlayer)

	// Selection
	handle("GET /selection", rosterHandler.GetSelection)
	handle("POST /selection/{id}/toggle", rosterHandler.ToggleSelection)
	handle("POST /selection/all", rosterHandler.SelectAll)
	handle("DELETE /selection", rosterHandler.DeselectAll)

	// Teams
	handle("GET /teams/config", teamsHandler.GetConfig)
	handle("PUT /teams/config", teamsHandler.UpdateConfig)
	handle("POST /teams/shuffle", teamsHandler.Shuffle)
	handle("GET /teams", teamsHandler.GetTeams)
	handle("DELETE /teams", teamsHandler.ResetTeams)

	// Match timer
	handle("GET /timer", timerHandler.GetTimer)
	handle("PUT /timer", timerHandler.SetDuration)
	handle("POST /timer/preset/{minutes}", timerHandler.Preset)
	handle("POST /timer/start", timerHandler.Start)
	handle("POST /timer/pause", timerHandler.Pause)
	handle("POST /timer/reset", timerHandler.Reset)
	handle("POST /timer/dismiss", timerHandler.Dismiss)
	handle("PUT /timer/sound", timerHandler.SetSound)

	// Live events
	if deps.Hub != nil {
		handle("GET /ws", deps.Hub.ServeHTTP)
	}

	// Prometheus
	gatherer := deps.Gatherer
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}
	mux.Handle("GET /metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))

	// Root endpoint
	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("team-sorter API v1"))
	})

	return mux
}
