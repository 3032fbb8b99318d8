// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package main

import (
	"context"
	"database/sql"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/mattn/go-isatty"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/danielhkuo/team-sorter/cliparse"
	"github.com/danielhkuo/team-sorter/db"
	"github.com/danielhkuo/team-sorter/events"
	"github.com/danielhkuo/team-sorter/matchtimer"
	"github.com/danielhkuo/team-sorter/metrics"
	"github.com/danielhkuo/team-sorter/middleware"
	"github.com/danielhkuo/team-sorter/models"
	"github.com/danielhkuo/team-sorter/roster"
	"github.com/danielhkuo/team-sorter/router"
)

// greeting is the hello payload a live client receives on connect
type greeting struct {
	Summary models.TeamSummary   `json:"summary"`
	Players int                  `json:"players"`
	Timer   models.TimerResponse `json:"timer"`
}

func main() {
	// .env is optional
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		slog.Warn("could not load .env file", "error", err)
	}

	// Human readable logs on a terminal, JSON otherwise
	if isatty.IsTerminal(os.Stderr.Fd()) {
		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, nil)))
	} else {
		slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stderr, nil)))
	}

	// Parse configuration
	cfg, err := cliparse.ParseFlags(os.Args[1:])
	if err != nil {
		slog.Error("Error parsing flags", "error", err)
		os.Exit(1)
	}

	storage, dbConn, err := openStorage(cfg)
	if err != nil {
		slog.Error("storage setup failed", "error", err, "type", cfg.DatabaseType)
		os.Exit(1)
	}
	if dbConn != nil {
		defer dbConn.Close()
	}
	slog.Info("Roster storage ready", "type", cfg.DatabaseType, "key", cfg.StorageKey)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	m := metrics.New(prometheus.DefaultRegisterer)

	// The greeting reads the controller and timer, which are created below
	var (
		ctrl  *roster.Controller
		timer *matchtimer.Timer
	)
	hub := events.NewHub(events.DefaultConfig(),
		events.WithObserver(m),
		events.WithGreeting(func() any {
			s := ctrl.State()
			return greeting{
				Summary: roster.Summary(s),
				Players: len(s.Players),
				Timer:   timer.Snapshot(),
			}
		}),
	)
	go hub.Run(ctx)

	timer = matchtimer.New(
		matchtimer.WithDuration(cfg.Defaults.TimerMinutes, cfg.Defaults.TimerSeconds),
		matchtimer.WithPublisher(hub),
		matchtimer.WithRecorder(m),
	)
	timer.SetSound(cfg.Defaults.Sound)
	defer timer.Close()

	ctrl = roster.NewController(ctx, storage,
		roster.WithPublisher(hub),
		roster.WithRecorder(m),
		roster.WithShuffleDelay(cfg.ShuffleDelay),
		roster.WithTeamConfig(cfg.Defaults.TeamConfig()),
	)

	// Create router
	mux := router.NewRouter(router.Deps{
		Controller: ctrl,
		Timer:      timer,
		Hub:        hub,
		Metrics:    m,
		Gatherer:   prometheus.DefaultGatherer,
	})

	// Create server
	server := http.Server{
		Handler:           middleware.CORS(mux),
		Addr:              ":" + strconv.Itoa(cfg.Port),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		// Wait for Ctrl-C signal
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			server.Close()
		}
	}()

	// Start server
	slog.Info("Listening", "port", cfg.Port)
	err = server.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		slog.Error("Server closed", "error", err)
	} else {
		slog.Info("Server closed", "error", err)
	}
}

// openStorage returns the roster storage for cfg. The connection is nil for
// the in-memory store.
func openStorage(cfg cliparse.Config) (roster.Storage, *sql.DB, error) {
	if cfg.DatabaseType == db.TypeMemory {
		return db.NewMemoryStore(cfg.StorageKey), nil, nil
	}

	conn, err := db.Open(cfg.DatabaseType, cfg.DatabaseURL)
	if err != nil {
		return nil, nil, err
	}

	// Create schema (tables)
	if err := db.CreateSchema(conn); err != nil {
		conn.Close()
		return nil, nil, err
	}

	return db.NewRosterStore(conn, cfg.StorageKey), conn, nil
}
