// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the team-sorter collectors. A nil *Metrics is valid and
// records nothing.
type Metrics struct {
	// Balancing
	Shuffles        prometheus.Counter
	PlayersPlaced   prometheus.Counter
	PlayersUnplaced prometheus.Counter
	SkillSpread     prometheus.Histogram

	// Roster
	RosterSize prometheus.Gauge

	// Timer
	TimerAlarms prometheus.Counter

	// HTTP
	RequestDuration *prometheus.HistogramVec
	Requests        *prometheus.CounterVec

	// Live clients
	LiveClients prometheus.Gauge
}

// New registers all collectors with reg. Use prometheus.DefaultRegisterer
// in production and a fresh prometheus.NewRegistry() in tests.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)

	return &Metrics{
		Shuffles: f.NewCounter(prometheus.CounterOpts{
			Name: "team_sorter_shuffles_total",
			Help: "Total completed team shuffles",
		}),
		PlayersPlaced: f.NewCounter(prometheus.CounterOpts{
			Name: "team_sorter_players_placed_total",
			Help: "Total players assigned to a team across shuffles",
		}),
		PlayersUnplaced: f.NewCounter(prometheus.CounterOpts{
			Name: "team_sorter_players_unplaced_total",
			Help: "Total selected players left out because every team was full",
		}),
		SkillSpread: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "team_sorter_skill_spread",
			Help:    "Difference between the strongest and weakest team total per shuffle",
			Buckets: []float64{0, 1, 2, 3, 5, 8},
		}),

		RosterSize: f.NewGauge(prometheus.GaugeOpts{
			Name: "team_sorter_roster_players",
			Help: "Players currently registered",
		}),

		TimerAlarms: f.NewCounter(prometheus.CounterOpts{
			Name: "team_sorter_timer_alarms_total",
			Help: "Total alarm sequences played by the match timer",
		}),

		RequestDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "team_sorter_http_request_duration_seconds",
			Help:    "Duration of HTTP requests by method and route",
			Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
		}, []string{"method", "route"}),
		Requests: f.NewCounterVec(prometheus.CounterOpts{
			Name: "team_sorter_http_requests_total",
			Help: "Total HTTP requests by method, route and status",
		}, []string{"method", "route", "status"}),

		LiveClients: f.NewGauge(prometheus.GaugeOpts{
			Name: "team_sorter_live_clients",
			Help: "Connected websocket clients",
		}),
	}
}

// ObserveShuffle records one completed shuffle
func (m *Metrics) ObserveShuffle(teams, placed, unplaced, spread int) {
	if m == nil {
		return
	}
	m.Shuffles.Inc()
	m.PlayersPlaced.Add(float64(placed))
	m.PlayersUnplaced.Add(float64(unplaced))
	if teams > 0 {
		m.SkillSpread.Observe(float64(spread))
	}
}

// SetRosterSize records the number of registered players
func (m *Metrics) SetRosterSize(n int) {
	if m != nil {
		m.RosterSize.Set(float64(n))
	}
}

// ObserveAlarm records one alarm sequence
func (m *Metrics) ObserveAlarm() {
	if m != nil {
		m.TimerAlarms.Inc()
	}
}

// ObserveRequest records one HTTP request. route should be the mux pattern,
// not the raw path, to keep label cardinality bounded.
func (m *Metrics) ObserveRequest(method, route string, status int, d time.Duration) {
	if m == nil {
		return
	}
	m.RequestDuration.WithLabelValues(method, route).Observe(d.Seconds())
	m.Requests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
}

// SetLiveClients records the number of connected websocket clients
func (m *Metrics) SetLiveClients(n int) {
	if m != nil {
		m.LiveClients.Set(float64(n))
	}
}
