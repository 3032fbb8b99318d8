// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package metrics exposes Prometheus collectors for team-sorter.

Collectors are registered through promauto against the Registerer passed
to New, and are served by the router at GET /metrics.

	m := metrics.New(prometheus.DefaultRegisterer)
	ctrl := roster.NewController(ctx, store, roster.WithRecorder(m))
	timer := matchtimer.New(matchtimer.WithRecorder(m))

Every method is safe on a nil *Metrics, so components can be built without
metrics in tests.

Exported series:

  - team_sorter_shuffles_total
  - team_sorter_players_placed_total
  - team_sorter_players_unplaced_total
  - team_sorter_skill_spread
  - team_sorter_roster_players
  - team_sorter_timer_alarms_total
  - team_sorter_http_request_duration_seconds{method,route}
  - team_sorter_http_requests_total{method,route,status}
  - team_sorter_live_clients
*/
package metrics
