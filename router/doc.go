// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the team-sorter API.

# Route Registration

NewRouter creates a configured http.ServeMux with all endpoints:

	mux := router.NewRouter(router.Deps{
		Controller: ctrl,
		Timer:      timer,
		Hub:        hub,
		Metrics:    m,
	})

Every API route is wrapped with request logging and per-pattern metrics.
CORS is applied around the whole mux by main.

# Endpoints

Health:

	GET /health
	GET /metrics - Prometheus exposition
	GET /        - Banner

Roster:

	GET    /players       - List players with selection flags
	POST   /players       - Add a player
	DELETE /players       - Remove everyone
	DELETE /players/{id}  - Remove one player

Selection:

	GET    /selection             - Selected ids and shuffle readiness
	POST   /selection/{id}/toggle - Flip one player
	POST   /selection/all         - Select everyone
	DELETE /selection             - Clear the selection

Teams:

	GET    /teams/config  - Team count, players per team and slot summary
	PUT    /teams/config  - Change either value (clamped)
	POST   /teams/shuffle - Balance the selected players
	GET    /teams         - Latest result with per-team totals
	DELETE /teams         - Discard the result

Match timer:

	GET  /timer                  - Countdown snapshot
	PUT  /timer                  - Set minutes and seconds
	POST /timer/preset/{minutes} - 5, 7, 10, 15 or 20
	POST /timer/start
	POST /timer/pause
	POST /timer/reset
	POST /timer/dismiss          - Acknowledge the alarm
	PUT  /timer/sound            - Enable or mute the alarm

Live events:

	GET /ws - Websocket stream of roster, team and timer events
*/
package router
