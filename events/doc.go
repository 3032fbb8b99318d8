// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package events pushes state changes to connected devices over websockets.

The Hub satisfies the Publisher interfaces of the roster and matchtimer
packages, so both can announce changes without knowing about transports:

	hub := events.NewHub(events.DefaultConfig(), events.WithGreeting(snapshot))
	go hub.Run(ctx)
	mux.Handle("GET /ws", hub)

	ctrl := roster.NewController(ctx, store, roster.WithPublisher(hub))

# Wire format

Each message is one JSON object:

	{"id": "...", "type": "teams.generated", "at": "2025-01-01T18:00:00Z", "data": {...}}

Types published today:

  - hello: sent once on connect, data is the greeting snapshot
  - roster.changed, teams.generated, teams.reset
  - timer.started, timer.paused, timer.reset, timer.updated
  - timer.finished, timer.alarm, timer.dismissed

Timer events carry the full timer snapshot. Clients count down locally
from remaining_sec and resync on the next event; no tick events are sent.

# Delivery

Publish never blocks. Events are dropped when the hub queue is full, and a
client whose send buffer is full is disconnected. Clients are expected to
reconnect and rely on the hello snapshot to catch up.
*/
package events
