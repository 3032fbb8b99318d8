// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package events

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

// EventHello is sent to every client right after it connects
const EventHello = "hello"

// Event is the envelope written to live clients
type Event struct {
	ID   string    `json:"id"`
	Type string    `json:"type"`
	At   time.Time `json:"at"`
	Data any       `json:"data,omitempty"`
}

// Config holds websocket settings for the hub
type Config struct {
	WriteTimeout    time.Duration
	ReadTimeout     time.Duration
	PingInterval    time.Duration
	MaxMessageSize  int64
	ReadBufferSize  int
	WriteBufferSize int
	SendBuffer      int
	BroadcastBuffer int
	CheckOrigin     func(r *http.Request) bool
}

// DefaultConfig returns settings suited to a handful of devices on a LAN
func DefaultConfig() Config {
	return Config{
		WriteTimeout:    10 * time.Second,
		ReadTimeout:     60 * time.Second,
		PingInterval:    30 * time.Second,
		MaxMessageSize:  1024,
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		SendBuffer:      64,
		BroadcastBuffer: 256,
		CheckOrigin: func(r *http.Request) bool {
			return true
		},
	}
}

// ClientObserver is told how many clients are connected
type ClientObserver interface {
	SetLiveClients(n int)
}

// Hub fans out published events to every connected websocket client.
// Clients are read-only: anything they send is discarded.
type Hub struct {
	mu      sync.RWMutex
	clients map[*client]struct{}

	upgrader  websocket.Upgrader
	config    Config
	broadcast chan Event

	greeting func() any
	observer ClientObserver
}

type client struct {
	id   string
	conn *websocket.Conn
	send chan []byte
	hub  *Hub
}

type Option func(*Hub)

// WithGreeting sets the payload of the hello event sent on connect
func WithGreeting(fn func() any) Option {
	return func(h *Hub) { h.greeting = fn }
}

func WithObserver(o ClientObserver) Option {
	return func(h *Hub) { h.observer = o }
}

// NewHub creates a hub. Call Run to start delivering events.
func NewHub(config Config, opts ...Option) *Hub {
	h := &Hub{
		clients: make(map[*client]struct{}),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  config.ReadBufferSize,
			WriteBufferSize: config.WriteBufferSize,
			CheckOrigin:     config.CheckOrigin,
		},
		config:    config,
		broadcast: make(chan Event, max(config.BroadcastBuffer, 1)),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Run delivers published events until ctx is cancelled, then disconnects
// every client.
func (h *Hub) Run(ctx context.Context) {
	slog.Info("event hub started")

	for {
		select {
		case <-ctx.Done():
			h.closeAll()
			slog.Info("event hub stopped")
			return
		case event := <-h.broadcast:
			h.deliver(event)
		}
	}
}

// Publish queues an event for delivery. It never blocks; when the queue is
// full the event is dropped.
func (h *Hub) Publish(kind string, data any) {
	event := newEvent(kind, data)
	select {
	case h.broadcast <- event:
	default:
		slog.Warn("event queue full, dropping event", "type", kind)
	}
}

// ClientCount returns the number of connected clients
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// ServeHTTP upgrades the request to a websocket and registers the client
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already written an error response
		slog.Warn("failed to upgrade websocket connection", "error", err, "remote", r.RemoteAddr)
		return
	}

	c := &client{
		id:   uuid.NewString(),
		conn: conn,
		send: make(chan []byte, max(h.config.SendBuffer, 1)),
		hub:  h,
	}

	if h.greeting != nil {
		if msg, err := json.Marshal(newEvent(EventHello, h.greeting())); err == nil {
			c.send <- msg
		} else {
			slog.Error("failed to marshal hello event", "error", err)
		}
	}

	h.register(c)

	go c.writePump()
	go c.readPump()

	slog.Info("live client connected", "client_id", c.id, "remote", r.RemoteAddr)
}

func newEvent(kind string, data any) Event {
	return Event{
		ID:   uuid.NewString(),
		Type: kind,
		At:   time.Now().UTC(),
		Data: data,
	}
}

func (h *Hub) register(c *client) {
	h.mu.Lock()
	h.clients[c] = struct{}{}
	n := len(h.clients)
	h.mu.Unlock()

	h.observe(n)
}

func (h *Hub) unregister(c *client) {
	h.mu.Lock()
	_, ok := h.clients[c]
	if ok {
		delete(h.clients, c)
		close(c.send)
	}
	n := len(h.clients)
	h.mu.Unlock()

	if ok {
		h.observe(n)
		slog.Info("live client disconnected", "client_id", c.id)
	}
}

func (h *Hub) observe(n int) {
	if h.observer != nil {
		h.observer.SetLiveClients(n)
	}
}

func (h *Hub) deliver(event Event) {
	msg, err := json.Marshal(event)
	if err != nil {
		slog.Error("failed to marshal event", "error", err, "type", event.Type)
		return
	}

	// Sends happen under the read lock so unregister cannot close a
	// channel mid-send.
	var slow []*client
	h.mu.RLock()
	for c := range h.clients {
		select {
		case c.send <- msg:
		default:
			slow = append(slow, c)
		}
	}
	n := len(h.clients)
	h.mu.RUnlock()

	for _, c := range slow {
		slog.Warn("client send buffer full, disconnecting", "client_id", c.id)
		h.unregister(c)
		c.conn.Close()
	}

	slog.Debug("event delivered", "type", event.Type, "clients", n)
}

func (h *Hub) closeAll() {
	h.mu.Lock()
	clients := make([]*client, 0, len(h.clients))
	for c := range h.clients {
		clients = append(clients, c)
	}
	h.mu.Unlock()

	for _, c := range clients {
		h.unregister(c)
	}
}

func (c *client) writePump() {
	ticker := time.NewTicker(c.hub.config.PingInterval)
	defer func() {
		ticker.Stop()
		c.conn.Close()
		c.hub.unregister(c)
	}()

	for {
		select {
		case msg, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(c.hub.config.WriteTimeout))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				slog.Debug("failed to write to client", "client_id", c.id, "error", err)
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(c.hub.config.WriteTimeout))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				slog.Debug("failed to ping client", "client_id", c.id, "error", err)
				return
			}
		}
	}
}

func (c *client) readPump() {
	defer func() {
		c.hub.unregister(c)
		c.conn.Close()
	}()

	c.conn.SetReadLimit(c.hub.config.MaxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(c.hub.config.ReadTimeout))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(c.hub.config.ReadTimeout))
		return nil
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				slog.Warn("unexpected websocket close", "client_id", c.id, "error", err)
			}
			return
		}
		c.conn.SetReadDeadline(time.Now().Add(c.hub.config.ReadTimeout))
	}
}
