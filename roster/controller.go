// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package roster

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/danielhkuo/team-sorter/balancer"
	"github.com/danielhkuo/team-sorter/models"
)

// Event types published by the controller
const (
	EventRosterChanged  = "roster.changed"
	EventTeamsGenerated = "teams.generated"
	EventTeamsReset     = "teams.reset"
)

// DefaultShuffleDelay is the pause before teams are revealed
const DefaultShuffleDelay = 500 * time.Millisecond

var (
	ErrShuffleInProgress = errors.New("shuffle already in progress")
	ErrRosterChanged     = errors.New("roster changed during shuffle")
)

// Storage persists the player list
type Storage interface {
	Load(ctx context.Context) ([]models.Player, error)
	Save(ctx context.Context, players []models.Player) error
}

// Publisher receives events for live clients
type Publisher interface {
	Publish(kind string, data any)
}

// Recorder receives balancing and roster metrics
type Recorder interface {
	ObserveShuffle(teams, placed, unplaced, spread int)
	SetRosterSize(n int)
}

type nopPublisher struct{}

func (nopPublisher) Publish(string, any) {}

type nopRecorder struct{}

func (nopRecorder) ObserveShuffle(int, int, int, int) {}
func (nopRecorder) SetRosterSize(int)                 {}

// Controller owns the session state and applies one action at a time
type Controller struct {
	mu        sync.Mutex
	state     State
	version   uint64 // bumped whenever the player list changes
	shuffling bool

	storage   Storage
	publisher Publisher
	recorder  Recorder
	clock     clockwork.Clock
	delay     time.Duration
}

type Option func(*Controller)

func WithPublisher(p Publisher) Option {
	return func(c *Controller) {
		if p != nil {
			c.publisher = p
		}
	}
}

func WithRecorder(r Recorder) Option {
	return func(c *Controller) {
		if r != nil {
			c.recorder = r
		}
	}
}

func WithClock(clock clockwork.Clock) Option {
	return func(c *Controller) { c.clock = clock }
}

// WithShuffleDelay sets the cosmetic pause before teams are revealed
func WithShuffleDelay(d time.Duration) Option {
	return func(c *Controller) { c.delay = max(d, 0) }
}

// WithTeamConfig overrides the initial team configuration (clamped)
func WithTeamConfig(cfg models.TeamConfig) Option {
	return func(c *Controller) { c.state.Config = cfg.Clamp() }
}

// NewController loads the roster from storage and returns a controller
// ready for actions. A failed load is logged and leaves the roster empty.
func NewController(ctx context.Context, storage Storage, opts ...Option) *Controller {
	c := &Controller{
		state:     NewState(),
		storage:   storage,
		publisher: nopPublisher{},
		recorder:  nopRecorder{},
		clock:     clockwork.NewRealClock(),
		delay:     DefaultShuffleDelay,
	}
	for _, opt := range opts {
		opt(c)
	}

	players, err := storage.Load(ctx)
	if err != nil {
		slog.Error("failed to load roster, starting empty", "error", err)
		players = nil
	}
	if players != nil {
		c.state.Players = players
	}
	c.recorder.SetRosterSize(len(c.state.Players))
	slog.Info("roster loaded", "players", len(c.state.Players))

	return c
}

// State returns a copy of the current state
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.Clone()
}

// Dispatch applies an action, persisting the roster when it changed
func (c *Controller) Dispatch(ctx context.Context, a Action) (State, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	next, err := Reduce(c.state, a)
	if err != nil {
		return c.state.Clone(), err
	}
	c.state = next

	if ChangesRoster(a) {
		c.version++
		c.persist(ctx)
		c.recorder.SetRosterSize(len(next.Players))
		c.publisher.Publish(EventRosterChanged, map[string]int{
			"players":  len(next.Players),
			"selected": len(next.Selected),
		})
	}
	if _, ok := a.(ResetTeams); ok {
		c.publisher.Publish(EventTeamsReset, nil)
	}

	return next.Clone(), nil
}

// persist writes the roster; failures are logged and otherwise ignored.
// Must hold c.mu.
func (c *Controller) persist(ctx context.Context) {
	if err := c.storage.Save(ctx, c.state.Players); err != nil {
		slog.Error("failed to persist roster", "error", err, "players", len(c.state.Players))
	}
}

// Shuffle balances the selected players into teams and stores the result.
//
// The selection and configuration are captured when the call starts. A
// roster change during the cosmetic delay discards the result.
func (c *Controller) Shuffle(ctx context.Context) (balancer.Result, error) {
	c.mu.Lock()
	if c.shuffling {
		c.mu.Unlock()
		return balancer.Result{}, ErrShuffleInProgress
	}
	if !CanShuffle(c.state) {
		c.mu.Unlock()
		return balancer.Result{}, ErrNotEnoughSelected
	}
	players := SelectedPlayers(c.state)
	cfg := c.state.Config
	version := c.version
	c.shuffling = true
	c.mu.Unlock()

	if c.delay > 0 {
		select {
		case <-c.clock.After(c.delay):
		case <-ctx.Done():
			c.mu.Lock()
			c.shuffling = false
			c.mu.Unlock()
			return balancer.Result{}, ctx.Err()
		}
	}

	result := balancer.Distribute(players, cfg.TeamCount, cfg.PlayersPerTeam)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.shuffling = false

	if c.version != version {
		return balancer.Result{}, ErrRosterChanged
	}

	next, err := Reduce(c.state, ApplyTeams{Teams: result.Teams, Unplaced: result.Unplaced})
	if err != nil {
		return balancer.Result{}, err
	}
	c.state = next

	spread := balancer.Spread(result.Teams)
	c.recorder.ObserveShuffle(len(result.Teams), result.Placed(), len(result.Unplaced), spread)

	if len(result.Unplaced) > 0 {
		slog.Warn("players left without a team",
			"unplaced", len(result.Unplaced),
			"capacity", result.Layout.Capacity(),
			"selected", len(players),
		)
	}
	slog.Info("teams generated",
		"teams", len(result.Teams),
		"placed", result.Placed(),
		"spread", spread,
	)

	c.publisher.Publish(EventTeamsGenerated, models.TeamsResponse{
		Teams:    balancer.Views(result.Teams),
		Unplaced: result.Unplaced,
	})

	return result, nil
}
