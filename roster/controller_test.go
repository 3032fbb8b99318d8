// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package roster

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danielhkuo/team-sorter/balancer"
	"github.com/danielhkuo/team-sorter/db"
	"github.com/danielhkuo/team-sorter/models"
)

type recordingPublisher struct {
	mu     sync.Mutex
	events []string
}

func (p *recordingPublisher) Publish(kind string, data any) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, kind)
}

func (p *recordingPublisher) kinds() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string(nil), p.events...)
}

type recordingRecorder struct {
	mu         sync.Mutex
	shuffles   int
	unplaced   int
	rosterSize int
}

func (r *recordingRecorder) ObserveShuffle(teams, placed, unplaced, spread int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.shuffles++
	r.unplaced += unplaced
}

func (r *recordingRecorder) SetRosterSize(n int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rosterSize = n
}

type failingStorage struct {
	saves int
}

func (f *failingStorage) Load(context.Context) ([]models.Player, error) {
	return nil, errors.New("disk on fire")
}

func (f *failingStorage) Save(context.Context, []models.Player) error {
	f.saves++
	return errors.New("disk on fire")
}

func newTestController(t *testing.T, store Storage, opts ...Option) *Controller {
	t.Helper()
	opts = append([]Option{WithShuffleDelay(0)}, opts...)
	return NewController(context.Background(), store, opts...)
}

func addPlayers(t *testing.T, c *Controller, skills ...int) []string {
	t.Helper()
	ids := make([]string, len(skills))
	for i, skill := range skills {
		s, err := c.Dispatch(context.Background(), AddPlayer{Name: "Player", Skill: skill})
		require.NoError(t, err)
		ids[i] = s.Players[len(s.Players)-1].ID
	}
	return ids
}

func TestController_LoadsFromStorage(t *testing.T) {
	store := db.NewMemoryStore("")
	require.NoError(t, store.Save(context.Background(), []models.Player{
		{ID: "a", Name: "Alice", Skill: 3},
		{ID: "b", Name: "Bruno", Skill: 1},
	}))
	rec := &recordingRecorder{}

	c := newTestController(t, store, WithRecorder(rec))
	s := c.State()
	require.Len(t, s.Players, 2)
	assert.Equal(t, "Alice", s.Players[0].Name)
	assert.Equal(t, 2, rec.rosterSize)
}

func TestController_MalformedStorageStartsEmpty(t *testing.T) {
	store := db.NewMemoryStore("")
	store.SetRaw([]byte("{{{"))

	c := newTestController(t, store)
	assert.Empty(t, c.State().Players)

	// Loading alone never writes
	raw, _ := store.Raw()
	assert.Equal(t, "{{{", string(raw))

	// The first roster change replaces the broken blob
	addPlayers(t, c, 2)
	players, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.Len(t, players, 1)
}

func TestController_PersistsOnlyRosterChanges(t *testing.T) {
	store := db.NewMemoryStore("")
	c := newTestController(t, store)
	ctx := context.Background()

	_, err := c.Dispatch(ctx, SetTeamCount{N: 3})
	require.NoError(t, err)
	_, ok := store.Raw()
	assert.False(t, ok, "config changes must not be persisted")

	ids := addPlayers(t, c, 3, 2)
	players, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Len(t, players, 2)

	_, err = c.Dispatch(ctx, RemovePlayer{ID: ids[0]})
	require.NoError(t, err)
	players, err = store.Load(ctx)
	require.NoError(t, err)
	require.Len(t, players, 1)
	assert.Equal(t, ids[1], players[0].ID)

	// A reload sees the persisted roster
	reloaded := newTestController(t, store)
	assert.Len(t, reloaded.State().Players, 1)
}

func TestController_StorageFailuresAreNotFatal(t *testing.T) {
	store := &failingStorage{}
	c := newTestController(t, store)

	addPlayers(t, c, 1, 2)
	assert.Len(t, c.State().Players, 2)
	assert.Equal(t, 2, store.saves)
}

func TestController_DispatchErrorKeepsState(t *testing.T) {
	c := newTestController(t, db.NewMemoryStore(""))
	addPlayers(t, c, 2)

	s, err := c.Dispatch(context.Background(), AddPlayer{Name: " ", Skill: 2})
	assert.ErrorIs(t, err, ErrEmptyName)
	assert.Len(t, s.Players, 1)
}

func TestController_Shuffle(t *testing.T) {
	pub := &recordingPublisher{}
	rec := &recordingRecorder{}
	c := newTestController(t, db.NewMemoryStore(""), WithPublisher(pub), WithRecorder(rec))
	ctx := context.Background()

	addPlayers(t, c, 3, 3, 2, 2, 1, 1)
	_, err := c.Shuffle(ctx)
	assert.ErrorIs(t, err, ErrNotEnoughSelected)

	_, err = c.Dispatch(ctx, SelectAll{})
	require.NoError(t, err)
	_, err = c.Dispatch(ctx, SetPlayersPerTeam{N: 3})
	require.NoError(t, err)

	res, err := c.Shuffle(ctx)
	require.NoError(t, err)
	require.Len(t, res.Teams, 2)
	for _, team := range res.Teams {
		assert.Equal(t, 6, balancer.TeamStats(team).TotalSkill)
	}

	s := c.State()
	assert.Equal(t, res.Teams, s.Teams)
	assert.Equal(t, 1, rec.shuffles)
	assert.Contains(t, pub.kinds(), EventTeamsGenerated)

	_, err = c.Dispatch(ctx, ResetTeams{})
	require.NoError(t, err)
	assert.Empty(t, c.State().Teams)
	assert.Contains(t, pub.kinds(), EventTeamsReset)
}

func TestController_ShuffleReportsUnplaced(t *testing.T) {
	rec := &recordingRecorder{}
	c := newTestController(t, db.NewMemoryStore(""),
		WithRecorder(rec),
		WithTeamConfig(models.TeamConfig{TeamCount: 2, PlayersPerTeam: 3}),
	)
	ctx := context.Background()

	addPlayers(t, c, 1, 2, 3, 1, 2, 3, 1, 2, 3, 1)
	_, err := c.Dispatch(ctx, SelectAll{})
	require.NoError(t, err)

	res, err := c.Shuffle(ctx)
	require.NoError(t, err)
	assert.Equal(t, 6, res.Placed())
	assert.Len(t, res.Unplaced, 4)
	assert.Len(t, c.State().Unplaced, 4)
	assert.Equal(t, 4, rec.unplaced)
}

func TestController_ShuffleDelay(t *testing.T) {
	clock := clockwork.NewFakeClock()
	c := NewController(context.Background(), db.NewMemoryStore(""),
		WithClock(clock),
		WithShuffleDelay(500*time.Millisecond),
	)
	ctx := context.Background()
	addPlayers(t, c, 1, 2, 3, 3)
	_, err := c.Dispatch(ctx, SelectAll{})
	require.NoError(t, err)

	type outcome struct {
		res balancer.Result
		err error
	}
	done := make(chan outcome, 1)
	go func() {
		res, err := c.Shuffle(ctx)
		done <- outcome{res, err}
	}()

	waitCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	require.NoError(t, clock.BlockUntilContext(waitCtx, 1))

	_, err = c.Shuffle(ctx)
	assert.ErrorIs(t, err, ErrShuffleInProgress)
	assert.Empty(t, c.State().Teams, "teams appear only after the delay")

	clock.Advance(500 * time.Millisecond)

	select {
	case out := <-done:
		require.NoError(t, out.err)
		assert.Len(t, out.res.Teams, 1)
	case <-time.After(5 * time.Second):
		t.Fatal("shuffle did not finish after the delay")
	}
	assert.Len(t, c.State().Teams, 1)
}

func TestController_ShuffleDiscardedWhenRosterChanges(t *testing.T) {
	clock := clockwork.NewFakeClock()
	c := NewController(context.Background(), db.NewMemoryStore(""),
		WithClock(clock),
		WithShuffleDelay(time.Second),
	)
	ctx := context.Background()
	ids := addPlayers(t, c, 1, 2, 3)
	_, err := c.Dispatch(ctx, SelectAll{})
	require.NoError(t, err)

	done := make(chan error, 1)
	go func() {
		_, err := c.Shuffle(ctx)
		done <- err
	}()

	waitCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	require.NoError(t, clock.BlockUntilContext(waitCtx, 1))

	_, err = c.Dispatch(ctx, RemovePlayer{ID: ids[0]})
	require.NoError(t, err)
	clock.Advance(time.Second)

	select {
	case err := <-done:
		assert.ErrorIs(t, err, ErrRosterChanged)
	case <-time.After(5 * time.Second):
		t.Fatal("shuffle did not finish")
	}
	assert.Empty(t, c.State().Teams)

	// The flag is cleared, so another shuffle may run
	c.delay = 0
	_, err = c.Shuffle(ctx)
	assert.NoError(t, err)
}

func TestController_ShuffleCancelled(t *testing.T) {
	clock := clockwork.NewFakeClock()
	c := NewController(context.Background(), db.NewMemoryStore(""),
		WithClock(clock),
		WithShuffleDelay(time.Second),
	)
	addPlayers(t, c, 1, 2)
	_, err := c.Dispatch(context.Background(), SelectAll{})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = c.Shuffle(ctx)
	assert.ErrorIs(t, err, context.Canceled)

	c.mu.Lock()
	assert.False(t, c.shuffling)
	c.mu.Unlock()
}

func TestController_ConcurrentDispatch(t *testing.T) {
	store := db.NewMemoryStore("")
	c := newTestController(t, store)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := c.Dispatch(context.Background(), AddPlayer{Name: "P", Skill: i%3 + 1})
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	assert.Len(t, c.State().Players, 20)
	players, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.Len(t, players, 20)
}
