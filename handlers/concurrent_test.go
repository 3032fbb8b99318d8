// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/danielhkuo/team-sorter/roster"
	"github.com/danielhkuo/team-sorter/testutil"
)

// TestConcurrentAddPlayers verifies no player is lost when many devices
// add players at once
func TestConcurrentAddPlayers(t *testing.T) {
	ctrl, store := testutil.NewTestController(t)
	handler := NewRosterHandler(ctrl)

	const numPlayers = 25
	var wg sync.WaitGroup
	codes := make(chan int, numPlayers)

	for i := 0; i < numPlayers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			body := map[string]any{"name": fmt.Sprintf("Player %d", i), "skill": i%3 + 1}
			w := httptest.NewRecorder()
			handler.AddPlayer(w, testutil.MakeRequest("POST", "/players", body, nil))
			codes <- w.Code
		}(i)
	}

	wg.Wait()
	close(codes)

	for code := range codes {
		if code != http.StatusCreated {
			t.Errorf("Expected 201, got %d", code)
		}
	}

	if n := len(ctrl.State().Players); n != numPlayers {
		t.Errorf("Expected %d players, got %d", numPlayers, n)
	}
	players, err := store.Load(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(players) != numPlayers {
		t.Errorf("Expected %d persisted players, got %d", numPlayers, len(players))
	}
}

// TestConcurrentShuffle verifies a second shuffle during the reveal delay
// is refused instead of queued
func TestConcurrentShuffle(t *testing.T) {
	clock := clockwork.NewFakeClock()
	ctrl, _ := testutil.NewTestController(t,
		roster.WithClock(clock),
		roster.WithShuffleDelay(500*time.Millisecond),
	)
	testutil.SeedPlayers(t, ctrl, 1, 2, 3, 3)
	selectAll(t, ctrl)
	handler := NewTeamsHandler(ctrl)

	first := make(chan int, 1)
	go func() {
		w := httptest.NewRecorder()
		handler.Shuffle(w, testutil.MakeRequest("POST", "/teams/shuffle", nil, nil))
		first <- w.Code
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := clock.BlockUntilContext(ctx, 1); err != nil {
		t.Fatalf("First shuffle never started waiting: %v", err)
	}

	w := httptest.NewRecorder()
	handler.Shuffle(w, testutil.MakeRequest("POST", "/teams/shuffle", nil, nil))
	testutil.AssertError(t, w, http.StatusConflict)

	clock.Advance(500 * time.Millisecond)

	select {
	case code := <-first:
		if code != http.StatusOK {
			t.Errorf("Expected first shuffle to succeed, got %d", code)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("First shuffle did not finish")
	}
}
