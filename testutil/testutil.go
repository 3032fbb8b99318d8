// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/jonboulle/clockwork"

	"github.com/danielhkuo/team-sorter/cliparse"
	"github.com/danielhkuo/team-sorter/db"
	"github.com/danielhkuo/team-sorter/matchtimer"
	"github.com/danielhkuo/team-sorter/models"
	"github.com/danielhkuo/team-sorter/roster"
)

// TestStorageKey is the roster key used by test stores
const TestStorageKey = "test-roster"

// SetupTestDB opens a private in-memory sqlite database with the schema
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	// db.Open pins sqlite to one connection, so each call gets its own
	// private in-memory database
	conn, err := db.Open(db.TypeSQLite, "file::memory:")
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	if err := db.CreateSchema(conn); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}

	return conn
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:         3318,
		DatabaseURL:  "file::memory:",
		DatabaseType: db.TypeSQLite,
		StorageKey:   TestStorageKey,
		ShuffleDelay: 0,
		Defaults:     cliparse.DefaultDefaults(),
	}
}

// NewTestController returns a controller backed by a fresh sqlite database
// with no shuffle delay
func NewTestController(t *testing.T, opts ...roster.Option) (*roster.Controller, *db.RosterStore) {
	t.Helper()

	store := db.NewRosterStore(SetupTestDB(t), TestStorageKey)
	opts = append([]roster.Option{roster.WithShuffleDelay(0)}, opts...)
	return roster.NewController(context.Background(), store, opts...), store
}

// NewTestTimer returns a timer on a fake clock
func NewTestTimer(t *testing.T, opts ...matchtimer.Option) (*matchtimer.Timer, *clockwork.FakeClock) {
	t.Helper()

	clock := clockwork.NewFakeClock()
	opts = append([]matchtimer.Option{matchtimer.WithClock(clock)}, opts...)
	timer := matchtimer.New(opts...)
	t.Cleanup(timer.Close)
	return timer, clock
}

// SeedPlayers adds one player per skill and returns their IDs in order
func SeedPlayers(t *testing.T, ctrl *roster.Controller, skills ...int) []string {
	t.Helper()

	ids := make([]string, len(skills))
	for i, skill := range skills {
		s, err := ctrl.Dispatch(context.Background(), roster.AddPlayer{
			Name:  fmt.Sprintf("Player %d", i+1),
			Skill: skill,
		})
		if err != nil {
			t.Fatalf("Failed to seed player: %v", err)
		}
		ids[i] = s.Players[len(s.Players)-1].ID
	}
	return ids
}

// RecordingPublisher keeps the kinds of every event it receives
type RecordingPublisher struct {
	mu    sync.Mutex
	kinds []string
}

func (p *RecordingPublisher) Publish(kind string, data any) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.kinds = append(p.kinds, kind)
}

// Kinds returns a copy of the received event kinds
func (p *RecordingPublisher) Kinds() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string(nil), p.kinds...)
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}

// AssertError decodes an error response and checks its status
func AssertError(t *testing.T, w *httptest.ResponseRecorder, expected int) models.ErrorResponse {
	t.Helper()
	AssertStatus(t, w, expected)
	var resp models.ErrorResponse
	AssertJSON(t, w, &resp)
	return resp
}
