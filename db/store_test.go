// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/danielhkuo/team-sorter/models"
)

func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	conn, err := Open(TypeSQLite, "file::memory:")
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	if err := CreateSchema(conn); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}
	return conn
}

func testPlayers() []models.Player {
	return []models.Player{
		{ID: "a", Name: "Alice", Skill: 3},
		{ID: "b", Name: "Bruno", Skill: 1},
		{ID: "c", Name: "Caio", Skill: 2},
	}
}

func TestCreateSchema_Idempotent(t *testing.T) {
	conn := setupTestDB(t)
	if err := CreateSchema(conn); err != nil {
		t.Fatalf("second CreateSchema failed: %v", err)
	}
}

func TestOpen_UnsupportedType(t *testing.T) {
	_, err := Open("mysql", "whatever")
	if !errors.Is(err, ErrUnsupportedType) {
		t.Errorf("expected ErrUnsupportedType, got %v", err)
	}
}

func TestRosterStore_LoadMissing(t *testing.T) {
	store := NewRosterStore(setupTestDB(t), "")

	players, err := store.Load(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if players == nil || len(players) != 0 {
		t.Errorf("expected empty roster, got %v", players)
	}
}

func TestRosterStore_SaveAndLoad(t *testing.T) {
	conn := setupTestDB(t)
	store := NewRosterStore(conn, "test-key")
	ctx := context.Background()

	if err := store.Save(ctx, testPlayers()); err != nil {
		t.Fatal(err)
	}

	// Overwrite keeps a single row
	updated := append(testPlayers(), models.Player{ID: "d", Name: "Davi", Skill: 2})
	if err := store.Save(ctx, updated); err != nil {
		t.Fatal(err)
	}

	var count int
	if err := conn.QueryRow("SELECT COUNT(*) FROM roster_blob").Scan(&count); err != nil {
		t.Fatal(err)
	}
	if count != 1 {
		t.Errorf("expected 1 row, got %d", count)
	}

	players, err := store.Load(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(players) != 4 {
		t.Fatalf("expected 4 players, got %d", len(players))
	}
	for i, p := range updated {
		if players[i] != p {
			t.Errorf("player %d: expected %+v, got %+v", i, p, players[i])
		}
	}

	// Other keys are independent
	other, err := NewRosterStore(conn, "other-key").Load(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(other) != 0 {
		t.Errorf("expected empty roster under other key, got %d players", len(other))
	}
}

func TestRosterStore_Malformed(t *testing.T) {
	conn := setupTestDB(t)
	_, err := conn.Exec(`
		INSERT INTO roster_blob (storage_key, payload, updated_at)
		VALUES ($1, $2, CURRENT_TIMESTAMP)
	`, DefaultStorageKey, "{not json")
	if err != nil {
		t.Fatal(err)
	}

	_, err = NewRosterStore(conn, "").Load(context.Background())
	if !errors.Is(err, ErrMalformedRoster) {
		t.Errorf("expected ErrMalformedRoster, got %v", err)
	}
}

func TestDecodeRoster(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		expectErr bool
		expectIDs []string
	}{
		{"empty array", `[]`, false, []string{}},
		{"null", `null`, false, []string{}},
		{"valid", `[{"id":"a","name":"A","skill":1},{"id":"b","name":"B","skill":3}]`, false, []string{"a", "b"}},
		{"skips bad skill", `[{"id":"a","name":"A","skill":0},{"id":"b","name":"B","skill":4}]`, false, []string{}},
		{"skips duplicate id", `[{"id":"a","name":"A","skill":1},{"id":"a","name":"A2","skill":2}]`, false, []string{"a"}},
		{"skips missing name", `[{"id":"a","skill":1}]`, false, []string{}},
		{"object", `{"id":"a"}`, true, nil},
		{"garbage", `pinico`, true, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			players, err := DecodeRoster([]byte(tt.input))
			if tt.expectErr {
				if !errors.Is(err, ErrMalformedRoster) {
					t.Errorf("expected ErrMalformedRoster, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(players) != len(tt.expectIDs) {
				t.Fatalf("expected %d players, got %d", len(tt.expectIDs), len(players))
			}
			for i, id := range tt.expectIDs {
				if players[i].ID != id {
					t.Errorf("player %d: expected id %s, got %s", i, id, players[i].ID)
				}
			}
		})
	}
}

func TestMemoryStore(t *testing.T) {
	store := NewMemoryStore("")
	ctx := context.Background()

	if _, ok := store.Raw(); ok {
		t.Error("expected no blob before first save")
	}

	if err := store.Save(ctx, testPlayers()); err != nil {
		t.Fatal(err)
	}
	players, err := store.Load(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(players) != 3 {
		t.Errorf("expected 3 players, got %d", len(players))
	}

	store.SetRaw([]byte("[[["))
	if _, err := store.Load(ctx); !errors.Is(err, ErrMalformedRoster) {
		t.Errorf("expected ErrMalformedRoster, got %v", err)
	}

	if err := store.Save(ctx, nil); err != nil {
		t.Fatal(err)
	}
	raw, _ := store.Raw()
	if string(raw) != "[]" {
		t.Errorf("expected empty array blob, got %s", raw)
	}
}
