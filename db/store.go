// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/danielhkuo/team-sorter/models"
)

// DefaultStorageKey is the key the roster blob is stored under
const DefaultStorageKey = "pinico-city-players"

var ErrMalformedRoster = errors.New("malformed roster data")

// EncodeRoster serializes players as a JSON array of {id, name, skill}
func EncodeRoster(players []models.Player) ([]byte, error) {
	if players == nil {
		players = []models.Player{}
	}
	data, err := json.Marshal(players)
	if err != nil {
		return nil, fmt.Errorf("failed to encode roster: %w", err)
	}
	return data, nil
}

// DecodeRoster parses a stored roster blob.
// Entries without an id or name, with an out-of-range skill, or repeating
// an earlier id are skipped so the roster invariants hold after a load.
func DecodeRoster(data []byte) ([]models.Player, error) {
	var raw []models.Player
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedRoster, err)
	}

	players := make([]models.Player, 0, len(raw))
	seen := make(map[string]bool, len(raw))
	for _, p := range raw {
		if p.ID == "" || p.Name == "" || !models.ValidSkill(p.Skill) || seen[p.ID] {
			slog.Warn("skipping invalid stored player", "player_id", p.ID, "skill", p.Skill)
			continue
		}
		seen[p.ID] = true
		players = append(players, p)
	}

	return players, nil
}

// RosterStore keeps the roster blob in a SQL table
type RosterStore struct {
	db  *sql.DB
	key string
}

func NewRosterStore(db *sql.DB, key string) *RosterStore {
	if key == "" {
		key = DefaultStorageKey
	}
	return &RosterStore{db: db, key: key}
}

// Load reads the roster blob; a missing blob is an empty roster
func (s *RosterStore) Load(ctx context.Context) ([]models.Player, error) {
	var payload string
	err := s.db.QueryRowContext(ctx, `
		SELECT payload FROM roster_blob WHERE storage_key = $1
	`, s.key).Scan(&payload)

	if err == sql.ErrNoRows {
		return []models.Player{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query roster: %w", err)
	}

	return DecodeRoster([]byte(payload))
}

// Save replaces the roster blob
func (s *RosterStore) Save(ctx context.Context, players []models.Player) error {
	payload, err := EncodeRoster(players)
	if err != nil {
		return err
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO roster_blob (storage_key, payload, updated_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (storage_key) DO UPDATE
		SET payload = excluded.payload, updated_at = excluded.updated_at
	`, s.key, string(payload), time.Now().UTC())

	if err != nil {
		return fmt.Errorf("failed to save roster: %w", err)
	}

	return nil
}

// MemoryStore keeps raw blobs in memory, keyed like RosterStore
type MemoryStore struct {
	mu    sync.RWMutex
	key   string
	blobs map[string][]byte
}

func NewMemoryStore(key string) *MemoryStore {
	if key == "" {
		key = DefaultStorageKey
	}
	return &MemoryStore{key: key, blobs: make(map[string][]byte)}
}

func (s *MemoryStore) Load(ctx context.Context) ([]models.Player, error) {
	s.mu.RLock()
	data, ok := s.blobs[s.key]
	s.mu.RUnlock()

	if !ok {
		return []models.Player{}, nil
	}
	return DecodeRoster(data)
}

func (s *MemoryStore) Save(ctx context.Context, players []models.Player) error {
	data, err := EncodeRoster(players)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.blobs[s.key] = data
	return nil
}

// SetRaw stores data verbatim, bypassing encoding
func (s *MemoryStore) SetRaw(data []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.blobs[s.key] = append([]byte(nil), data...)
}

// Raw returns the stored blob and whether one exists
func (s *MemoryStore) Raw() ([]byte, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	data, ok := s.blobs[s.key]
	return append([]byte(nil), data...), ok
}
