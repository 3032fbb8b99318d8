// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db handles database connections, schema creation, and roster storage.

# Connections

Open accepts a database type and URL:

	conn, err := db.Open(db.TypeSQLite, "file:team-sorter.db")
	conn, err := db.Open(db.TypePostgres, "postgres://...")

SQLite uses modernc.org/sqlite (pure Go, no cgo). PostgreSQL uses lib/pq.

# Schema

CreateSchema creates the only table, roster_blob:

	storage_key TEXT PRIMARY KEY
	payload     TEXT      -- JSON array of {id, name, skill}
	updated_at  TIMESTAMP

Safe to call on every startup.

# Roster Storage

RosterStore reads and writes the whole roster as a single JSON blob under a
fixed key (DefaultStorageKey unless configured):

	store := db.NewRosterStore(conn, cfg.StorageKey)
	players, err := store.Load(ctx)
	err = store.Save(ctx, players)

A missing blob loads as an empty roster. A blob that is not valid JSON
returns ErrMalformedRoster; callers treat that as an empty roster.

MemoryStore offers the same contract without a database and is used for
DATABASE_TYPE=memory and in tests.
*/
package db
