// Package store provides a SQLite-backed library of content pages and the
// last scroll position viewed on each.
package store

import (
	"database/sql"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	_ "modernc.org/sqlite" // register sqlite driver
)

const schema = `
CREATE TABLE IF NOT EXISTS pages (
	name     TEXT PRIMARY KEY,
	title    TEXT NOT NULL,
	source   TEXT NOT NULL,
	updated  INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS views (
	page     TEXT PRIMARY KEY,
	scroll   REAL NOT NULL,
	updated  INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_views_updated ON views(updated);
`

// Store is a SQLite-backed page store.
type Store struct {
	mu  sync.Mutex
	db  *sql.DB
	ttl time.Duration

	saveCh chan saveReq
	done   chan struct{}
}

// Open creates or opens a store database at the given path. Remembered
// scroll positions older than ttl are forgotten; zero keeps them forever.
func Open(dbPath string, ttl time.Duration) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open store db: %w", err)
	}

	for _, pragma := range []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 5000",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("pragma %q: %w", pragma, err)
		}
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}

	s := &Store{
		db:     db,
		ttl:    ttl,
		saveCh: make(chan saveReq, 64),
		done:   make(chan struct{}),
	}
	s.purgeStale()
	go s.saveLoop()
	return s, nil
}

// Close drains pending view saves and closes the database.
func (s *Store) Close() error {
	if s == nil {
		return nil
	}
	close(s.saveCh)
	<-s.done
	return s.db.Close()
}

// purgeStale removes remembered views older than the TTL.
func (s *Store) purgeStale() {
	if s.ttl <= 0 {
		return
	}
	cutoff := time.Now().Add(-s.ttl).Unix()
	res, err := s.db.Exec("DELETE FROM views WHERE updated <= ?", cutoff)
	if err != nil {
		log.Warn().Err(err).Msg("failed to purge stale views")
		return
	}
	if n, _ := res.RowsAffected(); n > 0 {
		log.Info().Int64("deleted", n).Msg("purged stale views")
	}
}
