package db

import (
	"context"
	"fmt"
	"time"
)

// schema is applied on startup through the bootstrap DB init hook. Statements
// are idempotent so repeated startups are safe.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS album (
		id          UUID PRIMARY KEY,
		user_id     TEXT NOT NULL,
		title       TEXT NOT NULL,
		location    TEXT NOT NULL DEFAULT '',
		description TEXT NOT NULL DEFAULT '',
		is_public   BOOLEAN NOT NULL DEFAULT FALSE,
		created_at  TIMESTAMPTZ NOT NULL
	)`,
	`CREATE UNIQUE INDEX IF NOT EXISTS album_user_title_idx ON album (user_id, title)`,
	`CREATE INDEX IF NOT EXISTS album_user_idx ON album (user_id)`,
	`CREATE TABLE IF NOT EXISTS media (
		id         UUID PRIMARY KEY,
		album_id   UUID NOT NULL REFERENCES album(id) ON DELETE CASCADE,
		type       TEXT NOT NULL CHECK (type IN ('image', 'text', 'music')),
		url        TEXT,
		content    TEXT,
		created_at TIMESTAMPTZ NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS media_album_created_idx ON media (album_id, created_at DESC)`,
}

// Migrate applies the schema. Intended for use with bootstrap.WithDBInitHook.
func Migrate(db *DB) error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	for _, stmt := range schema {
		if _, err := db.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("apply schema statement: %w", err)
		}
	}

	db.log.Info("database schema ensured")
	return nil
}
