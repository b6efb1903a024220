package postgres

import (
	"context"
	"database/sql"
	"fmt"
)

const schemaDDL = `
CREATE TABLE IF NOT EXISTS bears (
	id           TEXT PRIMARY KEY,
	name         TEXT NOT NULL DEFAULT '',
	pit_tag      TEXT NOT NULL DEFAULT '',
	wildlife_tag TEXT NOT NULL DEFAULT '',
	sex          TEXT NOT NULL DEFAULT '',
	ear_applied  TEXT NOT NULL DEFAULT '',
	capture_date DATE,
	notes        TEXT NOT NULL DEFAULT '',
	created_at   TIMESTAMPTZ NOT NULL,
	updated_at   TIMESTAMPTZ NOT NULL
);

CREATE TABLE IF NOT EXISTS sightings (
	id         TEXT PRIMARY KEY,
	bear_id    TEXT NOT NULL REFERENCES bears(id) ON DELETE CASCADE,
	seen_at    TIMESTAMPTZ NOT NULL,
	location   TEXT NOT NULL DEFAULT '',
	latitude   DOUBLE PRECISION,
	longitude  DOUBLE PRECISION,
	notes      TEXT NOT NULL DEFAULT '',
	created_at TIMESTAMPTZ NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_bears_created ON bears (created_at, id);
CREATE INDEX IF NOT EXISTS idx_sightings_bear_seen ON sightings (bear_id, seen_at);
`

// EnsureSchema crea las tablas si no existen. Es idempotente.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, schemaDDL); err != nil {
		return fmt.Errorf("postgres schema: %w", err)
	}
	return nil
}
