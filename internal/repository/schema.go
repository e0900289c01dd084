package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

const schema = `
CREATE TABLE IF NOT EXISTS users (
	id            TEXT PRIMARY KEY,
	first_name    TEXT NOT NULL,
	last_name     TEXT NOT NULL,
	email         TEXT NOT NULL,
	mobile_number TEXT NOT NULL,
	avatar_url    TEXT,
	role          TEXT NOT NULL,
	password_hash TEXT NOT NULL,
	created_at    TIMESTAMPTZ NOT NULL,
	updated_at    TIMESTAMPTZ NOT NULL
);

CREATE UNIQUE INDEX IF NOT EXISTS users_email_idx ON users (lower(email));

CREATE TABLE IF NOT EXISTS pools (
	id            TEXT PRIMARY KEY,
	user_id       TEXT NOT NULL REFERENCES users (id) ON DELETE CASCADE,
	title         TEXT NOT NULL,
	city          TEXT NOT NULL,
	capacity      INTEGER NOT NULL,
	images        TEXT[] NOT NULL DEFAULT '{}',
	is_visible    BOOLEAN NOT NULL DEFAULT FALSE,
	price_per_day DOUBLE PRECISION,
	description   TEXT,
	busy_days     TEXT[],
	filters       JSONB,
	visible_until TIMESTAMPTZ,
	check_in      TEXT,
	check_out     TEXT,
	rules         TEXT,
	views         INTEGER,
	created_at    TIMESTAMPTZ NOT NULL,
	updated_at    TIMESTAMPTZ NOT NULL
);

CREATE INDEX IF NOT EXISTS pools_user_id_idx ON pools (user_id);
`

// Migrate creates the tables used by the repositories if they are missing
func Migrate(ctx context.Context, db *pgxpool.Pool) error {
	if _, err := db.Exec(ctx, schema); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}
	return nil
}
