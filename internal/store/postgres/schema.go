package postgres

import (
	"context"
	"fmt"
)

func (c *Client) EnsureSchema(ctx context.Context) error {
	// Runs as one implicit transaction.
	ddl := `
CREATE TABLE IF NOT EXISTS moves (
    id                   BIGINT GENERATED ALWAYS AS IDENTITY PRIMARY KEY,
    character            TEXT NOT NULL,
    character_normalized TEXT NOT NULL,
    move_name            TEXT NOT NULL,
    alt_names            TEXT NOT NULL DEFAULT '',
    damage               TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS aliases (
    id    BIGINT GENERATED ALWAYS AS IDENTITY PRIMARY KEY,
    key   TEXT NOT NULL,
    value TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS sources (
    name        TEXT PRIMARY KEY,
    hash        TEXT NOT NULL,
    imported_at TIMESTAMPTZ DEFAULT now()
);

CREATE INDEX IF NOT EXISTS idx_moves_character ON moves (character_normalized);
`
	_, err := c.pool.Exec(ctx, ddl)
	if err != nil {
		return fmt.Errorf("ensuring schema: %w", err)
	}
	return nil
}
