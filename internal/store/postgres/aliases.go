package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"skombo/internal/catalog"
)

func (c *Client) ReplaceAliases(ctx context.Context, aliases []catalog.Alias) error {
	tx, err := c.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, "TRUNCATE aliases RESTART IDENTITY"); err != nil {
		return fmt.Errorf("clearing aliases: %w", err)
	}

	batch := &pgx.Batch{}
	for _, a := range aliases {
		batch.Queue("INSERT INTO aliases (key, value) VALUES ($1, $2)", a.Key, a.Value)
	}
	if batch.Len() > 0 {
		if err := tx.SendBatch(ctx, batch).Close(); err != nil {
			return fmt.Errorf("inserting aliases: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("committing aliases: %w", err)
	}
	return nil
}

func (c *Client) LoadAliases(ctx context.Context) ([]catalog.Alias, error) {
	rows, err := c.pool.Query(ctx, "SELECT key, value FROM aliases ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("loading aliases: %w", err)
	}
	aliases, err := pgx.CollectRows(rows, pgx.RowToStructByPos[catalog.Alias])
	if err != nil {
		return nil, fmt.Errorf("scanning aliases: %w", err)
	}
	return aliases, nil
}
