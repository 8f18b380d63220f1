package sqlite

import (
	"context"
	"fmt"

	"skombo/internal/catalog"
)

func (c *Client) ReplaceAliases(ctx context.Context, aliases []catalog.Alias) error {
	tx, err := c.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM aliases"); err != nil {
		return fmt.Errorf("clearing aliases: %w", err)
	}
	for _, a := range aliases {
		if _, err := tx.ExecContext(ctx, "INSERT INTO aliases (key, value) VALUES (?, ?)", a.Key, a.Value); err != nil {
			return fmt.Errorf("inserting alias %s: %w", a.Key, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing aliases: %w", err)
	}
	return nil
}

func (c *Client) LoadAliases(ctx context.Context) ([]catalog.Alias, error) {
	rows, err := c.db.QueryContext(ctx, "SELECT key, value FROM aliases ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("loading aliases: %w", err)
	}
	defer rows.Close()

	var aliases []catalog.Alias
	for rows.Next() {
		var a catalog.Alias
		if err := rows.Scan(&a.Key, &a.Value); err != nil {
			return nil, fmt.Errorf("scanning alias: %w", err)
		}
		aliases = append(aliases, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating aliases: %w", err)
	}
	return aliases, nil
}
