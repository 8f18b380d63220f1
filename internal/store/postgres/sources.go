package postgres

import (
	"context"
	"fmt"
)

func (c *Client) GetSourceHashes(ctx context.Context) (map[string]string, error) {
	rows, err := c.pool.Query(ctx, "SELECT name, hash FROM sources")
	if err != nil {
		return nil, fmt.Errorf("query source hashes: %w", err)
	}
	defer rows.Close()

	hashes := make(map[string]string)
	for rows.Next() {
		var name, hash string
		if err := rows.Scan(&name, &hash); err != nil {
			return nil, fmt.Errorf("scanning source hash: %w", err)
		}
		hashes[name] = hash
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating source hashes: %w", err)
	}
	return hashes, nil
}

func (c *Client) SetSourceHash(ctx context.Context, source, hash string) error {
	_, err := c.pool.Exec(ctx, `
INSERT INTO sources (name, hash, imported_at) VALUES ($1, $2, now())
ON CONFLICT (name) DO UPDATE SET
    hash = EXCLUDED.hash,
    imported_at = now()
`, source, hash)
	if err != nil {
		return fmt.Errorf("setting source hash: %w", err)
	}
	return nil
}
