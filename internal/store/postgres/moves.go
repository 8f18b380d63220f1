package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"skombo/internal/catalog"
	"skombo/internal/store"
)

func (c *Client) ReplaceMoves(ctx context.Context, entries []catalog.Entry) error {
	tx, err := c.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, "TRUNCATE moves RESTART IDENTITY"); err != nil {
		return fmt.Errorf("clearing moves: %w", err)
	}

	rows := make([][]any, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, []any{e.Character, catalog.Fold(e.Character), e.MoveName, e.AltNames, e.Damage})
	}
	_, err = tx.CopyFrom(ctx,
		pgx.Identifier{"moves"},
		[]string{"character", "character_normalized", "move_name", "alt_names", "damage"},
		pgx.CopyFromRows(rows),
	)
	if err != nil {
		return fmt.Errorf("copying moves: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("committing moves: %w", err)
	}
	return nil
}

func (c *Client) LoadMoves(ctx context.Context) ([]catalog.Entry, error) {
	rows, err := c.pool.Query(ctx, "SELECT character, move_name, alt_names, damage FROM moves ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("loading moves: %w", err)
	}
	entries, err := pgx.CollectRows(rows, pgx.RowToStructByPos[catalog.Entry])
	if err != nil {
		return nil, fmt.Errorf("scanning moves: %w", err)
	}
	return entries, nil
}

func (c *Client) ListMoves(ctx context.Context, character string) ([]catalog.Entry, error) {
	rows, err := c.pool.Query(ctx, `
SELECT character, move_name, alt_names, damage FROM moves
WHERE character_normalized = $1
ORDER BY id
`, catalog.Fold(character))
	if err != nil {
		return nil, fmt.Errorf("listing moves: %w", err)
	}
	entries, err := pgx.CollectRows(rows, pgx.RowToStructByPos[catalog.Entry])
	if err != nil {
		return nil, fmt.Errorf("scanning moves: %w", err)
	}
	if len(entries) == 0 {
		return nil, fmt.Errorf("character %q: %w", character, catalog.ErrNotFound)
	}
	return entries, nil
}

func (c *Client) ListCharacters(ctx context.Context) ([]store.CharacterSummary, error) {
	rows, err := c.pool.Query(ctx, `
SELECT MIN(character), COUNT(*)::int FROM moves
GROUP BY character_normalized
ORDER BY MIN(id)
`)
	if err != nil {
		return nil, fmt.Errorf("listing characters: %w", err)
	}
	characters, err := pgx.CollectRows(rows, pgx.RowToStructByPos[store.CharacterSummary])
	if err != nil {
		return nil, fmt.Errorf("scanning characters: %w", err)
	}
	return characters, nil
}
