package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"skombo/internal/catalog"
	"skombo/internal/store"
)

func (c *Client) ReplaceMoves(ctx context.Context, entries []catalog.Entry) error {
	tx, err := c.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM moves"); err != nil {
		return fmt.Errorf("clearing moves: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
	INSERT INTO moves (character, character_normalized, move_name, alt_names, damage)
	VALUES (?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("preparing move insert: %w", err)
	}
	defer stmt.Close()

	for _, e := range entries {
		if _, err := stmt.ExecContext(ctx, e.Character, catalog.Fold(e.Character), e.MoveName, e.AltNames, e.Damage); err != nil {
			return fmt.Errorf("inserting move %s/%s: %w", e.Character, e.MoveName, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing moves: %w", err)
	}
	return nil
}

func (c *Client) LoadMoves(ctx context.Context) ([]catalog.Entry, error) {
	rows, err := c.db.QueryContext(ctx, "SELECT character, move_name, alt_names, damage FROM moves ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("loading moves: %w", err)
	}
	return scanMoves(rows)
}

func (c *Client) ListMoves(ctx context.Context, character string) ([]catalog.Entry, error) {
	rows, err := c.db.QueryContext(ctx, `
	SELECT character, move_name, alt_names, damage FROM moves
	WHERE character_normalized = ?
	ORDER BY id
	`, catalog.Fold(character))
	if err != nil {
		return nil, fmt.Errorf("listing moves: %w", err)
	}
	entries, err := scanMoves(rows)
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, fmt.Errorf("character %q: %w", character, catalog.ErrNotFound)
	}
	return entries, nil
}

func (c *Client) ListCharacters(ctx context.Context) ([]store.CharacterSummary, error) {
	rows, err := c.db.QueryContext(ctx, `
	SELECT MIN(character), COUNT(*) FROM moves
	GROUP BY character_normalized
	ORDER BY MIN(id)
	`)
	if err != nil {
		return nil, fmt.Errorf("listing characters: %w", err)
	}
	defer rows.Close()

	var characters []store.CharacterSummary
	for rows.Next() {
		var summary store.CharacterSummary
		if err := rows.Scan(&summary.Name, &summary.Moves); err != nil {
			return nil, fmt.Errorf("scanning character: %w", err)
		}
		characters = append(characters, summary)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating characters: %w", err)
	}
	return characters, nil
}

func scanMoves(rows *sql.Rows) ([]catalog.Entry, error) {
	defer rows.Close()

	var entries []catalog.Entry
	for rows.Next() {
		var e catalog.Entry
		if err := rows.Scan(&e.Character, &e.MoveName, &e.AltNames, &e.Damage); err != nil {
			return nil, fmt.Errorf("scanning move: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating moves: %w", err)
	}
	return entries, nil
}
