package store

import (
	"context"
	"fmt"

	"skombo/internal/catalog"
)

// Source names used for import hashes.
const (
	SourceFrameData = "frame_data"
	SourceAliases   = "aliases"
)

// Store caches catalog input so that commands can run without re-reading
// the CSV files. Moves and aliases keep their file order.
type Store interface {
	Close(ctx context.Context) error
	EnsureSchema(ctx context.Context) error

	ReplaceMoves(ctx context.Context, entries []catalog.Entry) error
	ReplaceAliases(ctx context.Context, aliases []catalog.Alias) error
	LoadMoves(ctx context.Context) ([]catalog.Entry, error)
	LoadAliases(ctx context.Context) ([]catalog.Alias, error)

	ListCharacters(ctx context.Context) ([]CharacterSummary, error)
	ListMoves(ctx context.Context, character string) ([]catalog.Entry, error)

	GetSourceHashes(ctx context.Context) (map[string]string, error)
	SetSourceHash(ctx context.Context, source, hash string) error

	RunSQL(ctx context.Context, query string, args ...any) (*SQLResult, error)
}

type CharacterSummary struct {
	Name  string
	Moves int
}

// SQLResult holds the rows of an ad-hoc query with columns in select order.
type SQLResult struct {
	Columns []string
	Rows    [][]any
}

// Maps returns each row keyed by column name.
func (r *SQLResult) Maps() []map[string]any {
	out := make([]map[string]any, 0, len(r.Rows))
	for _, row := range r.Rows {
		m := make(map[string]any, len(r.Columns))
		for i, col := range r.Columns {
			m[col] = row[i]
		}
		out = append(out, m)
	}
	return out
}

// LoadCatalog builds a Catalog from the stored moves and aliases.
func LoadCatalog(ctx context.Context, s Store) (*catalog.Catalog, error) {
	entries, err := s.LoadMoves(ctx)
	if err != nil {
		return nil, err
	}
	aliases, err := s.LoadAliases(ctx)
	if err != nil {
		return nil, err
	}
	c, err := catalog.New(entries, aliases)
	if err != nil {
		return nil, fmt.Errorf("loading stored catalog: %w", err)
	}
	return c, nil
}
