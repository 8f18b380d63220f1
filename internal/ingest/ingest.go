package ingest

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"log/slog"
	"os"

	"skombo/internal/catalog"
	"skombo/internal/config"
	"skombo/internal/store"
)

// Store is the part of store.Store that an import writes to.
type Store interface {
	EnsureSchema(ctx context.Context) error
	ReplaceMoves(ctx context.Context, entries []catalog.Entry) error
	ReplaceAliases(ctx context.Context, aliases []catalog.Alias) error
	GetSourceHashes(ctx context.Context) (map[string]string, error)
	SetSourceHash(ctx context.Context, source, hash string) error
}

type Result struct {
	MovesImported   int
	AliasesImported int
	SourcesSkipped  int
	Errors          []error
}

type Options struct {
	Full   bool
	Logger *slog.Logger
}

type source struct {
	name string
	path string
}

// Run copies the frame data and alias files into db. Files whose hash
// matches the last import are skipped unless options.Full is set. A failing
// source is recorded in Result.Errors and leaves its stored rows untouched.
func Run(ctx context.Context, cfg *config.ProjectConfig, db Store, options Options) (*Result, error) {
	logger := options.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	if err := db.EnsureSchema(ctx); err != nil {
		return nil, fmt.Errorf("ensure schema: %w", err)
	}

	var existingHashes map[string]string
	if !options.Full {
		var err error
		existingHashes, err = db.GetSourceHashes(ctx)
		if err != nil {
			return nil, fmt.Errorf("get source hashes: %w", err)
		}
	}

	sources := []source{{name: store.SourceFrameData, path: cfg.Path(cfg.Data.FrameData)}}
	if cfg.Data.Aliases != "" {
		sources = append(sources, source{name: store.SourceAliases, path: cfg.Path(cfg.Data.Aliases)})
	}

	result := &Result{}
	for _, src := range sources {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		hash, err := computeHash(src.path)
		if err != nil {
			result.Errors = append(result.Errors, fmt.Errorf("hashing %s: %w", src.path, err))
			continue
		}
		if !options.Full {
			if existing, ok := existingHashes[src.name]; ok && existing == hash {
				logger.Debug("source unchanged", "source", src.name, "path", src.path)
				result.SourcesSkipped++
				continue
			}
		}

		switch src.name {
		case store.SourceFrameData:
			entries, err := readEntries(src.path)
			if err != nil {
				result.Errors = append(result.Errors, err)
				continue
			}
			if err := db.ReplaceMoves(ctx, entries); err != nil {
				result.Errors = append(result.Errors, fmt.Errorf("importing %s: %w", src.path, err))
				continue
			}
			result.MovesImported = len(entries)
		case store.SourceAliases:
			aliases, err := catalog.ReadAliasesFile(src.path)
			if err != nil {
				result.Errors = append(result.Errors, fmt.Errorf("parsing %s: %w", src.path, err))
				continue
			}
			if err := db.ReplaceAliases(ctx, aliases); err != nil {
				result.Errors = append(result.Errors, fmt.Errorf("importing %s: %w", src.path, err))
				continue
			}
			result.AliasesImported = len(aliases)
		}

		if err := db.SetSourceHash(ctx, src.name, hash); err != nil {
			result.Errors = append(result.Errors, fmt.Errorf("recording hash for %s: %w", src.name, err))
			continue
		}
		logger.Info("imported source", "source", src.name, "path", src.path)
	}

	return result, nil
}

// readEntries parses the frame data and checks that it builds a catalog
// before anything is written.
func readEntries(path string) ([]catalog.Entry, error) {
	entries, err := catalog.ReadEntriesFile(path)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	if _, err := catalog.New(entries, nil); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return entries, nil
}

func computeHash(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:]), nil
}
