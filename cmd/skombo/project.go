package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"skombo/internal/catalog"
	"skombo/internal/combo"
	"skombo/internal/config"
	"skombo/internal/store"
	"skombo/internal/store/postgres"
	"skombo/internal/store/sqlite"
)

type project struct {
	cfg    *config.ProjectConfig
	logger *slog.Logger
}

func loadProject() (*project, error) {
	cfg, err := config.LoadProjectConfig(configPath)
	if err != nil {
		return nil, err
	}
	if logLevel != "" {
		cfg.Log.Level = logLevel
	}
	logger, err := newLogger(cfg.Log)
	if err != nil {
		return nil, err
	}
	return &project{cfg: cfg, logger: logger}, nil
}

func newLogger(cfg config.LogConfig) (*slog.Logger, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		return nil, fmt.Errorf("parsing log level: %w", err)
	}
	opts := &slog.HandlerOptions{Level: level}
	if strings.EqualFold(cfg.Format, "json") {
		return slog.New(slog.NewJSONHandler(os.Stderr, opts)), nil
	}
	return slog.New(slog.NewTextHandler(os.Stderr, opts)), nil
}

// openStore picks the backend from the DSN scheme. Relative sqlite paths
// are resolved against the config file's directory.
func (p *project) openStore(ctx context.Context) (store.Store, error) {
	dsn := p.cfg.Database.DSN
	switch {
	case dsn == "":
		return nil, fmt.Errorf("database.dsn is not set in %s", configPath)
	case strings.HasPrefix(dsn, "sqlite://"):
		rest := strings.TrimPrefix(dsn, "sqlite://")
		if rest != ":memory:" {
			path, query, hasQuery := strings.Cut(rest, "?")
			rest = p.cfg.Path(path)
			if hasQuery {
				rest += "?" + query
			}
		}
		client, err := sqlite.New(ctx, "sqlite://"+rest)
		if err != nil {
			return nil, err
		}
		return client, nil
	case strings.HasPrefix(dsn, "postgres://"), strings.HasPrefix(dsn, "postgresql://"):
		client, err := postgres.New(ctx, dsn)
		if err != nil {
			return nil, err
		}
		return client, nil
	default:
		return nil, fmt.Errorf("unsupported database DSN %q", dsn)
	}
}

// loadCatalog reads the catalog from the store when a database is
// configured, and from the CSV files otherwise.
func (p *project) loadCatalog(ctx context.Context) (*catalog.Catalog, error) {
	if p.cfg.Database.DSN == "" {
		aliases := p.cfg.Path(p.cfg.Data.Aliases)
		c, err := catalog.LoadFiles(p.cfg.Path(p.cfg.Data.FrameData), aliases)
		if err != nil {
			return nil, err
		}
		p.logger.Debug("loaded catalog from files", "moves", c.Len())
		return c, nil
	}

	db, err := p.openStore(ctx)
	if err != nil {
		return nil, err
	}
	defer db.Close(ctx)

	if err := db.EnsureSchema(ctx); err != nil {
		return nil, err
	}
	c, err := store.LoadCatalog(ctx, db)
	if err != nil {
		return nil, fmt.Errorf("%w (run skombo import first)", err)
	}
	p.logger.Debug("loaded catalog from database", "moves", c.Len())
	return c, nil
}

func (p *project) loadRules() (*config.Rules, error) {
	if p.cfg.Data.Rules == "" {
		return config.DefaultRules(), nil
	}
	return config.LoadRules(p.cfg.Path(p.cfg.Data.Rules))
}

func (p *project) evaluator(ctx context.Context) (*catalog.Catalog, *combo.Evaluator, error) {
	c, err := p.loadCatalog(ctx)
	if err != nil {
		return nil, nil, err
	}
	rules, err := p.loadRules()
	if err != nil {
		return nil, nil, err
	}
	return c, combo.NewEvaluator(c, rules, p.comboOptions()), nil
}

func (p *project) comboOptions() combo.Options {
	return combo.Options{
		IgnoredMoves: p.cfg.Notation.IgnoredMoves,
		Logger:       p.logger,
	}
}
