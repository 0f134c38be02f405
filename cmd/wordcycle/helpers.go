package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jmoiron/sqlx"

	"github.com/at-ishikawa/wordcycle/internal/config"
	"github.com/at-ishikawa/wordcycle/internal/database"
	"github.com/at-ishikawa/wordcycle/internal/entitlement"
	"github.com/at-ishikawa/wordcycle/internal/review"
	"github.com/at-ishikawa/wordcycle/internal/vocabulary"
	"github.com/at-ishikawa/wordcycle/schemas"
)

func loadConfig() (*config.Config, error) {
	loader, err := config.NewConfigLoader(configFile)
	if err != nil {
		return nil, fmt.Errorf("failed to create config loader: %w", err)
	}
	cfg, err := loader.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}

// app holds what every database-backed command needs.
type app struct {
	cfg  *config.Config
	db   *sqlx.DB
	repo *vocabulary.DBRepository
}

// openApp loads the config, connects, and applies pending migrations.
func openApp(ctx context.Context) (*app, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}

	db, err := database.Open(ctx, cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("database.Open() > %w", err)
	}
	applied, err := database.Migrate(ctx, db, schemas.Migrations)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("database.Migrate() > %w", err)
	}
	if len(applied) > 0 {
		slog.Default().Debug("applied migrations", slog.Any("versions", applied))
	}

	return &app{
		cfg:  cfg,
		db:   db,
		repo: vocabulary.NewDBRepository(db),
	}, nil
}

func (a *app) Close() error {
	return a.db.Close()
}

func (a *app) newEngine(opts ...review.Option) (*review.Engine, error) {
	gate, err := entitlement.NewGateFromConfig(a.cfg.Entitlement)
	if err != nil {
		return nil, fmt.Errorf("entitlement.NewGateFromConfig() > %w", err)
	}
	return review.NewEngine(a.repo, gate, opts...), nil
}
