// Package repository selects and opens the persistence backend named by the
// configuration.
package repository

import (
	"context"
	"fmt"
	"log/slog"

	"lotuslab/internal/config"
	"lotuslab/internal/database"
	repo "lotuslab/internal/domain/repositories/library"
	"lotuslab/internal/repository/memory"
	"lotuslab/internal/repository/postgres"
)

// Backend is an opened store together with its schema operations.
type Backend struct {
	Driver string
	Store  *repo.Store

	reset func(ctx context.Context) error
	close func()
}

// Open connects to the configured backend and applies its schema. A schema
// failure is returned as an error; callers treat it as fatal.
func Open(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Backend, error) {
	switch cfg.DBDriver {
	case config.DriverSQLite:
		db, err := database.Open(ctx, cfg.DBPath, cfg.TablePrefix)
		if err != nil {
			return nil, err
		}
		logger.Info("database opened", "driver", cfg.DBDriver, "path", cfg.DBPath)
		return &Backend{
			Driver: cfg.DBDriver,
			Store:  database.NewStore(db, logger),
			reset: func(ctx context.Context) error {
				if err := db.DropTables(ctx); err != nil {
					return err
				}
				return db.ApplySchema(ctx)
			},
			close: func() { _ = db.Close() },
		}, nil

	case config.DriverPostgres:
		pool, err := postgres.CreateConnectionPool(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("failed to create connection pool: %w", err)
		}
		tables := postgres.NewTableNames(cfg.TablePrefix)
		if err := postgres.ApplySchema(ctx, pool, tables); err != nil {
			pool.Close()
			return nil, err
		}
		logger.Info("database connected",
			"driver", cfg.DBDriver,
			"table_prefix", cfg.TablePrefix,
			"max_conns", pool.Config().MaxConns,
		)
		return &Backend{
			Driver: cfg.DBDriver,
			Store: postgres.NewStore(&postgres.RepositoryConfig{
				Pool:   pool,
				Tables: tables,
				Logger: logger,
			}),
			reset: func(ctx context.Context) error {
				if err := postgres.DropTables(ctx, pool, tables); err != nil {
					return err
				}
				return postgres.ApplySchema(ctx, pool, tables)
			},
			close: pool.Close,
		}, nil

	case config.DriverMemory:
		db := memory.New()
		logger.Warn("using in-memory store; data is lost on exit")
		return &Backend{
			Driver: cfg.DBDriver,
			Store:  memory.NewStore(db),
			reset: func(context.Context) error {
				db.Reset()
				return nil
			},
			close: func() {},
		}, nil

	default:
		return nil, fmt.Errorf("unknown DB_DRIVER %q", cfg.DBDriver)
	}
}

// Reset drops every library table and recreates the schema, leaving only
// the root folder.
func (b *Backend) Reset(ctx context.Context) error {
	return b.reset(ctx)
}

// Close releases the backend's connections.
func (b *Backend) Close() {
	b.close()
}
