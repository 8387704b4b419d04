package db

import (
	"context"
	"fmt"

	"docket-system/config"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Connect opens a pgx pool for the configured database. The caller owns
// the pool and closes it on shutdown.
func Connect(ctx context.Context, cfg config.DBConfig) (*pgxpool.Pool, error) {
	connStr := fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s",
		cfg.User, cfg.Password, cfg.Host, cfg.Port, cfg.Database,
	)
	pool, err := pgxpool.New(ctx, connStr)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}
	return pool, nil
}
