// Package repository persists finished-match records to Postgres. It is an
// optional collaborator of the simulator; the engine itself never touches
// it and performs no I/O.
package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// DB wraps a pgx connection pool.
type DB struct {
	pool   *pgxpool.Pool
	logger *zap.Logger
}

// NewDB connects to the database behind the given DSN and verifies the
// connection with a ping.
func NewDB(ctx context.Context, dsn string, logger *zap.Logger) (*DB, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("create connection pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	logger.Info("database connection pool initialized",
		zap.Int32("total_conns", pool.Stat().TotalConns()),
	)
	return &DB{pool: pool, logger: logger}, nil
}

// Close releases the connection pool.
func (db *DB) Close() {
	db.pool.Close()
}
