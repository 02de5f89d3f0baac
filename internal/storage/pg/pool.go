package pg

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"
)

type PoolConfig struct {
	ConnStr string
}

// ConnectionPool wraps the pgx pool that backs the benchmark history.
type ConnectionPool struct {
	conn *pgxpool.Pool
}

func NewConnectionPool(ctx context.Context, cfg PoolConfig) (*ConnectionPool, error) {
	dbpool, err := pgxpool.New(ctx, cfg.ConnStr)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	if err := dbpool.Ping(ctx); err != nil {
		dbpool.Close()
		return nil, fmt.Errorf("failed to ping benchmark history DB: %w", err)
	}

	return &ConnectionPool{conn: dbpool}, nil
}

func (p *ConnectionPool) Close() {
	p.conn.Close()
}

// Healthy reports whether the history schema is reachable, i.e. the
// migrations in db/migrations have been applied.
func (p *ConnectionPool) Healthy(ctx context.Context) bool {
	var runs int64
	err := p.conn.QueryRow(ctx, `SELECT count(*) FROM benchmark_runs;`).Scan(&runs)
	if err != nil {
		slog.Warn("Benchmark history schema check failed", "error", err)
		return false
	}
	slog.Debug("Benchmark history schema present", "runs", runs)
	return true
}
