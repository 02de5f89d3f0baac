package factory

import (
	"context"
	"fmt"

	"github.com/DjordjeVuckovic/tabular-bench/internal/storage"
	"github.com/DjordjeVuckovic/tabular-bench/internal/storage/es"
	"github.com/DjordjeVuckovic/tabular-bench/internal/storage/in_mem"
	"github.com/DjordjeVuckovic/tabular-bench/internal/storage/pg"
)

// NewReportStorer creates the history store described by cfg.
func NewReportStorer(ctx context.Context, cfg *StorageConfig) (storage.ReportStorer, error) {
	if cfg == nil {
		return nil, fmt.Errorf("no storage config")
	}

	switch cfg.Type {
	case storage.PG:
		if cfg.Pg == nil {
			return nil, fmt.Errorf("missing PostgreSQL config")
		}
		pool, err := pg.NewConnectionPool(ctx, *cfg.Pg)
		if err != nil {
			return nil, fmt.Errorf("failed to create PostgreSQL connection pool: %w", err)
		}
		if !pool.Healthy(ctx) {
			pool.Close()
			return nil, fmt.Errorf("benchmark history schema is missing, apply db/migrations first")
		}
		return pg.NewStorer(pool), nil

	case storage.ES:
		if cfg.Es == nil {
			return nil, fmt.Errorf("missing Elasticsearch config")
		}
		return es.NewStorer(ctx, *cfg.Es)

	case storage.InMem:
		return in_mem.NewInMemStorer(), nil

	case storage.JSONFile:
		return storage.NewJSONFileStorer(cfg.FilePath), nil

	default:
		return nil, storage.UnsupportedStorer(cfg.Type)
	}
}
