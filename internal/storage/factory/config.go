package factory

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/DjordjeVuckovic/tabular-bench/internal/storage"
	"github.com/DjordjeVuckovic/tabular-bench/internal/storage/es"
	"github.com/DjordjeVuckovic/tabular-bench/internal/storage/pg"
	"github.com/DjordjeVuckovic/tabular-bench/pkg/utils"
)

const DefaultESIndex = "tabular-bench-results"

type StorageConfig struct {
	storage.Type
	Pg       *pg.PoolConfig
	Es       *es.ClientConfig
	FilePath string
}

// LoadEnv reads the history store settings. It returns nil when
// RESULTS_STORE is unset, which disables history persistence.
func LoadEnv() (*StorageConfig, error) {
	storageType := storage.Type(os.Getenv("RESULTS_STORE"))
	if storageType == "" {
		return nil, nil
	}
	if !storageType.Valid() {
		slog.Error("Invalid RESULTS_STORE environment variable value", "value", storageType)
		return nil, fmt.Errorf(
			"invalid RESULTS_STORE environment variable value: %s, expected one of %v",
			storageType,
			storage.SupportedTypes)
	}

	cfg := &StorageConfig{Type: storageType}
	switch storageType {
	case storage.ES:
		cfg.Es = &es.ClientConfig{
			Addresses: utils.RemoveEmptyStrings(strings.Split(os.Getenv("ES_ADDRESSES"), ",")),
			IndexName: os.Getenv("ES_INDEX_NAME"),
			Username:  os.Getenv("ES_USERNAME"),
			Password:  os.Getenv("ES_PASSWORD"),
		}
		if cfg.Es.IndexName == "" {
			cfg.Es.IndexName = DefaultESIndex
		}
		if len(cfg.Es.Addresses) == 0 {
			slog.Error("Elasticsearch configuration is incomplete", "addresses", cfg.Es.Addresses)
			return nil, fmt.Errorf("elasticsearch configuration is incomplete: ES_ADDRESSES is missing")
		}

	case storage.PG:
		cfg.Pg = &pg.PoolConfig{ConnStr: os.Getenv("PG_CONNECTION_STRING")}
		if cfg.Pg.ConnStr == "" {
			slog.Error("PostgreSQL connection string is not set")
			return nil, fmt.Errorf("PostgreSQL connection string is not set")
		}

	case storage.JSONFile:
		cfg.FilePath = os.Getenv("RESULTS_FILE")
		if cfg.FilePath == "" {
			return nil, fmt.Errorf("RESULTS_FILE is required for the %s store", storage.JSONFile)
		}
	}

	return cfg, nil
}
