package factory

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DjordjeVuckovic/tabular-bench/internal/storage"
	"github.com/DjordjeVuckovic/tabular-bench/internal/storage/in_mem"
	"github.com/DjordjeVuckovic/tabular-bench/internal/storage/pg"
	pkgtesting "github.com/DjordjeVuckovic/tabular-bench/pkg/testing"
)

func TestLoadEnv(t *testing.T) {
	t.Run("unset disables history", func(t *testing.T) {
		t.Setenv("RESULTS_STORE", "")
		cfg, err := LoadEnv()
		require.NoError(t, err)
		assert.Nil(t, cfg)
	})

	t.Run("invalid type", func(t *testing.T) {
		t.Setenv("RESULTS_STORE", "mongo")
		_, err := LoadEnv()
		assert.Error(t, err)
	})

	t.Run("es defaults index", func(t *testing.T) {
		t.Setenv("RESULTS_STORE", "es")
		t.Setenv("ES_ADDRESSES", "http://a:9200,,http://b:9200")
		t.Setenv("ES_INDEX_NAME", "")
		cfg, err := LoadEnv()
		require.NoError(t, err)
		assert.Equal(t, []string{"http://a:9200", "http://b:9200"}, cfg.Es.Addresses)
		assert.Equal(t, DefaultESIndex, cfg.Es.IndexName)
	})

	t.Run("es without addresses", func(t *testing.T) {
		t.Setenv("RESULTS_STORE", "es")
		t.Setenv("ES_ADDRESSES", "")
		_, err := LoadEnv()
		assert.Error(t, err)
	})

	t.Run("pg requires connection string", func(t *testing.T) {
		t.Setenv("RESULTS_STORE", "pg")
		t.Setenv("PG_CONNECTION_STRING", "")
		_, err := LoadEnv()
		assert.Error(t, err)

		t.Setenv("PG_CONNECTION_STRING", "postgres://u:p@localhost/bench")
		cfg, err := LoadEnv()
		require.NoError(t, err)
		assert.Equal(t, storage.PG, cfg.Type)
		assert.Equal(t, "postgres://u:p@localhost/bench", cfg.Pg.ConnStr)
	})

	t.Run("json file requires path", func(t *testing.T) {
		t.Setenv("RESULTS_STORE", "json_file")
		t.Setenv("RESULTS_FILE", "")
		_, err := LoadEnv()
		assert.Error(t, err)
	})
}

func TestNewReportStorer(t *testing.T) {
	ctx := context.Background()

	s, err := NewReportStorer(ctx, &StorageConfig{Type: storage.InMem})
	require.NoError(t, err)
	assert.IsType(t, &in_mem.InMemStorer{}, s)

	s, err = NewReportStorer(ctx, &StorageConfig{Type: storage.JSONFile, FilePath: filepath.Join(t.TempDir(), "h.jsonl")})
	require.NoError(t, err)
	assert.IsType(t, &storage.JSONFileStorer{}, s)

	_, err = NewReportStorer(ctx, &StorageConfig{Type: "mongo"})
	assert.Error(t, err)

	_, err = NewReportStorer(ctx, nil)
	assert.Error(t, err)
}

func TestNewReportStorer_PGRequiresSchema(t *testing.T) {
	if testing.Short() {
		t.Skip("postgres container test skipped in short mode")
	}
	ctx := context.Background()
	container := pkgtesting.NewPGContainerWithCleanup(ctx, t)
	cfg := &StorageConfig{Type: storage.PG, Pg: &pg.PoolConfig{ConnStr: container.ConnString}}

	s, err := NewReportStorer(ctx, cfg)
	require.NoError(t, err)
	assert.IsType(t, &pg.Storer{}, s)
	require.NoError(t, s.Close())

	conn, err := pgx.Connect(ctx, container.ConnString)
	require.NoError(t, err)
	_, err = conn.Exec(ctx, "DROP TABLE benchmark_warnings, benchmark_results, benchmark_runs;")
	require.NoError(t, err)
	require.NoError(t, conn.Close(ctx))

	_, err = NewReportStorer(ctx, cfg)
	assert.ErrorContains(t, err, "history schema is missing")
}
