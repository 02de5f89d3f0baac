package pg

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/DjordjeVuckovic/tabular-bench/internal/bench/report"
	"github.com/DjordjeVuckovic/tabular-bench/internal/storage"
)

var resultColumns = []string{
	"run_id", "dataset", "declared_problem_type", "inferred_problem_type",
	"performance_val", "baseline_val", "factor", "scores", "fit_ms", "predict_ms",
}

var warningColumns = []string{"run_id", "seq", "kind", "dataset", "message", "factor"}

var _ storage.HistoryReader = (*Storer)(nil)

// Storer writes a report as one benchmark_runs row plus its per-dataset
// results and warnings, all in a single transaction.
type Storer struct {
	pool *ConnectionPool
}

func NewStorer(pool *ConnectionPool) *Storer {
	return &Storer{pool: pool}
}

func (s *Storer) Save(ctx context.Context, r *report.Report) (err error) {
	if r.Meta.RunID == uuid.Nil {
		r.Meta.RunID = uuid.New()
	}
	reportJSON, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("failed to marshal report: %w", err)
	}

	tx, err := s.pool.conn.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin tx: %w", err)
	}
	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(ctx); rbErr != nil && !errors.Is(rbErr, pgx.ErrTxClosed) {
				slog.Error("Failed to rollback benchmark history tx", "error", rbErr)
			}
		}
	}()

	cmd := `
        INSERT INTO benchmark_runs (
            run_id, started_at, duration_ms, engine, fast_mode, strict_checks, threshold,
            mean_perf, median_perf, worst_perf, prev_mean_perf, prev_median_perf, prev_worst_perf,
            warning_count, report)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15);
    `
	_, err = tx.Exec(ctx, cmd,
		r.Meta.RunID,
		r.Meta.Timestamp,
		r.Meta.Duration.Milliseconds(),
		r.Meta.Engine,
		r.Config.FastMode,
		r.Config.StrictRegressionChecks,
		r.Config.Threshold,
		r.Summary.Mean,
		r.Summary.Median,
		r.Summary.Worst,
		r.Previous.Mean,
		r.Previous.Median,
		r.Previous.Worst,
		len(r.Warnings),
		reportJSON,
	)
	if err != nil {
		return fmt.Errorf("failed to insert benchmark run: %w", err)
	}

	rows := make([][]any, len(r.Datasets))
	for i, e := range r.Datasets {
		scores, mErr := json.Marshal(e.Scores)
		if mErr != nil {
			err = fmt.Errorf("failed to marshal scores for %s: %w", e.Dataset, mErr)
			return err
		}
		rows[i] = []any{
			r.Meta.RunID,
			e.Dataset,
			string(e.DeclaredProblemType),
			string(e.InferredProblemType),
			e.PerformanceValue,
			e.BaselinePerformance,
			e.Factor,
			scores,
			e.FitDuration.Milliseconds(),
			e.PredictDuration.Milliseconds(),
		}
	}
	if _, err = tx.CopyFrom(ctx, pgx.Identifier{"benchmark_results"}, resultColumns, pgx.CopyFromRows(rows)); err != nil {
		return fmt.Errorf("failed to copy benchmark results: %w", err)
	}

	if len(r.Warnings) > 0 {
		wrows := make([][]any, len(r.Warnings))
		for i, w := range r.Warnings {
			wrows[i] = []any{r.Meta.RunID, int32(i), string(w.Kind), w.Dataset, w.Message, w.Factor}
		}
		if _, err = tx.CopyFrom(ctx, pgx.Identifier{"benchmark_warnings"}, warningColumns, pgx.CopyFromRows(wrows)); err != nil {
			return fmt.Errorf("failed to copy benchmark warnings: %w", err)
		}
	}

	if err = tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit benchmark run: %w", err)
	}

	slog.Info("Saved benchmark report", "run_id", r.Meta.RunID, "datasets", len(r.Datasets), "warnings", len(r.Warnings))
	return nil
}

// History returns the stored performance values of a dataset, newest first.
func (s *Storer) History(ctx context.Context, dataset string, limit int) ([]float64, error) {
	rows, err := s.pool.conn.Query(ctx, `
        SELECT r.performance_val
        FROM benchmark_results r
        JOIN benchmark_runs b ON b.run_id = r.run_id
        WHERE r.dataset = $1
        ORDER BY b.started_at DESC
        LIMIT $2;
    `, dataset, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query history: %w", err)
	}
	values, err := pgx.CollectRows(rows, pgx.RowTo[float64])
	if err != nil {
		return nil, fmt.Errorf("failed to scan history: %w", err)
	}
	return values, nil
}

func (s *Storer) Close() error {
	s.pool.Close()
	return nil
}
