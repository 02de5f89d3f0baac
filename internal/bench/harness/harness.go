package harness

import (
	"context"
	"fmt"
	"log/slog"
	"slices"

	"github.com/DjordjeVuckovic/tabular-bench/internal/automl"
	"github.com/DjordjeVuckovic/tabular-bench/internal/bench/acquire"
	"github.com/DjordjeVuckovic/tabular-bench/internal/bench/registry"
	"github.com/DjordjeVuckovic/tabular-bench/internal/bench/report"
	"github.com/DjordjeVuckovic/tabular-bench/internal/bench/runner"
	"github.com/DjordjeVuckovic/tabular-bench/internal/bench/warning"
	"github.com/DjordjeVuckovic/tabular-bench/internal/domain"
	"github.com/DjordjeVuckovic/tabular-bench/internal/storage"
)

// HistoryLimit caps how many past runs are shown for a regressed dataset.
const HistoryLimit = 5

// Harness runs a registry end to end and produces the aggregated report.
type Harness struct {
	runner *runner.Runner
	engine string
	store  storage.ReportStorer
	logger *slog.Logger
}

type Option func(*Harness)

// WithStore persists every successful report. Store failures never fail the run.
func WithStore(s storage.ReportStorer) Option {
	return func(h *Harness) { h.store = s }
}

func WithLogger(l *slog.Logger) Option {
	return func(h *Harness) { h.logger = l }
}

func New(cfg runner.Config, acq acquire.Acquirer, engine automl.Engine, opts ...Option) *Harness {
	h := &Harness{
		engine: engine.Name(),
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(h)
	}
	h.runner = runner.New(cfg, acq, engine, h.logger)
	return h
}

// Run validates the registry, evaluates every dataset and aggregates the
// results. A nil report is returned on any fatal error.
func (h *Harness) Run(ctx context.Context, datasets []domain.DatasetDescriptor) (*report.Report, error) {
	if err := registry.Validate(datasets); err != nil {
		return nil, fmt.Errorf("invalid registry: %w", err)
	}

	cfg := h.runner.Config()
	h.logger.Info("Starting benchmark run",
		"datasets", len(datasets),
		"engine", h.engine,
		"fast_mode", cfg.FastMode,
		"strict_regression_checks", cfg.StrictRegressionChecks,
	)

	res, err := h.runner.Run(ctx, datasets)
	if err != nil {
		return nil, err
	}

	r := report.Generate(res, datasets)
	r.Meta.Engine = h.engine

	h.logger.Info(fmt.Sprintf("Average Performance: %v (previous perf=%v)", r.Summary.Mean, r.Previous.Mean))
	h.logger.Info(fmt.Sprintf("Median Performance: %v (previous perf=%v)", r.Summary.Median, r.Previous.Median))
	h.logger.Info(fmt.Sprintf("Worst Performance: %v (previous perf=%v)", r.Summary.Worst, r.Previous.Worst))

	if h.store != nil {
		h.logHistory(ctx, r)
		if err := h.store.Save(ctx, r); err != nil {
			h.logger.Error("Failed to save benchmark report", "run_id", r.Meta.RunID, "error", err)
		} else {
			h.logger.Info("Saved benchmark report", "run_id", r.Meta.RunID)
		}
	}

	return r, nil
}

// logHistory prints the stored performance of every regressed dataset, read
// before the current run is saved.
func (h *Harness) logHistory(ctx context.Context, r *report.Report) {
	hr, ok := h.store.(storage.HistoryReader)
	if !ok {
		return
	}
	for _, e := range r.Datasets {
		if !slices.ContainsFunc(e.Warnings, func(w warning.Warning) bool { return w.Kind == warning.Regression }) {
			continue
		}
		history, err := hr.History(ctx, e.Dataset, HistoryLimit)
		if err != nil {
			h.logger.Warn("Failed to read performance history", "dataset", e.Dataset, "error", err)
			continue
		}
		h.logger.Info("Recent performance history", "dataset", e.Dataset, "current", e.PerformanceValue, "history", history)
	}
}
