package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/DjordjeVuckovic/tabular-bench/internal/bench/acquire"
	"github.com/DjordjeVuckovic/tabular-bench/internal/bench/harness"
	"github.com/DjordjeVuckovic/tabular-bench/internal/bench/report"
	"github.com/DjordjeVuckovic/tabular-bench/internal/bench/warning"
	"github.com/DjordjeVuckovic/tabular-bench/internal/storage/factory"
	"github.com/DjordjeVuckovic/tabular-bench/pkg/config/env"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		slog.Error("Benchmark failed", "error", err)
		stop()
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	return &cobra.Command{
		Use:           "tabbench",
		Short:         "Run the tabular AutoML regression benchmark",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd.Context(), cmd.OutOrStdout())
		},
	}
}

func run(ctx context.Context, out io.Writer) error {
	if err := env.LoadDotEnv(".env", false); err != nil {
		return err
	}
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger := slog.Default()

	datasets, err := cfg.datasets()
	if err != nil {
		return fmt.Errorf("load registry: %w", err)
	}
	engine, err := cfg.newEngine(logger)
	if err != nil {
		return err
	}

	s3, err := acquire.NewS3FetcherFromEnv(ctx)
	if err != nil {
		slog.Warn("S3 fetcher unavailable, s3 locations cannot be fetched", "error", err)
	}
	rc := cfg.runnerConfig()
	acq := newAcquirer(rc, s3, logger)

	opts := []harness.Option{harness.WithLogger(logger)}
	storeCfg, err := factory.LoadEnv()
	if err != nil {
		return err
	}
	if storeCfg != nil {
		store, err := factory.NewReportStorer(ctx, storeCfg)
		if err != nil {
			slog.Error("Results store unavailable, history will not be saved", "store", storeCfg.Type, "error", err)
		} else {
			defer store.Close()
			opts = append(opts, harness.WithStore(store))
		}
	}

	r, err := harness.New(rc, acq, engine, opts...).Run(ctx, datasets)
	if err != nil {
		return err
	}

	report.WriteTable(r, out)
	if cfg.ReportPath != "" {
		if err := report.WriteJSON(r, cfg.ReportPath); err != nil {
			return fmt.Errorf("write JSON report: %w", err)
		}
		slog.Info("Report written", "path", cfg.ReportPath)
	}

	if len(r.Warnings) > 0 {
		slog.Warn(fmt.Sprintf("WARNINGS (%d):", len(r.Warnings)))
		warning.Replay(logger, r.Warnings)
	}
	if cfg.WarningsAsErrors {
		if err := warning.Join(r.Warnings); err != nil {
			return fmt.Errorf("benchmark produced warnings: %w", err)
		}
	}
	return nil
}
