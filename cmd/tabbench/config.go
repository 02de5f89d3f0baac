package main

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/DjordjeVuckovic/tabular-bench/internal/automl"
	"github.com/DjordjeVuckovic/tabular-bench/internal/automl/baseline"
	"github.com/DjordjeVuckovic/tabular-bench/internal/automl/remote"
	"github.com/DjordjeVuckovic/tabular-bench/internal/bench/acquire"
	"github.com/DjordjeVuckovic/tabular-bench/internal/bench/registry"
	"github.com/DjordjeVuckovic/tabular-bench/internal/bench/runner"
	"github.com/DjordjeVuckovic/tabular-bench/internal/domain"
	"github.com/DjordjeVuckovic/tabular-bench/pkg/config/env"
	"github.com/DjordjeVuckovic/tabular-bench/pkg/utils"
)

const (
	engineBaseline = "baseline"
	engineRemote   = "remote"
)

type cliConfig struct {
	WorkDir          string
	Full             bool
	ReportPath       string
	WarningsAsErrors bool
	Engine           string
	EngineURL        string
	RegistryPath     string
	// Only restricts the run to these dataset names, in the given order.
	Only []string
}

func loadConfig() (cliConfig, error) {
	cfg := cliConfig{
		WorkDir:      env.String("BENCH_WORK_DIR", filepath.Join(".", "bench_data")),
		ReportPath:   env.String("BENCH_REPORT_PATH", ""),
		Engine:       env.String("AUTOML_ENGINE", engineBaseline),
		EngineURL:    env.String("AUTOML_URL", ""),
		RegistryPath: env.String("BENCH_REGISTRY", ""),
	}
	names := strings.Split(env.String("BENCH_DATASETS", ""), ",")
	for i, name := range names {
		names[i] = strings.TrimSpace(name)
	}
	cfg.Only = utils.RemoveEmptyStrings(names)

	var err error
	if cfg.Full, err = env.Bool("BENCH_FULL", false); err != nil {
		return cfg, err
	}
	if cfg.WarningsAsErrors, err = env.Bool("BENCH_WARNINGS_AS_ERRORS", false); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func (c cliConfig) runnerConfig() runner.Config {
	cfg := runner.FastConfig()
	if c.Full {
		cfg = runner.FullConfig()
	}
	cfg.WorkDir = c.WorkDir
	return cfg
}

func (c cliConfig) datasets() ([]domain.DatasetDescriptor, error) {
	all := registry.Default()
	if c.RegistryPath != "" {
		var err error
		if all, err = registry.LoadFromFile(c.RegistryPath); err != nil {
			return nil, err
		}
	}
	if len(c.Only) == 0 {
		return all, nil
	}

	selected := make([]domain.DatasetDescriptor, 0, len(c.Only))
	for _, name := range c.Only {
		d, ok := registry.Find(all, name)
		if !ok {
			return nil, fmt.Errorf("unknown dataset %q in BENCH_DATASETS", name)
		}
		selected = append(selected, d)
	}
	return selected, nil
}

// newAcquirer keeps datasets under the runner's work dir with its file names.
func newAcquirer(rc runner.Config, s3 *acquire.S3Fetcher, logger *slog.Logger) *acquire.FetchAcquirer {
	return acquire.NewFetchAcquirer(rc.WorkDir, acquire.DefaultFetchers(s3), acquire.Options{
		TrainFile: rc.TrainFile,
		TestFile:  rc.TestFile,
		Logger:    logger,
	})
}

func (c cliConfig) newEngine(logger *slog.Logger) (automl.Engine, error) {
	switch c.Engine {
	case engineBaseline:
		return baseline.New(logger), nil
	case engineRemote:
		if c.EngineURL == "" {
			return nil, fmt.Errorf("AUTOML_URL is required for the %s engine", engineRemote)
		}
		return remote.New(c.EngineURL, remote.WithLogger(logger)), nil
	default:
		return nil, fmt.Errorf("unknown AUTOML_ENGINE %q, expected %s or %s", c.Engine, engineBaseline, engineRemote)
	}
}
