package report

import (
	"github.com/google/uuid"

	"github.com/DjordjeVuckovic/tabular-bench/internal/bench/regression"
	"github.com/DjordjeVuckovic/tabular-bench/internal/bench/registry"
	"github.com/DjordjeVuckovic/tabular-bench/internal/bench/runner"
	"github.com/DjordjeVuckovic/tabular-bench/internal/bench/warning"
	"github.com/DjordjeVuckovic/tabular-bench/internal/domain"
	"github.com/DjordjeVuckovic/tabular-bench/pkg/utils"
)

const (
	CheckAverage = "Average"
	CheckMedian  = "Median"
	CheckWorst   = "Worst"
)

// Generate summarises a finished run against the registry baselines. With
// strict checks on, every regressed statistic is added to the run's warning
// collector, so Generate must be called once per result.
func Generate(res *runner.Result, datasets []domain.DatasetDescriptor) *Report {
	cfg := res.Config
	r := &Report{
		Meta: Meta{
			RunID:       uuid.New(),
			Timestamp:   res.StartedAt,
			Duration:    res.Duration,
			Environment: NewEnvironmentInfo(),
		},
		Config: ReportConfig{
			FastMode:               cfg.FastMode,
			StrictRegressionChecks: cfg.StrictRegressionChecks,
			Threshold:              cfg.Threshold,
			Seed:                   cfg.Seed,
		},
		Datasets: make([]Entry, 0, len(res.Runs)),
		Timing: Timing{
			Fit:     res.FitTimings(),
			Predict: res.PredictTimings(),
		},
	}
	if cfg.FastMode {
		r.Config.SubsampleSize = cfg.SubsampleSize
	}

	for _, run := range res.Runs {
		r.Datasets = append(r.Datasets, Entry{
			Dataset:             run.DatasetName,
			DeclaredProblemType: run.DeclaredProblemType,
			InferredProblemType: run.InferredProblemType,
			PerformanceValue:    run.PerformanceValue,
			BaselinePerformance: run.BaselinePerformance,
			Factor:              regression.Factor(run.PerformanceValue, run.BaselinePerformance),
			Scores:              run.Scores,
			TrainRows:           run.TrainRows,
			TestRows:            run.TestRows,
			FitDuration:         run.FitDuration,
			PredictDuration:     run.PredictDuration,
			Warnings:            run.Warnings,
		})
	}

	r.Summary = computeStats(res.PerformanceValues())
	r.Previous = computeStats(registry.Baselines(datasets))

	if cfg.StrictRegressionChecks {
		r.Checks = checkAggregates(r.Summary, r.Previous, cfg.Threshold, res.Warnings)
	}
	if res.Warnings != nil {
		r.Warnings = res.Warnings.All()
	}
	return r
}

func computeStats(values []float64) Stats {
	return Stats{
		Mean:   utils.Mean(values),
		Median: utils.Median(values),
		Worst:  utils.Max(values),
	}
}

func checkAggregates(cur, prev Stats, threshold float64, warnings *warning.Collector) []Check {
	pairs := []struct {
		name      string
		cur, prev float64
	}{
		{CheckAverage, cur.Mean, prev.Mean},
		{CheckMedian, cur.Median, prev.Median},
		{CheckWorst, cur.Worst, prev.Worst},
	}

	checks := make([]Check, 0, len(pairs))
	for _, p := range pairs {
		f, worse := regression.Check(p.name, p.cur, p.prev, threshold)
		checks = append(checks, Check{
			Name:      p.name,
			Value:     p.cur,
			Baseline:  p.prev,
			Factor:    f.Factor,
			Regressed: worse,
		})
		if worse && warnings != nil {
			warnings.Addf(warning.Regression, "", f.Factor,
				"%s Performance is %v times worse than previously.", p.name, f.Factor)
		}
	}
	return checks
}
