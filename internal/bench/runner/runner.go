package runner

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"os"
	"path/filepath"
	"time"

	"github.com/DjordjeVuckovic/tabular-bench/internal/automl"
	"github.com/DjordjeVuckovic/tabular-bench/internal/bench/acquire"
	"github.com/DjordjeVuckovic/tabular-bench/internal/bench/dataset"
	"github.com/DjordjeVuckovic/tabular-bench/internal/bench/metrics"
	"github.com/DjordjeVuckovic/tabular-bench/internal/bench/regression"
	"github.com/DjordjeVuckovic/tabular-bench/internal/bench/warning"
	"github.com/DjordjeVuckovic/tabular-bench/internal/domain"
	"github.com/DjordjeVuckovic/tabular-bench/internal/hyperparams"
)

// ErrMissingMetric is returned when the evaluator omits the primary metric.
var ErrMissingMetric = errors.New("primary metric missing from evaluation")

type Runner struct {
	config   Config
	acquirer acquire.Acquirer
	engine   automl.Engine
	logger   *slog.Logger
}

func New(cfg Config, acquirer acquire.Acquirer, engine automl.Engine, logger *slog.Logger) *Runner {
	if logger == nil {
		logger = slog.Default()
	}
	return &Runner{
		config:   cfg,
		acquirer: acquirer,
		engine:   engine,
		logger:   logger,
	}
}

func (r *Runner) Config() Config {
	return r.config
}

// Run evaluates every dataset in order. Any fatal error aborts the run and
// no partial result is returned.
func (r *Runner) Run(ctx context.Context, datasets []domain.DatasetDescriptor) (*Result, error) {
	result := &Result{
		Warnings:  warning.NewCollector(r.logger),
		Config:    r.config,
		StartedAt: time.Now(),
	}

	for i, d := range datasets {
		r.logger.Info("Evaluating benchmark dataset", "dataset", d.Name, "n", i+1, "of", len(datasets))

		before := result.Warnings.Len()
		run, err := r.runDataset(ctx, d, result.Warnings)
		if err != nil {
			return nil, fmt.Errorf("dataset %q: %w", d.Name, err)
		}
		run.Warnings = result.Warnings.All()[before:]
		result.Runs = append(result.Runs, run)

		r.logger.Info(fmt.Sprintf("Performance on dataset %s: %v (previous perf=%v)", d.Name, run.PerformanceValue, d.BaselinePerformance),
			"fit_duration", run.FitDuration,
			"predict_duration", run.PredictDuration,
		)
	}

	result.Duration = time.Since(result.StartedAt)
	return result, nil
}

func (r *Runner) runDataset(ctx context.Context, d domain.DatasetDescriptor, warnings *warning.Collector) (RunResult, error) {
	rng := rand.New(rand.NewPCG(r.config.Seed, r.config.Seed))

	paths, err := r.acquirer.EnsureLocal(ctx, d)
	if err != nil {
		return RunResult{}, err
	}

	outputDir := filepath.Join(paths.Dir, r.config.OutputDirName)
	if err := os.RemoveAll(outputDir); err != nil {
		return RunResult{}, fmt.Errorf("clear output dir: %w", err)
	}

	train, err := dataset.LoadCSV(paths.Train)
	if err != nil {
		return RunResult{}, fmt.Errorf("load train data: %w", err)
	}
	test, err := dataset.LoadCSV(paths.Test)
	if err != nil {
		return RunResult{}, fmt.Errorf("load test data: %w", err)
	}
	xTest, yTest, err := test.SplitLabel(d.LabelColumn)
	if err != nil {
		return RunResult{}, fmt.Errorf("split test labels: %w", err)
	}
	if r.config.FastMode {
		train = train.Head(r.config.SubsampleSize)
	}

	hp, err := r.hyperparameters(d, train)
	if err != nil {
		return RunResult{}, err
	}

	fitStart := time.Now()
	fitted, err := r.engine.Fit(ctx, automl.FitRequest{
		Train:              train,
		Label:              d.LabelColumn,
		OutputDir:          outputDir,
		Hyperparameters:    hp,
		HyperparameterTune: r.config.HyperparameterTune,
		TimeLimit:          r.config.TimeLimit,
		NumTrials:          r.config.NumTrials,
		Verbosity:          r.config.Verbosity,
		Seed:               r.config.Seed,
		Rand:               rng,
	})
	if err != nil {
		return RunResult{}, fmt.Errorf("fit: %w", err)
	}
	fitDuration := time.Since(fitStart)

	inferred := fitted.ProblemType()
	if inferred != d.ProblemType {
		warnings.Addf(warning.InferenceMismatch, d.Name, 0,
			"For dataset %s: inferred problem_type = %s, but should = %s", d.Name, inferred, d.ProblemType)
	}

	// Predictions come from the persisted copy, never the in-memory fit.
	predictor, err := r.engine.Load(ctx, outputDir)
	if err != nil {
		return RunResult{}, fmt.Errorf("load predictor: %w", err)
	}

	predictStart := time.Now()
	yPred, err := predictor.Predict(ctx, xTest)
	if err != nil {
		return RunResult{}, fmt.Errorf("predict: %w", err)
	}
	predictDuration := time.Since(predictStart)

	scores, err := r.evaluate(predictor, d.ProblemType, yTest, yPred)
	if err != nil {
		return RunResult{}, fmt.Errorf("evaluate: %w", err)
	}
	perf, err := PerformanceValue(d.ProblemType, scores)
	if err != nil {
		return RunResult{}, err
	}

	if r.config.StrictRegressionChecks {
		if f, worse := regression.Check(d.Name, perf, d.BaselinePerformance, r.config.Threshold); worse {
			warnings.Addf(warning.Regression, d.Name, f.Factor,
				"Performance on dataset %s is %v times worse than previous performance.", d.Name, f.Factor)
		}
	}

	return RunResult{
		DatasetName:         d.Name,
		DeclaredProblemType: d.ProblemType,
		InferredProblemType: inferred,
		PerformanceValue:    perf,
		BaselinePerformance: d.BaselinePerformance,
		Scores:              scores,
		TrainRows:           train.Len(),
		TestRows:            xTest.Len(),
		FitDuration:         fitDuration,
		PredictDuration:     predictDuration,
	}, nil
}

// evaluate scores predictions in the metric family of the declared problem
// type. When the predictor inferred the other family (classification vs
// regression) its own evaluation lacks the primary metric, so the
// predictions are scored locally instead.
func (r *Runner) evaluate(p automl.Predictor, declared domain.ProblemType, yTrue, yPred []string) (metrics.Scores, error) {
	if p.ProblemType().IsClassification() == declared.IsClassification() {
		return p.EvaluatePredictions(yTrue, yPred, true)
	}
	return metrics.ComputeAll(declared, yTrue, yPred, true)
}

// hyperparameters builds the per-family tables for one dataset. The NN family
// always gets the resolved default table for the declared problem type, with
// the configured overrides on top.
func (r *Runner) hyperparameters(d domain.DatasetDescriptor, train *dataset.Table) (map[string]hyperparams.Table, error) {
	numClasses := 0
	if d.ProblemType == domain.Multiclass {
		labels, err := train.Column(d.LabelColumn)
		if err != nil {
			return nil, fmt.Errorf("read train labels: %w", err)
		}
		numClasses = countDistinct(labels)
	}

	out := make(map[string]hyperparams.Table, len(r.config.Hyperparameters)+1)
	for family, overrides := range r.config.Hyperparameters {
		out[family] = overrides.Clone()
	}
	out[automl.FamilyNN] = hyperparams.Resolve(d.ProblemType, numClasses,
		hyperparams.Table{hyperparams.SeedValue: r.config.Seed},
		r.config.Hyperparameters[automl.FamilyNN],
	)
	return out, nil
}

// PerformanceValue converts the primary metric to a lower-is-better value,
// selected by the declared problem type.
func PerformanceValue(pt domain.ProblemType, scores metrics.Scores) (float64, error) {
	key := metrics.Accuracy
	if pt == domain.Regression {
		key = metrics.R2
	}
	v, ok := scores[key]
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrMissingMetric, key)
	}
	return 1 - v, nil
}

func countDistinct(values []string) int {
	seen := make(map[string]struct{}, len(values))
	for _, v := range values {
		seen[v] = struct{}{}
	}
	return len(seen)
}
