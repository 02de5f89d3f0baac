// Package automl is the narrow contract between the benchmark harness and the
// AutoML engine that fits, persists, reloads and evaluates predictors.
package automl

import (
	"context"
	"math/rand/v2"
	"time"

	"github.com/DjordjeVuckovic/tabular-bench/internal/bench/dataset"
	"github.com/DjordjeVuckovic/tabular-bench/internal/bench/metrics"
	"github.com/DjordjeVuckovic/tabular-bench/internal/domain"
	"github.com/DjordjeVuckovic/tabular-bench/internal/hyperparams"
)

// Model family names used as keys of FitRequest.Hyperparameters.
const (
	FamilyNN  = "NN"
	FamilyGBM = "GBM"
)

type FitRequest struct {
	Train *dataset.Table
	Label string
	// OutputDir receives the persisted predictor. It is owned by the caller
	// for the duration of the fit.
	OutputDir          string
	Hyperparameters    map[string]hyperparams.Table
	HyperparameterTune bool
	TimeLimit          time.Duration
	NumTrials          int
	Verbosity          int
	Seed               uint64
	Rand               *rand.Rand
}

type Engine interface {
	Name() string
	// Fit trains a predictor on req.Train and persists it under req.OutputDir.
	Fit(ctx context.Context, req FitRequest) (Predictor, error)
	// Load rebuilds a predictor from what Fit persisted in dir.
	Load(ctx context.Context, dir string) (Predictor, error)
}

type Predictor interface {
	// ProblemType is the type the engine inferred from the training labels.
	ProblemType() domain.ProblemType
	Predict(ctx context.Context, features *dataset.Table) ([]string, error)
	EvaluatePredictions(yTrue, yPred []string, auxiliary bool) (metrics.Scores, error)
}
