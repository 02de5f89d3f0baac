package runner

import (
	"time"

	"github.com/DjordjeVuckovic/tabular-bench/internal/automl"
	"github.com/DjordjeVuckovic/tabular-bench/internal/bench/acquire"
	"github.com/DjordjeVuckovic/tabular-bench/internal/bench/regression"
	"github.com/DjordjeVuckovic/tabular-bench/internal/hyperparams"
)

const (
	DefaultSubsampleSize = 100
	DefaultNumTrials     = 3
	DefaultTimeLimit     = 30 * time.Second
	DefaultVerbosity     = 2
	DefaultOutputDirName = "AutogluonOutput"
)

// Config is built once and never mutated by the runner.
type Config struct {
	FastMode      bool
	SubsampleSize int
	// Hyperparameters maps a model family to its overrides.
	Hyperparameters    map[string]hyperparams.Table
	HyperparameterTune bool
	NumTrials          int
	TimeLimit          time.Duration
	Verbosity          int
	// StrictRegressionChecks enables baseline comparison; fast runs are too
	// noisy for it.
	StrictRegressionChecks bool
	Threshold              float64
	Seed                   uint64
	WorkDir                string
	TrainFile              string
	TestFile               string
	OutputDirName          string
}

// FastConfig is the smoke profile: subsampled training and tiny models.
func FastConfig() Config {
	return Config{
		FastMode:      true,
		SubsampleSize: DefaultSubsampleSize,
		Hyperparameters: map[string]hyperparams.Table{
			automl.FamilyNN:  {hyperparams.NumEpochs: 3},
			automl.FamilyGBM: {"num_boost_round": 30},
		},
		HyperparameterTune:     true,
		NumTrials:              DefaultNumTrials,
		TimeLimit:              DefaultTimeLimit,
		Verbosity:              DefaultVerbosity,
		StrictRegressionChecks: false,
		Threshold:              regression.DefaultThreshold,
		TrainFile:              acquire.DefaultTrainFile,
		TestFile:               acquire.DefaultTestFile,
		OutputDirName:          DefaultOutputDirName,
	}
}

// FullConfig trains on the whole dataset with engine defaults and enables
// regression checks.
func FullConfig() Config {
	return Config{
		FastMode:               false,
		HyperparameterTune:     true,
		Verbosity:              DefaultVerbosity,
		StrictRegressionChecks: true,
		Threshold:              regression.DefaultThreshold,
		TrainFile:              acquire.DefaultTrainFile,
		TestFile:               acquire.DefaultTestFile,
		OutputDirName:          DefaultOutputDirName,
	}
}
