package report

import (
	"runtime"
	"time"

	"github.com/google/uuid"

	"github.com/DjordjeVuckovic/tabular-bench/internal/bench/metrics"
	"github.com/DjordjeVuckovic/tabular-bench/internal/bench/runner"
	"github.com/DjordjeVuckovic/tabular-bench/internal/bench/warning"
	"github.com/DjordjeVuckovic/tabular-bench/internal/domain"
)

type Report struct {
	Meta     Meta              `json:"meta"`
	Config   ReportConfig      `json:"config"`
	Datasets []Entry           `json:"datasets"`
	Summary  Stats             `json:"summary"`
	Previous Stats             `json:"previous"`
	Checks   []Check           `json:"checks,omitempty"`
	Timing   Timing            `json:"timing"`
	Warnings []warning.Warning `json:"warnings"`
}

type Meta struct {
	RunID       uuid.UUID       `json:"run_id"`
	Timestamp   time.Time       `json:"timestamp"`
	Duration    time.Duration   `json:"duration"`
	Engine      string          `json:"engine,omitempty"`
	Environment EnvironmentInfo `json:"environment"`
}

type EnvironmentInfo struct {
	GoVersion string `json:"go_version"`
	OS        string `json:"os"`
	Arch      string `json:"arch"`
	NumCPU    int    `json:"num_cpu"`
}

func NewEnvironmentInfo() EnvironmentInfo {
	return EnvironmentInfo{
		GoVersion: runtime.Version(),
		OS:        runtime.GOOS,
		Arch:      runtime.GOARCH,
		NumCPU:    runtime.NumCPU(),
	}
}

type ReportConfig struct {
	FastMode               bool    `json:"fast_mode"`
	StrictRegressionChecks bool    `json:"strict_regression_checks"`
	Threshold              float64 `json:"threshold"`
	SubsampleSize          int     `json:"subsample_size,omitempty"`
	Seed                   uint64  `json:"seed"`
}

type Entry struct {
	Dataset             string             `json:"dataset"`
	DeclaredProblemType domain.ProblemType `json:"declared_problem_type"`
	InferredProblemType domain.ProblemType `json:"inferred_problem_type"`
	PerformanceValue    float64            `json:"performance_val"`
	BaselinePerformance float64            `json:"baseline_performance_val"`
	// Factor is PerformanceValue relative to the baseline.
	Factor          float64           `json:"factor"`
	Scores          metrics.Scores    `json:"scores"`
	TrainRows       int               `json:"train_rows"`
	TestRows        int               `json:"test_rows"`
	FitDuration     time.Duration     `json:"fit_duration"`
	PredictDuration time.Duration     `json:"predict_duration"`
	Warnings        []warning.Warning `json:"warnings,omitempty"`
}

// Stats aggregates performance values across datasets.
type Stats struct {
	Mean   float64 `json:"mean"`
	Median float64 `json:"median"`
	Worst  float64 `json:"worst"`
}

// Check is the outcome of comparing one aggregate statistic with its
// baseline counterpart.
type Check struct {
	Name      string  `json:"name"`
	Value     float64 `json:"value"`
	Baseline  float64 `json:"baseline"`
	Factor    float64 `json:"factor"`
	Regressed bool    `json:"regressed"`
}

type Timing struct {
	Fit     runner.TimingStats `json:"fit"`
	Predict runner.TimingStats `json:"predict"`
}
