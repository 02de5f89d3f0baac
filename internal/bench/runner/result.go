package runner

import (
	"time"

	"github.com/DjordjeVuckovic/tabular-bench/internal/bench/metrics"
	"github.com/DjordjeVuckovic/tabular-bench/internal/bench/warning"
	"github.com/DjordjeVuckovic/tabular-bench/internal/domain"
)

type RunResult struct {
	DatasetName         string             `json:"dataset"`
	DeclaredProblemType domain.ProblemType `json:"declared_problem_type"`
	InferredProblemType domain.ProblemType `json:"inferred_problem_type"`
	// PerformanceValue is 1-accuracy or 1-r2; lower is better. It exceeds 1
	// when r2 is negative.
	PerformanceValue    float64        `json:"performance_val"`
	BaselinePerformance float64        `json:"baseline_performance_val"`
	Scores              metrics.Scores `json:"scores"`
	TrainRows           int            `json:"train_rows"`
	TestRows            int            `json:"test_rows"`
	FitDuration         time.Duration  `json:"fit_duration"`
	PredictDuration     time.Duration  `json:"predict_duration"`
	// Warnings raised while evaluating this dataset, in capture order.
	Warnings []warning.Warning `json:"warnings,omitempty"`
}

type Result struct {
	Runs      []RunResult
	Warnings  *warning.Collector
	Config    Config
	StartedAt time.Time
	Duration  time.Duration
}

func (r *Result) PerformanceValues() []float64 {
	out := make([]float64, len(r.Runs))
	for i, run := range r.Runs {
		out[i] = run.PerformanceValue
	}
	return out
}

func (r *Result) FitTimings() TimingStats {
	d := make([]time.Duration, len(r.Runs))
	for i, run := range r.Runs {
		d[i] = run.FitDuration
	}
	return ComputeTimingStats(d)
}

func (r *Result) PredictTimings() TimingStats {
	d := make([]time.Duration, len(r.Runs))
	for i, run := range r.Runs {
		d[i] = run.PredictDuration
	}
	return ComputeTimingStats(d)
}
