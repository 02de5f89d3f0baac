package es

import (
	"time"

	"github.com/DjordjeVuckovic/tabular-bench/internal/bench/report"
)

// Document is one dataset result of one run, flattened with the run's
// metadata so results can be queried per dataset over time.
type Document struct {
	ID                  string             `json:"id"`
	RunID               string             `json:"run_id"`
	StartedAt           time.Time          `json:"started_at"`
	Engine              string             `json:"engine"`
	FastMode            bool               `json:"fast_mode"`
	Dataset             string             `json:"dataset"`
	DeclaredProblemType string             `json:"declared_problem_type"`
	InferredProblemType string             `json:"inferred_problem_type"`
	PerformanceValue    float64            `json:"performance_val"`
	BaselinePerformance float64            `json:"baseline_performance_val"`
	Factor              float64            `json:"factor"`
	Scores              map[string]float64 `json:"scores"`
	FitMillis           int64              `json:"fit_ms"`
	PredictMillis       int64              `json:"predict_ms"`
	Warnings            []string           `json:"warnings,omitempty"`
	IndexedAt           time.Time          `json:"indexed_at"`
}

func toDocuments(r *report.Report, now time.Time) []Document {
	byDataset := make(map[string][]string)
	for _, w := range r.Warnings {
		if w.Dataset != "" {
			byDataset[w.Dataset] = append(byDataset[w.Dataset], w.Message)
		}
	}

	runID := r.Meta.RunID.String()
	docs := make([]Document, 0, len(r.Datasets))
	for _, e := range r.Datasets {
		docs = append(docs, Document{
			ID:                  runID + "-" + e.Dataset,
			RunID:               runID,
			StartedAt:           r.Meta.Timestamp,
			Engine:              r.Meta.Engine,
			FastMode:            r.Config.FastMode,
			Dataset:             e.Dataset,
			DeclaredProblemType: string(e.DeclaredProblemType),
			InferredProblemType: string(e.InferredProblemType),
			PerformanceValue:    e.PerformanceValue,
			BaselinePerformance: e.BaselinePerformance,
			Factor:              e.Factor,
			Scores:              e.Scores,
			FitMillis:           e.FitDuration.Milliseconds(),
			PredictMillis:       e.PredictDuration.Milliseconds(),
			Warnings:            byDataset[e.Dataset],
			IndexedAt:           now,
		})
	}
	return docs
}
