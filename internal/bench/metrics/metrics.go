// Package metrics scores predicted labels against true labels.
package metrics

import (
	"fmt"

	"github.com/DjordjeVuckovic/tabular-bench/internal/domain"
)

// Scores maps a metric name to its value.
type Scores map[string]float64

const (
	Accuracy         = "accuracy_score"
	BalancedAccuracy = "balanced_accuracy_score"
	PrecisionMacro   = "precision_macro"
	RecallMacro      = "recall_macro"
	F1Macro          = "f1_macro"

	R2   = "r2_score"
	MAE  = "mean_absolute_error"
	MSE  = "mean_squared_error"
	RMSE = "root_mean_squared_error"
)

// ComputeAll scores yPred against yTrue. Classification always yields
// Accuracy and regression always yields R2; the other metrics are added when
// auxiliary is set.
func ComputeAll(problemType domain.ProblemType, yTrue, yPred []string, auxiliary bool) (Scores, error) {
	if len(yTrue) != len(yPred) {
		return nil, fmt.Errorf("label length mismatch: %d true vs %d predicted", len(yTrue), len(yPred))
	}
	if len(yTrue) == 0 {
		return nil, fmt.Errorf("no labels to evaluate")
	}

	if problemType == domain.Regression {
		return computeRegression(yTrue, yPred, auxiliary)
	}
	return computeClassification(yTrue, yPred, auxiliary), nil
}

func computeClassification(yTrue, yPred []string, auxiliary bool) Scores {
	scores := Scores{Accuracy: AccuracyScore(yTrue, yPred)}
	if !auxiliary {
		return scores
	}

	cm := newConfusion(yTrue, yPred)
	scores[BalancedAccuracy] = cm.balancedAccuracy()
	scores[PrecisionMacro] = cm.precisionMacro()
	scores[RecallMacro] = cm.recallMacro()
	scores[F1Macro] = cm.f1Macro()
	return scores
}

func computeRegression(yTrue, yPred []string, auxiliary bool) (Scores, error) {
	truth, err := parseFloats(yTrue)
	if err != nil {
		return nil, fmt.Errorf("true labels: %w", err)
	}
	pred, err := parseFloats(yPred)
	if err != nil {
		return nil, fmt.Errorf("predicted labels: %w", err)
	}

	scores := Scores{R2: R2Score(truth, pred)}
	if !auxiliary {
		return scores, nil
	}

	scores[MAE] = MeanAbsoluteError(truth, pred)
	scores[MSE] = MeanSquaredError(truth, pred)
	scores[RMSE] = RootMeanSquaredError(truth, pred)
	return scores, nil
}
