package metrics

import (
	"testing"

	"github.com/DjordjeVuckovic/tabular-bench/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccuracyScore(t *testing.T) {
	tests := []struct {
		name  string
		yTrue []string
		yPred []string
		want  float64
	}{
		{name: "empty", yTrue: nil, yPred: nil, want: 0},
		{name: "all correct", yTrue: []string{"a", "b"}, yPred: []string{"a", "b"}, want: 1},
		{name: "half correct", yTrue: []string{"a", "b", "a", "b"}, yPred: []string{"a", "a", "a", "a"}, want: 0.5},
		{name: "none correct", yTrue: []string{"a", "b"}, yPred: []string{"b", "a"}, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, AccuracyScore(tt.yTrue, tt.yPred), 1e-9)
		})
	}
}

func TestClassificationAuxiliary(t *testing.T) {
	// class a: tp=2 fn=1 fp=0; class b: tp=1 fn=0 fp=1
	yTrue := []string{"a", "a", "a", "b"}
	yPred := []string{"a", "a", "b", "b"}

	scores, err := ComputeAll(domain.Multiclass, yTrue, yPred, true)
	require.NoError(t, err)

	assert.InDelta(t, 0.75, scores[Accuracy], 1e-9)
	assert.InDelta(t, (2.0/3.0+1.0)/2, scores[BalancedAccuracy], 1e-9)
	assert.InDelta(t, (1.0+0.5)/2, scores[PrecisionMacro], 1e-9)
	assert.InDelta(t, (2.0/3.0+1.0)/2, scores[RecallMacro], 1e-9)

	f1a := 2 * 1.0 * (2.0 / 3.0) / (1.0 + 2.0/3.0)
	f1b := 2 * 0.5 * 1.0 / 1.5
	assert.InDelta(t, (f1a+f1b)/2, scores[F1Macro], 1e-9)
}

func TestClassification_UnseenPredictedLabel(t *testing.T) {
	// "c" never occurs in y_true: it counts for precision but not balanced accuracy
	scores, err := ComputeAll(domain.Multiclass, []string{"a", "b"}, []string{"a", "c"}, true)
	require.NoError(t, err)

	assert.InDelta(t, 0.5, scores[Accuracy], 1e-9)
	assert.InDelta(t, 0.5, scores[BalancedAccuracy], 1e-9)
	assert.InDelta(t, 1.0/3.0, scores[PrecisionMacro], 1e-9)
}

func TestClassification_NoAuxiliary(t *testing.T) {
	scores, err := ComputeAll(domain.Binary, []string{"y", "n"}, []string{"y", "y"}, false)
	require.NoError(t, err)
	assert.Equal(t, Scores{Accuracy: 0.5}, scores)
}

func TestR2Score(t *testing.T) {
	tests := []struct {
		name  string
		yTrue []float64
		yPred []float64
		want  float64
	}{
		{name: "perfect", yTrue: []float64{1, 2, 3}, yPred: []float64{1, 2, 3}, want: 1},
		{name: "mean predictor", yTrue: []float64{1, 2, 3}, yPred: []float64{2, 2, 2}, want: 0},
		{name: "worse than mean", yTrue: []float64{1, 2, 3}, yPred: []float64{3, 2, 1}, want: -3},
		{name: "constant truth, perfect", yTrue: []float64{5, 5}, yPred: []float64{5, 5}, want: 1},
		{name: "constant truth, off", yTrue: []float64{5, 5}, yPred: []float64{4, 5}, want: 0},
		{name: "empty", yTrue: nil, yPred: nil, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, R2Score(tt.yTrue, tt.yPred), 1e-9)
		})
	}
}

func TestRegressionAuxiliary(t *testing.T) {
	scores, err := ComputeAll(domain.Regression, []string{"1", "2", "3"}, []string{"2", "2", "5"}, true)
	require.NoError(t, err)

	assert.InDelta(t, 1.0, scores[MAE], 1e-9)
	assert.InDelta(t, 5.0/3.0, scores[MSE], 1e-9)
	assert.InDelta(t, 1.2909944487, scores[RMSE], 1e-9)
	assert.InDelta(t, 1-5.0/2.0, scores[R2], 1e-9)
}

func TestComputeAll_Errors(t *testing.T) {
	t.Run("length mismatch", func(t *testing.T) {
		_, err := ComputeAll(domain.Binary, []string{"a"}, []string{"a", "b"}, false)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "length mismatch")
	})

	t.Run("no labels", func(t *testing.T) {
		_, err := ComputeAll(domain.Binary, nil, nil, false)
		assert.Error(t, err)
	})

	t.Run("non-numeric regression label", func(t *testing.T) {
		_, err := ComputeAll(domain.Regression, []string{"1.0", "x"}, []string{"1", "2"}, false)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "true labels")
	})
}
