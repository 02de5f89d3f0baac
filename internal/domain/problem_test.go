package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProblemType_Parse(t *testing.T) {
	for _, pt := range []ProblemType{Binary, Multiclass, Regression} {
		got, err := pt.Parse()
		require.NoError(t, err)
		assert.Equal(t, pt, got)
	}

	_, err := ProblemType("quantile").Parse()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported problem type")
}

func TestProblemType_IsClassification(t *testing.T) {
	assert.True(t, Binary.IsClassification())
	assert.True(t, Multiclass.IsClassification())
	assert.False(t, Regression.IsClassification())
	assert.False(t, ProblemType("").IsClassification())
}
