package domain

import "fmt"

// ProblemType is the task category of a tabular dataset.
type ProblemType string

const (
	Binary     ProblemType = "binary"
	Multiclass ProblemType = "multiclass"
	Regression ProblemType = "regression"
)

var SupportedProblemTypes = map[ProblemType]bool{
	Binary:     true,
	Multiclass: true,
	Regression: true,
}

func (p ProblemType) Valid() bool {
	return SupportedProblemTypes[p]
}

// IsClassification reports whether the performance value of p is an error rate.
func (p ProblemType) IsClassification() bool {
	return p == Binary || p == Multiclass
}

func (p ProblemType) Parse() (ProblemType, error) {
	if !p.Valid() {
		return "", fmt.Errorf("unsupported problem type: %q", string(p))
	}
	return p, nil
}

func (p ProblemType) String() string {
	return string(p)
}
