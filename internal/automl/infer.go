package automl

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/DjordjeVuckovic/tabular-bench/internal/domain"
)

// MaxMulticlassLevels is the largest number of distinct integer labels still
// treated as classes rather than a regression target.
const MaxMulticlassLevels = 20

// InferProblemType guesses the problem type from raw label values. Blank
// labels are ignored.
func InferProblemType(labels []string) (domain.ProblemType, error) {
	unique := make(map[string]struct{})
	numeric, integral := true, true
	for _, l := range labels {
		l = strings.TrimSpace(l)
		if l == "" {
			continue
		}
		unique[l] = struct{}{}
		if !numeric {
			continue
		}
		v, err := strconv.ParseFloat(l, 64)
		if err != nil {
			numeric = false
			continue
		}
		if v != math.Trunc(v) {
			integral = false
		}
	}

	switch n := len(unique); {
	case n == 0:
		return "", fmt.Errorf("no non-empty labels")
	case n <= 2:
		return domain.Binary, nil
	case !numeric:
		return domain.Multiclass, nil
	case integral && n <= MaxMulticlassLevels:
		return domain.Multiclass, nil
	default:
		return domain.Regression, nil
	}
}
