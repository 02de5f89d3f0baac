// Package regression decides whether a performance value is worse than its
// historical baseline by more than the allowed factor.
package regression

// Epsilon keeps the degradation factor finite when the baseline is 0.
const Epsilon = 1e-10

// DefaultThreshold allows a 10% degradation before warning.
const DefaultThreshold = 1.1

type Finding struct {
	Name      string
	Value     float64
	Baseline  float64
	Threshold float64
	Factor    float64
}

// Factor is how many times worse value is than baseline.
func Factor(value, baseline float64) float64 {
	return value / (baseline + Epsilon)
}

// Check reports a finding when value exceeds baseline*threshold. Equality is
// not a regression.
func Check(name string, value, baseline, threshold float64) (Finding, bool) {
	f := Finding{
		Name:      name,
		Value:     value,
		Baseline:  baseline,
		Threshold: threshold,
		Factor:    Factor(value, baseline),
	}
	return f, value > baseline*threshold
}
