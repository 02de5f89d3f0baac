package runner

import (
	"slices"
	"time"
)

// TimingStats summarises per-dataset fit or predict durations.
type TimingStats struct {
	Min         time.Duration `json:"min"`
	Max         time.Duration `json:"max"`
	Mean        time.Duration `json:"mean"`
	Median      time.Duration `json:"median"`
	Total       time.Duration `json:"total"`
	SampleCount int           `json:"sample_count"`
}

func ComputeTimingStats(durations []time.Duration) TimingStats {
	if len(durations) == 0 {
		return TimingStats{}
	}

	sorted := slices.Clone(durations)
	slices.Sort(sorted)

	var total time.Duration
	for _, d := range sorted {
		total += d
	}

	mid := len(sorted) / 2
	median := sorted[mid]
	if len(sorted)%2 == 0 {
		median = (sorted[mid-1] + sorted[mid]) / 2
	}

	return TimingStats{
		Min:         sorted[0],
		Max:         sorted[len(sorted)-1],
		Mean:        total / time.Duration(len(sorted)),
		Median:      median,
		Total:       total,
		SampleCount: len(sorted),
	}
}

func (s TimingStats) IsZero() bool {
	return s.SampleCount == 0
}
