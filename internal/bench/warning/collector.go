// Package warning collects the non-fatal findings of a benchmark run so they
// can be replayed after the report is printed.
package warning

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"
)

type Kind string

const (
	InferenceMismatch Kind = "inference_mismatch"
	Regression        Kind = "regression"
)

type Warning struct {
	Kind    Kind    `json:"kind"`
	Dataset string  `json:"dataset,omitempty"`
	Message string  `json:"message"`
	Factor  float64 `json:"factor,omitempty"`
}

func (w Warning) String() string {
	return fmt.Sprintf("%s: %s", w.Kind, w.Message)
}

// Error wraps a warning for callers that escalate warnings to failures.
type Error struct {
	Warning Warning
}

func (e *Error) Error() string {
	return e.Warning.String()
}

// Collector is an ordered, append-only list of warnings. It belongs to a
// single run and is not safe for concurrent use.
type Collector struct {
	warnings []Warning
	logger   *slog.Logger
}

func NewCollector(logger *slog.Logger) *Collector {
	if logger == nil {
		logger = slog.Default()
	}
	return &Collector{logger: logger}
}

// Add records w and logs it once at capture time.
func (c *Collector) Add(w Warning) {
	c.warnings = append(c.warnings, w)
	c.logger.Warn(w.Message, "kind", w.Kind, "dataset", w.Dataset)
}

func (c *Collector) Addf(kind Kind, dataset string, factor float64, format string, args ...any) {
	c.Add(Warning{
		Kind:    kind,
		Dataset: dataset,
		Factor:  factor,
		Message: fmt.Sprintf(format, args...),
	})
}

// All returns the warnings in capture order.
func (c *Collector) All() []Warning {
	return slices.Clone(c.warnings)
}

func (c *Collector) Len() int {
	return len(c.warnings)
}

func (c *Collector) Count(kind Kind) int {
	var n int
	for _, w := range c.warnings {
		if w.Kind == kind {
			n++
		}
	}
	return n
}

// Replay re-emits every captured warning in capture order.
func (c *Collector) Replay(logger *slog.Logger) {
	if logger == nil {
		logger = c.logger
	}
	Replay(logger, c.warnings)
}

// Err joins every captured warning into one error, or returns nil when the
// run produced none.
func (c *Collector) Err() error {
	return Join(c.warnings)
}

// Replay logs ws in order, numbered from one.
func Replay(logger *slog.Logger, ws []Warning) {
	if logger == nil {
		logger = slog.Default()
	}
	for i, w := range ws {
		logger.Warn(w.Message, "kind", w.Kind, "dataset", w.Dataset, "index", i+1, "of", len(ws))
	}
}

// Join returns ws as a single error matching *Error for each warning.
func Join(ws []Warning) error {
	if len(ws) == 0 {
		return nil
	}
	errs := make([]error, len(ws))
	for i, w := range ws {
		errs[i] = &Error{Warning: w}
	}
	return errors.Join(errs...)
}
