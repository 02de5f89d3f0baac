// Package storage persists finished benchmark reports so runs can be
// compared over time.
package storage

import (
	"context"
	"fmt"

	"github.com/DjordjeVuckovic/tabular-bench/internal/bench/report"
)

type ReportStorer interface {
	Save(ctx context.Context, r *report.Report) error
	Close() error
}

// HistoryReader is implemented by stores that can list the past performance
// values of a dataset, newest first.
type HistoryReader interface {
	History(ctx context.Context, dataset string, limit int) ([]float64, error)
}

type Type string

const (
	ES       Type = "es"
	PG       Type = "pg"
	InMem    Type = "in_mem"
	JSONFile Type = "json_file"
)

var SupportedTypes = []Type{ES, PG, InMem, JSONFile}

func (t Type) Valid() bool {
	for _, s := range SupportedTypes {
		if t == s {
			return true
		}
	}
	return false
}

type StorerError string

const (
	ErrUnsupportedStorer StorerError = "unsupported storer type: %s"
)

func (e StorerError) Error() string {
	return string(e)
}

func UnsupportedStorer(t Type) error {
	return fmt.Errorf(string(ErrUnsupportedStorer), t)
}
