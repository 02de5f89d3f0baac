package in_mem

import (
	"context"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/DjordjeVuckovic/tabular-bench/internal/bench/report"
	"github.com/DjordjeVuckovic/tabular-bench/internal/storage"
)

var _ storage.HistoryReader = (*InMemStorer)(nil)

type InMemStorer struct {
	storageLock sync.RWMutex
	storage     map[uuid.UUID]*report.Report
	order       []uuid.UUID
}

func NewInMemStorer() *InMemStorer {
	return &InMemStorer{
		storage: make(map[uuid.UUID]*report.Report),
	}
}

func (s *InMemStorer) Save(_ context.Context, r *report.Report) error {
	s.storageLock.Lock()
	defer s.storageLock.Unlock()

	if r.Meta.RunID == uuid.Nil {
		r.Meta.RunID = uuid.New()
	}
	if _, exists := s.storage[r.Meta.RunID]; !exists {
		s.order = append(s.order, r.Meta.RunID)
	}
	s.storage[r.Meta.RunID] = r
	slog.Debug("Saved benchmark report in memory", "run_id", r.Meta.RunID, "datasets", len(r.Datasets))
	return nil
}

func (s *InMemStorer) Get(id uuid.UUID) (*report.Report, bool) {
	s.storageLock.RLock()
	defer s.storageLock.RUnlock()
	r, ok := s.storage[id]
	return r, ok
}

// List returns the stored reports in save order.
func (s *InMemStorer) List() []*report.Report {
	s.storageLock.RLock()
	defer s.storageLock.RUnlock()

	out := make([]*report.Report, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.storage[id])
	}
	return out
}

// History returns the dataset's performance values, most recently saved first.
func (s *InMemStorer) History(_ context.Context, dataset string, limit int) ([]float64, error) {
	s.storageLock.RLock()
	defer s.storageLock.RUnlock()

	var values []float64
	for i := len(s.order) - 1; i >= 0 && len(values) < limit; i-- {
		for _, e := range s.storage[s.order[i]].Datasets {
			if e.Dataset == dataset {
				values = append(values, e.PerformanceValue)
				break
			}
		}
	}
	return values, nil
}

func (s *InMemStorer) Close() error { return nil }
