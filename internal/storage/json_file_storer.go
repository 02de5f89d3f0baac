package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/DjordjeVuckovic/tabular-bench/internal/bench/report"
)

// JSONFileStorer appends one JSON document per report to a file.
type JSONFileStorer struct {
	mu       sync.Mutex
	filePath string
}

func NewJSONFileStorer(filePath string) *JSONFileStorer {
	return &JSONFileStorer{filePath: filePath}
}

func (s *JSONFileStorer) Save(_ context.Context, r *report.Report) error {
	line, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if dir := filepath.Dir(s.filePath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create history dir: %w", err)
		}
	}
	f, err := os.OpenFile(s.filePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("open history file: %w", err)
	}
	if _, err := f.Write(append(line, '\n')); err != nil {
		f.Close()
		return fmt.Errorf("append report: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close history file: %w", err)
	}

	slog.Info("Saved benchmark report to history file", "run_id", r.Meta.RunID, "path", s.filePath)
	return nil
}

func (s *JSONFileStorer) Close() error { return nil }
