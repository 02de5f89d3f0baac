// Package baseline is a local reference engine: it fits a constant predictor
// (majority class or label mean) and persists it as JSON.
package baseline

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/DjordjeVuckovic/tabular-bench/internal/automl"
	"github.com/DjordjeVuckovic/tabular-bench/internal/bench/dataset"
	"github.com/DjordjeVuckovic/tabular-bench/internal/bench/metrics"
	"github.com/DjordjeVuckovic/tabular-bench/internal/domain"
)

const ModelFile = "predictor.json"

type Engine struct {
	logger *slog.Logger
}

func New(logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{logger: logger}
}

func (e *Engine) Name() string { return "baseline" }

type model struct {
	Label       string             `json:"label"`
	ProblemType domain.ProblemType `json:"problem_type"`
	Constant    string             `json:"constant"`
	Features    []string           `json:"features"`
}

func (e *Engine) Fit(ctx context.Context, req automl.FitRequest) (automl.Predictor, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if req.Train == nil {
		return nil, fmt.Errorf("baseline fit: no training data")
	}
	labels, err := req.Train.Column(req.Label)
	if err != nil {
		return nil, fmt.Errorf("baseline fit: %w", err)
	}
	pt, err := automl.InferProblemType(labels)
	if err != nil {
		return nil, fmt.Errorf("baseline fit: %w", err)
	}

	m := model{
		Label:       req.Label,
		ProblemType: pt,
		Features:    slices.DeleteFunc(slices.Clone(req.Train.Header), func(h string) bool { return h == req.Label }),
	}
	if pt == domain.Regression {
		m.Constant, err = meanLabel(labels)
	} else {
		m.Constant = majorityLabel(labels, req)
	}
	if err != nil {
		return nil, fmt.Errorf("baseline fit: %w", err)
	}

	if err := save(req.OutputDir, m); err != nil {
		return nil, err
	}
	e.logger.Debug("Fitted baseline predictor",
		"problem_type", pt,
		"constant", m.Constant,
		"rows", req.Train.Len(),
		"verbosity", req.Verbosity,
	)
	return &predictor{m: m}, nil
}

func (e *Engine) Load(ctx context.Context, dir string) (automl.Predictor, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(filepath.Join(dir, ModelFile))
	if err != nil {
		return nil, fmt.Errorf("baseline load: %w", err)
	}
	var m model
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("baseline load: decode model: %w", err)
	}
	if !m.ProblemType.Valid() {
		return nil, fmt.Errorf("baseline load: invalid problem type %q", m.ProblemType)
	}
	return &predictor{m: m}, nil
}

func save(dir string, m model) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("baseline save: %w", err)
	}
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return fmt.Errorf("baseline save: encode model: %w", err)
	}
	if err := os.WriteFile(filepath.Join(dir, ModelFile), data, 0o644); err != nil {
		return fmt.Errorf("baseline save: %w", err)
	}
	return nil
}

// majorityLabel picks the most frequent label. Ties are broken with the
// request's random source so a fixed seed gives a fixed predictor.
func majorityLabel(labels []string, req automl.FitRequest) string {
	counts := make(map[string]int)
	for _, l := range labels {
		if strings.TrimSpace(l) == "" {
			continue
		}
		counts[l]++
	}

	best := 0
	var candidates []string
	for l, c := range counts {
		switch {
		case c > best:
			best = c
			candidates = []string{l}
		case c == best:
			candidates = append(candidates, l)
		}
	}
	slices.Sort(candidates)

	if len(candidates) > 1 && req.Rand != nil {
		return candidates[req.Rand.IntN(len(candidates))]
	}
	return candidates[0]
}

func meanLabel(labels []string) (string, error) {
	var sum float64
	var n int
	for _, l := range labels {
		l = strings.TrimSpace(l)
		if l == "" {
			continue
		}
		v, err := strconv.ParseFloat(l, 64)
		if err != nil {
			return "", fmt.Errorf("parse label %q: %w", l, err)
		}
		sum += v
		n++
	}
	return strconv.FormatFloat(sum/float64(n), 'g', -1, 64), nil
}

type predictor struct {
	m model
}

func (p *predictor) ProblemType() domain.ProblemType {
	return p.m.ProblemType
}

func (p *predictor) Predict(ctx context.Context, features *dataset.Table) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if features.ColumnIndex(p.m.Label) >= 0 {
		return nil, fmt.Errorf("baseline predict: features contain label column %q", p.m.Label)
	}
	out := make([]string, features.Len())
	for i := range out {
		out[i] = p.m.Constant
	}
	return out, nil
}

func (p *predictor) EvaluatePredictions(yTrue, yPred []string, auxiliary bool) (metrics.Scores, error) {
	return metrics.ComputeAll(p.m.ProblemType, yTrue, yPred, auxiliary)
}
