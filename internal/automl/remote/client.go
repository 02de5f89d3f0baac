// Package remote drives an AutoML service over HTTP. The service owns the
// fitted models; only a handle is persisted locally.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/DjordjeVuckovic/tabular-bench/internal/automl"
	"github.com/DjordjeVuckovic/tabular-bench/internal/bench/dataset"
	"github.com/DjordjeVuckovic/tabular-bench/internal/bench/metrics"
	"github.com/DjordjeVuckovic/tabular-bench/internal/domain"
	"github.com/DjordjeVuckovic/tabular-bench/internal/hyperparams"
)

const HandleFile = "remote_predictor.json"

type Engine struct {
	baseURL string
	client  *http.Client
	logger  *slog.Logger
}

type Option func(*Engine)

func WithHTTPClient(c *http.Client) Option {
	return func(e *Engine) { e.client = c }
}

func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

func New(baseURL string, opts ...Option) *Engine {
	e := &Engine{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: 2 * time.Hour},
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func (e *Engine) Name() string { return "remote" }

type tablePayload struct {
	Header []string   `json:"header"`
	Rows   [][]string `json:"rows"`
}

type fitRequest struct {
	Label              string                       `json:"label"`
	Train              tablePayload                 `json:"train"`
	Hyperparameters    map[string]hyperparams.Table `json:"hyperparameters,omitempty"`
	HyperparameterTune bool                         `json:"hyperparameter_tune"`
	TimeLimitSeconds   float64                      `json:"time_limit_seconds,omitempty"`
	NumTrials          int                          `json:"num_trials,omitempty"`
	Verbosity          int                          `json:"verbosity"`
	Seed               uint64                       `json:"seed"`
}

type fitResponse struct {
	ModelID     string             `json:"model_id"`
	ProblemType domain.ProblemType `json:"problem_type"`
}

type predictRequest struct {
	Features tablePayload `json:"features"`
}

type predictResponse struct {
	Predictions []string `json:"predictions"`
}

// handle is what Fit persists and Load reads back.
type handle struct {
	ModelID     string             `json:"model_id"`
	ProblemType domain.ProblemType `json:"problem_type"`
}

func (e *Engine) Fit(ctx context.Context, req automl.FitRequest) (automl.Predictor, error) {
	if req.Train == nil {
		return nil, fmt.Errorf("remote fit: no training data")
	}
	body := fitRequest{
		Label:              req.Label,
		Train:              tablePayload{Header: req.Train.Header, Rows: req.Train.Rows},
		Hyperparameters:    req.Hyperparameters,
		HyperparameterTune: req.HyperparameterTune,
		TimeLimitSeconds:   req.TimeLimit.Seconds(),
		NumTrials:          req.NumTrials,
		Verbosity:          req.Verbosity,
		Seed:               req.Seed,
	}

	var resp fitResponse
	if err := e.post(ctx, "/fit", body, &resp); err != nil {
		return nil, fmt.Errorf("remote fit: %w", err)
	}
	if resp.ModelID == "" {
		return nil, fmt.Errorf("remote fit: empty model id")
	}
	if !resp.ProblemType.Valid() {
		return nil, fmt.Errorf("remote fit: invalid problem type %q", resp.ProblemType)
	}

	h := handle{ModelID: resp.ModelID, ProblemType: resp.ProblemType}
	if err := saveHandle(req.OutputDir, h); err != nil {
		return nil, err
	}
	e.logger.Info("Remote model fitted", "model_id", h.ModelID, "problem_type", h.ProblemType)
	return &predictor{engine: e, h: h}, nil
}

func (e *Engine) Load(_ context.Context, dir string) (automl.Predictor, error) {
	data, err := os.ReadFile(filepath.Join(dir, HandleFile))
	if err != nil {
		return nil, fmt.Errorf("remote load: %w", err)
	}
	var h handle
	if err := json.Unmarshal(data, &h); err != nil {
		return nil, fmt.Errorf("remote load: decode handle: %w", err)
	}
	if h.ModelID == "" {
		return nil, fmt.Errorf("remote load: handle has no model id")
	}
	return &predictor{engine: e, h: h}, nil
}

func (e *Engine) post(ctx context.Context, path string, in, out any) error {
	payload, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("encode request: %w", err)
	}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, e.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := e.client.Do(httpReq)
	if err != nil {
		return fmt.Errorf("request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("parse response: %w", err)
	}
	return nil
}

func saveHandle(dir string, h handle) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("remote save: %w", err)
	}
	data, err := json.MarshalIndent(h, "", "  ")
	if err != nil {
		return fmt.Errorf("remote save: encode handle: %w", err)
	}
	if err := os.WriteFile(filepath.Join(dir, HandleFile), data, 0o644); err != nil {
		return fmt.Errorf("remote save: %w", err)
	}
	return nil
}

type predictor struct {
	engine *Engine
	h      handle
}

func (p *predictor) ProblemType() domain.ProblemType {
	return p.h.ProblemType
}

func (p *predictor) Predict(ctx context.Context, features *dataset.Table) ([]string, error) {
	var resp predictResponse
	path := "/models/" + url.PathEscape(p.h.ModelID) + "/predict"
	req := predictRequest{Features: tablePayload{Header: features.Header, Rows: features.Rows}}
	if err := p.engine.post(ctx, path, req, &resp); err != nil {
		return nil, fmt.Errorf("remote predict: %w", err)
	}
	if len(resp.Predictions) != features.Len() {
		return nil, fmt.Errorf("remote predict: got %d predictions for %d rows", len(resp.Predictions), features.Len())
	}
	return resp.Predictions, nil
}

func (p *predictor) EvaluatePredictions(yTrue, yPred []string, auxiliary bool) (metrics.Scores, error) {
	return metrics.ComputeAll(p.h.ProblemType, yTrue, yPred, auxiliary)
}
