package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DjordjeVuckovic/tabular-bench/internal/bench/registry"
	"github.com/DjordjeVuckovic/tabular-bench/internal/bench/runner"
)

func TestLoadConfig_Defaults(t *testing.T) {
	for _, k := range []string{"BENCH_WORK_DIR", "BENCH_FULL", "BENCH_REPORT_PATH", "BENCH_WARNINGS_AS_ERRORS", "AUTOML_ENGINE", "AUTOML_URL", "BENCH_REGISTRY", "BENCH_DATASETS"} {
		t.Setenv(k, "")
	}

	cfg, err := loadConfig()
	require.NoError(t, err)
	assert.False(t, cfg.Full)
	assert.Equal(t, engineBaseline, cfg.Engine)

	rc := cfg.runnerConfig()
	assert.True(t, rc.FastMode)
	assert.False(t, rc.StrictRegressionChecks)
	assert.Equal(t, cfg.WorkDir, rc.WorkDir)

	ds, err := cfg.datasets()
	require.NoError(t, err)
	assert.Equal(t, registry.Default(), ds)
}

func TestLoadConfig_FullProfile(t *testing.T) {
	t.Setenv("BENCH_FULL", "true")
	t.Setenv("BENCH_WORK_DIR", "/tmp/bench")

	cfg, err := loadConfig()
	require.NoError(t, err)

	rc := cfg.runnerConfig()
	assert.False(t, rc.FastMode)
	assert.True(t, rc.StrictRegressionChecks)
	assert.Equal(t, "/tmp/bench", rc.WorkDir)
}

func TestLoadConfig_InvalidBool(t *testing.T) {
	t.Setenv("BENCH_FULL", "yes please")
	_, err := loadConfig()
	assert.Error(t, err)
}

func TestNewEngine(t *testing.T) {
	tests := []struct {
		name     string
		cfg      cliConfig
		wantName string
		wantErr  bool
	}{
		{name: "baseline", cfg: cliConfig{Engine: engineBaseline}, wantName: "baseline"},
		{name: "remote", cfg: cliConfig{Engine: engineRemote, EngineURL: "http://localhost:8000"}, wantName: "remote"},
		{name: "remote without url", cfg: cliConfig{Engine: engineRemote}, wantErr: true},
		{name: "unknown", cfg: cliConfig{Engine: "sklearn"}, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			eng, err := tt.cfg.newEngine(nil)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantName, eng.Name())
		})
	}
}

func TestDatasets_FromRegistryFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "registry.yaml")
	data := `datasets:
  - name: toy
    url: https://example.com/toy.zip
    label_column: y
    problem_type: binary
    performance_val: 0.2
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	ds, err := cliConfig{RegistryPath: path}.datasets()
	require.NoError(t, err)
	require.Len(t, ds, 1)
	assert.Equal(t, "toy", ds[0].Name)
}

func TestRootCmd_RejectsArgs(t *testing.T) {
	cmd := newRootCmd()
	cmd.SetArgs([]string{"extra"})
	assert.Error(t, cmd.Execute())
}

func TestDatasets_Only(t *testing.T) {
	t.Setenv("BENCH_REGISTRY", "")
	t.Setenv("BENCH_DATASETS", " AdultIncomeBinaryClassification, ,toyRegression")

	cfg, err := loadConfig()
	require.NoError(t, err)
	assert.Equal(t, []string{"AdultIncomeBinaryClassification", "toyRegression"}, cfg.Only)

	ds, err := cfg.datasets()
	require.NoError(t, err)
	require.Len(t, ds, 2)
	assert.Equal(t, "AdultIncomeBinaryClassification", ds[0].Name)
	assert.Equal(t, "toyRegression", ds[1].Name)

	_, err = cliConfig{Only: []string{"nope"}}.datasets()
	assert.ErrorContains(t, err, `unknown dataset "nope"`)
}

func TestNewAcquirer_UsesRunnerConfig(t *testing.T) {
	rc := runner.FullConfig()
	rc.WorkDir = t.TempDir()
	rc.TrainFile = "train.csv"
	rc.TestFile = "test.csv"

	p := newAcquirer(rc, nil, nil).PathsFor("toy")
	assert.Equal(t, filepath.Join(rc.WorkDir, "toy"), p.Dir)
	assert.Equal(t, filepath.Join(rc.WorkDir, "toy", "train.csv"), p.Train)
	assert.Equal(t, filepath.Join(rc.WorkDir, "toy", "test.csv"), p.Test)
}
