// Package acquire makes sure a dataset's train and test files exist locally,
// fetching and unpacking its archive at most once when they do not.
package acquire

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"path/filepath"

	"github.com/DjordjeVuckovic/tabular-bench/internal/apperr"
	"github.com/DjordjeVuckovic/tabular-bench/internal/domain"
)

const (
	DefaultTrainFile = "train_data.csv"
	DefaultTestFile  = "test_data.csv"
)

type Paths struct {
	Dir   string
	Train string
	Test  string
}

type Acquirer interface {
	EnsureLocal(ctx context.Context, d domain.DatasetDescriptor) (Paths, error)
}

type Options struct {
	TrainFile string
	TestFile  string
	Logger    *slog.Logger
}

// FetchAcquirer keeps datasets under Root/<name>/ and fetches the archive
// through the Fetcher registered for the location's URI scheme.
type FetchAcquirer struct {
	root      string
	trainFile string
	testFile  string
	fetchers  map[string]Fetcher
	logger    *slog.Logger
}

func NewFetchAcquirer(root string, fetchers map[string]Fetcher, opts Options) *FetchAcquirer {
	if opts.TrainFile == "" {
		opts.TrainFile = DefaultTrainFile
	}
	if opts.TestFile == "" {
		opts.TestFile = DefaultTestFile
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	return &FetchAcquirer{
		root:      root,
		trainFile: opts.TrainFile,
		testFile:  opts.TestFile,
		fetchers:  fetchers,
		logger:    opts.Logger,
	}
}

func (a *FetchAcquirer) PathsFor(name string) Paths {
	dir := filepath.Join(a.root, name)
	return Paths{
		Dir:   dir,
		Train: filepath.Join(dir, a.trainFile),
		Test:  filepath.Join(dir, a.testFile),
	}
}

func (a *FetchAcquirer) EnsureLocal(ctx context.Context, d domain.DatasetDescriptor) (Paths, error) {
	p := a.PathsFor(d.Name)
	if present(p) {
		return p, nil
	}

	a.logger.Info("Dataset not found locally, fetching", "dataset", d.Name, "location", d.RemoteLocation)
	if err := a.fetchAndUnpack(ctx, d); err != nil {
		return Paths{}, apperr.NewAcquisition(d.Name, d.RemoteLocation, err)
	}

	for _, f := range []string{p.Train, p.Test} {
		if _, err := os.Stat(f); err != nil {
			return Paths{}, apperr.NewAcquisition(d.Name, f, fmt.Errorf("file missing after unpack: %w", err))
		}
	}
	return p, nil
}

func (a *FetchAcquirer) fetchAndUnpack(ctx context.Context, d domain.DatasetDescriptor) error {
	u, err := url.Parse(d.RemoteLocation)
	if err != nil {
		return fmt.Errorf("parse location: %w", err)
	}
	fetcher, ok := a.fetchers[u.Scheme]
	if !ok {
		return fmt.Errorf("no fetcher for scheme %q", u.Scheme)
	}

	if err := os.MkdirAll(a.root, 0o755); err != nil {
		return fmt.Errorf("create data root: %w", err)
	}
	tmp, err := os.CreateTemp(a.root, d.Name+"-*.zip")
	if err != nil {
		return fmt.Errorf("create temp archive: %w", err)
	}
	defer os.Remove(tmp.Name())

	fetchErr := fetcher.Fetch(ctx, d.RemoteLocation, tmp)
	closeErr := tmp.Close()
	if err := errors.Join(fetchErr, closeErr); err != nil {
		return fmt.Errorf("fetch archive: %w", err)
	}

	if err := Unzip(tmp.Name(), a.root); err != nil {
		return fmt.Errorf("unpack archive: %w", err)
	}
	return nil
}

func present(p Paths) bool {
	for _, f := range []string{p.Train, p.Test} {
		info, err := os.Stat(f)
		if err != nil || info.IsDir() {
			return false
		}
	}
	return true
}
