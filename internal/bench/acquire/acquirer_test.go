package acquire

import (
	"archive/zip"
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DjordjeVuckovic/tabular-bench/internal/apperr"
	"github.com/DjordjeVuckovic/tabular-bench/internal/domain"
)

func zipBytes(t *testing.T, files map[string]string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for name, content := range files {
		w, err := zw.Create(name)
		require.NoError(t, err)
		_, err = w.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

type countingFetcher struct {
	calls   int
	payload []byte
	err     error
}

func (f *countingFetcher) Fetch(_ context.Context, _ string, w io.Writer) error {
	f.calls++
	if f.err != nil {
		return f.err
	}
	_, err := w.Write(f.payload)
	return err
}

func descriptor(name, location string) domain.DatasetDescriptor {
	return domain.DatasetDescriptor{
		Name:           name,
		RemoteLocation: location,
		LabelColumn:    "y",
		ProblemType:    domain.Binary,
	}
}

func archiveFiles(root string) []string {
	matches, _ := filepath.Glob(filepath.Join(root, "*.zip"))
	return matches
}

func TestEnsureLocal_FetchesOnceThenUsesLocalFiles(t *testing.T) {
	root := t.TempDir()
	fetcher := &countingFetcher{payload: zipBytes(t, map[string]string{
		"toy/train_data.csv": "x,y\n1,a\n",
		"toy/test_data.csv":  "x,y\n2,b\n",
	})}
	a := NewFetchAcquirer(root, map[string]Fetcher{"https": fetcher}, Options{})
	d := descriptor("toy", "https://example.com/toy.zip")

	p, err := a.EnsureLocal(context.Background(), d)
	require.NoError(t, err)
	assert.Equal(t, 1, fetcher.calls)
	assert.Equal(t, filepath.Join(root, "toy", "train_data.csv"), p.Train)
	assert.Empty(t, archiveFiles(root), "temporary archive must be removed")

	content, err := os.ReadFile(p.Test)
	require.NoError(t, err)
	assert.Equal(t, "x,y\n2,b\n", string(content))

	p2, err := a.EnsureLocal(context.Background(), d)
	require.NoError(t, err)
	assert.Equal(t, p, p2)
	assert.Equal(t, 1, fetcher.calls, "second call must not touch the network")
}

func TestEnsureLocal_ExistingFilesSkipFetch(t *testing.T) {
	root := t.TempDir()
	dir := filepath.Join(root, "local")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "train.csv"), []byte("a\n1\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "test.csv"), []byte("a\n2\n"), 0o644))

	fetcher := &countingFetcher{}
	a := NewFetchAcquirer(root, map[string]Fetcher{"https": fetcher}, Options{TrainFile: "train.csv", TestFile: "test.csv"})

	p, err := a.EnsureLocal(context.Background(), descriptor("local", "https://example.com/local.zip"))
	require.NoError(t, err)
	assert.Equal(t, dir, p.Dir)
	assert.Zero(t, fetcher.calls)
}

func TestEnsureLocal_Failures(t *testing.T) {
	tests := []struct {
		name     string
		location string
		fetcher  *countingFetcher
		errText  string
	}{
		{
			name:     "corrupt archive",
			location: "https://example.com/bad.zip",
			fetcher:  &countingFetcher{payload: []byte("definitely not a zip")},
			errText:  "unpack archive",
		},
		{
			name:     "archive without test file",
			location: "https://example.com/partial.zip",
			fetcher: &countingFetcher{payload: zipBytes(t, map[string]string{
				"ds/train_data.csv": "x,y\n1,a\n",
			})},
			errText: "file missing after unpack",
		},
		{
			name:     "fetch error",
			location: "https://example.com/down.zip",
			fetcher:  &countingFetcher{err: errors.New("connection refused")},
			errText:  "connection refused",
		},
		{
			name:     "unknown scheme",
			location: "ftp://example.com/ds.zip",
			fetcher:  &countingFetcher{},
			errText:  `no fetcher for scheme "ftp"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := t.TempDir()
			a := NewFetchAcquirer(root, map[string]Fetcher{"https": tt.fetcher}, Options{})

			p, err := a.EnsureLocal(context.Background(), descriptor("ds", tt.location))
			require.Error(t, err)
			assert.Zero(t, p)
			assert.Contains(t, err.Error(), tt.errText)

			var acqErr *apperr.AcquisitionError
			require.True(t, errors.As(err, &acqErr))
			assert.Equal(t, "ds", acqErr.Dataset)
			assert.Empty(t, archiveFiles(root))
			assert.LessOrEqual(t, tt.fetcher.calls, 1, "no retries")
		})
	}
}

func TestUnzip_RejectsEscapingEntries(t *testing.T) {
	dir := t.TempDir()
	archive := filepath.Join(dir, "evil.zip")
	require.NoError(t, os.WriteFile(archive, zipBytes(t, map[string]string{"../evil.txt": "x"}), 0o644))

	dest := filepath.Join(dir, "out")
	err := Unzip(archive, dest)
	require.Error(t, err)
	assert.NoFileExists(t, filepath.Join(dir, "evil.txt"))
}

func TestUnzip_Overwrites(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "out", "ds", "train_data.csv")
	require.NoError(t, os.MkdirAll(filepath.Dir(target), 0o755))
	require.NoError(t, os.WriteFile(target, []byte("stale"), 0o644))

	archive := filepath.Join(dir, "ds.zip")
	require.NoError(t, os.WriteFile(archive, zipBytes(t, map[string]string{"ds/train_data.csv": "fresh"}), 0o644))

	require.NoError(t, Unzip(archive, filepath.Join(dir, "out")))
	content, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Equal(t, "fresh", string(content))
}

func TestHTTPFetcher(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/missing.zip" {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write([]byte("archive-bytes"))
	}))
	defer srv.Close()

	f := NewHTTPFetcher(srv.Client())

	var buf bytes.Buffer
	require.NoError(t, f.Fetch(context.Background(), srv.URL+"/ds.zip", &buf))
	assert.Equal(t, "archive-bytes", buf.String())

	err := f.Fetch(context.Background(), srv.URL+"/missing.zip", io.Discard)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unexpected status 404")
}

type fakeS3 struct {
	bucket, key string
	body        string
}

func (f *fakeS3) GetObject(_ context.Context, in *s3.GetObjectInput, _ ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	f.bucket = *in.Bucket
	f.key = *in.Key
	return &s3.GetObjectOutput{Body: io.NopCloser(strings.NewReader(f.body))}, nil
}

func TestS3Fetcher(t *testing.T) {
	client := &fakeS3{body: "zip"}
	f := NewS3Fetcher(client)

	var buf bytes.Buffer
	require.NoError(t, f.Fetch(context.Background(), "s3://bench-data/datasets/adult.zip", &buf))
	assert.Equal(t, "bench-data", client.bucket)
	assert.Equal(t, "datasets/adult.zip", client.key)
	assert.Equal(t, "zip", buf.String())
}

func TestParseS3Location(t *testing.T) {
	tests := []struct {
		location string
		bucket   string
		key      string
		wantErr  bool
	}{
		{location: "s3://b/k.zip", bucket: "b", key: "k.zip"},
		{location: "s3://b/dir/k.zip", bucket: "b", key: "dir/k.zip"},
		{location: "s3://b", wantErr: true},
		{location: "https://b/k.zip", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.location, func(t *testing.T) {
			bucket, key, err := ParseS3Location(tt.location)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.bucket, bucket)
			assert.Equal(t, tt.key, key)
		})
	}
}

func TestDefaultFetchers(t *testing.T) {
	f := DefaultFetchers(nil)
	assert.Contains(t, f, "http")
	assert.Contains(t, f, "https")
	assert.NotContains(t, f, "s3")

	f = DefaultFetchers(NewS3Fetcher(&fakeS3{}))
	assert.Contains(t, f, "s3")
}
