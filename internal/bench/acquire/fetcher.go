package acquire

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Fetcher copies the object at location into w.
type Fetcher interface {
	Fetch(ctx context.Context, location string, w io.Writer) error
}

type FetcherFunc func(ctx context.Context, location string, w io.Writer) error

func (f FetcherFunc) Fetch(ctx context.Context, location string, w io.Writer) error {
	return f(ctx, location, w)
}

type HTTPFetcher struct {
	client *http.Client
}

func NewHTTPFetcher(client *http.Client) *HTTPFetcher {
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Minute}
	}
	return &HTTPFetcher{client: client}
}

func (f *HTTPFetcher) Fetch(ctx context.Context, location string, w io.Writer) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, location, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	resp, err := f.client.Do(req)
	if err != nil {
		return fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d from %s", resp.StatusCode, location)
	}
	if _, err := io.Copy(w, resp.Body); err != nil {
		return fmt.Errorf("download body: %w", err)
	}
	return nil
}

// DefaultFetchers wires the HTTP fetcher for http and https and, when s3 is
// non-nil, the S3 fetcher for s3 locations.
func DefaultFetchers(s3 *S3Fetcher) map[string]Fetcher {
	httpFetcher := NewHTTPFetcher(nil)
	fetchers := map[string]Fetcher{
		"http":  httpFetcher,
		"https": httpFetcher,
	}
	if s3 != nil {
		fetchers["s3"] = s3
	}
	return fetchers
}
