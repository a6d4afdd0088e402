// Package fetcher retrieves raw page documents over HTTP.
package fetcher

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

// ErrFetchFailure wraps every failure to retrieve page content.
var ErrFetchFailure = errors.New("fetch failure")

const userAgent = "pagebrief/1.0 (+content summarizer)"

// maxBodyBytes bounds response reads. Pages larger than this are cut off;
// the extractor truncates far below it anyway.
const maxBodyBytes = 4 << 20

type Fetcher struct {
	client *http.Client
}

func NewFetcher() *Fetcher {
	return &Fetcher{
		client: &http.Client{Timeout: 30 * time.Second},
	}
}

// GetHTML fetches a URL and returns the raw document body. Non-2xx status
// codes and transport errors are reported as ErrFetchFailure.
func (f *Fetcher) GetHTML(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("%w: invalid request for %s: %v", ErrFetchFailure, url, err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml")

	resp, err := f.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrFetchFailure, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("%w: status code %d for %s", ErrFetchFailure, resp.StatusCode, url)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return "", fmt.Errorf("%w: failed to read response body: %v", ErrFetchFailure, err)
	}
	return string(body), nil
}
