package crawler

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"ics-crawler/internal/metrics"
	"ics-crawler/internal/scraper"
)

// Fetcher retrieves one URL. Failures are reported inside the result, never
// as a separate error, so callers treat them like any other non-200 page.
type Fetcher interface {
	Fetch(ctx context.Context, u string) scraper.FetchResult
}

// HTTPFetcher is the default Fetcher.
type HTTPFetcher struct {
	client    *http.Client
	userAgent string
	maxBody   int64
}

// NewHTTPFetcher returns a fetcher with a hard per-request timeout and a
// capped body read.
func NewHTTPFetcher(timeout time.Duration, userAgent string, maxBody int64) *HTTPFetcher {
	return &HTTPFetcher{
		client:    &http.Client{Timeout: timeout},
		userAgent: userAgent,
		maxBody:   maxBody,
	}
}

func (f *HTTPFetcher) Fetch(ctx context.Context, u string) scraper.FetchResult {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return scraper.FetchResult{URL: u, Err: fmt.Errorf("build request: %w", err)}
	}
	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml;q=0.9,*/*;q=0.5")

	resp, err := f.client.Do(req)
	if err != nil {
		metrics.FetchStatus.WithLabelValues("0").Inc()
		return scraper.FetchResult{URL: u, Err: err}
	}
	defer resp.Body.Close()

	metrics.PagesFetched.Inc()
	metrics.FetchStatus.WithLabelValues(strconv.Itoa(resp.StatusCode)).Inc()

	res := scraper.FetchResult{URL: resp.Request.URL.String(), Status: resp.StatusCode}
	if resp.StatusCode != http.StatusOK {
		// drain a little so the connection can be reused
		_, _ = io.CopyN(io.Discard, resp.Body, 4<<10)
		res.Err = fmt.Errorf("unexpected status %s", resp.Status)
		return res
	}

	b, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBody))
	metrics.BytesFetched.Add(float64(len(b)))
	if err != nil {
		res.Err = fmt.Errorf("read body: %w", err)
		return res
	}
	res.Content = b
	return res
}
