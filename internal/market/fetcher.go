package market

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/thecryptoview/cryptoview-api/pkg/metrics"
)

const (
	pricesContentType = "application/json"
	newsContentType   = "application/rss+xml"
)

// Fetcher retrieves market data from the upstream providers. Bodies are
// relayed to callers as-is; only the content type is pinned per provider.
type Fetcher interface {
	FetchPrices(ctx context.Context) (body []byte, contentType string, err error)
	FetchNews(ctx context.Context) (body []byte, contentType string, err error)
}

// HTTPFetcher fetches prices and news with a single outbound GET per call.
// There is no retry; transport errors, timeouts and non-2xx statuses all
// collapse into a plain error the executor reports as an upstream failure.
type HTTPFetcher struct {
	client    *http.Client
	pricesURL string
	newsURL   string
}

// NewHTTPFetcher creates a fetcher for the given upstream URLs.
func NewHTTPFetcher(pricesURL, newsURL string, timeout time.Duration) *HTTPFetcher {
	return &HTTPFetcher{
		client:    &http.Client{Timeout: timeout},
		pricesURL: pricesURL,
		newsURL:   newsURL,
	}
}

func (f *HTTPFetcher) FetchPrices(ctx context.Context) ([]byte, string, error) {
	body, err := f.fetch(ctx, f.pricesURL, "prices")
	if err != nil {
		return nil, "", err
	}
	return body, pricesContentType, nil
}

func (f *HTTPFetcher) FetchNews(ctx context.Context) ([]byte, string, error) {
	body, err := f.fetch(ctx, f.newsURL, "news")
	if err != nil {
		return nil, "", err
	}
	return body, newsContentType, nil
}

func (f *HTTPFetcher) fetch(ctx context.Context, url, provider string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build upstream request: %w", err)
	}
	resp, err := f.client.Do(req)
	if err != nil {
		metrics.UpstreamFetches.WithLabelValues(provider, "error").Inc()
		return nil, fmt.Errorf("upstream fetch: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		metrics.UpstreamFetches.WithLabelValues(provider, "error").Inc()
		return nil, fmt.Errorf("upstream returned status %d", resp.StatusCode)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		metrics.UpstreamFetches.WithLabelValues(provider, "error").Inc()
		return nil, fmt.Errorf("read upstream body: %w", err)
	}
	metrics.UpstreamFetches.WithLabelValues(provider, "ok").Inc()
	return body, nil
}
