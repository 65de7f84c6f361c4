package fetcher

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"time"

	"DocLens/internal/config"
	"DocLens/internal/domain"
	"DocLens/internal/ports"
)

const (
	missingURLMessage = "Missing source_url"
	timeoutMessage    = "Request timed out"
)

// HTTPFetcher downloads raw document bodies with a single GET per call.
type HTTPFetcher struct {
	client    *http.Client
	userAgent string
	accept    string
	logger    *slog.Logger
}

var _ ports.DocumentFetcher = (*HTTPFetcher)(nil)

// NewHTTPFetcher wires an HTTP client; a nil client gets one bounded by cfg.Timeout.
func NewHTTPFetcher(cfg config.FetcherConfig, client *http.Client, log *slog.Logger) *HTTPFetcher {
	if client == nil {
		client = &http.Client{Timeout: cfg.Timeout}
	}
	return &HTTPFetcher{
		client:    client,
		userAgent: cfg.UserAgent,
		accept:    cfg.Accept,
		logger:    log,
	}
}

// Fetch returns the body of sourceURL as-is. Failures are reported in the
// result, never returned or panicked; keywords are echoed untouched.
func (f *HTTPFetcher) Fetch(ctx context.Context, sourceURL, keywords string) (result domain.FetchResult) {
	if sourceURL == "" {
		return domain.FetchFailed(domain.KindMissingInput, missingURLMessage, keywords)
	}

	defer func() {
		if r := recover(); r != nil {
			f.debug("fetch panicked", "url", sourceURL, "panic", r)
			result = domain.FetchFailed(domain.KindUnexpectedFetch, fmt.Sprintf("Unexpected error: %v", r), keywords)
		}
	}()

	start := time.Now()
	body, err := f.get(ctx, sourceURL)
	if err != nil {
		f.debug("fetch failed", "url", sourceURL, "error", err, "elapsed", time.Since(start))
		if isTimeout(err) {
			return domain.FetchFailed(domain.KindTimeout, timeoutMessage, keywords)
		}
		return domain.FetchFailed(domain.KindTransport, fmt.Sprintf("HTTP error: %v", err), keywords)
	}

	f.debug("fetched document", "url", sourceURL, "bytes", len(body), "elapsed", time.Since(start))
	return domain.FetchSucceeded(string(body), keywords)
}

func (f *HTTPFetcher) get(ctx context.Context, sourceURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, sourceURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", f.accept)
	req.Header.Set("Referer", sourceURL)

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, fmt.Errorf("%s for url: %s", resp.Status, sourceURL)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	return body, nil
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

func (f *HTTPFetcher) debug(msg string, args ...interface{}) {
	if f.logger != nil {
		f.logger.Debug(msg, args...)
	}
}
