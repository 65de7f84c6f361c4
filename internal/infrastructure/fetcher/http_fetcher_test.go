package fetcher

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"DocLens/internal/config"
	"DocLens/internal/domain"
)

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(r *http.Request) (*http.Response, error) { return f(r) }

func testConfig() config.FetcherConfig {
	return config.Default().Fetcher
}

func TestFetchMissingURLMakesNoRequest(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	client := &http.Client{Transport: roundTripFunc(func(*http.Request) (*http.Response, error) {
		calls.Add(1)
		return nil, nil
	})}

	res := NewHTTPFetcher(testConfig(), client, nil).Fetch(context.Background(), "", "finance, treasury")

	assert.Nil(t, res.DocumentText)
	require.NotNil(t, res.Error)
	assert.Equal(t, "Missing source_url", *res.Error)
	assert.Equal(t, domain.KindMissingInput, res.ErrorKind)
	assert.Equal(t, "finance, treasury", res.DomainKeywords)
	assert.Zero(t, calls.Load())
}

func TestFetchReturnsRawBodyAndSendsHeaders(t *testing.T) {
	t.Parallel()

	const page = "<html><head><title>Proposal</title></head><body>Treasury ask</body></html>"
	headers := make(chan http.Header, 4)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		headers <- r.Header.Clone()
		_, _ = w.Write([]byte(page))
	}))
	defer server.Close()

	target := server.URL + "/proposal/42"
	res := NewHTTPFetcher(testConfig(), server.Client(), nil).Fetch(context.Background(), target, "cardano")

	require.Nil(t, res.Error)
	require.NotNil(t, res.DocumentText)
	assert.Equal(t, page, *res.DocumentText)
	assert.Equal(t, "cardano", res.DomainKeywords)
	require.Len(t, headers, 1)
	got := <-headers
	assert.Contains(t, got.Get("User-Agent"), "Mozilla/5.0")
	assert.Equal(t, "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8", got.Get("Accept"))
	assert.Equal(t, target, got.Get("Referer"))
}

func TestFetchNonSuccessStatus(t *testing.T) {
	t.Parallel()

	var hits atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer server.Close()

	res := NewHTTPFetcher(testConfig(), server.Client(), nil).Fetch(context.Background(), server.URL, "kw")

	assert.Nil(t, res.DocumentText)
	require.NotNil(t, res.Error)
	assert.True(t, strings.HasPrefix(*res.Error, "HTTP error: 404 Not Found"), *res.Error)
	assert.Equal(t, domain.KindTransport, res.ErrorKind)
	assert.EqualValues(t, 1, hits.Load(), "no retries")
}

func TestFetchTimeout(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	defer server.Close()

	cfg := testConfig()
	cfg.Timeout = 50 * time.Millisecond

	start := time.Now()
	res := NewHTTPFetcher(cfg, nil, nil).Fetch(context.Background(), server.URL, "kw")

	assert.Less(t, time.Since(start), time.Second)
	assert.Nil(t, res.DocumentText)
	require.NotNil(t, res.Error)
	assert.Equal(t, "Request timed out", *res.Error)
	assert.Equal(t, domain.KindTimeout, res.ErrorKind)
}

func TestFetchConnectionRefused(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.NotFoundHandler())
	addr := server.URL
	server.Close()

	res := NewHTTPFetcher(testConfig(), nil, nil).Fetch(context.Background(), addr, "kw")

	require.NotNil(t, res.Error)
	assert.True(t, strings.HasPrefix(*res.Error, "HTTP error: "), *res.Error)
	assert.Equal(t, domain.KindTransport, res.ErrorKind)
}

func TestFetchRecoversFromPanics(t *testing.T) {
	t.Parallel()

	client := &http.Client{Transport: roundTripFunc(func(*http.Request) (*http.Response, error) {
		panic("transport blew up")
	})}

	res := NewHTTPFetcher(testConfig(), client, nil).Fetch(context.Background(), "http://example.invalid/doc", "kw")

	require.NotNil(t, res.Error)
	assert.Equal(t, "Unexpected error: transport blew up", *res.Error)
	assert.Equal(t, domain.KindUnexpectedFetch, res.ErrorKind)
	assert.Equal(t, "kw", res.DomainKeywords)
}
