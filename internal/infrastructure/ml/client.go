package ml

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"DocLens/internal/domain"
	"DocLens/internal/judgment"
	"DocLens/internal/ports"
)

const maxResponseBytes = 1 << 20

// Client talks to a self-hosted evaluation service that speaks the
// EvaluationReport contract directly.
type Client struct {
	endpoint string
	apiKey   string
	http     *http.Client
}

var _ ports.Judge = (*Client)(nil)

// NewClient creates a reusable HTTP client.
func NewClient(endpoint, apiKey string, timeout time.Duration) *Client {
	return &Client{
		endpoint: strings.TrimSuffix(endpoint, "/"),
		apiKey:   apiKey,
		http:     &http.Client{Timeout: timeout},
	}
}

// Judge posts the judge input to /evaluate and validates the verdict.
func (c *Client) Judge(ctx context.Context, input domain.JudgeInput) (domain.EvaluationReport, error) {
	if c == nil || c.endpoint == "" {
		return domain.EvaluationReport{}, domain.Errorf(domain.KindJudgmentUnavailable, "evaluation service misconfigured")
	}

	raw, err := c.post(ctx, "/evaluate", input)
	if err != nil {
		return domain.EvaluationReport{}, domain.NewError(domain.KindJudgmentUnavailable, err)
	}

	return judgment.ParseEvaluation(string(raw))
}

func (c *Client) post(ctx context.Context, path string, payload any) ([]byte, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint+path, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("do request: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		if closeErr := resp.Body.Close(); closeErr != nil {
			return nil, fmt.Errorf("unexpected status %s, close body: %v", resp.Status, closeErr)
		}
		return nil, fmt.Errorf("unexpected status %s: %s", resp.Status, strings.TrimSpace(string(snippet)))
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes+1))
	if err != nil {
		_ = resp.Body.Close()
		return nil, fmt.Errorf("read response: %w", err)
	}
	if len(data) > maxResponseBytes {
		_ = resp.Body.Close()
		return nil, fmt.Errorf("response too large: exceeds %d bytes", maxResponseBytes)
	}

	if err := resp.Body.Close(); err != nil {
		return nil, fmt.Errorf("close response body: %w", err)
	}

	return data, nil
}
