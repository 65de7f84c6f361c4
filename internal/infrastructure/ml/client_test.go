package ml

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"DocLens/internal/domain"
)

func TestClientJudge(t *testing.T) {
	t.Parallel()

	received := make(chan domain.JudgeInput, 1)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/evaluate" || r.Header.Get("Authorization") != "Bearer secret" {
			http.Error(w, "bad request", http.StatusBadRequest)
			return
		}
		var in domain.JudgeInput
		_ = json.NewDecoder(r.Body).Decode(&in)
		received <- in
		_, _ = w.Write([]byte(`{"originality":{"originality_score":1,"verdict":"original","reasoning":"distinct voice"},` +
			`"risk_dna":{"structure_score":0.3,"risk_level":"LOW","issues":[],"recommendations":["Add a summary"]}}`))
	}))
	defer server.Close()

	text := "proposal"
	client := NewClient(server.URL+"/", "secret", time.Second)
	report, err := client.Judge(context.Background(), domain.JudgeInput{
		DocumentText:   &text,
		DomainKeywords: "dao",
		Metrics:        domain.MetricReport{CompositeScore: 0.4, Status: domain.MetricStatusOK},
	})
	require.NoError(t, err)

	assert.Equal(t, domain.VerdictOriginal, report.Originality.Verdict)
	assert.Equal(t, domain.RiskLow, report.RiskDNA.RiskLevel)

	in := <-received
	require.NotNil(t, in.DocumentText)
	assert.Equal(t, "proposal", *in.DocumentText)
	assert.Equal(t, "dao", in.DomainKeywords)
	assert.Equal(t, 0.4, in.Metrics.CompositeScore)
}

func TestClientJudgeFailures(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		_, _ = w.Write([]byte(`{"verdict": "original"}`))
	}))
	defer server.Close()

	_, err := NewClient(server.URL, "", time.Second).Judge(context.Background(), domain.JudgeInput{})
	assert.ErrorIs(t, err, domain.ErrJudgmentUnavailable)

	_, err = NewClient(server.URL, "key", time.Second).Judge(context.Background(), domain.JudgeInput{})
	assert.ErrorIs(t, err, domain.ErrJudgmentFormat)

	_, err = NewClient("", "key", time.Second).Judge(context.Background(), domain.JudgeInput{})
	assert.ErrorIs(t, err, domain.ErrJudgmentUnavailable)
}

func TestClientJudgeRejectsOversizedResponse(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(strings.Repeat(" ", maxResponseBytes+1)))
	}))
	defer server.Close()

	_, err := NewClient(server.URL, "", time.Second).Judge(context.Background(), domain.JudgeInput{})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrJudgmentUnavailable)
	assert.Contains(t, err.Error(), "response too large")
}
