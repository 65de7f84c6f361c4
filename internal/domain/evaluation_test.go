package domain

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validReport() EvaluationReport {
	return EvaluationReport{
		Originality: Originality{OriginalityScore: 0.8, Verdict: VerdictOriginal, Reasoning: "varied tone"},
		RiskDNA: RiskDNA{
			StructureScore:  0.6,
			RiskLevel:       RiskMedium,
			Issues:          []string{"no budget breakdown"},
			Recommendations: []string{},
		},
	}
}

func TestEvaluationReportValidate(t *testing.T) {
	t.Parallel()

	require.NoError(t, validReport().Validate())

	cases := map[string]func(r *EvaluationReport){
		"score above one":     func(r *EvaluationReport) { r.Originality.OriginalityScore = 1.2 },
		"negative structure":  func(r *EvaluationReport) { r.RiskDNA.StructureScore = -0.1 },
		"nan score":           func(r *EvaluationReport) { r.RiskDNA.StructureScore = math.NaN() },
		"unknown verdict":     func(r *EvaluationReport) { r.Originality.Verdict = "plagiarised" },
		"unknown risk":        func(r *EvaluationReport) { r.RiskDNA.RiskLevel = "critical" },
		"missing issues":      func(r *EvaluationReport) { r.RiskDNA.Issues = nil },
		"missing suggestions": func(r *EvaluationReport) { r.RiskDNA.Recommendations = nil },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			r := validReport()
			mutate(&r)
			assert.Error(t, r.Validate())
		})
	}
}

func TestParseVerdictIsCaseInsensitive(t *testing.T) {
	t.Parallel()

	v, err := ParseVerdict("  Possibly AI-Generated ")
	require.NoError(t, err)
	assert.Equal(t, VerdictPossiblyAI, v)

	l, err := ParseRiskLevel("HIGH")
	require.NoError(t, err)
	assert.Equal(t, RiskHigh, l)
}

func TestErrorMatchesSentinelByKind(t *testing.T) {
	t.Parallel()

	err := Errorf(KindTimeout, "deadline after %s", "15s")
	assert.True(t, errors.Is(err, ErrTimeout))
	assert.False(t, errors.Is(err, ErrTransport))
	assert.Equal(t, "timeout: deadline after 15s", err.Error())

	res := FetchFailed(KindMissingInput, "Missing source_url", "gov")
	assert.Nil(t, res.Text())
	assert.ErrorIs(t, res.Err(), ErrMissingInput)
	assert.NoError(t, FetchSucceeded("body", "gov").Err())
}
