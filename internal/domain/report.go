package domain

import "time"

// PipelineState enumerates pipeline milestones.
type PipelineState string

const (
	StateFetching   PipelineState = "fetching"
	StateEvaluating PipelineState = "evaluating"
	StateDone       PipelineState = "done"
)

// JudgeInput is everything the judgment step may consider.
type JudgeInput struct {
	DocumentText   *string      `json:"document_text"`
	DomainKeywords string       `json:"domain_keywords"`
	Metrics        MetricReport `json:"metrics"`
	Preview        *Preview     `json:"preview,omitempty"`
	FetchError     string       `json:"fetch_error,omitempty"`
}

// Report aggregates one pipeline invocation.
type Report struct {
	RunID          string            `json:"run_id"`
	SourceURL      string            `json:"source_url"`
	DomainKeywords string            `json:"domain_keywords"`
	Fetch          FetchResult       `json:"fetch"`
	Preview        *Preview          `json:"preview"`
	Metrics        MetricReport      `json:"metrics"`
	Evaluation     *EvaluationReport `json:"evaluation"`
	JudgmentError  *Error            `json:"judgment_error"`
	StartedAt      time.Time         `json:"started_at"`
	FinishedAt     time.Time         `json:"finished_at"`
}
