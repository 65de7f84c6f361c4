package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"DocLens/internal/domain"
	"DocLens/internal/metrics"
	"DocLens/internal/ports"
)

// PipelineDeps wires all driven adapters into the orchestration pipeline.
type PipelineDeps struct {
	Fetcher ports.DocumentFetcher
	Judge   ports.Judge
	Preview ports.PreviewExtractor
	Logger  *slog.Logger

	// Now and NewRunID default to time.Now and uuid.NewString.
	Now      func() time.Time
	NewRunID func() string
}

// Pipeline implements the reader → evaluator workflow. It holds no
// per-run state, so Run may be called concurrently.
type Pipeline struct {
	fetcher  ports.DocumentFetcher
	judge    ports.Judge
	preview  ports.PreviewExtractor
	logger   *slog.Logger
	now      func() time.Time
	newRunID func() string
}

// NewPipeline constructs the orchestration component.
func NewPipeline(deps PipelineDeps) *Pipeline {
	p := &Pipeline{
		fetcher:  deps.Fetcher,
		judge:    deps.Judge,
		preview:  deps.Preview,
		logger:   deps.Logger,
		now:      deps.Now,
		newRunID: deps.NewRunID,
	}
	if p.logger == nil {
		p.logger = slog.New(slog.DiscardHandler)
	}
	if p.now == nil {
		p.now = time.Now
	}
	if p.newRunID == nil {
		p.newRunID = uuid.NewString
	}
	return p
}

// Run fetches sourceURL, scores it and asks the judge for a verdict. It
// always returns a complete report: fetch and judgment failures are recorded
// in it rather than returned.
func (p *Pipeline) Run(ctx context.Context, sourceURL, domainKeywords string) domain.Report {
	runID := p.newRunID()
	log := p.logger.With("run_id", runID)

	report := domain.Report{
		RunID:          runID,
		SourceURL:      sourceURL,
		DomainKeywords: domainKeywords,
		StartedAt:      p.now(),
	}

	log.Info("pipeline state", "state", domain.StateFetching, "url", sourceURL)
	fetched := p.fetch(ctx, sourceURL, domainKeywords)
	report.Fetch = fetched
	if fetched.Failed() {
		log.Warn("fetch failed, continuing with degraded input", "kind", fetched.ErrorKind, "error", *fetched.Error)
	}

	log.Info("pipeline state", "state", domain.StateEvaluating)
	text := fetched.Text()
	report.Metrics = metrics.Compute(text, fetched.DomainKeywords)
	if report.Metrics.Fallback() {
		log.Debug("metrics fell back", "kind", report.Metrics.FallbackKind, "reasoning", report.Metrics.Reasoning)
	} else {
		log.Debug("metrics computed", "composite", report.Metrics.CompositeScore, "words", report.Metrics.Metrics.WordCount)
	}

	report.Preview = p.extractPreview(log, text)

	input := domain.JudgeInput{
		DocumentText:   text,
		DomainKeywords: fetched.DomainKeywords,
		Metrics:        report.Metrics,
		Preview:        report.Preview,
	}
	if fetched.Failed() {
		input.FetchError = *fetched.Error
	}

	evaluation, err := p.evaluate(ctx, input)
	if err != nil {
		report.JudgmentError = classify(err)
		log.Warn("judgment failed", "kind", report.JudgmentError.Kind, "error", report.JudgmentError.Message)
	} else {
		report.Evaluation = &evaluation
		log.Info("judgment complete",
			"verdict", evaluation.Originality.Verdict,
			"risk_level", evaluation.RiskDNA.RiskLevel)
	}

	report.FinishedAt = p.now()
	log.Info("pipeline state", "state", domain.StateDone, "elapsed", report.FinishedAt.Sub(report.StartedAt))
	return report
}

func (p *Pipeline) fetch(ctx context.Context, sourceURL, domainKeywords string) domain.FetchResult {
	if p.fetcher == nil {
		return domain.FetchFailed(domain.KindUnexpectedFetch, "Unexpected error: document fetcher is not configured", domainKeywords)
	}
	return p.fetcher.Fetch(ctx, sourceURL, domainKeywords)
}

func (p *Pipeline) extractPreview(log *slog.Logger, text *string) *domain.Preview {
	if p.preview == nil || text == nil {
		return nil
	}
	preview, err := p.preview.Extract(*text)
	if err != nil {
		log.Debug("preview extraction failed", "error", err)
		return nil
	}
	if preview.Empty() {
		return nil
	}
	return &preview
}

func (p *Pipeline) evaluate(ctx context.Context, input domain.JudgeInput) (report domain.EvaluationReport, err error) {
	if p.judge == nil {
		return domain.EvaluationReport{}, domain.Errorf(domain.KindJudgmentUnavailable, "judge is not configured")
	}

	defer func() {
		if r := recover(); r != nil {
			err = domain.Errorf(domain.KindJudgmentUnavailable, "judge panicked: %v", r)
		}
	}()

	report, err = p.judge.Judge(ctx, input)
	if err != nil {
		return domain.EvaluationReport{}, fmt.Errorf("judge: %w", err)
	}
	return report, nil
}

func classify(err error) *domain.Error {
	var de *domain.Error
	if errors.As(err, &de) {
		return &domain.Error{Kind: de.Kind, Message: de.Message}
	}
	return domain.NewError(domain.KindJudgmentUnavailable, err)
}
