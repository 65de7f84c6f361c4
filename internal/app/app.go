package app

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"

	"DocLens/internal/config"
	"DocLens/internal/domain"
	"DocLens/internal/infrastructure/fetcher"
	"DocLens/internal/infrastructure/llm"
	"DocLens/internal/infrastructure/ml"
	"DocLens/internal/infrastructure/parser"
	"DocLens/internal/logging"
	"DocLens/internal/ports"
	"DocLens/internal/usecase"
)

// Application wires configs to use cases.
type Application struct {
	cfg      config.Config
	pipeline *usecase.Pipeline
	out      io.Writer
}

// New builds a runnable application instance writing reports to stdout.
func New(cfg config.Config, baseLogger *slog.Logger) *Application {
	if baseLogger == nil {
		baseLogger = logging.New(cfg.Logging.Level)
	}

	pipeline := usecase.NewPipeline(usecase.PipelineDeps{
		Fetcher: fetcher.NewHTTPFetcher(cfg.Fetcher, nil, baseLogger.With("component", "fetcher")),
		Judge:   newJudge(cfg, baseLogger),
		Preview: parser.NewHTMLPreview(),
		Logger:  baseLogger.With("component", "pipeline"),
	})
	return &Application{cfg: cfg, pipeline: pipeline, out: os.Stdout}
}

func newJudge(cfg config.Config, baseLogger *slog.Logger) ports.Judge {
	switch cfg.Judge.Provider {
	case config.ProviderOpenAI:
		if cfg.OpenAI.APIKey == "" {
			baseLogger.Warn("no OpenAI API key configured, judgment step disabled")
			return nil
		}
		return llm.NewOpenAIJudge(cfg.OpenAI, cfg.Judge, baseLogger.With("component", "judge.openai"))
	case config.ProviderHTTP:
		return ml.NewClient(cfg.Service.InferenceURL, cfg.Service.APIKey, cfg.Judge.Timeout)
	default:
		return nil
	}
}

// Evaluate runs a single pipeline invocation.
func (a *Application) Evaluate(ctx context.Context, sourceURL, domainKeywords string) domain.Report {
	return a.pipeline.Run(ctx, sourceURL, domainKeywords)
}

// Run evaluates one document and writes the report as indented JSON.
func (a *Application) Run(ctx context.Context, sourceURL, domainKeywords string) error {
	report := a.Evaluate(ctx, sourceURL, domainKeywords)

	enc := json.NewEncoder(a.out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(report); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}
