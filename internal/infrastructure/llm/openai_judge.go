package llm

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"

	"DocLens/internal/config"
	"DocLens/internal/domain"
	"DocLens/internal/judgment"
	"DocLens/internal/ports"
)

// OpenAIJudge implements ports.Judge backed by OpenAI-compatible chat APIs.
type OpenAIJudge struct {
	client       openai.Client
	model        string
	apiKey       string
	systemPrompt string
	temperature  float64
	truncator    judgment.Truncator
	logger       *slog.Logger
}

var _ ports.Judge = (*OpenAIJudge)(nil)

// NewOpenAIJudge builds a judge from configuration. Extra request options are
// appended after the configured ones.
func NewOpenAIJudge(cfg config.OpenAIConfig, judgeCfg config.JudgeConfig, log *slog.Logger, extra ...option.RequestOption) *OpenAIJudge {
	opts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		option.WithMaxRetries(0),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}
	if judgeCfg.Timeout > 0 {
		opts = append(opts, option.WithRequestTimeout(judgeCfg.Timeout))
	}
	opts = append(opts, extra...)

	return &OpenAIJudge{
		client:       openai.NewClient(opts...),
		model:        cfg.Model,
		apiKey:       cfg.APIKey,
		systemPrompt: cfg.SystemPrompt,
		temperature:  cfg.Temperature,
		truncator:    judgment.NewTruncator(cfg.Model, judgeCfg.MaxDocumentTokens),
		logger:       log,
	}
}

// Judge sends the evaluation prompt and validates the JSON verdict.
func (j *OpenAIJudge) Judge(ctx context.Context, input domain.JudgeInput) (domain.EvaluationReport, error) {
	if j == nil {
		return domain.EvaluationReport{}, domain.Errorf(domain.KindJudgmentUnavailable, "openai judge is nil")
	}
	if j.apiKey == "" || j.model == "" {
		return domain.EvaluationReport{}, domain.Errorf(domain.KindJudgmentUnavailable, "openai judge misconfigured")
	}

	var document string
	if input.DocumentText != nil {
		var truncated bool
		document, truncated = j.truncator.Truncate(*input.DocumentText)
		if truncated {
			j.debug("document truncated for prompt", "model", j.model, "original_bytes", len(*input.DocumentText), "sent_bytes", len(document))
		}
	}

	params := openai.ChatCompletionNewParams{
		Model: j.model,
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(safePrompt(j.systemPrompt)),
			openai.UserMessage(judgment.BuildPrompt(input, document)),
		},
		ResponseFormat: openai.ChatCompletionNewParamsResponseFormatUnion{
			OfJSONObject: &openai.ResponseFormatJSONObjectParam{},
		},
	}
	if j.temperature != 0 {
		params.Temperature = openai.Float(j.temperature)
	}

	resp, err := j.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return domain.EvaluationReport{}, domain.NewError(domain.KindJudgmentUnavailable, fmt.Errorf("chat completion: %w", err))
	}
	if len(resp.Choices) == 0 {
		return domain.EvaluationReport{}, domain.Errorf(domain.KindJudgmentFormat, "chat completion returned no choices")
	}

	j.debug("judge responded", "model", resp.Model, "prompt_tokens", resp.Usage.PromptTokens, "completion_tokens", resp.Usage.CompletionTokens)
	return judgment.ParseEvaluation(resp.Choices[0].Message.Content)
}

func safePrompt(prompt string) string {
	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return "You evaluate documents for originality and structural risk. Reply with JSON only."
	}
	return prompt
}

func (j *OpenAIJudge) debug(msg string, args ...interface{}) {
	if j.logger != nil {
		j.logger.Debug(msg, args...)
	}
}
