package analyzer

import (
	"context"

	"github.com/povarna/generative-ai-agents/guard-agent/internal/llm"
	"github.com/povarna/generative-ai-agents/guard-agent/internal/models"
	"github.com/povarna/generative-ai-agents/guard-agent/internal/prompt"
	"github.com/povarna/generative-ai-agents/guard-agent/internal/validator"
	"github.com/rs/zerolog"
)

// Analyzer runs one classification synchronously: resolve the template,
// assemble the prompt, invoke the model, validate its output, resolve
// the verdict. It is stateless apart from the injected prompt source.
type Analyzer struct {
	source      *prompt.Source
	llmClient   llm.Client
	maxTokens   int
	temperature float64
	logger      *zerolog.Logger
}

func New(
	source *prompt.Source,
	llmClient llm.Client,
	maxTokens int,
	temperature float64,
	logger *zerolog.Logger,
) *Analyzer {
	return &Analyzer{
		source:      source,
		llmClient:   llmClient,
		maxTokens:   maxTokens,
		temperature: temperature,
		logger:      logger,
	}
}

// Analyze classifies the request's user input. Errors returned here are
// pipeline faults (invalid override key, missing template, transport or
// envelope failures) and must surface to the caller. A malformed model
// opinion is not an error: it resolves into a safe=false verdict with a
// machine-stated reason.
func (a *Analyzer) Analyze(ctx context.Context, request models.AnalyzeRequest) (models.Verdict, error) {
	template, err := a.source.Load(ctx, request.PromptOverrideKey)
	if err != nil {
		return models.Verdict{}, err
	}

	fullPrompt := prompt.Assemble(template, request.UserInput)

	// The complete model input is recorded before submission.
	a.logger.Info().
		Int("length", len(fullPrompt)).
		Str("prompt", fullPrompt).
		Msg("Model input")

	response, err := a.llmClient.Converse(ctx, llm.Request{
		Prompt:      fullPrompt,
		MaxTokens:   a.maxTokens,
		Temperature: a.temperature,
	})
	if err != nil {
		return models.Verdict{}, err
	}

	a.logger.Info().
		Str("stop_reason", response.StopReason).
		Str("output", response.Content).
		Msg("Model output")

	outcome := validator.Validate(response.Content)
	if !outcome.Accepted {
		a.logger.Warn().
			Str("code", string(outcome.Code)).
			Str("reason", outcome.Message).
			Msg("Model output failed validation, failing closed")
	}

	return validator.Resolve(outcome), nil
}
