package setup

import (
	"context"
	"fmt"

	"github.com/povarna/generative-ai-agents/guard-agent/internal/analyzer"
	"github.com/povarna/generative-ai-agents/guard-agent/internal/llm/bedrock"
	"github.com/povarna/generative-ai-agents/guard-agent/internal/prompt"
	"github.com/povarna/generative-ai-agents/guard-agent/internal/setup/logger"
	"github.com/povarna/generative-ai-agents/guard-agent/internal/storage/s3"
	"github.com/rs/zerolog"
)

type Dependencies struct {
	Analyzer *analyzer.Analyzer
	Logger   *zerolog.Logger
}

func Wire(ctx context.Context, cfg *Config, base *zerolog.Logger) (*Dependencies, error) {
	lg := logger.WithLevel(*base, cfg.LogLevel)

	bedrockClient, err := bedrock.NewClient(ctx, cfg.AWSRegion, cfg.ModelID)
	if err != nil {
		return nil, fmt.Errorf("failed to create Bedrock client: %w", err)
	}

	fetcher, err := s3.NewClient(ctx, cfg.AWSRegion, cfg.PromptBucket)
	if err != nil {
		return nil, fmt.Errorf("failed to create S3 client: %w", err)
	}

	source := prompt.NewSource(fetcher, cfg.PromptOverrideKey, &lg)
	anl := analyzer.New(source, bedrockClient, cfg.MaxTokens, cfg.Temperature, &lg)

	return &Dependencies{
		Analyzer: anl,
		Logger:   &lg,
	}, nil
}
