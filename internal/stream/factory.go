package stream

import (
	"context"
	"fmt"

	"github.com/povarna/generative-ai-agents/guard-agent/internal/analyzer"
	guardredis "github.com/povarna/generative-ai-agents/guard-agent/internal/redis"
	"github.com/povarna/generative-ai-agents/guard-agent/internal/stream/redis"
	"github.com/rs/zerolog"
)

func NewStreamConsumer(
	ctx context.Context,
	settings *Settings,
	a *analyzer.Analyzer,
	logger *zerolog.Logger,
) (Consumer, error) {

	switch settings.Provider {
	case "redis":
		client, err := guardredis.Connect(ctx, settings.Redis.Addr, settings.Redis.Password, 5)
		if err != nil {
			return nil, err
		}

		return redis.NewConsumer(
			client,
			settings.Redis.RequestStream,
			settings.Redis.ResultStream,
			settings.Redis.Group,
			settings.Redis.Consumer,
			a,
			logger,
		), nil

	// Future providers:
	// case "kafka":
	//     return kafka.NewConsumer(...)

	default:
		return nil, fmt.Errorf("unsupported stream provider: %s", settings.Provider)
	}
}
