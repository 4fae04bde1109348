package llm

import (
	"context"
)

//go:generate mockgen -destination=../analyzer/mocks/client_mock.go -package=mocks github.com/povarna/generative-ai-agents/guard-agent/internal/llm Client

// Client is an interface for invoking the text generation model.
// This allows mocking in tests without making real API calls.
type Client interface {
	Converse(ctx context.Context, request Request) (*Response, error)
}
