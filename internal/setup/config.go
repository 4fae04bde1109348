package setup

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/povarna/generative-ai-agents/guard-agent/internal/prompt"
)

// Config is read once at startup. Required keys fail hard with a named
// error instead of being defaulted; a misconfigured classifier must not
// start.
type Config struct {
	AWSRegion    string
	ModelID      string
	MaxTokens    int
	Temperature  float64
	PromptBucket string
	// PromptOverrideKey is the deploy-time default override key. Lower
	// precedence than a per-request key; empty means default template.
	PromptOverrideKey string
	LogLevel          string
	APIPort           string
}

func LoadConfig() (*Config, error) {
	modelID, err := requireEnv("MODEL_ID")
	if err != nil {
		return nil, err
	}

	maxTokens, err := requireEnvInt("MAX_TOKENS")
	if err != nil {
		return nil, err
	}

	temperature, err := requireEnvFloat("TEMPERATURE")
	if err != nil {
		return nil, err
	}

	promptBucket, err := requireEnv("PROMPT_BUCKET")
	if err != nil {
		return nil, err
	}

	overrideKey := strings.TrimSpace(os.Getenv("PROMPT_OVERRIDE_KEY"))
	if err := prompt.ValidateOverrideKey(overrideKey); err != nil {
		return nil, fmt.Errorf("PROMPT_OVERRIDE_KEY: %w", err)
	}

	return &Config{
		AWSRegion:         getEnv("AWS_REGION", "us-east-1"),
		ModelID:           modelID,
		MaxTokens:         maxTokens,
		Temperature:       temperature,
		PromptBucket:      promptBucket,
		PromptOverrideKey: overrideKey,
		LogLevel:          getEnv("LOG_LEVEL", "info"),
		APIPort:           getEnv("GUARD_AGENT_API_PORT", "18082"),
	}, nil
}

func requireEnv(key string) (string, error) {
	value := os.Getenv(key)
	if value == "" {
		return "", fmt.Errorf("missing required environment variable %s", key)
	}
	return value, nil
}

func requireEnvInt(key string) (int, error) {
	raw, err := requireEnv(key)
	if err != nil {
		return 0, err
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid value for %s: %q is not an integer", key, raw)
	}
	return value, nil
}

func requireEnvFloat(key string) (float64, error) {
	raw, err := requireEnv(key)
	if err != nil {
		return 0, err
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid value for %s: %q is not a number", key, raw)
	}
	return value, nil
}

func getEnv(key string, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		value = defaultValue
	}

	return value
}
