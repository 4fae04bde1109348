package prompt

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/rs/zerolog"
)

const (
	// RequiredKeyPrefix is where override templates live in the bucket.
	RequiredKeyPrefix = "custom_prompts/"
	// MaxKeyLength bounds override keys.
	MaxKeyLength = 1024

	// defaultCacheKey is the sentinel under which the built-in template
	// is memoized; it cannot collide with a real key because real keys
	// are non-empty and carry RequiredKeyPrefix.
	defaultCacheKey = "__default__"
)

var (
	// ErrInvalidKey marks override keys that fail validation. Surfaced
	// before any fetch is attempted.
	ErrInvalidKey = errors.New("invalid prompt override key")

	// ErrTemplateNotFound marks a validated key whose object does not
	// exist in remote storage. A deployment problem, never a verdict.
	ErrTemplateNotFound = errors.New("prompt template not found")
)

// Fetcher loads a template body from remote storage by key.
type Fetcher interface {
	Fetch(ctx context.Context, key string) (string, error)
}

// Source resolves prompt templates. Successful loads are cached per
// distinct key for the lifetime of the process and never invalidated;
// entries are immutable once written, so concurrent population races
// cost at most a redundant fetch, never a wrong value.
type Source struct {
	fetcher    Fetcher
	defaultKey string // deploy-time override key, lower precedence than per-request keys
	logger     *zerolog.Logger

	mu    sync.Mutex
	cache map[string]string
}

func NewSource(fetcher Fetcher, defaultKey string, logger *zerolog.Logger) *Source {
	return &Source{
		fetcher:    fetcher,
		defaultKey: defaultKey,
		logger:     logger,
		cache:      make(map[string]string),
	}
}

// ValidateOverrideKey enforces the override key invariants. An empty key
// is a valid value meaning "use the default template", not an error.
func ValidateOverrideKey(key string) error {
	if key == "" {
		return nil
	}
	if len(key) > MaxKeyLength {
		return fmt.Errorf("%w: longer than %d characters", ErrInvalidKey, MaxKeyLength)
	}
	if strings.ContainsRune(key, '\x00') {
		return fmt.Errorf("%w: contains NUL byte", ErrInvalidKey)
	}
	if !strings.HasPrefix(key, RequiredKeyPrefix) {
		return fmt.Errorf("%w: must start with %q", ErrInvalidKey, RequiredKeyPrefix)
	}
	if strings.Contains(key, "..") {
		return fmt.Errorf("%w: contains parent directory traversal", ErrInvalidKey)
	}
	if strings.HasSuffix(key, "/") {
		return fmt.Errorf("%w: names a directory, not a file", ErrInvalidKey)
	}
	return nil
}

// Load returns the template for the effective key. A non-nil request key
// wins over the deploy-time key, even when it is explicitly empty; an
// empty effective key selects the built-in default template. A cache hit
// never re-validates or re-fetches.
func (s *Source) Load(ctx context.Context, overrideKey *string) (string, error) {
	key := s.defaultKey
	if overrideKey != nil {
		key = strings.TrimSpace(*overrideKey)
	}

	cacheKey := key
	if key == "" {
		cacheKey = defaultCacheKey
	}

	s.mu.Lock()
	if template, ok := s.cache[cacheKey]; ok {
		s.mu.Unlock()
		return template, nil
	}
	s.mu.Unlock()

	if err := ValidateOverrideKey(key); err != nil {
		return "", err
	}

	template := DefaultTemplate
	if key != "" {
		fetched, err := s.fetcher.Fetch(ctx, key)
		if err != nil {
			return "", err
		}
		template = fetched
		s.logger.Info().Str("key", key).Int("length", len(template)).Msg("Loaded custom prompt template")
	} else {
		s.logger.Info().Int("length", len(template)).Msg("Using default prompt template")
	}

	s.mu.Lock()
	s.cache[cacheKey] = template
	s.mu.Unlock()

	return template, nil
}
