package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const (
	dialTimeout    = 5 * time.Second
	pingTimeout    = 3 * time.Second
	maxBackoff     = 8 * time.Second
	initialBackoff = time.Second
)

// Connect builds a Redis client and verifies the connection with a ping
// before handing it out. maxRetries bounds both the startup ping loop and
// the client's own per-command retries.
func Connect(ctx context.Context, addr string, password string, maxRetries int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         addr,
		Password:     password,
		MaxRetries:   maxRetries,
		DialTimeout:  dialTimeout,
		ReadTimeout:  pingTimeout,
		WriteTimeout: pingTimeout,
	})

	backoff := initialBackoff
	var err error
	for attempt := 1; attempt <= maxRetries; attempt++ {
		if attempt > 1 {
			log.Info().Dur("backoff", backoff).Msg("Waiting before Redis retry")
			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
			if backoff < maxBackoff {
				backoff *= 2
			}
		}

		log.Info().Str("addr", addr).Int("attempt", attempt).Int("max_retries", maxRetries).Msg("Connecting to Redis")

		pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
		err = client.Ping(pingCtx).Err()
		cancel()
		if err == nil {
			log.Info().Int("attempts_needed", attempt).Msg("Redis connected")
			return client, nil
		}

		log.Warn().Err(err).Int("attempt", attempt).Msg("Redis ping failed")
	}

	return nil, fmt.Errorf("failed to connect to Redis after %d attempts: %w", maxRetries, err)
}
