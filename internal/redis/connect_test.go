package redis

import (
	"context"
	"errors"
	"strings"
	"testing"
)

func TestConnectUnreachableExhaustsRetries(t *testing.T) {
	// Port 1 is reserved; nothing listens there.
	client, err := Connect(context.Background(), "127.0.0.1:1", "", 1)
	if err == nil {
		client.Close()
		t.Fatal("expected error for unreachable address, got nil")
	}
	if !strings.Contains(err.Error(), "after 1 attempts") {
		t.Errorf("error = %q, want attempt count in message", err)
	}
}

func TestConnectStopsOnCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Connect(ctx, "127.0.0.1:1", "", 3)
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if !errors.Is(err, context.Canceled) {
		t.Errorf("error = %v, want context.Canceled", err)
	}
}
