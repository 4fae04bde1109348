package stream

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadSettingsDefaults(t *testing.T) {
	t.Setenv("STREAM_CONFIG_PATH", filepath.Join(t.TempDir(), "missing.yaml"))
	t.Setenv("REDIS_ADDR", "")
	t.Setenv("REDIS_PASSWORD", "")
	t.Setenv("HOSTNAME", "worker-1")

	settings, err := LoadSettings()
	if err != nil {
		t.Fatalf("LoadSettings returned error: %v", err)
	}

	if settings.Provider != "redis" {
		t.Errorf("provider = %q, want redis", settings.Provider)
	}
	if settings.Redis.Addr != "localhost:6379" {
		t.Errorf("addr = %q, want localhost:6379", settings.Redis.Addr)
	}
	if settings.Redis.RequestStream != "guard-requests" {
		t.Errorf("request stream = %q, want guard-requests", settings.Redis.RequestStream)
	}
	if settings.Redis.ResultStream != "guard-verdicts" {
		t.Errorf("result stream = %q, want guard-verdicts", settings.Redis.ResultStream)
	}
	if settings.Redis.Group != "guard-group" {
		t.Errorf("group = %q, want guard-group", settings.Redis.Group)
	}
	if settings.Redis.Consumer != "worker-1" {
		t.Errorf("consumer = %q, want worker-1", settings.Redis.Consumer)
	}
}

func TestLoadSettingsFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "stream.yaml")
	content := []byte(`provider: redis
redis:
  addr: redis.internal:6380
  request_stream: incoming
  result_stream: outgoing
  group: analyzers
  consumer: analyzer-3
`)
	if err := os.WriteFile(path, content, 0o644); err != nil {
		t.Fatalf("writing config file: %v", err)
	}
	t.Setenv("STREAM_CONFIG_PATH", path)

	settings, err := LoadSettings()
	if err != nil {
		t.Fatalf("LoadSettings returned error: %v", err)
	}

	if settings.Redis.Addr != "redis.internal:6380" {
		t.Errorf("addr = %q, want redis.internal:6380", settings.Redis.Addr)
	}
	if settings.Redis.RequestStream != "incoming" {
		t.Errorf("request stream = %q, want incoming", settings.Redis.RequestStream)
	}
	if settings.Redis.ResultStream != "outgoing" {
		t.Errorf("result stream = %q, want outgoing", settings.Redis.ResultStream)
	}
	if settings.Redis.Consumer != "analyzer-3" {
		t.Errorf("consumer = %q, want analyzer-3", settings.Redis.Consumer)
	}
}

func TestLoadSettingsEnvFallback(t *testing.T) {
	t.Setenv("STREAM_CONFIG_PATH", filepath.Join(t.TempDir(), "missing.yaml"))
	t.Setenv("REDIS_ADDR", "redis.testing:6379")
	t.Setenv("REDIS_PASSWORD", "secret")

	settings, err := LoadSettings()
	if err != nil {
		t.Fatalf("LoadSettings returned error: %v", err)
	}

	if settings.Redis.Addr != "redis.testing:6379" {
		t.Errorf("addr = %q, want redis.testing:6379", settings.Redis.Addr)
	}
	if settings.Redis.Password != "secret" {
		t.Errorf("password = %q, want secret", settings.Redis.Password)
	}
}

func TestLoadSettingsMalformedFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "stream.yaml")
	if err := os.WriteFile(path, []byte("provider: [broken"), 0o644); err != nil {
		t.Fatalf("writing config file: %v", err)
	}
	t.Setenv("STREAM_CONFIG_PATH", path)

	if _, err := LoadSettings(); err == nil {
		t.Fatal("expected error for malformed yaml, got nil")
	}
}
