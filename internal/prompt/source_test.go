package prompt

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

type fakeFetcher struct {
	templates map[string]string
	calls     int
}

func (f *fakeFetcher) Fetch(ctx context.Context, key string) (string, error) {
	f.calls++
	template, ok := f.templates[key]
	if !ok {
		return "", fmt.Errorf("%w: key %q", ErrTemplateNotFound, key)
	}
	return template, nil
}

func testLogger() *zerolog.Logger {
	logger := zerolog.Nop()
	return &logger
}

func strPtr(s string) *string {
	return &s
}

func TestValidateOverrideKey(t *testing.T) {
	tests := []struct {
		name string
		key  string
		ok   bool
	}{
		{"empty means default", "", true},
		{"well formed", "custom_prompts/a.txt", true},
		{"nested path", "custom_prompts/team/strict-v2.txt", true},
		{"missing prefix", "prompts/a.txt", false},
		{"prefix only means directory", "custom_prompts/", false},
		{"trailing slash", "custom_prompts/a/", false},
		{"parent traversal", "custom_prompts/../secrets.txt", false},
		{"embedded traversal", "custom_prompts/a/../../b.txt", false},
		{"NUL byte", "custom_prompts/a\x00.txt", false},
		{"too long", RequiredKeyPrefix + strings.Repeat("a", MaxKeyLength), false},
		{"exactly max length", RequiredKeyPrefix + strings.Repeat("a", MaxKeyLength-len(RequiredKeyPrefix)-4) + ".txt", true},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			err := ValidateOverrideKey(test.key)
			if test.ok && err != nil {
				t.Errorf("key %q: unexpected error %v", test.key, err)
			}
			if !test.ok {
				if err == nil {
					t.Fatalf("key %q: expected error", test.key)
				}
				if !errors.Is(err, ErrInvalidKey) {
					t.Errorf("key %q: error %v is not ErrInvalidKey", test.key, err)
				}
			}
		})
	}
}

func TestSource_DefaultTemplate(t *testing.T) {
	fetcher := &fakeFetcher{}
	source := NewSource(fetcher, "", testLogger())

	template, err := source.Load(context.Background(), nil)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if template != DefaultTemplate {
		t.Error("expected the built-in default template")
	}
	if fetcher.calls != 0 {
		t.Errorf("default template must not hit remote storage, got %d fetches", fetcher.calls)
	}
}

func TestSource_OverrideKeyFetchesAndCaches(t *testing.T) {
	fetcher := &fakeFetcher{templates: map[string]string{
		"custom_prompts/strict.txt": "STRICT TEMPLATE",
	}}
	source := NewSource(fetcher, "", testLogger())

	for i := 0; i < 3; i++ {
		template, err := source.Load(context.Background(), strPtr("custom_prompts/strict.txt"))
		if err != nil {
			t.Fatalf("Load %d failed: %v", i, err)
		}
		if template != "STRICT TEMPLATE" {
			t.Errorf("Load %d: template = %q", i, template)
		}
	}

	if fetcher.calls != 1 {
		t.Errorf("expected exactly one fetch across repeated loads, got %d", fetcher.calls)
	}
}

// Deploy-time key set, request supplies an explicitly empty key: the
// request wins and the default template is used.
func TestSource_ExplicitEmptyKeyOverridesDeployKey(t *testing.T) {
	fetcher := &fakeFetcher{templates: map[string]string{
		"custom_prompts/k1.txt": "K1 TEMPLATE",
	}}
	source := NewSource(fetcher, "custom_prompts/k1.txt", testLogger())

	template, err := source.Load(context.Background(), strPtr(""))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if template != DefaultTemplate {
		t.Error("explicit empty key must select the default template, not the deploy-time key")
	}
	if fetcher.calls != 0 {
		t.Errorf("explicit empty key must not fetch, got %d fetches", fetcher.calls)
	}
}

func TestSource_DeployKeyAppliesWhenRequestKeyAbsent(t *testing.T) {
	fetcher := &fakeFetcher{templates: map[string]string{
		"custom_prompts/k1.txt": "K1 TEMPLATE",
	}}
	source := NewSource(fetcher, "custom_prompts/k1.txt", testLogger())

	template, err := source.Load(context.Background(), nil)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if template != "K1 TEMPLATE" {
		t.Errorf("template = %q, want the deploy-time override", template)
	}
}

func TestSource_RequestKeyWinsOverDeployKey(t *testing.T) {
	fetcher := &fakeFetcher{templates: map[string]string{
		"custom_prompts/k1.txt": "K1 TEMPLATE",
		"custom_prompts/k2.txt": "K2 TEMPLATE",
	}}
	source := NewSource(fetcher, "custom_prompts/k1.txt", testLogger())

	template, err := source.Load(context.Background(), strPtr("custom_prompts/k2.txt"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if template != "K2 TEMPLATE" {
		t.Errorf("template = %q, want the request override", template)
	}
}

func TestSource_InvalidKeyRejectedBeforeFetch(t *testing.T) {
	fetcher := &fakeFetcher{}
	source := NewSource(fetcher, "", testLogger())

	_, err := source.Load(context.Background(), strPtr("custom_prompts/../etc/passwd"))
	if !errors.Is(err, ErrInvalidKey) {
		t.Fatalf("expected ErrInvalidKey, got %v", err)
	}
	if fetcher.calls != 0 {
		t.Errorf("invalid key must never reach the fetcher, got %d fetches", fetcher.calls)
	}
}

func TestSource_MissingTemplatePropagates(t *testing.T) {
	fetcher := &fakeFetcher{}
	source := NewSource(fetcher, "", testLogger())

	_, err := source.Load(context.Background(), strPtr("custom_prompts/absent.txt"))
	if !errors.Is(err, ErrTemplateNotFound) {
		t.Fatalf("expected ErrTemplateNotFound, got %v", err)
	}
}
