package phonetic

import (
	"context"
	"errors"
	"net/http"
	"os"
	"strings"
	"testing"

	"codeberg.org/snonux/ipacheck/internal/testutil"
)

func TestNewGeminiFetcherDefaults(t *testing.T) {
	fetcher, err := NewGeminiFetcher(Config{APIKey: "test-api-key"})
	if err != nil {
		t.Fatalf("NewGeminiFetcher failed: %v", err)
	}

	if fetcher.model != defaultGeminiModel {
		t.Errorf("Expected default model %s, got %s", defaultGeminiModel, fetcher.model)
	}
	if fetcher.language != defaultLanguage {
		t.Errorf("Expected default language %s, got %s", defaultLanguage, fetcher.language)
	}
	if fetcher.timeout != defaultTimeout {
		t.Errorf("Expected default timeout %v, got %v", defaultTimeout, fetcher.timeout)
	}
	if fetcher.client == nil || fetcher.breaker == nil {
		t.Error("Client or circuit breaker not initialized")
	}
}

func TestGeminiFetchIPA_NoAPIKey(t *testing.T) {
	fetcher, err := NewGeminiFetcher(Config{})
	if err != nil {
		t.Fatalf("NewGeminiFetcher failed: %v", err)
	}

	_, err = fetcher.FetchIPA(context.Background(), "cat")
	if !errors.Is(err, ErrNoAPIKey) {
		t.Errorf("Expected ErrNoAPIKey, got: %v", err)
	}
}

func TestGeminiFetchIPA(t *testing.T) {
	srv := testutil.NewMockGeminiReply(t, "/ˈkæt/\nStress falls on the only syllable.")

	fetcher, err := NewGeminiFetcher(Config{APIKey: "test-api-key", BaseURL: srv.URL})
	if err != nil {
		t.Fatalf("NewGeminiFetcher failed: %v", err)
	}

	got, err := fetcher.FetchIPA(context.Background(), "cat")
	if err != nil {
		t.Fatalf("FetchIPA failed: %v", err)
	}

	if got != "/ˈkæt/" {
		t.Errorf("FetchIPA = %q, want %q", got, "/ˈkæt/")
	}
	if srv.Hits() != 1 {
		t.Errorf("Expected 1 request, got %d", srv.Hits())
	}
	if srv.LastAuthorization() != "test-api-key" {
		t.Errorf("Unexpected API key header: %s", srv.LastAuthorization())
	}
}

func TestGeminiFetchIPA_EmptyResponse(t *testing.T) {
	srv := testutil.NewMockGeminiReply(t, "\n")

	fetcher, err := NewGeminiFetcher(Config{APIKey: "test-api-key", BaseURL: srv.URL})
	if err != nil {
		t.Fatalf("NewGeminiFetcher failed: %v", err)
	}

	_, err = fetcher.FetchIPA(context.Background(), "cat")
	if !errors.Is(err, ErrEmptyResponse) {
		t.Errorf("Expected ErrEmptyResponse, got: %v", err)
	}
}

func TestGeminiFetchIPA_BreakerOpens(t *testing.T) {
	srv := testutil.NewMockGeminiServer(t, http.StatusInternalServerError, testutil.GeminiError(500, "upstream failure"))

	fetcher, err := NewGeminiFetcher(Config{APIKey: "test-api-key", BaseURL: srv.URL})
	if err != nil {
		t.Fatalf("NewGeminiFetcher failed: %v", err)
	}

	for i := 0; i < maxConsecutiveFailures; i++ {
		_, err := fetcher.FetchIPA(context.Background(), "cat")
		if err == nil || !strings.Contains(err.Error(), "Gemini API error") {
			t.Fatalf("Attempt %d: expected API error, got %v", i+1, err)
		}
	}
	hits := srv.Hits()

	_, err = fetcher.FetchIPA(context.Background(), "cat")
	if !errors.Is(err, ErrProviderUnavailable) {
		t.Errorf("Expected ErrProviderUnavailable, got: %v", err)
	}
	if srv.Hits() != hits {
		t.Errorf("Open breaker let a request through: %d hits, want %d", srv.Hits(), hits)
	}
}

func TestNewProvider(t *testing.T) {
	tests := []struct {
		name     string
		provider string
		wantErr  error
	}{
		{"default", "", nil},
		{"openai", ProviderOpenAI, nil},
		{"gemini", ProviderGemini, nil},
		{"unknown", "espeak", ErrUnknownProvider},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lookuper, err := NewProvider(tt.provider, Config{APIKey: "test-api-key"})
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("NewProvider(%q) error = %v, want %v", tt.provider, err, tt.wantErr)
			}
			if tt.wantErr == nil && lookuper == nil {
				t.Errorf("NewProvider(%q) returned no lookuper", tt.provider)
			}
		})
	}

	lookuper, _ := NewProvider(ProviderGemini, Config{APIKey: "test-api-key"})
	if _, ok := lookuper.(*GeminiFetcher); !ok {
		t.Errorf("Expected *GeminiFetcher, got %T", lookuper)
	}
}

func TestGeminiFetchIPA_Integration(t *testing.T) {
	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		t.Skip("Skipping integration test: GEMINI_API_KEY not set")
	}

	fetcher, err := NewGeminiFetcher(Config{APIKey: apiKey})
	if err != nil {
		t.Fatalf("NewGeminiFetcher failed: %v", err)
	}

	got, err := fetcher.FetchIPA(context.Background(), "cat")
	if err != nil {
		t.Fatalf("FetchIPA failed: %v", err)
	}

	t.Logf("IPA for 'cat': %s", got)
}
