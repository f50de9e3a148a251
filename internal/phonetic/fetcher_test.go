package phonetic

import (
	"context"
	"errors"
	"net/http"
	"os"
	"strings"
	"testing"

	"github.com/sony/gobreaker"

	"codeberg.org/snonux/ipacheck/internal/testutil"
)

func TestNewFetcherDefaults(t *testing.T) {
	fetcher := NewFetcher(Config{APIKey: "test-api-key"})

	if fetcher.apiKey != "test-api-key" {
		t.Errorf("Expected API key 'test-api-key', got '%s'", fetcher.apiKey)
	}
	if fetcher.model != defaultModel {
		t.Errorf("Expected default model %s, got %s", defaultModel, fetcher.model)
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

func TestFetchIPA_NoAPIKey(t *testing.T) {
	fetcher := NewFetcher(Config{})

	_, err := fetcher.FetchIPA(context.Background(), "cat")
	if !errors.Is(err, ErrNoAPIKey) {
		t.Errorf("Expected ErrNoAPIKey, got: %v", err)
	}
}

func TestFetchIPA(t *testing.T) {
	srv := testutil.NewMockChatReply(t, "`/ˈkæt/`\nThe word is stressed on the first syllable.")

	fetcher := NewFetcher(Config{APIKey: "test-api-key", BaseURL: srv.URL})

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
	if srv.LastAuthorization() != "Bearer test-api-key" {
		t.Errorf("Unexpected Authorization header: %s", srv.LastAuthorization())
	}
}

func TestFetchIPA_EmptyResponse(t *testing.T) {
	srv := testutil.NewMockChatReply(t, "  \n  ")

	fetcher := NewFetcher(Config{APIKey: "test-api-key", BaseURL: srv.URL})

	_, err := fetcher.FetchIPA(context.Background(), "cat")
	if !errors.Is(err, ErrEmptyResponse) {
		t.Errorf("Expected ErrEmptyResponse, got: %v", err)
	}
}

func TestFetchIPA_BreakerOpens(t *testing.T) {
	srv := testutil.NewMockChatServer(t, http.StatusInternalServerError, testutil.ChatError("upstream failure"))

	fetcher := NewFetcher(Config{APIKey: "test-api-key", BaseURL: srv.URL})

	for i := 0; i < maxConsecutiveFailures; i++ {
		_, err := fetcher.FetchIPA(context.Background(), "cat")
		if err == nil || !strings.Contains(err.Error(), "OpenAI API error") {
			t.Fatalf("Attempt %d: expected API error, got %v", i+1, err)
		}
	}

	_, err := fetcher.FetchIPA(context.Background(), "cat")
	if !errors.Is(err, gobreaker.ErrOpenState) {
		t.Errorf("Expected open circuit breaker, got: %v", err)
	}
	if !errors.Is(err, ErrProviderUnavailable) {
		t.Errorf("Expected ErrProviderUnavailable, got: %v", err)
	}

	if srv.Hits() != maxConsecutiveFailures {
		t.Errorf("Expected %d requests to reach the server, got %d", maxConsecutiveFailures, srv.Hits())
	}
}

func TestFirstLine(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"/ˈkæt/", "/ˈkæt/"},
		{"\n\n  [θɪŋ]  \nexplanation", "[θɪŋ]"},
		{"```\n'kat\n```", "'kat"},
		{"\"ˈdɔɡ\"", "ˈdɔɡ"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := firstLine(tt.input); got != tt.want {
			t.Errorf("firstLine(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestFetchIPA_Integration(t *testing.T) {
	// Skip if no API key
	apiKey := os.Getenv("OPENAI_API_KEY")
	if apiKey == "" {
		t.Skip("Skipping integration test: OPENAI_API_KEY not set")
	}

	fetcher := NewFetcher(Config{APIKey: apiKey})

	got, err := fetcher.FetchIPA(context.Background(), "cat")
	if err != nil {
		t.Fatalf("FetchIPA failed: %v", err)
	}

	t.Logf("IPA for 'cat': %s", got)
}
