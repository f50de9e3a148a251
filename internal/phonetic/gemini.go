package phonetic

import (
	"context"
	"fmt"
	"time"

	"github.com/sony/gobreaker"
	"google.golang.org/genai"
)

const defaultGeminiModel = "gemini-2.0-flash"

// GeminiFetcher fetches IPA transcriptions for words from Google Gemini
type GeminiFetcher struct {
	model    string
	language string
	timeout  time.Duration
	client   *genai.Client
	breaker  *gobreaker.CircuitBreaker
}

// NewGeminiFetcher creates a Gemini backed fetcher. Without an API key no
// client is created and every lookup fails with ErrNoAPIKey.
func NewGeminiFetcher(cfg Config) (*GeminiFetcher, error) {
	cfg = withDefaults(cfg, defaultGeminiModel)

	f := &GeminiFetcher{
		model:    cfg.Model,
		language: cfg.Language,
		timeout:  cfg.Timeout,
		breaker:  newBreaker("gemini-ipa-lookup"),
	}
	if cfg.APIKey == "" {
		return f, nil
	}

	clientConfig := &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	}
	if cfg.BaseURL != "" {
		clientConfig.HTTPOptions = genai.HTTPOptions{BaseURL: cfg.BaseURL}
	}

	client, err := genai.NewClient(context.Background(), clientConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	f.client = client

	return f, nil
}

// FetchIPA asks the model for the IPA transcription of word. The returned
// transcription is not validated.
func (f *GeminiFetcher) FetchIPA(ctx context.Context, word string) (string, error) {
	if f.client == nil {
		return "", ErrNoAPIKey
	}

	return execute(f.breaker, func() (string, error) {
		return f.generate(ctx, word)
	})
}

func (f *GeminiFetcher) generate(ctx context.Context, word string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	config := &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(systemPrompt, genai.RoleUser),
		Temperature:       genai.Ptr[float32](0),
		MaxOutputTokens:   60,
	}

	resp, err := f.client.Models.GenerateContent(ctx, f.model, genai.Text(userPrompt(f.language, word)), config)
	if err != nil {
		return "", fmt.Errorf("Gemini API error: %w", err)
	}

	transcription := firstLine(resp.Text())
	if transcription == "" {
		return "", ErrEmptyResponse
	}

	return transcription, nil
}
