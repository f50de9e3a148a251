package phonetic

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"
	"github.com/sony/gobreaker"
)

const defaultModel = openai.GPT4o

// Fetcher fetches IPA transcriptions for words from OpenAI
type Fetcher struct {
	apiKey   string
	model    string
	language string
	timeout  time.Duration
	client   *openai.Client
	breaker  *gobreaker.CircuitBreaker
}

// NewFetcher creates a new phonetic information fetcher
func NewFetcher(cfg Config) *Fetcher {
	cfg = withDefaults(cfg, defaultModel)

	clientConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientConfig.BaseURL = cfg.BaseURL
	}

	return &Fetcher{
		apiKey:   cfg.APIKey,
		model:    cfg.Model,
		language: cfg.Language,
		timeout:  cfg.Timeout,
		client:   openai.NewClientWithConfig(clientConfig),
		breaker:  newBreaker("openai-ipa-lookup"),
	}
}

// FetchIPA asks the model for the IPA transcription of word. The returned
// transcription is not validated.
func (f *Fetcher) FetchIPA(ctx context.Context, word string) (string, error) {
	if f.apiKey == "" {
		return "", ErrNoAPIKey
	}

	return execute(f.breaker, func() (string, error) {
		return f.complete(ctx, word)
	})
}

func (f *Fetcher) complete(ctx context.Context, word string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	req := openai.ChatCompletionRequest{
		Model: f.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: systemPrompt,
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: userPrompt(f.language, word),
			},
		},
		Temperature: 0,
		MaxTokens:   60,
	}

	resp, err := f.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", fmt.Errorf("OpenAI API error: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", ErrEmptyResponse
	}

	transcription := firstLine(resp.Choices[0].Message.Content)
	if transcription == "" {
		return "", ErrEmptyResponse
	}

	return transcription, nil
}

// firstLine returns the first non-empty line of a reply without markdown
// code quoting. Single quotes are kept as they may be stress shorthand.
func firstLine(content string) string {
	for _, line := range strings.Split(content, "\n") {
		line = strings.Trim(strings.TrimSpace(line), "`\"")
		if line = strings.TrimSpace(line); line != "" {
			return line
		}
	}
	return ""
}
