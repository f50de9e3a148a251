package phonetic

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sony/gobreaker"
)

// Lookup errors
var (
	ErrNoAPIKey            = errors.New("API key not configured")
	ErrEmptyResponse       = errors.New("empty response from lookup provider")
	ErrUnknownProvider     = errors.New("unknown lookup provider")
	ErrProviderUnavailable = errors.New("lookup provider unavailable")
)

// Provider names accepted by NewProvider
const (
	ProviderOpenAI = "openai"
	ProviderGemini = "gemini"
)

const (
	defaultLanguage = "English"
	defaultTimeout  = 30 * time.Second

	// consecutive failures before the breaker opens
	maxConsecutiveFailures = 3

	systemPrompt = "You are a phonetics expert. Answer with a broad International Phonetic Alphabet (IPA) transcription only, without explanations."
)

// Lookuper fetches the IPA transcription of a word from a language model
type Lookuper interface {
	FetchIPA(ctx context.Context, word string) (string, error)
}

// Config configures a lookup provider
type Config struct {
	APIKey   string
	Model    string
	Language string
	// BaseURL overrides the provider API endpoint
	BaseURL string
	Timeout time.Duration
}

// NewProvider creates the Lookuper registered under name. An empty name
// selects OpenAI.
func NewProvider(name string, cfg Config) (Lookuper, error) {
	switch name {
	case "", ProviderOpenAI:
		return NewFetcher(cfg), nil
	case ProviderGemini:
		return NewGeminiFetcher(cfg)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownProvider, name)
	}
}

func userPrompt(language, word string) string {
	return fmt.Sprintf("Give the IPA transcription of the %s word '%s', enclosed in slashes, with primary and secondary stress marks.", language, word)
}

func newBreaker(name string) *gobreaker.CircuitBreaker {
	return gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:    name,
		Timeout: defaultTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= maxConsecutiveFailures
		},
	})
}

// execute runs fn through the breaker. Rejections by an open breaker are
// reported as ErrProviderUnavailable.
func execute(breaker *gobreaker.CircuitBreaker, fn func() (string, error)) (string, error) {
	result, err := breaker.Execute(func() (interface{}, error) {
		return fn()
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return "", fmt.Errorf("%w: %w", ErrProviderUnavailable, err)
	}
	if err != nil {
		return "", err
	}

	return result.(string), nil
}

// withDefaults fills in the unset fields of cfg
func withDefaults(cfg Config, model string) Config {
	if cfg.Model == "" {
		cfg.Model = model
	}
	if cfg.Language == "" {
		cfg.Language = defaultLanguage
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	return cfg
}
