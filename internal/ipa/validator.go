package ipa

import (
	"errors"
	"fmt"
)

// ErrConfiguration is returned for option combinations that cannot be honored.
var ErrConfiguration = errors.New("invalid transcription options")

// ConfigurationError describes why a set of Options was rejected.
type ConfigurationError struct {
	Options Options
	Reason  string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("%v: %s", ErrConfiguration, e.Reason)
}

func (e *ConfigurationError) Unwrap() error {
	return ErrConfiguration
}

// Options controls which transforms run before validation
type Options struct {
	// Strip removes the '/', '[' and ']' delimiters
	Strip bool
	// Normalize rewrites ASCII shorthand into IPA symbols
	Normalize bool
	// SpeechSynthesis uses the stricter speech-synthesis normalization.
	// It requires Normalize.
	SpeechSynthesis bool
}

// DefaultOptions returns the default options: delimiters are stripped and
// nothing else is rewritten.
func DefaultOptions() Options {
	return Options{Strip: true}
}

// Validate checks that the options are consistent
func (o Options) Validate() error {
	if o.SpeechSynthesis && !o.Normalize {
		return &ConfigurationError{
			Options: o,
			Reason:  "speech-synthesis normalization requires normalization to be enabled",
		}
	}
	return nil
}

// Result holds the outcome of processing a single transcription
type Result struct {
	// Original is the input exactly as given
	Original string
	// Normalized is the input after all enabled transforms
	Normalized string
	// Valid reports whether Normalized only contains IPA characters
	Valid bool
}

// Process runs text through the enabled transforms and validates the
// outcome. An invalid transcription is not an error; only inconsistent
// options are.
func Process(text string, opts Options) (Result, error) {
	if err := opts.Validate(); err != nil {
		return Result{}, err
	}

	normalized := text

	if opts.Strip {
		normalized = StripDelimiters(normalized)
	}

	if opts.Normalize {
		normalized = Normalize(normalized, opts.Strip, opts.SpeechSynthesis)
	}

	return Result{
		Original:   text,
		Normalized: normalized,
		Valid:      IsValid(normalized),
	}, nil
}
