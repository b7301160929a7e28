package ai

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	// ErrRequestFailed wraps every backend, network, or response failure.
	ErrRequestFailed = errors.New("AI request failed")

	// ErrUnknownProvider is returned by New for an unsupported provider name.
	ErrUnknownProvider = errors.New("unknown AI provider")
)

// Generator produces text for a prompt with a single request/response.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Supported provider identifiers.
const (
	ProviderGemini    = "gemini"
	ProviderOpenAI    = "openai"
	ProviderAnthropic = "anthropic"
)

// Options configure a provider adapter. Zero values select provider defaults.
type Options struct {
	APIKey  string
	Model   string
	BaseURL string
}

// Providers returns the supported provider names, sorted.
func Providers() []string {
	names := []string{ProviderGemini, ProviderOpenAI, ProviderAnthropic}
	sort.Strings(names)
	return names
}

// New returns the Generator for provider.
func New(provider string, opts Options) (Generator, error) {
	switch normalizeProvider(provider) {
	case ProviderGemini, "":
		return NewGemini(opts), nil
	case ProviderOpenAI:
		return NewOpenAI(opts), nil
	case ProviderAnthropic:
		return NewAnthropic(opts), nil
	default:
		return nil, unknownProvider(provider)
	}
}

// CheckProvider returns an error wrapping ErrUnknownProvider for any name New
// would reject. It builds no client.
func CheckProvider(provider string) error {
	switch normalizeProvider(provider) {
	case ProviderGemini, ProviderOpenAI, ProviderAnthropic, "":
		return nil
	default:
		return unknownProvider(provider)
	}
}

func normalizeProvider(provider string) string {
	return strings.ToLower(strings.TrimSpace(provider))
}

func unknownProvider(provider string) error {
	return fmt.Errorf("%w %q: supported providers are %s",
		ErrUnknownProvider, provider, strings.Join(Providers(), ", "))
}

// requestFailed wraps err under ErrRequestFailed, keeping the provider name
// and the underlying message.
func requestFailed(provider string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrRequestFailed, provider, err)
}

// emptyResponse is the error for a response that carried no text.
func emptyResponse(provider string) error {
	return fmt.Errorf("%w: %s: response contained no text", ErrRequestFailed, provider)
}
