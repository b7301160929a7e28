package ai

import (
	"context"

	"google.golang.org/genai"
)

// DefaultGeminiModel is used when Options.Model is empty.
const DefaultGeminiModel = "gemini-1.5-flash"

// Gemini calls the Google Gemini API.
type Gemini struct {
	opts Options
}

// NewGemini returns a Gemini adapter.
func NewGemini(opts Options) *Gemini {
	if opts.Model == "" {
		opts.Model = DefaultGeminiModel
	}
	return &Gemini{opts: opts}
}

// Generate sends prompt as a single user turn and returns the response text.
func (g *Gemini) Generate(ctx context.Context, prompt string) (string, error) {
	cfg := &genai.ClientConfig{
		APIKey:  g.opts.APIKey,
		Backend: genai.BackendGeminiAPI,
	}
	if g.opts.BaseURL != "" {
		cfg.HTTPOptions = genai.HTTPOptions{BaseURL: g.opts.BaseURL}
	}

	client, err := genai.NewClient(ctx, cfg)
	if err != nil {
		return "", requestFailed(ProviderGemini, err)
	}

	resp, err := client.Models.GenerateContent(ctx, g.opts.Model, genai.Text(prompt), nil)
	if err != nil {
		return "", requestFailed(ProviderGemini, err)
	}

	text := resp.Text()
	if text == "" {
		return "", emptyResponse(ProviderGemini)
	}
	return text, nil
}
