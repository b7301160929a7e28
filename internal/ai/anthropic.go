package ai

import (
	"context"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

// DefaultAnthropicModel is used when Options.Model is empty.
const DefaultAnthropicModel = anthropic.ModelClaude3_5Sonnet20241022

const anthropicMaxTokens = 4096

// Anthropic calls the Anthropic Messages API.
type Anthropic struct {
	client anthropic.Client
	model  anthropic.Model
}

// NewAnthropic returns an Anthropic adapter with retries disabled.
func NewAnthropic(opts Options) *Anthropic {
	model := anthropic.Model(opts.Model)
	if model == "" {
		model = DefaultAnthropicModel
	}

	clientOpts := []option.RequestOption{option.WithMaxRetries(0)}
	if opts.APIKey != "" {
		clientOpts = append(clientOpts, option.WithAPIKey(opts.APIKey))
	}
	if opts.BaseURL != "" {
		clientOpts = append(clientOpts, option.WithBaseURL(opts.BaseURL))
	}

	return &Anthropic{client: anthropic.NewClient(clientOpts...), model: model}
}

// Generate sends prompt as one user message and concatenates the text blocks
// of the reply.
func (a *Anthropic) Generate(ctx context.Context, prompt string) (string, error) {
	resp, err := a.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     a.model,
		MaxTokens: anthropicMaxTokens,
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		},
	})
	if err != nil {
		return "", requestFailed(ProviderAnthropic, err)
	}

	var b strings.Builder
	for _, block := range resp.Content {
		if block.Type == "text" {
			b.WriteString(block.AsText().Text)
		}
	}
	if b.Len() == 0 {
		return "", emptyResponse(ProviderAnthropic)
	}
	return b.String(), nil
}
