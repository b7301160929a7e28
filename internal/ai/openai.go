package ai

import (
	"context"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

// DefaultOpenAIModel is used when Options.Model is empty.
const DefaultOpenAIModel = openai.ChatModelGPT4oMini

// OpenAI calls the OpenAI Chat Completions API.
type OpenAI struct {
	client openai.Client
	model  string
}

// NewOpenAI returns an OpenAI adapter. Retries are disabled: one request per
// snippet.
func NewOpenAI(opts Options) *OpenAI {
	model := opts.Model
	if model == "" {
		model = DefaultOpenAIModel
	}

	clientOpts := []option.RequestOption{option.WithMaxRetries(0)}
	if opts.APIKey != "" {
		clientOpts = append(clientOpts, option.WithAPIKey(opts.APIKey))
	}
	if opts.BaseURL != "" {
		clientOpts = append(clientOpts, option.WithBaseURL(opts.BaseURL))
	}

	return &OpenAI{client: openai.NewClient(clientOpts...), model: model}
}

// Generate sends prompt as a single user message and returns the first choice.
func (o *OpenAI) Generate(ctx context.Context, prompt string) (string, error) {
	resp, err := o.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(prompt),
		},
		Model: o.model,
	})
	if err != nil {
		return "", requestFailed(ProviderOpenAI, err)
	}
	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return "", emptyResponse(ProviderOpenAI)
	}
	return resp.Choices[0].Message.Content, nil
}
