// quizgen/client.go - OpenRouter chat-completion client
package quizgen

import (
	"context"
	"fmt"
	"net/http"

	openai "github.com/sashabaranov/go-openai"
)

const (
	openRouterBaseURL = "https://openrouter.ai/api/v1"

	// DefaultModel is the fixed generation model.
	DefaultModel = "mistralai/mistral-7b-instruct:free"

	generationTemperature = 0.7
)

// Generator is the single call the pipeline needs from the model
// endpoint, kept narrow so tests can stub it.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Client sends prompts to OpenRouter through its OpenAI-compatible API.
type Client struct {
	api   *openai.Client
	model string
}

// NewClient builds an OpenRouter client. An empty model selects
// DefaultModel.
func NewClient(apiKey, model string) *Client {
	if model == "" {
		model = DefaultModel
	}

	config := openai.DefaultConfig(apiKey)
	config.BaseURL = openRouterBaseURL
	config.HTTPClient = &http.Client{
		Transport: attributionTransport{base: http.DefaultTransport},
	}

	return &Client{
		api:   openai.NewClientWithConfig(config),
		model: model,
	}
}

// Generate sends one prompt and returns the raw assistant text. The
// output is not validated here; that is the parser's job. There is no
// retry: a failed call aborts the whole pipeline run.
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	resp, err := c.api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleUser,
				Content: prompt,
			},
		},
		Temperature: generationTemperature,
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrGeneration, err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("%w: empty response from model", ErrGeneration)
	}

	return resp.Choices[0].Message.Content, nil
}

// attributionTransport adds the attribution headers OpenRouter asks
// clients to send alongside the bearer token.
type attributionTransport struct {
	base http.RoundTripper
}

func (t attributionTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req = req.Clone(req.Context())
	req.Header.Set("X-Title", "Discord Quiz Bot")
	return t.base.RoundTrip(req)
}
