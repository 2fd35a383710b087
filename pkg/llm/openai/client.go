package openai

import (
	"context"
	"errors"
	"net/http"
	"time"

	goopenai "github.com/sashabaranov/go-openai"

	"github.com/artem13815/chatbot/pkg/llm"
)

// Client is an OpenAI (or OpenAI-compatible) chat completions client.
type Client struct {
	api *goopenai.Client
}

type Option func(*goopenai.ClientConfig)

// WithBaseURL points the client at an OpenAI-compatible provider such as OpenRouter.
func WithBaseURL(baseURL string) Option {
	return func(c *goopenai.ClientConfig) {
		if baseURL != "" {
			c.BaseURL = baseURL
		}
	}
}

func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *goopenai.ClientConfig) {
		c.HTTPClient = httpClient
	}
}

func New(apiKey string, opts ...Option) *Client {
	cfg := goopenai.DefaultConfig(apiKey)
	cfg.HTTPClient = &http.Client{Timeout: 60 * time.Second}
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Client{api: goopenai.NewClientWithConfig(cfg)}
}

// Complete submits the prompt and returns the text of the first choice.
func (c *Client) Complete(ctx context.Context, params llm.Params, messages []llm.Message) (string, error) {
	req := goopenai.ChatCompletionRequest{
		Model:       params.Model,
		Messages:    toProvider(messages),
		MaxTokens:   params.MaxTokens,
		Temperature: params.Temperature,
	}
	resp, err := c.api.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", classify(err)
	}
	if len(resp.Choices) == 0 {
		return "", &llm.Error{Kind: llm.KindEmpty, Err: errors.New("no choices returned by model")}
	}
	return resp.Choices[0].Message.Content, nil
}

// ListModels returns the ids of every model in the provider catalog.
func (c *Client) ListModels(ctx context.Context) ([]string, error) {
	list, err := c.api.ListModels(ctx)
	if err != nil {
		return nil, classify(err)
	}
	ids := make([]string, 0, len(list.Models))
	for _, m := range list.Models {
		ids = append(ids, m.ID)
	}
	return ids, nil
}

func toProvider(messages []llm.Message) []goopenai.ChatCompletionMessage {
	out := make([]goopenai.ChatCompletionMessage, 0, len(messages))
	for _, m := range messages {
		out = append(out, goopenai.ChatCompletionMessage{Role: m.Role, Content: m.Content})
	}
	return out
}

func classify(err error) error {
	var apiErr *goopenai.APIError
	if errors.As(err, &apiErr) {
		return &llm.Error{Kind: llm.KindRejected, StatusCode: apiErr.HTTPStatusCode, Err: err}
	}
	var reqErr *goopenai.RequestError
	if errors.As(err, &reqErr) {
		return &llm.Error{Kind: llm.KindRejected, StatusCode: reqErr.HTTPStatusCode, Err: err}
	}
	return &llm.Error{Kind: llm.KindUnavailable, Err: err}
}
