package openai

import (
	"context"
	"fmt"
	"sort"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"

	"github.com/austiecodes/promptrec/internal/client"
)

// compile time checks
var (
	_ client.ChatClient  = (*Client)(nil)
	_ client.ModelLister = (*Client)(nil)
)

// Client answers chat messages through the OpenAI Chat Completions API.
type Client struct {
	client       openai.Client
	model        string
	systemPrompt string
}

// NewClient creates a new OpenAI chat client.
func NewClient(apiKey, baseURL, model, systemPrompt string) *Client {
	opts := []option.RequestOption{option.WithAPIKey(apiKey)}
	if baseURL != "" {
		opts = append(opts, option.WithBaseURL(baseURL))
	}
	return &Client{
		client:       openai.NewClient(opts...),
		model:        model,
		systemPrompt: systemPrompt,
	}
}

// Chat sends message with the configured system prompt and returns the
// first choice's content.
func (c *Client) Chat(ctx context.Context, message string) (string, error) {
	var msgs []openai.ChatCompletionMessageParamUnion
	if c.systemPrompt != "" {
		msgs = append(msgs, openai.SystemMessage(c.systemPrompt))
	}
	msgs = append(msgs, openai.UserMessage(message))

	resp, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model:    openai.ChatModel(c.model),
		Messages: msgs,
	})
	if err != nil {
		return "", &client.NetworkError{Op: "chat", URL: "openai/" + c.model, Err: err}
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("openai returned no choices: %w", client.ErrMalformedResponse)
	}
	return resp.Choices[0].Message.Content, nil
}

// ListModels fetches available models from the OpenAI API
func (c *Client) ListModels(ctx context.Context) ([]string, error) {
	page, err := c.client.Models.List(ctx)
	if err != nil {
		return nil, err
	}

	var models []string
	for _, model := range page.Data {
		models = append(models, model.ID)
	}

	sort.Strings(models)
	return models, nil
}
