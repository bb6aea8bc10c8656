package anthropic

import (
	"context"
	"fmt"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/austiecodes/promptrec/internal/client"
)

const maxTokens = 1024

// compile time checks
var (
	_ client.ChatClient  = (*Client)(nil)
	_ client.ModelLister = (*Client)(nil)
)

// Client answers chat messages through the Anthropic Messages API.
type Client struct {
	client       *anthropic.Client
	model        string
	systemPrompt string
}

// NewClient creates a new Anthropic chat client
func NewClient(apiKey, baseURL, model, systemPrompt string) *Client {
	opts := []option.RequestOption{option.WithAPIKey(apiKey)}
	if baseURL != "" {
		opts = append(opts, option.WithBaseURL(baseURL))
	}
	c := anthropic.NewClient(opts...)
	return &Client{client: &c, model: model, systemPrompt: systemPrompt}
}

// Chat sends message and joins the text blocks of the reply.
// Anthropic takes the system prompt as a top-level parameter.
func (c *Client) Chat(ctx context.Context, message string) (string, error) {
	params := anthropic.MessageNewParams{
		Model:     anthropic.Model(c.model),
		MaxTokens: maxTokens,
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(message)),
		},
	}
	if c.systemPrompt != "" {
		params.System = []anthropic.TextBlockParam{{Text: c.systemPrompt}}
	}

	resp, err := c.client.Messages.New(ctx, params)
	if err != nil {
		return "", &client.NetworkError{Op: "chat", URL: "anthropic/" + c.model, Err: err}
	}

	var sb strings.Builder
	for _, block := range resp.Content {
		if block.Type == "text" {
			sb.WriteString(block.Text)
		}
	}
	if sb.Len() == 0 {
		return "", fmt.Errorf("anthropic returned no text content: %w", client.ErrMalformedResponse)
	}
	return sb.String(), nil
}

// ListModels fetches available models from the Anthropic API
func (c *Client) ListModels(ctx context.Context) ([]string, error) {
	page, err := c.client.Models.List(ctx, anthropic.ModelListParams{})
	if err != nil {
		return nil, err
	}

	var models []string
	for _, m := range page.Data {
		models = append(models, m.ID)
	}

	return models, nil
}
