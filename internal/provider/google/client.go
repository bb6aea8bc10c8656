package google

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"github.com/austiecodes/promptrec/internal/client"
)

var (
	_ client.ChatClient  = (*Client)(nil)
	_ client.ModelLister = (*Client)(nil)
)

// Client answers chat messages through the Gemini API.
type Client struct {
	client       *genai.Client
	model        string
	systemPrompt string
}

// NewClient creates a Gemini chat client. Unlike the other providers the
// SDK constructor can fail, so the error is returned.
func NewClient(ctx context.Context, apiKey, baseURL, model, systemPrompt string) (*Client, error) {
	cfg := &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	}
	if baseURL != "" {
		cfg.HTTPOptions = genai.HTTPOptions{BaseURL: baseURL}
	}
	c, err := genai.NewClient(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create google client: %w", err)
	}
	return &Client{client: c, model: model, systemPrompt: systemPrompt}, nil
}

func (c *Client) Chat(ctx context.Context, message string) (string, error) {
	config := &genai.GenerateContentConfig{}
	if c.systemPrompt != "" {
		config.SystemInstruction = &genai.Content{
			Parts: []*genai.Part{{Text: c.systemPrompt}},
		}
	}

	contents := []*genai.Content{{
		Role:  "user",
		Parts: []*genai.Part{{Text: message}},
	}}

	resp, err := c.client.Models.GenerateContent(ctx, c.model, contents, config)
	if err != nil {
		return "", &client.NetworkError{Op: "chat", URL: "google/" + c.model, Err: err}
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", fmt.Errorf("google returned no candidates: %w", client.ErrMalformedResponse)
	}
	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if part != nil {
			sb.WriteString(part.Text)
		}
	}
	return sb.String(), nil
}

func (c *Client) ListModels(ctx context.Context) ([]string, error) {
	page, err := c.client.Models.List(ctx, nil)
	if err != nil {
		return nil, err
	}
	var models []string
	for _, m := range page.Items {
		models = append(models, strings.TrimPrefix(m.Name, "models/"))
	}
	return models, nil
}
