package provider

import (
	"context"
	"fmt"

	"github.com/austiecodes/promptrec/internal/client"
	"github.com/austiecodes/promptrec/internal/consts"
	anthropicprov "github.com/austiecodes/promptrec/internal/provider/anthropic"
	"github.com/austiecodes/promptrec/internal/provider/backend"
	googleprov "github.com/austiecodes/promptrec/internal/provider/google"
	openaiprov "github.com/austiecodes/promptrec/internal/provider/openai"
	"github.com/austiecodes/promptrec/internal/types"
	"github.com/austiecodes/promptrec/internal/utils"
)

// NewRecommenderClient returns the recommender client for cfg, wrapped in a
// response cache unless the TTL is zero.
func NewRecommenderClient(cfg *utils.Config) client.RecommenderClient {
	var rec client.RecommenderClient = backend.NewClient(cfg.Backend.BaseURL, cfg.Backend.Timeout())
	if ttl := cfg.Backend.CacheTTL(); ttl > 0 {
		rec = backend.NewCachedRecommender(rec, ttl)
	}
	return rec
}

// NewChatClient creates the chat client for the configured chat model.
func NewChatClient(cfg *utils.Config) (client.ChatClient, error) {
	model := types.Model{Provider: consts.ProviderBackend}
	if cfg.Model.ChatModel != nil {
		model = *cfg.Model.ChatModel
	}

	if model.Provider == consts.ProviderBackend {
		return backend.NewClient(cfg.Backend.BaseURL, cfg.Backend.Timeout()), nil
	}
	return newProviderClient(cfg, model.Provider, model.ModelID)
}

// NewModelLister creates a client able to list models for providerName.
func NewModelLister(cfg *utils.Config, providerName string) (client.ModelLister, error) {
	c, err := newProviderClient(cfg, providerName, "")
	if err != nil {
		return nil, err
	}
	lister, ok := c.(client.ModelLister)
	if !ok {
		return nil, fmt.Errorf("provider %s cannot list models", providerName)
	}
	return lister, nil
}

func newProviderClient(cfg *utils.Config, providerName, modelID string) (client.ChatClient, error) {
	pc, ok := cfg.Providers.Get(providerName)
	if !ok {
		return nil, fmt.Errorf("unsupported provider: %s", providerName)
	}
	if pc.APIKey == "" {
		return nil, fmt.Errorf("%s API key not configured. Run 'promptrec set' to configure the provider", providerName)
	}

	switch providerName {
	case consts.ProviderOpenAI:
		baseURL := pc.BaseURL
		if baseURL == "" {
			baseURL = consts.DefaultBaseURL
		}
		if modelID == "" {
			modelID = consts.DefaultOpenAIChatModel
		}
		return openaiprov.NewClient(pc.APIKey, baseURL, modelID, consts.SystemPrompt), nil

	case consts.ProviderAnthropic:
		if modelID == "" {
			modelID = consts.DefaultAnthropicChatModel
		}
		return anthropicprov.NewClient(pc.APIKey, pc.BaseURL, modelID, consts.SystemPrompt), nil

	case consts.ProviderGoogle:
		if modelID == "" {
			modelID = consts.DefaultGoogleChatModel
		}
		return googleprov.NewClient(context.Background(), pc.APIKey, pc.BaseURL, modelID, consts.SystemPrompt)
	}

	return nil, fmt.Errorf("unsupported provider: %s", providerName)
}
