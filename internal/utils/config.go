package utils

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"

	"github.com/austiecodes/promptrec/internal/consts"
	"github.com/austiecodes/promptrec/internal/suggest"
	"github.com/austiecodes/promptrec/internal/types"
)

// ProviderConfig holds credentials for one LLM provider.
type ProviderConfig struct {
	APIKey  string `json:"api_key"`
	BaseURL string `json:"base_url,omitempty"`
}

// ProviderConfigs holds all provider configurations
type ProviderConfigs struct {
	OpenAI    ProviderConfig `json:"openai"`
	Anthropic ProviderConfig `json:"anthropic"`
	Google    ProviderConfig `json:"google"`
}

// Get returns the config for the named provider.
func (p *ProviderConfigs) Get(name string) (*ProviderConfig, bool) {
	switch name {
	case consts.ProviderOpenAI:
		return &p.OpenAI, true
	case consts.ProviderAnthropic:
		return &p.Anthropic, true
	case consts.ProviderGoogle:
		return &p.Google, true
	}
	return nil, false
}

// ModelConfig represents the model section in config
type ModelConfig struct {
	ChatModel *types.Model `json:"chat_model,omitempty"`
}

// BackendConfig points at the recommender service.
type BackendConfig struct {
	BaseURL         string `json:"base_url"`
	TimeoutSeconds  int    `json:"timeout_seconds"`
	CacheTTLSeconds int    `json:"cache_ttl_seconds"`
}

// Timeout returns the request timeout as a duration.
func (b BackendConfig) Timeout() time.Duration {
	return time.Duration(b.TimeoutSeconds) * time.Second
}

// CacheTTL returns the suggestion cache lifetime; zero disables caching.
func (b BackendConfig) CacheTTL() time.Duration {
	if b.CacheTTLSeconds < 0 {
		return 0
	}
	return time.Duration(b.CacheTTLSeconds) * time.Second
}

// Config represents the application configuration
type Config struct {
	Providers   ProviderConfigs       `json:"providers"`
	Model       ModelConfig           `json:"model"`
	Backend     BackendConfig         `json:"backend"`
	Suggestions suggest.Configuration `json:"suggestions"`
	Debug       bool                  `json:"debug,omitempty"`
	LogFile     string                `json:"log_file,omitempty"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Model: ModelConfig{
			ChatModel: &types.Model{Provider: consts.ProviderBackend},
		},
		Backend: BackendConfig{
			BaseURL:         consts.DefaultBackendURL,
			TimeoutSeconds:  consts.DefaultBackendTimeout,
			CacheTTLSeconds: consts.DefaultCacheTTL,
		},
		Suggestions: suggest.DefaultConfiguration(),
		Debug:       false,
	}
}

// GetAppDir returns ~/.promptrec, creating it if needed.
func GetAppDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}
	appDir := filepath.Join(homeDir, consts.AppDir)
	if err := os.MkdirAll(appDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create %s directory: %w", consts.AppDir, err)
	}
	return appDir, nil
}

// GetConfigPath returns the path to the configuration file
func GetConfigPath() (string, error) {
	appDir, err := GetAppDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(appDir, consts.AppDir), nil
}

// LoadConfig loads the configuration from file
func LoadConfig() (*Config, error) {
	configPath, err := GetConfigPath()
	if err != nil {
		return nil, err
	}
	return LoadConfigFrom(configPath)
}

// LoadConfigFrom loads the configuration at path, falling back to defaults
// when the file does not exist. Environment overrides are applied last.
func LoadConfigFrom(path string) (*Config, error) {
	// If config file doesn't exist, return default config
	if _, err := os.Stat(path); os.IsNotExist(err) {
		config := DefaultConfig()
		applyEnv(config)
		return config, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	applyDefaults(&config)
	applyEnv(&config)

	if err := config.Suggestions.Validate(); err != nil {
		return nil, fmt.Errorf("invalid suggestions config in %s: %w", path, err)
	}

	return &config, nil
}

// applyDefaults fills in default values for missing config fields
func applyDefaults(config *Config) {
	defaultConfig := DefaultConfig()

	if config.Model.ChatModel == nil || config.Model.ChatModel.Provider == "" {
		config.Model.ChatModel = defaultConfig.Model.ChatModel
	}

	if config.Backend.BaseURL == "" {
		config.Backend.BaseURL = defaultConfig.Backend.BaseURL
	}
	if config.Backend.TimeoutSeconds == 0 {
		config.Backend.TimeoutSeconds = defaultConfig.Backend.TimeoutSeconds
	}
	if config.Backend.CacheTTLSeconds == 0 {
		config.Backend.CacheTTLSeconds = defaultConfig.Backend.CacheTTLSeconds
	}

	if config.Suggestions.Weights == nil {
		config.Suggestions.Weights = defaultConfig.Suggestions.Weights
	}
	if config.Suggestions.TopK == 0 {
		config.Suggestions.TopK = defaultConfig.Suggestions.TopK
	}
	// distance_filter 0 is meaningful (exact matches only) and is kept.
}

// envOverrides maps environment variables onto config fields. Values from
// the environment only fill fields the config file left empty.
var envOverrides = []struct {
	key   string
	field func(*Config) *string
}{
	{"OPENAI_API_KEY", func(c *Config) *string { return &c.Providers.OpenAI.APIKey }},
	{"ANTHROPIC_API_KEY", func(c *Config) *string { return &c.Providers.Anthropic.APIKey }},
	{"GEMINI_API_KEY", func(c *Config) *string { return &c.Providers.Google.APIKey }},
}

func applyEnv(config *Config) {
	for _, o := range envOverrides {
		if v := os.Getenv(o.key); v != "" {
			if f := o.field(config); *f == "" {
				*f = v
			}
		}
	}
	// the backend URL is explicit enough to win over the file
	if v := os.Getenv("PROMPTREC_BACKEND_URL"); v != "" {
		config.Backend.BaseURL = v
	}
}

// LoadEnv reads .env files into the process environment. Missing files
// are not an error.
func LoadEnv(files ...string) error {
	var existing []string
	for _, f := range files {
		if _, err := os.Stat(f); err == nil {
			existing = append(existing, f)
		}
	}
	if len(existing) == 0 {
		return nil
	}
	if err := godotenv.Load(existing...); err != nil {
		return fmt.Errorf("failed to load env files: %w", err)
	}
	return nil
}

// SaveConfig saves the configuration to file
func SaveConfig(config *Config) error {
	configPath, err := GetConfigPath()
	if err != nil {
		return err
	}
	return SaveConfigTo(configPath, config)
}

// SaveConfigTo writes config as indented JSON with owner-only permissions.
func SaveConfigTo(path string, config *Config) error {
	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// GetDebugMode returns whether debug mode is enabled
func GetDebugMode() bool {
	config, err := LoadConfig()
	if err != nil {
		return false
	}
	return config.Debug
}
