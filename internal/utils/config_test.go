package utils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/austiecodes/promptrec/internal/consts"
	"github.com/austiecodes/promptrec/internal/suggest"
	"github.com/austiecodes/promptrec/internal/types"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(body), 0600))
	return path
}

func clearEnv(t *testing.T) {
	for _, key := range []string{"OPENAI_API_KEY", "ANTHROPIC_API_KEY", "GEMINI_API_KEY", "PROMPTREC_BACKEND_URL"} {
		t.Setenv(key, "")
	}
}

func TestLoadConfigFrom_MissingFile(t *testing.T) {
	clearEnv(t)
	cfg, err := LoadConfigFrom(filepath.Join(t.TempDir(), "nope"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadConfigFrom_AppliesDefaults(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, `{"suggestions": {"top_k": 3, "distance_filter": 0}}`)

	cfg, err := LoadConfigFrom(path)
	require.NoError(t, err)

	assert.Equal(t, consts.ProviderBackend, cfg.Model.ChatModel.Provider)
	assert.Equal(t, consts.DefaultBackendURL, cfg.Backend.BaseURL)
	assert.Equal(t, consts.DefaultBackendTimeout, cfg.Backend.TimeoutSeconds)
	assert.Equal(t, 3, cfg.Suggestions.TopK)
	assert.Equal(t, 0.0, cfg.Suggestions.DistanceFilter)
	assert.Equal(t, suggest.DefaultWeights(), cfg.Suggestions.Weights)
}

func TestLoadConfigFrom_Errors(t *testing.T) {
	clearEnv(t)
	tests := []struct {
		name string
		body string
		want error
	}{
		{"bad json", `{"suggestions": `, nil},
		{"top_k too large", `{"suggestions": {"top_k": 1000}}`, suggest.ErrInvalidTopK},
		{"negative weight", `{"suggestions": {"weights": {"length": -1}}}`, suggest.ErrInvalidWeight},
		{"unknown feature", `{"suggestions": {"weights": {"clicks": 1}}}`, suggest.ErrUnknownFeature},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadConfigFrom(writeConfig(t, tt.body))
			require.Error(t, err)
			if tt.want != nil {
				assert.ErrorIs(t, err, tt.want)
			}
		})
	}
}

func TestLoadConfigFrom_EnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("OPENAI_API_KEY", "sk-env")
	t.Setenv("ANTHROPIC_API_KEY", "ant-env")
	t.Setenv("PROMPTREC_BACKEND_URL", "http://recommender:9000")

	path := writeConfig(t, `{"providers": {"anthropic": {"api_key": "ant-file"}}}`)
	cfg, err := LoadConfigFrom(path)
	require.NoError(t, err)

	assert.Equal(t, "sk-env", cfg.Providers.OpenAI.APIKey)
	assert.Equal(t, "ant-file", cfg.Providers.Anthropic.APIKey)
	assert.Equal(t, "http://recommender:9000", cfg.Backend.BaseURL)
}

func TestSaveConfigTo_RoundTrip(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "config.json")

	cfg := DefaultConfig()
	cfg.Model.ChatModel = &types.Model{Provider: consts.ProviderOpenAI, ModelID: "gpt-4o-mini"}
	cfg.Suggestions.TopK = 8
	require.NoError(t, SaveConfigTo(path, cfg))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())

	loaded, err := LoadConfigFrom(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestLoadEnv(t *testing.T) {
	t.Setenv("PROMPTREC_TEST_VALUE", "")
	os.Unsetenv("PROMPTREC_TEST_VALUE")

	dir := t.TempDir()
	envFile := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(envFile, []byte("PROMPTREC_TEST_VALUE=from-dotenv\n"), 0600))

	require.NoError(t, LoadEnv(filepath.Join(dir, "missing.env"), envFile))
	assert.Equal(t, "from-dotenv", os.Getenv("PROMPTREC_TEST_VALUE"))

	require.NoError(t, LoadEnv(filepath.Join(dir, "missing.env")))
}

func TestProviderConfigs_Get(t *testing.T) {
	var p ProviderConfigs
	pc, ok := p.Get(consts.ProviderGoogle)
	require.True(t, ok)
	pc.APIKey = "g"
	assert.Equal(t, "g", p.Google.APIKey)

	_, ok = p.Get(consts.ProviderBackend)
	assert.False(t, ok)
}
