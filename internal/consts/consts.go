package consts

// AppDir is the directory under the user's home holding config, logs and the request log.
const AppDir = ".promptrec"

// Provider identifiers used in config.
const (
	ProviderBackend   = "backend"
	ProviderOpenAI    = "openai"
	ProviderAnthropic = "anthropic"
	ProviderGoogle    = "google"
)

const (
	DefaultBaseURL        = "https://api.openai.com/v1"
	DefaultBackendURL     = "http://localhost:8000"
	DefaultBackendTimeout = 30
	DefaultCacheTTL       = 30
)

// Default chat models per provider.
const (
	DefaultOpenAIChatModel    = "gpt-4o-mini"
	DefaultAnthropicChatModel = "claude-3-5-haiku-latest"
	DefaultGoogleChatModel    = "gemini-2.0-flash"
)

// SystemPrompt is sent with every direct provider chat call.
const SystemPrompt = `You are a DevOps helpful assistant.
Send Response as html format don't send information as ` + "```html" + `,
Please necessary hyperlinks for information, don't add much
Give Answer more descriptive, so that user can understand properly, also added steps if needed`
