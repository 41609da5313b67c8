package reactagent

import (
	"net/http"

	"github.com/leofalp/react-agent/providers/ai"
	"github.com/leofalp/react-agent/providers/memory"
	"github.com/leofalp/react-agent/providers/tool"
)

// config collects the factory configuration before the agent is built.
type config struct {
	model               string
	systemPrompt        string
	apiKey              string
	baseURL             string
	httpClient          *http.Client
	provider            ai.Provider
	tools               []tool.GenericTool
	includeDefaultTools bool
	memoryProvider      memory.Provider
	maxIterations       int
	generationConfig    *ai.GenerationConfig
}

// Option is a functional option for [New].
type Option func(*config)

// WithModel selects the model. The name's prefix determines the provider
// unless [WithProvider] overrides the selection. Empty values keep
// [DefaultModel].
func WithModel(model string) Option {
	return func(cfg *config) {
		if model != "" {
			cfg.model = model
		}
	}
}

// WithSystemPrompt replaces [DefaultSystemPrompt].
func WithSystemPrompt(systemPrompt string) Option {
	return func(cfg *config) {
		cfg.systemPrompt = systemPrompt
	}
}

// WithAPIKey sets the provider credential explicitly, taking precedence
// over the vendor environment variable.
func WithAPIKey(apiKey string) Option {
	return func(cfg *config) {
		cfg.apiKey = apiKey
	}
}

// WithBaseURL overrides the provider's API base URL. Useful for proxies
// and test servers.
func WithBaseURL(baseURL string) Option {
	return func(cfg *config) {
		cfg.baseURL = baseURL
	}
}

// WithHTTPClient replaces the provider's default HTTP client.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(cfg *config) {
		cfg.httpClient = httpClient
	}
}

// WithProvider bypasses model-prefix selection and uses the given provider
// directly. [WithAPIKey], [WithBaseURL], and [WithHTTPClient] still apply.
func WithProvider(provider ai.Provider) Option {
	return func(cfg *config) {
		cfg.provider = provider
	}
}

// WithTools registers additional tools alongside the default set.
func WithTools(tools ...tool.GenericTool) Option {
	return func(cfg *config) {
		cfg.tools = append(cfg.tools, tools...)
	}
}

// WithoutDefaultTools skips registering [DefaultTools], leaving only the
// tools added via [WithTools].
func WithoutDefaultTools() Option {
	return func(cfg *config) {
		cfg.includeDefaultTools = false
	}
}

// WithMemory attaches a conversation store so consecutive Execute calls
// share history.
func WithMemory(provider memory.Provider) Option {
	return func(cfg *config) {
		cfg.memoryProvider = provider
	}
}

// WithMaxIterations bounds model round-trips per run.
func WithMaxIterations(maxIterations int) Option {
	return func(cfg *config) {
		cfg.maxIterations = maxIterations
	}
}

// WithGenerationConfig sets optional sampling parameters.
func WithGenerationConfig(generationConfig *ai.GenerationConfig) Option {
	return func(cfg *config) {
		cfg.generationConfig = generationConfig
	}
}
