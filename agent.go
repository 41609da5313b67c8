package reactagent

import (
	"fmt"
	"os"
	"strings"

	"github.com/leofalp/react-agent/patterns/react"
	"github.com/leofalp/react-agent/providers/ai"
	"github.com/leofalp/react-agent/providers/ai/anthropic"
	"github.com/leofalp/react-agent/providers/ai/openai"
	"github.com/leofalp/react-agent/providers/tool"
	"github.com/leofalp/react-agent/providers/tool/calculator"
	"github.com/leofalp/react-agent/providers/tool/search"
	"github.com/leofalp/react-agent/providers/tool/webfetch"
)

const (
	// DefaultModel is the model used when none is configured.
	DefaultModel = "claude-sonnet-4-5"

	// DefaultSystemPrompt is the system prompt used when none is configured.
	DefaultSystemPrompt = "You are a helpful assistant"
)

// Environment variables holding vendor credentials.
const (
	envAnthropicAPIKey = "ANTHROPIC_API_KEY"
	envOpenAIAPIKey    = "OPENAI_API_KEY"
)

// DefaultTools returns the standard tool set registered on every agent
// unless [WithoutDefaultTools] is used: search, calculator, and webfetch.
func DefaultTools() []tool.GenericTool {
	return []tool.GenericTool{
		search.New(),
		calculator.New(),
		webfetch.New(),
	}
}

// New builds a ready-to-run agent. The provider is selected from the model
// name prefix ("claude" routes to Anthropic, "gpt" to OpenAI) and must find
// its API key either via [WithAPIKey] or the vendor's environment variable.
func New(opts ...Option) (*react.Agent, error) {
	cfg := config{
		model:               DefaultModel,
		systemPrompt:        DefaultSystemPrompt,
		includeDefaultTools: true,
	}

	for _, opt := range opts {
		opt(&cfg)
	}

	provider, err := cfg.resolveProvider()
	if err != nil {
		return nil, err
	}

	tools := make([]tool.GenericTool, 0, 3+len(cfg.tools))
	if cfg.includeDefaultTools {
		tools = append(tools, DefaultTools()...)
	}
	tools = append(tools, cfg.tools...)

	reactOpts := []react.Option{
		react.WithModel(cfg.model),
		react.WithSystemPrompt(cfg.systemPrompt),
		react.WithTools(tools...),
	}
	if cfg.memoryProvider != nil {
		reactOpts = append(reactOpts, react.WithMemory(cfg.memoryProvider))
	}
	if cfg.maxIterations > 0 {
		reactOpts = append(reactOpts, react.WithMaxIterations(cfg.maxIterations))
	}
	if cfg.generationConfig != nil {
		reactOpts = append(reactOpts, react.WithGenerationConfig(cfg.generationConfig))
	}

	return react.New(provider, reactOpts...)
}

// resolveProvider returns the configured provider, or selects one from the
// model name and verifies its credential is available.
func (cfg *config) resolveProvider() (ai.Provider, error) {
	if cfg.provider != nil {
		return cfg.configured(cfg.provider), nil
	}

	switch {
	case strings.HasPrefix(cfg.model, "claude"):
		if err := cfg.requireKey(envAnthropicAPIKey); err != nil {
			return nil, err
		}
		return cfg.configured(anthropic.New()), nil

	case strings.HasPrefix(cfg.model, "gpt"):
		if err := cfg.requireKey(envOpenAIAPIKey); err != nil {
			return nil, err
		}
		return cfg.configured(openai.New()), nil

	default:
		return nil, fmt.Errorf(
			"unsupported model %q: model names must start with \"claude\" (Anthropic) or \"gpt\" (OpenAI), or pass a custom provider with WithProvider",
			cfg.model,
		)
	}
}

// requireKey fails fast with an actionable message when neither WithAPIKey
// nor the vendor environment variable provides a credential.
func (cfg *config) requireKey(envVar string) error {
	if cfg.apiKey != "" || os.Getenv(envVar) != "" {
		return nil
	}
	return fmt.Errorf("%s is not set: export it or pass reactagent.WithAPIKey (model %q)", envVar, cfg.model)
}

// configured applies the cross-provider overrides to a provider instance.
func (cfg *config) configured(provider ai.Provider) ai.Provider {
	if cfg.apiKey != "" {
		provider = provider.WithAPIKey(cfg.apiKey)
	}
	if cfg.baseURL != "" {
		provider = provider.WithBaseURL(cfg.baseURL)
	}
	if cfg.httpClient != nil {
		provider = provider.WithHTTPClient(cfg.httpClient)
	}
	return provider
}
