package react

import (
	"github.com/leofalp/react-agent/providers/ai"
	"github.com/leofalp/react-agent/providers/memory"
	"github.com/leofalp/react-agent/providers/tool"
)

// Option is a functional option for configuring an [Agent] at construction.
type Option func(*Agent)

// WithModel sets the model identifier sent with every request. An empty
// value lets the provider fall back to its own default.
func WithModel(model string) Option {
	return func(agent *Agent) {
		agent.model = model
	}
}

// WithSystemPrompt sets the system prompt prepended to every model call.
func WithSystemPrompt(systemPrompt string) Option {
	return func(agent *Agent) {
		agent.systemPrompt = systemPrompt
	}
}

// WithTools registers tools the model may call during the run.
func WithTools(tools ...tool.GenericTool) Option {
	return func(agent *Agent) {
		agent.catalog.AddTools(tools...)
	}
}

// WithGenerationConfig sets optional sampling parameters for model calls.
func WithGenerationConfig(config *ai.GenerationConfig) Option {
	return func(agent *Agent) {
		agent.generationConfig = config
	}
}

// WithMemory attaches a conversation store. Existing history is loaded at
// the start of every Execute call and new messages are appended as the run
// progresses, which is how server threads keep context across runs.
func WithMemory(provider memory.Provider) Option {
	return func(agent *Agent) {
		agent.memoryProvider = provider
	}
}

// WithMaxIterations bounds the number of model round-trips per run.
// Values of zero or less keep [DefaultMaxIterations].
func WithMaxIterations(maxIterations int) Option {
	return func(agent *Agent) {
		if maxIterations > 0 {
			agent.maxIterations = maxIterations
		}
	}
}
