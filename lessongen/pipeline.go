package lessongen

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"

	"github.com/leofalp/react-agent/patterns/graph"
	"github.com/leofalp/react-agent/providers/ai"
	"github.com/leofalp/react-agent/providers/ai/anthropic"
)

// DefaultModel is the model used when none is configured.
const DefaultModel = "claude-sonnet-4-5"

// DefaultMaxIterations is the validation retry budget applied when a
// request leaves MaxIterations unset.
const DefaultMaxIterations = 3

// Node identifiers of the lesson pipeline.
const (
	nodeLoadContext    = "load_context"
	nodeGenerateLesson = "generate_lesson"
	nodeValidateLesson = "validate_lesson"
	nodeFixLesson      = "fix_lesson"
	nodeWriteOutput    = "write_output"
)

// envAnthropicAPIKey is the credential checked when the default provider
// is used.
const envAnthropicAPIKey = "ANTHROPIC_API_KEY"

// Pipeline is the compiled lesson generation graph. It is immutable after
// construction and safe for concurrent Run calls.
type Pipeline struct {
	graph     *graph.Graph
	provider  ai.Provider
	model     string
	registry  *Registry
	validator Validator
}

// config collects the options applied by New.
type config struct {
	provider   ai.Provider
	model      string
	apiKey     string
	baseURL    string
	httpClient *http.Client
	registry   *Registry
	validator  Validator
}

// Option configures the pipeline at construction.
type Option func(*config)

// WithProvider supplies a custom LLM provider, bypassing the default
// Anthropic client and its credential check.
func WithProvider(provider ai.Provider) Option {
	return func(cfg *config) {
		cfg.provider = provider
	}
}

// WithModel overrides the model identifier sent on every request.
func WithModel(model string) Option {
	return func(cfg *config) {
		cfg.model = model
	}
}

// WithAPIKey supplies the provider credential directly instead of through
// the environment.
func WithAPIKey(apiKey string) Option {
	return func(cfg *config) {
		cfg.apiKey = apiKey
	}
}

// WithBaseURL overrides the provider endpoint; used by tests to point the
// pipeline at a stub server.
func WithBaseURL(baseURL string) Option {
	return func(cfg *config) {
		cfg.baseURL = baseURL
	}
}

// WithHTTPClient sets the HTTP client for provider requests.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(cfg *config) {
		cfg.httpClient = httpClient
	}
}

// WithRegistry replaces the built-in domain registry.
func WithRegistry(registry *Registry) Option {
	return func(cfg *config) {
		cfg.registry = registry
	}
}

// WithValidator replaces the command-line quality pipeline, e.g. with a
// stub in tests or a lighter check in environments without the Python
// toolchain.
func WithValidator(validator Validator) Option {
	return func(cfg *config) {
		cfg.validator = validator
	}
}

// New compiles the lesson generation pipeline. Without [WithProvider] it
// uses the Anthropic client and fails fast when ANTHROPIC_API_KEY is
// missing.
func New(opts ...Option) (*Pipeline, error) {
	cfg := config{
		model: DefaultModel,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	provider := cfg.provider
	if provider == nil {
		if cfg.apiKey == "" && os.Getenv(envAnthropicAPIKey) == "" {
			return nil, fmt.Errorf("%s is not set: export it or pass lessongen.WithAPIKey (model %q)", envAnthropicAPIKey, cfg.model)
		}
		provider = anthropic.New()
	}
	if cfg.apiKey != "" {
		provider = provider.WithAPIKey(cfg.apiKey)
	}
	if cfg.baseURL != "" {
		provider = provider.WithBaseURL(cfg.baseURL)
	}
	if cfg.httpClient != nil {
		provider = provider.WithHTTPClient(cfg.httpClient)
	}

	registry := cfg.registry
	if registry == nil {
		registry = DefaultRegistry()
	}
	validator := cfg.validator
	if validator == nil {
		validator = NewCommandValidator()
	}

	pipeline := &Pipeline{
		provider:  provider,
		model:     cfg.model,
		registry:  registry,
		validator: validator,
	}

	compiled, err := graph.NewBuilder().
		AddNode(nodeLoadContext, pipeline.loadContext).
		AddNode(nodeGenerateLesson, pipeline.generateLesson).
		AddNode(nodeValidateLesson, pipeline.validateLesson).
		AddNode(nodeFixLesson, pipeline.fixLesson).
		AddNode(nodeWriteOutput, pipeline.writeOutput).
		AddEdge(nodeLoadContext, nodeGenerateLesson).
		AddEdge(nodeGenerateLesson, nodeValidateLesson).
		AddConditionalEdge(nodeValidateLesson, pipeline.shouldRetry).
		AddEdge(nodeFixLesson, nodeValidateLesson).
		AddEdge(nodeWriteOutput, graph.End).
		SetEntryPoint(nodeLoadContext).
		Build()
	if err != nil {
		return nil, fmt.Errorf("building lesson pipeline: %w", err)
	}

	pipeline.graph = compiled
	return pipeline, nil
}

// Request describes one lesson generation run.
type Request struct {
	// Topic is the lesson subject, e.g. "binary search".
	Topic string

	// Domain selects the registered domain configuration.
	Domain string

	// TargetDir is the directory the lesson is written into, and the
	// directory scanned for existing lessons and numbering. Optional for
	// dry runs, where the domain's project directory (if any) is scanned
	// instead.
	TargetDir string

	// MaxIterations bounds the validate/fix retry loop. Zero applies
	// [DefaultMaxIterations].
	MaxIterations int

	// DryRun generates and validates without writing to disk.
	DryRun bool

	// Force overwrites an existing lesson file with the same name.
	Force bool
}

// Result is the outcome of a pipeline run.
type Result struct {
	// Status is the terminal pipeline status: committed, dry_run, or
	// failed.
	Status Status

	// OutputPath is the written file. Set only when Status is committed.
	OutputPath string

	// RenderedCode is the final generated lesson source.
	RenderedCode string

	// ValidationErrors holds the outstanding errors when Status is
	// failed.
	ValidationErrors []string

	// Metadata describes the generated lesson.
	Metadata LessonMetadata

	// Iterations is the number of fix rounds that ran.
	Iterations int
}

// Run executes the pipeline for one request.
func (p *Pipeline) Run(ctx context.Context, request Request) (*Result, error) {
	if request.Topic == "" {
		return nil, fmt.Errorf("lesson topic is required")
	}
	if request.Domain == "" {
		return nil, fmt.Errorf("lesson domain is required")
	}
	if request.TargetDir == "" && !request.DryRun {
		return nil, fmt.Errorf("target directory is required unless running with DryRun")
	}

	maxIterations := request.MaxIterations
	if maxIterations <= 0 {
		maxIterations = DefaultMaxIterations
	}

	state := graph.NewState()
	state.Set(keyTopic, request.Topic)
	state.Set(keyDomainName, request.Domain)
	state.Set(keyTargetDir, request.TargetDir)
	state.Set(keyMaxIterations, maxIterations)
	state.Set(keyDryRun, request.DryRun)
	state.Set(keyForce, request.Force)

	final, err := p.graph.Execute(ctx, state)
	if err != nil {
		return nil, err
	}

	result := &Result{
		Status:           stateStatus(final, keyStatus),
		OutputPath:       stateString(final, keyOutputPath),
		RenderedCode:     stateString(final, keyRenderedCode),
		ValidationErrors: stateStrings(final, keyValidationErrors),
		Iterations:       stateInt(final, keyIteration),
	}
	if raw := stateString(final, keyMetadataJSON); raw != "" {
		if err := json.Unmarshal([]byte(raw), &result.Metadata); err != nil {
			return nil, fmt.Errorf("decoding lesson metadata: %w", err)
		}
	}
	return result, nil
}
