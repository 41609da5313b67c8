package tool

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/leofalp/react-agent/core/parse"
	"github.com/leofalp/react-agent/internal/jsonschema"
	"github.com/leofalp/react-agent/providers/ai"
	"github.com/leofalp/react-agent/providers/observability"
)

// Tool represents a typed, callable tool that can be advertised to an AI
// provider. It binds a name and description to a strongly-typed Go function
// and derives JSON schemas for both input (I) and output (O) via reflection.
// Use [New] to construct a Tool.
type Tool[I, O any] struct {
	Name        string
	Description string
	Parameters  *jsonschema.Schema
	Output      *jsonschema.Schema
	Function    func(ctx context.Context, input I) (O, error)
}

// GenericTool is the provider-agnostic interface for all tools. It abstracts
// over the concrete generic type parameters of [Tool] so tools can be stored,
// dispatched, and introspected without knowing their input/output types.
type GenericTool interface {
	// ToolInfo returns the metadata (name, description, parameter schema)
	// used to advertise this tool to an AI provider.
	ToolInfo() ai.ToolDescription

	// Call invokes the tool with a JSON-encoded input string and returns a
	// JSON-encoded output string. Returns an error if parsing or execution fails.
	Call(ctx context.Context, inputJSON string) (string, error)
}

// options holds optional configuration for a tool created via [New].
type options struct {
	Description string
}

// Option configures a tool at construction time.
type Option func(*options)

// WithDescription sets a human-readable description for the tool. Providers
// surface this description to the model to help it decide when and how to
// invoke the tool.
func WithDescription(description string) Option {
	return func(o *options) {
		o.Description = description
	}
}

// New constructs a [Tool] with the given name and handler function.
// JSON schemas for the input type I and output type O are derived
// automatically via reflection.
//
// Example:
//
//	searchTool := tool.New("search", searchFunc,
//	    tool.WithDescription("Search for information."),
//	)
func New[I, O any](name string, function func(ctx context.Context, input I) (O, error), opts ...Option) *Tool[I, O] {
	var cfg options
	for _, opt := range opts {
		opt(&cfg)
	}

	return &Tool[I, O]{
		Name:        name,
		Description: cfg.Description,
		Parameters:  jsonschema.Generate[I](),
		Output:      jsonschema.Generate[O](),
		Function:    function,
	}
}

// ToolInfo returns the [ai.ToolDescription] advertised to providers.
func (t *Tool[I, O]) ToolInfo() ai.ToolDescription {
	return ai.ToolDescription{
		Name:        t.Name,
		Description: t.Description,
		Parameters:  t.Parameters,
	}
}

// Call invokes the tool's underlying function with the given JSON-encoded
// input. The input is parsed leniently (repairing malformed JSON from the
// model), the function is executed, and the result is serialized back to
// JSON. Execution is logged through the context observer when present.
func (t *Tool[I, O]) Call(ctx context.Context, inputJSON string) (string, error) {
	observer := observability.ObserverFromContext(ctx)
	if observer != nil {
		observer.Debug("tool execution start",
			observability.String(observability.AttrToolName, t.Name),
			observability.String(observability.AttrToolInput, inputJSON),
		)
	}

	start := time.Now()

	input, err := parse.StringAs[I](inputJSON)
	if err != nil {
		return "", fmt.Errorf("tool %q: failed to parse input: %w", t.Name, err)
	}

	output, err := t.Function(ctx, input)
	duration := time.Since(start)
	if err != nil {
		if observer != nil {
			observer.Warn("tool execution failed",
				observability.String(observability.AttrToolName, t.Name),
				observability.Error(err),
				observability.Duration(observability.AttrToolDuration, duration),
			)
		}
		return "", fmt.Errorf("tool %q: %w", t.Name, err)
	}

	outputBytes, err := json.Marshal(output)
	if err != nil {
		return "", fmt.Errorf("tool %q: failed to marshal output: %w", t.Name, err)
	}

	if observer != nil {
		observer.Debug("tool execution end",
			observability.String(observability.AttrToolName, t.Name),
			observability.String(observability.AttrToolOutput, string(outputBytes)),
			observability.Duration(observability.AttrToolDuration, duration),
		)
	}

	return string(outputBytes), nil
}
