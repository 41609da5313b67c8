package react

import (
	"context"
	"fmt"

	"github.com/leofalp/react-agent/patterns/graph"
	"github.com/leofalp/react-agent/providers/ai"
	"github.com/leofalp/react-agent/providers/memory"
	"github.com/leofalp/react-agent/providers/observability"
	"github.com/leofalp/react-agent/providers/tool"
)

// Node identifiers of the prebuilt agent graph.
const (
	// NodeAgent is the node that sends the conversation to the model.
	NodeAgent = "agent"

	// NodeTools is the node that executes requested tool calls.
	NodeTools = "tools"
)

// DefaultMaxIterations bounds how many times the agent node may call the
// model in a single run. Each iteration is one model round-trip, possibly
// followed by tool executions.
const DefaultMaxIterations = 10

// stateKeyResponse is the graph state key holding the latest *ai.ChatResponse.
const stateKeyResponse = "react.response"

// Agent is a prebuilt ReAct loop over an [ai.Provider] and a tool catalog.
// It is immutable after construction and safe for concurrent Execute calls.
type Agent struct {
	provider ai.Provider
	catalog  *tool.Catalog
	graph    *graph.Graph

	model            string
	systemPrompt     string
	generationConfig *ai.GenerationConfig
	memoryProvider   memory.Provider
	maxIterations    int
}

// New builds a ReAct agent for the given provider. The returned agent runs
// the prebuilt agent/tools loop; customize it with options such as
// [WithModel], [WithSystemPrompt], and [WithTools].
func New(provider ai.Provider, opts ...Option) (*Agent, error) {
	if provider == nil {
		return nil, fmt.Errorf("react: provider must not be nil")
	}

	agent := &Agent{
		provider:      provider,
		catalog:       tool.NewCatalog(),
		maxIterations: DefaultMaxIterations,
	}

	for _, opt := range opts {
		opt(agent)
	}

	// Each iteration is at most two graph steps (agent node + tools node).
	agentGraph, err := graph.NewBuilder(graph.WithMaxSteps(agent.maxIterations * 2)).
		AddNode(NodeAgent, agent.agentNode).
		AddNode(NodeTools, agent.toolsNode).
		AddConditionalEdge(NodeAgent, agent.routeAfterAgent).
		AddEdge(NodeTools, NodeAgent).
		SetEntryPoint(NodeAgent).
		Build()
	if err != nil {
		return nil, fmt.Errorf("react: building agent graph: %w", err)
	}

	agent.graph = agentGraph
	return agent, nil
}

// Execute runs the loop for a single user prompt and returns the model's
// final response. When a memory provider is configured, the existing history
// is prepended to the conversation and new messages are persisted to it.
func (a *Agent) Execute(ctx context.Context, prompt string) (*ai.ChatResponse, error) {
	state, err := a.initialState(ctx, prompt)
	if err != nil {
		return nil, err
	}

	final, err := a.graph.Execute(ctx, state)
	if err != nil {
		return nil, err
	}

	return responseFromState(final)
}

// initialState seeds a graph state with the memory history (if any) and the
// new user prompt.
func (a *Agent) initialState(ctx context.Context, prompt string) (*graph.State, error) {
	state := graph.NewState()

	if a.memoryProvider != nil {
		history, err := a.memoryProvider.AllMessages(ctx)
		if err != nil {
			return nil, fmt.Errorf("react: loading memory: %w", err)
		}
		state.AppendMessages(history...)
	}

	userMessage := ai.Message{Role: ai.RoleUser, Content: prompt}
	state.AppendMessages(userMessage)
	if err := a.remember(ctx, userMessage); err != nil {
		return nil, err
	}

	return state, nil
}

// remember persists a message to the memory provider, if one is configured.
func (a *Agent) remember(ctx context.Context, message ai.Message) error {
	if a.memoryProvider == nil {
		return nil
	}
	if err := a.memoryProvider.AppendMessage(ctx, &message); err != nil {
		return fmt.Errorf("react: persisting message: %w", err)
	}
	return nil
}

// agentNode sends the current conversation to the model and appends the
// assistant's reply to the state.
func (a *Agent) agentNode(ctx context.Context, state *graph.State) error {
	observer := observability.ObserverFromContext(ctx)

	request := ai.ChatRequest{
		Model:            a.model,
		Messages:         state.Messages(),
		SystemPrompt:     a.systemPrompt,
		Tools:            a.catalog.Descriptions(),
		GenerationConfig: a.generationConfig,
	}

	response, err := a.provider.SendMessage(ctx, request)
	if err != nil {
		return fmt.Errorf("model call failed: %w", err)
	}

	if observer != nil {
		observer.Info("model responded",
			observability.String(observability.AttrLLMModel, response.Model),
			observability.String(observability.AttrResponseFinishReason, response.FinishReason),
			observability.Int(observability.AttrResponseToolCalls, len(response.ToolCalls)),
		)
	}

	assistantMessage := response.AssistantMessage()
	state.AppendMessages(assistantMessage)
	state.Set(stateKeyResponse, response)

	return a.remember(ctx, assistantMessage)
}

// toolsNode executes every tool call from the latest response and appends
// the results as tool messages. Unknown tools and tool failures are reported
// back to the model as tool output rather than aborting the run, so the
// model can recover or rephrase.
func (a *Agent) toolsNode(ctx context.Context, state *graph.State) error {
	response, err := responseFromState(state)
	if err != nil {
		return err
	}

	for _, call := range response.ToolCalls {
		content := a.runTool(ctx, call)

		toolMessage := ai.Message{
			Role:       ai.RoleTool,
			Content:    content,
			ToolCallID: call.ID,
			Name:       call.Function.Name,
		}
		state.AppendMessages(toolMessage)
		if err := a.remember(ctx, toolMessage); err != nil {
			return err
		}
	}

	return nil
}

// runTool resolves and invokes a single tool call, returning the output to
// feed back to the model. Errors become model-visible text.
func (a *Agent) runTool(ctx context.Context, call ai.ToolCall) string {
	requested, exists := a.catalog.Get(call.Function.Name)
	if !exists {
		return fmt.Sprintf("error: unknown tool %q", call.Function.Name)
	}

	output, err := requested.Call(ctx, call.Function.Arguments)
	if err != nil {
		return fmt.Sprintf("error: %v", err)
	}
	return output
}

// routeAfterAgent loops into the tools node while the model keeps requesting
// tool calls, and ends the run once the provider reports a stop message.
func (a *Agent) routeAfterAgent(_ context.Context, state *graph.State) string {
	response, err := responseFromState(state)
	if err != nil {
		return graph.End
	}

	if len(response.ToolCalls) > 0 && !a.provider.IsStopMessage(response) {
		return NodeTools
	}
	return graph.End
}

// responseFromState extracts the latest model response from the graph state.
func responseFromState(state *graph.State) (*ai.ChatResponse, error) {
	value, exists := state.Get(stateKeyResponse)
	if !exists {
		return nil, fmt.Errorf("react: no model response in state")
	}

	response, ok := value.(*ai.ChatResponse)
	if !ok || response == nil {
		return nil, fmt.Errorf("react: unexpected response type %T in state", value)
	}
	return response, nil
}
