package observability

// Shared attribute keys. Keeping the vocabulary in one place makes log
// streams greppable across providers, tools, and the graph executor.
const (
	AttrLLMProvider = "llm.provider"
	AttrLLMEndpoint = "llm.endpoint"
	AttrLLMModel    = "llm.model"

	AttrRequestMessagesCount = "request.messages.count"
	AttrRequestToolsCount    = "request.tools.count"

	AttrResponseFinishReason = "response.finish_reason"
	AttrResponseToolCalls    = "response.tool_calls.count"
	AttrUsageTotalTokens     = "usage.total_tokens"

	AttrToolName     = "tool.name"
	AttrToolInput    = "tool.input"
	AttrToolOutput   = "tool.output"
	AttrToolDuration = "tool.duration"

	AttrGraphNode      = "graph.node"
	AttrGraphStep      = "graph.step"
	AttrGraphIteration = "graph.iteration"

	AttrHTTPMethod       = "http.method"
	AttrHTTPURL          = "http.url"
	AttrHTTPStatusCode   = "http.status_code"
	AttrHTTPBodySize     = "http.body_size"
	AttrHTTPDuration     = "http.duration"
	AttrThreadID         = "thread.id"
	AttrRunID            = "run.id"
	AttrAssistantGraphID = "assistant.graph_id"
)
