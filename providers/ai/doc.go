// Package ai defines the vendor-neutral contract between the agent loop and
// LLM backends. A [Provider] turns a [ChatRequest] into a [ChatResponse];
// concrete implementations live in the anthropic and openai subpackages and
// translate to and from each vendor's wire format.
package ai
