// Package anthropic implements [ai.Provider] for Anthropic's Messages API.
// It speaks the Messages wire format directly: content-block unions for tool
// use and tool results, the x-api-key credential header, and the pinned
// anthropic-version header.
package anthropic
