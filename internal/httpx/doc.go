// Package httpx contains the shared HTTP plumbing used by the LLM provider
// implementations: a generic JSON POST helper with context propagation,
// status checking, and response previews on decode failures.
package httpx
