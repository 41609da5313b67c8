// Package search provides the demo search tool the agent ships with.
// It answers weather-style queries with canned results so the ReAct loop can
// be exercised without any external search backend or API key.
package search
