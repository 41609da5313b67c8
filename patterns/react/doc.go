// Package react implements the ReAct (reason and act) agent pattern as a
// prebuilt two-node [graph.Graph]: an agent node that calls the model and a
// tools node that executes the tool calls the model requested. A conditional
// edge loops between them until the model produces a terminal response.
//
// Construct an agent with [New], passing an [ai.Provider] and options for
// the model, system prompt, and tools, then run it with [Agent.Execute] or
// [Agent.ExecuteStream].
package react
