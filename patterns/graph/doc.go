// Package graph provides a state-machine execution engine for agent
// workflows. A graph is a set of named nodes connected by directed edges;
// unlike a classic DAG pipeline, cycles are allowed, which is what makes
// tool-calling loops possible (the agent node routes back to itself through
// a tools node until the model stops requesting tools).
//
// Graphs are constructed with [Builder] and validated by [Builder.Build].
// Each node is a [NodeFunc] that mutates the shared [State]. After a node
// runs, the engine follows either a static edge or a [Router] registered
// via [Builder.AddConditionalEdge]; routing to [End] terminates execution.
// A configurable step limit (see [WithMaxSteps]) bounds cyclic graphs.
//
// Execution is sequential: one node runs at a time, which matches the
// strictly ordered conversation semantics of chat-based agents.
package graph
