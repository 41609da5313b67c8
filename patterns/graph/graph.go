package graph

import (
	"context"
	"errors"
)

// End is the reserved node identifier that terminates graph execution.
// Routing or adding an edge to End stops the run and returns the final state.
const End = "__end__"

// DefaultMaxSteps bounds the number of node executions in a single run.
// Cyclic graphs that never route to [End] fail with [ErrMaxStepsExceeded]
// once this limit is reached. Override with [WithMaxSteps].
const DefaultMaxSteps = 25

// ErrMaxStepsExceeded is returned by Execute when a run performs more node
// executions than the configured step limit allows. This usually indicates
// a loop whose exit condition never triggers.
var ErrMaxStepsExceeded = errors.New("graph: max steps exceeded")

// NodeFunc is the processing logic of a single node. It reads and mutates
// the shared state and returns an error to abort the run.
//
// The context carries cancellation and deadlines from Execute, and should be
// propagated to any LLM or tool calls made inside the node.
type NodeFunc func(ctx context.Context, state *State) error

// Router decides where execution goes after a node completes. It returns
// the identifier of the next node, or [End] to terminate the run.
//
// Routers must be pure with respect to the state: they may read it but
// should not mutate it.
type Router func(ctx context.Context, state *State) string

// node pairs an identifier with its processing function. Created internally
// by the Builder.
type node struct {
	id string
	fn NodeFunc
}

// graphConfig holds the execution configuration populated by Options.
type graphConfig struct {
	// maxSteps limits node executions per run. Zero means DefaultMaxSteps.
	maxSteps int
}

// Graph is a validated, executable state machine produced by
// [Builder.Build]. It is immutable after construction and safe for
// concurrent Execute calls, each with its own [State].
type Graph struct {
	// nodes maps node IDs to their definitions.
	nodes map[string]*node

	// staticEdges maps a node ID to its unconditional successor.
	staticEdges map[string]string

	// routers maps a node ID to its conditional routing function.
	// A node has either a static edge or a router, never both.
	routers map[string]Router

	// entryPoint is the node where every run starts.
	entryPoint string

	// config holds the execution configuration.
	config *graphConfig
}

// next resolves the successor of nodeID after it has completed. Nodes with
// neither a static edge nor a router implicitly route to [End].
func (g *Graph) next(ctx context.Context, nodeID string, state *State) string {
	if router, ok := g.routers[nodeID]; ok {
		return router(ctx, state)
	}
	if target, ok := g.staticEdges[nodeID]; ok {
		return target
	}
	return End
}
