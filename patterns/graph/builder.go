package graph

import (
	"errors"
	"fmt"
)

// Builder constructs a validated [Graph] using a fluent API. Nodes and edges
// are added incrementally; Build performs structural validation.
//
// The builder enforces the following constraints:
//   - Node IDs must be unique, non-empty, and not the reserved [End]
//   - Edge sources must reference existing nodes
//   - Static edge targets must reference existing nodes or [End]
//   - A node has at most one outgoing route (static edge or router)
//   - The entry point must be set and reference an existing node
//
// Cycles are permitted: the agent/tools loop depends on them. Runaway loops
// are bounded at execution time by the step limit.
//
// Example:
//
//	agentGraph, err := graph.NewBuilder().
//	    AddNode("agent", agentFn).
//	    AddNode("tools", toolsFn).
//	    AddConditionalEdge("agent", routeAfterAgent).
//	    AddEdge("tools", "agent").
//	    SetEntryPoint("agent").
//	    Build()
type Builder struct {
	// config holds the graph-level configuration populated from Options.
	config *graphConfig

	// nodes stores all registered nodes keyed by their ID.
	nodes map[string]*node

	// staticEdges and routers store the outgoing route of each node.
	staticEdges map[string]string
	routers     map[string]Router

	// entryPoint is the node where execution starts.
	entryPoint string

	// buildErrors accumulates validation errors from the Add methods and is
	// reported when Build is called.
	buildErrors []error
}

// NewBuilder creates an empty Builder. Graph-level options such as
// [WithMaxSteps] are applied here.
func NewBuilder(opts ...Option) *Builder {
	config := &graphConfig{
		maxSteps: DefaultMaxSteps,
	}

	for _, opt := range opts {
		opt(config)
	}

	return &Builder{
		config:      config,
		nodes:       make(map[string]*node),
		staticEdges: make(map[string]string),
		routers:     make(map[string]Router),
		buildErrors: make([]error, 0),
	}
}

// AddNode registers a processing node with the given unique ID and function.
// Returns the builder for method chaining; violations are recorded and
// reported at Build time.
func (builder *Builder) AddNode(nodeID string, fn NodeFunc) *Builder {
	if nodeID == "" {
		builder.buildErrors = append(builder.buildErrors, fmt.Errorf("node ID must not be empty"))
		return builder
	}

	if nodeID == End {
		builder.buildErrors = append(builder.buildErrors, fmt.Errorf("node ID %q is reserved", End))
		return builder
	}

	if fn == nil {
		builder.buildErrors = append(builder.buildErrors, fmt.Errorf("function must not be nil for node %q", nodeID))
		return builder
	}

	if _, exists := builder.nodes[nodeID]; exists {
		builder.buildErrors = append(builder.buildErrors, fmt.Errorf("duplicate node ID %q", nodeID))
		return builder
	}

	builder.nodes[nodeID] = &node{id: nodeID, fn: fn}

	return builder
}

// AddEdge creates a static directed edge: after from completes, execution
// always continues at to. Use [End] as the target to terminate the run.
func (builder *Builder) AddEdge(from, to string) *Builder {
	if from == "" || to == "" {
		builder.buildErrors = append(builder.buildErrors, fmt.Errorf("edge endpoints must not be empty (from=%q, to=%q)", from, to))
		return builder
	}

	if err := builder.checkSingleRoute(from); err != nil {
		builder.buildErrors = append(builder.buildErrors, err)
		return builder
	}

	builder.staticEdges[from] = to

	return builder
}

// AddConditionalEdge registers a routing function for from: after the node
// completes, router picks the next node (or [End]) based on the state.
// This is how the agent node decides between executing tools and finishing.
func (builder *Builder) AddConditionalEdge(from string, router Router) *Builder {
	if from == "" {
		builder.buildErrors = append(builder.buildErrors, fmt.Errorf("conditional edge source must not be empty"))
		return builder
	}

	if router == nil {
		builder.buildErrors = append(builder.buildErrors, fmt.Errorf("router must not be nil for node %q", from))
		return builder
	}

	if err := builder.checkSingleRoute(from); err != nil {
		builder.buildErrors = append(builder.buildErrors, err)
		return builder
	}

	builder.routers[from] = router

	return builder
}

// SetEntryPoint designates the node where every run starts.
func (builder *Builder) SetEntryPoint(nodeID string) *Builder {
	if nodeID == "" {
		builder.buildErrors = append(builder.buildErrors, fmt.Errorf("entry point must not be empty"))
		return builder
	}

	builder.entryPoint = nodeID

	return builder
}

// checkSingleRoute enforces that a node has at most one outgoing route.
func (builder *Builder) checkSingleRoute(from string) error {
	if _, exists := builder.staticEdges[from]; exists {
		return fmt.Errorf("node %q already has an outgoing edge", from)
	}
	if _, exists := builder.routers[from]; exists {
		return fmt.Errorf("node %q already has a conditional edge", from)
	}
	return nil
}

// Build validates the graph structure and produces an executable [Graph].
// It performs the following validations:
//
//  1. No accumulated build errors from the Add methods
//  2. At least one node exists
//  3. Every edge source and static edge target references an existing node
//     (static targets may also be [End])
//  4. The entry point is set and references an existing node
//
// Conditional edge targets are produced at run time by routers, so they are
// validated during execution rather than here.
func (builder *Builder) Build() (*Graph, error) {
	if len(builder.buildErrors) > 0 {
		return nil, fmt.Errorf("graph build errors: %w", errors.Join(builder.buildErrors...))
	}

	if len(builder.nodes) == 0 {
		return nil, fmt.Errorf("graph must contain at least one node")
	}

	for from, to := range builder.staticEdges {
		if _, exists := builder.nodes[from]; !exists {
			return nil, fmt.Errorf("edge references non-existent source node %q", from)
		}
		if to != End {
			if _, exists := builder.nodes[to]; !exists {
				return nil, fmt.Errorf("edge references non-existent target node %q", to)
			}
		}
	}

	for from := range builder.routers {
		if _, exists := builder.nodes[from]; !exists {
			return nil, fmt.Errorf("conditional edge references non-existent source node %q", from)
		}
	}

	if builder.entryPoint == "" {
		return nil, fmt.Errorf("entry point must be set before building")
	}
	if _, exists := builder.nodes[builder.entryPoint]; !exists {
		return nil, fmt.Errorf("entry point %q does not exist in the graph", builder.entryPoint)
	}

	return &Graph{
		nodes:       builder.nodes,
		staticEdges: builder.staticEdges,
		routers:     builder.routers,
		entryPoint:  builder.entryPoint,
		config:      builder.config,
	}, nil
}
