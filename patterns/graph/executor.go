package graph

import (
	"context"
	"fmt"
	"time"

	"github.com/leofalp/react-agent/providers/observability"
)

// Execute runs the graph from its entry point until a route resolves to
// [End], the step limit is hit, the context is canceled, or a node fails.
// It returns the final state on success.
//
// The passed state is mutated in place by the nodes; the returned pointer
// is the same state, returned for call-chaining convenience.
func (g *Graph) Execute(ctx context.Context, state *State) (*State, error) {
	observer := observability.ObserverFromContext(ctx)

	if state == nil {
		state = NewState()
	}

	current := g.entryPoint
	for step := 1; ; step++ {
		if step > g.config.maxSteps {
			return nil, fmt.Errorf("%w: limit %d reached at node %q", ErrMaxStepsExceeded, g.config.maxSteps, current)
		}

		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("graph execution canceled before node %q: %w", current, err)
		}

		graphNode, exists := g.nodes[current]
		if !exists {
			return nil, fmt.Errorf("graph routed to unknown node %q", current)
		}

		if observer != nil {
			observer.Debug("graph node starting",
				observability.String(observability.AttrGraphNode, current),
				observability.Int(observability.AttrGraphStep, step),
			)
		}

		start := time.Now()
		if err := graphNode.fn(ctx, state); err != nil {
			if observer != nil {
				observer.Error("graph node failed",
					observability.String(observability.AttrGraphNode, current),
					observability.Int(observability.AttrGraphStep, step),
					observability.Error(err),
				)
			}
			return nil, fmt.Errorf("node %q: %w", current, err)
		}

		next := g.next(ctx, current, state)

		if observer != nil {
			observer.Debug("graph node completed",
				observability.String(observability.AttrGraphNode, current),
				observability.Int(observability.AttrGraphStep, step),
				observability.Duration("duration", time.Since(start)),
				observability.String("graph.next", next),
			)
		}

		if next == End {
			return state, nil
		}
		current = next
	}
}
