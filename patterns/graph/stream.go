package graph

import (
	"context"
	"fmt"
	"iter"
)

// EventType identifies what happened during a streamed graph execution.
type EventType string

const (
	// EventNodeStart signals that a node is about to execute.
	// The Node and Step fields are populated.
	EventNodeStart EventType = "node_start"

	// EventNodeComplete signals that a node finished successfully.
	// The Node, Step, and Next fields are populated.
	EventNodeComplete EventType = "node_complete"

	// EventDone signals that the run reached [End]. It is the last event of
	// a successful stream.
	EventDone EventType = "done"
)

// Event is a single progress notification from [Graph.ExecuteStream].
type Event struct {
	// Type identifies what kind of event this is.
	Type EventType `json:"type"`

	// Node is the node that produced the event. Empty for EventDone.
	Node string `json:"node,omitempty"`

	// Step is the 1-based execution step that produced the event.
	Step int `json:"step"`

	// Next is the route taken after the node completed.
	// Populated only for EventNodeComplete.
	Next string `json:"next,omitempty"`
}

// ExecuteStream runs the graph like [Graph.Execute] but yields an [Event]
// before and after every node, letting callers surface progress (for
// example over server-sent events) while the run is in flight.
//
// The sequence yields (event, nil) pairs for progress and terminates either
// with an EventDone event or with a (zero Event, error) pair. Breaking out
// of the range loop stops the run at the next node boundary.
func (g *Graph) ExecuteStream(ctx context.Context, state *State) iter.Seq2[Event, error] {
	return func(yield func(Event, error) bool) {
		if state == nil {
			state = NewState()
		}

		current := g.entryPoint
		for step := 1; ; step++ {
			if step > g.config.maxSteps {
				yield(Event{}, fmt.Errorf("%w: limit %d reached at node %q", ErrMaxStepsExceeded, g.config.maxSteps, current))
				return
			}

			if err := ctx.Err(); err != nil {
				yield(Event{}, fmt.Errorf("graph execution canceled before node %q: %w", current, err))
				return
			}

			graphNode, exists := g.nodes[current]
			if !exists {
				yield(Event{}, fmt.Errorf("graph routed to unknown node %q", current))
				return
			}

			if !yield(Event{Type: EventNodeStart, Node: current, Step: step}, nil) {
				return
			}

			if err := graphNode.fn(ctx, state); err != nil {
				yield(Event{}, fmt.Errorf("node %q: %w", current, err))
				return
			}

			next := g.next(ctx, current, state)

			if !yield(Event{Type: EventNodeComplete, Node: current, Step: step, Next: next}, nil) {
				return
			}

			if next == End {
				yield(Event{Type: EventDone, Step: step}, nil)
				return
			}
			current = next
		}
	}
}
