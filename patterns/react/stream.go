package react

import (
	"context"
	"iter"

	"github.com/leofalp/react-agent/patterns/graph"
	"github.com/leofalp/react-agent/providers/ai"
)

// Stream is a handle over an in-flight agent run started by
// [Agent.ExecuteStream]. Consume [Stream.Events] to drive the run; once the
// event sequence is exhausted, [Stream.Response] returns the final model
// response.
type Stream struct {
	events iter.Seq2[graph.Event, error]
	state  *graph.State
}

// ExecuteStream starts the loop for a single user prompt and returns a
// [Stream] that yields node-level progress events. The run advances only
// while the caller iterates the event sequence; breaking out of the loop
// stops the run at the next node boundary.
func (a *Agent) ExecuteStream(ctx context.Context, prompt string) (*Stream, error) {
	state, err := a.initialState(ctx, prompt)
	if err != nil {
		return nil, err
	}

	return &Stream{
		events: a.graph.ExecuteStream(ctx, state),
		state:  state,
	}, nil
}

// Events returns the progress event sequence. It yields (event, nil) pairs
// while the run advances and terminates with a (zero event, error) pair on
// failure. The sequence must be consumed for the run to make progress.
func (s *Stream) Events() iter.Seq2[graph.Event, error] {
	return s.events
}

// Response returns the latest model response recorded by the run. Call it
// after the event sequence completed; calling earlier returns whatever
// response the run has produced so far, or an error when the model has not
// responded yet.
func (s *Stream) Response() (*ai.ChatResponse, error) {
	return responseFromState(s.state)
}

// Messages returns a copy of the conversation accumulated by the run so
// far, including tool results.
func (s *Stream) Messages() []ai.Message {
	return s.state.Messages()
}
