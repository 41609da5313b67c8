package graph

import (
	"sync"

	"github.com/leofalp/react-agent/providers/ai"
)

// State is the shared data structure passed to every node during execution.
// It carries the conversation history plus arbitrary key-value data, and is
// safe for concurrent use (nodes run sequentially, but routers and external
// observers may read state while a node writes).
type State struct {
	mu       sync.RWMutex
	messages []ai.Message
	values   map[string]any
}

// NewState creates an empty State, optionally seeded with initial messages.
func NewState(messages ...ai.Message) *State {
	initial := make([]ai.Message, len(messages))
	copy(initial, messages)

	return &State{
		messages: initial,
		values:   make(map[string]any),
	}
}

// AppendMessages adds messages to the end of the conversation history.
func (state *State) AppendMessages(messages ...ai.Message) {
	state.mu.Lock()
	defer state.mu.Unlock()

	state.messages = append(state.messages, messages...)
}

// Messages returns a copy of the conversation history in append order.
// The returned slice is safe to modify without affecting the state.
func (state *State) Messages() []ai.Message {
	state.mu.RLock()
	defer state.mu.RUnlock()

	out := make([]ai.Message, len(state.messages))
	copy(out, state.messages)
	return out
}

// LastMessage returns the most recent message and true, or a zero message
// and false when the history is empty.
func (state *State) LastMessage() (ai.Message, bool) {
	state.mu.RLock()
	defer state.mu.RUnlock()

	if len(state.messages) == 0 {
		return ai.Message{}, false
	}
	return state.messages[len(state.messages)-1], true
}

// MessageCount returns the number of messages in the history.
func (state *State) MessageCount() int {
	state.mu.RLock()
	defer state.mu.RUnlock()

	return len(state.messages)
}

// Set writes a value under key in the state's key-value store, overwriting
// any existing value.
func (state *State) Set(key string, value any) {
	state.mu.Lock()
	defer state.mu.Unlock()

	state.values[key] = value
}

// Get retrieves a value by key. The boolean reports whether the key exists.
func (state *State) Get(key string) (any, bool) {
	state.mu.RLock()
	defer state.mu.RUnlock()

	value, exists := state.values[key]
	return value, exists
}

// Values returns a copy of the key-value store, safe to modify without
// affecting the state.
func (state *State) Values() map[string]any {
	state.mu.RLock()
	defer state.mu.RUnlock()

	out := make(map[string]any, len(state.values))
	for key, value := range state.values {
		out[key] = value
	}
	return out
}
