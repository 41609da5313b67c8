package inmemory

import (
	"context"
	"sync"

	"github.com/leofalp/react-agent/providers/ai"
	"github.com/leofalp/react-agent/providers/memory"
)

// ArrayMemory is a simple, concurrency-safe in-memory message store.
// It uses RWMutex to guard access and is efficient for read-heavy workloads.
type ArrayMemory struct {
	mu       sync.RWMutex
	messages []ai.Message
}

// Ensure ArrayMemory implements memory.Provider at compile time.
var _ memory.Provider = (*ArrayMemory)(nil)

// New returns a new, empty [ArrayMemory] ready for immediate use.
func New() *ArrayMemory {
	return &ArrayMemory{
		messages: []ai.Message{},
	}
}

// AppendMessage stores a copy of message at the end of the history.
// It is a no-op when message is nil. The returned error is always nil.
func (m *ArrayMemory) AppendMessage(_ context.Context, message *ai.Message) error {
	if message == nil {
		return nil
	}
	m.mu.Lock()
	m.messages = append(m.messages, *message)
	m.mu.Unlock()
	return nil
}

// AllMessages returns a copy of all messages to avoid external mutation of
// internal state. The returned error is always nil.
func (m *ArrayMemory) AllMessages(_ context.Context) ([]ai.Message, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]ai.Message, len(m.messages))
	copy(out, m.messages)
	return out, nil
}

// LastMessages returns up to the last n messages as a new, independent
// slice. Returns an empty, non-nil slice when n is zero or negative or the
// store is empty. The returned error is always nil.
func (m *ArrayMemory) LastMessages(_ context.Context, n int) ([]ai.Message, error) {
	if n <= 0 {
		return []ai.Message{}, nil
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	if n > len(m.messages) {
		n = len(m.messages)
	}
	out := make([]ai.Message, n)
	copy(out, m.messages[len(m.messages)-n:])
	return out, nil
}

// Count returns the number of messages stored. The returned error is always nil.
func (m *ArrayMemory) Count(_ context.Context) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.messages), nil
}

// ClearMessages removes all messages while retaining the underlying slice
// capacity, so subsequent appends do not immediately reallocate.
func (m *ArrayMemory) ClearMessages(_ context.Context) error {
	m.mu.Lock()
	m.messages = m.messages[:0]
	m.mu.Unlock()
	return nil
}
