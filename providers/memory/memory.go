package memory

import (
	"context"

	"github.com/leofalp/react-agent/providers/ai"
)

// Provider stores a conversation's message history. Implementations must be
// safe for concurrent use; the dev server appends to a thread from request
// handlers while reads may happen concurrently.
type Provider interface {
	// AppendMessage stores message at the end of the history.
	// Implementations must treat a nil message as a no-op.
	AppendMessage(ctx context.Context, message *ai.Message) error

	// AllMessages returns a copy of the full history in append order.
	AllMessages(ctx context.Context) ([]ai.Message, error)

	// LastMessages returns up to n of the most recent messages.
	LastMessages(ctx context.Context, n int) ([]ai.Message, error)

	// Count returns the number of stored messages.
	Count(ctx context.Context) (int, error)

	// ClearMessages removes all messages.
	ClearMessages(ctx context.Context) error
}
